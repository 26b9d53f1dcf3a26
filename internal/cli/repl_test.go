package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/shorcalc/internal/numtheory"
)

// runREPL feeds input to a fresh session and returns its output.
func runREPL(t *testing.T, input string) string {
	t.Helper()
	r := NewREPL(numtheory.NewDefaultFactory(), REPLConfig{DefaultAlgo: "carmichael", Timeout: 10 * time.Second, Concurrency: 2})
	var out bytes.Buffer
	r.SetInput(strings.NewReader(input))
	r.SetOutput(&out)
	r.Start()
	return out.String()
}

func TestREPL_Commands(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{"factor default modulus", "factor 11\n", []string{"Order r         : 3,654", "59 · 127 = 7493"}},
		{"bare number", "2 15\n", []string{"N=15", "5 · 3 = 15"}},
		{"shared factor", "factor 59\n", []string{"Shared factor"}},
		{"order", "order 7 15\n", []string{"ord(7) mod 15 = 4"}},
		{"prime", "prime 127\nprime 7493\n", []string{"127 is prime", "7493 is not prime"}},
		{"primes", "primes 10 20\n", []string{"4 primes in [10, 20): 11 13 17 19"}},
		{"scan", "scan 20\n", []string{"Base sweep for N=7,493", "of 8 bases find a factor"}},
		{"set modulus", "n 21\nfactor 2\n", []string{"Modulus set to N=21", "3 · 7 = 21"}},
		{"algo", "algo naive\nstatus\n", []string{"Order finder changed to: Repeated Multiplication (uint64)", "Order finder:  naive"}},
		{"unknown algo", "algo quantum\n", []string{"Unknown order finder: quantum"}},
		{"list", "list\n", []string{"bigint", "carmichael", "naive"}},
		{"usage errors", "factor\norder x\nn 1\n", []string{"Usage: factor <k> [N]", "Invalid value: x", "N must be at least 2"}},
		{"unknown command", "frobnicate\n", []string{"Unknown command: frobnicate"}},
		{"exit", "exit\nprime 7\n", []string{"Goodbye!"}},
		{"eof without newline", "prime 7", []string{"7 is prime", "Goodbye!"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := runREPL(t, tt.input)
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestREPL_ExitStopsProcessing(t *testing.T) {
	t.Parallel()
	out := runREPL(t, "exit\nprime 7\n")
	if strings.Contains(out, "7 is prime") {
		t.Error("commands after exit should not run")
	}
}

func TestNewREPL_FallsBackToFirstFinder(t *testing.T) {
	t.Parallel()
	r := NewREPL(numtheory.NewDefaultFactory(), REPLConfig{DefaultAlgo: "all"})
	if r.currentAlgo != "bigint" {
		t.Errorf("currentAlgo = %q, want first registered finder %q", r.currentAlgo, "bigint")
	}
	if r.n != 7493 {
		t.Errorf("default modulus = %d, want 7493", r.n)
	}
}

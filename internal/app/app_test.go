package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/agbru/shorcalc/internal/errors"
	"github.com/agbru/shorcalc/internal/numtheory"
)

func run(t *testing.T, input string, args ...string) (string, int) {
	t.Helper()
	var stderr, stdout bytes.Buffer
	app, err := New(append([]string{"shorcalc"}, args...), &stderr,
		WithFactory(numtheory.NewDefaultFactory()),
		WithInput(strings.NewReader(input)))
	if err != nil {
		t.Fatalf("New(%v): %v\n%s", args, err, stderr.String())
	}
	code := app.Run(context.Background(), &stdout)
	return stdout.String() + stderr.String(), code
}

func TestNew_HelpAndErrors(t *testing.T) {
	var stderr bytes.Buffer
	_, err := New([]string{"shorcalc", "-h"}, &stderr)
	if !IsHelpError(err) {
		t.Errorf("expected help error, got %v", err)
	}
	if !strings.Contains(stderr.String(), "Usage: shorcalc") {
		t.Errorf("usage not printed:\n%s", stderr.String())
	}

	_, err = New([]string{"shorcalc", "-n", "1"}, &bytes.Buffer{})
	if err == nil || IsHelpError(err) {
		t.Errorf("expected a validation error for -n 1, got %v", err)
	}
}

func TestNew_AppliesAdaptiveDefaults(t *testing.T) {
	app, err := New([]string{"shorcalc"}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if app.Config.Concurrency < 1 {
		t.Errorf("Concurrency = %d, want an estimate >= 1", app.Config.Concurrency)
	}
	if app.Factory == nil {
		t.Error("default factory not set")
	}
}

func TestRun_Modes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
		want  []string
		code  int
	}{
		{"quiet factor", "", []string{"-q"}, []string{"59 127\n"}, apperrors.ExitSuccess},
		{"shared factor skips order finding", "", []string{"-q", "-k", "59"}, []string{"59\n"}, apperrors.ExitSuccess},
		{"no factor", "", []string{"-q", "-k", "17"}, []string{"none\n"}, apperrors.ExitSuccess},
		{"quiet order", "", []string{"-q", "--order", "-k", "7", "-n", "15"}, []string{"4\n"}, apperrors.ExitSuccess},
		{"order of non-coprime base", "", []string{"-q", "--order", "-k", "59"}, []string{"not coprime"}, apperrors.ExitErrorGeneric},
		{"factor with every finder", "", []string{"--algo", "all", "--no-color"},
			[]string{"Comparison Summary", "All orders agree", "59 · 127 = 7493"}, apperrors.ExitSuccess},
		{"details", "", []string{"-d", "--no-color"}, []string{"Memory Stats:", "GC cycles"}, apperrors.ExitSuccess},
		{"quiet scan", "", []string{"-q", "--scan", "--limit", "20"}, []string{"2 3 5 7 11 13\n"}, apperrors.ExitSuccess},
		{"scan", "", []string{"--scan", "--limit", "20", "--no-color"}, []string{"Base sweep for N=7,493", "6 of 8 bases find a factor"}, apperrors.ExitSuccess},
		{"deck", "", []string{"--deck", "--no-color"}, []string{"Shor's Algorithm", "Team Not Shor", "Runtime Complexity"}, apperrors.ExitSuccess},
		{"repl", "prime 127\nexit\n", []string{"-i"}, []string{"127 is prime", "Goodbye!"}, apperrors.ExitSuccess},
		{"completion", "", []string{"--completion", "bash"}, []string{"complete -F", "carmichael"}, apperrors.ExitSuccess},
		{"bad completion shell", "", []string{"--completion", "tcsh"}, []string{"Error generating completion"}, apperrors.ExitErrorConfig},
		{"timeout", "", []string{"-q", "--order", "-n", "999999937", "-k", "2", "--timeout", "1ns"}, nil, apperrors.ExitErrorTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, code := run(t, tt.input, tt.args...)
			if code != tt.code {
				t.Errorf("exit code = %d, want %d\n%s", code, tt.code, out)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestRun_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "factor.txt")
	out, code := run(t, "", "-q", "-o", path)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code %d: %s", code, out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "59") || !strings.Contains(string(data), "127") {
		t.Errorf("report does not list the factors:\n%s", data)
	}
}

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-n", "15", "-V"}, true},
		{[]string{"-version"}, true},
		{[]string{"-n", "15"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintVersion(&buf)
	if !strings.HasPrefix(buf.String(), "shorcalc "+Version) {
		t.Errorf("PrintVersion() = %q", buf.String())
	}
}

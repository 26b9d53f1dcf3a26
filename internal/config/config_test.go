package config

import (
	"errors"
	"flag"
	"io"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/shorcalc/internal/errors"
)

var testAlgos = []string{"bigint", "carmichael", "naive"}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("shorcalc", nil, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig error: %v", err)
	}
	if cfg.N != 7493 || cfg.Base != 11 {
		t.Errorf("defaults N=%d Base=%d, want 7493 and 11", cfg.N, cfg.Base)
	}
	if cfg.Algo != DefaultAlgo || cfg.ScanLimit != 128 || cfg.Timeout != DefaultTimeout {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	args := []string{"-n", "15", "-k", "2", "--algo", "all", "--scan", "--limit", "50", "-q"}
	cfg, err := ParseConfig("shorcalc", args, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig error: %v", err)
	}
	if cfg.N != 15 || cfg.Base != 2 || cfg.Algo != "all" || !cfg.Scan || cfg.ScanLimit != 50 || !cfg.Quiet {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

func TestParseConfig_Help(t *testing.T) {
	_, err := ParseConfig("shorcalc", []string{"-h"}, io.Discard, testAlgos)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected flag.ErrHelp, got %v", err)
	}
}

func TestParseConfig_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"modulus too small", []string{"-n", "1"}},
		{"unknown algo", []string{"--algo", "quantum"}},
		{"non-positive timeout", []string{"--timeout", "0s"}},
		{"limit too small", []string{"--limit", "1"}},
		{"negative concurrency", []string{"--concurrency", "-2"}},
		{"exclusive modes", []string{"--scan", "--deck"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("shorcalc", tt.args, io.Discard, testAlgos)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected ConfigError, got %v", err)
			}
		})
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SHORCALC_N", "21")
	t.Setenv("SHORCALC_BASE", "2")
	t.Setenv("SHORCALC_TIMEOUT", "5s")
	t.Setenv("SHORCALC_QUIET", "yes")
	t.Setenv("SHORCALC_ALGO", "carmichael")

	cfg, err := ParseConfig("shorcalc", nil, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig error: %v", err)
	}
	if cfg.N != 21 || cfg.Base != 2 || cfg.Timeout != 5*time.Second || !cfg.Quiet || cfg.Algo != "carmichael" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestParseConfig_FlagsBeatEnv(t *testing.T) {
	t.Setenv("SHORCALC_N", "21")
	t.Setenv("SHORCALC_BASE", "2")

	cfg, err := ParseConfig("shorcalc", []string{"-n", "35", "--base", "3"}, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig error: %v", err)
	}
	if cfg.N != 35 || cfg.Base != 3 {
		t.Errorf("flags should win over env, got N=%d Base=%d", cfg.N, cfg.Base)
	}
}

func TestParseConfig_EnvBooleans(t *testing.T) {
	t.Setenv("SHORCALC_DETAILS", "On")
	t.Setenv("SHORCALC_NO_COLOR", "1")
	t.Setenv("SHORCALC_VERBOSE", "no")

	cfg, err := ParseConfig("shorcalc", nil, io.Discard, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig error: %v", err)
	}
	if !cfg.Details || !cfg.NoColor || cfg.Verbose {
		t.Errorf("Details=%v NoColor=%v Verbose=%v", cfg.Details, cfg.NoColor, cfg.Verbose)
	}
}

func TestParseConfig_InvalidEnv(t *testing.T) {
	cases := map[string]string{
		"SHORCALC_N":       "many",
		"SHORCALC_QUIET":   "maybe",
		"SHORCALC_TIMEOUT": "soon",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := ParseConfig("shorcalc", nil, io.Discard, testAlgos)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) || !strings.Contains(cfgErr.Message, key) {
				t.Errorf("ParseConfig with %s=%q: err = %v, want a ConfigError naming it", key, val, err)
			}
		})
	}

	t.Run("ignored when the flag is set", func(t *testing.T) {
		t.Setenv("SHORCALC_N", "many")
		if _, err := ParseConfig("shorcalc", []string{"-n", "15"}, io.Discard, testAlgos); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestApplyAdaptiveDefaults(t *testing.T) {
	t.Parallel()
	cfg := ApplyAdaptiveDefaults(AppConfig{})
	if cfg.Concurrency < 1 || cfg.Concurrency > 16 {
		t.Errorf("Concurrency = %d, want 1..16", cfg.Concurrency)
	}
	kept := ApplyAdaptiveDefaults(AppConfig{Concurrency: 3})
	if kept.Concurrency != 3 {
		t.Errorf("explicit Concurrency overwritten: %d", kept.Concurrency)
	}
}

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/shorcalc/internal/errors"
)

// envBinding ties a SHORCALC_ variable to the flag it stands in for. The
// variable is ignored once any of the flag's spellings is on the command
// line.
type envBinding struct {
	key   string
	flags []string
	set   func(c *AppConfig, raw string) error
}

func uintEnv(field func(*AppConfig) *uint64) func(*AppConfig, string) error {
	return func(c *AppConfig, raw string) error {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return err
		}
		*field(c) = v
		return nil
	}
}

func boolEnv(field func(*AppConfig) *bool) func(*AppConfig, string) error {
	return func(c *AppConfig, raw string) error {
		switch strings.ToLower(raw) {
		case "true", "1", "yes", "on":
			*field(c) = true
		case "false", "0", "no", "off":
			*field(c) = false
		default:
			return strconv.ErrSyntax
		}
		return nil
	}
}

func stringEnv(field func(*AppConfig) *string) func(*AppConfig, string) error {
	return func(c *AppConfig, raw string) error {
		*field(c) = raw
		return nil
	}
}

var envBindings = []envBinding{
	{"N", []string{"n"}, uintEnv(func(c *AppConfig) *uint64 { return &c.N })},
	{"BASE", []string{"base", "k"}, uintEnv(func(c *AppConfig) *uint64 { return &c.Base })},
	{"LIMIT", []string{"limit"}, uintEnv(func(c *AppConfig) *uint64 { return &c.ScanLimit })},
	{"CONCURRENCY", []string{"concurrency"}, func(c *AppConfig, raw string) error {
		v, err := strconv.Atoi(raw)
		if err == nil {
			c.Concurrency = v
		}
		return err
	}},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, raw string) error {
		d, err := time.ParseDuration(raw)
		if err == nil {
			c.Timeout = d
		}
		return err
	}},
	{"ALGO", []string{"algo"}, stringEnv(func(c *AppConfig) *string { return &c.Algo })},
	{"OUTPUT", []string{"output", "o"}, stringEnv(func(c *AppConfig) *string { return &c.OutputFile })},
	{"PORT", []string{"port"}, stringEnv(func(c *AppConfig) *string { return &c.Port })},
	{"VERBOSE", []string{"v", "verbose"}, boolEnv(func(c *AppConfig) *bool { return &c.Verbose })},
	{"DETAILS", []string{"d", "details"}, boolEnv(func(c *AppConfig) *bool { return &c.Details })},
	{"QUIET", []string{"quiet", "q"}, boolEnv(func(c *AppConfig) *bool { return &c.Quiet })},
	{"NO_COLOR", []string{"no-color"}, boolEnv(func(c *AppConfig) *bool { return &c.NoColor })},
	{"TUI", []string{"tui"}, boolEnv(func(c *AppConfig) *bool { return &c.TUI })},
	{"SERVER", []string{"server"}, boolEnv(func(c *AppConfig) *bool { return &c.Server })},
}

// applyEnvOverrides fills every field whose flag was left unset from its
// SHORCALC_ variable. Flags win over the environment, which wins over
// defaults. A value that does not parse is a ConfigError.
func applyEnvOverrides(c *AppConfig, fs *flag.FlagSet) error {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	for _, b := range envBindings {
		if anySet(set, b.flags) {
			continue
		}
		raw := os.Getenv(EnvPrefix + b.key)
		if raw == "" {
			continue
		}
		if err := b.set(c, raw); err != nil {
			return apperrors.NewConfigError("invalid %s%s=%q", EnvPrefix, b.key, raw)
		}
	}
	return nil
}

func anySet(set map[string]bool, names []string) bool {
	for _, name := range names {
		if set[name] {
			return true
		}
	}
	return false
}

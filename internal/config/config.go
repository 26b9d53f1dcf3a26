// Package config defines the application configuration, its command-line
// parsing and its environment variable overrides.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/shorcalc/internal/errors"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "SHORCALC_"

// Defaults reproduce the worked example of the presentation: N = 127 * 59
// factored with base 11, primes below 128 on the grid.
const (
	DefaultN         = 127 * 59
	DefaultBase      = 11
	DefaultScanLimit = 128
	DefaultAlgo      = "naive"
	DefaultTimeout   = 1 * time.Minute
	DefaultPort      = "8080"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// N is the modulus to factor.
	N uint64
	// Base is the candidate base k used for a single factoring attempt.
	Base uint64
	// Algo selects the order finder by name, or "all" to run every finder
	// and cross-check the results.
	Algo string
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Order prints the multiplicative order of Base instead of factoring.
	Order bool
	// Scan runs the factoring step for every prime base below ScanLimit.
	Scan bool
	// ScanLimit is the exclusive upper bound of the scanned bases.
	ScanLimit uint64
	// Concurrency bounds the number of bases scanned in parallel (0 = auto).
	Concurrency int
	// Deck prints the content of every slide.
	Deck bool
	// Interactive starts the REPL.
	Interactive bool
	// TUI starts the scan dashboard.
	TUI bool
	// Server starts the HTTP API.
	Server bool
	// Port is the HTTP listen port in server mode.
	Port string
	// Verbose prints per-base details.
	Verbose bool
	// Details prints timing and memory statistics.
	Details bool
	// Quiet restricts output to the bare result, for scripting.
	Quiet bool
	// NoColor disables ANSI colors.
	NoColor bool
	// OutputFile, when set, receives a copy of the result.
	OutputFile string
	// Completion names a shell to print a completion script for.
	Completion string
}

// ParseConfig parses command-line arguments into an AppConfig, then applies
// environment overrides for flags that were not set explicitly, and
// validates the result.
//
// Parameters:
//   - programName: The program name shown in usage output.
//   - args: The command-line arguments, without the program name.
//   - errorOutput: The writer for usage and parse errors.
//   - availableAlgos: The registered order finder names.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp when help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errorOutput io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorOutput)

	config := AppConfig{}
	fs.Uint64Var(&config.N, "n", DefaultN, "Modulus N to factor.")
	fs.Uint64Var(&config.Base, "base", DefaultBase, "Base k for the factoring attempt.")
	fs.Uint64Var(&config.Base, "k", DefaultBase, "Base k (shorthand).")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, fmt.Sprintf("Order finder: 'all' or one of: %s.", strings.Join(availableAlgos, ", ")))
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.BoolVar(&config.Order, "order", false, "Only compute the multiplicative order of the base.")
	fs.BoolVar(&config.Scan, "scan", false, "Try every prime base below --limit.")
	fs.Uint64Var(&config.ScanLimit, "limit", DefaultScanLimit, "Exclusive upper bound of scanned bases.")
	fs.IntVar(&config.Concurrency, "concurrency", 0, "Bases scanned in parallel (0 = number of CPUs).")
	fs.BoolVar(&config.Deck, "deck", false, "Print the content of every slide.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start the interactive REPL.")
	fs.BoolVar(&config.Interactive, "i", false, "Start the interactive REPL (shorthand).")
	fs.BoolVar(&config.TUI, "tui", false, "Start the scan dashboard.")
	fs.BoolVar(&config.Server, "server", false, "Start the HTTP API server.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Listen port in server mode.")
	fs.BoolVar(&config.Verbose, "v", false, "Verbose output.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Verbose output.")
	fs.BoolVar(&config.Details, "d", false, "Show timing and memory details.")
	fs.BoolVar(&config.Details, "details", false, "Show timing and memory details.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode for scripts.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode for scripts.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.OutputFile, "o", "", "Write the result to a file.")
	fs.StringVar(&config.OutputFile, "output", "", "Write the result to a file.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script (bash, zsh, fish, powershell).")

	fs.Usage = func() {
		fmt.Fprintf(errorOutput, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errorOutput, "Computes the numbers behind a walkthrough of Shor's algorithm:\n")
		fmt.Fprintf(errorOutput, "multiplicative orders, factoring by order finding, and slide content.\n\n")
		fmt.Fprintf(errorOutput, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	err := applyEnvOverrides(&config, fs)
	if err == nil {
		err = config.Validate(availableAlgos)
	}
	if err != nil {
		fmt.Fprintln(errorOutput, "Error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic consistency of the configuration.
//
// Parameters:
//   - availableAlgos: The registered order finder names.
//
// Returns:
//   - error: A ConfigError describing the first problem found, or nil.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.N < 2 {
		return apperrors.NewConfigError("modulus -n must be at least 2, got %d", c.N)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	}
	if c.ScanLimit < 2 {
		return apperrors.NewConfigError("--limit must be at least 2, got %d", c.ScanLimit)
	}
	if c.Concurrency < 0 {
		return apperrors.NewConfigError("--concurrency must not be negative, got %d", c.Concurrency)
	}
	if c.Algo != "all" {
		known := false
		for _, name := range availableAlgos {
			if name == c.Algo {
				known = true
				break
			}
		}
		if !known {
			return apperrors.NewConfigError("unknown order finder %q (available: all, %s)", c.Algo, strings.Join(availableAlgos, ", "))
		}
	}

	modes := 0
	for _, on := range []bool{c.Order, c.Scan, c.Deck, c.Interactive, c.TUI, c.Server} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("--order, --scan, --deck, --interactive, --tui and --server are mutually exclusive")
	}
	return nil
}

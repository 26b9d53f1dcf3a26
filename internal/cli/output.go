// # Naming Conventions
//
// Functions in this package follow consistent naming patterns:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayOutcome], [DisplayScan], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietOutcome], [FormatFactors].
//
//   - Write* functions write to files on the filesystem.
//     Examples: [WriteReportToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/shorcalc/internal/format"
	"github.com/agbru/shorcalc/internal/numtheory"
	"github.com/agbru/shorcalc/internal/ui"
)

// OutputConfig controls how a result is emitted.
type OutputConfig struct {
	// OutputFile receives a copy of the report when set.
	OutputFile string
	// Quiet prints the bare result for scripting.
	Quiet   bool
	Verbose bool
}

// FormatFactors renders the factors of an outcome separated by spaces.
func FormatFactors(factors []uint64) string {
	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = strconv.FormatUint(f, 10)
	}
	return strings.Join(parts, " ")
}

// FormatQuietOutcome is the one-line, script-friendly form of an outcome:
// the factors found, or "none".
func FormatQuietOutcome(out numtheory.Outcome) string {
	if !out.Found() {
		return "none"
	}
	return FormatFactors(out.Factors)
}

// DisplayOutcome prints the factoring step for one base.
func DisplayOutcome(out numtheory.Outcome, duration time.Duration, verbose bool, w io.Writer) {
	fmt.Fprintf(w, "\n--- Factoring N=%s%s%s with base k=%s%d%s ---\n",
		ui.ColorPrimary(), format.FormatUint(out.N), ui.ColorReset(),
		ui.ColorPrimary(), out.K, ui.ColorReset())

	g := numtheory.GCD(out.K, out.N)
	fmt.Fprintf(w, "gcd(k, N)       : %d\n", g)
	if out.Order != 0 {
		fmt.Fprintf(w, "Order r         : %s%s%s\n", ui.ColorInfo(), format.FormatUint(out.Order), ui.ColorReset())
	}
	if verbose && out.Root != 0 {
		fmt.Fprintf(w, "k^(r/2) mod N   : %d\n", out.Root)
	}
	if duration > 0 {
		fmt.Fprintf(w, "Time            : %s\n", format.FormatExecutionDuration(duration))
	}

	switch out.Kind {
	case numtheory.FactorPair:
		p, q := out.Factors[0], out.Factors[1]
		fmt.Fprintf(w, "%sFactors found   : %s%d · %d = %d%s\n",
			ui.ColorSuccess(), ui.ColorFactor(), p, q, p*q, ui.ColorReset())
	case numtheory.SharedFactor:
		f := out.Factors[0]
		fmt.Fprintf(w, "%sShared factor   : %s%d%s (N = %d · %d, no order finding needed)\n",
			ui.ColorSuccess(), ui.ColorFactor(), f, ui.ColorReset(), f, out.N/f)
	default:
		fmt.Fprintf(w, "%sNo factor       : %s, pick another base%s\n", ui.ColorWarning(), out.Reason, ui.ColorReset())
	}
}

// DisplayOrder prints the multiplicative order of k modulo n.
func DisplayOrder(k, n, order uint64, duration time.Duration, w io.Writer) {
	fmt.Fprintf(w, "\nord(%d) mod %s = %s%s%s\n", k, format.FormatUint(n), ui.ColorInfo(), format.FormatUint(order), ui.ColorReset())
	if duration > 0 {
		fmt.Fprintf(w, "Time: %s\n", format.FormatExecutionDuration(duration))
	}
}

// DisplayResultWithConfig prints out per cfg and writes the file copy when
// requested.
func DisplayResultWithConfig(w io.Writer, out numtheory.Outcome, duration time.Duration, algo string, cfg OutputConfig) error {
	if cfg.Quiet {
		fmt.Fprintln(w, FormatQuietOutcome(out))
	} else {
		DisplayOutcome(out, duration, cfg.Verbose, w)
	}

	if cfg.OutputFile == "" {
		return nil
	}
	if err := WriteReportToFile(out, duration, algo, cfg); err != nil {
		return err
	}
	if !cfg.Quiet {
		fmt.Fprintf(w, "\n%s✓ Result saved to: %s%s\n", ui.ColorSuccess(), cfg.OutputFile, ui.ColorReset())
	}
	return nil
}

// WriteReportToFile writes a plain-text report of out to cfg.OutputFile,
// creating parent directories as needed. An empty path is a no-op.
func WriteReportToFile(out numtheory.Outcome, duration time.Duration, algo string, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}

	if dir := filepath.Dir(cfg.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Shor factoring step\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Order finder: %s\n", algo)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# N: %d\n", out.N)
	fmt.Fprintf(file, "# k: %d\n", out.K)
	if out.Order != 0 {
		fmt.Fprintf(file, "# r: %d\n", out.Order)
	}
	fmt.Fprintf(file, "\n%s\n", out)
	return nil
}

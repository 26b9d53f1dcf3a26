package cli

import (
	"fmt"
	"io"

	"github.com/agbru/shorcalc/internal/format"
	"github.com/agbru/shorcalc/internal/numtheory"
	"github.com/agbru/shorcalc/internal/orchestration"
	"github.com/agbru/shorcalc/internal/ui"
)

// DisplayScan prints a sweep as a table, one base per line, followed by a
// summary of the eligible bases. Without verbose, bases that find nothing
// are counted but not listed.
func DisplayScan(results orchestration.ScanResults, n uint64, verbose bool, w io.Writer) {
	fmt.Fprintf(w, "\n--- Base sweep for N=%s%s%s ---\n", ui.ColorPrimary(), format.FormatUint(n), ui.ColorReset())
	fmt.Fprintf(w, "%s%6s  %8s  %-14s  %s%s\n", ui.ColorUnderline(), "k", "r", "outcome", "factors", ui.ColorReset())

	hidden := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%6d  %8s  %s%v%s\n", r.Base, "-", ui.ColorError(), r.Err, ui.ColorReset())
			continue
		}
		if !verbose && !r.Outcome.Found() {
			hidden++
			continue
		}
		order := "-"
		if r.Outcome.Order != 0 {
			order = format.FormatUint(r.Outcome.Order)
		}
		color := ui.ColorSecondary()
		switch r.Outcome.Kind {
		case numtheory.SharedFactor:
			color = ui.ColorFactor()
		case numtheory.FactorPair:
			color = ui.ColorEligible()
		}
		detail := FormatFactors(r.Outcome.Factors)
		if !r.Outcome.Found() {
			detail = r.Outcome.Reason.String()
		}
		fmt.Fprintf(w, "%s%6d%s  %8s  %-14s  %s\n", color, r.Base, ui.ColorReset(), order, r.Outcome.Kind, detail)
	}

	eligible := results.Eligible()
	fmt.Fprintf(w, "\n%d of %d bases find a factor", len(eligible), len(results))
	if hidden > 0 {
		fmt.Fprintf(w, " (%d hidden, use -v to list them)", hidden)
	}
	fmt.Fprintln(w, ".")
}

// DisplayQuietScan prints the eligible bases on one line.
func DisplayQuietScan(results orchestration.ScanResults, w io.Writer) {
	eligible := results.Eligible()
	bases := make([]uint64, len(eligible))
	for i, r := range eligible {
		bases[i] = r.Base
	}
	fmt.Fprintln(w, FormatFactors(bases))
}

package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/shorcalc/internal/config"
	"github.com/agbru/shorcalc/internal/format"
	"github.com/agbru/shorcalc/internal/numtheory"
	"github.com/agbru/shorcalc/internal/ui"
)

// PrintExecutionConfig prints the run parameters and the host environment.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Modulus N=%s%s%s, base k=%s%d%s, timeout %s%s%s.\n",
		ui.ColorPrimary(), format.FormatUint(cfg.N), ui.ColorReset(),
		ui.ColorPrimary(), cfg.Base, ui.ColorReset(),
		ui.ColorWarning(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorInfo(), runtime.NumCPU(), ui.ColorReset(), ui.ColorInfo(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode announces whether one finder runs or several are
// compared.
func PrintExecutionMode(finders []numtheory.OrderFinder, out io.Writer) {
	var mode string
	switch len(finders) {
	case 0:
		mode = "no order finder selected"
	case 1:
		mode = fmt.Sprintf("single run with %s%s%s", ui.ColorSuccess(), finders[0].Name(), ui.ColorReset())
	default:
		mode = fmt.Sprintf("parallel comparison of %d order finders", len(finders))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", mode)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}

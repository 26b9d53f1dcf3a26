package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/agbru/shorcalc/internal/deck"
	"github.com/agbru/shorcalc/internal/ui"
)

// Slide rules span the terminal, clamped to these widths.
const (
	minRuleWidth = 48
	maxRuleWidth = 80
)

// DisplayDeck prints the content of every slide as plain text.
func DisplayDeck(slides []deck.Slide, w io.Writer) {
	rule := strings.Repeat("─", min(max(ui.TerminalWidth(os.Stdout.Fd(), minRuleWidth), minRuleWidth), maxRuleWidth))
	for i, s := range slides {
		fmt.Fprintf(w, "\n%s[%d/%d] %s%s\n", ui.ColorBold(), i+1, len(slides), s.Title, ui.ColorReset())
		fmt.Fprintln(w, rule)
		for _, line := range s.Lines {
			if slices.Contains(s.Highlights, line) {
				line = ui.ColorEligible() + line + ui.ColorReset()
			}
			fmt.Fprintf(w, "  %s\n", line)
		}
		if s.Keys != nil {
			fmt.Fprintf(w, "  Public key  = %s\n", s.Keys.Public)
			fmt.Fprintf(w, "  Private key = %s\n", s.Keys.Private)
			fmt.Fprintf(w, "  derived from %s%s%s\n", ui.ColorEligible(), s.Keys.Relation, ui.ColorReset())
		}
		for _, c := range s.Curves {
			displayCurve(c, w)
		}
		if s.Grid != nil {
			displayGrid(s.Grid, w)
		}
		if s.Example != nil {
			displayExample(s.Example, w)
		}
	}
}

// displayCurve prints the curve at integer abscissas only.
func displayCurve(c deck.Curve, w io.Writer) {
	fmt.Fprintf(w, "  %s:", c.Label)
	for _, p := range c.Points {
		if p.X == float64(int(p.X)) {
			fmt.Fprintf(w, " %.2f", p.Y)
		}
	}
	fmt.Fprintln(w)
}

func displayGrid(g *deck.Grid, w io.Writer) {
	for row := 0; row < g.Rows; row++ {
		fmt.Fprint(w, " ")
		for _, c := range g.Cells {
			if c.Row != row {
				continue
			}
			color, mark := "", " "
			switch {
			case c.PrimeFactor:
				color, mark = ui.ColorFactor(), "*"
			case c.Eligible:
				color, mark = ui.ColorEligible(), "+"
			}
			fmt.Fprintf(w, " %s%4d%s%s", color, c.Value, mark, ui.ColorReset())
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "  * prime factor of N   + base that finds a factor\n")
}

func displayExample(ex *deck.WorkedExample, w io.Writer) {
	fmt.Fprintf(w, "\n  Example: a = %s%d%s\n", ui.ColorEligible(), ex.Base, ui.ColorReset())
	fmt.Fprintf(w, "  K = gcd(%d, %d) = %d\n", ex.Base, ex.N, ex.GCD)
	if ex.Order != 0 {
		fmt.Fprintf(w, "  r = %s%d%s\n", ui.ColorEligible(), ex.Order, ui.ColorReset())
	}
	if ex.Equation != "" {
		fmt.Fprintf(w, "  %s%s%s\n", ui.ColorError(), ex.Equation, ui.ColorReset())
	} else {
		fmt.Fprintf(w, "  no factor (%s)\n", ex.Outcome.Reason)
	}
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agbru/shorcalc/internal/format"
	"github.com/agbru/shorcalc/internal/numtheory"
	"github.com/agbru/shorcalc/internal/orchestration"
	"github.com/agbru/shorcalc/internal/progress"
	"github.com/agbru/shorcalc/internal/ui"
)

// REPLConfig holds the settings of an interactive session.
type REPLConfig struct {
	// DefaultAlgo names the initial order finder.
	DefaultAlgo string
	// N is the initial modulus.
	N uint64
	// Timeout bounds each command.
	Timeout time.Duration
	// Concurrency bounds the parallel bases of the scan command.
	Concurrency int
}

// REPL is an interactive session over the number theory helpers.
type REPL struct {
	config      REPLConfig
	factory     numtheory.Factory
	currentAlgo string
	n           uint64
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a session reading from stdin and writing to stdout.
// When DefaultAlgo is empty, "all" or unknown, the first registered finder
// is used.
func NewREPL(factory numtheory.Factory, config REPLConfig) *REPL {
	algo := config.DefaultAlgo
	if _, err := factory.Get(algo); err != nil {
		if names := factory.List(); len(names) > 0 {
			algo = names[0]
		}
	}
	n := config.N
	if n < 2 {
		n = 127 * 59
	}
	return &REPL{
		config:      config,
		factory:     factory,
		currentAlgo: algo,
		n:           n,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// SetInput replaces the input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput replaces the output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start runs the session until "exit" or end of input.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorSuccess()+"shor> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorError(), err, ui.ColorReset())
			return
		}
		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(line) {
				return
			}
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════╗%s\n", ui.ColorPrimary(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s   %sShor's algorithm, classical side: REPL%s     %s║%s\n",
		ui.ColorPrimary(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorPrimary(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════╝%s\n\n", ui.ColorPrimary(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	cmds := []struct{ usage, help string }{
		{"factor <k> [N]", "Run the factoring step with base k"},
		{"order <k> [N]", "Multiplicative order of k modulo N"},
		{"prime <n>", "Primality test"},
		{"primes <hi> | <lo> <hi>", "List primes in [lo, hi)"},
		{"scan [limit]", "Try every prime base below limit"},
		{"n <N>", "Set the default modulus"},
		{"algo <name>", "Change order finder (" + strings.Join(r.factory.List(), ", ") + ")"},
		{"list", "List order finders"},
		{"status", "Show the session settings"},
		{"help", "Show this help"},
		{"exit", "Leave the session"},
	}
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, c := range cmds {
		fmt.Fprintf(r.out, "  %s%-24s%s %s\n", ui.ColorWarning(), c.usage, ui.ColorReset(), c.help)
	}
}

// processCommand runs one command line and reports whether the session
// continues.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "factor", "f":
		r.cmdFactor(args)
	case "order", "r":
		r.cmdOrder(args)
	case "prime", "p":
		r.cmdPrime(args)
	case "primes":
		r.cmdPrimes(args)
	case "scan", "s":
		r.cmdScan(args)
	case "n":
		r.cmdModulus(args)
	case "algo", "a":
		r.cmdAlgo(args)
	case "list", "ls":
		r.cmdList()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorSuccess(), ui.ColorReset())
		return false
	default:
		// A bare number is a factoring attempt with that base.
		if _, err := strconv.ParseUint(cmd, 10, 64); err == nil {
			r.cmdFactor(parts)
			return true
		}
		r.errorf("Unknown command: %s", cmd)
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorWarning(), ui.ColorReset())
	}
	return true
}

func (r *REPL) errorf(msg string, a ...any) {
	fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorError(), fmt.Sprintf(msg, a...), ui.ColorReset())
}

// parseUints parses between minArgs and maxArgs unsigned arguments.
func (r *REPL) parseUints(args []string, minArgs, maxArgs int, usage string) ([]uint64, bool) {
	if len(args) < minArgs || len(args) > maxArgs {
		r.errorf("Usage: %s", usage)
		return nil, false
	}
	vals := make([]uint64, len(args))
	for i, a := range args {
		v, err := strconv.ParseUint(a, 10, 64)
		if err != nil {
			r.errorf("Invalid value: %s", a)
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}

// operands returns k and N, N defaulting to the session modulus.
func (r *REPL) operands(args []string, usage string) (k, n uint64, ok bool) {
	vals, ok := r.parseUints(args, 1, 2, usage)
	if !ok {
		return 0, 0, false
	}
	n = r.n
	if len(vals) == 2 {
		n = vals[1]
	}
	if n < 2 {
		r.errorf("N must be at least 2")
		return 0, 0, false
	}
	return vals[0], n, true
}

func (r *REPL) finder() (numtheory.OrderFinder, bool) {
	f, err := r.factory.Get(r.currentAlgo)
	if err != nil {
		r.errorf("Order finder not found: %s", r.currentAlgo)
		return nil, false
	}
	return f, true
}

// findOrder runs the current finder with a spinner.
func (r *REPL) findOrder(ctx context.Context, f numtheory.OrderFinder, k, n uint64) (uint64, time.Duration, error) {
	progressChan := make(chan progress.ProgressUpdate, 10)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, r.out)

	start := time.Now()
	order, err := f.FindOrder(ctx, progressChan, 0, k, n)
	elapsed := time.Since(start)
	close(progressChan)
	wg.Wait()
	return order, elapsed, err
}

func (r *REPL) cmdFactor(args []string) {
	k, n, ok := r.operands(args, "factor <k> [N]")
	if !ok {
		return
	}
	if out, decided := numtheory.Precheck(k, n); decided {
		DisplayOutcome(out, 0, true, r.out)
		return
	}
	f, ok := r.finder()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()
	order, elapsed, err := r.findOrder(ctx, f, k, n)
	if err != nil {
		r.errorf("Error: %v", err)
		return
	}
	DisplayOutcome(numtheory.FactorFromOrder(k, n, order), elapsed, true, r.out)
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdOrder(args []string) {
	k, n, ok := r.operands(args, "order <k> [N]")
	if !ok {
		return
	}
	f, ok := r.finder()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()
	order, elapsed, err := r.findOrder(ctx, f, k, n)
	if err != nil {
		r.errorf("Error: %v", err)
		return
	}
	DisplayOrder(k, n, order, elapsed, r.out)
}

func (r *REPL) cmdPrime(args []string) {
	vals, ok := r.parseUints(args, 1, 1, "prime <n>")
	if !ok {
		return
	}
	if numtheory.IsPrime(vals[0]) {
		fmt.Fprintf(r.out, "%d is %sprime%s\n", vals[0], ui.ColorSuccess(), ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "%d is %snot prime%s\n", vals[0], ui.ColorWarning(), ui.ColorReset())
}

// maxListedPrimes bounds the output of the primes command.
const maxListedPrimes = 1000

func (r *REPL) cmdPrimes(args []string) {
	vals, ok := r.parseUints(args, 1, 2, "primes <hi> | <lo> <hi>")
	if !ok {
		return
	}
	lo, hi := uint64(2), vals[0]
	if len(vals) == 2 {
		lo, hi = vals[0], vals[1]
	}
	primes := numtheory.Primes(lo, hi)
	if len(primes) > maxListedPrimes {
		r.errorf("%d primes in [%d, %d), narrow the range (at most %d)", len(primes), lo, hi, maxListedPrimes)
		return
	}
	fmt.Fprintf(r.out, "%d primes in [%d, %d): %s\n", len(primes), lo, hi, FormatFactors(primes))
}

func (r *REPL) cmdScan(args []string) {
	vals, ok := r.parseUints(args, 0, 1, "scan [limit]")
	if !ok {
		return
	}
	limit := uint64(128)
	if len(vals) == 1 {
		limit = vals[0]
	}
	f, ok := r.finder()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()
	results, err := orchestration.Scan(ctx, f, r.n, orchestration.PrimeBases(limit),
		orchestration.ScanOptions{Concurrency: r.config.Concurrency})
	if err != nil {
		r.errorf("Error: %v", err)
		return
	}
	DisplayScan(results, r.n, false, r.out)
}

func (r *REPL) cmdModulus(args []string) {
	vals, ok := r.parseUints(args, 1, 1, "n <N>")
	if !ok {
		return
	}
	if vals[0] < 2 {
		r.errorf("N must be at least 2")
		return
	}
	r.n = vals[0]
	fmt.Fprintf(r.out, "Modulus set to N=%s%s%s\n", ui.ColorPrimary(), format.FormatUint(r.n), ui.ColorReset())
}

func (r *REPL) cmdAlgo(args []string) {
	if len(args) != 1 {
		r.errorf("Usage: algo <name>")
		fmt.Fprintf(r.out, "Available order finders: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	name := strings.ToLower(args[0])
	f, err := r.factory.Get(name)
	if err != nil {
		r.errorf("Unknown order finder: %s", name)
		fmt.Fprintf(r.out, "Available order finders: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	r.currentAlgo = name
	fmt.Fprintf(r.out, "Order finder changed to: %s%s%s\n", ui.ColorSuccess(), f.Name(), ui.ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable order finders:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.factory.List() {
		f, _ := r.factory.Get(name)
		marker := "  "
		if name == r.currentAlgo {
			marker = ui.ColorSuccess() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-12s%s - %s\n", marker, ui.ColorWarning(), name, ui.ColorReset(), f.Name())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent settings:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Modulus N:     %s%s%s\n", ui.ColorInfo(), format.FormatUint(r.n), ui.ColorReset())
	fmt.Fprintf(r.out, "  Order finder:  %s%s%s\n", ui.ColorInfo(), r.currentAlgo, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:       %s%s%s\n", ui.ColorInfo(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintln(r.out)
}

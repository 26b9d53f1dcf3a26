// Package app wires configuration, order finders and the presentation
// layers into the shorcalc command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/shorcalc/internal/cli"
	"github.com/agbru/shorcalc/internal/config"
	apperrors "github.com/agbru/shorcalc/internal/errors"
	"github.com/agbru/shorcalc/internal/logging"
	"github.com/agbru/shorcalc/internal/numtheory"
	"github.com/agbru/shorcalc/internal/orchestration"
	"github.com/agbru/shorcalc/internal/server"
	"github.com/agbru/shorcalc/internal/tui"
	"github.com/agbru/shorcalc/internal/ui"
)

// Application is one shorcalc invocation.
type Application struct {
	Config    config.AppConfig
	Factory   numtheory.Factory
	ErrWriter io.Writer
	// In feeds the REPL; it defaults to os.Stdin.
	In io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets the order finder registry.
func WithFactory(f numtheory.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput sets the REPL input.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// New parses args (program name first) into an Application.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = numtheory.GlobalFactory()
	}

	programName := "shorcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Config = config.ApplyAdaptiveDefaults(cfg)
	return app, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	level := zerolog.InfoLevel
	if a.Config.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.NoColor)

	switch {
	case a.Config.Server:
		return a.runServer(ctx)
	case a.Config.TUI:
		return a.runTUI(ctx)
	case a.Config.Interactive:
		return a.runREPL(out)
	case a.Config.Deck:
		return a.runDeck(ctx, out)
	case a.Config.Scan:
		return a.runScan(ctx, out)
	default:
		return a.runFactor(ctx, out)
	}
}

// withLifecycle bounds ctx by the configured timeout and by SIGINT/SIGTERM.
func (a *Application) withLifecycle(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServer serves the HTTP API until SIGINT or SIGTERM. The timeout bounds
// each request, not the server.
func (a *Application) runServer(ctx context.Context) int {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := logging.NewLogger(a.ErrWriter, "server")
	srv := server.NewServer(a.Factory, a.Config, server.WithLogger(logger))
	if err := srv.Start(ctx); err != nil {
		logger.Error("server failed", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runTUI launches the sweep dashboard with the first selected finder.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, cancel := a.withLifecycle(ctx)
	defer cancel()

	finders := orchestration.GetFindersToRun(a.Config.Algo, a.Factory)
	return tui.Run(ctx, finders[0], a.Config, Version)
}

func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		DefaultAlgo: a.Config.Algo,
		N:           a.Config.N,
		Timeout:     a.Config.Timeout,
		Concurrency: a.Config.Concurrency,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// IsHelpError reports whether err comes from -h or --help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

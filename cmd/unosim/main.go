package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"V" help:"Show version"`
	Verbose  bool             `short:"v" help:"Enable debug logging"`
	NoColor  bool             `help:"Disable coloured output"`
	Play     PlayCmd          `cmd:"" help:"Play a single game and print every turn"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate a batch of games and report statistics"`
	Watch    WatchCmd         `cmd:"" help:"Watch a single game turn by turn in the terminal"`
}

// Globals is bound into every command's Run method
type Globals struct {
	Context context.Context
	Logger  *log.Logger
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("unosim"),
		kong.Description("Deterministic simulator for a rule-driven UNO-style card game"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := ctx.Run(&Globals{
		Context: sigCtx,
		Logger:  newLogger(cli.Verbose),
	})
	ctx.FatalIfErrorf(err)
}

func newLogger(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
}

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/unosim/internal/game"
	"github.com/lox/unosim/internal/tui"
)

// WatchCmd steps a single game in a full-screen viewer
type WatchCmd struct {
	Players   int           `short:"p" default:"4" help:"Number of players"`
	Seed      int64         `short:"s" default:"1234" help:"Shuffle seed"`
	HandSize  int           `default:"7" help:"Cards dealt to each player"`
	MaxTurns  int           `default:"1000" help:"Stop after this many turns (0 = no limit)"`
	Reshuffle bool          `help:"Shuffle the discard pile back into an empty deck"`
	Interval  time.Duration `short:"i" default:"500ms" help:"Delay between turns"`
	Paused    bool          `help:"Start paused and step with n"`
	LogFile   string        `type:"path" help:"Write debug logs to this file"`
}

func (c *WatchCmd) Run(g *Globals) error {
	// The viewer owns the terminal, so logs go to a file or nowhere
	logger := log.NewWithOptions(io.Discard, log.Options{})
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{
			Level:           log.DebugLevel,
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
		})
	}

	engine, err := game.NewEngine(c.Players,
		game.WithSeed(c.Seed),
		game.WithHandSize(c.HandSize),
		game.WithReshuffle(c.Reshuffle),
		game.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := engine.Initialize(); err != nil {
		return err
	}

	model := tui.NewWatchModel(engine, logger, tui.Options{
		Interval: c.Interval,
		MaxTurns: c.MaxTurns,
		Paused:   c.Paused,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(g.Context))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}

	g.Logger.Info("Watch finished", "seed", c.Seed, "turns", engine.Turns(), "winner", engine.Winner())
	return model.Err()
}

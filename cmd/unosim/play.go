package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/unosim/internal/fileutil"
	"github.com/lox/unosim/internal/game"
	"github.com/lox/unosim/internal/tui"
)

// PlayCmd plays one game and prints the state after every turn
type PlayCmd struct {
	Players    int    `short:"p" default:"2" help:"Number of players"`
	Seed       int64  `short:"s" default:"1234" help:"Shuffle seed"`
	HandSize   int    `default:"7" help:"Cards dealt to each player"`
	MaxTurns   int    `default:"1000" help:"Stop after this many turns (0 = no limit)"`
	Reshuffle  bool   `help:"Shuffle the discard pile back into an empty deck"`
	Check      bool   `help:"Verify the card census after every turn"`
	Quiet      bool   `short:"q" help:"Only print the state lines"`
	Transcript string `type:"path" help:"Also write a plain-text transcript to this file"`
}

func (c *PlayCmd) Run(g *Globals) error {
	return c.run(g.Context, g.Logger, os.Stdout)
}

func (c *PlayCmd) run(ctx context.Context, logger *log.Logger, out io.Writer) error {
	bus := game.NewEventBus()
	engine, err := game.NewEngine(c.Players,
		game.WithSeed(c.Seed),
		game.WithHandSize(c.HandSize),
		game.WithReshuffle(c.Reshuffle),
		game.WithInvariantChecks(c.Check),
		game.WithEventBus(bus),
		game.WithLogger(logger))
	if err != nil {
		return err
	}

	var transcript []string
	emit := func(styled, plain string) {
		fmt.Fprintln(out, styled)
		transcript = append(transcript, plain)
	}

	if !c.Quiet {
		styled := game.NewEventFormatter(game.FormattingOptions{ShowRules: true, CardStyle: tui.CardStyle})
		plain := game.NewEventFormatter(game.FormattingOptions{ShowRules: true})
		bus.Subscribe(game.EventSubscriberFunc(func(event game.GameEvent) {
			if line := styled.Format(event); line != "" {
				emit("  "+line, "  "+plain.Format(event))
			}
		}))
	}

	if err := engine.Initialize(); err != nil {
		return err
	}
	logger.Info("Dealt game", "players", c.Players, "seed", c.Seed, "deck", engine.DeckSize(), "top", engine.Top().String())

	printState := func() error {
		state, err := engine.State()
		if err != nil {
			return err
		}
		emit(state, state)
		return nil
	}

	if err := printState(); err != nil {
		return err
	}
	for !engine.IsGameOver() && !engine.Stalled() && (c.MaxTurns == 0 || engine.Turns() < c.MaxTurns) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := engine.PlayTurn(); err != nil {
			return err
		}
		if err := printState(); err != nil {
			return err
		}
	}

	summary := gameSummary(engine)
	emit(summary, summary)
	logger.Info("Game finished", "winner", engine.Winner(), "turns", engine.Turns())

	if c.Transcript != "" {
		err := fileutil.WriteAtomic(c.Transcript, 0o644, func(w io.Writer) error {
			for _, line := range transcript {
				if _, err := fmt.Fprintln(w, line); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("writing transcript: %w", err)
		}
		logger.Info("Wrote transcript", "file", c.Transcript, "lines", len(transcript))
	}
	return nil
}

func gameSummary(engine *game.Engine) string {
	switch {
	case engine.IsGameOver():
		return fmt.Sprintf("Winner: Player %d after %d turns", engine.Winner(), engine.Turns())
	case engine.Stalled():
		return fmt.Sprintf("No winner: every player passed on an empty deck after %d turns", engine.Turns())
	default:
		return fmt.Sprintf("No winner after %d turns", engine.Turns())
	}
}

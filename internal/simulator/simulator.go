package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/unosim/internal/game"
	"github.com/lox/unosim/internal/randutil"
	"github.com/lox/unosim/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// ErrGameTimeout is the cancellation cause of a game that ran past Config.Timeout
var ErrGameTimeout = errors.New("game timed out")

// DefaultMaxTurns bounds games that stop making progress
const DefaultMaxTurns = 5000

// Config holds configuration for running simulations
type Config struct {
	Players   int
	Games     int
	Seed      int64
	HandSize  int
	MaxTurns  int
	Workers   int
	Timeout   time.Duration // Per game, zero disables
	Reshuffle bool
	Logger    *log.Logger
	Clock     quartz.Clock

	// OnEvent, if set, receives every event of every game. It is called
	// from worker goroutines and must be safe for concurrent use.
	OnEvent func(index int, event game.GameEvent)
}

// Simulator runs batches of seeded games
type Simulator struct {
	config Config
	logger *log.Logger
	clock  quartz.Clock
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.MaxTurns <= 0 {
		config.MaxTurns = DefaultMaxTurns
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.HandSize <= 0 {
		config.HandSize = game.DefaultHandSize
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	return &Simulator{
		config: config,
		logger: config.Logger.WithPrefix("simulator"),
		clock:  config.Clock,
	}
}

// Run plays every game in the batch and returns the aggregate statistics
// along with the per-game results in game order. The results do not depend
// on the number of workers.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, []statistics.GameResult, error) {
	results := make([]statistics.GameResult, s.config.Games)
	start := s.clock.Now()

	s.logger.Info("Starting simulation",
		"games", s.config.Games,
		"players", s.config.Players,
		"seed", s.config.Seed,
		"workers", s.config.Workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := 0; i < s.config.Games; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			result, err := s.PlayGame(gctx, i)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, result.Seed, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	// errgroup only reports worker errors; a parent cancelled before the
	// first game would otherwise look like an empty success.
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	stats := &statistics.Statistics{}
	for _, result := range results {
		stats.Add(result)
	}

	if err := stats.Validate(); err != nil {
		return nil, nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Info("Simulation complete",
		"games", stats.Games,
		"finished", stats.Finished,
		"stalled", stats.Stalled,
		"capped", stats.Capped,
		"elapsed", s.clock.Now().Sub(start).Round(time.Millisecond))

	return stats, results, nil
}

// PlayGame plays the index'th game of the batch
func (s *Simulator) PlayGame(ctx context.Context, index int) (statistics.GameResult, error) {
	seed := randutil.Derive(s.config.Seed, index)
	result := statistics.GameResult{
		Seed:    seed,
		Players: s.config.Players,
		Winner:  -1,
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	if s.config.Timeout > 0 {
		timer := s.clock.AfterFunc(s.config.Timeout, func() {
			cancel(ErrGameTimeout)
		})
		defer timer.Stop()
	}

	tally := &tally{result: &result}
	bus := game.NewEventBus()
	bus.Subscribe(tally)
	if s.config.OnEvent != nil {
		bus.Subscribe(game.EventSubscriberFunc(func(event game.GameEvent) {
			s.config.OnEvent(index, event)
		}))
	}

	engine, err := game.NewEngine(s.config.Players,
		game.WithSeed(seed),
		game.WithHandSize(s.config.HandSize),
		game.WithReshuffle(s.config.Reshuffle),
		game.WithEventBus(bus),
		game.WithLogger(s.config.Logger))
	if err != nil {
		return result, err
	}
	if err := engine.Initialize(); err != nil {
		return result, err
	}

	for !engine.IsGameOver() && !engine.Stalled() && engine.Turns() < s.config.MaxTurns {
		if ctx.Err() != nil {
			return result, context.Cause(ctx)
		}
		if err := engine.PlayTurn(); err != nil {
			return result, err
		}
	}

	result.Winner = engine.Winner()
	result.Turns = engine.Turns()
	result.Stalled = !engine.IsGameOver() && engine.Stalled()
	result.Capped = !engine.IsGameOver() && !result.Stalled

	s.logger.Debug("Game finished",
		"index", index,
		"seed", seed,
		"winner", result.Winner,
		"turns", result.Turns,
		"stalled", result.Stalled,
		"capped", result.Capped)

	return result, nil
}

// tally counts the events of one game into its result
type tally struct {
	result *statistics.GameResult
}

func (t *tally) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.UnoEvent:
		t.result.UnoCalls++
	case game.CardDrawnEvent:
		t.result.CardsDrawn++
	case game.SkipEvent:
		t.result.Skips++
	case game.ReverseEvent:
		t.result.Reverses++
	case game.DrawTwoEvent:
		t.result.DrawTwos++
		t.result.CardsDrawn += e.Drawn
	case game.ReshuffleEvent:
		t.result.Reshuffles++
	}
}

// RunSimulation is a convenience function that runs a batch with default settings
func RunSimulation(ctx context.Context, players, games int, seed int64, logger *log.Logger) (*statistics.Statistics, error) {
	stats, _, err := New(Config{
		Players: players,
		Games:   games,
		Seed:    seed,
		Logger:  logger,
	}).Run(ctx)
	return stats, err
}

package simulator

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/unosim/internal/game"
	"github.com/lox/unosim/internal/randutil"
	"github.com/lox/unosim/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

func TestNewAppliesDefaults(t *testing.T) {
	t.Parallel()

	sim := New(Config{Players: 4, Games: 10})
	assert.Equal(t, DefaultMaxTurns, sim.config.MaxTurns)
	assert.Equal(t, 1, sim.config.Workers)
	assert.Equal(t, game.DefaultHandSize, sim.config.HandSize)
	assert.NotNil(t, sim.logger)
	assert.NotNil(t, sim.clock)
}

func TestRunProducesConsistentStatistics(t *testing.T) {
	t.Parallel()

	sim := New(Config{
		Players:  4,
		Games:    50,
		Seed:     1234,
		MaxTurns: 2000,
		Workers:  4,
		Logger:   quietLogger(),
	})

	stats, results, err := sim.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, stats.Validate())
	require.Len(t, results, 50)

	assert.Equal(t, 50, stats.Games)
	assert.Equal(t, 50, stats.Finished+stats.Stalled+stats.Capped)

	for i, result := range results {
		assert.Equal(t, randutil.Derive(1234, i), result.Seed, "game %d seed", i)
		assert.Equal(t, 4, result.Players)
		assert.Positive(t, result.Turns)
		assert.LessOrEqual(t, result.Turns, 2000)
		if result.Finished() {
			assert.Less(t, result.Winner, 4)
			assert.False(t, result.Stalled)
			assert.False(t, result.Capped)
		} else {
			assert.Equal(t, -1, result.Winner)
			assert.NotEqual(t, result.Stalled, result.Capped, "game %d must be exactly one of stalled or capped", i)
		}
	}
}

func TestRunIsIndependentOfWorkerCount(t *testing.T) {
	t.Parallel()

	run := func(workers int) []statistics.GameResult {
		sim := New(Config{
			Players: 3,
			Games:   40,
			Seed:    99,
			Workers: workers,
			Logger:  quietLogger(),
		})
		_, results, err := sim.Run(context.Background())
		require.NoError(t, err)
		return results
	}

	serial := run(1)
	assert.Equal(t, serial, run(4))
	assert.Equal(t, serial, run(16))
}

func TestPlayGameMatchesEngine(t *testing.T) {
	t.Parallel()

	sim := New(Config{Players: 2, Games: 1, Seed: 7, Logger: quietLogger()})
	result, err := sim.PlayGame(context.Background(), 3)
	require.NoError(t, err)

	engine, err := game.NewEngine(2, game.WithSeed(randutil.Derive(7, 3)))
	require.NoError(t, err)
	require.NoError(t, engine.Initialize())
	for !engine.IsGameOver() && !engine.Stalled() && engine.Turns() < DefaultMaxTurns {
		require.NoError(t, engine.PlayTurn())
	}

	assert.Equal(t, engine.Winner(), result.Winner)
	assert.Equal(t, engine.Turns(), result.Turns)
}

func TestPlayGameCountsEvents(t *testing.T) {
	t.Parallel()

	var uno, draws, skips, reverses, drawTwos atomic.Int64
	sim := New(Config{
		Players: 4,
		Games:   1,
		Seed:    1234,
		Logger:  quietLogger(),
		OnEvent: func(_ int, event game.GameEvent) {
			switch e := event.(type) {
			case game.UnoEvent:
				uno.Add(1)
			case game.CardDrawnEvent:
				draws.Add(1)
			case game.SkipEvent:
				skips.Add(1)
			case game.ReverseEvent:
				reverses.Add(1)
			case game.DrawTwoEvent:
				drawTwos.Add(1)
				draws.Add(int64(e.Drawn))
			}
		},
	})

	result, err := sim.PlayGame(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, int(uno.Load()), result.UnoCalls)
	assert.Equal(t, int(draws.Load()), result.CardsDrawn)
	assert.Equal(t, int(skips.Load()), result.Skips)
	assert.Equal(t, int(reverses.Load()), result.Reverses)
	assert.Equal(t, int(drawTwos.Load()), result.DrawTwos)
	assert.Zero(t, result.Reshuffles)
}

func TestTurnCapMarksGameCapped(t *testing.T) {
	t.Parallel()

	sim := New(Config{Players: 4, Games: 5, Seed: 1, MaxTurns: 3, Logger: quietLogger()})
	stats, results, err := sim.Run(context.Background())
	require.NoError(t, err)

	// Nobody can empty a seven card hand in three turns.
	assert.Equal(t, 5, stats.Capped)
	for _, result := range results {
		assert.True(t, result.Capped)
		assert.Equal(t, 3, result.Turns)
	}
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim := New(Config{Players: 4, Games: 10, Logger: quietLogger()})
	_, _, err := sim.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGameTimeout(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mockClock := quartz.NewMock(t)
	sim := New(Config{
		Players: 4,
		Games:   1,
		Seed:    1234,
		Timeout: time.Second,
		Logger:  quietLogger(),
		Clock:   mockClock,
		OnEvent: func(_ int, event game.GameEvent) {
			// Expire the game's timer from inside its second turn
			if event.EventType() == game.EventTypeTurnStart && event.Turn() == 2 {
				mockClock.Advance(time.Second).MustWait(ctx)
			}
		},
	})

	_, _, err := sim.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGameTimeout)
	assert.Contains(t, err.Error(), "game 0")
}

func TestReshuffleRuns(t *testing.T) {
	t.Parallel()

	sim := New(Config{
		Players:   4,
		Games:     20,
		Seed:      1234,
		Reshuffle: true,
		Workers:   2,
		Logger:    quietLogger(),
	})

	stats, _, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20, stats.Games)
}

func TestRunSimulation(t *testing.T) {
	t.Parallel()

	stats, err := RunSimulation(context.Background(), 2, 5, 1234, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Games)
	require.Len(t, stats.Seats, 2)
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/unosim/internal/config"
	"github.com/lox/unosim/internal/fileutil"
	"github.com/lox/unosim/internal/runid"
	"github.com/lox/unosim/internal/simulator"
	"github.com/lox/unosim/internal/statistics"
)

// SimulateCmd runs a batch of games. Flags override the config file.
type SimulateCmd struct {
	Config    string  `short:"c" type:"path" default:"unosim.hcl" help:"HCL configuration file (defaults apply when missing)"`
	Players   *int    `short:"p" help:"Number of players"`
	Games     *int    `short:"n" help:"Number of games to simulate"`
	Seed      *int64  `short:"s" help:"Base seed; game i uses a seed derived from it"`
	HandSize  *int    `help:"Cards dealt to each player"`
	MaxTurns  *int    `help:"Turn limit per game"`
	Workers   *int    `short:"w" help:"Games played in parallel"`
	Timeout   *string `help:"Per-game timeout, e.g. 10s"`
	Reshuffle bool    `help:"Shuffle the discard pile back into an empty deck"`
	Report    *string `help:"Write a JSON report to this file"`
	Results   bool    `help:"Include every game's result in the JSON report"`
	Replay    *string `help:"Replay the longest game into this transcript file"`
}

// report is the JSON document written by --report
type report struct {
	RunID       string                    `json:"run_id"`
	Version     string                    `json:"version"`
	Config      config.SimulationSettings `json:"config"`
	Elapsed     string                    `json:"elapsed"`
	Games       int                       `json:"games"`
	Finished    int                       `json:"finished"`
	Stalled     int                       `json:"stalled"`
	Capped      int                       `json:"capped"`
	MeanTurns   float64                   `json:"mean_turns"`
	MedianTurns float64                   `json:"median_turns"`
	StdDevTurns float64                   `json:"stddev_turns"`
	P90Turns    float64                   `json:"p90_turns"`
	Longest     int                       `json:"longest_game"`
	LongestSeed int64                     `json:"longest_seed"`
	Shortest    int                       `json:"shortest_game"`
	Seats       []seatReport              `json:"seats"`
	UnoCalls    int                       `json:"uno_calls"`
	CardsDrawn  int                       `json:"cards_drawn"`
	Skips       int                       `json:"skips"`
	Reverses    int                       `json:"reverses"`
	DrawTwos    int                       `json:"draw_twos"`
	Reshuffles  int                       `json:"reshuffles"`
	Results     []statistics.GameResult   `json:"results,omitempty"`
}

type seatReport struct {
	Seat      int     `json:"seat"`
	Wins      int     `json:"wins"`
	WinRate   float64 `json:"win_rate"`
	MeanTurns float64 `json:"mean_turns_to_win"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	logger := g.Logger
	if logger.GetLevel() != log.DebugLevel {
		level, err := log.ParseLevel(cfg.Output.LogLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
	}
	return c.run(g.Context, cfg, logger, quartz.NewReal(), os.Stdout)
}

// loadConfig reads the config file and applies flag overrides
func (c *SimulateCmd) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}

	s := &cfg.Simulation
	override(&s.Players, c.Players)
	override(&s.Games, c.Games)
	override(&s.Seed, c.Seed)
	override(&s.HandSize, c.HandSize)
	override(&s.MaxTurns, c.MaxTurns)
	override(&s.Workers, c.Workers)
	override(&s.Timeout, c.Timeout)
	if c.Reshuffle {
		s.Reshuffle = true
	}
	override(&cfg.Output.ReportFile, c.Report)
	override(&cfg.Output.TranscriptFile, c.Replay)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func override[T any](dst *T, flag *T) {
	if flag != nil {
		*dst = *flag
	}
}

func (c *SimulateCmd) run(ctx context.Context, cfg *config.Config, logger *log.Logger, clock quartz.Clock, out io.Writer) error {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return err
	}
	s := cfg.Simulation
	id := runid.NewGenerator(clock, nil).Generate()
	logger.Info("Run", "id", id, "config", c.Config)

	start := clock.Now()
	stats, results, err := simulator.New(simulator.Config{
		Players:   s.Players,
		Games:     s.Games,
		Seed:      s.Seed,
		HandSize:  s.HandSize,
		MaxTurns:  s.MaxTurns,
		Workers:   s.Workers,
		Timeout:   timeout,
		Reshuffle: s.Reshuffle,
		Logger:    logger,
		Clock:     clock,
	}).Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	elapsed := clock.Now().Sub(start).Round(time.Millisecond)

	printSummary(out, id, s, stats, elapsed)

	if file := cfg.Output.ReportFile; file != "" {
		rep := buildReport(id, s, stats, elapsed)
		if c.Results {
			rep.Results = results
		}
		if err := writeReport(file, rep); err != nil {
			return err
		}
		logger.Info("Wrote report", "file", file)
	}

	if file := cfg.Output.TranscriptFile; file != "" {
		replay := &PlayCmd{
			Players:    s.Players,
			Seed:       stats.LongestSeed,
			HandSize:   s.HandSize,
			MaxTurns:   s.MaxTurns,
			Reshuffle:  s.Reshuffle,
			Transcript: file,
		}
		if err := replay.run(ctx, logger, io.Discard); err != nil {
			return fmt.Errorf("replaying seed %d: %w", stats.LongestSeed, err)
		}
	}
	return nil
}

func buildReport(id string, s config.SimulationSettings, stats *statistics.Statistics, elapsed time.Duration) report {
	rep := report{
		RunID:       id,
		Version:     version,
		Config:      s,
		Elapsed:     elapsed.String(),
		Games:       stats.Games,
		Finished:    stats.Finished,
		Stalled:     stats.Stalled,
		Capped:      stats.Capped,
		MeanTurns:   stats.Mean(),
		MedianTurns: stats.Median(),
		StdDevTurns: stats.StdDev(),
		P90Turns:    stats.Percentile(0.9),
		Longest:     stats.LongestGame,
		LongestSeed: stats.LongestSeed,
		Shortest:    stats.ShortestGame,
		UnoCalls:    stats.UnoCalls,
		CardsDrawn:  stats.CardsDrawn,
		Skips:       stats.Skips,
		Reverses:    stats.Reverses,
		DrawTwos:    stats.DrawTwos,
		Reshuffles:  stats.Reshuffles,
	}
	for seat, ss := range stats.Seats {
		sr := seatReport{Seat: seat, Wins: ss.Wins, WinRate: stats.WinRate(seat)}
		if ss.Wins > 0 {
			sr.MeanTurns = float64(ss.SumTurns) / float64(ss.Wins)
		}
		rep.Seats = append(rep.Seats, sr)
	}
	return rep
}

func writeReport(file string, rep report) error {
	err := fileutil.WriteAtomic(file, 0o644, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	})
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func printSummary(out io.Writer, id string, s config.SimulationSettings, stats *statistics.Statistics, elapsed time.Duration) {
	fmt.Fprintf(out, "Run %s: %d games, %d players, seed %d (%s)\n\n", id, stats.Games, s.Players, s.Seed, elapsed)

	low, high := stats.ConfidenceInterval95()
	fmt.Fprintf(out, "Finished: %d  Stalled: %d  Capped: %d\n", stats.Finished, stats.Stalled, stats.Capped)
	fmt.Fprintf(out, "Turns: mean %.1f ± %.1f (95%% CI [%.1f, %.1f]), median %.0f, p90 %.0f\n",
		stats.Mean(), stats.StdError(), low, high, stats.Median(), stats.Percentile(0.9))
	fmt.Fprintf(out, "Shortest %d, longest %d (seed %d)\n\n", stats.ShortestGame, stats.LongestGame, stats.LongestSeed)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Seat\tWins\tWin rate\t")
	for seat, ss := range stats.Seats {
		fmt.Fprintf(w, "%d\t%d\t%.1f%%\t\n", seat, ss.Wins, stats.WinRate(seat)*100)
	}
	w.Flush()

	fmt.Fprintf(out, "\nUNO calls %d, cards drawn %d, skips %d, reverses %d, draw twos %d, reshuffles %d\n",
		stats.UnoCalls, stats.CardsDrawn, stats.Skips, stats.Reverses, stats.DrawTwos, stats.Reshuffles)
}

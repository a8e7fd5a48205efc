// Package config loads simulation settings from HCL files.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/unosim/internal/deck"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config represents a complete simulation configuration
type Config struct {
	Simulation SimulationSettings `hcl:"simulation,block"`
	Output     OutputSettings     `hcl:"output,block"`
}

// SimulationSettings controls how many games are played and how
type SimulationSettings struct {
	Players   int    `hcl:"players,optional" json:"players"`
	Games     int    `hcl:"games,optional" json:"games"`
	Seed      int64  `hcl:"seed,optional" json:"seed"`
	HandSize  int    `hcl:"hand_size,optional" json:"hand_size"`
	MaxTurns  int    `hcl:"max_turns,optional" json:"max_turns"`
	Workers   int    `hcl:"workers,optional" json:"workers"`
	Timeout   string `hcl:"timeout,optional" json:"timeout"`
	Reshuffle bool   `hcl:"reshuffle,optional" json:"reshuffle"`
}

// OutputSettings controls logging and written files
type OutputSettings struct {
	LogLevel       string `hcl:"log_level,optional" json:"log_level"`
	ReportFile     string `hcl:"report_file,optional" json:"report_file"`
	TranscriptFile string `hcl:"transcript_file,optional" json:"transcript_file"`
}

const (
	defaultPlayers  = 4
	defaultGames    = 1000
	defaultSeed     = 1234
	defaultHandSize = 7
	defaultMaxTurns = 5000
	defaultWorkers  = 4
	defaultTimeout  = "10s"
	defaultLogLevel = "info"
)

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Simulation: SimulationSettings{
			Players:  defaultPlayers,
			Games:    defaultGames,
			Seed:     defaultSeed,
			HandSize: defaultHandSize,
			MaxTurns: defaultMaxTurns,
			Workers:  defaultWorkers,
			Timeout:  defaultTimeout,
		},
		Output: OutputSettings{
			LogLevel: defaultLogLevel,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes configuration from HCL source, for tests and embedded configs
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	var config Config
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	s := &c.Simulation
	if s.Players == 0 {
		s.Players = defaultPlayers
	}
	if s.Games == 0 {
		s.Games = defaultGames
	}
	if s.Seed == 0 {
		s.Seed = defaultSeed
	}
	if s.HandSize == 0 {
		s.HandSize = defaultHandSize
	}
	if s.MaxTurns == 0 {
		s.MaxTurns = defaultMaxTurns
	}
	if s.Workers == 0 {
		s.Workers = defaultWorkers
	}
	if s.Timeout == "" {
		s.Timeout = defaultTimeout
	}
	if c.Output.LogLevel == "" {
		c.Output.LogLevel = defaultLogLevel
	}
}

// Validate checks the values that cannot be defaulted
func (c *Config) Validate() error {
	s := c.Simulation
	if s.Players < 1 {
		return fmt.Errorf("%w: players must be at least 1, got %d", ErrInvalidConfig, s.Players)
	}
	if s.HandSize < 1 {
		return fmt.Errorf("%w: hand_size must be at least 1, got %d", ErrInvalidConfig, s.HandSize)
	}
	if s.Players*s.HandSize+1 > deck.Size {
		return fmt.Errorf("%w: %d players x %d cards does not fit a %d card deck",
			ErrInvalidConfig, s.Players, s.HandSize, deck.Size)
	}
	if s.Games < 1 {
		return fmt.Errorf("%w: games must be at least 1, got %d", ErrInvalidConfig, s.Games)
	}
	if s.MaxTurns < 1 {
		return fmt.Errorf("%w: max_turns must be at least 1, got %d", ErrInvalidConfig, s.MaxTurns)
	}
	if s.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, s.Workers)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	switch c.Output.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.Output.LogLevel)
	}
	return nil
}

// TimeoutDuration parses the per-game timeout
func (c *Config) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Simulation.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout: %v", ErrInvalidConfig, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, d)
	}
	return d, nil
}

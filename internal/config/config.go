// Package config loads the HCL configuration shared by the play and
// simulate commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// DefaultFile is the configuration file read when none is given
const DefaultFile = "blackjack.hcl"

// Config represents the complete configuration
type Config struct {
	Table      *TableSettings      `hcl:"table,block"`
	Log        *LogSettings        `hcl:"log,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Seats      []SeatConfig        `hcl:"seat,block"`
}

// TableSettings contains the house rules
type TableSettings struct {
	Decks        int   `hcl:"decks,optional"`
	StartingBank uint  `hcl:"starting_bank,optional"`
	DefaultBet   uint  `hcl:"default_bet,optional"`
	DealerBank   int64 `hcl:"dealer_bank,optional"`
	DealerStand  int   `hcl:"dealer_stand,optional"`
}

// LogSettings controls logging and round history
type LogSettings struct {
	Level      string `hcl:"level,optional"`
	File       string `hcl:"file,optional"`
	HistoryDir string `hcl:"history_dir,optional"`
}

// SimulationSettings are the defaults for the simulate command
type SimulationSettings struct {
	Rounds   int    `hcl:"rounds,optional"`
	Tables   int    `hcl:"tables,optional"`
	Players  int    `hcl:"players,optional"`
	Strategy string `hcl:"strategy,optional"`
	Seed     int64  `hcl:"seed,optional"`
	Timeout  string `hcl:"timeout,optional"`
	Report   string `hcl:"report,optional"`
}

// SeatConfig names a seat for the play command. Seats with a bot strategy
// are played by the computer.
type SeatConfig struct {
	Name string `hcl:"name,label"`
	Bot  string `hcl:"bot,optional"`
	Bet  uint   `hcl:"bet,optional"`
}

// Default returns the default configuration
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Table == nil {
		c.Table = &TableSettings{}
	}
	if c.Log == nil {
		c.Log = &LogSettings{}
	}
	if c.Simulation == nil {
		c.Simulation = &SimulationSettings{}
	}

	t := c.Table
	if t.Decks == 0 {
		t.Decks = deck.DefaultDecks
	}
	if t.StartingBank == 0 {
		t.StartingBank = game.DefaultStartingBank
	}
	if t.DefaultBet == 0 {
		t.DefaultBet = game.DefaultBet
	}
	if t.DealerBank == 0 {
		t.DealerBank = game.DefaultDealerBank
	}
	if t.DealerStand == 0 {
		t.DealerStand = game.DefaultDealerStand
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "blackjack.log"
	}

	s := c.Simulation
	if s.Rounds == 0 {
		s.Rounds = 10000
	}
	if s.Tables == 0 {
		s.Tables = 4
	}
	if s.Players == 0 {
		s.Players = 3
	}
	if s.Strategy == "" {
		s.Strategy = bot.StrategyBasic
	}

	for i := range c.Seats {
		if c.Seats[i].Bet == 0 {
			c.Seats[i].Bet = t.DefaultBet
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	t := c.Table
	if t.Decks < 1 || t.Decks > 8 {
		return fmt.Errorf("invalid decks: %d (want 1-8)", t.Decks)
	}
	if t.DefaultBet > t.StartingBank {
		return fmt.Errorf("default bet %d exceeds starting bank %d", t.DefaultBet, t.StartingBank)
	}
	if t.DealerBank < 0 {
		return fmt.Errorf("invalid dealer bank: %d", t.DealerBank)
	}
	if t.DealerStand < 12 || t.DealerStand > 21 {
		return fmt.Errorf("invalid dealer stand: %d (want 12-21)", t.DealerStand)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}

	s := c.Simulation
	if s.Rounds < 1 {
		return fmt.Errorf("invalid simulation rounds: %d", s.Rounds)
	}
	if s.Tables < 1 {
		return fmt.Errorf("invalid simulation tables: %d", s.Tables)
	}
	if s.Players < game.MinPlayers || s.Players > game.MaxPlayers {
		return fmt.Errorf("invalid simulation players: %d (want %d-%d)", s.Players, game.MinPlayers, game.MaxPlayers)
	}
	if err := bot.Validate(s.Strategy); err != nil {
		return fmt.Errorf("simulation strategy: %w", err)
	}
	if _, err := s.TimeoutDuration(); err != nil {
		return err
	}

	if len(c.Seats) > game.MaxPlayers {
		return fmt.Errorf("too many seats: %d (max %d)", len(c.Seats), game.MaxPlayers)
	}
	names := make(map[string]bool, len(c.Seats))
	for _, seat := range c.Seats {
		if names[seat.Name] {
			return fmt.Errorf("duplicate seat name %q", seat.Name)
		}
		names[seat.Name] = true
		if seat.Bet > t.StartingBank {
			return fmt.Errorf("seat %q: bet %d exceeds starting bank %d", seat.Name, seat.Bet, t.StartingBank)
		}
		if seat.Bot != "" {
			if err := bot.Validate(seat.Bot); err != nil {
				return fmt.Errorf("seat %q: %w", seat.Name, err)
			}
		}
	}
	return nil
}

// TimeoutDuration parses the simulation timeout; empty means none
func (s *SimulationSettings) TimeoutDuration() (time.Duration, error) {
	if s.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid simulation timeout %q", s.Timeout)
	}
	return d, nil
}

// TableOptions returns the game options for the house rules
func (c *Config) TableOptions() []game.Option {
	return []game.Option{
		game.WithDecks(c.Table.Decks),
		game.WithStartingBank(c.Table.StartingBank),
		game.WithDefaultBet(c.Table.DefaultBet),
		game.WithDealerBank(c.Table.DealerBank),
		game.WithDealerStand(c.Table.DealerStand),
	}
}

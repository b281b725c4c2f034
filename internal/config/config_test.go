package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 6, c.Table.Decks)
	assert.Equal(t, uint(1000), c.Table.StartingBank)
	assert.Equal(t, uint(10), c.Table.DefaultBet)
	assert.Equal(t, int64(100000), c.Table.DealerBank)
	assert.Equal(t, 17, c.Table.DealerStand)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "blackjack.log", c.Log.File)
	assert.Equal(t, 10000, c.Simulation.Rounds)
	assert.Equal(t, "basic", c.Simulation.Strategy)
	assert.Empty(t, c.Seats)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	c, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
table {
  decks        = 2
  default_bet  = 25
  dealer_stand = 18
}

log {
  level       = "debug"
  history_dir = "rounds"
}

simulation {
  rounds   = 500
  strategy = "threshold:16"
  seed     = 99
  timeout  = "30s"
}

seat "Alice" {}

seat "Robo" {
  bot = "basic"
  bet = 50
}
`)

	c, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, 2, c.Table.Decks)
	assert.Equal(t, uint(25), c.Table.DefaultBet)
	assert.Equal(t, uint(1000), c.Table.StartingBank, "unset values take defaults")
	assert.Equal(t, 18, c.Table.DealerStand)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "blackjack.log", c.Log.File)
	assert.Equal(t, "rounds", c.Log.HistoryDir)
	assert.Equal(t, 500, c.Simulation.Rounds)
	assert.Equal(t, 4, c.Simulation.Tables)
	assert.Equal(t, int64(99), c.Simulation.Seed)

	timeout, err := c.Simulation.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, timeout)

	require.Len(t, c.Seats, 2)
	assert.Equal(t, SeatConfig{Name: "Alice", Bet: 25}, c.Seats[0])
	assert.Equal(t, SeatConfig{Name: "Robo", Bot: "basic", Bet: 50}, c.Seats[1])
}

func TestLoadInvalidHCL(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, `table { decks = `))
	assert.ErrorContains(t, err, "failed to parse HCL file")

	_, err = Load(writeConfig(t, `table { shoes = 4 }`))
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"decks", func(c *Config) { c.Table.Decks = 9 }, "invalid decks"},
		{"bet above bank", func(c *Config) { c.Table.DefaultBet = 2000 }, "exceeds starting bank"},
		{"dealer stand", func(c *Config) { c.Table.DealerStand = 22 }, "invalid dealer stand"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"players", func(c *Config) { c.Simulation.Players = 8 }, "invalid simulation players"},
		{"strategy", func(c *Config) { c.Simulation.Strategy = "card-counter" }, "simulation strategy"},
		{"timeout", func(c *Config) { c.Simulation.Timeout = "soon" }, "invalid simulation timeout"},
		{"duplicate seat", func(c *Config) {
			c.Seats = []SeatConfig{{Name: "A", Bet: 10}, {Name: "A", Bet: 10}}
		}, "duplicate seat"},
		{"seat bot", func(c *Config) { c.Seats = []SeatConfig{{Name: "A", Bot: "nope"}} }, `seat "A"`},
		{"seat bet", func(c *Config) { c.Seats = []SeatConfig{{Name: "A", Bet: 5000}} }, "exceeds starting bank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := Default()
			tt.mutate(c)
			assert.ErrorContains(t, c.Validate(), tt.want)
		})
	}
}

func TestTableOptions(t *testing.T) {
	t.Parallel()

	c := Default()
	c.Table.StartingBank = 300
	c.Table.DefaultBet = 30
	c.Table.DealerBank = 5000

	g := game.NewGame(randutil.New(1), c.TableOptions()...)
	require.NoError(t, g.CreatePlayers(2))
	p, err := g.Player(1)
	require.NoError(t, err)
	assert.Equal(t, uint(300), p.Bank)
	assert.Equal(t, uint(30), p.Bet)
	assert.Equal(t, int64(5000), g.Dealer().Bank)
	assert.Equal(t, 6*52, g.Shoe().Size())
}

// Package simulator plays many blackjack rounds headlessly across isolated
// tables and aggregates the results.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidConfig is returned by Run for a configuration it cannot play
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config describes a simulation run
type Config struct {
	Tables       int
	Rounds       int // per table
	Players      int // per table
	Strategy     string
	Seed         int64
	Decks        int
	StartingBank uint
	Bet          uint
	DealerBank   int64
	DealerStand  int
	Timeout      time.Duration // zero runs every round

	Clock  quartz.Clock
	Logger *log.Logger

	// Progress is called after every round. It is called from one
	// goroutine per table and must be safe for concurrent use.
	Progress func(table, round int)
}

func (c *Config) setDefaults() {
	if c.Tables == 0 {
		c.Tables = 1
	}
	if c.Players == 0 {
		c.Players = 1
	}
	if c.Strategy == "" {
		c.Strategy = bot.StrategyBasic
	}
	if c.Decks == 0 {
		c.Decks = deck.DefaultDecks
	}
	if c.StartingBank == 0 {
		c.StartingBank = game.DefaultStartingBank
	}
	if c.Bet == 0 {
		c.Bet = game.DefaultBet
	}
	if c.DealerBank == 0 {
		c.DealerBank = game.DefaultDealerBank
	}
	if c.DealerStand == 0 {
		c.DealerStand = game.DefaultDealerStand
	}
	if c.Clock == nil {
		c.Clock = quartz.NewReal()
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
}

func (c *Config) validate() error {
	switch {
	case c.Tables < 1:
		return fmt.Errorf("tables %d: %w", c.Tables, ErrInvalidConfig)
	case c.Rounds < 1:
		return fmt.Errorf("rounds %d: %w", c.Rounds, ErrInvalidConfig)
	case c.Players < game.MinPlayers || c.Players > game.MaxPlayers:
		return fmt.Errorf("players %d, want %d-%d: %w", c.Players, game.MinPlayers, game.MaxPlayers, ErrInvalidConfig)
	case c.Decks < 1:
		return fmt.Errorf("decks %d: %w", c.Decks, ErrInvalidConfig)
	case c.Bet > c.StartingBank:
		return fmt.Errorf("bet %d exceeds starting bank %d: %w", c.Bet, c.StartingBank, ErrInvalidConfig)
	case c.Timeout < 0:
		return fmt.Errorf("timeout %s: %w", c.Timeout, ErrInvalidConfig)
	}
	return nil
}

// TableReport is the outcome of one table
type TableReport struct {
	Table      int                   `json:"table"`
	Rounds     int                   `json:"rounds"`
	Broke      int                   `json:"broke_players"`
	FinalBanks []uint                `json:"final_banks"`
	DealerBank int64                 `json:"dealer_bank"`
	Stats      *statistics.Statistics `json:"-"`
}

// Report is the outcome of a simulation run
type Report struct {
	Config   Config
	Tables   []TableReport
	Stats    *statistics.Statistics
	Rounds   int // rounds played over all tables
	Elapsed  time.Duration
	TimedOut bool
}

// Simulator runs a configured simulation
type Simulator struct {
	cfg    Config
	logger *log.Logger
}

// New creates a simulator, filling unset fields with table defaults
func New(cfg Config) (*Simulator, error) {
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if _, err := bot.New(cfg.Strategy, randutil.New(cfg.Seed), cfg.Logger); err != nil {
		return nil, fmt.Errorf("strategy: %w", err)
	}
	return &Simulator{cfg: cfg, logger: cfg.Logger.WithPrefix("simulator")}, nil
}

// Config returns the effective configuration
func (s *Simulator) Config() Config {
	return s.cfg
}

// Run plays every table in parallel. Each table has its own game, shoe and
// random source derived from the seed, so results are reproducible for a
// given seed regardless of scheduling.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	clock := s.cfg.Clock
	start := clock.Now()

	var deadline time.Time
	if s.cfg.Timeout > 0 {
		deadline = start.Add(s.cfg.Timeout)
	}

	s.logger.Info("Starting simulation",
		"tables", s.cfg.Tables,
		"rounds", s.cfg.Rounds,
		"players", s.cfg.Players,
		"strategy", s.cfg.Strategy,
		"seed", s.cfg.Seed)

	var timedOut atomic.Bool
	reports := make([]TableReport, s.cfg.Tables)

	g, ctx := errgroup.WithContext(ctx)
	for i := range s.cfg.Tables {
		g.Go(func() error {
			report, hitDeadline, err := s.runTable(ctx, i, deadline)
			if err != nil {
				return fmt.Errorf("table %d: %w", i, err)
			}
			if hitDeadline {
				timedOut.Store(true)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Report{
		Config:   s.cfg,
		Tables:   reports,
		Stats:    &statistics.Statistics{},
		Elapsed:  clock.Since(start),
		TimedOut: timedOut.Load(),
	}
	for _, r := range reports {
		result.Stats.Merge(r.Stats)
		result.Rounds += r.Rounds
	}

	s.logger.Info("Simulation complete",
		"rounds", result.Rounds,
		"hands", result.Stats.Hands,
		"houseEdge", fmt.Sprintf("%.4f", result.Stats.HouseEdge()),
		"elapsed", result.Elapsed,
		"timedOut", result.TimedOut)
	return result, nil
}

func (s *Simulator) runTable(ctx context.Context, table int, deadline time.Time) (TableReport, bool, error) {
	cfg := s.cfg
	logger := s.logger.With("table", table)
	rng := randutil.Derive(cfg.Seed, table)

	agent, err := bot.New(cfg.Strategy, rng, logger)
	if err != nil {
		return TableReport{}, false, err
	}

	g := game.NewGame(rng,
		game.WithDecks(cfg.Decks),
		game.WithStartingBank(cfg.StartingBank),
		game.WithDefaultBet(cfg.Bet),
		game.WithDealerBank(cfg.DealerBank),
		game.WithDealerStand(cfg.DealerStand),
		game.WithLogger(logger),
	)
	if err := g.CreatePlayers(cfg.Players); err != nil {
		return TableReport{}, false, err
	}
	engine := game.NewEngine(g, agent, logger)

	report := TableReport{Table: table, Stats: &statistics.Statistics{}}
	hitDeadline := false

	for round := 1; round <= cfg.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return TableReport{}, false, err
		}
		if !deadline.IsZero() && !cfg.Clock.Now().Before(deadline) {
			logger.Warn("Simulation timeout reached", "rounds", report.Rounds)
			hitDeadline = true
			break
		}

		active, err := placeBets(g, cfg.Bet)
		if err != nil {
			return TableReport{}, false, err
		}
		if active == 0 {
			logger.Info("Every player is broke", "rounds", report.Rounds)
			break
		}

		summary, err := engine.PlayRound(nil)
		if err != nil {
			return TableReport{}, false, fmt.Errorf("round %d: %w", round, err)
		}
		for _, r := range summary.Results {
			if r.Bet > 0 {
				report.Stats.Add(statistics.FromResult(r))
			}
		}
		report.Rounds++

		if cfg.Progress != nil {
			cfg.Progress(table, round)
		}
	}

	for _, p := range g.Players() {
		report.FinalBanks = append(report.FinalBanks, p.Bank)
		if p.Bank == 0 {
			report.Broke++
		}
	}
	report.DealerBank = g.Dealer().Bank
	return report, hitDeadline, nil
}

// placeBets sets every player's bet to the table bet, or whatever is left
// of a smaller bank. It returns the number of players with a stake.
func placeBets(g *game.Game, bet uint) (int, error) {
	active := 0
	for i, p := range g.Players() {
		amount := min(bet, p.Bank)
		if err := g.SetPlayerBet(i, amount); err != nil {
			return 0, err
		}
		if amount > 0 {
			active++
		}
	}
	return active, nil
}

package game

import (
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
)

// Table defaults
const (
	MinPlayers          = 1
	MaxPlayers          = 7
	DefaultStartingBank = 1000
	DefaultBet          = 10
	DefaultDealerBank   = 100000
	DefaultDealerStand  = 17
)

// Option configures a Game during creation.
type Option func(*gameConfig)

type gameConfig struct {
	decks        int
	startingBank uint
	defaultBet   uint
	dealerBank   int64
	dealerStand  int
	shoe         *deck.Shoe // overrides decks when set
	logger       *log.Logger
	eventBus     EventBus
}

func defaultGameConfig() *gameConfig {
	return &gameConfig{
		decks:        deck.DefaultDecks,
		startingBank: DefaultStartingBank,
		defaultBet:   DefaultBet,
		dealerBank:   DefaultDealerBank,
		dealerStand:  DefaultDealerStand,
	}
}

// WithDecks sets the number of decks in the shoe. Default is 6.
func WithDecks(decks int) Option {
	return func(c *gameConfig) {
		c.decks = decks
	}
}

// WithStartingBank sets the bank every new player starts with. Default is 1000.
func WithStartingBank(bank uint) Option {
	return func(c *gameConfig) {
		c.startingBank = bank
	}
}

// WithDefaultBet sets the bet every new player starts with. Default is 10.
func WithDefaultBet(bet uint) Option {
	return func(c *gameConfig) {
		c.defaultBet = bet
	}
}

// WithDealerBank sets the house bank. Default is 100000.
func WithDealerBank(bank int64) Option {
	return func(c *gameConfig) {
		c.dealerBank = bank
	}
}

// WithDealerStand sets the total the dealer stands on. Default is 17.
func WithDealerStand(total int) Option {
	return func(c *gameConfig) {
		c.dealerStand = total
	}
}

// WithShoe sets a specific shoe, typically a stacked one for tests.
func WithShoe(shoe *deck.Shoe) Option {
	return func(c *gameConfig) {
		c.shoe = shoe
	}
}

// WithLogger sets the logger. Default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(c *gameConfig) {
		c.logger = logger
	}
}

// WithEventBus sets the bus round events are published on.
func WithEventBus(bus EventBus) Option {
	return func(c *gameConfig) {
		c.eventBus = bus
	}
}

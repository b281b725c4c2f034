package game

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
)

// Game owns all session state for one table: the shoe, the seated players,
// the dealer and the round state machine. A Game is not safe for concurrent
// use; run one Game per table.
type Game struct {
	shoe     *deck.Shoe
	players  []*Player
	dealer   *Dealer
	state    State
	round    int
	roundID  string
	results  []Result
	applied  bool
	cfg      *gameConfig
	logger   *log.Logger
	eventBus EventBus

	// Σ player banks + dealer bank, fixed when players are seated
	bankTotal int64

	// set by the first failed draw; every later command is rejected
	exhausted bool
}

// NewGame creates a table with a shuffled shoe and no players.
//
//	g := game.NewGame(randutil.New(42), game.WithDecks(6))
//	if err := g.CreatePlayers(3); err != nil { ... }
func NewGame(rng *rand.Rand, opts ...Option) *Game {
	if rng == nil {
		panic("rng is required for game creation")
	}

	cfg := defaultGameConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	shoe := cfg.shoe
	if shoe == nil {
		shoe = deck.NewShuffledShoe(rng, cfg.decks)
	}
	logger := cfg.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	eventBus := cfg.eventBus
	if eventBus == nil {
		eventBus = NewEventBus()
	}

	return &Game{
		shoe:      shoe,
		dealer:    NewDealer(cfg.dealerBank),
		state:     StateSetup,
		cfg:       cfg,
		logger:    logger,
		eventBus:  eventBus,
		bankTotal: cfg.dealerBank,
	}
}

// CreatePlayers replaces the seated players with count fresh players holding
// the default bank and bet. Only allowed between rounds.
func (g *Game) CreatePlayers(count int) error {
	if err := g.requireState("create players", StateSetup, StateDealing); err != nil {
		return err
	}
	if count < MinPlayers || count > MaxPlayers {
		return fmt.Errorf("create %d players, want %d-%d: %w", count, MinPlayers, MaxPlayers, ErrInvalidPlayerCount)
	}

	players := make([]*Player, count)
	for i := range players {
		players[i] = NewPlayer(i, fmt.Sprintf("Player %d", i+1), g.cfg.startingBank, g.cfg.defaultBet)
	}
	g.players = players
	g.bankTotal = g.BankTotal()

	g.logger.Info("Players seated", "count", count, "bank", g.cfg.startingBank, "bet", g.cfg.defaultBet)
	return nil
}

// SetPlayerBet sets the bet for the player at index. Only allowed between rounds.
func (g *Game) SetPlayerBet(index int, amount uint) error {
	p, err := g.Player(index)
	if err != nil {
		return err
	}
	if err := g.requireState("set bet", StateSetup, StateDealing); err != nil {
		return err
	}
	if err := p.SetBet(amount); err != nil {
		return err
	}
	g.logger.Debug("Bet placed", "seat", index, "bet", amount, "bank", p.Bank)
	return nil
}

// SetPlayerName renames the player at index
func (g *Game) SetPlayerName(index int, name string) error {
	p, err := g.Player(index)
	if err != nil {
		return err
	}
	p.Name = name
	return nil
}

// Player returns the player at index
func (g *Game) Player(index int) (*Player, error) {
	if index < 0 || index >= len(g.players) {
		return nil, fmt.Errorf("seat %d of %d: %w", index, len(g.players), ErrInvalidPlayerIndex)
	}
	return g.players[index], nil
}

// Players returns the seated players in seat order
func (g *Game) Players() []*Player {
	out := make([]*Player, len(g.players))
	copy(out, g.players)
	return out
}

// PlayerCount returns the number of seated players
func (g *Game) PlayerCount() int {
	return len(g.players)
}

// Dealer returns the dealer
func (g *Game) Dealer() *Dealer {
	return g.dealer
}

// State returns the current round state
func (g *Game) State() State {
	return g.state
}

// Round returns the number of rounds dealt so far
func (g *Game) Round() int {
	return g.round
}

// RoundID returns the identifier of the current or last round
func (g *Game) RoundID() string {
	return g.roundID
}

// Shoe returns the table's shoe
func (g *Game) Shoe() *deck.Shoe {
	return g.shoe
}

// Exhausted reports whether a draw has found the shoe empty. The round in
// progress is abandoned and the table accepts no further commands.
func (g *Game) Exhausted() bool {
	return g.exhausted
}

// EventBus returns the event bus for subscribing to round events
func (g *Game) EventBus() EventBus {
	return g.eventBus
}

// Results returns the settlement of the current round, if any
func (g *Game) Results() []Result {
	out := make([]Result, len(g.results))
	copy(out, g.results)
	return out
}

// CardsInPlay returns the number of cards currently held in hands
func (g *Game) CardsInPlay() int {
	n := g.dealer.Hand.Len()
	for _, p := range g.players {
		n += p.Hand.Len()
	}
	return n
}

// ValidateCardConservation checks that every card of the shoe is in exactly
// one of the draw pile, the discard pile or a hand.
func (g *Game) ValidateCardConservation() error {
	total := g.shoe.Remaining() + g.shoe.Discarded() + g.CardsInPlay()
	if total != g.shoe.Size() {
		return fmt.Errorf("card count mismatch: draw %d + discard %d + hands %d = %d, shoe holds %d",
			g.shoe.Remaining(), g.shoe.Discarded(), g.CardsInPlay(), total, g.shoe.Size())
	}
	return nil
}

// BankTotal returns the sum of every player bank and the dealer bank
func (g *Game) BankTotal() int64 {
	total := g.dealer.Bank
	for _, p := range g.players {
		total += int64(p.Bank)
	}
	return total
}

// ValidateBankConservation checks that settlement only moved money between
// players and the house.
func (g *Game) ValidateBankConservation() error {
	if total := g.BankTotal(); total != g.bankTotal {
		return fmt.Errorf("bank total changed: expected %d, got %d (difference: %d)",
			g.bankTotal, total, total-g.bankTotal)
	}
	return nil
}

func (g *Game) draw() (deck.Card, error) {
	card, err := g.shoe.Draw()
	if err != nil {
		g.exhausted = true
		g.logger.Error("Shoe exhausted", "round", g.round, "state", g.state, "inPlay", g.CardsInPlay())
		return deck.Card{}, err
	}
	return card, nil
}

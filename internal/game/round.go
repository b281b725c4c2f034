package game

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/lox/blackjack/internal/deck"
)

// HitStatus classifies the hand after a hit
type HitStatus int

const (
	HitContinue HitStatus = iota
	HitBust
	HitTwentyOne
)

// String returns the string representation of the status
func (s HitStatus) String() string {
	switch s {
	case HitContinue:
		return "continue"
	case HitBust:
		return "bust"
	case HitTwentyOne:
		return "twenty-one"
	default:
		return "unknown"
	}
}

// HitResult reports the card drawn by a hit and the new hand value
type HitResult struct {
	Status HitStatus
	Card   deck.Card
	Value  int
}

func (g *Game) requireState(op string, allowed ...State) error {
	if g.exhausted {
		return fmt.Errorf("%s after round %d was abandoned: %w", op, g.round, ErrShoeExhausted)
	}
	if slices.Contains(allowed, g.state) {
		return nil
	}
	return fmt.Errorf("%s during %s: %w", op, g.state, ErrIllegalAction)
}

// DealCards starts a round: it resets outcomes and finished flags, then deals
// two cards to every player and the dealer, round-robin with the dealer last
// in each pass. Every hand must be empty and every bet covered by its bank.
func (g *Game) DealCards() error {
	if err := g.requireState("deal", StateSetup, StateDealing); err != nil {
		return err
	}
	if len(g.players) == 0 {
		return fmt.Errorf("deal with no players seated: %w", ErrInvalidPlayerCount)
	}
	if n := g.CardsInPlay(); n > 0 {
		return fmt.Errorf("deal with %d cards still in hands: %w", n, ErrIllegalAction)
	}
	for _, p := range g.players {
		if p.Bet > p.Bank {
			return fmt.Errorf("seat %d: bet %d with bank %d: %w", p.Seat, p.Bet, p.Bank, ErrBetExceedsBank)
		}
	}

	for _, p := range g.players {
		p.resetForRound()
	}
	g.dealer.Hand.Clear()
	g.results = nil
	g.applied = false
	g.round++
	g.roundID = uuid.NewString()
	g.state = StateDealing

	g.logger.Debug("Starting round", "round", g.round, "roundID", g.roundID, "players", len(g.players))
	g.eventBus.Publish(NewRoundStartEvent(g.roundID, g.round, g.playerViews()))

	for pass := range 2 {
		for _, p := range g.players {
			card, err := g.draw()
			if err != nil {
				return fmt.Errorf("deal to seat %d: %w", p.Seat, err)
			}
			p.Hand.Add(card)
			g.eventBus.Publish(NewCardDealtEvent(g.roundID, p.Seat, p.Name, card, false))
		}

		card, err := g.draw()
		if err != nil {
			return fmt.Errorf("deal to dealer: %w", err)
		}
		g.dealer.Hand.Add(card)
		g.eventBus.Publish(NewCardDealtEvent(g.roundID, DealerSeat, DealerName, card, pass == 1))
	}

	g.state = StatePlayerTurns
	g.logger.Debug("Cards dealt", "round", g.round, "shoeRemaining", g.shoe.Remaining())
	return nil
}

// CanPlayerAct reports whether the player at index may hit or stand now
func (g *Game) CanPlayerAct(index int) bool {
	if g.exhausted || g.state != StatePlayerTurns || index < 0 || index >= len(g.players) {
		return false
	}
	return g.players[index].CanAct()
}

// NextPlayerToAct returns the lowest seat that can still act
func (g *Game) NextPlayerToAct() (int, bool) {
	for i := range g.players {
		if g.CanPlayerAct(i) {
			return i, true
		}
	}
	return -1, false
}

// AllPlayersDone reports whether no player can act any more
func (g *Game) AllPlayersDone() bool {
	_, ok := g.NextPlayerToAct()
	return !ok
}

func (g *Game) actingPlayer(op string, index int) (*Player, error) {
	p, err := g.Player(index)
	if err != nil {
		return nil, err
	}
	if err := g.requireState(op, StatePlayerTurns); err != nil {
		return nil, err
	}
	if !p.CanAct() {
		return nil, fmt.Errorf("seat %d %s with %s: %w", index, op, p.Hand.String(), ErrIllegalAction)
	}
	return p, nil
}

// PlayerHit draws one card for the player at index. A bust marks the player
// lost; reaching 21 marks the outcome blackjack and ends the player's turn.
// Settlement recomputes every outcome from the final hands.
func (g *Game) PlayerHit(index int) (HitResult, error) {
	p, err := g.actingPlayer("hit", index)
	if err != nil {
		return HitResult{}, err
	}

	card, err := g.draw()
	if err != nil {
		return HitResult{}, fmt.Errorf("hit for seat %d: %w", index, err)
	}
	p.Hand.Add(card)

	result := HitResult{Card: card, Value: p.Hand.Value()}
	switch {
	case result.Value > 21:
		p.Outcome = Lost
		result.Status = HitBust
	case result.Value == 21:
		p.Outcome = Blackjack
		p.Finished = true
		result.Status = HitTwentyOne
	default:
		result.Status = HitContinue
	}

	g.logger.Debug("Player hit", "seat", index, "card", card, "value", result.Value, "status", result.Status)
	g.eventBus.Publish(NewPlayerActionEvent(g.roundID, p, Hit, card, result.Status))
	return result, nil
}

// PlayerStand ends the turn of the player at index
func (g *Game) PlayerStand(index int) error {
	p, err := g.actingPlayer("stand", index)
	if err != nil {
		return err
	}
	p.Finished = true

	g.logger.Debug("Player stands", "seat", index, "value", p.Hand.Value())
	g.eventBus.Publish(NewPlayerActionEvent(g.roundID, p, Stand, deck.Card{}, HitContinue))
	return nil
}

// DealerShouldHit reports whether the dealer must draw: below 17 by default.
// Soft and hard totals are treated alike.
func (g *Game) DealerShouldHit() bool {
	return g.dealer.Hand.Value() < g.cfg.dealerStand
}

func (g *Game) allPlayersBust() bool {
	for _, p := range g.players {
		if !p.Hand.IsBust() {
			return false
		}
	}
	return true
}

// RunDealerTurn reveals the hole card and draws for the dealer until
// DealerShouldHit is false. When every player has already busted the dealer
// does not draw. The loop ends because each card adds at least one point.
func (g *Game) RunDealerTurn() error {
	if err := g.requireState("dealer turn", StatePlayerTurns); err != nil {
		return err
	}
	if seat, ok := g.NextPlayerToAct(); ok {
		return fmt.Errorf("dealer turn while seat %d can act: %w", seat, ErrIllegalAction)
	}

	g.state = StateDealerTurn
	skipped := g.allPlayersBust()
	if !skipped {
		for g.DealerShouldHit() {
			card, err := g.draw()
			if err != nil {
				return fmt.Errorf("dealer draw: %w", err)
			}
			g.dealer.Hand.Add(card)
		}
	}

	g.logger.Debug("Dealer played", "hand", g.dealer.Hand.String(), "skipped", skipped)
	g.eventBus.Publish(NewDealerTurnEvent(g.roundID, &g.dealer.Hand, skipped))
	return nil
}

// SettleRound determines every player's outcome from the final hands.
// Banks are not touched; see ApplyResults.
func (g *Game) SettleRound() ([]Result, error) {
	if err := g.requireState("settle", StateDealerTurn); err != nil {
		return nil, err
	}

	dealerValue := g.dealer.Hand.Value()
	results := make([]Result, len(g.players))
	for i, p := range g.players {
		outcome := Settle(&p.Hand, &g.dealer.Hand)
		p.Outcome = outcome
		payout := Payout(p.Bet, outcome)
		results[i] = Result{
			Seat:        p.Seat,
			Name:        p.Name,
			Outcome:     outcome,
			Bet:         p.Bet,
			Payout:      payout,
			Net:         int64(payout) - int64(p.Bet),
			PlayerValue: p.Hand.Value(),
			DealerValue: dealerValue,
			Bank:        p.Bank,
		}
	}

	g.results = results
	g.state = StateSettlement
	return g.Results(), nil
}

// ApplyResults debits every bet from its bank and then credits the payout
// for the settled outcome. The house bank takes the opposite side. Results
// can be applied once per round.
func (g *Game) ApplyResults() ([]Result, error) {
	if err := g.requireState("apply results", StateSettlement); err != nil {
		return nil, err
	}
	if g.applied {
		return nil, fmt.Errorf("results for round %d already applied: %w", g.round, ErrIllegalAction)
	}

	for i, p := range g.players {
		r := &g.results[i]
		p.Bank -= p.Bet
		p.Bank += r.Payout
		g.dealer.Bank += int64(p.Bet) - int64(r.Payout)
		r.Bank = p.Bank

		g.logger.Debug("Result applied", "seat", p.Seat, "outcome", r.Outcome, "bet", r.Bet, "net", r.Net, "bank", p.Bank)
	}
	g.applied = true

	g.eventBus.Publish(NewRoundEndEvent(g.roundID, g.round, g.results, g.dealer.Hand.Value(), g.dealer.Bank))
	return g.Results(), nil
}

// DiscardAllHands returns every hand to the shoe's discard pile and clears
// outcomes and finished flags, keeping banks and bets, ready for DealCards.
func (g *Game) DiscardAllHands() error {
	if err := g.requireState("discard", StateSettlement); err != nil {
		return err
	}
	if !g.applied {
		return fmt.Errorf("discard before results of round %d applied: %w", g.round, ErrIllegalAction)
	}

	for _, p := range g.players {
		g.shoe.DiscardHand(&p.Hand)
		p.Outcome = Push
		p.Finished = false
	}
	g.shoe.DiscardHand(&g.dealer.Hand)
	g.state = StateDealing
	return nil
}

package game

import "fmt"

// DealerSeat identifies the dealer in events and views
const DealerSeat = -1

// DealerName is the name the dealer is shown under
const DealerName = "Dealer"

// Player is a seated player. Bank and bet persist across rounds; hand,
// outcome and finished flag are reset every round.
type Player struct {
	Seat     int
	Name     string
	Hand     Hand
	Bank     uint
	Bet      uint
	Outcome  Outcome
	Finished bool
}

// NewPlayer creates a new player
func NewPlayer(seat int, name string, bank, bet uint) *Player {
	return &Player{
		Seat: seat,
		Name: name,
		Bank: bank,
		Bet:  min(bet, bank),
	}
}

// CanAct returns true while the player may still hit or stand
func (p *Player) CanAct() bool {
	return !p.Finished && !p.Hand.IsBust() && !p.Hand.IsBlackjack()
}

// SetBet places a bet no larger than the bank
func (p *Player) SetBet(amount uint) error {
	if amount > p.Bank {
		return fmt.Errorf("seat %d: bet %d with bank %d: %w", p.Seat, amount, p.Bank, ErrBetExceedsBank)
	}
	p.Bet = amount
	return nil
}

func (p *Player) resetForRound() {
	p.Outcome = Push
	p.Finished = false
}

// Dealer is the house. Its bank is signed because the house may run a deficit.
type Dealer struct {
	Hand Hand
	Bank int64
}

// NewDealer creates a dealer with the given bank
func NewDealer(bank int64) *Dealer {
	return &Dealer{Bank: bank}
}

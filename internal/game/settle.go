package game

// Result is one player's settlement for a round
type Result struct {
	Seat        int
	Name        string
	Outcome     Outcome
	Bet         uint
	Payout      uint  // amount credited back after the bet was debited
	Net         int64 // Payout - Bet
	PlayerValue int
	DealerValue int
	Bank        uint // bank after results were applied
}

// Settle compares a finished player hand with the dealer hand. The first
// matching rule wins:
//
//  1. both blackjack: push
//  2. player blackjack: blackjack
//  3. dealer bust, player not bust: won
//  4. player bust: lost
//  5. higher total: won
//  6. lower total: lost
//  7. otherwise push
func Settle(player, dealer *Hand) Outcome {
	playerValue, dealerValue := player.Value(), dealer.Value()

	switch {
	case player.IsBlackjack() && dealer.IsBlackjack():
		return Push
	case player.IsBlackjack():
		return Blackjack
	case dealer.IsBust() && !player.IsBust():
		return Won
	case player.IsBust():
		return Lost
	case playerValue > dealerValue:
		return Won
	case playerValue < dealerValue:
		return Lost
	default:
		return Push
	}
}

// Payout returns the amount credited back to a player whose bet has already
// been debited. Blackjack pays (bet*5)/2 in integer arithmetic, so odd bets
// lose half a unit.
func Payout(bet uint, outcome Outcome) uint {
	switch outcome {
	case Push:
		return bet
	case Won:
		return 2 * bet
	case Blackjack:
		return (bet * 5) / 2
	case Lost:
		return 0
	default:
		return 0
	}
}

// NetChange returns the signed bank change for a bet and outcome
func NetChange(bet uint, outcome Outcome) int64 {
	return int64(Payout(bet, outcome)) - int64(bet)
}

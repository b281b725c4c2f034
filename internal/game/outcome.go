package game

// Outcome is the settlement result for one player's hand.
type Outcome int

const (
	Lost      Outcome = -1
	Push      Outcome = 0
	Won       Outcome = 1
	Blackjack Outcome = 2
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case Lost:
		return "lost"
	case Push:
		return "push"
	case Won:
		return "won"
	case Blackjack:
		return "blackjack"
	default:
		return "unknown"
	}
}

// Code returns the numeric outcome code (-1 lost, 0 push, 1 won, 2 blackjack)
func (o Outcome) Code() int {
	return int(o)
}

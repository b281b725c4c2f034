package game

// State is the phase of the round state machine.
//
//	Setup -> Dealing -> PlayerTurns -> DealerTurn -> Settlement -> Dealing ...
type State int

const (
	StateSetup State = iota
	StateDealing
	StatePlayerTurns
	StateDealerTurn
	StateSettlement
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateDealing:
		return "dealing"
	case StatePlayerTurns:
		return "player-turns"
	case StateDealerTurn:
		return "dealer-turn"
	case StateSettlement:
		return "settlement"
	default:
		return "unknown"
	}
}

// BetweenRounds reports whether no round is in progress
func (s State) BetweenRounds() bool {
	return s == StateSetup || s == StateDealing
}

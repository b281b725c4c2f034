package game

import (
	"errors"

	"github.com/lox/blackjack/internal/deck"
)

// Errors returned by Game methods. They are wrapped with context, so compare
// with errors.Is.
var (
	// ErrInvalidPlayerCount is returned when a seat count falls outside [MinPlayers, MaxPlayers]
	ErrInvalidPlayerCount = errors.New("invalid player count")

	// ErrInvalidPlayerIndex is returned for an index outside the current player list
	ErrInvalidPlayerIndex = errors.New("invalid player index")

	// ErrBetExceedsBank is returned when a bet is larger than the player's bank
	ErrBetExceedsBank = errors.New("bet exceeds bank")

	// ErrShoeExhausted is returned when a draw finds both shoe piles empty
	ErrShoeExhausted = deck.ErrShoeExhausted

	// ErrIllegalAction is returned for a command the round state does not allow
	ErrIllegalAction = errors.New("illegal action")
)

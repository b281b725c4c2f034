package bot

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
)

// BasicBot plays hit/stand basic strategy for a game without doubling or
// splitting. Decisions depend on the player's total, whether it is soft and
// the dealer's up card (ace counted as 11).
type BasicBot struct {
	logger *log.Logger
}

// NewBasicBot creates a new BasicBot instance
func NewBasicBot(logger *log.Logger) *BasicBot {
	return &BasicBot{logger: logger.WithPrefix("basic-bot")}
}

func (b *BasicBot) Decide(view game.TableView) game.Decision {
	p, ok := view.Acting()
	if !ok {
		return game.Decision{Action: game.Stand, Reasoning: "basic-bot not acting"}
	}

	up := upCardValue(view)
	action := BasicAction(p.Value, p.Soft, up)

	kind := "hard"
	if p.Soft {
		kind = "soft"
	}
	reasoning := fmt.Sprintf("basic-bot %s %d against %d: %s", kind, p.Value, up, action)

	b.logger.Debug("Decision", "seat", p.Seat, "value", p.Value, "soft", p.Soft, "up", up, "action", action)
	return game.Decision{Action: action, Reasoning: reasoning}
}

// BasicAction returns the basic strategy action for a total against a dealer
// up card worth up (2-11).
func BasicAction(total int, soft bool, up int) game.Action {
	if soft {
		switch {
		case total >= 19:
			return game.Stand
		case total == 18:
			if up >= 9 {
				return game.Hit
			}
			return game.Stand
		default:
			return game.Hit
		}
	}

	switch {
	case total >= 17:
		return game.Stand
	case total >= 13:
		if up >= 7 {
			return game.Hit
		}
		return game.Stand
	case total == 12:
		if up >= 4 && up <= 6 {
			return game.Stand
		}
		return game.Hit
	default:
		return game.Hit
	}
}

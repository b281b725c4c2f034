package bot

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
)

// DefaultThreshold is the total a threshold bot stands on when none is given
const DefaultThreshold = 15

// ThresholdBot hits below a fixed total and stands otherwise, ignoring the
// dealer's up card. With a threshold of 17 it plays like the dealer.
type ThresholdBot struct {
	standOn int
	logger  *log.Logger
}

// NewThresholdBot creates a new ThresholdBot instance
func NewThresholdBot(standOn int, logger *log.Logger) *ThresholdBot {
	return &ThresholdBot{standOn: standOn, logger: logger.WithPrefix("threshold-bot")}
}

// StandOn returns the total the bot stands on
func (b *ThresholdBot) StandOn() int {
	return b.standOn
}

func (b *ThresholdBot) Decide(view game.TableView) game.Decision {
	p, ok := view.Acting()
	if !ok {
		return game.Decision{Action: game.Stand, Reasoning: "threshold-bot not acting"}
	}

	if p.Value < b.standOn {
		return game.Decision{Action: game.Hit, Reasoning: fmt.Sprintf("threshold-bot %d below %d", p.Value, b.standOn)}
	}
	return game.Decision{Action: game.Stand, Reasoning: fmt.Sprintf("threshold-bot standing on %d", p.Value)}
}

package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
)

// RandBot hits or stands with equal probability
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger.WithPrefix("rand-bot")}
}

func (r *RandBot) Decide(view game.TableView) game.Decision {
	if _, ok := view.Acting(); !ok {
		return game.Decision{Action: game.Stand, Reasoning: "rand-bot not acting"}
	}
	if r.rng.IntN(2) == 0 {
		return game.Decision{Action: game.Hit, Reasoning: "rand-bot random hit"}
	}
	return game.Decision{Action: game.Stand, Reasoning: "rand-bot random stand"}
}

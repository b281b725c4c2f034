// Package bot provides automated blackjack agents for simulation and for
// computer-controlled seats in the terminal UI.
package bot

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
)

// ErrUnknownStrategy is returned by New for a name it does not recognise
var ErrUnknownStrategy = errors.New("unknown bot strategy")

// Strategy names accepted by New
const (
	StrategyBasic     = "basic"
	StrategyDealer    = "dealer"
	StrategyThreshold = "threshold"
	StrategyRandom    = "random"
)

// Names lists the accepted strategy names
func Names() []string {
	names := []string{StrategyBasic, StrategyDealer, StrategyThreshold, StrategyRandom}
	sort.Strings(names)
	return names
}

// New creates a bot by strategy name. "threshold" stands on 15 unless a
// total is given as "threshold:N"; "dealer" is threshold 17.
func New(name string, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	strategy, standOn, err := parse(name)
	if err != nil {
		return nil, err
	}

	switch strategy {
	case StrategyBasic:
		return NewBasicBot(logger), nil
	case StrategyDealer, StrategyThreshold:
		return NewThresholdBot(standOn, logger), nil
	default:
		if rng == nil {
			return nil, fmt.Errorf("random bot requires an rng")
		}
		return NewRandBot(rng, logger), nil
	}
}

// Validate reports whether New would accept name
func Validate(name string) error {
	_, _, err := parse(name)
	return err
}

func parse(name string) (string, int, error) {
	strategy, arg, hasArg := strings.Cut(strings.ToLower(strings.TrimSpace(name)), ":")

	switch strategy {
	case StrategyBasic, StrategyRandom:
		if hasArg {
			return "", 0, fmt.Errorf("%q takes no argument: %w", name, ErrUnknownStrategy)
		}
		return strategy, 0, nil
	case StrategyDealer:
		return strategy, game.DefaultDealerStand, nil
	case StrategyThreshold:
		if !hasArg {
			return strategy, DefaultThreshold, nil
		}
		n, err := strconv.Atoi(arg)
		if err != nil || n < 2 || n > 21 {
			return "", 0, fmt.Errorf("threshold %q, want 2-21: %w", arg, ErrUnknownStrategy)
		}
		return strategy, n, nil
	default:
		return "", 0, fmt.Errorf("%q (want one of %s): %w", name, strings.Join(Names(), ", "), ErrUnknownStrategy)
	}
}

// upCardValue returns the dealer's visible card with aces counted as 11
func upCardValue(view game.TableView) int {
	card, ok := view.Dealer.UpCard()
	if !ok {
		return 0
	}
	if card.IsAce() {
		return 11
	}
	return card.Points()
}

package game

import (
	"testing"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/require"
)

// newStackedGame seats players at a table whose shoe deals cards in the
// given order: the initial deal is round-robin with the dealer last in each
// pass, followed by hits in the order they are taken.
func newStackedGame(t *testing.T, players int, cards string, opts ...Option) *Game {
	t.Helper()
	rng := randutil.New(1)
	shoe := deck.NewShoeFromCards(rng, deck.MustParseCards(cards)...)
	g := NewGame(rng, append([]Option{WithShoe(shoe)}, opts...)...)
	require.NoError(t, g.CreatePlayers(players))
	return g
}

func hand(cards string) *Hand {
	return NewHand(deck.MustParseCards(cards)...)
}

// standOn returns an agent that hits below total and stands otherwise
func standOn(total int) Agent {
	return AgentFunc(func(view TableView) Decision {
		p, _ := view.Acting()
		if p.Value < total {
			return Decision{Action: Hit, Reasoning: "below threshold"}
		}
		return Decision{Action: Stand, Reasoning: "at threshold"}
	})
}

// finishRound runs dealer play, settlement and application
func finishRound(t *testing.T, g *Game) []Result {
	t.Helper()
	require.NoError(t, g.RunDealerTurn())
	_, err := g.SettleRound()
	require.NoError(t, err)
	results, err := g.ApplyResults()
	require.NoError(t, err)
	return results
}

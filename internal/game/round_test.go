package game

import (
	"testing"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePlayers(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty and oversized tables", func(t *testing.T) {
		t.Parallel()
		g := NewGame(randutil.New(1))
		assert.ErrorIs(t, g.CreatePlayers(0), ErrInvalidPlayerCount)
		assert.ErrorIs(t, g.CreatePlayers(8), ErrInvalidPlayerCount)
		assert.ErrorIs(t, g.CreatePlayers(-1), ErrInvalidPlayerCount)
		assert.Zero(t, g.PlayerCount())
	})

	t.Run("seven players with default bank", func(t *testing.T) {
		t.Parallel()
		g := NewGame(randutil.New(1))
		require.NoError(t, g.CreatePlayers(7))
		require.Equal(t, 7, g.PlayerCount())
		for i, p := range g.Players() {
			assert.Equal(t, i, p.Seat)
			assert.Equal(t, uint(DefaultStartingBank), p.Bank)
			assert.Equal(t, uint(DefaultBet), p.Bet)
			assert.Zero(t, p.Hand.Len())
		}
		assert.Equal(t, "Player 1", g.Players()[0].Name)
		assert.Equal(t, StateSetup, g.State())
	})

	t.Run("failure keeps the seated players", func(t *testing.T) {
		t.Parallel()
		g := NewGame(randutil.New(1))
		require.NoError(t, g.CreatePlayers(3))
		require.ErrorIs(t, g.CreatePlayers(9), ErrInvalidPlayerCount)
		assert.Equal(t, 3, g.PlayerCount())
	})

	t.Run("not allowed mid round", func(t *testing.T) {
		t.Parallel()
		g := NewGame(randutil.New(1))
		require.NoError(t, g.CreatePlayers(2))
		require.NoError(t, g.DealCards())
		assert.ErrorIs(t, g.CreatePlayers(3), ErrIllegalAction)
	})

	t.Run("options set bank and bet", func(t *testing.T) {
		t.Parallel()
		g := NewGame(randutil.New(1), WithStartingBank(50), WithDefaultBet(100))
		require.NoError(t, g.CreatePlayers(1))
		p, err := g.Player(0)
		require.NoError(t, err)
		assert.Equal(t, uint(50), p.Bank)
		assert.Equal(t, uint(50), p.Bet, "default bet is capped at the bank")
	})
}

func TestSetPlayerBet(t *testing.T) {
	t.Parallel()

	g := NewGame(randutil.New(1))
	require.NoError(t, g.CreatePlayers(2))

	assert.ErrorIs(t, g.SetPlayerBet(2, 10), ErrInvalidPlayerIndex)
	assert.ErrorIs(t, g.SetPlayerBet(-1, 10), ErrInvalidPlayerIndex)
	assert.ErrorIs(t, g.SetPlayerBet(0, 1001), ErrBetExceedsBank)

	require.NoError(t, g.SetPlayerBet(0, 1000))
	require.NoError(t, g.SetPlayerBet(1, 0))
	assert.Equal(t, uint(1000), g.Players()[0].Bet)
	assert.Equal(t, uint(0), g.Players()[1].Bet)

	require.NoError(t, g.DealCards())
	assert.ErrorIs(t, g.SetPlayerBet(0, 5), ErrIllegalAction)
}

func TestDealOrder(t *testing.T) {
	t.Parallel()

	g := newStackedGame(t, 2, "2h 3h 4h 5h 6h 7h")
	require.NoError(t, g.DealCards())

	players := g.Players()
	assert.Equal(t, deck.MustParseCards("2h 5h"), players[0].Hand.Cards())
	assert.Equal(t, deck.MustParseCards("3h 6h"), players[1].Hand.Cards())
	assert.Equal(t, deck.MustParseCards("4h 7h"), g.Dealer().Hand.Cards())
	assert.Equal(t, StatePlayerTurns, g.State())
	assert.Equal(t, 1, g.Round())
	assert.NotEmpty(t, g.RoundID())
	require.NoError(t, g.ValidateCardConservation())
}

func TestDealCardsPreconditions(t *testing.T) {
	t.Parallel()

	t.Run("no players", func(t *testing.T) {
		t.Parallel()
		g := NewGame(randutil.New(1))
		assert.ErrorIs(t, g.DealCards(), ErrInvalidPlayerCount)
	})

	t.Run("mid round", func(t *testing.T) {
		t.Parallel()
		g := NewGame(randutil.New(1))
		require.NoError(t, g.CreatePlayers(1))
		require.NoError(t, g.DealCards())
		assert.ErrorIs(t, g.DealCards(), ErrIllegalAction)
	})

	t.Run("bet no longer covered", func(t *testing.T) {
		t.Parallel()
		g := NewGame(randutil.New(1))
		require.NoError(t, g.CreatePlayers(1))
		g.players[0].Bank = 5
		assert.ErrorIs(t, g.DealCards(), ErrBetExceedsBank)
		assert.Zero(t, g.CardsInPlay())
	})

	t.Run("shoe exhausted", func(t *testing.T) {
		t.Parallel()
		g := newStackedGame(t, 1, "Ah Kd 5c")
		assert.ErrorIs(t, g.DealCards(), ErrShoeExhausted)
		assert.True(t, g.Exhausted())
		assert.ErrorIs(t, g.DealCards(), ErrShoeExhausted)
		assert.ErrorIs(t, g.DiscardAllHands(), ErrShoeExhausted)
	})
}

func TestDealerHoleCardHidden(t *testing.T) {
	t.Parallel()

	// player 10 8, dealer 9 and hole card 8
	g := newStackedGame(t, 1, "Th 9c 8d 8s")
	require.NoError(t, g.DealCards())

	dv := g.View().Dealer
	assert.False(t, dv.Revealed)
	assert.Equal(t, deck.MustParseCards("9c"), dv.Cards)
	assert.Equal(t, 1, dv.HiddenCards)
	assert.Equal(t, 9, dv.Value)
	up, ok := dv.UpCard()
	require.True(t, ok)
	assert.Equal(t, deck.NewCard(deck.Nine, deck.Clubs), up)

	require.NoError(t, g.PlayerStand(0))
	require.NoError(t, g.RunDealerTurn())

	dv = g.View().Dealer
	assert.True(t, dv.Revealed)
	assert.Zero(t, dv.HiddenCards)
	assert.Equal(t, deck.MustParseCards("9c 8s"), dv.Cards)
	assert.Equal(t, 17, dv.Value)
}

func TestHiddenAceCountsOne(t *testing.T) {
	t.Parallel()

	g := newStackedGame(t, 1, "Th Ac 8d Ks")
	require.NoError(t, g.DealCards())
	assert.Equal(t, 1, g.View().Dealer.Value)
}

func TestRoundSettlement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cards   string // player, dealer, player, dealer, then draws
		hits    int
		outcome Outcome
		net     int64
		dealer  int
	}{
		{name: "natural blackjack pays 3 to 2", cards: "Ah Th Kd Qs", outcome: Blackjack, net: 15, dealer: 20},
		{name: "18 against 20 loses", cards: "Th Tc 8d Qs", outcome: Lost, net: -10, dealer: 20},
		{name: "20 against 20 pushes", cards: "Th Tc Kd Qs", outcome: Push, net: 0, dealer: 20},
		{name: "dealer draws to 17 or more", cards: "Th 2c 9h 3c 4d 5d 6d", outcome: Lost, net: -10, dealer: 20},
		{name: "dealer bust pays even money", cards: "Th Tc 2h 6c Kd", outcome: Won, net: 10, dealer: 26},
		{name: "hit to 21 is paid as a win", cards: "5h Tc 6h 7c Td", hits: 1, outcome: Won, net: 10, dealer: 17},
		{name: "both naturals push", cards: "Ah Ac Kd Qs", outcome: Push, net: 0, dealer: 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := newStackedGame(t, 1, tt.cards)
			require.NoError(t, g.DealCards())

			for range tt.hits {
				_, err := g.PlayerHit(0)
				require.NoError(t, err)
			}
			if g.CanPlayerAct(0) {
				require.NoError(t, g.PlayerStand(0))
			}

			results := finishRound(t, g)
			require.Len(t, results, 1)
			assert.Equal(t, tt.outcome, results[0].Outcome)
			assert.Equal(t, tt.net, results[0].Net)
			assert.Equal(t, tt.dealer, results[0].DealerValue)
			assert.Equal(t, uint(int64(DefaultStartingBank)+tt.net), g.Players()[0].Bank)
			assert.Equal(t, int64(DefaultDealerBank)-tt.net, g.Dealer().Bank)
			require.NoError(t, g.ValidateBankConservation())
		})
	}
}

func TestOddBetBlackjackTruncates(t *testing.T) {
	t.Parallel()

	g := newStackedGame(t, 1, "Ah Th Kd Qs")
	require.NoError(t, g.SetPlayerBet(0, 11))
	require.NoError(t, g.DealCards())

	results := finishRound(t, g)
	assert.Equal(t, uint(27), results[0].Payout)
	assert.Equal(t, int64(16), results[0].Net)
	assert.Equal(t, uint(1016), g.Players()[0].Bank)
}

func TestPlayerHit(t *testing.T) {
	t.Parallel()

	t.Run("bust marks player lost", func(t *testing.T) {
		t.Parallel()
		g := newStackedGame(t, 1, "Th 9c 6h 8c Kd")
		require.NoError(t, g.DealCards())

		res, err := g.PlayerHit(0)
		require.NoError(t, err)
		assert.Equal(t, HitBust, res.Status)
		assert.Equal(t, 26, res.Value)
		assert.Equal(t, deck.NewCard(deck.King, deck.Diamonds), res.Card)

		p := g.Players()[0]
		assert.Equal(t, Lost, p.Outcome)
		assert.False(t, g.CanPlayerAct(0))
		assert.True(t, g.AllPlayersDone())
	})

	t.Run("reaching 21 ends the turn", func(t *testing.T) {
		t.Parallel()
		g := newStackedGame(t, 1, "5h Tc 6h 7c Td")
		require.NoError(t, g.DealCards())

		res, err := g.PlayerHit(0)
		require.NoError(t, err)
		assert.Equal(t, HitTwentyOne, res.Status)
		assert.Equal(t, 21, res.Value)

		p := g.Players()[0]
		assert.Equal(t, Blackjack, p.Outcome)
		assert.True(t, p.Finished)
		assert.False(t, g.CanPlayerAct(0))
	})

	t.Run("below 21 continues", func(t *testing.T) {
		t.Parallel()
		g := newStackedGame(t, 1, "2h Tc 3h 7c 4d")
		require.NoError(t, g.DealCards())

		res, err := g.PlayerHit(0)
		require.NoError(t, err)
		assert.Equal(t, HitContinue, res.Status)
		assert.Equal(t, 9, res.Value)
		assert.True(t, g.CanPlayerAct(0))
	})
}

func TestNaturalBlackjackCannotAct(t *testing.T) {
	t.Parallel()

	g := newStackedGame(t, 2, "Ah 9h Tc Kd 8h 7c")
	require.NoError(t, g.DealCards())

	assert.False(t, g.CanPlayerAct(0))
	assert.True(t, g.CanPlayerAct(1))
	seat, ok := g.NextPlayerToAct()
	require.True(t, ok)
	assert.Equal(t, 1, seat)

	_, err := g.PlayerHit(0)
	assert.ErrorIs(t, err, ErrIllegalAction)
}

func TestDealerSkipsWhenEveryPlayerBusts(t *testing.T) {
	t.Parallel()

	// dealer holds 11 and would have to draw
	g := newStackedGame(t, 1, "Th 5c 6h 6c Kd 9s")
	require.NoError(t, g.DealCards())
	_, err := g.PlayerHit(0)
	require.NoError(t, err)

	require.NoError(t, g.RunDealerTurn())
	assert.Equal(t, 2, g.Dealer().Hand.Len())
	assert.Equal(t, 1, g.Shoe().Remaining())

	results, err := g.SettleRound()
	require.NoError(t, err)
	assert.Equal(t, Lost, results[0].Outcome)
}

func TestDealerStandOption(t *testing.T) {
	t.Parallel()

	g := newStackedGame(t, 1, "Th 9c Tc 8c 2d", WithDealerStand(18))
	require.NoError(t, g.DealCards())
	require.NoError(t, g.PlayerStand(0))
	assert.True(t, g.DealerShouldHit(), "17 is below a stand total of 18")
	require.NoError(t, g.RunDealerTurn())
	assert.Equal(t, 19, g.Dealer().Hand.Value())
	assert.False(t, g.DealerShouldHit())
}

func TestIllegalActions(t *testing.T) {
	t.Parallel()

	g := newStackedGame(t, 2, "Th 9h 9c 7h 8h 8c Kd Kc Kh Ks")

	_, err := g.PlayerHit(0)
	assert.ErrorIs(t, err, ErrIllegalAction, "hit before the deal")
	assert.ErrorIs(t, g.RunDealerTurn(), ErrIllegalAction, "dealer turn before the deal")
	_, err = g.SettleRound()
	assert.ErrorIs(t, err, ErrIllegalAction, "settle before the deal")
	assert.ErrorIs(t, g.DiscardAllHands(), ErrIllegalAction, "discard before the deal")

	require.NoError(t, g.DealCards())

	_, err = g.PlayerHit(5)
	assert.ErrorIs(t, err, ErrInvalidPlayerIndex)
	assert.ErrorIs(t, g.PlayerStand(-1), ErrInvalidPlayerIndex)
	assert.ErrorIs(t, g.RunDealerTurn(), ErrIllegalAction, "players still to act")

	require.NoError(t, g.PlayerStand(0))
	assert.ErrorIs(t, g.PlayerStand(0), ErrIllegalAction, "stand twice")
	_, err = g.PlayerHit(0)
	assert.ErrorIs(t, err, ErrIllegalAction, "hit after standing")

	require.NoError(t, g.PlayerStand(1))
	_, err = g.ApplyResults()
	assert.ErrorIs(t, err, ErrIllegalAction, "apply before settle")

	require.NoError(t, g.RunDealerTurn())
	assert.ErrorIs(t, g.RunDealerTurn(), ErrIllegalAction, "dealer turn twice")
	assert.ErrorIs(t, g.DiscardAllHands(), ErrIllegalAction, "discard before settle")

	_, err = g.SettleRound()
	require.NoError(t, err)
	assert.ErrorIs(t, g.DiscardAllHands(), ErrIllegalAction, "discard before apply")

	_, err = g.ApplyResults()
	require.NoError(t, err)
	_, err = g.ApplyResults()
	assert.ErrorIs(t, err, ErrIllegalAction, "apply twice")
	require.NoError(t, g.ValidateBankConservation())

	require.NoError(t, g.DiscardAllHands())
	assert.Equal(t, StateDealing, g.State())
	assert.Zero(t, g.CardsInPlay())
	require.NoError(t, g.ValidateCardConservation())
}

func TestDiscardKeepsBanksAndBets(t *testing.T) {
	t.Parallel()

	g := newStackedGame(t, 1, "Th Tc 8d Qs")
	require.NoError(t, g.SetPlayerBet(0, 25))
	require.NoError(t, g.DealCards())
	require.NoError(t, g.PlayerStand(0))
	finishRound(t, g)
	require.NoError(t, g.DiscardAllHands())

	p := g.Players()[0]
	assert.Equal(t, uint(975), p.Bank)
	assert.Equal(t, uint(25), p.Bet)
	assert.Equal(t, Push, p.Outcome)
	assert.False(t, p.Finished)
	assert.Equal(t, 4, g.Shoe().Discarded())
}

func TestReshuffleAcrossRounds(t *testing.T) {
	t.Parallel()

	// exactly one round's worth of cards; the second deal reuses the discards
	g := newStackedGame(t, 1, "Th Tc 8d Qs")
	for range 3 {
		require.NoError(t, g.DealCards())
		if g.CanPlayerAct(0) {
			require.NoError(t, g.PlayerStand(0))
		}
		require.NoError(t, g.ValidateCardConservation())
		finishRound(t, g)
		require.NoError(t, g.DiscardAllHands())
		require.NoError(t, g.ValidateCardConservation())
		require.NoError(t, g.ValidateBankConservation())
	}
	assert.Equal(t, 3, g.Round())
}

func TestCardConservationOverManyRounds(t *testing.T) {
	t.Parallel()

	g := NewGame(randutil.New(7), WithDecks(2))
	require.NoError(t, g.CreatePlayers(MaxPlayers))
	agent := standOn(17)

	for range 200 {
		require.NoError(t, g.DealCards())
		for {
			seat, ok := g.NextPlayerToAct()
			if !ok {
				break
			}
			if agent.Decide(g.View()).Action == Hit {
				_, err := g.PlayerHit(seat)
				require.NoError(t, err)
			} else {
				require.NoError(t, g.PlayerStand(seat))
			}
			require.NoError(t, g.ValidateCardConservation())
		}
		finishRound(t, g)
		require.NoError(t, g.ValidateBankConservation())
		require.NoError(t, g.DiscardAllHands())
		require.NoError(t, g.ValidateCardConservation())

		for i, p := range g.Players() {
			if p.Bet > p.Bank {
				require.NoError(t, g.SetPlayerBet(i, p.Bank))
			}
		}
	}
}

func TestShoeExhaustionAbandonsRound(t *testing.T) {
	t.Parallel()

	t.Run("during dealer turn", func(t *testing.T) {
		t.Parallel()
		// player 10 K, dealer 2 3 draws 4 and then finds the shoe empty
		g := newStackedGame(t, 1, "Th 2c Kh 3c 4d")
		require.NoError(t, g.DealCards())
		require.NoError(t, g.PlayerStand(0))

		assert.ErrorIs(t, g.RunDealerTurn(), ErrShoeExhausted)
		assert.True(t, g.Exhausted())

		_, err := g.SettleRound()
		assert.ErrorIs(t, err, ErrShoeExhausted)
		_, err = g.ApplyResults()
		assert.ErrorIs(t, err, ErrShoeExhausted)
		assert.Empty(t, g.Results())
		assert.Equal(t, uint(DefaultStartingBank), g.players[0].Bank)
		require.NoError(t, g.ValidateBankConservation())
	})

	t.Run("during player hit", func(t *testing.T) {
		t.Parallel()
		// player 10 5, dealer 2 3, nothing left to hit
		g := newStackedGame(t, 1, "Th 2c 5h 3c")
		require.NoError(t, g.DealCards())

		_, err := g.PlayerHit(0)
		assert.ErrorIs(t, err, ErrShoeExhausted)
		assert.False(t, g.CanPlayerAct(0))
		assert.ErrorIs(t, g.PlayerStand(0), ErrShoeExhausted)
		assert.ErrorIs(t, g.RunDealerTurn(), ErrShoeExhausted)

		_, err = g.SettleRound()
		assert.ErrorIs(t, err, ErrShoeExhausted)
		assert.ErrorIs(t, g.SetPlayerBet(0, 20), ErrShoeExhausted)
	})
}

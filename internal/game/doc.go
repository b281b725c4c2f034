// Package game implements the blackjack round engine.
//
// The main type is Game, which owns the shoe, the seated players and the
// dealer, and moves one round at a time through an explicit state machine:
//
//	Setup -> Dealing -> PlayerTurns -> DealerTurn -> Settlement -> Dealing ...
//
// # Basic Usage
//
// A presentation layer drives a round with discrete commands:
//
//	g := game.NewGame(randutil.New(42))
//	_ = g.CreatePlayers(2)
//	_ = g.SetPlayerBet(0, 25)
//	_ = g.DealCards()
//	for g.CanPlayerAct(0) {
//	    res, _ := g.PlayerHit(0)
//	    if res.Value >= 17 {
//	        _ = g.PlayerStand(0)
//	    }
//	}
//	// ... other seats ...
//	_ = g.RunDealerTurn()
//	_, _ = g.SettleRound()
//	results, _ := g.ApplyResults()
//	_ = g.DiscardAllHands()
//
// Engine runs the same sequence with Agents choosing for each seat.
//
// # Deterministic Testing
//
// A Game requires an explicit *rand.Rand. For complete control over the deal,
// provide a stacked shoe:
//
//	shoe := deck.NewShoeFromCards(rng, deck.MustParseCards("Ah 9c Kd 7s")...)
//	g := game.NewGame(rng, game.WithShoe(shoe))
//
// # Errors
//
// Every command returns a wrapped sentinel error (ErrInvalidPlayerCount,
// ErrInvalidPlayerIndex, ErrBetExceedsBank, ErrShoeExhausted,
// ErrIllegalAction); none of them leave the game in an inconsistent state
// except ErrShoeExhausted, which ends the session: the round in progress is
// abandoned and every later command returns it.
package game

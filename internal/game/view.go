package game

import "github.com/lox/blackjack/internal/deck"

// PlayerView is the read-only state of one player
type PlayerView struct {
	Seat      int
	Name      string
	Cards     []deck.Card
	Value     int
	Soft      bool
	Bank      uint
	Bet       uint
	Outcome   Outcome
	Finished  bool
	CanAct    bool
	Bust      bool
	Blackjack bool
}

// DealerView is the dealer as the players see it. Until the dealer turn
// begins only the first card is shown and Value is that card's points.
type DealerView struct {
	Cards       []deck.Card
	HiddenCards int
	Value       int
	Soft        bool
	Bank        int64
	Revealed    bool
	Bust        bool
	Blackjack   bool
}

// UpCard returns the dealer's visible first card
func (d DealerView) UpCard() (deck.Card, bool) {
	if len(d.Cards) == 0 {
		return deck.Card{}, false
	}
	return d.Cards[0], true
}

// TableView is an immutable snapshot of the table handed to agents and
// presentation layers.
type TableView struct {
	RoundID       string
	Round         int
	State         State
	Players       []PlayerView
	Dealer        DealerView
	ActingSeat    int // -1 when nobody can act
	DealerStand   int
	ShoeRemaining int
	ShoeDiscarded int
}

// Acting returns the view of the player due to act
func (v TableView) Acting() (PlayerView, bool) {
	if v.ActingSeat < 0 || v.ActingSeat >= len(v.Players) {
		return PlayerView{}, false
	}
	return v.Players[v.ActingSeat], true
}

// View returns a snapshot of the table with the dealer hole card hidden
// until the dealer turn.
func (g *Game) View() TableView {
	acting, _ := g.NextPlayerToAct()
	return TableView{
		RoundID:       g.roundID,
		Round:         g.round,
		State:         g.state,
		Players:       g.playerViews(),
		Dealer:        g.DealerView(),
		ActingSeat:    acting,
		DealerStand:   g.cfg.dealerStand,
		ShoeRemaining: g.shoe.Remaining(),
		ShoeDiscarded: g.shoe.Discarded(),
	}
}

// DealerRevealed reports whether the hole card is visible
func (g *Game) DealerRevealed() bool {
	return g.state == StateDealerTurn || g.state == StateSettlement
}

// DealerView returns the dealer as currently visible to players
func (g *Game) DealerView() DealerView {
	h := &g.dealer.Hand
	if g.DealerRevealed() || h.Len() == 0 {
		return DealerView{
			Cards:     h.Cards(),
			Value:     h.Value(),
			Soft:      h.IsSoft(),
			Bank:      g.dealer.Bank,
			Revealed:  g.DealerRevealed(),
			Bust:      h.IsBust(),
			Blackjack: h.IsBlackjack(),
		}
	}

	cards := h.Cards()
	return DealerView{
		Cards:       cards[:1],
		HiddenCards: len(cards) - 1,
		Value:       cards[0].Points(),
		Bank:        g.dealer.Bank,
	}
}

func (g *Game) playerViews() []PlayerView {
	views := make([]PlayerView, len(g.players))
	for i, p := range g.players {
		views[i] = PlayerView{
			Seat:      p.Seat,
			Name:      p.Name,
			Cards:     p.Hand.Cards(),
			Value:     p.Hand.Value(),
			Soft:      p.Hand.IsSoft(),
			Bank:      p.Bank,
			Bet:       p.Bet,
			Outcome:   p.Outcome,
			Finished:  p.Finished,
			CanAct:    g.CanPlayerAct(i),
			Bust:      p.Hand.IsBust(),
			Blackjack: p.Hand.IsBlackjack(),
		}
	}
	return views
}

package game

import (
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// Hand is the ordered sequence of cards held by one participant.
// Hand does not know about the shoe; callers route cleared cards to the
// discard pile via deck.Shoe.DiscardHand.
type Hand struct {
	cards []deck.Card
}

// NewHand creates a hand holding cards
func NewHand(cards ...deck.Card) *Hand {
	h := &Hand{}
	for _, c := range cards {
		h.Add(c)
	}
	return h
}

// Add appends a card to the hand
func (h *Hand) Add(card deck.Card) {
	h.cards = append(h.cards, card)
}

// Cards returns a copy of the cards in deal order
func (h *Hand) Cards() []deck.Card {
	out := make([]deck.Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Len returns the number of cards held
func (h *Hand) Len() int {
	return len(h.cards)
}

// Clear empties the hand
func (h *Hand) Clear() {
	h.cards = nil
}

// hardValue counts every ace as one
func (h *Hand) hardValue() (total int, aces int) {
	for _, c := range h.cards {
		total += c.Points()
		if c.IsAce() {
			aces++
		}
	}
	return total, aces
}

// Value returns the blackjack total. Aces count one; when the total is at
// most 11 and the hand holds an ace, one ace is promoted to eleven.
func (h *Hand) Value() int {
	total, aces := h.hardValue()
	if total <= 11 && aces > 0 {
		total += 10
	}
	return total
}

// IsSoft reports whether an ace is currently counted as eleven
func (h *Hand) IsSoft() bool {
	total, aces := h.hardValue()
	return total <= 11 && aces > 0
}

// IsBlackjack reports a two card 21
func (h *Hand) IsBlackjack() bool {
	return len(h.cards) == 2 && h.Value() == 21
}

// IsBust reports a total over 21
func (h *Hand) IsBust() bool {
	return h.Value() > 21
}

// String renders the hand as "A♠ K♥ (21)"
func (h *Hand) String() string {
	if len(h.cards) == 0 {
		return "(empty)"
	}
	parts := make([]string, 0, len(h.cards)+1)
	for _, c := range h.cards {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " ") + " (" + strconv.Itoa(h.Value()) + ")"
}

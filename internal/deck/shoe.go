package deck

import (
	"errors"
	"math/rand/v2"
)

// DefaultDecks is the number of 52-card decks in a standard shoe
const DefaultDecks = 6

// CardsPerDeck is the size of one standard deck
const CardsPerDeck = 52

// ErrShoeExhausted is returned when both the draw pile and the discard pile are empty.
var ErrShoeExhausted = errors.New("shoe exhausted")

// CardHolder is anything that holds dealt cards and can give them back.
type CardHolder interface {
	Cards() []Card
	Clear()
}

// Shoe is a multi-deck card source with a draw pile and a discard pile.
// The top of the shoe is the end of the draw slice.
type Shoe struct {
	cards     []Card
	discarded []Card
	decks     int
	size      int
	rng       *rand.Rand
}

// NewShoe builds an unshuffled shoe of decks concatenated 52-card sequences.
func NewShoe(rng *rand.Rand, decks int) *Shoe {
	if rng == nil {
		panic("rng is required for shoe creation")
	}
	if decks < 1 {
		panic("at least one deck required")
	}

	s := &Shoe{
		cards: make([]Card, 0, decks*CardsPerDeck),
		decks: decks,
		size:  decks * CardsPerDeck,
		rng:   rng,
	}
	for range decks {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				s.cards = append(s.cards, NewCard(rank, suit))
			}
		}
	}
	return s
}

// NewShuffledShoe builds a shoe and shuffles it once.
func NewShuffledShoe(rng *rand.Rand, decks int) *Shoe {
	s := NewShoe(rng, decks)
	s.Shuffle()
	return s
}

// NewShoeFromCards builds a stacked shoe that deals cards in the given order.
// Used for scripted rounds and deterministic testing.
func NewShoeFromCards(rng *rand.Rand, cards ...Card) *Shoe {
	if rng == nil {
		panic("rng is required for shoe creation")
	}
	s := &Shoe{
		cards: make([]Card, len(cards)),
		size:  len(cards),
		rng:   rng,
	}
	for i, c := range cards {
		s.cards[len(cards)-1-i] = c
	}
	return s
}

// Shuffle shuffles the draw pile using Fisher-Yates
func (s *Shoe) Shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw removes and returns the top card. When the draw pile is empty the
// discard pile is folded back in and shuffled first.
func (s *Shoe) Draw() (Card, error) {
	if len(s.cards) == 0 {
		if len(s.discarded) == 0 {
			return Card{}, ErrShoeExhausted
		}
		s.reshuffle()
	}

	last := len(s.cards) - 1
	card := s.cards[last]
	s.cards = s.cards[:last]
	return card, nil
}

func (s *Shoe) reshuffle() {
	s.cards = append(s.cards, s.discarded...)
	s.discarded = s.discarded[:0]
	s.Shuffle()
}

// Discard adds played cards to the discard pile
func (s *Shoe) Discard(cards ...Card) {
	s.discarded = append(s.discarded, cards...)
}

// DiscardHand moves every card of h into the discard pile and empties h.
func (s *Shoe) DiscardHand(h CardHolder) {
	s.Discard(h.Cards()...)
	h.Clear()
}

// Remaining returns the number of cards left in the draw pile
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Discarded returns the number of cards in the discard pile
func (s *Shoe) Discarded() int {
	return len(s.discarded)
}

// Size returns the number of cards the shoe was built with, dealt or not.
func (s *Shoe) Size() int {
	return s.size
}

// Decks returns the number of decks the shoe was built from (0 for stacked shoes)
func (s *Shoe) Decks() int {
	return s.decks
}

// Penetration returns the fraction of the shoe currently out of the draw pile.
func (s *Shoe) Penetration() float64 {
	if s.size == 0 {
		return 0
	}
	return float64(s.size-len(s.cards)) / float64(s.size)
}

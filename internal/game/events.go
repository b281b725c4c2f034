package game

import (
	"time"

	"github.com/lox/blackjack/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for round events
const (
	EventTypeRoundStart   EventType = "round_start"
	EventTypeCardDealt    EventType = "card_dealt"
	EventTypePlayerAction EventType = "player_action"
	EventTypeDealerTurn   EventType = "dealer_turn"
	EventTypeRoundEnd     EventType = "round_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything that happens during a round
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published when cards are about to be dealt
type RoundStartEvent struct {
	RoundID   string
	Round     int
	Players   []PlayerView
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundStartEvent creates a new round start event
func NewRoundStartEvent(roundID string, round int, players []PlayerView) RoundStartEvent {
	return RoundStartEvent{
		RoundID:   roundID,
		Round:     round,
		Players:   players,
		timestamp: time.Now(),
	}
}

// CardDealtEvent is published for every card dealt during the initial deal.
// The dealer's hole card is published with Hidden set and a zero Card.
type CardDealtEvent struct {
	RoundID   string
	Seat      int
	Name      string
	Card      deck.Card
	Hidden    bool
	timestamp time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// NewCardDealtEvent creates a new card dealt event
func NewCardDealtEvent(roundID string, seat int, name string, card deck.Card, hidden bool) CardDealtEvent {
	if hidden {
		card = deck.Card{}
	}
	return CardDealtEvent{
		RoundID:   roundID,
		Seat:      seat,
		Name:      name,
		Card:      card,
		Hidden:    hidden,
		timestamp: time.Now(),
	}
}

// PlayerActionEvent is published after a hit or stand has been applied
type PlayerActionEvent struct {
	RoundID   string
	Seat      int
	Name      string
	Action    Action
	Card      deck.Card // drawn card, zero for a stand
	Status    HitStatus // only meaningful for hits
	Value     int
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// NewPlayerActionEvent creates a new player action event
func NewPlayerActionEvent(roundID string, p *Player, action Action, card deck.Card, status HitStatus) PlayerActionEvent {
	return PlayerActionEvent{
		RoundID:   roundID,
		Seat:      p.Seat,
		Name:      p.Name,
		Action:    action,
		Card:      card,
		Status:    status,
		Value:     p.Hand.Value(),
		timestamp: time.Now(),
	}
}

// DealerTurnEvent is published once the dealer has revealed and played out
type DealerTurnEvent struct {
	RoundID   string
	Cards     []deck.Card
	Value     int
	Bust      bool
	Skipped   bool // every player had already busted
	timestamp time.Time
}

func (e DealerTurnEvent) EventType() EventType { return EventTypeDealerTurn }
func (e DealerTurnEvent) Timestamp() time.Time { return e.timestamp }

// NewDealerTurnEvent creates a new dealer turn event
func NewDealerTurnEvent(roundID string, hand *Hand, skipped bool) DealerTurnEvent {
	return DealerTurnEvent{
		RoundID:   roundID,
		Cards:     hand.Cards(),
		Value:     hand.Value(),
		Bust:      hand.IsBust(),
		Skipped:   skipped,
		timestamp: time.Now(),
	}
}

// RoundEndEvent is published when results have been applied to the banks
type RoundEndEvent struct {
	RoundID     string
	Round       int
	Results     []Result
	DealerValue int
	DealerBank  int64
	timestamp   time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundEndEvent creates a new round end event
func NewRoundEndEvent(roundID string, round int, results []Result, dealerValue int, dealerBank int64) RoundEndEvent {
	out := make([]Result, len(results))
	copy(out, results)
	return RoundEndEvent{
		RoundID:     roundID,
		Round:       round,
		Results:     out,
		DealerValue: dealerValue,
		DealerBank:  dealerBank,
		timestamp:   time.Now(),
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a synchronous in-memory event bus. Subscribers run on
// the publishing goroutine, in subscription order.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. Function
// subscribers cannot be compared and are never removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(EventSubscriberFunc); ok {
		return
	}
	for i, sub := range bus.subscribers {
		if _, ok := sub.(EventSubscriberFunc); ok {
			continue
		}
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

package game

import (
	"time"

	"github.com/lox/holdem-knockout/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeHandStart    EventType = "hand_start"
	EventTypePhase        EventType = "phase"
	EventTypePlayerAction EventType = "player_action"
	EventTypeHandEnd      EventType = "hand_end"
	EventTypeSessionEnd   EventType = "session_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a session
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// HandStartEvent is published after hole cards are dealt
type HandStartEvent struct {
	HandID       string
	HandNumber   int
	Players      []PlayerState
	PreviousHand *HandResult
	timestamp    time.Time
}

func (e HandStartEvent) EventType() EventType { return EventTypeHandStart }
func (e HandStartEvent) Timestamp() time.Time { return e.timestamp }

// NewHandStartEvent creates a new hand start event
func NewHandStartEvent(handID string, handNumber int, players []PlayerState, previous *HandResult) HandStartEvent {
	return HandStartEvent{
		HandID:       handID,
		HandNumber:   handNumber,
		Players:      players,
		PreviousHand: previous,
		timestamp:    time.Now(),
	}
}

// PhaseEvent is published when community cards are revealed
type PhaseEvent struct {
	Phase          Phase
	CommunityCards []deck.Card
	Pot            int
	Players        []PlayerState
	WillWager      bool // false when fewer than two contenders remain
	timestamp      time.Time
}

func (e PhaseEvent) EventType() EventType { return EventTypePhase }
func (e PhaseEvent) Timestamp() time.Time { return e.timestamp }

// NewPhaseEvent creates a new phase event
func NewPhaseEvent(phase Phase, communityCards []deck.Card, pot int, players []PlayerState, willWager bool) PhaseEvent {
	cards := make([]deck.Card, len(communityCards))
	copy(cards, communityCards)
	return PhaseEvent{
		Phase:          phase,
		CommunityCards: cards,
		Pot:            pot,
		Players:        players,
		WillWager:      willWager,
		timestamp:      time.Now(),
	}
}

// PlayerActionEvent is published when a player's decision is accepted
type PlayerActionEvent struct {
	PlayerName string
	Action     Action
	Amount     int
	Phase      Phase
	Reasoning  string
	PotAfter   int
	ChipsAfter int
	timestamp  time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// NewPlayerActionEvent creates a new player action event
func NewPlayerActionEvent(playerName string, action Action, amount int, phase Phase, reasoning string, potAfter, chipsAfter int) PlayerActionEvent {
	return PlayerActionEvent{
		PlayerName: playerName,
		Action:     action,
		Amount:     amount,
		Phase:      phase,
		Reasoning:  reasoning,
		PotAfter:   potAfter,
		ChipsAfter: chipsAfter,
		timestamp:  time.Now(),
	}
}

// HandEndEvent is published once the pot has been awarded
type HandEndEvent struct {
	Result    HandResult
	timestamp time.Time
}

func (e HandEndEvent) EventType() EventType { return EventTypeHandEnd }
func (e HandEndEvent) Timestamp() time.Time { return e.timestamp }

// NewHandEndEvent creates a new hand end event
func NewHandEndEvent(result HandResult) HandEndEvent {
	return HandEndEvent{Result: result, timestamp: time.Now()}
}

// SessionEndEvent is published when a single player holds every chip
type SessionEndEvent struct {
	Result    SessionResult
	timestamp time.Time
}

func (e SessionEndEvent) EventType() EventType { return EventTypeSessionEnd }
func (e SessionEndEvent) Timestamp() time.Time { return e.timestamp }

// NewSessionEndEvent creates a new session end event
func NewSessionEndEvent(result SessionResult) SessionEndEvent {
	return SessionEndEvent{Result: result, timestamp: time.Now()}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a synchronous in-memory event bus
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

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish delivers an event to every subscriber in subscription order
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// EventSubscriberFunc adapts a function to the EventSubscriber interface
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f
func (f EventSubscriberFunc) OnEvent(event GameEvent) {
	f(event)
}

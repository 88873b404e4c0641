// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-snake/pkg/physics"
)

// Type represents the type of event
type Type string

// Engine event types
const (
	GameStarted      Type = "game_started"
	PlayerMoved      Type = "player_moved"
	DirectionChanged Type = "direction_changed"
	SpeedChanged     Type = "speed_changed"
	GameOver         Type = "game_over"
	GameQuit         Type = "game_quit"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler
type Subscription struct {
	ID     uint64
	Cancel func()
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine.
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// PlayerEvent carries the state of the player after a move or collision
type PlayerEvent struct {
	BaseEvent
	PlayerID string
	Head     physics.Vector2D
	Tick     uint64
}

// NewPlayerEvent creates a new player event
func NewPlayerEvent(eventType Type, source interface{}, playerID string, head physics.Vector2D, tick uint64) *PlayerEvent {
	return &PlayerEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		PlayerID: playerID,
		Head:     head,
		Tick:     tick,
	}
}

// DirectionEvent records an accepted turn
type DirectionEvent struct {
	BaseEvent
	From string
	To   string
}

// NewDirectionEvent creates a new direction event
func NewDirectionEvent(source interface{}, from, to string) *DirectionEvent {
	return &DirectionEvent{
		BaseEvent: BaseEvent{
			EventType: DirectionChanged,
			Source:    source,
		},
		From: from,
		To:   to,
	}
}

// SpeedEvent records a change of the simulation rate
type SpeedEvent struct {
	BaseEvent
	FPS int
}

// NewSpeedEvent creates a new speed event
func NewSpeedEvent(source interface{}, fps int) *SpeedEvent {
	return &SpeedEvent{
		BaseEvent: BaseEvent{
			EventType: SpeedChanged,
			Source:    source,
		},
		FPS: fps,
	}
}

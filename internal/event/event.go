// Package event lets the editor announce changes without depending on who
// listens.
package event

import (
	"context"

	"github.com/Bukisoo/d3-force-tree-app/internal/log"
)

// EventType represents the type of event
type EventType int

const (
	ForestChanged EventType = iota
	ForestLoaded
	NodeSelected
	HistoryUndone
	StoreFailed
)

func (t EventType) String() string {
	switch t {
	case ForestChanged:
		return "ForestChanged"
	case ForestLoaded:
		return "ForestLoaded"
	case NodeSelected:
		return "NodeSelected"
	case HistoryUndone:
		return "HistoryUndone"
	case StoreFailed:
		return "StoreFailed"
	}
	return "Unknown"
}

// Event represents an event with its type and associated data
type Event struct {
	Type EventType
	Data interface{}
}

// EventHandler is a function type for event handlers
type EventHandler func(Event)

// EventManager dispatches events to subscribers. Handlers run synchronously
// on the publishing goroutine, in subscription order, so they observe the
// state that produced the event and nothing later.
type EventManager struct {
	subscribers map[EventType][]EventHandler
	logger      *log.Logger
}

// NewEventManager creates a new EventManager instance
func NewEventManager(logger *log.Logger) *EventManager {
	return &EventManager{
		subscribers: make(map[EventType][]EventHandler),
		logger:      logger,
	}
}

// Subscribe adds a new event handler for a specific event type
func (em *EventManager) Subscribe(eventType EventType, handler EventHandler) {
	em.subscribers[eventType] = append(em.subscribers[eventType], handler)
}

// Publish calls every handler subscribed to the event's type. A panicking
// handler is logged and does not stop the others.
func (em *EventManager) Publish(event Event) {
	for _, handler := range em.subscribers[event.Type] {
		em.dispatch(handler, event)
	}
}

func (em *EventManager) dispatch(h EventHandler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			em.logger.Error(context.Background(), "Panic in event handler", log.Fields{
				"event": event.Type.String(),
				"panic": r,
			})
		}
	}()
	h(event)
}

// Package connectivity exposes the online/offline signal the offline queue
// reacts to. Transitions are edge-triggered events; the current state can be
// queried at any time.
package connectivity

import "sync"

// State represents the connectivity state
type State string

const (
	// Online means the backend link is up
	Online State = "online"
	// Offline means the backend link is down
	Offline State = "offline"
)

// Signal defines the interface for observing connectivity transitions
//
//go:generate mockgen -source=connectivity.go -destination=../mocks/connectivity.go -package=mocks -mock_names=Signal=MockSignal
type Signal interface {
	// Online reports the current connectivity state
	Online() bool
	// Subscribe registers a handler invoked on every state transition.
	// Handlers run on the transition's goroutine and must not block.
	Subscribe(handler func(State))
}

// notifier is the shared subscriber bookkeeping for Signal implementations
type notifier struct {
	mu       sync.Mutex
	online   bool
	handlers []func(State)
}

func (n *notifier) Online() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.online
}

func (n *notifier) Subscribe(handler func(State)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers = append(n.handlers, handler)
}

// transition flips the state and fires handlers, but only on an actual edge
func (n *notifier) transition(online bool) {
	n.mu.Lock()
	if n.online == online {
		n.mu.Unlock()
		return
	}
	n.online = online
	handlers := make([]func(State), len(n.handlers))
	copy(handlers, n.handlers)
	n.mu.Unlock()

	state := Offline
	if online {
		state = Online
	}
	for _, handler := range handlers {
		handler(state)
	}
}

// Manual is a Signal whose state is driven explicitly by the caller.
// Used by tests and by the offline-only CLI path.
type Manual struct {
	notifier
}

// NewManual creates a manual signal with the given initial state
func NewManual(online bool) *Manual {
	m := &Manual{}
	m.online = online
	return m
}

// SetOnline drives the signal to the given state, firing subscribers on edges
func (m *Manual) SetOnline(online bool) {
	m.transition(online)
}

// Package notify carries order change events to the admin view and outbound
// notifications to customers.
package notify

import (
	"sync"
)

type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
)

type Event struct {
	Type    EventType
	OrderID string
}

// Bus is an in-process change feed over the orders table. The admin page
// subscribes for the lifetime of the view and re-fetches the full list on any
// event, so a dropped event costs nothing but a delayed refresh; slow
// subscribers are therefore skipped rather than blocked on.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe returns the event channel and a cancel function that must be
// called when the subscriber goes away.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, 16)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default: // full buffer, drop
		}
	}
}

// File: store/notifier.go
package store

import (
	"sync"

	"kiddushware/logger"
)

// Collections reported in change events.
const (
	CollectionSponsorships   = "sponsorships"
	CollectionCustomEvents   = "custom_events"
	CollectionContacts       = "contacts"
	CollectionConfigurations = "configurations"
)

// Change describes one committed mutation: which collection was touched and
// which owning user's data changed. Subscribers re-query the store; the
// event itself carries no row data.
type Change struct {
	Collection string
	OwnerID    string
}

// Notifier fans committed mutations out to registered listeners. Listener
// callbacks run on the publishing goroutine and must not block.
type Notifier struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func(Change)
}

// NewNotifier returns an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{listeners: make(map[int]func(Change))}
}

// Subscribe registers fn for all future changes and returns a cancel
// function. Cancel is idempotent; calling it twice is safe.
func (n *Notifier) Subscribe(fn func(Change)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	id := n.nextID
	n.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.listeners, id)
		})
	}
}

// Publish delivers a change event to every registered listener.
func (n *Notifier) Publish(c Change) {
	n.mu.Lock()
	fns := make([]func(Change), 0, len(n.listeners))
	for _, fn := range n.listeners {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	logger.Debug.Printf("Publishing change: collection=%s owner=%s to %d listeners", c.Collection, c.OwnerID, len(fns))
	for _, fn := range fns {
		fn(c)
	}
}

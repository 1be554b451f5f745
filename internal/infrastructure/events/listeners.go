package events

import (
	"context"
	"sync"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/indraprashad/Adhikari-tech-solution/internal/metrics"
)

type listener struct {
	id uint64
	fn func(domain.AuthEvent)
}

type listeners struct {
	mu     sync.RWMutex
	nextID uint64
	byID   map[string][]listener
}

func newListeners() *listeners {
	return &listeners{byID: make(map[string][]listener)}
}

func (l *listeners) add(clientID string, fn func(domain.AuthEvent)) domain.Subscription {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	id := l.nextID
	l.byID[clientID] = append(l.byID[clientID], listener{id: id, fn: fn})
	return &subscription{remove: func() { l.remove(clientID, id) }}
}

func (l *listeners) remove(clientID string, id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	current := l.byID[clientID]
	kept := current[:0:0]
	for _, ln := range current {
		if ln.id != id {
			kept = append(kept, ln)
		}
	}
	if len(kept) == 0 {
		delete(l.byID, clientID)
		return
	}
	l.byID[clientID] = kept
}

func (l *listeners) deliver(event domain.AuthEvent) {
	l.mu.RLock()
	targets := append([]listener(nil), l.byID[event.ClientID]...)
	l.mu.RUnlock()
	for _, ln := range targets {
		ln.fn(event)
	}
}

func (l *listeners) count(clientID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.byID[clientID])
}

type subscription struct {
	once   sync.Once
	remove func()
}

func (s *subscription) Unsubscribe() {
	s.once.Do(s.remove)
}

// MemoryEventBus delivers synchronously inside Publish. It serves single-process
// deployments without Redis and tests.
type MemoryEventBus struct {
	mu    sync.Mutex
	local *listeners
}

func NewMemoryEventBus() *MemoryEventBus {
	return &MemoryEventBus{local: newListeners()}
}

// Publish implements domain.EventBus; publishes are serialized to keep order
func (b *MemoryEventBus) Publish(_ context.Context, event domain.AuthEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	metrics.AuthEvents.WithLabelValues(string(event.Type)).Inc()
	b.local.deliver(event)
	return nil
}

// Subscribe implements domain.EventBus
func (b *MemoryEventBus) Subscribe(clientID string, fn func(domain.AuthEvent)) domain.Subscription {
	return b.local.add(clientID, fn)
}

// Listeners reports how many listeners a client has
func (b *MemoryEventBus) Listeners(clientID string) int {
	return b.local.count(clientID)
}

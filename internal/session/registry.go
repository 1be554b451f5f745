package session

import (
	"context"
	"sync"
	"time"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/indraprashad/Adhikari-tech-solution/internal/metrics"
	"github.com/rs/zerolog"
)

// ClientFactory builds the auth client a store talks through
type ClientFactory func(clientID string) domain.AuthClient

type entry struct {
	store    *Store
	lastSeen time.Time
}

// Registry keeps one Store per visitor and drops stores that went idle
type Registry struct {
	newClient ClientFactory
	gate      AdminChecker
	opts      Options
	idleTTL   time.Duration
	log       zerolog.Logger
	now       func() time.Time

	mu     sync.Mutex
	stores map[string]*entry
	closed bool
}

func NewRegistry(newClient ClientFactory, gate AdminChecker, opts Options, idleTTL time.Duration, log zerolog.Logger) *Registry {
	return &Registry{
		newClient: newClient,
		gate:      gate,
		opts:      opts,
		idleTTL:   idleTTL,
		log:       log.With().Str("component", "session_registry").Logger(),
		now:       time.Now,
		stores:    make(map[string]*entry),
	}
}

// Get returns the client's store, creating and initializing it on first use
func (r *Registry) Get(clientID string) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, domain.ErrStoreClosed
	}
	if e, ok := r.stores[clientID]; ok {
		e.lastSeen = r.now()
		return e.store, nil
	}

	store := NewStore(r.newClient(clientID), r.gate, r.opts, r.log.With().Str("client_id", clientID).Logger())
	r.stores[clientID] = &entry{store: store, lastSeen: r.now()}
	metrics.ActiveStores.Inc()

	settle := r.opts.withDefaults()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), settle.FetchTimeout+settle.CheckTimeout)
		defer cancel()
		if err := store.Initialize(ctx); err != nil {
			r.log.Warn().Err(err).Str("client_id", clientID).Msg("session store did not settle")
		}
	}()
	return store, nil
}

// Peek returns an existing store without creating one
func (r *Registry) Peek(clientID string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.stores[clientID]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.store, true
}

// Len reports how many stores are held
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// Sweep tears down stores unused for longer than the idle TTL
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	var idle []*Store
	for id, e := range r.stores {
		if e.lastSeen.Before(cutoff) {
			idle = append(idle, e.store)
			delete(r.stores, id)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		s.Teardown()
		metrics.ActiveStores.Dec()
	}
	if len(idle) > 0 {
		r.log.Debug().Int("count", len(idle)).Msg("idle session stores released")
	}
	return len(idle)
}

// RunJanitor sweeps on every tick until ctx is done
func (r *Registry) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Close tears down every store; later Get calls fail
func (r *Registry) Close() {
	r.mu.Lock()
	r.closed = true
	stores := r.stores
	r.stores = make(map[string]*entry)
	r.mu.Unlock()

	for _, e := range stores {
		e.store.Teardown()
		metrics.ActiveStores.Dec()
	}
}

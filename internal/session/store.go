package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/indraprashad/Adhikari-tech-solution/internal/metrics"
	"github.com/rs/zerolog"
)

// State is a snapshot of the store. Session is shared and must not be mutated.
type State struct {
	Loading    bool
	Session    *domain.Session
	IsAdmin    bool
	Generation uint64
}

// Options tunes a Store
type Options struct {
	// FetchTimeout bounds the wait for the initial session
	FetchTimeout time.Duration
	// CheckTimeout bounds each admin check
	CheckTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = 5 * time.Second
	}
	if o.CheckTimeout <= 0 {
		o.CheckTimeout = 5 * time.Second
	}
	return o
}

type checkResult struct {
	gen   uint64
	check AdminCheck
}

type update struct {
	event *domain.AuthEvent
	check *checkResult
}

// Store holds the session of one client. All state changes are applied by a
// single goroutine in the order events were delivered; readers get snapshots.
type Store struct {
	client domain.AuthClient
	gate   AdminChecker
	opts   Options
	log    zerolog.Logger

	updates chan update
	quit    chan struct{}
	done    chan struct{}

	checkCtx    context.Context
	cancelCheck context.CancelFunc

	mu      sync.RWMutex
	state   State
	changed chan struct{}
	subs    map[int]func(State)
	nextSub int
	sub     domain.Subscription
	closed  bool

	initOnce     sync.Once
	initErr      error
	teardownOnce sync.Once

	// owned by the writer goroutine
	gen         uint64
	blockingGen uint64
	resolvedGen uint64
	initialized bool
	inflight    context.CancelFunc
}

// NewStore creates a store in the loading state and starts its writer
func NewStore(client domain.AuthClient, gate AdminChecker, opts Options, log zerolog.Logger) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		client:      client,
		gate:        gate,
		opts:        opts.withDefaults(),
		log:         log.With().Str("component", "session_store").Logger(),
		updates:     make(chan update, 64),
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
		checkCtx:    ctx,
		cancelCheck: cancel,
		state:       State{Loading: true},
		changed:     make(chan struct{}),
		subs:        make(map[int]func(State)),
	}
	go s.run()
	return s
}

// Initialize subscribes to session changes and returns once the store has
// settled on the INITIAL_SESSION event. Only the first call does work.
func (s *Store) Initialize(ctx context.Context) error {
	s.initOnce.Do(func() { s.initErr = s.initialize() })
	if s.initErr != nil {
		return s.initErr
	}
	_, err := s.Await(ctx)
	return err
}

func (s *Store) initialize() error {
	sub, err := s.client.OnSessionChange(s.onSessionChanged)
	if err != nil {
		// settle signed out so waiting requests are not held forever
		s.onSessionChanged(domain.NewAuthEvent(domain.EventInitialSession, "", nil))
		return fmt.Errorf("failed to subscribe to session changes: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		sub.Unsubscribe()
		return domain.ErrStoreClosed
	}
	s.sub = sub
	return nil
}

func (s *Store) onSessionChanged(event domain.AuthEvent) {
	if !s.push(update{event: &event}) {
		s.log.Debug().Str("event", string(event.Type)).Msg("event after teardown ignored")
	}
}

// push hands an update to the writer; it reports false once torn down
func (s *Store) push(u update) bool {
	select {
	case <-s.quit:
		return false
	default:
	}
	select {
	case s.updates <- u:
		return true
	case <-s.quit:
		return false
	}
}

func (s *Store) run() {
	defer close(s.done)
	for {
		select {
		case <-s.quit:
			return
		case u := <-s.updates:
			s.apply(u)
		}
	}
}

func (s *Store) apply(u update) {
	switch {
	case u.event != nil:
		if u.event.Type == domain.EventInitialSession && !s.initialized {
			s.initialized = true
			if s.gen > 0 {
				s.log.Debug().Msg("initial session superseded by a newer event")
				s.publish(s.current())
				return
			}
		}
		s.applySession(u.event.Session, u.event.Type.Blocking())
		s.log.Debug().
			Str("event", string(u.event.Type)).
			Uint64("generation", s.gen).
			Msg("session change applied")
	case u.check != nil:
		s.applyCheck(*u.check)
	}
}

func (s *Store) current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) applySession(session *domain.Session, blocking bool) {
	if s.inflight != nil {
		s.inflight()
		s.inflight = nil
	}

	s.gen++
	gen := s.gen
	prev := s.current()
	next := State{Session: session, IsAdmin: prev.IsAdmin, Generation: gen}
	if blocking {
		s.blockingGen = gen
	}
	if !prev.Session.SameUser(session) {
		next.IsAdmin = false
	}

	if session == nil {
		next.IsAdmin = false
		s.resolvedGen = gen
	} else {
		s.startCheck(gen, session)
	}
	s.publish(next)
}

func (s *Store) startCheck(gen uint64, session *domain.Session) {
	ctx, cancel := context.WithTimeout(s.checkCtx, s.opts.CheckTimeout)
	s.inflight = cancel
	go func() {
		defer cancel()
		result := s.gate.Check(ctx, session)
		s.push(update{check: &checkResult{gen: gen, check: result}})
	}()
}

func (s *Store) applyCheck(r checkResult) {
	if r.gen != s.gen {
		metrics.StaleAdminChecks.Inc()
		s.log.Debug().
			Uint64("check_generation", r.gen).
			Uint64("generation", s.gen).
			Msg("stale admin check discarded")
		return
	}
	s.inflight = nil
	s.resolvedGen = r.gen
	next := s.current()
	next.IsAdmin = r.check.IsAdmin()
	s.publish(next)
}

// publish derives the loading flag and hands the state to readers
func (s *Store) publish(next State) {
	next.Loading = !s.initialized || s.resolvedGen < s.blockingGen

	s.mu.Lock()
	s.state = next
	close(s.changed)
	s.changed = make(chan struct{})
	subs := make([]func(State), 0, len(s.subs))
	for i := 1; i <= s.nextSub; i++ {
		if fn, ok := s.subs[i]; ok {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// Snapshot returns the current state
func (s *Store) Snapshot() State {
	return s.current()
}

// Current returns the current session, nil when signed out
func (s *Store) Current() *domain.Session {
	return s.current().Session
}

// Subscribe registers fn for every state change. Callbacks run on the writer
// goroutine and must not block.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSub++
	id := s.nextSub
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Await blocks until the store is not loading
func (s *Store) Await(ctx context.Context) (State, error) {
	for {
		s.mu.RLock()
		st, changed := s.state, s.changed
		s.mu.RUnlock()
		if !st.Loading {
			return st, nil
		}
		select {
		case <-changed:
		case <-ctx.Done():
			return st, ctx.Err()
		case <-s.done:
			return s.current(), domain.ErrStoreClosed
		}
	}
}

// AwaitChange blocks until a change newer than generation after has settled
func (s *Store) AwaitChange(ctx context.Context, after uint64) (State, error) {
	for {
		s.mu.RLock()
		st, changed := s.state, s.changed
		s.mu.RUnlock()
		if st.Generation > after && !st.Loading {
			return st, nil
		}
		select {
		case <-changed:
		case <-ctx.Done():
			return st, ctx.Err()
		case <-s.done:
			return s.current(), domain.ErrStoreClosed
		}
	}
}

// SignIn asks the platform to sign in. The session arrives later as SIGNED_IN.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	return s.client.SignInWithPassword(ctx, email, password)
}

// SignUp registers an account; no session is created until it is confirmed
func (s *Store) SignUp(ctx context.Context, email, password, fullName, redirectURL string) error {
	return s.client.SignUp(ctx, email, password, domain.UserMetadata{FullName: fullName}, redirectURL)
}

// SignOut asks the platform to sign out. The store clears on SIGNED_OUT.
func (s *Store) SignOut(ctx context.Context) error {
	return s.client.SignOut(ctx)
}

// Teardown releases the subscription and cancels in-flight checks. Safe to call twice.
func (s *Store) Teardown() {
	s.teardownOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		sub := s.sub
		s.sub = nil
		s.mu.Unlock()

		if sub != nil {
			sub.Unsubscribe()
		}
		s.cancelCheck()
		close(s.quit)
		<-s.done
	})
}

// Done is closed once the store has been torn down
func (s *Store) Done() <-chan struct{} {
	return s.done
}

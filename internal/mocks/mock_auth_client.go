package mocks

import (
	"context"
	"sync"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
)

// MockAuthClient implements domain.AuthClient. Subscribing delivers INITIAL_SESSION
// from GetSessionFunc; tests drive later session changes with Emit.
type MockAuthClient struct {
	GetSessionFunc         func(ctx context.Context) (*domain.Session, error)
	OnSessionChangeFunc    func(fn func(domain.AuthEvent)) (domain.Subscription, error)
	SignInWithPasswordFunc func(ctx context.Context, email, password string) error
	SignUpFunc             func(ctx context.Context, email, password string, meta domain.UserMetadata, redirectURL string) error
	SignOutFunc            func(ctx context.Context) error

	mu        sync.Mutex
	nextID    int
	listeners map[int]func(domain.AuthEvent)
}

var _ domain.AuthClient = (*MockAuthClient)(nil)

func NewMockAuthClient() *MockAuthClient {
	return &MockAuthClient{listeners: make(map[int]func(domain.AuthEvent))}
}

func (m *MockAuthClient) GetSession(ctx context.Context) (*domain.Session, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx)
	}
	return nil, nil
}

func (m *MockAuthClient) OnSessionChange(fn func(domain.AuthEvent)) (domain.Subscription, error) {
	if m.OnSessionChangeFunc != nil {
		return m.OnSessionChangeFunc(fn)
	}
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.listeners[id] = fn
	m.mu.Unlock()

	// INITIAL_SESSION carries whatever GetSession reports, like the real client
	go func() {
		session, err := m.GetSession(context.Background())
		if err != nil {
			session = nil
		}
		fn(domain.NewAuthEvent(domain.EventInitialSession, "", session))
	}()

	return &mockSubscription{unsubscribe: func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}}, nil
}

func (m *MockAuthClient) SignInWithPassword(ctx context.Context, email, password string) error {
	if m.SignInWithPasswordFunc != nil {
		return m.SignInWithPasswordFunc(ctx, email, password)
	}
	return nil
}

func (m *MockAuthClient) SignUp(ctx context.Context, email, password string, meta domain.UserMetadata, redirectURL string) error {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, email, password, meta, redirectURL)
	}
	return nil
}

func (m *MockAuthClient) SignOut(ctx context.Context) error {
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx)
	}
	return nil
}

// Emit delivers an event to every current listener, in registration order
func (m *MockAuthClient) Emit(eventType domain.AuthEventType, session *domain.Session) {
	m.mu.Lock()
	fns := make([]func(domain.AuthEvent), 0, len(m.listeners))
	for i := 1; i <= m.nextID; i++ {
		if fn, ok := m.listeners[i]; ok {
			fns = append(fns, fn)
		}
	}
	m.mu.Unlock()

	clientID := ""
	if session != nil {
		clientID = session.ClientID
	}
	event := domain.NewAuthEvent(eventType, clientID, session)
	for _, fn := range fns {
		fn(event)
	}
}

// Listeners reports how many subscriptions are active
func (m *MockAuthClient) Listeners() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.listeners)
}

type mockSubscription struct {
	once        sync.Once
	unsubscribe func()
}

func (s *mockSubscription) Unsubscribe() { s.once.Do(s.unsubscribe) }

package mocks

import (
	"context"
	"sync"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
)

// MockSessionRepository implements domain.SessionRepository. Without overrides it
// keeps sessions in memory.
type MockSessionRepository struct {
	SaveFunc          func(ctx context.Context, session *domain.Session) error
	FindByClientFunc  func(ctx context.Context, clientID string) (*domain.Session, error)
	DeleteFunc        func(ctx context.Context, clientID string) error
	ClientsOfUserFunc func(ctx context.Context, userID string) ([]string, error)

	mu       sync.Mutex
	sessions map[string]*domain.Session
}

var _ domain.SessionRepository = (*MockSessionRepository)(nil)

// NewMockSessionRepository creates a new MockSessionRepository
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{sessions: make(map[string]*domain.Session)}
}

func (m *MockSessionRepository) Save(ctx context.Context, session *domain.Session) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *session
	m.sessions[session.ClientID] = &cp
	return nil
}

func (m *MockSessionRepository) FindByClient(ctx context.Context, clientID string) (*domain.Session, error) {
	if m.FindByClientFunc != nil {
		return m.FindByClientFunc(ctx, clientID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[clientID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, clientID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, clientID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, clientID)
	return nil
}

func (m *MockSessionRepository) ClientsOfUser(ctx context.Context, userID string) ([]string, error) {
	if m.ClientsOfUserFunc != nil {
		return m.ClientsOfUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for clientID, s := range m.sessions {
		if s.UserID == userID {
			out = append(out, clientID)
		}
	}
	return out, nil
}

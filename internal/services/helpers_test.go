package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/indraprashad/Adhikari-tech-solution/internal/infrastructure/events"
	"github.com/indraprashad/Adhikari-tech-solution/internal/mocks"
	"github.com/rs/zerolog"
)

// authFixture bundles an AuthService with the mocks behind it
type authFixture struct {
	svc      *AuthServiceImpl
	users    *mocks.MockUserRepository
	sessions *mocks.MockSessionRepository
	tokens   *mocks.MockTokenService
	email    *mocks.MockEmailSender
	bus      *events.MemoryEventBus
}

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T) *authFixture {
	t.Helper()

	f := &authFixture{
		users:    mocks.NewMockUserRepository(),
		sessions: mocks.NewMockSessionRepository(),
		tokens:   mocks.NewMockTokenService(),
		email:    mocks.NewMockEmailSender(),
		bus:      events.NewMemoryEventBus(),
	}
	f.svc = NewAuthService(f.users, f.sessions, mocks.NewMockPasswordService(), f.tokens, f.bus, f.email,
		AuthConfig{PublicURL: "http://portfolio.test", EmailFrom: "Adhikari Tech <onboarding@resend.dev>"}, zerolog.Nop())
	return f
}

// createConfirmedUser creates a confirmed user entity for testing
func createConfirmedUser(t *testing.T) *domain.User {
	t.Helper()

	now := time.Now().UTC()
	return &domain.User{
		ID:             "user-1",
		Email:          "test@example.com",
		PasswordHash:   "hashed_password123",
		FullName:       "Test User",
		EmailConfirmed: true,
		ConfirmedAt:    &now,
		CreatedAt:      now.Add(-24 * time.Hour),
	}
}

// knownUser makes FindByEmail return user for its own address
func knownUser(repo *mocks.MockUserRepository, user *domain.User) {
	repo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		if email == user.Email {
			return user, nil
		}
		return nil, domain.ErrUserNotFound
	}
}

// eventLog records events delivered to one client
type eventLog struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func listen(bus domain.EventBus, clientID string) *eventLog {
	l := &eventLog{}
	bus.Subscribe(clientID, func(e domain.AuthEvent) {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.events = append(l.events, e)
	})
	return l
}

func (l *eventLog) types() []domain.AuthEventType {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.AuthEventType, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.Type)
	}
	return out
}

func (l *eventLog) last() domain.AuthEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.events[len(l.events)-1]
}

// createTestContext creates a context for testing with timeout
func createTestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

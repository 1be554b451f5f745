package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	SignUpFunc             func(ctx context.Context, email, password string, meta domain.UserMetadata, redirectURL string) (*domain.User, error)
	ConfirmEmailFunc       func(ctx context.Context, token string) (string, error)
	SignInWithPasswordFunc func(ctx context.Context, clientID, email, password string) (*domain.Session, error)
	SignOutFunc            func(ctx context.Context, clientID string) error
	RefreshSessionFunc     func(ctx context.Context, clientID string) (*domain.Session, error)
	GetSessionFunc         func(ctx context.Context, clientID string) (*domain.Session, error)
	NotifyUserUpdatedFunc  func(ctx context.Context, userID string) error

	mu          sync.Mutex
	userUpdates []string
}

var _ domain.AuthService = (*MockAuthService)(nil)

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// SignUp registers a new user
func (m *MockAuthService) SignUp(ctx context.Context, email, password string, meta domain.UserMetadata, redirectURL string) (*domain.User, error) {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, email, password, meta, redirectURL)
	}
	// Default behavior: return a mock unconfirmed user
	return &domain.User{
		ID:           "user-1",
		Email:        email,
		PasswordHash: "hashed_" + password,
		FullName:     meta.FullName,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

// ConfirmEmail confirms an account and returns where to redirect
func (m *MockAuthService) ConfirmEmail(ctx context.Context, token string) (string, error) {
	if m.ConfirmEmailFunc != nil {
		return m.ConfirmEmailFunc(ctx, token)
	}
	return "/", nil
}

// SignInWithPassword signs a client in
func (m *MockAuthService) SignInWithPassword(ctx context.Context, clientID, email, password string) (*domain.Session, error) {
	if m.SignInWithPasswordFunc != nil {
		return m.SignInWithPasswordFunc(ctx, clientID, email, password)
	}
	return &domain.Session{
		ID:           "sess-1",
		ClientID:     clientID,
		UserID:       "user-1",
		Email:        email,
		AccessToken:  "access_token",
		RefreshToken: "refresh_token",
		ExpiresAt:    time.Now().Add(time.Hour),
		CreatedAt:    time.Now(),
	}, nil
}

// SignOut ends the client's session
func (m *MockAuthService) SignOut(ctx context.Context, clientID string) error {
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx, clientID)
	}
	return nil
}

// RefreshSession rotates the client's access token
func (m *MockAuthService) RefreshSession(ctx context.Context, clientID string) (*domain.Session, error) {
	if m.RefreshSessionFunc != nil {
		return m.RefreshSessionFunc(ctx, clientID)
	}
	return nil, domain.ErrSessionNotFound
}

// GetSession returns the client's session or nil
func (m *MockAuthService) GetSession(ctx context.Context, clientID string) (*domain.Session, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, clientID)
	}
	return nil, nil
}

// NotifyUserUpdated records the user and succeeds by default
func (m *MockAuthService) NotifyUserUpdated(ctx context.Context, userID string) error {
	m.mu.Lock()
	m.userUpdates = append(m.userUpdates, userID)
	m.mu.Unlock()
	if m.NotifyUserUpdatedFunc != nil {
		return m.NotifyUserUpdatedFunc(ctx, userID)
	}
	return nil
}

// UserUpdates returns the users NotifyUserUpdated was called for
func (m *MockAuthService) UserUpdates() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.userUpdates...)
}

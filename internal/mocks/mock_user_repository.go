package mocks

import (
	"context"
	"time"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *domain.User) error
	RegisterFunc       func(ctx context.Context, user *domain.User, profile *domain.Profile) error
	ReplacePendingFunc func(ctx context.Context, user *domain.User) error
	FindByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc       func(ctx context.Context, id string) (*domain.User, error)
	ConfirmEmailFunc   func(ctx context.Context, id string, at time.Time) error
}

var _ domain.UserRepository = (*MockUserRepository)(nil)

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success
	if user.ID == "" {
		user.ID = "user-1"
	}
	return nil
}

// Register creates a user and its profile
func (m *MockUserRepository) Register(ctx context.Context, user *domain.User, profile *domain.Profile) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, user, profile)
	}
	if user.ID == "" {
		user.ID = "user-1"
	}
	profile.UserID = user.ID
	if profile.ID == "" {
		profile.ID = "profile-1"
	}
	return nil
}

// ReplacePending updates an unconfirmed user
func (m *MockUserRepository) ReplacePending(ctx context.Context, user *domain.User) error {
	if m.ReplacePendingFunc != nil {
		return m.ReplacePendingFunc(ctx, user)
	}
	if user.EmailConfirmed {
		return domain.ErrUserAlreadyExists
	}
	return nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// ConfirmEmail marks the user's email as confirmed
func (m *MockUserRepository) ConfirmEmail(ctx context.Context, id string, at time.Time) error {
	if m.ConfirmEmailFunc != nil {
		return m.ConfirmEmailFunc(ctx, id, at)
	}
	return nil
}

package mocks

import (
	"context"
	"sync/atomic"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
)

// MockProfileRepository implements domain.ProfileRepository for testing
type MockProfileRepository struct {
	FindByUserIDFunc func(ctx context.Context, userID string) (*domain.Profile, error)
	FindFirstFunc    func(ctx context.Context) (*domain.Profile, error)
	CreateFunc       func(ctx context.Context, profile *domain.Profile) error
	UpdateFunc       func(ctx context.Context, profile *domain.Profile) error

	lookups atomic.Int64
}

var _ domain.ProfileRepository = (*MockProfileRepository)(nil)

func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{}
}

// Lookups counts FindByUserID calls
func (m *MockProfileRepository) Lookups() int64 {
	return m.lookups.Load()
}

func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	m.lookups.Add(1)
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *MockProfileRepository) FindFirst(ctx context.Context) (*domain.Profile, error) {
	if m.FindFirstFunc != nil {
		return m.FindFirstFunc(ctx)
	}
	return nil, domain.ErrNotFound
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, profile)
	}
	if profile.ID == "" {
		profile.ID = "profile-1"
	}
	return nil
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, profile)
	}
	return nil
}

package repositories

import (
	"context"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"gorm.io/gorm"
)

// ProfileRepositoryImpl implements domain.ProfileRepository on the profiles table
type ProfileRepositoryImpl struct {
	table *GormTable[domain.Profile, DBProfile]
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) domain.ProfileRepository {
	return &ProfileRepositoryImpl{table: NewTable(db, "profiles", profileToDB, profileToDomain)}
}

// FindByUserID returns the single profile of a user. The schema allows several
// rows per user; more than one is reported as ErrMultipleProfiles.
func (r *ProfileRepositoryImpl) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	rows, err := r.table.Select(ctx, domain.Query{
		Filters: []domain.Filter{domain.Eq("user_id", userID)},
		Limit:   2,
	})
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, classify("get", "profiles", gorm.ErrRecordNotFound)
	case 1:
		return &rows[0], nil
	default:
		return nil, domain.ErrMultipleProfiles
	}
}

// FindFirst returns the earliest-created profile
func (r *ProfileRepositoryImpl) FindFirst(ctx context.Context) (*domain.Profile, error) {
	rows, err := r.table.Select(ctx, domain.Query{OrderBy: "created_at", Ascending: true, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, classify("get", "profiles", gorm.ErrRecordNotFound)
	}
	return &rows[0], nil
}

// Create implements domain.ProfileRepository
func (r *ProfileRepositoryImpl) Create(ctx context.Context, profile *domain.Profile) error {
	return r.table.Insert(ctx, profile)
}

// Update implements domain.ProfileRepository
func (r *ProfileRepositoryImpl) Update(ctx context.Context, profile *domain.Profile) error {
	return r.table.Update(ctx, profile.ID, profile, "user_id", "full_name", "email", "bio", "avatar_url")
}

package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"gorm.io/gorm"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return classify("insert", "users", err)
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// Register implements domain.UserRepository
func (r *UserRepositoryImpl) Register(ctx context.Context, user *domain.User, profile *domain.Profile) error {
	dbUser := r.domainToDB(user)
	var dbProfile *DBProfile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dbUser).Error; err != nil {
			return err
		}
		profile.UserID = dbUser.ID
		dbProfile = profileToDB(profile)
		return tx.Create(dbProfile).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return classify("insert", "users", err)
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	*profile = *profileToDomain(dbProfile)
	return nil
}

// ReplacePending implements domain.UserRepository. A confirmed account is
// reported as ErrUserAlreadyExists and left unchanged.
func (r *UserRepositoryImpl) ReplacePending(ctx context.Context, user *domain.User) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).
		Where("id = ? AND email_confirmed = ?", user.ID, false).
		Updates(map[string]any{"password": user.PasswordHash, "full_name": user.FullName})
	if res.Error != nil {
		return classify("update", "users", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserAlreadyExists
	}
	return nil
}

// FindByEmail implements domain.UserRepository; emails are stored lower-cased
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, classify("get", "users", err)
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, classify("get", "users", err)
	}
	return r.dbToDomain(&dbUser), nil
}

// ConfirmEmail implements domain.UserRepository
func (r *UserRepositoryImpl) ConfirmEmail(ctx context.Context, id string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).
		Updates(map[string]any{"email_confirmed": true, "confirmed_at": at})
	if res.Error != nil {
		return classify("update", "users", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		Base:           Base{ID: user.ID},
		Email:          strings.ToLower(user.Email),
		PasswordHash:   user.PasswordHash,
		FullName:       user.FullName,
		EmailConfirmed: user.EmailConfirmed,
		ConfirmedAt:    user.ConfirmedAt,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:             dbUser.ID,
		Email:          dbUser.Email,
		PasswordHash:   dbUser.PasswordHash,
		FullName:       dbUser.FullName,
		EmailConfirmed: dbUser.EmailConfirmed,
		ConfirmedAt:    dbUser.ConfirmedAt,
		CreatedAt:      dbUser.CreatedAt,
		UpdatedAt:      dbUser.UpdatedAt,
	}
}

package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/rs/zerolog"
)

// ProfileInput is the editable part of a profile
type ProfileInput struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
}

// ProfileService loads and saves the signed-in user's profile
type ProfileService struct {
	profiles domain.ProfileRepository
	auth     domain.AuthService
	timeout  time.Duration
	log      zerolog.Logger
}

// NewProfileService creates a ProfileService
func NewProfileService(profiles domain.ProfileRepository, auth domain.AuthService, timeout time.Duration, log zerolog.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		auth:     auth,
		timeout:  timeout,
		log:      log.With().Str("component", "profile").Logger(),
	}
}

// Get returns the profile of userID
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, cancel := within(ctx, s.timeout)
	defer cancel()
	return s.profiles.FindByUserID(ctx, userID)
}

// Save updates the profile of userID, creating it when missing. Every client
// of the user is then told about the change so admin status is recomputed.
func (s *ProfileService) Save(ctx context.Context, userID string, in ProfileInput) (*domain.Profile, error) {
	dctx, cancel := within(ctx, s.timeout)
	defer cancel()

	profile, err := s.profiles.FindByUserID(dctx, userID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		profile = &domain.Profile{UserID: userID}
		apply(profile, in)
		if err := s.profiles.Create(dctx, profile); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		apply(profile, in)
		if err := s.profiles.Update(dctx, profile); err != nil {
			return nil, err
		}
	}
	s.log.Info().Str("user_id", userID).Msg("profile saved")

	if err := s.auth.NotifyUserUpdated(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("user update not broadcast")
	}
	return profile, nil
}

func apply(p *domain.Profile, in ProfileInput) {
	p.FullName = strings.TrimSpace(in.FullName)
	p.Email = strings.TrimSpace(in.Email)
	p.Bio = in.Bio
	p.AvatarURL = strings.TrimSpace(in.AvatarURL)
}

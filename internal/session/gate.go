package session

import (
	"context"
	"errors"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/rs/zerolog"
)

// Outcome is how an admin check concluded
type Outcome int

const (
	NoSession Outcome = iota
	Matched
	EmailMismatch
	ProfileMissing
	LookupFailed
	Canceled
)

func (o Outcome) String() string {
	switch o {
	case NoSession:
		return "no_session"
	case Matched:
		return "matched"
	case EmailMismatch:
		return "email_mismatch"
	case ProfileMissing:
		return "profile_missing"
	case LookupFailed:
		return "lookup_failed"
	case Canceled:
		return "canceled"
	}
	return "unknown"
}

// AdminCheck is the result of one admin lookup. Only Matched grants admin.
type AdminCheck struct {
	Outcome Outcome
	Err     error
}

func (c AdminCheck) IsAdmin() bool {
	return c.Outcome == Matched
}

// AdminChecker decides whether a session belongs to the operator
type AdminChecker interface {
	Check(ctx context.Context, session *domain.Session) AdminCheck
}

// Gate compares the profile email of a session's user against the operator address
type Gate struct {
	profiles   domain.ProfileRepository
	adminEmail string
	log        zerolog.Logger
}

func NewGate(profiles domain.ProfileRepository, adminEmail string, log zerolog.Logger) *Gate {
	return &Gate{
		profiles:   profiles,
		adminEmail: adminEmail,
		log:        log.With().Str("component", "admin_gate").Logger(),
	}
}

// Check never returns an error; failures resolve to a non-admin outcome.
// The email comparison is exact, case included.
func (g *Gate) Check(ctx context.Context, session *domain.Session) AdminCheck {
	if session == nil {
		return AdminCheck{Outcome: NoSession}
	}

	result := g.lookup(ctx, session)
	ev := g.log.Debug()
	if !result.IsAdmin() && result.Outcome != EmailMismatch {
		ev = g.log.Warn()
	}
	ev.Str("user_id", session.UserID).
		Str("outcome", result.Outcome.String()).
		AnErr("cause", result.Err).
		Msg("admin check")
	return result
}

func (g *Gate) lookup(ctx context.Context, session *domain.Session) AdminCheck {
	profile, err := g.profiles.FindByUserID(ctx, session.UserID)
	switch {
	case err == nil:
		if profile.Email == g.adminEmail {
			return AdminCheck{Outcome: Matched}
		}
		return AdminCheck{Outcome: EmailMismatch}
	case errors.Is(err, context.Canceled):
		return AdminCheck{Outcome: Canceled, Err: err}
	case errors.Is(err, domain.ErrNotFound):
		return AdminCheck{Outcome: ProfileMissing, Err: err}
	default:
		return AdminCheck{Outcome: LookupFailed, Err: err}
	}
}

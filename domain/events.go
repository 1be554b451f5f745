package domain

import "time"

// AuthEventType names a session change emitted by the auth platform
type AuthEventType string

const (
	EventInitialSession   AuthEventType = "INITIAL_SESSION"
	EventSignedIn         AuthEventType = "SIGNED_IN"
	EventSignedOut        AuthEventType = "SIGNED_OUT"
	EventTokenRefreshed   AuthEventType = "TOKEN_REFRESHED"
	EventUserUpdated      AuthEventType = "USER_UPDATED"
	EventPasswordRecovery AuthEventType = "PASSWORD_RECOVERY"
)

// Blocking reports whether listeners should hold dependents in a loading state
// while they reconcile this event.
func (t AuthEventType) Blocking() bool {
	return t == EventSignedIn || t == EventInitialSession
}

// AuthEvent is one session change for a single client. Session is nil after sign-out.
type AuthEvent struct {
	Type       AuthEventType `json:"type"`
	ClientID   string        `json:"client_id"`
	Session    *Session      `json:"session,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewAuthEvent stamps an event for the given client
func NewAuthEvent(eventType AuthEventType, clientID string, session *Session) AuthEvent {
	return AuthEvent{
		Type:       eventType,
		ClientID:   clientID,
		Session:    session,
		OccurredAt: time.Now().UTC(),
	}
}

package domain

import (
	"context"
	"io"
	"time"
)

// UserRepository defines account data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	// Register creates the account and its profile together; neither exists on error
	Register(ctx context.Context, user *User, profile *Profile) error
	// ReplacePending overwrites the password and name of an unconfirmed account
	ReplacePending(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	ConfirmEmail(ctx context.Context, id string, at time.Time) error
}

// SessionRepository stores the current session of each client
type SessionRepository interface {
	Save(ctx context.Context, session *Session) error
	FindByClient(ctx context.Context, clientID string) (*Session, error)
	Delete(ctx context.Context, clientID string) error
	ClientsOfUser(ctx context.Context, userID string) ([]string, error)
}

// ProfileRepository defines profile lookups. FindByUserID expects zero or one row.
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
	FindFirst(ctx context.Context) (*Profile, error)
	Create(ctx context.Context, profile *Profile) error
	Update(ctx context.Context, profile *Profile) error
}

// Filter is an equality condition on a column
type Filter struct {
	Column string
	Value  any
}

// Eq builds a Filter
func Eq(column string, value any) Filter {
	return Filter{Column: column, Value: value}
}

// Query describes a select against a table
type Query struct {
	Filters   []Filter
	OrderBy   string
	Ascending bool
	Limit     int
}

// Table is generic row access to one table. Errors are *DataError.
type Table[T any] interface {
	Name() string
	Select(ctx context.Context, q Query) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Insert(ctx context.Context, row *T) error
	// Update writes the listed columns, or every column when none are listed
	Update(ctx context.Context, id string, row *T, columns ...string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filters ...Filter) (int64, error)
}

// AuthService is the auth platform: accounts, sessions per client and change events
type AuthService interface {
	SignUp(ctx context.Context, email, password string, meta UserMetadata, redirectURL string) (*User, error)
	ConfirmEmail(ctx context.Context, token string) (string, error)
	SignInWithPassword(ctx context.Context, clientID, email, password string) (*Session, error)
	SignOut(ctx context.Context, clientID string) error
	RefreshSession(ctx context.Context, clientID string) (*Session, error)
	GetSession(ctx context.Context, clientID string) (*Session, error)
	NotifyUserUpdated(ctx context.Context, userID string) error
}

// AuthClient is the auth platform as seen by one client
type AuthClient interface {
	GetSession(ctx context.Context) (*Session, error)
	OnSessionChange(fn func(AuthEvent)) (Subscription, error)
	SignInWithPassword(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, email, password string, meta UserMetadata, redirectURL string) error
	SignOut(ctx context.Context) error
}

// Subscription is a registered listener
type Subscription interface {
	Unsubscribe()
}

// EventBus carries auth events to the listeners of each client, in publish order
type EventBus interface {
	Publish(ctx context.Context, event AuthEvent) error
	Subscribe(clientID string, fn func(AuthEvent)) Subscription
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(userID, email, sessionID string) (string, time.Time, error)
	GenerateRefreshToken(userID, email, sessionID string) (string, error)
	GenerateConfirmationToken(userID, redirectTo string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
	ValidateConfirmationToken(token string) (*TokenClaims, error)
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email,omitempty"`
	SessionID  string `json:"session_id,omitempty"`
	Purpose    string `json:"purpose"`
	RedirectTo string `json:"redirect_to,omitempty"`
	IssuedAt   int64  `json:"iat"`
	ExpiresAt  int64  `json:"exp"`
}

// EmailMessage is one outgoing email
type EmailMessage struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// EmailSender delivers email and returns the provider message id
type EmailSender interface {
	SendEmail(ctx context.Context, msg EmailMessage) (string, error)
}

// SMSSender delivers text messages
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// FileStorage is bucket-based object storage with public URLs
type FileStorage interface {
	Upload(ctx context.Context, bucket, path string, r io.Reader, size int64, contentType string) error
	PublicURL(bucket, path string) string
}

// FunctionInvoker runs a named function with a JSON body
type FunctionInvoker interface {
	Invoke(ctx context.Context, name string, body any) ([]byte, error)
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
	SeedDefaults() error
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer.
// The adapter auto-saves every add and remove.
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	AddGroupingPolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
}

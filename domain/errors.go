package domain

import (
	"errors"
	"fmt"
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrUserAlreadyExists  = errors.New("user already registered")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrWeakPassword       = errors.New("password should be at least 6 characters")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
	ErrStoreClosed     = errors.New("session store has been torn down")
)

// Authorization errors
var (
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrInsufficientRole = errors.New("insufficient role permissions")
	ErrMultipleProfiles = errors.New("more than one profile for user")
)

// Data errors. DataError values match these through errors.Is.
var (
	ErrNotFound   = errors.New("row not found")
	ErrDuplicate  = errors.New("duplicate key value violates unique constraint")
	ErrTimeout    = errors.New("operation timed out")
	ErrValidation = errors.New("validation failed")
)

// Storage and function errors
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFunctionNotFound    = errors.New("function not found")
)

// ErrorKind classifies a persistence failure so callers never inspect messages
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindUniqueViolation
	KindTimeout
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUniqueViolation:
		return "unique_violation"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// DataError is returned by table operations
type DataError struct {
	Kind  ErrorKind
	Table string
	Op    string
	Err   error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Table, e.Kind, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDuplicate) and friends match on the kind
func (e *DataError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrDuplicate:
		return e.Kind == KindUniqueViolation
	case ErrTimeout:
		return e.Kind == KindTimeout
	}
	return false
}

// KindOf extracts the ErrorKind of err, or KindUnknown when err carries none
func KindOf(err error) ErrorKind {
	var de *DataError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// Invalid builds a validation error for a single field
func Invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, reason)
}

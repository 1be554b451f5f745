package mocks

import (
	"strings"
	"time"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
)

// MockTokenService implements domain.TokenService interface for testing.
// Default tokens are readable strings of the form purpose:userID:extra.
type MockTokenService struct {
	GenerateAccessTokenFunc       func(userID, email, sessionID string) (string, time.Time, error)
	GenerateRefreshTokenFunc      func(userID, email, sessionID string) (string, error)
	GenerateConfirmationTokenFunc func(userID, redirectTo string) (string, error)
	ValidateAccessTokenFunc       func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc      func(token string) (*domain.TokenClaims, error)
	ValidateConfirmationTokenFunc func(token string) (*domain.TokenClaims, error)
}

var _ domain.TokenService = (*MockTokenService)(nil)

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) GenerateAccessToken(userID, email, sessionID string) (string, time.Time, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, email, sessionID)
	}
	return "access:" + userID + ":" + sessionID, time.Now().Add(time.Hour), nil
}

func (m *MockTokenService) GenerateRefreshToken(userID, email, sessionID string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(userID, email, sessionID)
	}
	return "refresh:" + userID + ":" + sessionID, nil
}

func (m *MockTokenService) GenerateConfirmationToken(userID, redirectTo string) (string, error) {
	if m.GenerateConfirmationTokenFunc != nil {
		return m.GenerateConfirmationTokenFunc(userID, redirectTo)
	}
	return "signup:" + userID + ":" + redirectTo, nil
}

func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return parseMockToken(token, "access")
}

func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	return parseMockToken(token, "refresh")
}

func (m *MockTokenService) ValidateConfirmationToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateConfirmationTokenFunc != nil {
		return m.ValidateConfirmationTokenFunc(token)
	}
	claims, err := parseMockToken(token, "signup")
	if err != nil {
		return nil, err
	}
	claims.RedirectTo = claims.SessionID
	claims.SessionID = ""
	return claims, nil
}

func parseMockToken(token, purpose string) (*domain.TokenClaims, error) {
	parts := strings.SplitN(token, ":", 3)
	if len(parts) != 3 || parts[0] != purpose || parts[1] == "" {
		return nil, domain.ErrTokenInvalid
	}
	now := time.Now()
	return &domain.TokenClaims{
		UserID:    parts[1],
		SessionID: parts[2],
		Purpose:   purpose,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
	}, nil
}

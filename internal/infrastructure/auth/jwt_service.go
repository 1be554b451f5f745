package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/indraprashad/Adhikari-tech-solution/domain"
)

const (
	PurposeAccess       = "access"
	PurposeRefresh      = "refresh"
	PurposeConfirmation = "signup"
)

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey       []byte
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	confirmTTL      time.Duration
	now             func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey, issuer string, accessTTL, refreshTTL, confirmTTL time.Duration) *JWTServiceImpl {
	return &JWTServiceImpl{
		secretKey:       []byte(secretKey),
		issuer:          issuer,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
		confirmTTL:      confirmTTL,
		now:             time.Now,
	}
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func (j *JWTServiceImpl) sign(claims jwt.MapClaims, ttl time.Duration) (string, time.Time, error) {
	now := j.now()
	exp := now.Add(ttl)
	claims["iss"] = j.issuer
	claims["iat"] = now.Unix()
	claims["exp"] = exp.Unix()
	claims["jti"] = j.generateJTI()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	return signed, exp, err
}

// GenerateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateAccessToken(userID, email, sessionID string) (string, time.Time, error) {
	return j.sign(jwt.MapClaims{
		"sub":        userID,
		"email":      email,
		"session_id": sessionID,
		"purpose":    PurposeAccess,
	}, j.accessTokenTTL)
}

// GenerateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateRefreshToken(userID, email, sessionID string) (string, error) {
	token, _, err := j.sign(jwt.MapClaims{
		"sub":        userID,
		"email":      email,
		"session_id": sessionID,
		"purpose":    PurposeRefresh,
	}, j.refreshTokenTTL)
	return token, err
}

// GenerateConfirmationToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateConfirmationToken(userID, redirectTo string) (string, error) {
	token, _, err := j.sign(jwt.MapClaims{
		"sub":         userID,
		"purpose":     PurposeConfirmation,
		"redirect_to": redirectTo,
	}, j.confirmTTL)
	return token, err
}

// ValidateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, PurposeAccess)
}

// ValidateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateRefreshToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, PurposeRefresh)
}

// ValidateConfirmationToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateConfirmationToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, PurposeConfirmation)
}

// validateToken validates a JWT token of the given purpose and returns claims
func (j *JWTServiceImpl) validateToken(tokenString, purpose string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	}, jwt.WithIssuer(j.issuer), jwt.WithTimeFunc(j.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	// Extract claims
	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return nil, domain.ErrTokenMalformed
	}

	got, _ := claims["purpose"].(string)
	if got != purpose {
		return nil, domain.ErrTokenInvalid
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	tokenClaims := &domain.TokenClaims{
		UserID:    userID,
		Purpose:   got,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}

	if email, ok := claims["email"].(string); ok {
		tokenClaims.Email = email
	}
	if sessionID, ok := claims["session_id"].(string); ok {
		tokenClaims.SessionID = sessionID
	}
	if redirect, ok := claims["redirect_to"].(string); ok {
		tokenClaims.RedirectTo = redirect
	}

	return tokenClaims, nil
}

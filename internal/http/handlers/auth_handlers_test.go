package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/indraprashad/Adhikari-tech-solution/internal/http/middleware"
	"github.com/indraprashad/Adhikari-tech-solution/internal/mocks"
	"github.com/indraprashad/Adhikari-tech-solution/internal/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticGate struct{ admin bool }

func (g staticGate) Check(ctx context.Context, s *domain.Session) session.AdminCheck {
	if g.admin {
		return session.AdminCheck{Outcome: session.Matched}
	}
	return session.AdminCheck{Outcome: session.EmailMismatch}
}

func newAuthRouter(t *testing.T, client *mocks.MockAuthClient, platform domain.AuthService, gate session.AdminChecker) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session.NewStore(client, gate, session.Options{}, zerolog.Nop())
	t.Cleanup(store.Teardown)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, store.Initialize(ctx))

	h := NewAuthHandlers(platform, 100*time.Millisecond, zerolog.Nop())
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ClientIDKey, "client-1")
		c.Set(middleware.StoreKey, store)
		c.Next()
	})
	r.GET("/auth/session", h.Session)
	r.GET("/auth/confirm", h.Confirm)
	r.POST("/auth/signin", h.SignIn)
	r.POST("/auth/signup", h.SignUp)
	r.POST("/auth/signout", h.SignOut)
	r.POST("/auth/refresh", h.Refresh)
	return r
}

func TestAuthHandlers_SignInErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
	}{
		{"success", nil, http.StatusOK, ""},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid login credentials"},
		{"unconfirmed email", domain.ErrEmailNotConfirmed, http.StatusForbidden, "Email not confirmed"},
		{"platform timeout", fmt.Errorf("sign in: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "Upstream timed out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := mocks.NewMockAuthClient()
			client.SignInWithPasswordFunc = func(ctx context.Context, email, password string) error {
				assert.Equal(t, "owner@example.com", email)
				return tt.err
			}
			r := newAuthRouter(t, client, mocks.NewMockAuthService(), staticGate{})

			w := doJSON(r, http.MethodPost, "/auth/signin", map[string]string{"email": "owner@example.com", "password": "secret123"})

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, errorMessage(t, w))
			}
		})
	}
}

func TestAuthHandlers_SignInRequiresFields(t *testing.T) {
	client := mocks.NewMockAuthClient()
	called := false
	client.SignInWithPasswordFunc = func(ctx context.Context, email, password string) error {
		called = true
		return nil
	}
	r := newAuthRouter(t, client, mocks.NewMockAuthService(), staticGate{})

	w := doJSON(r, http.MethodPost, "/auth/signin", map[string]string{"email": "owner@example.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)
}

func TestAuthHandlers_SignUp(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"created", nil, http.StatusCreated},
		{"already registered", domain.ErrUserAlreadyExists, http.StatusConflict},
		{"weak password", domain.ErrWeakPassword, http.StatusUnprocessableEntity},
		{"invalid email", domain.Invalid("email", "is not a valid address"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := mocks.NewMockAuthClient()
			client.SignUpFunc = func(ctx context.Context, email, password string, meta domain.UserMetadata, redirectURL string) error {
				assert.Equal(t, "Sita", meta.FullName)
				assert.Equal(t, "/admin", redirectURL)
				return tt.err
			}
			r := newAuthRouter(t, client, mocks.NewMockAuthService(), staticGate{})

			w := doJSON(r, http.MethodPost, "/auth/signup", map[string]string{
				"email": "sita@example.com", "password": "secret123", "full_name": "Sita", "redirect_to": "/admin",
			})
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAuthHandlers_Session(t *testing.T) {
	tests := []struct {
		name     string
		session  *domain.Session
		admin    bool
		expected string
	}{
		{
			name:     "signed out",
			expected: `{"data":{"loading":false,"user":null,"is_admin":false}}`,
		},
		{
			name:     "admin",
			session:  &domain.Session{UserID: "user-1", Email: "owner@example.com", ExpiresAt: time.Now().Add(time.Hour)},
			admin:    true,
			expected: `{"data":{"loading":false,"user":{"id":"user-1","email":"owner@example.com"},"is_admin":true}}`,
		},
		{
			name:     "signed in visitor",
			session:  &domain.Session{UserID: "user-2", Email: "visitor@example.com", ExpiresAt: time.Now().Add(time.Hour)},
			expected: `{"data":{"loading":false,"user":{"id":"user-2","email":"visitor@example.com"},"is_admin":false}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := mocks.NewMockAuthClient()
			client.GetSessionFunc = func(ctx context.Context) (*domain.Session, error) { return tt.session, nil }
			r := newAuthRouter(t, client, mocks.NewMockAuthService(), staticGate{admin: tt.admin})

			w := doJSON(r, http.MethodGet, "/auth/session", nil)

			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.expected, w.Body.String())
		})
	}
}

func TestAuthHandlers_Confirm(t *testing.T) {
	tests := []struct {
		name             string
		query            string
		confirm          func(ctx context.Context, token string) (string, error)
		expectedStatus   int
		expectedLocation string
	}{
		{
			name:             "valid token",
			query:            "?token=abc",
			confirm:          func(ctx context.Context, token string) (string, error) { return "/admin", nil },
			expectedStatus:   http.StatusSeeOther,
			expectedLocation: "/admin",
		},
		{
			name:           "missing token",
			query:          "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "expired token",
			query:          "?token=old",
			confirm:        func(ctx context.Context, token string) (string, error) { return "", domain.ErrTokenExpired },
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platform := mocks.NewMockAuthService()
			platform.ConfirmEmailFunc = tt.confirm
			r := newAuthRouter(t, mocks.NewMockAuthClient(), platform, staticGate{})

			w := doJSON(r, http.MethodGet, "/auth/confirm"+tt.query, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedLocation, w.Header().Get("Location"))
		})
	}
}

func TestAuthHandlers_RefreshUsesClientID(t *testing.T) {
	platform := mocks.NewMockAuthService()
	platform.RefreshSessionFunc = func(ctx context.Context, clientID string) (*domain.Session, error) {
		if clientID != "client-1" {
			return nil, domain.ErrSessionNotFound
		}
		return &domain.Session{ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}, nil
	}
	r := newAuthRouter(t, mocks.NewMockAuthClient(), platform, staticGate{})

	w := doJSON(r, http.MethodPost, "/auth/refresh", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"expires_at":"2030-01-01T00:00:00Z"}}`, w.Body.String())
}

func TestAuthHandlers_SignInRespondsAfterSessionApplied(t *testing.T) {
	client := mocks.NewMockAuthClient()
	client.SignInWithPasswordFunc = func(ctx context.Context, email, password string) error {
		go func() {
			time.Sleep(20 * time.Millisecond)
			client.Emit(domain.EventSignedIn, &domain.Session{UserID: "admin", Email: email, ClientID: "client-1"})
		}()
		return nil
	}
	store := session.NewStore(client, staticGate{admin: true}, session.Options{}, zerolog.Nop())
	t.Cleanup(store.Teardown)
	require.NoError(t, store.Initialize(context.Background()))

	h := NewAuthHandlers(mocks.NewMockAuthService(), time.Second, zerolog.Nop())
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.StoreKey, store)
		c.Next()
	})
	r.POST("/auth/signin", h.SignIn)
	r.POST("/auth/signout", h.SignOut)

	w := doJSON(r, http.MethodPost, "/auth/signin", map[string]string{"email": "owner@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	st := store.Snapshot()
	require.NotNil(t, st.Session, "the response must not beat SIGNED_IN to the store")
	assert.True(t, st.IsAdmin)

	client.SignOutFunc = func(ctx context.Context) error {
		go client.Emit(domain.EventSignedOut, nil)
		return nil
	}
	w = doJSON(r, http.MethodPost, "/auth/signout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, store.Snapshot().Session)
}

func TestAuthHandlers_SignInWithoutEventStillSucceeds(t *testing.T) {
	client := mocks.NewMockAuthClient()
	client.SignInWithPasswordFunc = func(ctx context.Context, email, password string) error {
		return nil
	}
	r := newAuthRouter(t, client, mocks.NewMockAuthService(), staticGate{})

	start := time.Now()
	w := doJSON(r, http.MethodPost, "/auth/signin", map[string]string{"email": "owner@example.com", "password": "secret123"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Less(t, time.Since(start), time.Second, "the wait is bounded")
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/indraprashad/Adhikari-tech-solution/internal/mocks"
	"github.com/indraprashad/Adhikari-tech-solution/internal/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fixedGate answers every check with the same outcome, or blocks until
// release is closed when release is set
type fixedGate struct {
	outcome session.Outcome
	release chan struct{}
}

func (g *fixedGate) Check(ctx context.Context, s *domain.Session) session.AdminCheck {
	if g.release != nil {
		select {
		case <-g.release:
		case <-ctx.Done():
			return session.AdminCheck{Outcome: session.Canceled, Err: ctx.Err()}
		}
	}
	return session.AdminCheck{Outcome: g.outcome}
}

func testSession(userID string) *domain.Session {
	return &domain.Session{
		ID:        "sess-" + userID,
		ClientID:  "client-1",
		UserID:    userID,
		Email:     userID + "@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// settledStore returns an initialized store for the given session and gate
func settledStore(t *testing.T, s *domain.Session, gate session.AdminChecker) *session.Store {
	t.Helper()
	client := mocks.NewMockAuthClient()
	client.GetSessionFunc = func(ctx context.Context) (*domain.Session, error) { return s, nil }

	store := session.NewStore(client, gate, session.Options{}, zerolog.Nop())
	t.Cleanup(store.Teardown)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, store.Initialize(ctx))
	return store
}

// loadingStore returns a store stuck on its admin check until the test ends
func loadingStore(t *testing.T) *session.Store {
	t.Helper()
	gate := &fixedGate{outcome: session.Matched, release: make(chan struct{})}
	client := mocks.NewMockAuthClient()
	client.GetSessionFunc = func(ctx context.Context) (*domain.Session, error) { return testSession("admin"), nil }

	store := session.NewStore(client, gate, session.Options{}, zerolog.Nop())
	t.Cleanup(func() {
		close(gate.release)
		store.Teardown()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, store.Initialize(ctx), context.DeadlineExceeded)
	return store
}

// withStore mounts a handler chain that sees store as the visitor's store
func withStore(store *session.Store, handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append([]gin.HandlerFunc{func(c *gin.Context) {
		if store != nil {
			c.Set(StoreKey, store)
		}
		c.Next()
	}}, handlers...)
	r.Any("/*path", chain...)
	return r
}

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

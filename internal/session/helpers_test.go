package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/indraprashad/Adhikari-tech-solution/internal/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

// scriptedGate answers admin checks per user. Users with a hold channel block
// until a result is sent, ignoring cancellation, so stale answers can be forced.
type scriptedGate struct {
	mu      sync.Mutex
	calls   []string
	results map[string]AdminCheck
	holds   map[string]chan AdminCheck
}

func newScriptedGate() *scriptedGate {
	return &scriptedGate{
		results: map[string]AdminCheck{"admin": {Outcome: Matched}},
		holds:   map[string]chan AdminCheck{},
	}
}

func (g *scriptedGate) hold(userID string) chan AdminCheck {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch := make(chan AdminCheck, 1)
	g.holds[userID] = ch
	return ch
}

func (g *scriptedGate) Check(ctx context.Context, s *domain.Session) AdminCheck {
	if s == nil {
		return AdminCheck{Outcome: NoSession}
	}
	g.mu.Lock()
	g.calls = append(g.calls, s.UserID)
	hold, held := g.holds[s.UserID]
	if held {
		delete(g.holds, s.UserID)
	}
	result, ok := g.results[s.UserID]
	g.mu.Unlock()

	if held {
		return <-hold
	}
	if !ok {
		return AdminCheck{Outcome: EmailMismatch}
	}
	return result
}

func (g *scriptedGate) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func sess(userID string) *domain.Session {
	return &domain.Session{
		ID:        "sess-" + userID,
		ClientID:  "client-1",
		UserID:    userID,
		Email:     userID + "@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func newTestStore(t *testing.T, client *mocks.MockAuthClient, gate AdminChecker) *Store {
	t.Helper()
	s := NewStore(client, gate, Options{FetchTimeout: time.Second, CheckTimeout: time.Second}, zerolog.Nop())
	t.Cleanup(s.Teardown)
	return s
}

// initializedStore returns a settled store whose initial fetch found signed-in user, or nobody
func initializedStore(t *testing.T, user string, gate AdminChecker) (*Store, *mocks.MockAuthClient) {
	t.Helper()
	client := mocks.NewMockAuthClient()
	if user != "" {
		client.GetSessionFunc = func(ctx context.Context) (*domain.Session, error) { return sess(user), nil }
	}
	s := newTestStore(t, client, gate)

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.NoError(t, s.Initialize(ctx))
	return s, client
}

func eventually(t *testing.T, s *Store, cond func(State) bool, msg string) State {
	t.Helper()
	var last State
	require.Eventually(t, func() bool {
		last = s.Snapshot()
		return cond(last)
	}, waitFor, 5*time.Millisecond, msg)
	return last
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

package session

import (
	"sync"

	"github.com/indraprashad/Adhikari-tech-solution/internal/metrics"
)

// Decision is the route guard state of one mount of the admin area
type Decision string

const (
	Pending               Decision = "PENDING"
	DeniedUnauthenticated Decision = "DENIED_UNAUTHENTICATED"
	DeniedNotAdmin        Decision = "DENIED_NOT_ADMIN"
	Admitted              Decision = "ADMITTED"
)

const (
	SignInRoute  = "/auth"
	LandingRoute = "/"
)

// Decide maps a store state to a guard decision. Loading always wins.
func Decide(st State) Decision {
	switch {
	case st.Loading:
		return Pending
	case st.Session == nil:
		return DeniedUnauthenticated
	case !st.IsAdmin:
		return DeniedNotAdmin
	default:
		return Admitted
	}
}

// Redirect returns where a denied decision sends the visitor, or "" when it stays
func (d Decision) Redirect() string {
	switch d {
	case DeniedUnauthenticated:
		return SignInRoute
	case DeniedNotAdmin:
		return LandingRoute
	}
	return ""
}

// Guard tracks the decision of one mount. A settled decision holds until the
// underlying state produces a different one.
type Guard struct {
	mu      sync.Mutex
	current Decision
}

func NewGuard() *Guard {
	return &Guard{current: Pending}
}

// Observe feeds a state into the guard and reports whether the decision moved
func (g *Guard) Observe(st State) (Decision, bool) {
	next := Decide(st)

	g.mu.Lock()
	defer g.mu.Unlock()
	if next == g.current {
		return next, false
	}
	g.current = next
	metrics.GuardDecisions.WithLabelValues(string(next)).Inc()
	return next, true
}

func (g *Guard) Current() Decision {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

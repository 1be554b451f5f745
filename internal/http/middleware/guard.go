package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/indraprashad/Adhikari-tech-solution/internal/session"
	"github.com/rs/zerolog"
)

const waitingPage = `<!doctype html>
<html><head><meta charset="utf-8"><meta http-equiv="refresh" content="1"><title>Loading</title></head>
<body><p>Loading...</p></body></html>`

// GuardMW applies the route guard to the admin area. It expects WithStore to
// have run.
type GuardMW struct {
	wait time.Duration
	log  zerolog.Logger
}

// NewGuardMW creates the guard middleware; wait bounds how long a request
// lets a loading store settle
func NewGuardMW(wait time.Duration, log zerolog.Logger) *GuardMW {
	return &GuardMW{wait: wait, log: log.With().Str("component", "route_guard").Logger()}
}

func (mw *GuardMW) decide(c *gin.Context) (session.Decision, session.State) {
	store := Store(c)
	if store == nil {
		return session.DeniedUnauthenticated, session.State{}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), mw.wait)
	defer cancel()
	st, _ := store.Await(ctx)

	guard := session.NewGuard()
	d, _ := guard.Observe(st)
	return d, st
}

// Screen guards pages. Pending renders a neutral waiting page and never redirects.
func (mw *GuardMW) Screen() gin.HandlerFunc {
	return func(c *gin.Context) {
		d, st := mw.decide(c)
		mw.log.Debug().Str("client_id", ClientID(c)).Str("decision", string(d)).Msg("screen guard")

		switch d {
		case session.Pending:
			c.Header("Cache-Control", "no-store")
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(waitingPage))
			c.Abort()
		case session.Admitted:
			c.Set(StateKey, st)
			c.Next()
		default:
			c.Redirect(http.StatusSeeOther, d.Redirect())
			c.Abort()
		}
	}
}

// API guards JSON endpoints
func (mw *GuardMW) API() gin.HandlerFunc {
	return func(c *gin.Context) {
		d, st := mw.decide(c)

		switch d {
		case session.Pending:
			c.Header("Retry-After", strconv.Itoa(1))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Session is still loading"})
		case session.DeniedUnauthenticated:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		case session.DeniedNotAdmin:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		default:
			c.Set(StateKey, st)
			c.Next()
		}
	}
}

package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/indraprashad/Adhikari-tech-solution/internal/session"
	"github.com/rs/zerolog"
)

// Context keys set by the middleware in this package
const (
	ClientIDKey = "client_id"
	StoreKey    = "session_store"
	StateKey    = "session_state"
)

const clientIDValue = "client_id"

// CookieOptions configures the visitor cookie
type CookieOptions struct {
	Name   string
	Secret string
	Secure bool
	MaxAge time.Duration
}

// ClientMW identifies each visitor by a signed cookie and attaches its
// session store
type ClientMW struct {
	cookies  *sessions.CookieStore
	name     string
	registry *session.Registry
	log      zerolog.Logger
}

// NewClientMW creates the visitor middleware
func NewClientMW(opts CookieOptions, registry *session.Registry, log zerolog.Logger) *ClientMW {
	store := sessions.NewCookieStore([]byte(opts.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(opts.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &ClientMW{
		cookies:  store,
		name:     opts.Name,
		registry: registry,
		log:      log.With().Str("component", "client_mw").Logger(),
	}
}

// Identify makes sure the visitor has a client id and stores it in the context
func (mw *ClientMW) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		// A cookie that fails verification yields a fresh session
		sess, _ := mw.cookies.Get(c.Request, mw.name)

		clientID, _ := sess.Values[clientIDValue].(string)
		if clientID == "" {
			clientID = uuid.NewString()
			sess.Values[clientIDValue] = clientID
			if err := sess.Save(c.Request, c.Writer); err != nil {
				mw.log.Error().Err(err).Msg("failed to save visitor cookie")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to identify client"})
				return
			}
		}

		c.Set(ClientIDKey, clientID)
		c.Next()
	}
}

// WithStore attaches the visitor's session store, creating it on first use
func (mw *ClientMW) WithStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		store, err := mw.registry.Get(ClientID(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Service is shutting down"})
			return
		}
		c.Set(StoreKey, store)
		c.Next()
	}
}

// PeekState records the visitor's settled state when a store already exists.
// It never creates one.
func (mw *ClientMW) PeekState() gin.HandlerFunc {
	return func(c *gin.Context) {
		if store, ok := mw.registry.Peek(ClientID(c)); ok {
			if st := store.Snapshot(); !st.Loading {
				c.Set(StateKey, st)
			}
		}
		c.Next()
	}
}

// ClientID returns the visitor's client id
func ClientID(c *gin.Context) string {
	return c.GetString(ClientIDKey)
}

// Store returns the visitor's session store set by WithStore
func Store(c *gin.Context) *session.Store {
	v, ok := c.Get(StoreKey)
	if !ok {
		return nil
	}
	s, _ := v.(*session.Store)
	return s
}

// State returns the settled state recorded for this request, if any
func State(c *gin.Context) (session.State, bool) {
	v, ok := c.Get(StateKey)
	if !ok {
		return session.State{}, false
	}
	st, ok := v.(session.State)
	return st, ok
}

package services

import (
	"context"
	"sync"
	"time"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/rs/zerolog"
)

// AuthClient binds the auth platform to one client id. It implements
// domain.AuthClient for the session store of that client.
type AuthClient struct {
	platform domain.AuthService
	bus      domain.EventBus
	clientID string
	timeout  time.Duration
	log      zerolog.Logger
}

// NewAuthClient creates the per-client view of the auth platform
func NewAuthClient(platform domain.AuthService, bus domain.EventBus, clientID string, timeout time.Duration, log zerolog.Logger) *AuthClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AuthClient{
		platform: platform,
		bus:      bus,
		clientID: clientID,
		timeout:  timeout,
		log:      log.With().Str("component", "auth_client").Str("client_id", clientID).Logger(),
	}
}

var _ domain.AuthClient = (*AuthClient)(nil)

// GetSession implements domain.AuthClient
func (c *AuthClient) GetSession(ctx context.Context) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.platform.GetSession(ctx, c.clientID)
}

// OnSessionChange implements domain.AuthClient. The listener first receives
// INITIAL_SESSION with the session current at subscription time, then every
// later change in publish order.
func (c *AuthClient) OnSessionChange(fn func(domain.AuthEvent)) (domain.Subscription, error) {
	l := &orderedListener{fn: fn, pending: true}
	l.sub = c.bus.Subscribe(c.clientID, l.deliver)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		session, err := c.platform.GetSession(ctx, c.clientID)
		if err != nil {
			c.log.Warn().Err(err).Msg("initial session fetch failed")
			session = nil
		}
		l.release(domain.NewAuthEvent(domain.EventInitialSession, c.clientID, session))
	}()

	return l, nil
}

// SignInWithPassword implements domain.AuthClient
func (c *AuthClient) SignInWithPassword(ctx context.Context, email, password string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	_, err := c.platform.SignInWithPassword(ctx, c.clientID, email, password)
	return err
}

// SignUp implements domain.AuthClient
func (c *AuthClient) SignUp(ctx context.Context, email, password string, meta domain.UserMetadata, redirectURL string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	_, err := c.platform.SignUp(ctx, email, password, meta, redirectURL)
	return err
}

// SignOut implements domain.AuthClient
func (c *AuthClient) SignOut(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.platform.SignOut(ctx, c.clientID)
}

// orderedListener holds bus events back until INITIAL_SESSION has been
// delivered, without blocking the bus goroutine.
type orderedListener struct {
	mu      sync.Mutex
	fn      func(domain.AuthEvent)
	sub     domain.Subscription
	pending bool
	closed  bool
	queue   []domain.AuthEvent
}

func (l *orderedListener) deliver(event domain.AuthEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	if l.pending {
		l.queue = append(l.queue, event)
		return
	}
	l.fn(event)
}

func (l *orderedListener) release(initial domain.AuthEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.fn(initial)
	for _, event := range l.queue {
		l.fn(event)
	}
	l.queue = nil
	l.pending = false
}

// Unsubscribe implements domain.Subscription
func (l *orderedListener) Unsubscribe() {
	l.mu.Lock()
	l.closed = true
	l.queue = nil
	l.mu.Unlock()
	l.sub.Unsubscribe()
}

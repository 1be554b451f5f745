package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/rs/zerolog"
)

// AuthConfig carries the settings the auth platform needs
type AuthConfig struct {
	PublicURL string
	EmailFrom string
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	bus         domain.EventBus
	email       domain.EmailSender
	cfg         AuthConfig
	log         zerolog.Logger
	now         func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	bus domain.EventBus,
	email domain.EmailSender,
	cfg AuthConfig,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		bus:         bus,
		email:       email,
		cfg:         cfg,
		log:         log.With().Str("component", "auth").Logger(),
		now:         time.Now,
	}
}

var confirmEmailTmpl = template.Must(template.New("confirm").Parse(
	`<h2>Confirm your signup</h2>
<p>Hello {{.Name}},</p>
<p>Follow this link to confirm your account:</p>
<p><a href="{{.Link}}">Confirm your email</a></p>`))

// SignUp implements domain.AuthService. The account stays unconfirmed until
// the emailed link is followed. Signing up again before confirming replaces
// the password and sends a fresh link.
func (s *AuthServiceImpl) SignUp(ctx context.Context, email, password string, meta domain.UserMetadata, redirectURL string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.Invalid("email", "is not a valid address")
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil && existingUser.EmailConfirmed:
		return nil, domain.ErrUserAlreadyExists
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Hash password
	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		if errors.Is(err, domain.ErrWeakPassword) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user *domain.User
	if existingUser != nil {
		user = existingUser
		user.PasswordHash = hashedPassword
		user.FullName = meta.FullName
		if err := s.userRepo.ReplacePending(ctx, user); err != nil {
			if errors.Is(err, domain.ErrUserAlreadyExists) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to update pending user: %w", err)
		}
	} else {
		user = &domain.User{
			Email:        email,
			PasswordHash: hashedPassword,
			FullName:     meta.FullName,
		}
		profile := &domain.Profile{FullName: meta.FullName, Email: email}
		if err := s.userRepo.Register(ctx, user, profile); err != nil {
			if errors.Is(err, domain.ErrUserAlreadyExists) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}

	if err := s.sendConfirmation(ctx, user, redirectURL); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Bool("resent", existingUser != nil).Msg("account awaiting confirmation")
	return user, nil
}

func (s *AuthServiceImpl) sendConfirmation(ctx context.Context, user *domain.User, redirectURL string) error {
	token, err := s.tokenSvc.GenerateConfirmationToken(user.ID, redirectURL)
	if err != nil {
		return fmt.Errorf("failed to generate confirmation token: %w", err)
	}

	q := url.Values{}
	q.Set("token", token)
	if redirectURL != "" {
		q.Set("redirect_to", redirectURL)
	}
	link := strings.TrimRight(s.cfg.PublicURL, "/") + "/auth/confirm?" + q.Encode()

	name := user.FullName
	if name == "" {
		name = user.Email
	}
	var body bytes.Buffer
	if err := confirmEmailTmpl.Execute(&body, struct{ Name, Link string }{name, link}); err != nil {
		return fmt.Errorf("failed to render confirmation email: %w", err)
	}

	if _, err := s.email.SendEmail(ctx, domain.EmailMessage{
		From:    s.cfg.EmailFrom,
		To:      []string{user.Email},
		Subject: "Confirm your signup",
		HTML:    body.String(),
	}); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}

// ConfirmEmail implements domain.AuthService and returns where to send the visitor
func (s *AuthServiceImpl) ConfirmEmail(ctx context.Context, token string) (string, error) {
	claims, err := s.tokenSvc.ValidateConfirmationToken(token)
	if err != nil {
		return "", err
	}
	if err := s.userRepo.ConfirmEmail(ctx, claims.UserID, s.now().UTC()); err != nil {
		return "", err
	}
	s.log.Info().Str("user_id", claims.UserID).Msg("email confirmed")

	return s.safeRedirect(claims.RedirectTo), nil
}

// safeRedirect keeps redirects on this site: relative paths or the public URL
func (s *AuthServiceImpl) safeRedirect(target string) string {
	base := strings.TrimRight(s.cfg.PublicURL, "/")
	switch {
	case strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//"):
		return target
	case base != "" && (target == base || strings.HasPrefix(target, base+"/")):
		return target
	}
	return "/"
}

// SignInWithPassword implements domain.AuthService
func (s *AuthServiceImpl) SignInWithPassword(ctx context.Context, clientID, email, password string) (*domain.Session, error) {
	// Find user
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Verify password
	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.EmailConfirmed {
		return nil, domain.ErrEmailNotConfirmed
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: s.now().UTC(),
	}
	if err := s.issueTokens(session, true); err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	if err := s.publish(ctx, domain.EventSignedIn, clientID, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *AuthServiceImpl) issueTokens(session *domain.Session, withRefresh bool) error {
	accessToken, exp, err := s.tokenSvc.GenerateAccessToken(session.UserID, session.Email, session.ID)
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	session.AccessToken = accessToken
	session.ExpiresAt = exp.UTC()

	if withRefresh {
		refreshToken, err := s.tokenSvc.GenerateRefreshToken(session.UserID, session.Email, session.ID)
		if err != nil {
			return fmt.Errorf("failed to generate refresh token: %w", err)
		}
		session.RefreshToken = refreshToken
	}
	return nil
}

// SignOut implements domain.AuthService. SIGNED_OUT is emitted even when the
// client had no session so every listener converges on signed-out.
func (s *AuthServiceImpl) SignOut(ctx context.Context, clientID string) error {
	if err := s.sessionRepo.Delete(ctx, clientID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return s.publish(ctx, domain.EventSignedOut, clientID, nil)
}

// RefreshSession implements domain.AuthService
func (s *AuthServiceImpl) RefreshSession(ctx context.Context, clientID string) (*domain.Session, error) {
	session, err := s.sessionRepo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	claims, err := s.tokenSvc.ValidateRefreshToken(session.RefreshToken)
	if err != nil || claims.SessionID != session.ID {
		return nil, domain.ErrSessionExpired
	}

	if err := s.issueTokens(session, false); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	if err := s.publish(ctx, domain.EventTokenRefreshed, clientID, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession implements domain.AuthService. A missing session is (nil, nil);
// an expired access token is refreshed on the way.
func (s *AuthServiceImpl) GetSession(ctx context.Context, clientID string) (*domain.Session, error) {
	session, err := s.sessionRepo.FindByClient(ctx, clientID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !session.Expired(s.now()) {
		return session, nil
	}

	refreshed, err := s.RefreshSession(ctx, clientID)
	if errors.Is(err, domain.ErrSessionExpired) || errors.Is(err, domain.ErrSessionNotFound) {
		return nil, nil
	}
	return refreshed, err
}

// NotifyUserUpdated implements domain.AuthService by emitting USER_UPDATED to
// every client the user is signed in on
func (s *AuthServiceImpl) NotifyUserUpdated(ctx context.Context, userID string) error {
	clients, err := s.sessionRepo.ClientsOfUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	var errs []error
	for _, clientID := range clients {
		session, err := s.sessionRepo.FindByClient(ctx, clientID)
		if err != nil || session.UserID != userID {
			continue
		}
		if err := s.publish(ctx, domain.EventUserUpdated, clientID, session); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *AuthServiceImpl) publish(ctx context.Context, eventType domain.AuthEventType, clientID string, session *domain.Session) error {
	if err := s.bus.Publish(ctx, domain.NewAuthEvent(eventType, clientID, session)); err != nil {
		s.log.Error().Err(err).Str("client_id", clientID).Str("event", string(eventType)).Msg("auth event not delivered")
		return err
	}
	return nil
}

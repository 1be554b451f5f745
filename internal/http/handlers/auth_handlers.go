package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/indraprashad/Adhikari-tech-solution/internal/http/middleware"
	"github.com/indraprashad/Adhikari-tech-solution/internal/session"
	"github.com/rs/zerolog"
)

// AuthHandlers serve the visitor's Session Store operations
type AuthHandlers struct {
	platform domain.AuthService
	wait     time.Duration
	log      zerolog.Logger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(platform domain.AuthService, wait time.Duration, log zerolog.Logger) *AuthHandlers {
	return &AuthHandlers{platform: platform, wait: wait, log: log.With().Str("component", "auth_handlers").Logger()}
}

// SignInRequest represents sign-in request
type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignUpRequest represents sign-up request
type SignUpRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	FullName   string `json:"full_name"`
	RedirectTo string `json:"redirect_to"`
}

// SignIn handles password sign-in. The session reaches the store through the
// SIGNED_IN event; the response waits briefly for it so the next navigation
// sees the new session.
func (h *AuthHandlers) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store := middleware.Store(c)
	before := store.Snapshot().Generation
	if err := store.SignIn(c.Request.Context(), req.Email, req.Password); err != nil {
		writeError(c, h.log, err)
		return
	}
	h.awaitEvent(c, store, before, "signin")
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Signed in"}})
}

// awaitEvent waits up to the guard wait for the store to apply the event the
// platform just published. Timing out only means the event is still in flight.
func (h *AuthHandlers) awaitEvent(c *gin.Context, store *session.Store, before uint64, op string) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.wait)
	defer cancel()
	if _, err := store.AwaitChange(ctx, before); err != nil {
		h.log.Debug().Err(err).Str("op", op).Msg("session event not applied before responding")
	}
}

// SignUp handles account creation
func (h *AuthHandlers) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := middleware.Store(c).SignUp(c.Request.Context(), req.Email, req.Password, req.FullName, req.RedirectTo)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"message": "Check your email for the confirmation link"}})
}

// SignOut handles sign-out. State clears when SIGNED_OUT arrives.
func (h *AuthHandlers) SignOut(c *gin.Context) {
	store := middleware.Store(c)
	before := store.Snapshot().Generation
	if err := store.SignOut(c.Request.Context()); err != nil {
		writeError(c, h.log, err)
		return
	}
	h.awaitEvent(c, store, before, "signout")
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Signed out"}})
}

// Refresh rotates the visitor's access token
func (h *AuthHandlers) Refresh(c *gin.Context) {
	session, err := h.platform.RefreshSession(c.Request.Context(), middleware.ClientID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"expires_at": session.ExpiresAt}})
}

// Session reports the visitor's settled state
func (h *AuthHandlers) Session(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.wait)
	defer cancel()
	st, _ := middleware.Store(c).Await(ctx)

	var user gin.H
	if st.Session != nil {
		user = gin.H{"id": st.Session.UserID, "email": st.Session.Email}
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"loading":  st.Loading,
		"user":     user,
		"is_admin": st.IsAdmin,
	}})
}

// Confirm handles the emailed confirmation link
func (h *AuthHandlers) Confirm(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	redirect, err := h.platform.ConfirmEmail(c.Request.Context(), token)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Redirect(http.StatusSeeOther, redirect)
}

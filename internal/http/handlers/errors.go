package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/rs/zerolog"
)

// writeError maps service errors to responses. Messages of unexpected errors
// are never exposed.
func writeError(c *gin.Context, log zerolog.Logger, err error) {
	status, msg := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": msg})
}

func classify(err error) (int, string) {
	var de *domain.DataError
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusUnsupportedMediaType, "Please upload a PDF, PNG, or JPEG file."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid login credentials"
	case errors.Is(err, domain.ErrEmailNotConfirmed):
		return http.StatusForbidden, "Email not confirmed"
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusConflict, "User already registered"
	case errors.Is(err, domain.ErrWeakPassword):
		return http.StatusUnprocessableEntity, domain.ErrWeakPassword.Error()
	case errors.Is(err, domain.ErrTokenExpired), errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenMalformed):
		return http.StatusBadRequest, "Confirmation link is invalid or has expired"
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, "Session expired"
	case errors.Is(err, domain.ErrFunctionNotFound):
		return http.StatusNotFound, "Function not found"
	case errors.Is(err, domain.ErrMultipleProfiles):
		return http.StatusConflict, "More than one profile exists for this user"
	case errors.As(err, &de) && de.Kind == domain.KindUniqueViolation:
		if de.Table == "blogs" {
			return http.StatusConflict, "A blog with this slug already exists"
		}
		return http.StatusConflict, "Duplicate value"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case domain.KindOf(err) == domain.KindTimeout, errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Upstream timed out"
	}
	return http.StatusInternalServerError, "Internal server error"
}

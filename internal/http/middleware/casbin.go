package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/indraprashad/Adhikari-tech-solution/internal/session"
	"github.com/rs/zerolog"
)

// CasbinMW enforces the table access policy for the visitor's role
type CasbinMW struct {
	policy domain.PolicyService
	log    zerolog.Logger
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(policy domain.PolicyService, log zerolog.Logger) *CasbinMW {
	return &CasbinMW{policy: policy, log: log.With().Str("component", "casbin_mw").Logger()}
}

// RoleOf maps a settled state to its casbin role
func RoleOf(st session.State) string {
	switch {
	case st.Session == nil:
		return domain.RoleAnon
	case st.IsAdmin:
		return domain.RoleAdmin
	default:
		return domain.RoleAuthenticated
	}
}

// Enforce returns the casbin authorization middleware. Requests without a
// settled state are treated as anonymous.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := domain.RoleAnon
		if st, ok := State(c); ok {
			role = RoleOf(st)
		}

		path := c.Request.URL.Path
		method := c.Request.Method
		allowed, err := mw.policy.CheckPermission(role, path, method)
		if err != nil {
			mw.log.Error().Err(err).Str("role", role).Str("path", path).Msg("authorization check failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access Denied"})
			return
		}
		c.Next()
	}
}

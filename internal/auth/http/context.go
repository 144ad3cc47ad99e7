// Package http provides gin middleware and helpers for session
// authentication.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/bitmarket/contentgate/internal/auth/domain"
)

const sessionContextKey = "auth_session"

// WithSession stores the authenticated session in the gin context.
func WithSession(c *gin.Context, session *domain.Session) {
	c.Set(sessionContextKey, session)
}

// GetSession retrieves the authenticated session from the gin context.
// The second return value is false when no session was stored.
func GetSession(c *gin.Context) (*domain.Session, bool) {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	session, ok := value.(*domain.Session)
	return session, ok
}

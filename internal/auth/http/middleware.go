package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bitmarket/contentgate/internal/auth/usecase"
)

// AuthMiddleware validates the Authorization bearer token and stores the
// resolved session in the request context. Requests without a valid session
// are rejected with 401 and never reach the content handlers.
type AuthMiddleware struct {
	authUseCase usecase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(authUseCase usecase.AuthUseCase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// RequireSession returns a gin handler that enforces session authentication.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}

		session, err := m.authUseCase.Authenticate(c.Request.Context(), token)
		if err != nil {
			m.logger.InfoContext(c.Request.Context(), "rejected unauthenticated request",
				slog.String("path", c.FullPath()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}

		WithSession(c, session)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

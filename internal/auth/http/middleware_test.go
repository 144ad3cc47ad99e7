package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bitmarket/contentgate/internal/auth/domain"
	apperrors "github.com/bitmarket/contentgate/internal/errors"
)

type mockAuthUseCase struct {
	mock.Mock
}

func (m *mockAuthUseCase) Authenticate(
	ctx context.Context,
	plainToken string,
) (*domain.Session, error) {
	args := m.Called(ctx, plainToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func newTestRouter(authUseCase *mockAuthUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	middleware := NewAuthMiddleware(authUseCase, logger)

	router := gin.New()
	router.GET("/protected", middleware.RequireSession(), func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": session.UserID.String()})
	})
	return router
}

func TestAuthMiddleware_RequireSession(t *testing.T) {
	t.Run("valid bearer token passes", func(t *testing.T) {
		authUseCase := new(mockAuthUseCase)
		session := &domain.Session{
			ID:        uuid.Must(uuid.NewV7()),
			UserID:    uuid.Must(uuid.NewV7()),
			ExpiresAt: time.Now().Add(time.Hour),
		}
		authUseCase.On("Authenticate", mock.Anything, "good-token").Return(session, nil)

		router := newTestRouter(authUseCase)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), session.UserID.String())
		authUseCase.AssertExpectations(t)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		authUseCase := new(mockAuthUseCase)
		router := newTestRouter(authUseCase)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Authentication required"}`, w.Body.String())
		authUseCase.AssertNotCalled(t, "Authenticate")
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		authUseCase := new(mockAuthUseCase)
		router := newTestRouter(authUseCase)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc123")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		authUseCase.AssertNotCalled(t, "Authenticate")
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		authUseCase := new(mockAuthUseCase)
		authUseCase.On("Authenticate", mock.Anything, "bad-token").
			Return(nil, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid bearer token"))

		router := newTestRouter(authUseCase)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Authentication required"}`, w.Body.String())
		authUseCase.AssertExpectations(t)
	})
}

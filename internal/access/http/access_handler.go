// Package http provides HTTP handlers for content access grants and the
// signed redirect endpoints. Response messages on these routes are part of
// the external contract consumed by the storefront frontend; change them and
// the frontend breaks.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	accessDomain "github.com/bitmarket/contentgate/internal/access/domain"
	"github.com/bitmarket/contentgate/internal/access/http/dto"
	accessUseCase "github.com/bitmarket/contentgate/internal/access/usecase"
	authHTTP "github.com/bitmarket/contentgate/internal/auth/http"
	apperrors "github.com/bitmarket/contentgate/internal/errors"
)

// External contract messages for the mint endpoint.
const (
	msgMissingProductFileID = "Product file ID is required"
	msgAuthRequired         = "Authentication required"
	msgAccessDenied         = "Access denied. Please purchase this content."
	msgContentNotFound      = "Content not found"
	msgDownloadLimit        = "Download limit exceeded. Please try again later."
	msgGrantFailed          = "Failed to generate content access"
	msgDocumentNotReady     = "Document not configured"
	msgVideoNotReady        = "Video not configured"
)

// AccessHandler handles HTTP requests for minting content access grants.
type AccessHandler struct {
	accessUseCase accessUseCase.AccessUseCase
	logger        *slog.Logger
}

// NewAccessHandler creates a new access handler with required dependencies.
func NewAccessHandler(accessUseCase accessUseCase.AccessUseCase, logger *slog.Logger) *AccessHandler {
	return &AccessHandler{
		accessUseCase: accessUseCase,
		logger:        logger,
	}
}

// GrantAccessHandler mints a signed access grant for a purchased content file.
// POST /v1/content/access - Requires an authenticated session.
func (h *AccessHandler) GrantAccessHandler(c *gin.Context) {
	session, ok := authHTTP.GetSession(c)
	if !ok {
		// The auth middleware guards this route; reaching here without a
		// session means a wiring mistake, not a client fault.
		h.logger.Error("access handler invoked without session in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgAuthRequired})
		return
	}

	var req dto.GrantAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingProductFileID})
		return
	}
	// The contract fixes the 400 body, so validation details stay internal.
	if err := req.Validate(); err != nil {
		h.logger.Debug("rejected mint request", slog.Any("error", err))
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingProductFileID})
		return
	}

	grant, err := h.accessUseCase.Grant(c.Request.Context(), session.UserID, req.ProductFileID)
	if err != nil {
		h.handleGrantError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapGrantToResponse(grant))
}

// handleGrantError maps pipeline failures onto the external contract. The
// not-configured outcomes deliberately return 200 with success=false: the
// request was well-formed and authorized, the catalog just has nothing to
// serve yet.
func (h *AccessHandler) handleGrantError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, accessDomain.ErrDocumentNotConfigured):
		c.JSON(http.StatusOK, dto.GrantAccessResponse{Success: false, Error: msgDocumentNotReady})

	case apperrors.Is(err, accessDomain.ErrVideoNotConfigured):
		c.JSON(http.StatusOK, dto.GrantAccessResponse{Success: false, Error: msgVideoNotReady})

	case apperrors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgContentNotFound})

	case apperrors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": msgAccessDenied})

	case apperrors.Is(err, apperrors.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": msgDownloadLimit})

	default:
		h.logger.ErrorContext(c.Request.Context(), "failed to mint access grant",
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgGrantFailed})
	}
}

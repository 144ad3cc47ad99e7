package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/bitmarket/contentgate/internal/errors"
	"github.com/bitmarket/contentgate/internal/httputil"
	signingService "github.com/bitmarket/contentgate/internal/signing/service"
)

// External contract messages for the redirect endpoints.
const (
	msgMissingParameters = "Missing required parameters"
	msgInvalidExpiry     = "Invalid expiration timestamp"
	msgLinkExpired       = "Download link has expired"
	msgInvalidSignature  = "Invalid signature"
)

// RedirectHandler verifies signed access URLs and redirects to the external
// provider. These routes are unauthenticated on purpose: possession of a
// valid unexpired signature is the credential.
type RedirectHandler struct {
	signer signingService.URLSigner
	logger *slog.Logger
}

// NewRedirectHandler creates a new redirect handler with required dependencies.
func NewRedirectHandler(signer signingService.URLSigner, logger *slog.Logger) *RedirectHandler {
	return &RedirectHandler{
		signer: signer,
		logger: logger,
	}
}

// DriveDownloadHandler verifies a signed document tuple and redirects to the
// Google Drive direct download URL.
// GET /v1/content/download/drive?fileId=&fileName=&expires=&signature=
func (h *RedirectHandler) DriveDownloadHandler(c *gin.Context) {
	fileID := c.Query("fileId")
	fileName := c.Query("fileName")
	expiresRaw := c.Query("expires")
	signature := c.Query("signature")

	if fileID == "" || fileName == "" || expiresRaw == "" || signature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingParameters})
		return
	}

	expiresAt, err := strconv.ParseInt(expiresRaw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidExpiry})
		return
	}

	if err := h.signer.VerifyDocument(fileID, fileName, expiresAt, signature); err != nil {
		h.handleVerifyError(c, err)
		return
	}

	target := "https://drive.google.com/uc?export=download&id=" + url.QueryEscape(fileID)
	c.Redirect(http.StatusFound, target)
}

// YouTubeVideoHandler verifies a signed video tuple and redirects to the
// YouTube watch URL.
// GET /v1/content/video/youtube?videoId=&title=&expires=&signature=
func (h *RedirectHandler) YouTubeVideoHandler(c *gin.Context) {
	videoID := c.Query("videoId")
	title := c.Query("title")
	expiresRaw := c.Query("expires")
	signature := c.Query("signature")

	if videoID == "" || title == "" || expiresRaw == "" || signature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingParameters})
		return
	}

	expiresAt, err := strconv.ParseInt(expiresRaw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidExpiry})
		return
	}

	if err := h.signer.VerifyVideo(videoID, title, expiresAt, signature); err != nil {
		h.handleVerifyError(c, err)
		return
	}

	target := "https://www.youtube.com/watch?v=" + url.QueryEscape(videoID)
	c.Redirect(http.StatusFound, target)
}

// handleVerifyError maps verification failures. Expiry wins over signature
// validity: an expired link reports 410 even when the signature is garbage,
// so probing expired links reveals nothing about signature correctness.
func (h *RedirectHandler) handleVerifyError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrGone):
		c.JSON(http.StatusGone, gin.H{"error": msgLinkExpired})

	case apperrors.Is(err, apperrors.ErrForbidden):
		h.logger.WarnContext(c.Request.Context(), "rejected tampered access link",
			slog.String("client_ip", c.ClientIP()),
		)
		c.JSON(http.StatusForbidden, gin.H{"error": msgInvalidSignature})

	default:
		// Only the expiry and signature outcomes have contract bodies; anything
		// else goes through the generic mapping, which hides error details.
		httputil.HandleErrorGin(c, err, h.logger)
	}
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	accessDomain "github.com/bitmarket/contentgate/internal/access/domain"
	catalogDomain "github.com/bitmarket/contentgate/internal/catalog/domain"
	catalogService "github.com/bitmarket/contentgate/internal/catalog/service"
	"github.com/bitmarket/contentgate/internal/errors"
	signingService "github.com/bitmarket/contentgate/internal/signing/service"
	"github.com/bitmarket/contentgate/internal/validation"
)

// Config holds the policy knobs for access grants.
type Config struct {
	// PublicBaseURL is the externally reachable base URL of this service.
	PublicBaseURL string
	// DocumentExpiry is the lifetime of signed document URLs.
	DocumentExpiry time.Duration
	// VideoExpiry is the lifetime of signed video URLs.
	VideoExpiry time.Duration
	// MaxFileSize is the largest document the service will serve, in bytes.
	MaxFileSize int64
	// AllowedContentTypes is the closed set of servable content type tags.
	AllowedContentTypes []string
	// FilenameMaxLength bounds sanitized download file names.
	FilenameMaxLength int
}

type accessUseCase struct {
	contentFileRepo ContentFileRepository
	licenseChecker  LicenseChecker
	limiter         DownloadLimiter
	signer          signingService.URLSigner
	cfg             Config
	allowedTypes    map[catalogDomain.ContentType]struct{}
	logger          *slog.Logger
	now             func() time.Time
}

// NewAccessUseCase creates a new AccessUseCase. Fails fast on policy
// misconfiguration so a broken deployment never serves a single grant.
func NewAccessUseCase(
	contentFileRepo ContentFileRepository,
	licenseChecker LicenseChecker,
	limiter DownloadLimiter,
	signer signingService.URLSigner,
	cfg Config,
	logger *slog.Logger,
) (AccessUseCase, error) {
	if cfg.PublicBaseURL == "" {
		return nil, errors.Wrap(errors.ErrConfiguration, "public base URL is required")
	}
	if cfg.MaxFileSize <= 0 {
		return nil, errors.Wrap(errors.ErrConfiguration, "max file size must be positive")
	}
	if len(cfg.AllowedContentTypes) == 0 {
		return nil, errors.Wrap(errors.ErrConfiguration, "allowed content types must not be empty")
	}
	if cfg.DocumentExpiry <= 0 || cfg.VideoExpiry <= 0 {
		return nil, errors.Wrap(errors.ErrConfiguration, "URL expiry must be positive")
	}

	allowedTypes := make(map[catalogDomain.ContentType]struct{}, len(cfg.AllowedContentTypes))
	for _, contentType := range cfg.AllowedContentTypes {
		allowedTypes[catalogDomain.ContentType(contentType)] = struct{}{}
	}

	return &accessUseCase{
		contentFileRepo: contentFileRepo,
		licenseChecker:  licenseChecker,
		limiter:         limiter,
		signer:          signer,
		cfg:             cfg,
		allowedTypes:    allowedTypes,
		logger:          logger,
		now:             time.Now,
	}, nil
}

// Grant runs the full access pipeline: quota, catalog resolution, policy
// checks, license gate, link parsing, and signing. Every early return maps
// to one externally observable denial, so check order is part of the
// contract: quota before resolution, license before link configuration.
func (u *accessUseCase) Grant(
	ctx context.Context,
	userID uuid.UUID,
	productFileID string,
) (*accessDomain.Grant, error) {
	decision := u.limiter.CheckAndConsume(userID.String())
	if !decision.Allowed {
		u.logger.InfoContext(ctx, "download limit exceeded",
			slog.String("user_id", userID.String()),
			slog.Duration("retry_after", decision.RetryAfter),
		)
		return nil, accessDomain.ErrDownloadLimitExceeded
	}

	fileID, err := uuid.Parse(productFileID)
	if err != nil {
		// A malformed id can never match a catalog row. Reported as not
		// found so probes cannot distinguish bad ids from absent ones.
		return nil, catalogDomain.ErrContentFileNotFound
	}

	file, err := u.contentFileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if _, ok := u.allowedTypes[file.ContentType]; !ok {
		return nil, errors.Wrap(errors.ErrConfiguration,
			fmt.Sprintf("content type %q is not servable", file.ContentType))
	}

	family, ok := file.ContentType.Family()
	if !ok {
		return nil, errors.Wrap(errors.ErrConfiguration,
			fmt.Sprintf("content type %q has no family", file.ContentType))
	}

	if family == catalogDomain.FamilyDocument && file.SizeBytes > u.cfg.MaxFileSize {
		return nil, errors.Wrap(errors.ErrConfiguration,
			fmt.Sprintf("content file %s exceeds the size ceiling", file.ID))
	}

	if file.RequiresLicense {
		hasAccess, err := u.licenseChecker.HasAccess(ctx, userID, file.ProductID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to check license")
		}
		if !hasAccess {
			return nil, accessDomain.ErrLicenseRequired
		}
	}

	switch family {
	case catalogDomain.FamilyDocument:
		return u.grantDocument(ctx, file)
	default:
		return u.grantVideo(ctx, file)
	}
}

func (u *accessUseCase) grantDocument(
	ctx context.Context,
	file *catalogDomain.ContentFile,
) (*accessDomain.Grant, error) {
	if file.ExternalLink == nil || *file.ExternalLink == "" {
		return nil, accessDomain.ErrDocumentNotConfigured
	}

	driveFileID, err := catalogService.ParseDriveLink(*file.ExternalLink)
	if err != nil {
		// The stored link is broken. This is catalog data corruption, not a
		// client problem.
		return nil, errors.Wrap(err, "failed to parse stored drive link")
	}

	fileName := validation.SanitizeFileName(file.Name, u.cfg.FilenameMaxLength)
	expiresAt := u.now().Add(u.cfg.DocumentExpiry)
	expiresUnix := expiresAt.Unix()

	signature := u.signer.SignDocument(driveFileID, fileName, expiresUnix)

	query := url.Values{}
	query.Set("fileId", driveFileID)
	query.Set("fileName", fileName)
	query.Set("expires", strconv.FormatInt(expiresUnix, 10))
	query.Set("signature", signature)

	u.logger.InfoContext(ctx, "issued document access grant",
		slog.String("content_file_id", file.ID.String()),
		slog.Time("expires_at", expiresAt),
	)

	return &accessDomain.Grant{
		ContentType: accessDomain.GrantTypeDocument,
		AccessURL:   u.cfg.PublicBaseURL + "/v1/content/download/drive?" + query.Encode(),
		FileName:    fileName,
		ExpiresAt:   expiresAt,
	}, nil
}

func (u *accessUseCase) grantVideo(
	ctx context.Context,
	file *catalogDomain.ContentFile,
) (*accessDomain.Grant, error) {
	if file.ExternalLink == nil || *file.ExternalLink == "" {
		return nil, accessDomain.ErrVideoNotConfigured
	}

	videoID, err := catalogService.ParseYouTubeLink(*file.ExternalLink)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse stored youtube link")
	}

	title := validation.SanitizeFileName(file.Name, u.cfg.FilenameMaxLength)
	expiresAt := u.now().Add(u.cfg.VideoExpiry)
	expiresUnix := expiresAt.Unix()

	signature := u.signer.SignVideo(videoID, title, expiresUnix)

	query := url.Values{}
	query.Set("videoId", videoID)
	query.Set("title", title)
	query.Set("expires", strconv.FormatInt(expiresUnix, 10))
	query.Set("signature", signature)

	u.logger.InfoContext(ctx, "issued video access grant",
		slog.String("content_file_id", file.ID.String()),
		slog.Time("expires_at", expiresAt),
	)

	return &accessDomain.Grant{
		ContentType: accessDomain.GrantTypeVideo,
		AccessURL:   u.cfg.PublicBaseURL + "/v1/content/video/youtube?" + query.Encode(),
		EmbedURL:    "https://www.youtube.com/embed/" + videoID,
		Title:       title,
		VideoID:     videoID,
		ExpiresAt:   expiresAt,
	}, nil
}

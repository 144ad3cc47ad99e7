package usecase

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	accessDomain "github.com/bitmarket/contentgate/internal/access/domain"
	catalogDomain "github.com/bitmarket/contentgate/internal/catalog/domain"
	apperrors "github.com/bitmarket/contentgate/internal/errors"
	"github.com/bitmarket/contentgate/internal/ratelimit"
	signingService "github.com/bitmarket/contentgate/internal/signing/service"
)

const testSigningSecret = "0123456789abcdef0123456789abcdef"

type mockContentFileRepository struct {
	mock.Mock
}

func (m *mockContentFileRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*catalogDomain.ContentFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogDomain.ContentFile), args.Error(1)
}

type mockLicenseChecker struct {
	mock.Mock
}

func (m *mockLicenseChecker) HasAccess(
	ctx context.Context,
	userID, productID uuid.UUID,
) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

type mockDownloadLimiter struct {
	mock.Mock
}

func (m *mockDownloadLimiter) CheckAndConsume(subject string) ratelimit.Decision {
	args := m.Called(subject)
	return args.Get(0).(ratelimit.Decision)
}

type accessFixture struct {
	repo    *mockContentFileRepository
	license *mockLicenseChecker
	limiter *mockDownloadLimiter
	signer  signingService.URLSigner
	uc      AccessUseCase
	now     time.Time
}

func newAccessFixture(t *testing.T) *accessFixture {
	t.Helper()

	signer, err := signingService.NewURLSigner(testSigningSecret)
	require.NoError(t, err)

	fixture := &accessFixture{
		repo:    new(mockContentFileRepository),
		license: new(mockLicenseChecker),
		limiter: new(mockDownloadLimiter),
		signer:  signer,
		// Far enough ahead that the signer's real clock sees issued links as
		// unexpired during verification.
		now: time.Date(2030, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	cfg := Config{
		PublicBaseURL:       "https://store.example.com",
		DocumentExpiry:      time.Hour,
		VideoExpiry:         2 * time.Hour,
		MaxFileSize:         100 * 1024 * 1024,
		AllowedContentTypes: []string{"pdf", "docx", "video", "file"},
		FilenameMaxLength:   128,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc, err := NewAccessUseCase(fixture.repo, fixture.license, fixture.limiter, signer, cfg, logger)
	require.NoError(t, err)
	uc.(*accessUseCase).now = func() time.Time { return fixture.now }

	fixture.uc = uc
	return fixture
}

func (f *accessFixture) allowDownloads() {
	f.limiter.On("CheckAndConsume", mock.Anything).Return(ratelimit.Decision{Allowed: true, Remaining: 10})
}

func documentFile(link string) *catalogDomain.ContentFile {
	return &catalogDomain.ContentFile{
		ID:              uuid.Must(uuid.NewV7()),
		ProductID:       uuid.Must(uuid.NewV7()),
		Name:            "user-guide.pdf",
		ContentType:     catalogDomain.ContentTypePDF,
		ExternalLink:    &link,
		RequiresLicense: true,
		SizeBytes:       2048,
	}
}

func videoFile(link string) *catalogDomain.ContentFile {
	return &catalogDomain.ContentFile{
		ID:              uuid.Must(uuid.NewV7()),
		ProductID:       uuid.Must(uuid.NewV7()),
		Name:            "Intro Lesson",
		ContentType:     catalogDomain.ContentTypeVideo,
		ExternalLink:    &link,
		RequiresLicense: true,
	}
}

func TestAccessUseCase_Grant_Document(t *testing.T) {
	ctx := context.Background()
	fixture := newAccessFixture(t)
	fixture.allowDownloads()

	userID := uuid.Must(uuid.NewV7())
	file := documentFile("https://drive.google.com/file/d/ABCDEFGHIJKLMNOPQRST1234/view?usp=sharing")

	fixture.repo.On("GetByID", ctx, file.ID).Return(file, nil)
	fixture.license.On("HasAccess", ctx, userID, file.ProductID).Return(true, nil)

	grant, err := fixture.uc.Grant(ctx, userID, file.ID.String())
	require.NoError(t, err)

	assert.Equal(t, accessDomain.GrantTypeDocument, grant.ContentType)
	assert.Equal(t, "user-guide.pdf", grant.FileName)
	assert.Equal(t, fixture.now.Add(time.Hour), grant.ExpiresAt)
	assert.Empty(t, grant.EmbedURL)

	parsed, err := url.Parse(grant.AccessURL)
	require.NoError(t, err)
	assert.Equal(t, "store.example.com", parsed.Host)
	assert.Equal(t, "/v1/content/download/drive", parsed.Path)

	query := parsed.Query()
	assert.Equal(t, "ABCDEFGHIJKLMNOPQRST1234", query.Get("fileId"))
	assert.Equal(t, "user-guide.pdf", query.Get("fileName"))

	expires, err := strconv.ParseInt(query.Get("expires"), 10, 64)
	require.NoError(t, err)
	assert.Equal(t, fixture.now.Add(time.Hour).Unix(), expires)

	// The issued signature must verify against the same signer.
	assert.NoError(t, fixture.signer.VerifyDocument(
		query.Get("fileId"), query.Get("fileName"), expires, query.Get("signature"),
	))

	fixture.repo.AssertExpectations(t)
	fixture.license.AssertExpectations(t)
}

func TestAccessUseCase_Grant_Video(t *testing.T) {
	ctx := context.Background()
	fixture := newAccessFixture(t)
	fixture.allowDownloads()

	userID := uuid.Must(uuid.NewV7())
	file := videoFile("https://youtu.be/dQw4w9WgXcQ")

	fixture.repo.On("GetByID", ctx, file.ID).Return(file, nil)
	fixture.license.On("HasAccess", ctx, userID, file.ProductID).Return(true, nil)

	grant, err := fixture.uc.Grant(ctx, userID, file.ID.String())
	require.NoError(t, err)

	assert.Equal(t, accessDomain.GrantTypeVideo, grant.ContentType)
	assert.Equal(t, "dQw4w9WgXcQ", grant.VideoID)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", grant.EmbedURL)
	assert.Equal(t, "Intro Lesson", grant.Title)
	assert.Equal(t, fixture.now.Add(2*time.Hour), grant.ExpiresAt)

	parsed, err := url.Parse(grant.AccessURL)
	require.NoError(t, err)
	assert.Equal(t, "/v1/content/video/youtube", parsed.Path)

	query := parsed.Query()
	expires, err := strconv.ParseInt(query.Get("expires"), 10, 64)
	require.NoError(t, err)

	assert.NoError(t, fixture.signer.VerifyVideo(
		query.Get("videoId"), query.Get("title"), expires, query.Get("signature"),
	))
}

func TestAccessUseCase_Grant_DownloadLimitExceeded(t *testing.T) {
	ctx := context.Background()
	fixture := newAccessFixture(t)

	userID := uuid.Must(uuid.NewV7())
	fixture.limiter.On("CheckAndConsume", userID.String()).
		Return(ratelimit.Decision{Allowed: false, RetryAfter: 10 * time.Minute})

	grant, err := fixture.uc.Grant(ctx, userID, uuid.Must(uuid.NewV7()).String())
	assert.Nil(t, grant)
	assert.ErrorIs(t, err, accessDomain.ErrDownloadLimitExceeded)
	assert.True(t, apperrors.Is(err, apperrors.ErrRateLimited))

	// Quota denial happens before any catalog work.
	fixture.repo.AssertNotCalled(t, "GetByID")
}

func TestAccessUseCase_Grant_MalformedID(t *testing.T) {
	ctx := context.Background()
	fixture := newAccessFixture(t)
	fixture.allowDownloads()

	grant, err := fixture.uc.Grant(ctx, uuid.Must(uuid.NewV7()), "not-a-uuid")
	assert.Nil(t, grant)
	assert.ErrorIs(t, err, catalogDomain.ErrContentFileNotFound)
	fixture.repo.AssertNotCalled(t, "GetByID")
}

func TestAccessUseCase_Grant_ContentFileNotFound(t *testing.T) {
	ctx := context.Background()
	fixture := newAccessFixture(t)
	fixture.allowDownloads()

	fileID := uuid.Must(uuid.NewV7())
	fixture.repo.On("GetByID", ctx, fileID).Return(nil, catalogDomain.ErrContentFileNotFound)

	grant, err := fixture.uc.Grant(ctx, uuid.Must(uuid.NewV7()), fileID.String())
	assert.Nil(t, grant)
	assert.ErrorIs(t, err, catalogDomain.ErrContentFileNotFound)
}

func TestAccessUseCase_Grant_LicenseDenied(t *testing.T) {
	ctx := context.Background()
	fixture := newAccessFixture(t)
	fixture.allowDownloads()

	userID := uuid.Must(uuid.NewV7())
	file := documentFile("https://drive.google.com/file/d/ABCDEFGHIJKLMNOPQRST1234/view")

	fixture.repo.On("GetByID", ctx, file.ID).Return(file, nil)
	fixture.license.On("HasAccess", ctx, userID, file.ProductID).Return(false, nil)

	grant, err := fixture.uc.Grant(ctx, userID, file.ID.String())
	assert.Nil(t, grant)
	assert.ErrorIs(t, err, accessDomain.ErrLicenseRequired)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
}

func TestAccessUseCase_Grant_FreeFileSkipsLicense(t *testing.T) {
	ctx := context.Background()
	fixture := newAccessFixture(t)
	fixture.allowDownloads()

	file := documentFile("https://drive.google.com/file/d/ABCDEFGHIJKLMNOPQRST1234/view")
	file.RequiresLicense = false

	fixture.repo.On("GetByID", ctx, file.ID).Return(file, nil)

	grant, err := fixture.uc.Grant(ctx, uuid.Must(uuid.NewV7()), file.ID.String())
	require.NoError(t, err)
	assert.NotNil(t, grant)
	fixture.license.AssertNotCalled(t, "HasAccess")
}

func TestAccessUseCase_Grant_LicenseCheckFailure(t *testing.T) {
	ctx := context.Background()
	fixture := newAccessFixture(t)
	fixture.allowDownloads()

	userID := uuid.Must(uuid.NewV7())
	file := documentFile("https://drive.google.com/file/d/ABCDEFGHIJKLMNOPQRST1234/view")

	fixture.repo.On("GetByID", ctx, file.ID).Return(file, nil)
	fixture.license.On("HasAccess", ctx, userID, file.ProductID).
		Return(false, apperrors.New("connection reset"))

	grant, err := fixture.uc.Grant(ctx, userID, file.ID.String())
	assert.Nil(t, grant)
	require.Error(t, err)
	assert.False(t, apperrors.Is(err, apperrors.ErrForbidden))
}

func TestAccessUseCase_Grant_NotConfigured(t *testing.T) {
	ctx := context.Background()

	t.Run("document without link", func(t *testing.T) {
		fixture := newAccessFixture(t)
		fixture.allowDownloads()

		file := documentFile("")
		file.ExternalLink = nil
		file.RequiresLicense = false

		fixture.repo.On("GetByID", ctx, file.ID).Return(file, nil)

		grant, err := fixture.uc.Grant(ctx, uuid.Must(uuid.NewV7()), file.ID.String())
		assert.Nil(t, grant)
		assert.ErrorIs(t, err, accessDomain.ErrDocumentNotConfigured)
	})

	t.Run("video with empty link", func(t *testing.T) {
		fixture := newAccessFixture(t)
		fixture.allowDownloads()

		file := videoFile("")
		file.RequiresLicense = false

		fixture.repo.On("GetByID", ctx, file.ID).Return(file, nil)

		grant, err := fixture.uc.Grant(ctx, uuid.Must(uuid.NewV7()), file.ID.String())
		assert.Nil(t, grant)
		assert.ErrorIs(t, err, accessDomain.ErrVideoNotConfigured)
	})
}

func TestAccessUseCase_Grant_BrokenStoredLink(t *testing.T) {
	ctx := context.Background()
	fixture := newAccessFixture(t)
	fixture.allowDownloads()

	file := documentFile("https://example.com/not-a-drive-link")
	file.RequiresLicense = false

	fixture.repo.On("GetByID", ctx, file.ID).Return(file, nil)

	grant, err := fixture.uc.Grant(ctx, uuid.Must(uuid.NewV7()), file.ID.String())
	assert.Nil(t, grant)
	require.Error(t, err)
	// A broken stored link is server-side corruption, not a client error.
	assert.NotErrorIs(t, err, accessDomain.ErrDocumentNotConfigured)
	assert.True(t, apperrors.Is(err, catalogDomain.ErrInvalidLinkFormat))
}

func TestAccessUseCase_Grant_OversizedDocument(t *testing.T) {
	ctx := context.Background()
	fixture := newAccessFixture(t)
	fixture.allowDownloads()

	file := documentFile("https://drive.google.com/file/d/ABCDEFGHIJKLMNOPQRST1234/view")
	file.RequiresLicense = false
	file.SizeBytes = 200 * 1024 * 1024

	fixture.repo.On("GetByID", ctx, file.ID).Return(file, nil)

	grant, err := fixture.uc.Grant(ctx, uuid.Must(uuid.NewV7()), file.ID.String())
	assert.Nil(t, grant)
	assert.True(t, apperrors.Is(err, apperrors.ErrConfiguration))
}

func TestAccessUseCase_Grant_DisallowedContentType(t *testing.T) {
	ctx := context.Background()

	signer, err := signingService.NewURLSigner(testSigningSecret)
	require.NoError(t, err)

	repo := new(mockContentFileRepository)
	license := new(mockLicenseChecker)
	limiter := new(mockDownloadLimiter)
	limiter.On("CheckAndConsume", mock.Anything).Return(ratelimit.Decision{Allowed: true})

	cfg := Config{
		PublicBaseURL:       "https://store.example.com",
		DocumentExpiry:      time.Hour,
		VideoExpiry:         time.Hour,
		MaxFileSize:         1024,
		AllowedContentTypes: []string{"pdf"},
		FilenameMaxLength:   128,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc, err := NewAccessUseCase(repo, license, limiter, signer, cfg, logger)
	require.NoError(t, err)

	file := videoFile("https://youtu.be/dQw4w9WgXcQ")
	repo.On("GetByID", ctx, file.ID).Return(file, nil)

	grant, err := uc.Grant(ctx, uuid.Must(uuid.NewV7()), file.ID.String())
	assert.Nil(t, grant)
	assert.True(t, apperrors.Is(err, apperrors.ErrConfiguration))
	license.AssertNotCalled(t, "HasAccess")
}

func TestAccessUseCase_Grant_SanitizesFileName(t *testing.T) {
	ctx := context.Background()
	fixture := newAccessFixture(t)
	fixture.allowDownloads()

	file := documentFile("https://drive.google.com/file/d/ABCDEFGHIJKLMNOPQRST1234/view")
	file.Name = "file<script>alert(1)</script>.pdf"
	file.RequiresLicense = false

	fixture.repo.On("GetByID", ctx, file.ID).Return(file, nil)

	grant, err := fixture.uc.Grant(ctx, uuid.Must(uuid.NewV7()), file.ID.String())
	require.NoError(t, err)

	assert.False(t, strings.ContainsAny(grant.FileName, "<>"))

	// The signature covers the sanitized name, so the issued URL verifies.
	parsed, err := url.Parse(grant.AccessURL)
	require.NoError(t, err)
	query := parsed.Query()
	expires, err := strconv.ParseInt(query.Get("expires"), 10, 64)
	require.NoError(t, err)
	assert.NoError(t, fixture.signer.VerifyDocument(
		query.Get("fileId"), query.Get("fileName"), expires, query.Get("signature"),
	))
}

func TestNewAccessUseCase_Misconfiguration(t *testing.T) {
	signer, err := signingService.NewURLSigner(testSigningSecret)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	base := Config{
		PublicBaseURL:       "https://store.example.com",
		DocumentExpiry:      time.Hour,
		VideoExpiry:         time.Hour,
		MaxFileSize:         1024,
		AllowedContentTypes: []string{"pdf"},
		FilenameMaxLength:   128,
	}

	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{"missing base URL", func(cfg *Config) { cfg.PublicBaseURL = "" }},
		{"zero max file size", func(cfg *Config) { cfg.MaxFileSize = 0 }},
		{"empty allowed types", func(cfg *Config) { cfg.AllowedContentTypes = nil }},
		{"zero document expiry", func(cfg *Config) { cfg.DocumentExpiry = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)

			uc, err := NewAccessUseCase(nil, nil, nil, signer, cfg, logger)
			assert.Nil(t, uc)
			assert.True(t, apperrors.Is(err, apperrors.ErrConfiguration))
		})
	}
}

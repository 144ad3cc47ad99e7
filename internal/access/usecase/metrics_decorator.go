package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	accessDomain "github.com/bitmarket/contentgate/internal/access/domain"
	"github.com/bitmarket/contentgate/internal/errors"
	"github.com/bitmarket/contentgate/internal/metrics"
)

const (
	metricsDomain         = "access"
	metricsOperationGrant = "access_grant"
)

// metricsAccessUseCase wraps an AccessUseCase with business metrics.
type metricsAccessUseCase struct {
	next            AccessUseCase
	businessMetrics metrics.BusinessMetrics
}

// NewMetricsAccessUseCase decorates an AccessUseCase with operation counters
// and duration histograms. Denials are recorded separately from errors so
// dashboards can tell policy at work from breakage.
func NewMetricsAccessUseCase(
	next AccessUseCase,
	businessMetrics metrics.BusinessMetrics,
) AccessUseCase {
	return &metricsAccessUseCase{
		next:            next,
		businessMetrics: businessMetrics,
	}
}

// Grant delegates to the wrapped use case and records the outcome.
func (m *metricsAccessUseCase) Grant(
	ctx context.Context,
	userID uuid.UUID,
	productFileID string,
) (*accessDomain.Grant, error) {
	start := time.Now()

	grant, err := m.next.Grant(ctx, userID, productFileID)

	status := grantStatus(err)
	m.businessMetrics.RecordOperation(ctx, metricsDomain, metricsOperationGrant, status)
	m.businessMetrics.RecordDuration(ctx, metricsDomain, metricsOperationGrant, time.Since(start), status)

	return grant, err
}

func grantStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, accessDomain.ErrLicenseRequired),
		errors.Is(err, accessDomain.ErrDownloadLimitExceeded):
		return "denied"
	case errors.Is(err, accessDomain.ErrDocumentNotConfigured),
		errors.Is(err, accessDomain.ErrVideoNotConfigured):
		return "not_configured"
	default:
		return "error"
	}
}

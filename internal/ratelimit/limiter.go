package ratelimit

import (
	"time"

	apperrors "github.com/bitmarket/contentgate/internal/errors"
)

// Decision is the outcome of a quota check.
type Decision struct {
	// Allowed reports whether the request was admitted.
	Allowed bool
	// Remaining is the number of requests left in the window. Only
	// meaningful when Allowed is true.
	Remaining int
	// RetryAfter is how long until the window resets. Only meaningful when
	// Allowed is false.
	RetryAfter time.Duration
}

// Limiter admits up to limit requests per subject within a fixed rolling
// window.
//
// The check-then-write sequence against the store is not atomic across
// concurrent requests for the same subject: under a concurrent burst the
// limiter may slightly over-admit. This is an accepted property of the
// advisory per-process design, not a bug.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewLimiter creates a Limiter over the given store. Fails fast on a
// non-positive limit or window.
func NewLimiter(store Store, limit int, window time.Duration) (*Limiter, error) {
	if store == nil {
		return nil, apperrors.Wrap(apperrors.ErrConfiguration, "rate limit store is required")
	}
	if limit <= 0 {
		return nil, apperrors.Wrap(apperrors.ErrConfiguration, "rate limit must be positive")
	}
	if window <= 0 {
		return nil, apperrors.Wrap(apperrors.ErrConfiguration, "rate limit window must be positive")
	}

	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
	}, nil
}

// CheckAndConsume admits or denies a request for the subject and consumes
// one unit of quota when admitted.
//
// A missing or expired record starts a fresh window with count 1. The count
// is never read without checking ResetAt first.
func (l *Limiter) CheckAndConsume(subject string) Decision {
	now := l.now()

	record, ok := l.store.Get(subject)
	if !ok || now.After(record.ResetAt) {
		l.store.Put(subject, Record{Count: 1, ResetAt: now.Add(l.window)})
		return Decision{Allowed: true, Remaining: l.limit - 1}
	}

	if record.Count >= l.limit {
		return Decision{Allowed: false, RetryAfter: record.ResetAt.Sub(now)}
	}

	record.Count++
	l.store.Put(subject, record)
	return Decision{Allowed: true, Remaining: l.limit - record.Count}
}

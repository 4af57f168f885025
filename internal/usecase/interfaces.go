package usecase

import (
	"context"
	"time"

	"sigval/internal/domain"
)

type PolicyProvider interface {
	Policy(name string) (*domain.ValidationPolicy, error)
	Names() []string
}

type ReportRepository interface {
	Save(ctx context.Context, rec domain.ValidationRecord) error
	Get(ctx context.Context, id string) (*domain.ValidationRecord, error)
}

// ReportCacheKey names a reproducible validation: one fact tree checked
// against one policy at one pinned time.
type ReportCacheKey struct {
	DocumentDigest string
	PolicyName     string
	ValidationTime time.Time
}

// String puts the fixed-width parts first so that any policy name yields an
// unambiguous key.
func (k ReportCacheKey) String() string {
	return k.DocumentDigest + "|" + k.ValidationTime.UTC().Format(time.RFC3339Nano) + "|" + k.PolicyName
}

type ReportCache interface {
	Get(ctx context.Context, key ReportCacheKey) (*domain.ValidationRecord, bool, error)
	Set(ctx context.Context, key ReportCacheKey, rec domain.ValidationRecord, ttl time.Duration) error
}

type DocumentDigester interface {
	Digest(diag *domain.DiagnosticData) (string, error)
}

type RateLimitDecision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (RateLimitDecision, error)
}

type ValidationMetrics interface {
	ObserveValidation(policyName string, report *domain.SimpleReport, elapsed time.Duration)
	ObserveCache(hit bool)
}

package usecase

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sigval/internal/domain"
)

type ValidateDocumentRequest struct {
	Diagnostic     *domain.DiagnosticData
	PolicyName     string
	ValidationTime *time.Time
}

// ValidateDocument resolves the policy, runs the engine and stores the
// resulting report.
type ValidateDocument struct {
	Engine        *Engine
	Policies      PolicyProvider
	Reports       ReportRepository
	Cache         ReportCache
	CacheTTL      time.Duration
	Digests       DocumentDigester
	Admission     *Admission
	Metrics       ValidationMetrics
	Logger        *zap.Logger
	DefaultPolicy string
	Now           func() time.Time
	NewID         func() string
}

func (uc *ValidateDocument) Execute(ctx context.Context, req ValidateDocumentRequest) (*domain.ValidationRecord, error) {
	if req.Diagnostic == nil {
		return nil, errors.Wrap(domain.ErrInvalidDiagnosticData, "diagnostic data is required")
	}
	policy, err := uc.resolvePolicy(req.PolicyName)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	at := now
	if req.ValidationTime != nil {
		at = req.ValidationTime.UTC()
	}

	// Only requests pinned to a validation time are reproducible.
	var cacheKey *ReportCacheKey
	if uc.Cache != nil && uc.Digests != nil && req.ValidationTime != nil && uc.CacheTTL > 0 {
		digest, err := uc.Digests.Digest(req.Diagnostic)
		if err != nil {
			return nil, errors.Wrap(err, "digest diagnostic data")
		}
		cacheKey = &ReportCacheKey{DocumentDigest: digest, PolicyName: policy.Name, ValidationTime: at}
		rec, hit, err := uc.Cache.Get(ctx, *cacheKey)
		if err != nil {
			uc.logger().Warn("report cache read failed", zap.Error(err))
		}
		uc.observeCache(hit && err == nil)
		if hit && err == nil {
			return rec, nil
		}
	}

	start := time.Now()
	result, err := uc.Engine.Validate(ctx, req.Diagnostic, policy, at)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	rec := domain.ValidationRecord{
		ID:         uc.newID(),
		PolicyName: policy.Name,
		CreatedAt:  now,
		Report:     result.Report,
		Trace:      result.Trace,
	}
	rec.Report.ID = rec.ID
	if uc.Reports != nil {
		if err := uc.Reports.Save(ctx, rec); err != nil {
			return nil, errors.Wrap(err, "store validation report")
		}
	}
	if cacheKey != nil {
		if err := uc.Cache.Set(ctx, *cacheKey, rec, uc.CacheTTL); err != nil {
			uc.logger().Warn("report cache write failed", zap.Error(err))
		}
	}
	if uc.Metrics != nil {
		uc.Metrics.ObserveValidation(policy.Name, rec.Report, elapsed)
	}
	uc.logger().Info("document validated",
		zap.String("id", rec.ID),
		zap.String("policy", policy.Name),
		zap.String("indication", string(rec.Report.Global.Indication)),
		zap.Int("signatures", rec.Report.Global.SignaturesCount),
		zap.Duration("duration", elapsed))
	return &rec, nil
}

// Admit charges one request from clientID against the rate window of the
// policy it names. Unknown policies are rejected before anything is counted.
func (uc *ValidateDocument) Admit(ctx context.Context, clientID, policyName string) (RateLimitDecision, error) {
	policy, err := uc.resolvePolicy(policyName)
	if err != nil {
		return RateLimitDecision{}, err
	}
	return uc.Admission.Admit(ctx, clientID, policy.Name)
}

func (uc *ValidateDocument) resolvePolicy(name string) (*domain.ValidationPolicy, error) {
	if name == "" {
		name = uc.DefaultPolicy
	}
	return uc.Policies.Policy(name)
}

func (uc *ValidateDocument) Get(ctx context.Context, id string) (*domain.ValidationRecord, error) {
	if uc.Reports == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	return uc.Reports.Get(ctx, id)
}

func (uc *ValidateDocument) observeCache(hit bool) {
	if uc.Metrics != nil {
		uc.Metrics.ObserveCache(hit)
	}
}

func (uc *ValidateDocument) now() time.Time {
	if uc.Now != nil {
		return uc.Now().UTC()
	}
	return time.Now().UTC()
}

func (uc *ValidateDocument) newID() string {
	if uc.NewID != nil {
		return uc.NewID()
	}
	return uuid.NewString()
}

func (uc *ValidateDocument) logger() *zap.Logger {
	if uc.Logger == nil {
		return zap.NewNop()
	}
	return uc.Logger
}

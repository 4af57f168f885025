package usecase

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"sigval/internal/domain"
)

// Admission meters validation requests per client and policy. Each policy has
// its own window so a burst against a strict policy does not starve another.
type Admission struct {
	Limiter    RateLimiter
	Limit      int
	Window     time.Duration
	FailClosed bool
	Logger     *zap.Logger
}

func admissionKey(clientID, policyName string) string {
	return "client:" + clientID + ":policy:" + policyName
}

// Admit counts one request. A refused decision is returned together with
// domain.ErrRateLimited so callers can still report the window.
func (a *Admission) Admit(ctx context.Context, clientID, policyName string) (RateLimitDecision, error) {
	if a == nil || a.Limiter == nil || a.Limit <= 0 {
		return RateLimitDecision{Allowed: true, Limit: 0, Remaining: -1}, nil
	}
	decision, err := a.Limiter.Allow(ctx, admissionKey(clientID, policyName), a.Limit, a.Window)
	if err != nil {
		a.logger().Warn("rate limiter failed",
			zap.Error(err),
			zap.String("policy", policyName),
			zap.Bool("fail_closed", a.FailClosed))
		if a.FailClosed {
			return RateLimitDecision{}, errors.WithSecondaryError(
				errors.Wrapf(domain.ErrRateLimiterDown, "policy %q", policyName), err)
		}
		return RateLimitDecision{Allowed: true, Limit: 0, Remaining: -1}, nil
	}
	if !decision.Allowed {
		return decision, errors.Wrapf(domain.ErrRateLimited, "policy %q", policyName)
	}
	return decision, nil
}

func (a *Admission) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

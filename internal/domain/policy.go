package domain

import (
	"sort"
	"time"
)

const ClaimedRolesAttendanceAny = "ANY"

// ConstraintSpec is the persisted shape of one constraint: a severity plus the
// expected values its kind needs.
type ConstraintSpec struct {
	Level       Level
	Expected    string
	Identifiers []string
	Min         *int
	Max         *int
	Crypto      *CryptoSpec
}

type CryptoSpec struct {
	EncryptionAlgos []string
	DigestAlgos     []string
	MinKeySizes     map[string]int
}

type PolicyKey struct {
	Context    Context
	SubContext SubContext
	CheckPoint CheckPoint
}

type ValidationPolicy struct {
	Name        string
	Description string

	Constraints map[PolicyKey]ConstraintSpec

	ContentTimestampTypes          []TimestampType
	ClaimedRolesAttendance         string
	AlgoExpirationDates            map[string]time.Time
	MaxRevocationFreshness         time.Duration
	TimestampDelay                 time.Duration
	RequireValidSignatureTimestamp bool
}

func NewValidationPolicy(name string) *ValidationPolicy {
	return &ValidationPolicy{
		Name:                           name,
		Constraints:                    map[PolicyKey]ConstraintSpec{},
		AlgoExpirationDates:            map[string]time.Time{},
		RequireValidSignatureTimestamp: true,
	}
}

// Constraint looks up the spec configured for the check point. ok=false means
// the check point is not configured and must be skipped.
func (p *ValidationPolicy) Constraint(ctx Context, sub SubContext, cp CheckPoint) (ConstraintSpec, bool) {
	if p == nil {
		return ConstraintSpec{}, false
	}
	spec, ok := p.Constraints[PolicyKey{Context: ctx, SubContext: sub, CheckPoint: cp}]
	return spec, ok
}

func (p *ValidationPolicy) Set(ctx Context, sub SubContext, cp CheckPoint, spec ConstraintSpec) {
	if p.Constraints == nil {
		p.Constraints = map[PolicyKey]ConstraintSpec{}
	}
	p.Constraints[PolicyKey{Context: ctx, SubContext: sub, CheckPoint: cp}] = spec
}

// HasContext reports whether any constraint is configured under ctx.
func (p *ValidationPolicy) HasContext(ctx Context) bool {
	for k := range p.Constraints {
		if k.Context == ctx {
			return true
		}
	}
	return false
}

// SignatureContext picks the context used to validate sig. Counter-signatures
// use their own section only when the policy configures one.
func (p *ValidationPolicy) SignatureContext(sig *Signature) Context {
	if sig.IsCounterSignature() && p.HasContext(ContextCounterSignature) {
		return ContextCounterSignature
	}
	return ContextMainSignature
}

func (p *ValidationPolicy) AlgorithmExpiration(algo string) (time.Time, bool) {
	t, ok := p.AlgoExpirationDates[algo]
	return t, ok
}

// Keys returns the configured keys in a stable order.
func (p *ValidationPolicy) Keys() []PolicyKey {
	keys := make([]PolicyKey, 0, len(p.Constraints))
	for k := range p.Constraints {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Context != b.Context {
			return a.Context < b.Context
		}
		if a.SubContext != b.SubContext {
			return a.SubContext < b.SubContext
		}
		return a.CheckPoint < b.CheckPoint
	})
	return keys
}

func IntPtr(v int) *int { return &v }

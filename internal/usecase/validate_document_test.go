package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"sigval/internal/domain"
)

type fakePolicies map[string]*domain.ValidationPolicy

func (f fakePolicies) Policy(name string) (*domain.ValidationPolicy, error) {
	p, ok := f[name]
	if !ok {
		return nil, errors.Wrapf(domain.ErrPolicyNotFound, "policy %q", name)
	}
	return p, nil
}

func (f fakePolicies) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	return names
}

type fakeReports struct {
	saved map[string]domain.ValidationRecord
}

func (f *fakeReports) Save(_ context.Context, rec domain.ValidationRecord) error {
	if f.saved == nil {
		f.saved = map[string]domain.ValidationRecord{}
	}
	f.saved[rec.ID] = rec
	return nil
}

func (f *fakeReports) Get(_ context.Context, id string) (*domain.ValidationRecord, error) {
	rec, ok := f.saved[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

type fakeCache struct {
	entries map[ReportCacheKey]domain.ValidationRecord
	sets    int
}

func (f *fakeCache) Get(_ context.Context, key ReportCacheKey) (*domain.ValidationRecord, bool, error) {
	rec, ok := f.entries[key]
	if !ok {
		return nil, false, nil
	}
	return &rec, true, nil
}

func (f *fakeCache) Set(_ context.Context, key ReportCacheKey, rec domain.ValidationRecord, _ time.Duration) error {
	if f.entries == nil {
		f.entries = map[ReportCacheKey]domain.ValidationRecord{}
	}
	f.entries[key] = rec
	f.sets++
	return nil
}

type fakeDigests struct{}

func (fakeDigests) Digest(diag *domain.DiagnosticData) (string, error) {
	return "digest:" + diag.DocumentName, nil
}

type fakeMetrics struct {
	validations int
	hits        int
	misses      int
}

func (f *fakeMetrics) ObserveValidation(string, *domain.SimpleReport, time.Duration) { f.validations++ }

func (f *fakeMetrics) ObserveCache(hit bool) {
	if hit {
		f.hits++
		return
	}
	f.misses++
}

func newValidateDocument() (*ValidateDocument, *fakeReports, *fakeCache, *fakeMetrics) {
	reports := &fakeReports{}
	cache := &fakeCache{}
	metrics := &fakeMetrics{}
	ids := 0
	uc := &ValidateDocument{
		Engine:        NewEngine(nil, false),
		Policies:      fakePolicies{"strict": strictPolicy()},
		Reports:       reports,
		Cache:         cache,
		CacheTTL:      time.Minute,
		Digests:       fakeDigests{},
		Metrics:       metrics,
		DefaultPolicy: "strict",
		Now:           func() time.Time { return validationTime },
		NewID: func() string {
			ids++
			return []string{
				"6f1c2f0e-4b7a-4c55-9d4e-2f8f3c1a0b01",
				"6f1c2f0e-4b7a-4c55-9d4e-2f8f3c1a0b02",
			}[ids-1]
		},
	}
	return uc, reports, cache, metrics
}

func TestValidateDocument_StoresReport(t *testing.T) {
	uc, reports, cache, metrics := newValidateDocument()

	rec, err := uc.Execute(context.Background(), ValidateDocumentRequest{Diagnostic: document(validSignature("S-1"))})
	require.NoError(t, err)
	require.Equal(t, "6f1c2f0e-4b7a-4c55-9d4e-2f8f3c1a0b01", rec.ID)
	require.Equal(t, rec.ID, rec.Report.ID)
	require.Equal(t, "strict", rec.PolicyName)
	require.Equal(t, validationTime, rec.Report.ValidationTime)
	require.Equal(t, domain.IndicationValid, rec.Report.Global.Indication)
	require.Contains(t, reports.saved, rec.ID)
	require.Zero(t, cache.sets, "unpinned requests are not cached")
	require.Equal(t, 1, metrics.validations)

	got, err := uc.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.ID, got.ID)
}

func TestValidateDocument_PinnedTimeUsesCache(t *testing.T) {
	uc, _, cache, metrics := newValidateDocument()
	at := date(2025, 5, 15)
	req := ValidateDocumentRequest{Diagnostic: document(validSignature("S-1")), PolicyName: "strict", ValidationTime: &at}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, at, first.Report.ValidationTime)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 1, cache.sets)
	require.Equal(t, 1, metrics.hits)
	require.Equal(t, 1, metrics.misses)
	require.Equal(t, 1, metrics.validations)

	doc := document(validSignature("S-1"))
	require.Contains(t, cache.entries, ReportCacheKey{
		DocumentDigest: "digest:" + doc.DocumentName,
		PolicyName:     "strict",
		ValidationTime: at,
	})
}

func TestValidateDocument_CacheKeySeparatesPinnedTimes(t *testing.T) {
	uc, _, cache, metrics := newValidateDocument()
	first := date(2025, 5, 15)
	second := date(2025, 5, 16)

	a, err := uc.Execute(context.Background(), ValidateDocumentRequest{Diagnostic: document(validSignature("S-1")), ValidationTime: &first})
	require.NoError(t, err)
	b, err := uc.Execute(context.Background(), ValidateDocumentRequest{Diagnostic: document(validSignature("S-1")), ValidationTime: &second})
	require.NoError(t, err)

	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, 2, cache.sets)
	require.Equal(t, 0, metrics.hits)
	for key := range cache.entries {
		require.Equal(t, "strict", key.PolicyName, "the default policy is resolved before keying")
	}
}

func TestReportCacheKey_String(t *testing.T) {
	at := time.Date(2025, 5, 15, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	key := ReportCacheKey{DocumentDigest: "abc", PolicyName: "eu|qes", ValidationTime: at}
	require.Equal(t, "abc|2025-05-15T11:00:00Z|eu|qes", key.String())

	other := key
	other.ValidationTime = at.UTC()
	require.Equal(t, key.String(), other.String())
}

func TestValidateDocument_Errors(t *testing.T) {
	uc, _, _, _ := newValidateDocument()
	ctx := context.Background()

	_, err := uc.Execute(ctx, ValidateDocumentRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidDiagnosticData)

	_, err = uc.Execute(ctx, ValidateDocumentRequest{Diagnostic: document(validSignature("S-1")), PolicyName: "missing"})
	require.ErrorIs(t, err, domain.ErrPolicyNotFound)

	_, err = uc.Get(ctx, "not-a-uuid")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Get(ctx, "6f1c2f0e-4b7a-4c55-9d4e-2f8f3c1a0bff")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

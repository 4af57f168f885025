package usecase

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"sigval/internal/domain"
)

const unknownSigner = "?"

// SimpleReportBuilder turns the conclusions of a run into the simple report.
// It never fails: per-signature problems become UNEXPECTED_ERROR verdicts.
type SimpleReportBuilder struct {
	Logger *zap.Logger
}

func (b SimpleReportBuilder) Build(pc *ProcessContext) *domain.SimpleReport {
	diag := pc.Diagnostic
	report := &domain.SimpleReport{
		Policy: domain.PolicyInfo{
			Name:        pc.Policy.Name,
			Description: pc.Policy.Description,
		},
		ValidationTime:   pc.CurrentTime.UTC(),
		DocumentName:     diag.DocumentName,
		DetachedContents: diag.DetachedContents,
	}

	if gs := pc.GeneralStructure(); gs != nil && !gs.IsValid() {
		report.Global = domain.GlobalResult{
			Indication:    gs.Indication,
			SubIndication: gs.SubIndication,
			Errors:        gs.Errors,
		}
		return report
	}

	agg := newVerdictAggregate()
	for i := range diag.Signatures {
		sr := b.signatureReport(pc, &diag.Signatures[i])
		agg.add(sr)
		report.Signatures = append(report.Signatures, sr)
	}
	report.Global = agg.result()
	return report
}

func (b SimpleReportBuilder) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

func (b SimpleReportBuilder) signatureReport(pc *ProcessContext, sig *domain.Signature) (sr domain.SignatureReport) {
	sr.ID = sig.ID
	defer func() {
		if rec := recover(); rec != nil {
			b.unexpected(&sr, errors.Newf("%v", rec))
		}
	}()
	if err := b.fillSignature(pc, sig, &sr); err != nil {
		b.unexpected(&sr, err)
	}
	return sr
}

func (b SimpleReportBuilder) unexpected(sr *domain.SignatureReport, err error) {
	b.logger().Error("signature report failed", zap.String("signature_id", sr.ID), zap.Error(err))
	sr.Indication = domain.IndicationIndeterminate
	sr.SubIndication = domain.SubUnexpectedError
	sr.Infos = append(sr.Infos, domain.NewMessage(domain.MsgUnexpectedError, map[string]string{
		domain.AttrCause: err.Error(),
	}))
}

func (b SimpleReportBuilder) fillSignature(pc *ProcessContext, sig *domain.Signature, sr *domain.SignatureReport) error {
	if sig.IsCounterSignature() {
		sr.Type = sig.Type
		sr.ParentID = sig.ParentID
	}
	sr.SigningTime = sig.SigningTime
	sr.SignatureFormat = sig.SignatureFormat
	sr.SignatureScopes = sig.SignatureScopes

	cert, _ := pc.Diagnostic.Certificate(sig.SigningCertificate.ID)
	sr.SignedBy = signedBy(cert)
	if cert != nil {
		sr.SubjectDistinguishedName = cert.SubjectDistinguishedName
		sr.NotBefore = timePtr(cert.NotBefore)
		sr.NotAfter = timePtr(cert.NotAfter)
	}
	sr.SignatureLevel = Qualify(cert)

	outcome, ok := pc.Outcome(sig.ID)
	if !ok {
		return errors.Newf("no validation outcome for signature %s", sig.ID)
	}
	if outcome.Err != nil {
		return outcome.Err
	}
	for i := range sig.Timestamps {
		sr.Timestamps = append(sr.Timestamps, timestampReport(pc, &sig.Timestamps[i], outcome.Timestamps[sig.Timestamps[i].ID]))
	}

	bv := outcome.Conclusion(SubprocessBasicValidation)
	ltv := outcome.Conclusion(SubprocessLongTermValidation)
	selected := bv
	if ltv != nil && (ltv.IsValid() || !pc.Policy.RequireValidSignatureTimestamp) {
		selected = ltv
	}
	if selected == nil {
		return errors.Newf("signature %s has no basic validation result", sig.ID)
	}
	sr.Indication = selected.Indication
	sr.SubIndication = selected.SubIndication
	sr.Errors = appendUnique(nil, selected.Errors...)
	if bv != nil {
		sr.Warnings = appendUnique(sr.Warnings, bv.Warnings...)
	}
	if ltv != nil {
		sr.Warnings = appendUnique(sr.Warnings, ltv.Warnings...)
		sr.Infos = appendUnique(sr.Infos, ltv.Infos...)
	}
	for _, msg := range sig.ErrorMessages {
		sr.Infos = append(sr.Infos, domain.NewMessage(domain.MsgFactError, map[string]string{domain.AttrCause: msg}))
	}
	return nil
}

func signedBy(cert *domain.Certificate) string {
	if cert == nil {
		return unknownSigner
	}
	if cn := cert.CommonName(); cn != "" {
		return cn
	}
	if cert.SubjectDistinguishedName != "" {
		return cert.SubjectDistinguishedName
	}
	return unknownSigner
}

func timestampReport(pc *ProcessContext, ts *domain.Timestamp, c *domain.Conclusion) domain.TimestampReport {
	tr := domain.TimestampReport{
		ID:             ts.ID,
		Type:           ts.Type,
		ProductionTime: ts.ProductionTime,
	}
	if cert, ok := pc.Diagnostic.Certificate(ts.SigningCertificate.ID); ok {
		tr.SubjectDistinguishedName = cert.SubjectDistinguishedName
		tr.NotBefore = timePtr(cert.NotBefore)
		tr.NotAfter = timePtr(cert.NotAfter)
	}
	if c != nil {
		tr.Indication = c.Indication
		tr.SubIndication = c.SubIndication
	}
	return tr
}

func appendUnique(dst []domain.Message, msgs ...domain.Message) []domain.Message {
	seen := make(map[string]struct{}, len(dst))
	for _, m := range dst {
		seen[messageKey(m)] = struct{}{}
	}
	for _, m := range msgs {
		k := messageKey(m)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		dst = append(dst, m)
	}
	return dst
}

func messageKey(m domain.Message) string {
	return fmt.Sprintf("%s|%v", m.ID, m.Attributes)
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// verdictAggregate is the single accumulation point for the global verdict.
type verdictAggregate struct {
	indications map[domain.Indication]struct{}
	subs        map[domain.SubIndication]struct{}
	total       int
	valid       int
}

func newVerdictAggregate() *verdictAggregate {
	return &verdictAggregate{
		indications: map[domain.Indication]struct{}{},
		subs:        map[domain.SubIndication]struct{}{},
	}
}

func (a *verdictAggregate) add(sr domain.SignatureReport) {
	a.total++
	if sr.Indication == domain.IndicationValid {
		a.valid++
	}
	if sr.Indication != "" {
		a.indications[sr.Indication] = struct{}{}
	}
	if sr.SubIndication != "" {
		a.subs[sr.SubIndication] = struct{}{}
	}
}

func (a *verdictAggregate) result() domain.GlobalResult {
	g := domain.GlobalResult{
		ValidSignaturesCount: a.valid,
		SignaturesCount:      a.total,
	}
	switch len(a.indications) {
	case 0:
		g.Indication = domain.IndicationIndeterminate
	case 1:
		for ind := range a.indications {
			g.Indication = ind
		}
	default:
		g.Indication = domain.IndicationIndeterminate
		if _, ok := a.indications[domain.IndicationInvalid]; ok {
			g.Indication = domain.IndicationInvalid
		}
	}
	switch len(a.subs) {
	case 0:
	case 1:
		for sub := range a.subs {
			g.SubIndication = sub
		}
	default:
		g.SubIndication = domain.SubSomeNotValidSignatures
	}
	return g
}

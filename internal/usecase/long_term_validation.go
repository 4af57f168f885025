package usecase

import (
	"strconv"
	"time"

	"sigval/internal/domain"
)

// LongTermValidation re-evaluates a basic validation result at the
// best-signature-time proven by valid signature timestamps.
type LongTermValidation struct{}

type ltvRun struct {
	sc   *SignatureContext
	node *domain.TraceNode
	bv   *domain.Conclusion
	bst  time.Time
	held domain.SubIndication
	cert *domain.Certificate
}

func (LongTermValidation) Run(sc *SignatureContext, parent *domain.TraceNode) (*domain.Conclusion, error) {
	if err := sc.validate(); err != nil {
		return nil, err
	}
	node := parent.AddChild(SubprocessLongTermValidation)
	conclusion := domain.NewConclusion(node.Location())
	defer func() { sc.Outcome.Conclusions[SubprocessLongTermValidation] = conclusion }()

	bv := sc.Outcome.Conclusion(SubprocessBasicValidation)
	if bv == nil {
		conclusion.SetIndication(domain.IndicationIndeterminate, domain.SubUnexpectedError)
		return conclusion, nil
	}
	r := &ltvRun{sc: sc, node: node, bv: bv, bst: bestSignatureTime(sc)}
	r.cert, _ = sc.Process.Diagnostic.Certificate(sc.Signature.SigningCertificate.ID)
	sc.Outcome.BestSignatureTime = r.bst
	node.SetAttribute(domain.AttrBestSignatureTime, formatTime(r.bst))
	bstInfo := map[string]string{domain.AttrBestSignatureTime: formatTime(r.bst)}

	switch {
	case bv.IsValid():
	case bv.Indication == domain.IndicationIndeterminate && bv.SubIndication.POERecoverable():
		r.held = bv.SubIndication
	default:
		conclusion.CopyFrom(bv)
		conclusion.AddInfo(domain.MsgBestSignatureTime, bstInfo)
		return conclusion, nil
	}
	conclusion.AddInfo(domain.MsgBestSignatureTime, bstInfo)

	runChecks(conclusion,
		r.checkTimestampCoherence,
		r.checkTimestampDelay,
		r.checkIssuance,
		r.checkRevocationTime,
		r.checkCertificateValidity,
		r.checkAlgorithmReliable,
	)
	if conclusion.IsValid() && r.held != "" {
		conclusion.SetIndication(bv.Indication, bv.SubIndication)
		conclusion.Errors = append(conclusion.Errors, bv.Errors...)
	}
	return conclusion, nil
}

// bestSignatureTime is the earliest production time of a valid signature
// timestamp, or the current time when there is none.
func bestSignatureTime(sc *SignatureContext) time.Time {
	best := sc.Process.CurrentTime
	for _, ts := range sc.Signature.TimestampsOfType(domain.TimestampSignature) {
		if ts.ProductionTime == nil || !sc.Outcome.Timestamps[ts.ID].IsValid() {
			continue
		}
		if ts.ProductionTime.Before(best) {
			best = *ts.ProductionTime
		}
	}
	return best
}

func (r *ltvRun) constraint(cp domain.CheckPoint) *Constraint {
	return r.sc.Process.constraint(domain.ContextLongTerm, domain.SubContextNone, cp)
}

func (r *ltvRun) validTimes(types ...domain.TimestampType) []time.Time {
	var out []time.Time
	for _, ts := range r.sc.Signature.TimestampsOfType(types...) {
		if ts.ProductionTime != nil && r.sc.Outcome.Timestamps[ts.ID].IsValid() {
			out = append(out, *ts.ProductionTime)
		}
	}
	return out
}

// checkTimestampCoherence requires content timestamps before signature
// timestamps and signature timestamps before archive timestamps.
func (r *ltvRun) checkTimestampCoherence(conclusion *domain.Conclusion) bool {
	content := r.validTimes(domain.TimestampContent, domain.TimestampAllDataObjects, domain.TimestampIndividualDataObjects)
	signature := r.validTimes(domain.TimestampSignature)
	archive := r.validTimes(domain.TimestampArchive)
	ordered := allBefore(content, signature) && allBefore(signature, archive) && allBefore(content, archive)
	return checkValue(r.node, conclusion, r.constraint(domain.CheckTimestampCoherence),
		domain.MsgLTVCoherence, domain.MsgLTVCoherenceAns,
		domain.IndicationIndeterminate, domain.SubTimestampOrderFailure, ordered)
}

func allBefore(earlier, later []time.Time) bool {
	for _, e := range earlier {
		for _, l := range later {
			if e.After(l) {
				return false
			}
		}
	}
	return true
}

func (r *ltvRun) checkTimestampDelay(conclusion *domain.Conclusion) bool {
	c := r.constraint(domain.CheckTimestampDelaySigningTime)
	if c == nil {
		return true
	}
	delay := r.sc.Process.Policy.TimestampDelay
	signing := r.sc.Signature.SigningTime
	ok := true
	if signing != nil && delay > 0 {
		for _, produced := range r.validTimes(domain.TimestampSignature) {
			if produced.After(signing.Add(delay)) {
				ok = false
				break
			}
		}
	}
	return checkValue(r.node, conclusion, c, domain.MsgLTVDelay, domain.MsgLTVDelayAns,
		domain.IndicationInvalid, domain.SubSigConstraintsFailure, ok)
}

func (r *ltvRun) checkIssuance(conclusion *domain.Conclusion) bool {
	c := r.constraint(domain.CheckBestSignatureTimeBeforeIssuance)
	if c == nil || r.cert == nil {
		return true
	}
	c.SetAttribute(domain.AttrNotBefore, formatTime(r.cert.NotBefore))
	return checkValue(r.node, conclusion, c, domain.MsgLTVIssuance, domain.MsgLTVIssuanceAns,
		domain.IndicationInvalid, domain.SubNotYetValid, !r.bst.Before(r.cert.NotBefore))
}

// The proof-of-existence checks only run for the failure basic validation
// raised; passing one clears it.

func (r *ltvRun) checkRevocationTime(conclusion *domain.Conclusion) bool {
	if r.held != domain.SubRevokedNoPOE {
		return true
	}
	c := r.constraint(domain.CheckRevocationTime)
	if c == nil {
		return true
	}
	ok := false
	if r.cert != nil && r.cert.Revocation != nil && r.cert.Revocation.RevocationDate != nil {
		ok = r.bst.Before(*r.cert.Revocation.RevocationDate)
	}
	return r.poeCheck(conclusion, c, domain.MsgLTVRevocationTime, domain.MsgLTVRevocationTimeAns, ok)
}

func (r *ltvRun) checkCertificateValidity(conclusion *domain.Conclusion) bool {
	if r.held != domain.SubOutOfBoundsNoPOE {
		return true
	}
	c := r.constraint(domain.CheckSigningCertificateValidityAtBestSignatureTime)
	if c == nil {
		return true
	}
	ok := r.cert != nil && !r.bst.Before(r.cert.NotBefore) && !r.bst.After(r.cert.NotAfter)
	return r.poeCheck(conclusion, c, domain.MsgLTVCertValidity, domain.MsgLTVCertValidityAns, ok)
}

func (r *ltvRun) checkAlgorithmReliable(conclusion *domain.Conclusion) bool {
	if r.held != domain.SubCryptoConstraintsFailureNoPOE {
		return true
	}
	c := r.constraint(domain.CheckAlgorithmReliableAtBestSignatureTime)
	if c == nil {
		return true
	}
	basic := r.sc.Signature.BasicSignature
	expirations := r.sc.Process.Policy.AlgoExpirationDates
	ok := true
	for _, name := range []string{basic.EncryptionAlgo + strconv.Itoa(basic.KeyLength), basic.DigestAlgo} {
		if exp, found := lookupFold(expirations, name); found && !r.bst.Before(exp) {
			ok = false
			c.SetAttribute(domain.AttrAlgorithm, name)
		}
	}
	return r.poeCheck(conclusion, c, domain.MsgLTVAlgorithm, domain.MsgLTVAlgorithmAns, ok)
}

func (r *ltvRun) poeCheck(conclusion *domain.Conclusion, c *Constraint, msg, failMsg domain.MessageID, ok bool) bool {
	if !checkValue(r.node, conclusion, c, msg, failMsg, domain.IndicationIndeterminate, r.held, ok) {
		return false
	}
	if ok {
		r.held = ""
	}
	return true
}

package usecase

import (
	"time"

	"sigval/internal/domain"
)

// X509CertificateValidation validates the certificate chain of a signature or
// timestamp in the given policy context.
type X509CertificateValidation struct{}

// ChainFacts is what X509CertificateValidation needs about the token under
// validation.
type ChainFacts struct {
	Context              domain.Context
	SigningCertificateID string
	Chain                []string
}

type xcvRun struct {
	pc    *ProcessContext
	facts ChainFacts
	node  *domain.TraceNode
	cert  *domain.Certificate
}

func (X509CertificateValidation) Run(pc *ProcessContext, facts ChainFacts, parent *domain.TraceNode) *domain.Conclusion {
	node := parent.AddChild(SubprocessX509Certificate)
	conclusion := domain.NewConclusion(node.Location())
	r := &xcvRun{pc: pc, facts: facts, node: node}
	r.cert, _ = pc.Diagnostic.Certificate(facts.SigningCertificateID)

	checks := []checkFunc{
		r.checkChain,
		r.checkExpiration,
		r.checkKeyUsage,
		r.checkCertificateSignature,
		r.checkRevocationAvailable,
		r.checkRevocationTrusted,
		r.checkRevocationFreshness,
		r.checkRevocationCryptographic,
		r.checkNotRevoked,
		r.checkNotOnHold,
		r.checkTSLStatus,
		r.checkCertificateCryptographic,
		r.checkCACertificates,
	}
	if facts.Context == domain.ContextMainSignature || facts.Context == domain.ContextCounterSignature {
		checks = append(checks, r.checkQualified, r.checkSSCD, r.checkLegalPerson)
	}
	return runChecks(conclusion, checks...)
}

func (r *xcvRun) signing(cp domain.CheckPoint) *Constraint {
	return r.pc.constraint(r.facts.Context, domain.SubContextSigningCertificate, cp)
}

func (r *xcvRun) revocation() *domain.Revocation {
	if r.cert == nil {
		return nil
	}
	return r.cert.Revocation
}

func (r *xcvRun) checkChain(conclusion *domain.Conclusion) bool {
	c := r.pc.constraint(r.facts.Context, domain.SubContextNone, domain.CheckProspectiveCertificateChain)
	if r.cert == nil {
		c = mandatoryConstraint()
	}
	return checkValue(r.node, conclusion, c, domain.MsgXCVChain, domain.MsgXCVChainAns,
		domain.IndicationIndeterminate, domain.SubNoCertificateChainFound, r.anchored())
}

// anchored reports whether the chain contains a trusted certificate.
func (r *xcvRun) anchored() bool {
	if r.cert == nil {
		return false
	}
	chain := r.facts.Chain
	if len(chain) == 0 {
		chain = []string{r.cert.ID}
	}
	for _, id := range chain {
		if cert, ok := r.pc.Diagnostic.Certificate(id); ok && cert.Trusted {
			return true
		}
	}
	return false
}

func (r *xcvRun) checkExpiration(conclusion *domain.Conclusion) bool {
	c := r.signing(domain.CheckCertificateExpiration)
	if c == nil {
		return true
	}
	c.Create(r.node, domain.MsgXCVExpiration)
	c.SetIndications(domain.IndicationIndeterminate, domain.SubOutOfBoundsNoPOE, domain.MsgXCVExpirationAns)
	c.SetConclusionReceiver(conclusion)
	var expiredInfo *time.Time
	if ts := r.cert.TrustedService; ts != nil {
		expiredInfo = ts.ExpiredCertsRevocationInfo
	}
	c.SetCertificateValidity(r.cert.NotBefore, r.cert.NotAfter, expiredInfo)
	return c.Check()
}

func (r *xcvRun) checkKeyUsage(conclusion *domain.Conclusion) bool {
	c := r.signing(domain.CheckKeyUsage)
	if c == nil {
		return true
	}
	c.Create(r.node, domain.MsgXCVKeyUsage)
	c.SetIndications(domain.IndicationIndeterminate, domain.SubChainConstraintsFailure, domain.MsgXCVKeyUsageAns)
	c.SetConclusionReceiver(conclusion)
	c.SetValues(r.cert.KeyUsages)
	return c.CheckInList()
}

func (r *xcvRun) checkCertificateSignature(conclusion *domain.Conclusion) bool {
	return checkValue(r.node, conclusion, r.signing(domain.CheckCertificateSignature),
		domain.MsgXCVCertificateSignature, domain.MsgXCVCertificateSignatureAns,
		domain.IndicationIndeterminate, domain.SubCertificateChainGeneralFailure, r.cert.BasicSignature.SignatureIntact)
}

func (r *xcvRun) checkRevocationAvailable(conclusion *domain.Conclusion) bool {
	return checkValue(r.node, conclusion, r.signing(domain.CheckRevocationDataAvailable),
		domain.MsgXCVRevocationPresent, domain.MsgXCVRevocationPresentAns,
		domain.IndicationIndeterminate, domain.SubTryLater, r.revocation() != nil)
}

func (r *xcvRun) checkRevocationTrusted(conclusion *domain.Conclusion) bool {
	rev := r.revocation()
	return checkValue(r.node, conclusion, r.signing(domain.CheckRevocationDataIsTrusted),
		domain.MsgXCVRevocationTrusted, domain.MsgXCVRevocationTrustedAns,
		domain.IndicationIndeterminate, domain.SubTryLater, rev != nil && rev.Trusted)
}

// checkRevocationFreshness accepts revocation data issued within the policy's
// maximum freshness, or still before its next update when none is set.
func (r *xcvRun) checkRevocationFreshness(conclusion *domain.Conclusion) bool {
	c := r.signing(domain.CheckRevocationDataFreshness)
	if c == nil {
		return true
	}
	now := r.pc.CurrentTime
	rev := r.revocation()
	fresh := false
	if rev != nil {
		switch maxAge := r.pc.Policy.MaxRevocationFreshness; {
		case maxAge > 0 && rev.IssuingTime != nil:
			fresh = now.Sub(*rev.IssuingTime) <= maxAge
		case rev.NextUpdate != nil:
			fresh = now.Before(*rev.NextUpdate)
		default:
			fresh = rev.IssuingTime != nil
		}
		if rev.IssuingTime != nil {
			c.SetAttribute(domain.AttrValidationTime, formatTime(*rev.IssuingTime))
		}
	}
	return checkValue(r.node, conclusion, c, domain.MsgXCVRevocationFresh, domain.MsgXCVRevocationFreshAns,
		domain.IndicationIndeterminate, domain.SubTryLater, fresh)
}

func (r *xcvRun) checkRevocationCryptographic(conclusion *domain.Conclusion) bool {
	rev := r.revocation()
	if rev == nil {
		return true
	}
	c := r.pc.constraint(domain.ContextRevocation, domain.SubContextNone, domain.CheckCryptographic)
	if c == nil {
		return true
	}
	c.Create(r.node, domain.MsgXCVRevocationCrypto)
	c.SetIndications(domain.IndicationIndeterminate, domain.SubCryptoConstraintsFailureNoPOE, domain.MsgXCVRevocationCryptoAns)
	c.SetConclusionReceiver(conclusion)
	c.SetCryptographic(rev.BasicSignature, r.pc.Policy.AlgoExpirationDates)
	return c.Check()
}

func (r *xcvRun) checkNotRevoked(conclusion *domain.Conclusion) bool {
	c := r.signing(domain.CheckCertificateRevoked)
	if c == nil {
		return true
	}
	rev := r.revocation()
	revoked := rev != nil && rev.Status == domain.RevocationRevoked && !rev.OnHold()
	if revoked && rev.RevocationDate != nil {
		c.SetAttribute(domain.AttrValidationTime, formatTime(*rev.RevocationDate))
	}
	return checkValue(r.node, conclusion, c, domain.MsgXCVNotRevoked, domain.MsgXCVNotRevokedAns,
		domain.IndicationIndeterminate, domain.SubRevokedNoPOE, !revoked)
}

func (r *xcvRun) checkNotOnHold(conclusion *domain.Conclusion) bool {
	return checkValue(r.node, conclusion, r.signing(domain.CheckCertificateOnHold),
		domain.MsgXCVNotOnHold, domain.MsgXCVNotOnHoldAns,
		domain.IndicationIndeterminate, domain.SubTryLater, !r.revocation().OnHold())
}

func (r *xcvRun) checkTSLStatus(conclusion *domain.Conclusion) bool {
	c := r.signing(domain.CheckTSLStatus)
	if c == nil {
		return true
	}
	c.Create(r.node, domain.MsgXCVTSLStatus)
	c.SetIndications(domain.IndicationIndeterminate, domain.SubChainConstraintsFailure, domain.MsgXCVTSLStatusAns)
	c.SetConclusionReceiver(conclusion)
	status := ""
	if r.cert.TrustedService != nil {
		status = r.cert.TrustedService.Status
	}
	c.SetValue(status)
	if len(c.spec.Identifiers) > 0 {
		return c.CheckInList()
	}
	return c.Check()
}

func (r *xcvRun) checkCertificateCryptographic(conclusion *domain.Conclusion) bool {
	c := r.signing(domain.CheckCryptographic)
	if c == nil {
		return true
	}
	c.Create(r.node, domain.MsgXCVCertificateCrypto)
	c.SetIndications(domain.IndicationIndeterminate, domain.SubCryptoConstraintsFailureNoPOE, domain.MsgXCVCertificateCryptoAns)
	c.SetConclusionReceiver(conclusion)
	c.SetCryptographic(r.cert.BasicSignature, r.pc.Policy.AlgoExpirationDates)
	return c.Check()
}

// checkCACertificates walks the chain above the signing certificate. Trust
// anchors are not checked for revocation.
func (r *xcvRun) checkCACertificates(conclusion *domain.Conclusion) bool {
	for _, id := range r.facts.Chain {
		if id == r.cert.ID {
			continue
		}
		ca, ok := r.pc.Diagnostic.Certificate(id)
		if !ok {
			continue
		}
		caNode := r.node.AddChild("CACertificate").SetAttribute(domain.AttrCertificateID, ca.ID)
		constraint := func(cp domain.CheckPoint) *Constraint {
			return r.pc.constraint(r.facts.Context, domain.SubContextCACertificate, cp)
		}
		if !checkValue(caNode, conclusion, constraint(domain.CheckCertificateSignature),
			domain.MsgXCVCertificateSignature, domain.MsgXCVCertificateSignatureAns,
			domain.IndicationIndeterminate, domain.SubCertificateChainGeneralFailure, ca.BasicSignature.SignatureIntact) {
			return false
		}
		if !ca.Trusted {
			rev := ca.Revocation
			revoked := rev != nil && rev.Status == domain.RevocationRevoked
			if !checkValue(caNode, conclusion, constraint(domain.CheckIntermediateCertificateRevoked),
				domain.MsgXCVCANotRevoked, domain.MsgXCVCANotRevokedAns,
				domain.IndicationIndeterminate, domain.SubRevokedCANoPOE, !revoked) {
				return false
			}
		}
		if c := constraint(domain.CheckCryptographic); c != nil {
			c.Create(caNode, domain.MsgXCVCACrypto)
			c.SetIndications(domain.IndicationIndeterminate, domain.SubCryptoConstraintsFailureNoPOE, domain.MsgXCVCACryptoAns)
			c.SetConclusionReceiver(conclusion)
			c.SetCryptographic(ca.BasicSignature, r.pc.Policy.AlgoExpirationDates)
			if !c.Check() {
				return false
			}
		}
	}
	return true
}

func (r *xcvRun) checkQualified(conclusion *domain.Conclusion) bool {
	return checkValue(r.node, conclusion, r.signing(domain.CheckCertificateQualification),
		domain.MsgXCVQualified, domain.MsgXCVQualifiedAns,
		domain.IndicationIndeterminate, domain.SubChainConstraintsFailure, qualificationOf(r.cert).qc)
}

func (r *xcvRun) checkSSCD(conclusion *domain.Conclusion) bool {
	return checkValue(r.node, conclusion, r.signing(domain.CheckSupportedBySSCD),
		domain.MsgXCVSSCD, domain.MsgXCVSSCDAns,
		domain.IndicationIndeterminate, domain.SubChainConstraintsFailure, qualificationOf(r.cert).sscd)
}

func (r *xcvRun) checkLegalPerson(conclusion *domain.Conclusion) bool {
	return checkValue(r.node, conclusion, r.signing(domain.CheckIssuedToLegalPerson),
		domain.MsgXCVLegalPerson, domain.MsgXCVLegalPersonAns,
		domain.IndicationIndeterminate, domain.SubChainConstraintsFailure, qualificationOf(r.cert).legal)
}

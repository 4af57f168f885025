package usecase

import "sigval/internal/domain"

// IdentificationOfSigningCertificate resolves the signing certificate and
// checks the signed reference to it.
type IdentificationOfSigningCertificate struct{}

func (IdentificationOfSigningCertificate) Run(pc *ProcessContext, ctx domain.Context, ref domain.SigningCertificateRef, parent *domain.TraceNode) *domain.Conclusion {
	node := parent.AddChild(SubprocessIdentification)
	conclusion := domain.NewConclusion(node.Location())
	ind, sub := domain.IndicationIndeterminate, domain.SubNoSigningCertificateFound
	attr := func(cp domain.CheckPoint) *Constraint {
		return pc.constraint(ctx, domain.SubContextSigningCertificate, cp)
	}
	return runChecks(conclusion,
		func(c *domain.Conclusion) bool {
			_, found := pc.Diagnostic.Certificate(ref.ID)
			m := mandatoryConstraint()
			if ref.ID != "" {
				m.SetAttribute(domain.AttrCertificateID, ref.ID)
			}
			return checkValue(node, c, m, domain.MsgICSCandidate, domain.MsgICSCandidateAns, ind, sub, found)
		},
		func(c *domain.Conclusion) bool {
			return checkValue(node, c, attr(domain.CheckSigningCertificateAttributePresent),
				domain.MsgICSAttributePresent, domain.MsgICSAttributePresentAns, ind, sub, ref.AttributePresent)
		},
		func(c *domain.Conclusion) bool {
			return checkValue(node, c, attr(domain.CheckDigestValuePresent),
				domain.MsgICSDigestPresent, domain.MsgICSDigestPresentAns, ind, sub, ref.DigestValuePresent)
		},
		func(c *domain.Conclusion) bool {
			return checkValue(node, c, attr(domain.CheckDigestValueMatch),
				domain.MsgICSDigestMatch, domain.MsgICSDigestMatchAns, ind, sub, ref.DigestValueMatch)
		},
		func(c *domain.Conclusion) bool {
			return checkValue(node, c, attr(domain.CheckIssuerSerialMatch),
				domain.MsgICSIssuerSerial, domain.MsgICSIssuerSerialAns, ind, sub, ref.IssuerSerialMatch)
		},
	)
}

// mandatoryConstraint is a FAIL-level check that no policy can switch off.
func mandatoryConstraint() *Constraint {
	return NewConstraint("", domain.ConstraintSpec{Level: domain.LevelFail, Expected: trueValue})
}

package usecase

import "sigval/internal/domain"

// TimestampValidation validates one timestamp token of a signature.
type TimestampValidation struct {
	XCV X509CertificateValidation
}

func (tv TimestampValidation) Run(pc *ProcessContext, ts *domain.Timestamp, parent *domain.TraceNode) *domain.Conclusion {
	node := parent.AddChild(SubprocessTimestampValidation).
		SetAttribute(domain.AttrTimestampID, ts.ID).
		SetAttribute("Type", string(ts.Type))
	conclusion := domain.NewConclusion(node.Location())
	constraint := func(cp domain.CheckPoint) *Constraint {
		return pc.constraint(domain.ContextTimestamp, domain.SubContextNone, cp)
	}
	return runChecks(conclusion,
		func(c *domain.Conclusion) bool {
			_, found := pc.Diagnostic.Certificate(ts.SigningCertificate.ID)
			return checkValue(node, c, mandatoryConstraint(), domain.MsgTSVCandidate, domain.MsgTSVCandidateAns,
				domain.IndicationIndeterminate, domain.SubNoSigningCertificateFound, found)
		},
		func(c *domain.Conclusion) bool {
			return checkValue(node, c, constraint(domain.CheckMessageImprintDataFound),
				domain.MsgTSVImprintFound, domain.MsgTSVImprintFoundAns,
				domain.IndicationIndeterminate, domain.SubSignedDataNotFound, ts.MessageImprintDataFound)
		},
		func(c *domain.Conclusion) bool {
			return checkValue(node, c, constraint(domain.CheckMessageImprintDataIntact),
				domain.MsgTSVImprintIntact, domain.MsgTSVImprintIntactAns,
				domain.IndicationInvalid, domain.SubHashFailure, ts.MessageImprintDataIntact)
		},
		func(c *domain.Conclusion) bool {
			xcv := tv.XCV.Run(pc, ChainFacts{
				Context:              domain.ContextTimestamp,
				SigningCertificateID: ts.SigningCertificate.ID,
				Chain:                ts.CertificateChain,
			}, node)
			c.Merge(xcv)
			if !xcv.IsValid() {
				c.SetIndication(xcv.Indication, xcv.SubIndication)
				return false
			}
			return true
		},
		func(c *domain.Conclusion) bool {
			cc := constraint(domain.CheckCryptographic)
			if cc == nil {
				return true
			}
			cc.Create(node, domain.MsgTSVCryptographic)
			cc.SetIndications(domain.IndicationIndeterminate, domain.SubCryptoConstraintsFailureNoPOE, domain.MsgTSVCryptographicAns)
			cc.SetConclusionReceiver(c)
			cc.SetCryptographic(ts.BasicSignature, pc.Policy.AlgoExpirationDates)
			return cc.Check()
		},
	)
}

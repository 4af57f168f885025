package usecase

import "sigval/internal/domain"

// CryptographicVerification checks the signed data references and the
// signature value as reported by the fact provider.
type CryptographicVerification struct{}

func (CryptographicVerification) Run(sc *SignatureContext, parent *domain.TraceNode) *domain.Conclusion {
	node := parent.AddChild(SubprocessCryptographic)
	conclusion := domain.NewConclusion(node.Location())
	basic := sc.Signature.BasicSignature
	constraint := func(cp domain.CheckPoint) *Constraint {
		return sc.Process.constraint(sc.Context, domain.SubContextNone, cp)
	}
	return runChecks(conclusion,
		func(c *domain.Conclusion) bool {
			return checkValue(node, c, constraint(domain.CheckReferenceDataExistence),
				domain.MsgCVReferenceFound, domain.MsgCVReferenceFoundAns,
				domain.IndicationIndeterminate, domain.SubSignedDataNotFound, basic.ReferenceDataFound)
		},
		func(c *domain.Conclusion) bool {
			return checkValue(node, c, constraint(domain.CheckReferenceDataIntact),
				domain.MsgCVReferenceIntact, domain.MsgCVReferenceIntactAns,
				domain.IndicationInvalid, domain.SubHashFailure, basic.ReferenceDataIntact)
		},
		func(c *domain.Conclusion) bool {
			return checkValue(node, c, constraint(domain.CheckSignatureIntact),
				domain.MsgCVSignatureIntact, domain.MsgCVSignatureIntactAns,
				domain.IndicationInvalid, domain.SubSigCryptoFailure, basic.SignatureIntact)
		},
	)
}

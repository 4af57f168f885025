package usecase

import (
	"go.uber.org/zap"

	"sigval/internal/domain"
)

// BasicValidation chains identification, cryptographic verification,
// certificate validation and acceptance validation for one signature.
type BasicValidation struct {
	ISC IdentificationOfSigningCertificate
	CV  CryptographicVerification
	XCV X509CertificateValidation
	SAV SignatureAcceptanceValidation
}

func (bv BasicValidation) Run(sc *SignatureContext, parent *domain.TraceNode) (*domain.Conclusion, error) {
	if err := sc.validate(); err != nil {
		return nil, err
	}
	node := parent.AddChild(SubprocessBasicValidation)
	conclusion := domain.NewConclusion(node.Location())
	sig := sc.Signature
	log := sc.Process.Logger.With(zap.String("signature_id", sig.ID))

	finish := func(name string, child *domain.Conclusion) {
		sc.Outcome.Conclusions[name] = child
		conclusion.Merge(child)
		log.Debug("subprocess finished",
			zap.String("subprocess", name),
			zap.String("indication", string(child.Indication)),
			zap.String("sub_indication", string(child.SubIndication)))
	}
	defer func() { sc.Outcome.Conclusions[SubprocessBasicValidation] = conclusion }()

	isc := bv.ISC.Run(sc.Process, sc.Context, sig.SigningCertificate, node)
	finish(SubprocessIdentification, isc)
	if !isc.IsValid() {
		conclusion.SetIndication(isc.Indication, isc.SubIndication)
		return conclusion, nil
	}

	cv := bv.CV.Run(sc, node)
	finish(SubprocessCryptographic, cv)
	if !cv.IsValid() {
		conclusion.SetIndication(cv.Indication, cv.SubIndication)
		return conclusion, nil
	}

	xcv := bv.XCV.Run(sc.Process, ChainFacts{
		Context:              sc.Context,
		SigningCertificateID: sig.SigningCertificate.ID,
		Chain:                sig.CertificateChain,
	}, node)
	finish(SubprocessX509Certificate, xcv)
	var held *domain.Conclusion
	if !xcv.IsValid() {
		if xcv.Indication != domain.IndicationIndeterminate || !xcv.SubIndication.POERecoverable() {
			conclusion.SetIndication(xcv.Indication, xcv.SubIndication)
			return conclusion, nil
		}
		held = xcv
	}

	sav, err := bv.SAV.Run(sc, node)
	if err != nil {
		return nil, err
	}
	finish(SubprocessSignatureAccept, sav)
	if !sav.IsValid() {
		conclusion.SetIndication(sav.Indication, sav.SubIndication)
		return conclusion, nil
	}
	if held != nil {
		conclusion.SetIndication(held.Indication, held.SubIndication)
		return conclusion, nil
	}
	conclusion.SetIndication(domain.IndicationValid, "")
	return conclusion, nil
}

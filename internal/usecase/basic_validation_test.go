package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sigval/internal/domain"
)

// runSignature validates the first signature the way the engine does and
// returns its outcome.
func runSignature(t *testing.T, diag *domain.DiagnosticData, policy *domain.ValidationPolicy) *SignatureOutcome {
	t.Helper()
	pc := NewProcessContext(diag, policy, validationTime, nil)
	e := NewEngine(nil, false)
	require.NoError(t, e.validateSignature(pc, &diag.Signatures[0], domain.NewTrace("Signature")))
	outcome, ok := pc.Outcome(diag.Signatures[0].ID)
	require.True(t, ok)
	return outcome
}

func requireConclusion(t *testing.T, c *domain.Conclusion, ind domain.Indication, sub domain.SubIndication) {
	t.Helper()
	require.NotNil(t, c)
	require.Equal(t, ind, c.Indication)
	require.Equal(t, sub, c.SubIndication)
}

func TestBasicValidation_Valid(t *testing.T) {
	outcome := runSignature(t, document(validSignature("S-1")), strictPolicy())

	for _, name := range []string{SubprocessIdentification, SubprocessCryptographic, SubprocessX509Certificate, SubprocessSignatureAccept} {
		require.True(t, outcome.Conclusion(name).IsValid(), name)
	}
	requireConclusion(t, outcome.Conclusion(SubprocessBasicValidation), domain.IndicationValid, "")
}

func TestBasicValidation_NoSigningCertificate(t *testing.T) {
	sig := validSignature("S-1")
	sig.SigningCertificate.ID = "C-UNKNOWN"
	outcome := runSignature(t, document(sig), domain.NewValidationPolicy("empty"))

	requireConclusion(t, outcome.Conclusion(SubprocessBasicValidation), domain.IndicationIndeterminate, domain.SubNoSigningCertificateFound)
	require.Nil(t, outcome.Conclusion(SubprocessCryptographic))
}

func TestBasicValidation_SigningCertificateDigestMismatch(t *testing.T) {
	sig := validSignature("S-1")
	sig.SigningCertificate.DigestValueMatch = false
	outcome := runSignature(t, document(sig), strictPolicy())

	bv := outcome.Conclusion(SubprocessBasicValidation)
	requireConclusion(t, bv, domain.IndicationIndeterminate, domain.SubNoSigningCertificateFound)
	require.Equal(t, domain.MsgICSDigestMatchAns, bv.Errors[0].ID)
}

func TestBasicValidation_CryptographicVerification(t *testing.T) {
	sig := validSignature("S-1")
	sig.BasicSignature.SignatureIntact = false
	outcome := runSignature(t, document(sig), strictPolicy())
	requireConclusion(t, outcome.Conclusion(SubprocessBasicValidation), domain.IndicationInvalid, domain.SubSigCryptoFailure)

	sig = validSignature("S-1")
	sig.BasicSignature.ReferenceDataIntact = false
	outcome = runSignature(t, document(sig), strictPolicy())
	requireConclusion(t, outcome.Conclusion(SubprocessBasicValidation), domain.IndicationInvalid, domain.SubHashFailure)

	sig = validSignature("S-1")
	sig.BasicSignature.ReferenceDataFound = false
	outcome = runSignature(t, document(sig), strictPolicy())
	requireConclusion(t, outcome.Conclusion(SubprocessBasicValidation), domain.IndicationIndeterminate, domain.SubSignedDataNotFound)
}

func TestBasicValidation_UntrustedChain(t *testing.T) {
	diag := document(validSignature("S-1"))
	diag.Certificates[1].Trusted = false
	outcome := runSignature(t, diag, strictPolicy())

	requireConclusion(t, outcome.Conclusion(SubprocessBasicValidation), domain.IndicationIndeterminate, domain.SubNoCertificateChainFound)
}

func TestBasicValidation_ExpiredCertificateIsHeldWhileSAVRuns(t *testing.T) {
	diag := document(validSignature("S-1"))
	diag.Certificates[0].NotAfter = date(2025, 1, 1)
	outcome := runSignature(t, diag, strictPolicy())

	requireConclusion(t, outcome.Conclusion(SubprocessX509Certificate), domain.IndicationIndeterminate, domain.SubOutOfBoundsNoPOE)
	require.True(t, outcome.Conclusion(SubprocessSignatureAccept).IsValid())
	requireConclusion(t, outcome.Conclusion(SubprocessBasicValidation), domain.IndicationIndeterminate, domain.SubOutOfBoundsNoPOE)
}

func TestBasicValidation_SAVFailureWinsOverHeldFailure(t *testing.T) {
	sig := validSignature("S-1")
	sig.SignatureFormat = "CAdES-BASELINE-B"
	diag := document(sig)
	diag.Certificates[0].NotAfter = date(2025, 1, 1)
	outcome := runSignature(t, diag, strictPolicy())

	requireConclusion(t, outcome.Conclusion(SubprocessBasicValidation), domain.IndicationInvalid, domain.SubSigConstraintsFailure)
}

func TestBasicValidation_ExpiredCertsRevocationInfoOverride(t *testing.T) {
	diag := document(validSignature("S-1"))
	diag.Certificates[0].NotAfter = date(2025, 1, 1)
	diag.Certificates[0].TrustedService.ExpiredCertsRevocationInfo = ptr(date(2019, 1, 1))
	outcome := runSignature(t, diag, strictPolicy())

	require.True(t, outcome.Conclusion(SubprocessBasicValidation).IsValid())
}

func TestBasicValidation_RevocationStatus(t *testing.T) {
	diag := document(validSignature("S-1"))
	diag.Certificates[0].Revocation.Status = domain.RevocationRevoked
	diag.Certificates[0].Revocation.RevocationDate = ptr(date(2025, 3, 1))
	outcome := runSignature(t, diag, strictPolicy())
	requireConclusion(t, outcome.Conclusion(SubprocessBasicValidation), domain.IndicationIndeterminate, domain.SubRevokedNoPOE)

	diag = document(validSignature("S-1"))
	diag.Certificates[0].Revocation.Status = domain.RevocationRevoked
	diag.Certificates[0].Revocation.Reason = domain.RevocationReasonCertificateHold
	outcome = runSignature(t, diag, strictPolicy())
	requireConclusion(t, outcome.Conclusion(SubprocessBasicValidation), domain.IndicationIndeterminate, domain.SubTryLater)
	require.Nil(t, outcome.Conclusion(SubprocessSignatureAccept), "not recoverable, acceptance is not run")
}

func TestBasicValidation_RevokedIntermediate(t *testing.T) {
	sig := validSignature("S-1")
	sig.CertificateChain = []string{"C-SIGNER", "C-INT", "C-CA"}
	diag := document(sig)
	diag.Certificates = append(diag.Certificates, domain.Certificate{
		ID:             "C-INT",
		NotBefore:      date(2018, 1, 1),
		NotAfter:       date(2032, 1, 1),
		BasicSignature: rsa2048(),
		Revocation:     &domain.Revocation{Status: domain.RevocationRevoked, RevocationDate: ptr(date(2024, 1, 1))},
	})
	policy := strictPolicy()
	policy.Set(domain.ContextMainSignature, domain.SubContextCACertificate, domain.CheckIntermediateCertificateRevoked, fail())

	outcome := runSignature(t, diag, policy)
	requireConclusion(t, outcome.Conclusion(SubprocessBasicValidation), domain.IndicationIndeterminate, domain.SubRevokedCANoPOE)
}

func TestBasicValidation_RevocationFreshness(t *testing.T) {
	policy := strictPolicy()
	policy.Set(domain.ContextMainSignature, domain.SubContextSigningCertificate, domain.CheckRevocationDataFreshness, fail())
	policy.MaxRevocationFreshness = 24 * time.Hour

	outcome := runSignature(t, document(validSignature("S-1")), policy)
	require.True(t, outcome.Conclusion(SubprocessBasicValidation).IsValid())

	diag := document(validSignature("S-1"))
	diag.Certificates[0].Revocation.IssuingTime = ptr(date(2025, 5, 1))
	outcome = runSignature(t, diag, policy)
	requireConclusion(t, outcome.Conclusion(SubprocessBasicValidation), domain.IndicationIndeterminate, domain.SubTryLater)
}

func TestBasicValidation_CounterSignatureContext(t *testing.T) {
	counter := validSignature("S-2")
	counter.Type = domain.SignatureTypeCounterSignature
	counter.ParentID = "S-1"
	counter.SignatureFormat = "unknown"
	diag := document(counter, validSignature("S-1"))

	policy := strictPolicy()
	outcome := runSignature(t, diag, policy)
	require.False(t, outcome.Conclusion(SubprocessBasicValidation).IsValid(), "main signature constraints apply")

	policy.Set(domain.ContextCounterSignature, domain.SubContextNone, domain.CheckSignatureIntact, fail())
	outcome = runSignature(t, diag, policy)
	require.True(t, outcome.Conclusion(SubprocessBasicValidation).IsValid(), "counter-signature section replaces the main one")
}

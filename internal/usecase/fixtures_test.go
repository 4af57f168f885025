package usecase

import (
	"time"

	"sigval/internal/domain"
)

var validationTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func fail() domain.ConstraintSpec { return domain.ConstraintSpec{Level: domain.LevelFail} }

func rsa2048() domain.BasicSignature {
	return domain.BasicSignature{
		EncryptionAlgo:      "RSA",
		DigestAlgo:          "SHA256",
		KeyLength:           2048,
		ReferenceDataFound:  true,
		ReferenceDataIntact: true,
		SignatureIntact:     true,
	}
}

func signerCertificate() domain.Certificate {
	issued := validationTime.Add(-time.Hour)
	return domain.Certificate{
		ID:                       "C-SIGNER",
		SubjectDistinguishedName: "CN=Alice Example,O=Example Corp,C=BE",
		IssuerDistinguishedName:  "CN=Example CA,C=BE",
		NotBefore:                date(2020, 1, 1),
		NotAfter:                 date(2030, 1, 1),
		KeyUsages:                []string{"nonRepudiation"},
		BasicSignature:           rsa2048(),
		QCStatement:              domain.QCStatement{QCC: true},
		TrustedService: &domain.TrustedService{
			ServiceType: serviceTypeCAQC,
			Status:      "granted",
			Qualifiers:  []string{"http://uri.etsi.org/TrstSvc/TrustedList/SvcInfoExt/QCWithSSCD"},
		},
		Revocation: &domain.Revocation{
			Status:         domain.RevocationGood,
			IssuingTime:    &issued,
			Trusted:        true,
			BasicSignature: rsa2048(),
		},
	}
}

func caCertificate() domain.Certificate {
	return domain.Certificate{
		ID:                       "C-CA",
		SubjectDistinguishedName: "CN=Example CA,C=BE",
		NotBefore:                date(2015, 1, 1),
		NotAfter:                 date(2035, 1, 1),
		SelfSigned:               true,
		Trusted:                  true,
		BasicSignature:           rsa2048(),
	}
}

func tsaCertificate() domain.Certificate {
	return domain.Certificate{
		ID:                       "C-TSA",
		SubjectDistinguishedName: "CN=Example TSA,C=BE",
		NotBefore:                date(2019, 1, 1),
		NotAfter:                 date(2031, 1, 1),
		BasicSignature:           rsa2048(),
	}
}

func validSignature(id string) domain.Signature {
	signed := date(2025, 5, 1)
	return domain.Signature{
		ID:                   id,
		SigningTime:          &signed,
		SignatureFormat:      "XAdES-BASELINE-B",
		StructuralValidation: domain.StructuralValidation{Valid: true},
		BasicSignature:       rsa2048(),
		SigningCertificate: domain.SigningCertificateRef{
			ID:                 "C-SIGNER",
			AttributePresent:   true,
			DigestValuePresent: true,
			DigestValueMatch:   true,
			IssuerSerialMatch:  true,
		},
		CertificateChain: []string{"C-SIGNER", "C-CA"},
		SignatureScopes:  []domain.SignatureScope{{Name: "doc.xml", Scope: "FullSignatureScope"}},
	}
}

func signatureTimestamp(id string, produced time.Time) domain.Timestamp {
	return domain.Timestamp{
		ID:                       id,
		Type:                     domain.TimestampSignature,
		ProductionTime:           &produced,
		SigningCertificate:       domain.SigningCertificateRef{ID: "C-TSA"},
		CertificateChain:         []string{"C-TSA", "C-CA"},
		MessageImprintDataFound:  true,
		MessageImprintDataIntact: true,
		BasicSignature:           rsa2048(),
	}
}

func document(sigs ...domain.Signature) *domain.DiagnosticData {
	return &domain.DiagnosticData{
		DocumentName: "doc.xml",
		Signatures:   sigs,
		Certificates: []domain.Certificate{signerCertificate(), caCertificate(), tsaCertificate()},
	}
}

// strictPolicy configures the main checks of every subprocess at FAIL.
func strictPolicy() *domain.ValidationPolicy {
	p := domain.NewValidationPolicy("strict")
	p.Description = "test policy"
	main := domain.ContextMainSignature
	none := domain.SubContextNone
	sc := domain.SubContextSigningCertificate

	p.Set(domain.ContextGeneral, none, domain.CheckSignatureCount, domain.ConstraintSpec{Level: domain.LevelFail, Min: domain.IntPtr(1)})
	p.Set(main, none, domain.CheckAcceptableFormats, domain.ConstraintSpec{Level: domain.LevelFail, Identifiers: []string{"XAdES-BASELINE-B", "PAdES-BASELINE-B"}})
	p.Set(main, none, domain.CheckStructuralValidation, fail())
	p.Set(main, none, domain.CheckSigningTime, fail())
	p.Set(main, none, domain.CheckReferenceDataExistence, fail())
	p.Set(main, none, domain.CheckReferenceDataIntact, fail())
	p.Set(main, none, domain.CheckSignatureIntact, fail())
	p.Set(main, none, domain.CheckProspectiveCertificateChain, fail())
	p.Set(main, none, domain.CheckCryptographic, domain.ConstraintSpec{Level: domain.LevelFail, Crypto: &domain.CryptoSpec{
		EncryptionAlgos: []string{"RSA", "ECDSA"},
		DigestAlgos:     []string{"SHA256", "SHA512"},
		MinKeySizes:     map[string]int{"RSA": 2048},
	}})

	p.Set(main, sc, domain.CheckSigningCertificateAttributePresent, fail())
	p.Set(main, sc, domain.CheckDigestValueMatch, fail())
	p.Set(main, sc, domain.CheckCertificateExpiration, fail())
	p.Set(main, sc, domain.CheckCertificateSignature, fail())
	p.Set(main, sc, domain.CheckRevocationDataAvailable, fail())
	p.Set(main, sc, domain.CheckCertificateRevoked, fail())
	p.Set(main, sc, domain.CheckCertificateOnHold, fail())
	p.Set(main, domain.SubContextCACertificate, domain.CheckCertificateSignature, fail())

	p.Set(domain.ContextTimestamp, none, domain.CheckMessageImprintDataFound, fail())
	p.Set(domain.ContextTimestamp, none, domain.CheckMessageImprintDataIntact, fail())
	p.Set(domain.ContextTimestamp, none, domain.CheckProspectiveCertificateChain, fail())

	p.Set(domain.ContextLongTerm, none, domain.CheckTimestampCoherence, fail())
	p.Set(domain.ContextLongTerm, none, domain.CheckBestSignatureTimeBeforeIssuance, fail())
	p.Set(domain.ContextLongTerm, none, domain.CheckRevocationTime, fail())
	p.Set(domain.ContextLongTerm, none, domain.CheckSigningCertificateValidityAtBestSignatureTime, fail())
	p.Set(domain.ContextLongTerm, none, domain.CheckAlgorithmReliableAtBestSignatureTime, fail())
	return p
}

func signatureContext(diag *domain.DiagnosticData, policy *domain.ValidationPolicy, idx int) *SignatureContext {
	pc := NewProcessContext(diag, policy, validationTime, nil)
	return pc.ForSignature(&diag.Signatures[idx])
}

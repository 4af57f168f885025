package usecase

import (
	"path"
	"strings"

	"sigval/internal/domain"
)

const serviceTypeCAQC = "http://uri.etsi.org/TrstSvc/Svctype/CA/QC"

// Trust service qualifiers, compared on the last URI segment.
const (
	qualifierNoSSCD       = "QCNoSSCD"
	qualifierWithSSCD     = "QCWithSSCD"
	qualifierLegalPerson  = "QCForLegalPerson"
	qualifierSSCDAsInCert = "QCSSCDStatusAsInCert"
)

type qualificationFacts struct {
	caqc  bool
	qc    bool
	sscd  bool
	legal bool
}

func qualificationOf(cert *domain.Certificate) qualificationFacts {
	var f qualificationFacts
	if cert == nil {
		return f
	}
	st := cert.QCStatement
	f.qc = st.QCC || st.QCP || st.QCPPlus
	certSSCD := st.QCSSCD || st.QCPPlus
	f.sscd = certSSCD

	ts := cert.TrustedService
	if ts == nil {
		return f
	}
	f.caqc = ts.ServiceType == serviceTypeCAQC
	for _, q := range ts.Qualifiers {
		switch path.Base(strings.TrimSpace(q)) {
		case qualifierWithSSCD:
			f.sscd = true
		case qualifierNoSSCD:
			f.sscd = false
		case qualifierSSCDAsInCert:
			f.sscd = certSSCD
		case qualifierLegalPerson:
			f.legal = true
		}
	}
	return f
}

// qualificationTable is indexed by (CA/QC service, QC certificate, SSCD,
// legal person).
var qualificationTable = map[qualificationFacts]domain.SignatureQualification{
	{caqc: true, qc: true, sscd: true, legal: false}:  domain.QualificationQES,
	{caqc: true, qc: true, sscd: true, legal: true}:   domain.QualificationAdESQC,
	{caqc: true, qc: true, sscd: false, legal: false}: domain.QualificationAdESQC,
	{caqc: true, qc: true, sscd: false, legal: true}:  domain.QualificationAdESQC,

	{caqc: true, qc: false, sscd: true, legal: false}:  domain.QualificationAdES,
	{caqc: true, qc: false, sscd: true, legal: true}:   domain.QualificationAdES,
	{caqc: true, qc: false, sscd: false, legal: false}: domain.QualificationAdES,
	{caqc: true, qc: false, sscd: false, legal: true}:  domain.QualificationAdES,

	{caqc: false, qc: true, sscd: true, legal: false}:  domain.QualificationNotAdESQC,
	{caqc: false, qc: true, sscd: true, legal: true}:   domain.QualificationNotAdESQC,
	{caqc: false, qc: true, sscd: false, legal: false}: domain.QualificationNotAdESQC,
	{caqc: false, qc: true, sscd: false, legal: true}:  domain.QualificationNotAdESQC,

	{caqc: false, qc: false, sscd: true, legal: false}:  domain.QualificationNA,
	{caqc: false, qc: false, sscd: true, legal: true}:   domain.QualificationNA,
	{caqc: false, qc: false, sscd: false, legal: false}: domain.QualificationNA,
	{caqc: false, qc: false, sscd: false, legal: true}:  domain.QualificationNA,
}

// Qualify maps the certificate and trust service facts to a signature level.
func Qualify(cert *domain.Certificate) domain.SignatureQualification {
	if cert == nil {
		return domain.QualificationNA
	}
	return qualificationTable[qualificationOf(cert)]
}

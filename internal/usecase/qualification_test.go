package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sigval/internal/domain"
)

func TestQualify(t *testing.T) {
	const prefix = "http://uri.etsi.org/TrstSvc/TrustedList/SvcInfoExt/"
	cases := []struct {
		name        string
		serviceType string
		statement   domain.QCStatement
		qualifiers  []string
		want        domain.SignatureQualification
	}{
		{"qualified with sscd", serviceTypeCAQC, domain.QCStatement{QCC: true}, []string{prefix + "QCWithSSCD"}, domain.QualificationQES},
		{"sscd from certificate", serviceTypeCAQC, domain.QCStatement{QCC: true, QCSSCD: true}, []string{prefix + "QCSSCDStatusAsInCert"}, domain.QualificationQES},
		{"qualifier overrides certificate", serviceTypeCAQC, domain.QCStatement{QCC: true, QCSSCD: true}, []string{prefix + "QCNoSSCD"}, domain.QualificationAdESQC},
		{"legal person", serviceTypeCAQC, domain.QCStatement{QCC: true}, []string{prefix + "QCWithSSCD", prefix + "QCForLegalPerson"}, domain.QualificationAdESQC},
		{"not qualified", serviceTypeCAQC, domain.QCStatement{}, nil, domain.QualificationAdES},
		{"qc outside a qualified service", "http://uri.etsi.org/TrstSvc/Svctype/CA/PKC", domain.QCStatement{QCC: true}, nil, domain.QualificationNotAdESQC},
		{"nothing", "", domain.QCStatement{}, nil, domain.QualificationNA},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cert := &domain.Certificate{
				ID:          "C-1",
				QCStatement: tc.statement,
				TrustedService: &domain.TrustedService{
					ServiceType: tc.serviceType,
					Qualifiers:  tc.qualifiers,
				},
			}
			require.Equal(t, tc.want, Qualify(cert))
		})
	}
}

func TestQualify_NoTrustedService(t *testing.T) {
	require.Equal(t, domain.QualificationNA, Qualify(nil))
	require.Equal(t, domain.QualificationNotAdESQC, Qualify(&domain.Certificate{QCStatement: domain.QCStatement{QCC: true}}))
}

func TestQualificationTableIsComplete(t *testing.T) {
	require.Len(t, qualificationTable, 16)
}

package codec

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sigval/internal/domain"
	"sigval/internal/infra/policyfile"
	"sigval/internal/usecase"
)

var validationTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/diagnostic.json")
	require.NoError(t, err)
	return data
}

func TestDecodeDiagnosticData(t *testing.T) {
	diag, err := DecodeDiagnosticData(loadFixture(t))
	require.NoError(t, err)

	require.Equal(t, "contract.pdf", diag.DocumentName)
	require.Len(t, diag.Signatures, 2)
	sig := diag.Signatures[0]
	require.Equal(t, time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC), *sig.SigningTime)
	require.Len(t, sig.TimestampsOfType(domain.TimestampSignature), 1)
	require.Equal(t, "City: Brussels", sig.SignatureProductionPlace.Formatted())

	cert, ok := diag.Certificate("C-SIGNER")
	require.True(t, ok)
	require.Equal(t, "Jane Doe", cert.CommonName())
	require.Equal(t, domain.RevocationGood, cert.Revocation.Status)
}

func TestDecodeDiagnosticData_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":           "  ",
		"not json":        "<DiagnosticData/>",
		"no signatures":   `{"documentName": "a.pdf"}`,
		"null signatures": `{"signatures": null}`,
		"missing id":      `{"signatures": [{"signatureFormat": "XAdES"}]}`,
		"duplicate id":    `{"signatures": [{"id": "S-1"}, {"id": "S-1"}]}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeDiagnosticData([]byte(doc))
			require.ErrorIs(t, err, domain.ErrInvalidDiagnosticData)
		})
	}
}

func TestDecodeDiagnosticData_EmptySignatureList(t *testing.T) {
	diag, err := DecodeDiagnosticData([]byte(`{"signatures": []}`))
	require.NoError(t, err)
	require.Empty(t, diag.Signatures)
}

func TestReportRoundTrip(t *testing.T) {
	diag, err := DecodeDiagnosticData(loadFixture(t))
	require.NoError(t, err)
	policies, err := policyfile.NewProvider(nil)
	require.NoError(t, err)
	policy, err := policies.Policy("")
	require.NoError(t, err)

	result, err := usecase.NewEngine(nil, false).Validate(context.Background(), diag, policy, validationTime)
	require.NoError(t, err)
	report := result.Report
	require.Len(t, report.Signatures, 2)
	require.Equal(t, domain.IndicationValid, report.Signatures[0].Indication)
	require.Equal(t, domain.IndicationInvalid, report.Signatures[1].Indication)

	data, err := EncodeReport(report)
	require.NoError(t, err)
	decoded, err := DecodeReport(data)
	require.NoError(t, err)
	require.Equal(t, report, decoded)
}

func TestRecordRoundTrip(t *testing.T) {
	trace := domain.NewTrace("ValidationData").SetAttribute("Policy", "default")
	trace.AddChild("GeneralStructure")
	rec := domain.ValidationRecord{
		ID:         "0b8e5a2c-3f64-4a51-9c55-0d7c2b7f9e10",
		PolicyName: "default",
		CreatedAt:  validationTime,
		Report: &domain.SimpleReport{
			ID:             "0b8e5a2c-3f64-4a51-9c55-0d7c2b7f9e10",
			Policy:         domain.PolicyInfo{Name: "default"},
			ValidationTime: validationTime,
			Global:         domain.GlobalResult{Indication: domain.IndicationIndeterminate},
		},
		Trace: trace,
	}

	data, err := EncodeRecord(rec)
	require.NoError(t, err)
	decoded, err := DecodeRecord(data)
	require.NoError(t, err)
	require.Equal(t, rec.Report, decoded.Report)
	require.Equal(t, "GeneralStructure", decoded.Trace.Children[0].Name)
	require.Equal(t, "default", decoded.Trace.Attribute("Policy"))
}

func TestDigest(t *testing.T) {
	diag, err := DecodeDiagnosticData(loadFixture(t))
	require.NoError(t, err)

	var d Digester
	a, err := d.Digest(diag)
	require.NoError(t, err)
	require.Len(t, a, 64)
	again, err := d.Digest(diag)
	require.NoError(t, err)
	require.Equal(t, a, again)

	diag.DocumentName = "other.pdf"
	b, err := d.Digest(diag)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

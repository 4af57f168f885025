package codec

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"

	"sigval/internal/domain"
)

// DecodeDiagnosticData parses a fact tree. The signatures key is required
// and every signature needs a unique id.
func DecodeDiagnosticData(data []byte) (*domain.DiagnosticData, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.Wrap(domain.ErrInvalidDiagnosticData, "empty document")
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, errors.Wrapf(domain.ErrInvalidDiagnosticData, "decode: %v", err)
	}
	if raw, ok := keys["signatures"]; !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, errors.Wrap(domain.ErrInvalidDiagnosticData, "no signatures")
	}
	var diag domain.DiagnosticData
	if err := json.Unmarshal(data, &diag); err != nil {
		return nil, errors.Wrapf(domain.ErrInvalidDiagnosticData, "decode: %v", err)
	}
	if err := checkDiagnosticData(&diag); err != nil {
		return nil, err
	}
	return &diag, nil
}

func checkDiagnosticData(diag *domain.DiagnosticData) error {
	seen := make(map[string]struct{}, len(diag.Signatures))
	for i, sig := range diag.Signatures {
		if sig.ID == "" {
			return errors.Wrapf(domain.ErrInvalidDiagnosticData, "signature %d has no id", i)
		}
		if _, dup := seen[sig.ID]; dup {
			return errors.Wrapf(domain.ErrInvalidDiagnosticData, "duplicate signature id %s", sig.ID)
		}
		seen[sig.ID] = struct{}{}
	}
	return nil
}

func EncodeReport(report *domain.SimpleReport) ([]byte, error) {
	return json.Marshal(report)
}

func DecodeReport(data []byte) (*domain.SimpleReport, error) {
	var report domain.SimpleReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, errors.Wrap(err, "decode report")
	}
	return &report, nil
}

func EncodeRecord(rec domain.ValidationRecord) ([]byte, error) {
	return json.Marshal(rec)
}

func DecodeRecord(data []byte) (*domain.ValidationRecord, error) {
	var rec domain.ValidationRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(err, "decode validation record")
	}
	return &rec, nil
}

func EncodeTrace(trace *domain.TraceNode) ([]byte, error) {
	return json.Marshal(trace)
}

func DecodeTrace(data []byte) (*domain.TraceNode, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var trace domain.TraceNode
	if err := json.Unmarshal(data, &trace); err != nil {
		return nil, errors.Wrap(err, "decode trace")
	}
	return &trace, nil
}

// Digester keys the report cache by the SHA-256 of the encoded fact tree.
type Digester struct{}

func (Digester) Digest(diag *domain.DiagnosticData) (string, error) {
	payload, err := json.Marshal(diag)
	if err != nil {
		return "", errors.Wrap(err, "encode diagnostic data")
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

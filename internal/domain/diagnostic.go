package domain

import (
	"strings"
	"time"
)

const SignatureTypeCounterSignature = "COUNTERSIGNATURE"

type TimestampType string

const (
	TimestampContent                TimestampType = "CONTENT_TIMESTAMP"
	TimestampAllDataObjects         TimestampType = "ALL_DATA_OBJECTS_TIMESTAMP"
	TimestampIndividualDataObjects  TimestampType = "INDIVIDUAL_DATA_OBJECTS_TIMESTAMP"
	TimestampSignature              TimestampType = "SIGNATURE_TIMESTAMP"
	TimestampValidationDataRefsOnly TimestampType = "VALIDATION_DATA_REFSONLY_TIMESTAMP"
	TimestampValidationData         TimestampType = "VALIDATION_DATA_TIMESTAMP"
	TimestampArchive                TimestampType = "ARCHIVE_TIMESTAMP"
)

type RevocationStatus string

const (
	RevocationGood    RevocationStatus = "good"
	RevocationRevoked RevocationStatus = "revoked"
	RevocationUnknown RevocationStatus = "unknown"
)

const RevocationReasonCertificateHold = "certificateHold"

// DiagnosticData is the read-only fact tree describing one signed document.
type DiagnosticData struct {
	DocumentName     string        `json:"documentName,omitempty"`
	DetachedContents []string      `json:"detachedContents,omitempty"`
	Signatures       []Signature   `json:"signatures"`
	Certificates     []Certificate `json:"certificates,omitempty"`
}

type Signature struct {
	ID                        string                     `json:"id"`
	Type                      string                     `json:"type,omitempty"`
	ParentID                  string                     `json:"parentId,omitempty"`
	SigningTime               *time.Time                 `json:"signingTime,omitempty"`
	SignatureFormat           string                     `json:"signatureFormat,omitempty"`
	StructuralValidation      StructuralValidation       `json:"structuralValidation"`
	BasicSignature            BasicSignature             `json:"basicSignature"`
	SigningCertificate        SigningCertificateRef      `json:"signingCertificate"`
	CertificateChain          []string                   `json:"certificateChain,omitempty"`
	ContentType               string                     `json:"contentType,omitempty"`
	ContentHints              string                     `json:"contentHints,omitempty"`
	ContentIdentifier         string                     `json:"contentIdentifier,omitempty"`
	CommitmentTypeIndications []CommitmentTypeIndication `json:"commitmentTypeIndications,omitempty"`
	SignatureProductionPlace  *ProductionPlace           `json:"signatureProductionPlace,omitempty"`
	ClaimedRoles              []string                   `json:"claimedRoles,omitempty"`
	CertifiedRoles            *CertifiedRoles            `json:"certifiedRoles,omitempty"`
	Timestamps                []Timestamp                `json:"timestamps,omitempty"`
	CompleteCertificateRefs   bool                       `json:"completeCertificateRefs,omitempty"`
	CompleteRevocationRefs    bool                       `json:"completeRevocationRefs,omitempty"`
	CertificateValues         bool                       `json:"certificateValues,omitempty"`
	RevocationValues          bool                       `json:"revocationValues,omitempty"`
	SignatureScopes           []SignatureScope           `json:"signatureScopes,omitempty"`
	ErrorMessages             []string                   `json:"errorMessages,omitempty"`
}

type StructuralValidation struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// BasicSignature holds the outcome of the raw cryptographic verification done
// by the fact provider.
type BasicSignature struct {
	EncryptionAlgo      string      `json:"encryptionAlgo,omitempty"`
	DigestAlgo          string      `json:"digestAlgo,omitempty"`
	KeyLength           int         `json:"keyLength,omitempty"`
	ReferenceDataFound  bool        `json:"referenceDataFound,omitempty"`
	ReferenceDataIntact bool        `json:"referenceDataIntact,omitempty"`
	SignatureIntact     bool        `json:"signatureIntact,omitempty"`
	References          []Reference `json:"references,omitempty"`
}

type Reference struct {
	URI              string `json:"uri"`
	DataObjectFormat bool   `json:"dataObjectFormat"`
}

type SigningCertificateRef struct {
	ID                 string `json:"id,omitempty"`
	AttributePresent   bool   `json:"attributePresent,omitempty"`
	DigestValuePresent bool   `json:"digestValuePresent,omitempty"`
	DigestValueMatch   bool   `json:"digestValueMatch,omitempty"`
	IssuerSerialMatch  bool   `json:"issuerSerialMatch,omitempty"`
}

type CommitmentTypeIndication struct {
	Identifier       string            `json:"identifier"`
	ObjectReferences []ObjectReference `json:"objectReferences,omitempty"`
}

type ObjectReference struct {
	Value  string `json:"value"`
	Exists bool   `json:"exists"`
}

type ProductionPlace struct {
	Text   string      `json:"text,omitempty"`
	Fields []NameValue `json:"fields,omitempty"`
}

type NameValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Formatted renders the place as the free text followed by "Name: value"
// entries, joined with "; ".
func (p *ProductionPlace) Formatted() string {
	if p == nil {
		return ""
	}
	var parts []string
	if p.Text != "" {
		parts = append(parts, p.Text)
	}
	for _, f := range p.Fields {
		if f.Value == "" {
			continue
		}
		parts = append(parts, f.Name+": "+f.Value)
	}
	return strings.Join(parts, "; ")
}

type CertifiedRoles struct {
	NotBefore *time.Time `json:"notBefore,omitempty"`
	NotAfter  *time.Time `json:"notAfter,omitempty"`
	Roles     []string   `json:"roles,omitempty"`
}

type SignatureScope struct {
	Name        string `json:"name"`
	Scope       string `json:"scope"`
	Description string `json:"description,omitempty"`
}

type Timestamp struct {
	ID                       string                `json:"id"`
	Type                     TimestampType         `json:"type"`
	ProductionTime           *time.Time            `json:"productionTime,omitempty"`
	SigningCertificate       SigningCertificateRef `json:"signingCertificate"`
	CertificateChain         []string              `json:"certificateChain,omitempty"`
	MessageImprintDataFound  bool                  `json:"messageImprintDataFound,omitempty"`
	MessageImprintDataIntact bool                  `json:"messageImprintDataIntact,omitempty"`
	BasicSignature           BasicSignature        `json:"basicSignature"`
}

type Certificate struct {
	ID                       string          `json:"id"`
	SubjectDistinguishedName string          `json:"subjectDistinguishedName,omitempty"`
	IssuerDistinguishedName  string          `json:"issuerDistinguishedName,omitempty"`
	SerialNumber             string          `json:"serialNumber,omitempty"`
	NotBefore                time.Time       `json:"notBefore"`
	NotAfter                 time.Time       `json:"notAfter"`
	SelfSigned               bool            `json:"selfSigned,omitempty"`
	Trusted                  bool            `json:"trusted,omitempty"`
	KeyUsages                []string        `json:"keyUsages,omitempty"`
	BasicSignature           BasicSignature  `json:"basicSignature"`
	QCStatement              QCStatement     `json:"qcStatement"`
	TrustedService           *TrustedService `json:"trustedService,omitempty"`
	Revocation               *Revocation     `json:"revocation,omitempty"`
}

type QCStatement struct {
	QCP     bool `json:"qcp,omitempty"`
	QCPPlus bool `json:"qcpPlus,omitempty"`
	QCC     bool `json:"qcc,omitempty"`
	QCSSCD  bool `json:"qcsscd,omitempty"`
}

type TrustedService struct {
	ServiceType                string     `json:"serviceType,omitempty"`
	Status                     string     `json:"status,omitempty"`
	Qualifiers                 []string   `json:"qualifiers,omitempty"`
	ExpiredCertsRevocationInfo *time.Time `json:"expiredCertsRevocationInfo,omitempty"`
}

type Revocation struct {
	Status         RevocationStatus `json:"status"`
	Reason         string           `json:"reason,omitempty"`
	RevocationDate *time.Time       `json:"revocationDate,omitempty"`
	IssuingTime    *time.Time       `json:"issuingTime,omitempty"`
	NextUpdate     *time.Time       `json:"nextUpdate,omitempty"`
	Trusted        bool             `json:"trusted,omitempty"`
	BasicSignature BasicSignature   `json:"basicSignature"`
}

func (r *Revocation) OnHold() bool {
	return r != nil && r.Status == RevocationRevoked && r.Reason == RevocationReasonCertificateHold
}

func (s *Signature) IsCounterSignature() bool {
	return s.Type == SignatureTypeCounterSignature
}

// TimestampsOfType returns the timestamps whose type is one of types, in
// document order. With no types every timestamp is returned.
func (s *Signature) TimestampsOfType(types ...TimestampType) []Timestamp {
	if len(types) == 0 {
		return s.Timestamps
	}
	var out []Timestamp
	for _, ts := range s.Timestamps {
		for _, t := range types {
			if ts.Type == t {
				out = append(out, ts)
				break
			}
		}
	}
	return out
}

// PrimarySignatures returns the signatures that are not counter-signatures.
func (d *DiagnosticData) PrimarySignatures() []*Signature {
	var out []*Signature
	for i := range d.Signatures {
		if d.Signatures[i].Type == "" {
			out = append(out, &d.Signatures[i])
		}
	}
	return out
}

func (d *DiagnosticData) CounterSignaturesOf(id string) []*Signature {
	var out []*Signature
	for i := range d.Signatures {
		if d.Signatures[i].ParentID == id && d.Signatures[i].IsCounterSignature() {
			out = append(out, &d.Signatures[i])
		}
	}
	return out
}

func (d *DiagnosticData) Signature(id string) (*Signature, bool) {
	for i := range d.Signatures {
		if d.Signatures[i].ID == id {
			return &d.Signatures[i], true
		}
	}
	return nil, false
}

func (d *DiagnosticData) Certificate(id string) (*Certificate, bool) {
	if id == "" {
		return nil, false
	}
	for i := range d.Certificates {
		if d.Certificates[i].ID == id {
			return &d.Certificates[i], true
		}
	}
	return nil, false
}

// CommonName extracts the CN attribute from an RFC 2253 subject name.
func (c *Certificate) CommonName() string {
	return dnAttribute(c.SubjectDistinguishedName, "CN")
}

func dnAttribute(dn, attr string) string {
	for _, rdn := range splitDN(dn) {
		k, v, ok := strings.Cut(rdn, "=")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(k), attr) {
			return strings.ReplaceAll(strings.TrimSpace(v), `\,`, ",")
		}
	}
	return ""
}

// splitDN splits on commas that are not escaped with a backslash.
func splitDN(dn string) []string {
	var (
		out     []string
		start   int
		escaped bool
	)
	for i := 0; i < len(dn); i++ {
		switch {
		case escaped:
			escaped = false
		case dn[i] == '\\':
			escaped = true
		case dn[i] == ',':
			out = append(out, dn[start:i])
			start = i + 1
		}
	}
	if start < len(dn) {
		out = append(out, dn[start:])
	}
	return out
}

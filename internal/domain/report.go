package domain

import "time"

type SignatureQualification string

const (
	QualificationQES       SignatureQualification = "QES"
	QualificationAdESQC    SignatureQualification = "AdESqc"
	QualificationAdES      SignatureQualification = "AdES"
	QualificationNotAdESQC SignatureQualification = "NOT_ADES_QC"
	QualificationNA        SignatureQualification = "NA"
)

type PolicyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// SimpleReport is the aggregated verdict of one document validation.
type SimpleReport struct {
	ID               string            `json:"id,omitempty"`
	Policy           PolicyInfo        `json:"policy"`
	ValidationTime   time.Time         `json:"validationTime"`
	DocumentName     string            `json:"documentName,omitempty"`
	DetachedContents []string          `json:"detachedContents,omitempty"`
	Signatures       []SignatureReport `json:"signatures,omitempty"`
	Global           GlobalResult      `json:"global"`
}

type SignatureReport struct {
	ID                       string                 `json:"id"`
	Type                     string                 `json:"type,omitempty"`
	ParentID                 string                 `json:"parentId,omitempty"`
	SigningTime              *time.Time             `json:"signingTime,omitempty"`
	SignatureFormat          string                 `json:"signatureFormat,omitempty"`
	SignatureLevel           SignatureQualification `json:"signatureLevel,omitempty"`
	SignedBy                 string                 `json:"signedBy,omitempty"`
	SubjectDistinguishedName string                 `json:"subjectDistinguishedName,omitempty"`
	NotBefore                *time.Time             `json:"notBefore,omitempty"`
	NotAfter                 *time.Time             `json:"notAfter,omitempty"`
	Indication               Indication             `json:"indication"`
	SubIndication            SubIndication          `json:"subIndication,omitempty"`
	Errors                   []Message              `json:"errors,omitempty"`
	Warnings                 []Message              `json:"warnings,omitempty"`
	Infos                    []Message              `json:"infos,omitempty"`
	SignatureScopes          []SignatureScope       `json:"signatureScopes,omitempty"`
	Timestamps               []TimestampReport      `json:"timestamps,omitempty"`
}

type TimestampReport struct {
	ID                       string        `json:"id"`
	Type                     TimestampType `json:"type"`
	ProductionTime           *time.Time    `json:"productionTime,omitempty"`
	SubjectDistinguishedName string        `json:"subjectDistinguishedName,omitempty"`
	NotBefore                *time.Time    `json:"notBefore,omitempty"`
	NotAfter                 *time.Time    `json:"notAfter,omitempty"`
	Indication               Indication    `json:"indication,omitempty"`
	SubIndication            SubIndication `json:"subIndication,omitempty"`
}

type GlobalResult struct {
	Indication           Indication    `json:"indication"`
	SubIndication        SubIndication `json:"subIndication,omitempty"`
	ValidSignaturesCount int           `json:"validSignaturesCount"`
	SignaturesCount      int           `json:"signaturesCount"`
	Errors               []Message     `json:"errors,omitempty"`
}

// ValidationRecord is a stored validation: the report, the audit trail and
// the request metadata.
type ValidationRecord struct {
	ID         string        `json:"id"`
	PolicyName string        `json:"policyName"`
	CreatedAt  time.Time     `json:"createdAt"`
	Report     *SimpleReport `json:"report"`
	Trace      *TraceNode    `json:"trace,omitempty"`
}

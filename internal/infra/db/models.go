package db

import "time"

// ValidationReportModel stores one validation run. The report and its trace
// are kept as jsonb; the summary columns are for querying.
type ValidationReportModel struct {
	ID                   string    `gorm:"type:uuid;primaryKey"`
	PolicyName           string    `gorm:"index;not null"`
	DocumentName         string    `gorm:"not null;default:''"`
	Indication           string    `gorm:"index;not null"`
	SubIndication        string    `gorm:"not null;default:''"`
	SignaturesCount      int       `gorm:"not null"`
	ValidSignaturesCount int       `gorm:"not null"`
	ValidationTime       time.Time `gorm:"not null"`
	ReportJSON           []byte    `gorm:"type:jsonb;not null"`
	TraceJSON            []byte    `gorm:"type:jsonb"`
	CreatedAt            time.Time `gorm:"index;not null"`
}

func (ValidationReportModel) TableName() string {
	return "validation_reports"
}

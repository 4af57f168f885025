package db

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"

	"sigval/internal/domain"
	"sigval/internal/infra/codec"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Save(ctx context.Context, rec domain.ValidationRecord) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model, err := reportModelFromDomain(rec)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *ReportRepository) Get(ctx context.Context, id string) (*domain.ValidationRecord, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model ValidationReportModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reportFromModel(model)
}

func reportModelFromDomain(rec domain.ValidationRecord) (ValidationReportModel, error) {
	if rec.ID == "" {
		return ValidationReportModel{}, errors.New("id is required")
	}
	if rec.Report == nil {
		return ValidationReportModel{}, errors.New("report is required")
	}
	reportJSON, err := codec.EncodeReport(rec.Report)
	if err != nil {
		return ValidationReportModel{}, errors.Wrap(err, "encode report")
	}
	var traceJSON []byte
	if rec.Trace != nil {
		if traceJSON, err = codec.EncodeTrace(rec.Trace); err != nil {
			return ValidationReportModel{}, errors.Wrap(err, "encode trace")
		}
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	g := rec.Report.Global
	return ValidationReportModel{
		ID:                   rec.ID,
		PolicyName:           rec.PolicyName,
		DocumentName:         rec.Report.DocumentName,
		Indication:           string(g.Indication),
		SubIndication:        string(g.SubIndication),
		SignaturesCount:      g.SignaturesCount,
		ValidSignaturesCount: g.ValidSignaturesCount,
		ValidationTime:       rec.Report.ValidationTime.UTC(),
		ReportJSON:           reportJSON,
		TraceJSON:            traceJSON,
		CreatedAt:            createdAt.UTC().Truncate(time.Microsecond),
	}, nil
}

func reportFromModel(model ValidationReportModel) (*domain.ValidationRecord, error) {
	report, err := codec.DecodeReport(copyBytes(model.ReportJSON))
	if err != nil {
		return nil, err
	}
	trace, err := codec.DecodeTrace(copyBytes(model.TraceJSON))
	if err != nil {
		return nil, err
	}
	return &domain.ValidationRecord{
		ID:         model.ID,
		PolicyName: model.PolicyName,
		CreatedAt:  model.CreatedAt.UTC(),
		Report:     report,
		Trace:      trace,
	}, nil
}

package db

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sigval/internal/config"
)

type Store struct {
	DB *gorm.DB
}

// NewStore connects to postgres. Without POSTGRES_DSN the store runs in
// no-db mode and DB stays nil.
func NewStore(cfg config.Config, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.PostgresDSN == "" {
		log.Info("POSTGRES_DSN not set; starting in no-db mode")
		return &Store{DB: nil}, nil
	}

	gdb, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect postgres")
	}
	return &Store{DB: gdb}, nil
}

// Migrate creates or updates the tables owned by this package.
func (s *Store) Migrate() error {
	if s == nil || s.DB == nil {
		return nil
	}
	if err := s.DB.AutoMigrate(&ValidationReportModel{}); err != nil {
		return errors.Wrap(err, "migrate validation_reports")
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package store

import (
	"context"

	"github.com/talentwire/intake-api/internal/store/model"
	"gorm.io/gorm"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Applicant() Applicant
	Job() Job
	Application() Application
	Evaluation() Evaluation
	InitialMigration() error
	Close() error
}

type DataStore struct {
	db          *gorm.DB
	applicant   Applicant
	job         Job
	application Application
	evaluation  Evaluation
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		applicant:   NewApplicantStore(db),
		job:         NewJobStore(db),
		application: NewApplicationStore(db),
		evaluation:  NewEvaluationStore(db),
		db:          db,
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Applicant() Applicant {
	return s.applicant
}

func (s *DataStore) Job() Job {
	return s.job
}

func (s *DataStore) Application() Application {
	return s.application
}

func (s *DataStore) Evaluation() Evaluation {
	return s.evaluation
}

func (s *DataStore) InitialMigration() error {
	return s.db.AutoMigrate(
		&model.Applicant{},
		&model.Job{},
		&model.Application{},
		&model.Evaluation{},
	)
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

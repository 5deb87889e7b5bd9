package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/talentwire/intake-api/internal/artifact"
	"github.com/talentwire/intake-api/internal/events"
	"github.com/talentwire/intake-api/internal/handlers/validator"
	"github.com/talentwire/intake-api/internal/service/mappers"
	"github.com/talentwire/intake-api/internal/store"
	"github.com/talentwire/intake-api/internal/store/model"
	"github.com/talentwire/intake-api/internal/tasks"
	"github.com/talentwire/intake-api/pkg/metrics"
	"go.uber.org/zap"
)

// EventWriter is the producer side of the lifecycle event stream.
type EventWriter interface {
	Write(ctx context.Context, kind string, body io.Reader) error
}

// IntakeService runs the application submission pipeline. The applicant row,
// the resume artifact and the application row live in different resources, so
// the sequence is ordered and every step carries a compensation for the ones
// before it. A submission either ends fully applied or fully undone.
type IntakeService struct {
	store        store.Store
	artifacts    artifact.Store
	queue        tasks.Enqueuer
	eventWriter  EventWriter
	validator    *validator.Validator
	stageTimeout time.Duration
}

func NewIntakeService(s store.Store, artifacts artifact.Store, queue tasks.Enqueuer, ew EventWriter, stageTimeout time.Duration) *IntakeService {
	v := validator.NewValidator()
	v.Register(validator.NewIntakeValidationRules()...)

	return &IntakeService{
		store:        s,
		artifacts:    artifacts,
		queue:        queue,
		eventWriter:  ew,
		validator:    v,
		stageTimeout: stageTimeout,
	}
}

func (s *IntakeService) SubmitApplication(ctx context.Context, form mappers.IntakeForm) (*model.Application, error) {
	if err := s.validator.Struct(form); err != nil {
		metrics.IncIntake("validation_rejected")
		return nil, NewErrValidation(err)
	}

	job, err := s.store.Job().Get(ctx, form.JobID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			metrics.IncIntake("validation_rejected")
			return nil, NewErrJobNotFound(form.JobID)
		}
		return nil, err
	}
	if job.Status != model.JobStatusOpen {
		metrics.IncIntake("validation_rejected")
		return nil, NewErrJobClosed(job.ID)
	}

	// Stage 1: persist the applicant profile in its own transaction. It has
	// to be committed before the artifact write because the artifact key is
	// derived from the applicant id.
	applicant, err := s.createApplicant(ctx, form.Applicant)
	if err != nil {
		metrics.IncIntake("failed")
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		s.deleteApplicant(applicant.ID)
		metrics.IncIntake("failed")
		return nil, err
	}

	// Stage 2: store the resume artifact.
	location, err := s.saveResume(ctx, applicant.ID, form)
	if err != nil {
		s.deleteApplicant(applicant.ID)
		if errors.Is(err, artifact.ErrInvalidType) {
			metrics.IncIntake("validation_rejected")
			return nil, NewErrValidation(err)
		}
		metrics.IncIntake("failed")
		return nil, NewErrArtifactStorage(err)
	}

	if err := ctx.Err(); err != nil {
		s.deleteArtifact(location)
		s.deleteApplicant(applicant.ID)
		metrics.IncIntake("failed")
		return nil, err
	}

	// Stage 3: link everything in one transaction: resume pointer,
	// application row and the pending evaluation.
	application, err := s.createApplication(ctx, applicant.ID, location, form)
	if err != nil {
		s.deleteArtifact(location)
		s.deleteApplicant(applicant.ID)
		if errors.Is(err, store.ErrDuplicateKey) {
			metrics.IncIntake("validation_rejected")
			return nil, NewErrDuplicateApplication(applicant.ID, form.JobID)
		}
		metrics.IncIntake("failed")
		return nil, err
	}

	s.queue.Enqueue(tasks.ScoringTask{
		ApplicationID: application.ID,
		EvaluationID:  application.Evaluation.ID,
	})

	s.writeEvent(ctx, events.ApplicationMessageKind, applicationEvent{
		ApplicationID: application.ID,
		ApplicantID:   applicant.ID,
		JobID:         job.ID,
		Status:        application.Status,
	})

	metrics.IncIntake("completed")
	return application, nil
}

func (s *IntakeService) GetApplication(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	application, err := s.store.Application().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrApplicationNotFound(id)
		}
		return nil, err
	}
	return application, nil
}

func (s *IntakeService) ListApplications(ctx context.Context, filter *store.ApplicationQueryFilter) (model.ApplicationList, error) {
	return s.store.Application().List(ctx, filter)
}

// stageContext bounds a single stage with the stage timeout and detaches it
// from the request. A stage that has started always runs to a definite
// success or failure; caller cancellation is only looked at between stages.
func (s *IntakeService) stageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.stageTimeout)
}

func (s *IntakeService) createApplicant(ctx context.Context, form mappers.ApplicantCreateForm) (*model.Applicant, error) {
	ctx, cancel := s.stageContext(ctx)
	defer cancel()

	ctx, err := s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}

	applicant, err := s.store.Applicant().Create(ctx, form.ToApplicant(uuid.New()))
	if err != nil {
		_, _ = store.Rollback(ctx)
		return nil, err
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}
	return applicant, nil
}

func (s *IntakeService) saveResume(ctx context.Context, applicantID uuid.UUID, form mappers.IntakeForm) (string, error) {
	saveCtx, cancel := s.stageContext(ctx)
	defer cancel()

	return s.artifacts.Save(saveCtx, applicantID, form.ResumeFilename, form.Resume)
}

func (s *IntakeService) createApplication(ctx context.Context, applicantID uuid.UUID, location string, form mappers.IntakeForm) (*model.Application, error) {
	ctx, cancel := s.stageContext(ctx)
	defer cancel()

	ctx, err := s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.Applicant().UpdateResumeLocation(ctx, applicantID, location); err != nil {
		_, _ = store.Rollback(ctx)
		return nil, err
	}

	application, err := s.store.Application().Create(ctx, form.ToApplication(uuid.New(), applicantID))
	if err != nil {
		_, _ = store.Rollback(ctx)
		return nil, err
	}

	evaluation, err := s.store.Evaluation().Create(ctx, model.Evaluation{
		ID:            uuid.New(),
		ApplicationID: application.ID,
		Status:        model.EvaluationStatusPending,
	})
	if err != nil {
		_, _ = store.Rollback(ctx)
		return nil, err
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}

	application.Evaluation = evaluation
	return application, nil
}

// Compensations run on a fresh context. The request context may already be
// cancelled and an undo must not be skipped because of it.

func (s *IntakeService) deleteApplicant(id uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), s.stageTimeout)
	defer cancel()

	if err := s.store.Applicant().Delete(ctx, id); err != nil {
		zap.S().Named("intake").Errorf("compensation failed, applicant %s left behind: %v", id, err)
	}
}

func (s *IntakeService) deleteArtifact(location string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.stageTimeout)
	defer cancel()

	if err := s.artifacts.Delete(ctx, location); err != nil {
		zap.S().Named("intake").Errorf("compensation failed, artifact %q left behind: %v", location, err)
	}
}

type applicationEvent struct {
	ApplicationID uuid.UUID `json:"application_id"`
	ApplicantID   uuid.UUID `json:"applicant_id"`
	JobID         uuid.UUID `json:"job_id"`
	Status        string    `json:"status"`
}

func (s *IntakeService) writeEvent(ctx context.Context, kind string, payload any) {
	if s.eventWriter == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		zap.S().Named("intake").Errorf("failed to marshal event: %v", err)
		return
	}
	if err := s.eventWriter.Write(ctx, kind, bytes.NewReader(data)); err != nil {
		zap.S().Named("intake").Errorf("failed to write event: %v", err)
	}
}

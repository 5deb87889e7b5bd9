package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/talentwire/intake-api/internal/events"
	"github.com/talentwire/intake-api/internal/extraction"
	"github.com/talentwire/intake-api/internal/scoring"
	"github.com/talentwire/intake-api/internal/store"
	"github.com/talentwire/intake-api/internal/store/model"
	"github.com/talentwire/intake-api/internal/tasks"
	"github.com/talentwire/intake-api/pkg/metrics"
	"go.uber.org/zap"
)

// EvaluationService scores accepted applications in the background. Scoring
// never touches the intake outcome: an application whose resume cannot be
// read stays on file with its evaluation marked unavailable.
type EvaluationService struct {
	store       store.Store
	extractor   extraction.Extractor
	engine      *scoring.Engine
	eventWriter EventWriter
}

// Make sure we conform to the task evaluator interface
var _ tasks.Evaluator = (*EvaluationService)(nil)

func NewEvaluationService(s store.Store, extractor extraction.Extractor, engine *scoring.Engine, ew EventWriter) *EvaluationService {
	return &EvaluationService{
		store:       s,
		extractor:   extractor,
		engine:      engine,
		eventWriter: ew,
	}
}

func (s *EvaluationService) Evaluate(ctx context.Context, task tasks.ScoringTask) error {
	if err := s.store.Evaluation().SetStatus(ctx, task.EvaluationID, model.EvaluationStatusProcessing, nil); err != nil {
		return err
	}

	application, err := s.store.Application().Get(ctx, task.ApplicationID)
	if err != nil {
		return s.fail(ctx, task, err)
	}

	applicant, err := s.store.Applicant().Get(ctx, application.ApplicantID)
	if err != nil {
		return s.fail(ctx, task, err)
	}

	job, err := s.store.Job().Get(ctx, application.JobID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return s.unavailable(ctx, task, "job requirements no longer exist")
		}
		return s.fail(ctx, task, err)
	}

	if applicant.ResumeLocation == nil {
		return s.unavailable(ctx, task, "resume artifact is missing")
	}

	text, err := s.extractor.ExtractText(ctx, *applicant.ResumeLocation)
	if err != nil {
		if errors.Is(err, extraction.ErrUnreadable) {
			return s.unavailable(ctx, task, err.Error())
		}
		return s.fail(ctx, task, err)
	}

	result := s.engine.Score(text, job.Description, job.KeySkillList(), job.AdditionalSkillList())

	if err := s.store.Evaluation().Complete(ctx, task.EvaluationID, model.EvaluationResult{
		Score:             result.Score,
		HighPriorityRatio: result.HighPriorityRatio,
		NormalRatio:       result.NormalRatio,
		Label:             result.Label,
	}); err != nil {
		return s.fail(ctx, task, err)
	}

	metrics.IncEvaluation(model.EvaluationStatusCompleted)
	s.writeEvaluationEvent(ctx, task, model.EvaluationStatusCompleted, &result)
	return nil
}

// ResumePending re-enqueues evaluations that never reached a terminal
// state, picking up work lost to a shutdown or a failed dispatch. It
// returns the number of tasks handed to the queue.
func (s *EvaluationService) ResumePending(ctx context.Context, queue tasks.Enqueuer) (int, error) {
	evaluations, err := s.store.Evaluation().ListByStatus(ctx, model.EvaluationStatusPending, model.EvaluationStatusProcessing)
	if err != nil {
		return 0, err
	}

	for _, evaluation := range evaluations {
		queue.Enqueue(tasks.ScoringTask{
			ApplicationID: evaluation.ApplicationID,
			EvaluationID:  evaluation.ID,
		})
	}
	return len(evaluations), nil
}

func (s *EvaluationService) GetEvaluation(ctx context.Context, applicationID uuid.UUID) (*model.Evaluation, error) {
	evaluation, err := s.store.Evaluation().GetByApplication(ctx, applicationID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrEvaluationNotFound(applicationID)
		}
		return nil, err
	}
	return evaluation, nil
}

// unavailable is the degraded terminal state. The error is recorded on the
// evaluation row and the task is considered done.
func (s *EvaluationService) unavailable(ctx context.Context, task tasks.ScoringTask, reason string) error {
	if err := s.store.Evaluation().SetStatus(ctx, task.EvaluationID, model.EvaluationStatusUnavailable, &reason); err != nil {
		return err
	}

	metrics.IncEvaluation(model.EvaluationStatusUnavailable)
	s.writeEvaluationEvent(ctx, task, model.EvaluationStatusUnavailable, nil)
	return nil
}

func (s *EvaluationService) fail(ctx context.Context, task tasks.ScoringTask, cause error) error {
	reason := cause.Error()
	if err := s.store.Evaluation().SetStatus(ctx, task.EvaluationID, model.EvaluationStatusFailed, &reason); err != nil {
		zap.S().Named("evaluation").Errorf("failed to record failure for evaluation %s: %v", task.EvaluationID, err)
	}

	metrics.IncEvaluation(model.EvaluationStatusFailed)
	s.writeEvaluationEvent(ctx, task, model.EvaluationStatusFailed, nil)
	return cause
}

type evaluationEvent struct {
	ApplicationID uuid.UUID `json:"application_id"`
	EvaluationID  uuid.UUID `json:"evaluation_id"`
	Status        string    `json:"status"`
	Score         *float64  `json:"score,omitempty"`
	Label         *string   `json:"label,omitempty"`
}

func (s *EvaluationService) writeEvaluationEvent(ctx context.Context, task tasks.ScoringTask, status string, result *scoring.Result) {
	if s.eventWriter == nil {
		return
	}

	event := evaluationEvent{
		ApplicationID: task.ApplicationID,
		EvaluationID:  task.EvaluationID,
		Status:        status,
	}
	if result != nil {
		event.Score = &result.Score
		event.Label = &result.Label
	}

	data, err := json.Marshal(event)
	if err != nil {
		zap.S().Named("evaluation").Errorf("failed to marshal event: %v", err)
		return
	}
	if err := s.eventWriter.Write(ctx, events.EvaluationMessageKind, bytes.NewReader(data)); err != nil {
		zap.S().Named("evaluation").Errorf("failed to write event: %v", err)
	}
}

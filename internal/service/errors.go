package service

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrValidation struct {
	error
}

func NewErrValidation(err error) *ErrValidation {
	return &ErrValidation{fmt.Errorf("invalid submission: %w", err)}
}

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id uuid.UUID, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrApplicantNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "applicant")
}

func NewErrJobNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "job")
}

func NewErrApplicationNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "application")
}

func NewErrEvaluationNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "evaluation")
}

type ErrDuplicateApplication struct {
	error
}

func NewErrDuplicateApplication(applicantID, jobID uuid.UUID) *ErrDuplicateApplication {
	return &ErrDuplicateApplication{fmt.Errorf("applicant %s already applied to job %s", applicantID, jobID)}
}

type ErrJobClosed struct {
	error
}

func NewErrJobClosed(jobID uuid.UUID) *ErrJobClosed {
	return &ErrJobClosed{fmt.Errorf("job %s is not accepting applications", jobID)}
}

type ErrArtifactStorage struct {
	error
}

func NewErrArtifactStorage(err error) *ErrArtifactStorage {
	return &ErrArtifactStorage{fmt.Errorf("failed to store resume: %w", err)}
}

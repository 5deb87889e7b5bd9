package store_test

import (
	"context"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/talentwire/intake-api/internal/store"
	"github.com/talentwire/intake-api/internal/store/model"
	"gorm.io/gorm"
)

var _ = Describe("evaluation store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	createApplication := func() uuid.UUID {
		applicant, err := s.Applicant().Create(context.TODO(), model.Applicant{
			ID:        uuid.New(),
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
		})
		Expect(err).To(BeNil())

		job, err := s.Job().Create(context.TODO(), model.Job{
			ID:          uuid.New(),
			Title:       "Backend Engineer",
			Description: "Go services",
		})
		Expect(err).To(BeNil())

		application, err := s.Application().Create(context.TODO(), model.Application{
			ID:          uuid.New(),
			ApplicantID: applicant.ID,
			JobID:       job.ID,
		})
		Expect(err).To(BeNil())
		return application.ID
	}

	BeforeAll(func() {
		s, gormdb = newTestDB()
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE from evaluations;")
		gormdb.Exec("DELETE from applications;")
		gormdb.Exec("DELETE from applicants;")
		gormdb.Exec("DELETE from jobs;")
	})

	Context("lifecycle", func() {
		It("moves from pending to processing to completed", func() {
			applicationID := createApplication()

			evaluation, err := s.Evaluation().Create(context.TODO(), model.Evaluation{
				ID:            uuid.New(),
				ApplicationID: applicationID,
				Status:        model.EvaluationStatusPending,
			})
			Expect(err).To(BeNil())

			Expect(s.Evaluation().SetStatus(context.TODO(), evaluation.ID, model.EvaluationStatusProcessing, nil)).To(Succeed())

			Expect(s.Evaluation().Complete(context.TODO(), evaluation.ID, model.EvaluationResult{
				Score:             0.85,
				HighPriorityRatio: 1.0,
				NormalRatio:       0.5,
				Label:             "shortlisted",
			})).To(Succeed())

			found, err := s.Evaluation().Get(context.TODO(), evaluation.ID)
			Expect(err).To(BeNil())
			Expect(found.Status).To(Equal(model.EvaluationStatusCompleted))
			Expect(found.Score).NotTo(BeNil())
			Expect(*found.Score).To(BeNumerically("~", 0.85, 1e-9))
			Expect(*found.Label).To(Equal("shortlisted"))
			Expect(found.StatusInfo).To(BeNil())
		})

		It("records the degraded reason", func() {
			applicationID := createApplication()

			evaluation, err := s.Evaluation().Create(context.TODO(), model.Evaluation{
				ID:            uuid.New(),
				ApplicationID: applicationID,
				Status:        model.EvaluationStatusPending,
			})
			Expect(err).To(BeNil())

			reason := "resume content is not extractable"
			Expect(s.Evaluation().SetStatus(context.TODO(), evaluation.ID, model.EvaluationStatusUnavailable, &reason)).To(Succeed())

			found, err := s.Evaluation().GetByApplication(context.TODO(), applicationID)
			Expect(err).To(BeNil())
			Expect(found.Status).To(Equal(model.EvaluationStatusUnavailable))
			Expect(found.StatusInfo).NotTo(BeNil())
			Expect(*found.StatusInfo).To(Equal(reason))
			Expect(found.Score).To(BeNil())
		})
	})

	Context("uniqueness", func() {
		It("allows a single evaluation per application", func() {
			applicationID := createApplication()

			_, err := s.Evaluation().Create(context.TODO(), model.Evaluation{
				ID:            uuid.New(),
				ApplicationID: applicationID,
			})
			Expect(err).To(BeNil())

			_, err = s.Evaluation().Create(context.TODO(), model.Evaluation{
				ID:            uuid.New(),
				ApplicationID: applicationID,
			})
			Expect(err).To(MatchError(store.ErrDuplicateKey))
		})
	})

	Context("list", func() {
		It("returns only evaluations in the requested statuses", func() {
			pending, err := s.Evaluation().Create(context.TODO(), model.Evaluation{
				ID:            uuid.New(),
				ApplicationID: createApplication(),
				Status:        model.EvaluationStatusPending,
			})
			Expect(err).To(BeNil())

			completed, err := s.Evaluation().Create(context.TODO(), model.Evaluation{
				ID:            uuid.New(),
				ApplicationID: createApplication(),
				Status:        model.EvaluationStatusPending,
			})
			Expect(err).To(BeNil())
			Expect(s.Evaluation().Complete(context.TODO(), completed.ID, model.EvaluationResult{
				Score: 1.0,
				Label: "shortlisted",
			})).To(Succeed())

			evaluations, err := s.Evaluation().ListByStatus(context.TODO(), model.EvaluationStatusPending, model.EvaluationStatusProcessing)
			Expect(err).To(BeNil())
			Expect(evaluations).To(HaveLen(1))
			Expect(evaluations[0].ID).To(Equal(pending.ID))
		})
	})

	Context("get", func() {
		It("returns record not found for an unknown application", func() {
			_, err := s.Evaluation().GetByApplication(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})

		It("fails to update an unknown evaluation", func() {
			err := s.Evaluation().SetStatus(context.TODO(), uuid.New(), model.EvaluationStatusProcessing, nil)
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})
})

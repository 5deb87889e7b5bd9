package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/talentwire/intake-api/internal/artifact"
	"github.com/talentwire/intake-api/internal/service"
	"github.com/talentwire/intake-api/internal/service/mappers"
	"github.com/talentwire/intake-api/internal/store"
	"github.com/talentwire/intake-api/internal/store/model"
	"gorm.io/gorm"
)

var _ = Describe("intake service", Ordered, func() {
	var (
		s         store.Store
		gormdb    *gorm.DB
		artifacts *artifact.FileStore
		queue     *capturingQueue
		svc       *service.IntakeService
		jobID     uuid.UUID
	)

	newForm := func() mappers.IntakeForm {
		return mappers.IntakeForm{
			Applicant: mappers.ApplicantCreateForm{
				FirstName: "Jane",
				LastName:  "Doe",
				Email:     "jane.doe@example.com",
			},
			JobID:          jobID,
			Source:         "referral",
			ResumeFilename: "resume.txt",
			Resume:         strings.NewReader("senior go developer with docker"),
		}
	}

	countRows := func(table string) int64 {
		var count int64
		Expect(gormdb.Table(table).Count(&count).Error).To(BeNil())
		return count
	}

	BeforeAll(func() {
		s, gormdb = newTestDB()

		var err error
		artifacts, err = artifact.NewFileStore(GinkgoT().TempDir())
		Expect(err).To(BeNil())
	})

	AfterAll(func() {
		s.Close()
	})

	BeforeEach(func() {
		queue = &capturingQueue{}
		svc = service.NewIntakeService(s, artifacts, queue, nil, 5*time.Second)

		job, err := s.Job().Create(context.TODO(), model.Job{
			ID:          uuid.New(),
			Title:       "Backend Engineer",
			Description: "Go microservices",
			KeySkills:   "go,docker",
			Status:      model.JobStatusOpen,
		})
		Expect(err).To(BeNil())
		jobID = job.ID
	})

	AfterEach(func() {
		gormdb.Exec("DELETE from evaluations;")
		gormdb.Exec("DELETE from applications;")
		gormdb.Exec("DELETE from applicants;")
		gormdb.Exec("DELETE from jobs;")

		keys, err := artifacts.List(context.TODO())
		Expect(err).To(BeNil())
		for _, key := range keys {
			Expect(artifacts.Delete(context.TODO(), key)).To(Succeed())
		}
	})

	Context("submit", func() {
		It("persists applicant, artifact, application and pending evaluation", func() {
			application, err := svc.SubmitApplication(context.TODO(), newForm())
			Expect(err).To(BeNil())
			Expect(application.Status).To(Equal(model.ApplicationStatusPending))
			Expect(application.Evaluation).NotTo(BeNil())
			Expect(application.Evaluation.Status).To(Equal(model.EvaluationStatusPending))

			applicant, err := s.Applicant().Get(context.TODO(), application.ApplicantID)
			Expect(err).To(BeNil())
			Expect(applicant.ResumeLocation).NotTo(BeNil())

			_, err = artifacts.Open(context.TODO(), *applicant.ResumeLocation)
			Expect(err).To(BeNil())

			Expect(queue.tasks).To(HaveLen(1))
			Expect(queue.tasks[0].ApplicationID).To(Equal(application.ID))
			Expect(queue.tasks[0].EvaluationID).To(Equal(application.Evaluation.ID))
		})

		It("rejects a submission for an unknown job", func() {
			form := newForm()
			form.JobID = uuid.New()

			_, err := svc.SubmitApplication(context.TODO(), form)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
			Expect(countRows("applicants")).To(BeZero())
		})

		It("rejects a submission for a closed job", func() {
			job, err := s.Job().Create(context.TODO(), model.Job{
				ID:          uuid.New(),
				Title:       "Closed role",
				Description: "x",
				Status:      model.JobStatusClosed,
			})
			Expect(err).To(BeNil())

			form := newForm()
			form.JobID = job.ID

			_, err = svc.SubmitApplication(context.TODO(), form)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrJobClosed{}))
		})

		It("rejects an unsupported resume type before any write", func() {
			form := newForm()
			form.ResumeFilename = "resume.exe"

			_, err := svc.SubmitApplication(context.TODO(), form)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrValidation{}))
			Expect(countRows("applicants")).To(BeZero())

			keys, err := artifacts.List(context.TODO())
			Expect(err).To(BeNil())
			Expect(keys).To(BeEmpty())
		})

		It("rejects an incomplete profile", func() {
			form := newForm()
			form.Applicant.Email = "not-an-email"

			_, err := svc.SubmitApplication(context.TODO(), form)
			Expect(err).To(BeAssignableToTypeOf(&service.ErrValidation{}))
			Expect(countRows("applicants")).To(BeZero())
		})
	})

	Context("compensation", func() {
		It("removes the applicant when the artifact write fails", func() {
			failing := service.NewIntakeService(s, &failingArtifactStore{}, queue, nil, 5*time.Second)

			_, err := failing.SubmitApplication(context.TODO(), newForm())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrArtifactStorage{}))

			Expect(countRows("applicants")).To(BeZero())
			Expect(countRows("applications")).To(BeZero())
		})

		It("removes the applicant and the artifact when the application insert fails", func() {
			failing := service.NewIntakeService(&failingApplicationStore{Store: s}, artifacts, queue, nil, 5*time.Second)

			_, err := failing.SubmitApplication(context.TODO(), newForm())
			Expect(err).To(HaveOccurred())

			Expect(countRows("applicants")).To(BeZero())
			Expect(countRows("applications")).To(BeZero())
			Expect(countRows("evaluations")).To(BeZero())

			keys, err := artifacts.List(context.TODO())
			Expect(err).To(BeNil())
			Expect(keys).To(BeEmpty())
		})

		It("finishes a started stage when the caller disconnects", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			// the request context dies right after the application insert,
			// mid way through the final transaction
			wrapped := service.NewIntakeService(&disconnectingApplicationStore{Store: s, cancel: cancel}, artifacts, queue, nil, 5*time.Second)

			application, err := wrapped.SubmitApplication(ctx, newForm())
			Expect(err).To(BeNil())
			Expect(application.Evaluation).NotTo(BeNil())

			Expect(countRows("applicants")).To(Equal(int64(1)))
			Expect(countRows("applications")).To(Equal(int64(1)))
			Expect(countRows("evaluations")).To(Equal(int64(1)))
		})

		It("maps a duplicate application to a conflict error", func() {
			failing := service.NewIntakeService(&duplicateApplicationStore{Store: s}, artifacts, queue, nil, 5*time.Second)

			_, err := failing.SubmitApplication(context.TODO(), newForm())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrDuplicateApplication{}))

			Expect(countRows("applicants")).To(BeZero())
		})
	})

	Context("get", func() {
		It("returns the application with its evaluation", func() {
			submitted, err := svc.SubmitApplication(context.TODO(), newForm())
			Expect(err).To(BeNil())

			found, err := svc.GetApplication(context.TODO(), submitted.ID)
			Expect(err).To(BeNil())
			Expect(found.Evaluation).NotTo(BeNil())
		})

		It("returns not found for an unknown application", func() {
			_, err := svc.GetApplication(context.TODO(), uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})
})

// failingArtifactStore fails every save.
type failingArtifactStore struct{}

func (f *failingArtifactStore) Save(ctx context.Context, applicantID uuid.UUID, filename string, reader io.Reader) (string, error) {
	return "", errors.New("disk full")
}

func (f *failingArtifactStore) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	return nil, artifact.ErrNotFound
}

func (f *failingArtifactStore) Delete(ctx context.Context, location string) error {
	return nil
}

// failingApplicationStore delegates everything to the real store except the
// application writes.
type failingApplicationStore struct {
	store.Store
}

func (f *failingApplicationStore) Application() store.Application {
	return &failingApplications{}
}

type failingApplications struct {
	store.Application
}

func (f *failingApplications) Create(ctx context.Context, application model.Application) (*model.Application, error) {
	return nil, errors.New("insert failed")
}

// disconnectingApplicationStore cancels the request context as soon as the
// application insert succeeds, like a client dropping mid submission.
type disconnectingApplicationStore struct {
	store.Store
	cancel context.CancelFunc
}

func (f *disconnectingApplicationStore) Application() store.Application {
	return &disconnectingApplications{Application: f.Store.Application(), cancel: f.cancel}
}

type disconnectingApplications struct {
	store.Application
	cancel context.CancelFunc
}

func (f *disconnectingApplications) Create(ctx context.Context, application model.Application) (*model.Application, error) {
	created, err := f.Application.Create(ctx, application)
	f.cancel()
	return created, err
}

// duplicateApplicationStore simulates the unique (applicant, job) index hit.
type duplicateApplicationStore struct {
	store.Store
}

func (f *duplicateApplicationStore) Application() store.Application {
	return &duplicateApplications{}
}

type duplicateApplications struct {
	store.Application
}

func (f *duplicateApplications) Create(ctx context.Context, application model.Application) (*model.Application, error) {
	return nil, store.ErrDuplicateKey
}

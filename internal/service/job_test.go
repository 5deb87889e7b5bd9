package service_test

import (
	"context"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/talentwire/intake-api/internal/service"
	"github.com/talentwire/intake-api/internal/service/mappers"
	"github.com/talentwire/intake-api/internal/store"
	"github.com/talentwire/intake-api/internal/store/model"
	"gorm.io/gorm"
)

var _ = Describe("job service", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		svc    *service.JobService
	)

	BeforeAll(func() {
		s, gormdb = newTestDB()
		svc = service.NewJobService(s)
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE from jobs;")
	})

	Context("create", func() {
		It("creates a job with deduplicated skills", func() {
			job, err := svc.CreateJob(context.TODO(), mappers.JobCreateForm{
				Title:            "Backend Engineer",
				Description:      "Go microservices",
				KeySkills:        []string{"go", "Go ", "go", "postgresql"},
				AdditionalSkills: []string{"docker"},
			})
			Expect(err).To(BeNil())
			Expect(job.Status).To(Equal(model.JobStatusOpen))
			Expect(job.Openings).To(Equal(1))
			Expect(job.KeySkillList()).To(ContainElements("go", "Go", "postgresql"))
			Expect(job.AdditionalSkillList()).To(Equal([]string{"docker"}))
		})

		It("rejects a blank title", func() {
			_, err := svc.CreateJob(context.TODO(), mappers.JobCreateForm{
				Title:       "   ",
				Description: "x",
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrValidation{}))
		})

		It("rejects an unknown status", func() {
			_, err := svc.CreateJob(context.TODO(), mappers.JobCreateForm{
				Title:       "Backend Engineer",
				Description: "x",
				Status:      "paused",
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrValidation{}))
		})
	})

	Context("list", func() {
		It("lists only open jobs", func() {
			_, err := svc.CreateJob(context.TODO(), mappers.JobCreateForm{
				Title:       "Open role",
				Description: "x",
			})
			Expect(err).To(BeNil())

			_, err = svc.CreateJob(context.TODO(), mappers.JobCreateForm{
				Title:       "Closed role",
				Description: "x",
				Status:      model.JobStatusClosed,
			})
			Expect(err).To(BeNil())

			jobs, err := svc.ListOpenJobs(context.TODO())
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].Title).To(Equal("Open role"))
		})
	})

	Context("get", func() {
		It("returns not found for an unknown job", func() {
			_, err := svc.GetJob(context.TODO(), uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})
	})
})

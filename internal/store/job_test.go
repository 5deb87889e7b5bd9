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

var _ = Describe("job store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		s, gormdb = newTestDB()
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE from jobs;")
	})

	Context("create", func() {
		It("persists the skill sets", func() {
			job, err := s.Job().Create(context.TODO(), model.Job{
				ID:               uuid.New(),
				Title:            "Backend Engineer",
				Description:      "Go microservices",
				KeySkills:        "go,postgresql",
				AdditionalSkills: "docker,kubernetes",
				Status:           model.JobStatusOpen,
			})
			Expect(err).To(BeNil())

			found, err := s.Job().Get(context.TODO(), job.ID)
			Expect(err).To(BeNil())
			Expect(found.KeySkillList()).To(Equal([]string{"go", "postgresql"}))
			Expect(found.AdditionalSkillList()).To(Equal([]string{"docker", "kubernetes"}))
		})
	})

	Context("get", func() {
		It("returns record not found for an unknown id", func() {
			_, err := s.Job().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("list", func() {
		It("filters by status", func() {
			_, err := s.Job().Create(context.TODO(), model.Job{
				ID:          uuid.New(),
				Title:       "Open role",
				Description: "x",
				Status:      model.JobStatusOpen,
			})
			Expect(err).To(BeNil())

			_, err = s.Job().Create(context.TODO(), model.Job{
				ID:          uuid.New(),
				Title:       "Closed role",
				Description: "x",
				Status:      model.JobStatusClosed,
			})
			Expect(err).To(BeNil())

			jobs, err := s.Job().List(context.TODO(), store.NewJobQueryFilter().ByStatus(model.JobStatusOpen))
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].Title).To(Equal("Open role"))
		})
	})
})

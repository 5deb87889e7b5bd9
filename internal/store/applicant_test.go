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

var _ = Describe("applicant store", Ordered, func() {
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
		gormdb.Exec("DELETE from applications;")
		gormdb.Exec("DELETE from applicants;")
	})

	Context("create", func() {
		It("successfully creates an applicant", func() {
			applicant, err := s.Applicant().Create(context.TODO(), model.Applicant{
				ID:        uuid.New(),
				FirstName: "Jane",
				LastName:  "Doe",
				Email:     "jane.doe@example.com",
			})
			Expect(err).To(BeNil())
			Expect(applicant.ID).NotTo(Equal(uuid.Nil))

			found, err := s.Applicant().Get(context.TODO(), applicant.ID)
			Expect(err).To(BeNil())
			Expect(found.Email).To(Equal("jane.doe@example.com"))
		})
	})

	Context("get", func() {
		It("returns record not found for an unknown id", func() {
			_, err := s.Applicant().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("list", func() {
		It("filters by email", func() {
			for _, email := range []string{"a@example.com", "b@example.com"} {
				_, err := s.Applicant().Create(context.TODO(), model.Applicant{
					ID:        uuid.New(),
					FirstName: "Jane",
					LastName:  "Doe",
					Email:     email,
				})
				Expect(err).To(BeNil())
			}

			applicants, err := s.Applicant().List(context.TODO(), store.NewApplicantQueryFilter().ByEmail("a@example.com"))
			Expect(err).To(BeNil())
			Expect(applicants).To(HaveLen(1))
			Expect(applicants[0].Email).To(Equal("a@example.com"))
		})
	})

	Context("resume location", func() {
		It("updates the resume pointer", func() {
			applicant, err := s.Applicant().Create(context.TODO(), model.Applicant{
				ID:        uuid.New(),
				FirstName: "Jane",
				LastName:  "Doe",
				Email:     "jane@example.com",
			})
			Expect(err).To(BeNil())

			location := applicant.ID.String() + "_resume.txt"
			Expect(s.Applicant().UpdateResumeLocation(context.TODO(), applicant.ID, location)).To(Succeed())

			found, err := s.Applicant().Get(context.TODO(), applicant.ID)
			Expect(err).To(BeNil())
			Expect(found.ResumeLocation).NotTo(BeNil())
			Expect(*found.ResumeLocation).To(Equal(location))
		})

		It("fails for an unknown applicant", func() {
			err := s.Applicant().UpdateResumeLocation(context.TODO(), uuid.New(), "x_resume.txt")
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("delete", func() {
		It("hard deletes the row", func() {
			applicant, err := s.Applicant().Create(context.TODO(), model.Applicant{
				ID:        uuid.New(),
				FirstName: "Jane",
				LastName:  "Doe",
				Email:     "jane@example.com",
			})
			Expect(err).To(BeNil())

			Expect(s.Applicant().Delete(context.TODO(), applicant.ID)).To(Succeed())

			_, err = s.Applicant().Get(context.TODO(), applicant.ID)
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})

		It("is a noop for an unknown id", func() {
			Expect(s.Applicant().Delete(context.TODO(), uuid.New())).To(Succeed())
		})
	})

	Context("transaction", func() {
		It("rolls back an applicant insert", func() {
			ctx, err := s.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			applicant, err := s.Applicant().Create(ctx, model.Applicant{
				ID:        uuid.New(),
				FirstName: "Jane",
				LastName:  "Doe",
				Email:     "jane@example.com",
			})
			Expect(err).To(BeNil())

			_, err = store.Rollback(ctx)
			Expect(err).To(BeNil())

			_, err = s.Applicant().Get(context.TODO(), applicant.ID)
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})

		It("commits an applicant insert", func() {
			ctx, err := s.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			applicant, err := s.Applicant().Create(ctx, model.Applicant{
				ID:        uuid.New(),
				FirstName: "Jane",
				LastName:  "Doe",
				Email:     "jane@example.com",
			})
			Expect(err).To(BeNil())

			_, err = store.Commit(ctx)
			Expect(err).To(BeNil())

			_, err = s.Applicant().Get(context.TODO(), applicant.ID)
			Expect(err).To(BeNil())
		})
	})
})

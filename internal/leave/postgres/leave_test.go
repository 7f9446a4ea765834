package postgres

import (
	"testing"
	"time"

	"github.com/frahmantamala/attendance-management/internal/leave"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestLeaveRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "LeaveRepository Suite")
}

type SQLiteLeaveRequest struct {
	ID               int64      `gorm:"primaryKey"`
	UserID           int64      `gorm:"column:user_id;not null"`
	LeaveType        string     `gorm:"column:leave_type;not null"`
	StartDate        time.Time  `gorm:"column:start_date;not null"`
	EndDate          time.Time  `gorm:"column:end_date;not null"`
	Status           string     `gorm:"column:status;default:'pending'"`
	ManagerProfileID *int64     `gorm:"column:manager_profile_id"`
	DecidedAt        *time.Time `gorm:"column:decided_at"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (SQLiteLeaveRequest) TableName() string {
	return "leave_requests"
}

var _ = Describe("LeaveRepository", func() {
	var (
		db   *gorm.DB
		repo leave.Repository
	)

	managerID := int64(10)

	mustCreate := func(userID int64, manager *int64) *leave.Request {
		req := &leave.Request{
			UserID:           userID,
			LeaveType:        leave.LeaveTypeAnnual,
			StartDate:        time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
			EndDate:          time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC),
			Status:           leave.StatusPending,
			ManagerProfileID: manager,
		}
		Expect(repo.Create(req)).To(Succeed())
		return req
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteLeaveRequest{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewLeaveRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create", func() {
		It("should create a request and backfill the ID", func() {
			req := mustCreate(1, &managerID)
			Expect(req.ID).To(BeNumerically(">", 0))
		})
	})

	Describe("GetPendingByManager", func() {
		It("should return only pending requests addressed to the manager", func() {
			mustCreate(1, &managerID)
			mine := mustCreate(2, &managerID)

			otherManager := int64(99)
			mustCreate(3, &otherManager)
			mustCreate(4, nil)

			Expect(repo.UpdateDecision(mine.ID, leave.StatusApproved, time.Now())).To(Succeed())

			pending, err := repo.GetPendingByManager(managerID, 31, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(pending).To(HaveLen(1))
			Expect(pending[0].UserID).To(Equal(int64(1)))
		})
	})

	Describe("GetForManager", func() {
		It("should load a request addressed to the manager", func() {
			req := mustCreate(1, &managerID)

			found, err := repo.GetForManager(req.ID, managerID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.ID).To(Equal(req.ID))
		})

		It("should report not found for a different manager", func() {
			req := mustCreate(1, &managerID)

			_, err := repo.GetForManager(req.ID, 999)
			Expect(err).To(Equal(leave.ErrLeaveNotFound))
		})

		It("should report not found for an unaddressed request", func() {
			req := mustCreate(1, nil)

			_, err := repo.GetForManager(req.ID, managerID)
			Expect(err).To(Equal(leave.ErrLeaveNotFound))
		})
	})

	Describe("UpdateDecision", func() {
		It("should persist the status and decision time", func() {
			req := mustCreate(1, &managerID)
			decidedAt := time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC)

			Expect(repo.UpdateDecision(req.ID, leave.StatusDenied, decidedAt)).To(Succeed())

			found, err := repo.GetForManager(req.ID, managerID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Status).To(Equal(leave.StatusDenied))
			Expect(found.DecidedAt).NotTo(BeNil())
		})
	})
})

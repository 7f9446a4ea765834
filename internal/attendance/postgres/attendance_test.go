package postgres

import (
	"testing"
	"time"

	"github.com/frahmantamala/attendance-management/internal/attendance"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestAttendanceRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AttendanceRepository Suite")
}

type SQLiteAttendanceRecord struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_attendance_user_date"`
	Date      time.Time `gorm:"column:date;not null;uniqueIndex:idx_attendance_user_date"`
	WorkType  string    `gorm:"column:work_type;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SQLiteAttendanceRecord) TableName() string {
	return "attendance_records"
}

var _ = Describe("AttendanceRepository", func() {
	var (
		db   *gorm.DB
		repo attendance.Repository
	)

	mustCreate := func(userID int64, date string, workType string) *attendance.Record {
		parsed, err := time.ParseInLocation(attendance.DateLayout, date, time.UTC)
		Expect(err).NotTo(HaveOccurred())

		rec := &attendance.Record{
			UserID:   userID,
			Date:     parsed,
			WorkType: workType,
		}
		Expect(repo.Create(rec)).To(Succeed())
		return rec
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteAttendanceRecord{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewAttendanceRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create", func() {
		It("should create a record and backfill the ID", func() {
			rec := mustCreate(1, "2026-03-16", attendance.WorkTypeOffice)

			Expect(rec.ID).To(BeNumerically(">", 0))
		})

		It("should reject a second record for the same user and date", func() {
			mustCreate(1, "2026-03-16", attendance.WorkTypeOffice)

			parsed, _ := time.ParseInLocation(attendance.DateLayout, "2026-03-16", time.UTC)
			err := repo.Create(&attendance.Record{
				UserID:   1,
				Date:     parsed,
				WorkType: attendance.WorkTypeHome,
			})
			Expect(err).To(HaveOccurred())
		})

		It("should allow the same date for different users", func() {
			mustCreate(1, "2026-03-16", attendance.WorkTypeOffice)
			mustCreate(2, "2026-03-16", attendance.WorkTypeHome)
		})
	})

	Describe("GetByUserID", func() {
		It("should return records ordered by date descending", func() {
			mustCreate(1, "2026-03-14", attendance.WorkTypeOffice)
			mustCreate(1, "2026-03-16", attendance.WorkTypeHome)
			mustCreate(1, "2026-03-15", attendance.WorkTypeTravel)
			mustCreate(2, "2026-03-16", attendance.WorkTypeOffice)

			records, err := repo.GetByUserID(1, 31, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(3))
			Expect(records[0].Date.Format(attendance.DateLayout)).To(Equal("2026-03-16"))
			Expect(records[2].Date.Format(attendance.DateLayout)).To(Equal("2026-03-14"))
		})

		It("should respect limit and offset", func() {
			mustCreate(1, "2026-03-14", attendance.WorkTypeOffice)
			mustCreate(1, "2026-03-15", attendance.WorkTypeOffice)
			mustCreate(1, "2026-03-16", attendance.WorkTypeOffice)

			records, err := repo.GetByUserID(1, 2, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
			Expect(records[0].Date.Format(attendance.DateLayout)).To(Equal("2026-03-15"))
		})
	})

	Describe("DeleteOwned", func() {
		It("should delete the owner's record", func() {
			rec := mustCreate(1, "2026-03-16", attendance.WorkTypeOffice)

			deleted, err := repo.DeleteOwned(rec.ID, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())

			_, err = repo.GetByID(rec.ID)
			Expect(err).To(Equal(attendance.ErrRecordNotFound))
		})

		It("should not delete another user's record", func() {
			rec := mustCreate(1, "2026-03-16", attendance.WorkTypeOffice)

			deleted, err := repo.DeleteOwned(rec.ID, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeFalse())

			_, err = repo.GetByID(rec.ID)
			Expect(err).NotTo(HaveOccurred())
		})
	})
})

package postgres

import (
	"github.com/frahmantamala/attendance-management/internal/attendance"
	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
	"gorm.io/gorm"
)

// AttendanceRepository implements the attendance.Repository interface using GORM
type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.Repository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) Create(rec *attendance.Record) error {
	record := attendance.ToDataModel(rec)
	if err := r.db.Create(record).Error; err != nil {
		return err
	}
	rec.ID = record.ID
	rec.CreatedAt = record.CreatedAt
	rec.UpdatedAt = record.UpdatedAt
	return nil
}

func (r *AttendanceRepository) GetByID(id int64) (*attendance.Record, error) {
	var record attendanceDatamodel.Record
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, attendance.ErrRecordNotFound
		}
		return nil, err
	}
	return attendance.FromDataModel(&record), nil
}

func (r *AttendanceRepository) GetByUserAndDate(userID int64, date string) (*attendance.Record, error) {
	var record attendanceDatamodel.Record
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, attendance.ErrRecordNotFound
		}
		return nil, err
	}
	return attendance.FromDataModel(&record), nil
}

func (r *AttendanceRepository) GetByUserID(userID int64, limit, offset int) ([]*attendance.Record, error) {
	var records []*attendanceDatamodel.Record
	err := r.db.Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return attendance.FromDataModelSlice(records), nil
}

// DeleteOwned deletes the record only when it belongs to userID. Returns
// whether a row was actually removed.
func (r *AttendanceRepository) DeleteOwned(id, userID int64) (bool, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&attendanceDatamodel.Record{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

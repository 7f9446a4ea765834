package attendance

import "time"

// Record is one user's work status for one calendar date. The composite
// unique index backs the at-most-one-record-per-user-per-date invariant.
type Record struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_attendance_user_date"`
	Date      time.Time `json:"date" gorm:"column:date;type:date;not null;uniqueIndex:idx_attendance_user_date"`
	WorkType  string    `json:"work_type" gorm:"column:work_type;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Record) TableName() string {
	return "attendance_records"
}

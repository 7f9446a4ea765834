package leave

import "time"

// Request is the persistence model for a leave request. ManagerProfileID
// points at the profile of the manager who must decide it.
type Request struct {
	ID               int64      `json:"id" gorm:"primaryKey"`
	UserID           int64      `json:"user_id" gorm:"column:user_id;not null;index"`
	LeaveType        string     `json:"leave_type" gorm:"column:leave_type;not null"`
	StartDate        time.Time  `json:"start_date" gorm:"column:start_date;type:date;not null"`
	EndDate          time.Time  `json:"end_date" gorm:"column:end_date;type:date;not null"`
	Status           string     `json:"status" gorm:"column:status;default:pending;index"`
	ManagerProfileID *int64     `json:"manager_profile_id,omitempty" gorm:"column:manager_profile_id;index"`
	DecidedAt        *time.Time `json:"decided_at,omitempty" gorm:"column:decided_at"`
	CreatedAt        time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Request) TableName() string {
	return "leave_requests"
}

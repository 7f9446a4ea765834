package postgres

import (
	"time"

	leaveDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/leave"
	"github.com/frahmantamala/attendance-management/internal/leave"
	"gorm.io/gorm"
)

// LeaveRepository implements the leave.Repository interface using GORM
type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) leave.Repository {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) Create(req *leave.Request) error {
	request := leave.ToDataModel(req)
	if err := r.db.Create(request).Error; err != nil {
		return err
	}
	req.ID = request.ID
	req.CreatedAt = request.CreatedAt
	req.UpdatedAt = request.UpdatedAt
	return nil
}

func (r *LeaveRepository) GetByUserID(userID int64, limit, offset int) ([]*leave.Request, error) {
	var requests []*leaveDatamodel.Request
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return leave.FromDataModelSlice(requests), nil
}

func (r *LeaveRepository) GetPendingByManager(managerProfileID int64, limit, offset int) ([]*leave.Request, error) {
	var requests []*leaveDatamodel.Request
	err := r.db.Where("manager_profile_id = ? AND status = ?", managerProfileID, leave.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return leave.FromDataModelSlice(requests), nil
}

// GetForManager loads a request only when it is addressed to the given
// manager profile. Anything else is not found.
func (r *LeaveRepository) GetForManager(id, managerProfileID int64) (*leave.Request, error) {
	var request leaveDatamodel.Request
	err := r.db.Where("id = ? AND manager_profile_id = ?", id, managerProfileID).
		First(&request).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, leave.ErrLeaveNotFound
		}
		return nil, err
	}
	return leave.FromDataModel(&request), nil
}

func (r *LeaveRepository) UpdateDecision(id int64, status string, decidedAt time.Time) error {
	return r.db.Model(&leaveDatamodel.Request{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"decided_at": decidedAt,
			"updated_at": decidedAt,
		}).Error
}

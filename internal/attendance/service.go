package attendance

import (
	"log/slog"

	"github.com/jonboulle/clockwork"
)

// Repository defines the data access methods for attendance records.
type Repository interface {
	Create(record *Record) error
	GetByID(id int64) (*Record, error)
	GetByUserAndDate(userID int64, date string) (*Record, error)
	GetByUserID(userID int64, limit, offset int) ([]*Record, error)
	DeleteOwned(id, userID int64) (bool, error)
}

// Service handles attendance business logic.
type Service struct {
	repo   Repository
	clock  clockwork.Clock
	logger *slog.Logger
}

func NewService(repo Repository, clock clockwork.Clock, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		clock:  clock,
		logger: logger,
	}
}

// CreateRecord logs a work status for a single date. At most one record per
// user per date; a second attempt is rejected before it hits the unique
// constraint.
func (s *Service) CreateRecord(userID int64, dto CreateRecordDTO) (*Record, error) {
	date, err := dto.Validate(s.clock.Now())
	if err != nil {
		s.logger.Error("attendance validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	if existing, err := s.repo.GetByUserAndDate(userID, date.Format(DateLayout)); err == nil && existing != nil {
		s.logger.Warn("duplicate attendance record rejected",
			"user_id", userID,
			"date", dto.Date)
		return nil, ErrDuplicateRecord
	}

	record := &Record{
		UserID:   userID,
		Date:     date,
		WorkType: dto.WorkType,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create attendance record", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("attendance record created",
		"record_id", record.ID,
		"user_id", userID,
		"date", dto.Date,
		"work_type", dto.WorkType)

	return record, nil
}

// GetUserRecords retrieves attendance records for a specific user.
func (s *Service) GetUserRecords(userID int64, limit, offset int) ([]*Record, error) {
	records, err := s.repo.GetByUserID(userID, limit, offset)
	if err != nil {
		s.logger.Error("failed to get attendance records", "error", err, "user_id", userID)
		return nil, err
	}
	return records, nil
}

// DeleteRecord removes a record. The query is owner-scoped, so someone
// else's record simply isn't found.
func (s *Service) DeleteRecord(id, userID int64) error {
	deleted, err := s.repo.DeleteOwned(id, userID)
	if err != nil {
		s.logger.Error("failed to delete attendance record", "error", err, "record_id", id, "user_id", userID)
		return err
	}
	if !deleted {
		return ErrRecordNotFound
	}

	s.logger.Info("attendance record deleted", "record_id", id, "user_id", userID)
	return nil
}

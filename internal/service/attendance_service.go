package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/classtrack/internal/models"
	appErrors "github.com/noah-isme/classtrack/pkg/errors"
	"github.com/noah-isme/classtrack/pkg/validate"
)

type attendanceRepository interface {
	Mark(ctx context.Context, studentID int64, date time.Time, status models.AttendanceStatus, notes string) error
	ListByDate(ctx context.Context, date time.Time) ([]models.Attendance, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.Attendance, error)
}

// AttendanceService records daily attendance marks.
type AttendanceService struct {
	repo   attendanceRepository
	logger *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, logger: logger}
}

// Mark records (or overwrites) the attendance mark for one student on the
// calendar day the timestamp falls in. Time-of-day is discarded.
func (s *AttendanceService) Mark(ctx context.Context, studentID int64, date time.Time, status models.AttendanceStatus, notes string) error {
	if studentID <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "invalid student id")
	}
	if date.IsZero() {
		return appErrors.Clone(appErrors.ErrValidation, "invalid date")
	}
	if err := s.repo.Mark(ctx, studentID, validate.DateOnly(date), status, notes); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to mark attendance")
	}
	return nil
}

// ListByDate returns every mark recorded for the given calendar day.
func (s *AttendanceService) ListByDate(ctx context.Context, date time.Time) ([]models.Attendance, error) {
	marks, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to list attendance")
	}
	return marks, nil
}

// ListByStudent returns a student's marks, most recent day first.
func (s *AttendanceService) ListByStudent(ctx context.Context, studentID int64) ([]models.Attendance, error) {
	if studentID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid student id")
	}
	marks, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to list attendance")
	}
	return marks, nil
}

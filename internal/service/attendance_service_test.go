package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classtrack/internal/models"
	appErrors "github.com/noah-isme/classtrack/pkg/errors"
)

type mockAttendanceRepo struct {
	markedStudent int64
	markedDate    time.Time
	markedStatus  models.AttendanceStatus
}

func (m *mockAttendanceRepo) Mark(ctx context.Context, studentID int64, date time.Time, status models.AttendanceStatus, notes string) error {
	m.markedStudent = studentID
	m.markedDate = date
	m.markedStatus = status
	return nil
}

func (m *mockAttendanceRepo) ListByDate(ctx context.Context, date time.Time) ([]models.Attendance, error) {
	return nil, nil
}

func (m *mockAttendanceRepo) ListByStudent(ctx context.Context, studentID int64) ([]models.Attendance, error) {
	return nil, nil
}

func TestAttendanceServiceMark(t *testing.T) {
	repo := &mockAttendanceRepo{}
	svc := NewAttendanceService(repo, nil)

	stamp := time.Date(2024, time.May, 1, 14, 30, 45, 0, time.Local)
	require.NoError(t, svc.Mark(context.Background(), 3, stamp, models.AttendanceLate, "traffic"))

	assert.Equal(t, int64(3), repo.markedStudent)
	assert.Equal(t, models.AttendanceLate, repo.markedStatus)
	// the mark lands on the calendar day, never a point in time
	assert.Equal(t, 0, repo.markedDate.Hour())
	assert.Equal(t, 1, repo.markedDate.Day())
}

func TestAttendanceServiceMarkRejectsBadInput(t *testing.T) {
	svc := NewAttendanceService(&mockAttendanceRepo{}, nil)
	ctx := context.Background()

	err := svc.Mark(ctx, 0, time.Now(), models.AttendancePresent, "")
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	err = svc.Mark(ctx, 3, time.Time{}, models.AttendancePresent, "")
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/classtrack/internal/models"
	appErrors "github.com/noah-isme/classtrack/pkg/errors"
)

type reportRepository interface {
	ClassAttendanceSummary(ctx context.Context, classID int64) ([]models.AttendanceSummary, error)
	ClassAssignmentCompletion(ctx context.Context, classID int64) ([]models.AssignmentCompletion, error)
	StudentAttendanceTotals(ctx context.Context, studentID int64) (total, present, absent, late int, err error)
	StudentAssignmentTotals(ctx context.Context, studentID, classID int64) (total, completed int, err error)
}

type reportStudentRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	CountByClass(ctx context.Context, classID int64) (int, error)
}

// ReportService builds aggregated attendance and completion reports.
type ReportService struct {
	reports  reportRepository
	students reportStudentRepository
	logger   *zap.Logger
}

// NewReportService constructs the report service.
func NewReportService(reports reportRepository, students reportStudentRepository, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{reports: reports, students: students, logger: logger}
}

// ClassAttendance returns one summary row per student in roll-number order.
// A student with no marked days gets a nil Percentage; late days count as
// attended.
func (s *ReportService) ClassAttendance(ctx context.Context, classID int64) ([]models.AttendanceSummary, error) {
	if classID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid class id")
	}
	rows, err := s.reports.ClassAttendanceSummary(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to build attendance report")
	}
	for i := range rows {
		if rows[i].TotalDays > 0 {
			pct := float64(rows[i].Present+rows[i].Late) / float64(rows[i].TotalDays) * 100
			rows[i].Percentage = &pct
		}
	}
	return rows, nil
}

// ClassAssignmentCompletion returns one row per assignment in title order.
// An assignment in a class with no students gets a nil Percentage.
func (s *ReportService) ClassAssignmentCompletion(ctx context.Context, classID int64) ([]models.AssignmentCompletion, error) {
	if classID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid class id")
	}
	totalStudents, err := s.students.CountByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to count students")
	}
	rows, err := s.reports.ClassAssignmentCompletion(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to build completion report")
	}
	for i := range rows {
		rows[i].TotalStudents = totalStudents
		rows[i].Pending = totalStudents - rows[i].Completed
		if totalStudents > 0 {
			pct := float64(rows[i].Completed) / float64(totalStudents) * 100
			rows[i].Percentage = &pct
		}
	}
	return rows, nil
}

// StudentReport combines one student's attendance totals and assignment
// completion. Percentages default to 0 when no data exists.
func (s *ReportService) StudentReport(ctx context.Context, studentID int64) (*models.StudentReport, error) {
	if studentID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid student id")
	}
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to load student")
	}

	report := &models.StudentReport{Student: *student}

	total, present, absent, late, err := s.reports.StudentAttendanceTotals(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to load attendance totals")
	}
	report.AttendanceTotal = total
	report.AttendancePresent = present
	report.AttendanceAbsent = absent
	report.AttendanceLate = late
	if total > 0 {
		report.AttendancePercentage = float64(present+late) / float64(total) * 100
	}

	assignedTotal, completed, err := s.reports.StudentAssignmentTotals(ctx, studentID, student.ClassID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to load assignment totals")
	}
	report.AssignmentsTotal = assignedTotal
	report.AssignmentsCompleted = completed
	report.AssignmentsPending = assignedTotal - completed
	if assignedTotal > 0 {
		report.CompletionPercentage = float64(completed) / float64(assignedTotal) * 100
	}

	return report, nil
}

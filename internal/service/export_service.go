package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/classtrack/internal/models"
	appErrors "github.com/noah-isme/classtrack/pkg/errors"
	"github.com/noah-isme/classtrack/pkg/export"
)

// ExportFormat selects the file format for exported reports.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

type reportProvider interface {
	ClassAttendance(ctx context.Context, classID int64) ([]models.AttendanceSummary, error)
	ClassAssignmentCompletion(ctx context.Context, classID int64) ([]models.AssignmentCompletion, error)
	StudentReport(ctx context.Context, studentID int64) (*models.StudentReport, error)
}

type exportStorage interface {
	Save(filename string, data []byte) (string, error)
}

type renderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportService writes report datasets to CSV or PDF files.
type ExportService struct {
	reports reportProvider
	store   exportStorage
	csv     renderer
	pdf     renderer
	logger  *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(reports reportProvider, store exportStorage, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		reports: reports,
		store:   store,
		csv:     export.NewCSVRenderer(),
		pdf:     export.NewPDFRenderer(),
		logger:  logger,
	}
}

// ExportClassAttendance writes a class attendance report and returns the
// saved file's path.
func (s *ExportService) ExportClassAttendance(ctx context.Context, classID int64, format ExportFormat) (string, error) {
	rows, err := s.reports.ClassAttendance(ctx, classID)
	if err != nil {
		return "", err
	}
	data := export.Dataset{
		Title:   "Class Attendance Report",
		Headers: []string{"Roll Number", "Name", "Days Marked", "Present", "Absent", "Late", "Attendance %"},
	}
	for _, row := range rows {
		data.Rows = append(data.Rows, []string{
			row.RollNumber,
			row.Name,
			strconv.Itoa(row.TotalDays),
			strconv.Itoa(row.Present),
			strconv.Itoa(row.Absent),
			strconv.Itoa(row.Late),
			formatPercentage(row.Percentage),
		})
	}
	return s.write(fmt.Sprintf("attendance-%d", classID), data, format)
}

// ExportClassAssignmentCompletion writes a class assignment completion
// report and returns the saved file's path.
func (s *ExportService) ExportClassAssignmentCompletion(ctx context.Context, classID int64, format ExportFormat) (string, error) {
	rows, err := s.reports.ClassAssignmentCompletion(ctx, classID)
	if err != nil {
		return "", err
	}
	data := export.Dataset{
		Title:   "Assignment Completion Report",
		Headers: []string{"Title", "Subject", "Students", "Completed", "Pending", "Completion %"},
	}
	for _, row := range rows {
		data.Rows = append(data.Rows, []string{
			row.Title,
			row.Subject,
			strconv.Itoa(row.TotalStudents),
			strconv.Itoa(row.Completed),
			strconv.Itoa(row.Pending),
			formatPercentage(row.Percentage),
		})
	}
	return s.write(fmt.Sprintf("completion-%d", classID), data, format)
}

// ExportStudentReport writes an individual student report and returns the
// saved file's path.
func (s *ExportService) ExportStudentReport(ctx context.Context, studentID int64, format ExportFormat) (string, error) {
	report, err := s.reports.StudentReport(ctx, studentID)
	if err != nil {
		return "", err
	}
	data := export.Dataset{
		Title:   fmt.Sprintf("Student Report: %s (%s)", report.Student.Name, report.Student.RollNumber),
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Days Marked", strconv.Itoa(report.AttendanceTotal)},
			{"Present", strconv.Itoa(report.AttendancePresent)},
			{"Absent", strconv.Itoa(report.AttendanceAbsent)},
			{"Late", strconv.Itoa(report.AttendanceLate)},
			{"Attendance %", fmt.Sprintf("%.1f", report.AttendancePercentage)},
			{"Assignments", strconv.Itoa(report.AssignmentsTotal)},
			{"Completed", strconv.Itoa(report.AssignmentsCompleted)},
			{"Pending", strconv.Itoa(report.AssignmentsPending)},
			{"Completion %", fmt.Sprintf("%.1f", report.CompletionPercentage)},
		},
	}
	return s.write(fmt.Sprintf("student-%d", studentID), data, format)
}

func (s *ExportService) write(prefix string, data export.Dataset, format ExportFormat) (string, error) {
	var r renderer
	switch format {
	case FormatCSV:
		r = s.csv
	case FormatPDF:
		r = s.pdf
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	payload, err := r.Render(data)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to render report")
	}
	filename := fmt.Sprintf("%s-%s.%s", prefix, uuid.NewString(), format)
	path, err := s.store.Save(filename, payload)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrStore.Code, "failed to save report file")
	}
	s.logger.Info("report exported", zap.String("path", path))
	return path, nil
}

// formatPercentage renders a nullable percentage, "N/A" when absent.
func formatPercentage(pct *float64) string {
	if pct == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *pct)
}

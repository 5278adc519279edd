package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classtrack/internal/models"
	"github.com/noah-isme/classtrack/pkg/storage"
)

func newQueueFixture(t *testing.T, provider *mockReportProvider, cfg ExportQueueConfig) (*ExportQueue, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	return NewExportQueue(NewExportService(provider, store, nil), cfg, nil), dir
}

func TestExportQueueRendersInBackground(t *testing.T) {
	pct := 80.0
	provider := &mockReportProvider{
		attendance: []models.AttendanceSummary{
			{RollNumber: "R-001", Name: "Ada", TotalDays: 10, Present: 6, Absent: 2, Late: 2, Percentage: &pct},
		},
	}
	queue, dir := newQueueFixture(t, provider, ExportQueueConfig{Workers: 2})
	queue.Start(context.Background())
	defer queue.Stop()

	require.NoError(t, queue.Enqueue(ExportRequest{Kind: ExportAttendance, TargetID: 1, Format: FormatCSV}))
	require.NoError(t, queue.Enqueue(ExportRequest{Kind: ExportAttendance, TargetID: 1, Format: FormatCSV}))
	queue.Drain()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, ".csv", filepath.Ext(entry.Name()))
	}
}

func TestExportQueueDrainCoversBatch(t *testing.T) {
	provider := &mockReportProvider{
		completions: []models.AssignmentCompletion{{Title: "Essay"}},
		student:     &models.StudentReport{Student: models.Student{Name: "Ada", RollNumber: "R-001"}},
	}
	queue, dir := newQueueFixture(t, provider, ExportQueueConfig{Workers: 2})
	queue.Start(context.Background())
	defer queue.Stop()

	require.NoError(t, queue.Enqueue(ExportRequest{Kind: ExportAttendance, TargetID: 1, Format: FormatCSV}))
	require.NoError(t, queue.Enqueue(ExportRequest{Kind: ExportCompletion, TargetID: 1, Format: FormatCSV}))
	require.NoError(t, queue.Enqueue(ExportRequest{Kind: ExportStudent, TargetID: 2, Format: FormatCSV}))
	queue.Drain()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestExportQueueDrainReturnsAfterRetriesExhausted(t *testing.T) {
	provider := &mockReportProvider{attendanceErr: errors.New("store unavailable")}
	queue, dir := newQueueFixture(t, provider, ExportQueueConfig{
		Workers:    1,
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
	})
	queue.Start(context.Background())
	defer queue.Stop()

	require.NoError(t, queue.Enqueue(ExportRequest{Kind: ExportAttendance, TargetID: 1, Format: FormatCSV}))
	queue.Drain()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportQueueRejectsWhenStopped(t *testing.T) {
	queue := NewExportQueue(NewExportService(&mockReportProvider{}, nil, nil), ExportQueueConfig{}, nil)

	err := queue.Enqueue(ExportRequest{Kind: ExportAttendance, TargetID: 1, Format: FormatCSV})
	require.Error(t, err)
}

package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/uai-sistemas/planning-api/internal/models"
)

type conflictListerStub struct {
	conflicts []models.ScheduleConflict
}

func (s *conflictListerStub) List(ctx context.Context, semesterID string) ([]models.ScheduleConflict, error) {
	return s.conflicts, nil
}

func TestExportServiceConflictsCSV(t *testing.T) {
	detected := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	lister := &conflictListerStub{conflicts: []models.ScheduleConflict{
		{
			ID:             "c-1",
			SemesterID:     "2026-1",
			ConflictType:   models.ConflictTeacherOverlap,
			Severity:       models.SeverityCritical,
			TeacherID:      strPtr("teacher-1"),
			MeetingAID:     "m-1",
			MeetingBID:     "m-2",
			OverlapMinutes: 45,
			DetectedAt:     detected,
		},
	}}
	svc := NewExportService(lister, zap.NewNop())

	payload, filename, err := svc.ExportConflictsCSV(context.Background(), "2026-1")
	require.NoError(t, err)
	assert.Equal(t, "conflicts_2026-1.csv", filename)

	lines := bytes.Split(bytes.TrimSpace(payload), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "Severity")
	assert.Contains(t, string(lines[1]), "TEACHER_OVERLAP")
	assert.Contains(t, string(lines[1]), "teacher-1")
	assert.Contains(t, string(lines[1]), "45")
}

func TestExportServiceConflictsPDF(t *testing.T) {
	lister := &conflictListerStub{conflicts: []models.ScheduleConflict{
		{
			ID:             "c-1",
			SemesterID:     "2026-1",
			ConflictType:   models.ConflictClassroomOverlap,
			Severity:       models.SeverityWarning,
			ClassroomID:    strPtr("room-1"),
			MeetingAID:     "m-1",
			MeetingBID:     "m-2",
			OverlapMinutes: 15,
			DetectedAt:     time.Now().UTC(),
		},
	}}
	svc := NewExportService(lister, zap.NewNop())

	payload, filename, err := svc.ExportConflictsPDF(context.Background(), "2026-1")
	require.NoError(t, err)
	assert.Equal(t, "conflicts_2026-1.pdf", filename)
	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
}

func TestExportServiceEmptySemesterStillRenders(t *testing.T) {
	svc := NewExportService(&conflictListerStub{}, zap.NewNop())

	payload, _, err := svc.ExportConflictsCSV(context.Background(), "2026-9")
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(payload), []byte("\n"))
	assert.Len(t, lines, 1)
}

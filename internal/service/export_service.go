package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/uai-sistemas/planning-api/internal/models"
	appErrors "github.com/uai-sistemas/planning-api/pkg/errors"
	"github.com/uai-sistemas/planning-api/pkg/export"
)

type conflictLister interface {
	List(ctx context.Context, semesterID string) ([]models.ScheduleConflict, error)
}

var conflictExportHeaders = []string{
	"Semester", "Type", "Severity", "Teacher", "Classroom", "Group",
	"Offering", "Meeting A", "Meeting B", "Overlap (min)", "Detected At",
}

// ExportService renders a semester's conflicts as CSV or PDF downloads.
type ExportService struct {
	conflicts conflictLister
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	logger    *zap.Logger
}

// NewExportService creates an export service.
func NewExportService(conflicts conflictLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		conflicts: conflicts,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
	}
}

// ExportConflictsCSV returns the semester's conflicts as CSV bytes.
func (s *ExportService) ExportConflictsCSV(ctx context.Context, semesterID string) ([]byte, string, error) {
	data, err := s.dataset(ctx, semesterID)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.csv.Render(*data)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render conflicts csv")
	}
	return payload, fmt.Sprintf("conflicts_%s.csv", semesterID), nil
}

// ExportConflictsPDF returns the semester's conflicts as PDF bytes.
func (s *ExportService) ExportConflictsPDF(ctx context.Context, semesterID string) ([]byte, string, error) {
	data, err := s.dataset(ctx, semesterID)
	if err != nil {
		return nil, "", err
	}
	title := fmt.Sprintf("Schedule Conflicts - Semester %s", semesterID)
	payload, err := s.pdf.Render(*data, title)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render conflicts pdf")
	}
	return payload, fmt.Sprintf("conflicts_%s.pdf", semesterID), nil
}

func (s *ExportService) dataset(ctx context.Context, semesterID string) (*export.Dataset, error) {
	conflicts, err := s.conflicts.List(ctx, semesterID)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]string, 0, len(conflicts))
	for _, c := range conflicts {
		rows = append(rows, map[string]string{
			"Semester":      c.SemesterID,
			"Type":          string(c.ConflictType),
			"Severity":      string(c.Severity),
			"Teacher":       deref(c.TeacherID),
			"Classroom":     deref(c.ClassroomID),
			"Group":         deref(c.ClassGroupID),
			"Offering":      deref(c.ClassOfferingID),
			"Meeting A":     c.MeetingAID,
			"Meeting B":     c.MeetingBID,
			"Overlap (min)": strconv.Itoa(c.OverlapMinutes),
			"Detected At":   c.DetectedAt.UTC().Format(time.RFC3339),
		})
	}
	return &export.Dataset{Headers: conflictExportHeaders, Rows: rows}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

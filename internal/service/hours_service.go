package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/uai-sistemas/planning-api/internal/models"
	appErrors "github.com/uai-sistemas/planning-api/pkg/errors"
)

type hoursOfferingReader interface {
	FindByID(ctx context.Context, id string) (*models.ClassOffering, error)
}

type hoursRequirementReader interface {
	FindByCourseSection(ctx context.Context, courseSectionID string) (*models.CourseSectionHourRequirement, error)
}

type hoursGroupReader interface {
	List(ctx context.Context, classOfferingID string) ([]models.ClassGroup, error)
}

type hoursMeetingReader interface {
	List(ctx context.Context, classOfferingID string) ([]models.ClassMeeting, error)
}

// HoursService validates an offering's planned contact minutes against its
// course section's hour requirement. Read-only; safe to run concurrently.
type HoursService struct {
	offerings    hoursOfferingReader
	requirements hoursRequirementReader
	groups       hoursGroupReader
	meetings     hoursMeetingReader
	logger       *zap.Logger
}

// NewHoursService creates a validator instance.
func NewHoursService(
	offerings hoursOfferingReader,
	requirements hoursRequirementReader,
	groups hoursGroupReader,
	meetings hoursMeetingReader,
	logger *zap.Logger,
) *HoursService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HoursService{
		offerings:    offerings,
		requirements: requirements,
		groups:       groups,
		meetings:     meetings,
		logger:       logger,
	}
}

// Validate computes planned vs required minutes per group type. A missing
// offering or hour requirement is a NotFound error, never a zero report.
func (s *HoursService) Validate(ctx context.Context, classOfferingID string) (*models.HourComplianceReport, error) {
	offering, err := s.offerings.FindByID(ctx, classOfferingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class offering not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class offering")
	}

	requirement, err := s.requirements.FindByCourseSection(ctx, offering.CourseSectionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "hour requirement not found for course section")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load hour requirement")
	}

	groups, err := s.groups.List(ctx, classOfferingID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class groups")
	}
	groupTypes := make(map[string]models.GroupType, len(groups))
	for _, group := range groups {
		groupTypes[group.ID] = group.GroupType
	}

	meetings, err := s.meetings.List(ctx, classOfferingID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class meetings")
	}

	var planned models.HourBreakdown
	for _, meeting := range meetings {
		groupType, ok := groupTypes[meeting.ClassGroupID]
		if !ok {
			// Orphaned meeting; data integrity is surfaced elsewhere.
			continue
		}
		minutes := meetingMinutes(meeting)
		switch groupType {
		case models.GroupTypeTheory:
			planned.Theory += minutes
		case models.GroupTypePractice:
			planned.Practice += minutes
		case models.GroupTypeLab:
			planned.Lab += minutes
		}
	}

	expected := models.HourBreakdown{
		Theory:   requirement.TheoryHoursAcademic * requirement.AcademicMinutesPerHour,
		Practice: requirement.PracticeHoursAcademic * requirement.AcademicMinutesPerHour,
		Lab:      requirement.LabHoursAcademic * requirement.AcademicMinutesPerHour,
	}
	diff := models.HourBreakdown{
		Theory:   planned.Theory - expected.Theory,
		Practice: planned.Practice - expected.Practice,
		Lab:      planned.Lab - expected.Lab,
	}

	return &models.HourComplianceReport{
		ClassOfferingID: classOfferingID,
		CourseSectionID: offering.CourseSectionID,
		CourseFormat:    requirement.CourseFormat,
		Expected:        expected,
		Planned:         planned,
		Diff:            diff,
		Compliant:       diff.Theory >= 0 && diff.Practice >= 0 && diff.Lab >= 0,
		ComputedAt:      time.Now().UTC(),
	}, nil
}

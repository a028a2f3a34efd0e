package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// ConflictType discriminates the dimension along which two meetings collide.
type ConflictType string

const (
	ConflictTeacherOverlap   ConflictType = "TEACHER_OVERLAP"
	ConflictClassroomOverlap ConflictType = "CLASSROOM_OVERLAP"
	ConflictGroupOverlap     ConflictType = "GROUP_OVERLAP"
	ConflictSectionOverlap   ConflictType = "SECTION_OVERLAP"
)

// ConflictSeverity grades how operationally serious an overlap is, driven
// solely by its duration in minutes.
type ConflictSeverity string

const (
	SeverityInfo     ConflictSeverity = "INFO"
	SeverityWarning  ConflictSeverity = "WARNING"
	SeverityCritical ConflictSeverity = "CRITICAL"
)

// ScheduleConflict is one detected collision between two meetings. Exactly
// one of the four reference columns is populated, matching ConflictType.
type ScheduleConflict struct {
	ID              string           `db:"id" json:"id"`
	SemesterID      string           `db:"semester_id" json:"semester_id"`
	ConflictType    ConflictType     `db:"conflict_type" json:"conflict_type"`
	Severity        ConflictSeverity `db:"severity" json:"severity"`
	TeacherID       *string          `db:"teacher_id" json:"teacher_id,omitempty"`
	ClassroomID     *string          `db:"classroom_id" json:"classroom_id,omitempty"`
	ClassGroupID    *string          `db:"class_group_id" json:"class_group_id,omitempty"`
	ClassOfferingID *string          `db:"class_offering_id" json:"class_offering_id,omitempty"`
	MeetingAID      string           `db:"meeting_a_id" json:"meeting_a_id"`
	MeetingBID      string           `db:"meeting_b_id" json:"meeting_b_id"`
	OverlapMinutes  int              `db:"overlap_minutes" json:"overlap_minutes"`
	Detail          types.JSONText   `db:"detail_json" json:"detail,omitempty"`
	DetectedAt      time.Time        `db:"detected_at" json:"detected_at"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
}

// ConflictDetail is the denormalized explanation payload stored alongside a
// conflict so it stays legible even after the meetings are edited or removed.
type ConflictDetail struct {
	DayOfWeek     DayOfWeek `json:"day_of_week"`
	MeetingAStart string    `json:"meeting_a_start"`
	MeetingAEnd   string    `json:"meeting_a_end"`
	MeetingBStart string    `json:"meeting_b_start"`
	MeetingBEnd   string    `json:"meeting_b_end"`
}

// DetectionResult summarises a detection run; callers re-query the conflict
// listing for the rows themselves.
type DetectionResult struct {
	SemesterID string `json:"semester_id"`
	Created    int    `json:"created"`
}

// HourBreakdown carries minutes per group type.
type HourBreakdown struct {
	Theory   int `json:"theory"`
	Practice int `json:"practice"`
	Lab      int `json:"lab"`
}

// HourComplianceReport is the result of validating an offering's planned
// contact minutes against its course section's hour requirement.
type HourComplianceReport struct {
	ClassOfferingID string        `json:"class_offering_id"`
	CourseSectionID string        `json:"course_section_id"`
	CourseFormat    CourseFormat  `json:"course_format"`
	Expected        HourBreakdown `json:"expected"`
	Planned         HourBreakdown `json:"planned"`
	Diff            HourBreakdown `json:"diff"`
	Compliant       bool          `json:"compliant"`
	ComputedAt      time.Time     `json:"computed_at"`
}

package models

import "time"

// GroupType classifies a teaching group within a class offering.
type GroupType string

const (
	GroupTypeTheory   GroupType = "THEORY"
	GroupTypePractice GroupType = "PRACTICE"
	GroupTypeLab      GroupType = "LAB"
)

// DayOfWeek uses the institution's Spanish day names as stored values.
type DayOfWeek string

const (
	DayLunes     DayOfWeek = "LUNES"
	DayMartes    DayOfWeek = "MARTES"
	DayMiercoles DayOfWeek = "MIERCOLES"
	DayJueves    DayOfWeek = "JUEVES"
	DayViernes   DayOfWeek = "VIERNES"
	DaySabado    DayOfWeek = "SABADO"
	DayDomingo   DayOfWeek = "DOMINGO"
)

// ClassTeacherRole is an offering-level teaching role.
type ClassTeacherRole string

const (
	ClassTeacherRoleTitular      ClassTeacherRole = "TITULAR"
	ClassTeacherRolePracticeHead ClassTeacherRole = "PRACTICE_HEAD"
	ClassTeacherRoleAssistant    ClassTeacherRole = "ASSISTANT"
)

// GroupTeacherRole is the finer role set used for group-level assignments.
type GroupTeacherRole string

const (
	GroupTeacherRolePrimary       GroupTeacherRole = "PRIMARY"
	GroupTeacherRoleSupport       GroupTeacherRole = "SUPPORT"
	GroupTeacherRoleAssistant     GroupTeacherRole = "ASSISTANT"
	GroupTeacherRolePracticeHead  GroupTeacherRole = "PRACTICE_HEAD"
	GroupTeacherRoleLabInstructor GroupTeacherRole = "LAB_INSTRUCTOR"
)

// CourseFormat describes the curricular delivery format of a course section.
type CourseFormat string

const (
	CourseFormatTheory   CourseFormat = "T"
	CourseFormatPractice CourseFormat = "P"
	CourseFormatTP       CourseFormat = "TP"
	CourseFormatLab      CourseFormat = "LAB"
	CourseFormatMixed    CourseFormat = "MIXED"
)

// ClassOffering is one offering of a course section in a semester at a campus.
type ClassOffering struct {
	ID                 string `db:"id" json:"id"`
	SemesterID         string `db:"semester_id" json:"semester_id"`
	StudyPlanID        string `db:"study_plan_id" json:"study_plan_id"`
	AcademicProgramID  string `db:"academic_program_id" json:"academic_program_id"`
	CourseID           string `db:"course_id" json:"course_id"`
	CourseSectionID    string `db:"course_section_id" json:"course_section_id"`
	CampusID           string `db:"campus_id" json:"campus_id"`
	DeliveryModalityID string `db:"delivery_modality_id" json:"delivery_modality_id"`
	ShiftID            string `db:"shift_id" json:"shift_id"`
	ProjectedVacancies *int   `db:"projected_vacancies" json:"projected_vacancies,omitempty"`
	Status             bool   `db:"status" json:"status"`
}

// ClassOfferingFilter describes query params for listing offerings.
type ClassOfferingFilter struct {
	SemesterID      string
	CourseSectionID string
	Page            int
	PageSize        int
}

// ClassGroup is a theory/practice/lab sub-unit of an offering.
type ClassGroup struct {
	ID              string    `db:"id" json:"id"`
	ClassOfferingID string    `db:"class_offering_id" json:"class_offering_id"`
	GroupType       GroupType `db:"group_type" json:"group_type"`
	Code            string    `db:"code" json:"code"`
	Capacity        *int      `db:"capacity" json:"capacity,omitempty"`
	Note            *string   `db:"note" json:"note,omitempty"`
}

// ClassMeeting is one recurring weekly slot belonging to a group.
//
// Minutes is stored as-is when present and is not reconciled against
// StartTime/EndTime; consumers derive a duration from the times only when
// Minutes is nil.
type ClassMeeting struct {
	ID              string    `db:"id" json:"id"`
	ClassOfferingID string    `db:"class_offering_id" json:"class_offering_id"`
	ClassGroupID    string    `db:"class_group_id" json:"class_group_id"`
	DayOfWeek       DayOfWeek `db:"day_of_week" json:"day_of_week"`
	StartTime       string    `db:"start_time" json:"start_time"`
	EndTime         string    `db:"end_time" json:"end_time"`
	Minutes         *int      `db:"minutes" json:"minutes,omitempty"`
	AcademicHours   *int      `db:"academic_hours" json:"academic_hours,omitempty"`
	ClassroomID     *string   `db:"classroom_id" json:"classroom_id,omitempty"`
}

// ClassTeacher is an offering-level teacher assignment; it acts as the
// fallback teacher source when a meeting's group has no assignment of its own.
type ClassTeacher struct {
	ID              string           `db:"id" json:"id"`
	ClassOfferingID string           `db:"class_offering_id" json:"class_offering_id"`
	TeacherID       string           `db:"teacher_id" json:"teacher_id"`
	Role            ClassTeacherRole `db:"role" json:"role"`
	IsPrimary       bool             `db:"is_primary" json:"is_primary"`
}

// ClassGroupTeacher is a group-level teacher assignment, unique per
// (group, teacher), with an optional validity window.
type ClassGroupTeacher struct {
	ID           string           `db:"id" json:"id"`
	ClassGroupID string           `db:"class_group_id" json:"class_group_id"`
	TeacherID    string           `db:"teacher_id" json:"teacher_id"`
	Role         GroupTeacherRole `db:"role" json:"role"`
	IsPrimary    bool             `db:"is_primary" json:"is_primary"`
	AssignedFrom *time.Time       `db:"assigned_from" json:"assigned_from,omitempty"`
	AssignedTo   *time.Time       `db:"assigned_to" json:"assigned_to,omitempty"`
	Notes        *string          `db:"notes" json:"notes,omitempty"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updated_at"`
}

// CourseSectionHourRequirement states required academic hours per format for
// one course section. Academic hours are curricular units, commonly 45-50
// real minutes each, never assumed to be clock hours.
type CourseSectionHourRequirement struct {
	ID                     string       `db:"id" json:"id"`
	CourseSectionID        string       `db:"course_section_id" json:"course_section_id"`
	CourseFormat           CourseFormat `db:"course_format" json:"course_format"`
	TheoryHoursAcademic    int          `db:"theory_hours_academic" json:"theory_hours_academic"`
	PracticeHoursAcademic  int          `db:"practice_hours_academic" json:"practice_hours_academic"`
	LabHoursAcademic       int          `db:"lab_hours_academic" json:"lab_hours_academic"`
	AcademicMinutesPerHour int          `db:"academic_minutes_per_hour" json:"academic_minutes_per_hour"`
	Notes                  *string      `db:"notes" json:"notes,omitempty"`
	CreatedAt              time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt              time.Time    `db:"updated_at" json:"updated_at"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// SemesterPurgeResult reports what a replace-semester cleanup removed.
type SemesterPurgeResult struct {
	SemesterID       string `json:"semester_id"`
	OfferingsDeleted int    `json:"offerings_deleted"`
	ConflictsDeleted int    `json:"conflicts_deleted"`
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/uai-sistemas/planning-api/internal/models"
	appErrors "github.com/uai-sistemas/planning-api/pkg/errors"
)

type offeringRepository interface {
	List(ctx context.Context, filter models.ClassOfferingFilter) ([]models.ClassOffering, int, error)
	FindByID(ctx context.Context, id string) (*models.ClassOffering, error)
	Create(ctx context.Context, offering *models.ClassOffering) error
	Update(ctx context.Context, offering *models.ClassOffering) error
	Delete(ctx context.Context, id string) error
	PurgeSemester(ctx context.Context, semesterID string) (*models.SemesterPurgeResult, error)
}

type groupRepository interface {
	List(ctx context.Context, classOfferingID string) ([]models.ClassGroup, error)
	FindByID(ctx context.Context, id string) (*models.ClassGroup, error)
	Create(ctx context.Context, group *models.ClassGroup) error
	Update(ctx context.Context, group *models.ClassGroup) error
	Delete(ctx context.Context, id string) error
}

type meetingRepository interface {
	List(ctx context.Context, classOfferingID string) ([]models.ClassMeeting, error)
	FindByID(ctx context.Context, id string) (*models.ClassMeeting, error)
	Create(ctx context.Context, meeting *models.ClassMeeting) error
	Update(ctx context.Context, meeting *models.ClassMeeting) error
	Delete(ctx context.Context, id string) error
}

type classTeacherRepository interface {
	List(ctx context.Context, classOfferingID string) ([]models.ClassTeacher, error)
	FindByID(ctx context.Context, id string) (*models.ClassTeacher, error)
	Create(ctx context.Context, teacher *models.ClassTeacher) error
	Update(ctx context.Context, teacher *models.ClassTeacher) error
	Delete(ctx context.Context, id string) error
}

type groupTeacherRepository interface {
	List(ctx context.Context, classGroupID string) ([]models.ClassGroupTeacher, error)
	FindByID(ctx context.Context, id string) (*models.ClassGroupTeacher, error)
	Exists(ctx context.Context, classGroupID, teacherID string) (bool, error)
	Create(ctx context.Context, teacher *models.ClassGroupTeacher) error
	Update(ctx context.Context, teacher *models.ClassGroupTeacher) error
	Delete(ctx context.Context, id string) error
}

type requirementRepository interface {
	List(ctx context.Context, courseSectionID string) ([]models.CourseSectionHourRequirement, error)
	FindByID(ctx context.Context, id string) (*models.CourseSectionHourRequirement, error)
	Create(ctx context.Context, requirement *models.CourseSectionHourRequirement) error
	Update(ctx context.Context, requirement *models.CourseSectionHourRequirement) error
	Delete(ctx context.Context, id string) error
}

// CreateClassOfferingRequest describes an offering payload.
type CreateClassOfferingRequest struct {
	SemesterID         string `json:"semester_id" validate:"required"`
	StudyPlanID        string `json:"study_plan_id" validate:"required"`
	AcademicProgramID  string `json:"academic_program_id" validate:"required"`
	CourseID           string `json:"course_id" validate:"required"`
	CourseSectionID    string `json:"course_section_id" validate:"required"`
	CampusID           string `json:"campus_id" validate:"required"`
	DeliveryModalityID string `json:"delivery_modality_id" validate:"required"`
	ShiftID            string `json:"shift_id" validate:"required"`
	ProjectedVacancies *int   `json:"projected_vacancies"`
	Status             bool   `json:"status"`
}

// UpdateClassOfferingRequest carries partial offering changes.
type UpdateClassOfferingRequest struct {
	SemesterID         *string `json:"semester_id"`
	StudyPlanID        *string `json:"study_plan_id"`
	AcademicProgramID  *string `json:"academic_program_id"`
	CourseID           *string `json:"course_id"`
	CourseSectionID    *string `json:"course_section_id"`
	CampusID           *string `json:"campus_id"`
	DeliveryModalityID *string `json:"delivery_modality_id"`
	ShiftID            *string `json:"shift_id"`
	ProjectedVacancies *int    `json:"projected_vacancies"`
	Status             *bool   `json:"status"`
}

// CreateClassGroupRequest describes a group payload.
type CreateClassGroupRequest struct {
	ClassOfferingID string  `json:"class_offering_id" validate:"required"`
	GroupType       string  `json:"group_type" validate:"required,oneof=THEORY PRACTICE LAB"`
	Code            string  `json:"code" validate:"required,max=20"`
	Capacity        *int    `json:"capacity"`
	Note            *string `json:"note"`
}

// UpdateClassGroupRequest carries partial group changes.
type UpdateClassGroupRequest struct {
	GroupType *string `json:"group_type" validate:"omitempty,oneof=THEORY PRACTICE LAB"`
	Code      *string `json:"code" validate:"omitempty,max=20"`
	Capacity  *int    `json:"capacity"`
	Note      *string `json:"note"`
}

// CreateClassMeetingRequest describes a meeting payload.
type CreateClassMeetingRequest struct {
	ClassOfferingID string  `json:"class_offering_id" validate:"required"`
	ClassGroupID    string  `json:"class_group_id" validate:"required"`
	DayOfWeek       string  `json:"day_of_week" validate:"required,oneof=LUNES MARTES MIERCOLES JUEVES VIERNES SABADO DOMINGO"`
	StartTime       string  `json:"start_time" validate:"required"`
	EndTime         string  `json:"end_time" validate:"required"`
	Minutes         *int    `json:"minutes"`
	AcademicHours   *int    `json:"academic_hours"`
	ClassroomID     *string `json:"classroom_id"`
}

// UpdateClassMeetingRequest carries partial meeting changes.
type UpdateClassMeetingRequest struct {
	ClassGroupID  *string `json:"class_group_id"`
	DayOfWeek     *string `json:"day_of_week" validate:"omitempty,oneof=LUNES MARTES MIERCOLES JUEVES VIERNES SABADO DOMINGO"`
	StartTime     *string `json:"start_time"`
	EndTime       *string `json:"end_time"`
	Minutes       *int    `json:"minutes"`
	AcademicHours *int    `json:"academic_hours"`
	ClassroomID   *string `json:"classroom_id"`
}

// CreateClassTeacherRequest describes an offering-level assignment payload.
type CreateClassTeacherRequest struct {
	ClassOfferingID string `json:"class_offering_id" validate:"required"`
	TeacherID       string `json:"teacher_id" validate:"required"`
	Role            string `json:"role" validate:"required,oneof=TITULAR PRACTICE_HEAD ASSISTANT"`
	IsPrimary       bool   `json:"is_primary"`
}

// UpdateClassTeacherRequest carries partial assignment changes.
type UpdateClassTeacherRequest struct {
	TeacherID *string `json:"teacher_id"`
	Role      *string `json:"role" validate:"omitempty,oneof=TITULAR PRACTICE_HEAD ASSISTANT"`
	IsPrimary *bool   `json:"is_primary"`
}

// CreateClassGroupTeacherRequest describes a group-level assignment payload.
type CreateClassGroupTeacherRequest struct {
	ClassGroupID string     `json:"class_group_id" validate:"required"`
	TeacherID    string     `json:"teacher_id" validate:"required"`
	Role         string     `json:"role" validate:"required,oneof=PRIMARY SUPPORT ASSISTANT PRACTICE_HEAD LAB_INSTRUCTOR"`
	IsPrimary    bool       `json:"is_primary"`
	AssignedFrom *time.Time `json:"assigned_from"`
	AssignedTo   *time.Time `json:"assigned_to"`
	Notes        *string    `json:"notes"`
}

// UpdateClassGroupTeacherRequest carries partial assignment changes.
type UpdateClassGroupTeacherRequest struct {
	Role         *string    `json:"role" validate:"omitempty,oneof=PRIMARY SUPPORT ASSISTANT PRACTICE_HEAD LAB_INSTRUCTOR"`
	IsPrimary    *bool      `json:"is_primary"`
	AssignedFrom *time.Time `json:"assigned_from"`
	AssignedTo   *time.Time `json:"assigned_to"`
	Notes        *string    `json:"notes"`
}

// CreateHourRequirementRequest describes a requirement payload.
type CreateHourRequirementRequest struct {
	CourseSectionID        string  `json:"course_section_id" validate:"required"`
	CourseFormat           string  `json:"course_format" validate:"required,oneof=T P TP LAB MIXED"`
	TheoryHoursAcademic    int     `json:"theory_hours_academic" validate:"min=0"`
	PracticeHoursAcademic  int     `json:"practice_hours_academic" validate:"min=0"`
	LabHoursAcademic       int     `json:"lab_hours_academic" validate:"min=0"`
	AcademicMinutesPerHour int     `json:"academic_minutes_per_hour" validate:"required,min=1"`
	Notes                  *string `json:"notes"`
}

// UpdateHourRequirementRequest carries partial requirement changes.
type UpdateHourRequirementRequest struct {
	CourseFormat           *string `json:"course_format" validate:"omitempty,oneof=T P TP LAB MIXED"`
	TheoryHoursAcademic    *int    `json:"theory_hours_academic" validate:"omitempty,min=0"`
	PracticeHoursAcademic  *int    `json:"practice_hours_academic" validate:"omitempty,min=0"`
	LabHoursAcademic       *int    `json:"lab_hours_academic" validate:"omitempty,min=0"`
	AcademicMinutesPerHour *int    `json:"academic_minutes_per_hour" validate:"omitempty,min=1"`
	Notes                  *string `json:"notes"`
}

// PlanningService manages the planning catalog rows read by the conflict
// detector and the hour validator.
type PlanningService struct {
	offerings     offeringRepository
	groups        groupRepository
	meetings      meetingRepository
	classTeachers classTeacherRepository
	groupTeachers groupTeacherRepository
	requirements  requirementRepository
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewPlanningService creates a service instance.
func NewPlanningService(
	offerings offeringRepository,
	groups groupRepository,
	meetings meetingRepository,
	classTeachers classTeacherRepository,
	groupTeachers groupTeacherRepository,
	requirements requirementRepository,
	validate *validator.Validate,
	logger *zap.Logger,
) *PlanningService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanningService{
		offerings:     offerings,
		groups:        groups,
		meetings:      meetings,
		classTeachers: classTeachers,
		groupTeachers: groupTeachers,
		requirements:  requirements,
		validator:     validate,
		logger:        logger,
	}
}

// ListOfferings returns offerings matching the filter.
func (s *PlanningService) ListOfferings(ctx context.Context, filter models.ClassOfferingFilter) ([]models.ClassOffering, *models.Pagination, error) {
	offerings, total, err := s.offerings.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list offerings")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	return offerings, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// GetOffering loads one offering.
func (s *PlanningService) GetOffering(ctx context.Context, id string) (*models.ClassOffering, error) {
	offering, err := s.offerings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class offering not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load offering")
	}
	return offering, nil
}

// CreateOffering stores a new offering.
func (s *PlanningService) CreateOffering(ctx context.Context, req CreateClassOfferingRequest) (*models.ClassOffering, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid offering payload")
	}
	offering := &models.ClassOffering{
		SemesterID:         req.SemesterID,
		StudyPlanID:        req.StudyPlanID,
		AcademicProgramID:  req.AcademicProgramID,
		CourseID:           req.CourseID,
		CourseSectionID:    req.CourseSectionID,
		CampusID:           req.CampusID,
		DeliveryModalityID: req.DeliveryModalityID,
		ShiftID:            req.ShiftID,
		ProjectedVacancies: req.ProjectedVacancies,
		Status:             req.Status,
	}
	if err := s.offerings.Create(ctx, offering); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create offering")
	}
	return offering, nil
}

// UpdateOffering applies partial changes to an offering.
func (s *PlanningService) UpdateOffering(ctx context.Context, id string, req UpdateClassOfferingRequest) (*models.ClassOffering, error) {
	offering, err := s.GetOffering(ctx, id)
	if err != nil {
		return nil, err
	}
	applyString(&offering.SemesterID, req.SemesterID)
	applyString(&offering.StudyPlanID, req.StudyPlanID)
	applyString(&offering.AcademicProgramID, req.AcademicProgramID)
	applyString(&offering.CourseID, req.CourseID)
	applyString(&offering.CourseSectionID, req.CourseSectionID)
	applyString(&offering.CampusID, req.CampusID)
	applyString(&offering.DeliveryModalityID, req.DeliveryModalityID)
	applyString(&offering.ShiftID, req.ShiftID)
	if req.ProjectedVacancies != nil {
		offering.ProjectedVacancies = req.ProjectedVacancies
	}
	if req.Status != nil {
		offering.Status = *req.Status
	}
	if err := s.offerings.Update(ctx, offering); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update offering")
	}
	return offering, nil
}

// DeleteOffering removes an offering.
func (s *PlanningService) DeleteOffering(ctx context.Context, id string) error {
	if err := s.offerings.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete offering")
	}
	return nil
}

// PurgeSemester wholesale-removes a semester's offerings along with their
// dependent rows and stale conflicts (replace-semester ingestion mode).
func (s *PlanningService) PurgeSemester(ctx context.Context, semesterID string) (*models.SemesterPurgeResult, error) {
	result, err := s.offerings.PurgeSemester(ctx, semesterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to purge semester")
	}
	s.logger.Info("semester purged",
		zap.String("semester_id", semesterID),
		zap.Int("offerings_deleted", result.OfferingsDeleted),
		zap.Int("conflicts_deleted", result.ConflictsDeleted),
	)
	return result, nil
}

// ListGroups returns groups, optionally for one offering.
func (s *PlanningService) ListGroups(ctx context.Context, classOfferingID string) ([]models.ClassGroup, error) {
	groups, err := s.groups.List(ctx, classOfferingID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list groups")
	}
	return groups, nil
}

// CreateGroup stores a new group.
func (s *PlanningService) CreateGroup(ctx context.Context, req CreateClassGroupRequest) (*models.ClassGroup, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group payload")
	}
	if _, err := s.GetOffering(ctx, req.ClassOfferingID); err != nil {
		return nil, err
	}
	group := &models.ClassGroup{
		ClassOfferingID: req.ClassOfferingID,
		GroupType:       models.GroupType(req.GroupType),
		Code:            req.Code,
		Capacity:        req.Capacity,
		Note:            req.Note,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create group")
	}
	return group, nil
}

// UpdateGroup applies partial changes to a group.
func (s *PlanningService) UpdateGroup(ctx context.Context, id string, req UpdateClassGroupRequest) (*models.ClassGroup, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group payload")
	}
	group, err := s.groups.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class group not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group")
	}
	if req.GroupType != nil {
		group.GroupType = models.GroupType(*req.GroupType)
	}
	applyString(&group.Code, req.Code)
	if req.Capacity != nil {
		group.Capacity = req.Capacity
	}
	if req.Note != nil {
		group.Note = req.Note
	}
	if err := s.groups.Update(ctx, group); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update group")
	}
	return group, nil
}

// DeleteGroup removes a group.
func (s *PlanningService) DeleteGroup(ctx context.Context, id string) error {
	if err := s.groups.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete group")
	}
	return nil
}

// ListMeetings returns meetings, optionally for one offering.
func (s *PlanningService) ListMeetings(ctx context.Context, classOfferingID string) ([]models.ClassMeeting, error) {
	meetings, err := s.meetings.List(ctx, classOfferingID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list meetings")
	}
	return meetings, nil
}

// CreateMeeting stores a new meeting. Stored minutes are accepted as-is and
// never reconciled against the time bounds.
func (s *PlanningService) CreateMeeting(ctx context.Context, req CreateClassMeetingRequest) (*models.ClassMeeting, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid meeting payload")
	}
	if _, err := s.GetOffering(ctx, req.ClassOfferingID); err != nil {
		return nil, err
	}
	meeting := &models.ClassMeeting{
		ClassOfferingID: req.ClassOfferingID,
		ClassGroupID:    req.ClassGroupID,
		DayOfWeek:       models.DayOfWeek(req.DayOfWeek),
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Minutes:         req.Minutes,
		AcademicHours:   req.AcademicHours,
		ClassroomID:     req.ClassroomID,
	}
	if err := s.meetings.Create(ctx, meeting); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create meeting")
	}
	return meeting, nil
}

// UpdateMeeting applies partial changes to a meeting.
func (s *PlanningService) UpdateMeeting(ctx context.Context, id string, req UpdateClassMeetingRequest) (*models.ClassMeeting, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid meeting payload")
	}
	meeting, err := s.meetings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class meeting not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load meeting")
	}
	applyString(&meeting.ClassGroupID, req.ClassGroupID)
	if req.DayOfWeek != nil {
		meeting.DayOfWeek = models.DayOfWeek(*req.DayOfWeek)
	}
	applyString(&meeting.StartTime, req.StartTime)
	applyString(&meeting.EndTime, req.EndTime)
	if req.Minutes != nil {
		meeting.Minutes = req.Minutes
	}
	if req.AcademicHours != nil {
		meeting.AcademicHours = req.AcademicHours
	}
	if req.ClassroomID != nil {
		meeting.ClassroomID = req.ClassroomID
	}
	if err := s.meetings.Update(ctx, meeting); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update meeting")
	}
	return meeting, nil
}

// DeleteMeeting removes a meeting.
func (s *PlanningService) DeleteMeeting(ctx context.Context, id string) error {
	if err := s.meetings.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete meeting")
	}
	return nil
}

// ListClassTeachers returns offering-level assignments.
func (s *PlanningService) ListClassTeachers(ctx context.Context, classOfferingID string) ([]models.ClassTeacher, error) {
	teachers, err := s.classTeachers.List(ctx, classOfferingID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class teachers")
	}
	return teachers, nil
}

// CreateClassTeacher stores a new offering-level assignment.
func (s *PlanningService) CreateClassTeacher(ctx context.Context, req CreateClassTeacherRequest) (*models.ClassTeacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class teacher payload")
	}
	if _, err := s.GetOffering(ctx, req.ClassOfferingID); err != nil {
		return nil, err
	}
	teacher := &models.ClassTeacher{
		ClassOfferingID: req.ClassOfferingID,
		TeacherID:       req.TeacherID,
		Role:            models.ClassTeacherRole(req.Role),
		IsPrimary:       req.IsPrimary,
	}
	if err := s.classTeachers.Create(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class teacher")
	}
	return teacher, nil
}

// UpdateClassTeacher applies partial changes to an offering-level assignment.
func (s *PlanningService) UpdateClassTeacher(ctx context.Context, id string, req UpdateClassTeacherRequest) (*models.ClassTeacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class teacher payload")
	}
	teacher, err := s.classTeachers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class teacher")
	}
	applyString(&teacher.TeacherID, req.TeacherID)
	if req.Role != nil {
		teacher.Role = models.ClassTeacherRole(*req.Role)
	}
	if req.IsPrimary != nil {
		teacher.IsPrimary = *req.IsPrimary
	}
	if err := s.classTeachers.Update(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update class teacher")
	}
	return teacher, nil
}

// DeleteClassTeacher removes an offering-level assignment.
func (s *PlanningService) DeleteClassTeacher(ctx context.Context, id string) error {
	if err := s.classTeachers.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class teacher")
	}
	return nil
}

// ListGroupTeachers returns group-level assignments.
func (s *PlanningService) ListGroupTeachers(ctx context.Context, classGroupID string) ([]models.ClassGroupTeacher, error) {
	teachers, err := s.groupTeachers.List(ctx, classGroupID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list group teachers")
	}
	return teachers, nil
}

// CreateGroupTeacher stores a new group-level assignment, unique per
// (group, teacher).
func (s *PlanningService) CreateGroupTeacher(ctx context.Context, req CreateClassGroupTeacherRequest) (*models.ClassGroupTeacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group teacher payload")
	}
	exists, err := s.groupTeachers.Exists(ctx, req.ClassGroupID, req.TeacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check group teacher uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "teacher already assigned to this group")
	}
	teacher := &models.ClassGroupTeacher{
		ClassGroupID: req.ClassGroupID,
		TeacherID:    req.TeacherID,
		Role:         models.GroupTeacherRole(req.Role),
		IsPrimary:    req.IsPrimary,
		AssignedFrom: req.AssignedFrom,
		AssignedTo:   req.AssignedTo,
		Notes:        req.Notes,
	}
	if err := s.groupTeachers.Create(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create group teacher")
	}
	return teacher, nil
}

// UpdateGroupTeacher applies partial changes to a group-level assignment.
func (s *PlanningService) UpdateGroupTeacher(ctx context.Context, id string, req UpdateClassGroupTeacherRequest) (*models.ClassGroupTeacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group teacher payload")
	}
	teacher, err := s.groupTeachers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class group teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group teacher")
	}
	if req.Role != nil {
		teacher.Role = models.GroupTeacherRole(*req.Role)
	}
	if req.IsPrimary != nil {
		teacher.IsPrimary = *req.IsPrimary
	}
	if req.AssignedFrom != nil {
		teacher.AssignedFrom = req.AssignedFrom
	}
	if req.AssignedTo != nil {
		teacher.AssignedTo = req.AssignedTo
	}
	if req.Notes != nil {
		teacher.Notes = req.Notes
	}
	if err := s.groupTeachers.Update(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update group teacher")
	}
	return teacher, nil
}

// DeleteGroupTeacher removes a group-level assignment.
func (s *PlanningService) DeleteGroupTeacher(ctx context.Context, id string) error {
	if err := s.groupTeachers.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete group teacher")
	}
	return nil
}

// ListHourRequirements returns requirements, optionally for one section.
func (s *PlanningService) ListHourRequirements(ctx context.Context, courseSectionID string) ([]models.CourseSectionHourRequirement, error) {
	requirements, err := s.requirements.List(ctx, courseSectionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list hour requirements")
	}
	return requirements, nil
}

// CreateHourRequirement stores a new requirement.
func (s *PlanningService) CreateHourRequirement(ctx context.Context, req CreateHourRequirementRequest) (*models.CourseSectionHourRequirement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid hour requirement payload")
	}
	requirement := &models.CourseSectionHourRequirement{
		CourseSectionID:        req.CourseSectionID,
		CourseFormat:           models.CourseFormat(req.CourseFormat),
		TheoryHoursAcademic:    req.TheoryHoursAcademic,
		PracticeHoursAcademic:  req.PracticeHoursAcademic,
		LabHoursAcademic:       req.LabHoursAcademic,
		AcademicMinutesPerHour: req.AcademicMinutesPerHour,
		Notes:                  req.Notes,
	}
	if err := s.requirements.Create(ctx, requirement); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create hour requirement")
	}
	return requirement, nil
}

// UpdateHourRequirement applies partial changes to a requirement.
func (s *PlanningService) UpdateHourRequirement(ctx context.Context, id string, req UpdateHourRequirementRequest) (*models.CourseSectionHourRequirement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid hour requirement payload")
	}
	requirement, err := s.requirements.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "hour requirement not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load hour requirement")
	}
	if req.CourseFormat != nil {
		requirement.CourseFormat = models.CourseFormat(*req.CourseFormat)
	}
	if req.TheoryHoursAcademic != nil {
		requirement.TheoryHoursAcademic = *req.TheoryHoursAcademic
	}
	if req.PracticeHoursAcademic != nil {
		requirement.PracticeHoursAcademic = *req.PracticeHoursAcademic
	}
	if req.LabHoursAcademic != nil {
		requirement.LabHoursAcademic = *req.LabHoursAcademic
	}
	if req.AcademicMinutesPerHour != nil {
		requirement.AcademicMinutesPerHour = *req.AcademicMinutesPerHour
	}
	if req.Notes != nil {
		requirement.Notes = req.Notes
	}
	if err := s.requirements.Update(ctx, requirement); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update hour requirement")
	}
	return requirement, nil
}

// DeleteHourRequirement removes a requirement.
func (s *PlanningService) DeleteHourRequirement(ctx context.Context, id string) error {
	if err := s.requirements.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete hour requirement")
	}
	return nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

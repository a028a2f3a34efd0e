package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/uai-sistemas/planning-api/internal/models"
	"github.com/uai-sistemas/planning-api/internal/service"
	appErrors "github.com/uai-sistemas/planning-api/pkg/errors"
	"github.com/uai-sistemas/planning-api/pkg/response"
)

// PlanningHandler manages the planning catalog endpoints.
type PlanningHandler struct {
	service *service.PlanningService
}

// NewPlanningHandler constructs handler.
func NewPlanningHandler(svc *service.PlanningService) *PlanningHandler {
	return &PlanningHandler{service: svc}
}

// ListOfferings godoc
// @Summary List class offerings
// @Tags Offerings
// @Produce json
// @Param semesterId query string false "Filter by semester"
// @Param courseSectionId query string false "Filter by course section"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /planning/class-offerings [get]
func (h *PlanningHandler) ListOfferings(c *gin.Context) {
	var filter models.ClassOfferingFilter
	filter.SemesterID = c.Query("semesterId")
	filter.CourseSectionID = c.Query("courseSectionId")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.PageSize = limit
	}

	offerings, pagination, err := h.service.ListOfferings(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offerings, pagination)
}

// GetOffering godoc
// @Summary Get class offering
// @Tags Offerings
// @Produce json
// @Param id path string true "Offering ID"
// @Success 200 {object} response.Envelope
// @Router /planning/class-offerings/{id} [get]
func (h *PlanningHandler) GetOffering(c *gin.Context) {
	offering, err := h.service.GetOffering(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offering, nil)
}

// CreateOffering godoc
// @Summary Create class offering
// @Tags Offerings
// @Accept json
// @Produce json
// @Param payload body service.CreateClassOfferingRequest true "Offering payload"
// @Success 201 {object} response.Envelope
// @Router /planning/class-offerings [post]
func (h *PlanningHandler) CreateOffering(c *gin.Context) {
	var req service.CreateClassOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	offering, err := h.service.CreateOffering(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, offering)
}

// UpdateOffering godoc
// @Summary Update class offering
// @Tags Offerings
// @Accept json
// @Produce json
// @Param id path string true "Offering ID"
// @Param payload body service.UpdateClassOfferingRequest true "Offering payload"
// @Success 200 {object} response.Envelope
// @Router /planning/class-offerings/{id} [patch]
func (h *PlanningHandler) UpdateOffering(c *gin.Context) {
	var req service.UpdateClassOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	offering, err := h.service.UpdateOffering(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offering, nil)
}

// DeleteOffering godoc
// @Summary Delete class offering
// @Tags Offerings
// @Produce json
// @Param id path string true "Offering ID"
// @Success 204
// @Router /planning/class-offerings/{id} [delete]
func (h *PlanningHandler) DeleteOffering(c *gin.Context) {
	if err := h.service.DeleteOffering(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// PurgeSemester godoc
// @Summary Delete a semester's offerings and dependents
// @Tags Offerings
// @Produce json
// @Param semesterId path string true "Semester ID"
// @Success 200 {object} response.Envelope
// @Router /planning/semesters/{semesterId}/offerings [delete]
func (h *PlanningHandler) PurgeSemester(c *gin.Context) {
	result, err := h.service.PurgeSemester(c.Request.Context(), c.Param("semesterId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ListGroups godoc
// @Summary List class groups
// @Tags Groups
// @Produce json
// @Param classOfferingId query string false "Filter by offering"
// @Success 200 {object} response.Envelope
// @Router /planning/class-groups [get]
func (h *PlanningHandler) ListGroups(c *gin.Context) {
	groups, err := h.service.ListGroups(c.Request.Context(), c.Query("classOfferingId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups, nil)
}

// CreateGroup godoc
// @Summary Create class group
// @Tags Groups
// @Accept json
// @Produce json
// @Param payload body service.CreateClassGroupRequest true "Group payload"
// @Success 201 {object} response.Envelope
// @Router /planning/class-groups [post]
func (h *PlanningHandler) CreateGroup(c *gin.Context) {
	var req service.CreateClassGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	group, err := h.service.CreateGroup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, group)
}

// UpdateGroup godoc
// @Summary Update class group
// @Tags Groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param payload body service.UpdateClassGroupRequest true "Group payload"
// @Success 200 {object} response.Envelope
// @Router /planning/class-groups/{id} [patch]
func (h *PlanningHandler) UpdateGroup(c *gin.Context) {
	var req service.UpdateClassGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	group, err := h.service.UpdateGroup(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, group, nil)
}

// DeleteGroup godoc
// @Summary Delete class group
// @Tags Groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 204
// @Router /planning/class-groups/{id} [delete]
func (h *PlanningHandler) DeleteGroup(c *gin.Context) {
	if err := h.service.DeleteGroup(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListMeetings godoc
// @Summary List class meetings
// @Tags Meetings
// @Produce json
// @Param classOfferingId query string false "Filter by offering"
// @Success 200 {object} response.Envelope
// @Router /planning/class-meetings [get]
func (h *PlanningHandler) ListMeetings(c *gin.Context) {
	meetings, err := h.service.ListMeetings(c.Request.Context(), c.Query("classOfferingId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, meetings, nil)
}

// CreateMeeting godoc
// @Summary Create class meeting
// @Tags Meetings
// @Accept json
// @Produce json
// @Param payload body service.CreateClassMeetingRequest true "Meeting payload"
// @Success 201 {object} response.Envelope
// @Router /planning/class-meetings [post]
func (h *PlanningHandler) CreateMeeting(c *gin.Context) {
	var req service.CreateClassMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	meeting, err := h.service.CreateMeeting(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, meeting)
}

// UpdateMeeting godoc
// @Summary Update class meeting
// @Tags Meetings
// @Accept json
// @Produce json
// @Param id path string true "Meeting ID"
// @Param payload body service.UpdateClassMeetingRequest true "Meeting payload"
// @Success 200 {object} response.Envelope
// @Router /planning/class-meetings/{id} [patch]
func (h *PlanningHandler) UpdateMeeting(c *gin.Context) {
	var req service.UpdateClassMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	meeting, err := h.service.UpdateMeeting(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, meeting, nil)
}

// DeleteMeeting godoc
// @Summary Delete class meeting
// @Tags Meetings
// @Produce json
// @Param id path string true "Meeting ID"
// @Success 204
// @Router /planning/class-meetings/{id} [delete]
func (h *PlanningHandler) DeleteMeeting(c *gin.Context) {
	if err := h.service.DeleteMeeting(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListClassTeachers godoc
// @Summary List offering-level teacher assignments
// @Tags Teachers
// @Produce json
// @Param classOfferingId query string false "Filter by offering"
// @Success 200 {object} response.Envelope
// @Router /planning/class-teachers [get]
func (h *PlanningHandler) ListClassTeachers(c *gin.Context) {
	teachers, err := h.service.ListClassTeachers(c.Request.Context(), c.Query("classOfferingId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers, nil)
}

// CreateClassTeacher godoc
// @Summary Create offering-level teacher assignment
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body service.CreateClassTeacherRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Router /planning/class-teachers [post]
func (h *PlanningHandler) CreateClassTeacher(c *gin.Context) {
	var req service.CreateClassTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	teacher, err := h.service.CreateClassTeacher(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, teacher)
}

// UpdateClassTeacher godoc
// @Summary Update offering-level teacher assignment
// @Tags Teachers
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param payload body service.UpdateClassTeacherRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Router /planning/class-teachers/{id} [patch]
func (h *PlanningHandler) UpdateClassTeacher(c *gin.Context) {
	var req service.UpdateClassTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	teacher, err := h.service.UpdateClassTeacher(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher, nil)
}

// DeleteClassTeacher godoc
// @Summary Delete offering-level teacher assignment
// @Tags Teachers
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 204
// @Router /planning/class-teachers/{id} [delete]
func (h *PlanningHandler) DeleteClassTeacher(c *gin.Context) {
	if err := h.service.DeleteClassTeacher(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListGroupTeachers godoc
// @Summary List group-level teacher assignments
// @Tags Teachers
// @Produce json
// @Param classGroupId query string false "Filter by group"
// @Success 200 {object} response.Envelope
// @Router /planning/class-group-teachers [get]
func (h *PlanningHandler) ListGroupTeachers(c *gin.Context) {
	teachers, err := h.service.ListGroupTeachers(c.Request.Context(), c.Query("classGroupId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers, nil)
}

// CreateGroupTeacher godoc
// @Summary Create group-level teacher assignment
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body service.CreateClassGroupTeacherRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Router /planning/class-group-teachers [post]
func (h *PlanningHandler) CreateGroupTeacher(c *gin.Context) {
	var req service.CreateClassGroupTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	teacher, err := h.service.CreateGroupTeacher(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, teacher)
}

// UpdateGroupTeacher godoc
// @Summary Update group-level teacher assignment
// @Tags Teachers
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param payload body service.UpdateClassGroupTeacherRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Router /planning/class-group-teachers/{id} [patch]
func (h *PlanningHandler) UpdateGroupTeacher(c *gin.Context) {
	var req service.UpdateClassGroupTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	teacher, err := h.service.UpdateGroupTeacher(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher, nil)
}

// DeleteGroupTeacher godoc
// @Summary Delete group-level teacher assignment
// @Tags Teachers
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 204
// @Router /planning/class-group-teachers/{id} [delete]
func (h *PlanningHandler) DeleteGroupTeacher(c *gin.Context) {
	if err := h.service.DeleteGroupTeacher(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListHourRequirements godoc
// @Summary List hour requirements
// @Tags Requirements
// @Produce json
// @Param courseSectionId query string false "Filter by course section"
// @Success 200 {object} response.Envelope
// @Router /planning/hour-requirements [get]
func (h *PlanningHandler) ListHourRequirements(c *gin.Context) {
	requirements, err := h.service.ListHourRequirements(c.Request.Context(), c.Query("courseSectionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requirements, nil)
}

// CreateHourRequirement godoc
// @Summary Create hour requirement
// @Tags Requirements
// @Accept json
// @Produce json
// @Param payload body service.CreateHourRequirementRequest true "Requirement payload"
// @Success 201 {object} response.Envelope
// @Router /planning/hour-requirements [post]
func (h *PlanningHandler) CreateHourRequirement(c *gin.Context) {
	var req service.CreateHourRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	requirement, err := h.service.CreateHourRequirement(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, requirement)
}

// UpdateHourRequirement godoc
// @Summary Update hour requirement
// @Tags Requirements
// @Accept json
// @Produce json
// @Param id path string true "Requirement ID"
// @Param payload body service.UpdateHourRequirementRequest true "Requirement payload"
// @Success 200 {object} response.Envelope
// @Router /planning/hour-requirements/{id} [patch]
func (h *PlanningHandler) UpdateHourRequirement(c *gin.Context) {
	var req service.UpdateHourRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	requirement, err := h.service.UpdateHourRequirement(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requirement, nil)
}

// DeleteHourRequirement godoc
// @Summary Delete hour requirement
// @Tags Requirements
// @Produce json
// @Param id path string true "Requirement ID"
// @Success 204
// @Router /planning/hour-requirements/{id} [delete]
func (h *PlanningHandler) DeleteHourRequirement(c *gin.Context) {
	if err := h.service.DeleteHourRequirement(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

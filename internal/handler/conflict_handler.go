package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/uai-sistemas/planning-api/internal/service"
	appErrors "github.com/uai-sistemas/planning-api/pkg/errors"
	"github.com/uai-sistemas/planning-api/pkg/response"
)

// ConflictHandler exposes conflict detection and listing endpoints.
type ConflictHandler struct {
	conflicts *service.ConflictService
	exports   *service.ExportService
	metrics   *service.MetricsService
}

// NewConflictHandler constructs handler.
func NewConflictHandler(conflicts *service.ConflictService, exports *service.ExportService, metrics *service.MetricsService) *ConflictHandler {
	return &ConflictHandler{conflicts: conflicts, exports: exports, metrics: metrics}
}

// Detect godoc
// @Summary Run conflict detection for a semester
// @Tags Conflicts
// @Produce json
// @Param semesterId path string true "Semester ID"
// @Success 200 {object} response.Envelope
// @Router /planning/schedule-conflicts/detect/{semesterId} [post]
func (h *ConflictHandler) Detect(c *gin.Context) {
	semesterID := c.Param("semesterId")
	start := time.Now()
	result, err := h.conflicts.Detect(c.Request.Context(), semesterID)
	if h.metrics != nil {
		created := 0
		if result != nil {
			created = result.Created
		}
		h.metrics.ObserveDetection(semesterID, created, time.Since(start), err)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// List godoc
// @Summary List stored conflicts for a semester
// @Tags Conflicts
// @Produce json
// @Param semesterId query string true "Semester ID"
// @Success 200 {object} response.Envelope
// @Router /planning/schedule-conflicts [get]
func (h *ConflictHandler) List(c *gin.Context) {
	semesterID := c.Query("semesterId")
	if semesterID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "semesterId query parameter is required"))
		return
	}
	conflicts, err := h.conflicts.List(c.Request.Context(), semesterID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conflicts, nil)
}

// Export godoc
// @Summary Export a semester's conflicts
// @Tags Conflicts
// @Produce octet-stream
// @Param semesterId query string true "Semester ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} byte
// @Router /planning/schedule-conflicts/export [get]
func (h *ConflictHandler) Export(c *gin.Context) {
	semesterID := c.Query("semesterId")
	if semesterID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "semesterId query parameter is required"))
		return
	}

	var (
		payload     []byte
		filename    string
		contentType string
		err         error
	)
	switch c.DefaultQuery("format", "csv") {
	case "csv":
		payload, filename, err = h.exports.ExportConflictsCSV(c.Request.Context(), semesterID)
		contentType = "text/csv"
	case "pdf":
		payload, filename, err = h.exports.ExportConflictsPDF(c.Request.Context(), semesterID)
		contentType = "application/pdf"
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, payload)
}

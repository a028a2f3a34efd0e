package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uai-sistemas/planning-api/internal/service"
	"github.com/uai-sistemas/planning-api/pkg/response"
)

// HoursHandler exposes the hour compliance endpoint.
type HoursHandler struct {
	service *service.HoursService
}

// NewHoursHandler constructs handler.
func NewHoursHandler(svc *service.HoursService) *HoursHandler {
	return &HoursHandler{service: svc}
}

// Validate godoc
// @Summary Validate planned hours for a class offering
// @Tags Hours
// @Produce json
// @Param classOfferingId path string true "Class offering ID"
// @Success 200 {object} response.Envelope
// @Router /planning/hours-validation/{classOfferingId} [get]
func (h *HoursHandler) Validate(c *gin.Context) {
	report, err := h.service.Validate(c.Request.Context(), c.Param("classOfferingId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

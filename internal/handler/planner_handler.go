package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusd/course-planner-api/internal/service"
	appErrors "github.com/campusd/course-planner-api/pkg/errors"
	"github.com/campusd/course-planner-api/pkg/response"
)

// PlannerHandler exposes the per-session planning endpoints.
type PlannerHandler struct {
	planner *service.PlannerService
	exports *service.ExportService
}

// NewPlannerHandler constructs PlannerHandler.
func NewPlannerHandler(planner *service.PlannerService, exports *service.ExportService) *PlannerHandler {
	return &PlannerHandler{planner: planner, exports: exports}
}

// CreateSession godoc
// @Summary Start a planning session
// @Tags Sessions
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /sessions [post]
func (h *PlannerHandler) CreateSession(c *gin.Context) {
	session, err := h.planner.CreateSession(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// GetSchedule godoc
// @Summary Current schedule of a session
// @Tags Schedule
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{sessionId}/schedule [get]
func (h *PlannerHandler) GetSchedule(c *gin.Context) {
	view, err := h.planner.Schedule(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// AddSelection godoc
// @Summary Add a course selection to the schedule
// @Tags Schedule
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param payload body service.AddSelectionRequest true "Selection payload"
// @Success 200 {object} response.Envelope
// @Router /sessions/{sessionId}/selections [post]
func (h *PlannerHandler) AddSelection(c *gin.Context) {
	var req service.AddSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}

	result, err := h.planner.AddSelection(c.Request.Context(), c.Param("sessionId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusOK
	if result.Added {
		status = http.StatusCreated
	}
	response.JSON(c, status, result)
}

// RemoveSelection godoc
// @Summary Remove a course from the schedule
// @Tags Schedule
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param courseCode path string true "Course code or unique prefix"
// @Success 200 {object} response.Envelope
// @Router /sessions/{sessionId}/selections/{courseCode} [delete]
func (h *PlannerHandler) RemoveSelection(c *gin.Context) {
	view, err := h.planner.RemoveSelection(c.Request.Context(), c.Param("sessionId"), c.Param("courseCode"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// ClearSchedule godoc
// @Summary Remove every selection of a session
// @Tags Schedule
// @Param sessionId path string true "Session ID"
// @Success 204 "cleared"
// @Router /sessions/{sessionId}/schedule [delete]
func (h *PlannerHandler) ClearSchedule(c *gin.Context) {
	if err := h.planner.ClearSchedule(c.Request.Context(), c.Param("sessionId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// EndSession godoc
// @Summary End a planning session and drop its persisted schedule
// @Tags Sessions
// @Param sessionId path string true "Session ID"
// @Success 204 "ended"
// @Router /sessions/{sessionId} [delete]
func (h *PlannerHandler) EndSession(c *gin.Context) {
	if err := h.planner.EndSession(c.Request.Context(), c.Param("sessionId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// CheckSections godoc
// @Summary Dry-run conflict check for a candidate selection
// @Tags Checks
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param payload body service.AddSelectionRequest true "Selection payload"
// @Success 200 {object} response.Envelope
// @Router /sessions/{sessionId}/checks/sections [post]
func (h *PlannerHandler) CheckSections(c *gin.Context) {
	var req service.AddSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}

	result, err := h.planner.CheckSections(c.Request.Context(), c.Param("sessionId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// CheckAddable godoc
// @Summary Screen a whole course against the schedule
// @Tags Checks
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param courseCode path string true "Course code or unique prefix"
// @Success 200 {object} response.Envelope
// @Router /sessions/{sessionId}/checks/courses/{courseCode} [get]
func (h *PlannerHandler) CheckAddable(c *gin.Context) {
	result, err := h.planner.CheckAddable(c.Request.Context(), c.Param("sessionId"), c.Param("courseCode"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Browse godoc
// @Summary Search the catalog, partitioned by addability
// @Tags Checks
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param q query string true "Space-separated keywords"
// @Success 200 {object} response.Envelope
// @Router /sessions/{sessionId}/browse [get]
func (h *PlannerHandler) Browse(c *gin.Context) {
	keywords := strings.Fields(c.Query("q"))
	result, err := h.planner.Browse(c.Request.Context(), c.Param("sessionId"), keywords)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Export godoc
// @Summary Download the schedule as PDF or iCalendar
// @Tags Schedule
// @Produce application/pdf,text/calendar
// @Param sessionId path string true "Session ID"
// @Param format query string false "pdf or ics" default(pdf)
// @Success 200 {file} binary
// @Router /sessions/{sessionId}/schedule/export [get]
func (h *PlannerHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", service.ExportFormatPDF)
	file, err := h.exports.Export(c.Request.Context(), c.Param("sessionId"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}

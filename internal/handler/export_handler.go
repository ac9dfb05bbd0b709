package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusd/course-planner-api/internal/service"
	appErrors "github.com/campusd/course-planner-api/pkg/errors"
	"github.com/campusd/course-planner-api/pkg/response"
)

// ExportHandler exposes the async export pipeline.
type ExportHandler struct {
	exports *service.ExportJobService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportJobService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

type enqueueExportRequest struct {
	Format string `json:"format"`
}

// Enqueue godoc
// @Summary Request a background export render
// @Tags Exports
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param payload body enqueueExportRequest true "Export format"
// @Success 202 {object} response.Envelope
// @Router /sessions/{sessionId}/exports [post]
func (h *ExportHandler) Enqueue(c *gin.Context) {
	var req enqueueExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid JSON payload"))
		return
	}
	if req.Format == "" {
		req.Format = service.ExportFormatPDF
	}

	job, err := h.exports.Enqueue(c.Request.Context(), c.Param("sessionId"), req.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, job)
}

// Status godoc
// @Summary Poll an export render job
// @Tags Exports
// @Produce json
// @Param jobId path string true "Export job ID"
// @Success 200 {object} response.Envelope
// @Router /exports/{jobId} [get]
func (h *ExportHandler) Status(c *gin.Context) {
	job, err := h.exports.Status(c.Param("jobId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job)
}

// Download godoc
// @Summary Download a rendered export via its signed token
// @Tags Exports
// @Produce application/pdf,text/calendar
// @Param jobId path string true "Export job ID"
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Router /exports/{jobId}/download [get]
func (h *ExportHandler) Download(c *gin.Context) {
	file, meta, err := h.exports.Open(c.Param("jobId"), c.Query("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	content, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read export"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+meta.Filename+`"`)
	c.Data(http.StatusOK, meta.ContentType, content)
}

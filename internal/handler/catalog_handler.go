package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusd/course-planner-api/internal/service"
	"github.com/campusd/course-planner-api/pkg/response"
)

// CatalogHandler exposes read-only catalog endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Search godoc
// @Summary Search courses by keywords
// @Tags Catalog
// @Produce json
// @Param q query string false "Space-separated keywords, all must match"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CatalogHandler) Search(c *gin.Context) {
	keywords := strings.Fields(c.Query("q"))
	courses := h.catalog.Search(keywords)
	response.JSON(c, http.StatusOK, courses, map[string]interface{}{"count": len(courses)})
}

// Get godoc
// @Summary Course detail by code or unique prefix
// @Tags Catalog
// @Produce json
// @Param courseCode path string true "Course code or unique prefix"
// @Success 200 {object} response.Envelope
// @Router /courses/{courseCode} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	detail, report, err := h.catalog.Get(c.Param("courseCode"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"course": detail, "report": report})
}

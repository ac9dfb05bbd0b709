package service

import (
	"go.uber.org/zap"

	"github.com/campusd/course-planner-api/internal/catalog"
	"github.com/campusd/course-planner-api/internal/dto"
)

// CatalogService exposes read-only catalog lookups.
type CatalogService struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewCatalogService constructs the service.
func NewCatalogService(cat *catalog.Catalog, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{catalog: cat, logger: logger}
}

// Get resolves a course-code prefix to exactly one course detail.
func (s *CatalogService) Get(codePrefix string) (dto.CourseDetail, string, error) {
	course, err := s.catalog.GetByPrefix(codePrefix)
	if err != nil {
		return dto.CourseDetail{}, "", err
	}
	return dto.NewCourseDetail(course), FormatCourse(course), nil
}

// Search returns summaries of every course matching all keywords.
func (s *CatalogService) Search(keywords []string) []dto.CourseSummary {
	courses := s.catalog.Search(keywords...)
	out := make([]dto.CourseSummary, 0, len(courses))
	for _, course := range courses {
		out = append(out, dto.NewCourseSummary(course))
	}
	return out
}

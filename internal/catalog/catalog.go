// Package catalog holds the immutable set of course records for a planning
// session and the lookups the planner binds to. The catalog is loaded once
// at startup and shared read-only across sessions; Course, Section and
// Timeslot values are never mutated after load, so no locking is needed.
package catalog

import (
	"fmt"
	"strings"

	"github.com/campusd/course-planner-api/internal/models"
	appErrors "github.com/campusd/course-planner-api/pkg/errors"
)

// Catalog is the read-only course registry.
type Catalog struct {
	courses []*models.Course
	byCode  map[string]*models.Course
}

// New builds a catalog from loaded courses, preserving load order. Duplicate
// course codes are rejected: the code is the catalog's unique key.
func New(courses []*models.Course) (*Catalog, error) {
	c := &Catalog{
		courses: courses,
		byCode:  make(map[string]*models.Course, len(courses)),
	}
	for _, course := range courses {
		if _, exists := c.byCode[course.Code]; exists {
			return nil, fmt.Errorf("duplicate course code %s", course.Code)
		}
		c.byCode[course.Code] = course
	}
	return c, nil
}

// Len returns the number of courses.
func (c *Catalog) Len() int {
	return len(c.courses)
}

// Courses returns the full course list in load order. Callers must treat
// the result as read-only.
func (c *Catalog) Courses() []*models.Course {
	return c.courses
}

// GetByPrefix resolves a course-code prefix to exactly one course. Zero
// matches yield ErrNotFound; more than one yields ErrAmbiguous. An exact
// code is always a valid prefix of itself.
func (c *Catalog) GetByPrefix(prefix string) (*models.Course, error) {
	var found *models.Course
	for _, course := range c.courses {
		if strings.HasPrefix(course.Code, prefix) {
			if found != nil {
				return nil, appErrors.Clone(appErrors.ErrAmbiguous, fmt.Sprintf("course code %q matches more than one course", prefix))
			}
			found = course
		}
	}
	if found == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no course matching %q", prefix))
	}
	return found, nil
}

// Search returns every course whose code or title contains all of the given
// keywords, case-insensitively, in load order. No ranking is applied.
func (c *Catalog) Search(keywords ...string) []*models.Course {
	matches := make([]*models.Course, 0)
	for _, course := range c.courses {
		code := strings.ToUpper(course.Code)
		name := strings.ToUpper(course.Name)
		all := true
		for _, kw := range keywords {
			kw = strings.ToUpper(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			if !strings.Contains(code, kw) && !strings.Contains(name, kw) {
				all = false
				break
			}
		}
		if all {
			matches = append(matches, course)
		}
	}
	return matches
}

// ResolveSelection turns a course-code prefix plus section-id prefixes into
// a full selection. The picks must correspond 1:1 with the component types
// the course actually offers: exactly one pick per offered type, no
// duplicates, no picks for types the course lacks. Each pick resolves by
// unique prefix within its component type.
func (c *Catalog) ResolveSelection(coursePrefix string, sectionIDs []string) (models.Selection, error) {
	course, err := c.GetByPrefix(coursePrefix)
	if err != nil {
		return models.Selection{}, err
	}

	seen := make(map[string]struct{}, len(sectionIDs))
	for _, id := range sectionIDs {
		if _, dup := seen[id]; dup {
			return models.Selection{}, appErrors.Clone(appErrors.ErrInvalidSelection, "duplicate section pick "+id)
		}
		seen[id] = struct{}{}
	}
	if len(sectionIDs) != course.TypeCount() {
		return models.Selection{}, appErrors.Clone(appErrors.ErrInvalidSelection,
			fmt.Sprintf("course %s requires one pick for each of its %d section types", course.Code, course.TypeCount()))
	}

	sel := models.Selection{Course: course}
	for _, id := range sectionIDs {
		secType := models.SectionTypeOf(id)
		if secType == "" {
			return models.Selection{}, appErrors.Clone(appErrors.ErrInvalidSelection, "section id must start with LEC, TUT or PRA: "+id)
		}
		if !course.HasType(secType) {
			return models.Selection{}, appErrors.Clone(appErrors.ErrInvalidSelection,
				fmt.Sprintf("course %s has no %s sections", course.Code, secType))
		}
		if sel.SectionOf(secType) != nil {
			return models.Selection{}, appErrors.Clone(appErrors.ErrInvalidSelection, "more than one pick for "+string(secType))
		}
		section, err := findSection(course.SectionsOf(secType), id)
		if err != nil {
			return models.Selection{}, err
		}
		switch secType {
		case models.SectionLecture:
			sel.Lecture = section
		case models.SectionTutorial:
			sel.Tutorial = section
		case models.SectionPractical:
			sel.Practical = section
		}
	}
	return sel, nil
}

func findSection(sections []*models.Section, idPrefix string) (*models.Section, error) {
	var found *models.Section
	for _, section := range sections {
		if strings.HasPrefix(section.ID, idPrefix) {
			if found != nil {
				return nil, appErrors.Clone(appErrors.ErrAmbiguous, fmt.Sprintf("section id %q matches more than one section", idPrefix))
			}
			found = section
		}
	}
	if found == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no section matching %q", idPrefix))
	}
	return found, nil
}

// Restore rebuilds a schedule from a persisted snapshot. Codes and section
// ids in snapshots are exact, not prefixes. Any entry that no longer
// resolves against the current catalog fails the whole restore; callers
// decide whether to fall back to an empty schedule.
func (c *Catalog) Restore(snap models.ScheduleSnapshot) (*models.Schedule, error) {
	sched := models.NewSchedule()
	for _, entry := range snap.Selections {
		course, ok := c.byCode[entry.CourseCode]
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "snapshot references unknown course "+entry.CourseCode)
		}
		sel := models.Selection{Course: course}
		for _, id := range entry.SectionIDs {
			secType := models.SectionTypeOf(id)
			section := exactSection(course.SectionsOf(secType), id)
			if section == nil {
				return nil, appErrors.Clone(appErrors.ErrNotFound,
					fmt.Sprintf("snapshot references unknown section %s of %s", id, entry.CourseCode))
			}
			switch secType {
			case models.SectionLecture:
				sel.Lecture = section
			case models.SectionTutorial:
				sel.Tutorial = section
			case models.SectionPractical:
				sel.Practical = section
			}
		}
		if err := sched.Add(sel); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "corrupt snapshot")
		}
	}
	return sched, nil
}

func exactSection(sections []*models.Section, id string) *models.Section {
	for _, section := range sections {
		if section.ID == id {
			return section
		}
	}
	return nil
}

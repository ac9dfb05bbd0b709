package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/campusd/course-planner-api/internal/models"
)

// CourseRepository loads the course catalog from PostgreSQL. It is a pure
// reader: the catalog is immutable for the lifetime of the process, so the
// repository is used exactly once, at startup.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

type courseRow struct {
	Code        string `db:"code"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Term        string `db:"term"`
}

type sectionRow struct {
	CourseCode  string `db:"course_code"`
	ID          string `db:"id"`
	Instructors string `db:"instructors"`
	Notes       string `db:"notes"`
	Enrolled    int    `db:"enrolled"`
	Capacity    int    `db:"capacity"`
	Waitlist    int    `db:"waitlist"`
}

type timeslotRow struct {
	CourseCode    string             `db:"course_code"`
	SectionID     string             `db:"section_id"`
	Weekday       string             `db:"weekday"`
	Start         models.MinuteOfDay `db:"start_time"`
	End           models.MinuteOfDay `db:"end_time"`
	Term          string             `db:"term"`
	RoomPrimary   string             `db:"room_primary"`
	RoomSecondary string             `db:"room_secondary"`
}

// LoadAll reads courses, sections and timeslots and assembles them into the
// immutable catalog list, ordered by course code and section id.
func (r *CourseRepository) LoadAll(ctx context.Context) ([]*models.Course, error) {
	var courseRows []courseRow
	if err := r.db.SelectContext(ctx, &courseRows,
		`SELECT code, name, description, term FROM courses ORDER BY code`); err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}

	var sectionRows []sectionRow
	if err := r.db.SelectContext(ctx, &sectionRows,
		`SELECT course_code, id, instructors, notes, enrolled, capacity, waitlist FROM sections ORDER BY course_code, id`); err != nil {
		return nil, fmt.Errorf("load sections: %w", err)
	}

	var slotRows []timeslotRow
	if err := r.db.SelectContext(ctx, &slotRows,
		`SELECT course_code, section_id, weekday, start_time, end_time, term, room_primary, room_secondary FROM section_timeslots ORDER BY course_code, section_id, weekday, start_time`); err != nil {
		return nil, fmt.Errorf("load timeslots: %w", err)
	}

	courses := make([]*models.Course, 0, len(courseRows))
	courseIdx := make(map[string]*models.Course, len(courseRows))
	for _, row := range courseRows {
		course := &models.Course{
			Code:        row.Code,
			Name:        row.Name,
			Description: row.Description,
			Term:        models.Term(row.Term),
			Sections:    make(map[models.SectionType][]*models.Section),
		}
		courses = append(courses, course)
		courseIdx[course.Code] = course
	}

	sectionIdx := make(map[string]*models.Section, len(sectionRows))
	for _, row := range sectionRows {
		course, ok := courseIdx[row.CourseCode]
		if !ok {
			return nil, fmt.Errorf("section %s references unknown course %s", row.ID, row.CourseCode)
		}
		secType := models.SectionTypeOf(row.ID)
		if secType == "" {
			return nil, fmt.Errorf("section id %q of %s has no LEC/TUT/PRA prefix", row.ID, row.CourseCode)
		}
		section := &models.Section{
			ID:          row.ID,
			Instructors: splitInstructors(row.Instructors),
			Notes:       row.Notes,
			Enrolled:    row.Enrolled,
			Capacity:    row.Capacity,
			Waitlist:    row.Waitlist,
			Closed:      models.ClosedFromNotes(row.Notes),
		}
		course.Sections[secType] = append(course.Sections[secType], section)
		sectionIdx[row.CourseCode+"/"+row.ID] = section
	}

	for _, row := range slotRows {
		section, ok := sectionIdx[row.CourseCode+"/"+row.SectionID]
		if !ok {
			return nil, fmt.Errorf("timeslot references unknown section %s of %s", row.SectionID, row.CourseCode)
		}
		day := models.Weekday(row.Weekday)
		if day.Index() < 0 {
			return nil, fmt.Errorf("timeslot of %s %s: unknown weekday %q", row.CourseCode, row.SectionID, row.Weekday)
		}
		if row.Start >= row.End {
			return nil, fmt.Errorf("timeslot of %s %s: slot %s-%s does not end after it starts",
				row.CourseCode, row.SectionID, row.Start, row.End)
		}
		term := models.Term(row.Term)
		if term != models.TermFall && term != models.TermWinter {
			return nil, fmt.Errorf("timeslot of %s %s: slot term must be F or S, got %q", row.CourseCode, row.SectionID, row.Term)
		}
		section.Timeslots = append(section.Timeslots, models.Timeslot{
			Weekday:       day,
			Start:         row.Start,
			End:           row.End,
			Term:          term,
			RoomPrimary:   row.RoomPrimary,
			RoomSecondary: row.RoomSecondary,
		})
	}

	return courses, nil
}

func splitInstructors(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			out = append(out, name)
		}
	}
	return out
}

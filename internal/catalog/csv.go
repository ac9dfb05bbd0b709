package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/campusd/course-planner-api/internal/models"
)

// csvRecord is one row of the flattened catalog export: one row per
// timeslot, sections without slots appearing once with empty slot columns.
// Rows for the same section repeat the course and section columns.
type csvRecord struct {
	CourseCode    string `csv:"course_code"`
	CourseName    string `csv:"course_name"`
	Description   string `csv:"description"`
	CourseTerm    string `csv:"course_term"`
	SectionID     string `csv:"section_id"`
	Instructors   string `csv:"instructors"`
	Notes         string `csv:"notes"`
	Enrolled      int    `csv:"enrolled"`
	Capacity      int    `csv:"capacity"`
	Waitlist      int    `csv:"waitlist"`
	Weekday       string `csv:"weekday"`
	StartTime     string `csv:"start_time"`
	EndTime       string `csv:"end_time"`
	SlotTerm      string `csv:"slot_term"`
	RoomPrimary   string `csv:"room_primary"`
	RoomSecondary string `csv:"room_secondary"`
}

// LoadCSV reads the flattened catalog CSV produced by the scraper and
// assembles the immutable course list, preserving file order for courses
// and sections.
func LoadCSV(path string) ([]*models.Course, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog csv: %w", err)
	}
	defer f.Close()

	var records []*csvRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("parse catalog csv: %w", err)
	}

	return assemble(records)
}

func assemble(records []*csvRecord) ([]*models.Course, error) {
	var courses []*models.Course
	courseIdx := make(map[string]*models.Course)
	sectionIdx := make(map[string]*models.Section)

	for i, rec := range records {
		if rec.CourseCode == "" || rec.SectionID == "" {
			return nil, fmt.Errorf("catalog csv row %d: missing course_code or section_id", i+2)
		}

		course, ok := courseIdx[rec.CourseCode]
		if !ok {
			term := models.Term(rec.CourseTerm)
			if !term.Valid() {
				return nil, fmt.Errorf("catalog csv row %d: unknown term %q", i+2, rec.CourseTerm)
			}
			course = &models.Course{
				Code:        rec.CourseCode,
				Name:        rec.CourseName,
				Description: rec.Description,
				Term:        term,
				Sections:    make(map[models.SectionType][]*models.Section),
			}
			courseIdx[rec.CourseCode] = course
			courses = append(courses, course)
		}

		secKey := rec.CourseCode + "/" + rec.SectionID
		section, ok := sectionIdx[secKey]
		if !ok {
			secType := models.SectionTypeOf(rec.SectionID)
			if secType == "" {
				return nil, fmt.Errorf("catalog csv row %d: section id %q has no LEC/TUT/PRA prefix", i+2, rec.SectionID)
			}
			section = &models.Section{
				ID:          rec.SectionID,
				Instructors: splitInstructors(rec.Instructors),
				Notes:       rec.Notes,
				Enrolled:    rec.Enrolled,
				Capacity:    rec.Capacity,
				Waitlist:    rec.Waitlist,
				Closed:      models.ClosedFromNotes(rec.Notes),
			}
			sectionIdx[secKey] = section
			course.Sections[secType] = append(course.Sections[secType], section)
		}

		if rec.Weekday == "" {
			// Section with no fixed meeting time.
			continue
		}

		slot, err := buildSlot(rec)
		if err != nil {
			return nil, fmt.Errorf("catalog csv row %d: %w", i+2, err)
		}
		section.Timeslots = append(section.Timeslots, slot)
	}

	return courses, nil
}

func buildSlot(rec *csvRecord) (models.Timeslot, error) {
	start, err := models.ParseMinuteOfDay(rec.StartTime)
	if err != nil {
		return models.Timeslot{}, err
	}
	end, err := models.ParseMinuteOfDay(rec.EndTime)
	if err != nil {
		return models.Timeslot{}, err
	}
	if start >= end {
		return models.Timeslot{}, fmt.Errorf("slot %s-%s does not end after it starts", rec.StartTime, rec.EndTime)
	}
	day := models.Weekday(rec.Weekday)
	if day.Index() < 0 {
		return models.Timeslot{}, fmt.Errorf("unknown weekday %q", rec.Weekday)
	}
	term := models.Term(rec.SlotTerm)
	if term != models.TermFall && term != models.TermWinter {
		return models.Timeslot{}, fmt.Errorf("slot term must be F or S, got %q", rec.SlotTerm)
	}
	return models.Timeslot{
		Weekday:       day,
		Start:         start,
		End:           end,
		Term:          term,
		RoomPrimary:   rec.RoomPrimary,
		RoomSecondary: rec.RoomSecondary,
	}, nil
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

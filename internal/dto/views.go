// Package dto carries the JSON shapes returned by the API. Converters here
// flatten the planner's structured results; human-readable report text is
// attached by the service layer's formatter.
package dto

import (
	"github.com/campusd/course-planner-api/internal/models"
)

// SlotView is one weekly meeting window.
type SlotView struct {
	Weekday string `json:"weekday"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Term    string `json:"term"`
	Room    string `json:"room,omitempty"`
}

// NewSlotView flattens a timeslot. courseTerm picks the displayed room for
// full-year courses.
func NewSlotView(slot models.Timeslot, courseTerm models.Term) SlotView {
	return SlotView{
		Weekday: string(slot.Weekday),
		Start:   slot.Start.String(),
		End:     slot.End.String(),
		Term:    string(slot.Term),
		Room:    slot.Room(courseTerm),
	}
}

// SectionView is one section of a course detail response.
type SectionView struct {
	ID          string     `json:"id"`
	Instructors []string   `json:"instructors,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Enrolled    int        `json:"enrolled"`
	Capacity    int        `json:"capacity"`
	Waitlist    int        `json:"waitlist"`
	Closed      bool       `json:"closed"`
	Open        bool       `json:"open"`
	Timeslots   []SlotView `json:"timeslots"`
}

// NewSectionView flattens a section.
func NewSectionView(sec *models.Section, courseTerm models.Term) SectionView {
	view := SectionView{
		ID:          sec.ID,
		Instructors: sec.Instructors,
		Notes:       sec.Notes,
		Enrolled:    sec.Enrolled,
		Capacity:    sec.Capacity,
		Waitlist:    sec.Waitlist,
		Closed:      sec.IsClosed(),
		Open:        sec.IsOpen(),
		Timeslots:   make([]SlotView, 0, len(sec.Timeslots)),
	}
	for _, slot := range sec.Timeslots {
		view.Timeslots = append(view.Timeslots, NewSlotView(slot, courseTerm))
	}
	return view
}

// CourseSummary identifies a course in listings.
type CourseSummary struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Term string `json:"term"`
}

// NewCourseSummary flattens the identifying fields of a course.
func NewCourseSummary(c *models.Course) CourseSummary {
	return CourseSummary{Code: c.Code, Name: c.Name, Term: string(c.Term)}
}

// CourseDetail is the full course view.
type CourseDetail struct {
	CourseSummary
	Description string                   `json:"description,omitempty"`
	Sections    map[string][]SectionView `json:"sections"`
}

// NewCourseDetail flattens a course with all its sections.
func NewCourseDetail(c *models.Course) CourseDetail {
	detail := CourseDetail{
		CourseSummary: NewCourseSummary(c),
		Description:   c.Description,
		Sections:      make(map[string][]SectionView),
	}
	for _, t := range models.SectionTypes {
		if !c.HasType(t) {
			continue
		}
		views := make([]SectionView, 0, len(c.SectionsOf(t)))
		for _, sec := range c.SectionsOf(t) {
			views = append(views, NewSectionView(sec, c.Term))
		}
		detail.Sections[string(t)] = views
	}
	return detail
}

// SlotConflictView names the existing slot a candidate collided with.
type SlotConflictView struct {
	CourseCode string   `json:"course_code"`
	SectionID  string   `json:"section_id"`
	Slot       SlotView `json:"slot"`
}

// SlotCheckView is the per-slot check outcome.
type SlotCheckView struct {
	Slot     SlotView          `json:"slot"`
	Conflict *SlotConflictView `json:"conflict,omitempty"`
}

// SectionCheckView is the per-section check outcome.
type SectionCheckView struct {
	SectionID    string          `json:"section_id"`
	Full         bool            `json:"full"`
	Closed       bool            `json:"closed"`
	Disqualified bool            `json:"disqualified"`
	Slots        []SlotCheckView `json:"slots"`
}

func newSectionCheckView(chk models.SectionCheck, courseTerm models.Term) SectionCheckView {
	view := SectionCheckView{
		SectionID:    chk.Section.ID,
		Full:         chk.Full,
		Closed:       chk.Closed,
		Disqualified: chk.Disqualified(),
		Slots:        make([]SlotCheckView, 0, len(chk.Slots)),
	}
	for _, slot := range chk.Slots {
		sv := SlotCheckView{Slot: NewSlotView(slot.Slot, courseTerm)}
		if slot.Conflict != nil {
			sv.Conflict = &SlotConflictView{
				CourseCode: slot.Conflict.CourseCode,
				SectionID:  slot.Conflict.SectionID,
				Slot:       NewSlotView(slot.Conflict.Slot, ""),
			}
		}
		view.Slots = append(view.Slots, sv)
	}
	return view
}

// SectionsCheckResult is the response for a candidate-sections check.
type SectionsCheckResult struct {
	CourseCode string             `json:"course_code"`
	OK         bool               `json:"ok"`
	Sections   []SectionCheckView `json:"sections"`
	Report     string             `json:"report"`
}

// NewSectionsCheckResult flattens a structured sections check; the report
// text is attached separately.
func NewSectionsCheckResult(chk models.SectionsCheck, report string) SectionsCheckResult {
	result := SectionsCheckResult{
		CourseCode: chk.Course.Code,
		OK:         chk.OK(),
		Sections:   make([]SectionCheckView, 0, len(chk.Sections)),
		Report:     report,
	}
	for _, sec := range chk.Sections {
		result.Sections = append(result.Sections, newSectionCheckView(sec, chk.Course.Term))
	}
	return result
}

// TypeCheckView is the per-component-type screening outcome.
type TypeCheckView struct {
	Type           string             `json:"type"`
	AllConflicting bool               `json:"all_conflicting"`
	Sections       []SectionCheckView `json:"sections"`
}

// AddableCheckResult is the response for a course-addability screening.
type AddableCheckResult struct {
	Course CourseSummary   `json:"course"`
	OK     bool            `json:"ok"`
	Types  []TypeCheckView `json:"types"`
	Report string          `json:"report"`
}

// NewAddableCheckResult flattens a structured addability check.
func NewAddableCheckResult(chk models.AddableCheck, report string) AddableCheckResult {
	result := AddableCheckResult{
		Course: NewCourseSummary(chk.Course),
		OK:     chk.OK(),
		Types:  make([]TypeCheckView, 0, len(chk.Types)),
		Report: report,
	}
	for _, tc := range chk.Types {
		tv := TypeCheckView{
			Type:           string(tc.Type),
			AllConflicting: tc.AllConflicting(),
			Sections:       make([]SectionCheckView, 0, len(tc.Sections)),
		}
		for _, sec := range tc.Sections {
			tv.Sections = append(tv.Sections, newSectionCheckView(sec, chk.Course.Term))
		}
		result.Types = append(result.Types, tv)
	}
	return result
}

// WeekEntryView is one row of a rendered weekday.
type WeekEntryView struct {
	TimeRange   string `json:"time_range"`
	Start       string `json:"start"`
	End         string `json:"end"`
	CourseCode  string `json:"course_code"`
	SectionID   string `json:"section_id"`
	Room        string `json:"room,omitempty"`
	Instructors string `json:"instructors,omitempty"`
}

// DayView groups entries for one weekday, sorted by start time.
type DayView struct {
	Day     string          `json:"day"`
	Entries []WeekEntryView `json:"entries"`
}

// NewTermWeekView flattens one term's weekday buckets.
func NewTermWeekView(week models.TermWeek) []DayView {
	days := make([]DayView, 0, len(models.Weekdays))
	for i, day := range models.Weekdays {
		view := DayView{Day: day.Display(), Entries: make([]WeekEntryView, 0, len(week[i]))}
		for _, entry := range week[i] {
			view.Entries = append(view.Entries, WeekEntryView{
				TimeRange:   entry.Slot.TimeRange(),
				Start:       entry.Slot.Start.String(),
				End:         entry.Slot.End.String(),
				CourseCode:  entry.Course.Code,
				SectionID:   entry.Section.ID,
				Room:        entry.Slot.Room(entry.Course.Term),
				Instructors: entry.Section.InstructorLine(),
			})
		}
		days = append(days, view)
	}
	return days
}

// SelectionView is one selection of the schedule response.
type SelectionView struct {
	Course     CourseSummary `json:"course"`
	SectionIDs []string      `json:"section_ids"`
}

// ScheduleView is the full schedule response: the selection list plus both
// term grids and the formatted text rendering.
type ScheduleView struct {
	Selections []SelectionView `json:"selections"`
	Fall       []DayView       `json:"fall"`
	Winter     []DayView       `json:"winter"`
	Grid       string          `json:"grid"`
}

// BrowseResult partitions search hits into addable and blocked courses.
type BrowseResult struct {
	Addable []AddableCheckResult `json:"addable"`
	Blocked []AddableCheckResult `json:"blocked"`
}

// AddResult reports the outcome of an add attempt.
type AddResult struct {
	Added     bool                `json:"added"`
	Persisted bool                `json:"persisted"`
	Check     SectionsCheckResult `json:"check"`
	Schedule  *ScheduleView       `json:"schedule,omitempty"`
}

// SessionView is returned on session creation.
type SessionView struct {
	SessionID string `json:"session_id"`
}

// ExportJobView is the state of one async export render.
type ExportJobView struct {
	JobID       string `json:"job_id"`
	SessionID   string `json:"session_id"`
	Format      string `json:"format"`
	State       string `json:"state"`
	DownloadURL string `json:"download_url,omitempty"`
	ExpiresAt   string `json:"expires_at,omitempty"`
	Error       string `json:"error,omitempty"`
}

// ExportDownload carries response metadata for a rendered export file.
type ExportDownload struct {
	ContentType string
	Filename    string
}

package models

import (
	"fmt"
	"sort"
)

// Selection is one course plus its chosen sections within a schedule. A
// component reference is nil when the course does not offer that type.
type Selection struct {
	Course    *Course  `json:"course"`
	Lecture   *Section `json:"lecture,omitempty"`
	Tutorial  *Section `json:"tutorial,omitempty"`
	Practical *Section `json:"practical,omitempty"`
}

// SectionOf returns the chosen section for a component type, or nil.
func (sel Selection) SectionOf(t SectionType) *Section {
	switch t {
	case SectionLecture:
		return sel.Lecture
	case SectionTutorial:
		return sel.Tutorial
	case SectionPractical:
		return sel.Practical
	}
	return nil
}

// ChosenSections returns the non-nil section refs in LEC, TUT, PRA order.
func (sel Selection) ChosenSections() []*Section {
	out := make([]*Section, 0, 3)
	for _, t := range SectionTypes {
		if s := sel.SectionOf(t); s != nil {
			out = append(out, s)
		}
	}
	return out
}

// DuplicateCourseError is returned by Schedule.Add when the course code is
// already present.
type DuplicateCourseError struct {
	CourseCode string
}

// Error implements the error interface.
func (e *DuplicateCourseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("course %s already in schedule", e.CourseCode)
}

// Schedule is the mutable per-session aggregate of selections. It is not
// safe for concurrent use; callers serialize mutations per session.
type Schedule struct {
	selections []Selection
}

// NewSchedule returns an empty schedule.
func NewSchedule() *Schedule {
	return &Schedule{}
}

// Len returns the number of selections.
func (s *Schedule) Len() int {
	return len(s.selections)
}

// Selections returns a copy of the selection list in insertion order.
func (s *Schedule) Selections() []Selection {
	out := make([]Selection, len(s.selections))
	copy(out, s.selections)
	return out
}

// Find returns the selection for a course code, if present.
func (s *Schedule) Find(courseCode string) (Selection, bool) {
	for _, sel := range s.selections {
		if sel.Course.Code == courseCode {
			return sel, true
		}
	}
	return Selection{}, false
}

// Add appends a selection. Conflict and capacity gating is the caller's
// responsibility before calling Add; the only invariant enforced here is at
// most one selection per course code.
func (s *Schedule) Add(sel Selection) error {
	if _, ok := s.Find(sel.Course.Code); ok {
		return &DuplicateCourseError{CourseCode: sel.Course.Code}
	}
	s.selections = append(s.selections, sel)
	return nil
}

// Remove deletes the selection matching the course code. It reports whether
// a match was found; a miss is not fatal.
func (s *Schedule) Remove(courseCode string) bool {
	for i, sel := range s.selections {
		if sel.Course.Code == courseCode {
			s.selections = append(s.selections[:i], s.selections[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops every selection.
func (s *Schedule) Clear() {
	s.selections = nil
}

// WeekEntry is one slot of one chosen section placed on the weekly grid.
type WeekEntry struct {
	Course  *Course  `json:"-"`
	Section *Section `json:"-"`
	Slot    Timeslot `json:"slot"`
}

// TermWeek buckets entries by teaching day, Monday first.
type TermWeek [len(Weekdays)][]WeekEntry

// WeekView rebuilds the weekday-bucketed views for both terms from the
// current selections. A full-year course contributes to both views, each
// slot routed by its own term tag. The views are derived data, recomputed in
// full on every call; they are never authoritative state.
func (s *Schedule) WeekView() (fall, winter TermWeek) {
	for _, sel := range s.selections {
		for _, section := range sel.ChosenSections() {
			for _, slot := range section.Timeslots {
				idx := slot.Weekday.Index()
				if idx < 0 {
					continue
				}
				entry := WeekEntry{Course: sel.Course, Section: section, Slot: slot}
				switch slot.Term {
				case TermFall:
					fall[idx] = append(fall[idx], entry)
				case TermWinter:
					winter[idx] = append(winter[idx], entry)
				}
			}
		}
	}

	for d := range fall {
		sortDay(fall[d])
		sortDay(winter[d])
	}
	return fall, winter
}

func sortDay(day []WeekEntry) {
	sort.SliceStable(day, func(i, j int) bool {
		return day[i].Slot.Start < day[j].Slot.Start
	})
}

// SelectionSnapshot references a selection by course code and chosen
// section ids only, so persisted schedules never duplicate catalog data.
type SelectionSnapshot struct {
	CourseCode string   `json:"course_code"`
	SectionIDs []string `json:"section_ids"`
}

// ScheduleSnapshot is the persisted form of a schedule.
type ScheduleSnapshot struct {
	Selections []SelectionSnapshot `json:"selections"`
}

// Snapshot captures the schedule's selections for persistence.
func (s *Schedule) Snapshot() ScheduleSnapshot {
	snap := ScheduleSnapshot{Selections: make([]SelectionSnapshot, 0, len(s.selections))}
	for _, sel := range s.selections {
		entry := SelectionSnapshot{CourseCode: sel.Course.Code}
		for _, section := range sel.ChosenSections() {
			entry.SectionIDs = append(entry.SectionIDs, section.ID)
		}
		snap.Selections = append(snap.Selections, entry)
	}
	return snap
}

package models

import (
	"fmt"
	"strings"
)

// SectionType identifies a course component: lecture, tutorial, practical.
type SectionType string

const (
	SectionLecture   SectionType = "LEC"
	SectionTutorial  SectionType = "TUT"
	SectionPractical SectionType = "PRA"
)

// SectionTypes lists component types in the fixed order used everywhere a
// selection or a report is walked.
var SectionTypes = [...]SectionType{SectionLecture, SectionTutorial, SectionPractical}

var sectionTypeNames = map[SectionType]string{
	SectionLecture:   "Lectures",
	SectionTutorial:  "Tutorials",
	SectionPractical: "Practicals",
}

// Display returns the plural display name for the component type.
func (t SectionType) Display() string {
	if n, ok := sectionTypeNames[t]; ok {
		return n
	}
	return string(t)
}

// SectionTypeOf derives the component type from a section id prefix
// (LEC0101 → LEC). The empty type is returned for ids with no known prefix.
func SectionTypeOf(sectionID string) SectionType {
	for _, t := range SectionTypes {
		if strings.HasPrefix(sectionID, string(t)) {
			return t
		}
	}
	return ""
}

// Section is one offering of a course component. Immutable after catalog
// load; the planner only ever reads it.
//
// Timeslots may be empty: online/asynchronous sections legitimately meet at
// no fixed time and can never conflict with anything.
type Section struct {
	ID          string     `json:"id"`
	Instructors []string   `json:"instructors"`
	Notes       string     `json:"notes,omitempty"`
	Enrolled    int        `json:"enrolled"`
	Capacity    int        `json:"capacity"`
	Waitlist    int        `json:"waitlist"`
	Closed      bool       `json:"closed"`
	Timeslots   []Timeslot `json:"timeslots"`
}

// ClosedFromNotes derives the administrative-closure flag from the source
// notes field at load time.
func ClosedFromNotes(notes string) bool {
	return strings.Contains(notes, "Closed")
}

// IsOpen reports whether the section still has room. Enrollment above
// capacity is real-world waitlist overflow, not invalid data.
func (s *Section) IsOpen() bool {
	return s.Enrolled < s.Capacity
}

// IsClosed reports administrative closure. Independent of capacity: a
// section can be closed while under capacity, or full while not closed.
func (s *Section) IsClosed() bool {
	return s.Closed
}

// Type returns the component type encoded in the section id.
func (s *Section) Type() SectionType {
	return SectionTypeOf(s.ID)
}

// InstructorLine joins instructor names the way the source timetable
// displays them.
func (s *Section) InstructorLine() string {
	return strings.Join(s.Instructors, " | ")
}

// EnrollmentLine renders "441/450 (0)": enrolled/capacity (waitlist).
func (s *Section) EnrollmentLine() string {
	return fmt.Sprintf("%d/%d (%d)", s.Enrolled, s.Capacity, s.Waitlist)
}

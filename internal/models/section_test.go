package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionTypeOf(t *testing.T) {
	assert.Equal(t, SectionLecture, SectionTypeOf("LEC0101"))
	assert.Equal(t, SectionTutorial, SectionTypeOf("TUT5102"))
	assert.Equal(t, SectionPractical, SectionTypeOf("PRA0001"))
	assert.Equal(t, SectionType(""), SectionTypeOf("SEM0101"))
}

func TestSectionCapacityAndClosure(t *testing.T) {
	sec := &Section{ID: "LEC0101", Enrolled: 441, Capacity: 450}
	assert.True(t, sec.IsOpen())
	assert.False(t, sec.IsClosed())

	sec.Enrolled = 450
	assert.False(t, sec.IsOpen())

	// Waitlist overflow above capacity is real data, still not open.
	sec.Enrolled = 460
	assert.False(t, sec.IsOpen())

	assert.True(t, ClosedFromNotes("Enrolment Closed"))
	assert.False(t, ClosedFromNotes("Restricted to first years"))
	assert.False(t, ClosedFromNotes(""))
}

func TestSectionDisplayLines(t *testing.T) {
	sec := &Section{
		ID:          "LEC0101",
		Instructors: []string{"D Liu", "J Smith"},
		Enrolled:    441,
		Capacity:    450,
		Waitlist:    0,
	}
	assert.Equal(t, "D Liu | J Smith", sec.InstructorLine())
	assert.Equal(t, "441/450 (0)", sec.EnrollmentLine())
	assert.Equal(t, SectionLecture, sec.Type())
}

func TestCourseTypeCount(t *testing.T) {
	course := &Course{
		Code: "CSC101",
		Sections: map[SectionType][]*Section{
			SectionLecture:   {{ID: "LEC0101"}},
			SectionPractical: nil,
		},
	}
	assert.True(t, course.HasType(SectionLecture))
	assert.False(t, course.HasType(SectionTutorial))
	assert.Equal(t, 1, course.TypeCount())
}

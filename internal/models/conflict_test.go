package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSelectionEmptySchedule(t *testing.T) {
	sched := NewSchedule()
	csc, cscLec := lectureCourse("CSC101", TermFall, "LEC0101",
		slot(t, Monday, "14:00", "15:00", TermFall),
	)

	check := sched.CheckSelection(Selection{Course: csc, Lecture: cscLec}, false)
	assert.True(t, check.OK())
	require.Len(t, check.Sections, 1)
	require.Len(t, check.Sections[0].Slots, 1)
	assert.Nil(t, check.Sections[0].Slots[0].Conflict)
}

func TestCheckSelectionConflict(t *testing.T) {
	sched := NewSchedule()
	csc, cscLec := lectureCourse("CSC101", TermFall, "LEC0101",
		slot(t, Monday, "14:00", "15:00", TermFall),
	)
	require.NoError(t, sched.Add(Selection{Course: csc, Lecture: cscLec}))

	mat, matLec := lectureCourse("MAT200", TermFall, "LEC0201",
		slot(t, Monday, "14:30", "15:30", TermFall),
	)

	check := sched.CheckSelection(Selection{Course: mat, Lecture: matLec}, false)
	assert.False(t, check.OK())

	require.Len(t, check.Sections, 1)
	sec := check.Sections[0]
	assert.True(t, sec.HasConflict())
	assert.False(t, sec.Full)
	assert.False(t, sec.Closed)

	require.Len(t, sec.Slots, 1)
	conflict := sec.Slots[0].Conflict
	require.NotNil(t, conflict)
	assert.Equal(t, "CSC101", conflict.CourseCode)
	assert.Equal(t, "LEC0101", conflict.SectionID)
	assert.Equal(t, mustMinute(t, "14:00"), conflict.Slot.Start)
}

func TestCheckSelectionBoundaryTouchIsFine(t *testing.T) {
	sched := NewSchedule()
	csc, cscLec := lectureCourse("CSC101", TermFall, "LEC0101",
		slot(t, Monday, "14:00", "15:00", TermFall),
	)
	require.NoError(t, sched.Add(Selection{Course: csc, Lecture: cscLec}))

	mat, matLec := lectureCourse("MAT200", TermFall, "LEC0201",
		slot(t, Monday, "15:00", "16:00", TermFall),
	)

	check := sched.CheckSelection(Selection{Course: mat, Lecture: matLec}, false)
	assert.True(t, check.OK(), "a slot starting exactly when another ends does not conflict")
}

func TestCheckSelectionFirstConflictWins(t *testing.T) {
	sched := NewSchedule()
	first, firstLec := lectureCourse("CSC101", TermFall, "LEC0101",
		slot(t, Monday, "14:00", "15:00", TermFall),
	)
	second, secondLec := lectureCourse("MAT200", TermFall, "LEC0201",
		slot(t, Monday, "14:00", "15:00", TermFall),
	)
	require.NoError(t, sched.Add(Selection{Course: first, Lecture: firstLec}))
	// Both fall at the same time, which the check gate normally prevents;
	// the scan itself does not care.
	require.NoError(t, sched.Add(Selection{Course: second, Lecture: secondLec}))

	phy, phyLec := lectureCourse("PHY100", TermFall, "LEC0301",
		slot(t, Monday, "14:30", "15:30", TermFall),
	)
	check := sched.CheckSelection(Selection{Course: phy, Lecture: phyLec}, false)
	conflict := check.Sections[0].Slots[0].Conflict
	require.NotNil(t, conflict)
	assert.Equal(t, "CSC101", conflict.CourseCode, "insertion order decides which conflict is reported")
}

func TestCheckSelectionCapacityAndClosure(t *testing.T) {
	sched := NewSchedule()

	full := &Section{ID: "LEC0101", Enrolled: 450, Capacity: 450}
	closed := &Section{ID: "LEC0102", Enrolled: 10, Capacity: 100, Closed: true}
	fullAndClosed := &Section{ID: "LEC0103", Enrolled: 450, Capacity: 450, Closed: true}
	course := &Course{
		Code:     "CSC101",
		Term:     TermFall,
		Sections: map[SectionType][]*Section{SectionLecture: {full, closed, fullAndClosed}},
	}

	check := sched.CheckSections(course, []*Section{full, closed, fullAndClosed}, false)
	assert.False(t, check.OK())
	require.Len(t, check.Sections, 3)
	assert.True(t, check.Sections[0].Full)
	assert.False(t, check.Sections[0].Closed)
	assert.True(t, check.Sections[1].Closed)
	assert.True(t, check.Sections[2].Full)
	assert.False(t, check.Sections[2].Closed, "full wins over closed when both apply")

	relaxed := sched.CheckSections(course, []*Section{full, closed, fullAndClosed}, true)
	assert.True(t, relaxed.OK(), "override skips the capacity and closure gates")
}

func TestCheckSelectionOverrideStillChecksOverlap(t *testing.T) {
	sched := NewSchedule()
	csc, cscLec := lectureCourse("CSC101", TermFall, "LEC0101",
		slot(t, Monday, "14:00", "15:00", TermFall),
	)
	require.NoError(t, sched.Add(Selection{Course: csc, Lecture: cscLec}))

	mat, matLec := lectureCourse("MAT200", TermFall, "LEC0201",
		slot(t, Monday, "14:00", "15:00", TermFall),
	)
	matLec.Enrolled = matLec.Capacity

	check := sched.CheckSelection(Selection{Course: mat, Lecture: matLec}, true)
	assert.False(t, check.OK(), "the override never bypasses overlap gating")
}

func TestCheckSectionsSkipsNilEntries(t *testing.T) {
	sched := NewSchedule()
	csc, cscLec := lectureCourse("CSC101", TermFall, "LEC0101")

	check := sched.CheckSections(csc, []*Section{nil, cscLec, nil}, false)
	require.Len(t, check.Sections, 1)
	assert.Equal(t, "LEC0101", check.Sections[0].Section.ID)
}

func TestCheckAddable(t *testing.T) {
	sched := NewSchedule()
	busy, busyLec := lectureCourse("CSC101", TermFall, "LEC0101",
		slot(t, Monday, "14:00", "15:00", TermFall),
	)
	require.NoError(t, sched.Add(Selection{Course: busy, Lecture: busyLec}))

	// Lecture A collides, lecture B is free, the sole tutorial collides.
	lecA := &Section{ID: "LEC0201", Capacity: 50, Timeslots: []Timeslot{slot(t, Monday, "14:00", "15:00", TermFall)}}
	lecB := &Section{ID: "LEC0202", Capacity: 50, Timeslots: []Timeslot{slot(t, Tuesday, "14:00", "15:00", TermFall)}}
	tut := &Section{ID: "TUT0201", Capacity: 50, Timeslots: []Timeslot{slot(t, Monday, "14:30", "15:00", TermFall)}}
	course := &Course{
		Code: "MAT200",
		Name: "Linear Algebra",
		Term: TermFall,
		Sections: map[SectionType][]*Section{
			SectionLecture:  {lecA, lecB},
			SectionTutorial: {tut},
		},
	}

	check := sched.CheckAddable(course)
	assert.False(t, check.OK(), "a fully blocked tutorial group blocks the course")
	require.Len(t, check.Types, 2)
	assert.Equal(t, SectionLecture, check.Types[0].Type)
	assert.False(t, check.Types[0].AllConflicting())
	assert.Equal(t, SectionTutorial, check.Types[1].Type)
	assert.True(t, check.Types[1].AllConflicting())
}

func TestCheckAddableOptimisticPerType(t *testing.T) {
	sched := NewSchedule()
	busy, busyLec := lectureCourse("CSC101", TermFall, "LEC0101",
		slot(t, Monday, "14:00", "15:00", TermFall),
	)
	require.NoError(t, sched.Add(Selection{Course: busy, Lecture: busyLec}))

	// The only free lecture and the only free tutorial collide with each
	// other, so no real combination exists. The per-type screen still
	// passes: it never cross-checks types.
	lecFree := &Section{ID: "LEC0201", Capacity: 50, Timeslots: []Timeslot{slot(t, Tuesday, "10:00", "11:00", TermFall)}}
	lecBusy := &Section{ID: "LEC0202", Capacity: 50, Timeslots: []Timeslot{slot(t, Monday, "14:00", "15:00", TermFall)}}
	tutFree := &Section{ID: "TUT0201", Capacity: 50, Timeslots: []Timeslot{slot(t, Tuesday, "10:00", "11:00", TermFall)}}
	tutBusy := &Section{ID: "TUT0202", Capacity: 50, Timeslots: []Timeslot{slot(t, Monday, "14:00", "15:00", TermFall)}}
	course := &Course{
		Code: "MAT200",
		Term: TermFall,
		Sections: map[SectionType][]*Section{
			SectionLecture:  {lecFree, lecBusy},
			SectionTutorial: {tutFree, tutBusy},
		},
	}

	check := sched.CheckAddable(course)
	assert.True(t, check.OK())
}

func TestCheckAddableEmptySchedule(t *testing.T) {
	sched := NewSchedule()
	course, _ := lectureCourse("CSC101", TermFall, "LEC0101",
		slot(t, Monday, "14:00", "15:00", TermFall),
	)
	assert.True(t, sched.CheckAddable(course).OK())
}

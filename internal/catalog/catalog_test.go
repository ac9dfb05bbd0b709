package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusd/course-planner-api/internal/models"
	appErrors "github.com/campusd/course-planner-api/pkg/errors"
)

func testCourses(t *testing.T) []*models.Course {
	t.Helper()

	mo14, err := models.ParseMinuteOfDay("14:00")
	require.NoError(t, err)
	mo15, err := models.ParseMinuteOfDay("15:00")
	require.NoError(t, err)

	csc101 := &models.Course{
		Code: "CSC101", Name: "Intro to Computer Science", Term: models.TermFall,
		Sections: map[models.SectionType][]*models.Section{
			models.SectionLecture: {
				{ID: "LEC0101", Capacity: 100, Timeslots: []models.Timeslot{{
					Weekday: models.Monday, Start: mo14, End: mo15, Term: models.TermFall,
				}}},
				{ID: "LEC0102", Capacity: 100},
			},
			models.SectionTutorial: {
				{ID: "TUT0101", Capacity: 30},
				{ID: "TUT0201", Capacity: 30},
			},
		},
	}
	csc200 := &models.Course{
		Code: "CSC200", Name: "Software Design", Term: models.TermWinter,
		Sections: map[models.SectionType][]*models.Section{
			models.SectionLecture: {{ID: "LEC0101", Capacity: 80}},
		},
	}
	mat200 := &models.Course{
		Code: "MAT200", Name: "Linear Algebra", Term: models.TermFall,
		Sections: map[models.SectionType][]*models.Section{
			models.SectionLecture: {{ID: "LEC0201", Capacity: 120}},
		},
	}
	return []*models.Course{csc101, csc200, mat200}
}

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := New(testCourses(t))
	require.NoError(t, err)
	return cat
}

func TestNewRejectsDuplicateCodes(t *testing.T) {
	courses := testCourses(t)
	courses = append(courses, &models.Course{Code: "CSC101"})
	_, err := New(courses)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CSC101")
}

func TestGetByPrefix(t *testing.T) {
	cat := newTestCatalog(t)

	course, err := cat.GetByPrefix("MAT")
	require.NoError(t, err)
	assert.Equal(t, "MAT200", course.Code)

	course, err = cat.GetByPrefix("CSC101")
	require.NoError(t, err)
	assert.Equal(t, "CSC101", course.Code, "an exact code is a valid prefix of itself")

	_, err = cat.GetByPrefix("CSC")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrAmbiguous), "CSC matches CSC101 and CSC200")

	_, err = cat.GetByPrefix("PHY")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestSearch(t *testing.T) {
	cat := newTestCatalog(t)

	hits := cat.Search("CSC")
	require.Len(t, hits, 2)
	assert.Equal(t, "CSC101", hits[0].Code, "load order is preserved")

	hits = cat.Search("csc", "design")
	require.Len(t, hits, 1)
	assert.Equal(t, "CSC200", hits[0].Code)

	assert.Empty(t, cat.Search("csc", "algebra"), "every keyword must match")
	assert.Len(t, cat.Search(), 3, "no keywords matches everything")
	assert.Len(t, cat.Search("", "  "), 3, "blank keywords are ignored")
}

func TestResolveSelection(t *testing.T) {
	cat := newTestCatalog(t)

	sel, err := cat.ResolveSelection("CSC101", []string{"LEC0101", "TUT02"})
	require.NoError(t, err)
	assert.Equal(t, "CSC101", sel.Course.Code)
	assert.Equal(t, "LEC0101", sel.Lecture.ID)
	assert.Equal(t, "TUT0201", sel.Tutorial.ID, "section prefixes resolve within their type")
	assert.Nil(t, sel.Practical)
}

func TestResolveSelectionErrors(t *testing.T) {
	cat := newTestCatalog(t)

	tests := []struct {
		name     string
		course   string
		sections []string
		sentinel *appErrors.Error
	}{
		{"unknown course", "PHY", []string{"LEC0101"}, appErrors.ErrNotFound},
		{"ambiguous course", "CSC", []string{"LEC0101"}, appErrors.ErrAmbiguous},
		{"duplicate pick", "CSC101", []string{"LEC0101", "LEC0101"}, appErrors.ErrInvalidSelection},
		{"too few picks", "CSC101", []string{"LEC0101"}, appErrors.ErrInvalidSelection},
		{"too many picks", "MAT200", []string{"LEC0201", "TUT0101"}, appErrors.ErrInvalidSelection},
		{"unknown prefix kind", "MAT200", []string{"SEM0101"}, appErrors.ErrInvalidSelection},
		{"type not offered", "CSC200", []string{"TUT0101"}, appErrors.ErrInvalidSelection},
		{"two picks one type", "CSC101", []string{"LEC0101", "LEC0102"}, appErrors.ErrInvalidSelection},
		{"ambiguous section", "CSC101", []string{"LEC01", "TUT0101"}, appErrors.ErrAmbiguous},
		{"unknown section", "CSC101", []string{"LEC0199", "TUT0101"}, appErrors.ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := cat.ResolveSelection(tc.course, tc.sections)
			require.Error(t, err)
			assert.True(t, appErrors.Is(err, tc.sentinel), "got %v", err)
		})
	}
}

func TestRestore(t *testing.T) {
	cat := newTestCatalog(t)

	snap := models.ScheduleSnapshot{Selections: []models.SelectionSnapshot{
		{CourseCode: "CSC101", SectionIDs: []string{"LEC0101", "TUT0201"}},
		{CourseCode: "MAT200", SectionIDs: []string{"LEC0201"}},
	}}

	sched, err := cat.Restore(snap)
	require.NoError(t, err)
	assert.Equal(t, 2, sched.Len())

	sel, ok := sched.Find("CSC101")
	require.True(t, ok)
	assert.Equal(t, "TUT0201", sel.Tutorial.ID)
}

func TestRestoreStaleSnapshot(t *testing.T) {
	cat := newTestCatalog(t)

	_, err := cat.Restore(models.ScheduleSnapshot{Selections: []models.SelectionSnapshot{
		{CourseCode: "GONE101", SectionIDs: []string{"LEC0101"}},
	}})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	_, err = cat.Restore(models.ScheduleSnapshot{Selections: []models.SelectionSnapshot{
		{CourseCode: "CSC101", SectionIDs: []string{"LEC0199"}},
	}})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound), "snapshot ids are exact, never prefixes")
}

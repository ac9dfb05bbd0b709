package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusd/course-planner-api/internal/models"
)

const csvHeader = "course_code,course_name,description,course_term,section_id,instructors,notes,enrolled,capacity,waitlist,weekday,start_time,end_time,slot_term,room_primary,room_secondary\n"

func writeCatalogCSV(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvHeader+rows), 0o600))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCatalogCSV(t,
		`CSC101,Intro to Computer Science,First course in CS,F,LEC0101,D Liu|J Smith,,441,450,0,MO,14:00,15:00,F,BA1130,
CSC101,Intro to Computer Science,First course in CS,F,LEC0101,D Liu|J Smith,,441,450,0,WE,14:00,15:00,F,BA1130,
CSC101,Intro to Computer Science,First course in CS,F,TUT0101,,,25,30,0,,,,,,
ANT100,Intro Anthropology,,Y,LEC0101,M Mendez,Enrolment Closed,500,500,12,TU,10:00,11:00,F,MS2158,
ANT100,Intro Anthropology,,Y,LEC0101,M Mendez,Enrolment Closed,500,500,12,TU,10:00,11:00,S,MS2158,GB404
`)

	courses, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, courses, 2)

	csc := courses[0]
	assert.Equal(t, "CSC101", csc.Code)
	assert.Equal(t, models.TermFall, csc.Term)

	lecs := csc.SectionsOf(models.SectionLecture)
	require.Len(t, lecs, 1, "repeated rows fold into one section")
	assert.Equal(t, []string{"D Liu", "J Smith"}, lecs[0].Instructors)
	require.Len(t, lecs[0].Timeslots, 2)
	assert.Equal(t, models.Monday, lecs[0].Timeslots[0].Weekday)
	assert.Equal(t, models.Wednesday, lecs[0].Timeslots[1].Weekday)

	tuts := csc.SectionsOf(models.SectionTutorial)
	require.Len(t, tuts, 1)
	assert.Empty(t, tuts[0].Timeslots, "blank weekday means no fixed meeting time")
	assert.Nil(t, tuts[0].Instructors)

	ant := courses[1]
	assert.Equal(t, models.TermFullYear, ant.Term)
	antLec := ant.SectionsOf(models.SectionLecture)[0]
	assert.True(t, antLec.Closed, "closure is derived from the notes column")
	require.Len(t, antLec.Timeslots, 2)
	assert.Equal(t, models.TermFall, antLec.Timeslots[0].Term)
	assert.Equal(t, models.TermWinter, antLec.Timeslots[1].Term)
	assert.Equal(t, "GB404", antLec.Timeslots[1].RoomSecondary)
}

func TestLoadCSVRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"missing section id", `CSC101,Intro,,F,,,,10,100,0,MO,14:00,15:00,F,,`},
		{"unknown course term", `CSC101,Intro,,X,LEC0101,,,10,100,0,MO,14:00,15:00,F,,`},
		{"unknown section prefix", `CSC101,Intro,,F,SEM0101,,,10,100,0,MO,14:00,15:00,F,,`},
		{"bad start time", `CSC101,Intro,,F,LEC0101,,,10,100,0,MO,25:00,15:00,F,,`},
		{"end before start", `CSC101,Intro,,F,LEC0101,,,10,100,0,MO,15:00,14:00,F,,`},
		{"unknown weekday", `CSC101,Intro,,F,LEC0101,,,10,100,0,SU,14:00,15:00,F,,`},
		{"full-year slot term", `CSC101,Intro,,F,LEC0101,,,10,100,0,MO,14:00,15:00,Y,,`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadCSV(writeCatalogCSV(t, tc.row+"\n"))
			assert.Error(t, err)
		})
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

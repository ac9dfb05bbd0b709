package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusd/course-planner-api/internal/models"
)

func newCourseRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestCourseRepositoryLoadAll(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT code, name, description, term FROM courses").
		WillReturnRows(sqlmock.NewRows([]string{"code", "name", "description", "term"}).
			AddRow("ANT100", "Intro Anthropology", "", "Y").
			AddRow("CSC101", "Intro to Computer Science", "First course in CS", "F"))

	mock.ExpectQuery("SELECT course_code, id, instructors").
		WillReturnRows(sqlmock.NewRows([]string{"course_code", "id", "instructors", "notes", "enrolled", "capacity", "waitlist"}).
			AddRow("ANT100", "LEC0101", "M Mendez", "Enrolment Closed", 500, 500, 12).
			AddRow("CSC101", "LEC0101", "D Liu|J Smith", "", 441, 450, 0).
			AddRow("CSC101", "TUT0101", "", "", 25, 30, 0))

	mock.ExpectQuery("SELECT course_code, section_id, weekday").
		WillReturnRows(sqlmock.NewRows([]string{"course_code", "section_id", "weekday", "start_time", "end_time", "term", "room_primary", "room_secondary"}).
			AddRow("ANT100", "LEC0101", "TU", "10:00", "11:00", "F", "MS2158", "").
			AddRow("ANT100", "LEC0101", "TU", "10:00", "11:00", "S", "MS2158", "GB404").
			AddRow("CSC101", "LEC0101", "MO", "14:00", "15:00", "F", "BA1130", ""))

	repo := NewCourseRepository(db)
	courses, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	require.NoError(t, mock.ExpectationsWereMet())

	ant := courses[0]
	assert.Equal(t, "ANT100", ant.Code)
	assert.Equal(t, models.TermFullYear, ant.Term)
	antLec := ant.SectionsOf(models.SectionLecture)[0]
	assert.True(t, antLec.Closed)
	assert.Equal(t, []string{"M Mendez"}, antLec.Instructors)
	require.Len(t, antLec.Timeslots, 2)
	assert.Equal(t, models.TermWinter, antLec.Timeslots[1].Term)
	assert.Equal(t, "GB404", antLec.Timeslots[1].RoomSecondary)

	csc := courses[1]
	cscLec := csc.SectionsOf(models.SectionLecture)[0]
	assert.Equal(t, []string{"D Liu", "J Smith"}, cscLec.Instructors)
	require.Len(t, cscLec.Timeslots, 1)
	start, err := models.ParseMinuteOfDay("14:00")
	require.NoError(t, err)
	assert.Equal(t, start, cscLec.Timeslots[0].Start)

	tut := csc.SectionsOf(models.SectionTutorial)[0]
	assert.Empty(t, tut.Timeslots)
}

func TestCourseRepositoryLoadAllQueryError(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT code, name, description, term FROM courses").
		WillReturnError(errors.New("connection reset"))

	_, err := NewCourseRepository(db).LoadAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load courses")
}

func TestCourseRepositoryLoadAllRejectsBadTimeslot(t *testing.T) {
	cases := []struct {
		name    string
		weekday string
		start   string
		end     string
		term    string
		wantErr string
	}{
		{"unknown weekday", "XX", "10:00", "11:00", "F", "unknown weekday"},
		{"inverted times", "MO", "11:00", "10:00", "F", "does not end after it starts"},
		{"zero-length slot", "MO", "10:00", "10:00", "F", "does not end after it starts"},
		{"full-year slot term", "MO", "10:00", "11:00", "Y", "term must be F or S"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, cleanup := newCourseRepoMock(t)
			defer cleanup()

			mock.ExpectQuery("SELECT code, name, description, term FROM courses").
				WillReturnRows(sqlmock.NewRows([]string{"code", "name", "description", "term"}).
					AddRow("CSC101", "Intro to Computer Science", "", "F"))
			mock.ExpectQuery("SELECT course_code, id, instructors").
				WillReturnRows(sqlmock.NewRows([]string{"course_code", "id", "instructors", "notes", "enrolled", "capacity", "waitlist"}).
					AddRow("CSC101", "LEC0101", "", "", 0, 10, 0))
			mock.ExpectQuery("SELECT course_code, section_id, weekday").
				WillReturnRows(sqlmock.NewRows([]string{"course_code", "section_id", "weekday", "start_time", "end_time", "term", "room_primary", "room_secondary"}).
					AddRow("CSC101", "LEC0101", tc.weekday, tc.start, tc.end, tc.term, "", ""))

			_, err := NewCourseRepository(db).LoadAll(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestCourseRepositoryLoadAllOrphanSection(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()

	mock.ExpectQuery("SELECT code, name, description, term FROM courses").
		WillReturnRows(sqlmock.NewRows([]string{"code", "name", "description", "term"}))
	mock.ExpectQuery("SELECT course_code, id, instructors").
		WillReturnRows(sqlmock.NewRows([]string{"course_code", "id", "instructors", "notes", "enrolled", "capacity", "waitlist"}).
			AddRow("CSC101", "LEC0101", "", "", 0, 10, 0))
	mock.ExpectQuery("SELECT course_code, section_id, weekday").
		WillReturnRows(sqlmock.NewRows([]string{"course_code", "section_id", "weekday", "start_time", "end_time", "term", "room_primary", "room_secondary"}))

	_, err := NewCourseRepository(db).LoadAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown course")
}

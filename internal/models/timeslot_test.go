package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMinute(t *testing.T, s string) MinuteOfDay {
	t.Helper()
	m, err := ParseMinuteOfDay(s)
	require.NoError(t, err)
	return m
}

func TestParseMinuteOfDay(t *testing.T) {
	m, err := ParseMinuteOfDay("14:30")
	require.NoError(t, err)
	assert.Equal(t, MinuteOfDay(14*60+30), m)

	m, err = ParseMinuteOfDay("00:00")
	require.NoError(t, err)
	assert.Equal(t, MinuteOfDay(0), m)

	for _, bad := range []string{"", "14", "25:00", "14:60", "banana"} {
		_, err := ParseMinuteOfDay(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestMinuteOfDayRendering(t *testing.T) {
	assert.Equal(t, "09:05", MinuteOfDay(9*60+5).String())
	assert.Equal(t, "9:05a", MinuteOfDay(9*60+5).Display())
	assert.Equal(t, "2:00p", MinuteOfDay(14*60).Display())
	assert.Equal(t, "12:00p", MinuteOfDay(12*60).Display())
	assert.Equal(t, "12:30a", MinuteOfDay(30).Display())
}

func TestMinuteOfDayJSONRoundTrip(t *testing.T) {
	raw, err := json.Marshal(MinuteOfDay(17 * 60))
	require.NoError(t, err)
	assert.Equal(t, `"17:00"`, string(raw))

	var m MinuteOfDay
	require.NoError(t, json.Unmarshal([]byte(`"08:15"`), &m))
	assert.Equal(t, MinuteOfDay(8*60+15), m)

	assert.Error(t, json.Unmarshal([]byte(`"late"`), &m))
}

func TestTermDisplay(t *testing.T) {
	assert.Equal(t, "Fall term", TermFall.Display())
	assert.Equal(t, "Winter term", TermWinter.Display())
	assert.Equal(t, "Full year", TermFullYear.Display())
	assert.True(t, TermFall.Valid())
	assert.False(t, Term("X").Valid())
}

func TestWeekdayIndex(t *testing.T) {
	assert.Equal(t, 0, Monday.Index())
	assert.Equal(t, 4, Friday.Index())
	assert.Equal(t, -1, Weekday("SA").Index())
	assert.Equal(t, "THU", Thursday.Display())
}

func slot(t *testing.T, day Weekday, start, end string, term Term) Timeslot {
	t.Helper()
	return Timeslot{
		Weekday: day,
		Start:   mustMinute(t, start),
		End:     mustMinute(t, end),
		Term:    term,
	}
}

func TestTimeslotOverlaps(t *testing.T) {
	base := slot(t, Monday, "14:00", "15:00", TermFall)

	tests := []struct {
		name  string
		other Timeslot
		want  bool
	}{
		{"partial overlap", slot(t, Monday, "14:30", "15:30", TermFall), true},
		{"identical", slot(t, Monday, "14:00", "15:00", TermFall), true},
		{"contained", slot(t, Monday, "14:15", "14:45", TermFall), true},
		{"containing", slot(t, Monday, "13:00", "16:00", TermFall), true},
		{"back to back after", slot(t, Monday, "15:00", "16:00", TermFall), false},
		{"back to back before", slot(t, Monday, "13:00", "14:00", TermFall), false},
		{"different weekday", slot(t, Tuesday, "14:00", "15:00", TermFall), false},
		{"different term", slot(t, Monday, "14:00", "15:00", TermWinter), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestTimeslotRoom(t *testing.T) {
	s := slot(t, Monday, "10:00", "11:00", TermWinter)
	s.RoomPrimary = "BA1130"
	s.RoomSecondary = "GB404"

	assert.Equal(t, "GB404", s.Room(TermFullYear))
	assert.Equal(t, "BA1130", s.Room(TermWinter), "secondary room only applies to full-year courses")

	s.RoomSecondary = ""
	assert.Equal(t, "BA1130", s.Room(TermFullYear))

	fall := slot(t, Monday, "10:00", "11:00", TermFall)
	fall.RoomPrimary = "BA1130"
	fall.RoomSecondary = "GB404"
	assert.Equal(t, "BA1130", fall.Room(TermFullYear), "fall half always meets in the primary room")
}

func TestTimeslotStrings(t *testing.T) {
	s := slot(t, Thursday, "17:00", "19:00", TermFall)
	s.RoomPrimary = "DH2020"
	assert.Equal(t, "TH 17:00-19:00 DH2020", s.String())
	assert.Equal(t, "5:00p - 7:00p", s.TimeRange())

	noRoom := slot(t, Monday, "09:00", "10:00", TermFall)
	assert.Equal(t, "MO 09:00-10:00", noRoom.String())
}

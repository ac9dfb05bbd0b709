package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Term tags a course or a single weekly slot. Full-year courses never tag
// their slots with TermFullYear: each slot carries the sub-term it actually
// meets in, so overlap checks always compare concrete terms.
type Term string

const (
	TermFall     Term = "F"
	TermWinter   Term = "S"
	TermFullYear Term = "Y"
)

// Valid reports whether the term is one of the known tags.
func (t Term) Valid() bool {
	switch t {
	case TermFall, TermWinter, TermFullYear:
		return true
	}
	return false
}

// Display returns the long form used in rendered schedules.
func (t Term) Display() string {
	switch t {
	case TermFall:
		return "Fall term"
	case TermWinter:
		return "Winter term"
	case TermFullYear:
		return "Full year"
	}
	return string(t)
}

// Weekday is the timetable's two-letter day code. Only teaching days
// (Monday through Friday) exist in source data.
type Weekday string

const (
	Monday    Weekday = "MO"
	Tuesday   Weekday = "TU"
	Wednesday Weekday = "WE"
	Thursday  Weekday = "TH"
	Friday    Weekday = "FR"
)

// Weekdays lists teaching days in calendar order.
var Weekdays = [...]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayIndex = map[Weekday]int{Monday: 0, Tuesday: 1, Wednesday: 2, Thursday: 3, Friday: 4}

var weekdayDisplay = [...]string{"MON", "TUE", "WED", "THU", "FRI"}

// Index returns the 0-based position of the day within the teaching week,
// or -1 for an unknown code.
func (w Weekday) Index() int {
	if i, ok := weekdayIndex[w]; ok {
		return i
	}
	return -1
}

// Display returns the three-letter header used in rendered schedules.
func (w Weekday) Display() string {
	if i := w.Index(); i >= 0 {
		return weekdayDisplay[i]
	}
	return string(w)
}

// MinuteOfDay is a clock time expressed as minutes since midnight. Source
// timetables carry times as 24-hour HH:MM strings; keeping them as a single
// integer makes interval comparison trivial.
type MinuteOfDay int

// ParseMinuteOfDay parses a 24-hour "HH:MM" string.
func ParseMinuteOfDay(s string) (MinuteOfDay, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	var h, m int
	if _, err := fmt.Sscanf(parts[0]+" "+parts[1], "%d %d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return MinuteOfDay(h*60 + m), nil
}

// String renders the 24-hour HH:MM form.
func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// Display renders the short 12-hour form used in schedule grids, e.g.
// "2:00p" or "10:30a".
func (m MinuteOfDay) Display() string {
	h := int(m) / 60
	min := int(m) % 60
	suffix := "a"
	if h >= 12 {
		suffix = "p"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d%s", h12, min, suffix)
}

// MarshalJSON encodes the time as its HH:MM string.
func (m MinuteOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts an HH:MM string.
func (m *MinuteOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMinuteOfDay(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Scan implements sql.Scanner so timeslot rows can carry HH:MM text columns.
func (m *MinuteOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseMinuteOfDay(v)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case []byte:
		parsed, err := ParseMinuteOfDay(string(v))
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case int64:
		*m = MinuteOfDay(v)
		return nil
	}
	return fmt.Errorf("cannot scan %T into MinuteOfDay", src)
}

// Value implements driver.Valuer, storing the HH:MM text form.
func (m MinuteOfDay) Value() (driver.Value, error) {
	return m.String(), nil
}

// Timeslot is a single recurring weekly meeting window. Immutable after
// catalog load.
//
// RoomSecondary is only meaningful for sections of full-year courses (the
// winter-half room). For single-term courses the source feed populates it
// with unpredictable values; consumers must ignore it there. That quirk
// comes from the upstream timetable data and is preserved as-is.
type Timeslot struct {
	Weekday       Weekday     `db:"weekday" json:"weekday"`
	Start         MinuteOfDay `db:"start_time" json:"start"`
	End           MinuteOfDay `db:"end_time" json:"end"`
	Term          Term        `db:"term" json:"term"`
	RoomPrimary   string      `db:"room_primary" json:"room_primary"`
	RoomSecondary string      `db:"room_secondary" json:"room_secondary,omitempty"`
}

// Overlaps reports whether two slots collide. Slots in different terms or on
// different weekdays never collide. Within the same term and weekday the
// intervals are half-open at the boundary: a slot ending at 17:00 does not
// collide with one starting at 17:00.
func (t Timeslot) Overlaps(o Timeslot) bool {
	if t.Term != o.Term {
		return false
	}
	if t.Weekday != o.Weekday {
		return false
	}
	if t.End <= o.Start || o.End <= t.Start {
		return false
	}
	return true
}

// Room returns the room for the slot as it should be displayed, given the
// term of the owning course. Full-year courses meet in RoomPrimary during
// fall and RoomSecondary during winter when the latter is set.
func (t Timeslot) Room(courseTerm Term) string {
	if courseTerm == TermFullYear && t.Term == TermWinter && t.RoomSecondary != "" {
		return t.RoomSecondary
	}
	return t.RoomPrimary
}

// TimeRange renders "2:00p - 3:00p" for schedule grids.
func (t Timeslot) TimeRange() string {
	return t.Start.Display() + " - " + t.End.Display()
}

// String renders the compact source form, e.g. "TH 17:00-19:00 DH2020".
func (t Timeslot) String() string {
	s := fmt.Sprintf("%s %s-%s", t.Weekday, t.Start, t.End)
	if t.RoomPrimary != "" {
		s += " " + t.RoomPrimary
	}
	return s
}

package export

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/campusd/course-planner-api/internal/models"
)

// TermDates bounds the teaching weeks of one term.
type TermDates struct {
	Start time.Time
	End   time.Time
}

// ICSExporter renders selected sections as an iCalendar feed: one weekly
// recurring VEVENT per timeslot, bounded by its term's dates.
type ICSExporter struct {
	fall   TermDates
	winter TermDates
}

// NewICSExporter constructs an ICS exporter with the given term boundaries.
func NewICSExporter(fall, winter TermDates) *ICSExporter {
	return &ICSExporter{fall: fall, winter: winter}
}

// Render serializes the calendar for the given selections.
func (e *ICSExporter) Render(selections []models.Selection) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	for _, sel := range selections {
		for _, section := range sel.ChosenSections() {
			for _, slot := range section.Timeslots {
				if err := e.addSlot(cal, sel.Course, section, slot); err != nil {
					return nil, err
				}
			}
		}
	}

	return []byte(cal.Serialize()), nil
}

func (e *ICSExporter) addSlot(cal *ics.Calendar, course *models.Course, section *models.Section, slot models.Timeslot) error {
	var dates TermDates
	switch slot.Term {
	case models.TermFall:
		dates = e.fall
	case models.TermWinter:
		dates = e.winter
	default:
		return fmt.Errorf("slot of %s %s has non-concrete term %q", course.Code, section.ID, slot.Term)
	}

	first := firstOccurrence(dates.Start, slot.Weekday)
	start := at(first, slot.Start)
	end := at(first, slot.End)
	until := at(dates.End, slot.End)

	uid := fmt.Sprintf("%s-%s-%s-%s", course.Code, section.ID, slot.Weekday, slot.Start)
	event := cal.AddEvent(uid)
	event.SetCreatedTime(time.Now().UTC())
	event.SetStartAt(start)
	event.SetEndAt(end)
	event.SetSummary(fmt.Sprintf("%s %s", course.Code, section.ID))
	event.SetDescription(course.Name)
	if room := slot.Room(course.Term); room != "" {
		event.SetLocation(room)
	}
	event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;UNTIL=%s", until.UTC().Format("20060102T150405Z")))
	return nil
}

// firstOccurrence returns the first date on or after start that falls on
// the given teaching day.
func firstOccurrence(start time.Time, day models.Weekday) time.Time {
	target := time.Weekday(day.Index() + 1) // teaching week starts Monday
	offset := (int(target) - int(start.Weekday()) + 7) % 7
	return start.AddDate(0, 0, offset)
}

func at(date time.Time, m models.MinuteOfDay) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), int(m)/60, int(m)%60, 0, 0, date.Location())
}

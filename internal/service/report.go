package service

import (
	"fmt"
	"strings"

	"github.com/campusd/course-planner-api/internal/models"
)

// Report formatting lives apart from the conflict scans themselves: checks
// produce structured values, and only this layer turns them into the text
// the command surface shows. Output is deterministic: sections appear in
// request order, conflicts in schedule-insertion order.

func sectionHeaderLine(sec *models.Section) string {
	line := fmt.Sprintf("    %-9s %s   %s", sec.ID, sec.InstructorLine(), sec.EnrollmentLine())
	return strings.TrimRight(line, " ")
}

func slotCheckLine(chk models.SlotCheck) string {
	line := "        " + chk.Slot.String() + " "
	if chk.Conflict != nil {
		line += fmt.Sprintf("conflict with %-9s %-7s %s",
			chk.Conflict.CourseCode, chk.Conflict.SectionID, chk.Conflict.Slot.String())
	} else {
		line += "(no conflict)"
	}
	return line
}

func writeSectionCheck(b *strings.Builder, chk models.SectionCheck) {
	b.WriteString(sectionHeaderLine(chk.Section))
	if chk.Full {
		b.WriteString("(full)")
	} else if chk.Closed {
		b.WriteString("(closed)")
	}
	b.WriteString("\n")
	for _, slot := range chk.Slots {
		b.WriteString(slotCheckLine(slot))
		b.WriteString("\n")
	}
}

// FormatSectionsCheck renders a candidate-sections check: the course code,
// then each candidate section with its capacity/closure marker and per-slot
// conflict annotations.
func FormatSectionsCheck(chk models.SectionsCheck) string {
	var b strings.Builder
	b.WriteString(chk.Course.Code)
	b.WriteString("\n")
	for _, sec := range chk.Sections {
		writeSectionCheck(&b, sec)
	}
	return b.String()
}

// FormatAddableCheck renders a course-addability screening: the course
// header, then the sections of unblocked component types, then the blocked
// ones.
func FormatAddableCheck(chk models.AddableCheck) string {
	var ok, blocked strings.Builder
	for _, tc := range chk.Types {
		dest := &ok
		if tc.AllConflicting() {
			dest = &blocked
		}
		for _, sec := range tc.Sections {
			writeSectionCheck(dest, sec)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", chk.Course.Code, chk.Course.Name)
	b.WriteString(ok.String())
	b.WriteString(blocked.String())
	return b.String()
}

// FormatWeekView renders the weekly grid for both terms: weekday headers,
// one row per entry with time range, course code, section id, room and
// instructors, sorted by start time.
func FormatWeekView(fall, winter models.TermWeek) string {
	var b strings.Builder
	b.WriteString("Fall term\n")
	writeTermWeek(&b, fall)
	b.WriteString("Winter term\n")
	writeTermWeek(&b, winter)
	return b.String()
}

func writeTermWeek(b *strings.Builder, week models.TermWeek) {
	for i, day := range models.Weekdays {
		b.WriteString(day.Display())
		b.WriteString("\n")
		for _, entry := range week[i] {
			fmt.Fprintf(b, "%-17s    %-10s%-10s%-10s%s\n",
				entry.Slot.TimeRange(),
				entry.Course.Code,
				entry.Section.ID,
				entry.Slot.Room(entry.Course.Term),
				entry.Section.InstructorLine())
		}
		b.WriteString("\n")
	}
}

// FormatCourse renders the full course detail view.
func FormatCourse(c *models.Course) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s (%s)\n", c.Code, c.Name, c.Term.Display())
	if c.Description != "" {
		b.WriteString(c.Description)
		b.WriteString("\n")
	}
	for _, t := range models.SectionTypes {
		if !c.HasType(t) {
			continue
		}
		b.WriteString("\n")
		b.WriteString(t.Display())
		b.WriteString(":\n")
		for _, sec := range c.SectionsOf(t) {
			b.WriteString(sectionHeaderLine(sec))
			b.WriteString("\n")
			for _, slot := range sec.Timeslots {
				b.WriteString("        ")
				b.WriteString(slot.String())
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

package models

// Conflict checking produces structured results; rendering them as text is a
// display concern handled elsewhere. Both entry points are read-only with
// respect to the schedule.

// SlotConflict names the existing (course, section, slot) a candidate slot
// collided with. Only the first collision found in schedule-insertion order
// is recorded; the scan stops there.
type SlotConflict struct {
	CourseCode string   `json:"course_code"`
	SectionID  string   `json:"section_id"`
	Slot       Timeslot `json:"slot"`
}

// SlotCheck is the outcome for a single candidate timeslot. Conflict is nil
// when the slot fits.
type SlotCheck struct {
	Slot     Timeslot      `json:"slot"`
	Conflict *SlotConflict `json:"conflict,omitempty"`
}

// SectionCheck is the outcome for one candidate section.
type SectionCheck struct {
	Section *Section    `json:"-"`
	Full    bool        `json:"full"`
	Closed  bool        `json:"closed"`
	Slots   []SlotCheck `json:"slots"`
}

// HasConflict reports whether any candidate slot collided.
func (c SectionCheck) HasConflict() bool {
	for _, slot := range c.Slots {
		if slot.Conflict != nil {
			return true
		}
	}
	return false
}

// Disqualified reports whether the section cannot be taken: full or closed
// (when those gates were applied) or colliding on any slot.
func (c SectionCheck) Disqualified() bool {
	return c.Full || c.Closed || c.HasConflict()
}

// SectionsCheck is the result of testing a specific set of candidate
// sections for one course against the schedule.
type SectionsCheck struct {
	Course   *Course        `json:"-"`
	Sections []SectionCheck `json:"sections"`
}

// OK reports whether every candidate section passed.
func (r SectionsCheck) OK() bool {
	for _, sec := range r.Sections {
		if sec.Disqualified() {
			return false
		}
	}
	return true
}

// TypeCheck is the broader screening outcome for every section of one
// component type.
type TypeCheck struct {
	Type     SectionType    `json:"type"`
	Sections []SectionCheck `json:"sections"`
}

// AllConflicting reports whether every section of the type is disqualified.
func (c TypeCheck) AllConflicting() bool {
	for _, sec := range c.Sections {
		if !sec.Disqualified() {
			return false
		}
	}
	return true
}

// AddableCheck is the result of screening a whole course for catalog
// browsing.
type AddableCheck struct {
	Course *Course     `json:"-"`
	Types  []TypeCheck `json:"types"`
}

// OK reports whether the course is addable in principle: no component type
// it offers is fully blocked. The check is optimistic per type. It does not
// prove a simultaneously non-conflicting LEC+TUT+PRA combination exists,
// only that no single type is entirely full, closed, or colliding.
func (r AddableCheck) OK() bool {
	for _, tc := range r.Types {
		if tc.AllConflicting() {
			return false
		}
	}
	return true
}

// firstConflict scans every slot of every chosen section of every selection
// in insertion order and returns the first collision with the candidate
// slot, or nil.
func (s *Schedule) firstConflict(candidate Timeslot) *SlotConflict {
	for _, sel := range s.selections {
		for _, section := range sel.ChosenSections() {
			for _, slot := range section.Timeslots {
				if slot.Overlaps(candidate) {
					return &SlotConflict{
						CourseCode: sel.Course.Code,
						SectionID:  section.ID,
						Slot:       slot,
					}
				}
			}
		}
	}
	return nil
}

// checkSection gates one candidate section: capacity and closure first
// (unless overridden), then each of its slots against the whole schedule.
func (s *Schedule) checkSection(section *Section, ignoreFullClosed bool) SectionCheck {
	check := SectionCheck{Section: section}
	if !ignoreFullClosed {
		if !section.IsOpen() {
			check.Full = true
		} else if section.IsClosed() {
			check.Closed = true
		}
	}
	for _, slot := range section.Timeslots {
		check.Slots = append(check.Slots, SlotCheck{Slot: slot, Conflict: s.firstConflict(slot)})
	}
	return check
}

// CheckSections tests specific candidate sections of a course against the
// current schedule. Nil entries in sections are skipped so callers can pass
// a fixed LEC/TUT/PRA triple with gaps. When ignoreFullClosed is set the
// capacity and closure gates are skipped; overlap gating always applies.
func (s *Schedule) CheckSections(course *Course, sections []*Section, ignoreFullClosed bool) SectionsCheck {
	result := SectionsCheck{Course: course}
	for _, section := range sections {
		if section == nil {
			continue
		}
		result.Sections = append(result.Sections, s.checkSection(section, ignoreFullClosed))
	}
	return result
}

// CheckSelection is CheckSections applied to a selection's chosen sections.
func (s *Schedule) CheckSelection(sel Selection, ignoreFullClosed bool) SectionsCheck {
	return s.CheckSections(sel.Course, sel.ChosenSections(), ignoreFullClosed)
}

// CheckAddable screens every section of every component type the course
// offers, in LEC, TUT, PRA order. The course is addable iff no type it
// offers is all-conflicting (see AddableCheck.OK for the caveat).
func (s *Schedule) CheckAddable(course *Course) AddableCheck {
	result := AddableCheck{Course: course}
	for _, t := range SectionTypes {
		if !course.HasType(t) {
			continue
		}
		tc := TypeCheck{Type: t}
		for _, section := range course.SectionsOf(t) {
			tc.Sections = append(tc.Sections, s.checkSection(section, false))
		}
		result.Types = append(result.Types, tc)
	}
	return result
}

package models

// Course is one catalog entry. Courses are owned by the catalog, created
// once at load time, and shared read-only across sessions; schedules hold
// non-owning references into them.
//
// Sections maps component type to the ordered sections of that type. A key
// present in the map implies a non-empty slice; the loader never stores
// empty groups.
type Course struct {
	Code        string                     `json:"code"`
	Name        string                     `json:"name"`
	Description string                     `json:"description,omitempty"`
	Term        Term                       `json:"term"`
	Sections    map[SectionType][]*Section `json:"sections"`
}

// HasType reports whether the course offers any sections of the given
// component type.
func (c *Course) HasType(t SectionType) bool {
	return len(c.Sections[t]) > 0
}

// SectionsOf returns the ordered sections of one component type.
func (c *Course) SectionsOf(t SectionType) []*Section {
	return c.Sections[t]
}

// TypeCount returns how many distinct component types the course offers.
func (c *Course) TypeCount() int {
	n := 0
	for _, t := range SectionTypes {
		if c.HasType(t) {
			n++
		}
	}
	return n
}

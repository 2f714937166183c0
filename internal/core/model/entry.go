package model

import "time"

// Entry is one parsed line of the timelog file.
type Entry struct {
	Time    time.Time `json:"time"`
	Raw     string    `json:"raw"`
	Body    string    `json:"body"`
	Project string    `json:"project,omitempty"`
	Detail  string    `json:"detail"`
	// Marker entries (body ending in "**") record an arrival or start and carry no project.
	Marker bool `json:"marker,omitempty"`
}

// HasProject reports whether the entry was written as "PROJECT: detail".
func (e Entry) HasProject() bool {
	return e.Project != ""
}

// NonBillableDetail reports whether the detail was written with a leading "-".
func (e Entry) NonBillableDetail() bool {
	return len(e.Detail) > 0 && e.Detail[0] == '-'
}

// Unit groups a marker with the line that follows it so both are listed together.
type Unit struct {
	Entries []Entry
}

// Last returns the closing entry of the unit.
func (u Unit) Last() Entry {
	return u.Entries[len(u.Entries)-1]
}

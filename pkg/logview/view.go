package logview

import (
	"strings"
)

// View is an ordered, append-only collection of raw log lines. Lines are the
// source of truth; Records are derived per query and never cached. The View
// itself is not synchronized: an ingesting caller that appends concurrently
// with readers owns the locking.
type View struct {
	lines []string
}

// NewView returns a View seeded with the given lines, in order.
func NewView(lines ...string) *View {
	v := &View{}
	v.Append(lines...)
	return v
}

// Append adds lines at the end of the view, preserving arrival order.
func (v *View) Append(lines ...string) {
	v.lines = append(v.lines, lines...)
}

// Len returns the number of lines held.
func (v *View) Len() int {
	return len(v.lines)
}

// Contains reports whether any line contains s as a literal substring.
func (v *View) Contains(s string) bool {
	for _, l := range v.lines {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

// Search parses and returns every line containing s as a literal substring,
// in original order. An empty s matches every line.
func (v *View) Search(s string) []Record {
	var out []Record
	for _, l := range v.lines {
		if strings.Contains(l, s) {
			out = append(out, Parse(l))
		}
	}
	return out
}

// Last returns the most recent complete record, inspecting at most the final
// two lines newest first. When neither of them is complete the parse of the
// very last line is returned as-is, so callers must tolerate a record with
// empty fields. An empty view yields a zero Record.
func (v *View) Last() Record {
	if len(v.lines) == 0 {
		return Record{}
	}
	for i := len(v.lines) - 1; i >= 0 && i >= len(v.lines)-2; i-- {
		if rec := Parse(v.lines[i]); rec.Complete() {
			return rec
		}
	}
	return Parse(v.lines[len(v.lines)-1])
}

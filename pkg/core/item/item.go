// Package item defines the work items laid out on the timeline.
//
// An [Item] is an Epic, Feature or Milestone with optional calendar dates.
// Items are identified across types by a composite key ("E-12", "F-40",
// "M-7") because numeric ids are only unique within a type at the source.
package item

import (
	"fmt"
	"strings"
	"time"
)

// Type is the work item variant.
type Type int

const (
	Epic Type = iota
	Feature
	Milestone
)

var typeNames = [...]string{
	Epic:      "Epic",
	Feature:   "Feature",
	Milestone: "Milestone",
}

var typePrefixes = [...]string{
	Epic:      "E",
	Feature:   "F",
	Milestone: "M",
}

// String returns the display name of the type.
func (t Type) String() string {
	if t < Epic || t > Milestone {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// Prefix returns the single-letter tag used in composite keys.
func (t Type) Prefix() string {
	if t < Epic || t > Milestone {
		return "?"
	}
	return typePrefixes[t]
}

// ParseType reads a type name case-insensitively. Unknown names report false.
func ParseType(s string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "epic", "e":
		return Epic, true
	case "feature", "f":
		return Feature, true
	case "milestone", "m":
		return Milestone, true
	}
	return 0, false
}

// Prefixes returns the composite-key prefixes of all types in declaration order.
func Prefixes() []string {
	return []string{typePrefixes[Epic], typePrefixes[Feature], typePrefixes[Milestone]}
}

// Item is a single work item.
//
// Start and Target are calendar days at UTC midnight; the zero time means the
// date is absent. Parent holds the composite key of an Epic. Predecessor is
// kept exactly as the source provided it, which may be a bare numeric id or a
// type-prefixed key.
type Item struct {
	ID          int
	Title       string
	Type        Type
	State       string
	Start       time.Time
	Target      time.Time
	Parent      string
	Predecessor string

	Area       string
	Iteration  string
	AssignedTo string
	Priority   string
	Tags       []string
}

// Key returns the composite key of the item, e.g. "F-42".
func (it *Item) Key() string {
	return Key(it.Type, it.ID)
}

// Key builds a composite key from a type and a numeric id.
func Key(t Type, id int) string {
	return fmt.Sprintf("%s-%d", t.Prefix(), id)
}

// HasDates reports whether the item carries enough dates to be drawn:
// a target for milestones, both dates otherwise.
func (it *Item) HasDates() bool {
	if it.Type == Milestone {
		return !it.Target.IsZero()
	}
	return !it.Start.IsZero() && !it.Target.IsZero()
}

// Dates returns every non-zero date on the item.
func (it *Item) Dates() []time.Time {
	out := make([]time.Time, 0, 2)
	if !it.Start.IsZero() {
		out = append(out, it.Start)
	}
	if !it.Target.IsZero() {
		out = append(out, it.Target)
	}
	return out
}

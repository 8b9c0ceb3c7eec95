package item

import (
	"strconv"
	"strings"

	"github.com/matzehuels/roadmap/pkg/core/calendar"
)

// Record is the serialized form of an [Item] as produced by data sources.
// Dates and references are plain strings; conversion never fails.
type Record struct {
	ID          int      `json:"id" yaml:"id" toml:"id" bson:"id"`
	Title       string   `json:"title" yaml:"title" toml:"title" bson:"title"`
	Type        string   `json:"type" yaml:"type" toml:"type" bson:"type"`
	State       string   `json:"state,omitempty" yaml:"state,omitempty" toml:"state,omitempty" bson:"state,omitempty"`
	StartDate   string   `json:"startDate,omitempty" yaml:"startDate,omitempty" toml:"startDate,omitempty" bson:"startDate,omitempty"`
	TargetDate  string   `json:"targetDate,omitempty" yaml:"targetDate,omitempty" toml:"targetDate,omitempty" bson:"targetDate,omitempty"`
	ParentID    string   `json:"parentId,omitempty" yaml:"parentId,omitempty" toml:"parentId,omitempty" bson:"parentId,omitempty"`
	Predecessor string   `json:"predecessorId,omitempty" yaml:"predecessorId,omitempty" toml:"predecessorId,omitempty" bson:"predecessorId,omitempty"`
	Area        string   `json:"area,omitempty" yaml:"area,omitempty" toml:"area,omitempty" bson:"area,omitempty"`
	Iteration   string   `json:"iteration,omitempty" yaml:"iteration,omitempty" toml:"iteration,omitempty" bson:"iteration,omitempty"`
	AssignedTo  string   `json:"assignedTo,omitempty" yaml:"assignedTo,omitempty" toml:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
	Priority    string   `json:"priority,omitempty" yaml:"priority,omitempty" toml:"priority,omitempty" bson:"priority,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty" bson:"tags,omitempty"`
}

// Item converts the record. Unknown types become Features, unparseable dates
// become "no date", and a bare numeric parent id is tagged as an Epic key
// since only Epics can be parents.
func (r Record) Item() Item {
	typ, ok := ParseType(r.Type)
	if !ok {
		typ = Feature
	}
	start, _ := calendar.Parse(r.StartDate)
	target, _ := calendar.Parse(r.TargetDate)

	return Item{
		ID:          r.ID,
		Title:       r.Title,
		Type:        typ,
		State:       r.State,
		Start:       start,
		Target:      target,
		Parent:      parentKey(r.ParentID),
		Predecessor: strings.TrimSpace(r.Predecessor),
		Area:        r.Area,
		Iteration:   r.Iteration,
		AssignedTo:  r.AssignedTo,
		Priority:    r.Priority,
		Tags:        cleanTags(r.Tags),
	}
}

// FromItem converts an item back to its serialized form.
func FromItem(it Item) Record {
	return Record{
		ID:          it.ID,
		Title:       it.Title,
		Type:        it.Type.String(),
		State:       it.State,
		StartDate:   calendar.Format(it.Start),
		TargetDate:  calendar.Format(it.Target),
		ParentID:    it.Parent,
		Predecessor: it.Predecessor,
		Area:        it.Area,
		Iteration:   it.Iteration,
		AssignedTo:  it.AssignedTo,
		Priority:    it.Priority,
		Tags:        it.Tags,
	}
}

// Items converts a batch of records, preserving order.
func Items(records []Record) []Item {
	out := make([]Item, len(records))
	for i, r := range records {
		out[i] = r.Item()
	}
	return out
}

func parentKey(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if id, err := strconv.Atoi(s); err == nil {
		return Key(Epic, id)
	}
	return s
}

// cleanTags trims tags and drops empty ones. A single entry holding a
// semicolon-separated list is split.
func cleanTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		for _, part := range strings.Split(t, ";") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

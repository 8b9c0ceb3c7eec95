package rows

import (
	"strings"

	"github.com/matzehuels/roadmap/pkg/core/item"
)

// GroupBy selects the grouping mode.
type GroupBy string

const (
	GroupByEpic      GroupBy = "epic"
	GroupByArea      GroupBy = "area"
	GroupByIteration GroupBy = "iteration"
	GroupByAssignee  GroupBy = "assignedTo"
	GroupByState     GroupBy = "state"
	GroupByPriority  GroupBy = "priority"
	GroupByTags      GroupBy = "tags"
)

// GroupByFields lists the field groupings, excluding the hierarchy mode.
var GroupByFields = []GroupBy{
	GroupByArea,
	GroupByIteration,
	GroupByAssignee,
	GroupByState,
	GroupByPriority,
	GroupByTags,
}

// ParseGroupBy reads a grouping name case-insensitively. Unknown names select
// the hierarchy mode.
func ParseGroupBy(s string) GroupBy {
	s = strings.TrimSpace(s)
	for _, g := range GroupByFields {
		if strings.EqualFold(s, string(g)) {
			return g
		}
	}
	switch strings.ToLower(s) {
	case "assignee", "assigned", "owner":
		return GroupByAssignee
	case "tag":
		return GroupByTags
	}
	return GroupByEpic
}

// TypeFilter selects which item types produce rows.
type TypeFilter struct {
	Epics      bool
	Features   bool
	Milestones bool
}

// AllTypes shows every item type.
func AllTypes() TypeFilter {
	return TypeFilter{Epics: true, Features: true, Milestones: true}
}

// Shows reports whether items of type t are visible.
func (f TypeFilter) Shows(t item.Type) bool {
	switch t {
	case item.Epic:
		return f.Epics
	case item.Milestone:
		return f.Milestones
	default:
		return f.Features
	}
}

// KeySet is a set of collapse keys.
type KeySet map[string]struct{}

// NewKeySet returns a set holding keys.
func NewKeySet(keys ...string) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether k is in the set. A nil set is empty.
func (s KeySet) Has(k string) bool {
	_, ok := s[k]
	return ok
}

// Options configures [Build].
type Options struct {
	GroupBy       GroupBy
	ShowHierarchy bool
	Types         TypeFilter
	Collapsed     KeySet

	// ExpandAll ignores Collapsed entirely (print/export mode).
	ExpandAll bool

	// Metrics sets row heights. The zero value selects the default density.
	Metrics Metrics
}

// DefaultOptions returns hierarchy grouping with every type visible.
func DefaultOptions() Options {
	return Options{
		GroupBy:       GroupByEpic,
		ShowHierarchy: true,
		Types:         AllTypes(),
		Metrics:       MetricsFor(DefaultDensity),
	}
}

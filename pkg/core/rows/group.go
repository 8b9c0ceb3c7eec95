package rows

import (
	"strings"

	"github.com/matzehuels/roadmap/pkg/core/item"
)

// PathSeparator splits hierarchical area and iteration paths.
const PathSeparator = `\`

// groupValue returns the bucket an item falls into under g.
func groupValue(it *item.Item, g GroupBy) string {
	var v string
	switch g {
	case GroupByArea:
		v = lastSegment(it.Area)
	case GroupByIteration:
		v = lastSegment(it.Iteration)
	case GroupByAssignee:
		v = it.AssignedTo
	case GroupByState:
		v = it.State
	case GroupByPriority:
		v = it.Priority
	case GroupByTags:
		if len(it.Tags) > 0 {
			v = it.Tags[0]
		}
	}
	if v = strings.TrimSpace(v); v == "" {
		return Unassigned
	}
	return v
}

func lastSegment(path string) string {
	path = strings.TrimRight(strings.TrimSpace(path), PathSeparator)
	if i := strings.LastIndex(path, PathSeparator); i >= 0 {
		return path[i+1:]
	}
	return path
}

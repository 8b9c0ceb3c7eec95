package rows

import (
	"cmp"
	"slices"

	"github.com/matzehuels/roadmap/pkg/core/item"
)

// Unassigned is the group name for items without a value in the grouped field.
const Unassigned = "Unassigned"

// groupKeyPrefix namespaces group header keys away from item keys.
const groupKeyPrefix = "group:"

// GroupKey returns the collapse key of the group header named name.
func GroupKey(name string) string { return groupKeyPrefix + name }

// Build lays out items as rows. The returned rows reference elements of
// items; neither is modified.
func Build(items []item.Item, opts Options) Layout {
	if opts.Metrics == (Metrics{}) {
		opts.Metrics = MetricsFor(DefaultDensity)
	}
	if opts.GroupBy == "" {
		opts.GroupBy = GroupByEpic
	}

	visible := make([]*item.Item, 0, len(items))
	for i := range items {
		if opts.Types.Shows(items[i].Type) {
			visible = append(visible, &items[i])
		}
	}

	b := &builder{opts: opts, rows: make([]Row, 0, len(visible))}
	if opts.GroupBy == GroupByEpic {
		b.hierarchy(visible)
	} else {
		b.grouped(visible)
	}
	return Layout{Rows: b.rows, Height: b.y}
}

type builder struct {
	opts Options
	rows []Row
	y    float64
}

func (b *builder) collapsed(key string) bool {
	return !b.opts.ExpandAll && b.opts.Collapsed.Has(key)
}

func (b *builder) push(r Row) {
	r.Y = b.y
	r.Height = b.opts.Metrics.RowHeight(r.Kind)
	b.y += r.Height
	b.rows = append(b.rows, r)
}

func (b *builder) pushItem(it *item.Item, level int) {
	b.push(Row{Kind: KindOf(it.Type), Item: it, Key: it.Key(), Level: level})
}

// hierarchy emits Epics with their children. When Epics are hidden or the
// hierarchy is switched off, every visible item becomes a flat row.
func (b *builder) hierarchy(visible []*item.Item) {
	if !b.opts.ShowHierarchy || !b.opts.Types.Epics {
		for _, it := range visible {
			b.pushItem(it, 0)
		}
		return
	}

	var epics, others []*item.Item
	epicKeys := make(map[string]bool)
	for _, it := range visible {
		if it.Type == item.Epic {
			epics = append(epics, it)
			epicKeys[it.Key()] = true
		} else {
			others = append(others, it)
		}
	}

	children := make(map[string][]*item.Item, len(epics))
	var orphans []*item.Item
	for _, it := range others {
		if it.Parent != "" && epicKeys[it.Parent] {
			children[it.Parent] = append(children[it.Parent], it)
		} else {
			orphans = append(orphans, it)
		}
	}

	for _, epic := range epics {
		key := epic.Key()
		kids := children[key]
		collapsed := b.collapsed(key)
		b.push(Row{
			Kind:       KindEpic,
			Item:       epic,
			Key:        key,
			Level:      0,
			Collapsed:  collapsed,
			ChildCount: len(kids),
			IsParent:   true,
		})
		if collapsed {
			continue
		}
		// Milestones first, then features.
		for _, kid := range kids {
			if kid.Type == item.Milestone {
				b.pushItem(kid, 1)
			}
		}
		for _, kid := range kids {
			if kid.Type != item.Milestone {
				b.pushItem(kid, 1)
			}
		}
	}

	for _, it := range orphans {
		b.pushItem(it, 0)
	}
}

// grouped emits one header per bucket in key order, followed by its members.
func (b *builder) grouped(visible []*item.Item) {
	buckets := make(map[string][]*item.Item)
	for _, it := range visible {
		k := groupValue(it, b.opts.GroupBy)
		buckets[k] = append(buckets[k], it)
	}

	names := make([]string, 0, len(buckets))
	for k := range buckets {
		names = append(names, k)
	}
	slices.Sort(names)

	for _, name := range names {
		members := buckets[name]
		key := GroupKey(name)
		collapsed := b.collapsed(key)
		b.push(Row{
			Kind:       KindGroupHeader,
			Key:        key,
			Name:       name,
			Level:      0,
			Collapsed:  collapsed,
			ChildCount: len(members),
			IsParent:   true,
		})
		if collapsed || !b.opts.ShowHierarchy {
			continue
		}
		slices.SortStableFunc(members, func(a, c *item.Item) int {
			return cmp.Compare(precedence(a.Type), precedence(c.Type))
		})
		for _, it := range members {
			b.pushItem(it, 1)
		}
	}
}

// precedence orders members inside a group: Epics, Milestones, Features.
func precedence(t item.Type) int {
	switch t {
	case item.Epic:
		return 0
	case item.Milestone:
		return 1
	default:
		return 2
	}
}

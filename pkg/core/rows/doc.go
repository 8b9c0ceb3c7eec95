// Package rows turns a flat collection of work items into the ordered,
// vertically stacked row list of a timeline.
//
// # Grouping Modes
//
// [Build] supports two mutually exclusive modes, selected by [Options.GroupBy]:
//
//   - [GroupByEpic] (hierarchy): every visible Epic becomes a parent row,
//     followed by its direct children unless collapsed. Milestones are always
//     listed before Features under an Epic. Nesting never goes deeper than one
//     level: only Epics can be parents. With [Options.ShowHierarchy] off, or
//     Epics hidden, every visible item is a flat level-0 row.
//
//   - Field grouping ([GroupByArea], [GroupByIteration], [GroupByAssignee],
//     [GroupByState], [GroupByPriority], [GroupByTags]): items are bucketed by
//     the field value, buckets are sorted by key and each becomes a synthetic
//     group header row. Path fields (area, iteration) group by their last
//     segment; missing values fall into [Unassigned].
//
// # Geometry
//
// Row heights come from [Metrics], selected by a [Density]. Rows are
// contiguous: each row starts where the previous one ends, the first at 0.
// [Validate] checks this invariant.
//
// # Collapse State
//
// The collapsed-key set belongs to the caller and is only read. With
// [Options.ExpandAll] (print/export) every row is expanded without touching
// the set.
//
// # Determinism
//
// Identical inputs produce identical rows: map iteration is never visible in
// the output. Ties are broken by input order or explicit key sort.
package rows

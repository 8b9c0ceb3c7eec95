// Package connector routes dependency lines between laid-out rows.
//
// Two families of lines exist, each toggled independently through [Options]:
//
//   - [Parent] lines join an Epic to each of its children, derived from the
//     child's parent reference.
//   - [Predecessor] lines join a predecessor to its successor, derived from the
//     successor's predecessor reference.
//
// # Resolution
//
// [NewIndex] builds a per-cycle lookup from composite key and from bare
// numeric id to row index, so each edge resolves in constant time. Parent
// references are always composite keys and resolve only to Epic rows.
// Predecessor references are tried as given, then as a bare id, then with
// each type prefix ("E-", "F-", "M-") in turn. A reference that does not resolve, because the item is filtered
// out, collapsed away or does not exist, produces no connector.
//
// # Geometry
//
// A connector starts at the source row's target date and ends at the target
// row's start date (or its target date when it has no start), both at the
// vertical centre of their row. Undated anchors sit at x = 0. The curve is a
// symmetric cubic whose two control points share the horizontal midpoint:
//
//	M sx sy C mx sy, mx ey, ex ey
//
// Routing does not avoid bars; overlap is accepted. Each [Connector] carries
// its [Family] so renderers can apply [Family.Style].
package connector

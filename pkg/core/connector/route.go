package connector

import (
	"fmt"

	"github.com/matzehuels/roadmap/pkg/core/rows"
	"github.com/matzehuels/roadmap/pkg/core/timeline"
)

// Point is a position in timeline coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Connector is one routed dependency line.
type Connector struct {
	Family Family `json:"family"`

	// From and To are the composite keys of the source and target items.
	From string `json:"from"`
	To   string `json:"to"`

	// FromRow and ToRow index the row list the connector was routed over.
	FromRow int `json:"fromRow"`
	ToRow   int `json:"toRow"`

	Start Point `json:"start"`
	C1    Point `json:"c1"`
	C2    Point `json:"c2"`
	End   Point `json:"end"`
}

// Path returns the connector as SVG path data.
func (c Connector) Path() string {
	return fmt.Sprintf("M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f",
		c.Start.X, c.Start.Y, c.C1.X, c.C1.Y, c.C2.X, c.C2.Y, c.End.X, c.End.Y)
}

// Options selects which families are routed.
type Options struct {
	Parents      bool
	Predecessors bool

	// Visible, when it has one entry per row, restricts routing to edges
	// whose both endpoints are visible.
	Visible []bool
}

// DefaultOptions routes both families over every row.
func DefaultOptions() Options {
	return Options{Parents: true, Predecessors: true}
}

// Route computes the connectors between the rows of rs. Output order follows
// the row order of the dependent item; a row's parent line precedes its
// predecessor line.
func Route(rs []rows.Row, m timeline.Mapper, opts Options) []Connector {
	if !opts.Parents && !opts.Predecessors {
		return nil
	}
	return RouteIndexed(rs, NewIndex(rs), m, opts)
}

// RouteIndexed is [Route] with a prebuilt index over rs.
func RouteIndexed(rs []rows.Row, ix *Index, m timeline.Mapper, opts Options) []Connector {
	masked := len(opts.Visible) == len(rs)
	shown := func(i int) bool { return !masked || opts.Visible[i] }

	var out []Connector
	add := func(f Family, from, to int) {
		if from == to || !shown(from) || !shown(to) {
			return
		}
		out = append(out, connect(f, rs, from, to, m))
	}

	for i := range rs {
		it := rs[i].Item
		if it == nil {
			continue
		}
		if opts.Parents {
			if p, ok := ix.Parent(it.Parent); ok {
				add(Parent, p, i)
			}
		}
		if opts.Predecessors {
			if p, ok := ix.Predecessor(it.Predecessor); ok {
				add(Predecessor, p, i)
			}
		}
	}
	return out
}

func connect(f Family, rs []rows.Row, from, to int, m timeline.Mapper) Connector {
	src, dst := rs[from], rs[to]

	start := Point{X: endX(src, m), Y: src.CenterY()}
	end := Point{X: startX(dst, m), Y: dst.CenterY()}
	mid := (start.X + end.X) / 2

	return Connector{
		Family:  f,
		From:    src.Item.Key(),
		To:      dst.Item.Key(),
		FromRow: from,
		ToRow:   to,
		Start:   start,
		C1:      Point{X: mid, Y: start.Y},
		C2:      Point{X: mid, Y: end.Y},
		End:     end,
	}
}

func endX(r rows.Row, m timeline.Mapper) float64 {
	if r.Item.Target.IsZero() {
		return 0
	}
	return m.DateToX(r.Item.Target)
}

func startX(r rows.Row, m timeline.Mapper) float64 {
	switch {
	case !r.Item.Start.IsZero():
		return m.DateToX(r.Item.Start)
	case !r.Item.Target.IsZero():
		return m.DateToX(r.Item.Target)
	}
	return 0
}

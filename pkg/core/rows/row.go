package rows

import "github.com/matzehuels/roadmap/pkg/core/item"

// Kind identifies what a row represents.
type Kind int

const (
	KindEpic Kind = iota
	KindFeature
	KindMilestone
	KindGroupHeader

	kindCount
)

var kindNames = [kindCount]string{
	KindEpic:        "epic",
	KindFeature:     "feature",
	KindMilestone:   "milestone",
	KindGroupHeader: "group",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// KindOf returns the row kind for an item type.
func KindOf(t item.Type) Kind {
	switch t {
	case item.Epic:
		return KindEpic
	case item.Milestone:
		return KindMilestone
	default:
		return KindFeature
	}
}

// Row is one entry of the vertical stack.
//
// Item is nil for group headers, which carry a Name instead. Key is the
// collapse key: the item's composite key, or "group:<name>" for headers.
type Row struct {
	Kind       Kind
	Item       *item.Item
	Key        string
	Name       string
	Y          float64
	Height     float64
	Level      int
	Collapsed  bool
	ChildCount int
	IsParent   bool
}

// Bottom returns the y coordinate where the row ends.
func (r Row) Bottom() float64 { return r.Y + r.Height }

// CenterY returns the vertical center of the row.
func (r Row) CenterY() float64 { return r.Y + r.Height/2 }

// Label returns the text a renderer shows for the row.
func (r Row) Label() string {
	if r.Item != nil {
		return r.Item.Title
	}
	return r.Name
}

// Layout is the output of [Build].
type Layout struct {
	Rows   []Row
	Height float64
}

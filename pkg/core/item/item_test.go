package item

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/roadmap/pkg/core/calendar"
)

func TestKey(t *testing.T) {
	tests := []struct {
		typ  Type
		id   int
		want string
	}{
		{Epic, 1, "E-1"},
		{Feature, 42, "F-42"},
		{Milestone, 7, "M-7"},
	}
	for _, tt := range tests {
		it := Item{ID: tt.id, Type: tt.typ}
		if got := it.Key(); got != tt.want {
			t.Errorf("Key() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in     string
		want   Type
		wantOK bool
	}{
		{"Epic", Epic, true},
		{"feature", Feature, true},
		{" MILESTONE ", Milestone, true},
		{"m", Milestone, true},
		{"story", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseType(tt.in)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("ParseType(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestHasDates(t *testing.T) {
	d := calendar.Date(2025, time.March, 1)
	tests := []struct {
		name string
		item Item
		want bool
	}{
		{"milestone with target", Item{Type: Milestone, Target: d}, true},
		{"milestone without target", Item{Type: Milestone, Start: d}, false},
		{"feature with both", Item{Type: Feature, Start: d, Target: d}, true},
		{"feature with target only", Item{Type: Feature, Target: d}, false},
		{"epic undated", Item{Type: Epic}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.HasDates(); got != tt.want {
				t.Errorf("HasDates() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecordItem(t *testing.T) {
	r := Record{
		ID:          5,
		Title:       "Checkout",
		Type:        "Feature",
		StartDate:   "2025-01-06",
		TargetDate:  "garbage",
		ParentID:    "12",
		Predecessor: " 4 ",
		Area:        `Shop\Web\Checkout`,
		Tags:        []string{"pay; web", "", " mobile "},
	}

	want := Item{
		ID:          5,
		Title:       "Checkout",
		Type:        Feature,
		Start:       calendar.Date(2025, time.January, 6),
		Parent:      "E-12",
		Predecessor: "4",
		Area:        `Shop\Web\Checkout`,
		Tags:        []string{"pay", "web", "mobile"},
	}

	if diff := cmp.Diff(want, r.Item()); diff != "" {
		t.Errorf("Item() mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordItemUnknownType(t *testing.T) {
	it := Record{ID: 1, Type: "User Story", ParentID: "E-3"}.Item()
	if it.Type != Feature {
		t.Errorf("Type = %v, want Feature", it.Type)
	}
	if it.Parent != "E-3" {
		t.Errorf("Parent = %q, want E-3", it.Parent)
	}
}

func TestFromItem(t *testing.T) {
	it := Item{ID: 3, Type: Milestone, Title: "GA", Target: calendar.Date(2025, time.July, 1)}
	r := FromItem(it)
	if r.Type != "Milestone" || r.TargetDate != "2025-07-01" || r.StartDate != "" {
		t.Errorf("FromItem() = %+v", r)
	}
}

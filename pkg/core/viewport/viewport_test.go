package viewport

import (
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/roadmap/pkg/core/rows"
)

// stack builds n contiguous rows of height h.
func stack(n int, h float64) []rows.Row {
	out := make([]rows.Row, n)
	for i := range out {
		out[i] = rows.Row{Key: fmt.Sprint(i), Y: float64(i) * h, Height: h}
	}
	return out
}

func TestVisibleRowsBelowThreshold(t *testing.T) {
	rs := stack(50, 30)
	cfg := DefaultConfig()
	vis := VisibleRows(rs, Viewport{ScrollTop: 100000, Height: 10}, 50, cfg)
	if got := Count(vis); got != 50 {
		t.Errorf("visible = %d, want 50", got)
	}
}

func TestVisibleRowsWindow(t *testing.T) {
	rs := stack(1000, 10)
	cfg := Config{Threshold: 100, Buffer: 50, MinVisible: 5}
	vp := Viewport{ScrollTop: 1000, Height: 200}

	vis := VisibleRows(rs, vp, len(rs), cfg)

	// Interval [950, 1250]: rows 94 (940-950) through 125 (1250-1260).
	for i, v := range vis {
		want := i >= 94 && i <= 125
		if v != want {
			t.Errorf("row %d visible = %v, want %v", i, v, want)
		}
	}
}

func TestVisibleRowsFloor(t *testing.T) {
	rs := stack(500, 20)
	cfg := Config{Threshold: 100, Buffer: 100, MinVisible: 20}

	tests := []struct {
		name string
		vp   Viewport
	}{
		{"far below", Viewport{ScrollTop: 1e6, Height: 400}},
		{"far above", Viewport{ScrollTop: -1e6, Height: 400}},
		{"zero height", Viewport{ScrollTop: 5000, Height: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vis := VisibleRows(rs, tt.vp, len(rs), cfg)
			if got := Count(vis); got < cfg.MinVisible {
				t.Errorf("visible = %d, want >= %d", got, cfg.MinVisible)
			}
		})
	}
}

func TestVisibleRowsFloorPicksClosest(t *testing.T) {
	rs := stack(200, 10)
	cfg := Config{Threshold: 100, Buffer: 0, MinVisible: 3}

	vis := VisibleRows(rs, Viewport{ScrollTop: 1e5, Height: 10}, len(rs), cfg)
	var got []int
	for i, v := range vis {
		if v {
			got = append(got, i)
		}
	}
	if diff := cmp.Diff([]int{197, 198, 199}, got); diff != "" {
		t.Errorf("visible rows mismatch (-want +got):\n%s", diff)
	}
}

func TestVisibleRowsFloorCollapsedTree(t *testing.T) {
	// An all-collapsed tree: few rows but a large item count.
	rs := stack(30, 36)
	cfg := Config{Threshold: 100, Buffer: 0, MinVisible: 20}
	vis := VisibleRows(rs, Viewport{ScrollTop: 50000, Height: 600}, 10000, cfg)
	if got := Count(vis); got != 20 {
		t.Errorf("visible = %d, want 20", got)
	}
}

func TestVisibleRowsFewerRowsThanFloor(t *testing.T) {
	rs := stack(5, 10)
	cfg := Config{Threshold: 0, Buffer: 0, MinVisible: 20}
	vis := VisibleRows(rs, Viewport{ScrollTop: 1e4, Height: 10}, 5, cfg)
	if got := Count(vis); got != 5 {
		t.Errorf("visible = %d, want 5", got)
	}
}

func TestVisibleRowsIdempotent(t *testing.T) {
	rs := stack(2000, 24)
	snapshot := slices.Clone(rs)
	cfg := DefaultConfig()
	vp := Viewport{ScrollTop: 12345, Height: 700, Width: 1200}

	a := VisibleRows(rs, vp, len(rs), cfg)
	b := VisibleRows(rs, vp, len(rs), cfg)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("results differ (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(snapshot, rs); diff != "" {
		t.Errorf("rows modified (-before +after):\n%s", diff)
	}
}

func TestVisibleRowsEmpty(t *testing.T) {
	if got := VisibleRows(nil, Viewport{}, 1000, DefaultConfig()); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestVisibleColumns(t *testing.T) {
	cfg := Config{Buffer: 100}
	tests := []struct {
		name  string
		vp    Viewport
		width float64
		want  Range
	}{
		{"middle", Viewport{ScrollLeft: 500, Width: 800}, 5000, Range{400, 1400}},
		{"clipped left", Viewport{ScrollLeft: 0, Width: 800}, 5000, Range{0, 900}},
		{"clipped right", Viewport{ScrollLeft: 4500, Width: 800}, 5000, Range{4400, 5000}},
		{"past the end", Viewport{ScrollLeft: 9000, Width: 800}, 5000, Range{8900, 8900}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VisibleColumns(tt.vp, tt.width, cfg); got != tt.want {
				t.Errorf("VisibleColumns = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRange(t *testing.T) {
	r := Range{Start: 10, End: 20}
	if !r.Contains(10) || !r.Contains(20) || r.Contains(21) {
		t.Error("Contains boundaries wrong")
	}
	if !r.Overlaps(0, 10) || !r.Overlaps(15, 30) || r.Overlaps(21, 30) {
		t.Error("Overlaps wrong")
	}
}

package rows

import (
	"errors"
	"fmt"
	"math"
)

const eps = 1e-9

// ErrNotContiguous is returned by [Validate] when rows overlap or leave gaps.
var ErrNotContiguous = errors.New("rows are not contiguous")

// Validate checks the stacking invariant: the first row starts at 0, heights
// are non-negative and every row starts where the previous one ends.
// A failure means the layout code is broken, not the data.
func Validate(rows []Row) error {
	var y float64
	for i, r := range rows {
		if r.Height < 0 {
			return fmt.Errorf("%w: row %d (%s) has negative height %v", ErrNotContiguous, i, r.Key, r.Height)
		}
		if math.Abs(r.Y-y) > eps {
			return fmt.Errorf("%w: row %d (%s) starts at %v, want %v", ErrNotContiguous, i, r.Key, r.Y, y)
		}
		y = r.Bottom()
	}
	return nil
}

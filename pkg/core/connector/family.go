package connector

// Family distinguishes the two kinds of dependency line.
type Family int

const (
	Parent Family = iota
	Predecessor
)

func (f Family) String() string {
	if f == Predecessor {
		return "predecessor"
	}
	return "parent"
}

// MarshalText implements [encoding.TextMarshaler].
func (f Family) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. Unknown names
// decode as [Parent].
func (f *Family) UnmarshalText(b []byte) error {
	if string(b) == "predecessor" {
		*f = Predecessor
	} else {
		*f = Parent
	}
	return nil
}

// Style is the presentational contract for a family.
type Style struct {
	Dashed  bool    `json:"dashed"`
	Opacity float64 `json:"opacity"`
	Arrow   bool    `json:"arrow"`
}

// Style returns how lines of family f are drawn: parent lines dashed and
// faint, predecessor lines solid with an arrowhead at the successor.
func (f Family) Style() Style {
	if f == Predecessor {
		return Style{Opacity: 0.8, Arrow: true}
	}
	return Style{Dashed: true, Opacity: 0.35}
}

package render

// EyeSize is the side of a finder pattern in modules.
const EyeSize = 7

type RegionKind uint8

const (
	Body RegionKind = iota
	EyeTopLeft
	EyeTopRight
	EyeBottomLeft
)

func (k RegionKind) String() string {
	switch k {
	case EyeTopLeft:
		return "eye-tl"
	case EyeTopRight:
		return "eye-tr"
	case EyeBottomLeft:
		return "eye-bl"
	}
	return "body"
}

// IsEye reports whether the region is one of the finder patterns.
func (k RegionKind) IsEye() bool { return k != Body }

// Region is where a cell falls. RelRow and RelCol are eye-local and zero for
// body cells.
type Region struct {
	Kind           RegionKind
	RelRow, RelCol int
}

// Origin reports whether the cell is the top-left corner of its eye.
func (r Region) Origin() bool { return r.Kind.IsEye() && r.RelRow == 0 && r.RelCol == 0 }

// Classify places (row, col) of a count×count matrix. For count >= 21 the
// three eyes never overlap.
func Classify(row, col, count int) Region {
	far := count - EyeSize
	switch {
	case row < EyeSize && col < EyeSize:
		return Region{Kind: EyeTopLeft, RelRow: row, RelCol: col}
	case row < EyeSize && col >= far:
		return Region{Kind: EyeTopRight, RelRow: row, RelCol: col - far}
	case row >= far && col < EyeSize:
		return Region{Kind: EyeBottomLeft, RelRow: row - far, RelCol: col}
	}
	return Region{Kind: Body}
}

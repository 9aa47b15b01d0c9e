package coordinate

import "fmt"

// A Point addresses one slot of the normalized grid.
type Point struct {
	Row int
	Col int
}

func NewPoint(row, col int) Point {
	return Point{Row: row, Col: col}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Rect is a block of grid slots. End bounds are exclusive.
type Rect struct {
	StartRow int
	EndRow   int
	StartCol int
	EndCol   int
}

// RectFromPoints returns the smallest rect containing both points. It does
// not look at cell spans; see selection.Resolve for that.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		StartRow: min(a.Row, b.Row),
		EndRow:   max(a.Row, b.Row) + 1,
		StartCol: min(a.Col, b.Col),
		EndCol:   max(a.Col, b.Col) + 1,
	}
}

func (r Rect) Rows() int { return r.EndRow - r.StartRow }
func (r Rect) Cols() int { return r.EndCol - r.StartCol }

// Area is the number of slots in the rect.
func (r Rect) Area() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Rows() * r.Cols()
}

func (r Rect) IsEmpty() bool {
	return r.Rows() <= 0 || r.Cols() <= 0
}

// Origin is the top-left slot.
func (r Rect) Origin() Point {
	return Point{Row: r.StartRow, Col: r.StartCol}
}

func (r Rect) Contains(p Point) bool {
	return p.Row >= r.StartRow && p.Row < r.EndRow &&
		p.Col >= r.StartCol && p.Col < r.EndCol
}

// ContainsRect reports whether other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.StartRow >= r.StartRow && other.EndRow <= r.EndRow &&
		other.StartCol >= r.StartCol && other.EndCol <= r.EndCol
}

func (r Rect) Intersects(other Rect) bool {
	return r.StartRow < other.EndRow && other.StartRow < r.EndRow &&
		r.StartCol < other.EndCol && other.StartCol < r.EndCol
}

// Within reports whether r is non-empty and fits in a rows x cols grid.
func (r Rect) Within(rows, cols int) bool {
	return !r.IsEmpty() &&
		r.StartRow >= 0 && r.EndRow <= rows &&
		r.StartCol >= 0 && r.EndCol <= cols
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d:%d, %d:%d]", r.StartRow, r.EndRow, r.StartCol, r.EndCol)
}

package selection

import (
	"fmt"

	"github.com/hnimtadd/tablegrid/table/cell"
	"github.com/hnimtadd/tablegrid/table/coordinate"
	"github.com/hnimtadd/tablegrid/table/grid"
)

var ErrOutOfBounds = fmt.Errorf("selection: point out of bounds")

// Resolve returns the smallest rect that contains both points and does not
// cut through any merged cell: every cell touching the rect lies entirely
// inside it. A single point inside a merged cell resolves to that cell.
func Resolve(g *grid.Grid, a, b coordinate.Point) (coordinate.Rect, error) {
	for _, p := range []coordinate.Point{a, b} {
		if !g.InBounds(p) {
			return coordinate.Rect{}, fmt.Errorf("%w: %s in %dx%d grid", ErrOutOfBounds, p, g.Rows(), g.Cols())
		}
	}
	return Expand(g, coordinate.RectFromPoints(a, b)), nil
}

// Expand grows rect until no cell crosses its boundary. rect must lie inside
// the grid.
//
// Only cells on the perimeter can cross the boundary, so each pass walks the
// four edges and pushes them out to the bounds of the cells found there. The
// rect only ever grows and the grid is finite, so the loop terminates.
func Expand(g *grid.Grid, rect coordinate.Rect) coordinate.Rect {
	for {
		grown := rect
		visit := func(r, c int) {
			b, _ := g.Bounds(g.At(r, c))
			grown.StartRow = min(grown.StartRow, b.StartRow)
			grown.EndRow = max(grown.EndRow, b.EndRow)
			grown.StartCol = min(grown.StartCol, b.StartCol)
			grown.EndCol = max(grown.EndCol, b.EndCol)
		}
		for c := rect.StartCol; c < rect.EndCol; c++ {
			visit(rect.StartRow, c)
			visit(rect.EndRow-1, c)
		}
		for r := rect.StartRow; r < rect.EndRow; r++ {
			visit(r, rect.StartCol)
			visit(r, rect.EndCol-1)
		}
		if grown == rect {
			return rect
		}
		rect = grown
	}
}

// IsResolved reports whether rect lies in the grid and cuts no cell.
func IsResolved(g *grid.Grid, rect coordinate.Rect) bool {
	if !rect.Within(g.Rows(), g.Cols()) {
		return false
	}
	return Expand(g, rect) == rect
}

// Cells returns the distinct cells covered by rect in row-major order of
// their origin.
func Cells(g *grid.Grid, rect coordinate.Rect) []*cell.Cell {
	return g.CellsIn(rect)
}

// IsSingleCell reports whether rect is exactly the block of one cell.
func IsSingleCell(g *grid.Grid, rect coordinate.Rect) bool {
	if !rect.Within(g.Rows(), g.Cols()) {
		return false
	}
	b, _ := g.Bounds(g.At(rect.StartRow, rect.StartCol))
	return b == rect
}

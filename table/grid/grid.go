package grid

import (
	"github.com/hnimtadd/tablegrid/table/cell"
	"github.com/hnimtadd/tablegrid/table/coordinate"
	"github.com/hnimtadd/tablegrid/table/row"
	"github.com/hnimtadd/tablegrid/table/utils"
	"github.com/mitchellh/hashstructure/v2"
)

// Grid is the normalized, fully expanded view of a row store. A spanning cell
// is referenced from every slot it covers, every row has the same number of
// columns, and no two cells overlap.
//
// A Grid is a snapshot: it is never updated in place. Mutations go through
// the row store and a fresh Grid is derived with Normalize.
type Grid struct {
	matrix [][]*cell.Cell

	rows, cols int

	// Block covered by each cell, recorded when it was placed. Later edits to
	// the cell's spans do not move it within this snapshot.
	bounds map[*cell.Cell]coordinate.Rect

	// Distinct cells in row-major order of their origin.
	order []*cell.Cell
}

// Normalize expands rows into a rectangular matrix.
//
// Rows are walked top to bottom with a column cursor that skips slots already
// taken by a spanning cell from an earlier row. Malformed input is repaired in
// place: spans below one become one, a row span running past the last row is
// cut at the last row, and a column span that would overlap an occupied slot
// is cut to the free run in front of it. Finally every row is padded to the
// widest row with unit cells whose content comes from factory; the padding
// cells are appended to the row store so that it describes the same grid.
//
// Normalizing a store that is already consistent changes nothing.
func Normalize(rows []*row.Row, factory cell.ContentFactory) *Grid {
	g := &Grid{
		matrix: make([][]*cell.Cell, len(rows)),
		rows:   len(rows),
		bounds: make(map[*cell.Cell]coordinate.Rect),
	}

	for r, rw := range rows {
		cursor := 0
		for _, c := range rw.Cells {
			for g.occupied(r, cursor) {
				cursor++
			}
			c.RowSpan = g.freeRows(r, cursor, utils.Clamp(c.RowSpan, 1, g.rows-r))
			c.ColSpan = g.freeCols(r, cursor, c.RowSpan, max(c.ColSpan, 1))
			g.place(c, r, cursor)
			cursor += c.ColSpan
		}
	}

	for _, cells := range g.matrix {
		g.cols = max(g.cols, len(cells))
	}

	for r, rw := range rows {
		for c := range g.cols {
			if g.occupied(r, c) {
				continue
			}
			var content cell.Content
			if factory != nil {
				content = factory.NewEmpty()
			}
			pad := cell.New(content)
			g.place(pad, r, c)
			rw.Append(pad)
		}
	}

	for r := range g.rows {
		for c := range g.cols {
			cur := g.matrix[r][c]
			if g.bounds[cur].Origin() == coordinate.NewPoint(r, c) {
				g.order = append(g.order, cur)
			}
		}
	}

	return g
}

func (g *Grid) occupied(r, c int) bool {
	return c < len(g.matrix[r]) && g.matrix[r][c] != nil
}

// freeRows returns how many of the want rows starting at r are free at
// column c.
func (g *Grid) freeRows(r, c, want int) int {
	n := 0
	for n < want && !g.occupied(r+n, c) {
		n++
	}
	return max(n, 1)
}

// freeCols returns how many of the want columns starting at c are free in
// every row of [r, r+rowSpan).
func (g *Grid) freeCols(r, c, rowSpan, want int) int {
	n := 0
	for n < want {
		for dr := range rowSpan {
			if g.occupied(r+dr, c+n) {
				return max(n, 1)
			}
		}
		n++
	}
	return n
}

func (g *Grid) place(c *cell.Cell, r, col int) {
	for dr := range c.RowSpan {
		line := g.matrix[r+dr]
		if need := col + c.ColSpan; len(line) < need {
			line = append(line, make([]*cell.Cell, need-len(line))...)
		}
		for dc := range c.ColSpan {
			utils.Assertf(line[col+dc] == nil, "grid: slot (%d,%d) placed twice", r+dr, col+dc)
			line[col+dc] = c
		}
		g.matrix[r+dr] = line
	}
	g.bounds[c] = coordinate.Rect{
		StartRow: r,
		EndRow:   r + c.RowSpan,
		StartCol: col,
		EndCol:   col + c.ColSpan,
	}
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// Size returns the whole grid as a rect.
func (g *Grid) Size() coordinate.Rect {
	return coordinate.Rect{EndRow: g.rows, EndCol: g.cols}
}

// InBounds reports whether p addresses a slot of the grid.
func (g *Grid) InBounds(p coordinate.Point) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// At returns the cell covering (r, c). The slot must be in bounds.
func (g *Grid) At(r, c int) *cell.Cell {
	utils.Assertf(g.InBounds(coordinate.NewPoint(r, c)), "grid: slot (%d,%d) out of bounds %dx%d", r, c, g.rows, g.cols)
	return g.matrix[r][c]
}

// Lookup is At for points that may be out of bounds.
func (g *Grid) Lookup(p coordinate.Point) (*cell.Cell, bool) {
	if !g.InBounds(p) {
		return nil, false
	}
	return g.matrix[p.Row][p.Col], true
}

// Origin returns the top-left slot of c.
func (g *Grid) Origin(c *cell.Cell) (coordinate.Point, bool) {
	b, ok := g.bounds[c]
	return b.Origin(), ok
}

// Bounds returns the block covered by c.
func (g *Grid) Bounds(c *cell.Cell) (coordinate.Rect, bool) {
	b, ok := g.bounds[c]
	return b, ok
}

// Contains reports whether c belongs to this grid.
func (g *Grid) Contains(c *cell.Cell) bool {
	_, ok := g.bounds[c]
	return ok
}

// Cells returns every distinct cell in row-major order of origin.
func (g *Grid) Cells() []*cell.Cell {
	return g.order
}

// CellsIn returns the distinct cells that overlap rect, in row-major order of
// origin.
func (g *Grid) CellsIn(rect coordinate.Rect) []*cell.Cell {
	var out []*cell.Cell
	for _, c := range g.order {
		if g.bounds[c].Intersects(rect) {
			out = append(out, c)
		}
	}
	return out
}

// RowCells returns the cells originating in row r, in column order. This is
// exactly the row store entry for r.
func (g *Grid) RowCells(r int) []*cell.Cell {
	var out []*cell.Cell
	for c := 0; c < g.cols; {
		cur := g.matrix[r][c]
		b := g.bounds[cur]
		if b.StartRow == r {
			out = append(out, cur)
		}
		c = b.EndCol
	}
	return out
}

// ToRows rebuilds a row store from the grid. The cell records are shared.
func (g *Grid) ToRows() []*row.Row {
	rows := make([]*row.Row, g.rows)
	for r := range rows {
		rows[r] = row.New(g.RowCells(r)...)
	}
	return rows
}

// RowInsertPosition returns the index in row r's store entry at which a cell
// originating at column col belongs.
func (g *Grid) RowInsertPosition(r, col int) int {
	n := 0
	for _, c := range g.RowCells(r) {
		if g.bounds[c].StartCol < col {
			n++
		}
	}
	return n
}

type span struct {
	Row, Col         int
	RowSpan, ColSpan int
}

type shape struct {
	Rows, Cols int
	Spans      []span
}

// Hash fingerprints the structure of the grid: its size and the position and
// span of every cell. Content is not part of the hash.
func (g *Grid) Hash() uint64 {
	s := shape{Rows: g.rows, Cols: g.cols, Spans: make([]span, len(g.order))}
	for i, c := range g.order {
		b := g.bounds[c]
		s.Spans[i] = span{Row: b.StartRow, Col: b.StartCol, RowSpan: b.Rows(), ColSpan: b.Cols()}
	}
	hashed, err := hashstructure.Hash(s, hashstructure.FormatV2, nil)
	utils.Assertf(err == nil, "failed to hash grid: %v", err)
	return hashed
}

// AssertIntegrity checks that the matrix is rectangular, fully covered, and
// that every cell fills exactly its RowSpan x ColSpan block.
func (g *Grid) AssertIntegrity() {
	utils.Assert(len(g.matrix) == g.rows, "grid integrity violation: row count")
	seen := make(map[*cell.Cell]int, len(g.order))
	for r, line := range g.matrix {
		utils.Assertf(len(line) == g.cols, "grid integrity violation: row %d has %d columns, want %d", r, len(line), g.cols)
		for c, cur := range line {
			utils.Assertf(cur != nil, "grid integrity violation: slot (%d,%d) is empty", r, c)
			b, ok := g.Bounds(cur)
			utils.Assertf(ok, "grid integrity violation: slot (%d,%d) has no origin", r, c)
			utils.Assertf(b.Contains(coordinate.NewPoint(r, c)), "grid integrity violation: slot (%d,%d) outside its cell %s", r, c, b)
			seen[cur]++
		}
	}
	for cur, n := range seen {
		b := g.bounds[cur]
		utils.Assertf(b.Rows() == cur.RowSpan && b.Cols() == cur.ColSpan,
			"grid integrity violation: cell at %s has spans %dx%d", b, cur.RowSpan, cur.ColSpan)
		utils.Assertf(n == b.Area(), "grid integrity violation: cell covers %d slots, want %d", n, b.Area())
	}
}

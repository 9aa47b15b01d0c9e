package row

import (
	"github.com/hnimtadd/tablegrid/table/cell"
	"github.com/hnimtadd/tablegrid/table/utils"
)

// Row holds the cells whose span originates in this row, in column order. A
// cell spanning three rows appears once, in its first row, the same way an
// HTML <tr> stores a <td rowspan> once.
type Row struct {
	Cells []*cell.Cell
}

func New(cells ...*cell.Cell) *Row {
	return &Row{Cells: cells}
}

// NewUnitRows builds a rows x cols store of unit cells with empty content.
func NewUnitRows(rows, cols int, factory cell.ContentFactory) []*Row {
	out := make([]*Row, rows)
	for r := range out {
		cells := make([]*cell.Cell, cols)
		for c := range cells {
			cells[c] = cell.NewEmpty(factory)
		}
		out[r] = New(cells...)
	}
	return out
}

// Len is the number of cells originating in this row.
func (r *Row) Len() int {
	return len(r.Cells)
}

// IndexOf returns the position of c in the row, or -1.
func (r *Row) IndexOf(c *cell.Cell) int {
	for i, other := range r.Cells {
		if other == c {
			return i
		}
	}
	return -1
}

// Insert places cells before position i.
func (r *Row) Insert(i int, cells ...*cell.Cell) {
	r.Cells = utils.InsertAt(r.Cells, i, cells...)
}

func (r *Row) Append(cells ...*cell.Cell) {
	r.Cells = append(r.Cells, cells...)
}

// Remove drops c from the row. It reports whether c was found.
func (r *Row) Remove(c *cell.Cell) bool {
	i := r.IndexOf(c)
	if i < 0 {
		return false
	}
	r.Cells = utils.RemoveAt(r.Cells, i)
	return true
}

// Replace swaps c for cells at the same position.
func (r *Row) Replace(c *cell.Cell, cells ...*cell.Cell) bool {
	i := r.IndexOf(c)
	if i < 0 {
		return false
	}
	r.Cells = utils.ReplaceAt(r.Cells, i, cells...)
	return true
}

// Clone copies the row and its cell records. Content handles are shared, not
// copied.
func (r *Row) Clone() *Row {
	cells := make([]*cell.Cell, len(r.Cells))
	for i, c := range r.Cells {
		dup := *c
		cells[i] = &dup
	}
	return New(cells...)
}

// CellCount counts the cells stored across rows.
func CellCount(rows []*Row) int {
	total := 0
	for _, r := range rows {
		total += r.Len()
	}
	return total
}

package table

import (
	"fmt"

	"github.com/hnimtadd/tablegrid/table/cell"
	"github.com/hnimtadd/tablegrid/table/grid"
	"github.com/hnimtadd/tablegrid/table/layout"
	"github.com/hnimtadd/tablegrid/table/row"
	"github.com/hnimtadd/tablegrid/table/utils"
)

type positionKind int

const (
	// The line falls between cells.
	atBoundary positionKind = iota
	// The line runs through cell.
	insideSpan
)

// position is where an inserted or deleted line falls relative to the cell
// in one row (for columns) or one column (for rows).
type position struct {
	kind positionKind
	cell *cell.Cell
}

// columnBoundary classifies the boundary before column index in row r. The
// outer edges are always boundaries.
func columnBoundary(g *grid.Grid, r, index int) position {
	if index <= 0 || index >= g.Cols() {
		return position{kind: atBoundary}
	}
	c := g.At(r, index)
	if b, _ := g.Bounds(c); b.StartCol < index {
		return position{kind: insideSpan, cell: c}
	}
	return position{kind: atBoundary}
}

// rowBoundary classifies the boundary before row index in column col.
func rowBoundary(g *grid.Grid, col, index int) position {
	if index <= 0 || index >= g.Rows() {
		return position{kind: atBoundary}
	}
	c := g.At(index, col)
	if b, _ := g.Bounds(c); b.StartRow < index {
		return position{kind: insideSpan, cell: c}
	}
	return position{kind: atBoundary}
}

// columnSlot classifies column index in row r: the cell there either fits
// between the column's boundaries or spans past them.
func columnSlot(g *grid.Grid, r, index int) position {
	c := g.At(r, index)
	if b, _ := g.Bounds(c); b.Cols() > 1 {
		return position{kind: insideSpan, cell: c}
	}
	return position{kind: atBoundary, cell: c}
}

// rowSlot is columnSlot for row index in column col.
func rowSlot(g *grid.Grid, col, index int) position {
	c := g.At(index, col)
	if b, _ := g.Bounds(c); b.Rows() > 1 {
		return position{kind: insideSpan, cell: c}
	}
	return position{kind: atBoundary, cell: c}
}

// InsertColumn adds a column before index; index may equal the column count
// to append. Cells the new column runs through are widened by one, every
// other row gets a fresh empty unit cell.
func (t *Table) InsertColumn(index int) (layout.Change, error) {
	g := t.Grid()
	if index < 0 || index > g.Cols() {
		return layout.Change{}, t.fail(opInsertColumn,
			fmt.Errorf("%w: column %d outside [0,%d]", ErrInvalidSelection, index, g.Cols()))
	}

	before := g.Hash()
	widened := make(map[*cell.Cell]bool)
	for r := range g.Rows() {
		pos := columnBoundary(g, r, index)
		switch pos.kind {
		case insideSpan:
			if !widened[pos.cell] {
				pos.cell.ColSpan++
				widened[pos.cell] = true
			}
		case atBoundary:
			t.rows[r].Insert(g.RowInsertPosition(r, index), cell.NewEmpty(t.factory))
		}
	}

	change := layout.Change{Axis: layout.AxisColumn, At: index, Delta: 1}
	t.commit(opInsertColumn, before, change)
	return change, nil
}

// DeleteColumn removes column index. Cells spanning several columns lose one
// column; the cells that only lived in it are removed from the table and
// returned so their content can be released.
func (t *Table) DeleteColumn(index int) ([]*cell.Cell, layout.Change, error) {
	g := t.Grid()
	if index < 0 || index >= g.Cols() {
		return nil, layout.Change{}, t.fail(opDeleteColumn,
			fmt.Errorf("%w: column %d outside [0,%d)", ErrInvalidSelection, index, g.Cols()))
	}
	if g.Cols() == 1 {
		return nil, layout.Change{}, t.fail(opDeleteColumn, ErrLastColumn)
	}

	before := g.Hash()
	var removed []*cell.Cell
	seen := make(map[*cell.Cell]bool)
	for r := range g.Rows() {
		pos := columnSlot(g, r, index)
		if seen[pos.cell] {
			continue
		}
		seen[pos.cell] = true
		switch pos.kind {
		case insideSpan:
			pos.cell.ColSpan--
		case atBoundary:
			o, _ := g.Origin(pos.cell)
			ok := t.rows[o.Row].Remove(pos.cell)
			utils.Assertf(ok, "table: deleted cell missing from row %d", o.Row)
			removed = append(removed, pos.cell)
		}
	}

	change := layout.Change{Axis: layout.AxisColumn, At: index, Delta: -1}
	t.commit(opDeleteColumn, before, change)
	return removed, change, nil
}

// InsertRow adds a row before index; index may equal the row count to
// append. Cells the new row runs through grow by one row, every other column
// gets a fresh empty unit cell.
func (t *Table) InsertRow(index int) (layout.Change, error) {
	g := t.Grid()
	if index < 0 || index > g.Rows() {
		return layout.Change{}, t.fail(opInsertRow,
			fmt.Errorf("%w: row %d outside [0,%d]", ErrInvalidSelection, index, g.Rows()))
	}

	before := g.Hash()
	line := row.New()
	for c := 0; c < g.Cols(); {
		pos := rowBoundary(g, c, index)
		if pos.kind == insideSpan {
			b, _ := g.Bounds(pos.cell)
			pos.cell.RowSpan++
			c = b.EndCol
			continue
		}
		line.Append(cell.NewEmpty(t.factory))
		c++
	}
	t.rows = utils.InsertAt(t.rows, index, line)

	change := layout.Change{Axis: layout.AxisRow, At: index, Delta: 1}
	t.commit(opInsertRow, before, change)
	return change, nil
}

// DeleteRow removes row index. Cells spanning several rows lose one row; a
// cell that started in the deleted row moves down to the next one. The cells
// that only lived in the row are returned.
func (t *Table) DeleteRow(index int) ([]*cell.Cell, layout.Change, error) {
	g := t.Grid()
	if index < 0 || index >= g.Rows() {
		return nil, layout.Change{}, t.fail(opDeleteRow,
			fmt.Errorf("%w: row %d outside [0,%d)", ErrInvalidSelection, index, g.Rows()))
	}
	if g.Rows() == 1 {
		return nil, layout.Change{}, t.fail(opDeleteRow, ErrLastRow)
	}

	before := g.Hash()
	var removed, moved []*cell.Cell
	for c := 0; c < g.Cols(); {
		pos := rowSlot(g, c, index)
		b, _ := g.Bounds(pos.cell)
		c = b.EndCol
		switch {
		case pos.kind == atBoundary:
			removed = append(removed, pos.cell)
		case b.StartRow == index:
			pos.cell.RowSpan--
			moved = append(moved, pos.cell)
		default:
			pos.cell.RowSpan--
		}
	}

	// Moved cells are in column order; each lands after the ones before it.
	for i, c := range moved {
		b, _ := g.Bounds(c)
		t.rows[index+1].Insert(g.RowInsertPosition(index+1, b.StartCol)+i, c)
	}
	t.rows = utils.RemoveAt(t.rows, index)

	change := layout.Change{Axis: layout.AxisRow, At: index, Delta: -1}
	t.commit(opDeleteRow, before, change)
	return removed, change, nil
}

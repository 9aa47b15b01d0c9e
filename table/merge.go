package table

import (
	"fmt"

	"github.com/hnimtadd/tablegrid/table/cell"
	"github.com/hnimtadd/tablegrid/table/coordinate"
	"github.com/hnimtadd/tablegrid/table/grid"
	"github.com/hnimtadd/tablegrid/table/layout"
	"github.com/hnimtadd/tablegrid/table/selection"
	"github.com/hnimtadd/tablegrid/table/utils"
)

// MergeRectangle replaces every cell inside rect with one cell spanning the
// whole rect. rect must be resolved, see SelectionRectangle. The contents of
// the covered cells are joined by the content factory in row-major order of
// their origins. A rect holding a single cell is left alone and that cell is
// returned.
//
// Merges never change the number of rows or columns; the returned Change is
// always zero.
func (t *Table) MergeRectangle(rect coordinate.Rect) (*cell.Cell, layout.Change, error) {
	g := t.Grid()
	if !selection.IsResolved(g, rect) {
		return nil, layout.Change{}, t.fail(opMerge,
			fmt.Errorf("%w: rect %s in %dx%d grid cuts a merged cell or is out of bounds",
				ErrInvalidSelection, rect, g.Rows(), g.Cols()))
	}
	covered := selection.Cells(g, rect)
	if len(covered) == 1 {
		return covered[0], layout.Change{}, nil
	}

	before := g.Hash()
	origin := rect.Origin()
	// Every covered cell of the origin row starts at or after the origin
	// column, so the position survives the removals below.
	pos := g.RowInsertPosition(origin.Row, origin.Col)

	parts := make([]cell.Content, 0, len(covered))
	for _, c := range covered {
		if c.Content != nil {
			parts = append(parts, c.Content)
		}
	}
	merged := &cell.Cell{
		RowSpan: rect.Rows(),
		ColSpan: rect.Cols(),
		Content: t.factory.Combine(parts),
	}

	for _, c := range covered {
		o, _ := g.Origin(c)
		removed := t.rows[o.Row].Remove(c)
		utils.Assertf(removed, "table: merged cell missing from row %d", o.Row)
	}
	t.rows[origin.Row].Insert(pos, merged)

	t.commit(opMerge, before, layout.Change{})
	return merged, layout.Change{}, nil
}

// SplitCell breaks a merged cell into unit cells, returned in row-major order.
// The first of them is target itself, keeping its content; the others get
// fresh empty content.
func (t *Table) SplitCell(target *cell.Cell) ([]*cell.Cell, layout.Change, error) {
	g := t.Grid()
	if target == nil || !g.Contains(target) {
		return nil, layout.Change{}, t.fail(opSplit, fmt.Errorf("%w: cell is not part of this table", ErrInvalidSelection))
	}
	if target.IsUnit() {
		return nil, layout.Change{}, t.fail(opSplit, ErrNotMergeable)
	}

	before := g.Hash()
	cells := t.split(g, target)
	t.commit(opSplit, before, layout.Change{})
	return cells, layout.Change{}, nil
}

// SplitCellAt splits the cell covering p.
func (t *Table) SplitCellAt(p coordinate.Point) ([]*cell.Cell, layout.Change, error) {
	g := t.Grid()
	target, ok := g.Lookup(p)
	if !ok {
		return nil, layout.Change{}, t.fail(opSplit,
			fmt.Errorf("%w: %s in %dx%d grid", ErrInvalidSelection, p, g.Rows(), g.Cols()))
	}
	return t.SplitCell(target)
}

// SplitAllInRectangle splits every merged cell overlapping rect. Unit cells
// are untouched. rect need not be resolved.
func (t *Table) SplitAllInRectangle(rect coordinate.Rect) ([]*cell.Cell, layout.Change, error) {
	g := t.Grid()
	if !rect.Within(g.Rows(), g.Cols()) {
		return nil, layout.Change{}, t.fail(opSplitAll,
			fmt.Errorf("%w: rect %s outside %dx%d grid", ErrInvalidSelection, rect, g.Rows(), g.Cols()))
	}

	var targets []*cell.Cell
	for _, c := range selection.Cells(g, rect) {
		if !c.IsUnit() {
			targets = append(targets, c)
		}
	}
	if len(targets) == 0 {
		return nil, layout.Change{}, nil
	}

	before := g.Hash()
	var cells []*cell.Cell
	for _, target := range targets {
		// Each split rewrites rows, so positions come from a fresh grid.
		cells = append(cells, t.split(t.Grid(), target)...)
	}
	t.commit(opSplitAll, before, layout.Change{})
	return cells, layout.Change{}, nil
}

// split rewrites the row store so that target's block is covered by unit
// cells. g must reflect the current rows.
func (t *Table) split(g *grid.Grid, target *cell.Cell) []*cell.Cell {
	b, _ := g.Bounds(target)
	out := make([]*cell.Cell, 0, b.Area())
	for r := b.StartRow; r < b.EndRow; r++ {
		line := make([]*cell.Cell, b.Cols())
		for i := range line {
			if r == b.StartRow && i == 0 {
				line[i] = target
				continue
			}
			line[i] = cell.NewEmpty(t.factory)
		}
		if r == b.StartRow {
			replaced := t.rows[r].Replace(target, line...)
			utils.Assertf(replaced, "table: split cell missing from row %d", r)
		} else {
			t.rows[r].Insert(g.RowInsertPosition(r, b.StartCol), line...)
		}
		out = append(out, line...)
	}
	target.RowSpan, target.ColSpan = 1, 1
	return out
}

package table

import (
	"fmt"

	"github.com/hnimtadd/tablegrid/logger"
	"github.com/hnimtadd/tablegrid/table/cell"
	"github.com/hnimtadd/tablegrid/table/content"
	"github.com/hnimtadd/tablegrid/table/coordinate"
	"github.com/hnimtadd/tablegrid/table/grid"
	"github.com/hnimtadd/tablegrid/table/layout"
	"github.com/hnimtadd/tablegrid/table/row"
	"github.com/hnimtadd/tablegrid/table/selection"
)

type (
	Options struct {
		// Creates content for new unit cells and joins content on merge.
		// Defaults to plain text.
		Factory cell.ContentFactory

		Logger logger.Logger

		Layout layout.Options
	}

	// Table owns the row store and the layout of one table. The normalized
	// grid is never stored; Grid derives it from the rows on every call.
	//
	// A Table is not safe for concurrent use.
	Table struct {
		rows   []*row.Row
		layout *layout.Layout

		factory cell.ContentFactory
		logger  logger.Logger
	}
)

func (o Options) withDefaults() Options {
	if o.Factory == nil {
		o.Factory = content.TextFactory{}
	}
	o.Logger = logger.OrDefault(o.Logger)
	return o
}

// New creates a rows x cols table of empty unit cells.
func New(rows, cols int, opts Options) (*Table, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyTable, rows, cols)
	}
	opts = opts.withDefaults()
	return &Table{
		rows:    row.NewUnitRows(rows, cols, opts.Factory),
		layout:  layout.New(rows, cols, opts.Layout),
		factory: opts.Factory,
		logger:  opts.Logger,
	}, nil
}

// Grid normalizes the row store into the matrix view.
func (t *Table) Grid() *grid.Grid {
	return grid.Normalize(t.rows, t.factory)
}

func (t *Table) Layout() *layout.Layout { return t.layout }

func (t *Table) Factory() cell.ContentFactory { return t.factory }

// Rows is the number of grid rows.
func (t *Table) Rows() int { return len(t.rows) }

// Cols is the number of grid columns.
func (t *Table) Cols() int { return t.Grid().Cols() }

// SelectionRectangle resolves two slots to the smallest rect that contains
// both and cuts no merged cell.
func (t *Table) SelectionRectangle(a, b coordinate.Point) (coordinate.Rect, error) {
	rect, err := selection.Resolve(t.Grid(), a, b)
	if err != nil {
		return coordinate.Rect{}, fmt.Errorf("%w: %w", ErrInvalidSelection, err)
	}
	return rect, nil
}

// ResizeColumn sets the width of column i. Widths below the layout minimum
// are raised to it.
func (t *Table) ResizeColumn(i int, width float64) error {
	if err := t.layout.ResizeColumn(i, width); err != nil {
		return t.fail(opResizeColumn, err)
	}
	return nil
}

// ResizeRow sets the height of row i and fixes the heights of all rows.
func (t *Table) ResizeRow(i int, height float64) error {
	if err := t.layout.ResizeRow(i, height); err != nil {
		return t.fail(opResizeRow, err)
	}
	return nil
}

// Project maps rect onto pixels. measured holds the rendered row heights and
// is only read when row heights are not fixed.
func (t *Table) Project(rect coordinate.Rect, measured []float64) (layout.Box, error) {
	return t.layout.Project(rect, measured)
}

// CanMerge reports whether MergeRectangle would join more than one cell.
func (t *Table) CanMerge(rect coordinate.Rect) bool {
	g := t.Grid()
	return selection.IsResolved(g, rect) && !selection.IsSingleCell(g, rect)
}

// CanSplit reports whether the cell covering p spans more than one slot.
func (t *Table) CanSplit(p coordinate.Point) bool {
	c, ok := t.Grid().Lookup(p)
	return ok && !c.IsUnit()
}

func (t *Table) CanDeleteColumn() bool { return t.Cols() > 1 }

func (t *Table) CanDeleteRow() bool { return t.Rows() > 1 }

func (t *Table) fail(op string, err error) error {
	t.logger.Debug("table operation rejected", "op", op, "err", err)
	return &OpError{Op: op, Err: err}
}

// commit re-derives the grid after the row store changed, checks it and
// brings the layout along. Any failure here is a bug in the mutation and
// panics.
func (t *Table) commit(op string, before uint64, change layout.Change) *grid.Grid {
	g := t.Grid()
	g.AssertIntegrity()
	if err := t.layout.Apply(change); err != nil {
		panic(fmt.Errorf("%w: %s: %w", layout.ErrLayoutDesync, op, err))
	}
	t.layout.AssertSync(g.Rows(), g.Cols())
	t.logger.Debug("table mutation",
		"op", op,
		"change", change.String(),
		"before", before,
		"after", g.Hash(),
		"rows", g.Rows(),
		"cols", g.Cols(),
	)
	return g
}

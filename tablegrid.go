package tablegrid

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/hnimtadd/tablegrid/logger"
	"github.com/hnimtadd/tablegrid/table"
	"github.com/hnimtadd/tablegrid/table/cell"
	"github.com/hnimtadd/tablegrid/table/coordinate"
	"github.com/hnimtadd/tablegrid/table/layout"
	"github.com/hnimtadd/tablegrid/table/markup"
	"github.com/hnimtadd/tablegrid/table/render"
)

var (
	ErrNoSelection = fmt.Errorf("tablegrid: nothing selected")
	// Wraps errors recovered from a panicking command.
	ErrPanic = fmt.Errorf("tablegrid: command panicked")
)

// Editor is the entry point for a UI driving one table. It keeps the
// selection and turns panics from broken invariants into errors, so a bad
// edit fails the command instead of the host.
type Editor struct {
	// The table model: row store, layout and content factory. Renderers read
	// it; only the editor mutates it.
	table *table.Table

	// Tracks the selection and runs the commands relative to it.
	handler *SelectionHandler

	logger logger.Logger
}

type Options struct {
	Rows, Cols int

	Factory cell.ContentFactory
	Logger  logger.Logger
	Layout  layout.Options
}

func (o Options) tableOptions() table.Options {
	return table.Options{
		Factory: o.Factory,
		Logger:  o.Logger,
		Layout:  o.Layout,
	}
}

// NewEditor creates an editor over an empty Rows x Cols table.
func NewEditor(opts Options) (*Editor, error) {
	t, err := table.New(opts.Rows, opts.Cols, opts.tableOptions())
	if err != nil {
		return nil, err
	}
	return newEditor(t, opts.Logger), nil
}

// LoadHTML creates an editor over the first <table> in r.
func LoadHTML(r io.Reader, opts Options) (*Editor, error) {
	t, err := markup.Load(r, opts.tableOptions())
	if err != nil {
		return nil, err
	}
	return newEditor(t, opts.Logger), nil
}

// LoadSnapshot creates an editor over a persisted table.
func LoadSnapshot(s table.Snapshot, opts Options) (*Editor, error) {
	t, err := table.Load(s, opts.tableOptions())
	if err != nil {
		return nil, err
	}
	return newEditor(t, opts.Logger), nil
}

func newEditor(t *table.Table, log logger.Logger) *Editor {
	log = logger.OrDefault(log)
	return &Editor{
		table: t,
		handler: &SelectionHandler{
			table:  t,
			logger: log,
		},
		logger: log,
	}
}

func (e *Editor) Table() *table.Table { return e.table }

// recoverPanic turns a panic in op into *err. Call it deferred.
func (e *Editor) recoverPanic(op string, err *error) {
	r := recover()
	if r == nil {
		return
	}
	e.logger.Error("panic in editor command", "op", op, "panic", r, "stack", string(debug.Stack()))
	if perr, ok := r.(error); ok {
		*err = fmt.Errorf("%w: %s: %w", ErrPanic, op, perr)
		return
	}
	*err = fmt.Errorf("%w: %s: %v", ErrPanic, op, r)
}

// Select sets the selection to the cells between a and b.
func (e *Editor) Select(a, b coordinate.Point) (err error) {
	defer e.recoverPanic("select", &err)
	return e.handler.Select(a, b)
}

func (e *Editor) ClearSelection() {
	e.handler.Clear()
}

// Selection returns the resolved selection rect, which always covers whole
// cells.
func (e *Editor) Selection() (rect coordinate.Rect, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("panic in editor command", "op", "selection", "panic", r)
			rect, ok = coordinate.Rect{}, false
		}
	}()
	return e.handler.Selection()
}

// SelectionBox projects the selection onto pixels. measured holds the
// rendered row heights and is only read when rows are not fixed.
func (e *Editor) SelectionBox(measured []float64) (box layout.Box, err error) {
	defer e.recoverPanic("selection box", &err)
	return e.handler.SelectionBox(measured)
}

func (e *Editor) MergeSelection() (merged *cell.Cell, err error) {
	defer e.recoverPanic("merge selection", &err)
	return e.handler.MergeSelection()
}

func (e *Editor) SplitSelection() (cells []*cell.Cell, err error) {
	defer e.recoverPanic("split selection", &err)
	return e.handler.SplitSelection()
}

func (e *Editor) InsertColumnBefore() (err error) {
	defer e.recoverPanic("insert column before", &err)
	return e.handler.InsertColumn(false)
}

func (e *Editor) InsertColumnAfter() (err error) {
	defer e.recoverPanic("insert column after", &err)
	return e.handler.InsertColumn(true)
}

func (e *Editor) InsertRowAbove() (err error) {
	defer e.recoverPanic("insert row above", &err)
	return e.handler.InsertRow(false)
}

func (e *Editor) InsertRowBelow() (err error) {
	defer e.recoverPanic("insert row below", &err)
	return e.handler.InsertRow(true)
}

// DeleteSelectedColumns deletes every column the selection touches and
// returns the cells that went with them.
func (e *Editor) DeleteSelectedColumns() (removed []*cell.Cell, err error) {
	defer e.recoverPanic("delete columns", &err)
	return e.handler.DeleteColumns()
}

// DeleteSelectedRows deletes every row the selection touches.
func (e *Editor) DeleteSelectedRows() (removed []*cell.Cell, err error) {
	defer e.recoverPanic("delete rows", &err)
	return e.handler.DeleteRows()
}

func (e *Editor) ResizeColumn(i int, width float64) (err error) {
	defer e.recoverPanic("resize column", &err)
	return e.table.ResizeColumn(i, width)
}

func (e *Editor) ResizeRow(i int, height float64) (err error) {
	defer e.recoverPanic("resize row", &err)
	return e.table.ResizeRow(i, height)
}

// DumpString renders the grid as plain text, merged slots marked with
// render.CoveredLeft and render.CoveredAbove.
func (e *Editor) DumpString() string {
	return render.PlainString(e.table.Grid())
}

// WriteHTML writes the table as a <table> element.
func (e *Editor) WriteHTML(w io.Writer) error {
	if err := markup.Render(w, e.table.Snapshot()); err != nil {
		return fmt.Errorf("tablegrid: writing HTML: %w", err)
	}
	return nil
}

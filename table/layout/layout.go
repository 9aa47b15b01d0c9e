package layout

import (
	"fmt"
	"slices"

	"github.com/hnimtadd/tablegrid/table/utils"
)

var (
	ErrLayoutDesync = fmt.Errorf("layout: size arrays out of sync with grid")
	ErrOutOfRange   = fmt.Errorf("layout: index out of range")
	ErrNoRowHeights = fmt.Errorf("layout: no row heights")
)

type Options struct {
	// Width of a column created without any other hint.
	DefaultColumnWidth float64
	// Height of a row created without any other hint, when heights are fixed.
	DefaultRowHeight float64

	// Resizes are clamped to these.
	MinColumnWidth float64
	MinRowHeight   float64

	// When false, rows size to their content and only the renderer knows
	// their heights; see Project.
	FixedRowHeights bool

	// Used to size columns from content length in FitColumns.
	CharWidth          float64
	CellPadding        float64
	MaxAutoColumnWidth float64
}

// DefaultOptions are used for every zero field of Options.
var DefaultOptions = Options{
	DefaultColumnWidth: 100,
	DefaultRowHeight:   30,
	MinColumnWidth:     30,
	MinRowHeight:       30,
	CharWidth:          8,
	CellPadding:        8,
	MaxAutoColumnWidth: 400,
}

func (o Options) withDefaults() Options {
	fill := func(v *float64, d float64) {
		if *v <= 0 {
			*v = d
		}
	}
	fill(&o.DefaultColumnWidth, DefaultOptions.DefaultColumnWidth)
	fill(&o.DefaultRowHeight, DefaultOptions.DefaultRowHeight)
	fill(&o.MinColumnWidth, DefaultOptions.MinColumnWidth)
	fill(&o.MinRowHeight, DefaultOptions.MinRowHeight)
	fill(&o.CharWidth, DefaultOptions.CharWidth)
	fill(&o.CellPadding, DefaultOptions.CellPadding)
	fill(&o.MaxAutoColumnWidth, DefaultOptions.MaxAutoColumnWidth)
	return o
}

// Layout holds the pixel sizes of the normalized columns and rows. It lives
// independently of the cell structure but must be kept the same length: every
// structural change to the column or row count is followed by exactly one
// Apply with the change it produced.
type Layout struct {
	columnWidths []float64
	// nil unless row heights are fixed.
	rowHeights []float64
	rows       int

	opts Options
}

// New creates a layout for a rows x cols grid with default sizes.
func New(rows, cols int, opts Options) *Layout {
	opts = opts.withDefaults()
	l := &Layout{
		columnWidths: make([]float64, cols),
		rows:         rows,
		opts:         opts,
	}
	for i := range l.columnWidths {
		l.columnWidths[i] = opts.DefaultColumnWidth
	}
	if opts.FixedRowHeights {
		l.fixRowHeights()
	}
	return l
}

// FromSizes restores a layout from persisted arrays. A nil heights slice
// means rows are not fixed. Sizes are clamped to the minimums.
func FromSizes(rows int, widths, heights []float64, opts Options) *Layout {
	opts = opts.withDefaults()
	l := &Layout{
		columnWidths: make([]float64, len(widths)),
		rows:         rows,
		opts:         opts,
	}
	for i, w := range widths {
		l.columnWidths[i] = max(w, opts.MinColumnWidth)
	}
	if heights != nil {
		l.rowHeights = make([]float64, len(heights))
		for i, h := range heights {
			l.rowHeights[i] = max(h, opts.MinRowHeight)
		}
	} else if opts.FixedRowHeights {
		l.fixRowHeights()
	}
	return l
}

func (l *Layout) fixRowHeights() {
	l.rowHeights = make([]float64, l.rows)
	for i := range l.rowHeights {
		l.rowHeights[i] = l.opts.DefaultRowHeight
	}
}

func (l *Layout) Options() Options { return l.opts }

func (l *Layout) Cols() int { return len(l.columnWidths) }
func (l *Layout) Rows() int { return l.rows }

// ColumnWidths returns a copy of the column widths.
func (l *Layout) ColumnWidths() []float64 {
	return slices.Clone(l.columnWidths)
}

// RowHeights returns a copy of the fixed row heights, or nil.
func (l *Layout) RowHeights() []float64 {
	return slices.Clone(l.rowHeights)
}

func (l *Layout) HasFixedRowHeights() bool {
	return l.rowHeights != nil
}

// Width is the total width of all columns.
func (l *Layout) Width() float64 {
	return utils.Sum(l.columnWidths, 0, len(l.columnWidths))
}

// ResizeColumn sets the width of column i, clamped to the minimum width.
func (l *Layout) ResizeColumn(i int, width float64) error {
	if i < 0 || i >= len(l.columnWidths) {
		return fmt.Errorf("%w: column %d of %d", ErrOutOfRange, i, len(l.columnWidths))
	}
	l.columnWidths[i] = max(width, l.opts.MinColumnWidth)
	return nil
}

// ResizeRow sets the height of row i, clamped to the minimum height. Resizing
// a row fixes the heights of all rows; the others take the default height.
func (l *Layout) ResizeRow(i int, height float64) error {
	if i < 0 || i >= l.rows {
		return fmt.Errorf("%w: row %d of %d", ErrOutOfRange, i, l.rows)
	}
	if l.rowHeights == nil {
		l.fixRowHeights()
	}
	l.rowHeights[i] = max(height, l.opts.MinRowHeight)
	return nil
}

// InsertColumn adds a column at i, sized as the average of its neighbours.
func (l *Layout) InsertColumn(i int) error {
	if i < 0 || i > len(l.columnWidths) {
		return fmt.Errorf("%w: insert column %d of %d", ErrOutOfRange, i, len(l.columnWidths))
	}
	w := neighbourAverage(l.columnWidths, i, l.opts.DefaultColumnWidth)
	l.columnWidths = utils.InsertAt(l.columnWidths, i, w)
	return nil
}

func (l *Layout) DeleteColumn(i int) error {
	if i < 0 || i >= len(l.columnWidths) {
		return fmt.Errorf("%w: delete column %d of %d", ErrOutOfRange, i, len(l.columnWidths))
	}
	l.columnWidths = utils.RemoveAt(l.columnWidths, i)
	return nil
}

func (l *Layout) InsertRow(i int) error {
	if i < 0 || i > l.rows {
		return fmt.Errorf("%w: insert row %d of %d", ErrOutOfRange, i, l.rows)
	}
	if l.rowHeights != nil {
		h := neighbourAverage(l.rowHeights, i, l.opts.DefaultRowHeight)
		l.rowHeights = utils.InsertAt(l.rowHeights, i, h)
	}
	l.rows++
	return nil
}

func (l *Layout) DeleteRow(i int) error {
	if i < 0 || i >= l.rows {
		return fmt.Errorf("%w: delete row %d of %d", ErrOutOfRange, i, l.rows)
	}
	if l.rowHeights != nil {
		l.rowHeights = utils.RemoveAt(l.rowHeights, i)
	}
	l.rows--
	return nil
}

func neighbourAverage(values []float64, i int, fallback float64) float64 {
	sum, n := 0.0, 0
	if i > 0 {
		sum += values[i-1]
		n++
	}
	if i < len(values) {
		sum += values[i]
		n++
	}
	if n == 0 {
		return fallback
	}
	return sum / float64(n)
}

// FitColumns sizes each column from the longest content found in it. A zero
// length keeps the default width.
func (l *Layout) FitColumns(lengths []int) error {
	if len(lengths) != len(l.columnWidths) {
		return fmt.Errorf("%w: %d lengths for %d columns", ErrLayoutDesync, len(lengths), len(l.columnWidths))
	}
	for i, n := range lengths {
		w := float64(n)*l.opts.CharWidth + 2*l.opts.CellPadding
		w = min(w, l.opts.MaxAutoColumnWidth)
		l.columnWidths[i] = max(w, l.opts.DefaultColumnWidth, l.opts.MinColumnWidth)
	}
	return nil
}

// CheckSync returns ErrLayoutDesync unless the layout matches a rows x cols
// grid.
func (l *Layout) CheckSync(rows, cols int) error {
	if len(l.columnWidths) != cols {
		return fmt.Errorf("%w: %d widths for %d columns", ErrLayoutDesync, len(l.columnWidths), cols)
	}
	if l.rows != rows {
		return fmt.Errorf("%w: %d rows tracked for %d rows", ErrLayoutDesync, l.rows, rows)
	}
	if l.rowHeights != nil && len(l.rowHeights) != rows {
		return fmt.Errorf("%w: %d heights for %d rows", ErrLayoutDesync, len(l.rowHeights), rows)
	}
	return nil
}

// AssertSync panics with ErrLayoutDesync when CheckSync fails.
func (l *Layout) AssertSync(rows, cols int) {
	err := l.CheckSync(rows, cols)
	utils.NoError(err)
}

package layout

import "fmt"

// Drag is an in-progress resize gesture. Moves only change the preview; the
// layout is touched on Commit. Dropping or cancelling the drag discards the
// pending delta.
type Drag struct {
	layout *Layout
	axis   Axis
	index  int
	start  float64
	delta  float64
	done   bool
}

// BeginColumnDrag starts resizing column i.
func (l *Layout) BeginColumnDrag(i int) (*Drag, error) {
	if i < 0 || i >= len(l.columnWidths) {
		return nil, fmt.Errorf("%w: column %d of %d", ErrOutOfRange, i, len(l.columnWidths))
	}
	return &Drag{layout: l, axis: AxisColumn, index: i, start: l.columnWidths[i]}, nil
}

// BeginRowDrag starts resizing row i from its current height, or from
// startHeight when rows are not fixed.
func (l *Layout) BeginRowDrag(i int, startHeight float64) (*Drag, error) {
	if i < 0 || i >= l.rows {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, i, l.rows)
	}
	start := startHeight
	if l.rowHeights != nil {
		start = l.rowHeights[i]
	}
	return &Drag{layout: l, axis: AxisRow, index: i, start: start}, nil
}

// Move sets the pointer offset from where the gesture started.
func (d *Drag) Move(delta float64) {
	d.delta = delta
}

// Size is the size the line would have if committed now.
func (d *Drag) Size() float64 {
	minimum := d.layout.opts.MinColumnWidth
	if d.axis == AxisRow {
		minimum = d.layout.opts.MinRowHeight
	}
	return max(d.start+d.delta, minimum)
}

// Commit writes the previewed size into the layout.
func (d *Drag) Commit() error {
	if d.done {
		return fmt.Errorf("layout: drag already finished")
	}
	d.done = true
	if d.axis == AxisRow {
		return d.layout.ResizeRow(d.index, d.Size())
	}
	return d.layout.ResizeColumn(d.index, d.Size())
}

// Cancel discards the gesture.
func (d *Drag) Cancel() {
	d.done = true
	d.delta = 0
}

package layout

import (
	"fmt"

	"github.com/hnimtadd/tablegrid/table/coordinate"
	"github.com/hnimtadd/tablegrid/table/utils"
)

// Box is a pixel rectangle relative to the table's top-left corner.
type Box struct {
	Left, Top     float64
	Width, Height float64
}

func (b Box) Right() float64  { return b.Left + b.Width }
func (b Box) Bottom() float64 { return b.Top + b.Height }

// heights picks the fixed heights, or the ones measured by the renderer,
// which must cover every row.
func (l *Layout) heights(measured []float64) ([]float64, error) {
	if l.rowHeights != nil {
		return l.rowHeights, nil
	}
	if measured == nil {
		return nil, ErrNoRowHeights
	}
	if len(measured) != l.rows {
		return nil, fmt.Errorf("%w: %d measured row heights for %d rows", ErrLayoutDesync, len(measured), l.rows)
	}
	return measured, nil
}

// Project maps a rect of grid slots onto pixels. Row heights come from the
// layout when fixed, otherwise from measured, which holds the rendered height
// of each row.
func (l *Layout) Project(rect coordinate.Rect, measured []float64) (Box, error) {
	heights, err := l.heights(measured)
	if err != nil {
		return Box{}, err
	}
	if !rect.Within(len(heights), len(l.columnWidths)) {
		return Box{}, fmt.Errorf("%w: rect %s outside %dx%d", ErrOutOfRange, rect, len(heights), len(l.columnWidths))
	}
	return Box{
		Left:   utils.Sum(l.columnWidths, 0, rect.StartCol),
		Width:  utils.Sum(l.columnWidths, rect.StartCol, rect.EndCol),
		Top:    utils.Sum(heights, 0, rect.StartRow),
		Height: utils.Sum(heights, rect.StartRow, rect.EndRow),
	}, nil
}

// ColumnEdge is the x offset of the boundary before column i. i may equal the
// column count for the right edge of the table. Insertion bars are drawn here.
func (l *Layout) ColumnEdge(i int) (float64, error) {
	if i < 0 || i > len(l.columnWidths) {
		return 0, fmt.Errorf("%w: column edge %d of %d", ErrOutOfRange, i, len(l.columnWidths))
	}
	return utils.Sum(l.columnWidths, 0, i), nil
}

// RowEdge is the y offset of the boundary before row i.
func (l *Layout) RowEdge(i int, measured []float64) (float64, error) {
	heights, err := l.heights(measured)
	if err != nil {
		return 0, err
	}
	if i < 0 || i > len(heights) {
		return 0, fmt.Errorf("%w: row edge %d of %d", ErrOutOfRange, i, len(heights))
	}
	return utils.Sum(heights, 0, i), nil
}

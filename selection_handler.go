package tablegrid

import (
	"fmt"

	"github.com/hnimtadd/tablegrid/logger"
	"github.com/hnimtadd/tablegrid/table"
	"github.com/hnimtadd/tablegrid/table/cell"
	"github.com/hnimtadd/tablegrid/table/coordinate"
	"github.com/hnimtadd/tablegrid/table/layout"
)

// SelectionHandler keeps the selection of an editor and runs the commands
// that act on it. It is stateful and lives as long as the editor; the
// selection follows the table through inserts and deletes.
type SelectionHandler struct {
	table *table.Table

	// The slots the user pressed and released on. They are kept as points
	// rather than a rect because merges and splits change how far the
	// selection reaches.
	anchor, focus coordinate.Point
	active        bool
	// Grid hash the points were last placed against. A table changed
	// without going through the handler leaves the points meaningless.
	seen uint64

	logger logger.Logger
}

// Select sets the selection to the cells between a and b.
func (s *SelectionHandler) Select(a, b coordinate.Point) error {
	if _, err := s.table.SelectionRectangle(a, b); err != nil {
		return err
	}
	s.anchor, s.focus, s.active = a, b, true
	s.mark()
	return nil
}

func (s *SelectionHandler) Clear() {
	s.active = false
}

// Selection resolves the current selection against the grid.
func (s *SelectionHandler) Selection() (coordinate.Rect, bool) {
	if !s.active {
		return coordinate.Rect{}, false
	}
	if hash := s.table.Grid().Hash(); hash != s.seen {
		s.logger.Warn("selection stale", "anchor", s.anchor.String(), "focus", s.focus.String(), "seen", s.seen, "hash", hash)
		s.active = false
		return coordinate.Rect{}, false
	}
	rect, err := s.table.SelectionRectangle(s.anchor, s.focus)
	if err != nil {
		s.logger.Warn("selection lost", "anchor", s.anchor.String(), "focus", s.focus.String(), "err", err)
		s.active = false
		return coordinate.Rect{}, false
	}
	return rect, true
}

func (s *SelectionHandler) selection() (coordinate.Rect, error) {
	rect, ok := s.Selection()
	if !ok {
		return coordinate.Rect{}, ErrNoSelection
	}
	return rect, nil
}

func (s *SelectionHandler) SelectionBox(measured []float64) (layout.Box, error) {
	rect, err := s.selection()
	if err != nil {
		return layout.Box{}, err
	}
	return s.table.Project(rect, measured)
}

// MergeSelection merges the selected cells. The selection then covers the
// merged cell.
func (s *SelectionHandler) MergeSelection() (*cell.Cell, error) {
	rect, err := s.selection()
	if err != nil {
		return nil, err
	}
	merged, _, err := s.table.MergeRectangle(rect)
	s.mark()
	return merged, err
}

// SplitSelection splits every merged cell in the selection.
func (s *SelectionHandler) SplitSelection() ([]*cell.Cell, error) {
	rect, err := s.selection()
	if err != nil {
		return nil, err
	}
	cells, _, err := s.table.SplitAllInRectangle(rect)
	s.mark()
	return cells, err
}

// InsertColumn inserts a column at the left or right edge of the selection.
func (s *SelectionHandler) InsertColumn(after bool) error {
	rect, err := s.selection()
	if err != nil {
		return err
	}
	index := rect.StartCol
	if after {
		index = rect.EndCol
	}
	change, err := s.table.InsertColumn(index)
	if err != nil {
		return err
	}
	s.follow(change)
	return nil
}

// InsertRow inserts a row at the top or bottom edge of the selection.
func (s *SelectionHandler) InsertRow(below bool) error {
	rect, err := s.selection()
	if err != nil {
		return err
	}
	index := rect.StartRow
	if below {
		index = rect.EndRow
	}
	change, err := s.table.InsertRow(index)
	if err != nil {
		return err
	}
	s.follow(change)
	return nil
}

// DeleteColumns deletes the columns under the selection. It fails without
// changing anything when that would leave no column.
func (s *SelectionHandler) DeleteColumns() ([]*cell.Cell, error) {
	rect, err := s.selection()
	if err != nil {
		return nil, err
	}
	if rect.Cols() >= s.table.Cols() {
		return nil, &table.OpError{Op: "delete columns", Err: fmt.Errorf("%w: selection covers all %d columns", table.ErrLastColumn, rect.Cols())}
	}
	var removed []*cell.Cell
	for range rect.Cols() {
		cells, change, err := s.table.DeleteColumn(rect.StartCol)
		if err != nil {
			return removed, err
		}
		removed = append(removed, cells...)
		s.follow(change)
	}
	return removed, nil
}

// DeleteRows deletes the rows under the selection.
func (s *SelectionHandler) DeleteRows() ([]*cell.Cell, error) {
	rect, err := s.selection()
	if err != nil {
		return nil, err
	}
	if rect.Rows() >= s.table.Rows() {
		return nil, &table.OpError{Op: "delete rows", Err: fmt.Errorf("%w: selection covers all %d rows", table.ErrLastRow, rect.Rows())}
	}
	var removed []*cell.Cell
	for range rect.Rows() {
		cells, change, err := s.table.DeleteRow(rect.StartRow)
		if err != nil {
			return removed, err
		}
		removed = append(removed, cells...)
		s.follow(change)
	}
	return removed, nil
}

func (s *SelectionHandler) mark() {
	s.seen = s.table.Grid().Hash()
}

// follow moves the selection points along with an inserted or deleted line.
// Points on a deleted line move to the line that took its place, or the last
// line when there is none.
func (s *SelectionHandler) follow(change layout.Change) {
	defer s.mark()
	if !s.active || change.IsZero() {
		return
	}
	limit := s.table.Rows()
	if change.Axis == layout.AxisColumn {
		limit = s.table.Cols()
	}
	move := func(v int) int {
		switch {
		case change.Delta > 0 && v >= change.At:
			v += change.Delta
		case change.Delta < 0 && v >= change.At-change.Delta:
			v += change.Delta
		case change.Delta < 0 && v >= change.At:
			v = change.At
		}
		return min(v, limit-1)
	}
	for _, p := range []*coordinate.Point{&s.anchor, &s.focus} {
		if change.Axis == layout.AxisColumn {
			p.Col = move(p.Col)
		} else {
			p.Row = move(p.Row)
		}
	}
	s.logger.Debug("selection moved", "change", change.String(), "anchor", s.anchor.String(), "focus", s.focus.String())
}

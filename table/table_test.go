package table

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hnimtadd/tablegrid/logger"
	"github.com/hnimtadd/tablegrid/table/cell"
	"github.com/hnimtadd/tablegrid/table/content"
	"github.com/hnimtadd/tablegrid/table/coordinate"
	"github.com/hnimtadd/tablegrid/table/layout"
	"github.com/hnimtadd/tablegrid/table/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTable(t *testing.T, rows, cols int) *Table {
	t.Helper()
	tbl, err := New(rows, cols, Options{Logger: logger.Discard})
	require.NoError(t, err)
	return tbl
}

// label writes "r,c" into every cell so moves can be traced.
func label(tbl *Table) {
	g := tbl.Grid()
	for _, c := range g.Cells() {
		o, _ := g.Origin(c)
		c.Content = content.NewText(o.String())
	}
}

func rect(r0, r1, c0, c1 int) coordinate.Rect {
	return coordinate.Rect{StartRow: r0, EndRow: r1, StartCol: c0, EndCol: c1}
}

func text(c *cell.Cell) string {
	return content.String(c.Content)
}

func assertSynced(t *testing.T, tbl *Table) {
	t.Helper()
	g := tbl.Grid()
	assert.NotPanics(t, g.AssertIntegrity)
	assert.NoError(t, tbl.Layout().CheckSync(g.Rows(), g.Cols()))
}

func TestNew(t *testing.T) {
	tbl := newTable(t, 2, 3)
	assert.Equal(t, 2, tbl.Rows())
	assert.Equal(t, 3, tbl.Cols())
	assert.Len(t, tbl.Grid().Cells(), 6)
	for _, c := range tbl.Grid().Cells() {
		assert.True(t, c.IsUnit())
		assert.True(t, c.IsEmpty())
	}
	assertSynced(t, tbl)

	for _, size := range [][2]int{{0, 1}, {1, 0}, {-1, 2}} {
		_, err := New(size[0], size[1], Options{})
		assert.ErrorIs(t, err, ErrEmptyTable)
	}
}

func TestMergeThenSplit(t *testing.T) {
	tbl := newTable(t, 2, 2)
	label(tbl)
	original := tbl.Grid().Hash()

	merged, change, err := tbl.MergeRectangle(rect(0, 2, 0, 2))
	require.NoError(t, err)
	assert.True(t, change.IsZero())
	assert.Equal(t, 2, merged.RowSpan)
	assert.Equal(t, 2, merged.ColSpan)
	assert.Equal(t, "(0,0)\n(0,1)\n(1,0)\n(1,1)", text(merged))

	g := tbl.Grid()
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 2, g.Cols())
	for r := range 2 {
		for c := range 2 {
			assert.Same(t, merged, g.At(r, c))
		}
	}
	assertSynced(t, tbl)

	cells, change, err := tbl.SplitCell(merged)
	require.NoError(t, err)
	assert.True(t, change.IsZero())
	require.Len(t, cells, 4)
	assert.Same(t, merged, cells[0])
	assert.Equal(t, "(0,0)\n(0,1)\n(1,0)\n(1,1)", text(cells[0]))
	for _, c := range cells {
		assert.True(t, c.IsUnit())
	}
	for _, c := range cells[1:] {
		assert.True(t, c.IsEmpty())
	}
	assert.Equal(t, original, tbl.Grid().Hash())
	assertSynced(t, tbl)
}

func TestMergeRectangle_KeepsRowStoreOrder(t *testing.T) {
	tbl := newTable(t, 3, 3)
	label(tbl)

	merged, _, err := tbl.MergeRectangle(rect(1, 3, 1, 3))
	require.NoError(t, err)

	g := tbl.Grid()
	assert.Equal(t, "(1,1)\n(1,2)\n(2,1)\n(2,2)", text(merged))
	assert.Equal(t, "(1,0)", text(g.At(1, 0)))
	assert.Equal(t, "(2,0)", text(g.At(2, 0)))
	b, _ := g.Bounds(merged)
	assert.Equal(t, rect(1, 3, 1, 3), b)
	assert.Len(t, tbl.Snapshot().Rows[2], 1)
}

func TestMergeRectangle_Rejects(t *testing.T) {
	tbl := newTable(t, 3, 3)
	_, _, err := tbl.MergeRectangle(rect(0, 2, 0, 2))
	require.NoError(t, err)
	before := tbl.Grid().Hash()

	tests := []struct {
		name string
		rect coordinate.Rect
	}{
		{"cuts merged cell", rect(0, 1, 0, 3)},
		{"out of bounds", rect(0, 4, 0, 1)},
		{"empty", rect(1, 1, 0, 2)},
		{"negative", rect(-1, 1, 0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tbl.MergeRectangle(tt.rect)
			assert.ErrorIs(t, err, ErrInvalidSelection)
			var opErr *OpError
			require.True(t, errors.As(err, &opErr))
			assert.Equal(t, "merge", opErr.Op)
			assert.Equal(t, before, tbl.Grid().Hash())
		})
	}
}

func TestMergeRectangle_SingleCellIsNoop(t *testing.T) {
	tbl := newTable(t, 3, 3)
	merged, _, err := tbl.MergeRectangle(rect(0, 2, 0, 2))
	require.NoError(t, err)
	before := tbl.Grid().Hash()

	got, change, err := tbl.MergeRectangle(rect(0, 2, 0, 2))
	require.NoError(t, err)
	assert.Same(t, merged, got)
	assert.True(t, change.IsZero())

	got, _, err = tbl.MergeRectangle(rect(2, 3, 2, 3))
	require.NoError(t, err)
	assert.Same(t, tbl.Grid().At(2, 2), got)
	assert.Equal(t, before, tbl.Grid().Hash())
}

func TestSplitCell_Rejects(t *testing.T) {
	tbl := newTable(t, 2, 2)
	_, _, err := tbl.SplitCell(tbl.Grid().At(0, 0))
	assert.ErrorIs(t, err, ErrNotMergeable)

	_, _, err = tbl.SplitCell(&cell.Cell{RowSpan: 2, ColSpan: 1})
	assert.ErrorIs(t, err, ErrInvalidSelection)
	_, _, err = tbl.SplitCell(nil)
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, _, err = tbl.SplitCellAt(coordinate.NewPoint(2, 0))
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestSplitCellAt(t *testing.T) {
	tbl := newTable(t, 3, 3)
	merged, _, err := tbl.MergeRectangle(rect(1, 3, 0, 2))
	require.NoError(t, err)

	cells, _, err := tbl.SplitCellAt(coordinate.NewPoint(2, 1))
	require.NoError(t, err)
	require.Len(t, cells, 4)
	assert.Same(t, merged, cells[0])

	g := tbl.Grid()
	assert.Same(t, cells[0], g.At(1, 0))
	assert.Same(t, cells[1], g.At(1, 1))
	assert.Same(t, cells[2], g.At(2, 0))
	assert.Same(t, cells[3], g.At(2, 1))
	assertSynced(t, tbl)
}

func TestSplitAllInRectangle(t *testing.T) {
	tbl := newTable(t, 3, 3)
	original := tbl.Grid().Hash()
	_, _, err := tbl.MergeRectangle(rect(0, 2, 0, 1))
	require.NoError(t, err)
	_, _, err = tbl.MergeRectangle(rect(0, 1, 1, 3))
	require.NoError(t, err)
	_, _, err = tbl.MergeRectangle(rect(2, 3, 1, 3))
	require.NoError(t, err)

	// Only touches the first two merges.
	cells, change, err := tbl.SplitAllInRectangle(rect(0, 2, 0, 2))
	require.NoError(t, err)
	assert.True(t, change.IsZero())
	assert.Len(t, cells, 4)
	assert.False(t, tbl.Grid().At(2, 1).IsUnit())

	cells, _, err = tbl.SplitAllInRectangle(rect(0, 3, 0, 3))
	require.NoError(t, err)
	assert.Len(t, cells, 2)
	assert.Equal(t, original, tbl.Grid().Hash())

	cells, _, err = tbl.SplitAllInRectangle(rect(0, 3, 0, 3))
	require.NoError(t, err)
	assert.Empty(t, cells)

	_, _, err = tbl.SplitAllInRectangle(rect(0, 4, 0, 3))
	assert.ErrorIs(t, err, ErrInvalidSelection)
	assertSynced(t, tbl)
}

func TestInsertColumn_InsideColspanWidens(t *testing.T) {
	tbl := newTable(t, 2, 3)
	merged, _, err := tbl.MergeRectangle(rect(0, 1, 0, 2))
	require.NoError(t, err)

	change, err := tbl.InsertColumn(1)
	require.NoError(t, err)
	assert.Equal(t, "Change.column{{ at=1 delta=1 }}", change.String())

	g := tbl.Grid()
	assert.Equal(t, 4, g.Cols())
	assert.Equal(t, 3, merged.ColSpan)
	b, _ := g.Bounds(merged)
	assert.Equal(t, rect(0, 1, 0, 3), b)
	assert.True(t, g.At(1, 1).IsEmpty())
	assert.Len(t, tbl.Layout().ColumnWidths(), 4)
	assertSynced(t, tbl)
}

func TestInsertColumn_AtBoundaryOfRowspan(t *testing.T) {
	tbl := newTable(t, 3, 2)
	merged, _, err := tbl.MergeRectangle(rect(0, 2, 1, 2))
	require.NoError(t, err)

	_, err = tbl.InsertColumn(1)
	require.NoError(t, err)

	g := tbl.Grid()
	b, _ := g.Bounds(merged)
	assert.Equal(t, rect(0, 2, 2, 3), b)
	for r := range 3 {
		assert.True(t, g.At(r, 1).IsUnit())
	}
	assertSynced(t, tbl)
}

func TestDeleteColumn_LastColumnFails(t *testing.T) {
	tbl := newTable(t, 3, 1)
	before := tbl.Grid().Hash()
	widths := tbl.Layout().ColumnWidths()

	removed, change, err := tbl.DeleteColumn(0)
	assert.ErrorIs(t, err, ErrLastColumn)
	assert.Nil(t, removed)
	assert.True(t, change.IsZero())
	assert.Equal(t, before, tbl.Grid().Hash())
	assert.Equal(t, widths, tbl.Layout().ColumnWidths())
	assert.False(t, tbl.CanDeleteColumn())
}

func TestDeleteColumn_NarrowsSpans(t *testing.T) {
	tbl := newTable(t, 3, 3)
	label(tbl)
	merged, _, err := tbl.MergeRectangle(rect(0, 2, 0, 2))
	require.NoError(t, err)

	removed, change, err := tbl.DeleteColumn(1)
	require.NoError(t, err)
	assert.Equal(t, -1, change.Delta)
	require.Len(t, removed, 1)
	assert.Equal(t, "(2,1)", text(removed[0]))
	assert.Equal(t, 1, merged.ColSpan)
	assert.Equal(t, 2, merged.RowSpan)
	assert.Equal(t, 2, tbl.Cols())
	assertSynced(t, tbl)
}

func TestDeleteColumn_RemovesRowspanCellOnce(t *testing.T) {
	tbl := newTable(t, 3, 2)
	merged, _, err := tbl.MergeRectangle(rect(0, 3, 0, 1))
	require.NoError(t, err)

	removed, _, err := tbl.DeleteColumn(0)
	require.NoError(t, err)
	assert.Equal(t, []*cell.Cell{merged}, removed)
	assert.Equal(t, 1, tbl.Cols())
	assert.Equal(t, 3, tbl.Rows())
	assertSynced(t, tbl)
}

func TestInsertRow_InsideRowspanGrows(t *testing.T) {
	tbl := newTable(t, 2, 3)
	merged, _, err := tbl.MergeRectangle(rect(0, 2, 0, 2))
	require.NoError(t, err)

	change, err := tbl.InsertRow(1)
	require.NoError(t, err)
	assert.Equal(t, "Change.row{{ at=1 delta=1 }}", change.String())
	assert.Equal(t, 3, merged.RowSpan)
	assert.Equal(t, 3, tbl.Rows())
	assert.Len(t, tbl.Snapshot().Rows[1], 1)
	assertSynced(t, tbl)
}

func TestDeleteRow_MovesOriginDown(t *testing.T) {
	tbl := newTable(t, 2, 3)
	label(tbl)
	merged, _, err := tbl.MergeRectangle(rect(0, 2, 1, 2))
	require.NoError(t, err)

	removed, change, err := tbl.DeleteRow(0)
	require.NoError(t, err)
	assert.Equal(t, "Change.row{{ at=0 delta=-1 }}", change.String())
	require.Len(t, removed, 2)
	assert.Equal(t, "(0,0)", text(removed[0]))
	assert.Equal(t, "(0,2)", text(removed[1]))

	g := tbl.Grid()
	assert.Equal(t, 1, g.Rows())
	assert.Equal(t, 3, g.Cols())
	assert.True(t, merged.IsUnit())
	assert.Same(t, merged, g.At(0, 1))
	assert.Equal(t, "(1,0)", text(g.At(0, 0)))
	assert.Equal(t, "(1,2)", text(g.At(0, 2)))
	assertSynced(t, tbl)
}

func TestDeleteRow_LastRowFails(t *testing.T) {
	tbl := newTable(t, 1, 2)
	_, _, err := tbl.DeleteRow(0)
	assert.ErrorIs(t, err, ErrLastRow)
	assert.False(t, tbl.CanDeleteRow())
}

func TestIndexOutOfRange(t *testing.T) {
	tbl := newTable(t, 2, 2)
	before := tbl.Grid().Hash()

	_, err := tbl.InsertColumn(3)
	assert.ErrorIs(t, err, ErrInvalidSelection)
	_, err = tbl.InsertRow(-1)
	assert.ErrorIs(t, err, ErrInvalidSelection)
	_, _, err = tbl.DeleteColumn(2)
	assert.ErrorIs(t, err, ErrInvalidSelection)
	_, _, err = tbl.DeleteRow(2)
	assert.ErrorIs(t, err, ErrInvalidSelection)

	assert.Equal(t, before, tbl.Grid().Hash())
	assertSynced(t, tbl)
}

// Inserting a line and deleting it again restores the structure and the
// layout, whether the line runs through a merged cell or not.
func TestInsertDeleteInverse(t *testing.T) {
	for index := range 4 {
		t.Run("column", func(t *testing.T) {
			tbl := newTable(t, 3, 3)
			_, _, err := tbl.MergeRectangle(rect(0, 2, 0, 2))
			require.NoError(t, err)
			require.NoError(t, tbl.ResizeColumn(2, 180))
			hash, widths := tbl.Grid().Hash(), tbl.Layout().ColumnWidths()

			_, err = tbl.InsertColumn(index)
			require.NoError(t, err)
			_, _, err = tbl.DeleteColumn(index)
			require.NoError(t, err)

			assert.Equal(t, hash, tbl.Grid().Hash())
			assert.Equal(t, widths, tbl.Layout().ColumnWidths())
		})
		t.Run("row", func(t *testing.T) {
			tbl, err := New(3, 3, Options{Logger: logger.Discard, Layout: layout.Options{FixedRowHeights: true}})
			require.NoError(t, err)
			_, _, err = tbl.MergeRectangle(rect(0, 2, 0, 2))
			require.NoError(t, err)
			require.NoError(t, tbl.ResizeRow(0, 55))
			hash, heights := tbl.Grid().Hash(), tbl.Layout().RowHeights()

			_, err = tbl.InsertRow(index)
			require.NoError(t, err)
			_, _, err = tbl.DeleteRow(index)
			require.NoError(t, err)

			assert.Equal(t, hash, tbl.Grid().Hash())
			assert.Equal(t, heights, tbl.Layout().RowHeights())
		})
	}
}

func TestSelectionRectangle(t *testing.T) {
	tbl := newTable(t, 3, 3)
	_, _, err := tbl.MergeRectangle(rect(1, 3, 1, 3))
	require.NoError(t, err)

	got, err := tbl.SelectionRectangle(coordinate.NewPoint(0, 1), coordinate.NewPoint(1, 1))
	require.NoError(t, err)
	assert.Equal(t, rect(0, 3, 1, 3), got)

	_, err = tbl.SelectionRectangle(coordinate.NewPoint(0, 0), coordinate.NewPoint(0, 3))
	assert.ErrorIs(t, err, ErrInvalidSelection)
	assert.ErrorIs(t, err, selection.ErrOutOfBounds)
}

func TestPreconditions(t *testing.T) {
	tbl := newTable(t, 2, 2)
	assert.True(t, tbl.CanMerge(rect(0, 2, 0, 2)))
	assert.False(t, tbl.CanMerge(rect(0, 1, 0, 1)))
	assert.False(t, tbl.CanSplit(coordinate.NewPoint(0, 0)))
	assert.True(t, tbl.CanDeleteColumn())
	assert.True(t, tbl.CanDeleteRow())

	_, _, err := tbl.MergeRectangle(rect(0, 1, 0, 2))
	require.NoError(t, err)
	assert.False(t, tbl.CanMerge(rect(0, 2, 0, 1)), "cuts the merged cell")
	assert.True(t, tbl.CanSplit(coordinate.NewPoint(0, 1)))
	assert.False(t, tbl.CanSplit(coordinate.NewPoint(5, 5)))
}

func TestResize(t *testing.T) {
	tbl := newTable(t, 2, 2)
	require.NoError(t, tbl.ResizeColumn(0, 10))
	assert.Equal(t, 30.0, tbl.Layout().ColumnWidths()[0])
	require.NoError(t, tbl.ResizeRow(1, 80))
	assert.Equal(t, []float64{30, 80}, tbl.Layout().RowHeights())

	err := tbl.ResizeColumn(4, 10)
	var opErr *OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "resize column", opErr.Op)

	box, err := tbl.Project(rect(1, 2, 0, 2), nil)
	require.NoError(t, err)
	assert.Equal(t, 30.0, box.Top)
	assert.Equal(t, 130.0, box.Width)
}

func TestMutationsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	tbl, err := New(2, 2, Options{Logger: logger.New(logger.Options{Buffer: &buf, Level: logger.DebugLevel})})
	require.NoError(t, err)

	_, err = tbl.InsertColumn(2)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `op="insert column"`)

	_, _, err = tbl.DeleteRow(5)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "table operation rejected")
}

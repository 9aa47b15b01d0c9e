package table

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/hnimtadd/tablegrid/table/cell"
	"github.com/hnimtadd/tablegrid/table/content"
	"github.com/hnimtadd/tablegrid/table/grid"
	"github.com/hnimtadd/tablegrid/table/layout"
	"github.com/hnimtadd/tablegrid/table/row"
	"github.com/hnimtadd/tablegrid/table/utils"
)

// Snapshot is the persisted form of a table: the raw row store and the
// layout arrays. LayoutHeight is nil when rows size to their content.
type Snapshot struct {
	Rows         [][]*cell.Cell `json:"rows"`
	LayoutWidth  []float64      `json:"layoutWidth"`
	LayoutHeight []float64      `json:"layoutHeight,omitempty"`
}

// UnmarshalJSON reads a snapshot written with encoding/json. Cell content is
// decoded as content.Text; embedders with their own content decode the rows
// themselves.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw struct {
		Rows [][]*struct {
			RowSpan int           `json:"rowSpan"`
			ColSpan int           `json:"colSpan"`
			Content *content.Text `json:"content"`
		} `json:"rows"`
		LayoutWidth  []float64 `json:"layoutWidth"`
		LayoutHeight []float64 `json:"layoutHeight"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("table: decoding snapshot: %w", err)
	}

	rows := make([][]*cell.Cell, len(raw.Rows))
	for r, cells := range raw.Rows {
		rows[r] = make([]*cell.Cell, len(cells))
		for i, rc := range cells {
			if rc == nil {
				continue
			}
			c := &cell.Cell{RowSpan: rc.RowSpan, ColSpan: rc.ColSpan}
			if rc.Content != nil {
				c.Content = rc.Content
			}
			rows[r][i] = c
		}
	}
	*s = Snapshot{Rows: rows, LayoutWidth: raw.LayoutWidth, LayoutHeight: raw.LayoutHeight}
	return nil
}

// Snapshot copies the table's cell records and layout. Content handles are
// shared with the table.
func (t *Table) Snapshot() Snapshot {
	s := Snapshot{
		Rows:         make([][]*cell.Cell, len(t.rows)),
		LayoutWidth:  t.layout.ColumnWidths(),
		LayoutHeight: t.layout.RowHeights(),
	}
	for r, rw := range t.rows {
		s.Rows[r] = rw.Clone().Cells
	}
	return s
}

// Load rebuilds a table from a snapshot. Ragged or overlapping rows are
// repaired by the normalizer, nil cells are dropped and nil content is
// replaced with empty content. Layout arrays that do not match the repaired
// grid are padded or cut; without widths, columns are sized from their
// content.
func Load(s Snapshot, opts Options) (*Table, error) {
	if len(s.Rows) == 0 {
		return nil, &OpError{Op: opLoad, Err: fmt.Errorf("%w: snapshot has no rows", ErrEmptyTable)}
	}
	opts = opts.withDefaults()

	rows := make([]*row.Row, len(s.Rows))
	for r, cells := range s.Rows {
		rw := row.New()
		for _, c := range cells {
			if c == nil {
				continue
			}
			dup := *c
			if dup.Content == nil {
				dup.Content = opts.Factory.NewEmpty()
			}
			rw.Append(&dup)
		}
		rows[r] = rw
	}

	g := grid.Normalize(rows, opts.Factory)
	if g.Cols() == 0 {
		opts.Logger.Warn("snapshot has no cells, adding one column")
		for _, rw := range rows {
			rw.Append(cell.NewEmpty(opts.Factory))
		}
		g = grid.Normalize(rows, opts.Factory)
	}
	g.AssertIntegrity()

	l := loadLayout(g, s, opts)
	l.AssertSync(g.Rows(), g.Cols())

	opts.Logger.Debug("table loaded", "rows", g.Rows(), "cols", g.Cols(), "hash", g.Hash())
	return &Table{
		rows:    rows,
		layout:  l,
		factory: opts.Factory,
		logger:  opts.Logger,
	}, nil
}

func loadLayout(g *grid.Grid, s Snapshot, opts Options) *layout.Layout {
	lopts := opts.Layout
	defaults := layout.New(g.Rows(), g.Cols(), lopts)

	widths := s.LayoutWidth
	if len(widths) != 0 && len(widths) != g.Cols() {
		opts.Logger.Warn("snapshot column widths do not match the grid",
			"widths", len(widths), "cols", g.Cols())
		widths = fit(widths, g.Cols(), defaults.Options().DefaultColumnWidth)
	}

	heights := s.LayoutHeight
	if heights != nil && len(heights) != g.Rows() {
		opts.Logger.Warn("snapshot row heights do not match the grid",
			"heights", len(heights), "rows", g.Rows())
		heights = fit(heights, g.Rows(), defaults.Options().DefaultRowHeight)
	}

	if len(widths) == 0 {
		l := layout.FromSizes(g.Rows(), defaults.ColumnWidths(), heights, lopts)
		err := l.FitColumns(contentLengths(g))
		utils.NoError(err)
		return l
	}
	return layout.FromSizes(g.Rows(), widths, heights, lopts)
}

// fit pads values with fill or cuts it to n entries.
func fit(values []float64, n int, fill float64) []float64 {
	if len(values) >= n {
		return slices.Clone(values[:n])
	}
	out := slices.Clone(values)
	for len(out) < n {
		out = append(out, fill)
	}
	return out
}

// contentLengths returns, per column, the longest content of the cells that
// sit in that column alone.
func contentLengths(g *grid.Grid) []int {
	lengths := make([]int, g.Cols())
	for _, c := range g.Cells() {
		if c.ColSpan != 1 {
			continue
		}
		o, _ := g.Origin(c)
		lengths[o.Col] = max(lengths[o.Col], c.ContentLen())
	}
	return lengths
}

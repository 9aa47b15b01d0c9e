// Package render draws a normalized grid as plain text, one line per row.
package render

import (
	"bytes"
	"io"
	"strings"

	"github.com/hnimtadd/tablegrid/table/content"
	"github.com/hnimtadd/tablegrid/table/coordinate"
	"github.com/hnimtadd/tablegrid/table/grid"
	dw "github.com/mattn/go-runewidth"
)

const (
	// Marks a slot covered by a cell whose origin is to the left.
	CoveredLeft = "<"
	// Marks a slot covered by a cell whose origin is above.
	CoveredAbove = "^"

	separator = " | "
)

// slotText is what slot (r, c) shows: the cell text at the origin, a mark
// elsewhere. Multi-line content is joined with "/".
func slotText(g *grid.Grid, r, c int) string {
	cur := g.At(r, c)
	b, _ := g.Bounds(cur)
	switch {
	case b.Origin() == coordinate.NewPoint(r, c):
		return strings.ReplaceAll(content.String(cur.Content), "\n", "/")
	case b.StartRow < r:
		return CoveredAbove
	default:
		return CoveredLeft
	}
}

// DumpString writes g to w. Columns are padded to the display width of their
// widest slot.
//
// The writer should be buffered; rows are written one slot at a time.
func DumpString(w io.Writer, g *grid.Grid) error {
	texts := make([][]string, g.Rows())
	widths := make([]int, g.Cols())
	for r := range g.Rows() {
		texts[r] = make([]string, g.Cols())
		for c := range g.Cols() {
			texts[r][c] = slotText(g, r, c)
			widths[c] = max(widths[c], dw.StringWidth(texts[r][c]))
		}
	}

	for r, line := range texts {
		var buf bytes.Buffer
		for c, text := range line {
			if c > 0 {
				buf.WriteString(separator)
			}
			buf.WriteString(dw.FillRight(text, widths[c]))
		}
		out := strings.TrimRight(buf.String(), " ")
		if _, err := io.WriteString(w, out); err != nil {
			return err
		}
		if r < len(texts)-1 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// PlainString returns the text dump of g, or "" if it could not be written.
func PlainString(g *grid.Grid) string {
	var w bytes.Buffer
	if err := DumpString(&w, g); err != nil {
		return ""
	}
	return w.String()
}

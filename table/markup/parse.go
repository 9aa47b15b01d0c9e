// Package markup reads and writes tables as HTML <table> markup, the format
// tables are pasted and exported in.
package markup

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hnimtadd/tablegrid/table"
	"github.com/hnimtadd/tablegrid/table/cell"
	"github.com/hnimtadd/tablegrid/table/content"
	"github.com/hnimtadd/tablegrid/table/utils"
	"golang.org/x/net/html"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var ErrNoTable = fmt.Errorf("markup: no <table> element")

// Span limits of the HTML table model.
const (
	MaxColSpan = 1000
	MaxRowSpan = 65534
)

// Parse reads the first <table> in r into a snapshot. The input is UTF-8,
// or UTF-16 when it starts with a byte order mark.
//
// colspan is clamped to [1, MaxColSpan] and rowspan to [0, MaxRowSpan], and a
// negative rowspan is ignored. Remaining overlap is repaired when the snapshot
// is loaded. Column widths come from <col width> and row heights from
// <tr height>; either is dropped unless every column or row has one.
func Parse(r io.Reader) (table.Snapshot, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	doc, err := html.Parse(decoded)
	if err != nil {
		return table.Snapshot{}, fmt.Errorf("markup: parsing HTML: %w", err)
	}
	node := findElement(doc, "table")
	if node == nil {
		return table.Snapshot{}, ErrNoTable
	}

	p := &parser{}
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "colgroup":
			for col := c.FirstChild; col != nil; col = col.NextSibling {
				if col.Type == html.ElementNode && col.Data == "col" {
					p.parseCol(col)
				}
			}
		case "col":
			p.parseCol(c)
		case "thead", "tbody", "tfoot":
			for tr := c.FirstChild; tr != nil; tr = tr.NextSibling {
				if tr.Type == html.ElementNode && tr.Data == "tr" {
					p.parseRow(tr)
				}
			}
		case "tr":
			p.parseRow(c)
		}
	}
	return p.snapshot(), nil
}

// Load parses r and builds a table from it.
func Load(r io.Reader, opts table.Options) (*table.Table, error) {
	s, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return table.Load(s, opts)
}

type parser struct {
	rows [][]*cell.Cell

	widths        []float64
	missingWidth  bool
	heights       []float64
	missingHeight bool
}

func (p *parser) parseCol(col *html.Node) {
	span, ok := intAttr(col, "span")
	if !ok {
		span = 1
	}
	span = utils.Clamp(span, 1, MaxColSpan)
	width, ok := sizeAttr(col, "width")
	for range span {
		p.widths = append(p.widths, width)
	}
	p.missingWidth = p.missingWidth || !ok
}

func (p *parser) parseRow(tr *html.Node) {
	height, ok := sizeAttr(tr, "height")
	p.heights = append(p.heights, height)
	p.missingHeight = p.missingHeight || !ok

	var cells []*cell.Cell
	for td := tr.FirstChild; td != nil; td = td.NextSibling {
		if td.Type != html.ElementNode || (td.Data != "td" && td.Data != "th") {
			continue
		}
		c := cell.New(content.NewText(textContent(td)))
		if n, ok := intAttr(td, "colspan"); ok {
			c.ColSpan = utils.Clamp(n, 1, MaxColSpan)
		}
		if n, ok := intAttr(td, "rowspan"); ok && n >= 0 {
			c.RowSpan = min(n, MaxRowSpan)
			if c.RowSpan == 0 {
				// rowspan="0" runs to the last row.
				c.RowSpan = MaxRowSpan
			}
		}
		cells = append(cells, c)
	}
	p.rows = append(p.rows, cells)
}

func (p *parser) snapshot() table.Snapshot {
	s := table.Snapshot{Rows: p.rows}
	if len(p.widths) > 0 && !p.missingWidth {
		s.LayoutWidth = p.widths
	}
	if len(p.heights) > 0 && !p.missingHeight {
		s.LayoutHeight = p.heights
	}
	return s
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val), true
		}
	}
	return "", false
}

func intAttr(n *html.Node, key string) (int, bool) {
	v, ok := attr(n, key)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

// sizeAttr reads a pixel size from the attribute key, or from the matching
// property of the style attribute.
func sizeAttr(n *html.Node, key string) (float64, bool) {
	v, ok := attr(n, key)
	if !ok {
		v, ok = styleProperty(n, key)
	}
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return f, true
}

func styleProperty(n *html.Node, key string) (string, bool) {
	style, ok := attr(n, "style")
	if !ok {
		return "", false
	}
	for decl := range strings.SplitSeq(style, ";") {
		name, value, found := strings.Cut(decl, ":")
		if found && strings.TrimSpace(name) == key {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// textContent flattens a cell to lines. <br> and block elements break lines;
// runs of whitespace collapse to one space.
func textContent(n *html.Node) string {
	var b strings.Builder
	writeText(n, &b)

	var lines []string
	for line := range strings.SplitSeq(b.String(), "\n") {
		lines = append(lines, strings.Join(strings.Fields(line), " "))
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

func writeText(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "template":
			return
		case "br":
			b.WriteString("\n")
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(c, b)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString("\n")
		}
	}
}

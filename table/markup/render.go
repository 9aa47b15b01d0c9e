package markup

import (
	"io"
	"strconv"
	"strings"

	"github.com/hnimtadd/tablegrid/table"
	"github.com/hnimtadd/tablegrid/table/content"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render writes s as a <table> element. Widths go to a <colgroup>, fixed
// heights to each <tr>, and line breaks in content to <br>.
func Render(w io.Writer, s table.Snapshot) error {
	root := element(atom.Table)

	if len(s.LayoutWidth) > 0 {
		group := element(atom.Colgroup)
		for _, width := range s.LayoutWidth {
			group.AppendChild(element(atom.Col, html.Attribute{Key: "width", Val: formatSize(width)}))
		}
		root.AppendChild(group)
	}

	body := element(atom.Tbody)
	for r, cells := range s.Rows {
		var attrs []html.Attribute
		if r < len(s.LayoutHeight) {
			attrs = append(attrs, html.Attribute{Key: "height", Val: formatSize(s.LayoutHeight[r])})
		}
		tr := element(atom.Tr, attrs...)
		for _, c := range cells {
			var spans []html.Attribute
			if c.RowSpan > 1 {
				spans = append(spans, html.Attribute{Key: "rowspan", Val: strconv.Itoa(c.RowSpan)})
			}
			if c.ColSpan > 1 {
				spans = append(spans, html.Attribute{Key: "colspan", Val: strconv.Itoa(c.ColSpan)})
			}
			td := element(atom.Td, spans...)
			for i, line := range strings.Split(content.String(c.Content), "\n") {
				if i > 0 {
					td.AppendChild(element(atom.Br))
				}
				if line != "" {
					td.AppendChild(&html.Node{Type: html.TextNode, Data: line})
				}
			}
			tr.AppendChild(td)
		}
		body.AppendChild(tr)
	}
	root.AppendChild(body)

	return html.Render(w, root)
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func formatSize(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

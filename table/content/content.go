// Package content provides a plain-text cell content handle. It is the
// content used by the markup importer and the command line tool; embedders
// with a richer document model supply their own cell.Content.
package content

import (
	"strings"

	"github.com/hnimtadd/tablegrid/table/cell"
	dw "github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// Text is the content of a cell as plain text. Lines are separated by "\n".
type Text struct {
	value string
}

var _ cell.Content = (*Text)(nil)

// NewText returns a handle holding s in NFC form.
func NewText(s string) *Text {
	return &Text{value: norm.NFC.String(s)}
}

func (t *Text) String() string {
	return t.value
}

func (t *Text) IsEmpty() bool {
	return strings.TrimSpace(t.value) == ""
}

// Len is the display width of the widest line, so that wide runes count
// twice.
func (t *Text) Len() int {
	width := 0
	for line := range strings.SplitSeq(t.value, "\n") {
		width = max(width, dw.StringWidth(line))
	}
	return width
}

func (t *Text) MarshalText() ([]byte, error) {
	return []byte(t.value), nil
}

func (t *Text) UnmarshalText(b []byte) error {
	t.value = norm.NFC.String(string(b))
	return nil
}

// TextFactory creates Text handles. Combined content joins the non-empty
// parts with Separator, which defaults to a newline.
type TextFactory struct {
	Separator string
}

var _ cell.ContentFactory = TextFactory{}

func (f TextFactory) NewEmpty() cell.Content {
	return NewText("")
}

func (f TextFactory) Combine(parts []cell.Content) cell.Content {
	sep := f.Separator
	if sep == "" {
		sep = "\n"
	}
	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == nil || p.IsEmpty() {
			continue
		}
		texts = append(texts, String(p))
	}
	return NewText(strings.Join(texts, sep))
}

// String returns the text of c when it can be printed, and "" otherwise.
func String(c cell.Content) string {
	switch v := c.(type) {
	case nil:
		return ""
	case interface{ String() string }:
		return v.String()
	default:
		return ""
	}
}

package cell

// Content is an opaque handle to the cell body owned by the document engine.
// The grid never looks inside it; it only asks whether it is empty and how
// long it is, which feeds default column sizing.
type Content interface {
	IsEmpty() bool
	// Len is a size hint in character cells.
	Len() int
}

// ContentFactory is supplied by the document engine.
type ContentFactory interface {
	// NewEmpty creates the content for a freshly introduced unit cell.
	NewEmpty() Content

	// Combine joins the contents of merged cells, given in row-major order of
	// the cells' origins. How they are joined is up to the content system.
	Combine(parts []Content) Content
}

// A Cell occupies a RowSpan x ColSpan block of the grid. A cell spanning
// several rows is stored once, in the row where its span originates.
type Cell struct {
	RowSpan int `json:"rowSpan"`
	ColSpan int `json:"colSpan"`

	Content Content `json:"content"`
}

// New returns a unit cell holding content.
func New(content Content) *Cell {
	return &Cell{
		RowSpan: 1,
		ColSpan: 1,
		Content: content,
	}
}

// NewEmpty returns a unit cell with fresh empty content from factory.
func NewEmpty(factory ContentFactory) *Cell {
	return New(factory.NewEmpty())
}

// IsUnit reports whether the cell covers exactly one slot.
func (c *Cell) IsUnit() bool {
	return c.RowSpan == 1 && c.ColSpan == 1
}

// Area is the number of grid slots covered.
func (c *Cell) Area() int {
	return c.RowSpan * c.ColSpan
}

// IsEmpty reports whether the cell has no content. A nil handle counts as
// empty.
func (c *Cell) IsEmpty() bool {
	return c.Content == nil || c.Content.IsEmpty()
}

// ContentLen returns the content size hint, zero for a nil handle.
func (c *Cell) ContentLen() int {
	if c.Content == nil {
		return 0
	}
	return c.Content.Len()
}

package layout

import "fmt"

type Axis int

const (
	AxisNone Axis = iota
	AxisColumn
	AxisRow
)

func (a Axis) String() string {
	switch a {
	case AxisNone:
		return "none"
	case AxisColumn:
		return "column"
	case AxisRow:
		return "row"
	default:
		return "unknown"
	}
}

// Change describes how a structural mutation changed the number of columns
// or rows. Delta lines were inserted (positive) or deleted (negative) starting
// at index At. Merges and splits produce a zero Change.
type Change struct {
	Axis  Axis
	At    int
	Delta int
}

func (c Change) IsZero() bool {
	return c.Delta == 0
}

func (c Change) String() string {
	if c.IsZero() {
		return "Change.none"
	}
	return fmt.Sprintf("Change.%s{{ at=%d delta=%d }}", c.Axis, c.At, c.Delta)
}

// Apply adjusts the layout by a structural change.
func (l *Layout) Apply(c Change) error {
	if c.IsZero() {
		return nil
	}
	var insert, remove func(int) error
	switch c.Axis {
	case AxisColumn:
		insert, remove = l.InsertColumn, l.DeleteColumn
	case AxisRow:
		insert, remove = l.InsertRow, l.DeleteRow
	default:
		return fmt.Errorf("layout: cannot apply change on axis %s", c.Axis)
	}
	for range c.Delta {
		if err := insert(c.At); err != nil {
			return err
		}
	}
	for range -c.Delta {
		if err := remove(c.At); err != nil {
			return err
		}
	}
	return nil
}

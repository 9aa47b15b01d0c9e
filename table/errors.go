package table

import (
	"fmt"
)

var (
	ErrInvalidSelection = fmt.Errorf("table: invalid selection")
	ErrNotMergeable     = fmt.Errorf("table: cell is not merged")
	ErrLastColumn       = fmt.Errorf("table: cannot delete the last column")
	ErrLastRow          = fmt.Errorf("table: cannot delete the last row")
	ErrEmptyTable       = fmt.Errorf("table: table needs at least one row and one column")
)

// OpError records the operation that failed. Match the cause with
// errors.Is against the sentinels above.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

const (
	opMerge        = "merge"
	opSplit        = "split"
	opSplitAll     = "split all"
	opInsertColumn = "insert column"
	opDeleteColumn = "delete column"
	opInsertRow    = "insert row"
	opDeleteRow    = "delete row"
	opResizeColumn = "resize column"
	opResizeRow    = "resize row"
	opLoad         = "load"
)

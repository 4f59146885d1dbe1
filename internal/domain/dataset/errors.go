package dataset

import "errors"

var (
	ErrNoParentKeys     = errors.New("parent key column is empty")
	ErrNegativeRowCount = errors.New("row count must not be negative")
	ErrUnknownTable     = errors.New("unknown table")
)

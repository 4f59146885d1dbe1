package dataset

import "strings"

type ColumnType string

const (
	TypeString    ColumnType = "string"
	TypeInt64     ColumnType = "int64"
	TypeFloat64   ColumnType = "float64"
	TypeBool      ColumnType = "bool"
	TypeTimestamp ColumnType = "timestamp"
	TypeDate      ColumnType = "date"
)

type Column struct {
	Name     string
	Type     ColumnType
	Nullable bool
}

// Table is one materialized batch handed to a sink. Rows are positional and
// follow Columns; a nil cell is only valid in a Nullable column.
type Table struct {
	Name       string
	PrimaryKey string
	Columns    []Column
	Rows       [][]any
}

func (t Table) Len() int {
	return len(t.Rows)
}

func (t Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		names = append(names, col.Name)
	}
	return names
}

func (t Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// Destination is a fully qualified warehouse table name.
type Destination struct {
	Project string
	Dataset string
	Table   string
}

func (d Destination) String() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{d.Project, d.Dataset, d.Table} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ".")
}

package bigquery

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/bigquery"

	"fakedata/internal/domain/dataset"
)

const dateLayout = "2006-01-02"

// Schema maps table columns onto a BigQuery schema. Only nullable columns are
// optional.
func Schema(columns []dataset.Column) bigquery.Schema {
	schema := make(bigquery.Schema, 0, len(columns))
	for _, col := range columns {
		schema = append(schema, &bigquery.FieldSchema{
			Name:     col.Name,
			Type:     fieldType(col.Type),
			Required: !col.Nullable,
		})
	}
	return schema
}

func fieldType(t dataset.ColumnType) bigquery.FieldType {
	switch t {
	case dataset.TypeInt64:
		return bigquery.IntegerFieldType
	case dataset.TypeFloat64:
		return bigquery.FloatFieldType
	case dataset.TypeBool:
		return bigquery.BooleanFieldType
	case dataset.TypeTimestamp:
		return bigquery.TimestampFieldType
	case dataset.TypeDate:
		return bigquery.DateFieldType
	default:
		return bigquery.StringFieldType
	}
}

// EncodeNDJSON writes one JSON object per row. Dates are written as
// YYYY-MM-DD and timestamps as RFC 3339 in UTC.
func EncodeNDJSON(w io.Writer, table dataset.Table) error {
	enc := json.NewEncoder(w)
	record := make(map[string]any, len(table.Columns))
	for i, row := range table.Rows {
		if len(row) != len(table.Columns) {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(table.Columns))
		}
		for j, col := range table.Columns {
			record[col.Name] = encodeCell(col.Type, row[j])
		}
		if err := enc.Encode(record); err != nil {
			return err
		}
	}
	return nil
}

func encodeCell(t dataset.ColumnType, v any) any {
	ts, ok := v.(time.Time)
	if !ok {
		return v
	}
	if t == dataset.TypeDate {
		return ts.Format(dateLayout)
	}
	return ts.UTC().Format(time.RFC3339Nano)
}

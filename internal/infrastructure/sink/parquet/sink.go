package parquet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"fakedata/internal/bootstrap/logging"
	"fakedata/internal/domain/dataset"
	"fakedata/internal/errs"
	"fakedata/internal/ports"
)

const fileExt = ".parquet"

// Sink writes each table to <dir>/<table>.parquet, replacing any previous file.
type Sink struct {
	dir string
	mem memory.Allocator
}

var _ ports.TableSink = (*Sink)(nil)

func NewSink(dir string) (*Sink, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("parquet output dir is required")
	}
	return &Sink{dir: dir, mem: memory.NewGoAllocator()}, nil
}

func (s *Sink) Destination(table string) string {
	return filepath.Join(s.dir, table+fileExt)
}

func (s *Sink) Load(ctx context.Context, table dataset.Table) (ports.LoadResult, error) {
	if ctx == nil {
		return ports.LoadResult{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.LoadResult{}, errs.Wrap(err, "check context")
	}

	res := ports.LoadResult{Destination: s.Destination(table.Name)}
	if table.Len() == 0 {
		return res, nil
	}

	schema := Schema(table.Columns)
	rec, err := s.record(schema, table)
	if err != nil {
		return res, errs.Wrapf(err, "build %s record", table.Name)
	}
	defer rec.Release()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return res, errs.Wrapf(err, "create output dir %q", s.dir)
	}
	if err := s.write(res.Destination, schema, rec); err != nil {
		return res, err
	}

	logging.Debug(logging.WithComponent(ctx, "sink.parquet"), "file written",
		slog.String("destination", res.Destination),
		slog.Int64("rows", rec.NumRows()),
	)
	res.Rows = rec.NumRows()
	return res, nil
}

func (s *Sink) write(path string, schema *arrow.Schema, rec arrow.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrapf(err, "create %q", path)
	}
	defer f.Close()

	w, err := pqarrow.NewFileWriter(schema, f, nil, pqarrow.NewArrowWriterProperties(pqarrow.WithAllocator(s.mem)))
	if err != nil {
		return errs.Wrap(err, "create parquet writer")
	}
	if err := w.Write(rec); err != nil {
		_ = w.Close()
		return errs.Wrapf(err, "write %q", path)
	}
	if err := w.Close(); err != nil {
		return errs.Wrapf(err, "close %q", path)
	}
	return nil
}

// Schema maps table columns onto an arrow schema. Timestamps are UTC
// microseconds and dates are day counts.
func Schema(columns []dataset.Column) *arrow.Schema {
	fields := make([]arrow.Field, 0, len(columns))
	for _, c := range columns {
		fields = append(fields, arrow.Field{Name: c.Name, Type: arrowType(c.Type), Nullable: c.Nullable})
	}
	return arrow.NewSchema(fields, nil)
}

func arrowType(t dataset.ColumnType) arrow.DataType {
	switch t {
	case dataset.TypeInt64:
		return arrow.PrimitiveTypes.Int64
	case dataset.TypeFloat64:
		return arrow.PrimitiveTypes.Float64
	case dataset.TypeBool:
		return arrow.FixedWidthTypes.Boolean
	case dataset.TypeTimestamp:
		return &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}
	case dataset.TypeDate:
		return arrow.FixedWidthTypes.Date32
	default:
		return arrow.BinaryTypes.String
	}
}

func (s *Sink) record(schema *arrow.Schema, table dataset.Table) (arrow.Record, error) {
	b := array.NewRecordBuilder(s.mem, schema)
	defer b.Release()

	for i, row := range table.Rows {
		if len(row) != len(table.Columns) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(table.Columns))
		}
		for j, col := range table.Columns {
			if err := appendCell(b.Field(j), col, row[j]); err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", i, col.Name, err)
			}
		}
	}
	return b.NewRecord(), nil
}

func appendCell(fb array.Builder, col dataset.Column, v any) error {
	if v == nil {
		if !col.Nullable {
			return errors.New("null in non-nullable column")
		}
		fb.AppendNull()
		return nil
	}

	var ok bool
	switch b := fb.(type) {
	case *array.StringBuilder:
		var s string
		if s, ok = v.(string); ok {
			b.Append(s)
		}
	case *array.Int64Builder:
		var n int64
		if n, ok = v.(int64); ok {
			b.Append(n)
		}
	case *array.Float64Builder:
		var f float64
		if f, ok = v.(float64); ok {
			b.Append(f)
		}
	case *array.BooleanBuilder:
		var x bool
		if x, ok = v.(bool); ok {
			b.Append(x)
		}
	case *array.TimestampBuilder:
		var t time.Time
		if t, ok = v.(time.Time); ok {
			b.Append(arrow.Timestamp(t.UTC().UnixMicro()))
		}
	case *array.Date32Builder:
		var t time.Time
		if t, ok = v.(time.Time); ok {
			b.Append(arrow.Date32FromTime(t))
		}
	default:
		return fmt.Errorf("unsupported builder %T", fb)
	}
	if !ok {
		return fmt.Errorf("unexpected value %T", v)
	}
	return nil
}

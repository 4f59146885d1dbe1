package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"fakedata/internal/bootstrap/logging"
	"fakedata/internal/domain/dataset"
	"fakedata/internal/errs"
	"fakedata/internal/ports"
)

const defaultBatchSize = 500

type Config struct {
	BatchSize int
	Truncate  bool
}

// Sink writes tables into a gorm-managed sqlite or mysql database. Each
// table is created from its columns on first use and inserted in one
// transaction.
type Sink struct {
	db        *gorm.DB
	batchSize int
	truncate  bool
}

var _ ports.TableSink = (*Sink)(nil)

func NewSink(db *gorm.DB, cfg Config) (*Sink, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}
	return &Sink{db: db, batchSize: batch, truncate: cfg.Truncate}, nil
}

func (s *Sink) Destination(table string) string {
	return table
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

	dialect := s.db.Dialector.Name()
	var inserted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(CreateTableSQL(tx.Dialector, table)).Error; err != nil {
			return errs.Wrap(err, "create table")
		}
		if s.truncate {
			if err := tx.Exec("DELETE FROM " + quote(tx.Dialector, table.Name)).Error; err != nil {
				return errs.Wrap(err, "clear table")
			}
		}

		for start := 0; start < table.Len(); start += s.batchSize {
			end := min(start+s.batchSize, table.Len())
			batch := records(table, start, end)
			result := tx.Table(table.Name).Create(batch)
			if result.Error != nil {
				return errs.Wrapf(result.Error, "insert rows %d-%d", start, end)
			}
			inserted += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return res, errs.Wrapf(err, "write %s", table.Name)
	}

	logging.Debug(logging.WithComponent(ctx, "sink.sqlstore"), "insert finished",
		slog.String("dialect", dialect),
		slog.String("destination", res.Destination),
		slog.Int64("rows", inserted),
	)
	res.Rows = inserted
	return res, nil
}

func records(table dataset.Table, start, end int) []map[string]any {
	out := make([]map[string]any, 0, end-start)
	for _, row := range table.Rows[start:end] {
		rec := make(map[string]any, len(table.Columns))
		for i, col := range table.Columns {
			rec[col.Name] = row[i]
		}
		out = append(out, rec)
	}
	return out
}

func quote(d gorm.Dialector, name string) string {
	var b strings.Builder
	d.QuoteTo(&b, name)
	return b.String()
}

// CreateTableSQL returns an idempotent CREATE TABLE statement in d's dialect.
func CreateTableSQL(d gorm.Dialector, table dataset.Table) string {
	dialect := d.Name()
	cols := make([]string, 0, len(table.Columns)+1)
	for _, c := range table.Columns {
		col := fmt.Sprintf("%s %s", quote(d, c.Name), columnType(dialect, c, c.Name == table.PrimaryKey))
		if !c.Nullable {
			col += " NOT NULL"
		}
		cols = append(cols, col)
	}
	if table.PrimaryKey != "" {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", quote(d, table.PrimaryKey)))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quote(d, table.Name), strings.Join(cols, ", "))
}

func columnType(dialect string, c dataset.Column, key bool) string {
	mysql := dialect == "mysql"
	switch c.Type {
	case dataset.TypeInt64:
		if mysql {
			return "BIGINT"
		}
		return "INTEGER"
	case dataset.TypeFloat64:
		if mysql {
			return "DOUBLE"
		}
		return "REAL"
	case dataset.TypeBool:
		return "BOOLEAN"
	case dataset.TypeTimestamp:
		if mysql {
			return "DATETIME(6)"
		}
		return "DATETIME"
	case dataset.TypeDate:
		return "DATE"
	default:
		if mysql && key {
			return "VARCHAR(64)"
		}
		return "TEXT"
	}
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"fakedata/internal/bootstrap/logging"
	"fakedata/internal/domain/dataset"
	"fakedata/internal/errs"
	"fakedata/internal/ports"
)

const defaultSchema = "public"

type Config struct {
	DSN      string
	Schema   string
	Truncate bool
}

// conn is the part of *pgx.Conn the sink needs.
type conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Sink creates each table on first use and bulk-loads it with COPY.
type Sink struct {
	conn     conn
	close    func(context.Context) error
	schema   string
	truncate bool
}

var _ ports.TableSink = (*Sink)(nil)

func NewSink(ctx context.Context, cfg Config) (*Sink, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, errors.New("postgres dsn is required")
	}
	c, err := pgx.Connect(ctx, cfg.DSN)
	if err != nil {
		return nil, errs.Wrap(err, "connect postgres")
	}
	s := newSink(c, cfg)
	s.close = c.Close
	return s, nil
}

func newSink(c conn, cfg Config) *Sink {
	schema := strings.TrimSpace(cfg.Schema)
	if schema == "" {
		schema = defaultSchema
	}
	return &Sink{conn: c, schema: schema, truncate: cfg.Truncate}
}

func (s *Sink) Destination(table string) string {
	return s.schema + "." + table
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

	ident := pgx.Identifier{s.schema, table.Name}
	if _, err := s.conn.Exec(ctx, CreateTableSQL(s.schema, table)); err != nil {
		return res, errs.Wrapf(err, "create table %s", res.Destination)
	}
	if s.truncate {
		if _, err := s.conn.Exec(ctx, "TRUNCATE TABLE "+ident.Sanitize()); err != nil {
			return res, errs.Wrapf(err, "truncate %s", res.Destination)
		}
	}

	n, err := s.conn.CopyFrom(ctx, ident, table.ColumnNames(), pgx.CopyFromRows(table.Rows))
	if err != nil {
		return res, errs.Wrapf(errs.WithStack(err), "copy into %s", res.Destination)
	}

	logging.Debug(logging.WithComponent(ctx, "sink.postgres"), "copy finished",
		slog.String("destination", res.Destination),
		slog.Int64("rows", n),
	)
	res.Rows = n
	return res, nil
}

func (s *Sink) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// CreateTableSQL returns an idempotent CREATE TABLE statement for table.
func CreateTableSQL(schema string, table dataset.Table) string {
	cols := make([]string, 0, len(table.Columns)+1)
	for _, c := range table.Columns {
		col := fmt.Sprintf("%s %s", pgx.Identifier{c.Name}.Sanitize(), columnType(c.Type))
		if !c.Nullable {
			col += " NOT NULL"
		}
		cols = append(cols, col)
	}
	if table.PrimaryKey != "" {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", pgx.Identifier{table.PrimaryKey}.Sanitize()))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		pgx.Identifier{schema, table.Name}.Sanitize(),
		strings.Join(cols, ", "),
	)
}

func columnType(t dataset.ColumnType) string {
	switch t {
	case dataset.TypeInt64:
		return "BIGINT"
	case dataset.TypeFloat64:
		return "DOUBLE PRECISION"
	case dataset.TypeBool:
		return "BOOLEAN"
	case dataset.TypeTimestamp:
		return "TIMESTAMPTZ"
	case dataset.TypeDate:
		return "DATE"
	default:
		return "TEXT"
	}
}

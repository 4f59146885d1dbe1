package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"fakedata/internal/domain/dataset"
)

type fakeConn struct {
	execs   []string
	copied  [][]any
	table   pgx.Identifier
	columns []string
	copyErr error
}

func (c *fakeConn) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	c.execs = append(c.execs, sql)
	return pgconn.CommandTag{}, nil
}

func (c *fakeConn) CopyFrom(_ context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error) {
	if c.copyErr != nil {
		return 0, c.copyErr
	}
	c.table = table
	c.columns = columns
	for src.Next() {
		values, err := src.Values()
		if err != nil {
			return 0, err
		}
		c.copied = append(c.copied, values)
	}
	return int64(len(c.copied)), src.Err()
}

func sampleWarehouses() dataset.Table {
	return dataset.WarehousesTable([]dataset.Warehouse{
		{WarehouseID: "w1", Region: "North", ManagerName: "Ada", Capacity: 5000, LastAudit: time.Unix(0, 0).UTC(), Timezone: "UTC", OperationalHours: "08:00-20:00"},
		{WarehouseID: "w2", Region: "West", ManagerName: "Lin", Capacity: 90000, LastAudit: time.Unix(0, 0).UTC(), Timezone: "PST", OperationalHours: "08:00-20:00"},
	})
}

func TestSinkLoadCopiesRows(t *testing.T) {
	c := &fakeConn{}
	sink := newSink(c, Config{Schema: "staging", Truncate: true})

	res, err := sink.Load(context.Background(), sampleWarehouses())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if res.Destination != "staging.warehouses" || res.Rows != 2 {
		t.Fatalf("Load() = %+v", res)
	}
	if len(c.execs) != 2 || !strings.HasPrefix(c.execs[0], `CREATE TABLE IF NOT EXISTS "staging"."warehouses"`) {
		t.Fatalf("execs = %q", c.execs)
	}
	if c.execs[1] != `TRUNCATE TABLE "staging"."warehouses"` {
		t.Fatalf("truncate = %q", c.execs[1])
	}
	if c.table.Sanitize() != `"staging"."warehouses"` || c.columns[0] != "warehouse_id" {
		t.Fatalf("copy target = %v %v", c.table, c.columns)
	}
	if c.copied[1][0] != "w2" {
		t.Fatalf("copied = %v", c.copied)
	}
}

func TestSinkLoadEmptyIsNoop(t *testing.T) {
	c := &fakeConn{}
	res, err := newSink(c, Config{}).Load(context.Background(), dataset.WarehousesTable(nil))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if res.Rows != 0 || res.Destination != "public.warehouses" || len(c.execs) != 0 {
		t.Fatalf("Load() = %+v, execs = %q", res, c.execs)
	}
}

func TestSinkLoadCopyError(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := newSink(&fakeConn{copyErr: boom}, Config{}).Load(context.Background(), sampleWarehouses())
	if !errors.Is(err, boom) {
		t.Fatalf("Load() error = %v, want connection reset", err)
	}
}

func TestCreateTableSQL(t *testing.T) {
	code := "SAVE10"
	sql := CreateTableSQL("public", dataset.OrdersTable([]dataset.Order{{OrderID: "o1", DiscountCode: &code}}))
	for _, want := range []string{
		`"order_total" DOUBLE PRECISION NOT NULL`,
		`"order_date" TIMESTAMPTZ NOT NULL`,
		`"discount_code" TEXT,`,
		`PRIMARY KEY ("order_id")`,
	} {
		if !strings.Contains(sql, want) {
			t.Fatalf("CreateTableSQL() = %s, missing %s", sql, want)
		}
	}
}

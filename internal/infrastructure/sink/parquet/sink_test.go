package parquet

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/parquet/file"

	"fakedata/internal/domain/dataset"
)

func sampleInventory(n int) dataset.Table {
	snaps := make([]dataset.InventorySnapshot, 0, n)
	for i := 0; i < n; i++ {
		snaps = append(snaps, dataset.InventorySnapshot{
			SnapshotID:           "s" + string(rune('a'+i)),
			ProductID:            "p1",
			WarehouseID:          "w1",
			RecordedAt:           time.Date(2026, time.April, 1, 8, 0, 0, 0, time.UTC),
			AvailableStock:       int64(10 * i),
			ReservedStock:        int64(i),
			SafetyStockThreshold: 10,
		})
	}
	return dataset.InventorySnapshotsTable(snaps)
}

func TestSinkWritesReadableFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink, err := NewSink(dir)
	if err != nil {
		t.Fatalf("NewSink() error = %v", err)
	}

	res, err := sink.Load(context.Background(), sampleInventory(4))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := filepath.Join(dir, "inventory_snapshots.parquet")
	if res.Destination != want || res.Rows != 4 {
		t.Fatalf("Load() = %+v, want %s with 4 rows", res, want)
	}

	rdr, err := file.OpenParquetFile(want, false)
	if err != nil {
		t.Fatalf("open parquet: %v", err)
	}
	defer rdr.Close()

	if rdr.NumRows() != 4 {
		t.Fatalf("NumRows() = %d, want 4", rdr.NumRows())
	}
	schema := rdr.MetaData().Schema
	if schema.NumColumns() != 7 || schema.Column(0).Name() != "snapshot_id" {
		t.Fatalf("columns = %d, first = %q", schema.NumColumns(), schema.Column(0).Name())
	}
}

func TestSinkWritesNullableColumns(t *testing.T) {
	code := "FREESHIP"
	table := dataset.OrdersTable([]dataset.Order{
		{OrderID: "o1", UserID: "u1", OrderDate: time.Now(), DiscountCode: &code},
		{OrderID: "o2", UserID: "u1", OrderDate: time.Now()},
	})
	sink, _ := NewSink(t.TempDir())

	res, err := sink.Load(context.Background(), table)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if res.Rows != 2 {
		t.Fatalf("Load() rows = %d", res.Rows)
	}
}

func TestSinkLoadEmptyIsNoop(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never")
	sink, _ := NewSink(dir)

	res, err := sink.Load(context.Background(), sampleInventory(0))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if res.Rows != 0 {
		t.Fatalf("Load() rows = %d", res.Rows)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("empty load touched %s: %v", dir, err)
	}
}

func TestSinkRejectsMistypedCell(t *testing.T) {
	table := sampleInventory(1)
	table.Rows[0][4] = "lots"
	sink, _ := NewSink(t.TempDir())
	if _, err := sink.Load(context.Background(), table); err == nil {
		t.Fatalf("Load() error = nil, want type mismatch")
	}
}

func TestNewSinkRequiresDir(t *testing.T) {
	if _, err := NewSink("  "); err == nil {
		t.Fatalf("NewSink() error = nil")
	}
}

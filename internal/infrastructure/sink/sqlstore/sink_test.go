package sqlstore

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"fakedata/internal/domain/dataset"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(gormsqlite.Open(filepath.Join(t.TempDir(), "sink.sqlite")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

func sampleTickets(n int) dataset.Table {
	resolved := time.Date(2026, time.May, 2, 9, 0, 0, 0, time.UTC)
	tickets := make([]dataset.SupportTicket, 0, n)
	for i := 0; i < n; i++ {
		tk := dataset.SupportTicket{
			TicketID:         "t" + strings.Repeat("x", i+1),
			UserID:           "u1",
			OrderID:          "o1",
			IssueType:        "Delivery issue",
			Description:      "Order not delivered on time.",
			CreatedAt:        resolved.Add(-time.Hour),
			SupportAgent:     "Sam",
			ResolutionStatus: "Resolved",
			FeedbackScore:    4,
		}
		if i%2 == 0 {
			tk.ResolvedAt = &resolved
		}
		tickets = append(tickets, tk)
	}
	return dataset.SupportTicketsTable(tickets)
}

func TestSinkLoadInsertsInBatches(t *testing.T) {
	db := openTestDB(t)
	sink, err := NewSink(db, Config{BatchSize: 2})
	if err != nil {
		t.Fatalf("NewSink() error = %v", err)
	}

	res, err := sink.Load(context.Background(), sampleTickets(5))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if res.Rows != 5 || res.Destination != "support_tickets" {
		t.Fatalf("Load() = %+v", res)
	}

	var total, unresolved int64
	if err := db.Table("support_tickets").Count(&total).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if err := db.Table("support_tickets").Where("resolved_at IS NULL").Count(&unresolved).Error; err != nil {
		t.Fatalf("count null: %v", err)
	}
	if total != 5 || unresolved != 2 {
		t.Fatalf("rows = %d, unresolved = %d; want 5 and 2", total, unresolved)
	}
}

func TestSinkLoadAppendsOrTruncates(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	appendSink, _ := NewSink(db, Config{})
	if _, err := appendSink.Load(ctx, sampleTickets(2)); err != nil {
		t.Fatalf("first Load() error = %v", err)
	}

	truncSink, _ := NewSink(db, Config{Truncate: true})
	if _, err := truncSink.Load(ctx, sampleTickets(3)); err != nil {
		t.Fatalf("truncating Load() error = %v", err)
	}

	var total int64
	if err := db.Table("support_tickets").Count(&total).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 3 {
		t.Fatalf("rows = %d, want 3 after truncate", total)
	}
}

func TestSinkLoadEmptyIsNoop(t *testing.T) {
	db := openTestDB(t)
	sink, _ := NewSink(db, Config{})

	res, err := sink.Load(context.Background(), dataset.SupportTicketsTable(nil))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if res.Rows != 0 {
		t.Fatalf("Load() rows = %d, want 0", res.Rows)
	}
	if db.Migrator().HasTable("support_tickets") {
		t.Fatalf("empty load created a table")
	}
}

func TestCreateTableSQL(t *testing.T) {
	sql := CreateTableSQL(gormsqlite.Open(":memory:"), sampleTickets(1))
	for _, want := range []string{
		"CREATE TABLE IF NOT EXISTS `support_tickets`",
		"`feedback_score` INTEGER NOT NULL",
		"`resolved_at` DATETIME,",
		"PRIMARY KEY (`ticket_id`)",
	} {
		if !strings.Contains(sql, want) {
			t.Fatalf("CreateTableSQL() = %s, missing %s", sql, want)
		}
	}
}

func TestColumnTypeMySQLKey(t *testing.T) {
	if got := columnType("mysql", dataset.Column{Name: "order_id", Type: dataset.TypeString}, true); got != "VARCHAR(64)" {
		t.Fatalf("columnType(key) = %q", got)
	}
	if got := columnType("mysql", dataset.Column{Name: "order_date", Type: dataset.TypeTimestamp}, false); got != "DATETIME(6)" {
		t.Fatalf("columnType(timestamp) = %q", got)
	}
}

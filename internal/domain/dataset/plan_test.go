package dataset

import (
	"errors"
	"testing"
	"time"
)

func TestPlanOrdersParentsBeforeChildren(t *testing.T) {
	seen := make(map[string]bool, len(Plan))
	for _, step := range Plan {
		for _, parent := range step.Parents {
			if !seen[parent] {
				t.Fatalf("table %q planned before its parent %q", step.Table, parent)
			}
		}
		seen[step.Table] = true
	}
	if len(seen) != 7 {
		t.Fatalf("plan tables = %d, want 7", len(seen))
	}
}

func TestCountsValidate(t *testing.T) {
	if err := DefaultCounts().Validate(); err != nil {
		t.Fatalf("DefaultCounts().Validate() error = %v", err)
	}

	counts := DefaultCounts()
	counts.OrderItems = -1
	if err := counts.Validate(); !errors.Is(err, ErrNegativeRowCount) {
		t.Fatalf("Validate() error = %v, want ErrNegativeRowCount", err)
	}

	if _, err := counts.For("payments"); !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("For(payments) error = %v, want ErrUnknownTable", err)
	}
}

func TestDefaultCountsTotal(t *testing.T) {
	if got := DefaultCounts().Total(); got != 12880 {
		t.Fatalf("Total() = %d, want 12880", got)
	}
}

func TestDestination(t *testing.T) {
	dst := Destination{Project: "acme", Dataset: "shop", Table: TableOrders}
	if got := dst.String(); got != "acme.shop.orders" {
		t.Fatalf("String() = %q", got)
	}
	if got := (Destination{Dataset: "shop", Table: TableOrders}).String(); got != "shop.orders" {
		t.Fatalf("String() without project = %q", got)
	}
}

func TestOrdersTableKeepsNullDiscount(t *testing.T) {
	code := "SAVE10"
	table := OrdersTable([]Order{
		{OrderID: "o1", UserID: "u1", OrderDate: time.Unix(0, 0), DiscountCode: &code},
		{OrderID: "o2", UserID: "u1", OrderDate: time.Unix(0, 0)},
	})

	idx := table.ColumnIndex("discount_code")
	if idx < 0 {
		t.Fatalf("discount_code column missing")
	}
	if !table.Columns[idx].Nullable {
		t.Fatalf("discount_code must be nullable")
	}
	if table.Rows[0][idx] != "SAVE10" {
		t.Fatalf("row[0].discount_code = %v", table.Rows[0][idx])
	}
	if table.Rows[1][idx] != nil {
		t.Fatalf("row[1].discount_code = %v, want nil", table.Rows[1][idx])
	}
	if len(table.Rows[0]) != len(table.Columns) {
		t.Fatalf("row width = %d, columns = %d", len(table.Rows[0]), len(table.Columns))
	}
}

func TestFloatBoundRounded(t *testing.T) {
	if !ProductPrice.Rounded(12.34) {
		t.Fatalf("12.34 should satisfy precision 2")
	}
	if ProductRating.Rounded(4.25) {
		t.Fatalf("4.25 should not satisfy precision 1")
	}
	if !ProductRating.Contains(5.0) || ProductRating.Contains(5.01) {
		t.Fatalf("rating bound check is wrong")
	}
}

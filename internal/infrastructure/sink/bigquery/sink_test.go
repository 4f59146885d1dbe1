package bigquery

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"

	"fakedata/internal/domain/dataset"
)

func sampleOrders() dataset.Table {
	code := "SAVE10"
	at := time.Date(2026, time.March, 4, 15, 30, 0, 0, time.FixedZone("CET", 3600))
	return dataset.OrdersTable([]dataset.Order{
		{OrderID: "o1", UserID: "u1", OrderDate: at, ShippingAddress: "1 Main St", OrderTotal: 99.5, PaymentMethod: "upi", DiscountCode: &code, DeliveryWindow: "Morning", OrderStatus: "shipped"},
		{OrderID: "o2", UserID: "u2", OrderDate: at, ShippingAddress: "2 Main St", OrderTotal: 20, PaymentMethod: "paypal", DeliveryWindow: "Evening", OrderStatus: "pending"},
	})
}

func TestEncodeNDJSON(t *testing.T) {
	var b strings.Builder
	if err := EncodeNDJSON(&b, sampleOrders()); err != nil {
		t.Fatalf("EncodeNDJSON() error = %v", err)
	}

	var lines []map[string]any
	scanner := bufio.NewScanner(strings.NewReader(b.String()))
	for scanner.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("line %q: %v", scanner.Text(), err)
		}
		lines = append(lines, rec)
	}
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if got := lines[0]["order_date"]; got != "2026-03-04T14:30:00Z" {
		t.Fatalf("order_date = %v, want UTC RFC 3339", got)
	}
	if got := lines[0]["discount_code"]; got != "SAVE10" {
		t.Fatalf("discount_code = %v", got)
	}
	if got, ok := lines[1]["discount_code"]; !ok || got != nil {
		t.Fatalf("discount_code = %v (present=%v), want null", got, ok)
	}
}

func TestEncodeNDJSONDates(t *testing.T) {
	table := dataset.UsersTable([]dataset.User{{
		UserID:      "u1",
		DateOfBirth: time.Date(1990, time.July, 9, 0, 0, 0, 0, time.UTC),
	}})
	var b strings.Builder
	if err := EncodeNDJSON(&b, table); err != nil {
		t.Fatalf("EncodeNDJSON() error = %v", err)
	}
	if !strings.Contains(b.String(), `"date_of_birth":"1990-07-09"`) {
		t.Fatalf("output = %s", b.String())
	}
}

func TestSchemaFromColumns(t *testing.T) {
	schema := Schema(sampleOrders().Columns)
	byName := make(map[string]*bigquery.FieldSchema, len(schema))
	for _, f := range schema {
		byName[f.Name] = f
	}
	if f := byName["order_total"]; f.Type != bigquery.FloatFieldType || !f.Required {
		t.Fatalf("order_total = %+v", f)
	}
	if f := byName["order_date"]; f.Type != bigquery.TimestampFieldType {
		t.Fatalf("order_date = %+v", f)
	}
	if f := byName["discount_code"]; f.Required {
		t.Fatalf("discount_code must be optional")
	}
}

func newTestSink(load loadFunc) *Sink {
	return &Sink{project: "acme", dataset: "shop", load: load}
}

func TestSinkLoad(t *testing.T) {
	var gotTable string
	var gotLines int
	sink := newTestSink(func(_ context.Context, table string, schema bigquery.Schema, data io.Reader) (int64, error) {
		gotTable = table
		body, err := io.ReadAll(data)
		if err != nil {
			return 0, err
		}
		gotLines = strings.Count(string(body), "\n")
		if len(schema) != 9 {
			t.Errorf("schema fields = %d, want 9", len(schema))
		}
		return 0, nil
	})

	res, err := sink.Load(context.Background(), sampleOrders())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if res.Destination != "acme.shop.orders" || res.Rows != 2 {
		t.Fatalf("Load() = %+v", res)
	}
	if gotTable != "orders" || gotLines != 2 {
		t.Fatalf("load job table=%q lines=%d", gotTable, gotLines)
	}
}

func TestSinkLoadEmptyIsNoop(t *testing.T) {
	called := false
	sink := newTestSink(func(context.Context, string, bigquery.Schema, io.Reader) (int64, error) {
		called = true
		return 0, nil
	})

	res, err := sink.Load(context.Background(), dataset.OrdersTable(nil))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if called || res.Rows != 0 || res.Destination != "acme.shop.orders" {
		t.Fatalf("Load() = %+v, called=%v", res, called)
	}
}

func TestSinkLoadPropagatesJobError(t *testing.T) {
	boom := errors.New("access denied")
	sink := newTestSink(func(context.Context, string, bigquery.Schema, io.Reader) (int64, error) {
		return 0, boom
	})
	if _, err := sink.Load(context.Background(), sampleOrders()); !errors.Is(err, boom) {
		t.Fatalf("Load() error = %v, want access denied", err)
	}
}

func TestParseDisposition(t *testing.T) {
	if d, err := parseDisposition(""); err != nil || d != bigquery.WriteAppend {
		t.Fatalf("parseDisposition(\"\") = %v, %v", d, err)
	}
	if d, err := parseDisposition("TRUNCATE"); err != nil || d != bigquery.WriteTruncate {
		t.Fatalf("parseDisposition(TRUNCATE) = %v, %v", d, err)
	}
	if _, err := parseDisposition("replace"); err == nil {
		t.Fatalf("parseDisposition(replace) error = nil")
	}
}

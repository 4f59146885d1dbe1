package synth

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"

	"fakedata/internal/domain/dataset"
)

func TestFieldsIDIsUUIDv4(t *testing.T) {
	f := newTestFields(1)
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		id := f.ID()
		parsed, err := uuid.Parse(id)
		if err != nil {
			t.Fatalf("ID() = %q: %v", id, err)
		}
		if parsed.Version() != 4 {
			t.Fatalf("ID() version = %d, want 4", parsed.Version())
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("ID() repeated %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestFieldsSeededIsReproducible(t *testing.T) {
	a, b := newTestFields(42), newTestFields(42)
	for i := 0; i < 20; i++ {
		if x, y := a.ID(), b.ID(); x != y {
			t.Fatalf("ID() diverged: %q vs %q", x, y)
		}
		if x, y := a.Username(), b.Username(); x != y {
			t.Fatalf("Username() diverged: %q vs %q", x, y)
		}
		if x, y := a.FloatIn(dataset.ProductPrice), b.FloatIn(dataset.ProductPrice); x != y {
			t.Fatalf("FloatIn() diverged: %v vs %v", x, y)
		}
	}
}

func TestFieldsRangesRespectBounds(t *testing.T) {
	f := newTestFields(7)
	for i := 0; i < 2000; i++ {
		if v := f.IntRange(1, 5); v < 1 || v > 5 {
			t.Fatalf("IntRange(1,5) = %d", v)
		}
		if v := f.IntRange(5, 1); v < 1 || v > 5 {
			t.Fatalf("IntRange(5,1) = %d", v)
		}
		v := f.FloatIn(dataset.ProductWeight)
		if !dataset.ProductWeight.Contains(v) || !dataset.ProductWeight.Rounded(v) {
			t.Fatalf("FloatIn(weight) = %v", v)
		}
	}
}

func TestFieldsPatternAndDimensions(t *testing.T) {
	f := newTestFields(3)
	sku := regexp.MustCompile(`^SKU-\d{7}$`)
	dims := regexp.MustCompile(`^\d{1,2}x\d{1,2}x\d{1,2} cm$`)
	for i := 0; i < 100; i++ {
		if v := f.Pattern(dataset.SKUPattern); !sku.MatchString(v) {
			t.Fatalf("Pattern(SKU) = %q", v)
		}
		if v := f.Dimensions(dataset.DimensionLength, dataset.DimensionWidth, dataset.DimensionHeight); !dims.MatchString(v) {
			t.Fatalf("Dimensions() = %q", v)
		}
	}
}

func TestFieldsTimeWindows(t *testing.T) {
	f := newTestFields(9)
	decadeStart := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearStart := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		if ts := f.TimeThisDecade(); ts.Before(decadeStart) || ts.After(fixedNow) {
			t.Fatalf("TimeThisDecade() = %v", ts)
		}
		if ts := f.TimeThisYear(); ts.Before(yearStart) || ts.After(fixedNow) {
			t.Fatalf("TimeThisYear() = %v", ts)
		}
		dob := f.DateOfBirth(18, 70)
		if dob.After(fixedNow.AddDate(-18, 0, 0)) || !dob.After(fixedNow.AddDate(-71, 0, 0)) {
			t.Fatalf("DateOfBirth(18,70) = %v", dob)
		}
		if dob.Hour() != 0 || dob.Minute() != 0 {
			t.Fatalf("DateOfBirth() carries a time of day: %v", dob)
		}
	}
}

func TestFieldsOptionalChoiceProducesNull(t *testing.T) {
	f := newTestFields(11)
	var nulls, values int
	for i := 0; i < 400; i++ {
		if v := f.OptionalChoice(dataset.DiscountCodes); v == nil {
			nulls++
		} else {
			values++
		}
	}
	if nulls == 0 || values == 0 {
		t.Fatalf("OptionalChoice() nulls=%d values=%d, want both", nulls, values)
	}
}

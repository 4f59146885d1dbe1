package synth

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"fakedata/internal/domain/dataset"
)

// Fields produces one synthetic value per call. All randomness flows through
// the injected faker so a seeded faker yields a reproducible dataset. Fields is
// not safe for concurrent use.
type Fields struct {
	faker *gofakeit.Faker
	now   func() time.Time
}

func NewFields(faker *gofakeit.Faker, now func() time.Time) *Fields {
	if faker == nil {
		faker = gofakeit.New(0)
	}
	if now == nil {
		now = time.Now
	}
	return &Fields{faker: faker, now: now}
}

// NewSeededFields returns Fields backed by a faker seeded with seed; 0 picks a random seed.
func NewSeededFields(seed int64, now func() time.Time) *Fields {
	return NewFields(gofakeit.New(seed), now)
}

// ID returns a random UUIDv4 drawn from the faker's source.
func (f *Fields) ID() string {
	id, err := uuid.NewRandomFromReader(f.faker.Rand)
	if err != nil {
		// math/rand never fails to read
		return uuid.NewString()
	}
	return id.String()
}

func (f *Fields) Username() string {
	return f.faker.Username()
}

func (f *Fields) Email() string {
	return f.faker.Email()
}

func (f *Fields) Country() string {
	return f.faker.Country()
}

func (f *Fields) PersonName() string {
	return f.faker.Name()
}

func (f *Fields) FirstName() string {
	return f.faker.FirstName()
}

// Address returns a postal address on a single line.
func (f *Fields) Address() string {
	addr := f.faker.Address()
	return strings.ReplaceAll(addr.Address, "\n", ", ")
}

func (f *Fields) Bool() bool {
	return f.faker.Bool()
}

// Chance reports true with probability p.
func (f *Fields) Chance(p float64) bool {
	return f.faker.Rand.Float64() < p
}

// IntRange returns an integer in [lo, hi].
func (f *Fields) IntRange(lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + f.faker.Rand.Intn(hi-lo+1)
}

// FloatRange returns a value in [lo, hi] rounded to precision decimal places.
func (f *Fields) FloatRange(lo, hi float64, precision int) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	v := lo + f.faker.Rand.Float64()*(hi-lo)
	return clamp(round(v, precision), lo, hi)
}

func (f *Fields) Choice(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[f.faker.Rand.Intn(len(options))]
}

// OptionalChoice picks uniformly among options plus one null outcome.
func (f *Fields) OptionalChoice(options []string) *string {
	idx := f.faker.Rand.Intn(len(options) + 1)
	if idx == 0 {
		return nil
	}
	v := options[idx-1]
	return &v
}

// Pattern replaces every '#' in pattern with a random digit.
func (f *Fields) Pattern(pattern string) string {
	return f.faker.Numerify(pattern)
}

func (f *Fields) Words(n int) []string {
	words := make([]string, 0, n)
	for i := 0; i < n; i++ {
		words = append(words, f.faker.Word())
	}
	return words
}

func (f *Fields) IntIn(b dataset.IntBound) int64 {
	return int64(f.IntRange(b.Lo, b.Hi))
}

func (f *Fields) FloatIn(b dataset.FloatBound) float64 {
	return f.FloatRange(b.Lo, b.Hi, b.Precision)
}

func (f *Fields) Dimensions(length, width, height dataset.IntBound) string {
	return fmt.Sprintf("%dx%dx%d cm", f.IntIn(length), f.IntIn(width), f.IntIn(height))
}

// TimeThisDecade returns a timestamp between the start of the current decade and now.
func (f *Fields) TimeThisDecade() time.Time {
	now := f.now().UTC()
	start := time.Date(now.Year()-now.Year()%10, time.January, 1, 0, 0, 0, 0, time.UTC)
	return f.between(start, now)
}

// TimeThisYear returns a timestamp between January 1st of the current year and now.
func (f *Fields) TimeThisYear() time.Time {
	now := f.now().UTC()
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return f.between(start, now)
}

func (f *Fields) DateThisDecade() time.Time {
	return truncateDay(f.TimeThisDecade())
}

// DateOfBirth returns a date for someone aged between minAge and maxAge today.
func (f *Fields) DateOfBirth(minAge, maxAge int) time.Time {
	if minAge > maxAge {
		minAge, maxAge = maxAge, minAge
	}
	today := truncateDay(f.now().UTC())
	latest := today.AddDate(-minAge, 0, 0)
	earliest := today.AddDate(-(maxAge + 1), 0, 1)
	return truncateDay(f.between(earliest, latest))
}

// Sample picks one key uniformly at random, with replacement across calls.
func (f *Fields) Sample(keys []string) string {
	return keys[f.faker.Rand.Intn(len(keys))]
}

func (f *Fields) between(start, end time.Time) time.Time {
	if !end.After(start) {
		return start
	}
	span := end.Sub(start)
	return start.Add(time.Duration(f.faker.Rand.Int63n(int64(span) + 1)))
}

func round(v float64, precision int) float64 {
	scale := math.Pow(10, float64(precision))
	return math.Round(v*scale) / scale
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

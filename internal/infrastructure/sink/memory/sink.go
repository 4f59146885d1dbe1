package memory

import (
	"context"
	"errors"
	"sync"

	"fakedata/internal/domain/dataset"
	"fakedata/internal/errs"
	"fakedata/internal/ports"
)

// Sink keeps row counts per table instead of writing anywhere. It backs
// dry runs.
type Sink struct {
	mu     sync.Mutex
	counts map[string]int64
	order  []string
}

var _ ports.TableSink = (*Sink)(nil)

func NewSink() *Sink {
	return &Sink{counts: make(map[string]int64)}
}

func (s *Sink) Destination(table string) string {
	return "memory://" + table
}

func (s *Sink) Load(ctx context.Context, table dataset.Table) (ports.LoadResult, error) {
	if ctx == nil {
		return ports.LoadResult{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.LoadResult{}, errs.Wrap(err, "check context")
	}

	rows := int64(table.Len())
	if rows == 0 {
		return ports.LoadResult{Destination: s.Destination(table.Name)}, nil
	}

	s.mu.Lock()
	if _, seen := s.counts[table.Name]; !seen {
		s.order = append(s.order, table.Name)
	}
	s.counts[table.Name] += rows
	s.mu.Unlock()

	return ports.LoadResult{Destination: s.Destination(table.Name), Rows: rows}, nil
}

// Rows returns the number of rows loaded into table so far.
func (s *Sink) Rows(table string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[table]
}

// Tables lists loaded tables in first-load order.
func (s *Sink) Tables() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

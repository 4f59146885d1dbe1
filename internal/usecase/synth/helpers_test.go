package synth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"fakedata/internal/domain/dataset"
	"fakedata/internal/ports"
)

var fixedNow = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

func newTestFields(seed int64) *Fields {
	return NewSeededFields(seed, func() time.Time { return fixedNow })
}

// scriptedText answers every prompt through fn and records what it was asked.
type scriptedText struct {
	mu       sync.Mutex
	fn       func(prompt string) string
	requests []ports.TextRequest
}

func (s *scriptedText) Generate(_ context.Context, req ports.TextRequest) string {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	if s.fn == nil {
		return ports.TextFallback
	}
	return s.fn(req.Prompt)
}

func (s *scriptedText) prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.requests))
	for _, r := range s.requests {
		out = append(out, r.Prompt)
	}
	return out
}

func echoText(prompt string) string {
	return "  generated: " + prompt + "  "
}

// recordingSink is an in-memory TableSink that remembers every load.
type recordingSink struct {
	loads  []dataset.Table
	failOn string
}

func (s *recordingSink) Destination(table string) string {
	return "test." + table
}

func (s *recordingSink) Load(_ context.Context, table dataset.Table) (ports.LoadResult, error) {
	if table.Name == s.failOn {
		return ports.LoadResult{}, errors.New("load job failed: quota exceeded")
	}
	s.loads = append(s.loads, table)
	return ports.LoadResult{Destination: s.Destination(table.Name), Rows: int64(table.Len())}, nil
}

func (s *recordingSink) tableNames() []string {
	names := make([]string, 0, len(s.loads))
	for _, t := range s.loads {
		names = append(names, t.Name)
	}
	return names
}

func keySet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

func requireNonEmpty(t *testing.T, table string, values map[string]string) {
	t.Helper()
	for name, v := range values {
		if strings.TrimSpace(v) == "" {
			t.Fatalf("%s.%s is empty", table, name)
		}
	}
}

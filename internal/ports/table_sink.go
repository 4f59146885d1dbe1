package ports

import (
	"context"

	"fakedata/internal/domain/dataset"
)

type LoadResult struct {
	Destination string
	Rows        int64
}

// TableSink bulk-loads one materialized table and blocks until the load
// completes. An empty table is a no-op reporting zero rows.
type TableSink interface {
	Load(ctx context.Context, table dataset.Table) (LoadResult, error)
	Destination(table string) string
}

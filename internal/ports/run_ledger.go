package ports

import (
	"context"
	"errors"
)

var ErrRunNotFound = errors.New("pipeline run not found")

const (
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

type PipelineRun struct {
	RunID        uint64
	SinkDriver   string
	Seed         int64
	Status       string
	StartedAt    string
	FinishedAt   string
	TablesLoaded int
	RowsLoaded   int64
	Error        string
}

type PipelineRunCreate struct {
	SinkDriver string
	Seed       int64
	StartedAt  string
}

type TableLoad struct {
	LoadID      uint64
	RunID       uint64
	TableName   string
	Destination string
	Rows        int64
	LoadedAt    string
}

type TableLoadCreate struct {
	RunID       uint64
	TableName   string
	Destination string
	Rows        int64
	LoadedAt    string
}

type RunLedger interface {
	BeginRun(ctx context.Context, input PipelineRunCreate) (PipelineRun, error)
	AppendTableLoad(ctx context.Context, input TableLoadCreate) error
	AddRunTotals(ctx context.Context, runID uint64, tables int, rows int64) error
	FinishRun(ctx context.Context, runID uint64, status string, finishedAt string, errMsg string) error
	GetRun(ctx context.Context, runID uint64) (PipelineRun, error)
	ListRuns(ctx context.Context, limit int) ([]PipelineRun, error)
	ListTableLoads(ctx context.Context, runID uint64) ([]TableLoad, error)
}

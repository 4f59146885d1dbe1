package synth

import (
	"fakedata/internal/domain/dataset"
	"fakedata/internal/ports"
)

type Service struct {
	builder    *Builder
	sink       ports.TableSink
	ledger     ports.RunLedger
	uow        ports.UnitOfWork
	sinkDriver string
	seed       int64
	now        func() string
}

type ServiceOptions struct {
	SinkDriver string
	Seed       int64
	// Ledger and UnitOfWork are optional; without them runs are not recorded.
	Ledger     ports.RunLedger
	UnitOfWork ports.UnitOfWork
}

func NewService(builder *Builder, sink ports.TableSink, opts ServiceOptions) *Service {
	return &Service{
		builder:    builder,
		sink:       sink,
		ledger:     opts.Ledger,
		uow:        opts.UnitOfWork,
		sinkDriver: opts.SinkDriver,
		seed:       opts.Seed,
		now:        nowUTC,
	}
}

type RunInput struct {
	Counts dataset.Counts
}

type TableResult struct {
	Table       string
	Destination string
	Rows        int64
}

type RunResult struct {
	RunID  uint64
	Tables []TableResult
}

func (r RunResult) RowsLoaded() int64 {
	var total int64
	for _, t := range r.Tables {
		total += t.Rows
	}
	return total
}

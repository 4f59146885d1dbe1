package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"gorm.io/gorm"

	"fakedata/internal/bootstrap/config"
	"fakedata/internal/bootstrap/logging"
	"fakedata/internal/domain/dataset"
	"fakedata/internal/errs"
	"fakedata/internal/infrastructure/persistence/sqlite/model"
	"fakedata/internal/ports"
)

var ErrLedgerUnavailable = errors.New("run ledger is disabled or unavailable")

// App carries the resolved config and the run ledger. DB and Ledger are nil
// when the ledger is disabled or could not be opened.
type App struct {
	Config config.Config
	DB     *gorm.DB
	Ledger ports.RunLedger
}

func (a *App) InitSchema(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if a.DB == nil {
		return ErrLedgerUnavailable
	}

	logCtx := logging.WithComponent(ctx, "bootstrap.app")
	logging.Info(logCtx, "start schema migration")

	if err := a.DB.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errs.Wrap(err, "auto migrate schema")
	}

	logging.Info(logCtx, "schema migration completed", slog.String("ledger_dsn", a.Config.Ledger.DSN))
	return nil
}

// RecentRuns lists the latest ledger runs, newest first.
func (a *App) RecentRuns(ctx context.Context, limit int) ([]ports.PipelineRun, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if a.Ledger == nil {
		return nil, ErrLedgerUnavailable
	}
	runs, err := a.Ledger.ListRuns(ctx, limit)
	if err != nil {
		return nil, errs.Wrap(err, "list runs")
	}
	return runs, nil
}

// RunDetail returns one ledger run with its table loads in load order.
func (a *App) RunDetail(ctx context.Context, runID uint64) (ports.PipelineRun, []ports.TableLoad, error) {
	if ctx == nil {
		return ports.PipelineRun{}, nil, errors.New("context is required")
	}
	if a.Ledger == nil {
		return ports.PipelineRun{}, nil, ErrLedgerUnavailable
	}
	run, err := a.Ledger.GetRun(ctx, runID)
	if err != nil {
		return ports.PipelineRun{}, nil, errs.Wrapf(err, "get run %d", runID)
	}
	loads, err := a.Ledger.ListTableLoads(ctx, runID)
	if err != nil {
		return ports.PipelineRun{}, nil, errs.Wrapf(err, "list table loads of run %d", runID)
	}
	return run, loads, nil
}

// Destination names where the configured sink would put table, without
// connecting to it.
func (a *App) Destination(table string) string {
	sink := a.Config.Sink
	switch sink.Driver {
	case config.SinkBigQuery:
		return dataset.Destination{Project: a.Config.GCP.ProjectID, Dataset: sink.Dataset, Table: table}.String()
	case config.SinkPostgres:
		return sink.Schema + "." + table
	case config.SinkParquet:
		return filepath.Join(sink.Dir, table+".parquet")
	case config.SinkMemory:
		return "memory://" + table
	default:
		return table
	}
}

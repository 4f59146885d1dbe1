package synth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fakedata/internal/bootstrap/logging"
	"fakedata/internal/domain/dataset"
	"fakedata/internal/errs"
	"fakedata/internal/ports"
)

// Run generates every table in dataset.Plan order and loads each one before
// the next is generated. The first load failure stops the run: tables already
// loaded stay loaded and the rest are never generated. The returned result
// lists the tables loaded so far even when err is non-nil.
func (s *Service) Run(ctx context.Context, in RunInput) (RunResult, error) {
	if ctx == nil {
		return RunResult{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return RunResult{}, errs.Wrap(err, "check context")
	}
	if s.builder == nil {
		return RunResult{}, errors.New("table builder is required")
	}
	if s.sink == nil {
		return RunResult{}, errors.New("table sink is required")
	}
	if err := in.Counts.Validate(); err != nil {
		return RunResult{}, err
	}

	ctx = logging.WithComponent(ctx, "synth.pipeline")
	out := RunResult{RunID: s.beginRun(ctx)}
	if out.RunID != 0 {
		ctx = logging.WithAttrs(ctx, slog.Uint64("run_id", out.RunID))
	}

	err := s.runPlan(ctx, in.Counts, &out)
	s.finishRun(ctx, out.RunID, err)
	if err != nil {
		return out, err
	}

	logging.Info(ctx, "pipeline finished",
		slog.Int("tables", len(out.Tables)),
		slog.Int64("rows", out.RowsLoaded()),
	)
	return out, nil
}

func (s *Service) runPlan(ctx context.Context, counts dataset.Counts, out *RunResult) error {
	b := s.builder

	users := b.Users(s.announce(ctx, dataset.TableUsers, counts.Users), counts.Users)
	if err := s.load(ctx, dataset.UsersTable(users), out); err != nil {
		return err
	}

	products := b.Products(s.announce(ctx, dataset.TableProducts, counts.Products), counts.Products)
	if err := s.load(ctx, dataset.ProductsTable(products), out); err != nil {
		return err
	}

	warehouses := b.Warehouses(s.announce(ctx, dataset.TableWarehouses, counts.Warehouses), counts.Warehouses)
	if err := s.load(ctx, dataset.WarehousesTable(warehouses), out); err != nil {
		return err
	}

	userIDs := dataset.UserIDs(users)
	productIDs := dataset.ProductIDs(products)

	orders, err := b.Orders(s.announce(ctx, dataset.TableOrders, counts.Orders), counts.Orders, userIDs)
	if err != nil {
		return errs.Wrapf(err, "generate %s", dataset.TableOrders)
	}
	if err := s.load(ctx, dataset.OrdersTable(orders), out); err != nil {
		return err
	}
	orderIDs := dataset.OrderIDs(orders)

	items, err := b.OrderItems(s.announce(ctx, dataset.TableOrderItems, counts.OrderItems), counts.OrderItems, orderIDs, productIDs)
	if err != nil {
		return errs.Wrapf(err, "generate %s", dataset.TableOrderItems)
	}
	if err := s.load(ctx, dataset.OrderItemsTable(items), out); err != nil {
		return err
	}

	snapshots, err := b.InventorySnapshots(
		s.announce(ctx, dataset.TableInventorySnapshots, counts.InventorySnapshots),
		counts.InventorySnapshots,
		productIDs,
		dataset.WarehouseIDs(warehouses),
	)
	if err != nil {
		return errs.Wrapf(err, "generate %s", dataset.TableInventorySnapshots)
	}
	if err := s.load(ctx, dataset.InventorySnapshotsTable(snapshots), out); err != nil {
		return err
	}

	tickets, err := b.SupportTickets(s.announce(ctx, dataset.TableSupportTickets, counts.SupportTickets), counts.SupportTickets, userIDs, orderIDs)
	if err != nil {
		return errs.Wrapf(err, "generate %s", dataset.TableSupportTickets)
	}
	return s.load(ctx, dataset.SupportTicketsTable(tickets), out)
}

func (s *Service) announce(ctx context.Context, table string, rows int) context.Context {
	ctx = logging.WithAttrs(ctx, slog.String("table", table))
	logging.Info(ctx, "generating table", slog.Int("rows", rows))
	return ctx
}

func (s *Service) load(ctx context.Context, table dataset.Table, out *RunResult) error {
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}

	ctx = logging.WithAttrs(ctx, slog.String("table", table.Name))
	res, err := s.sink.Load(ctx, table)
	if err != nil {
		logging.Error(ctx, "table load failed", slog.Any("err", errs.Loggable(err)))
		return errs.Wrapf(err, "load %s", table.Name)
	}

	logging.Info(ctx, "uploaded table",
		slog.Int64("rows", res.Rows),
		slog.String("destination", res.Destination),
	)
	result := TableResult{Table: table.Name, Destination: res.Destination, Rows: res.Rows}
	out.Tables = append(out.Tables, result)
	s.recordLoad(ctx, out.RunID, result)
	return nil
}

// The ledger is bookkeeping only: its failures are logged, never returned.

func (s *Service) beginRun(ctx context.Context) uint64 {
	if s.ledger == nil {
		return 0
	}
	run, err := s.ledger.BeginRun(ctx, ports.PipelineRunCreate{
		SinkDriver: s.sinkDriver,
		Seed:       s.seed,
		StartedAt:  s.now(),
	})
	if err != nil {
		logging.Warn(ctx, "record run start failed", slog.Any("err", errs.Loggable(err)))
		return 0
	}
	return run.RunID
}

func (s *Service) recordLoad(ctx context.Context, runID uint64, result TableResult) {
	if s.ledger == nil || runID == 0 {
		return
	}
	record := func(ctx context.Context) error {
		if err := s.ledger.AppendTableLoad(ctx, ports.TableLoadCreate{
			RunID:       runID,
			TableName:   result.Table,
			Destination: result.Destination,
			Rows:        result.Rows,
			LoadedAt:    s.now(),
		}); err != nil {
			return err
		}
		return s.ledger.AddRunTotals(ctx, runID, 1, result.Rows)
	}

	var err error
	if s.uow != nil {
		err = s.uow.WithTx(ctx, record)
	} else {
		err = record(ctx)
	}
	if err != nil {
		logging.Warn(ctx, "record table load failed", slog.Any("err", errs.Loggable(err)))
	}
}

func (s *Service) finishRun(ctx context.Context, runID uint64, runErr error) {
	if s.ledger == nil || runID == 0 {
		return
	}
	status := ports.RunStatusSucceeded
	msg := ""
	if runErr != nil {
		status = ports.RunStatusFailed
		msg = runErr.Error()
	}
	// A cancelled run context must not prevent recording the outcome.
	if err := s.ledger.FinishRun(context.WithoutCancel(ctx), runID, status, s.now(), msg); err != nil {
		logging.Warn(ctx, "record run finish failed", slog.Any("err", errs.Loggable(err)), slog.String("status", status))
	}
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func (r TableResult) String() string {
	return fmt.Sprintf("uploaded %d rows to %s", r.Rows, r.Destination)
}

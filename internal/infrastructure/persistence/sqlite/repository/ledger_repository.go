package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fakedata/internal/errs"
	"fakedata/internal/infrastructure/persistence/sqlite/model"
	"fakedata/internal/ports"
)

const defaultRunListLimit = 20

// LedgerRepository persists pipeline runs and their table loads.
type LedgerRepository struct {
	db *gorm.DB
}

var _ ports.RunLedger = (*LedgerRepository)(nil)

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func (r *LedgerRepository) BeginRun(ctx context.Context, input ports.PipelineRunCreate) (ports.PipelineRun, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.PipelineRun{}, err
	}

	row := model.PipelineRun{
		SinkDriver: input.SinkDriver,
		Seed:       input.Seed,
		Status:     ports.RunStatusRunning,
		StartedAt:  input.StartedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.PipelineRun{}, errs.Wrap(err, "insert pipeline run")
	}
	return mapRun(row), nil
}

func (r *LedgerRepository) AppendTableLoad(ctx context.Context, input ports.TableLoadCreate) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := model.TableLoad{
		RunID:       input.RunID,
		Table:       input.TableName,
		Destination: input.Destination,
		Rows:        input.Rows,
		LoadedAt:    input.LoadedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert table load")
	}
	return nil
}

func (r *LedgerRepository) AddRunTotals(ctx context.Context, runID uint64, tables int, rows int64) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	result := db.Model(&model.PipelineRun{}).
		Where("run_id = ?", runID).
		Updates(map[string]any{
			"tables_loaded": gorm.Expr("tables_loaded + ?", tables),
			"rows_loaded":   gorm.Expr("rows_loaded + ?", rows),
		})
	if result.Error != nil {
		return errs.Wrap(result.Error, "update run totals")
	}
	if result.RowsAffected == 0 {
		return ports.ErrRunNotFound
	}
	return nil
}

func (r *LedgerRepository) FinishRun(ctx context.Context, runID uint64, status string, finishedAt string, errMsg string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	result := db.Model(&model.PipelineRun{}).
		Where("run_id = ?", runID).
		Updates(map[string]any{
			"status":      status,
			"finished_at": finishedAt,
			"error":       errMsg,
		})
	if result.Error != nil {
		return errs.Wrap(result.Error, "finish pipeline run")
	}
	if result.RowsAffected == 0 {
		return ports.ErrRunNotFound
	}
	return nil
}

func (r *LedgerRepository) GetRun(ctx context.Context, runID uint64) (ports.PipelineRun, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.PipelineRun{}, err
	}

	var row model.PipelineRun
	if err := db.Where("run_id = ?", runID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.PipelineRun{}, ports.ErrRunNotFound
		}
		return ports.PipelineRun{}, errs.Wrap(err, "query pipeline run")
	}
	return mapRun(row), nil
}

// ListRuns returns the most recent runs first.
func (r *LedgerRepository) ListRuns(ctx context.Context, limit int) ([]ports.PipelineRun, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultRunListLimit
	}

	var rows []model.PipelineRun
	if err := db.Order("run_id desc").Limit(limit).Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query pipeline runs")
	}

	items := make([]ports.PipelineRun, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapRun(row))
	}
	return items, nil
}

func (r *LedgerRepository) ListTableLoads(ctx context.Context, runID uint64) ([]ports.TableLoad, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.TableLoad
	if err := db.
		Where("run_id = ?", runID).
		Order("load_id asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query table loads")
	}

	items := make([]ports.TableLoad, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.TableLoad{
			LoadID:      row.LoadID,
			RunID:       row.RunID,
			TableName:   row.Table,
			Destination: row.Destination,
			Rows:        row.Rows,
			LoadedAt:    row.LoadedAt,
		})
	}
	return items, nil
}

func mapRun(row model.PipelineRun) ports.PipelineRun {
	return ports.PipelineRun{
		RunID:        row.RunID,
		SinkDriver:   row.SinkDriver,
		Seed:         row.Seed,
		Status:       row.Status,
		StartedAt:    row.StartedAt,
		FinishedAt:   row.FinishedAt,
		TablesLoaded: row.TablesLoaded,
		RowsLoaded:   row.RowsLoaded,
		Error:        row.Error,
	}
}

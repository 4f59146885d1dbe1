package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/fx"

	"fakedata/internal/bootstrap/config"
	"fakedata/internal/domain/dataset"
	"fakedata/internal/ports"
	"fakedata/internal/usecase/synth"
)

func TestModuleRunsPipelineIntoMemorySink(t *testing.T) {
	t.Setenv("FAKEDATA_LEDGER_DSN", filepath.Join(t.TempDir(), "ledger.sqlite"))

	ctx := context.Background()
	seed := int64(11)
	overrides := config.Overrides{
		Counts: map[string]int{
			dataset.TableUsers:              5,
			dataset.TableProducts:           4,
			dataset.TableWarehouses:         2,
			dataset.TableOrders:             10,
			dataset.TableOrderItems:         8,
			dataset.TableInventorySnapshots: 3,
			dataset.TableSupportTickets:     2,
		},
		Seed:              &seed,
		SinkDriver:        config.SinkMemory,
		DisableEnrichment: true,
	}

	var app *App
	var svc *synth.Service
	fxApp := fx.New(
		Module,
		fx.NopLogger,
		fx.Provide(func() context.Context { return ctx }),
		fx.Provide(
			fx.Annotate(func() string { return "" }, fx.ResultTags(`name:"configFile"`)),
			fx.Annotate(func() string { return "" }, fx.ResultTags(`name:"envFile"`)),
		),
		fx.Supply(overrides),
		fx.Populate(&app, &svc),
	)
	if err := fxApp.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() {
		_ = fxApp.Stop(context.Background())
	})

	out, err := svc.Run(ctx, synth.RunInput{Counts: app.Config.Generate.Counts})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.RowsLoaded() != 34 || len(out.Tables) != len(dataset.Plan) {
		t.Fatalf("Run() = %+v", out)
	}
	if out.Tables[3].Destination != "memory://orders" || out.Tables[3].Rows != 10 {
		t.Fatalf("orders = %+v", out.Tables[3])
	}

	runs, err := app.RecentRuns(ctx, 1)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 1 || runs[0].Status != ports.RunStatusSucceeded || runs[0].RowsLoaded != 34 || runs[0].Seed != 11 {
		t.Fatalf("RecentRuns() = %+v", runs)
	}
}

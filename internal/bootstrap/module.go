package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"fakedata/internal/bootstrap/config"
	"fakedata/internal/bootstrap/database"
	"fakedata/internal/bootstrap/logging"
	"fakedata/internal/errs"
	"fakedata/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "fakedata/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "fakedata/internal/infrastructure/persistence/sqlite/uow"
	bqsink "fakedata/internal/infrastructure/sink/bigquery"
	memsink "fakedata/internal/infrastructure/sink/memory"
	parquetsink "fakedata/internal/infrastructure/sink/parquet"
	pgsink "fakedata/internal/infrastructure/sink/postgres"
	"fakedata/internal/infrastructure/sink/sqlstore"
	"fakedata/internal/infrastructure/textgen"
	"fakedata/internal/infrastructure/textgen/gemini"
	"fakedata/internal/infrastructure/textgen/openaicompat"
	"fakedata/internal/ports"
	"fakedata/internal/usecase/synth"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(fx.Annotate(provideLedgerDB, fx.ResultTags(`name:"ledgerDB"`))),
	fx.Provide(fx.Annotate(provideLedger, fx.ParamTags(`name:"ledgerDB"`))),
	fx.Provide(fx.Annotate(provideUnitOfWork, fx.ParamTags(`name:"ledgerDB"`))),
	fx.Provide(fx.Annotate(provideApp, fx.ParamTags(``, `name:"ledgerDB"`))),
	fx.Provide(provideSink),
	fx.Provide(provideTextGenerator),
	fx.Provide(provideFields),
	fx.Provide(provideBuilder),
	fx.Provide(provideService),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string           `name:"configFile"`
	EnvFile    string           `name:"envFile"`
	Overrides  config.Overrides `optional:"true"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithComponent(p.Ctx, "bootstrap.fx")
	return config.Load(ctx, p.ConfigFile, p.EnvFile, p.Overrides)
}

// provideLedgerDB returns nil when the ledger is disabled or cannot be
// opened; the pipeline runs without bookkeeping in that case.
func provideLedgerDB(lc fx.Lifecycle, ctx context.Context, cfg config.Config) *gorm.DB {
	logCtx := logging.WithComponent(ctx, "bootstrap.fx")
	if !cfg.Ledger.Enabled {
		return nil
	}

	db, err := database.Open(logCtx, database.DriverSQLite, cfg.Ledger.DSN)
	if err == nil {
		err = db.WithContext(ctx).AutoMigrate(model.All()...)
		if err != nil {
			_ = database.Close(db)
		}
	}
	if err != nil {
		logging.Warn(logCtx, "run ledger unavailable", slog.Any("err", errs.Loggable(err)))
		return nil
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return database.Close(db)
		},
	})
	return db
}

func provideLedger(db *gorm.DB) ports.RunLedger {
	if db == nil {
		return nil
	}
	return sqliterepo.NewLedgerRepository(db)
}

func provideUnitOfWork(db *gorm.DB) ports.UnitOfWork {
	if db == nil {
		return nil
	}
	return sqliteuow.NewUnitOfWork(db)
}

func provideApp(cfg config.Config, db *gorm.DB, ledger ports.RunLedger) *App {
	return &App{
		Config: cfg,
		DB:     db,
		Ledger: ledger,
	}
}

func provideSink(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (ports.TableSink, error) {
	logCtx := logging.WithAttrs(logging.WithComponent(ctx, "bootstrap.fx"), slog.String("sink_driver", cfg.Sink.Driver))

	switch cfg.Sink.Driver {
	case config.SinkBigQuery:
		sink, err := bqsink.NewSink(ctx, bqsink.Config{
			ProjectID:        cfg.GCP.ProjectID,
			Dataset:          cfg.Sink.Dataset,
			Location:         cfg.GCP.Location,
			CredentialsFile:  cfg.GCP.CredentialsFile,
			WriteDisposition: cfg.Sink.WriteDisposition,
		})
		if err != nil {
			return nil, errs.Wrap(err, "create bigquery sink")
		}
		lc.Append(fx.Hook{OnStop: func(context.Context) error { return sink.Close() }})
		logging.Info(logCtx, "sink ready", slog.String("destination", sink.Destination("*")))
		return sink, nil
	case config.SinkPostgres:
		sink, err := pgsink.NewSink(ctx, pgsink.Config{
			DSN:      cfg.Sink.DSN,
			Schema:   cfg.Sink.Schema,
			Truncate: cfg.Sink.Truncate(),
		})
		if err != nil {
			return nil, errs.Wrap(err, "create postgres sink")
		}
		lc.Append(fx.Hook{OnStop: sink.Close})
		logging.Info(logCtx, "sink ready", slog.String("schema", cfg.Sink.Schema))
		return sink, nil
	case config.SinkSQLite, config.SinkMySQL:
		db, err := database.Open(logCtx, cfg.Sink.Driver, cfg.Sink.DSN)
		if err != nil {
			return nil, errs.Wrap(err, "open sink database")
		}
		lc.Append(fx.Hook{OnStop: func(context.Context) error { return database.Close(db) }})
		return sqlstore.NewSink(db, sqlstore.Config{
			BatchSize: cfg.Sink.BatchSize,
			Truncate:  cfg.Sink.Truncate(),
		})
	case config.SinkParquet:
		logging.Info(logCtx, "sink ready", slog.String("dir", cfg.Sink.Dir))
		return parquetsink.NewSink(cfg.Sink.Dir)
	case config.SinkMemory:
		return memsink.NewSink(), nil
	default:
		return nil, fmt.Errorf("unsupported sink driver %q", cfg.Sink.Driver)
	}
}

func provideTextGenerator(ctx context.Context, cfg config.Config) ports.TextGenerator {
	logCtx := logging.WithAttrs(
		logging.WithComponent(ctx, "bootstrap.fx"),
		slog.String("provider", cfg.Enrichment.Provider),
	)

	if cfg.Enrichment.Provider == config.ProviderNone {
		logging.Info(logCtx, "text enrichment disabled")
		return textgen.Disabled{}
	}
	if cfg.Enrichment.APIKey == "" {
		logging.Warn(logCtx, "enrichment api key missing, text fields use fallbacks")
		return textgen.Disabled{}
	}

	switch cfg.Enrichment.Provider {
	case config.ProviderOpenAI:
		return openaicompat.NewClient(openaicompat.Config{
			APIKey:  cfg.Enrichment.APIKey,
			BaseURL: cfg.Enrichment.BaseURL,
			Model:   cfg.Enrichment.Model,
		})
	default:
		return gemini.NewClient(cfg.Enrichment.APIKey,
			gemini.WithModel(cfg.Enrichment.Model),
			gemini.WithEndpoint(cfg.Enrichment.BaseURL),
		)
	}
}

func provideFields(cfg config.Config) *synth.Fields {
	return synth.NewSeededFields(cfg.Generate.Seed, nil)
}

func provideBuilder(cfg config.Config, fields *synth.Fields, text ports.TextGenerator) *synth.Builder {
	return synth.NewBuilder(fields, text, cfg.Enrichment.Temperature)
}

type serviceParams struct {
	fx.In

	Config     config.Config
	Builder    *synth.Builder
	Sink       ports.TableSink
	Ledger     ports.RunLedger
	UnitOfWork ports.UnitOfWork
}

func provideService(p serviceParams) *synth.Service {
	return synth.NewService(p.Builder, p.Sink, synth.ServiceOptions{
		SinkDriver: p.Config.Sink.Driver,
		Seed:       p.Config.Generate.Seed,
		Ledger:     p.Ledger,
		UnitOfWork: p.UnitOfWork,
	})
}

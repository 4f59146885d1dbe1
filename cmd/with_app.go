package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"fakedata/internal/bootstrap"
	"fakedata/internal/bootstrap/config"
	"fakedata/internal/bootstrap/logging"
	"fakedata/internal/errs"
	"fakedata/internal/ports"
	"fakedata/internal/usecase/synth"
)

const lifecycleTimeout = 30 * time.Second

// overridesFunc turns command flags into config overrides.
type overridesFunc func(cmd *cobra.Command) (config.Overrides, error)

func withApp(overrides config.Overrides, run func(cmd *cobra.Command, app *bootstrap.App) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		var app *bootstrap.App
		stop, err := startApp(cmd, overrides, fx.Populate(&app))
		if err != nil {
			return err
		}
		defer stop()

		if err := run(cmd, app); err != nil {
			return errs.Wrap(err, "run command")
		}
		return nil
	}
}

func withPipeline(overrides overridesFunc, run func(cmd *cobra.Command, app *bootstrap.App, svc *synth.Service, sink ports.TableSink) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		o, err := overrides(cmd)
		if err != nil {
			return err
		}

		var app *bootstrap.App
		var svc *synth.Service
		var sink ports.TableSink
		stop, err := startApp(cmd, o, fx.Populate(&app, &svc, &sink))
		if err != nil {
			return err
		}
		defer stop()

		if err := run(cmd, app, svc, sink); err != nil {
			return errs.Wrap(err, "run command")
		}
		return nil
	}
}

// startApp builds and starts the fx graph; only what populate asks for is
// constructed. The returned func stops the app.
func startApp(cmd *cobra.Command, overrides config.Overrides, populate fx.Option) (func(), error) {
	ctx := logging.WithAttrs(
		cmd.Context(),
		slog.String("command", cmd.CommandPath()),
		slog.String("config_file", cfgFile),
	)

	fxApp := fx.New(
		bootstrap.Module,
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.SlogLogger{Logger: logging.Logger(ctx)}
			l.UseLogLevel(slog.LevelDebug)
			return l
		}),
		fx.Provide(func() context.Context { return ctx }),
		fx.Provide(
			fx.Annotate(
				func() string { return cfgFile },
				fx.ResultTags(`name:"configFile"`),
			),
			fx.Annotate(
				func() string { return envFile },
				fx.ResultTags(`name:"envFile"`),
			),
		),
		fx.Supply(overrides),
		populate,
	)

	startCtx, cancelStart := context.WithTimeout(ctx, lifecycleTimeout)
	defer cancelStart()
	if err := fxApp.Start(startCtx); err != nil {
		logging.Error(ctx, "bootstrap application failed", slog.Any("err", errs.Loggable(err)))
		return nil, errs.Wrap(err, "start fx application")
	}

	return func() {
		stopCtx, cancelStop := context.WithTimeout(context.Background(), lifecycleTimeout)
		defer cancelStop()
		if err := fxApp.Stop(stopCtx); err != nil {
			logging.Error(ctx, "fx application stop failed", slog.Any("err", errs.Loggable(err)))
		}
	}, nil
}

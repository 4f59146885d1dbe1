package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"fakedata/internal/bootstrap"
	"fakedata/internal/bootstrap/config"
	"fakedata/internal/bootstrap/logging"
	"fakedata/internal/domain/dataset"
	"fakedata/internal/errs"
	memsink "fakedata/internal/infrastructure/sink/memory"
	"fakedata/internal/ports"
	"fakedata/internal/usecase/synth"
)

var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate every table and load it into the configured sink",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withPipeline(runOverrides, func(cmd *cobra.Command, app *bootstrap.App, svc *synth.Service, sink ports.TableSink) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		w := cmd.OutOrStdout()

		out, err := svc.Run(ctx, synth.RunInput{Counts: app.Config.Generate.Counts})
		for _, table := range out.Tables {
			if _, werr := fmt.Fprintln(w, table.String()); werr != nil {
				return errs.Wrap(werr, "write run output")
			}
		}
		if err != nil {
			return errs.Wrap(err, "run pipeline")
		}

		summary := fmt.Sprintf("loaded %d rows into %d tables via %s", out.RowsLoaded(), len(out.Tables), app.Config.Sink.Driver)
		if out.RunID != 0 {
			summary += fmt.Sprintf(" (run %d)", out.RunID)
		}
		if _, err := fmt.Fprintln(w, headingStyle.Render(summary)); err != nil {
			return errs.Wrap(err, "write run output")
		}
		if mem, ok := sink.(*memsink.Sink); ok {
			return writeDryRun(w, mem)
		}
		return nil
	})

	for _, table := range countedTables() {
		cmd.Flags().Int(countFlag(table), -1, fmt.Sprintf("Rows to generate for %s (negative uses config)", table))
	}
	cmd.Flags().Int64("seed", 0, "Random seed for a reproducible dataset (0 picks one)")
	cmd.Flags().String("sink", "", "Sink driver override: bigquery, postgres, sqlite, mysql, parquet or memory")
	cmd.Flags().Bool("dry-run", false, "Generate everything but keep it in memory")
	cmd.Flags().Bool("no-enrich", false, "Skip the text-generation API and use fallback text")
	return cmd
}

// writeDryRun lists what the memory sink kept, in load order.
func writeDryRun(w io.Writer, mem *memsink.Sink) error {
	tables := mem.Tables()
	parts := make([]string, 0, len(tables))
	for _, table := range tables {
		parts = append(parts, fmt.Sprintf("%s=%d", table, mem.Rows(table)))
	}
	if _, err := fmt.Fprintf(w, "dry run kept %d tables in memory: %s\n", len(tables), strings.Join(parts, " ")); err != nil {
		return errs.Wrap(err, "write dry-run summary")
	}
	return nil
}

func countedTables() []string {
	tables := make([]string, 0, len(dataset.Plan))
	for _, step := range dataset.Plan {
		tables = append(tables, step.Table)
	}
	return tables
}

func countFlag(table string) string {
	return strings.ReplaceAll(table, "_", "-")
}

func runOverrides(cmd *cobra.Command) (config.Overrides, error) {
	flags := cmd.Flags()
	o := config.Overrides{Counts: make(map[string]int)}

	for _, table := range countedTables() {
		n, err := flags.GetInt(countFlag(table))
		if err != nil {
			return config.Overrides{}, errs.Wrapf(err, "read --%s", countFlag(table))
		}
		if n >= 0 {
			o.Counts[table] = n
		}
	}

	if flags.Changed("seed") {
		seed, err := flags.GetInt64("seed")
		if err != nil {
			return config.Overrides{}, errs.Wrap(err, "read --seed")
		}
		o.Seed = &seed
	}

	sink, _ := flags.GetString("sink")
	o.SinkDriver = strings.ToLower(strings.TrimSpace(sink))
	if dryRun, _ := flags.GetBool("dry-run"); dryRun {
		o.SinkDriver = config.SinkMemory
	}
	o.DisableEnrichment, _ = flags.GetBool("no-enrich")
	return o, nil
}

func init() {
	rootCmd.AddCommand(runCmd)
}

package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fakedata/internal/bootstrap"
	"fakedata/internal/bootstrap/config"
	"fakedata/internal/errs"
	"fakedata/internal/ports"
)

var historyCmd = newHistoryCmd()

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent pipeline runs from the local ledger",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withApp(config.Overrides{LedgerOnly: true}, func(cmd *cobra.Command, app *bootstrap.App) error {
		if cmd.Flags().Changed("run") {
			runID, _ := cmd.Flags().GetUint64("run")
			run, loads, err := app.RunDetail(cmd.Context(), runID)
			if err != nil {
				return err
			}
			return writeRunDetail(cmd.OutOrStdout(), run, loads)
		}

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := app.RecentRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}
		return writeRuns(cmd.OutOrStdout(), runs)
	})

	cmd.Flags().Int("limit", 20, "Number of runs to show")
	cmd.Flags().Uint64("run", 0, "Show the table loads of one run")
	return cmd
}

func writeRuns(out io.Writer, runs []ports.PipelineRun) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "run\tstatus\tsink\tseed\ttables\trows\tstarted_at\terror"); err != nil {
		return errs.Wrap(err, "write history header")
	}
	for _, run := range runs {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			run.RunID, run.Status, run.SinkDriver, run.Seed, run.TablesLoaded, run.RowsLoaded, run.StartedAt, run.Error,
		); err != nil {
			return errs.Wrap(err, "write history row")
		}
	}
	if err := w.Flush(); err != nil {
		return errs.Wrap(err, "flush history output")
	}
	return nil
}

func writeRunDetail(out io.Writer, run ports.PipelineRun, loads []ports.TableLoad) error {
	if _, err := fmt.Fprintf(out, "run %d %s via %s (seed %d), %d rows in %d tables\n",
		run.RunID, run.Status, run.SinkDriver, run.Seed, run.RowsLoaded, run.TablesLoaded,
	); err != nil {
		return errs.Wrap(err, "write run header")
	}
	if run.Error != "" {
		if _, err := fmt.Fprintf(out, "error: %s\n", run.Error); err != nil {
			return errs.Wrap(err, "write run header")
		}
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "table\trows\tdestination\tloaded_at"); err != nil {
		return errs.Wrap(err, "write table loads header")
	}
	for _, load := range loads {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", load.TableName, load.Rows, load.Destination, load.LoadedAt); err != nil {
			return errs.Wrap(err, "write table load row")
		}
	}
	if err := w.Flush(); err != nil {
		return errs.Wrap(err, "flush table loads output")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

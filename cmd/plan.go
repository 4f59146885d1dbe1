package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"fakedata/internal/bootstrap"
	"fakedata/internal/bootstrap/config"
	"fakedata/internal/domain/dataset"
	"fakedata/internal/errs"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show table order, parents, row counts and destinations without generating",
	Args:  cobra.NoArgs,
	RunE: withApp(config.Overrides{}, func(cmd *cobra.Command, app *bootstrap.App) error {
		counts := app.Config.Generate.Counts
		out := cmd.OutOrStdout()

		if _, err := fmt.Fprintln(out, headingStyle.Render(fmt.Sprintf("%d rows via %s", counts.Total(), app.Config.Sink.Driver))); err != nil {
			return errs.Wrap(err, "write plan header")
		}

		rendered, err := planTable(app)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, rendered); err != nil {
			return errs.Wrap(err, "write plan table")
		}
		return nil
	}),
}

func planTable(app *bootstrap.App) (string, error) {
	rows := make([][]string, 0, len(dataset.Plan))
	for i, step := range dataset.Plan {
		n, err := app.Config.Generate.Counts.For(step.Table)
		if err != nil {
			return "", err
		}
		parents := strings.Join(step.Parents, ",")
		if parents == "" {
			parents = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1), step.Table, parents, strconv.Itoa(n), app.Destination(step.Table),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return cellStyle.Inherit(headingStyle)
			}
			return cellStyle
		}).
		Headers("step", "table", "parents", "rows", "destination").
		Rows(rows...)
	return t.Render(), nil
}

func init() {
	rootCmd.AddCommand(planCmd)
}

package cmd

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/charmingruby/decor/hooks"
	"github.com/charmingruby/decor/internal/tour"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the tour scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Scenario", "Description")
			for _, s := range tour.Scenarios() {
				if err := table.Append(s.Name, s.Short); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
}

func renderSummary(w io.Writer, collector *hooks.Collector) error {
	rows, err := collector.Summary()
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header("Function", "Calls", "Errors", "Seconds")
	for _, r := range rows {
		if err := table.Append(
			r.Func,
			fmt.Sprintf("%d", r.Calls),
			fmt.Sprintf("%d", r.Errors),
			fmt.Sprintf("%.6f", r.Seconds),
		); err != nil {
			return err
		}
	}
	return table.Render()
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ay-kasimov/shed/internal/cli"
)

func newReportCommand() *cobra.Command {
	var year, month int
	var pdf bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a practice report for a year, a month or all time",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a, err := openApp(out)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			path, err := cli.RunReport(cmd.Context(), a.stats, cli.ReportOptions{
				Year:         year,
				Month:        month,
				OutputDir:    a.cfg.Outputs.ReportDirectory,
				TemplatePath: a.cfg.Templates.ReportTemplate,
				PDF:          pdf,
			})
			if err != nil {
				return fmt.Errorf("cli.RunReport() > %w", err)
			}
			fmt.Fprintf(out, "Report written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Limit the report to one year (e.g., 2024)")
	cmd.Flags().IntVar(&month, "month", 0, "Limit the report to one month (1-12), requires --year")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "Generate PDF output in addition to markdown")
	return cmd
}

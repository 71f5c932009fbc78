package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the statistics snapshot as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a, err := openApp(out)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()
			if len(args) == 0 {
				return a.exporter.WriteJSON(ctx, out)
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("os.Create(%s) > %w", args[0], err)
			}
			if err := a.exporter.WriteJSON(ctx, f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("f.Close() > %w", err)
			}
			fmt.Fprintf(out, "Statistics written to %s\n", args[0])
			return nil
		},
	}
}

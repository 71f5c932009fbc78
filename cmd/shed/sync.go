package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ay-kasimov/shed/internal/cli"
	"github.com/ay-kasimov/shed/internal/datasync"
)

func newSyncCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sync [directory]",
		Short: "Scan the video library and reconcile it with the database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a, err := openApp(out)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			dir := a.cfg.Library.Directory
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				return fmt.Errorf("no library directory: pass one or set library.directory in the config")
			}

			result, err := a.syncer.Sync(cmd.Context(), dir, a.cfg.Library.VideoExtensions, datasync.Options{DryRun: dryRun})
			if err != nil {
				return fmt.Errorf("syncer.Sync(%s) > %w", dir, err)
			}
			cli.NewRenderer(out).SyncSummary(result, dryRun)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the database")
	return cmd
}

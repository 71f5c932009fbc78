package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ay-kasimov/shed/internal/cli"
	"github.com/ay-kasimov/shed/internal/settings"
)

func newSettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read and change preferences",
	}

	cmd.AddCommand(newSettingsListCommand())
	cmd.AddCommand(newSettingsGetCommand())
	cmd.AddCommand(newSettingsSetCommand())

	return cmd
}

func newSettingsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a, err := openApp(out)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			items, err := a.settings.All(cmd.Context())
			if err != nil {
				return fmt.Errorf("All() > %w", err)
			}
			cli.NewRenderer(out).Settings(items)
			return nil
		},
	}
}

func newSettingsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Show one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a, err := openApp(out)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			setting, err := a.settings.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("Get(%s) > %w", args[0], err)
			}
			if setting == nil {
				fmt.Fprintf(out, "%s is not set\n", args[0])
				return nil
			}
			fmt.Fprintf(out, "%s = %s\n", setting.Key, setting.Value)
			return nil
		},
	}
}

func newSettingsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			out := cmd.OutOrStdout()
			a, err := openApp(out)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()
			switch key {
			case settings.KeyDailyGoal, settings.KeyWeeklyGoal:
				goal, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("%s must be an integer, got %q", key, value)
				}
				if key == settings.KeyDailyGoal {
					err = a.settings.SetDailyGoal(ctx, goal)
				} else {
					err = a.settings.SetWeeklyGoal(ctx, goal)
				}
				if err != nil {
					return fmt.Errorf("set %s > %w", key, err)
				}
			default:
				if err := a.settings.Set(ctx, key, value); err != nil {
					return fmt.Errorf("Set(%s) > %w", key, err)
				}
			}
			fmt.Fprintf(out, "Updated %s to %s\n", key, value)
			return nil
		},
	}
}

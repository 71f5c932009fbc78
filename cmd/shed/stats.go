package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ay-kasimov/shed/internal/cli"
)

func newStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show library statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a, err := openApp(out)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()
			// Log a record-beating run before reading the streak.
			if _, err := a.stats.RecordStreak(ctx); err != nil {
				return fmt.Errorf("RecordStreak() > %w", err)
			}

			overview, err := a.stats.Overview(ctx)
			if err != nil {
				return fmt.Errorf("Overview() > %w", err)
			}
			streak, err := a.stats.StreakInfo(ctx)
			if err != nil {
				return fmt.Errorf("StreakInfo() > %w", err)
			}
			daily, err := a.stats.DailyProgress(ctx)
			if err != nil {
				return fmt.Errorf("DailyProgress() > %w", err)
			}
			weekly, err := a.stats.WeeklyProgress(ctx)
			if err != nil {
				return fmt.Errorf("WeeklyProgress() > %w", err)
			}

			renderer := cli.NewRenderer(out)
			renderer.StatsOverview(overview)
			renderer.Streak(streak)
			renderer.GoalProgress("Today", daily)
			renderer.GoalProgress("Week", weekly)
			return nil
		},
	}

	cmd.AddCommand(newStatsRecordsCommand())
	cmd.AddCommand(newStatsGoalsCommand())

	return cmd
}

func newStatsRecordsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "records",
		Short: "Recompute and show personal records",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a, err := openApp(out)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()
			if _, err := a.stats.RecordStreak(ctx); err != nil {
				return fmt.Errorf("RecordStreak() > %w", err)
			}
			records, err := a.stats.ComputeRecords(ctx)
			if err != nil {
				return fmt.Errorf("ComputeRecords() > %w", err)
			}
			cli.NewRenderer(out).RecordsTable(records)
			return nil
		},
	}
}

func newStatsGoalsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "goals",
		Short: "Show progress against the daily and weekly goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a, err := openApp(out)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()
			daily, err := a.stats.DailyProgress(ctx)
			if err != nil {
				return fmt.Errorf("DailyProgress() > %w", err)
			}
			weekly, err := a.stats.WeeklyProgress(ctx)
			if err != nil {
				return fmt.Errorf("WeeklyProgress() > %w", err)
			}

			renderer := cli.NewRenderer(out)
			renderer.GoalProgress("Today", daily)
			renderer.GoalProgress("Week", weekly)
			return nil
		},
	}
}

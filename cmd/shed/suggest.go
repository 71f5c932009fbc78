package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ay-kasimov/shed/internal/cli"
)

const prioritySuggestionLimit = 5

func newSuggestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Suggest what to practice next",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a, err := openApp(out)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()
			priority, err := a.lessons.PrioritySuggestions(ctx, prioritySuggestionLimit)
			if err != nil {
				return fmt.Errorf("PrioritySuggestions(%d) > %w", prioritySuggestionLimit, err)
			}
			ofTheDay, err := a.lessons.LessonOfTheDay(ctx)
			if err != nil {
				return fmt.Errorf("LessonOfTheDay() > %w", err)
			}
			rediscover, err := a.lessons.Rediscover(ctx)
			if err != nil {
				return fmt.Errorf("Rediscover() > %w", err)
			}
			review, err := a.lessons.ReviewQueue(ctx)
			if err != nil {
				return fmt.Errorf("ReviewQueue() > %w", err)
			}

			cli.NewRenderer(out).Suggestions(priority, ofTheDay, rediscover, review)
			return nil
		},
	}
}

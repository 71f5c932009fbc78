package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ay-kasimov/shed/internal/cli"
	"github.com/ay-kasimov/shed/internal/lesson"
)

// statusValue restricts a flag to the lesson statuses.
type statusValue lesson.Status

func (s *statusValue) Set(val string) error {
	parsed, ok := lesson.ParseStatus(val)
	if !ok {
		return fmt.Errorf("invalid status: %s", val)
	}
	*s = statusValue(parsed)
	return nil
}

func (s statusValue) String() string {
	return string(s)
}

func (s *statusValue) Type() string {
	return "status"
}

var (
	_           pflag.Value = (*statusValue)(nil)
	allStatuses             = []lesson.Status{lesson.StatusNew, lesson.StatusInProgress, lesson.StatusCompleted, lesson.StatusArchived}
)

func newLessonsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lessons",
		Short: "Browse and update the lesson library",
	}

	cmd.AddCommand(newLessonsListCommand())
	cmd.AddCommand(newLessonsShowCommand())
	cmd.AddCommand(newLessonsStatusCommand())
	cmd.AddCommand(newLessonsSearchCommand())

	return cmd
}

func newLessonsListCommand() *cobra.Command {
	var status statusValue
	var author, search string
	var year, month, page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List lessons, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a, err := openApp(out)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			filter := lesson.Filter{
				Status: lesson.Status(status),
				Author: author,
				Search: search,
				Year:   year,
				Month:  month,
			}
			pageData, err := a.lessons.ListPage(cmd.Context(), filter, page)
			if err != nil {
				return fmt.Errorf("ListPage(%d) > %w", page, err)
			}
			cli.NewRenderer(out).LessonTable(pageData)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Var(&status, "status", fmt.Sprintf("Filter by status. Possible values are %v", allStatuses))
	flags.StringVar(&author, "author", "", "Filter by author substring")
	flags.StringVar(&search, "search", "", "Filter by author or title substring")
	flags.IntVar(&year, "year", 0, "Filter by lesson year (e.g., 2024)")
	flags.IntVar(&month, "month", 0, "Filter by lesson month (1-12)")
	flags.IntVar(&page, "page", 1, "Page number")
	return cmd
}

func newLessonsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <lesson id>",
		Short: "Show one lesson with its tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "lesson")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			a, err := openApp(out)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()
			l, err := a.lessons.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("Get(%d) > %w", id, err)
			}
			if l == nil {
				return fmt.Errorf("lesson %d not found", id)
			}
			tags, err := a.tags.ForLesson(ctx, id)
			if err != nil {
				return fmt.Errorf("ForLesson(%d) > %w", id, err)
			}
			cli.NewRenderer(out).LessonDetail(l, tags)
			return nil
		},
	}
}

func newLessonsStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <lesson id> <status>",
		Short: "Move a lesson to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "lesson")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			a, err := openApp(out)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			updated, err := a.lessons.UpdateStatus(cmd.Context(), id, lesson.Status(args[1]))
			if err != nil {
				return fmt.Errorf("UpdateStatus(%d, %s) > %w", id, args[1], err)
			}
			fmt.Fprintf(out, "%q is now %s\n", updated.Title, updated.Status)
			return nil
		},
	}
}

func newLessonsSearchCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search lesson transcripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a, err := openApp(out)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			results, err := a.lessons.SearchTranscripts(cmd.Context(), args[0], limit)
			if err != nil {
				return fmt.Errorf("SearchTranscripts(%s) > %w", args[0], err)
			}
			cli.NewRenderer(out).SearchResults(args[0], results)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of results")
	return cmd
}

func parseID(raw, noun string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s id must be an integer, got %q", noun, raw)
	}
	return id, nil
}

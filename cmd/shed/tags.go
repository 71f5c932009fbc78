package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ay-kasimov/shed/internal/cli"
	"github.com/ay-kasimov/shed/internal/lesson"
	"github.com/ay-kasimov/shed/internal/tag"
)

func newTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage lesson tags",
	}

	cmd.AddCommand(newTagsListCommand())
	cmd.AddCommand(newTagsCreateCommand())
	cmd.AddCommand(newTagsDeleteCommand())
	cmd.AddCommand(newTagsAttachCommand())
	cmd.AddCommand(newTagsDetachCommand())
	cmd.AddCommand(newTagsImportCommand())

	return cmd
}

func newTagsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tags with their lesson counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a, err := openApp(out)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			counts, err := a.tags.UsageCounts(cmd.Context())
			if err != nil {
				return fmt.Errorf("UsageCounts() > %w", err)
			}
			cli.NewRenderer(out).Tags(counts)
			return nil
		},
	}
}

func newTagsCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a, err := openApp(out)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			created, isNew, err := a.tags.Create(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("Create(%s) > %w", args[0], err)
			}
			if isNew {
				fmt.Fprintf(out, "Created tag %q\n", created.Name)
			} else {
				fmt.Fprintf(out, "Tag %q already exists\n", created.Name)
			}
			return nil
		},
	}
}

func newTagsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <tag id>",
		Short: "Delete a tag and remove it from every lesson",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "tag")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			a, err := openApp(out)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := a.tags.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("Delete(%d) > %w", id, err)
			}
			fmt.Fprintf(out, "Deleted tag %d\n", id)
			return nil
		},
	}
}

func newTagsAttachCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "attach <lesson id> <tag id>",
		Short: "Attach a tag to a lesson",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lessonID, tagID, err := parseLessonTagIDs(args)
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
			l, t, err := lookupLessonAndTag(ctx, a, lessonID, tagID)
			if err != nil {
				return err
			}

			attached, err := a.tags.Attach(ctx, lessonID, tagID)
			if err != nil {
				return fmt.Errorf("Attach(%d, %d) > %w", lessonID, tagID, err)
			}
			if attached {
				fmt.Fprintf(out, "Tagged %q with %q\n", l.Title, t.Name)
			} else {
				fmt.Fprintf(out, "%q already carries %q\n", l.Title, t.Name)
			}
			return nil
		},
	}
}

func newTagsDetachCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detach <lesson id> <tag id>",
		Short: "Remove a tag from a lesson",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lessonID, tagID, err := parseLessonTagIDs(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			a, err := openApp(out)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			removed, err := a.tags.Detach(cmd.Context(), lessonID, tagID)
			if err != nil {
				return fmt.Errorf("Detach(%d, %d) > %w", lessonID, tagID, err)
			}
			if removed {
				fmt.Fprintf(out, "Removed tag %d from lesson %d\n", tagID, lessonID)
			} else {
				fmt.Fprintf(out, "Lesson %d does not carry tag %d\n", lessonID, tagID)
			}
			return nil
		},
	}
}

func newTagsImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <taxonomy file>",
		Short: "Import tags from a YAML taxonomy file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a, err := openApp(out)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			result, err := a.tags.ImportTaxonomy(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("ImportTaxonomy(%s) > %w", args[0], err)
			}
			fmt.Fprintf(out, "Imported tags: %d new, %d already present\n", result.Created, result.Existing)
			return nil
		},
	}
}

func parseLessonTagIDs(args []string) (int64, int64, error) {
	lessonID, err := parseID(args[0], "lesson")
	if err != nil {
		return 0, 0, err
	}
	tagID, err := parseID(args[1], "tag")
	if err != nil {
		return 0, 0, err
	}
	return lessonID, tagID, nil
}

func lookupLessonAndTag(ctx context.Context, a *app, lessonID, tagID int64) (*lesson.Lesson, *tag.Tag, error) {
	l, err := a.lessons.Get(ctx, lessonID)
	if err != nil {
		return nil, nil, fmt.Errorf("Get(%d) > %w", lessonID, err)
	}
	if l == nil {
		return nil, nil, fmt.Errorf("lesson %d not found", lessonID)
	}
	t, err := a.tags.Get(ctx, tagID)
	if err != nil {
		return nil, nil, fmt.Errorf("tags.Get(%d) > %w", tagID, err)
	}
	if t == nil {
		return nil, nil, fmt.Errorf("tag %d not found", tagID)
	}
	return l, t, nil
}

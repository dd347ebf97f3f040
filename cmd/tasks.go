package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wsargent/toodledo/internal/adapters/render/tasks"
	"github.com/wsargent/toodledo/internal/domain"
	"github.com/wsargent/toodledo/internal/parser"
	"github.com/wsargent/toodledo/internal/session"
)

func newTasksCmd(a *app) *cobra.Command {
	var includeCompleted bool

	cmd := &cobra.Command{
		Use:     "tasks [filter tokens]",
		Aliases: []string{"list"},
		Short:   "List tasks",
		Long:    "tasks lists uncompleted tasks. Inline tokens narrow the search the same way add sets fields: *Folder, @Context, $Goal, !priority. Remaining text filters by title.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.taskSession(cmd.Context())
			if err != nil {
				return err
			}

			params := filtersFromTokens(strings.Join(args, " "))
			if !includeCompleted {
				params["notcomp"] = true
			}

			var list []*domain.Task
			err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching tasks...", func(ctx context.Context) error {
				var fetchErr error
				list, fetchErr = s.GetTasks(ctx, params)
				return fetchErr
			})
			if err != nil {
				return err
			}

			output, err := tasks.Render(list)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
			return err
		},
	}

	cmd.Flags().BoolVar(&includeCompleted, "completed", false, "Include completed tasks")

	return cmd
}

// filtersFromTokens parses inline entity tokens from a filter line; any
// leftover text becomes a title filter.
func filtersFromTokens(line string) session.Params {
	params := session.Params{}
	if line == "" {
		return params
	}

	if folder := parser.Folder(line); folder != "" {
		params["folder"] = folder
	}
	if context := parser.Context(line); context != "" {
		params["context"] = context
	}
	if goal := parser.Goal(line); goal != "" {
		params["goal"] = goal
	}
	if priority, ok := parser.Priority(line); ok {
		params["priority"] = priority
	}
	if title := parser.Remainder(line); title != "" {
		params["title"] = title
	}
	return params
}

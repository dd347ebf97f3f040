package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wsargent/toodledo/internal/adapters/render/tasks"
	"github.com/wsargent/toodledo/internal/domain"
)

// The service cannot search by "priority greater than", so the hotlist
// fetches everything uncompleted and filters locally. The threshold comes
// from the account's hotlist setting, defaulting to medium: anything
// strictly above it is hot.
func newHotlistCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hotlist [filter tokens]",
		Short: "List uncompleted tasks above the account's hotlist priority",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.taskSession(cmd.Context())
			if err != nil {
				return err
			}

			params := filtersFromTokens(strings.Join(args, " "))
			params["notcomp"] = true
			delete(params, "priority")

			threshold := domain.PriorityMedium
			var list []*domain.Task
			err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching hotlist...", func(ctx context.Context) error {
				if info, err := s.GetAccountInfo(ctx); err == nil && info.HotlistPriority.Valid() {
					threshold = info.HotlistPriority - 1
				}
				var fetchErr error
				list, fetchErr = s.GetTasks(ctx, params)
				return fetchErr
			})
			if err != nil {
				return err
			}

			hot := list[:0]
			for _, task := range list {
				if task.Priority > threshold {
					hot = append(hot, task)
				}
			}
			sort.SliceStable(hot, func(i, j int) bool {
				return hot[i].Priority > hot[j].Priority
			})

			output, err := tasks.Render(hot)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
			return err
		},
	}
}

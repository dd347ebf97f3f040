package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wsargent/toodledo/internal/session"
)

func newCompleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <task id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			s, err := a.taskSession(cmd.Context())
			if err != nil {
				return err
			}

			if err := s.EditTask(cmd.Context(), id, session.Params{"completed": true}); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Completed task <%d>\n", id)
			return err
		},
	}
}

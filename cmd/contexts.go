package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wsargent/toodledo/internal/adapters/render/tasks"
)

func newContextsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contexts",
		Short: "List and manage contexts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.taskSession(cmd.Context())
			if err != nil {
				return err
			}

			contexts, err := s.GetContexts(cmd.Context(), false)
			if err != nil {
				return err
			}

			for _, context := range contexts {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), tasks.FormatContext(context)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.AddCommand(
		newContextsAddCmd(a),
		newContextsRenameCmd(a),
		newContextsDeleteCmd(a),
	)

	return cmd
}

func newContextsAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.taskSession(cmd.Context())
			if err != nil {
				return err
			}

			id, err := s.AddContext(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created context <%d>\n", id)
			return err
		},
	}
}

func newContextsRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <new name>",
		Short: "Rename a context",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			s, err := a.taskSession(cmd.Context())
			if err != nil {
				return err
			}

			if err := s.EditContext(cmd.Context(), id, args[1]); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Renamed context <%d>\n", id)
			return err
		},
	}
}

func newContextsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a context",
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

			if err := s.DeleteContext(cmd.Context(), id); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted context <%d>\n", id)
			return err
		},
	}
}

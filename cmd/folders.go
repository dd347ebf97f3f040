package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wsargent/toodledo/internal/adapters/render/tasks"
	"github.com/wsargent/toodledo/internal/session"
)

func newFoldersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "List and manage folders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.taskSession(cmd.Context())
			if err != nil {
				return err
			}

			folders, err := s.GetFolders(cmd.Context(), false)
			if err != nil {
				return err
			}

			for _, folder := range folders {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), tasks.FormatFolder(folder)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.AddCommand(
		newFoldersAddCmd(a),
		newFoldersRenameCmd(a),
		newFoldersArchiveCmd(a),
		newFoldersDeleteCmd(a),
	)

	return cmd
}

func newFoldersAddCmd(a *app) *cobra.Command {
	var private bool

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.taskSession(cmd.Context())
			if err != nil {
				return err
			}

			id, err := s.AddFolder(cmd.Context(), args[0], private)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created folder <%d>\n", id)
			return err
		},
	}

	cmd.Flags().BoolVar(&private, "private", false, "Make the folder private")

	return cmd
}

func newFoldersRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <new name>",
		Short: "Rename a folder",
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

			if err := s.EditFolder(cmd.Context(), id, session.Params{"title": args[1]}); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Renamed folder <%d>\n", id)
			return err
		},
	}
}

func newFoldersArchiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a folder",
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

			if err := s.EditFolder(cmd.Context(), id, session.Params{"archived": true}); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Archived folder <%d>\n", id)
			return err
		},
	}
}

func newFoldersDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a folder",
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

			if err := s.DeleteFolder(cmd.Context(), id); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted folder <%d>\n", id)
			return err
		},
	}
}

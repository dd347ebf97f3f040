package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wsargent/toodledo/internal/adapters/render/tasks"
	"github.com/wsargent/toodledo/internal/domain"
)

func newGoalsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "List and manage goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.taskSession(cmd.Context())
			if err != nil {
				return err
			}

			goals, err := s.GetGoals(cmd.Context(), false)
			if err != nil {
				return err
			}

			sorted := make([]*domain.Goal, len(goals))
			copy(sorted, goals)
			sort.SliceStable(sorted, func(i, j int) bool {
				return sorted[i].Level < sorted[j].Level
			})

			for _, goal := range sorted {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), tasks.FormatGoal(goal)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.AddCommand(
		newGoalsAddCmd(a),
		newGoalsRenameCmd(a),
		newGoalsDeleteCmd(a),
	)

	return cmd
}

func newGoalsAddCmd(a *app) *cobra.Command {
	var level int
	var contributes int64

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.taskSession(cmd.Context())
			if err != nil {
				return err
			}

			id, err := s.AddGoal(cmd.Context(), args[0], domain.GoalLevel(level), contributes)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created goal <%d>\n", id)
			return err
		},
	}

	cmd.Flags().IntVar(&level, "level", 0, "Goal level: 0 lifetime, 1 long-term, 2 short-term")
	cmd.Flags().Int64Var(&contributes, "contributes", 0, "Id of the higher-level goal this one contributes to")

	return cmd
}

func newGoalsRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <new name>",
		Short: "Rename a goal",
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

			if err := s.EditGoal(cmd.Context(), id, args[1]); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Renamed goal <%d>\n", id)
			return err
		},
	}
}

func newGoalsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a goal",
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

			if err := s.DeleteGoal(cmd.Context(), id); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted goal <%d>\n", id)
			return err
		},
	}
}

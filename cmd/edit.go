package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wsargent/toodledo/internal/domain"
	"github.com/wsargent/toodledo/internal/session"
)

func newEditCmd(a *app) *cobra.Command {
	var title, folder, taskContext, goal, priority, dueDate, dueTime, tag, note string
	var star bool

	cmd := &cobra.Command{
		Use:   "edit <task id>",
		Short: "Edit a task",
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

			params := session.Params{}
			flags := cmd.Flags()
			if flags.Changed("title") {
				params["title"] = title
			}
			if flags.Changed("folder") {
				params["folder"] = folder
			}
			if flags.Changed("context") {
				params["context"] = taskContext
			}
			if flags.Changed("goal") {
				params["goal"] = goal
			}
			if flags.Changed("priority") {
				parsed, err := domain.ParsePriority(priority)
				if err != nil {
					return err
				}
				params["priority"] = parsed
			}
			if flags.Changed("duedate") {
				params["duedate"] = dueDate
			}
			if flags.Changed("duetime") {
				params["duetime"] = dueTime
			}
			if flags.Changed("tag") {
				params["tag"] = tag
			}
			if flags.Changed("note") {
				params["note"] = note
			}
			if flags.Changed("star") {
				params["star"] = star
			}
			if len(params) == 0 {
				return fmt.Errorf("nothing to change; pass at least one field flag")
			}

			if err := s.EditTask(cmd.Context(), id, params); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated task <%d>\n", id)
			return err
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&folder, "folder", "", "Folder name or id")
	cmd.Flags().StringVar(&taskContext, "context", "", "Context name or id")
	cmd.Flags().StringVar(&goal, "goal", "", "Goal name or id")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority: top, high, medium, low or negative")
	cmd.Flags().StringVar(&dueDate, "duedate", "", "Due date, YYYY-MM-DD with an optional modifier prefix")
	cmd.Flags().StringVar(&dueTime, "duetime", "", "Due time")
	cmd.Flags().StringVar(&tag, "tag", "", "Tag")
	cmd.Flags().StringVar(&note, "note", "", "Note text")
	cmd.Flags().BoolVar(&star, "star", false, "Star the task")

	return cmd
}

func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wsargent/toodledo/internal/parser"
	"github.com/wsargent/toodledo/internal/session"
)

func newAddCmd(a *app) *cobra.Command {
	var dueDate, dueTime, tag, note string
	var star bool
	var parent int64
	var length int

	cmd := &cobra.Command{
		Use:   "add <task text>",
		Short: "Add a task",
		Long: "add creates a task from the given text. Inline tokens set fields:\n" +
			"  *Folder or *[Spaced Folder]\n" +
			"  @Context or @[Spaced Context]\n" +
			"  $Goal or $[Spaced Goal]\n" +
			"  !top | !high | !medium | !low | !negative\n" +
			"Whatever remains is the task title.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.taskSession(cmd.Context())
			if err != nil {
				return err
			}

			line := strings.Join(args, " ")
			title := parser.Remainder(line)
			if title == "" {
				return fmt.Errorf("no task title left after parsing %q", line)
			}

			params := session.Params{}
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
			if dueDate != "" {
				params["duedate"] = dueDate
			}
			if dueTime != "" {
				params["duetime"] = dueTime
			}
			if tag != "" {
				params["tag"] = tag
			}
			if note != "" {
				params["note"] = note
			}
			if star {
				params["star"] = true
			}
			if parent != 0 {
				params["parent"] = parent
			}
			if length != 0 {
				params["length"] = length
			}

			id, err := s.AddTask(cmd.Context(), title, params)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created task <%d>\n", id)
			return err
		},
	}

	cmd.Flags().StringVar(&dueDate, "duedate", "", "Due date, YYYY-MM-DD with an optional =, <, > or ? modifier prefix")
	cmd.Flags().StringVar(&dueTime, "duetime", "", "Due time, e.g. \"2:00 PM\"")
	cmd.Flags().StringVar(&tag, "tag", "", "Tag")
	cmd.Flags().StringVar(&note, "note", "", "Note text")
	cmd.Flags().BoolVar(&star, "star", false, "Star the task")
	cmd.Flags().Int64Var(&parent, "parent", 0, "Parent task id")
	cmd.Flags().IntVar(&length, "length", 0, "Expected length in minutes")

	return cmd
}

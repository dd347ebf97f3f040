// Package tasks renders task and entity listings for the terminal. The
// line layout mirrors the shorthand the add command accepts, so output is
// valid input: *[Folder], @[Context], ^[Goal], !priority.
package tasks

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wsargent/toodledo/internal/domain"
)

const dueLayout = "01/02/2006 03:04 PM"

func renderView(list []*domain.Task, s styles) string {
	if len(list) == 0 {
		return s.empty.Render("No tasks found.")
	}

	lines := make([]string, 0, len(list))
	for _, task := range list {
		lines = append(lines, formatTask(task, s))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatTask(task *domain.Task, s styles) string {
	parts := []string{
		s.id.Render(fmt.Sprintf("<%d>", task.ID)),
		"--",
		s.priority.Render("!" + task.Priority.String()),
	}

	if task.Folder != nil && task.Folder != domain.NoFolder {
		parts = append(parts, s.folder.Render(fmt.Sprintf("*[%s]", task.Folder.Name)))
	}
	if task.Context != nil && task.Context != domain.NoContext {
		parts = append(parts, s.context.Render(fmt.Sprintf("@[%s]", task.Context.Name)))
	}
	if task.Goal != nil && task.Goal != domain.NoGoal {
		parts = append(parts, s.goal.Render(fmt.Sprintf("^[%s]", task.Goal.Name)))
	}
	if task.Repeat != domain.RepeatNone {
		parts = append(parts, s.meta.Render(fmt.Sprintf("repeat[%s]", task.Repeat)))
	}
	if !task.DueDate.IsZero() {
		parts = append(parts, s.meta.Render(fmt.Sprintf("<[%s:%s]", task.DueModifier, task.DueDate.Format(dueLayout))))
	}
	if !task.StartDate.IsZero() {
		parts = append(parts, s.meta.Render(fmt.Sprintf("startdate[%s]", task.StartDate.Format("01/02/2006"))))
	}
	if task.Status != domain.StatusNone {
		parts = append(parts, s.meta.Render(fmt.Sprintf("status[%s]", task.Status)))
	}
	if task.Star {
		parts = append(parts, s.starred.Render("starred"))
	}
	if task.Tag != "" {
		parts = append(parts, s.meta.Render(fmt.Sprintf("%%[%s]", task.Tag)))
	}
	if task.Parent != nil {
		parts = append(parts, s.meta.Render(fmt.Sprintf("parent[%s]", task.Parent.Title)))
	}
	if task.Length > 0 {
		parts = append(parts, s.meta.Render(fmt.Sprintf("length[%d]", task.Length)))
	}
	if task.Timer > 0 {
		parts = append(parts, s.meta.Render(fmt.Sprintf("timer[%d]", task.Timer)))
	}
	if task.Children > 0 {
		parts = append(parts, s.meta.Render(fmt.Sprintf("children[%d]", task.Children)))
	}

	parts = append(parts, s.title.Render(task.Title))
	line := strings.Join(parts, " ")

	if task.Note != "" {
		line += "\n" + s.note.Render("      "+task.Note)
	}
	return line
}

// FormatFolder renders a one-line folder listing entry.
func FormatFolder(folder *domain.Folder) string {
	s := newStyles()
	line := fmt.Sprintf("%s -- %s",
		s.id.Render(fmt.Sprintf("<%d>", folder.ID)),
		s.folder.Render(fmt.Sprintf("*[%s]", folder.Name)))
	if folder.Archived {
		line += " " + s.meta.Render("archived")
	}
	return line
}

// FormatContext renders a one-line context listing entry.
func FormatContext(context *domain.Context) string {
	s := newStyles()
	return fmt.Sprintf("%s -- %s",
		s.id.Render(fmt.Sprintf("<%d>", context.ID)),
		s.context.Render(fmt.Sprintf("@[%s]", context.Name)))
}

// FormatGoal renders a one-line goal listing entry, naming the goal it
// contributes to when there is one.
func FormatGoal(goal *domain.Goal) string {
	s := newStyles()
	line := fmt.Sprintf("%s -- %s",
		s.id.Render(fmt.Sprintf("<%d>", goal.ID)),
		s.goal.Render(fmt.Sprintf("^[%s]", goal.Name)))
	if goal.Contributes != nil && goal.Contributes != domain.NoGoal {
		line += " " + s.meta.Render(fmt.Sprintf("(contributes to: %s)", goal.Contributes.Name))
	}
	return line
}

package tasks

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wsargent/toodledo/internal/domain"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	list   []*domain.Task
	styles styles
	output string
}

func newModel(list []*domain.Task) model {
	return model{list: list, styles: newStyles()}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.list, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render lays out a task listing through a one-shot bubbletea program so
// styling resolves against the actual terminal profile.
func Render(list []*domain.Task) (string, error) {
	p := tea.NewProgram(
		newModel(list),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}
	return rendered.View(), nil
}

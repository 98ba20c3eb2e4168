package summary

import (
	"errors"
	"io"

	"github.com/bnema/workshop-sync/internal/application"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	view   func(styles) string
	styles styles
	output string
}

func newModel(view func(styles) string) model {
	return model{
		view:   view,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.view(m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// RenderReport renders the outcome of a sync run.
func RenderReport(report application.Report, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderReport(report, opts, s)
	})
}

// RenderPlan renders what a sync run would do.
func RenderPlan(planned []application.PlannedItem, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderPlan(planned, opts, s)
	})
}

func run(view func(styles) string) (string, error) {
	p := tea.NewProgram(
		newModel(view),
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

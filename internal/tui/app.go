// Package tui provides the interactive Bubble Tea ask shell for finsight.
package tui

import (
	"strings"

	"finsight/internal/cli"
	"finsight/internal/metrics"
	"finsight/internal/model"
	"finsight/internal/planner"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	appTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(cli.ColorAccent)
	labelStyle    = lipgloss.NewStyle().Foreground(cli.ColorTextMuted)
	errStyle      = lipgloss.NewStyle().Foreground(cli.ColorRed)
)

// App is the root Bubble Tea model: a question input above an answer pane.
type App struct {
	data   *model.Dataset
	input  textinput.Model
	answer string
	width  int
	height int
}

// New builds the app around an already-loaded dataset snapshot.
func New(data *model.Dataset) App {
	ti := textinput.New()
	ti.Placeholder = planner.SampleQuestions[0]
	ti.CharLimit = 200
	ti.Width = 70
	ti.Focus()

	return App{data: data, input: ti}
}

// Run starts the interactive shell and blocks until the user quits.
func Run(data *model.Dataset) error {
	p := tea.NewProgram(New(data), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit
		case "enter":
			a.answer = a.ask(a.input.Value())
			a.input.SetValue("")
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a App) View() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(appTitleStyle.Render("finsight"))
	b.WriteString(labelStyle.Render("  ask a finance question, esc to quit"))
	b.WriteString("\n\n  ")
	b.WriteString(a.input.View())
	b.WriteString("\n\n")
	if a.answer != "" {
		b.WriteString(a.answer)
	}
	return b.String()
}

func (a App) ask(question string) string {
	if strings.TrimSpace(question) == "" {
		return ""
	}

	intent := planner.Classify(question)
	if intent.Kind == model.IntentUnknown {
		var b strings.Builder
		b.WriteString(labelStyle.Render("  I don't understand that yet. Try:"))
		b.WriteString("\n")
		for _, q := range planner.SampleQuestions {
			b.WriteString(labelStyle.Render("    • " + q))
			b.WriteString("\n")
		}
		return b.String()
	}

	res, err := metrics.Run(intent, a.data)
	if err != nil {
		return errStyle.Render("  " + err.Error())
	}
	return cli.RenderResult(res)
}

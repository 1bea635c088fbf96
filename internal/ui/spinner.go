package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iiroan/blue/internal/platform"
)

// SpinnerModel shows a spinner while a blocking call runs.
type SpinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
}

// NewSpinner creates a new spinner with a message
func NewSpinner(message string) SpinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Current.Value.UnsetBold()
	return SpinnerModel{spinner: s, message: message}
}

func (m SpinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m SpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case finishedMsg:
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m SpinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return Current.Error.Render("✗ "+m.message+" failed") + "\n"
		}
		return ""
	}
	return m.spinner.View() + " " + m.message + "\n"
}

type finishedMsg struct{ err error }

// RunWithSpinner runs fn, drawing a spinner on stderr while it works. On a
// non-interactive terminal fn simply runs.
func RunWithSpinner(message string, fn func() error) error {
	if !platform.IsInteractiveTerminal() || CurrentPreferences.Dense {
		return fn()
	}

	p := tea.NewProgram(NewSpinner(message), tea.WithOutput(os.Stderr), tea.WithInput(nil))

	errChan := make(chan error, 1)
	go func() {
		err := fn()
		errChan <- err
		p.Send(finishedMsg{err: err})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("spinner error: %w", err)
	}
	return <-errChan
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vito/progrock"
)

const (
	statusRunning = "running"
	statusDone    = "done"
	statusFailed  = "failed"
	statusCached  = "cached"
)

// unitState is the rendered state of one pipeline phase or packaging stage.
type unitState struct {
	ID     string
	Name   string
	Status string
}

type styles struct {
	running lipgloss.Style
	done    lipgloss.Style
	failed  lipgloss.Style
	cached  lipgloss.Style
}

// Model is the Bubble Tea model behind the live progress view.
type Model struct {
	tape    TapeSource
	units   []unitState
	width   int
	height  int
	spinner spinner.Model
	styles  styles
}

// NewModel creates a new progress view reading from the given tape.
func NewModel(tape TapeSource) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))

	return &Model{
		tape:    tape,
		spinner: s,
		styles: styles{
			running: lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")),
			done:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			failed:  lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
			cached:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
}

// Init starts reading from the tape and ticking the spinner.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForTape(m.tape),
		m.spinner.Tick,
	)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case MsgTapeUpdate:
		m.apply(msg.Update)
		return m, WaitForTape(m.tape)
	case MsgTapeEnded:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) apply(update *progrock.StatusUpdate) {
	for _, v := range update.Vertexes {
		m.applyVertex(v)
	}
}

func (m *Model) applyVertex(v *progrock.Vertex) {
	for i, existing := range m.units {
		if existing.ID == v.Id {
			m.units[i].Status = vertexStatus(v)
			return
		}
	}
	m.units = append(m.units, unitState{
		ID:     v.Id,
		Name:   v.Name,
		Status: vertexStatus(v),
	})
}

func vertexStatus(v *progrock.Vertex) string {
	switch {
	case v.Cached:
		return statusCached
	case v.Completed == nil:
		return statusRunning
	case v.Error != nil:
		return statusFailed
	default:
		return statusDone
	}
}

// View renders one line per phase or stage, newest kept in view.
func (m *Model) View() string {
	var s strings.Builder

	start := 0
	if m.height > 0 && len(m.units) > m.height {
		start = len(m.units) - m.height
	}

	for _, u := range m.units[start:] {
		var icon string
		var style lipgloss.Style
		switch u.Status {
		case statusRunning:
			icon = m.spinner.View()
			style = m.styles.running
		case statusDone:
			icon = "✓"
			style = m.styles.done
		case statusFailed:
			icon = "✗"
			style = m.styles.failed
		default:
			icon = "≡"
			style = m.styles.cached
		}
		fmt.Fprintf(&s, "%s %s\n", style.Render(icon), u.Name)
	}

	return s.String()
}

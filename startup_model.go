package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/folio/internal/ui"
)

const loadingStep = 50 * time.Millisecond

type loadingTickMsg struct{}

// startupModel shows a short loading screen and then hands the terminal to
// the portfolio model.
type startupModel struct {
	next     ui.Model
	name     string
	duration time.Duration
	elapsed  time.Duration
	width    int
	height   int
	spinner  spinner.Model
	progress progress.Model
}

func newStartupModel(next ui.Model, name string, duration time.Duration) startupModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	p := progress.New(
		progress.WithScaledGradient("#4F46E5", "#A5B4FC"),
		progress.WithoutPercentage(),
	)

	return startupModel{
		next:     next,
		name:     name,
		duration: duration,
		spinner:  s,
		progress: p,
	}
}

func loadingTickCmd() tea.Cmd {
	return tea.Tick(loadingStep, func(time.Time) tea.Msg {
		return loadingTickMsg{}
	})
}

func (m startupModel) Init() tea.Cmd {
	if m.duration <= 0 {
		return func() tea.Msg { return loadingTickMsg{} }
	}
	return tea.Batch(m.spinner.Tick, loadingTickCmd())
}

func (m startupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := msg.Width - 8
		if barWidth < 20 {
			barWidth = 20
		}
		if barWidth > 60 {
			barWidth = 60
		}
		m.progress.Width = barWidth
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadingTickMsg:
		m.elapsed += loadingStep
		if m.elapsed >= m.duration {
			return m.handOver()
		}
		return m, loadingTickCmd()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
		return m.handOver()
	}

	return m, nil
}

// handOver swaps in the portfolio model and replays the last window size so
// it can lay itself out.
func (m startupModel) handOver() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.next.Init()}
	if m.width > 0 || m.height > 0 {
		w, h := m.width, m.height
		cmds = append(cmds, func() tea.Msg {
			return tea.WindowSizeMsg{Width: w, Height: h}
		})
	}
	return m.next, tea.Batch(cmds...)
}

func (m startupModel) percent() float64 {
	if m.duration <= 0 {
		return 1
	}
	return min(float64(m.elapsed)/float64(m.duration), 1)
}

func (m startupModel) View() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(startupHeaderStyle.Render(m.name))
	b.WriteString("\n\n  ")
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(startupStatusStyle.Render("Loading..."))
	b.WriteString("\n  ")
	b.WriteString(m.progress.ViewAs(m.percent()))
	b.WriteString("\n\n  ")
	b.WriteString(startupHelpStyle.Render("any key skip  ctrl+c quit"))
	b.WriteString("\n")
	return b.String()
}

var (
	startupHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})
	startupStatusStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})
	startupHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})
)

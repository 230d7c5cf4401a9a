// Package model contains the bubbletea models for the interactive screens.
package model

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jebstuart/TimeoutOverride/internal/cli/styles"
)

// Status is a point-in-time snapshot of the watchdog, safe to read off the
// scheduler goroutine.
type Status struct {
	Armed     bool
	Remaining time.Duration
	Timeout   time.Duration
	Resets    int
	KeepAwake bool
}

// Controller is the watch screen's handle on the watchdog. Implementations
// marshal every call onto the scheduler goroutine, so all methods are safe
// from the TUI goroutine.
type Controller interface {
	// Touch feeds a synthetic touch event through the window, resetting the
	// countdown the same way real input would.
	Touch()
	// Rearm restarts the countdown after expiry or cancel.
	Rearm()
	// Cancel stops the countdown and releases the keep-awake hold.
	Cancel()
	// Status blocks until the scheduler goroutine reports current state.
	Status() Status
}

// ExpiredMsg is delivered (via Program.Send) when the countdown runs out.
type ExpiredMsg struct{}

type tickMsg time.Time

type statusMsg Status

const statusInterval = 100 * time.Millisecond

// WatchModel renders the live countdown and translates key and mouse input
// into watchdog activity.
type WatchModel struct {
	ctrl    Controller
	theme   *styles.Theme
	bar     progress.Model
	status  Status
	expired bool
	width   int
}

// NewWatchModel creates the watch screen bound to ctrl.
func NewWatchModel(ctrl Controller) WatchModel {
	theme := styles.DefaultTheme()
	bar := progress.New(
		progress.WithGradient(string(theme.Good), string(theme.Warn)),
		progress.WithoutPercentage(),
	)

	return WatchModel{
		ctrl:  ctrl,
		theme: theme,
		bar:   bar,
		width: 60,
	}
}

func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.pollStatus, tickEvery())
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "t", " ":
			m.ctrl.Touch()
			m.expired = false
			return m, m.pollStatus
		case "r":
			m.ctrl.Rearm()
			m.expired = false
			return m, m.pollStatus
		case "c":
			m.ctrl.Cancel()
			return m, m.pollStatus
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			m.ctrl.Touch()
			m.expired = false
			return m, m.pollStatus
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 12
		if w > 60 {
			w = 60
		}
		if w > 0 {
			m.bar.Width = w
		}

	case tickMsg:
		return m, tea.Batch(m.pollStatus, tickEvery())

	case statusMsg:
		m.status = Status(msg)

	case ExpiredMsg:
		m.expired = true
		return m, m.pollStatus
	}

	return m, nil
}

func (m WatchModel) View() string {
	th := m.theme

	var badge string
	switch {
	case m.expired:
		badge = th.BadgeMuted.Render("EXPIRED")
	case m.status.Armed:
		badge = th.Badge.Render("AWAKE")
	default:
		badge = th.BadgeMuted.Render("IDLE")
	}

	frac := 0.0
	if m.status.Timeout > 0 {
		frac = float64(m.status.Remaining) / float64(m.status.Timeout)
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	remaining := m.status.Remaining.Truncate(100 * time.Millisecond)

	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center,
			th.Title.Render("timeout override"),
			"  ",
			badge,
		),
		"",
		th.Normal.Render(fmt.Sprintf("remaining  %s / %s", remaining, m.status.Timeout)),
		m.bar.ViewAs(frac),
		"",
		th.Subtle.Render(fmt.Sprintf("touches counted this cycle: %d", m.status.Resets)),
		"",
		m.helpView(),
	)

	return th.Box.Render(body) + "\n"
}

func (m WatchModel) helpView() string {
	th := m.theme
	pairs := []struct{ key, desc string }{
		{"click/t", "touch"},
		{"r", "re-arm"},
		{"c", "cancel"},
		{"q", "quit"},
	}

	out := ""
	for i, p := range pairs {
		if i > 0 {
			out += th.HelpDesc.Render("  ·  ")
		}
		out += th.HelpKey.Render(p.key) + th.HelpDesc.Render(" "+p.desc)
	}
	return out
}

func (m WatchModel) pollStatus() tea.Msg {
	return statusMsg(m.ctrl.Status())
}

func tickEvery() tea.Cmd {
	return tea.Tick(statusInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

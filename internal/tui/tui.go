// Package tui is a terminal analogue of the Push's own side display: a
// long-running bubbletea program, fed status snapshots from the main
// event loop over a channel, that mirrors the current menu page, the LCD's
// top line, and a meter of how many strings are currently sounding. It is
// entirely optional -- the instrument works identically with or without
// it running -- and never sees a raw MIDI message.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Status is one snapshot of orchestrator state the TUI mirrors.
type Status struct {
	InstrumentName string
	Page           string
	PlayMode       string
	ChannelMode    string
	HeldNotes      int
	MaxNotes       int
}

type statusMsg Status

// Model is the bubbletea model driving the status mirror.
type Model struct {
	program *tea.Program
	status  Status
	meter   progress.Model
	width   int
}

// New builds an idle Model; call Run to start it.
func New() *Model {
	m := progress.New(progress.WithDefaultGradient())
	m.Width = 40
	return &Model{meter: m}
}

// Run starts the bubbletea program and blocks until the user quits it
// (ctrl+c/q) or Quit is called. It does not own the process lifetime --
// the instrument keeps running against the controller regardless.
func (m *Model) Run() error {
	m.program = tea.NewProgram(m)
	_, err := m.program.Run()
	return err
}

// Push delivers a fresh status snapshot into the running program from
// any goroutine, the same channel/Send pattern the teacher's
// StartupProgressModel uses to report SuperCollider readiness from a
// background OSC listener.
func (m *Model) Push(s Status) {
	if m.program != nil {
		m.program.Send(statusMsg(s))
	}
}

// Quit asks the running program to exit.
func (m *Model) Quit() {
	if m.program != nil {
		m.program.Quit()
	}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.meter.Width = msg.Width - 10
		return m, nil

	case statusMsg:
		m.status = Status(msg)
		pct := 0.0
		if m.status.MaxNotes > 0 {
			pct = float64(m.status.HeldNotes) / float64(m.status.MaxNotes)
		}
		return m, m.meter.SetPercent(pct)

	case progress.FrameMsg:
		updated, cmd := m.meter.Update(msg)
		if pm, ok := updated.(progress.Model); ok {
			m.meter = pm
		}
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) View() string {
	profile := termenv.ColorProfile()
	title, _ := colorful.Hex("#00AEEF")
	heading := termenv.String(" pushpluck ").
		Foreground(profile.Color(title.Hex())).
		Bold().
		String()

	pageStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	lineStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	name := m.status.InstrumentName
	if name == "" {
		name = "(no instrument)"
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		heading,
		pageStyle.Render("Page: "+m.status.Page+"   Mode: "+m.status.PlayMode+"/"+m.status.ChannelMode),
		lineStyle.Render(name),
		m.meter.View(),
		lineStyle.Render("(q to quit the status display; the instrument keeps running)"),
	)
}

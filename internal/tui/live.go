package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/coastsim/internal/engines/coastline"
	"github.com/san-kum/coastsim/internal/engines/waves"
	"github.com/san-kum/coastsim/internal/experiment"
	"github.com/san-kum/coastsim/internal/viz"
)

const (
	graphHeight   = 16
	stepsPerFrame = 5
)

type TickMsg time.Time

// Model drives a coupled run a few steps per frame and renders the evolving
// shoreline.
type Model struct {
	run       *experiment.CoupledRun
	frameRate int
	step      int
	running   bool
	failed    error
	profile   []float64
}

func NewModel(run *experiment.CoupledRun, frameRate int) Model {
	if frameRate < 1 {
		frameRate = 30
	}
	return Model{
		run:       run,
		frameRate: frameRate,
		running:   true,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case TickMsg:
		if m.running && m.failed == nil {
			for i := 0; i < stepsPerFrame; i++ {
				if err := m.run.Driver.Step(m.step); err != nil {
					m.failed = err
					m.running = false
					break
				}
				m.step++
			}
			m.refreshProfile()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) refreshProfile() {
	vals, err := m.run.Coast.GetValue(coastline.VarShoreline, m.profile)
	if err != nil {
		return
	}
	m.profile = vals
}

func (m Model) View() string {
	header := viz.HeaderStyle.Render("coastsim live")

	status := viz.StatusRunning.Render("running")
	if m.failed != nil {
		status = viz.StatusPaused.Render(fmt.Sprintf("failed: %v", m.failed))
	} else if !m.running {
		status = viz.StatusPaused.Render("paused")
	}

	angle := 0.0
	if vals, err := m.run.Climate.GetValue(waves.VarAngle, nil); err == nil && len(vals) > 0 {
		angle = vals[0]
	}

	stats := viz.PanelStyle.Render(fmt.Sprintf(
		"%s\n%s%s\n%s%s\n%s%s",
		status,
		viz.LabelStyle.Render("step"), viz.ValueStyle.Render(fmt.Sprintf("%d", m.step)),
		viz.LabelStyle.Render("model time"), viz.ValueStyle.Render(fmt.Sprintf("%.0f", m.run.Coast.Time())),
		viz.LabelStyle.Render("wave angle (rad)"), viz.ValueStyle.Render(fmt.Sprintf("%+.3f", angle)),
	))

	graph := "(waiting for first frame)"
	if len(m.profile) > 0 {
		spacing := 0.0
		if v, ok := m.run.Coast.Var(coastline.VarShoreline); ok {
			if g, ok := m.run.Coast.Grid(v.Grid); ok && len(g.Spacing) > 0 {
				spacing = g.Spacing[0]
			}
		}
		graph = viz.PlotProfile(m.profile, spacing, graphHeight)
	}

	help := viz.HelpStyle.Render("space pause | q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, stats, graph, help)
}

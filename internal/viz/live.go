package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rigidsim/internal/particle"
	"github.com/san-kum/rigidsim/internal/sim"
)

const (
	historyCapacity = 300
	stepsPerFrame   = 5
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type TickMsg time.Time

// Model drives a stepper from a tick loop and renders the momentum
// drift history alongside a few scalar readouts.
type Model struct {
	stepper *sim.Stepper
	dt      float64
	running bool
	err     error
	drift   []float64
}

func NewModel(stepper *sim.Stepper, dt float64) Model {
	return Model{
		stepper: stepper,
		dt:      dt,
		running: true,
		drift:   make([]float64, 0, historyCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
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
		if m.running && m.err == nil {
			for i := 0; i < stepsPerFrame; i++ {
				if err := m.stepper.Step(m.dt); err != nil {
					m.err = err
					break
				}
			}
			m.drift = append(m.drift, m.totalMomentum())
			if len(m.drift) > historyCapacity {
				m.drift = m.drift[1:]
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("rigidsim live"))
	sb.WriteString("\n")

	sys := m.stepper.System()
	rows := [][2]string{
		{"time", fmt.Sprintf("%.3f", m.stepper.Time())},
		{"bodies", fmt.Sprintf("%d", sys.Mol.NMol())},
		{"particles", fmt.Sprintf("%d", sys.Snap.N)},
		{"force field", sys.Field.Name()},
	}
	for _, r := range rows {
		sb.WriteString(labelStyle.Render(r[0]))
		sb.WriteString(valueStyle.Render(r[1]))
		sb.WriteString("\n")
	}

	if len(m.drift) >= 2 {
		graph := asciigraph.Plot(m.drift,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("total momentum |p|"))
		sb.WriteString(graphStyle.Render(graph))
		sb.WriteString("\n")
	}

	if m.err != nil {
		sb.WriteString(errStyle.Render(fmt.Sprintf("error: %v", m.err)))
		sb.WriteString("\n")
	}

	state := "running"
	if !m.running {
		state = "paused"
	}
	sb.WriteString(helpStyle.Render(fmt.Sprintf("[%s]  space: pause  q: quit", state)))
	return sb.String()
}

func (m Model) totalMomentum() float64 {
	snap := m.stepper.System().Snap
	var p particle.Vec3
	for i := 0; i < snap.N; i++ {
		t := snap.Body[i]
		if t != particle.NoBody && snap.Tag[i] != t {
			continue
		}
		p = p.Add(snap.Vel[i].Scale(snap.Mass[i]))
	}
	return p.Norm()
}

// Run starts the live view and blocks until the user quits.
func Run(stepper *sim.Stepper, dt float64) error {
	p := tea.NewProgram(NewModel(stepper, dt))
	_, err := p.Run()
	return err
}

package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/nnkgw/long-range-attachments/internal/cloth"
	"github.com/nnkgw/long-range-attachments/internal/sim"
)

const (
	canvasWidth     = 72
	canvasHeight    = 26
	historyCapacity = 240
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	onStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	offStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model is the bubbletea program driving the live view. It owns the runner
// and steps it between renders; bubbletea serializes messages, so ticks and
// resets never interleave.
type Model struct {
	runner          *sim.Runner
	canvas          *Canvas
	camera          *Camera
	wire            Wireframe
	buf             cloth.Snapshot
	paused          bool
	showAttachments bool
	showHelp        bool
	stretchHistory  []float64
}

func NewModel(runner *sim.Runner) Model {
	return Model{
		runner:         runner,
		canvas:         NewCanvas(canvasWidth, canvasHeight),
		camera:         NewCamera(),
		stretchHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.runner.Reset()
			m.stretchHistory = m.stretchHistory[:0]
		case "l":
			p := m.runner.Params()
			p.LRA = !p.LRA
			m.runner.SetParams(p)
		case "a":
			m.showAttachments = !m.showAttachments
		case "]":
			m.adjustSlack(0.05)
		case "[":
			m.adjustSlack(-0.05)
		case "1":
			m.setIterations(1)
		case "2":
			m.setIterations(2)
		case "3":
			m.setIterations(5)
		case "4":
			m.setIterations(10)
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if !m.paused {
			m.runner.Tick()
			m.runner.Cloth().SnapshotInto(&m.buf)
			if len(m.stretchHistory) >= historyCapacity {
				m.stretchHistory = m.stretchHistory[1:]
			}
			m.stretchHistory = append(m.stretchHistory, maxAnchorRatio(m.buf))
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) adjustSlack(delta float64) {
	p := m.runner.Params()
	p.Slack += delta
	m.runner.SetParams(p) // clamps at 1.0
}

func (m *Model) setIterations(n int) {
	p := m.runner.Params()
	p.Iterations = n
	m.runner.SetParams(p)
}

func (m Model) View() string {
	m.runner.Cloth().SnapshotInto(&m.buf)

	m.canvas.Clear()
	ClothWireframe(&m.wire, m.buf, m.showAttachments && m.runner.Params().LRA)
	m.wire.Render(m.canvas, m.camera)

	stretch := maxAnchorRatio(m.buf)
	strain := maxEdgeStrain(m.buf)

	left := canvasStyle.Render(m.canvas.String())
	right := statsStyle.Render(m.statsView(stretch, strain))
	view := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	if m.showHelp {
		view += "\n" + helpStyle.Render(helpText)
	}
	return view
}

const helpText = `  space pause/resume   r reset   l toggle LRA   a show attachments
  [ / ] slack -/+0.05   1/2/3/4 iterations 1/2/5/10
  x/X y/Y z/Z rotate   +/- zoom   ? help   q quit`

func (m Model) statsView(stretch, strain float64) string {
	p := m.runner.Params()
	g := m.runner.Cloth().Grid()

	var b strings.Builder
	b.WriteString(headerStyle.Render("long range attachments"))
	b.WriteByte('\n')

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteByte('\n')
	}

	row("cloth", fmt.Sprintf("%dx%d @ %.3f", g.Width, g.Height, g.Spacing))
	row("time", fmt.Sprintf("%.2fs", m.runner.Time()))
	row("iterations", fmt.Sprintf("%d", p.Iterations))
	row("slack", fmt.Sprintf("%.2f", p.Slack))

	b.WriteString(labelStyle.Render("lra"))
	if p.LRA {
		b.WriteString(onStyle.Render("ON"))
	} else {
		b.WriteString(offStyle.Render("OFF"))
	}
	b.WriteByte('\n')

	row("stretch", fmt.Sprintf("%.3f", stretch))
	row("edge strain", fmt.Sprintf("%.4f", strain))

	if len(m.stretchHistory) > 2 {
		graph := asciigraph.Plot(m.stretchHistory,
			asciigraph.Height(6),
			asciigraph.Width(34),
			asciigraph.Caption("anchor stretch"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteByte('\n')
	}

	if m.paused {
		b.WriteString(offStyle.Render("\nPAUSED"))
	}
	b.WriteString(helpStyle.Render("\n? for keys"))
	return b.String()
}

func maxAnchorRatio(s cloth.Snapshot) float64 {
	max := 0.0
	for i, a := range s.Attached {
		if s.AttachMax[i] == 0 {
			continue
		}
		d := s.Positions[a[0]].Sub(s.Positions[a[1]]).Length()
		if r := d / s.AttachMax[i]; r > max {
			max = r
		}
	}
	return max
}

func maxEdgeStrain(s cloth.Snapshot) float64 {
	max := 0.0
	for i, e := range s.Edges {
		if s.EdgeRest[i] == 0 {
			continue
		}
		d := s.Positions[e[0]].Sub(s.Positions[e[1]]).Length()
		strain := d/s.EdgeRest[i] - 1
		if strain < 0 {
			strain = -strain
		}
		if strain > max {
			max = strain
		}
	}
	return max
}

// Run starts the live view over the given runner.
func Run(runner *sim.Runner) error {
	p := tea.NewProgram(NewModel(runner))
	_, err := p.Run()
	return err
}

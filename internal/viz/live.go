package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/qwave/internal/quantum"
	"github.com/san-kum/qwave/internal/render"
)

const (
	graphWidth      = 80
	graphHeight     = 18
	historyCapacity = 120
	maxStepsPerTick = 4096
)

type TickMsg time.Time

// Model animates a wave packet by stepping a propagator in place.
type Model struct {
	prop      *quantum.Propagator
	initial   quantum.WaveFunction
	psi       quantum.WaveFunction
	potential []float64
	period    float64
	label     string

	steps        int
	stepsPerTick int
	running      bool
	norms        []float64
	err          error
	fps          int
}

// NewModel returns a model starting from psi0. period is the reference time T
// used to display elapsed time; stepsPerTick is how many dt steps each redraw
// advances.
func NewModel(prop *quantum.Propagator, psi0 quantum.WaveFunction, potential []float64, period float64, stepsPerTick, fps int, label string) Model {
	if stepsPerTick < 1 {
		stepsPerTick = 1
	}
	if fps < 1 {
		fps = 30
	}
	return Model{
		prop:         prop,
		initial:      psi0.Clone(),
		psi:          psi0.Clone(),
		potential:    potential,
		period:       period,
		label:        label,
		stepsPerTick: stepsPerTick,
		running:      true,
		norms:        make([]float64, 0, historyCapacity),
		fps:          fps,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles keys and advances the packet on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.psi = m.initial.Clone()
			m.steps = 0
			m.norms = m.norms[:0]
			m.err = nil
		case "+", "=":
			m.stepsPerTick = min(m.stepsPerTick*2, maxStepsPerTick)
		case "-", "_":
			m.stepsPerTick = max(m.stepsPerTick/2, 1)
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) advance() {
	// psi may be shared with a previous copy of the model value.
	m.psi = m.psi.Clone()
	if err := m.prop.Advance(m.psi, m.stepsPerTick); err != nil {
		m.err = err
		return
	}
	m.steps += m.stepsPerTick

	m.norms = append(m.norms, m.psi.Norm())
	if len(m.norms) > historyCapacity {
		m.norms = m.norms[1:]
	}
}

// Elapsed returns the propagated time.
func (m Model) Elapsed() float64 {
	return float64(m.steps) * m.prop.Grid().Dt
}

func (m Model) View() string {
	density := m.psi.Density()
	graph := graphStyle.Render(render.ASCII(density, graphWidth, graphHeight, fmt.Sprintf("|psi|^2  %s", m.label)))

	status := statusRunning.Render("RUNNING")
	if !m.running {
		status = statusPaused.Render("PAUSED")
	}

	t := m.Elapsed()
	stats := lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("qwave live"),
		status,
		"",
		row("t", fmt.Sprintf("%.4f T", t/m.period)),
		row("steps", fmt.Sprintf("%d", m.steps)),
		row("steps/tick", fmt.Sprintf("%d", m.stepsPerTick)),
		row("norm", fmt.Sprintf("%.6f", m.psi.Norm())),
		row("max V", fmt.Sprintf("%.3g", maxOf(m.potential))),
		"",
		sparkline(m.norms, 30),
	)
	if m.err != nil {
		stats = lipgloss.JoinVertical(lipgloss.Left, stats, "", statusPaused.Render(m.err.Error()))
	}

	help := helpStyle.Render("space pause • r reset • +/- speed • q quit")
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, graph, statsStyle.Render(stats)),
		help,
	)
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

func maxOf(v []float64) float64 {
	m := 0.0
	for _, x := range v {
		m = max(m, x)
	}
	return m
}

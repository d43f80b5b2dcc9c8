package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/stosim/internal/solve"
)

const (
	width  = 80
	height = 18
)

type TickMsg time.Time

// Model replays a solved sample path in the terminal, advancing one
// retained point per frame. The full trajectory is computed up front;
// playback only reveals it, so pausing and restarting are exact.
type Model struct {
	sol       *solve.Solution
	modelName string
	component int
	head      int
	canvas    *Canvas
	lo, hi    float64
	running   bool
	fps       int
}

// NewModel prepares playback of component k of a finished run.
func NewModel(sol *solve.Solution, modelName string, component, fps int) Model {
	lo, hi := pathBounds(sol, component)
	if fps <= 0 {
		fps = 30
	}
	return Model{
		sol:       sol,
		modelName: modelName,
		component: component,
		head:      1,
		canvas:    NewCanvas(width, height),
		lo:        lo,
		hi:        hi,
		running:   true,
		fps:       fps,
	}
}

func pathBounds(sol *solve.Solution, k int) (lo, hi float64) {
	lo, hi = 0, 1
	for i, p := range sol.Timeseries {
		if k >= len(p.U) {
			continue
		}
		v := p.U[k]
		if i == 0 || v < lo {
			lo = v
		}
		if i == 0 || v > hi {
			hi = v
		}
	}
	return lo, hi
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.head = 1
		}
	case TickMsg:
		if m.running && m.head < len(m.sol.Timeseries) {
			m.head++
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	m.canvas.Clear()

	values := make([]float64, 0, m.head)
	for _, p := range m.sol.Timeseries[:m.head] {
		if m.component < len(p.U) {
			values = append(values, p.U[m.component])
		}
	}
	m.canvas.PlotSeries(values, m.lo, m.hi)

	status := runningStyle.Render("playing")
	if !m.running {
		status = pausedStyle.Render("paused")
	}

	var cur solve.Point
	if m.head > 0 {
		cur = m.sol.Timeseries[m.head-1]
	}

	var stats strings.Builder
	stats.WriteString(headerStyle.Render(m.modelName) + "\n")
	stats.WriteString(labelStyle.Render("status") + status + "\n")
	stats.WriteString(labelStyle.Render("t") + valueStyle.Render(fmt.Sprintf("%.4f", cur.T)) + "\n")
	if m.component < len(cur.U) {
		stats.WriteString(labelStyle.Render("u") + valueStyle.Render(fmt.Sprintf("%.6f", cur.U[m.component])) + "\n")
		stats.WriteString(labelStyle.Render("W") + valueStyle.Render(fmt.Sprintf("%.6f", cur.W[m.component])) + "\n")
	}
	stats.WriteString(labelStyle.Render("algorithm") + valueStyle.Render(string(m.sol.Algorithm)) + "\n")
	stats.WriteString(labelStyle.Render("accepted") + valueStyle.Render(fmt.Sprintf("%d", m.sol.AcceptedSteps)) + "\n")
	if m.sol.RejectedSteps > 0 {
		stats.WriteString(labelStyle.Render("rejected") + valueStyle.Render(fmt.Sprintf("%d", m.sol.RejectedSteps)) + "\n")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(stats.String()),
	)

	return body + "\n" + helpStyle.Render("space pause · r restart · q quit")
}

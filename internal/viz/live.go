package viz

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/physplay/internal/sim"
	"github.com/san-kum/physplay/internal/templates"
	"github.com/san-kum/physplay/internal/vmath"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	chartCapacity = 600
)

type TickMsg time.Time

// LiveOptions configures the live viewer.
type LiveOptions struct {
	Title  string
	Bounds vmath.Vec2
	// Dt is the simulated time advanced per tick.
	Dt float64
	// FPS is the tick rate of the viewer.
	FPS   float64
	Theme string
	// Reset reloads the hosted template. Nil disables the reset key.
	Reset func() error
	// ForceRadius sizes the cursor drawn for the interactive force.
	ForceRadius float64
}

// Model drives a sim.Manager from bubbletea ticks and renders its frames.
// Steps happen through Manager.Tick so the viewer shares the manager's lock
// with any other caller.
type Model struct {
	manager *sim.Manager
	opts    LiveOptions
	canvas  *Canvas
	theme   Theme

	frame    sim.Frame
	energy   []float64
	paused   bool
	halted   error
	status   string
	playHead int
	showHelp bool

	cursor  vmath.Vec2
	forceOn bool
	attract bool
	boxNext bool
}

func NewModel(m *sim.Manager, opts LiveOptions) Model {
	if opts.FPS <= 0 {
		opts.FPS = sim.DefaultTickRate
	}
	if opts.Dt <= 0 {
		opts.Dt = 1 / opts.FPS
	}
	model := Model{
		manager:  m,
		opts:     opts,
		canvas:   NewCanvas(defaultWidth/2+10, defaultHeight-4),
		theme:    GetTheme(opts.Theme),
		energy:   make([]float64, 0, chartCapacity),
		playHead: -1,
		cursor:   opts.Bounds.Scale(0.5),
	}
	if frame, err := m.Snapshot(); err == nil {
		model.frame = frame
	}
	return model
}

func (m Model) tick() tea.Cmd {
	period := time.Duration(float64(time.Second) / m.opts.FPS)
	return tea.Tick(period, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		if !m.paused && m.halted == nil && m.playHead == -1 {
			m.step()
		} else if !m.paused && m.playHead >= 0 {
			m.scrub(1)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.paused = !m.paused
	case "r":
		m.reset()
	case "[":
		m.scrub(-1)
	case "]":
		m.scrub(1)
	case "t":
		m.theme = NextTheme(m.theme.Name)
	case "?":
		m.showHelp = !m.showHelp
	case "up", "k":
		m.moveCursor(vmath.V(0, 1))
	case "down", "j":
		m.moveCursor(vmath.V(0, -1))
	case "left", "h":
		m.moveCursor(vmath.V(-1, 0))
	case "right", "l":
		m.moveCursor(vmath.V(1, 0))
	case "f":
		m.forceOn = !m.forceOn
		m.send(templates.EventInteractiveForce, templates.InteractiveForceEvent{
			Position: m.cursor.Vec2f(),
			Attract:  m.attract,
		})
		m.send(templates.EventInteractiveForceToggle, m.forceOn)
	case "a":
		m.attract = !m.attract
		m.send(templates.EventInteractiveForce, templates.InteractiveForceEvent{
			Position: m.cursor.Vec2f(),
			Attract:  m.attract,
		})
	case "b":
		shape := "circle"
		if m.boxNext {
			shape = "box"
		}
		m.boxNext = !m.boxNext
		m.send(templates.EventAddBody, templates.AddBodyEvent{Position: m.cursor, Shape: shape})
	}
	return m, nil
}

// step advances the manager one tick and records the frame.
func (m *Model) step() {
	frame, err := m.manager.Tick(m.opts.Dt)
	if err != nil {
		m.halted = err
		return
	}
	m.frame = frame
	if e, ok := m.manager.Metrics()["kinetic_energy"]; ok {
		m.energy = append(m.energy, e)
		if len(m.energy) > chartCapacity {
			m.energy = m.energy[1:]
		}
	}
}

// scrub moves the playback head through the manager's frame history.
// Moving past the newest frame returns to live stepping.
func (m *Model) scrub(dir int) {
	history := m.manager.History()
	if len(history) == 0 {
		return
	}
	if m.playHead == -1 {
		if dir > 0 {
			return
		}
		m.playHead = len(history) - 1
		m.paused = true
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(history) {
		m.playHead = -1
	}
}

func (m *Model) reset() {
	if m.opts.Reset == nil {
		return
	}
	if err := m.opts.Reset(); err != nil {
		m.status = err.Error()
		return
	}
	m.halted = nil
	m.playHead = -1
	m.energy = m.energy[:0]
	m.forceOn = false
	if frame, err := m.manager.Snapshot(); err == nil {
		m.frame = frame
	}
	m.status = "reset"
}

func (m *Model) moveCursor(dir vmath.Vec2) {
	step := max(m.opts.Bounds.X, m.opts.Bounds.Y) / 40
	p := m.cursor.Add(dir.Scale(step))
	p.X = min(max(p.X, 0), m.opts.Bounds.X)
	p.Y = min(max(p.Y, 0), m.opts.Bounds.Y)
	m.cursor = p
	if m.forceOn {
		m.send(templates.EventInteractiveForcePosition, m.cursor.Vec2f())
	}
}

// send forwards an event to the hosted template and keeps the outcome as
// the status line.
func (m *Model) send(name string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		m.status = err.Error()
		return
	}
	if err := m.manager.HandleEvent(name, data); err != nil {
		m.status = err.Error()
		return
	}
	m.status = name
}

// displayed returns the frame under the playback head.
func (m Model) displayed() sim.Frame {
	if m.playHead >= 0 {
		if history := m.manager.History(); m.playHead < len(history) {
			return history[m.playHead]
		}
	}
	return m.frame
}

func (m Model) View() string {
	frame := m.displayed()

	if frame.Snapshot != nil {
		if err := DrawSnapshot(m.canvas, frame.Snapshot, m.opts.Bounds, m.theme); err != nil {
			m.canvas.Clear()
		}
		if m.forceOn {
			DrawMarker(m.canvas, NewViewport(m.canvas, m.opts.Bounds), m.cursor, m.opts.ForceRadius, m.theme.Force)
		}
	}
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.opts.Title), m.theme.Primary, m.theme.Force))
	s.WriteString("\n\n")

	switch {
	case m.halted != nil:
		s.WriteString(StatusHalted.Render("HALTED"))
	case m.playHead >= 0:
		s.WriteString(StatusPaused.Render(fmt.Sprintf("REPLAY (%.2fs)", frame.Time-m.frame.Time)))
	case m.paused:
		s.WriteString(StatusPaused.Render("PAUSED"))
	default:
		s.WriteString(StatusRunning.Render("RUNNING"))
	}
	s.WriteString("\n\n")

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", frame.Time)) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d", frame.Step)) + "\n")

	metrics := m.manager.Metrics()
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.WriteString(MetricLabel.Inherit(labelStyle).Render(name) + MetricValue.Render(fmt.Sprintf("%.4g", metrics[name])) + "\n")
	}

	if m.forceOn {
		mode := "repel"
		if m.attract {
			mode = "attract"
		}
		s.WriteString(labelStyle.Render("Force") + valueStyle.Render(fmt.Sprintf("%s @ %.0f,%.0f", mode, m.cursor.X, m.cursor.Y)) + "\n")
	}
	if m.halted != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Warning).Render(m.halted.Error()) + "\n")
	} else if m.status != "" {
		s.WriteString("\n" + Subtle.Render(m.status) + "\n")
	}

	s.WriteString(helpStyle.Render(Separator(30) + "\nSP:Pause R:Reset Q:Quit\nF:Force A:Attract B:Body\nT:Theme [ ]:Replay ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))

	if m.showHelp {
		return headerStyle(m.theme).Render("KEYS") + "\n" + helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `  Space      pause or resume
  R          reload the template
  Q          quit
  Arrows/HJKL move the cursor
  F          toggle the interactive force at the cursor
  A          switch between attract and repel
  B          drop a body at the cursor
  [ ]        step back and forward through history
  T          cycle themes
  ?          toggle this help`

// RunLive runs the viewer until the user quits.
func RunLive(m *sim.Manager, opts LiveOptions) error {
	p := tea.NewProgram(NewModel(m, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

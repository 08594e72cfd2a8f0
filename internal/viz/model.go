package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/physlab/internal/anim"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/slider"
)

const (
	defaultCols     = 60
	defaultRows     = 8
	statsWidth      = 50
	historyCapacity = 300
)

type TickMsg time.Time

// control binds one slider to a scene parameter.
type control struct {
	name string
	rng  slider.Range
	get  func() float64
	set  func(float64)
}

// Model is the interactive diagram player. It owns the animator and drives
// it from tea.Tick at the configured interval.
type Model struct {
	anim     *anim.Animator
	title    string
	controls []control
	selected int
	canvas   *Canvas
	energy   []float64
	showHelp bool
}

func NewModel(a *anim.Animator, title string) Model {
	if title == "" {
		title = a.Scene().Name()
	}
	return Model{
		anim:     a,
		title:    title,
		controls: controlsFor(a.Scene()),
		canvas:   NewCanvas(defaultCols, defaultRows),
	}
}

func controlsFor(s anim.Scene) []control {
	switch sc := s.(type) {
	case *anim.CollisionScene:
		field := func(name string, rng slider.Range, ptr func(*anim.CollisionParams) *float64) control {
			return control{
				name: name,
				rng:  rng,
				get: func() float64 {
					p := sc.Params()
					return *ptr(&p)
				},
				set: func(v float64) {
					p := sc.Params()
					*ptr(&p) = v
					sc.Configure(p)
				},
			}
		}
		return []control{
			field("mass1", slider.Mass, func(p *anim.CollisionParams) *float64 { return &p.Mass1 }),
			field("velocity1", slider.Velocity, func(p *anim.CollisionParams) *float64 { return &p.Velocity1 }),
			field("mass2", slider.Mass, func(p *anim.CollisionParams) *float64 { return &p.Mass2 }),
			field("velocity2", slider.Velocity, func(p *anim.CollisionParams) *float64 { return &p.Velocity2 }),
		}
	case *anim.LightPulseScene:
		return []control{{
			name: "distance",
			rng:  slider.Distance,
			get:  func() float64 { return sc.Params().Distance },
			set:  func(v float64) { sc.Configure(anim.LightParams{Distance: v}) },
		}}
	}
	return nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.anim.Config().Interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Selected returns the name of the slider the arrow keys adjust.
func (m Model) Selected() string {
	if len(m.controls) == 0 {
		return ""
	}
	return m.controls[m.selected].name
}

// Value returns the current value of the named slider.
func (m Model) Value(name string) (float64, bool) {
	for _, c := range m.controls {
		if c.name == name {
			return c.get(), true
		}
	}
	return 0, false
}

func (m Model) Animator() *anim.Animator { return m.anim }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.anim.Toggle()
		case "r":
			m.anim.Reset()
			m.energy = m.energy[:0]
		case "tab":
			if len(m.controls) > 0 {
				m.selected = (m.selected + 1) % len(m.controls)
			}
		case "shift+tab":
			if len(m.controls) > 0 {
				m.selected = (m.selected + len(m.controls) - 1) % len(m.controls)
			}
		case "up", "k":
			m.nudge(1)
		case "down", "j":
			m.nudge(-1)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.canvas = NewCanvas(max(msg.Width-statsWidth, 20), defaultRows)
	case TickMsg:
		m.anim.Tick()
		if m.anim.State().Running {
			m.energy = append(m.energy, physics.TotalKineticEnergy(m.anim.Bodies()))
			if len(m.energy) > historyCapacity {
				m.energy = m.energy[len(m.energy)-historyCapacity:]
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// nudge moves the selected slider and restarts the run with the new value.
func (m *Model) nudge(steps int) {
	if len(m.controls) == 0 {
		return
	}
	c := m.controls[m.selected]
	running := m.anim.State().Running
	c.set(c.rng.Nudge(c.get(), steps))
	m.anim.Reset()
	m.energy = m.energy[:0]
	if running {
		m.anim.Start()
	}
}

func (m Model) View() string {
	bodies := m.anim.Bodies()
	st := m.anim.State()
	DrawFrame(m.canvas, bodies, m.anim.Scene().Bounds())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(PhaseBadge(st) + "\n\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", st.Elapsed)) + "\n")
	s.WriteString(labelStyle.Render("Momentum") + valueStyle.Render(fmt.Sprintf("%.2f kg·m/s", physics.TotalMomentum(bodies).X)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.2f J", physics.TotalKineticEnergy(bodies))) + "\n")

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\nSLIDERS\n")
	if len(m.controls) == 0 {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}
	for i, c := range m.controls {
		line := fmt.Sprintf("%-10s %s %4.1f %s", c.name, SliderBar(c.rng, c.get(), 10), c.get(), c.rng.Unit)
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.UnsetWidth().Render(line) + "\n")
		}
	}
	s.WriteString(helpStyle.Render("SP:Play/Pause R:Reset Q:Quit\nTab:Slider ↑↓:Adjust ?:Help"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.canvas.String()), statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + main
	}
	return main
}

const helpText = `
  Space    play / pause
  R        reset to the starting positions
  Tab      select the next slider
  Up/K     increase the selected slider one step
  Down/J   decrease the selected slider one step
  ?        toggle this help
  Q        quit
`

// Run plays the animator in the terminal until the user quits.
func Run(a *anim.Animator, title string) error {
	p := tea.NewProgram(NewModel(a, title), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

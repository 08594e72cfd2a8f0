package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/slider"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(44)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	phaseStyles = map[dynamo.Phase]lipgloss.Style{
		dynamo.Before: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ccff")),
		dynamo.During: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444")),
		dynamo.After:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88")),
	}
	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))

	sparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	sparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	sparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// PhaseBadge renders the phase name, or PAUSED when the animation is stopped.
func PhaseBadge(st dynamo.SimulationState) string {
	if !st.Running {
		return pausedStyle.Render("PAUSED " + strings.ToUpper(st.Phase.String()))
	}
	return phaseStyles[st.Phase].Render(strings.ToUpper(st.Phase.String()))
}

// SliderBar draws the position of v inside r as a fixed width bar.
func SliderBar(r slider.Range, v float64, width int) string {
	frac := 0.0
	if r.Max > r.Min {
		frac = (r.Clamp(v) - r.Min) / (r.Max - r.Min)
	}
	filled := int(frac*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

// Sparkline renders the newest width values with eighth-block characters.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for _, v := range values {
		norm := (v - lo) / rng
		c := string(chars[int(norm*float64(len(chars)-1))])
		switch {
		case norm > 0.7:
			b.WriteString(sparkHigh.Render(c))
		case norm > 0.3:
			b.WriteString(sparkMid.Render(c))
		default:
			b.WriteString(sparkLow.Render(c))
		}
	}
	return b.String()
}

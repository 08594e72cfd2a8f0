// Package slider models the range-limited inputs a learner adjusts on a
// diagram. Every value that reaches an animation passes through Clamp.
package slider

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
)

type Range struct {
	Name string
	Unit string
	Min  float64
	Max  float64
	Step float64
}

var (
	Mass     = Range{Name: "mass", Unit: "kg", Min: 1, Max: 6, Step: 0.5}
	Velocity = Range{Name: "velocity", Unit: "m/s", Min: -5, Max: 5, Step: 0.5}
	Distance = Range{Name: "distance", Unit: "m", Min: 2, Max: 9, Step: 0.5}
)

// Clamp limits v to [Min, Max] and snaps it to the nearest step from Min.
// NaN maps to Min.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) || v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	if r.Step <= 0 {
		return v
	}
	n := math.Round((v - r.Min) / r.Step)
	snapped := r.Min + n*r.Step
	if snapped > r.Max {
		snapped -= r.Step
	}
	return snapped
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Nudge moves v by a whole number of steps and clamps the result.
func (r Range) Nudge(v float64, steps int) float64 {
	return r.Clamp(r.Clamp(v) + float64(steps)*r.Step)
}

// Check returns ErrParameterBounds when v lies outside the range.
func (r Range) Check(v float64) error {
	if !r.Contains(v) {
		return fmt.Errorf("%s %.3g %s not in [%g, %g]: %w", r.Name, v, r.Unit, r.Min, r.Max, dynamo.ErrParameterBounds)
	}
	return nil
}

func (r Range) Label(v float64) string {
	return fmt.Sprintf("%s %.1f %s", r.Name, v, r.Unit)
}

// Values lists every position the slider can snap to, from Min to Max.
func (r Range) Values() []float64 {
	if r.Step <= 0 {
		return []float64{r.Min, r.Max}
	}
	n := int(math.Round((r.Max-r.Min)/r.Step)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = r.Min + float64(i)*r.Step
	}
	return out
}

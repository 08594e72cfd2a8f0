package metrics

import (
	"github.com/san-kum/physlab/internal/dynamo"
)

// Stability is the fraction of ticks where every body had a finite position
// and velocity. Anything below 1 means a slider combination blew up.
type Stability struct {
	name       string
	violations int
	samples    int
}

func NewStability() *Stability {
	return &Stability{name: "stability"}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(st dynamo.SimulationState, bodies []dynamo.Body) {
	s.samples++
	for _, b := range bodies {
		if !b.Position.IsValid() || !b.Velocity.IsValid() {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

package metrics

import (
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/physics"
)

// Momentum reports the x component of the total momentum at the latest tick.
type Momentum struct {
	name    string
	current float64
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(st dynamo.SimulationState, bodies []dynamo.Body) {
	m.current = physics.TotalMomentum(bodies).X
}

func (m *Momentum) Value() float64 { return m.current }
func (m *Momentum) Reset()         { m.current = 0 }

// MomentumDrift tracks the largest |p - p0| seen since the first tick.
type MomentumDrift struct {
	name     string
	initial  dynamo.Vec2
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (d *MomentumDrift) Name() string { return d.name }

func (d *MomentumDrift) Observe(st dynamo.SimulationState, bodies []dynamo.Body) {
	p := physics.TotalMomentum(bodies)
	if d.samples == 0 {
		d.initial = p
	}
	d.samples++
	d.maxDrift = math.Max(d.maxDrift, p.Dist(d.initial))
}

func (d *MomentumDrift) Value() float64 { return d.maxDrift }

func (d *MomentumDrift) Reset() {
	d.initial = dynamo.Vec2{}
	d.maxDrift = 0
	d.samples = 0
}

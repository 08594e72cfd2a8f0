package metrics

import (
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/physics"
)

// KineticEnergy reports the total kinetic energy at the latest tick.
type KineticEnergy struct {
	name    string
	current float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(st dynamo.SimulationState, bodies []dynamo.Body) {
	k.current = physics.TotalKineticEnergy(bodies)
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.current
}

func (k *KineticEnergy) Reset() {
	k.current = 0
	k.samples = 0
}

// EnergyLoss is the fraction of the first observed kinetic energy that has
// been lost since. Elastic runs stay at zero.
type EnergyLoss struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	samples       int
}

func NewEnergyLoss() *EnergyLoss {
	return &EnergyLoss{name: "energy_loss"}
}

func (e *EnergyLoss) Name() string { return e.name }

func (e *EnergyLoss) Observe(st dynamo.SimulationState, bodies []dynamo.Body) {
	energy := physics.TotalKineticEnergy(bodies)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.currentEnergy = energy
	e.samples++
}

func (e *EnergyLoss) Value() float64 {
	if e.samples == 0 || e.initialEnergy == 0 {
		return 0
	}
	loss := (e.initialEnergy - e.currentEnergy) / e.initialEnergy
	if math.Abs(loss) < 1e-12 {
		return 0
	}
	return loss
}

func (e *EnergyLoss) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.samples = 0
}

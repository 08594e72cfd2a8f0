package experiment

import (
	"github.com/san-kum/physlab/internal/anim"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/slider"
)

// SweepPoint is the closed-form outcome for one slider combination.
type SweepPoint struct {
	Params        anim.CollisionParams `json:"params"`
	After1        float64              `json:"after1"`
	After2        float64              `json:"after2"`
	MomentumDrift float64              `json:"momentumDrift"`
	EnergyLoss    float64              `json:"energyLoss"`
}

// Collides reports whether the balls actually approach each other.
func (p SweepPoint) Collides() bool {
	return p.Params.Velocity1 > p.Params.Velocity2
}

// Sweep evaluates every mass and velocity combination the sliders allow.
func Sweep(kind anim.Kind) []SweepPoint {
	masses := slider.Mass.Values()
	vels := slider.Velocity.Values()

	var grid []anim.CollisionParams
	for _, m1 := range masses {
		for _, v1 := range vels {
			for _, m2 := range masses {
				for _, v2 := range vels {
					grid = append(grid, anim.CollisionParams{Mass1: m1, Velocity1: v1, Mass2: m2, Velocity2: v2})
				}
			}
		}
	}

	out := make([]SweepPoint, len(grid))
	dynamo.ParallelFor(len(grid), 512, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = evaluate(kind, grid[i])
		}
	})
	return out
}

func evaluate(kind anim.Kind, p anim.CollisionParams) SweepPoint {
	var u1, u2 float64
	if kind == anim.Inelastic {
		u1 = physics.PerfectlyInelastic(p.Mass1, p.Velocity1, p.Mass2, p.Velocity2)
		u2 = u1
	} else {
		u1, u2 = physics.ElasticCollision(p.Mass1, p.Velocity1, p.Mass2, p.Velocity2)
	}

	p0 := physics.Momentum(p.Mass1, p.Velocity1) + physics.Momentum(p.Mass2, p.Velocity2)
	p1 := physics.Momentum(p.Mass1, u1) + physics.Momentum(p.Mass2, u2)
	e0 := physics.KineticEnergy(p.Mass1, p.Velocity1) + physics.KineticEnergy(p.Mass2, p.Velocity2)
	e1 := physics.KineticEnergy(p.Mass1, u1) + physics.KineticEnergy(p.Mass2, u2)

	pt := SweepPoint{Params: p, After1: u1, After2: u2, MomentumDrift: p1 - p0}
	if e0 > 0 {
		pt.EnergyLoss = (e0 - e1) / e0
	}
	return pt
}

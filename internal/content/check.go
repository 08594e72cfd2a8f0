package content

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/physics"
)

const (
	KindElastic   = "elastic"
	KindInelastic = "inelastic"
	KindMomentum  = "momentum"
	KindField     = "field"
	KindLightTime = "light-time"
)

const defaultTolerance = 0.01

// Check describes how to recompute an example's answer. Tolerance is
// relative to the expected value, or absolute when the expected value is 0.
type Check struct {
	Kind      string             `yaml:"kind" json:"kind"`
	Inputs    map[string]float64 `yaml:"inputs" json:"inputs"`
	Expect    []float64          `yaml:"expect" json:"expect"`
	Tolerance float64            `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
}

func (c Check) input(name string) (float64, error) {
	v, ok := c.Inputs[name]
	if !ok {
		return 0, fmt.Errorf("%s check: missing input %q", c.Kind, name)
	}
	return v, nil
}

func (c Check) inputs(names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, n := range names {
		v, err := c.input(n)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Compute evaluates the check's formula.
func (c Check) Compute() ([]float64, error) {
	switch c.Kind {
	case KindElastic:
		in, err := c.inputs("m1", "v1", "m2", "v2")
		if err != nil {
			return nil, err
		}
		u1, u2 := physics.ElasticCollision(in[0], in[1], in[2], in[3])
		return []float64{u1, u2}, nil
	case KindInelastic:
		in, err := c.inputs("m1", "v1", "m2", "v2")
		if err != nil {
			return nil, err
		}
		return []float64{physics.PerfectlyInelastic(in[0], in[1], in[2], in[3])}, nil
	case KindMomentum:
		in, err := c.inputs("m", "v")
		if err != nil {
			return nil, err
		}
		return []float64{physics.Momentum(in[0], in[1])}, nil
	case KindField:
		in, err := c.inputs("q", "r")
		if err != nil {
			return nil, err
		}
		e := physics.ElectricField([]physics.PointCharge{{Q: in[0]}}, dynamo.V(in[1], 0))
		return []float64{e.Len()}, nil
	case KindLightTime:
		d, err := c.input("distance")
		if err != nil {
			return nil, err
		}
		speed, ok := c.Inputs["speed"]
		if !ok {
			speed = physics.SpeedOfLight
		}
		return []float64{physics.LightTravelTime(d, speed)}, nil
	}
	return nil, fmt.Errorf("unknown check kind %q", c.Kind)
}

// Verify recomputes the example's answer. Examples without a check pass.
func Verify(ex Example) error {
	if ex.Check == nil {
		return nil
	}
	c := *ex.Check
	got, err := c.Compute()
	if err != nil {
		return err
	}
	if len(got) != len(c.Expect) {
		return fmt.Errorf("%s: expected %d values, formula gives %d: %w", c.Kind, len(c.Expect), len(got), dynamo.ErrAnswerMismatch)
	}

	tol := c.Tolerance
	if tol <= 0 {
		tol = defaultTolerance
	}
	for i := range got {
		want := c.Expect[i]
		scale := math.Abs(want)
		if scale == 0 {
			scale = 1
		}
		if math.Abs(got[i]-want) > tol*scale {
			return fmt.Errorf("%s value %d: stored %g, formula gives %g: %w", c.Kind, i+1, want, got[i], dynamo.ErrAnswerMismatch)
		}
	}
	return nil
}

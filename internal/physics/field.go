package physics

import "github.com/san-kum/physlab/internal/dynamo"

// CoulombK is the electrostatic constant in N·m²/C².
const CoulombK = 8.99e9

type PointCharge struct {
	Q        float64     `yaml:"q" json:"q"`
	Position dynamo.Vec2 `yaml:"position" json:"position"`
}

// ElectricField returns the net field at a point. Charges sitting exactly
// on the point contribute nothing.
func ElectricField(charges []PointCharge, at dynamo.Vec2) dynamo.Vec2 {
	var e dynamo.Vec2
	for _, c := range charges {
		r := at.Sub(c.Position)
		d := r.Len()
		if d == 0 {
			continue
		}
		mag := CoulombK * c.Q / (d * d)
		e = e.Add(r.Scale(mag / d))
	}
	return e
}

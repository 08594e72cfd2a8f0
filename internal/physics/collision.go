package physics

import "github.com/san-kum/physlab/internal/dynamo"

// ElasticCollision returns the velocities of two bodies after a head-on
// elastic collision.
func ElasticCollision(m1, v1, m2, v2 float64) (float64, float64) {
	total := m1 + m2
	u1 := ((m1-m2)*v1 + 2*m2*v2) / total
	u2 := ((m2-m1)*v2 + 2*m1*v1) / total
	return u1, u2
}

// PerfectlyInelastic returns the common velocity of two bodies that stick
// together on impact.
func PerfectlyInelastic(m1, v1, m2, v2 float64) float64 {
	return (m1*v1 + m2*v2) / (m1 + m2)
}

// ElasticCollision2D resolves an elastic collision along the line of
// centres. Tangential components are unchanged.
func ElasticCollision2D(a, b dynamo.Body) (dynamo.Vec2, dynamo.Vec2) {
	n := b.Position.Sub(a.Position)
	d := n.Len()
	if d == 0 {
		return a.Velocity, b.Velocity
	}
	n = n.Scale(1 / d)

	va, vb := a.Velocity.Dot(n), b.Velocity.Dot(n)
	ua, ub := ElasticCollision(a.Mass, va, b.Mass, vb)

	return a.Velocity.Add(n.Scale(ua - va)), b.Velocity.Add(n.Scale(ub - vb))
}

func Momentum(m, v float64) float64 { return m * v }

func KineticEnergy(m, v float64) float64 { return 0.5 * m * v * v }

func TotalMomentum(bodies []dynamo.Body) dynamo.Vec2 {
	var p dynamo.Vec2
	for _, b := range bodies {
		p = p.Add(b.Momentum())
	}
	return p
}

func TotalKineticEnergy(bodies []dynamo.Body) float64 {
	e := 0.0
	for _, b := range bodies {
		e += b.KineticEnergy()
	}
	return e
}

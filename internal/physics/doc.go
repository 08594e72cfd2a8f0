// Package physics provides the closed-form formulas behind the lesson
// diagrams and worked examples.
//
//   - [ElasticCollision]: 1D elastic collision outcome
//   - [PerfectlyInelastic]: common velocity after a sticking collision
//   - [ElectricField]: vector sum of point-charge fields
//   - [LightTravelTime]: time of flight for a light pulse
//
// # Conservation
//
// Both collision formulas conserve momentum exactly (up to floating point
// rounding). The elastic one also conserves kinetic energy:
//
//	v1, v2 := physics.ElasticCollision(3, 2, 2, -1)
//	// v1 == -0.4, v2 == 2.6
package physics

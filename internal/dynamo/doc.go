// Package dynamo provides core primitives for the lesson diagrams.
//
// The package defines the shared value types every animated diagram works
// with:
//
//   - [Vec2]: 2D vector in metres (or m/s for velocities)
//   - [Body]: a moving body (ball, light pulse) with mass and radius
//   - [Phase]: before/during/after stage of one run
//   - [SimulationState]: clock, phase and running flag of one animation
//   - [Observer] and [Metric]: per-tick hooks used by the animator
//
// # Example
//
//	scene := anim.NewCollisionScene(anim.Elastic, params, 10)
//	a := anim.New(scene, anim.DefaultConfig())
//	a.Start()
//	for a.State().Phase != dynamo.After {
//	    a.Tick()
//	}
//
// # Thread Safety
//
// Values in this package are plain data. Animators that mutate them are
// NOT thread-safe; use anim.Player to drive one from its own goroutine.
package dynamo

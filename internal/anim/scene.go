package anim

import "github.com/san-kum/physlab/internal/dynamo"

// Scene is one toy simulation. Scenes are single-owner and are only
// touched by the animator that holds them.
type Scene interface {
	Name() string
	// Step moves every body by linear motion over dt seconds.
	Step(dt float64)
	// Impact reports whether the collision predicate holds.
	Impact() bool
	// Resolve freezes the bodies at contact and applies the post-impact
	// velocities. Called once per run.
	Resolve()
	// Cleared reports whether every body has left the view or come to rest.
	Cleared() bool
	// Reset restores the initial bodies.
	Reset()
	Bodies() []dynamo.Body
	// Bounds returns the visible track as [0, length] metres.
	Bounds() float64
}

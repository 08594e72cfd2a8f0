// Package anim drives the animated lesson diagrams.
//
// An [Animator] owns one [Scene] and its [dynamo.SimulationState]. Each
// call to [Animator.Tick] advances the clock by one interval and walks the
// phase machine:
//
//	before -(impact)-> during -(hold elapsed)-> after -(cleared + pause)-> before
//
// Transitions are computed by the pure [Transition] function; the animator
// only decides which event fired.
//
// A [Player] wraps an animator with its own cancellable ticker goroutine, so
// two diagrams on one page never share a clock.
package anim

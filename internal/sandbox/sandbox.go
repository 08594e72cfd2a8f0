// Package sandbox replays a collision diagram inside a box2d world so the
// closed-form outcome can be compared against an impulse solver.
package sandbox

import (
	"errors"
	"fmt"
	"math"

	"github.com/ByteArena/box2d"

	"github.com/san-kum/physlab/internal/anim"
	"github.com/san-kum/physlab/internal/physics"
)

var ErrNoContact = errors.New("sandbox: bodies never touched")

const (
	DefaultStep     = 1.0 / 60.0
	DefaultMaxSteps = 2000
	velocityIters   = 8
	positionIters   = 3
	initialGap      = 1.0
	settledSpeed    = 1e-3
)

type Options struct {
	Step     float64
	MaxSteps int
}

func (o Options) normalized() Options {
	if o.Step <= 0 {
		o.Step = DefaultStep
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = DefaultMaxSteps
	}
	return o
}

// Snapshot holds the 1D state of both balls along the track.
type Snapshot struct {
	Velocity1 float64 `json:"velocity1"`
	Velocity2 float64 `json:"velocity2"`
	Momentum  float64 `json:"momentum"`
	Energy    float64 `json:"energy"`
}

func snapshot(m1, v1, m2, v2 float64) Snapshot {
	return Snapshot{
		Velocity1: v1,
		Velocity2: v2,
		Momentum:  physics.Momentum(m1, v1) + physics.Momentum(m2, v2),
		Energy:    physics.KineticEnergy(m1, v1) + physics.KineticEnergy(m2, v2),
	}
}

type Report struct {
	Kind      string               `json:"kind"`
	Params    anim.CollisionParams `json:"params"`
	Before    Snapshot             `json:"before"`
	After     Snapshot             `json:"after"`
	Predicted Snapshot             `json:"predicted"`
	Steps     int                  `json:"steps"`
	Contacts  int                  `json:"contacts"`
	// BelowThreshold is set when the closing speed is under box2d's
	// restitution threshold, which makes every contact inelastic.
	BelowThreshold bool `json:"below_threshold"`
}

// MomentumError is the absolute drift of total momentum across the impact.
func (r Report) MomentumError() float64 { return math.Abs(r.After.Momentum - r.Before.Momentum) }

// VelocityError is the largest deviation from the closed-form velocities.
func (r Report) VelocityError() float64 {
	return math.Max(math.Abs(r.After.Velocity1-r.Predicted.Velocity1),
		math.Abs(r.After.Velocity2-r.Predicted.Velocity2))
}

func (r Report) String() string {
	return fmt.Sprintf("%s: v1 %.3f -> %.3f (want %.3f), v2 %.3f -> %.3f (want %.3f), p %.3f -> %.3f, KE %.3f -> %.3f",
		r.Kind, r.Before.Velocity1, r.After.Velocity1, r.Predicted.Velocity1,
		r.Before.Velocity2, r.After.Velocity2, r.Predicted.Velocity2,
		r.Before.Momentum, r.After.Momentum, r.Before.Energy, r.After.Energy)
}

type contactCounter struct {
	begun, ended int
}

func (c *contactCounter) BeginContact(box2d.B2ContactInterface) { c.begun++ }
func (c *contactCounter) EndContact(box2d.B2ContactInterface)   { c.ended++ }
func (c *contactCounter) PreSolve(box2d.B2ContactInterface, box2d.B2Manifold) {
}
func (c *contactCounter) PostSolve(box2d.B2ContactInterface, *box2d.B2ContactImpulse) {
}

func predict(kind anim.Kind, p anim.CollisionParams) Snapshot {
	if kind == anim.Inelastic {
		v := physics.PerfectlyInelastic(p.Mass1, p.Velocity1, p.Mass2, p.Velocity2)
		return snapshot(p.Mass1, v, p.Mass2, v)
	}
	v1, v2 := physics.ElasticCollision(p.Mass1, p.Velocity1, p.Mass2, p.Velocity2)
	return snapshot(p.Mass1, v1, p.Mass2, v2)
}

func addBall(world *box2d.B2World, x, mass, velocity, restitution float64) *box2d.B2Body {
	def := box2d.MakeB2BodyDef()
	def.Type = box2d.B2BodyType.B2_dynamicBody
	def.Position = box2d.MakeB2Vec2(x, 0)
	def.LinearVelocity = box2d.MakeB2Vec2(velocity, 0)
	def.FixedRotation = true
	def.AllowSleep = false
	body := world.CreateBody(&def)

	r := anim.RadiusForMass(mass)
	shape := box2d.MakeB2CircleShape()
	shape.M_radius = r

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &shape
	fd.Density = mass / (math.Pi * r * r)
	fd.Friction = 0
	fd.Restitution = restitution
	body.CreateFixtureFromDef(&fd)
	return body
}

// Run places both balls initialGap apart and steps the world until the first
// contact has been resolved.
func Run(kind anim.Kind, p anim.CollisionParams, opts Options) (Report, error) {
	p = p.Clamped()
	opts = opts.normalized()

	rep := Report{
		Kind:           kind.String(),
		Params:         p,
		Predicted:      predict(kind, p),
		BelowThreshold: p.Velocity1-p.Velocity2 < box2d.B2_velocityThreshold,
	}
	if p.Velocity1 <= p.Velocity2 {
		return rep, ErrNoContact
	}

	restitution := 1.0
	if kind == anim.Inelastic {
		restitution = 0
	}

	world := box2d.MakeB2World(box2d.MakeB2Vec2(0, 0))
	counter := &contactCounter{}
	world.SetContactListener(counter)

	r1, r2 := anim.RadiusForMass(p.Mass1), anim.RadiusForMass(p.Mass2)
	a := addBall(&world, -initialGap/2-r1, p.Mass1, p.Velocity1, restitution)
	b := addBall(&world, initialGap/2+r2, p.Mass2, p.Velocity2, restitution)

	ma, mb := a.GetMass(), b.GetMass()
	rep.Before = snapshot(ma, a.GetLinearVelocity().X, mb, b.GetLinearVelocity().X)

	for rep.Steps < opts.MaxSteps {
		world.Step(opts.Step, velocityIters, positionIters)
		rep.Steps++
		if counter.begun == 0 {
			continue
		}
		closing := a.GetLinearVelocity().X - b.GetLinearVelocity().X
		if counter.ended > 0 || closing <= settledSpeed {
			break
		}
	}
	rep.Contacts = counter.begun
	rep.After = snapshot(ma, a.GetLinearVelocity().X, mb, b.GetLinearVelocity().X)
	if counter.begun == 0 {
		return rep, ErrNoContact
	}
	return rep, nil
}

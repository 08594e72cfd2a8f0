package anim

import (
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/slider"
)

type Kind uint8

const (
	Elastic Kind = iota
	Inelastic
)

func (k Kind) String() string {
	if k == Inelastic {
		return "inelastic"
	}
	return "elastic"
}

const (
	DefaultTrackLength = 10.0
	startOffset        = 2.0
	restSpeed          = 1e-9
)

type CollisionParams struct {
	Mass1     float64 `json:"mass1" yaml:"mass1" mapstructure:"mass1" validate:"gte=1,lte=6"`
	Velocity1 float64 `json:"velocity1" yaml:"velocity1" mapstructure:"velocity1" validate:"gte=-5,lte=5"`
	Mass2     float64 `json:"mass2" yaml:"mass2" mapstructure:"mass2" validate:"gte=1,lte=6"`
	Velocity2 float64 `json:"velocity2" yaml:"velocity2" mapstructure:"velocity2" validate:"gte=-5,lte=5"`
}

func DefaultCollisionParams() CollisionParams {
	return CollisionParams{Mass1: 3, Velocity1: 2, Mass2: 2, Velocity2: -1}
}

// Clamped returns p with every field limited to its slider range.
func (p CollisionParams) Clamped() CollisionParams {
	return CollisionParams{
		Mass1:     slider.Mass.Clamp(p.Mass1),
		Velocity1: slider.Velocity.Clamp(p.Velocity1),
		Mass2:     slider.Mass.Clamp(p.Mass2),
		Velocity2: slider.Velocity.Clamp(p.Velocity2),
	}
}

// RadiusForMass keeps heavier balls visibly larger.
func RadiusForMass(m float64) float64 {
	return 0.25 + 0.05*m
}

// CollisionScene is two balls approaching each other on a straight track.
type CollisionScene struct {
	kind    Kind
	params  CollisionParams
	track   float64
	bodies  []dynamo.Body
	initial []dynamo.Body
}

func NewCollisionScene(kind Kind, p CollisionParams, track float64) *CollisionScene {
	if track <= 2*startOffset {
		track = DefaultTrackLength
	}
	s := &CollisionScene{kind: kind, track: track}
	s.Configure(p)
	return s
}

// Configure applies new slider values and resets the bodies.
func (s *CollisionScene) Configure(p CollisionParams) {
	s.params = p.Clamped()
	s.initial = []dynamo.Body{
		{
			Label:    "ball1",
			Position: dynamo.V(startOffset, 0),
			Velocity: dynamo.V(s.params.Velocity1, 0),
			Mass:     s.params.Mass1,
			Radius:   RadiusForMass(s.params.Mass1),
		},
		{
			Label:    "ball2",
			Position: dynamo.V(s.track-startOffset, 0),
			Velocity: dynamo.V(s.params.Velocity2, 0),
			Mass:     s.params.Mass2,
			Radius:   RadiusForMass(s.params.Mass2),
		},
	}
	s.Reset()
}

func (s *CollisionScene) Params() CollisionParams { return s.params }
func (s *CollisionScene) Kind() Kind              { return s.kind }
func (s *CollisionScene) Bounds() float64         { return s.track }

func (s *CollisionScene) Name() string {
	return "collision-" + s.kind.String()
}

// Outcome returns the post-impact velocities the formulas predict.
func (s *CollisionScene) Outcome() (float64, float64) {
	p := s.params
	if s.kind == Inelastic {
		v := physics.PerfectlyInelastic(p.Mass1, p.Velocity1, p.Mass2, p.Velocity2)
		return v, v
	}
	return physics.ElasticCollision(p.Mass1, p.Velocity1, p.Mass2, p.Velocity2)
}

func (s *CollisionScene) Step(dt float64) {
	for i := range s.bodies {
		s.bodies[i] = s.bodies[i].Advance(dt)
	}
}

// gap is signed so a ball that tunnels past the other still registers.
func (s *CollisionScene) gap() float64 {
	a, b := s.bodies[0], s.bodies[1]
	return b.Position.X - a.Position.X - a.Radius - b.Radius
}

// Impact only fires while both balls are on screen; a chase that ends past
// the edge is never shown.
func (s *CollisionScene) Impact() bool {
	if s.outOfView(s.bodies[0]) || s.outOfView(s.bodies[1]) {
		return false
	}
	return s.gap() <= 0
}

func (s *CollisionScene) Resolve() {
	a, b := &s.bodies[0], &s.bodies[1]

	// Rewind both balls to the instant of contact.
	if closing := a.Velocity.X - b.Velocity.X; closing > 0 {
		back := -s.gap() / closing
		a.Position.X -= a.Velocity.X * back
		b.Position.X -= b.Velocity.X * back
	}

	u1, u2 := s.Outcome()
	a.Velocity = dynamo.V(u1, 0)
	b.Velocity = dynamo.V(u2, 0)
}

func (s *CollisionScene) Cleared() bool {
	for _, b := range s.bodies {
		if !s.outOfView(b) && math.Abs(b.Velocity.X) > restSpeed {
			return false
		}
	}
	return true
}

func (s *CollisionScene) outOfView(b dynamo.Body) bool {
	return b.Position.X+b.Radius < 0 || b.Position.X-b.Radius > s.track
}

func (s *CollisionScene) Reset() {
	s.bodies = dynamo.CloneBodies(s.initial)
}

func (s *CollisionScene) Bodies() []dynamo.Body {
	return dynamo.CloneBodies(s.bodies)
}

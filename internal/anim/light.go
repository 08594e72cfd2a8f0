package anim

import (
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/slider"
)

// PulseSpeed is the on-screen speed of light in track metres per second.
const PulseSpeed = 3.0

const pulseRadius = 0.1

type LightParams struct {
	Distance float64 `json:"distance" yaml:"distance" mapstructure:"distance" validate:"gte=2,lte=9"`
}

func DefaultLightParams() LightParams {
	return LightParams{Distance: 6}
}

// LightPulseScene sends a pulse from a source at the left edge to a mirror
// and back.
type LightPulseScene struct {
	params LightParams
	track  float64
	pulse  dynamo.Body
	mirror dynamo.Body
}

func NewLightPulseScene(p LightParams, track float64) *LightPulseScene {
	if track <= 0 {
		track = DefaultTrackLength
	}
	s := &LightPulseScene{track: track}
	s.Configure(p)
	return s
}

func (s *LightPulseScene) Configure(p LightParams) {
	s.params = LightParams{Distance: slider.Distance.Clamp(p.Distance)}
	if s.params.Distance > s.track {
		s.params.Distance = s.track
	}
	s.mirror = dynamo.Body{Label: "mirror", Position: dynamo.V(s.params.Distance, 0), Radius: 0.2}
	s.Reset()
}

func (s *LightPulseScene) Params() LightParams { return s.params }
func (s *LightPulseScene) Name() string        { return "light-pulse" }
func (s *LightPulseScene) Bounds() float64     { return s.track }

// RoundTrip is the on-screen time from emission back to the source.
func (s *LightPulseScene) RoundTrip() float64 {
	return 2 * s.params.Distance / PulseSpeed
}

func (s *LightPulseScene) Step(dt float64) {
	s.pulse = s.pulse.Advance(dt)
}

func (s *LightPulseScene) Impact() bool {
	return s.pulse.Velocity.X > 0 && s.pulse.Position.X+s.pulse.Radius >= s.mirror.Position.X
}

func (s *LightPulseScene) Resolve() {
	s.pulse.Position.X = s.mirror.Position.X - s.pulse.Radius
	s.pulse.Velocity = s.pulse.Velocity.Scale(-1)
}

func (s *LightPulseScene) Cleared() bool {
	return s.pulse.Position.X+s.pulse.Radius < 0
}

func (s *LightPulseScene) Reset() {
	s.pulse = dynamo.Body{
		Label:    "pulse",
		Position: dynamo.V(0, 0),
		Velocity: dynamo.V(PulseSpeed, 0),
		Radius:   pulseRadius,
	}
}

func (s *LightPulseScene) Bodies() []dynamo.Body {
	return []dynamo.Body{s.pulse, s.mirror}
}

package dynamo

import (
	"fmt"
	"math"
	"strings"
)

type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64  { return v.Sub(o).Len() }
func (v Vec2) IsValid() bool        { return isFinite(v.X) && isFinite(v.Y) }
func (v Vec2) String() string       { return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y) }
func (v Vec2) Near(o Vec2, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Body is one moving object in a diagram. Light pulses carry zero mass.
type Body struct {
	Label    string  `json:"label"`
	Position Vec2    `json:"position"`
	Velocity Vec2    `json:"velocity"`
	Mass     float64 `json:"mass"`
	Radius   float64 `json:"radius"`
}

// Advance moves the body by linear motion over dt.
func (b Body) Advance(dt float64) Body {
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	return b
}

func (b Body) Momentum() Vec2 { return b.Velocity.Scale(b.Mass) }

func (b Body) KineticEnergy() float64 {
	v := b.Velocity.Len()
	return 0.5 * b.Mass * v * v
}

func CloneBodies(bs []Body) []Body {
	c := make([]Body, len(bs))
	copy(c, bs)
	return c
}

type Phase uint8

const (
	Before Phase = iota
	During
	After
)

var phaseNames = [...]string{"before", "during", "after"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", p)
}

func ParsePhase(s string) (Phase, error) {
	for i, n := range phaseNames {
		if strings.EqualFold(s, n) {
			return Phase(i), nil
		}
	}
	return Before, fmt.Errorf("unknown phase %q", s)
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Phase) UnmarshalText(b []byte) error {
	v, err := ParsePhase(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// SimulationState is the per-animation clock record.
type SimulationState struct {
	Elapsed float64 `json:"elapsed"`
	Phase   Phase   `json:"phase"`
	Running bool    `json:"running"`
}

type Observer interface {
	OnTick(tick int, st SimulationState, bodies []Body)
}

type Metric interface {
	Name() string
	Observe(st SimulationState, bodies []Body)
	Value() float64
	Reset()
}

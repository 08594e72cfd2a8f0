package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/physlab/internal/anim"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/metrics"
)

const (
	CollisionElastic   = "collision-elastic"
	CollisionInelastic = "collision-inelastic"
	LightPulse         = "light-pulse"
)

// Params carries every slider value a diagram might read.
type Params struct {
	Collision anim.CollisionParams `json:"collision" yaml:"collision" mapstructure:"collision"`
	Light     anim.LightParams     `json:"light" yaml:"light" mapstructure:"light"`
	Track     float64              `json:"track" yaml:"track" mapstructure:"track"`
}

func DefaultParams() Params {
	return Params{
		Collision: anim.DefaultCollisionParams(),
		Light:     anim.DefaultLightParams(),
		Track:     anim.DefaultTrackLength,
	}
}

type Registry struct {
	scenes       map[string]func(Params) anim.Scene
	descriptions map[string]string
}

func NewRegistry() *Registry {
	r := &Registry{
		scenes:       make(map[string]func(Params) anim.Scene),
		descriptions: make(map[string]string),
	}

	r.register(CollisionElastic, "two balls bounce apart, kinetic energy conserved",
		func(p Params) anim.Scene { return anim.NewCollisionScene(anim.Elastic, p.Collision, p.Track) })
	r.register(CollisionInelastic, "two balls stick together and move as one",
		func(p Params) anim.Scene { return anim.NewCollisionScene(anim.Inelastic, p.Collision, p.Track) })
	r.register(LightPulse, "a light pulse travels to a mirror and back",
		func(p Params) anim.Scene { return anim.NewLightPulseScene(p.Light, p.Track) })

	return r
}

func (r *Registry) register(name, desc string, fn func(Params) anim.Scene) {
	r.scenes[name] = fn
	r.descriptions[name] = desc
}

func (r *Registry) Scene(name string, p Params) (anim.Scene, error) {
	fn, ok := r.scenes[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, dynamo.ErrUnknownDiagram)
	}
	return fn(p), nil
}

func (r *Registry) Describe(name string) string { return r.descriptions[name] }

func (r *Registry) Has(name string) bool {
	_, ok := r.scenes[name]
	return ok
}

// List returns the registered diagram names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(name string) []dynamo.Metric {
	ms := []dynamo.Metric{
		metrics.NewKineticEnergy(),
		metrics.NewStability(),
	}
	if name == LightPulse {
		return ms
	}
	return append(ms,
		metrics.NewMomentum(),
		metrics.NewMomentumDrift(),
		metrics.NewEnergyLoss(),
	)
}

package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/physlab/internal/anim"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/experiment"
)

// Presets are named slider settings per diagram.
var Presets = map[string]map[string]*experiment.Params{
	experiment.CollisionElastic: {
		"textbook": {
			Collision: anim.CollisionParams{Mass1: 3, Velocity1: 2, Mass2: 2, Velocity2: -1},
		},
		"equal-masses": {
			Collision: anim.CollisionParams{Mass1: 2, Velocity1: 3, Mass2: 2, Velocity2: 0},
		},
		"heavy-hits-light": {
			Collision: anim.CollisionParams{Mass1: 6, Velocity1: 2, Mass2: 1, Velocity2: 0},
		},
		"light-hits-heavy": {
			Collision: anim.CollisionParams{Mass1: 1, Velocity1: 3, Mass2: 6, Velocity2: 0},
		},
		"head-on": {
			Collision: anim.CollisionParams{Mass1: 2, Velocity1: 3, Mass2: 2, Velocity2: -3},
		},
	},
	experiment.CollisionInelastic: {
		"textbook": {
			Collision: anim.CollisionParams{Mass1: 3, Velocity1: 2, Mass2: 2, Velocity2: -1},
		},
		"rear-end": {
			Collision: anim.CollisionParams{Mass1: 4, Velocity1: 3, Mass2: 2, Velocity2: 1},
		},
		"standstill": {
			Collision: anim.CollisionParams{Mass1: 3, Velocity1: 2, Mass2: 2, Velocity2: -3},
		},
	},
	experiment.LightPulse: {
		"near": {Light: anim.LightParams{Distance: 3}},
		"far":  {Light: anim.LightParams{Distance: 9}},
	},
}

func GetPreset(diagram, preset string) *experiment.Params {
	diagramPresets, ok := Presets[diagram]
	if !ok {
		return nil
	}
	p, ok := diagramPresets[preset]
	if !ok {
		return nil
	}
	return p
}

func ListPresets(diagram string) []string {
	diagramPresets, ok := Presets[diagram]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(diagramPresets))
	for name := range diagramPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset switches the config to diagram and copies the preset's slider
// values over the matching section.
func (c *Config) ApplyPreset(diagram, preset string) error {
	p := GetPreset(diagram, preset)
	if p == nil {
		if _, ok := Presets[diagram]; !ok {
			return fmt.Errorf("%q: %w", diagram, dynamo.ErrUnknownDiagram)
		}
		return fmt.Errorf("unknown preset %q for %s", preset, diagram)
	}
	c.Diagram = diagram
	if diagram == experiment.LightPulse {
		c.Light = p.Light
	} else {
		c.Collision = p.Collision
	}
	return nil
}

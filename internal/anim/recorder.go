package anim

import (
	"fmt"

	"github.com/san-kum/physlab/internal/dynamo"
)

type Frame struct {
	Tick   int                    `json:"tick"`
	State  dynamo.SimulationState `json:"state"`
	Bodies []dynamo.Body          `json:"bodies"`
}

// Recorder keeps a tick trace. A positive limit keeps only the newest frames.
type Recorder struct {
	Frames []Frame
	limit  int
}

func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

func (r *Recorder) OnTick(tick int, st dynamo.SimulationState, bodies []dynamo.Body) {
	r.Frames = append(r.Frames, Frame{Tick: tick, State: st, Bodies: dynamo.CloneBodies(bodies)})
	if r.limit > 0 && len(r.Frames) > r.limit {
		r.Frames = r.Frames[len(r.Frames)-r.limit:]
	}
}

func (r *Recorder) Reset() { r.Frames = r.Frames[:0] }

func (r *Recorder) Phases() []dynamo.Phase {
	out := make([]dynamo.Phase, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f.State.Phase
	}
	return out
}

// Runs splits phases into single runs. A run ends when an after phase is
// followed by before.
func Runs(phases []dynamo.Phase) [][]dynamo.Phase {
	var runs [][]dynamo.Phase
	start := 0
	for i := 1; i < len(phases); i++ {
		if phases[i] == dynamo.Before && phases[i-1] == dynamo.After {
			runs = append(runs, phases[start:i])
			start = i
		}
	}
	if start < len(phases) {
		runs = append(runs, phases[start:])
	}
	return runs
}

// ValidateTrace checks that no run goes backwards through the phases or
// skips the during phase on its way to after.
func ValidateTrace(phases []dynamo.Phase) error {
	for n, run := range Runs(phases) {
		seenDuring := false
		for i, p := range run {
			if i > 0 && p < run[i-1] {
				return fmt.Errorf("run %d: %s after %s at step %d: %w", n, p, run[i-1], i, dynamo.ErrInvalidTransition)
			}
			if p == dynamo.During {
				seenDuring = true
			}
			if p == dynamo.After && !seenDuring {
				return fmt.Errorf("run %d: after without during at step %d: %w", n, i, dynamo.ErrInvalidTransition)
			}
		}
	}
	return nil
}

package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/physlab/internal/anim"
	"github.com/san-kum/physlab/internal/dynamo"
)

type Config struct {
	Diagram  string
	Params   Params
	Anim     anim.Config
	MaxTicks int
}

type Result struct {
	Diagram  string             `json:"diagram"`
	Params   Params             `json:"params"`
	Frames   []anim.Frame       `json:"-"`
	Metrics  map[string]float64 `json:"metrics"`
	Ticks    int                `json:"ticks"`
	Cycles   int                `json:"cycles"`
	Duration time.Duration      `json:"duration"`
}

type Experiment struct {
	cfg      Config
	animator *anim.Animator
	recorder *anim.Recorder
}

func New(cfg Config) *Experiment {
	if cfg.MaxTicks <= 0 {
		cfg.MaxTicks = 10000
	}
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(scene anim.Scene, metrics []dynamo.Metric) error {
	if scene == nil {
		return fmt.Errorf("experiment setup: nil scene")
	}
	cfg := e.cfg.Anim
	// Headless runs cover exactly one cycle.
	cfg.Loop = false
	e.animator = anim.New(scene, cfg)
	e.recorder = anim.NewRecorder(0)
	e.animator.AddObserver(e.recorder)
	for _, m := range metrics {
		e.animator.AddMetric(m)
	}
	return nil
}

// Run plays one full cycle without waiting on a wall clock. Metric values are
// captured on the last tick before the automatic reset clears them.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.animator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	start := time.Now()
	e.animator.Reset()
	e.animator.Start()

	res := &Result{Diagram: e.cfg.Diagram, Params: e.cfg.Params}
	for i := 0; i < e.cfg.MaxTicks; i++ {
		if i%256 == 0 {
			select {
			case <-ctx.Done():
				res.Frames, res.Ticks = e.recorder.Frames, e.animator.Ticks()
				return res, ctx.Err()
			default:
			}
		}

		before := e.animator.Metrics()
		e.animator.Tick()
		if e.animator.Cycles() > 0 {
			res.Metrics = before
			break
		}
		res.Metrics = e.animator.Metrics()
		if !e.animator.State().Running {
			break
		}
	}

	res.Frames = e.recorder.Frames
	res.Ticks = e.animator.Ticks()
	res.Cycles = e.animator.Cycles()
	res.Duration = time.Since(start)

	if err := e.animator.Err(); err != nil {
		return res, err
	}
	if err := anim.ValidateTrace(e.recorder.Phases()); err != nil {
		return res, err
	}
	return res, nil
}

func (e *Experiment) Animator() *anim.Animator { return e.animator }

package anim

import (
	"log/slog"
	"time"

	"github.com/san-kum/physlab/internal/dynamo"
)

type Config struct {
	// Interval is the wall time between ticks, 16-80ms in practice.
	Interval time.Duration
	// Dt is how many simulated seconds one tick moves the bodies.
	Dt float64
	// ImpactHold is how long motion stays frozen in the during phase.
	ImpactHold time.Duration
	// PauseWindow is the grace period after the bodies clear the view.
	PauseWindow time.Duration
	// Loop keeps the animation running after an automatic reset.
	Loop bool
}

func DefaultConfig() Config {
	return Config{
		Interval:    40 * time.Millisecond,
		Dt:          0.04,
		ImpactHold:  600 * time.Millisecond,
		PauseWindow: 5 * time.Second,
		Loop:        true,
	}
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Interval <= 0 {
		c.Interval = d.Interval
	}
	if c.Dt <= 0 {
		c.Dt = c.Interval.Seconds()
	}
	if c.ImpactHold < 0 {
		c.ImpactHold = 0
	}
	if c.PauseWindow < 0 {
		c.PauseWindow = 0
	}
	return c
}

// Animator advances one scene on a fixed cadence.
type Animator struct {
	scene     Scene
	cfg       Config
	state     dynamo.SimulationState
	ticks     int
	holdLeft  time.Duration
	pauseLeft time.Duration
	clearing  bool
	cycles    int
	err       error
	observers []dynamo.Observer
	metrics   []dynamo.Metric
	logger    *slog.Logger
}

func New(scene Scene, cfg Config) *Animator {
	return &Animator{
		scene:  scene,
		cfg:    cfg.normalized(),
		logger: slog.Default(),
	}
}

func (a *Animator) AddObserver(o dynamo.Observer) { a.observers = append(a.observers, o) }
func (a *Animator) AddMetric(m dynamo.Metric)     { a.metrics = append(a.metrics, m) }
func (a *Animator) SetLogger(l *slog.Logger)      { a.logger = l }

func (a *Animator) Scene() Scene                  { return a.scene }
func (a *Animator) Config() Config                { return a.cfg }
func (a *Animator) State() dynamo.SimulationState { return a.state }
func (a *Animator) Bodies() []dynamo.Body         { return a.scene.Bodies() }
func (a *Animator) Ticks() int                    { return a.ticks }

// Cycles counts automatic resets since the last manual one.
func (a *Animator) Cycles() int { return a.cycles }

// Err returns the first rejected transition, if any.
func (a *Animator) Err() error { return a.err }

func (a *Animator) Start()  { a.state.Running = true }
func (a *Animator) Pause()  { a.state.Running = false }
func (a *Animator) Toggle() { a.state.Running = !a.state.Running }

// Reset restores the initial bodies and zeroes the clock. It is a no-op on
// an animator that is already reset.
func (a *Animator) Reset() {
	a.scene.Reset()
	a.state = dynamo.SimulationState{Phase: dynamo.Before}
	a.ticks = 0
	a.holdLeft = 0
	a.pauseLeft = 0
	a.clearing = false
	a.cycles = 0
	a.err = nil
	for _, m := range a.metrics {
		m.Reset()
	}
}

// Tick advances the animation by one interval. It does nothing while paused.
func (a *Animator) Tick() {
	if !a.state.Running {
		return
	}

	a.ticks++
	a.state.Elapsed += a.cfg.Interval.Seconds()

	switch a.state.Phase {
	case dynamo.Before:
		if a.clearing {
			a.waitOutPause()
			break
		}
		a.scene.Step(a.cfg.Dt)
		if a.scene.Impact() {
			a.scene.Resolve()
			a.fire(EventImpact)
			a.holdLeft = a.cfg.ImpactHold
		} else if a.scene.Cleared() {
			a.beginPause()
		}
	case dynamo.During:
		a.holdLeft -= a.cfg.Interval
		if a.holdLeft <= 0 {
			a.fire(EventHoldElapsed)
		}
	case dynamo.After:
		if a.clearing {
			a.waitOutPause()
			break
		}
		a.scene.Step(a.cfg.Dt)
		if a.scene.Cleared() {
			a.beginPause()
		}
	}

	a.notify()
}

func (a *Animator) beginPause() {
	a.clearing = true
	a.pauseLeft = a.cfg.PauseWindow
}

func (a *Animator) waitOutPause() {
	a.pauseLeft -= a.cfg.Interval
	if a.pauseLeft > 0 {
		return
	}

	a.fire(EventCleared)
	a.scene.Reset()
	a.state.Elapsed = 0
	a.state.Running = a.cfg.Loop
	a.clearing = false
	a.cycles++
	for _, m := range a.metrics {
		m.Reset()
	}
}

func (a *Animator) fire(ev Event) {
	next, err := Transition(a.state.Phase, ev)
	if err != nil {
		if a.err == nil {
			a.err = &dynamo.TickError{Tick: a.ticks, Elapsed: a.state.Elapsed, Phase: a.state.Phase, Wrapped: err}
		}
		return
	}
	a.logger.Debug("phase change", "scene", a.scene.Name(), "event", ev.String(), "from", a.state.Phase.String(), "to", next.String(), "tick", a.ticks)
	a.state.Phase = next
}

func (a *Animator) notify() {
	bodies := a.scene.Bodies()
	for _, m := range a.metrics {
		m.Observe(a.state, bodies)
	}
	for _, o := range a.observers {
		o.OnTick(a.ticks, a.state, bodies)
	}
}

// Metrics returns the current value of every attached metric.
func (a *Animator) Metrics() map[string]float64 {
	out := make(map[string]float64, len(a.metrics))
	for _, m := range a.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// RunUntil ticks until stop returns true or limit ticks have passed. It
// returns the number of ticks taken. Used by headless runs and tests.
func (a *Animator) RunUntil(limit int, stop func(dynamo.SimulationState) bool) int {
	n := 0
	for n < limit {
		a.Tick()
		n++
		if stop != nil && stop(a.state) {
			break
		}
		if !a.state.Running {
			break
		}
	}
	return n
}

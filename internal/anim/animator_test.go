package anim

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/physlab/internal/dynamo"
)

const tol = 1e-9

func oneShot() Config {
	cfg := DefaultConfig()
	cfg.Loop = false
	return cfg
}

func contains(phases []dynamo.Phase, want dynamo.Phase) bool {
	for _, p := range phases {
		if p == want {
			return true
		}
	}
	return false
}

func TestAnimatorElasticCycle(t *testing.T) {
	scene := NewCollisionScene(Elastic, DefaultCollisionParams(), DefaultTrackLength)
	a := New(scene, oneShot())
	rec := NewRecorder(0)
	a.AddObserver(rec)

	a.Reset()
	a.Start()
	n := a.RunUntil(5000, nil)

	if a.State().Running {
		t.Fatalf("expected one-shot animation to stop, still running after %d ticks", n)
	}
	if a.Cycles() != 1 {
		t.Errorf("expected 1 cycle, got %d", a.Cycles())
	}
	if a.Err() != nil {
		t.Errorf("unexpected tick error: %v", a.Err())
	}
	if a.State().Phase != dynamo.Before {
		t.Errorf("expected before after auto-reset, got %s", a.State().Phase)
	}

	phases := rec.Phases()
	if err := ValidateTrace(phases); err != nil {
		t.Fatalf("trace invalid: %v", err)
	}
	for _, p := range []dynamo.Phase{dynamo.Before, dynamo.During, dynamo.After} {
		if !contains(phases, p) {
			t.Errorf("trace never entered %s", p)
		}
	}

	bodies := a.Bodies()
	if bodies[0].Position.X != startOffset || bodies[1].Position.X != DefaultTrackLength-startOffset {
		t.Errorf("bodies not restored after auto-reset: %v", bodies)
	}
}

func TestAnimatorImpactVelocities(t *testing.T) {
	scene := NewCollisionScene(Elastic, DefaultCollisionParams(), DefaultTrackLength)
	a := New(scene, oneShot())
	a.Start()
	a.RunUntil(1000, func(st dynamo.SimulationState) bool { return st.Phase == dynamo.During })

	if a.State().Phase != dynamo.During {
		t.Fatalf("expected during, got %s", a.State().Phase)
	}
	b := a.Bodies()
	if math.Abs(b[0].Velocity.X-(-0.4)) > tol || math.Abs(b[1].Velocity.X-2.6) > tol {
		t.Errorf("expected velocities -0.4 and 2.6, got %f and %f", b[0].Velocity.X, b[1].Velocity.X)
	}
	gap := b[1].Position.X - b[0].Position.X - b[0].Radius - b[1].Radius
	if math.Abs(gap) > 1e-6 {
		t.Errorf("expected balls in contact at impact, gap %g", gap)
	}
}

func TestAnimatorHoldsMotionDuringImpact(t *testing.T) {
	scene := NewCollisionScene(Elastic, DefaultCollisionParams(), DefaultTrackLength)
	cfg := oneShot()
	a := New(scene, cfg)
	a.Start()
	a.RunUntil(1000, func(st dynamo.SimulationState) bool { return st.Phase == dynamo.During })

	frozen := a.Bodies()
	held := 0
	for a.State().Phase == dynamo.During && held < 1000 {
		a.Tick()
		held++
		if a.State().Phase == dynamo.During && a.Bodies()[0].Position != frozen[0].Position {
			t.Fatal("bodies moved during impact hold")
		}
	}

	want := int(cfg.ImpactHold / cfg.Interval)
	if held != want {
		t.Errorf("expected hold of %d ticks, got %d", want, held)
	}
}

func TestAnimatorMomentumConserved(t *testing.T) {
	for _, kind := range []Kind{Elastic, Inelastic} {
		scene := NewCollisionScene(kind, DefaultCollisionParams(), DefaultTrackLength)
		a := New(scene, oneShot())
		rec := NewRecorder(0)
		a.AddObserver(rec)
		a.Start()
		a.RunUntil(5000, nil)

		for _, f := range rec.Frames {
			p := 0.0
			for _, b := range f.Bodies {
				p += b.Momentum().X
			}
			if math.Abs(p-4) > 1e-9 {
				t.Fatalf("%s: momentum %f at tick %d (%s)", kind, p, f.Tick, f.State.Phase)
			}
		}
	}
}

func TestAnimatorInelasticMovesTogether(t *testing.T) {
	scene := NewCollisionScene(Inelastic, DefaultCollisionParams(), DefaultTrackLength)
	a := New(scene, oneShot())
	a.Start()
	a.RunUntil(1000, func(st dynamo.SimulationState) bool { return st.Phase == dynamo.After })

	b := a.Bodies()
	if math.Abs(b[0].Velocity.X-0.8) > tol || math.Abs(b[1].Velocity.X-0.8) > tol {
		t.Errorf("expected common velocity 0.8, got %f and %f", b[0].Velocity.X, b[1].Velocity.X)
	}
}

func TestAnimatorResetIdempotent(t *testing.T) {
	scene := NewCollisionScene(Elastic, DefaultCollisionParams(), DefaultTrackLength)
	a := New(scene, DefaultConfig())
	a.Start()
	a.RunUntil(60, nil)

	a.Reset()
	st1, b1, ticks1 := a.State(), a.Bodies(), a.Ticks()
	a.Reset()
	st2, b2, ticks2 := a.State(), a.Bodies(), a.Ticks()

	if st1 != st2 || ticks1 != ticks2 {
		t.Errorf("second reset changed state: %+v/%d vs %+v/%d", st1, ticks1, st2, ticks2)
	}
	for i := range b1 {
		if b1[i] != b2[i] {
			t.Errorf("second reset changed body %d: %v vs %v", i, b1[i], b2[i])
		}
	}
	if st1.Running || st1.Phase != dynamo.Before || st1.Elapsed != 0 || ticks1 != 0 {
		t.Errorf("reset did not restore initial state: %+v ticks=%d", st1, ticks1)
	}
}

func TestAnimatorPausedTickIsNoop(t *testing.T) {
	scene := NewCollisionScene(Elastic, DefaultCollisionParams(), DefaultTrackLength)
	a := New(scene, DefaultConfig())
	before := a.Bodies()
	a.Tick()
	if a.Ticks() != 0 || a.Bodies()[0] != before[0] {
		t.Error("tick advanced a paused animator")
	}
}

func TestAnimatorNoCollisionClears(t *testing.T) {
	p := CollisionParams{Mass1: 2, Velocity1: -3, Mass2: 2, Velocity2: 3}
	a := New(NewCollisionScene(Elastic, p, DefaultTrackLength), oneShot())
	rec := NewRecorder(0)
	a.AddObserver(rec)
	a.Start()
	a.RunUntil(5000, nil)

	if a.Cycles() != 1 {
		t.Errorf("expected auto-reset after balls left, cycles=%d", a.Cycles())
	}
	if contains(rec.Phases(), dynamo.During) {
		t.Error("balls moving apart should never collide")
	}
}

func TestAnimatorRestingBallsClear(t *testing.T) {
	p := CollisionParams{Mass1: 2, Velocity1: 0, Mass2: 2, Velocity2: 0}
	cfg := oneShot()
	cfg.PauseWindow = 0
	a := New(NewCollisionScene(Elastic, p, DefaultTrackLength), cfg)
	a.Start()

	n := a.RunUntil(100, nil)
	if n != 2 {
		t.Errorf("expected resting balls to clear in 2 ticks, took %d", n)
	}
}

func TestAnimatorLoops(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PauseWindow = 200 * time.Millisecond
	a := New(NewCollisionScene(Elastic, DefaultCollisionParams(), DefaultTrackLength), cfg)
	rec := NewRecorder(0)
	a.AddObserver(rec)
	a.Start()

	a.RunUntil(10000, func(dynamo.SimulationState) bool { return a.Cycles() >= 2 })

	if a.Cycles() < 2 {
		t.Fatalf("expected the animation to loop, cycles=%d", a.Cycles())
	}
	if !a.State().Running {
		t.Error("looping animation stopped")
	}
	if err := ValidateTrace(rec.Phases()); err != nil {
		t.Errorf("looped trace invalid: %v", err)
	}
	if got := len(Runs(rec.Phases())); got < 2 {
		t.Errorf("expected at least 2 runs, got %d", got)
	}
}

func TestAnimatorLightPulse(t *testing.T) {
	scene := NewLightPulseScene(DefaultLightParams(), DefaultTrackLength)
	a := New(scene, oneShot())
	rec := NewRecorder(0)
	a.AddObserver(rec)
	a.Start()

	a.RunUntil(1000, func(st dynamo.SimulationState) bool { return st.Phase == dynamo.During })
	pulse := a.Bodies()[0]
	if pulse.Velocity.X != -PulseSpeed {
		t.Errorf("expected reflected pulse, velocity %f", pulse.Velocity.X)
	}
	if math.Abs(pulse.Position.X+pulse.Radius-6) > tol {
		t.Errorf("expected pulse at mirror, got %f", pulse.Position.X)
	}

	a.RunUntil(5000, nil)
	if a.Cycles() != 1 {
		t.Errorf("expected one round trip, cycles=%d", a.Cycles())
	}
	if err := ValidateTrace(rec.Phases()); err != nil {
		t.Error(err)
	}
	if math.Abs(scene.RoundTrip()-4) > tol {
		t.Errorf("expected round trip 4s, got %f", scene.RoundTrip())
	}
}

func TestValidateTraceRejects(t *testing.T) {
	tests := []struct {
		name   string
		phases []dynamo.Phase
	}{
		{"backwards", []dynamo.Phase{dynamo.Before, dynamo.During, dynamo.Before}},
		{"skipped during", []dynamo.Phase{dynamo.Before, dynamo.After}},
		{"second run skips during", []dynamo.Phase{dynamo.Before, dynamo.During, dynamo.After, dynamo.Before, dynamo.After}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTrace(tt.phases)
			if !errors.Is(err, dynamo.ErrInvalidTransition) {
				t.Errorf("expected ErrInvalidTransition, got %v", err)
			}
		})
	}
}

func TestRecorderLimit(t *testing.T) {
	rec := NewRecorder(3)
	for i := 1; i <= 5; i++ {
		rec.OnTick(i, dynamo.SimulationState{}, nil)
	}
	if len(rec.Frames) != 3 || rec.Frames[0].Tick != 3 {
		t.Errorf("expected newest 3 frames, got %+v", rec.Frames)
	}
}

func TestConfigNormalized(t *testing.T) {
	c := Config{Interval: 20 * time.Millisecond, ImpactHold: -1}.normalized()
	if c.Dt != 0.02 {
		t.Errorf("expected dt to follow interval, got %f", c.Dt)
	}
	if c.ImpactHold != 0 {
		t.Errorf("expected negative hold clamped, got %v", c.ImpactHold)
	}
	if (Config{}).normalized().Interval != DefaultConfig().Interval {
		t.Error("zero interval not defaulted")
	}
}

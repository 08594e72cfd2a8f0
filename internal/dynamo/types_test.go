package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestVec2_Arithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(4, 6)

	if got := a.Add(b); got != V(5, 8) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != V(3, 4) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2); got != V(2, 4) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := a.Dot(b); got != 16 {
		t.Errorf("Dot failed: got %v", got)
	}
	if got := b.Sub(a).Len(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Len failed: got %v", got)
	}
	if got := a.Dist(b); math.Abs(got-5) > 1e-12 {
		t.Errorf("Dist failed: got %v", got)
	}
}

func TestVec2_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec2
		valid bool
	}{
		{"zero", Vec2{}, true},
		{"normal", V(1, -2), true},
		{"with NaN", V(math.NaN(), 0), false},
		{"with +Inf", V(0, math.Inf(1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestBody_Advance(t *testing.T) {
	b := Body{Position: V(1, 0), Velocity: V(2, 0), Mass: 3}
	next := b.Advance(0.5)

	if next.Position != V(2, 0) {
		t.Errorf("expected position (2, 0), got %v", next.Position)
	}
	if b.Position != V(1, 0) {
		t.Error("Advance mutated the receiver")
	}
	if next.Momentum() != V(6, 0) {
		t.Errorf("expected momentum (6, 0), got %v", next.Momentum())
	}
	if next.KineticEnergy() != 6 {
		t.Errorf("expected kinetic energy 6, got %v", next.KineticEnergy())
	}
}

func TestPhase_RoundTrip(t *testing.T) {
	for _, p := range []Phase{Before, During, After} {
		got, err := ParsePhase(p.String())
		if err != nil {
			t.Fatalf("ParsePhase(%q) failed: %v", p.String(), err)
		}
		if got != p {
			t.Errorf("ParsePhase(%q) = %v, want %v", p.String(), got, p)
		}
	}

	if _, err := ParsePhase("sideways"); err == nil {
		t.Error("expected error for unknown phase")
	}
}

func TestTickError(t *testing.T) {
	err := &TickError{Tick: 12, Elapsed: 0.6, Phase: During, Wrapped: ErrInvalidTransition}
	expected := "tick 12 (t=0.600s, during): dynamo: invalid phase transition"
	if err.Error() != expected {
		t.Errorf("TickError.Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrInvalidTransition) {
		t.Error("TickError does not unwrap to its cause")
	}
}

func TestParallelFor(t *testing.T) {
	seen := make([]int, 100)
	ParallelFor(len(seen), 8, func(start, end int) {
		for i := start; i < end; i++ {
			seen[i]++
		}
	})

	for i, n := range seen {
		if n != 1 {
			t.Fatalf("index %d visited %d times", i, n)
		}
	}
}

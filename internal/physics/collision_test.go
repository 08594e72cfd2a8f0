package physics

import (
	"math"
	"testing"

	"github.com/san-kum/physlab/internal/dynamo"
)

const tol = 1e-9

func TestElasticCollision_TextbookExample(t *testing.T) {
	v1, v2 := ElasticCollision(3, 2, 2, -1)

	if math.Abs(v1-(-0.4)) > tol {
		t.Errorf("expected v1' = -0.4, got %f", v1)
	}
	if math.Abs(v2-2.6) > tol {
		t.Errorf("expected v2' = 2.6, got %f", v2)
	}
}

func TestElasticCollision_EqualMassesSwap(t *testing.T) {
	v1, v2 := ElasticCollision(2, 3, 2, -1)
	if math.Abs(v1+1) > tol || math.Abs(v2-3) > tol {
		t.Errorf("equal masses should swap velocities, got %f, %f", v1, v2)
	}
}

// Sweeps every mass and velocity the sliders allow.
func TestCollisions_ConserveMomentum(t *testing.T) {
	for m1 := 1.0; m1 <= 6; m1 += 0.5 {
		for m2 := 1.0; m2 <= 6; m2 += 0.5 {
			for v1 := -5.0; v1 <= 5; v1 += 0.5 {
				for v2 := -5.0; v2 <= 5; v2 += 0.5 {
					before := m1*v1 + m2*v2
					u1, u2 := ElasticCollision(m1, v1, m2, v2)
					if after := m1*u1 + m2*u2; math.Abs(after-before) > 1e-9 {
						t.Fatalf("elastic m1=%v v1=%v m2=%v v2=%v: momentum %v -> %v", m1, v1, m2, v2, before, after)
					}

					keBefore := KineticEnergy(m1, v1) + KineticEnergy(m2, v2)
					keAfter := KineticEnergy(m1, u1) + KineticEnergy(m2, u2)
					if math.Abs(keAfter-keBefore) > 1e-9 {
						t.Fatalf("elastic m1=%v v1=%v m2=%v v2=%v: energy %v -> %v", m1, v1, m2, v2, keBefore, keAfter)
					}

					v := PerfectlyInelastic(m1, v1, m2, v2)
					if after := (m1 + m2) * v; math.Abs(after-before) > 1e-9 {
						t.Fatalf("inelastic m1=%v v1=%v m2=%v v2=%v: momentum %v -> %v", m1, v1, m2, v2, before, after)
					}
				}
			}
		}
	}
}

func TestPerfectlyInelastic(t *testing.T) {
	tests := []struct {
		m1, v1, m2, v2 float64
		expected       float64
	}{
		{3, 2, 2, -1, 0.8},
		{1, 4, 1, 0, 2},
		{2, 1.5, 2, -1.5, 0},
		{6, 0, 1, -5, -5.0 / 7},
	}

	for _, tt := range tests {
		got := PerfectlyInelastic(tt.m1, tt.v1, tt.m2, tt.v2)
		want := (tt.m1*tt.v1 + tt.m2*tt.v2) / (tt.m1 + tt.m2)
		if math.Abs(got-want) > tol || math.Abs(got-tt.expected) > tol {
			t.Errorf("PerfectlyInelastic(%v, %v, %v, %v) = %v, want %v", tt.m1, tt.v1, tt.m2, tt.v2, got, tt.expected)
		}
	}
}

func TestElasticCollision2D_HeadOn(t *testing.T) {
	a := dynamo.Body{Position: dynamo.V(0, 0), Velocity: dynamo.V(2, 0), Mass: 3, Radius: 0.5}
	b := dynamo.Body{Position: dynamo.V(1, 0), Velocity: dynamo.V(-1, 0), Mass: 2, Radius: 0.5}

	va, vb := ElasticCollision2D(a, b)
	if !va.Near(dynamo.V(-0.4, 0), tol) || !vb.Near(dynamo.V(2.6, 0), tol) {
		t.Errorf("unexpected head-on result %v %v", va, vb)
	}
}

func TestElasticCollision2D_KeepsTangent(t *testing.T) {
	a := dynamo.Body{Position: dynamo.V(0, 0), Velocity: dynamo.V(1, 1), Mass: 1}
	b := dynamo.Body{Position: dynamo.V(1, 0), Velocity: dynamo.V(0, 0), Mass: 1}

	va, vb := ElasticCollision2D(a, b)
	if !va.Near(dynamo.V(0, 1), tol) || !vb.Near(dynamo.V(1, 0), tol) {
		t.Errorf("unexpected oblique result %v %v", va, vb)
	}

	before := TotalMomentum([]dynamo.Body{a, b})
	a.Velocity, b.Velocity = va, vb
	after := TotalMomentum([]dynamo.Body{a, b})
	if !before.Near(after, tol) {
		t.Errorf("momentum changed: %v -> %v", before, after)
	}
}

func TestTotals(t *testing.T) {
	bodies := []dynamo.Body{
		{Velocity: dynamo.V(2, 0), Mass: 3},
		{Velocity: dynamo.V(-1, 0), Mass: 2},
	}
	if p := TotalMomentum(bodies); !p.Near(dynamo.V(4, 0), tol) {
		t.Errorf("expected momentum (4, 0), got %v", p)
	}
	if e := TotalKineticEnergy(bodies); math.Abs(e-7) > tol {
		t.Errorf("expected kinetic energy 7, got %v", e)
	}
}

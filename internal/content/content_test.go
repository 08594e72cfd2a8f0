package content

import (
	"errors"
	"testing"

	"github.com/san-kum/physlab/internal/dynamo"
)

func TestPagerWraparound(t *testing.T) {
	p := NewPager(3)

	if got := p.Prev(); got != 2 {
		t.Errorf("prev from 0: expected 2, got %d", got)
	}
	if got := p.Next(); got != 0 {
		t.Errorf("next from last: expected 0, got %d", got)
	}

	seq := []int{1, 2, 0, 1}
	for i, want := range seq {
		if got := p.Next(); got != want {
			t.Errorf("step %d: expected %d, got %d", i, want, got)
		}
	}
}

func TestPagerEmpty(t *testing.T) {
	p := NewPager(0)
	if p.Next() != 0 || p.Prev() != 0 || p.Seek(5) != 0 {
		t.Error("empty pager moved")
	}
	if _, ok := p.Current(nil); ok {
		t.Error("empty pager returned an example")
	}
}

func TestPagerSeek(t *testing.T) {
	p := NewPager(4)
	tests := []struct{ in, want int }{
		{0, 0}, {3, 3}, {4, 0}, {-1, 3}, {9, 1},
	}
	for _, tt := range tests {
		if got := p.Seek(tt.in); got != tt.want {
			t.Errorf("Seek(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPagerCurrent(t *testing.T) {
	examples := []Example{{Question: "a"}, {Question: "b"}}
	p := NewPager(len(examples))
	p.Next()
	ex, ok := p.Current(examples)
	if !ok || ex.Question != "b" {
		t.Errorf("expected example b, got %+v", ex)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		check   *Check
		wantErr error
	}{
		{"no check", nil, nil},
		{"elastic textbook", &Check{Kind: KindElastic, Inputs: map[string]float64{"m1": 3, "v1": 2, "m2": 2, "v2": -1}, Expect: []float64{-0.4, 2.6}}, nil},
		{"elastic wrong answer", &Check{Kind: KindElastic, Inputs: map[string]float64{"m1": 3, "v1": 2, "m2": 2, "v2": -1}, Expect: []float64{0, 2.6}}, dynamo.ErrAnswerMismatch},
		{"inelastic", &Check{Kind: KindInelastic, Inputs: map[string]float64{"m1": 3, "v1": 2, "m2": 2, "v2": -1}, Expect: []float64{0.8}}, nil},
		{"momentum", &Check{Kind: KindMomentum, Inputs: map[string]float64{"m": 1500, "v": 20}, Expect: []float64{30000}}, nil},
		{"field rounded", &Check{Kind: KindField, Inputs: map[string]float64{"q": 2e-6, "r": 0.5}, Expect: []float64{7.2e4}}, nil},
		{"light time", &Check{Kind: KindLightTime, Inputs: map[string]float64{"distance": 3.84e8}, Expect: []float64{1.28}}, nil},
		{"value count", &Check{Kind: KindInelastic, Inputs: map[string]float64{"m1": 1, "v1": 1, "m2": 1, "v2": 1}, Expect: []float64{1, 1}}, dynamo.ErrAnswerMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(Example{Check: tt.check})
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestVerifyBadCheck(t *testing.T) {
	if err := Verify(Example{Check: &Check{Kind: "gravity"}}); err == nil {
		t.Error("expected unknown kind error")
	}
	if err := Verify(Example{Check: &Check{Kind: KindMomentum, Inputs: map[string]float64{"m": 1}}}); err == nil {
		t.Error("expected missing input error")
	}
}

func TestVerifyAll(t *testing.T) {
	bad := Example{Check: &Check{Kind: KindMomentum, Inputs: map[string]float64{"m": 2, "v": 3}, Expect: []float64{5}}}
	good := Example{Check: &Check{Kind: KindMomentum, Inputs: map[string]float64{"m": 2, "v": 3}, Expect: []float64{6}}}

	if err := VerifyAll([]Example{good, good}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := VerifyAll([]Example{good, bad, bad})
	if !errors.Is(err, dynamo.ErrAnswerMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
}

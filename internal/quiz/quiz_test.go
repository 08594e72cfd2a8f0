package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/physlab/internal/dynamo"
)

type fakeRunner struct {
	got     KnowledgeCheck
	score   float64
	results []Result
	err     error
}

func (f *fakeRunner) Run(ctx context.Context, kc KnowledgeCheck, done CompletionFunc) error {
	f.got = kc
	if f.err != nil {
		return f.err
	}
	done(f.score, f.results)
	return nil
}

func sampleCheck() KnowledgeCheck {
	return KnowledgeCheck{
		LessonPath: "physics/momentum/collisions",
		Questions: []Question{
			{Type: "multiple-choice", QuestionID: "elastic-ke", Title: "Kinetic energy in elastic collisions"},
		},
		Theme: "light",
	}
}

func TestLaunchDelegates(t *testing.T) {
	r := &fakeRunner{score: 0.5, results: []Result{{QuestionID: "elastic-ke", Correct: true, Points: 1}}}
	var gotScore float64
	var gotResults []Result

	err := Launch(context.Background(), r, sampleCheck().ForCourse("phys-101"), func(score float64, results []Result) {
		gotScore, gotResults = score, results
	})

	require.NoError(t, err)
	assert.Equal(t, "phys-101", r.got.CourseID)
	assert.Equal(t, 0.5, gotScore)
	assert.Len(t, gotResults, 1)
}

func TestLaunchValidation(t *testing.T) {
	tests := []struct {
		name  string
		check KnowledgeCheck
		field string
	}{
		{"missing course", sampleCheck(), "CourseID"},
		{"missing lesson path", func() KnowledgeCheck {
			kc := sampleCheck().ForCourse("c")
			kc.LessonPath = ""
			return kc
		}(), "LessonPath"},
		{"no questions", func() KnowledgeCheck {
			kc := sampleCheck().ForCourse("c")
			kc.Questions = nil
			return kc
		}(), "Questions"},
		{"question without id", func() KnowledgeCheck {
			kc := sampleCheck().ForCourse("c")
			kc.Questions = []Question{{Type: "multiple-choice"}}
			return kc
		}(), "QuestionID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRunner{}
			err := Launch(context.Background(), r, tt.check, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, dynamo.ErrInvalidCheck)
			assert.Contains(t, err.Error(), tt.field)
			assert.Empty(t, r.got.LessonPath, "runner should not be called")
		})
	}
}

func TestLaunchNilRunner(t *testing.T) {
	err := Launch(context.Background(), nil, sampleCheck().ForCourse("c"), nil)
	assert.ErrorIs(t, err, dynamo.ErrInvalidCheck)
}

func TestLaunchRunnerError(t *testing.T) {
	boom := errors.New("runner offline")
	err := Launch(context.Background(), &fakeRunner{err: boom}, sampleCheck().ForCourse("c"), nil)
	assert.ErrorIs(t, err, boom)
}

func TestForCourseCopies(t *testing.T) {
	base := sampleCheck()
	bound := base.ForCourse("c")
	bound.Questions[0].Title = "changed"
	assert.Equal(t, "Kinetic energy in elastic collisions", base.Questions[0].Title)
	assert.Empty(t, base.CourseID)
}

func TestChain(t *testing.T) {
	calls := 0
	fn := Chain(func(float64, []Result) { calls++ }, nil, func(float64, []Result) { calls++ })
	fn(1, nil)
	assert.Equal(t, 2, calls)
}

// Package quiz hands knowledge checks to an external quiz runner and relays
// its completion callback. Questions are never graded here.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/san-kum/physlab/internal/dynamo"
)

var validate = validator.New()

type Question struct {
	Type       string `yaml:"type" json:"type" validate:"required"`
	QuestionID string `yaml:"questionId" json:"questionId" validate:"required"`
	Title      string `yaml:"title" json:"title"`
}

type KnowledgeCheck struct {
	CourseID   string     `yaml:"courseId,omitempty" json:"courseId" validate:"required"`
	LessonPath string     `yaml:"lessonPath" json:"lessonPath" validate:"required"`
	Questions  []Question `yaml:"questions" json:"questions" validate:"required,min=1,dive"`
	Theme      string     `yaml:"theme,omitempty" json:"theme,omitempty"`
}

// ForCourse returns a copy bound to the given course.
func (kc KnowledgeCheck) ForCourse(courseID string) KnowledgeCheck {
	out := kc
	out.CourseID = courseID
	out.Questions = append([]Question(nil), kc.Questions...)
	return out
}

// Validate reports every missing field at once.
func (kc KnowledgeCheck) Validate() error {
	err := validate.Struct(kc)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("%s: %w", strings.Join(fields, ", "), dynamo.ErrInvalidCheck)
}

// Result is what the runner reports for one question.
type Result struct {
	QuestionID string  `json:"questionId" validate:"required"`
	Correct    bool    `json:"correct"`
	Points     float64 `json:"points"`
	Response   string  `json:"response,omitempty"`
}

type CompletionFunc func(score float64, results []Result)

// Runner delivers a knowledge check and calls done once the learner finishes.
type Runner interface {
	Run(ctx context.Context, kc KnowledgeCheck, done CompletionFunc) error
}

// Launch validates kc and passes it to the runner.
func Launch(ctx context.Context, r Runner, kc KnowledgeCheck, done CompletionFunc) error {
	if r == nil {
		return fmt.Errorf("no quiz runner: %w", dynamo.ErrInvalidCheck)
	}
	if err := kc.Validate(); err != nil {
		return err
	}
	if done == nil {
		done = func(float64, []Result) {}
	}
	if err := r.Run(ctx, kc, done); err != nil {
		return fmt.Errorf("run knowledge check %s: %w", kc.LessonPath, err)
	}
	return nil
}

// Chain fans one completion out to several listeners, skipping nil ones.
func Chain(fns ...CompletionFunc) CompletionFunc {
	return func(score float64, results []Result) {
		for _, fn := range fns {
			if fn != nil {
				fn(score, results)
			}
		}
	}
}

// Package lesson assembles a lesson page: the shell that wraps it, the
// accordion of content panels, and the catalog the lessons are loaded from.
package lesson

import (
	"fmt"
	"strings"

	"github.com/san-kum/physlab/internal/dynamo"
)

type Shell struct {
	LessonID string            `json:"lessonId"`
	Title    string            `json:"title"`
	Summary  string            `json:"summary,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type Course struct {
	CourseID string `json:"courseId"`
}

// Page is a shell mounted inside a course.
type Page struct {
	Shell
	Course Course `json:"course"`
}

// Mount binds the shell to a course. A nil course or blank course id is the
// one error a lesson page shows to the learner.
func (s Shell) Mount(c *Course) (*Page, error) {
	if c == nil || strings.TrimSpace(c.CourseID) == "" {
		return nil, fmt.Errorf("mount %s: %w", s.LessonID, dynamo.ErrMissingCourse)
	}
	return &Page{Shell: s, Course: *c}, nil
}

package lesson

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/physlab/internal/content"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/quiz"
)

//go:embed lessons/*.yaml
var builtin embed.FS

var validate = validator.New()

type Lesson struct {
	ID             string              `yaml:"id" json:"id" validate:"required"`
	Title          string              `yaml:"title" json:"title" validate:"required"`
	Order          int                 `yaml:"order" json:"order"`
	Summary        string              `yaml:"summary" json:"summary"`
	Metadata       map[string]string   `yaml:"metadata" json:"metadata,omitempty"`
	Sections       []Panel             `yaml:"sections" json:"sections" validate:"required,min=1,dive"`
	KnowledgeCheck quiz.KnowledgeCheck `yaml:"knowledgeCheck" json:"knowledgeCheck" validate:"-"`
}

func (l Lesson) Shell() Shell {
	return Shell{LessonID: l.ID, Title: l.Title, Summary: l.Summary, Metadata: l.Metadata}
}

// Examples gathers the worked examples of every section in order.
func (l Lesson) Examples() []content.Example {
	var out []content.Example
	for _, s := range l.Sections {
		out = append(out, s.Examples...)
	}
	return out
}

// Diagrams lists the diagram names used by the lesson without duplicates.
func (l Lesson) Diagrams() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range l.Sections {
		for _, d := range s.Diagrams {
			if !seen[d] {
				seen[d] = true
				out = append(out, d)
			}
		}
	}
	return out
}

func (l Lesson) Accordion() *Accordion {
	return NewAccordion(l.Sections, true)
}

type Catalog struct {
	lessons []Lesson
	byID    map[string]int
}

// DefaultCatalog loads the lessons compiled into the binary.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(builtin, "lessons")
}

// LoadCatalog reads every .yaml file under dir.
func LoadCatalog(fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read lessons: %w", err)
	}

	c := &Catalog{byID: make(map[string]int)}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		var l Lesson
		if err := yaml.Unmarshal(data, &l); err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
		if err := validate.Struct(l); err != nil {
			return nil, fmt.Errorf("invalid lesson %s: %w", e.Name(), err)
		}
		if _, dup := c.byID[l.ID]; dup {
			return nil, fmt.Errorf("duplicate lesson id %q in %s", l.ID, e.Name())
		}
		c.byID[l.ID] = len(c.lessons)
		c.lessons = append(c.lessons, l)
	}

	sort.SliceStable(c.lessons, func(i, j int) bool {
		if c.lessons[i].Order != c.lessons[j].Order {
			return c.lessons[i].Order < c.lessons[j].Order
		}
		return c.lessons[i].ID < c.lessons[j].ID
	})
	for i, l := range c.lessons {
		c.byID[l.ID] = i
	}
	return c, nil
}

func (c *Catalog) Lessons() []Lesson {
	return append([]Lesson(nil), c.lessons...)
}

func (c *Catalog) Lesson(id string) (Lesson, error) {
	i, ok := c.byID[id]
	if !ok {
		return Lesson{}, fmt.Errorf("%q: %w", id, dynamo.ErrUnknownLesson)
	}
	return c.lessons[i], nil
}

// Verify recomputes every worked example in the catalog.
func (c *Catalog) Verify() error {
	for _, l := range c.lessons {
		if err := content.VerifyAll(l.Examples()); err != nil {
			return fmt.Errorf("lesson %s: %w", l.ID, err)
		}
	}
	return nil
}

package lesson

import (
	"fmt"

	"github.com/san-kum/physlab/internal/content"
)

// Panel is one collapsible section of a lesson.
type Panel struct {
	Title    string            `yaml:"title" json:"title" validate:"required"`
	Value    string            `yaml:"value" json:"value" validate:"required"`
	Content  string            `yaml:"content" json:"content"`
	Examples []content.Example `yaml:"examples,omitempty" json:"examples,omitempty"`
	Diagrams []string          `yaml:"diagrams,omitempty" json:"diagrams,omitempty"`
}

// Accordion tracks which panels are expanded. With Multiple unset, opening
// a panel collapses the others.
type Accordion struct {
	Panels   []Panel
	Multiple bool
	// OnAskAI is called when the learner asks the assistant about a panel.
	OnAskAI func(Panel)

	open map[string]bool
}

func NewAccordion(panels []Panel, multiple bool) *Accordion {
	return &Accordion{Panels: panels, Multiple: multiple, open: make(map[string]bool)}
}

func (a *Accordion) Panel(value string) (Panel, bool) {
	for _, p := range a.Panels {
		if p.Value == value {
			return p, true
		}
	}
	return Panel{}, false
}

func (a *Accordion) IsOpen(value string) bool { return a.open[value] }

// Open expands a panel. Unknown values are ignored.
func (a *Accordion) Open(value string) {
	if _, ok := a.Panel(value); !ok {
		return
	}
	if !a.Multiple {
		clear(a.open)
	}
	a.open[value] = true
}

func (a *Accordion) Close(value string) { delete(a.open, value) }

// Toggle flips a panel and reports whether it is now open.
func (a *Accordion) Toggle(value string) bool {
	if a.open[value] {
		a.Close(value)
		return false
	}
	a.Open(value)
	return a.open[value]
}

// OpenValues lists expanded panels in display order.
func (a *Accordion) OpenValues() []string {
	var out []string
	for _, p := range a.Panels {
		if a.open[p.Value] {
			out = append(out, p.Value)
		}
	}
	return out
}

func (a *Accordion) AskAI(value string) error {
	p, ok := a.Panel(value)
	if !ok {
		return fmt.Errorf("no panel %q", value)
	}
	if a.OnAskAI != nil {
		a.OnAskAI(p)
	}
	return nil
}

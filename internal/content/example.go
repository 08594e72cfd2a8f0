// Package content holds the worked examples shown beside each diagram and
// the pager used to flip through them.
package content

import (
	"errors"
	"fmt"
)

// Example is one worked problem: given values, the governing equation, the
// substituted solution and the final answer. Examples are immutable.
type Example struct {
	Question string   `yaml:"question" json:"question"`
	Given    []string `yaml:"given" json:"given"`
	Equation string   `yaml:"equation" json:"equation"`
	Solution string   `yaml:"solution" json:"solution"`
	Answer   string   `yaml:"answer" json:"answer"`
	Check    *Check   `yaml:"check,omitempty" json:"check,omitempty"`
}

// VerifyAll checks every example and joins the failures.
func VerifyAll(examples []Example) error {
	var errs []error
	for i, ex := range examples {
		if err := Verify(ex); err != nil {
			errs = append(errs, fmt.Errorf("example %d: %w", i+1, err))
		}
	}
	return errors.Join(errs...)
}

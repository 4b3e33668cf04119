// Package backend provides the stepping strategies the evaluator can run on.
// This allows switching between the recursive stepper and the explicit
// work-stack stepper.
package backend

import (
	"fmt"

	"github.com/funvibe/funpi/internal/config"
	"github.com/funvibe/funpi/internal/evaluator"
	"github.com/funvibe/funpi/internal/term"
)

// Backend is the interface for execution backends
type Backend interface {
	evaluator.Stepper

	// Name returns the backend name for display
	Name() string
}

// New returns the backend registered under name. Both backends implement
// the same reduction relation.
func New(name string, subst term.Substituter) (Backend, error) {
	reducer := evaluator.Reducer{Subst: subst}
	switch name {
	case "", config.BackendStack:
		return NewStack(reducer), nil
	case config.BackendTree:
		return NewTreeWalk(reducer), nil
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}

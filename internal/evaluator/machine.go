package evaluator

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/funvibe/funpi/internal/term"
)

// ErrStepLimit is returned when a run exhausts its step budget.
var ErrStepLimit = errors.New("step limit exceeded")

// EvalFull steps e until no rule applies. It does not terminate on divergent
// terms.
func EvalFull(e term.Expr) term.Expr {
	for {
		next, ok := StackStep(e)
		if !ok {
			return e
		}
		e = next
	}
}

// Machine drives a Stepper to normal form under an optional budget.
type Machine struct {
	Stepper Stepper
	// MaxSteps bounds the number of steps. Zero means unbounded.
	MaxSteps int
	Logger   *slog.Logger
	// Trace, if set, is called after every step with the step number and
	// the new term.
	Trace func(step int, e term.Expr)
}

// Result is the outcome of a Machine run.
type Result struct {
	Normal term.Expr
	Steps  int
	// Stuck is set when the normal form is not a canonical value: a neutral
	// application or eliminator, or an ill-typed term such as Zero applied
	// to Zero.
	Stuck bool
}

func NewMachine(s Stepper, maxSteps int) *Machine {
	return &Machine{
		Stepper:  s,
		MaxSteps: maxSteps,
		Logger:   slog.New(slog.DiscardHandler),
	}
}

// Run reduces e to normal form. On ErrStepLimit the returned result holds the
// last term reached.
func (m *Machine) Run(e term.Expr) (Result, error) {
	stepper := m.Stepper
	if stepper == nil {
		stepper = DefaultReducer
	}
	logger := m.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	steps := 0
	for {
		next, ok := stepper.Step(e)
		if !ok {
			break
		}
		if m.MaxSteps > 0 && steps >= m.MaxSteps {
			logger.Warn("evaluation stopped", "steps", steps, "limit", m.MaxSteps)
			return Result{Normal: e, Steps: steps}, fmt.Errorf("%w: %d", ErrStepLimit, m.MaxSteps)
		}
		steps++
		e = next
		if m.Trace != nil {
			m.Trace(steps, e)
		}
	}

	res := Result{Normal: e, Steps: steps, Stuck: !IsCanonical(e)}
	logger.Debug("evaluation finished", "steps", steps, "stuck", res.Stuck)
	return res, nil
}

// IsCanonical reports whether a weak normal form is a value: a type former,
// a lambda, or a numeral built from Zero and Succ. Variables count as values
// since they may stand for any inhabitant of their type.
func IsCanonical(e term.Expr) bool {
	for {
		switch t := e.(type) {
		case term.Var, term.Star, term.Pi, term.Lambda, term.Nat, term.Zero:
			return true
		case term.Succ:
			e = t.N
		default:
			return false
		}
	}
}

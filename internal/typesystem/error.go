package typesystem

import (
	"errors"
	"fmt"

	"github.com/funvibe/funpi/internal/term"
)

// ErrIllTyped is matched by every type checking failure.
var ErrIllTyped = errors.New("ill-typed")

// UnboundVariableError indicates a variable missing from the context
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable: %s", e.Name)
}

func (e *UnboundVariableError) Is(target error) bool { return target == ErrIllTyped }

func NewUnboundVariableError(name string) *UnboundVariableError {
	return &UnboundVariableError{Name: name}
}

// NotAFunctionError indicates an application whose function position does
// not have a Pi type.
type NotAFunctionError struct {
	Func   term.Expr
	Actual term.Expr
}

func (e *NotAFunctionError) Error() string {
	return fmt.Sprintf("expected a function, %s has type %s", e.Func, e.Actual)
}

func (e *NotAFunctionError) Is(target error) bool { return target == ErrIllTyped }

func NewNotAFunctionError(fn, actual term.Expr) *NotAFunctionError {
	return &NotAFunctionError{Func: fn, Actual: actual}
}

// NotATypeError indicates a binder domain or Pi codomain that is not a type.
type NotATypeError struct {
	Expr   term.Expr
	Actual term.Expr
}

func (e *NotATypeError) Error() string {
	return fmt.Sprintf("expected a type, %s has type %s", e.Expr, e.Actual)
}

func (e *NotATypeError) Is(target error) bool { return target == ErrIllTyped }

func NewNotATypeError(expr, actual term.Expr) *NotATypeError {
	return &NotATypeError{Expr: expr, Actual: actual}
}

// Roles for TypeMismatchError.
const (
	RoleArgument  = "argument"
	RoleSuccessor = "successor"
	RoleBase      = "base"
	RoleStep      = "step"
	RoleTarget    = "target"
)

// TypeMismatchError indicates a subterm whose type differs from the one its
// position requires.
type TypeMismatchError struct {
	Role     string
	Expected term.Expr
	Actual   term.Expr
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Role, e.Expected, e.Actual)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrIllTyped }

func NewTypeMismatchError(role string, expected, actual term.Expr) *TypeMismatchError {
	return &TypeMismatchError{Role: role, Expected: expected, Actual: actual}
}

// MotiveError indicates an eliminator motive that is not Nat -> Star.
type MotiveError struct {
	Motive term.Expr
	Actual term.Expr
}

func (e *MotiveError) Error() string {
	return fmt.Sprintf("motive %s has type %s, expected Nat -> *", e.Motive, e.Actual)
}

func (e *MotiveError) Is(target error) bool { return target == ErrIllTyped }

func NewMotiveError(motive, actual term.Expr) *MotiveError {
	return &MotiveError{Motive: motive, Actual: actual}
}

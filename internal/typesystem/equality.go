package typesystem

import (
	"fmt"

	"github.com/funvibe/funpi/internal/config"
	"github.com/funvibe/funpi/internal/evaluator"
	"github.com/funvibe/funpi/internal/term"
)

// Equality decides whether two types are the same. The checker uses a
// single Equality for every comparison.
type Equality func(a, b term.Expr) bool

// Syntactic compares types as raw trees, binder names included.
func Syntactic(a, b term.Expr) bool {
	return term.Equal(a, b)
}

// Alpha compares types up to renaming of bound variables.
func Alpha(a, b term.Expr) bool {
	return term.AlphaEqual(a, b)
}

// Definitional normalizes both types, reducing under binders, and compares
// the results up to alpha-renaming. Types whose normalization exceeds limit
// steps are treated as different.
func Definitional(limit int) Equality {
	return func(a, b term.Expr) bool {
		if term.AlphaEqual(a, b) {
			return true
		}
		na, err := evaluator.Normalize(a, limit)
		if err != nil {
			return false
		}
		nb, err := evaluator.Normalize(b, limit)
		if err != nil {
			return false
		}
		return term.AlphaEqual(na, nb)
	}
}

// EqualityByName maps a configuration name to an Equality.
func EqualityByName(name string) (Equality, error) {
	switch name {
	case "", config.EqualitySyntactic:
		return Syntactic, nil
	case config.EqualityAlpha:
		return Alpha, nil
	case config.EqualityDefinitional:
		return Definitional(config.DefaultNormalizeSteps), nil
	}
	return nil, fmt.Errorf("unknown equality %q", name)
}

package evaluator

import (
	"errors"
	"testing"

	"github.com/funvibe/funpi/internal/prelude"
	"github.com/funvibe/funpi/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func omega() term.Expr {
	self := term.Lam("x", term.Nat{}, term.Apply(term.V("x"), term.V("x")))
	return term.Apply(self, self)
}

func TestStepRules(t *testing.T) {
	s := term.Lam("k", term.Nat{}, term.Lam("r", term.Nat{}, term.Succ{N: term.V("r")}))
	motive := prelude.ConstNat()

	tests := []struct {
		name string
		expr term.Expr
		want term.Expr // nil means normal form
	}{
		{
			"beta",
			term.Apply(term.Lam("x", term.Nat{}, term.Succ{N: term.V("x")}), term.Zero{}),
			term.Succ{N: term.Zero{}},
		},
		{
			"iota zero",
			term.Elim(motive, term.V("b"), s, term.Zero{}),
			term.V("b"),
		},
		{
			"iota succ unfolds one layer",
			term.Elim(motive, term.V("b"), s, term.Numeral(2)),
			term.Apply(s, term.Numeral(1), term.Elim(motive, term.V("b"), s, term.Numeral(1))),
		},
		{
			"function position first",
			term.Apply(term.Apply(term.Lam("x", term.Nat{}, term.V("x")), term.V("f")), term.Apply(term.Lam("y", term.Nat{}, term.V("y")), term.Zero{})),
			term.Apply(term.V("f"), term.Apply(term.Lam("y", term.Nat{}, term.V("y")), term.Zero{})),
		},
		{
			"argument when function is normal",
			term.Apply(term.V("f"), term.Apply(term.Lam("y", term.Nat{}, term.V("y")), term.Zero{})),
			term.Apply(term.V("f"), term.Zero{}),
		},
		{
			"under succ",
			term.Succ{N: term.Apply(term.Lam("y", term.Nat{}, term.V("y")), term.Zero{})},
			term.Succ{N: term.Zero{}},
		},
		{
			"eliminator target",
			term.Elim(motive, term.V("b"), s, term.Apply(term.Lam("y", term.Nat{}, term.V("y")), term.Zero{})),
			term.Elim(motive, term.V("b"), s, term.Zero{}),
		},
		{"variable", term.V("x"), nil},
		{"star", term.Star{}, nil},
		{"no reduction under lambda", term.Lam("x", term.Nat{}, term.Apply(term.Lam("y", term.Nat{}, term.V("y")), term.V("x"))), nil},
		{"no reduction under pi", term.Forall("n", term.Nat{}, term.Apply(motive, term.V("n"))), nil},
		{"neutral eliminator", term.Elim(motive, term.V("b"), s, term.V("m")), nil},
		{"stuck ill-typed application", term.Apply(term.Zero{}, term.Zero{}), nil},
	}

	steppers := map[string]func(term.Expr) (term.Expr, bool){
		"recursive": Step,
		"stack":     StackStep,
	}

	for _, tt := range tests {
		for name, step := range steppers {
			t.Run(tt.name+"/"+name, func(t *testing.T) {
				got, ok := step(tt.expr)
				if tt.want == nil {
					assert.False(t, ok, "unexpected step to %s", got)
					return
				}
				require.True(t, ok)
				assert.True(t, term.Equal(tt.want, got), "want %s, got %s", tt.want, got)
			})
		}
	}
}

func TestStepperAgreement(t *testing.T) {
	terms := []term.Expr{
		term.Apply(prelude.Add(), term.Numeral(2), term.Numeral(1)),
		term.Apply(prelude.Mul(), term.Numeral(2), term.Numeral(3)),
		term.Apply(prelude.Pred(), term.Numeral(4)),
		term.Apply(prelude.AddZeroRight(), term.Numeral(2)),
		term.Apply(prelude.Identity(), term.Nat{}, term.Numeral(3)),
	}

	for _, e := range terms {
		rec, stack := e, e
		for i := 0; i < 10000; i++ {
			r, rok := Step(rec)
			s, sok := StackStep(stack)
			require.Equal(t, rok, sok, "step %d of %s", i, e)
			if !rok {
				break
			}
			require.True(t, term.Equal(r, s), "step %d diverged:\n  %s\n  %s", i, r, s)
			rec, stack = r, s
		}
	}
}

func TestEvalFullArithmetic(t *testing.T) {
	tests := []struct {
		name string
		expr term.Expr
		want int
	}{
		{"2+1", term.Apply(prelude.Add(), term.Numeral(2), term.Numeral(1)), 3},
		{"0+0", term.Apply(prelude.Add(), term.Zero{}, term.Zero{}), 0},
		{"2*3", term.Apply(prelude.Mul(), term.Numeral(2), term.Numeral(3)), 6},
		{"pred 4", term.Apply(prelude.Pred(), term.Numeral(4)), 3},
		{"pred 0", term.Apply(prelude.Pred(), term.Zero{}), 0},
		{"id Nat 5", term.Apply(prelude.Identity(), term.Nat{}, term.Numeral(5)), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvalFull(tt.expr)
			n, ok := term.AsNumber(got)
			require.True(t, ok, "not a numeral: %s", got)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestTwoPlusOneIsThree(t *testing.T) {
	got := EvalFull(term.Apply(prelude.Add(), term.Succ{N: term.Succ{N: term.Zero{}}}, term.Succ{N: term.Zero{}}))
	assert.True(t, term.Equal(term.Succ{N: term.Succ{N: term.Succ{N: term.Zero{}}}}, got), "got %s", got)
}

func TestAddZeroRightEvaluates(t *testing.T) {
	got := EvalFull(term.Apply(prelude.AddZeroRight(), term.Numeral(2)))
	want := term.Lam(term.Anonymous, term.Apply(prelude.Add(), term.Numeral(2), term.Zero{}), term.Numeral(2))
	assert.True(t, term.Equal(want, got), "got %s", got)
}

func TestEvalFullIdempotent(t *testing.T) {
	terms := []term.Expr{
		term.Apply(prelude.Add(), term.Numeral(3), term.Numeral(2)),
		term.Apply(prelude.AddZeroRight(), term.Numeral(1)),
		term.Apply(term.Zero{}, term.Zero{}),
		term.Elim(prelude.ConstNat(), term.V("b"), term.V("s"), term.V("m")),
		prelude.Identity(),
	}
	for _, e := range terms {
		once := EvalFull(e)
		assert.True(t, term.Equal(once, EvalFull(once)), "not idempotent on %s", e)
	}
}

func TestDeepNumeral(t *testing.T) {
	const n = 2000
	got := EvalFull(term.Apply(prelude.Add(), term.Numeral(n), term.Numeral(1)))
	value, ok := term.AsNumber(got)
	require.True(t, ok)
	assert.Equal(t, n+1, value)
}

func TestCaptureDuringBeta(t *testing.T) {
	// (\x. \y. x) y
	e := term.Apply(term.Lam("x", term.Nat{}, term.Lam("y", term.Nat{}, term.V("x"))), term.V("y"))

	renamed, ok := Step(e)
	require.True(t, ok)
	assert.True(t, term.Equal(term.Lam("y'", term.Nat{}, term.V("y")), renamed), "got %s", renamed)

	skip := Reducer{Subst: term.Substituter{Policy: term.CaptureSkip}}
	skipped, ok := skip.StackStep(e)
	require.True(t, ok)
	assert.True(t, term.Equal(term.Lam("y", term.Nat{}, term.V("x")), skipped), "got %s", skipped)
}

func TestMachine(t *testing.T) {
	t.Run("normal form and trace", func(t *testing.T) {
		var traced []term.Expr
		m := NewMachine(DefaultReducer, 0)
		m.Trace = func(step int, e term.Expr) {
			assert.Equal(t, len(traced)+1, step)
			traced = append(traced, e)
		}

		res, err := m.Run(term.Apply(prelude.Add(), term.Numeral(2), term.Numeral(1)))
		require.NoError(t, err)
		assert.False(t, res.Stuck)
		assert.Equal(t, len(traced), res.Steps)
		assert.True(t, term.Equal(term.Numeral(3), res.Normal))
		assert.True(t, term.Equal(res.Normal, traced[len(traced)-1]))
	})

	t.Run("step limit", func(t *testing.T) {
		m := NewMachine(DefaultReducer, 50)
		res, err := m.Run(omega())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrStepLimit))
		assert.Equal(t, 50, res.Steps)
	})

	t.Run("exact budget succeeds", func(t *testing.T) {
		e := term.Apply(prelude.Add(), term.Numeral(1), term.Numeral(1))
		full, err := NewMachine(DefaultReducer, 0).Run(e)
		require.NoError(t, err)

		res, err := NewMachine(DefaultReducer, full.Steps).Run(e)
		require.NoError(t, err)
		assert.Equal(t, full.Steps, res.Steps)
	})

	t.Run("stuck is not a value", func(t *testing.T) {
		res, err := (&Machine{}).Run(term.Apply(term.Zero{}, term.Zero{}))
		require.NoError(t, err)
		assert.Equal(t, 0, res.Steps)
		assert.True(t, res.Stuck)
	})
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		expr term.Expr
		want term.Expr
	}{
		{
			"under lambda",
			term.Lam("x", term.Nat{}, term.Apply(term.Lam("y", term.Nat{}, term.V("y")), term.V("x"))),
			term.Lam("x", term.Nat{}, term.V("x")),
		},
		{
			"inside pi",
			term.Forall("n", term.Nat{}, term.Apply(prelude.ConstNat(), term.V("n"))),
			term.Forall("n", term.Nat{}, term.Nat{}),
		},
		{
			"motive application",
			term.Apply(prelude.ConstNat(), term.Zero{}),
			term.Nat{},
		},
		{
			"neutral eliminator keeps shape",
			term.Elim(prelude.ConstNat(), term.Apply(term.Lam("y", term.Nat{}, term.V("y")), term.Zero{}), term.V("s"), term.V("m")),
			term.Elim(prelude.ConstNat(), term.Zero{}, term.V("s"), term.V("m")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.expr, 0)
			require.NoError(t, err)
			assert.True(t, term.Equal(tt.want, got), "want %s, got %s", tt.want, got)
		})
	}

	_, err := Normalize(term.Lam("z", term.Nat{}, omega()), 100)
	assert.ErrorIs(t, err, ErrStepLimit)
}

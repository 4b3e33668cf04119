package typesystem

import (
	"errors"
	"testing"

	"github.com/funvibe/funpi/internal/env"
	"github.com/funvibe/funpi/internal/evaluator"
	"github.com/funvibe/funpi/internal/prelude"
	"github.com/funvibe/funpi/internal/term"
	"github.com/funvibe/funpi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	nat  = term.Nat{}
	star = term.Star{}
)

// inductionContext binds an abstract motive P with a base case and a step
// function, the latter typed with binder names k and ih.
func inductionContext() *env.Env {
	P := term.V("P")
	return env.From(
		env.Binding{Name: "P", Type: term.Arrow(nat, star)},
		env.Binding{Name: "b", Type: term.Apply(P, term.Zero{})},
		env.Binding{Name: "s", Type: StepType(P)},
		env.Binding{Name: "s2", Type: term.Forall("k", nat, term.Forall("ih", term.Apply(P, term.V("k")), term.Apply(P, term.Succ{N: term.V("k")})))},
	)
}

func TestPolymorphicIdentity(t *testing.T) {
	typ, ok := TypeCheck(env.Empty(), prelude.Identity())
	require.True(t, ok)
	assert.True(t, term.Equal(prelude.IdentityType(), typ), "got %s", typ)
}

func TestApplyZeroToZero(t *testing.T) {
	_, ok := TypeCheck(env.Empty(), term.Apply(term.Zero{}, term.Zero{}))
	assert.False(t, ok)

	_, err := Infer(env.Empty(), term.Apply(term.Zero{}, term.Zero{}))
	var notFn *NotAFunctionError
	require.ErrorAs(t, err, &notFn)
	assert.Equal(t, term.Nat{}, notFn.Actual)
	assert.ErrorIs(t, err, ErrIllTyped)
}

func TestRules(t *testing.T) {
	ctx := env.From(
		env.Binding{Name: "P", Type: term.Arrow(nat, star)},
		env.Binding{Name: "f", Type: term.Forall("n", nat, term.Apply(term.V("P"), term.V("n")))},
	)

	tests := []struct {
		name string
		expr term.Expr
		want term.Expr
	}{
		{"star", star, star},
		{"nat", nat, star},
		{"zero", term.Zero{}, nat},
		{"succ", term.Numeral(3), nat},
		{"variable", term.V("P"), term.Arrow(nat, star)},
		{"arrow", term.Arrow(nat, nat), star},
		{"pi over star", prelude.IdentityType(), star},
		{"lambda synthesizes codomain", term.Lam("x", nat, term.Succ{N: term.V("x")}), term.Forall("x", nat, nat)},
		{"dependent application", term.Apply(term.V("f"), term.Zero{}), term.Apply(term.V("P"), term.Zero{})},
		{"instantiate identity", term.Apply(prelude.Identity(), nat), term.Forall("x", nat, nat)},
		{"identity on numeral", term.Apply(prelude.Identity(), nat, term.Numeral(2)), nat},
		{"shadowing binder", term.Lam("x", nat, term.Lam("x", star, term.V("x"))), term.Forall("x", nat, term.Forall("x", star, star))},
		{"constant motive", prelude.ConstNat(), term.Forall(term.Anonymous, nat, star)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Infer(ctx, tt.expr)
			require.NoError(t, err)
			assert.True(t, term.Equal(tt.want, got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestFailures(t *testing.T) {
	ctx := inductionContext()
	P := term.V("P")

	tests := []struct {
		name  string
		expr  term.Expr
		check func(t *testing.T, err error)
	}{
		{
			"unbound variable",
			term.V("missing"),
			func(t *testing.T, err error) {
				var e *UnboundVariableError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, "missing", e.Name)
			},
		},
		{
			"domain not a type",
			term.Forall("x", term.Zero{}, nat),
			func(t *testing.T, err error) {
				var e *NotATypeError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, term.Expr(term.Zero{}), e.Expr)
			},
		},
		{
			"codomain not a type",
			term.Forall("x", nat, term.V("x")),
			func(t *testing.T, err error) {
				var e *NotATypeError
				require.ErrorAs(t, err, &e)
			},
		},
		{
			"lambda domain not a type",
			term.Lam("x", term.Zero{}, term.V("x")),
			func(t *testing.T, err error) {
				var e *NotATypeError
				require.ErrorAs(t, err, &e)
			},
		},
		{
			"argument mismatch",
			term.Apply(term.Lam("x", nat, term.V("x")), star),
			func(t *testing.T, err error) {
				var e *TypeMismatchError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, RoleArgument, e.Role)
			},
		},
		{
			"successor of a type",
			term.Succ{N: nat},
			func(t *testing.T, err error) {
				var e *TypeMismatchError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, RoleSuccessor, e.Role)
			},
		},
		{
			"motive into Nat",
			term.Elim(term.Lam("k", nat, term.Zero{}), term.V("b"), term.V("s"), term.Zero{}),
			func(t *testing.T, err error) {
				var e *MotiveError
				require.ErrorAs(t, err, &e)
			},
		},
		{
			"base mismatch",
			term.Elim(P, term.Zero{}, term.V("s"), term.Zero{}),
			func(t *testing.T, err error) {
				var e *TypeMismatchError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, RoleBase, e.Role)
			},
		},
		{
			"target mismatch",
			term.Elim(P, term.V("b"), term.V("s"), star),
			func(t *testing.T, err error) {
				var e *TypeMismatchError
				require.ErrorAs(t, err, &e)
				assert.Equal(t, RoleTarget, e.Role)
			},
		},
		{
			"error inside body propagates",
			term.Lam("x", nat, term.Apply(term.V("x"), term.V("x"))),
			func(t *testing.T, err error) {
				var e *NotAFunctionError
				require.ErrorAs(t, err, &e)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := Infer(ctx, tt.expr)
			require.Error(t, err)
			assert.Nil(t, typ)
			assert.True(t, errors.Is(err, ErrIllTyped))
			tt.check(t, err)

			_, ok := TypeCheck(ctx, tt.expr)
			assert.False(t, ok)
		})
	}
}

func TestEliminatorWithAbstractMotive(t *testing.T) {
	ctx := inductionContext()
	e := term.Elim(term.V("P"), term.V("b"), term.V("s"), term.V("m"))

	_, ok := TypeCheck(ctx, e)
	assert.False(t, ok, "m is unbound")

	ctx = ctx.Add("m", nat)
	typ, ok := TypeCheck(ctx, e)
	require.True(t, ok)
	assert.True(t, term.Equal(term.Apply(term.V("P"), term.V("m")), typ), "got %s", typ)
}

func TestStepTypeComparedSyntactically(t *testing.T) {
	ctx := inductionContext()
	// s2 has the induction step type with binder k instead of n.
	e := term.Elim(term.V("P"), term.V("b"), term.V("s2"), term.Zero{})

	_, err := New().Infer(ctx, e)
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, RoleStep, mismatch.Role)

	typ, err := New(WithEquality(Alpha)).Infer(ctx, e)
	require.NoError(t, err)
	assert.True(t, term.Equal(term.Apply(term.V("P"), term.Zero{}), typ))
}

func TestStepTypeEqualOnlyAfterReduction(t *testing.T) {
	motive := prelude.ConstNat()
	ctx := env.Empty().Add("b", term.Apply(motive, term.Zero{}))
	step := term.Lam(term.Anonymous, nat, term.Lam("rec", nat, term.Succ{N: term.V("rec")}))
	e := term.Elim(motive, term.V("b"), step, term.Numeral(2))

	_, err := New().Infer(ctx, e)
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, RoleStep, mismatch.Role)

	_, err = New(WithEquality(Alpha)).Infer(ctx, e)
	assert.Error(t, err)

	typ, err := New(WithEquality(Definitional(1000))).Infer(ctx, e)
	require.NoError(t, err)
	assert.True(t, term.Equal(term.Apply(motive, term.Numeral(2)), typ))
}

func TestAddUnderEqualities(t *testing.T) {
	_, ok := New().TypeCheck(env.Empty(), prelude.Add())
	assert.False(t, ok, "base n : Nat is not syntactically motive Zero")

	c := New(WithEquality(Definitional(1000)), WithLogger(testutil.NewTestLogger(t)))
	typ, err := c.Infer(env.Empty(), prelude.Add())
	require.NoError(t, err)
	want := term.Forall("m", nat, term.Forall("n", nat, term.Apply(prelude.ConstNat(), term.V("m"))))
	assert.True(t, term.Equal(want, typ), "got %s", typ)

	sum := term.Apply(prelude.Add(), term.Numeral(2), term.Numeral(1))
	typ, err = c.Infer(env.Empty(), sum)
	require.NoError(t, err)
	assert.True(t, c.Equal(nat, typ))
}

func TestAddZeroRightIsIllTyped(t *testing.T) {
	for _, eq := range []Equality{Syntactic, Definitional(1000)} {
		_, ok := New(WithEquality(eq)).TypeCheck(env.Empty(), prelude.AddZeroRight())
		assert.False(t, ok)
	}
}

func TestContextNotMutated(t *testing.T) {
	ctx := env.Empty().Add("A", star)
	_, ok := TypeCheck(ctx, term.Lam("x", term.V("A"), term.Lam("y", nat, term.V("x"))))
	require.True(t, ok)

	assert.Equal(t, 1, ctx.Len())
	_, found := ctx.Get("x")
	assert.False(t, found)
}

func TestApplicationResultAvoidsCapture(t *testing.T) {
	// f : Pi(x : *, Pi(y : Nat, x)) applied to a variable named y.
	ctx := env.From(
		env.Binding{Name: "y", Type: star},
		env.Binding{Name: "f", Type: term.Forall("x", star, term.Forall("y", nat, term.V("x")))},
	)
	e := term.Apply(term.V("f"), term.V("y"))

	typ, err := Infer(ctx, e)
	require.NoError(t, err)
	assert.True(t, term.Equal(term.Forall("y'", nat, term.V("y")), typ), "got %s", typ)

	skip := New(WithSubstituter(term.Substituter{Policy: term.CaptureSkip}))
	typ, err = skip.Infer(ctx, e)
	require.NoError(t, err)
	assert.True(t, term.Equal(term.Forall("y", nat, term.V("x")), typ), "got %s", typ)
}

func TestTypePreservation(t *testing.T) {
	t.Run("syntactic", func(t *testing.T) {
		terms := []term.Expr{
			prelude.Identity(),
			term.Apply(prelude.Identity(), nat),
			term.Apply(prelude.Identity(), nat, term.Numeral(2)),
			term.Apply(prelude.Identity(), prelude.IdentityType(), prelude.Identity()),
			term.Apply(term.Lam("x", nat, term.Succ{N: term.V("x")}), term.Numeral(1)),
		}
		for _, e := range terms {
			before, ok := TypeCheck(env.Empty(), e)
			require.True(t, ok, "%s", e)
			after, ok := TypeCheck(env.Empty(), evaluator.EvalFull(e))
			require.True(t, ok)
			assert.True(t, term.Equal(before, after), "%s: %s became %s", e, before, after)
		}
	})

	t.Run("definitional", func(t *testing.T) {
		c := New(WithEquality(Definitional(10000)))
		terms := []term.Expr{
			term.Apply(prelude.Add(), term.Numeral(2), term.Numeral(1)),
			term.Apply(prelude.Mul(), term.Numeral(2), term.Numeral(2)),
			term.Apply(prelude.Pred(), term.Numeral(3)),
		}
		for _, e := range terms {
			before, err := c.Infer(env.Empty(), e)
			require.NoError(t, err, "%s", e)
			after, err := c.Infer(env.Empty(), evaluator.EvalFull(e))
			require.NoError(t, err)
			assert.True(t, c.Equal(before, after), "%s: %s became %s", e, before, after)
		}
	})
}

func TestEqualityByName(t *testing.T) {
	for _, name := range []string{"", "syntactic", "alpha", "definitional"} {
		eq, err := EqualityByName(name)
		require.NoError(t, err)
		assert.True(t, eq(nat, nat))
	}

	_, err := EqualityByName("nominal")
	assert.Error(t, err)
}

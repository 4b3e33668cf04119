package prettyprinter

import (
	"testing"

	"github.com/funvibe/funpi/internal/config"
	"github.com/funvibe/funpi/internal/prelude"
	"github.com/funvibe/funpi/internal/term"
	"github.com/stretchr/testify/assert"
)

func TestPrint(t *testing.T) {
	nat := term.Nat{}
	tests := []struct {
		name string
		expr term.Expr
		want string
	}{
		{"star", term.Star{}, "*"},
		{"zero", term.Zero{}, "0"},
		{"numeral", term.Numeral(3), "3"},
		{"succ of var", term.Succ{N: term.V("k")}, "succ k"},
		{"nested succ", term.Succ{N: term.Succ{N: term.V("k")}}, "succ (succ k)"},
		{"identity type", prelude.IdentityType(), "Π(A : *). A → A"},
		{"identity", prelude.Identity(), "λA : *. λx : A. x"},
		{"arrow chain", term.Arrow(nat, term.Arrow(nat, nat)), "Nat → Nat → Nat"},
		{"arrow in domain", term.Arrow(term.Arrow(nat, nat), nat), "(Nat → Nat) → Nat"},
		{"application spine", term.Apply(term.V("f"), term.V("a"), term.V("b")), "f a b"},
		{"nested argument", term.Apply(term.V("f"), term.Apply(term.V("g"), term.V("a"))), "f (g a)"},
		{"redex", term.Apply(term.Lam("x", nat, term.V("x")), term.Numeral(1)), "(λx : Nat. x) 1"},
		{"dependent pi", term.Forall("n", nat, term.Apply(term.V("P"), term.V("n"))), "Π(n : Nat). P n"},
		{"app in arrow domain", term.Arrow(term.Apply(term.V("P"), term.V("n")), nat), "P n → Nat"},
		{
			"elim",
			term.Elim(prelude.ConstNat(), term.Zero{}, term.V("s"), term.V("m")),
			"elim (λ_ : Nat. Nat) 0 s m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Print(tt.expr))
		})
	}
}

func TestPrintASCII(t *testing.T) {
	p := New(WithASCII(true))
	assert.Equal(t, `\A : *. \x : A. x`, p.Print(prelude.Identity()))
	assert.Equal(t, "forall (A : *). A -> A", p.Print(prelude.IdentityType()))
}

func TestPrintColor(t *testing.T) {
	p := New(WithColor(true))
	got := p.Print(term.Succ{N: term.V("k")})
	assert.Equal(t, "\033[35msucc\033[39m k", got)
}

func TestPrinterReuse(t *testing.T) {
	p := New()
	assert.Equal(t, "Nat", p.Print(term.Nat{}))
	assert.Equal(t, "*", p.Print(term.Star{}))
}

func TestUseColor(t *testing.T) {
	assert.True(t, UseColor(config.ColorAlways, nil))
	assert.False(t, UseColor(config.ColorNever, nil))
	assert.False(t, UseColor(config.ColorAuto, nil))
}

package prettyprinter

import (
	"strconv"
	"strings"

	"github.com/funvibe/funpi/internal/term"
)

// --- Notation Printer (output looks like textbook notation) ---

// Binding strength of a printed form (higher = binds tighter).
const (
	precBinder = iota // λ, Π and arrows extend as far right as possible
	precApp           // application, succ and elim
	precAtom
)

// ANSI foreground colors.
const (
	colorKeyword  = 35 // magenta
	colorConstant = 36 // cyan
	colorBinder   = 33 // yellow
)

type Printer struct {
	buf   strings.Builder
	color bool
	ascii bool
}

type Option func(*Printer)

// WithColor enables ANSI colors.
func WithColor(on bool) Option { return func(p *Printer) { p.color = on } }

// WithASCII replaces λ, Π and → by \, forall and ->.
func WithASCII(on bool) Option { return func(p *Printer) { p.ascii = on } }

func New(opts ...Option) *Printer {
	p := &Printer{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Print renders e in plain notation.
func Print(e term.Expr) string {
	return New().Print(e)
}

// Print renders e. The printer can be reused.
func (p *Printer) Print(e term.Expr) string {
	p.buf.Reset()
	p.expr(e, precBinder)
	return p.buf.String()
}

func level(e term.Expr) int {
	if _, ok := term.AsNumber(e); ok {
		return precAtom
	}
	switch e.(type) {
	case term.Lambda, term.Pi:
		return precBinder
	case term.App, term.Succ, term.ElimNat:
		return precApp
	}
	return precAtom
}

func (p *Printer) expr(e term.Expr, prec int) {
	if level(e) < prec {
		p.buf.WriteByte('(')
		defer p.buf.WriteByte(')')
	}

	if n, ok := term.AsNumber(e); ok {
		p.paint(colorConstant, strconv.Itoa(n))
		return
	}

	switch e := e.(type) {
	case term.Var:
		p.buf.WriteString(e.Name)
	case term.Star:
		p.paint(colorConstant, "*")
	case term.Nat:
		p.paint(colorConstant, "Nat")
	case term.Lambda:
		p.paint(colorKeyword, p.pick("λ", "\\"))
		p.binder(e.Binder, e.Domain)
		p.buf.WriteString(". ")
		p.expr(e.Body, precBinder)
	case term.Pi:
		if !term.IsFree(e.Binder, e.Codomain) {
			p.expr(e.Domain, precApp)
			p.buf.WriteByte(' ')
			p.paint(colorKeyword, p.pick("→", "->"))
			p.buf.WriteByte(' ')
			p.expr(e.Codomain, precBinder)
			return
		}
		p.paint(colorKeyword, p.pick("Π", "forall "))
		p.buf.WriteByte('(')
		p.binder(e.Binder, e.Domain)
		p.buf.WriteString("). ")
		p.expr(e.Codomain, precBinder)
	case term.App:
		p.expr(e.Func, precApp)
		p.buf.WriteByte(' ')
		p.expr(e.Arg, precAtom)
	case term.Succ:
		p.paint(colorKeyword, "succ")
		p.buf.WriteByte(' ')
		p.expr(e.N, precAtom)
	case term.ElimNat:
		p.paint(colorKeyword, "elim")
		for _, arg := range []term.Expr{e.Motive, e.Base, e.Step, e.Target} {
			p.buf.WriteByte(' ')
			p.expr(arg, precAtom)
		}
	}
}

func (p *Printer) binder(name string, domain term.Expr) {
	p.paint(colorBinder, name)
	p.buf.WriteString(" : ")
	p.expr(domain, precBinder)
}

func (p *Printer) pick(unicode, ascii string) string {
	if p.ascii {
		return ascii
	}
	return unicode
}

func (p *Printer) paint(code int, s string) {
	if !p.color {
		p.buf.WriteString(s)
		return
	}
	p.buf.WriteString("\033[")
	p.buf.WriteString(strconv.Itoa(code))
	p.buf.WriteByte('m')
	p.buf.WriteString(s)
	p.buf.WriteString("\033[39m")
}

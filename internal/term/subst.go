package term

// CapturePolicy decides what substitution does when a binder would capture a
// free variable of the replacement.
type CapturePolicy int

const (
	// CaptureRename alpha-renames the binder to a fresh name first.
	CaptureRename CapturePolicy = iota
	// CaptureSkip leaves the binder's scope untouched.
	CaptureSkip
)

func (p CapturePolicy) String() string {
	switch p {
	case CaptureRename:
		return "rename"
	case CaptureSkip:
		return "skip"
	}
	return "unknown"
}

// Substituter performs substitution under a fixed capture policy.
type Substituter struct {
	Policy CapturePolicy
}

// DefaultSubstituter renames on capture.
var DefaultSubstituter = Substituter{Policy: CaptureRename}

// Subst replaces every free occurrence of x in e with r using the default
// policy.
func Subst(e Expr, x string, r Expr) Expr {
	return DefaultSubstituter.Subst(e, x, r)
}

func (s Substituter) Subst(e Expr, x string, r Expr) Expr {
	return Walk[Expr](e, &substVisitor{x: x, r: r, rFree: FreeVars(r), policy: s.Policy})
}

type substVisitor struct {
	x      string
	r      Expr
	rFree  NameSet
	policy CapturePolicy
}

func (s *substVisitor) VisitVar(v Var) Expr {
	if v.Name == s.x {
		return s.r
	}
	return v
}

func (s *substVisitor) VisitStar(e Star) Expr { return e }
func (s *substVisitor) VisitNat(e Nat) Expr   { return e }
func (s *substVisitor) VisitZero(e Zero) Expr { return e }

func (s *substVisitor) VisitPi(p Pi) Expr {
	binder, codomain := s.scope(p.Binder, p.Codomain)
	return Pi{Binder: binder, Domain: Walk[Expr](p.Domain, s), Codomain: codomain}
}

func (s *substVisitor) VisitLambda(l Lambda) Expr {
	binder, body := s.scope(l.Binder, l.Body)
	return Lambda{Binder: binder, Domain: Walk[Expr](l.Domain, s), Body: body}
}

// scope substitutes inside the scope of binder. The domain is outside that
// scope and handled by the caller.
func (s *substVisitor) scope(binder string, body Expr) (string, Expr) {
	if binder == s.x {
		return binder, body
	}
	if !s.rFree.Has(binder) {
		return binder, Walk[Expr](body, s)
	}
	if !IsFree(s.x, body) {
		return binder, body
	}
	if s.policy == CaptureSkip {
		return binder, body
	}
	avoid := s.rFree.Union(FreeVars(body))
	avoid[s.x] = struct{}{}
	fresh := FreshName(binder, avoid)
	renamed := DefaultSubstituter.Subst(body, binder, Var{Name: fresh})
	return fresh, Walk[Expr](renamed, s)
}

func (s *substVisitor) VisitApp(a App) Expr {
	return App{Func: Walk[Expr](a.Func, s), Arg: Walk[Expr](a.Arg, s)}
}

func (s *substVisitor) VisitSucc(n Succ) Expr {
	return Succ{N: Walk[Expr](n.N, s)}
}

func (s *substVisitor) VisitElimNat(e ElimNat) Expr {
	return ElimNat{
		Motive: Walk[Expr](e.Motive, s),
		Base:   Walk[Expr](e.Base, s),
		Step:   Walk[Expr](e.Step, s),
		Target: Walk[Expr](e.Target, s),
	}
}

// FreshName primes base until it is not in avoid.
func FreshName(base string, avoid NameSet) string {
	name := base
	for avoid.Has(name) {
		name += "'"
	}
	return name
}

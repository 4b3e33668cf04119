package term

import "fmt"

func (v Var) String() string  { return v.Name }
func (Star) String() string   { return "*" }
func (Nat) String() string    { return "Nat" }
func (Zero) String() string   { return "Zero" }
func (s Succ) String() string { return fmt.Sprintf("Succ(%s)", s.N) }

func (p Pi) String() string {
	return fmt.Sprintf("Pi(%s: %s, %s)", p.Binder, p.Domain, p.Codomain)
}

func (l Lambda) String() string {
	return fmt.Sprintf("Lambda(%s: %s, %s)", l.Binder, l.Domain, l.Body)
}

func (a App) String() string {
	return fmt.Sprintf("App(%s, %s)", a.Func, a.Arg)
}

func (e ElimNat) String() string {
	return fmt.Sprintf("ElimNat(%s, %s, %s, %s)", e.Motive, e.Base, e.Step, e.Target)
}

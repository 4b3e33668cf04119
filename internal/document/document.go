// Package document reads and writes term documents: YAML files that spell
// out abstract syntax trees node by node.
//
// A term node is one of
//
//	Star | Nat | Zero            the constants
//	3                            the numeral Succ(Succ(Succ(Zero)))
//	x                            any other scalar is a variable
//	{var: name}                  a variable, even one named like a constant
//	{pi: {var, domain, codomain}}
//	{lambda: {var, domain, body}}
//	{arrow: [A, B, ...]}         right-nested non-dependent functions
//	{app: [f, a, b, ...]}        left-nested application
//	{succ: n}
//	{elim: {motive, base, step, target}}
//	{ref: name}                  an earlier definition or a prelude term
//
// A document lists a typing context, definitions, and the terms to process.
package document

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/funvibe/funpi/internal/env"
	"github.com/funvibe/funpi/internal/prelude"
	"github.com/funvibe/funpi/internal/term"
	"gopkg.in/yaml.v3"
)

// Reserved scalars.
const (
	StarName = "Star"
	NatName  = "Nat"
	ZeroName = "Zero"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_']*$`)

// raw mirrors the YAML layout before terms are decoded.
type raw struct {
	Context []struct {
		Name string    `yaml:"name"`
		Type yaml.Node `yaml:"type"`
	} `yaml:"context"`
	Definitions []struct {
		Name string    `yaml:"name"`
		Term yaml.Node `yaml:"term"`
	} `yaml:"definitions"`
	Terms []struct {
		Name   string    `yaml:"name"`
		Term   yaml.Node `yaml:"term"`
		Type   yaml.Node `yaml:"type"`
		Normal yaml.Node `yaml:"normal"`
	} `yaml:"terms"`
}

// Document is a decoded term document.
type Document struct {
	Context     []env.Binding
	Definitions []Definition
	Terms       []Item
}

// Definition is a named term available to later nodes through ref.
type Definition struct {
	Name string
	Term term.Expr
}

// Item is a term to process, with optional expectations.
type Item struct {
	Name   string
	Term   term.Expr
	Type   term.Expr
	Normal term.Expr
}

// Options controls decoding.
type Options struct {
	// Prelude makes the prelude terms available to ref.
	Prelude bool
}

// Decode parses a term document.
func Decode(data []byte, opts Options) (*Document, error) {
	var r raw
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}

	d := &decoder{defs: make(map[string]term.Expr), prelude: opts.Prelude}
	doc := &Document{}

	for _, def := range r.Definitions {
		if def.Name == "" {
			return nil, fmt.Errorf("document: definition without name")
		}
		if _, dup := d.defs[def.Name]; dup {
			return nil, fmt.Errorf("document: duplicate definition %q", def.Name)
		}
		e, err := d.expr(&def.Term)
		if err != nil {
			return nil, fmt.Errorf("definition %s: %w", def.Name, err)
		}
		d.defs[def.Name] = e
		doc.Definitions = append(doc.Definitions, Definition{Name: def.Name, Term: e})
	}

	for _, b := range r.Context {
		if !identifier.MatchString(b.Name) {
			return nil, fmt.Errorf("context: invalid name %q", b.Name)
		}
		typ, err := d.expr(&b.Type)
		if err != nil {
			return nil, fmt.Errorf("context %s: %w", b.Name, err)
		}
		doc.Context = append(doc.Context, env.Binding{Name: b.Name, Type: typ})
	}

	for i, t := range r.Terms {
		item := Item{Name: t.Name}
		if item.Name == "" {
			item.Name = "term" + strconv.Itoa(i+1)
		}
		var err error
		if item.Term, err = d.expr(&t.Term); err != nil {
			return nil, fmt.Errorf("%s: %w", item.Name, err)
		}
		if item.Type, err = d.optional(&t.Type); err != nil {
			return nil, fmt.Errorf("%s: type: %w", item.Name, err)
		}
		if item.Normal, err = d.optional(&t.Normal); err != nil {
			return nil, fmt.Errorf("%s: normal: %w", item.Name, err)
		}
		doc.Terms = append(doc.Terms, item)
	}

	return doc, nil
}

// DecodeTerm parses a single term node.
func DecodeTerm(data []byte, opts Options) (term.Expr, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		n = *n.Content[0]
	}
	d := &decoder{defs: make(map[string]term.Expr), prelude: opts.Prelude}
	return d.expr(&n)
}

type decoder struct {
	defs    map[string]term.Expr
	prelude bool
}

func (d *decoder) optional(n *yaml.Node) (term.Expr, error) {
	if n.Kind == 0 {
		return nil, nil
	}
	return d.expr(n)
}

func (d *decoder) expr(n *yaml.Node) (term.Expr, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return d.scalar(n)
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return nil, d.errorf(n, "term mapping must have exactly one key")
		}
		return d.tagged(n.Content[0].Value, n.Content[1])
	case 0:
		return nil, fmt.Errorf("missing term")
	default:
		return nil, d.errorf(n, "unexpected YAML node")
	}
}

func (d *decoder) scalar(n *yaml.Node) (term.Expr, error) {
	if n.Tag == "!!int" {
		v, err := strconv.Atoi(n.Value)
		if err != nil || v < 0 {
			return nil, d.errorf(n, "numeral must be a non-negative integer, got %q", n.Value)
		}
		return term.Numeral(v), nil
	}
	switch n.Value {
	case StarName, "*":
		return term.Star{}, nil
	case NatName:
		return term.Nat{}, nil
	case ZeroName:
		return term.Zero{}, nil
	}
	if !identifier.MatchString(n.Value) {
		return nil, d.errorf(n, "invalid variable name %q", n.Value)
	}
	return term.V(n.Value), nil
}

func (d *decoder) tagged(tag string, body *yaml.Node) (term.Expr, error) {
	switch tag {
	case "var":
		if body.Kind != yaml.ScalarNode || body.Value == "" {
			return nil, d.errorf(body, "var needs a name")
		}
		return term.V(body.Value), nil

	case "pi", "lambda":
		var b struct {
			Var      string    `yaml:"var"`
			Domain   yaml.Node `yaml:"domain"`
			Codomain yaml.Node `yaml:"codomain"`
			Body     yaml.Node `yaml:"body"`
		}
		if err := body.Decode(&b); err != nil {
			return nil, d.errorf(body, "%s: %v", tag, err)
		}
		if b.Var == "" {
			b.Var = term.Anonymous
		}
		dom, err := d.expr(&b.Domain)
		if err != nil {
			return nil, fmt.Errorf("%s domain: %w", tag, err)
		}
		inner := &b.Body
		if tag == "pi" {
			inner = &b.Codomain
		}
		rest, err := d.expr(inner)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", tag, b.Var, err)
		}
		if tag == "pi" {
			return term.Forall(b.Var, dom, rest), nil
		}
		return term.Lam(b.Var, dom, rest), nil

	case "arrow":
		parts, err := d.list(body, 2)
		if err != nil {
			return nil, err
		}
		result := parts[len(parts)-1]
		for i := len(parts) - 2; i >= 0; i-- {
			result = term.Arrow(parts[i], result)
		}
		return result, nil

	case "app":
		parts, err := d.list(body, 2)
		if err != nil {
			return nil, err
		}
		return term.Apply(parts[0], parts[1:]...), nil

	case "succ":
		n, err := d.expr(body)
		if err != nil {
			return nil, fmt.Errorf("succ: %w", err)
		}
		return term.Succ{N: n}, nil

	case "elim":
		var b struct {
			Motive yaml.Node `yaml:"motive"`
			Base   yaml.Node `yaml:"base"`
			Step   yaml.Node `yaml:"step"`
			Target yaml.Node `yaml:"target"`
		}
		if err := body.Decode(&b); err != nil {
			return nil, d.errorf(body, "elim: %v", err)
		}
		var parts [4]term.Expr
		for i, field := range []struct {
			name string
			node *yaml.Node
		}{{"motive", &b.Motive}, {"base", &b.Base}, {"step", &b.Step}, {"target", &b.Target}} {
			e, err := d.expr(field.node)
			if err != nil {
				return nil, fmt.Errorf("elim %s: %w", field.name, err)
			}
			parts[i] = e
		}
		return term.Elim(parts[0], parts[1], parts[2], parts[3]), nil

	case "ref":
		if body.Kind != yaml.ScalarNode {
			return nil, d.errorf(body, "ref needs a name")
		}
		if e, found := d.defs[body.Value]; found {
			return e, nil
		}
		if d.prelude {
			if e, found := prelude.Lookup(body.Value); found {
				return e, nil
			}
		}
		return nil, d.errorf(body, "undefined reference %q", body.Value)
	}
	return nil, d.errorf(body, "unknown term form %q", tag)
}

func (d *decoder) list(n *yaml.Node, least int) ([]term.Expr, error) {
	if n.Kind != yaml.SequenceNode || len(n.Content) < least {
		return nil, d.errorf(n, "expected a list of at least %d terms", least)
	}
	out := make([]term.Expr, 0, len(n.Content))
	for _, c := range n.Content {
		e, err := d.expr(c)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("line %d: %s", n.Line, fmt.Sprintf(format, args...))
}

package document

import (
	"strconv"

	"github.com/funvibe/funpi/internal/term"
	"gopkg.in/yaml.v3"
)

// Encode renders e as a term node. Decoding the node yields e again.
func Encode(e term.Expr) *yaml.Node {
	if n, ok := term.AsNumber(e); ok && n > 0 {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(n)}
	}

	switch e := e.(type) {
	case term.Var:
		if isPlainName(e.Name) {
			return str(e.Name)
		}
		return tagged("var", str(e.Name))
	case term.Star:
		return str(StarName)
	case term.Nat:
		return str(NatName)
	case term.Zero:
		return str(ZeroName)
	case term.Pi:
		if e.Binder == term.Anonymous {
			return tagged("arrow", seq(arrowParts(e)...))
		}
		return tagged("pi", fields("var", str(e.Binder), "domain", Encode(e.Domain), "codomain", Encode(e.Codomain)))
	case term.Lambda:
		return tagged("lambda", fields("var", str(e.Binder), "domain", Encode(e.Domain), "body", Encode(e.Body)))
	case term.App:
		return tagged("app", seq(appParts(e)...))
	case term.Succ:
		return tagged("succ", Encode(e.N))
	case term.ElimNat:
		return tagged("elim", fields(
			"motive", Encode(e.Motive),
			"base", Encode(e.Base),
			"step", Encode(e.Step),
			"target", Encode(e.Target),
		))
	}
	panic("document: unknown expression")
}

// Marshal renders e as YAML text.
func Marshal(e term.Expr) ([]byte, error) {
	return yaml.Marshal(Encode(e))
}

func isPlainName(name string) bool {
	switch name {
	case StarName, NatName, ZeroName:
		return false
	}
	return identifier.MatchString(name)
}

// arrowParts flattens a right-nested chain of anonymous Pi nodes.
func arrowParts(p term.Pi) []*yaml.Node {
	var parts []*yaml.Node
	var cur term.Expr = p
	for {
		pi, ok := cur.(term.Pi)
		if !ok || pi.Binder != term.Anonymous {
			break
		}
		parts = append(parts, Encode(pi.Domain))
		cur = pi.Codomain
	}
	return append(parts, Encode(cur))
}

// appParts flattens a left-nested application spine.
func appParts(a term.App) []*yaml.Node {
	var args []term.Expr
	var head term.Expr = a
	for {
		app, ok := head.(term.App)
		if !ok {
			break
		}
		args = append(args, app.Arg)
		head = app.Func
	}
	parts := []*yaml.Node{Encode(head)}
	for i := len(args) - 1; i >= 0; i-- {
		parts = append(parts, Encode(args[i]))
	}
	return parts
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func seq(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle, Content: items}
}

func tagged(tag string, body *yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{str(tag), body}}
}

func fields(kv ...any) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i < len(kv); i += 2 {
		m.Content = append(m.Content, str(kv[i].(string)), kv[i+1].(*yaml.Node))
	}
	return m
}

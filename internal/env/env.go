// Package env provides the typing context used by the checker: an immutable
// map from variable names to their types.
//
// The context is a persistent hash array mapped trie. Add copies only the
// path from the root to the changed slot, so every holder of an *Env keeps
// its own snapshot while sharing the untouched structure.
package env

import (
	"slices"

	"github.com/funvibe/funpi/internal/term"
)

const (
	hamtBits = 5
	hamtSize = 1 << hamtBits // 32
	hamtMask = hamtSize - 1
)

// Env is an immutable typing context. The zero value and nil are empty.
type Env struct {
	root  *hamtNode
	count int
}

// hamtNode is a node in the trie
type hamtNode struct {
	bitmap uint32 // which indices are populated
	nodes  []any  // hamtEntry or *hamtNode
}

// hamtEntry holds one binding
type hamtEntry struct {
	hash uint32
	name string
	typ  term.Expr
}

// Empty returns an empty context.
func Empty() *Env {
	return &Env{}
}

// From builds a context from bindings applied left to right, so later
// bindings shadow earlier ones.
func From(bindings ...Binding) *Env {
	e := Empty()
	for _, b := range bindings {
		e = e.Add(b.Name, b.Type)
	}
	return e
}

// Binding is a single name : type pair.
type Binding struct {
	Name string
	Type term.Expr
}

// Len returns the number of bound names.
func (e *Env) Len() int {
	if e == nil {
		return 0
	}
	return e.count
}

// Get returns the type bound to name.
func (e *Env) Get(name string) (term.Expr, bool) {
	if e == nil || e.root == nil {
		return nil, false
	}
	return e.root.get(hashName(name), name, 0)
}

// Add returns a new context with name bound to typ. The receiver is unchanged.
func (e *Env) Add(name string, typ term.Expr) *Env {
	hash := hashName(name)

	root := &hamtNode{}
	count := 0
	if e != nil {
		count = e.count
		if e.root != nil {
			root = e.root
		}
	}

	newRoot, added := root.put(hash, name, typ, 0)
	if added {
		count++
	}
	return &Env{root: newRoot, count: count}
}

// Bindings returns all bindings ordered by name.
func (e *Env) Bindings() []Binding {
	if e == nil || e.root == nil {
		return nil
	}
	items := make([]Binding, 0, e.count)
	e.root.collect(&items)
	slices.SortFunc(items, func(a, b Binding) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return items
}

// --- hamtNode methods ---

func (n *hamtNode) get(hash uint32, name string, shift uint) (term.Expr, bool) {
	if shift >= 32 {
		// Collision bucket search
		for _, node := range n.nodes {
			if entry, ok := node.(hamtEntry); ok && entry.name == name {
				return entry.typ, true
			}
		}
		return nil, false
	}

	idx := (hash >> shift) & hamtMask
	bit := uint32(1) << idx

	if n.bitmap&bit == 0 {
		return nil, false
	}

	pos := popcount(n.bitmap & (bit - 1))
	switch v := n.nodes[pos].(type) {
	case hamtEntry:
		if v.hash == hash && v.name == name {
			return v.typ, true
		}
		return nil, false
	case *hamtNode:
		return v.get(hash, name, shift+hamtBits)
	}
	return nil, false
}

func (n *hamtNode) put(hash uint32, name string, typ term.Expr, shift uint) (*hamtNode, bool) {
	newNode := n.clone()
	entry := hamtEntry{hash: hash, name: name, typ: typ}

	// Hash bits exhausted: linear bucket.
	if shift >= 32 {
		for i, node := range newNode.nodes {
			if existing, ok := node.(hamtEntry); ok && existing.name == name {
				newNode.nodes[i] = entry
				return newNode, false
			}
		}
		newNode.nodes = append(newNode.nodes, entry)
		return newNode, true
	}

	idx := (hash >> shift) & hamtMask
	bit := uint32(1) << idx

	if n.bitmap&bit == 0 {
		newNode.bitmap |= bit
		pos := popcount(newNode.bitmap & (bit - 1))
		newNode.nodes = append(newNode.nodes, nil)
		copy(newNode.nodes[pos+1:], newNode.nodes[pos:])
		newNode.nodes[pos] = entry
		return newNode, true
	}

	pos := popcount(n.bitmap & (bit - 1))
	switch v := newNode.nodes[pos].(type) {
	case hamtEntry:
		if v.hash == hash && v.name == name {
			// Shadowing an existing binding
			newNode.nodes[pos] = entry
			return newNode, false
		}
		// Push both entries one level down
		child := &hamtNode{}
		child, _ = child.put(v.hash, v.name, v.typ, shift+hamtBits)
		child, _ = child.put(hash, name, typ, shift+hamtBits)
		newNode.nodes[pos] = child
		return newNode, true
	case *hamtNode:
		newChild, added := v.put(hash, name, typ, shift+hamtBits)
		newNode.nodes[pos] = newChild
		return newNode, added
	}
	return newNode, false
}

func (n *hamtNode) clone() *hamtNode {
	c := &hamtNode{bitmap: n.bitmap, nodes: make([]any, len(n.nodes))}
	copy(c.nodes, n.nodes)
	return c
}

func (n *hamtNode) collect(items *[]Binding) {
	for _, node := range n.nodes {
		switch v := node.(type) {
		case hamtEntry:
			*items = append(*items, Binding{Name: v.name, Type: v.typ})
		case *hamtNode:
			v.collect(items)
		}
	}
}

// --- Helper functions ---

// hashName is a variable so tests can force collisions.
var hashName = fnv32a

// fnv32a is the 32-bit FNV-1a hash of s.
func fnv32a(s string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

// popcount counts set bits
func popcount(x uint32) int {
	x = x - ((x >> 1) & 0x55555555)
	x = (x & 0x33333333) + ((x >> 2) & 0x33333333)
	x = (x + (x >> 4)) & 0x0f0f0f0f
	x = x + (x >> 8)
	x = x + (x >> 16)
	return int(x & 0x3f)
}

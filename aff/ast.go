package aff

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind tags a positional argument.
type ValueKind int

const (
	ValueInt ValueKind = iota
	ValueFloat
	ValueIdent
)

// Value is one positional argument of a command invocation.
type Value struct {
	Kind  ValueKind
	Int   int
	Float float64
	Ident string
}

func (v Value) AsInt() (int, bool) {
	if v.Kind == ValueInt {
		return v.Int, true
	}
	return 0, false
}

// AsFloat accepts both integer and decimal literals.
func (v Value) AsFloat() (float64, bool) {
	switch v.Kind {
	case ValueInt:
		return float64(v.Int), true
	case ValueFloat:
		return v.Float, true
	}
	return 0, false
}

func (v Value) AsIdent() (string, bool) {
	if v.Kind == ValueIdent {
		return v.Ident, true
	}
	return "", false
}

func (v Value) AsBool() (bool, bool) {
	switch v.Ident {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func (v Value) String() string {
	switch v.Kind {
	case ValueInt:
		return strconv.Itoa(v.Int)
	case ValueFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	}
	return v.Ident
}

// ParseNode is one parsed command invocation. Children holds the
// bracketed sub-list (arc's arctaps), Block the braced statement list
// (timinggroup). A bare "(...)" statement has an empty Name: taps carry
// no keyword in the aff format.
type ParseNode struct {
	Name     string
	Line     int
	Col      int
	Args     []Value
	Children []ParseNode
	Block    []ParseNode
}

// Raw rebuilds the invocation roughly as it appeared in the source.
func (n ParseNode) Raw() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return n.Name + "(" + strings.Join(args, ",") + ")"
}

// Result is a successful parse: the optional header plus the ordered
// top-level command stream. Nodes and ByName are two read-only views
// over the same tree.
type Result struct {
	Header      map[string]string
	HeaderOrder []string
	nodes       []ParseNode
}

// Nodes returns the top-level commands in source order.
func (r *Result) Nodes() []ParseNode {
	return r.nodes
}

// ByName groups the top-level commands by keyword, preserving source
// order within each group. Bare tap statements appear under "tap".
func (r *Result) ByName() map[string][]ParseNode {
	m := make(map[string][]ParseNode)
	for _, n := range r.nodes {
		name := n.Name
		if name == "" {
			name = "tap"
		}
		m[name] = append(m[name], n)
	}
	return m
}

// SyntaxError is fatal: parsing stops at the first unparseable token.
type SyntaxError struct {
	Line     int
	Column   int
	Expected string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: expected %s", e.Line, e.Column, e.Expected)
}

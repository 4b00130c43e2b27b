// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import "strings"

// Op is a boolean combinator in the search grammar.
type Op int

const (
	And Op = iota
	Or
	AndNot
)

func (o Op) String() string {
	switch o {
	case Or:
		return "OR"
	case AndNot:
		return "ANDNOT"
	default:
		return "AND"
	}
}

// Term is anything that can stand as an operand in a search expression:
// a Field or an Expr.
type Term interface {
	node() node
}

type node interface {
	write(b *strings.Builder)
}

type leaf struct{ f Field }

func (l leaf) write(b *strings.Builder) { b.WriteString(l.f.String()) }

type binary struct {
	op          Op
	left, right node
}

// The arXiv grammar defines no precedence, so every combination is grouped.
func (n binary) write(b *strings.Builder) {
	b.WriteByte('(')
	n.left.write(b)
	b.WriteByte(' ')
	b.WriteString(n.op.String())
	b.WriteByte(' ')
	n.right.write(b)
	b.WriteByte(')')
}

// Expr is an immutable boolean expression. Combinators return new values and
// never modify the receiver, so an Expr may be shared and extended freely.
type Expr struct {
	root node
}

// Init starts an expression from a single term.
func Init(t Term) Expr {
	if t == nil {
		return Expr{}
	}
	return Expr{root: t.node()}
}

// And returns (e AND t).
func (e Expr) And(t Term) Expr { return e.combine(And, t) }

// Or returns (e OR t).
func (e Expr) Or(t Term) Expr { return e.combine(Or, t) }

// AndNot returns (e ANDNOT t).
func (e Expr) AndNot(t Term) Expr { return e.combine(AndNot, t) }

// Combining with an empty operand yields the other operand unchanged, except
// that ANDNOT on an empty expression stays empty.
func (e Expr) combine(op Op, t Term) Expr {
	var right node
	if t != nil {
		right = t.node()
	}
	switch {
	case right == nil:
		return e
	case e.root == nil && op == AndNot:
		return e
	case e.root == nil:
		return Expr{root: right}
	}
	return Expr{root: binary{op: op, left: e.root, right: right}}
}

// IsZero reports whether the expression has no terms.
func (e Expr) IsZero() bool { return e.root == nil }

// String renders the expression in search_query grammar.
func (e Expr) String() string {
	if e.root == nil {
		return ""
	}
	var b strings.Builder
	e.root.write(&b)
	return b.String()
}

func (e Expr) node() node { return e.root }

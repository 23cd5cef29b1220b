package predicate

import (
	"fmt"

	"veridian-hq/verdict/pkg/record"
)

// Expr is an immutable node of a parsed predicate expression tree. An Expr is
// built once by Parse and never mutated afterwards.
type Expr interface {
	// String returns a parseable rendering of the expression.
	String() string

	exprNode()
}

// BinaryOp is a logical connective or comparison operator.
type BinaryOp int

const (
	// OpAnd is the logical conjunction.
	OpAnd BinaryOp = iota
	// OpOr is the logical disjunction.
	OpOr
	// OpEq is the equality comparison.
	OpEq
	// OpNeq is the inequality comparison.
	OpNeq
	// OpLt is the less-than comparison.
	OpLt
	// OpLte is the less-than-or-equal comparison.
	OpLte
	// OpGt is the greater-than comparison.
	OpGt
	// OpGte is the greater-than-or-equal comparison.
	OpGte
)

// String returns the operator's source spelling.
func (op BinaryOp) String() string {
	switch op {
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpEq:
		return "=="
	case OpNeq:
		return "!="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	default:
		return "?"
	}
}

// IsComparison reports whether the operator compares values rather than
// combining truth results.
func (op BinaryOp) IsComparison() bool {
	return op != OpAnd && op != OpOr
}

// Literal is a constant value.
type Literal struct {
	Value record.Value
}

func (l *Literal) exprNode() {}

// String renders the literal in source form.
func (l *Literal) String() string {
	if l.Value.Kind() == record.KindText {
		s, _ := l.Value.AsText()
		return fmt.Sprintf("%q", s)
	}
	return l.Value.String()
}

// FieldRef references a record field by name.
type FieldRef struct {
	Name string
}

func (f *FieldRef) exprNode() {}

// String returns the field name.
func (f *FieldRef) String() string {
	return f.Name
}

// Unary is a negation of a sub-expression.
type Unary struct {
	Expr Expr
}

func (u *Unary) exprNode() {}

// String renders the negation in source form.
func (u *Unary) String() string {
	return fmt.Sprintf("not (%s)", u.Expr)
}

// Binary combines two sub-expressions with a connective or comparison.
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (b *Binary) exprNode() {}

// String renders the operation in source form.
func (b *Binary) String() string {
	if b.Op.IsComparison() {
		return fmt.Sprintf("%s %s %s", b.Left, b.Op, b.Right)
	}
	return fmt.Sprintf("(%s) %s (%s)", b.Left, b.Op, b.Right)
}

package predicate

import (
	"math"
	"strconv"
	"strings"

	"veridian-hq/verdict/pkg/record"
)

// Eval evaluates an expression against a record under three-valued logic.
// It is a pure function: no side effects, no I/O, no mutation of inputs.
//
// Unknown arises from missing fields, null operands, and comparisons between
// incompatible types. Callers treat only True as a match.
func Eval(e Expr, rec record.Record) Tribool {
	switch n := e.(type) {
	case *Unary:
		return Eval(n.Expr, rec).Not()

	case *Binary:
		if n.Op.IsComparison() {
			return evalComparison(n, rec)
		}
		left := Eval(n.Left, rec)
		if n.Op == OpAnd {
			// False short-circuits; Unknown must still absorb the right side.
			if left == False {
				return False
			}
			return left.And(Eval(n.Right, rec))
		}
		if left == True {
			return True
		}
		return left.Or(Eval(n.Right, rec))

	case *Literal, *FieldRef:
		v, ok := operandValue(e, rec)
		if !ok {
			return Unknown
		}
		return truth(v)

	default:
		return Unknown
	}
}

// evalComparison resolves both operands and compares them. An absent operand
// (missing field, undecidable sub-expression) makes the result Unknown.
func evalComparison(b *Binary, rec record.Record) Tribool {
	left, ok := operandValue(b.Left, rec)
	if !ok {
		return Unknown
	}
	right, ok := operandValue(b.Right, rec)
	if !ok {
		return Unknown
	}
	return compare(b.Op, left, right)
}

// operandValue resolves an expression to a value. Field references resolve
// against the record; logical sub-expressions reduce to boolean values, with
// Unknown reported as absent.
func operandValue(e Expr, rec record.Record) (record.Value, bool) {
	switch n := e.(type) {
	case *Literal:
		return n.Value, true

	case *FieldRef:
		return rec.Get(n.Name)

	default:
		switch Eval(e, rec) {
		case True:
			return record.Bool(true), true
		case False:
			return record.Bool(false), true
		default:
			return record.Value{}, false
		}
	}
}

// truth interprets a value in boolean position. Only booleans carry truth;
// null and non-boolean values are Unknown.
func truth(v record.Value) Tribool {
	if b, ok := v.AsBool(); ok {
		if b {
			return True
		}
		return False
	}
	return Unknown
}

// compare applies a comparison operator to two values.
//
// Coercion rules:
//   - null compared with anything is Unknown, including null == null
//   - integer and float widen to a common numeric comparison
//   - text compares with text under all operators, ordered bytewise
//   - boolean compares with boolean under == and != only
//   - numeric-looking text compares with a number under == and != only
//   - every other pairing is Unknown
func compare(op BinaryOp, left, right record.Value) Tribool {
	if left.IsNull() || right.IsNull() {
		return Unknown
	}

	if left.IsNumeric() && right.IsNumeric() {
		return compareNumeric(op, left, right)
	}

	ls, lText := left.AsText()
	rs, rText := right.AsText()
	if lText && rText {
		return fromBool(compareOrdered(op, strings.Compare(ls, rs)))
	}

	lb, lBool := left.AsBool()
	rb, rBool := right.AsBool()
	if lBool && rBool {
		switch op {
		case OpEq:
			return fromBool(lb == rb)
		case OpNeq:
			return fromBool(lb != rb)
		default:
			return Unknown
		}
	}

	// Text on one side, number on the other: equality only, and only when
	// the text itself looks numeric.
	if (lText && right.IsNumeric()) || (rText && left.IsNumeric()) {
		if op != OpEq && op != OpNeq {
			return Unknown
		}
		var text string
		var num record.Value
		if lText {
			text, num = ls, right
		} else {
			text, num = rs, left
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return Unknown
		}
		n, _ := num.AsFloat()
		if op == OpEq {
			return fromBool(parsed == n)
		}
		return fromBool(parsed != n)
	}

	return Unknown
}

// compareNumeric widens integers to float only when the pairing is mixed, so
// two integers compare exactly.
func compareNumeric(op BinaryOp, left, right record.Value) Tribool {
	li, lInt := left.AsInt()
	ri, rInt := right.AsInt()
	if lInt && rInt {
		return fromBool(compareOrdered(op, cmpInt(li, ri)))
	}

	lf, _ := left.AsFloat()
	rf, _ := right.AsFloat()
	// NaN is neither less than, greater than, nor equal to anything; a
	// three-way comparison cannot represent it, so the result is Unknown.
	if math.IsNaN(lf) || math.IsNaN(rf) {
		return Unknown
	}
	return fromBool(compareOrdered(op, cmpFloat(lf, rf)))
}

// compareOrdered maps a three-way comparison result to the operator outcome.
func compareOrdered(op BinaryOp, c int) bool {
	switch op {
	case OpEq:
		return c == 0
	case OpNeq:
		return c != 0
	case OpLt:
		return c < 0
	case OpLte:
		return c <= 0
	case OpGt:
		return c > 0
	case OpGte:
		return c >= 0
	default:
		return false
	}
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func fromBool(b bool) Tribool {
	if b {
		return True
	}
	return False
}

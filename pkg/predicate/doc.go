// Package predicate implements the rule condition language: a small boolean
// grammar over record fields, literals, comparisons, and logical connectives,
// evaluated under three-valued logic.
//
// # Grammar
//
// Precedence from lowest to highest binding:
//
//	expr       := and ( "or" and )*
//	and        := not ( "and" not )*
//	not        := "not" not | comparison
//	comparison := atom [ ("==" | "!=" | "<" | "<=" | ">" | ">=") atom ]
//	atom       := literal | field | "(" expr ")"
//
// Literals are integers, floats, single- or double-quoted text, true, false,
// and null. Keywords are case-insensitive; "&&", "||", and "!" are accepted
// spellings of the connectives.
//
// # Three-valued evaluation
//
// Eval returns True, False, or Unknown. A missing field, a null operand, or a
// comparison between incompatible types yields Unknown rather than an error,
// so that a record the engine cannot judge is never reported as a violation.
// Integer and float widen to a common numeric comparison everywhere;
// numeric-looking text compares with numbers under equality only.
//
// Parsing and evaluation are pure functions and safe for concurrent use; a
// parsed expression is immutable and may be evaluated against many records
// from many goroutines.
package predicate

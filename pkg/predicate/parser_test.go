package predicate

import (
	"errors"
	"testing"
)

func TestParse_ValidExpressions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // canonical String() rendering
	}{
		{"comparison", "amount < 0", "amount < 0"},
		{"equality with single quotes", "status == 'ERROR'", `status == "ERROR"`},
		{"equality with double quotes", `status == "ERROR"`, `status == "ERROR"`},
		{"float literal", "ratio >= 0.5", "ratio >= 0.5"},
		{"negative literal", "amount < -10", "amount < -10"},
		{"null literal", "status != null", "status != null"},
		{"boolean literal", "active == true", "active == true"},
		{"bare field", "active", "active"},
		{"and", "amount < 0 and status == 'OK'", `(amount < 0) and (status == "OK")`},
		{"or", "a == 1 or b == 2", "(a == 1) or (b == 2)"},
		{"not", "not active", "not (active)"},
		{"symbolic connectives", "a == 1 && b == 2 || !c", "((a == 1) and (b == 2)) or (not (c))"},
		{"parentheses", "(a == 1 or b == 2) and c == 3", "((a == 1) or (b == 2)) and (c == 3)"},
		{"case-insensitive keywords", "a == 1 AND NOT b == 2", "(a == 1) and (not (b == 2))"},
		{"exponent float", "x > 1e3", "x > 1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got := expr.String(); got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Precedence(t *testing.T) {
	// or binds loosest: a and b or c == (a and b) or c
	expr, err := Parse("a == 1 and b == 2 or c == 3")
	if err != nil {
		t.Fatal(err)
	}
	root, ok := expr.(*Binary)
	if !ok || root.Op != OpOr {
		t.Fatalf("root = %v, want or-node", expr)
	}
	left, ok := root.Left.(*Binary)
	if !ok || left.Op != OpAnd {
		t.Fatalf("left = %v, want and-node", root.Left)
	}
}

func TestParse_NotBindsOverAnd(t *testing.T) {
	// not a and b == (not a) and b
	expr, err := Parse("not a and b")
	if err != nil {
		t.Fatal(err)
	}
	root, ok := expr.(*Binary)
	if !ok || root.Op != OpAnd {
		t.Fatalf("root = %v, want and-node", expr)
	}
	if _, ok := root.Left.(*Unary); !ok {
		t.Fatalf("left = %v, want not-node", root.Left)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid shift operator", "amount << 0"},
		{"single equals", "amount = 0"},
		{"empty input", ""},
		{"whitespace only", "   "},
		{"dangling operator", "amount <"},
		{"unterminated string", "status == 'ERR"},
		{"unbalanced paren", "(a == 1"},
		{"chained comparison", "1 < amount < 10"},
		{"trailing garbage", "a == 1 b"},
		{"bare ampersand", "a == 1 & b == 2"},
		{"unknown character", "a == 1 ; b == 2"},
		{"missing exponent digits", "x > 1e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", tt.input)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Errorf("Parse(%q) error type = %T, want *ParseError", tt.input, err)
			}
		})
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	_, err := Parse("amount << 0")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if perr.Pos != 8 {
		t.Errorf("Pos = %d, want 8 (second '<')", perr.Pos)
	}
}

func TestParse_KeywordsAreNotFieldNames(t *testing.T) {
	// "null" in atom position is the null literal, not a field reference.
	expr, err := Parse("null == null")
	if err != nil {
		t.Fatal(err)
	}
	b := expr.(*Binary)
	if _, ok := b.Left.(*Literal); !ok {
		t.Errorf("left = %T, want *Literal", b.Left)
	}
}

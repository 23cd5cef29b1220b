package predicate

import (
	"strconv"

	"veridian-hq/verdict/pkg/record"
)

// Parse compiles a condition text into an expression tree. It returns a
// *ParseError when the text does not match the supported grammar.
//
// Operator precedence, lowest to highest:
//
//	or  <  and  <  not  <  comparison (== != < <= > >=)  <  atom
//
// Atoms are literals (integers, floats, quoted text, true, false, null),
// field references, and parenthesized expressions.
func Parse(text string) (Expr, error) {
	tokens, err := scan(text)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, parseErrorf(tok.pos, "unexpected %s %q", tok.kind, tok.text)
	}

	return expr, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.peek().kind == tokenOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: OpOr, Left: left, Right: right}
	}

	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for p.peek().kind == tokenAnd {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: OpAnd, Left: left, Right: right}
	}

	return left, nil
}

func (p *parser) parseNot() (Expr, error) {
	if p.peek().kind == tokenNot {
		p.next()
		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Unary{Expr: inner}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (Expr, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	op, ok := comparisonOp(p.peek().kind)
	if !ok {
		return left, nil
	}
	p.next()

	right, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	// Chained comparisons (a < b < c) are rejected by the caller: the second
	// comparison token is left in the stream and fails the EOF check.
	return &Binary{Op: op, Left: left, Right: right}, nil
}

func (p *parser) parseAtom() (Expr, error) {
	tok := p.next()

	switch tok.kind {
	case tokenIdent:
		return &FieldRef{Name: tok.text}, nil

	case tokenInt:
		i, err := strconv.ParseInt(tok.text, 10, 64)
		if err != nil {
			return nil, parseErrorf(tok.pos, "invalid integer literal %q", tok.text)
		}
		return &Literal{Value: record.Int(i)}, nil

	case tokenFloat:
		f, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, parseErrorf(tok.pos, "invalid float literal %q", tok.text)
		}
		return &Literal{Value: record.Float(f)}, nil

	case tokenString:
		return &Literal{Value: record.Text(tok.text)}, nil

	case tokenTrue:
		return &Literal{Value: record.Bool(true)}, nil

	case tokenFalse:
		return &Literal{Value: record.Bool(false)}, nil

	case tokenNull:
		return &Literal{Value: record.Null()}, nil

	case tokenLParen:
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokenRParen {
			return nil, parseErrorf(closing.pos, "expected ')', got %s", closing.kind)
		}
		return expr, nil

	case tokenEOF:
		return nil, parseErrorf(tok.pos, "unexpected end of input")

	default:
		return nil, parseErrorf(tok.pos, "unexpected %s %q", tok.kind, tok.text)
	}
}

func comparisonOp(k tokenKind) (BinaryOp, bool) {
	switch k {
	case tokenEq:
		return OpEq, true
	case tokenNeq:
		return OpNeq, true
	case tokenLt:
		return OpLt, true
	case tokenLte:
		return OpLte, true
	case tokenGt:
		return OpGt, true
	case tokenGte:
		return OpGte, true
	default:
		return 0, false
	}
}

package predicate

import (
	"strings"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenInt
	tokenFloat
	tokenString
	tokenTrue
	tokenFalse
	tokenNull
	tokenAnd
	tokenOr
	tokenNot
	tokenEq
	tokenNeq
	tokenLt
	tokenLte
	tokenGt
	tokenGte
	tokenLParen
	tokenRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "end of input"
	case tokenIdent:
		return "identifier"
	case tokenInt:
		return "integer"
	case tokenFloat:
		return "float"
	case tokenString:
		return "string"
	case tokenTrue:
		return "true"
	case tokenFalse:
		return "false"
	case tokenNull:
		return "null"
	case tokenAnd:
		return "and"
	case tokenOr:
		return "or"
	case tokenNot:
		return "not"
	case tokenEq:
		return "=="
	case tokenNeq:
		return "!="
	case tokenLt:
		return "<"
	case tokenLte:
		return "<="
	case tokenGt:
		return ">"
	case tokenGte:
		return ">="
	case tokenLParen:
		return "("
	case tokenRParen:
		return ")"
	default:
		return "invalid"
	}
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

// scan tokenizes the condition text. The grammar has no arithmetic, so a
// leading '-' before a digit always starts a numeric literal.
func scan(input string) ([]token, error) {
	var tokens []token
	i := 0
	n := len(input)

	for i < n {
		c := input[i]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c == '(':
			tokens = append(tokens, token{tokenLParen, "(", i})
			i++

		case c == ')':
			tokens = append(tokens, token{tokenRParen, ")", i})
			i++

		case c == '=':
			if i+1 < n && input[i+1] == '=' {
				tokens = append(tokens, token{tokenEq, "==", i})
				i += 2
			} else {
				return nil, parseErrorf(i, "unexpected '=', did you mean '=='?")
			}

		case c == '!':
			if i+1 < n && input[i+1] == '=' {
				tokens = append(tokens, token{tokenNeq, "!=", i})
				i += 2
			} else {
				tokens = append(tokens, token{tokenNot, "!", i})
				i++
			}

		case c == '<':
			if i+1 < n && input[i+1] == '=' {
				tokens = append(tokens, token{tokenLte, "<=", i})
				i += 2
			} else {
				tokens = append(tokens, token{tokenLt, "<", i})
				i++
			}

		case c == '>':
			if i+1 < n && input[i+1] == '=' {
				tokens = append(tokens, token{tokenGte, ">=", i})
				i += 2
			} else {
				tokens = append(tokens, token{tokenGt, ">", i})
				i++
			}

		case c == '&':
			if i+1 < n && input[i+1] == '&' {
				tokens = append(tokens, token{tokenAnd, "&&", i})
				i += 2
			} else {
				return nil, parseErrorf(i, "unexpected '&', did you mean '&&'?")
			}

		case c == '|':
			if i+1 < n && input[i+1] == '|' {
				tokens = append(tokens, token{tokenOr, "||", i})
				i += 2
			} else {
				return nil, parseErrorf(i, "unexpected '|', did you mean '||'?")
			}

		case c == '\'' || c == '"':
			tok, next, err := scanString(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next

		case isDigit(c) || (c == '-' && i+1 < n && isDigit(input[i+1])):
			tok, next, err := scanNumber(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next

		case isIdentStart(c):
			start := i
			for i < n && isIdentPart(input[i]) {
				i++
			}
			word := input[start:i]
			tokens = append(tokens, token{keywordKind(word), word, start})

		default:
			return nil, parseErrorf(i, "unexpected character %q", c)
		}
	}

	tokens = append(tokens, token{tokenEOF, "", n})
	return tokens, nil
}

// scanString reads a single- or double-quoted string starting at input[start].
func scanString(input string, start int) (token, int, error) {
	quote := input[start]
	var sb strings.Builder
	i := start + 1

	for i < len(input) {
		c := input[i]
		switch c {
		case quote:
			return token{tokenString, sb.String(), start}, i + 1, nil
		case '\\':
			if i+1 >= len(input) {
				return token{}, 0, parseErrorf(i, "unterminated escape sequence")
			}
			esc := input[i+1]
			switch esc {
			case '\\', '\'', '"':
				sb.WriteByte(esc)
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				return token{}, 0, parseErrorf(i, "unsupported escape sequence \\%c", esc)
			}
			i += 2
		default:
			sb.WriteByte(c)
			i++
		}
	}

	return token{}, 0, parseErrorf(start, "unterminated string literal")
}

// scanNumber reads an integer or float literal, optionally signed.
func scanNumber(input string, start int) (token, int, error) {
	i := start
	if input[i] == '-' {
		i++
	}
	for i < len(input) && isDigit(input[i]) {
		i++
	}

	kind := tokenInt
	if i < len(input) && input[i] == '.' {
		kind = tokenFloat
		i++
		if i >= len(input) || !isDigit(input[i]) {
			return token{}, 0, parseErrorf(i, "malformed number: expected digit after '.'")
		}
		for i < len(input) && isDigit(input[i]) {
			i++
		}
	}

	if i < len(input) && (input[i] == 'e' || input[i] == 'E') {
		kind = tokenFloat
		i++
		if i < len(input) && (input[i] == '+' || input[i] == '-') {
			i++
		}
		if i >= len(input) || !isDigit(input[i]) {
			return token{}, 0, parseErrorf(i, "malformed number: expected exponent digits")
		}
		for i < len(input) && isDigit(input[i]) {
			i++
		}
	}

	return token{kind, input[start:i], start}, i, nil
}

// keywordKind maps reserved words to their token kinds; everything else is an
// identifier. Keywords are case-insensitive.
func keywordKind(word string) tokenKind {
	switch strings.ToLower(word) {
	case "and":
		return tokenAnd
	case "or":
		return tokenOr
	case "not":
		return tokenNot
	case "true":
		return tokenTrue
	case "false":
		return tokenFalse
	case "null":
		return tokenNull
	default:
		return tokenIdent
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

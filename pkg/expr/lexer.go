package expr

import (
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokComma
	tokEq
	tokNeq
	tokAnd
	tokOr
	tokNot
	tokIn
	tokContains
	tokIs
	tokDefined
	tokBool
)

type token struct {
	kind tokenKind
	text string
	num  float64
	b    bool
}

var keywordKinds = map[string]tokenKind{
	"and":      tokAnd,
	"or":       tokOr,
	"not":      tokNot,
	"in":       tokIn,
	"contains": tokContains,
	"is":       tokIs,
	"defined":  tokDefined,
}

// lex tokenizes a condition string. Identifiers are returned verbatim
// (un-normalized); normalization happens when the parser resolves an
// identifier to an Ident AST node.
func lex(src string) ([]token, error) {
	var toks []token
	r := []rune(src)
	n := len(r)
	i := 0

	for i < n {
		c := r[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen})
			i++
		case c == '[':
			toks = append(toks, token{kind: tokLBracket})
			i++
		case c == ']':
			toks = append(toks, token{kind: tokRBracket})
			i++
		case c == ',':
			toks = append(toks, token{kind: tokComma})
			i++
		case c == '=' && i+1 < n && r[i+1] == '=':
			toks = append(toks, token{kind: tokEq})
			i += 2
		case c == '!' && i+1 < n && r[i+1] == '=':
			toks = append(toks, token{kind: tokNeq})
			i += 2
		case c == '\'' || c == '"':
			quote := c
			j := i + 1
			var sb strings.Builder
			for j < n && r[j] != quote {
				sb.WriteRune(r[j])
				j++
			}
			if j >= n {
				return nil, fmt.Errorf("unterminated string literal at offset %d", i)
			}
			toks = append(toks, token{kind: tokString, text: sb.String()})
			i = j + 1
		case c >= '0' && c <= '9', c == '.' && i+1 < n && r[i+1] >= '0' && r[i+1] <= '9':
			j := i
			for j < n && (r[j] >= '0' && r[j] <= '9' || r[j] == '.') {
				j++
			}
			numStr := string(r[i:j])
			f, err := strconv.ParseFloat(numStr, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number literal %q at offset %d", numStr, i)
			}
			toks = append(toks, token{kind: tokNumber, num: f})
			i = j
		case isIdentStart(c):
			j := i
			for j < n && isIdentPart(r[j]) {
				j++
			}
			word := string(r[i:j])
			lower := strings.ToLower(word)
			switch lower {
			case "true":
				toks = append(toks, token{kind: tokBool, b: true})
			case "false":
				toks = append(toks, token{kind: tokBool, b: false})
			default:
				if kw, ok := keywordKinds[lower]; ok {
					toks = append(toks, token{kind: kw, text: word})
				} else {
					toks = append(toks, token{kind: tokIdent, text: word})
				}
			}
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", string(c), i)
		}
	}

	toks = append(toks, token{kind: tokEOF})
	return toks, nil
}

func isIdentStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '.' || c == '-'
}

func isIdentPart(c rune) bool {
	return isIdentStart(c)
}

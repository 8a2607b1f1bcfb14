package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vburojevic/faultline/internal/domain"
)

// Grammar:
//
//	expr    = and { ("||" | "or") and }
//	and     = unary { ("&&" | "and") unary }
//	unary   = ("!" | "not") unary | "(" expr ")" | field op value
//	value   = ident | number | "quoted" | /regex/flags

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokValue // quoted string, number or regex literal
	tokLParen
	tokRParen
	tokAnd
	tokOr
	tokNot
	tokOp
)

type token struct {
	kind tokKind
	val  string
	pos  int
}

// longest operators first so "!=" wins over "!"
var symbolTokens = []struct {
	sym  string
	kind tokKind
}{
	{"&&", tokAnd}, {"||", tokOr},
	{"!=", tokOp}, {"!~", tokOp}, {">=", tokOp}, {"<=", tokOp},
	{"=", tokOp}, {"~", tokOp}, {"^", tokOp}, {"$", tokOp},
	{"!", tokNot}, {"(", tokLParen}, {")", tokRParen},
}

func lexWhere(input string) ([]token, error) {
	var toks []token
	i := 0
scan:
	for i < len(input) {
		ch := input[i]
		if isSpace(ch) {
			i++
			continue
		}

		for _, st := range symbolTokens {
			if strings.HasPrefix(input[i:], st.sym) {
				toks = append(toks, token{kind: st.kind, val: st.sym, pos: i})
				i += len(st.sym)
				continue scan
			}
		}

		switch {
		case ch == '\'' || ch == '"':
			s, next, err := lexQuoted(input, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokValue, val: s, pos: i})
			i = next
		case ch == '/':
			pat, next, err := lexRegex(input, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokValue, val: pat, pos: i})
			i = next
		case ch == '&' || ch == '|' || ch == '>' || ch == '<':
			return nil, fmt.Errorf("unexpected character %q at %d", ch, i)
		default:
			start := i
			for i < len(input) && !isDelimiter(input[i]) {
				i++
			}
			word := input[start:i]
			kind := tokIdent
			if _, err := strconv.ParseFloat(word, 64); err == nil {
				kind = tokValue
			}
			toks = append(toks, token{kind: kind, val: word, pos: start})
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(input)}), nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isDelimiter(b byte) bool {
	return isSpace(b) || strings.IndexByte("()&|!><=~^$'\"/", b) >= 0
}

func lexQuoted(input string, start int) (string, int, error) {
	quote := input[start]
	for i := start + 1; i < len(input); i++ {
		switch input[i] {
		case '\\':
			i++
		case quote:
			lit := input[start : i+1]
			if quote == '\'' {
				lit = `"` + strings.ReplaceAll(lit[1:len(lit)-1], `"`, `\"`) + `"`
			}
			s, err := strconv.Unquote(lit)
			if err != nil {
				return "", 0, fmt.Errorf("invalid quoted string at %d: %w", start, err)
			}
			return s, i + 1, nil
		}
	}
	return "", 0, fmt.Errorf("unterminated string starting at %d", start)
}

// lexRegex reads /pattern/flags; a literal slash inside the pattern is written \/
func lexRegex(input string, start int) (string, int, error) {
	for i := start + 1; i < len(input); i++ {
		switch input[i] {
		case '\\':
			i++
		case '/':
			pat := strings.ReplaceAll(input[start+1:i], `\/`, `/`)
			j := i + 1
			for j < len(input) && ((input[j] >= 'a' && input[j] <= 'z') || (input[j] >= 'A' && input[j] <= 'Z')) {
				j++
			}
			flags := strings.ToLower(input[i+1 : j])
			if strings.Trim(flags, "ims") != "" {
				return "", 0, fmt.Errorf("unsupported regex flags %q at %d (supported: i, m, s)", flags, start)
			}
			if flags != "" {
				pat = "(?" + flags + ")" + pat
			}
			return pat, j, nil
		}
	}
	return "", 0, fmt.Errorf("unterminated regex literal starting at %d", start)
}

type whereExpr interface {
	Match(event domain.Event) bool
}

type whereAndExpr struct{ left, right whereExpr }

func (e *whereAndExpr) Match(event domain.Event) bool {
	return e.left.Match(event) && e.right.Match(event)
}

type whereOrExpr struct{ left, right whereExpr }

func (e *whereOrExpr) Match(event domain.Event) bool {
	return e.left.Match(event) || e.right.Match(event)
}

type whereNotExpr struct{ inner whereExpr }

func (e *whereNotExpr) Match(event domain.Event) bool {
	return !e.inner.Match(event)
}

type whereParser struct {
	toks []token
	pos  int
}

func parseWhereExpr(input string) (whereExpr, error) {
	toks, err := lexWhere(input)
	if err != nil {
		return nil, err
	}
	p := &whereParser{toks: toks}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("unexpected token %q at %d", t.val, t.pos)
	}
	return expr, nil
}

func (p *whereParser) peek() token { return p.toks[p.pos] }

func (p *whereParser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// accept consumes the next token when it has the given kind or is the keyword
func (p *whereParser) accept(kind tokKind, keyword string) bool {
	t := p.peek()
	if t.kind == kind || (t.kind == tokIdent && keyword != "" && strings.EqualFold(t.val, keyword)) {
		p.next()
		return true
	}
	return false
}

func (p *whereParser) parseOr() (whereExpr, error) {
	left, err := p.parseAnd()
	for err == nil && p.accept(tokOr, "or") {
		var right whereExpr
		if right, err = p.parseAnd(); err == nil {
			left = &whereOrExpr{left: left, right: right}
		}
	}
	return left, err
}

func (p *whereParser) parseAnd() (whereExpr, error) {
	left, err := p.parseUnary()
	for err == nil && p.accept(tokAnd, "and") {
		var right whereExpr
		if right, err = p.parseUnary(); err == nil {
			left = &whereAndExpr{left: left, right: right}
		}
	}
	return left, err
}

func (p *whereParser) parseUnary() (whereExpr, error) {
	if p.accept(tokNot, "not") {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &whereNotExpr{inner: inner}, nil
	}
	if p.accept(tokLParen, "") {
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.accept(tokRParen, "") {
			return nil, fmt.Errorf("expected ')' at %d", p.peek().pos)
		}
		return inner, nil
	}
	return p.parseComparison()
}

func (p *whereParser) parseComparison() (whereExpr, error) {
	field := p.next()
	if field.kind != tokIdent {
		return nil, fmt.Errorf("expected field name at %d", field.pos)
	}
	op := p.next()
	if op.kind != tokOp {
		return nil, fmt.Errorf("expected operator after field %q at %d", field.val, op.pos)
	}
	val := p.next()
	if val.kind != tokIdent && val.kind != tokValue {
		return nil, fmt.Errorf("expected value after %q at %d", op.val, val.pos)
	}
	wc, err := newWhereClause(field.val, op.val, val.val)
	if err != nil {
		return nil, err
	}
	return wc, nil
}

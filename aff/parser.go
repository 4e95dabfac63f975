// Package aff parses the plaintext chart format into a generic command
// tree. Decoding the tree into typed commands lives in package chart.
package aff

import (
	"strconv"
	"strings"
)

// Parse parses a whole aff file: an optional header section terminated
// by a lone "-" line, followed by the command stream. It fails with a
// *SyntaxError at the first unparseable token and never returns a
// partial result.
func Parse(text string) (*Result, error) {
	res := &Result{Header: map[string]string{}}

	body, startLine, err := splitHeader(text, res)
	if err != nil {
		return nil, err
	}

	p := newParser(body, startLine)
	nodes, err := p.parseStatements(tokenEOF)
	if err != nil {
		return nil, err
	}
	res.nodes = nodes
	return res, nil
}

// splitHeader consumes "Key:Value" lines up to a lone "-" line. A file
// whose first meaningful line is not a header pair has no header.
func splitHeader(text string, res *Result) (body string, startLine int, err error) {
	lines := strings.Split(text, "\n")

	first := 0
	for first < len(lines) && strings.TrimSpace(lines[first]) == "" {
		first++
	}
	if first >= len(lines) || !looksLikeHeader(lines[first]) {
		return text, 1, nil
	}

	for i := first; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if line == "-" {
			return strings.Join(lines[i+1:], "\n"), i + 2, nil
		}
		key, value, found := strings.Cut(line, ":")
		if !found || strings.TrimSpace(key) == "" {
			return "", 0, &SyntaxError{Line: i + 1, Column: 1, Expected: "header pair or '-' terminator"}
		}
		key = strings.TrimSpace(key)
		if _, seen := res.Header[key]; !seen {
			res.HeaderOrder = append(res.HeaderOrder, key)
		}
		res.Header[key] = strings.TrimSpace(value)
	}
	return "", 0, &SyntaxError{Line: len(lines), Column: 1, Expected: "'-' header terminator"}
}

func looksLikeHeader(line string) bool {
	key, _, found := strings.Cut(line, ":")
	if !found {
		return false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		if !isIdentChar(key[i]) {
			return false
		}
	}
	return true
}

type parser struct {
	lex  *lexer
	cur  token
	peek token
}

func newParser(input string, startLine int) *parser {
	p := &parser{lex: newLexer(input, startLine)}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *parser) nextToken() {
	p.cur = p.peek
	p.peek = p.lex.nextToken()
}

func (p *parser) errExpected(what string) error {
	return &SyntaxError{Line: p.cur.line, Column: p.cur.col, Expected: what}
}

// parseStatements reads ";"-terminated statements until the terminator
// token, which is left unconsumed.
func (p *parser) parseStatements(end tokenType) ([]ParseNode, error) {
	var nodes []ParseNode
	for p.cur.typ != end && p.cur.typ != tokenEOF {
		// stray semicolons between statements are harmless
		if p.cur.typ == tokenSemi {
			p.nextToken()
			continue
		}
		node, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if p.cur.typ != tokenSemi {
			return nil, p.errExpected("';'")
		}
		p.nextToken()
		nodes = append(nodes, node)
	}
	if p.cur.typ != end {
		return nil, p.errExpected(end.String())
	}
	return nodes, nil
}

// parseStatement reads one command invocation: an optional keyword, a
// parenthesized argument list, then an optional "[...]" sub-list or
// "{...}" block.
func (p *parser) parseStatement() (ParseNode, error) {
	node := ParseNode{Line: p.cur.line, Col: p.cur.col}

	if p.cur.typ == tokenIdent {
		node.Name = p.cur.lit
		p.nextToken()
	}

	args, err := p.parseArgs()
	if err != nil {
		return node, err
	}
	node.Args = args

	switch p.cur.typ {
	case tokenLBracket:
		p.nextToken()
		for p.cur.typ != tokenRBracket {
			child, err := p.parseChild()
			if err != nil {
				return node, err
			}
			node.Children = append(node.Children, child)
			if p.cur.typ == tokenComma {
				p.nextToken()
				continue
			}
			if p.cur.typ != tokenRBracket {
				return node, p.errExpected("',' or ']'")
			}
		}
		p.nextToken()
	case tokenLBrace:
		p.nextToken()
		block, err := p.parseStatements(tokenRBrace)
		if err != nil {
			return node, err
		}
		node.Block = block
		p.nextToken()
	}

	return node, nil
}

// parseChild reads a nested invocation like "arctap(28666)".
func (p *parser) parseChild() (ParseNode, error) {
	node := ParseNode{Line: p.cur.line, Col: p.cur.col}
	if p.cur.typ != tokenIdent {
		return node, p.errExpected("nested command name")
	}
	node.Name = p.cur.lit
	p.nextToken()

	args, err := p.parseArgs()
	if err != nil {
		return node, err
	}
	node.Args = args
	return node, nil
}

func (p *parser) parseArgs() ([]Value, error) {
	if p.cur.typ != tokenLParen {
		return nil, p.errExpected("'('")
	}
	p.nextToken()

	var args []Value
	if p.cur.typ == tokenRParen {
		p.nextToken()
		return args, nil
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		args = append(args, v)

		if p.cur.typ == tokenComma {
			p.nextToken()
			continue
		}
		if p.cur.typ == tokenRParen {
			p.nextToken()
			return args, nil
		}
		return nil, p.errExpected("',' or ')'")
	}
}

func (p *parser) parseValue() (Value, error) {
	switch p.cur.typ {
	case tokenNumber:
		lit := p.cur.lit
		p.nextToken()
		if strings.Contains(lit, ".") {
			f, err := strconv.ParseFloat(lit, 64)
			if err != nil {
				return Value{}, &SyntaxError{Line: p.cur.line, Column: p.cur.col, Expected: "decimal literal"}
			}
			return Value{Kind: ValueFloat, Float: f}, nil
		}
		n, err := strconv.Atoi(lit)
		if err != nil {
			return Value{}, &SyntaxError{Line: p.cur.line, Column: p.cur.col, Expected: "integer literal"}
		}
		return Value{Kind: ValueInt, Int: n}, nil
	case tokenIdent:
		v := Value{Kind: ValueIdent, Ident: p.cur.lit}
		p.nextToken()
		return v, nil
	}
	return Value{}, p.errExpected("argument value")
}

package parser

import (
	"fmt"
	"strconv"

	"github.com/jjppp/misri/pkg/color"
	"github.com/jjppp/misri/pkg/lexer"
)

// syntaxError is a parse failure anchored at the offending token
type syntaxError struct {
	msg string
	tok lexer.Token
}

// expect consumes a token of the given type or reports what was found instead
func (p *Parser) expect(t lexer.TokenType) *syntaxError {
	if p.currentToken.Type != t {
		return &syntaxError{msg: p.categorizeError(t, p.currentToken), tok: p.currentToken}
	}

	p.nextToken()
	return nil
}

// expectName consumes an identifier and returns it
func (p *Parser) expectName() (string, *syntaxError) {
	tok := p.currentToken
	if tok.Type != lexer.ID {
		return "", &syntaxError{msg: p.categorizeError(lexer.ID, tok), tok: tok}
	}

	p.nextToken()
	return tok.Literal, nil
}

// parseInt consumes an optionally negated integer literal
func (p *Parser) parseInt() (int64, *syntaxError) {
	start := p.currentToken
	sign := int64(1)
	if start.Type == lexer.MINUS {
		sign = -1
		p.nextToken()
	}

	tok := p.currentToken
	if tok.Type != lexer.NUM {
		return 0, &syntaxError{msg: p.categorizeError(lexer.NUM, tok), tok: tok}
	}

	text := tok.Literal
	if sign < 0 {
		text = "-" + text
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, &syntaxError{msg: "Integer literal out of range", tok: start}
	}

	p.nextToken()
	return v, nil
}

// synchronize skips the rest of the line where an error occurred
func (p *Parser) synchronize(line int) {
	for p.currentToken.Type != lexer.EOF && p.currentToken.Pos.Line <= line {
		p.nextToken()
	}
}

// addError records a parsing error with location
func (p *Parser) addError(msg string, tok lexer.Token) {
	formatted := color.RedText(msg) + " at " + color.YellowText(tok.Pos.String())
	p.errors = append(p.errors, formatted)
}

// unexpected describes a token that cannot start or continue a statement
func (p *Parser) unexpected(tok lexer.Token) string {
	if tok.Type == lexer.ILLEGAL {
		return fmt.Sprintf("Illegal character '%s'", tok.Lexeme)
	}

	return fmt.Sprintf("Unexpected token '%s'", tok.Lexeme)
}

// categorizeError provides a specific error message based on expected token and current token
func (p *Parser) categorizeError(expected lexer.TokenType, current lexer.Token) string {
	if current.Type == lexer.ILLEGAL {
		return p.unexpected(current)
	}
	if current.Type == lexer.EOF {
		return fmt.Sprintf("Unexpected end of input, expected '%s'", expected)
	}

	switch expected {
	case lexer.ID:
		if current.Type.GetCategory() == lexer.KEYWORD {
			return "Cannot use reserved keyword as identifier"
		}
		return "Expected identifier"
	case lexer.NUM:
		return "Expected number"
	case lexer.COLON:
		return "Missing colon"
	case lexer.ASSIGN:
		return "Missing assignment operator"
	case lexer.GOTO:
		return "Missing GOTO"
	}

	return fmt.Sprintf("Syntax error, expected '%s' but found '%s'", expected, current.Lexeme)
}

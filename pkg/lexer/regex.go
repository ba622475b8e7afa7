package lexer

import (
	"regexp"
)

func newTokenRegex(raw string) *regexp.Regexp {
	return regexp.MustCompile(raw)
}

// Token regex patterns
var tokenRegexes = map[TokenType]*regexp.Regexp{
	LE:     newTokenRegex(`^<=`),
	GE:     newTokenRegex(`^>=`),
	EQ:     newTokenRegex(`^==`),
	NE:     newTokenRegex(`^!=`),
	ASSIGN: newTokenRegex(`^:=`),

	FUNCTION: newTokenRegex(`^FUNCTION\b`),
	LABEL:    newTokenRegex(`^LABEL\b`),
	IF:       newTokenRegex(`^IF\b`),
	GOTO:     newTokenRegex(`^GOTO\b`),
	RETURN:   newTokenRegex(`^RETURN\b`),
	DEC:      newTokenRegex(`^DEC\b`),
	ARG:      newTokenRegex(`^ARG\b`),
	CALL:     newTokenRegex(`^CALL\b`),
	PARAM:    newTokenRegex(`^PARAM\b`),
	READ:     newTokenRegex(`^READ\b`),
	WRITE:    newTokenRegex(`^WRITE\b`),

	SHARP: newTokenRegex(`^#`),
	AMP:   newTokenRegex(`^&`),
	PLUS:  newTokenRegex(`^\+`),
	MINUS: newTokenRegex(`^-`),
	STAR:  newTokenRegex(`^\*`),
	DIV:   newTokenRegex(`^/`),
	LT:    newTokenRegex(`^<`),
	GT:    newTokenRegex(`^>`),
	COLON: newTokenRegex(`^:`),

	NUM: newTokenRegex(`^\d+`),
	ID:  newTokenRegex(`^[a-zA-Z_][a-zA-Z0-9_]*`),
}

var whitespaceRegex = regexp.MustCompile(`^\s+`)

// Token precedence order for matching (longer patterns first)
var tokenPrecedenceOrder = []TokenType{
	FUNCTION, RETURN, LABEL, PARAM, WRITE, GOTO, CALL, READ, DEC, ARG, IF,
	LE, GE, EQ, NE, ASSIGN,
	SHARP, AMP, PLUS, MINUS, STAR, DIV, LT, GT, COLON,
	NUM, ID,
}

// Match the first token at the start of the string.
// Whitespace is reported as a matched EOF so the caller can skip it.
func MatchToken(s string) (TokenType, string, bool) {
	if s == "" {
		return EOF, "", false
	} else if match := whitespaceRegex.FindString(s); match != "" {
		return EOF, match, true
	}

	for _, tokenType := range tokenPrecedenceOrder {
		if regex, ok := tokenRegexes[tokenType]; ok {
			if match := regex.FindString(s); match != "" {
				return tokenType, match, true
			}
		}
	}

	return ILLEGAL, string(s[0]), false
}

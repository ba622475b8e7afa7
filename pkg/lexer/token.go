package lexer

import (
	"fmt"
)

type TokenType int
type TokenCategory int

type Token struct {
	Type    TokenType // Type of the token
	Lexeme  string    // Actual string from source code
	Literal string    // Literal value (if applicable), empty string if not
	Pos     Position  // Position in source code
}

// NewToken creates a new Token instance
func NewToken(tokenType TokenType, lexeme string, literal string, Pos Position) Token {
	return Token{
		Type:    tokenType,
		Lexeme:  lexeme,
		Literal: literal,
		Pos:     Pos,
	}
}

const (
	NONE TokenCategory = iota
	KEYWORD
	IDENTIFIER
	LITERAL
	OPERATOR
	DELIMITER
)

const (
	EOF TokenType = iota // End of file

	FUNCTION // FUNCTION
	LABEL    // LABEL
	IF       // IF
	GOTO     // GOTO
	RETURN   // RETURN
	DEC      // DEC
	ARG      // ARG
	CALL     // CALL
	PARAM    // PARAM
	READ     // READ
	WRITE    // WRITE

	ID  // id (identifier)
	NUM // num (unsigned integer)

	ASSIGN // :=
	SHARP  // #
	AMP    // &
	PLUS   // +
	MINUS  // -
	STAR   // *
	DIV    // /
	LT     // <
	GT     // >
	LE     // <=
	GE     // >=
	EQ     // ==
	NE     // !=

	COLON // :

	ILLEGAL // illegal token
)

var Keywords = map[string]TokenType{
	"FUNCTION": FUNCTION,
	"LABEL":    LABEL,
	"IF":       IF,
	"GOTO":     GOTO,
	"RETURN":   RETURN,
	"DEC":      DEC,
	"ARG":      ARG,
	"CALL":     CALL,
	"PARAM":    PARAM,
	"READ":     READ,
	"WRITE":    WRITE,
}

var tokenNames = map[TokenType]string{
	FUNCTION: "FUNCTION",
	LABEL:    "LABEL",
	IF:       "IF",
	GOTO:     "GOTO",
	RETURN:   "RETURN",
	DEC:      "DEC",
	ARG:      "ARG",
	CALL:     "CALL",
	PARAM:    "PARAM",
	READ:     "READ",
	WRITE:    "WRITE",
	ASSIGN:   ":=",
	SHARP:    "#",
	AMP:      "&",
	PLUS:     "+",
	MINUS:    "-",
	STAR:     "*",
	DIV:      "/",
	LT:       "<",
	GT:       ">",
	LE:       "<=",
	GE:       ">=",
	EQ:       "==",
	NE:       "!=",
	COLON:    ":",
	ID:       "id",
	NUM:      "num",
	EOF:      "$",
}

// String returns a string representation of the Token
func (t Token) String() string {
	if t.Literal == "" {
		return fmt.Sprintf("T_{%s, %v, nil, %s}",
			t.Type, t.Lexeme, t.Pos.String())
	}

	return fmt.Sprintf("T_{%s, %v, %q, %s}",
		t.Type, t.Lexeme, t.Literal, t.Pos.String())
}

// String returns a string representation of the TokenType
func (t TokenType) String() string {
	if str, ok := tokenNames[t]; ok {
		return str
	}

	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// GetCategory returns the category of the token
func (t TokenType) GetCategory() TokenCategory {
	switch t {
	case FUNCTION, LABEL, IF, GOTO, RETURN, DEC, ARG, CALL, PARAM, READ, WRITE:
		return KEYWORD
	case ID:
		return IDENTIFIER
	case NUM:
		return LITERAL
	case ASSIGN, SHARP, AMP, PLUS, MINUS, STAR, DIV, LT, GT, LE, GE, EQ, NE:
		return OPERATOR
	case COLON:
		return DELIMITER
	default:
		return NONE
	}
}

// IsRelational reports whether the token is a relational operator
func (t TokenType) IsRelational() bool {
	switch t {
	case LT, GT, LE, GE, EQ, NE:
		return true
	default:
		return false
	}
}

// IsArithmetic reports whether the token is a binary arithmetic operator
func (t TokenType) IsArithmetic() bool {
	switch t {
	case PLUS, MINUS, STAR, DIV:
		return true
	default:
		return false
	}
}

// IsKeyword checks if the given identifier is a keyword and returns its TokenType if it is
func IsKeyword(identifier string) (TokenType, bool) {
	tokenType, ok := Keywords[identifier]
	return tokenType, ok
}

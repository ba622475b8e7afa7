package parser

import (
	"github.com/jjppp/misri/pkg/ir"
	"github.com/jjppp/misri/pkg/lexer"
)

type Parser struct {
	lexer        *lexer.Lexer   // lexer instance
	currentToken lexer.Token    // current token
	funcs        []*ir.Func     // parsed functions in source order
	current      *ir.Func       // function receiving instructions
	lastPos      lexer.Position // position of the most recently consumed token
	errors       []string       // list of errors
}

// NewParser creates a new parser instance
func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{
		lexer:  l,
		funcs:  []*ir.Func{},
		errors: []string{},
	}

	// Initialize current token
	p.nextToken()

	return p
}

// Parse reads the whole input and returns the unresolved functions.
// Syntax errors are collected and parsing resumes on the next line.
func (p *Parser) Parse() []*ir.Func {
	for p.currentToken.Type != lexer.EOF {
		if err := p.parseStatement(); err != nil {
			p.addError(err.msg, err.tok)
			p.synchronize(err.tok.Pos.Line)
		}
	}

	return p.funcs
}

// parseStatement parses a function header or a single instruction
func (p *Parser) parseStatement() *syntaxError {
	if p.currentToken.Type == lexer.FUNCTION {
		if err := p.parseFuncHeader(); err != nil {
			return err
		}
		return p.expectLineEnd()
	}

	start := p.currentToken
	in, err := p.parseInstr()
	if err != nil {
		return err
	}
	if err := p.expectLineEnd(); err != nil {
		return err
	}

	if p.current == nil {
		return &syntaxError{msg: "Instruction outside of function", tok: start}
	}
	p.current.Body = append(p.current.Body, in)

	return nil
}

// expectLineEnd checks that nothing follows a statement on its line
func (p *Parser) expectLineEnd() *syntaxError {
	tok := p.currentToken
	if tok.Type == lexer.EOF || !tok.Pos.SameLine(p.lastPos) {
		return nil
	}

	return &syntaxError{msg: p.unexpected(tok), tok: tok}
}

// parseFuncHeader parses `FUNCTION name :` and opens a new function
func (p *Parser) parseFuncHeader() *syntaxError {
	p.nextToken()

	name, err := p.expectName()
	if err != nil {
		return err
	}
	if err := p.expect(lexer.COLON); err != nil {
		return err
	}

	p.current = ir.NewFunc(name)
	p.funcs = append(p.funcs, p.current)

	return nil
}

// parseInstr parses one instruction
func (p *Parser) parseInstr() (ir.Instruction, *syntaxError) {
	tok := p.currentToken

	switch tok.Type {
	case lexer.LABEL:
		p.nextToken()
		name, err := p.expectName()
		if err != nil {
			return ir.Instruction{}, err
		}
		if err := p.expect(lexer.COLON); err != nil {
			return ir.Instruction{}, err
		}
		return ir.Label(name), nil

	case lexer.GOTO:
		p.nextToken()
		name, err := p.expectName()
		if err != nil {
			return ir.Instruction{}, err
		}
		return ir.Goto(name), nil

	case lexer.IF:
		return p.parseCond()

	case lexer.RETURN, lexer.ARG, lexer.WRITE:
		p.nextToken()
		y, err := p.parseOperand()
		if err != nil {
			return ir.Instruction{}, err
		}
		switch tok.Type {
		case lexer.RETURN:
			return ir.Return(y), nil
		case lexer.ARG:
			return ir.Arg(y), nil
		default:
			return ir.Write(y), nil
		}

	case lexer.PARAM, lexer.READ:
		p.nextToken()
		x, err := p.parseRegister()
		if err != nil {
			return ir.Instruction{}, err
		}
		if tok.Type == lexer.PARAM {
			return ir.Param(x), nil
		}
		return ir.Read(x), nil

	case lexer.DEC:
		p.nextToken()
		x, err := p.parseRegister()
		if err != nil {
			return ir.Instruction{}, err
		}
		size, err := p.parseInt()
		if err != nil {
			return ir.Instruction{}, err
		}
		if size < 0 {
			return ir.Instruction{}, &syntaxError{msg: "Negative allocation size", tok: tok}
		}
		return ir.Dec(x, size), nil

	case lexer.STAR:
		p.nextToken()
		x, err := p.parseOperand()
		if err != nil {
			return ir.Instruction{}, err
		}
		if err := p.expect(lexer.ASSIGN); err != nil {
			return ir.Instruction{}, err
		}
		y, err := p.parseOperand()
		if err != nil {
			return ir.Instruction{}, err
		}
		return ir.Store(x, y), nil

	case lexer.ID:
		return p.parseAssign()

	default:
		return ir.Instruction{}, &syntaxError{msg: p.unexpected(tok), tok: tok}
	}
}

// parseAssign parses every form starting with `x :=`
func (p *Parser) parseAssign() (ir.Instruction, *syntaxError) {
	x, err := p.parseRegister()
	if err != nil {
		return ir.Instruction{}, err
	}
	if err := p.expect(lexer.ASSIGN); err != nil {
		return ir.Instruction{}, err
	}

	switch p.currentToken.Type {
	case lexer.AMP:
		p.nextToken()
		y, err := p.parseOperand()
		if err != nil {
			return ir.Instruction{}, err
		}
		return ir.Addr(x, y), nil

	case lexer.STAR:
		p.nextToken()
		y, err := p.parseOperand()
		if err != nil {
			return ir.Instruction{}, err
		}
		return ir.Load(x, y), nil

	case lexer.CALL:
		p.nextToken()
		name, err := p.expectName()
		if err != nil {
			return ir.Instruction{}, err
		}
		return ir.Call(x, name), nil
	}

	start := p.currentToken.Pos
	y, err := p.parseOperand()
	if err != nil {
		return ir.Instruction{}, err
	}

	// an operator on a later line belongs to the next instruction (`*p := ...`)
	if !p.currentToken.Type.IsArithmetic() || !p.currentToken.Pos.SameLine(start) {
		return ir.Assign(x, y), nil
	}

	op := arithOps[p.currentToken.Type]
	p.nextToken()
	z, err := p.parseOperand()
	if err != nil {
		return ir.Instruction{}, err
	}

	return ir.Arith(op, x, y, z), nil
}

// parseCond parses `IF y rel z GOTO label`
func (p *Parser) parseCond() (ir.Instruction, *syntaxError) {
	p.nextToken()

	y, err := p.parseOperand()
	if err != nil {
		return ir.Instruction{}, err
	}

	relTok := p.currentToken
	rel, ok := relations[relTok.Type]
	if !ok {
		return ir.Instruction{}, &syntaxError{msg: "Expected relational operator", tok: relTok}
	}
	p.nextToken()

	z, err := p.parseOperand()
	if err != nil {
		return ir.Instruction{}, err
	}
	if err := p.expect(lexer.GOTO); err != nil {
		return ir.Instruction{}, err
	}
	name, err := p.expectName()
	if err != nil {
		return ir.Instruction{}, err
	}

	return ir.Cond(y, rel, z, name), nil
}

// parseOperand parses `#[-]int` or a register name
func (p *Parser) parseOperand() (ir.Operand, *syntaxError) {
	if p.currentToken.Type == lexer.SHARP {
		p.nextToken()
		v, err := p.parseInt()
		if err != nil {
			return ir.Operand{}, err
		}
		return ir.NewImm(v), nil
	}

	return p.parseRegister()
}

// parseRegister parses a register name
func (p *Parser) parseRegister() (ir.Operand, *syntaxError) {
	name, err := p.expectName()
	if err != nil {
		return ir.Operand{}, err
	}

	return ir.NewReg(name), nil
}

// nextToken advances to the next token from the lexer
func (p *Parser) nextToken() {
	p.lastPos = p.currentToken.Pos
	p.currentToken = p.lexer.NextToken()
}

// Errors returns the list of parsing errors
func (p *Parser) Errors() []string {
	return p.errors
}

var arithOps = map[lexer.TokenType]ir.Operation{
	lexer.PLUS:  ir.OpAdd,
	lexer.MINUS: ir.OpSub,
	lexer.STAR:  ir.OpMul,
	lexer.DIV:   ir.OpDiv,
}

var relations = map[lexer.TokenType]ir.Relation{
	lexer.LT: ir.RelLt,
	lexer.LE: ir.RelLe,
	lexer.GT: ir.RelGt,
	lexer.GE: ir.RelGe,
	lexer.EQ: ir.RelEq,
	lexer.NE: ir.RelNe,
}

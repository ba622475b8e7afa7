package parser_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/jjppp/misri/pkg/color"
	"github.com/jjppp/misri/pkg/ir"
	"github.com/jjppp/misri/pkg/lexer"
	"github.com/jjppp/misri/pkg/parser"
)

func parse(t *testing.T, src string) ([]*ir.Func, []string) {
	t.Helper()
	color.EnableColor(false)
	p := parser.NewParser(lexer.NewLexer(src))
	funcs := p.Parse()
	return funcs, p.Errors()
}

func reg(name string) ir.Operand {
	return ir.NewReg(name)
}

func imm(v int64) ir.Operand {
	return ir.NewImm(v)
}

func TestInstructions(t *testing.T) {
	funcs, errs := parse(t, `FUNCTION f :
		x := y
		x := y + z
		x := y - z
		x := y * z
		x := y / z
		x := &y
		x := *y
		*x := y
		GOTO wjp
		LABEL wjp :
		IF x < y GOTO wjp
		RETURN x
		DEC arr 24
		ARG x
		y := CALL foo
		PARAM x
		READ x
		WRITE x
		x := #-7
		IF #1 != x GOTO wjp`)

	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(funcs) != 1 {
		t.Fatalf("expected 1 function, got %d", len(funcs))
	}

	expected := []ir.Instruction{
		ir.Assign(reg("x"), reg("y")),
		ir.Arith(ir.OpAdd, reg("x"), reg("y"), reg("z")),
		ir.Arith(ir.OpSub, reg("x"), reg("y"), reg("z")),
		ir.Arith(ir.OpMul, reg("x"), reg("y"), reg("z")),
		ir.Arith(ir.OpDiv, reg("x"), reg("y"), reg("z")),
		ir.Addr(reg("x"), reg("y")),
		ir.Load(reg("x"), reg("y")),
		ir.Store(reg("x"), reg("y")),
		ir.Goto("wjp"),
		ir.Label("wjp"),
		ir.Cond(reg("x"), ir.RelLt, reg("y"), "wjp"),
		ir.Return(reg("x")),
		ir.Dec(reg("arr"), 24),
		ir.Arg(reg("x")),
		ir.Call(reg("y"), "foo"),
		ir.Param(reg("x")),
		ir.Read(reg("x")),
		ir.Write(reg("x")),
		ir.Assign(reg("x"), imm(-7)),
		ir.Cond(imm(1), ir.RelNe, reg("x"), "wjp"),
	}

	body := funcs[0].Body
	if len(body) != len(expected) {
		t.Fatalf("expected %d instructions, got %d", len(expected), len(body))
	}
	for i := range expected {
		if !reflect.DeepEqual(body[i], expected[i]) {
			t.Errorf("instruction %d: expected %q, got %q", i, expected[i], body[i])
		}
	}
}

func TestStoreAfterAssignIsNotMultiplication(t *testing.T) {
	funcs, errs := parse(t, `FUNCTION main :
		tmp := arr2
		*tmp := #514
		RETURN #0`)

	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	body := funcs[0].Body
	if len(body) != 3 {
		t.Fatalf("expected 3 instructions, got %d: %v", len(body), body)
	}
	if body[0].Op != ir.OpAssign || body[1].Op != ir.OpStore {
		t.Errorf("expected assign then store, got %s then %s", body[0].Op, body[1].Op)
	}
}

func TestProgram(t *testing.T) {
	funcs, errs := parse(t, `FUNCTION fact :
		PARAM v1
		IF v1 == #1 GOTO label1
		GOTO label2
		LABEL label1 :
		RETURN v1
		LABEL label2 :
		t1 := v1 - #1
		ARG t1
		t2 := CALL fact
		t3 := v1 * t2
		RETURN t3

		FUNCTION main :
		READ n
		ARG n
		r := CALL fact
		WRITE r
		RETURN #0`)

	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(funcs) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(funcs))
	}
	if funcs[0].Name != "fact" || funcs[1].Name != "main" {
		t.Errorf("functions out of source order: %s, %s", funcs[0].Name, funcs[1].Name)
	}
	if len(funcs[0].Body) != 11 || len(funcs[1].Body) != 5 {
		t.Errorf("unexpected body lengths %d and %d", len(funcs[0].Body), len(funcs[1].Body))
	}
	for _, in := range funcs[0].Body {
		for _, op := range []ir.Operand{in.X, in.Y, in.Z} {
			if op.IsReg() && op.Slot != ir.Unbound {
				t.Errorf("parser must leave registers unresolved, %q has slot %d", in, op.Slot)
			}
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		funcs    int
	}{
		{"missing colon", "FUNCTION main\nRETURN #0", "Missing colon", 0},
		{"outside function", "WRITE #1\nFUNCTION main :\nRETURN #0", "Instruction outside of function", 1},
		{"keyword as name", "FUNCTION main :\nGOTO LABEL", "reserved keyword", 1},
		{"missing goto", "FUNCTION main :\nIF x < y l1", "Missing GOTO", 1},
		{"bad relation", "FUNCTION main :\nIF x + y GOTO l1", "Expected relational operator", 1},
		{"illegal character", "FUNCTION main :\nx := y % z", "Illegal character '%'", 1},
		{"negative size", "FUNCTION main :\nDEC a -4", "Negative allocation size", 1},
		{"missing number", "FUNCTION main :\nx := #y", "Expected number", 1},
		{"end of input", "FUNCTION main :\nx :=", "Unexpected end of input", 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			funcs, errs := parse(t, test.input)
			if len(errs) == 0 {
				t.Fatalf("expected an error containing %q", test.expected)
			}
			if !strings.Contains(errs[0], test.expected) {
				t.Errorf("expected error containing %q, got %q", test.expected, errs[0])
			}
			if len(funcs) != test.funcs {
				t.Errorf("expected %d functions, got %d", test.funcs, len(funcs))
			}
		})
	}
}

func TestRecoveryContinuesOnNextLine(t *testing.T) {
	funcs, errs := parse(t, "FUNCTION main :\nx := := y\nWRITE #1\nRETURN #0")

	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if !strings.Contains(errs[0], "Line: 2") {
		t.Errorf("error should point at line 2: %q", errs[0])
	}
	if len(funcs[0].Body) != 2 {
		t.Errorf("expected the two valid instructions to survive, got %v", funcs[0].Body)
	}
}

const roundTripSource = `FUNCTION fill :
PARAM buf
PARAM n
i := #0
LABEL loop :
IF i >= n GOTO done
off := i * #4
p := buf + off
*p := i
i := i + #1
GOTO loop
LABEL done :
RETURN #0

FUNCTION main :
READ n
DEC arr 16
q := &arr
ARG n
ARG q
r := CALL fill
v := *q
k := #-3 / #2
WRITE v
WRITE k
RETURN r
`

func resolve(t *testing.T, src string) *ir.Program {
	t.Helper()
	funcs, errs := parse(t, src)
	if len(errs) > 0 {
		t.Fatalf("syntax errors: %v", errs)
	}
	prog, err := ir.Resolve(funcs)
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestProgramStringParsesBack(t *testing.T) {
	first := resolve(t, roundTripSource)
	text := first.String()
	second := resolve(t, text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("rendered program does not parse back to the same program:\n%s", text)
	}
	if second.String() != text {
		t.Errorf("rendering is not stable:\n%s\n---\n%s", text, second.String())
	}
}

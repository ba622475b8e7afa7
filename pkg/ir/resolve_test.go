package ir_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/jjppp/misri/pkg/ir"
)

func reg(name string) ir.Operand {
	return ir.NewReg(name)
}

func imm(v int64) ir.Operand {
	return ir.NewImm(v)
}

func rawProgram() []*ir.Func {
	return []*ir.Func{
		ir.NewFunc("fact",
			ir.Param(reg("v1")),
			ir.Cond(reg("v1"), ir.RelEq, imm(1), "label1"),
			ir.Goto("label2"),
			ir.Label("label1"),
			ir.Return(reg("v1")),
			ir.Label("label2"),
			ir.Arith(ir.OpSub, reg("t1"), reg("v1"), imm(1)),
			ir.Arg(reg("t1")),
			ir.Call(reg("t2"), "fact"),
			ir.Arith(ir.OpMul, reg("t3"), reg("v1"), reg("t2")),
			ir.Return(reg("t3")),
		),
		ir.NewFunc("main",
			ir.Read(reg("n")),
			ir.Arg(reg("n")),
			ir.Call(reg("r"), "fact"),
			ir.Write(reg("r")),
			ir.Return(imm(0)),
		),
	}
}

func TestResolveTargets(t *testing.T) {
	prog, err := ir.Resolve(rawProgram())
	if err != nil {
		t.Fatal(err)
	}

	if prog.Entry != 1 {
		t.Errorf("expected entry 1, got %d", prog.Entry)
	}

	fact := prog.Func(0)
	if fact.ID != 0 || prog.Func(1).ID != 1 {
		t.Errorf("function ids must follow program order")
	}

	checks := []struct {
		pc     int
		target int
	}{
		{1, 3}, // IF ... GOTO label1
		{2, 5}, // GOTO label2
		{3, 3}, // LABEL label1
		{5, 5}, // LABEL label2
		{8, 0}, // CALL fact
	}
	for _, c := range checks {
		if got := fact.Body[c.pc].TargetID; got != c.target {
			t.Errorf("fact[%d] %q: expected target %d, got %d", c.pc, fact.Body[c.pc], c.target, got)
		}
	}

	if got := prog.Func(1).Body[2].TargetID; got != 0 {
		t.Errorf("main CALL fact: expected target 0, got %d", got)
	}
}

func TestResolveSlotsInFirstUseOrder(t *testing.T) {
	prog, err := ir.Resolve(rawProgram())
	if err != nil {
		t.Fatal(err)
	}

	fact := prog.Func(0)
	expected := map[string]int{"v1": 0, "t1": 1, "t2": 2, "t3": 3}
	for name, slot := range expected {
		if got, ok := fact.SlotOf(name); !ok || got != slot {
			t.Errorf("slot of %s: expected %d, got %d (%v)", name, slot, got, ok)
		}
	}
	if fact.NReg != 4 {
		t.Errorf("expected 4 slots, got %d", fact.NReg)
	}

	// every use of a name shares one slot
	for _, in := range fact.Body {
		for _, op := range []ir.Operand{in.X, in.Y, in.Z} {
			if op.IsReg() && op.Slot != expected[op.Name] {
				t.Errorf("%q: %s bound to slot %d", in, op.Name, op.Slot)
			}
		}
	}

	// slots are per function
	entry := prog.Func(1)
	if s, _ := entry.SlotOf("n"); s != 0 {
		t.Errorf("main n: expected slot 0, got %d", s)
	}
	if s, _ := entry.SlotOf("r"); s != 1 || entry.NReg != 2 {
		t.Errorf("main r: expected slot 1 of 2, got %d of %d", s, entry.NReg)
	}
}

func TestResolveIsDeterministicAndLeavesInputAlone(t *testing.T) {
	raw := rawProgram()

	first, err := ir.Resolve(raw)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ir.Resolve(raw)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("resolving the same input twice produced different programs")
	}

	for _, in := range raw[0].Body {
		if in.X.IsReg() && in.X.Slot != ir.Unbound {
			t.Fatalf("Resolve modified its input: %q has slot %d", in, in.X.Slot)
		}
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name  string
		funcs []*ir.Func
		msg   string
	}{
		{
			name:  "no entry function",
			funcs: []*ir.Func{ir.NewFunc("start", ir.Return(imm(0)))},
			msg:   `no entry function "main"`,
		},
		{
			name:  "empty program",
			funcs: nil,
			msg:   `no entry function "main"`,
		},
		{
			name:  "undefined label",
			funcs: []*ir.Func{ir.NewFunc("main", ir.Goto("nowhere"), ir.Return(imm(0)))},
			msg:   `undefined label "nowhere" in main at 0`,
		},
		{
			name: "label from another function",
			funcs: []*ir.Func{
				ir.NewFunc("f", ir.Label("l"), ir.Return(imm(0))),
				ir.NewFunc("main", ir.Cond(imm(1), ir.RelLt, imm(2), "l"), ir.Return(imm(0))),
			},
			msg: `undefined label "l" in main`,
		},
		{
			name:  "undefined callee",
			funcs: []*ir.Func{ir.NewFunc("main", ir.Call(reg("x"), "missing"), ir.Return(imm(0)))},
			msg:   `call to undefined function "missing"`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			prog, err := ir.Resolve(test.funcs)
			if prog != nil {
				t.Errorf("expected no program on failure")
			}
			if !errors.Is(err, ir.ErrResolution) {
				t.Fatalf("expected resolution error, got %v", err)
			}
			if !strings.Contains(err.Error(), test.msg) {
				t.Errorf("expected %q in %q", test.msg, err.Error())
			}
		})
	}
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		in   ir.Instruction
		want string
	}{
		{ir.Assign(reg("x"), imm(-3)), "x := #-3"},
		{ir.Arith(ir.OpDiv, reg("x"), reg("y"), imm(4)), "x := y / #4"},
		{ir.Addr(reg("p"), reg("arr")), "p := &arr"},
		{ir.Store(reg("p"), imm(1)), "*p := #1"},
		{ir.Load(reg("x"), reg("p")), "x := *p"},
		{ir.Label("l1"), "LABEL l1 :"},
		{ir.Goto("l1"), "GOTO l1"},
		{ir.Cond(reg("a"), ir.RelGe, imm(0), "l1"), "IF a >= #0 GOTO l1"},
		{ir.Return(reg("x")), "RETURN x"},
		{ir.Dec(reg("arr"), 24), "DEC arr 24"},
		{ir.Arg(imm(5)), "ARG #5"},
		{ir.Param(reg("n")), "PARAM n"},
		{ir.Call(reg("r"), "fib"), "r := CALL fib"},
		{ir.Read(reg("n")), "READ n"},
		{ir.Write(reg("n")), "WRITE n"},
	}

	for _, test := range tests {
		if got := test.in.String(); got != test.want {
			t.Errorf("expected %q, got %q", test.want, got)
		}
	}
}

func TestRelationHolds(t *testing.T) {
	tests := []struct {
		rel  ir.Relation
		want [3]bool // for -1, 0, +1
	}{
		{ir.RelLt, [3]bool{true, false, false}},
		{ir.RelLe, [3]bool{true, true, false}},
		{ir.RelGt, [3]bool{false, false, true}},
		{ir.RelGe, [3]bool{false, true, true}},
		{ir.RelEq, [3]bool{false, true, false}},
		{ir.RelNe, [3]bool{true, false, true}},
	}

	for _, test := range tests {
		for i, c := range []int{-1, 0, 1} {
			if got := test.rel.Holds(c); got != test.want[i] {
				t.Errorf("%s holds for %d: expected %v, got %v", test.rel, c, test.want[i], got)
			}
		}
	}
}

func TestProgramString(t *testing.T) {
	prog, err := ir.Resolve(rawProgram())
	if err != nil {
		t.Fatal(err)
	}

	text := prog.String()
	if !strings.HasPrefix(text, "FUNCTION fact :\nPARAM v1\n") {
		t.Errorf("unexpected rendering:\n%s", text)
	}
	if !strings.Contains(text, "\nFUNCTION main :\nREAD n\n") {
		t.Errorf("main missing from rendering:\n%s", text)
	}
}

package interpreter

import "github.com/jjppp/misri/pkg/ir"

// Frame represents a function call frame.
type Frame struct {
	Func *ir.Func // function executing in this frame
	PC   int      // index into Func.Body; parked on the Call while a callee runs
	Regs []Value  // register slots, sized by Func.NReg
}

// NewFrame creates a frame with zeroed registers positioned at the first instruction
func NewFrame(f *ir.Func) *Frame {
	return &Frame{
		Func: f,
		PC:   0,
		Regs: make([]Value, f.NReg),
	}
}

// Instr returns the instruction at PC, if PC is inside the function
func (f *Frame) Instr() (ir.Instruction, bool) {
	if f.PC < 0 || f.PC >= len(f.Func.Body) {
		return ir.Instruction{}, false
	}
	return f.Func.Body[f.PC], true
}

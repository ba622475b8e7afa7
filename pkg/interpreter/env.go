package interpreter

import (
	"fmt"

	"github.com/jjppp/misri/pkg/ir"
	"github.com/jjppp/misri/pkg/stack"
)

// Env is the mutable execution state: the call stack and the argument stack
type Env struct {
	prog     *ir.Program
	frames   *stack.Stack[*Frame]
	args     *stack.Stack[Value]
	maxDepth int // 0 = unlimited
}

// NewEnv creates an environment whose only frame belongs to the entry function
func NewEnv(prog *ir.Program) *Env {
	env := &Env{
		prog:   prog,
		frames: stack.NewStack[*Frame](),
		args:   stack.NewStack[Value](),
	}
	env.frames.Push(NewFrame(prog.Func(prog.Entry)))
	return env
}

// Top returns the current frame, or nil when the call stack is empty
func (e *Env) Top() *Frame {
	f, _ := e.frames.Peek()
	return f
}

// Depth returns the number of active frames
func (e *Env) Depth() int {
	return e.frames.Size()
}

// PushFrame enters the function with the given id
func (e *Env) PushFrame(funcID int) error {
	if funcID < 0 || funcID >= len(e.prog.Funcs) {
		return controlFlow("call to unknown function id %d", funcID)
	}
	if e.maxDepth > 0 && e.frames.Size() >= e.maxDepth {
		return controlFlow("call stack overflow (depth %d)", e.maxDepth)
	}
	e.frames.Push(NewFrame(e.prog.Func(funcID)))
	return nil
}

// PopFrame leaves the current function
func (e *Env) PopFrame() (*Frame, error) {
	f, ok := e.frames.Pop()
	if !ok {
		return nil, controlFlow("pop from empty call stack")
	}
	return f, nil
}

// GetRegister reads a slot of the current frame
func (e *Env) GetRegister(slot int) (Value, error) {
	f := e.Top()
	if f == nil {
		return Value{}, controlFlow("register access with empty call stack")
	}
	if slot < 0 || slot >= len(f.Regs) {
		return Value{}, controlFlow("register slot %d out of range in %s (%d slots)", slot, f.Func.Name, len(f.Regs))
	}
	return f.Regs[slot], nil
}

// SetRegister writes a slot of the current frame
func (e *Env) SetRegister(slot int, v Value) error {
	f := e.Top()
	if f == nil {
		return controlFlow("register access with empty call stack")
	}
	if slot < 0 || slot >= len(f.Regs) {
		return controlFlow("register slot %d out of range in %s (%d slots)", slot, f.Func.Name, len(f.Regs))
	}
	f.Regs[slot] = v
	return nil
}

// Get evaluates an operand in the current frame
func (e *Env) Get(op ir.Operand) (Value, error) {
	if !op.IsReg() {
		return NewInt(op.Value), nil
	}
	return e.GetRegister(op.Slot)
}

// Set assigns to a register operand in the current frame
func (e *Env) Set(op ir.Operand, v Value) error {
	if !op.IsReg() {
		return controlFlow("cannot assign to immediate %s", op)
	}
	return e.SetRegister(op.Slot, v)
}

// PushArg stages a call argument
func (e *Env) PushArg(v Value) {
	e.args.Push(v)
}

// PopArg takes the most recently staged argument
func (e *Env) PopArg() (Value, error) {
	v, ok := e.args.Pop()
	if !ok {
		return Value{}, fmt.Errorf("%w: no pending argument", ErrArgumentStack)
	}
	return v, nil
}

// PendingArgs returns the number of staged arguments
func (e *Env) PendingArgs() int {
	return e.args.Size()
}

package interpreter

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jjppp/misri/pkg/ir"
)

// Exec runs a program on the process stdin and stdout
func Exec(prog *ir.Program) error {
	return New(prog).Run()
}

// exec performs one instruction in frame, the current top frame.
// It returns true once the entry function has returned.
func (i *Interpreter) exec(frame *Frame, in ir.Instruction) (bool, error) {
	env := i.env

	switch in.Op {
	case ir.OpAssign, ir.OpAddr:
		// `x := &y` copies y: a DEC'd register already holds its buffer pointer
		v, err := env.Get(in.Y)
		if err != nil {
			return false, err
		}
		if err := env.Set(in.X, v); err != nil {
			return false, err
		}

	case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv:
		y, err := env.Get(in.Y)
		if err != nil {
			return false, err
		}
		z, err := env.Get(in.Z)
		if err != nil {
			return false, err
		}
		res, err := evalArith(in.Op, y, z)
		if err != nil {
			return false, err
		}
		if err := env.Set(in.X, res); err != nil {
			return false, err
		}

	case ir.OpStore:
		ptr, err := env.Get(in.X)
		if err != nil {
			return false, err
		}
		v, err := env.Get(in.Y)
		if err != nil {
			return false, err
		}
		if err := ptr.Store(v); err != nil {
			return false, err
		}

	case ir.OpLoad:
		ptr, err := env.Get(in.Y)
		if err != nil {
			return false, err
		}
		v, err := ptr.Load()
		if err != nil {
			return false, err
		}
		if err := env.Set(in.X, v); err != nil {
			return false, err
		}

	case ir.OpArg:
		v, err := env.Get(in.Y)
		if err != nil {
			return false, err
		}
		env.PushArg(v)

	case ir.OpParam:
		v, err := env.PopArg()
		if err != nil {
			return false, err
		}
		if err := env.Set(in.X, v); err != nil {
			return false, err
		}

	case ir.OpLabel:
		// no-op

	case ir.OpRead:
		n, err := i.readInt()
		if err != nil {
			return false, err
		}
		if err := env.Set(in.X, NewInt(n)); err != nil {
			return false, err
		}

	case ir.OpWrite:
		v, err := env.Get(in.Y)
		if err != nil {
			return false, err
		}
		s, err := v.Render()
		if err != nil {
			return false, err
		}
		if _, err := fmt.Fprintln(i.out, s); err != nil {
			return false, fmt.Errorf("write output: %w", err)
		}

	case ir.OpDec:
		ptr, err := NewPtr(in.Size)
		if err != nil {
			return false, err
		}
		if err := env.Set(in.X, ptr); err != nil {
			return false, err
		}

	case ir.OpCall:
		// the caller's PC stays on this instruction; RETURN uses it to find the destination
		return false, env.PushFrame(in.TargetID)

	case ir.OpReturn:
		return i.ret(frame, in)

	case ir.OpGoto:
		frame.PC = in.TargetID
		return false, nil

	case ir.OpCond:
		y, err := env.Get(in.Y)
		if err != nil {
			return false, err
		}
		z, err := env.Get(in.Z)
		if err != nil {
			return false, err
		}
		c, err := y.Compare(z)
		if err != nil {
			return false, err
		}
		if in.Rel.Holds(c) {
			frame.PC = in.TargetID
			return false, nil
		}

	default:
		return false, invalidOp("unknown operation %q", in.Op)
	}

	frame.PC++
	return false, nil
}

// ret returns from the function running in frame
func (i *Interpreter) ret(frame *Frame, in ir.Instruction) (bool, error) {
	env := i.env

	v, err := env.Get(in.Y)
	if err != nil {
		return false, err
	}

	if frame.Func.ID == i.prog.Entry {
		i.exit = v
		return true, nil
	}

	if _, err := env.PopFrame(); err != nil {
		return false, err
	}

	caller := env.Top()
	if caller == nil {
		return false, controlFlow("return from %s with no caller", frame.Func.Name)
	}

	call, ok := caller.Instr()
	if !ok || call.Op != ir.OpCall {
		return false, controlFlow("caller %s is not parked on a CALL at %d", caller.Func.Name, caller.PC)
	}
	if err := env.Set(call.X, v); err != nil {
		return false, err
	}

	caller.PC++
	return false, nil
}

// readInt consumes one line of input and parses it as a base-10 integer
func (i *Interpreter) readInt() (int64, error) {
	line, err := i.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("%w: unexpected end of input", ErrInput)
		}
		return 0, fmt.Errorf("%w: %v", ErrInput, err)
	}

	text := strings.TrimSpace(line)
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed integer %q", ErrInput, text)
	}

	return n, nil
}

// evalArith applies an arithmetic operation to two values
func evalArith(op ir.Operation, a, b Value) (Value, error) {
	switch op {
	case ir.OpAdd:
		return a.Add(b)
	case ir.OpSub:
		return a.Sub(b)
	case ir.OpMul:
		return a.Mul(b)
	case ir.OpDiv:
		return a.Div(b)
	default:
		return Value{}, invalidOp("unsupported arithmetic op: %s", op)
	}
}

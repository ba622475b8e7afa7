package interpreter

import (
	"errors"
	"fmt"

	"github.com/jjppp/misri/pkg/ir"
)

var (
	ErrInvalidOperation = errors.New("invalid operation")
	ErrControlFlow      = errors.New("control flow error")
	ErrInput            = errors.New("input error")
	ErrArgumentStack    = errors.New("argument stack error")
	ErrMaxStepsExceeded = errors.New("maximum steps exceeded")
)

// RuntimeError describes a fault and the instruction that raised it
type RuntimeError struct {
	Func  string         // function executing when the fault occurred
	PC    int            // index of the faulting instruction
	Instr ir.Instruction // faulting instruction, zero when PC is past the end
	Err   error          // underlying fault, wraps one of the Err* kinds
}

func (e *RuntimeError) Error() string {
	if e.Instr.Op == "" {
		return fmt.Sprintf("%s:%d: %v", e.Func, e.PC, e.Err)
	}
	return fmt.Sprintf("%s:%d `%s`: %v", e.Func, e.PC, e.Instr, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func invalidOp(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOperation, fmt.Sprintf(format, args...))
}

func controlFlow(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrControlFlow, fmt.Sprintf(format, args...))
}

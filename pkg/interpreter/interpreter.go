package interpreter

import (
	"bufio"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/jjppp/misri/pkg/ir"
)

// Interpreter executes a resolved three-address program
type Interpreter struct {
	prog *ir.Program // program being executed
	env  *Env        // call stack and argument stack

	in  *bufio.Reader // input for READ
	out io.Writer     // output for WRITE

	logger *log.Logger // per-instruction trace, nil disables tracing

	maxSteps int // maximum steps (0 = unlimited)
	maxDepth int // maximum call depth (0 = unlimited)
	steps    int // steps executed

	halted bool
	exit   Value // value returned by the entry function
}

type Option func(*Interpreter)

// WithReader sets the input read by READ instructions
func WithReader(r io.Reader) Option {
	return func(i *Interpreter) { i.in = bufio.NewReader(r) }
}

// WithWriter sets the output writer for WRITE instructions
func WithWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithMaxSteps sets a maximum number of interpreter steps before returning ErrMaxStepsExceeded
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) { i.maxSteps = n }
}

// WithMaxDepth limits the number of simultaneously active frames
func WithMaxDepth(n int) Option {
	return func(i *Interpreter) { i.maxDepth = n }
}

// WithLogger traces every executed instruction at debug level
func WithLogger(l *log.Logger) Option {
	return func(i *Interpreter) { i.logger = l }
}

// New creates an interpreter for prog. Input and output default to the process stdio.
func New(prog *ir.Program, opts ...Option) *Interpreter {
	it := &Interpreter{
		prog: prog,
	}

	for _, o := range opts {
		o(it)
	}

	if it.in == nil {
		it.in = bufio.NewReader(os.Stdin)
	}
	if it.out == nil {
		it.out = os.Stdout
	}

	it.Reset()

	return it
}

// Reset discards all runtime state so the program can run again from the start
func (i *Interpreter) Reset() {
	i.env = NewEnv(i.prog)
	i.env.maxDepth = i.maxDepth
	i.steps = 0
	i.halted = false
	i.exit = Value{}
}

// Program returns the program being executed
func (i *Interpreter) Program() *ir.Program {
	return i.prog
}

// Env returns the execution state
func (i *Interpreter) Env() *Env {
	return i.env
}

// Steps returns the number of instructions executed so far
func (i *Interpreter) Steps() int {
	return i.steps
}

// Halted reports whether the entry function has returned
func (i *Interpreter) Halted() bool {
	return i.halted
}

// ExitValue returns the operand of the entry function's RETURN once halted
func (i *Interpreter) ExitValue() Value {
	return i.exit
}

// Step executes a single instruction, returning (halted, error)
func (i *Interpreter) Step() (bool, error) {
	if i.halted {
		return true, nil
	}

	if i.maxSteps > 0 && i.steps >= i.maxSteps {
		return false, ErrMaxStepsExceeded
	}

	frame := i.env.Top()
	if frame == nil {
		return false, controlFlow("empty call stack")
	}

	in, ok := frame.Instr()
	if !ok {
		return false, &RuntimeError{
			Func: frame.Func.Name,
			PC:   frame.PC,
			Err:  controlFlow("execution fell off the end of %s", frame.Func.Name),
		}
	}

	if i.logger != nil {
		i.logger.Debug("exec", "func", frame.Func.Name, "pc", frame.PC, "instr", in.String(), "depth", i.env.Depth())
	}

	pc := frame.PC
	halted, err := i.exec(frame, in)
	i.steps++
	if err != nil {
		return false, &RuntimeError{Func: frame.Func.Name, PC: pc, Instr: in, Err: err}
	}

	i.halted = halted
	return halted, nil
}

// Run executes until halt or error
func (i *Interpreter) Run() error {
	for {
		halted, err := i.Step()
		if err != nil {
			return err
		}

		if halted {
			return nil
		}
	}
}

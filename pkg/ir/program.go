package ir

import (
	"fmt"
	"strings"
)

// EntryName is the name of the function where execution starts
const EntryName = "main"

// Func is one function definition
type Func struct {
	Name  string        // function name
	Body  []Instruction // instruction sequence
	NReg  int           // number of register slots, set by Resolve
	ID    int           // position in program order, set by Resolve
	slots map[string]int
}

// NewFunc creates an unresolved function
func NewFunc(name string, body ...Instruction) *Func {
	return &Func{Name: name, Body: body, ID: Unbound}
}

// SlotOf returns the slot bound to a register name, if any
func (f *Func) SlotOf(name string) (int, bool) {
	s, ok := f.slots[name]
	return s, ok
}

// Program is a resolved, execution-ready set of functions
type Program struct {
	Funcs []*Func
	Entry int
	index map[string]int
}

// Func returns the function with the given id
func (p *Program) Func(id int) *Func {
	return p.Funcs[id]
}

// Lookup finds a function by name
func (p *Program) Lookup(name string) (*Func, bool) {
	id, ok := p.index[name]
	if !ok {
		return nil, false
	}
	return p.Funcs[id], true
}

// String renders the program in textual IR form
func (p *Program) String() string {
	var b strings.Builder
	for n, f := range p.Funcs {
		if n > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "FUNCTION %s :\n", f.Name)
		for _, in := range f.Body {
			b.WriteString(in.String())
			b.WriteByte('\n')
		}
	}
	return b.String()
}

package ir

import (
	"errors"
	"fmt"
)

var ErrResolution = errors.New("resolution error")

// Resolve turns parsed functions into an execution-ready Program.
//
// Each function is resolved locally first (labels, jump targets, register
// slots), then calls are bound to function ids and the entry function is
// located. The input functions are not modified.
func Resolve(funcs []*Func) (*Program, error) {
	prog := &Program{
		Funcs: make([]*Func, len(funcs)),
		index: make(map[string]int, len(funcs)),
	}

	for id, raw := range funcs {
		f := &Func{
			Name: raw.Name,
			Body: append([]Instruction(nil), raw.Body...),
			ID:   id,
		}
		if err := f.resolve(); err != nil {
			return nil, err
		}
		prog.Funcs[id] = f
		prog.index[f.Name] = id
	}

	entry, ok := prog.index[EntryName]
	if !ok {
		return nil, fmt.Errorf("%w: no entry function %q", ErrResolution, EntryName)
	}
	prog.Entry = entry

	for _, f := range prog.Funcs {
		for pc := range f.Body {
			in := &f.Body[pc]
			if in.Op != OpCall {
				continue
			}
			id, ok := prog.index[in.Target]
			if !ok {
				return nil, fmt.Errorf("%w: call to undefined function %q in %s at %d", ErrResolution, in.Target, f.Name, pc)
			}
			in.TargetID = id
		}
	}

	return prog, nil
}

// resolve binds labels, jump targets and register slots within one function
func (f *Func) resolve() error {
	labels := make(map[string]int)
	for pc, in := range f.Body {
		if in.Op == OpLabel {
			labels[in.Target] = pc
		}
	}

	f.slots = make(map[string]int)
	for pc := range f.Body {
		in := &f.Body[pc]

		switch in.Op {
		case OpLabel:
			in.TargetID = pc
		case OpGoto, OpCond:
			target, ok := labels[in.Target]
			if !ok {
				return fmt.Errorf("%w: undefined label %q in %s at %d", ErrResolution, in.Target, f.Name, pc)
			}
			in.TargetID = target
		case OpCall:
			in.TargetID = Unbound
		}

		for _, op := range in.operands() {
			if !op.IsReg() {
				continue
			}
			slot, ok := f.slots[op.Name]
			if !ok {
				slot = len(f.slots)
				f.slots[op.Name] = slot
			}
			op.Slot = slot
		}
	}
	f.NReg = len(f.slots)

	return nil
}

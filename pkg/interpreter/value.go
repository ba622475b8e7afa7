package interpreter

import (
	"cmp"
	"strconv"
)

type ValueKind int

const (
	KindInt ValueKind = iota
	KindPtr
)

func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindPtr:
		return "pointer"
	default:
		return "unknown"
	}
}

// MaxCells bounds the size of a single DEC allocation
const MaxCells = 1 << 24

// Buffer is the storage of one allocation, shared by every pointer derived from it
type Buffer struct {
	cells []int64
}

// Cap returns the number of cells allocated
func (b *Buffer) Cap() int64 {
	return int64(len(b.cells))
}

// Value is a runtime datum: an integer, or a pointer to a cell of a Buffer.
// The zero Value is the integer 0.
type Value struct {
	Kind ValueKind
	I64  int64   // integer payload
	Buf  *Buffer // pointed-to buffer
	Off  int64   // cell index into Buf
}

// NewInt creates a new integer Value.
func NewInt(i int64) Value {
	return Value{Kind: KindInt, I64: i}
}

// NewPtr allocates a zero-filled buffer of size cells and points at its first cell.
// Sizes outside [0, MaxCells] are rejected.
func NewPtr(size int64) (Value, error) {
	if size < 0 || size > MaxCells {
		return Value{}, invalidOp("cannot allocate %d cells (limit %d)", size, MaxCells)
	}
	return Value{Kind: KindPtr, Buf: &Buffer{cells: make([]int64, size)}}, nil
}

// IsPtr reports whether the value is a pointer
func (v Value) IsPtr() bool {
	return v.Kind == KindPtr
}

// cell returns the index of the addressed cell, checking bounds
func (v Value) cell() (int64, error) {
	if v.Kind != KindPtr {
		return 0, invalidOp("dereference of non-pointer value %d", v.I64)
	}
	if v.Off < 0 || v.Off >= v.Buf.Cap() {
		return 0, invalidOp("pointer offset %d out of bounds [0, %d)", v.Off, v.Buf.Cap())
	}
	return v.Off, nil
}

// Load reads the addressed cell
func (v Value) Load() (Value, error) {
	idx, err := v.cell()
	if err != nil {
		return Value{}, err
	}
	return NewInt(v.Buf.cells[idx]), nil
}

// Store writes an integer into the addressed cell
func (v Value) Store(x Value) error {
	idx, err := v.cell()
	if err != nil {
		return err
	}
	if x.Kind != KindInt {
		return invalidOp("cannot store a pointer through a pointer")
	}
	v.Buf.cells[idx] = x.I64
	return nil
}

// offset returns a pointer into the same buffer at a new cell index
func (v Value) offset(off int64) Value {
	return Value{Kind: KindPtr, Buf: v.Buf, Off: off}
}

// Add implements `+`. Pointer plus integer moves the pointer.
func (v Value) Add(w Value) (Value, error) {
	switch {
	case v.Kind == KindInt && w.Kind == KindInt:
		return NewInt(v.I64 + w.I64), nil
	case v.Kind == KindPtr && w.Kind == KindInt:
		return v.offset(v.Off + w.I64), nil
	case v.Kind == KindInt && w.Kind == KindPtr:
		return w.offset(w.Off + v.I64), nil
	default:
		return Value{}, errPtrPtr("+")
	}
}

// Sub implements `-`. An integer minus a pointer yields offset integer-offset.
func (v Value) Sub(w Value) (Value, error) {
	switch {
	case v.Kind == KindInt && w.Kind == KindInt:
		return NewInt(v.I64 - w.I64), nil
	case v.Kind == KindPtr && w.Kind == KindInt:
		return v.offset(v.Off - w.I64), nil
	case v.Kind == KindInt && w.Kind == KindPtr:
		return w.offset(v.I64 - w.Off), nil
	default:
		return Value{}, errPtrPtr("-")
	}
}

// Mul implements `*` on integers
func (v Value) Mul(w Value) (Value, error) {
	if v.Kind != KindInt || w.Kind != KindInt {
		return Value{}, errNonInt("*", v, w)
	}
	return NewInt(v.I64 * w.I64), nil
}

// Div implements truncating `/` on integers
func (v Value) Div(w Value) (Value, error) {
	if v.Kind != KindInt || w.Kind != KindInt {
		return Value{}, errNonInt("/", v, w)
	}
	if w.I64 == 0 {
		return Value{}, invalidOp("division by zero")
	}
	return NewInt(v.I64 / w.I64), nil
}

// Compare orders two integers, returning -1, 0 or +1
func (v Value) Compare(w Value) (int, error) {
	if v.Kind != KindInt || w.Kind != KindInt {
		return 0, invalidOp("comparison involving a pointer")
	}
	return cmp.Compare(v.I64, w.I64), nil
}

// Render returns the printed form of the value: an integer prints itself,
// a pointer prints the integer it currently points at.
func (v Value) Render() (string, error) {
	if v.Kind == KindPtr {
		x, err := v.Load()
		if err != nil {
			return "", err
		}
		v = x
	}
	return strconv.FormatInt(v.I64, 10), nil
}

// String renders the value as a string.
func (v Value) String() string {
	s, err := v.Render()
	if err != nil {
		return "<invalid pointer>"
	}
	return s
}

func errPtrPtr(op string) error {
	return invalidOp("pointer arithmetic between two pointers is undefined (%s)", op)
}

func errNonInt(op string, v, w Value) error {
	if v.Kind == KindPtr && w.Kind == KindPtr {
		return errPtrPtr(op)
	}
	return invalidOp("operator %s is undefined on %s and %s", op, v.Kind, w.Kind)
}

package ir

import (
	"fmt"
	"strconv"
)

type Operation string

// List of IR operations
const (
	OpAssign Operation = ":="
	OpAdd    Operation = "+"
	OpSub    Operation = "-"
	OpMul    Operation = "*"
	OpDiv    Operation = "/"
	OpAddr   Operation = "&"
	OpStore  Operation = "store"
	OpLoad   Operation = "load"
	OpLabel  Operation = "label"
	OpGoto   Operation = "goto"
	OpCond   Operation = "if"
	OpReturn Operation = "return"
	OpDec    Operation = "dec"
	OpArg    Operation = "arg"
	OpParam  Operation = "param"
	OpCall   Operation = "call"
	OpRead   Operation = "read"
	OpWrite  Operation = "write"
)

// IsArith reports whether op is one of the four binary arithmetic operations
func (op Operation) IsArith() bool {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	default:
		return false
	}
}

type Relation string

// Relational operators of conditional jumps
const (
	RelLt Relation = "<"
	RelLe Relation = "<="
	RelGt Relation = ">"
	RelGe Relation = ">="
	RelEq Relation = "=="
	RelNe Relation = "!="
)

// Holds checks the relation for an ordering result as returned by cmp.Compare
func (r Relation) Holds(c int) bool {
	switch r {
	case RelLt:
		return c < 0
	case RelLe:
		return c <= 0
	case RelGt:
		return c > 0
	case RelGe:
		return c >= 0
	case RelEq:
		return c == 0
	case RelNe:
		return c != 0
	default:
		return false
	}
}

type OperandKind int

const (
	Imm OperandKind = iota
	Reg
)

// Unbound is the slot of a register operand that has not been resolved yet
const Unbound = -1

// Operand is either an immediate integer or a named register.
// Slot is only meaningful for registers after resolution.
type Operand struct {
	Kind  OperandKind
	Value int64
	Name  string
	Slot  int
}

// NewImm creates an immediate operand
func NewImm(v int64) Operand {
	return Operand{Kind: Imm, Value: v, Slot: Unbound}
}

// NewReg creates an unresolved register operand
func NewReg(name string) Operand {
	return Operand{Kind: Reg, Name: name, Slot: Unbound}
}

// IsReg reports whether the operand names a register
func (o Operand) IsReg() bool {
	return o.Kind == Reg
}

// String returns the IR spelling of the operand
func (o Operand) String() string {
	if o.Kind == Imm {
		return "#" + strconv.FormatInt(o.Value, 10)
	}
	return o.Name
}

// Instruction is one three-address instruction.
//
// Operand usage per operation:
//
//	x := y            Assign  X=x Y=y
//	x := y op z       Add..Div X=x Y=y Z=z
//	x := &y           Addr    X=x Y=y
//	*x := y           Store   X=x Y=y
//	x := *y           Load    X=x Y=y
//	LABEL l :         Label   Target=l
//	GOTO l            Goto    Target=l
//	IF y rel z GOTO l Cond    Y=y Z=z Rel Target=l
//	RETURN y          Return  Y=y
//	DEC x n           Dec     X=x Size=n
//	ARG y             Arg     Y=y
//	PARAM x           Param   X=x
//	x := CALL f       Call    X=x Target=f
//	READ x            Read    X=x
//	WRITE y           Write   Y=y
//
// TargetID is filled in by Resolve: an instruction index for Label, Goto and
// Cond, a function index for Call.
type Instruction struct {
	Op Operation

	X Operand
	Y Operand
	Z Operand

	Rel      Relation
	Size     int64
	Target   string
	TargetID int
}

// String returns the textual IR form of the instruction
func (i Instruction) String() string {
	if i.Op.IsArith() {
		return fmt.Sprintf("%s := %s %s %s", i.X, i.Y, i.Op, i.Z)
	}

	switch i.Op {
	case OpAssign:
		return fmt.Sprintf("%s := %s", i.X, i.Y)
	case OpAddr:
		return fmt.Sprintf("%s := &%s", i.X, i.Y)
	case OpStore:
		return fmt.Sprintf("*%s := %s", i.X, i.Y)
	case OpLoad:
		return fmt.Sprintf("%s := *%s", i.X, i.Y)
	case OpLabel:
		return fmt.Sprintf("LABEL %s :", i.Target)
	case OpGoto:
		return "GOTO " + i.Target
	case OpCond:
		return fmt.Sprintf("IF %s %s %s GOTO %s", i.Y, i.Rel, i.Z, i.Target)
	case OpReturn:
		return "RETURN " + i.Y.String()
	case OpDec:
		return fmt.Sprintf("DEC %s %d", i.X, i.Size)
	case OpArg:
		return "ARG " + i.Y.String()
	case OpParam:
		return "PARAM " + i.X.String()
	case OpCall:
		return fmt.Sprintf("%s := CALL %s", i.X, i.Target)
	case OpRead:
		return "READ " + i.X.String()
	case OpWrite:
		return "WRITE " + i.Y.String()
	default:
		return fmt.Sprintf("(%s, %v, %v, %v)", i.Op, i.X, i.Y, i.Z)
	}
}

// operands returns pointers to every operand the instruction uses, in
// textual order, so that slots are bound in first-use order.
func (i *Instruction) operands() []*Operand {
	if i.Op.IsArith() {
		return []*Operand{&i.X, &i.Y, &i.Z}
	}

	switch i.Op {
	case OpAssign, OpAddr, OpStore, OpLoad:
		return []*Operand{&i.X, &i.Y}
	case OpCond:
		return []*Operand{&i.Y, &i.Z}
	case OpReturn, OpArg, OpWrite:
		return []*Operand{&i.Y}
	case OpDec, OpParam, OpCall, OpRead:
		return []*Operand{&i.X}
	default:
		return nil
	}
}

// Assign builds `x := y`.
func Assign(x, y Operand) Instruction {
	return Instruction{Op: OpAssign, X: x, Y: y}
}

// Arith builds `x := y op z` for one of the four arithmetic operations.
func Arith(op Operation, x, y, z Operand) Instruction {
	return Instruction{Op: op, X: x, Y: y, Z: z}
}

// Addr builds `x := &y`.
func Addr(x, y Operand) Instruction {
	return Instruction{Op: OpAddr, X: x, Y: y}
}

// Store builds `*x := y`.
func Store(x, y Operand) Instruction {
	return Instruction{Op: OpStore, X: x, Y: y}
}

// Load builds `x := *y`.
func Load(x, y Operand) Instruction {
	return Instruction{Op: OpLoad, X: x, Y: y}
}

// Label builds `LABEL name :`.
func Label(name string) Instruction {
	return Instruction{Op: OpLabel, Target: name}
}

// Goto builds `GOTO name`.
func Goto(name string) Instruction {
	return Instruction{Op: OpGoto, Target: name}
}

// Cond builds `IF y rel z GOTO name`.
func Cond(y Operand, rel Relation, z Operand, name string) Instruction {
	return Instruction{Op: OpCond, Y: y, Rel: rel, Z: z, Target: name}
}

// Return builds `RETURN y`.
func Return(y Operand) Instruction {
	return Instruction{Op: OpReturn, Y: y}
}

// Dec builds `DEC x size`.
func Dec(x Operand, size int64) Instruction {
	return Instruction{Op: OpDec, X: x, Size: size}
}

// Arg builds `ARG y`.
func Arg(y Operand) Instruction {
	return Instruction{Op: OpArg, Y: y}
}

// Param builds `PARAM x`.
func Param(x Operand) Instruction {
	return Instruction{Op: OpParam, X: x}
}

// Call builds `x := CALL name`.
func Call(x Operand, name string) Instruction {
	return Instruction{Op: OpCall, X: x, Target: name}
}

// Read builds `READ x`.
func Read(x Operand) Instruction {
	return Instruction{Op: OpRead, X: x}
}

// Write builds `WRITE y`.
func Write(y Operand) Instruction {
	return Instruction{Op: OpWrite, Y: y}
}

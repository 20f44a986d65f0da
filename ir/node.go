// Package ir defines the shader intermediate representation read by the
// trackers: tagged nodes and the ordered blocks they live in.
//
// Nodes are built once by IR construction and never mutated afterwards.
// Every node is a pointer to one of the concrete types below; the set is
// closed by the unexported isNode method, so a type switch over Node with a
// default arm handles every variant.
//
//	┌──────────────┬──────────────────────────────────────────────┐
//	│  Variant     │  Meaning                                     │
//	├──────────────┼──────────────────────────────────────────────┤
//	│  Operation   │  opcode + ordered operands (Assign: dst,src) │
//	│  Gpr         │  general purpose register (RZ reads as 0)    │
//	│  Cbuf        │  constant buffer read at an offset node      │
//	│  Immediate   │  32-bit literal                              │
//	│  Conditional │  guard + nested Block                        │
//	│  Predicate   │  inert                                       │
//	│  InternalFlag│  inert                                       │
//	│  Comment     │  inert                                       │
//	└──────────────┴──────────────────────────────────────────────┘
package ir

import "fmt"

// ZeroIndex is the register index hardwired to the literal 0.
const ZeroIndex uint32 = 255

// Node is implemented by every IR node type.
type Node interface {
	fmt.Stringer
	isNode()
}

// Block is the program-ordered statement list of one lexical scope.
type Block []Node

// =============================================================================
// Operation
// =============================================================================

// Operation applies Code to Operands.
type Operation struct {
	Code     OperationCode
	Operands []Node
}

// Op builds an Operation node.
func Op(code OperationCode, operands ...Node) *Operation {
	return &Operation{Code: code, Operands: operands}
}

// Assign builds an Assign operation writing value into target.
func Assign(target, value Node) *Operation {
	return Op(OpAssign, target, value)
}

// Target returns the destination of an Assign.
// It panics if o is not a well-formed Assign.
func (o *Operation) Target() Node {
	o.mustAssign()
	return o.Operands[0]
}

// Value returns the expression written by an Assign.
// It panics if o is not a well-formed Assign.
func (o *Operation) Value() Node {
	o.mustAssign()
	return o.Operands[1]
}

func (o *Operation) mustAssign() {
	if o.Code != OpAssign {
		panic(fmt.Sprintf("ir: %s is not an assignment", o.Code))
	}
	if len(o.Operands) < 2 {
		panic(fmt.Sprintf("ir: malformed assignment with %d operands", len(o.Operands)))
	}
}

// =============================================================================
// Value nodes
// =============================================================================

// Gpr reads a general purpose register.
type Gpr struct {
	Index uint32
}

// Reg builds a register reference.
func Reg(index uint32) *Gpr { return &Gpr{Index: index} }

// RZ returns a reference to the zero register.
func RZ() *Gpr { return &Gpr{Index: ZeroIndex} }

// IsZero reports whether g is the hardwired zero register.
func (g *Gpr) IsZero() bool { return g.Index == ZeroIndex }

// Cbuf reads constant buffer Index at Offset.
type Cbuf struct {
	Index  uint32
	Offset Node
}

// ConstBuffer builds a constant buffer reference.
func ConstBuffer(index uint32, offset Node) *Cbuf {
	return &Cbuf{Index: index, Offset: offset}
}

// Immediate is a literal embedded in the instruction stream.
type Immediate struct {
	Value uint32
}

// Imm builds an immediate.
func Imm(value uint32) *Immediate { return &Immediate{Value: value} }

// =============================================================================
// Control flow
// =============================================================================

// Conditional executes Code only when Cond holds. It occupies a single
// statement slot of its parent block and owns Code.
type Conditional struct {
	Cond Node
	Code Block
}

// If builds a conditional region.
func If(cond Node, code ...Node) *Conditional {
	return &Conditional{Cond: cond, Code: Block(code)}
}

// =============================================================================
// Inert nodes
// =============================================================================

// Predicate reads a predicate register.
type Predicate struct {
	Index   uint32
	Negated bool
}

// Pred builds a predicate reference.
func Pred(index uint32, negated bool) *Predicate {
	return &Predicate{Index: index, Negated: negated}
}

// Flag identifies an internal condition-code flag.
type Flag uint8

const (
	FlagZero Flag = iota
	FlagSign
	FlagCarry
	FlagOverflow
)

var flagNames = [...]string{
	FlagZero:     "zero",
	FlagSign:     "sign",
	FlagCarry:    "carry",
	FlagOverflow: "overflow",
}

func (f Flag) String() string {
	if int(f) < len(flagNames) {
		return flagNames[f]
	}
	return fmt.Sprintf("flag(%d)", uint8(f))
}

// ParseFlag maps a flag name back to its Flag.
func ParseFlag(name string) (Flag, bool) {
	for i, n := range flagNames {
		if n == name {
			return Flag(i), true
		}
	}
	return 0, false
}

// InternalFlag reads an internal condition-code flag.
type InternalFlag struct {
	Flag Flag
}

// Comment is a marker the decompiler leaves in the statement stream.
type Comment struct {
	Text string
}

func (*Operation) isNode()    {}
func (*Gpr) isNode()          {}
func (*Cbuf) isNode()         {}
func (*Immediate) isNode()    {}
func (*Conditional) isNode()  {}
func (*Predicate) isNode()    {}
func (*InternalFlag) isNode() {}
func (*Comment) isNode()      {}

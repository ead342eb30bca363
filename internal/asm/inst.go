package asm

// Raw is the underlying non-jump instruction payload. The actual VM
// instruction encoding is the downstream consumer's concern (spec.md §1);
// here it is an opaque operation-plus-operands record that the unit
// builder copies through unchanged.
type Raw struct {
	Op       string
	Operands []int64
}

// InstKind discriminates an Inst's shape.
type InstKind int

const (
	// KindRaw wraps an already-resolved instruction with no jump target.
	KindRaw InstKind = iota
	// KindJump is an unconditional jump.
	KindJump
	// KindJumpIf jumps if the top-of-stack value is truthy.
	KindJumpIf
	// KindJumpIfNot jumps if the top-of-stack value is falsy.
	KindJumpIfNot
	// KindJumpIfOrPop jumps (without popping) if truthy, else pops.
	KindJumpIfOrPop
	// KindJumpIfNotOrPop jumps (without popping) if falsy, else pops.
	KindJumpIfNotOrPop
	// KindJumpIfBranch jumps if the top-of-stack pattern-match branch tag
	// equals Branch.
	KindJumpIfBranch
	// KindPopAndJumpIfNot pops Count values, then jumps if the result is
	// falsy.
	KindPopAndJumpIfNot
)

// Inst is a single assembly-level instruction: either a Raw payload or one
// of the label-addressed jump forms. Jump forms carry a Label that is
// resolved to a signed relative offset when the assembly is merged into a
// Unit (see unit.Builder.addAssembly).
type Inst struct {
	Kind   InstKind
	Raw    Raw
	Label  Label // valid pre-resolution, for jump forms
	Offset int64 // valid post-resolution, for jump forms
	Branch int   // valid for KindJumpIfBranch
	Count  int   // valid for KindPopAndJumpIfNot
}

// IsJump reports whether this instruction is one of the label-addressed
// jump forms (as opposed to KindRaw).
func (i Inst) IsJump() bool { return i.Kind != KindRaw }

package unit

import (
	"github.com/jbdutton/rune-go/internal/asm"
	"github.com/jbdutton/rune-go/internal/hash"
)

// Instruction is a fully-resolved, offset-addressed instruction as stored
// in a finalized Unit's instruction vector. Unlike asm.Inst, Label is never
// populated here — every jump form carries a signed Offset.
type Instruction struct {
	Kind   asm.InstKind
	Raw    asm.Raw
	Offset int64
	Branch int
	Count  int
}

// DebugRecord is the per-instruction debug trail entry: which source and
// span produced it, and any comment or label attached at that position.
type DebugRecord struct {
	SourceID int
	Span     any
	Comment  string
	Label    string
}

// DebugInfo is the optional debug trail retained in a finalized Unit.
type DebugInfo struct {
	Instructions  []DebugRecord
	Signatures    map[hash.Hash]DebugSignature
	FunctionsRev  map[int]hash.Hash
}

// Unit is the immutable, finalized output of a Builder: everything the
// downstream VM needs to execute a compiled program, plus everything the
// bytecode cache needs to serialize and later reconstruct it bit-for-bit.
type Unit struct {
	Instructions []Instruction
	Functions    map[hash.Hash]UnitFn
	Types        map[hash.Hash]UnitTypeInfo
	Rtti         map[hash.Hash]Rtti
	VariantRtti  map[hash.Hash]VariantRtti

	StaticStrings     []string
	StaticBytes       [][]byte
	StaticObjectKeys  [][]string

	Debug *DebugInfo // nil when debug info was not retained
}

package unit

import (
	"github.com/jbdutton/rune-go/internal/hash"
	"github.com/jbdutton/rune-go/internal/item"
)

// MetaKind discriminates the shape of a semantic item being registered with
// the builder (spec.md §4.5's meta-kind table).
type MetaKind int

const (
	KindUnitStruct MetaKind = iota
	KindTupleStruct
	KindStruct
	KindUnitVariant
	KindTupleVariant
	KindStructVariant
	KindEnum
	KindFunction
	KindClosure
	KindAsyncBlock
	KindMacro
	KindConst
	KindConstFn
)

func (k MetaKind) String() string {
	switch k {
	case KindUnitStruct:
		return "unit struct"
	case KindTupleStruct:
		return "tuple struct"
	case KindStruct:
		return "struct"
	case KindUnitVariant:
		return "unit variant"
	case KindTupleVariant:
		return "tuple variant"
	case KindStructVariant:
		return "struct variant"
	case KindEnum:
		return "enum"
	case KindFunction:
		return "function"
	case KindClosure:
		return "closure"
	case KindAsyncBlock:
		return "async block"
	case KindMacro:
		return "macro"
	case KindConst:
		return "const"
	case KindConstFn:
		return "const fn"
	default:
		return "unknown"
	}
}

// Meta describes one semantic item submitted to Builder.InsertMeta. EnumHash
// and VariantHash are only meaningful for the *Variant kinds; Args is only
// meaningful for the tuple-shaped kinds; ConstValue is only meaningful for
// KindConst (typically an *ir.Value, kept untyped here so this package does
// not depend on the IR evaluator).
type Meta struct {
	Kind        MetaKind
	Item        item.Item
	Hash        hash.Hash
	EnumHash    hash.Hash
	VariantHash hash.Hash
	Args        int
	ConstValue  any
}

// Rtti is runtime type information for a non-variant type.
type Rtti struct {
	Hash hash.Hash
	Item item.Item
}

// VariantRtti is runtime type information for one enum variant.
type VariantRtti struct {
	EnumHash    hash.Hash
	VariantHash hash.Hash
	Item        item.Item
}

// CallKind distinguishes how a function's offset entry point should be
// invoked by the downstream VM.
type CallKind int

const (
	CallSync CallKind = iota
	CallAsync
	CallStream
)

// UnitFnKind discriminates the tagged variants of UnitFn.
type UnitFnKind int

const (
	UnitFnOffset UnitFnKind = iota
	UnitFnUnitStruct
	UnitFnTupleStruct
	UnitFnUnitVariant
	UnitFnTupleVariant
)

// UnitFn describes how to invoke a named entity: either a bytecode entry
// point (Offset) or a nullary/tuple constructor for a struct or enum
// variant shape.
type UnitFn struct {
	Kind     UnitFnKind
	Offset   int
	Args     int
	CallKind CallKind
	TypeHash hash.Hash // valid for the constructor kinds
}

// UnitTypeInfo records a type's identity hash alongside a human-readable
// description of what it is (e.g. its qualified path), used for debug
// printing and pattern-match dispatch by the downstream VM.
type UnitTypeInfo struct {
	Hash   hash.Hash
	TypeOf string
}

// DebugSignature is the per-function debug record retained for a compiled
// item: enough to print a readable stack trace entry.
type DebugSignature struct {
	Hash hash.Hash
	Item item.Item
	Args []string
}

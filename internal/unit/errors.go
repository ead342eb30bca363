package unit

import (
	"fmt"

	"github.com/jbdutton/rune-go/internal/hash"
	"github.com/jbdutton/rune-go/internal/item"
)

// The error types below are the named unit-builder and meta-insertion
// failures of spec.md §7. Each carries enough state for a diagnostics
// renderer to produce a useful message; Span is kept untyped (an ast.Span
// in practice) to avoid a unit->ast dependency.

type FunctionConflictError struct {
	Item     item.Item
	Existing DebugSignature
	Span     any
}

func (e *FunctionConflictError) Error() string {
	return fmt.Sprintf("function `%s` conflicts with existing `%s`", e.Item, e.Existing.Item)
}

type ConstantConflictError struct {
	Item item.Item
	Span any
}

func (e *ConstantConflictError) Error() string {
	return fmt.Sprintf("constant `%s` already defined", e.Item)
}

type UnsupportedMetaError struct {
	Kind MetaKind
	Span any
}

func (e *UnsupportedMetaError) Error() string {
	return fmt.Sprintf("unsupported meta kind `%s`", e.Kind)
}

type StaticStringMissingError struct{ Hash hash.Hash }

func (e *StaticStringMissingError) Error() string {
	return "static string missing for hash " + e.Hash.String()
}

type StaticBytesMissingError struct{ Hash hash.Hash }

func (e *StaticBytesMissingError) Error() string {
	return "static bytes missing for hash " + e.Hash.String()
}

type StaticStringHashConflictError struct {
	Hash     hash.Hash
	Current  string
	Existing string
}

func (e *StaticStringHashConflictError) Error() string {
	return fmt.Sprintf("static string hash conflict at %s: %q vs %q", e.Hash, e.Current, e.Existing)
}

type StaticBytesHashConflictError struct {
	Hash hash.Hash
}

func (e *StaticBytesHashConflictError) Error() string {
	return "static bytes hash conflict at " + e.Hash.String()
}

type StaticObjectKeysMissingError struct{ Hash hash.Hash }

func (e *StaticObjectKeysMissingError) Error() string {
	return "static object keys missing for hash " + e.Hash.String()
}

type StaticObjectKeysHashConflictError struct {
	Hash hash.Hash
}

func (e *StaticObjectKeysHashConflictError) Error() string {
	return "static object keys hash conflict at " + e.Hash.String()
}

type DuplicateLabelError struct {
	Label any
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("duplicate label `%v`", e.Label)
}

type MissingLabelError struct {
	Label any
}

func (e *MissingLabelError) Error() string {
	return fmt.Sprintf("missing label `%v`", e.Label)
}

type BaseOverflowError struct{}

func (e *BaseOverflowError) Error() string { return "base offset overflow" }

type OffsetOverflowError struct{}

func (e *OffsetOverflowError) Error() string { return "offset overflow" }

type VariantRttiConflictError struct {
	EnumHash    hash.Hash
	VariantHash hash.Hash
	Existing    item.Item
}

func (e *VariantRttiConflictError) Error() string {
	return fmt.Sprintf("variant rtti conflict for variant of `%s`", e.Existing)
}

type TypeRttiConflictError struct {
	Hash     hash.Hash
	Existing item.Item
}

func (e *TypeRttiConflictError) Error() string {
	return fmt.Sprintf("type rtti conflict with existing `%s`", e.Existing)
}

type TypeConflictError struct {
	Hash     hash.Hash
	Existing UnitTypeInfo
}

func (e *TypeConflictError) Error() string {
	return fmt.Sprintf("type conflict with existing `%s`", e.Existing.TypeOf)
}

type MetaConflictError struct {
	Item     item.Item
	Existing Meta
}

func (e *MetaConflictError) Error() string {
	return fmt.Sprintf("meta conflict: `%s` already registered as %s", e.Item, e.Existing.Kind)
}

// MissingFunctionError is a Link-time error: a required function hash could
// not be resolved in either the unit or the supplied context. Spans
// accumulates every call site that referenced it.
type MissingFunctionError struct {
	Hash  hash.Hash
	Spans []any
}

func (e *MissingFunctionError) Error() string {
	return fmt.Sprintf("missing function %s (%d use sites)", e.Hash, len(e.Spans))
}

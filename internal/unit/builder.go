// Package unit implements the central aggregator of the compiler core: the
// incremental Builder that interns static data, registers function and
// type metadata, merges per-function Assemblies into an absolute
// instruction vector, and finalizes into an immutable Unit.
package unit

import (
	"bytes"
	"slices"
	"sort"

	"github.com/jbdutton/rune-go/internal/asm"
	"github.com/jbdutton/rune-go/internal/context"
	"github.com/jbdutton/rune-go/internal/hash"
	"github.com/jbdutton/rune-go/internal/item"
	"github.com/jbdutton/rune-go/internal/pool"
)

// Builder aggregates everything needed to produce a Unit. It is not safe
// for concurrent use: a compile session owns exactly one Builder and
// threads a pointer to it through recursive compilation (spec.md §9).
type Builder struct {
	imports *item.ImportTable
	names   *item.Names

	meta        map[hash.Hash]Meta
	rtti        map[hash.Hash]Rtti
	variantRtti map[hash.Hash]VariantRtti
	functions   map[hash.Hash]UnitFn
	types       map[hash.Hash]UnitTypeInfo

	functionsRev map[int]hash.Hash
	debugSigs    map[hash.Hash]DebugSignature

	strings     *pool.Pool[string]
	bytes       *pool.Pool[[]byte]
	objectKeys  *pool.Pool[[]string]

	labelCount        int
	requiredFunctions map[hash.Hash][]any

	instructions []instRecord
	retainDebug  bool
}

type instRecord struct {
	inst     Instruction
	sourceID int
	span     any
	comment  string
	label    string
}

// New constructs a Builder. When withPrelude is true (the common case) the
// import table is pre-seeded with the standard prelude.
func New(withPrelude bool, retainDebug bool) *Builder {
	b := &Builder{
		imports:           item.NewImportTable(),
		names:             item.NewNames(),
		meta:              make(map[hash.Hash]Meta),
		rtti:              make(map[hash.Hash]Rtti),
		variantRtti:       make(map[hash.Hash]VariantRtti),
		functions:         make(map[hash.Hash]UnitFn),
		types:             make(map[hash.Hash]UnitTypeInfo),
		functionsRev:      make(map[int]hash.Hash),
		debugSigs:         make(map[hash.Hash]DebugSignature),
		requiredFunctions: make(map[hash.Hash][]any),
		retainDebug:       retainDebug,
	}
	b.strings = pool.New[string]("string",
		func(s string) hash.Hash { return hash.Of(s) },
		func(a, c string) bool { return a == c },
	)
	b.bytes = pool.New[[]byte]("bytes",
		func(bs []byte) hash.Hash { return hash.StaticBytes(bs) },
		bytes.Equal,
	)
	b.objectKeys = pool.New[[]string]("object-keys",
		func(keys []string) hash.Hash { return hash.ObjectKeys(keys) },
		slices.Equal[[]string],
	)

	if withPrelude {
		seedPrelude(b)
	}
	return b
}

// Imports exposes the import table for read access (e.g. by the IR
// compiler's path resolution).
func (b *Builder) Imports() *item.ImportTable { return b.imports }

// Names exposes the prefix trie for read access.
func (b *Builder) Names() *item.Names { return b.names }

// NewStaticString interns s, returning its pool slot.
func (b *Builder) NewStaticString(s string) (int, error) {
	slot, err := b.strings.Insert(s)
	if err != nil {
		return 0, translatePoolError(err, "string")
	}
	return slot, nil
}

// NewStaticBytes interns raw, returning its pool slot.
func (b *Builder) NewStaticBytes(raw []byte) (int, error) {
	slot, err := b.bytes.Insert(raw)
	if err != nil {
		return 0, translatePoolError(err, "bytes")
	}
	return slot, nil
}

// NewStaticObjectKeys interns a sorted copy of keys, returning its pool
// slot. Keys are sorted before hashing and storage so that {a,b} and {b,a}
// share a slot, matching the "sorted boxed list" storage contract.
func (b *Builder) NewStaticObjectKeys(keys []string) (int, error) {
	sorted := make([]string, len(keys))
	copy(sorted, keys)
	sort.Strings(sorted)

	slot, err := b.objectKeys.Insert(sorted)
	if err != nil {
		return 0, translatePoolError(err, "object-keys")
	}
	return slot, nil
}

func translatePoolError(err error, kind string) error {
	switch e := err.(type) {
	case *pool.ConflictError:
		switch kind {
		case "string":
			return &StaticStringHashConflictError{Hash: e.Hash, Current: e.Current.(string), Existing: e.Existing.(string)}
		case "bytes":
			return &StaticBytesHashConflictError{Hash: e.Hash}
		default:
			return &StaticObjectKeysHashConflictError{Hash: e.Hash}
		}
	case *pool.MissingError:
		switch kind {
		case "string":
			return &StaticStringMissingError{Hash: e.Hash}
		case "bytes":
			return &StaticBytesMissingError{Hash: e.Hash}
		default:
			return &StaticObjectKeysMissingError{Hash: e.Hash}
		}
	default:
		return err
	}
}

// NewImport registers that `component` resolved at item `at` means `target`.
func (b *Builder) NewImport(at item.Item, component string, target item.Item, span any) {
	b.imports.Insert(at, component, item.ImportEntry{Item: target, Span: span})
}

// InsertMeta registers a semantic item per the meta-kind table of
// spec.md §4.5. The tables a kind touches are checked and written one at a
// time in the order below; when a later table conflicts, the entries this
// call already wrote to earlier tables stay in place.
func (b *Builder) InsertMeta(m Meta) error {
	if existing, ok := b.meta[m.Hash]; ok {
		return &MetaConflictError{Item: m.Item, Existing: existing}
	}

	switch m.Kind {
	case KindUnitStruct:
		if err := b.insertRtti(m.Hash, m.Item); err != nil {
			return err
		}
		if err := b.insertFunction(m.Hash, UnitFn{Kind: UnitFnUnitStruct, TypeHash: m.Hash}, m.Item); err != nil {
			return err
		}
		if err := b.insertType(m.Hash, m.Item); err != nil {
			return err
		}
		b.insertDebugSignature(m.Hash, m.Item, nil)

	case KindTupleStruct:
		if err := b.insertRtti(m.Hash, m.Item); err != nil {
			return err
		}
		if err := b.insertFunction(m.Hash, UnitFn{Kind: UnitFnTupleStruct, TypeHash: m.Hash, Args: m.Args}, m.Item); err != nil {
			return err
		}
		if err := b.insertType(m.Hash, m.Item); err != nil {
			return err
		}
		b.insertDebugSignature(m.Hash, m.Item, nil)

	case KindStruct:
		if err := b.insertRtti(m.Hash, m.Item); err != nil {
			return err
		}
		if err := b.insertType(m.Hash, m.Item); err != nil {
			return err
		}

	case KindUnitVariant:
		if err := b.insertVariantRtti(m.EnumHash, m.VariantHash, m.Item); err != nil {
			return err
		}
		if err := b.insertFunction(m.VariantHash, UnitFn{Kind: UnitFnUnitVariant, TypeHash: m.VariantHash}, m.Item); err != nil {
			return err
		}
		if err := b.insertType(m.VariantHash, m.Item); err != nil {
			return err
		}
		b.insertDebugSignature(m.VariantHash, m.Item, nil)

	case KindTupleVariant:
		if err := b.insertVariantRtti(m.EnumHash, m.VariantHash, m.Item); err != nil {
			return err
		}
		if err := b.insertFunction(m.VariantHash, UnitFn{Kind: UnitFnTupleVariant, TypeHash: m.VariantHash, Args: m.Args}, m.Item); err != nil {
			return err
		}
		if err := b.insertType(m.VariantHash, m.Item); err != nil {
			return err
		}
		b.insertDebugSignature(m.VariantHash, m.Item, nil)

	case KindStructVariant:
		if err := b.insertVariantRtti(m.EnumHash, m.VariantHash, m.Item); err != nil {
			return err
		}
		if err := b.insertType(m.VariantHash, m.Item); err != nil {
			return err
		}

	case KindEnum:
		if err := b.insertType(m.Hash, m.Item); err != nil {
			return err
		}

	case KindFunction, KindClosure, KindAsyncBlock, KindMacro, KindConst, KindConstFn:
		// meta table only; nothing else to register.

	default:
		return &UnsupportedMetaError{Kind: m.Kind}
	}

	b.meta[m.Hash] = m
	b.names.Insert(m.Item)
	return nil
}

func (b *Builder) insertRtti(h hash.Hash, it item.Item) error {
	if existing, ok := b.rtti[h]; ok {
		return &TypeRttiConflictError{Hash: h, Existing: existing.Item}
	}
	b.rtti[h] = Rtti{Hash: h, Item: it}
	return nil
}

func (b *Builder) insertVariantRtti(enumHash, variantHash hash.Hash, it item.Item) error {
	if existing, ok := b.variantRtti[variantHash]; ok {
		return &VariantRttiConflictError{EnumHash: enumHash, VariantHash: variantHash, Existing: existing.Item}
	}
	b.variantRtti[variantHash] = VariantRtti{EnumHash: enumHash, VariantHash: variantHash, Item: it}
	return nil
}

func (b *Builder) insertFunction(h hash.Hash, fn UnitFn, it item.Item) error {
	if existing, ok := b.functions[h]; ok {
		_ = existing
		return &FunctionConflictError{Item: it, Existing: b.debugSigs[h]}
	}
	b.functions[h] = fn
	return nil
}

func (b *Builder) insertType(h hash.Hash, it item.Item) error {
	if existing, ok := b.types[h]; ok {
		return &TypeConflictError{Hash: h, Existing: existing}
	}
	b.types[h] = UnitTypeInfo{Hash: h, TypeOf: it.String()}
	return nil
}

func (b *Builder) insertDebugSignature(h hash.Hash, it item.Item, args []string) {
	b.debugSigs[h] = DebugSignature{Hash: h, Item: it, Args: args}
}

// NewFunction registers a compiled function body at the next instruction
// offset and merges its assembly into the unit's instruction vector.
// Mirrors unit_builder.rs's new_function.
func (b *Builder) NewFunction(sourceID int, path item.Item, args int, body *asm.Assembly, callKind CallKind, debugArgs []string) (hash.Hash, error) {
	return b.registerFunction(sourceID, path, args, body, callKind, debugArgs, hash.Hash(0), "", false)
}

func (b *Builder) registerFunction(sourceID int, path item.Item, args int, body *asm.Assembly, callKind CallKind, debugArgs []string, instanceTypeHash hash.Hash, instanceName string, isInstance bool) (hash.Hash, error) {
	h := path.Hash()

	if existing, ok := b.functions[h]; ok {
		_ = existing
		return h, &FunctionConflictError{Item: path, Existing: b.debugSigs[h]}
	}

	offset := len(b.instructions)
	b.functions[h] = UnitFn{Kind: UnitFnOffset, Offset: offset, Args: args, CallKind: callKind}
	b.functionsRev[offset] = h
	b.insertDebugSignature(h, path, debugArgs)

	if isInstance {
		instH := hash.InstanceFunction(instanceTypeHash, hash.Of(instanceName))
		b.functions[instH] = b.functions[h]
	}

	if err := b.addAssembly(h, sourceID, body); err != nil {
		return h, err
	}
	return h, nil
}

// NewInstanceFunction additionally registers the function under
// hash.InstanceFunction(typeHash, name) so instance-method dispatch can
// find it from a receiver's type hash.
func (b *Builder) NewInstanceFunction(sourceID int, path item.Item, typeHash hash.Hash, name string, args int, body *asm.Assembly, callKind CallKind, debugArgs []string) (hash.Hash, error) {
	return b.registerFunction(sourceID, path, args, body, callKind, debugArgs, typeHash, name, true)
}

// addAssembly merges body's instructions into the unit's absolute
// instruction vector, resolving every jump's Label into a signed relative
// offset, propagating the label counter, and extending the required-
// functions registry. Mirrors unit_builder.rs's add_assembly.
func (b *Builder) addAssembly(fnHash hash.Hash, sourceID int, body *asm.Assembly) error {
	if body.LabelCount() > b.labelCount {
		b.labelCount = body.LabelCount()
	}

	for h, spans := range body.RequiredFunctions {
		b.requiredFunctions[h] = append(b.requiredFunctions[h], spans...)
	}

	base := len(b.instructions)
	for _, entry := range body.Entries() {
		position := base + entry.Position

		resolved := Instruction{Kind: entry.Inst.Kind, Raw: entry.Inst.Raw, Branch: entry.Inst.Branch, Count: entry.Inst.Count}
		if entry.Inst.IsJump() {
			offset, err := body.ResolveOffset(entry.Position, entry.Inst.Label)
			if err != nil {
				return translateAsmError(err)
			}
			resolved.Offset = offset
		}

		rec := instRecord{inst: resolved, sourceID: sourceID, span: entry.Span}
		if b.retainDebug {
			rec.comment = joinComments(body.CommentsAt(entry.Position))
			if l, ok := body.LabelAt(entry.Position); ok {
				rec.label = l.String()
			}
		}
		b.instructions = append(b.instructions, rec)
	}

	_ = fnHash
	return nil
}

func joinComments(cs []string) string {
	if len(cs) == 0 {
		return ""
	}
	out := cs[0]
	for _, c := range cs[1:] {
		out += "; " + c
	}
	return out
}

func translateAsmError(err error) error {
	switch e := err.(type) {
	case *asm.DuplicateLabelError:
		return &DuplicateLabelError{Label: e.Label}
	case *asm.MissingLabelError:
		return &MissingLabelError{Label: e.Label}
	case *asm.BaseOverflowError:
		return &BaseOverflowError{}
	case *asm.OffsetOverflowError:
		return &OffsetOverflowError{}
	default:
		return err
	}
}

// Link checks every required function hash against this unit's own
// function table and the supplied external context, returning one
// *MissingFunctionError per unresolved hash (with every call site span).
func (b *Builder) Link(ctx *context.Context) []error {
	// Sort hashes for deterministic error ordering.
	hashes := make([]hash.Hash, 0, len(b.requiredFunctions))
	for h := range b.requiredFunctions {
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })

	var errs []error
	for _, h := range hashes {
		if _, ok := b.functions[h]; ok {
			continue
		}
		if ctx.HasFunction(h) {
			continue
		}
		errs = append(errs, &MissingFunctionError{Hash: h, Spans: b.requiredFunctions[h]})
	}
	return errs
}

// Build finalizes the builder into an immutable Unit.
func (b *Builder) Build() *Unit {
	u := &Unit{
		Functions:        cloneMap(b.functions),
		Types:            cloneMap(b.types),
		Rtti:             cloneMap(b.rtti),
		VariantRtti:      cloneMap(b.variantRtti),
		StaticStrings:    append([]string(nil), b.strings.Items()...),
		StaticBytes:      append([][]byte(nil), b.bytes.Items()...),
		StaticObjectKeys: append([][]string(nil), b.objectKeys.Items()...),
	}

	u.Instructions = make([]Instruction, len(b.instructions))
	for i, rec := range b.instructions {
		u.Instructions[i] = rec.inst
	}

	if b.retainDebug {
		debug := &DebugInfo{
			Signatures:   cloneMap(b.debugSigs),
			FunctionsRev: cloneIntMap(b.functionsRev),
		}
		debug.Instructions = make([]DebugRecord, len(b.instructions))
		for i, rec := range b.instructions {
			debug.Instructions[i] = DebugRecord{SourceID: rec.sourceID, Span: rec.span, Comment: rec.comment, Label: rec.label}
		}
		u.Debug = debug
	}

	return u
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneIntMap(m map[int]hash.Hash) map[int]hash.Hash {
	out := make(map[int]hash.Hash, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

package unit

import (
	"testing"

	"github.com/jbdutton/rune-go/internal/asm"
	"github.com/jbdutton/rune-go/internal/context"
	"github.com/jbdutton/rune-go/internal/item"
)

func TestNewStaticStringIdempotent(t *testing.T) {
	b := New(false, false)

	s1, err := b.NewStaticString("hello")
	if err != nil {
		t.Fatal(err)
	}
	s2, err := b.NewStaticString("hello")
	if err != nil {
		t.Fatal(err)
	}
	if s1 != s2 {
		t.Fatalf("expected same slot, got %d and %d", s1, s2)
	}

	if _, err := b.NewStaticString("world"); err != nil {
		t.Fatal(err)
	}

	u := b.Build()
	if len(u.StaticStrings) != 2 {
		t.Fatalf("expected 2 distinct strings, got %d", len(u.StaticStrings))
	}
}

func TestNewStaticObjectKeysOrderInsensitive(t *testing.T) {
	b := New(false, false)

	s1, err := b.NewStaticObjectKeys([]string{"b", "a"})
	if err != nil {
		t.Fatal(err)
	}
	s2, err := b.NewStaticObjectKeys([]string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if s1 != s2 {
		t.Fatalf("expected order-insensitive slot reuse, got %d and %d", s1, s2)
	}
}

func TestNewFunctionRegistersOffsetAndDebugSig(t *testing.T) {
	b := New(false, true)

	path := item.Of("my_mod", "foo")
	body := asm.New(0, 0)
	body.Push(asm.Inst{Kind: asm.KindRaw, Raw: asm.Raw{Op: "return-unit"}}, nil)

	h, err := b.NewFunction(0, path, 0, body, CallSync, nil)
	if err != nil {
		t.Fatal(err)
	}

	u := b.Build()
	fn, ok := u.Functions[h]
	if !ok {
		t.Fatalf("expected function registered under %s", h)
	}
	if fn.Kind != UnitFnOffset || fn.Offset != 0 {
		t.Fatalf("expected offset function at 0, got %+v", fn)
	}
	if len(u.Instructions) != 1 {
		t.Fatalf("expected 1 merged instruction, got %d", len(u.Instructions))
	}
	if u.Debug.FunctionsRev[0] != h {
		t.Fatalf("expected functions_rev[0] == %s", h)
	}
	if _, ok := u.Debug.Signatures[h]; !ok {
		t.Fatalf("expected debug signature registered under %s", h)
	}
}

func TestDuplicateFunctionIsConflict(t *testing.T) {
	b := New(false, false)
	path := item.Of("foo")

	if _, err := b.NewFunction(0, path, 0, asm.New(0, 0), CallSync, nil); err != nil {
		t.Fatal(err)
	}
	_, err := b.NewFunction(0, path, 0, asm.New(0, b.labelCount), CallSync, nil)
	if err == nil {
		t.Fatalf("expected conflict on duplicate function path")
	}
	if _, ok := err.(*FunctionConflictError); !ok {
		t.Fatalf("expected *FunctionConflictError, got %T: %v", err, err)
	}
}

func TestJumpOffsetRoundTrip(t *testing.T) {
	b := New(false, false)
	body := asm.New(0, 0)

	top := body.Label("top")
	body.Mark(top, body.Push(asm.Inst{Kind: asm.KindRaw}, nil))
	body.Push(asm.Inst{Kind: asm.KindRaw}, nil)
	jumpPos := body.Push(asm.Inst{Kind: asm.KindJump, Label: top}, nil)

	path := item.Of("loopfn")
	h, err := b.NewFunction(0, path, 0, body, CallSync, nil)
	if err != nil {
		t.Fatal(err)
	}
	_ = h

	u := b.Build()
	jump := u.Instructions[jumpPos]
	target := int64(jumpPos) + 1 + jump.Offset
	if target != 0 {
		t.Fatalf("expected jump to resolve back to position 0, got %d", target)
	}
}

func TestLinkReportsMissingFunction(t *testing.T) {
	b := New(false, false)
	body := asm.New(0, 0)
	body.Push(asm.Inst{Kind: asm.KindRaw}, nil)
	body.Require(item.Of("undefined_fn").Hash(), "call-site")

	if _, err := b.NewFunction(0, item.Of("caller"), 0, body, CallSync, nil); err != nil {
		t.Fatal(err)
	}

	errs := b.Link(context.New())
	if len(errs) != 1 {
		t.Fatalf("expected 1 missing-function error, got %d", len(errs))
	}
	mf, ok := errs[0].(*MissingFunctionError)
	if !ok {
		t.Fatalf("expected *MissingFunctionError, got %T", errs[0])
	}
	if len(mf.Spans) != 1 {
		t.Fatalf("expected 1 use site recorded, got %d", len(mf.Spans))
	}
}

func TestLinkResolvesFromContext(t *testing.T) {
	b := New(false, false)
	body := asm.New(0, 0)
	body.Push(asm.Inst{Kind: asm.KindRaw}, nil)
	externalHash := item.Of("host_fn").Hash()
	body.Require(externalHash, "call-site")

	if _, err := b.NewFunction(0, item.Of("caller"), 0, body, CallSync, nil); err != nil {
		t.Fatal(err)
	}

	ctx := context.New().WithFunction(externalHash)
	errs := b.Link(ctx)
	if len(errs) != 0 {
		t.Fatalf("expected no missing-function errors, got %v", errs)
	}
}

func TestInsertMetaUnitStructRegistersAllTables(t *testing.T) {
	b := New(false, true)
	it := item.Of("Point")
	h := it.Hash()

	err := b.InsertMeta(Meta{Kind: KindUnitStruct, Item: it, Hash: h})
	if err != nil {
		t.Fatal(err)
	}

	u := b.Build()
	if _, ok := u.Rtti[h]; !ok {
		t.Fatalf("expected rtti entry for unit struct")
	}
	if _, ok := u.Functions[h]; !ok {
		t.Fatalf("expected function entry for unit struct constructor")
	}
	if _, ok := u.Types[h]; !ok {
		t.Fatalf("expected type entry for unit struct")
	}
}

func TestInsertMetaDuplicateIsMetaConflict(t *testing.T) {
	b := New(false, false)
	it := item.Of("Dup")
	h := it.Hash()

	if err := b.InsertMeta(Meta{Kind: KindFunction, Item: it, Hash: h}); err != nil {
		t.Fatal(err)
	}
	err := b.InsertMeta(Meta{Kind: KindFunction, Item: it, Hash: h})
	if err == nil {
		t.Fatalf("expected meta conflict on duplicate hash")
	}
	if _, ok := err.(*MetaConflictError); !ok {
		t.Fatalf("expected *MetaConflictError, got %T", err)
	}
}

func TestPreludeSeedsStdNames(t *testing.T) {
	b := New(true, false)
	target, ok := b.Imports().LookupByName(item.New(), "println")
	if !ok {
		t.Fatalf("expected prelude to resolve println")
	}
	if target.String() != "std::println" {
		t.Fatalf("expected std::println, got %s", target)
	}
}

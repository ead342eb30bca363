package asm

import (
	"testing"

	"github.com/jbdutton/rune-go/internal/hash"
)

func TestPushAndEntriesPreserveOrder(t *testing.T) {
	a := New(0, 0)
	a.Push(Inst{Kind: KindRaw, Raw: Raw{Op: "const", Operands: []int64{1}}}, nil)
	a.Push(Inst{Kind: KindRaw, Raw: Raw{Op: "const", Operands: []int64{2}}}, nil)

	entries := a.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Position != 0 || entries[1].Position != 1 {
		t.Fatalf("expected positions 0,1; got %d,%d", entries[0].Position, entries[1].Position)
	}
	if entries[1].Inst.Raw.Operands[0] != 2 {
		t.Fatalf("entries out of order")
	}
}

func TestMarkDetectsDuplicateLabel(t *testing.T) {
	a := New(0, 0)
	l := a.Label("loop")
	if err := a.Mark(l, 0); err != nil {
		t.Fatalf("unexpected error on first mark: %v", err)
	}
	err := a.Mark(l, 1)
	if err == nil {
		t.Fatalf("expected duplicate label error")
	}
	if _, ok := err.(*DuplicateLabelError); !ok {
		t.Fatalf("expected *DuplicateLabelError, got %T", err)
	}
}

func TestResolveOffsetMissingLabel(t *testing.T) {
	a := New(0, 0)
	l := a.Label("nowhere")
	_, err := a.ResolveOffset(0, l)
	if _, ok := err.(*MissingLabelError); !ok {
		t.Fatalf("expected *MissingLabelError, got %T: %v", err, err)
	}
}

func TestResolveOffsetForwardAndBackward(t *testing.T) {
	a := New(0, 0)

	// Backward jump: label marked before the jump site.
	top := a.Label("top")
	pos0 := a.Push(Inst{Kind: KindRaw}, nil)
	if err := a.Mark(top, pos0); err != nil {
		t.Fatal(err)
	}
	pos1 := a.Push(Inst{Kind: KindJump, Label: top}, nil)
	offset, err := a.ResolveOffset(pos1, top)
	if err != nil {
		t.Fatal(err)
	}
	// base = pos1+1 = 2, label at 0 => offset = 0 - 2 = -2
	if offset != -2 {
		t.Fatalf("expected offset -2, got %d", offset)
	}

	// Forward jump: label marked after the jump site.
	end := a.Label("end")
	jumpPos := a.Push(Inst{Kind: KindJump, Label: end}, nil)
	a.Push(Inst{Kind: KindRaw}, nil)
	endPos := a.Push(Inst{Kind: KindRaw}, nil)
	if err := a.Mark(end, endPos); err != nil {
		t.Fatal(err)
	}
	offset2, err := a.ResolveOffset(jumpPos, end)
	if err != nil {
		t.Fatal(err)
	}
	if offset2 != int64(endPos-(jumpPos+1)) {
		t.Fatalf("expected offset %d, got %d", endPos-(jumpPos+1), offset2)
	}
}

func TestRequireAccumulatesSpans(t *testing.T) {
	a := New(0, 0)
	h := hash.Of("my::function")
	a.Require(h, "span-a")
	a.Require(h, "span-b")
	if len(a.RequiredFunctions[h]) != 2 {
		t.Fatalf("expected 2 recorded spans, got %d", len(a.RequiredFunctions[h]))
	}
}

func TestLabelCountThreadsAcrossAssemblies(t *testing.T) {
	a := New(0, 0)
	a.Label("x")
	a.Label("y")
	if a.LabelCount() != 2 {
		t.Fatalf("expected label count 2, got %d", a.LabelCount())
	}

	b := New(1, a.LabelCount())
	l := b.Label("z")
	if l.Disambiguator != 2 {
		t.Fatalf("expected sibling assembly to continue counter at 2, got %d", l.Disambiguator)
	}
}

func TestCommentsAttachToPosition(t *testing.T) {
	a := New(0, 0)
	pos := a.Push(Inst{Kind: KindRaw}, nil)
	a.Comment(pos, "note")
	if got := a.CommentsAt(pos); len(got) != 1 || got[0] != "note" {
		t.Fatalf("expected [note], got %v", got)
	}
}

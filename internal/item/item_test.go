package item

import "testing"

func TestEqualitySegmentWise(t *testing.T) {
	a := Of("a", "b")
	b := Of("a", "b")
	c := Of("a", "c")
	if !a.Equal(b) {
		t.Fatalf("expected equal items")
	}
	if a.Equal(c) {
		t.Fatalf("expected unequal items")
	}
}

func TestPushPopLast(t *testing.T) {
	it := Of("a").Push(Block(1)).Push(Ident("b"))
	last, ok := it.Last()
	if !ok || last.Name != "b" {
		t.Fatalf("expected last component b, got %+v", last)
	}

	popped, c, ok := it.Pop()
	if !ok || c.Name != "b" {
		t.Fatalf("expected popped component b")
	}
	if popped.Len() != 2 {
		t.Fatalf("expected 2 remaining components, got %d", popped.Len())
	}
}

func TestConvertPathFallsBackToBareName(t *testing.T) {
	table := NewImportTable()
	base := Of("mymod")

	resolved := ConvertPath(table, base, "undeclared", nil)
	if resolved.String() != "undeclared" {
		t.Fatalf("expected fallback to bare name, got %s", resolved.String())
	}
}

func TestConvertPathWalksOutward(t *testing.T) {
	table := NewImportTable()
	root := Of()
	table.Insert(root, "println", ImportEntry{Item: Of("std", "println")})

	base := Of("mymod", "inner")
	resolved := ConvertPath(table, base, "println", nil)
	if resolved.String() != "std::println" {
		t.Fatalf("expected outward walk to find root import, got %s", resolved.String())
	}
}

func TestNamesContainsPrefix(t *testing.T) {
	n := NewNames()
	n.Insert(Of("a", "b", "c"))

	if !n.ContainsPrefix(Of("a", "b")) {
		t.Fatalf("expected prefix a::b to exist")
	}
	if n.ContainsPrefix(Of("a", "x")) {
		t.Fatalf("did not expect prefix a::x to exist")
	}
}

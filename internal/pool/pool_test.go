package pool

import (
	"testing"

	"github.com/jbdutton/rune-go/internal/hash"
)

func stringPool() *Pool[string] {
	return New[string]("string",
		func(s string) hash.Hash { return hash.Of(s) },
		func(a, b string) bool { return a == b },
	)
}

func TestInsertIdempotent(t *testing.T) {
	p := stringPool()

	s1, err := p.Insert("hello")
	if err != nil {
		t.Fatal(err)
	}
	s2, err := p.Insert("hello")
	if err != nil {
		t.Fatal(err)
	}
	if s1 != s2 {
		t.Fatalf("expected same slot for equal content, got %d and %d", s1, s2)
	}
	if p.Len() != 1 {
		t.Fatalf("expected pool length 1, got %d", p.Len())
	}

	if _, err := p.Insert("world"); err != nil {
		t.Fatal(err)
	}
	if p.Len() != 2 {
		t.Fatalf("expected pool length 2, got %d", p.Len())
	}
}

func TestInsertDetectsHashCollision(t *testing.T) {
	// Force a collision by using a constant hash function.
	p := New[string]("string",
		func(s string) hash.Hash { return hash.Hash(1) },
		func(a, b string) bool { return a == b },
	)

	if _, err := p.Insert("alpha"); err != nil {
		t.Fatal(err)
	}

	_, err := p.Insert("beta")
	if err == nil {
		t.Fatalf("expected conflict error on simulated hash collision")
	}
	var conflict *ConflictError
	if !errorsAsConflict(err, &conflict) {
		t.Fatalf("expected *ConflictError, got %T: %v", err, err)
	}
	if p.Len() != 1 {
		t.Fatalf("pool must not be corrupted by failed insert, got length %d", p.Len())
	}
}

func errorsAsConflict(err error, target **ConflictError) bool {
	if c, ok := err.(*ConflictError); ok {
		*target = c
		return true
	}
	return false
}

func TestGetOutOfRange(t *testing.T) {
	p := stringPool()
	if _, ok := p.Get(0); ok {
		t.Fatalf("expected miss on empty pool")
	}
}

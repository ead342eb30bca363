package source

import "testing"

func TestAddAssignsSequentialIDs(t *testing.T) {
	s := New()
	a := s.Add("a.rn", "fn a() {}")
	b := s.Add("b.rn", "fn b() {}")
	if a.ID != 0 || b.ID != 1 {
		t.Fatalf("expected sequential ids 0,1, got %d,%d", a.ID, b.ID)
	}
	if s.Len() != 2 {
		t.Fatalf("expected len 2, got %d", s.Len())
	}
}

func TestAddIsIdempotentPerName(t *testing.T) {
	s := New()
	first := s.Add("main.rn", "one")
	second := s.Add("main.rn", "two")
	if first.ID != second.ID || second.Text != "one" {
		t.Fatalf("expected re-adding a name to return the original entry, got %+v", second)
	}
	if s.Len() != 1 {
		t.Fatalf("expected len 1 after duplicate add, got %d", s.Len())
	}
}

func TestGetAndByName(t *testing.T) {
	s := New()
	s.Add("main.rn", "x")
	got, ok := s.Get(0)
	if !ok || got.Name != "main.rn" {
		t.Fatalf("unexpected Get result: %+v, ok=%v", got, ok)
	}
	byName, ok := s.ByName("main.rn")
	if !ok || byName.ID != got.ID {
		t.Fatalf("unexpected ByName result: %+v, ok=%v", byName, ok)
	}
	if _, ok := s.Get(5); ok {
		t.Fatal("expected Get of out-of-range id to fail")
	}
	if _, ok := s.ByName("missing.rn"); ok {
		t.Fatal("expected ByName of unknown name to fail")
	}
}

func TestLoaderFuncAdapts(t *testing.T) {
	var l Loader = LoaderFunc(func(name string) (string, error) {
		if name == "known" {
			return "body", nil
		}
		return "", ErrNotFound
	})
	text, err := l.Load("known")
	if err != nil || text != "body" {
		t.Fatalf("unexpected load result: %q, %v", text, err)
	}
	if _, err := l.Load("unknown"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

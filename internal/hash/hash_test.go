package hash

import "testing"

func TestPathDistinguishesSegmentBoundaries(t *testing.T) {
	a := Path(tagFunction, []string{"a", "b"})
	b := Path(tagFunction, []string{"ab"})
	if a == b {
		t.Fatalf("Path([a,b]) collided with Path([ab]): %v", a)
	}
}

func TestFunctionDeterministic(t *testing.T) {
	h1 := Function([]string{"std", "string", "len"})
	h2 := Function([]string{"std", "string", "len"})
	if h1 != h2 {
		t.Fatalf("Function hash not deterministic: %v != %v", h1, h2)
	}
}

func TestInstanceFunctionDistinctFromFunction(t *testing.T) {
	ty := TypeHash([]string{"std", "string", "String"})
	name := Of("len")
	instHash := InstanceFunction(ty, name)
	fnHash := Function([]string{"std", "string", "String", "len"})
	if instHash == fnHash {
		t.Fatalf("instance function hash collided with plain function hash")
	}
}

func TestObjectKeysOrderSensitive(t *testing.T) {
	a := ObjectKeys([]string{"a", "b"})
	b := ObjectKeys([]string{"b", "a"})
	if a == b {
		t.Fatalf("ObjectKeys should be order sensitive, got equal hashes")
	}
}

func TestStaticBytesDeterministic(t *testing.T) {
	a := StaticBytes([]byte("hello"))
	b := StaticBytes([]byte("hello"))
	if a != b {
		t.Fatalf("StaticBytes not deterministic")
	}
}

// Package hash provides stable content hashing for the unit builder: static
// pool interning, item/path identity, and function/instance-function
// fingerprints. The hasher is xxHash-family, seeded once per call so that
// distinct logical inputs (e.g. the path ["a","b"] vs ["ab"]) never collapse
// onto the same bytes fed to the hasher.
package hash

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Hash is a 64-bit fingerprint. It is opaque to callers: the only supported
// operations are equality and formatting.
type Hash uint64

// GlobalModule is the hash reserved for global (module-less) function calls.
const GlobalModule Hash = 0

// Tag values mirror the original implementation's path-kind discriminants,
// so that a function hash can never collide with an instance-function hash
// constructed from the same textual parts.
const (
	tagFunction         = 2
	tagInstanceFunction = 3
	sepByte             = 0x7f
)

func (h Hash) String() string {
	return fmt.Sprintf("0x%x", uint64(h))
}

// GoString renders the hash the way a debugger would print it.
func (h Hash) GoString() string {
	return fmt.Sprintf("Hash(0x%x)", uint64(h))
}

// Of hashes the canonical byte representation of thing. Callers pass
// anything that can be rendered deterministically with fmt — this mirrors
// the original's generic `Hash::of<T: Hash>`, narrowed in Go to the inputs
// the compiler actually needs to hash (strings, byte slices, small tuples
// of hashables).
func Of(parts ...any) Hash {
	d := xxhash.New()
	for _, p := range parts {
		writeAny(d, p)
	}
	return Hash(d.Sum64())
}

func writeAny(d *xxhash.Digest, v any) {
	switch x := v.(type) {
	case string:
		_, _ = d.Write([]byte(x))
	case []byte:
		_, _ = d.Write(x)
	case Hash:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(x))
		_, _ = d.Write(buf[:])
	case uint64:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], x)
		_, _ = d.Write(buf[:])
	case int:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(x))
		_, _ = d.Write(buf[:])
	default:
		_, _ = fmt.Fprintf(d, "%v", x)
	}
}

// Path hashes kind followed by each segment of path, each segment followed
// by a fixed separator byte. This guarantees that ["a", "b"] hashes
// differently from ["ab"], which a naive concatenation would not.
func Path(kind int, segments []string) Hash {
	d := xxhash.New()
	writeAny(d, uint64(kind))
	for _, seg := range segments {
		_, _ = d.Write([]byte(seg))
		_, _ = d.Write([]byte{sepByte})
	}
	return Hash(d.Sum64())
}

// Function hashes a function identified by its fully qualified path.
func Function(path []string) Hash {
	return Path(tagFunction, path)
}

// TypeHash is an alias for Function: in this model, a type's identity and a
// free function's identity are both derived from their item path.
func TypeHash(path []string) Hash {
	return Function(path)
}

// InstanceFunction combines a type identity with a method-name hash into a
// single stable fingerprint, independent of the type's own path hash.
func InstanceFunction(typeHash Hash, name Hash) Hash {
	return Of(uint64(tagInstanceFunction), typeHash, uint64(sepByte), name)
}

// StaticBytes hashes the serialized representation of a byte string pool
// entry.
func StaticBytes(b []byte) Hash {
	return Hash(xxhash.Sum64(b))
}

// ObjectKeys hashes a sorted list of object keys, used to deduplicate
// object-key schemas in the static pool. Keys must already be sorted by the
// caller (the pool does not re-sort, matching the original's contract that
// schemas are stored pre-sorted).
func ObjectKeys(keys []string) Hash {
	d := xxhash.New()
	for _, k := range keys {
		_, _ = d.Write([]byte(k))
		_, _ = d.Write([]byte{sepByte})
	}
	return Hash(d.Sum64())
}

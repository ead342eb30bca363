// Package pool implements the deduplicated, append-only static pools used
// by the unit builder for strings, byte strings, and object-key schemas.
// Insertion is idempotent by content hash; a hash collision between two
// distinct payloads is a fatal, named error rather than silent corruption.
package pool

import "github.com/jbdutton/rune-go/internal/hash"

// ConflictError reports that two distinct payloads hashed to the same slot.
type ConflictError struct {
	Kind     string // e.g. "string", "bytes", "object-keys"
	Hash     hash.Hash
	Current  any
	Existing any
}

func (e *ConflictError) Error() string {
	return "static-" + e.Kind + " hash conflict at " + e.Hash.String()
}

// MissingError reports that a reverse-map hit pointed at a slot with no
// payload — an internal consistency failure, defensive against bugs in the
// pool implementation itself.
type MissingError struct {
	Kind string
	Hash hash.Hash
	Slot int
}

func (e *MissingError) Error() string {
	return "static-" + e.Kind + " missing for hash " + e.Hash.String()
}

// Pool is a deduplicated append-only vector of T, indexed by slot, with a
// reverse hash->slot map. equalFn reports whether two payloads are the same
// content (used to detect hash collisions on insert).
type Pool[T any] struct {
	kind    string
	hashFn  func(T) hash.Hash
	equalFn func(a, b T) bool

	items   []T
	bySlot  map[hash.Hash]int
}

// New constructs an empty pool. kind labels the pool in error messages
// (e.g. "string"); hashFn and equalFn define content identity.
func New[T any](kind string, hashFn func(T) hash.Hash, equalFn func(a, b T) bool) *Pool[T] {
	return &Pool[T]{
		kind:    kind,
		hashFn:  hashFn,
		equalFn: equalFn,
		bySlot:  make(map[hash.Hash]int),
	}
}

// Insert returns the slot for current, inserting it if no equal payload is
// already present. A hash collision against a different payload is a fatal
// *ConflictError; a reverse-map hit with no backing slot is a *MissingError.
func (p *Pool[T]) Insert(current T) (int, error) {
	h := p.hashFn(current)

	if slot, ok := p.bySlot[h]; ok {
		if slot < 0 || slot >= len(p.items) {
			return 0, &MissingError{Kind: p.kind, Hash: h, Slot: slot}
		}

		existing := p.items[slot]
		if !p.equalFn(existing, current) {
			return 0, &ConflictError{Kind: p.kind, Hash: h, Current: current, Existing: existing}
		}

		return slot, nil
	}

	slot := len(p.items)
	p.items = append(p.items, current)
	p.bySlot[h] = slot
	return slot, nil
}

// Get retrieves the payload at slot in O(1).
func (p *Pool[T]) Get(slot int) (T, bool) {
	var zero T
	if slot < 0 || slot >= len(p.items) {
		return zero, false
	}
	return p.items[slot], true
}

// Len returns the number of distinct entries in the pool.
func (p *Pool[T]) Len() int { return len(p.items) }

// Items returns all pool entries in slot order. The returned slice must not
// be mutated.
func (p *Pool[T]) Items() []T { return p.items }

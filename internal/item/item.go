// Package item implements the hierarchical module path model: Items are
// ordered sequences of Components, compared structurally and hashed for
// type identity. The compiler appends components as it enters scopes
// (modules, blocks, closures, async blocks).
package item

import (
	"strconv"
	"strings"

	"github.com/jbdutton/rune-go/internal/hash"
)

// Kind discriminates the flavor of a path Component.
type Kind int

const (
	// KindIdent is a plain named identifier, e.g. a module or function name.
	KindIdent Kind = iota
	// KindBlock disambiguates a block-local scope by an incrementing counter.
	KindBlock
	// KindClosure disambiguates a closure literal by an incrementing counter.
	KindClosure
	// KindAsync disambiguates an async block by an incrementing counter.
	KindAsync
)

// Component is one segment of an Item.
type Component struct {
	Kind Kind
	Name string // valid when Kind == KindIdent
	ID   int    // valid for Block/Closure/Async
}

// Ident constructs a named identifier component.
func Ident(name string) Component { return Component{Kind: KindIdent, Name: name} }

// Block constructs a block-local disambiguator component.
func Block(id int) Component { return Component{Kind: KindBlock, ID: id} }

// Closure constructs a closure disambiguator component.
func Closure(id int) Component { return Component{Kind: KindClosure, ID: id} }

// Async constructs an async-block disambiguator component.
func Async(id int) Component { return Component{Kind: KindAsync, ID: id} }

// String renders a component the way it would appear in a qualified path.
func (c Component) String() string {
	switch c.Kind {
	case KindBlock:
		return "$block" + strconv.Itoa(c.ID)
	case KindClosure:
		return "$closure" + strconv.Itoa(c.ID)
	case KindAsync:
		return "$async" + strconv.Itoa(c.ID)
	default:
		return c.Name
	}
}

// Item is an ordered, append-only sequence of Components identifying a
// named entity in the compiled program.
type Item struct {
	parts []Component
}

// New returns an empty Item.
func New() Item { return Item{} }

// Of constructs an Item from a sequence of plain identifier names, the
// common case for building items out of literal path segments.
func Of(names ...string) Item {
	it := Item{parts: make([]Component, 0, len(names))}
	for _, n := range names {
		it.parts = append(it.parts, Ident(n))
	}
	return it
}

// Push appends a component, returning a new Item (the receiver is left
// unmodified so callers can branch scopes freely).
func (it Item) Push(c Component) Item {
	parts := make([]Component, len(it.parts)+1)
	copy(parts, it.parts)
	parts[len(it.parts)] = c
	return Item{parts: parts}
}

// Pop returns the item with its last component removed, and that
// component. ok is false for an empty item.
func (it Item) Pop() (Item, Component, bool) {
	if len(it.parts) == 0 {
		return it, Component{}, false
	}
	last := it.parts[len(it.parts)-1]
	return Item{parts: it.parts[:len(it.parts)-1]}, last, true
}

// Last returns the final component of the item, if any.
func (it Item) Last() (Component, bool) {
	if len(it.parts) == 0 {
		return Component{}, false
	}
	return it.parts[len(it.parts)-1], true
}

// Len returns the number of components.
func (it Item) Len() int { return len(it.parts) }

// Components returns the item's components in order. The returned slice
// must not be mutated by the caller.
func (it Item) Components() []Component { return it.parts }

// Equal reports structural (segment-wise) equality.
func (it Item) Equal(other Item) bool {
	if len(it.parts) != len(other.parts) {
		return false
	}
	for i := range it.parts {
		if it.parts[i] != other.parts[i] {
			return false
		}
	}
	return true
}

// String renders the item as a double-colon separated path, e.g. "a::b::c".
func (it Item) String() string {
	segs := make([]string, len(it.parts))
	for i, c := range it.parts {
		segs[i] = c.String()
	}
	return strings.Join(segs, "::")
}

// segments returns the plain-text form of each component, used for hashing.
func (it Item) segments() []string {
	segs := make([]string, len(it.parts))
	for i, c := range it.parts {
		segs[i] = c.String()
	}
	return segs
}

// Hash computes the function/type identity hash for this item.
func (it Item) Hash() hash.Hash {
	return hash.Function(it.segments())
}

// GobEncode/GobDecode give Item a stable wire representation despite its
// unexported parts field, which gob would otherwise silently drop — the
// bytecode cache (internal/wire) serializes Items nested inside
// DebugSignature/Rtti/VariantRtti and needs them to round-trip intact.
func (it Item) GobEncode() ([]byte, error) {
	return gobEncode(it.parts)
}

func (it *Item) GobDecode(data []byte) error {
	return gobDecode(data, &it.parts)
}

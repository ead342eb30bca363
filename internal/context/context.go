// Package context models the read-only, externally-owned registry of
// functions and types a Unit may be linked against — e.g. a host runtime's
// built-ins. It is safe for concurrent use by multiple compilations
// (spec.md §5): it is never mutated after construction here.
package context

import "github.com/jbdutton/rune-go/internal/hash"

// Context is the read-only set of externally-registered function and type
// hashes a compiled Unit may call into without defining them itself.
type Context struct {
	functions map[hash.Hash]struct{}
	types     map[hash.Hash]struct{}
}

// New constructs an empty context.
func New() *Context {
	return &Context{
		functions: make(map[hash.Hash]struct{}),
		types:     make(map[hash.Hash]struct{}),
	}
}

// WithFunction registers a function hash as externally resolvable and
// returns the context for chaining.
func (c *Context) WithFunction(h hash.Hash) *Context {
	c.functions[h] = struct{}{}
	return c
}

// WithType registers a type hash as externally resolvable.
func (c *Context) WithType(h hash.Hash) *Context {
	c.types[h] = struct{}{}
	return c
}

// HasFunction reports whether h is registered in this context.
func (c *Context) HasFunction(h hash.Hash) bool {
	if c == nil {
		return false
	}
	_, ok := c.functions[h]
	return ok
}

// HasType reports whether h is registered in this context.
func (c *Context) HasType(h hash.Hash) bool {
	if c == nil {
		return false
	}
	_, ok := c.types[h]
	return ok
}

package unit

import "github.com/jbdutton/rune-go/internal/item"

// preludeEntries lists the standard-library names seeded into a fresh
// Builder's import table, each resolving `name` at the root item to
// `std::name`. The list mirrors the reference toolchain's default prelude:
// a handful of free functions, the primitive type names, and the Result /
// Option constructors.
var preludeEntries = []string{
	"dbg",
	"drop",
	"is_readable",
	"is_writable",
	"panic",
	"print",
	"println",
	"unit",
	"bool",
	"byte",
	"char",
	"int",
	"float",
	"Object",
	"Vec",
	"String",
	"Result",
	"Ok",
	"Err",
	"Option",
	"Some",
	"None",
}

// seedPrelude installs preludeEntries into the root import table, each
// under `std::<name>`.
func seedPrelude(b *Builder) {
	root := item.New()
	std := item.Of("std")
	for _, name := range preludeEntries {
		b.imports.Insert(root, name, item.ImportEntry{Item: std.Push(item.Ident(name))})
	}
}

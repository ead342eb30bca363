// Package wire defines the on-disk envelope around a serialized unit.Unit:
// a magic tag and a version number ahead of the payload, so a reader can
// reject anything it does not recognize outright (spec.md §6 "the cache
// includes a magic tag and a version number; mismatch = discard") rather
// than attempting to decode bytes from an incompatible toolchain version.
package wire

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/jbdutton/rune-go/internal/ast"
	"github.com/jbdutton/rune-go/internal/unit"
)

func init() {
	// DebugRecord.Span is carried as `any` to avoid a unit->ast dependency,
	// but the only concrete span type the front end ever produces is
	// ast.Pos; gob requires interface-typed fields to name their concrete
	// types up front.
	gob.Register(ast.Pos{})
}

// Magic identifies a rune-go bytecode cache file, distinguishing it from
// any other file that might share the .rnc extension.
const Magic uint32 = 0x52554e45 // "RUNE"

// Version is bumped whenever the envelope or payload shape changes in a
// way that is not safely backward compatible. Per spec.md §6, backward
// compatibility across toolchain versions is not required.
const Version uint32 = 1

// Envelope is the fixed header written ahead of the gob-encoded Unit.
type Envelope struct {
	Magic   uint32
	Version uint32
}

// Accepts reports whether an envelope read from disk matches what this
// build of the toolchain can decode.
func (e Envelope) Accepts() bool {
	return e.Magic == Magic && e.Version == Version
}

// Encode writes the envelope followed by a gob-encoded Unit.
func Encode(u *unit.Unit) ([]byte, error) {
	var buf bytes.Buffer
	env := Envelope{Magic: Magic, Version: Version}
	if err := gob.NewEncoder(&buf).Encode(env); err != nil {
		return nil, fmt.Errorf("wire: encode envelope: %w", err)
	}
	if err := gob.NewEncoder(&buf).Encode(u); err != nil {
		return nil, fmt.Errorf("wire: encode unit: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reads an envelope-prefixed gob-encoded Unit. A version or magic
// mismatch is reported as *VersionMismatchError rather than a generic
// decode failure, so callers can distinguish "not ours" from "corrupt".
func Decode(data []byte) (*unit.Unit, error) {
	r := bytes.NewReader(data)
	dec := gob.NewDecoder(r)

	var env Envelope
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("wire: decode envelope: %w", err)
	}
	if !env.Accepts() {
		return nil, &VersionMismatchError{Got: env, Want: Envelope{Magic: Magic, Version: Version}}
	}

	var u unit.Unit
	if err := dec.Decode(&u); err != nil {
		return nil, fmt.Errorf("wire: decode unit: %w", err)
	}
	return &u, nil
}

// VersionMismatchError reports an envelope that does not match this
// build's magic tag and/or version.
type VersionMismatchError struct {
	Got  Envelope
	Want Envelope
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("wire: envelope mismatch: got magic=%#x version=%d, want magic=%#x version=%d",
		e.Got.Magic, e.Got.Version, e.Want.Magic, e.Want.Version)
}

// Package asm implements the per-function, label-addressed instruction
// buffer produced while compiling a single function body. Jump targets are
// placeholders (Labels) until the assembly is merged into a unit.Builder,
// which translates them into signed relative offsets (spec.md §4.4, §4.5).
package asm

import (
	"fmt"

	"github.com/jbdutton/rune-go/internal/hash"
)

type instSpan struct {
	Inst Inst
	Span any // ast.Span, kept untyped here to avoid an asm->ast dependency
}

// Assembly accumulates instructions, labels, comments and required-function
// uses for a single function body.
type Assembly struct {
	SourceID int

	instructions []instSpan
	labels       map[Label]int // label -> position
	labelsRev    map[int]Label // position -> label, for debug info
	comments     map[int][]string
	labelCount   int

	// RequiredFunctions records every function hash this assembly calls,
	// together with every span that called it, so the unit builder can
	// produce one MissingFunction diagnostic per hash with all use sites.
	RequiredFunctions map[hash.Hash][]any
}

// New constructs an empty assembly for the given source, seeding its label
// counter from labelCount so that labels minted across sibling functions in
// the same unit never collide.
func New(sourceID int, labelCount int) *Assembly {
	return &Assembly{
		SourceID:          sourceID,
		labels:            make(map[Label]int),
		labelsRev:         make(map[int]Label),
		comments:          make(map[int][]string),
		labelCount:        labelCount,
		RequiredFunctions: make(map[hash.Hash][]any),
	}
}

// LabelCount returns the current label counter, to be threaded into the
// next sibling assembly.
func (a *Assembly) LabelCount() int { return a.labelCount }

// Label mints a fresh, uniquely-disambiguated label under the given name.
func (a *Assembly) Label(name string) Label {
	l := Label{Name: name, Disambiguator: a.labelCount}
	a.labelCount++
	return l
}

// Push appends an instruction at the given span, returning its position
// within this assembly.
func (a *Assembly) Push(inst Inst, span any) int {
	pos := len(a.instructions)
	a.instructions = append(a.instructions, instSpan{Inst: inst, Span: span})
	return pos
}

// Mark records that label refers to position. Marking the same label twice
// is a *DuplicateLabelError.
func (a *Assembly) Mark(label Label, position int) error {
	if _, exists := a.labels[label]; exists {
		return &DuplicateLabelError{Label: label}
	}
	a.labels[label] = position
	a.labelsRev[position] = label
	return nil
}

// Comment attaches a free-text comment to the instruction at position.
func (a *Assembly) Comment(position int, text string) {
	a.comments[position] = append(a.comments[position], text)
}

// Require records that this assembly calls the function identified by h,
// from the given span.
func (a *Assembly) Require(h hash.Hash, span any) {
	a.RequiredFunctions[h] = append(a.RequiredFunctions[h], span)
}

// Len returns the number of instructions pushed so far.
func (a *Assembly) Len() int { return len(a.instructions) }

// Entry is one (instruction, span, position) triple as returned by
// Entries in emission order, for the unit builder's merge pass. The label
// for a position, if any, and any attached comments, are looked up via
// LabelAt/CommentsAt.
type Entry struct {
	Position int
	Inst     Inst
	Span     any
}

// Entries returns every pushed instruction, in order.
func (a *Assembly) Entries() []Entry {
	out := make([]Entry, len(a.instructions))
	for i, is := range a.instructions {
		out[i] = Entry{Position: i, Inst: is.Inst, Span: is.Span}
	}
	return out
}

// LabelAt returns the label marked at position, if any.
func (a *Assembly) LabelAt(position int) (Label, bool) {
	l, ok := a.labelsRev[position]
	return l, ok
}

// CommentsAt returns the user comments attached to position.
func (a *Assembly) CommentsAt(position int) []string {
	return a.comments[position]
}

// ResolveOffset translates a jump's Label into a signed relative offset
// from position `base`: offset = label_position - (base + 1). Both
// positions are widened to a signed integer first; overflow during
// widening or subtraction is reported distinctly (BaseOverflowError,
// OffsetOverflowError), matching unit_builder.rs's translate_offset.
func (a *Assembly) ResolveOffset(base int, label Label) (int64, error) {
	pos, ok := a.labels[label]
	if !ok {
		return 0, &MissingLabelError{Label: label}
	}

	baseSigned, err := toSigned(base)
	if err != nil {
		return 0, &BaseOverflowError{}
	}
	offsetSigned, err := toSigned(pos)
	if err != nil {
		return 0, &OffsetOverflowError{}
	}

	// (base, _) = base.overflowing_add(1) -- wraps silently in the
	// original; Go's signed addition wraps the same way so no explicit
	// check is needed here beyond the widening above.
	return offsetSigned - (baseSigned + 1), nil
}

func toSigned(v int) (int64, error) {
	// On a 64-bit Go build int and int64 are the same width, so every
	// non-negative int, up to and including math.MaxInt64, translates
	// without overflow; only a negative value is rejected.
	const maxSigned = int64(1<<63 - 1)
	if uint64(v) > uint64(maxSigned) {
		return 0, fmt.Errorf("value %d exceeds maximum signed offset", v)
	}
	return int64(v), nil
}

// DuplicateLabelError reports that a label was marked more than once in
// the same assembly.
type DuplicateLabelError struct{ Label Label }

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("duplicate label `%s`", e.Label)
}

// MissingLabelError reports that a jump referenced a label never marked in
// the same assembly.
type MissingLabelError struct{ Label Label }

func (e *MissingLabelError) Error() string {
	return fmt.Sprintf("missing label `%s`", e.Label)
}

// BaseOverflowError reports that a jump's source position could not be
// widened to a signed integer.
type BaseOverflowError struct{}

func (e *BaseOverflowError) Error() string { return "base offset overflow" }

// OffsetOverflowError reports that a jump's target position could not be
// widened to a signed integer.
type OffsetOverflowError struct{}

func (e *OffsetOverflowError) Error() string { return "offset overflow" }

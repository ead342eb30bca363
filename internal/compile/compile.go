// Package compile is the compiler core's entry point: it drives Sources
// through the front end (external collaborator: internal/lexer,
// internal/parser), folds top-level const declarations and templates
// through the IR (C6/C7), registers discovered functions with the unit
// builder (C5), optionally consults the bytecode cache (C8), and links
// against an external Context, producing either a finalized Unit or a
// Diagnostics bundle (spec.md §6).
package compile

import (
	"fmt"

	"github.com/jbdutton/rune-go/internal/ast"
	"github.com/jbdutton/rune-go/internal/asm"
	"github.com/jbdutton/rune-go/internal/cache"
	"github.com/jbdutton/rune-go/internal/context"
	"github.com/jbdutton/rune-go/internal/diag"
	"github.com/jbdutton/rune-go/internal/hash"
	"github.com/jbdutton/rune-go/internal/ir"
	"github.com/jbdutton/rune-go/internal/irc"
	"github.com/jbdutton/rune-go/internal/item"
	"github.com/jbdutton/rune-go/internal/lexer"
	"github.com/jbdutton/rune-go/internal/parser"
	"github.com/jbdutton/rune-go/internal/source"
	"github.com/jbdutton/rune-go/internal/unit"
)

// Options are the recognized compile-time switches (spec.md §6).
type Options struct {
	// Bytecode enables cache read/write around compilation.
	Bytecode bool
	// Warnings records non-fatal advisories (e.g. a discarded cache read);
	// when false they are suppressed entirely.
	Warnings bool
	// Macros expands user-defined macros; when false, a user macro call
	// fails to compile rather than being silently skipped.
	Macros bool
	// Test retains discovered test-attributed functions instead of
	// dropping them from the final Unit.
	Test bool

	// SourcePath/CachePath locate the bytecode cache file for this
	// compile session; both must be set for Bytecode to take effect.
	SourcePath string
	CachePath  string
}

// Visitor receives (hash, meta) for each compiled function whose
// declaration carries a recognized attribute, per spec.md §6. The surface
// language expresses this as a FuncDecl with TestCase entries rather than
// a separate attribute syntax; Recognized names which such facets this
// visitor cares about ("test" is the only one the front end currently
// exposes).
type Visitor struct {
	Recognized map[string]bool
	OnFunction func(h hash.Hash, m unit.Meta)
}

func (v *Visitor) wants(name string) bool {
	return v != nil && v.Recognized != nil && v.Recognized[name]
}

func (v *Visitor) notify(h hash.Hash, m unit.Meta) {
	if v != nil && v.OnFunction != nil {
		v.OnFunction(h, m)
	}
}

// Compile lowers every source in the bag into a single Unit. On success
// the returned Diagnostics holds only warnings (if opts.Warnings); on
// failure the Unit is nil and Diagnostics.HasErrors() is true.
func Compile(sources *source.Sources, ctx *context.Context, opts Options, visitor *Visitor) (*unit.Unit, *diag.Diagnostics) {
	diags := diag.NewBundle()

	if opts.Bytecode && opts.SourcePath != "" && opts.CachePath != "" {
		if u, ok := tryCache(opts, diags); ok {
			return u, diags
		}
	}

	b := unit.New(true, true)

	for _, src := range sources.All() {
		compileSource(b, src, opts, visitor, diags)
	}

	linkErrs := b.Link(ctx)
	for _, err := range linkErrs {
		diags.Add(diag.FromUnitError(0, err))
	}

	if diags.HasErrors() {
		return nil, diags
	}

	u := b.Build()

	if opts.Bytecode && opts.SourcePath != "" && opts.CachePath != "" {
		if err := cache.Store(opts.CachePath, u); err != nil && opts.Warnings {
			diags.Add(diag.Warning(0, nil, diag.CacheDiscarded, fmt.Sprintf("cache write failed: %v", err)))
		}
	}

	return u, diags
}

// tryCache attempts to serve a fresh cache hit, returning ok=false when the
// cache is stale, absent, or fails to decode — in every such case
// compilation falls through to the normal from-source path, per spec.md
// §4.8 ("the stale cache is discarded ... the error is logged, not
// propagated").
func tryCache(opts Options, diags *diag.Diagnostics) (*unit.Unit, bool) {
	fresh, err := cache.IsFresh(opts.SourcePath, opts.CachePath)
	if err != nil || !fresh {
		return nil, false
	}
	u, err := cache.Load(opts.CachePath)
	if err != nil {
		if opts.Warnings {
			diags.Add(diag.Warning(0, nil, diag.CacheDiscarded, fmt.Sprintf("cache discarded: %v", err)))
		}
		return nil, false
	}
	return u, true
}

// compileSource walks one source's top-level declarations: const-like
// top-level lets are folded through the IR and registered as KindConst
// meta; function declarations are registered with the unit builder with
// a placeholder body (see compileFunc); their bodies are not lowered
// through the IR compiler (spec.md §1's "main compiler, out of core" owns
// that; this core only folds what C6/C7 can express).
func compileSource(b *unit.Builder, src source.Source, opts Options, visitor *Visitor, diags *diag.Diagnostics) {
	l := lexer.New(src.Text, src.Name)
	p := parser.New(l)
	program := p.Parse()

	if program == nil || program.File == nil {
		return
	}

	c := irc.New(src.Name)

	for _, stmt := range program.File.Statements {
		let, ok := stmt.(*ast.Let)
		if !ok || let.Body != nil {
			continue
		}
		compileConst(b, c, src.ID, let, diags)
	}

	for _, fn := range program.File.Funcs {
		compileFunc(b, c, src.ID, fn, opts, visitor, diags)
	}
}

// compileConst folds a top-level `let NAME = VALUE` with no `in` clause
// (the front end parses this as a Let whose Body is nil — its stand-in for
// spec.md's `const NAME = VALUE;`) into an IR value and registers it as a
// KindConst meta entry.
func compileConst(b *unit.Builder, c *irc.Compiler, sourceID int, let *ast.Let, diags *diag.Diagnostics) {
	node, err := c.Compile(let.Value)
	if err != nil {
		diags.Add(fromCompileError(sourceID, err))
		return
	}
	v, err := ir.NewEvaluator(nil).Evaluate(node)
	if err != nil {
		diags.Add(diag.FromIRError(sourceID, err))
		return
	}
	path := item.Of(let.Name)
	err = b.InsertMeta(unit.Meta{
		Kind:       unit.KindConst,
		Item:       path,
		Hash:       path.Hash(),
		ConstValue: v,
	})
	if err != nil {
		diags.Add(diag.FromUnitError(sourceID, err))
	}
}

// compileFunc registers a function with the unit builder. The function
// body is not compiled: lowering a body into executable Raw instructions
// is the out-of-core "main compiler" spec.md §1 names as an external
// collaborator. What this core registers is the function's
// signature/debug metadata and a placeholder body Assembly holding a
// single jump to its own exit label; registering it keeps the
// hash/meta/debug-signature machinery (C5) exercised end-to-end. A
// test-attributed function is not registered at all unless opts.Test is
// set.
func compileFunc(b *unit.Builder, c *irc.Compiler, sourceID int, fn *ast.FuncDecl, opts Options, visitor *Visitor, diags *diag.Diagnostics) {
	path := item.Of(fn.Name)
	debugArgs := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		debugArgs = append(debugArgs, p.Name)
	}

	isTest := len(fn.Tests) > 0
	if isTest && !opts.Test {
		return
	}

	body := asm.New(sourceID, 0)
	exit := body.Label("exit")
	body.Push(asm.Inst{Kind: asm.KindJump, Label: exit}, fn.Pos)
	body.Mark(exit, body.Len())

	h, err := b.NewFunction(sourceID, path, len(fn.Params), body, unit.CallSync, debugArgs)
	if err != nil {
		diags.Add(diag.FromUnitError(sourceID, err))
		return
	}

	if isTest && visitor.wants("test") {
		visitor.notify(h, unit.Meta{Kind: unit.KindFunction, Item: path, Hash: h, Args: len(fn.Params)})
	}
}

// fromCompileError maps the irc package's own error types (distinct from
// ir's) into a Report.
func fromCompileError(sourceID int, err error) *diag.Report {
	switch e := err.(type) {
	case *irc.NotSupportedError:
		return diag.New(sourceID, e.Span, diag.IRNotSupportedYet, e.Error())
	case *irc.OpNotSupportedError:
		return diag.New(sourceID, e.Span, diag.IROpNotSupportedYet, e.Error())
	case *irc.UnsupportedBuiltinMacroError:
		return diag.New(sourceID, e.Span, diag.IRUnsupportedBuiltinMacro, e.Error())
	default:
		return diag.New(sourceID, nil, diag.IRNotSupportedYet, err.Error())
	}
}

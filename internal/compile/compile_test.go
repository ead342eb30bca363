package compile

import (
	"testing"

	"github.com/jbdutton/rune-go/internal/context"
	"github.com/jbdutton/rune-go/internal/hash"
	"github.com/jbdutton/rune-go/internal/item"
	"github.com/jbdutton/rune-go/internal/source"
)

func TestCompileArithmeticConstantRegistersMeta(t *testing.T) {
	srcs := source.New()
	srcs.Add("main.rn", "let X = 1 + 2 * 3")

	u, diags := Compile(srcs, context.New(), Options{}, nil)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %+v", diags.Reports())
	}
	if u == nil {
		t.Fatal("expected a Unit")
	}
}

func TestCompileFunctionDeclarationRegistersFunction(t *testing.T) {
	srcs := source.New()
	srcs.Add("main.rn", "func add(a, b) { a + b }")

	u, diags := Compile(srcs, context.New(), Options{}, nil)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %+v", diags.Reports())
	}
	h := item.Of("add").Hash()
	if _, ok := u.Functions[h]; !ok {
		t.Fatalf("expected function %q to be registered", "add")
	}
}

func TestCompileUnsupportedExpressionProducesDiagnostic(t *testing.T) {
	srcs := source.New()
	srcs.Add("main.rn", "let X = match 1 { _ => 2 }")

	_, diags := Compile(srcs, context.New(), Options{}, nil)
	if !diags.HasErrors() {
		t.Fatal("expected a diagnostic for an unsupported const expression")
	}
}

func TestCompileLinksAgainstExternalContext(t *testing.T) {
	srcs := source.New()
	srcs.Add("main.rn", "let X = 1")

	ctx := context.New().WithFunction(hash.Of("external"))
	u, diags := Compile(srcs, ctx, Options{}, nil)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %+v", diags.Reports())
	}
	if u == nil {
		t.Fatal("expected a Unit")
	}
}

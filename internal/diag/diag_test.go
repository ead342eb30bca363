package diag

import (
	"testing"

	"github.com/jbdutton/rune-go/internal/ir"
	"github.com/jbdutton/rune-go/internal/unit"
)

func TestBundleHasErrorsOnlyCountsErrorSeverity(t *testing.T) {
	d := NewBundle()
	d.Add(Warning(1, nil, CacheDiscarded, "cache discarded"))
	if d.HasErrors() {
		t.Fatal("expected no errors for a warning-only bundle")
	}
	d.Add(New(1, nil, IRDivisionByZero, "division by zero"))
	if !d.HasErrors() {
		t.Fatal("expected HasErrors true after adding an error report")
	}
	if d.Len() != 2 {
		t.Fatalf("expected 2 reports, got %d", d.Len())
	}
}

func TestFromIRErrorMapsKnownTypes(t *testing.T) {
	r := FromIRError(3, &ir.DivisionByZeroError{Span: "line 4"})
	if r.Code != IRDivisionByZero {
		t.Fatalf("expected %s, got %s", IRDivisionByZero, r.Code)
	}
	if r.SourceID != 3 || r.Span != "line 4" {
		t.Fatalf("unexpected report: %+v", r)
	}
}

func TestFromIRErrorFallsBackForUnknownType(t *testing.T) {
	r := FromIRError(1, &ir.UnsupportedInTemplateError{Kind: ir.KindObject})
	if r.Code != IRNotSupportedYet {
		t.Fatalf("expected fallback code %s, got %s", IRNotSupportedYet, r.Code)
	}
}

func TestFromUnitErrorMapsMissingFunctionWithSpans(t *testing.T) {
	err := &unit.MissingFunctionError{Spans: []any{"a", "b"}}
	r := FromUnitError(2, err)
	if r.Code != LinkMissingFunction {
		t.Fatalf("expected %s, got %s", LinkMissingFunction, r.Code)
	}
	spans, ok := r.Data["spans"].([]any)
	if !ok || len(spans) != 2 {
		t.Fatalf("expected 2 spans in report data, got %+v", r.Data)
	}
}

func TestErrorfFormatsMessage(t *testing.T) {
	d := NewBundle()
	d.Errorf(1, nil, IRMissingVariable, "missing %q", "x")
	if d.Len() != 1 {
		t.Fatalf("expected 1 report, got %d", d.Len())
	}
	if d.Reports()[0].Message != `missing "x"` {
		t.Fatalf("unexpected message: %s", d.Reports()[0].Message)
	}
}

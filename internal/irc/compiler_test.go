package irc

import (
	"testing"

	"github.com/jbdutton/rune-go/internal/ast"
	"github.com/jbdutton/rune-go/internal/ir"
)

func intLit(v int64) *ast.Literal {
	return &ast.Literal{Kind: ast.IntLit, Value: v}
}

func TestCompileArithmeticConstant(t *testing.T) {
	// 1 + 2 * 3
	src := &ast.BinaryOp{
		Left: intLit(1),
		Op:   "+",
		Right: &ast.BinaryOp{
			Left:  intLit(2),
			Op:    "*",
			Right: intLit(3),
		},
	}

	c := New("test.rn")
	node, err := c.Compile(src)
	if err != nil {
		t.Fatal(err)
	}

	v, err := ir.NewEvaluator(nil).Evaluate(node)
	if err != nil {
		t.Fatal(err)
	}
	n, ok := v.Int64()
	if !ok || n != 7 {
		t.Fatalf("expected 7, got %+v", v)
	}
}

func TestCompileTemplateMacro(t *testing.T) {
	// `hello ${1 + 1}`
	src := &ast.MacroCall{
		Builtin: ast.MacroTemplate,
		Components: []ast.Expr{
			&ast.Literal{Kind: ast.StringLit, Value: "hello "},
			&ast.BinaryOp{Left: intLit(1), Op: "+", Right: intLit(1)},
		},
	}

	c := New("test.rn")
	node, err := c.Compile(src)
	if err != nil {
		t.Fatal(err)
	}

	v, err := ir.NewEvaluator(nil).Evaluate(node)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != ir.KindString || v.Str != "hello 2" {
		t.Fatalf("expected \"hello 2\", got %+v", v)
	}
}

func TestCompileLetUnderscoreDiscardsBinding(t *testing.T) {
	src := &ast.Let{
		Name:  "_",
		Value: intLit(5),
		Body:  intLit(9),
	}
	c := New("test.rn")
	node, err := c.Compile(src)
	if err != nil {
		t.Fatal(err)
	}
	v, err := ir.NewEvaluator(nil).Evaluate(node)
	if err != nil {
		t.Fatal(err)
	}
	n, _ := v.Int64()
	if n != 9 {
		t.Fatalf("expected 9, got %d", n)
	}
}

func TestCompileMatchNotSupported(t *testing.T) {
	c := New("test.rn")
	_, err := c.Compile(&ast.Match{Expr: intLit(1)})
	if _, ok := err.(*NotSupportedError); !ok {
		t.Fatalf("expected *NotSupportedError, got %T: %v", err, err)
	}
}

func TestCompileLogicalOpNotSupported(t *testing.T) {
	c := New("test.rn")
	_, err := c.Compile(&ast.BinaryOp{Left: intLit(1), Op: "&&", Right: intLit(0)})
	if _, ok := err.(*OpNotSupportedError); !ok {
		t.Fatalf("expected *OpNotSupportedError, got %T: %v", err, err)
	}
}

func TestCompileFileAndLineMacros(t *testing.T) {
	c := New("main.rn")
	node, err := c.Compile(&ast.MacroCall{Builtin: ast.MacroFile})
	if err != nil {
		t.Fatal(err)
	}
	v, err := ir.NewEvaluator(nil).Evaluate(node)
	if err != nil {
		t.Fatal(err)
	}
	if v.Str != "main.rn" {
		t.Fatalf("expected main.rn, got %q", v.Str)
	}

	lineNode, err := c.Compile(&ast.MacroCall{Builtin: ast.MacroLine, Pos: ast.Pos{Line: 42}})
	if err != nil {
		t.Fatal(err)
	}
	lv, err := ir.NewEvaluator(nil).Evaluate(lineNode)
	if err != nil {
		t.Fatal(err)
	}
	n, _ := lv.Int64()
	if n != 42 {
		t.Fatalf("expected line 42, got %d", n)
	}
}

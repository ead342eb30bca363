// Package irc lowers the constant-evaluable subset of the surface
// language's AST into the ir package's tree, for const folding and
// template expansion at compile time. Anything outside that subset
// (pattern matching, closures, concurrency, async) is rejected with a
// NotSupportedError — the full expression language is the runtime
// compiler's concern, not this one's.
package irc

import (
	"github.com/jbdutton/rune-go/internal/ast"
	"github.com/jbdutton/rune-go/internal/ir"
)

// Compiler lowers AST expressions into IR nodes. SourceName and feeds the
// `file!()` builtin macro; line numbers come from each node's own Pos.
type Compiler struct {
	SourceName string
}

// New constructs a Compiler for the named source (used by the `file!()`
// builtin macro).
func New(sourceName string) *Compiler {
	return &Compiler{SourceName: sourceName}
}

// Compile lowers a single AST expression into an IR node.
func (c *Compiler) Compile(e ast.Expr) (ir.Node, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return c.compileLiteral(n)

	case *ast.Identifier:
		return ir.NewTargetExpr(n.Pos, ir.NameTarget(n.Name)), nil

	case *ast.Tuple:
		if len(n.Elements) == 0 {
			return ir.NewLit(n.Pos, ir.Unit()), nil
		}
		elems, err := c.compileAll(n.Elements)
		if err != nil {
			return nil, err
		}
		return ir.NewTupleExpr(n.Pos, elems), nil

	case *ast.List:
		elems, err := c.compileAll(n.Elements)
		if err != nil {
			return nil, err
		}
		return ir.NewVecExpr(n.Pos, elems), nil

	case *ast.Record:
		fields := make([]ir.ObjectField, 0, len(n.Fields))
		for _, f := range n.Fields {
			v, err := c.Compile(f.Value)
			if err != nil {
				return nil, err
			}
			fields = append(fields, ir.ObjectField{Key: f.Name, Value: v})
		}
		return ir.NewObjectExpr(n.Pos, fields), nil

	case *ast.RecordAccess:
		target, err := c.compileTarget(n)
		if err != nil {
			return nil, err
		}
		return ir.NewTargetExpr(n.Pos, target), nil

	case *ast.BinaryOp:
		lhs, err := c.Compile(n.Left)
		if err != nil {
			return nil, err
		}
		rhs, err := c.Compile(n.Right)
		if err != nil {
			return nil, err
		}
		op, ok := binaryOpOf(n.Op)
		if !ok {
			return nil, &OpNotSupportedError{Op: n.Op, Span: n.Pos}
		}
		return ir.NewBinary(n.Pos, op, lhs, rhs), nil

	case *ast.Assign:
		target, err := c.compileTarget(n.Target)
		if err != nil {
			return nil, err
		}
		value, err := c.Compile(n.Value)
		if err != nil {
			return nil, err
		}
		if n.Op == "" {
			return ir.NewSet(n.Pos, target, value), nil
		}
		op, ok := assignOpOf(n.Op)
		if !ok {
			return nil, &OpNotSupportedError{Op: n.Op, Span: n.Pos}
		}
		return ir.NewAssign(n.Pos, target, value, op), nil

	case *ast.Block:
		return c.compileBlock(n)

	case *ast.If:
		return c.compileIf(n)

	case *ast.While:
		cond, err := c.Compile(n.Condition)
		if err != nil {
			return nil, err
		}
		body, err := c.Compile(n.Body)
		if err != nil {
			return nil, err
		}
		return ir.NewLoop(n.Pos, "", cond, body), nil

	case *ast.Loop:
		body, err := c.Compile(n.Body)
		if err != nil {
			return nil, err
		}
		return ir.NewLoop(n.Pos, "", nil, body), nil

	case *ast.Break:
		var value ir.Node
		if n.Value != nil {
			v, err := c.Compile(n.Value)
			if err != nil {
				return nil, err
			}
			value = v
		}
		return ir.NewBreak(n.Pos, n.Label, value), nil

	case *ast.Let:
		return c.compileLet(n)

	case *ast.FuncCall:
		ident, ok := n.Func.(*ast.Identifier)
		if !ok {
			return nil, &NotSupportedError{What: "call target", Span: n.Pos}
		}
		args, err := c.compileAll(n.Args)
		if err != nil {
			return nil, err
		}
		return ir.NewCall(n.Pos, ident.Name, args), nil

	case *ast.MacroCall:
		return c.compileMacro(n)

	default:
		return nil, &NotSupportedError{What: "expression", Span: e.Position()}
	}
}

func (c *Compiler) compileAll(exprs []ast.Expr) ([]ir.Node, error) {
	out := make([]ir.Node, len(exprs))
	for i, e := range exprs {
		v, err := c.Compile(e)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// compileTarget resolves an AST place expression to an ir.Target, for use
// as the left-hand side of Set/Assign or the parent of a nested
// RecordAccess.
func (c *Compiler) compileTarget(e ast.Expr) (ir.Target, error) {
	switch n := e.(type) {
	case *ast.Identifier:
		return ir.NameTarget(n.Name), nil
	case *ast.RecordAccess:
		parent, err := c.compileTarget(n.Record)
		if err != nil {
			return ir.Target{}, err
		}
		return ir.FieldTarget(parent, n.Field), nil
	default:
		return ir.Target{}, &NotSupportedError{What: "assignment target", Span: e.Position()}
	}
}

func (c *Compiler) compileLiteral(n *ast.Literal) (ir.Node, error) {
	switch n.Kind {
	case ast.UnitLit:
		return ir.NewLit(n.Pos, ir.Unit()), nil
	case ast.BoolLit:
		b, _ := n.Value.(bool)
		return ir.NewLit(n.Pos, ir.Bool(b)), nil
	case ast.IntLit:
		return ir.NewLit(n.Pos, parseInteger(n)), nil
	case ast.FloatLit:
		f, _ := n.Value.(float64)
		return ir.NewLit(n.Pos, ir.Float(f)), nil
	case ast.StringLit:
		s, _ := n.Value.(string)
		return ir.NewLit(n.Pos, ir.String(s)), nil
	default:
		return nil, &NotSupportedError{What: "literal kind", Span: n.Pos}
	}
}

func (c *Compiler) compileBlock(n *ast.Block) (ir.Node, error) {
	if len(n.Exprs) == 0 {
		return ir.NewScope(n.Pos, nil, nil), nil
	}

	instructions := make([]ir.Node, 0, len(n.Exprs)-1)
	for _, e := range n.Exprs[:len(n.Exprs)-1] {
		v, err := c.Compile(e)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, v)
	}

	last, err := c.Compile(n.Exprs[len(n.Exprs)-1])
	if err != nil {
		return nil, err
	}
	return ir.NewScope(n.Pos, instructions, last), nil
}

func (c *Compiler) compileIf(n *ast.If) (ir.Node, error) {
	cond, err := c.Compile(n.Condition)
	if err != nil {
		return nil, err
	}
	then, err := c.Compile(n.Then)
	if err != nil {
		return nil, err
	}

	branches := []ir.Branch{{Condition: ir.Condition{Kind: ir.ConditionExpr, Expr: cond}, Block: then}}

	var def ir.Node
	if n.Else != nil {
		elseNode, err := c.Compile(n.Else)
		if err != nil {
			return nil, err
		}
		def = elseNode
	}
	return ir.NewBranches(n.Pos, branches, def), nil
}

// compileLet lowers `let name = value in body` to a nested scope holding
// the declaration followed by the compiled body, and `let _ = value in
// body` to evaluating value for effect only (per spec.md §4.7).
func (c *Compiler) compileLet(n *ast.Let) (ir.Node, error) {
	value, err := c.Compile(n.Value)
	if err != nil {
		return nil, err
	}
	body, err := c.Compile(n.Body)
	if err != nil {
		return nil, err
	}

	if n.Name == "_" {
		return ir.NewScope(n.Pos, []ir.Node{value}, body), nil
	}
	decl := ir.NewDecl(n.Pos, n.Name, value)
	return ir.NewScope(n.Pos, []ir.Node{decl}, body), nil
}

func (c *Compiler) compileMacro(n *ast.MacroCall) (ir.Node, error) {
	switch n.Builtin {
	case ast.MacroTemplate:
		components := make([]ir.Node, 0, len(n.Components))
		for _, comp := range n.Components {
			if lit, ok := comp.(*ast.Literal); ok && lit.Kind == ast.StringLit {
				s, _ := lit.Value.(string)
				components = append(components, ir.NewLit(lit.Pos, ir.String(resolveTemplateString(s))))
				continue
			}
			v, err := c.Compile(comp)
			if err != nil {
				return nil, err
			}
			components = append(components, v)
		}
		return ir.NewTemplate(n.Pos, components), nil

	case ast.MacroFile:
		return ir.NewLit(n.Pos, ir.String(c.SourceName)), nil

	case ast.MacroLine:
		return ir.NewLit(n.Pos, ir.IntegerFromInt64(int64(n.Pos.Line))), nil

	default:
		return nil, &UnsupportedBuiltinMacroError{Name: n.Name, Span: n.Pos}
	}
}

// resolveTemplateString processes the escape sequences permitted inside an
// interpolated string's literal segments.
func resolveTemplateString(s string) string {
	out := make([]rune, 0, len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) {
			i++
			switch runes[i] {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '\\':
				out = append(out, '\\')
			case '$':
				out = append(out, '$')
			default:
				out = append(out, runes[i])
			}
			continue
		}
		out = append(out, runes[i])
	}
	return string(out)
}

func binaryOpOf(op string) (ir.BinaryOp, bool) {
	switch op {
	case "+":
		return ir.BinAdd, true
	case "-":
		return ir.BinSub, true
	case "*":
		return ir.BinMul, true
	case "/":
		return ir.BinDiv, true
	case "<<":
		return ir.BinShl, true
	case ">>":
		return ir.BinShr, true
	case "<":
		return ir.BinLt, true
	case "<=":
		return ir.BinLte, true
	case "==":
		return ir.BinEq, true
	case ">":
		return ir.BinGt, true
	case ">=":
		return ir.BinGte, true
	default:
		return 0, false
	}
}

func assignOpOf(op string) (ir.AssignOp, bool) {
	switch op {
	case "+":
		return ir.AssignAdd, true
	case "-":
		return ir.AssignSub, true
	case "*":
		return ir.AssignMul, true
	case "/":
		return ir.AssignDiv, true
	case "<<":
		return ir.AssignShl, true
	case ">>":
		return ir.AssignShr, true
	default:
		return 0, false
	}
}

func parseInteger(n *ast.Literal) ir.Value {
	switch v := n.Value.(type) {
	case int64:
		return ir.IntegerFromInt64(v)
	case int:
		return ir.IntegerFromInt64(int64(v))
	case string:
		return ir.IntegerFromString(v)
	default:
		return ir.IntegerFromInt64(0)
	}
}

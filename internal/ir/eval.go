package ir

import (
	"fmt"
	"strings"
)

// DefaultIterationBudget bounds an unconditioned or slow-converging loop,
// per spec.md §4.6's "implementation-chosen ceiling" note.
const DefaultIterationBudget = 1_000_000

// HostFunc is a compile-time function supplied by the host compiler (e.g.
// a small set of const-evaluable builtins), invoked by an IrCall.
type HostFunc func(args []Value) (Value, error)

// Evaluator evaluates an IR tree under a scope chain. It is strictly
// synchronous and single-use per compile-time constant: construct one,
// call Evaluate once, discard it.
type Evaluator struct {
	scopes        *scopeStack
	maxIterations int
	hostFns       map[string]HostFunc
}

// NewEvaluator constructs an evaluator with one empty scope frame and the
// given host-supplied compile-time functions (may be nil).
func NewEvaluator(hostFns map[string]HostFunc) *Evaluator {
	if hostFns == nil {
		hostFns = map[string]HostFunc{}
	}
	return &Evaluator{
		scopes:        newScopeStack(),
		maxIterations: DefaultIterationBudget,
		hostFns:       hostFns,
	}
}

// WithMaxIterations overrides the loop budget (tests use a small value to
// exercise BudgetExceededError cheaply).
func (e *Evaluator) WithMaxIterations(n int) *Evaluator {
	e.maxIterations = n
	return e
}

// breakSignal is how Break unwinds to its enclosing Loop: returned as an
// error from Evaluate, caught by evalLoop, and re-raised unchanged if it
// names a different, presumably outer, loop.
type breakSignal struct {
	label string
	value Value
}

func (b *breakSignal) Error() string { return "unhandled break (internal control-flow signal)" }

// Evaluate walks n and produces its Value, or the first error encountered.
func (e *Evaluator) Evaluate(n Node) (Value, error) {
	switch node := n.(type) {
	case *Lit:
		return node.Value, nil

	case *TargetExpr:
		return e.getTarget(node.Target)

	case *Set:
		v, err := e.Evaluate(node.Value)
		if err != nil {
			return Value{}, err
		}
		if err := e.setTarget(node.Target, v); err != nil {
			return Value{}, err
		}
		return v, nil

	case *Assign:
		cur, err := e.getTarget(node.Target)
		if err != nil {
			return Value{}, err
		}
		rhs, err := e.Evaluate(node.Value)
		if err != nil {
			return Value{}, err
		}
		result, err := e.applyAssign(node.Op, cur, rhs, node.Span())
		if err != nil {
			return Value{}, err
		}
		if err := e.setTarget(node.Target, result); err != nil {
			return Value{}, err
		}
		return result, nil

	case *Binary:
		lhs, err := e.Evaluate(node.Lhs)
		if err != nil {
			return Value{}, err
		}
		rhs, err := e.Evaluate(node.Rhs)
		if err != nil {
			return Value{}, err
		}
		return e.applyBinary(node.Op, lhs, rhs, node.Span())

	case *Decl:
		v, err := e.Evaluate(node.Value)
		if err != nil {
			return Value{}, err
		}
		e.scopes.decl(node.Name, v)
		return v, nil

	case *Scope:
		e.scopes.push()
		defer e.scopes.pop()
		for _, instr := range node.Instructions {
			if _, err := e.Evaluate(instr); err != nil {
				return Value{}, err
			}
		}
		if node.Last == nil {
			return Unit(), nil
		}
		return e.Evaluate(node.Last)

	case *Branches:
		for _, br := range node.Branches {
			ok, err := e.evalCondition(br.Condition)
			if err != nil {
				return Value{}, err
			}
			if ok {
				return e.Evaluate(br.Block)
			}
		}
		if node.Default == nil {
			return Unit(), nil
		}
		return e.Evaluate(node.Default)

	case *Loop:
		return e.evalLoop(node)

	case *Break:
		v := Unit()
		if node.Value != nil {
			var err error
			v, err = e.Evaluate(node.Value)
			if err != nil {
				return Value{}, err
			}
		}
		return Value{}, &breakSignal{label: node.Label, value: v}

	case *Call:
		fn, ok := e.hostFns[node.Target]
		if !ok {
			return Value{}, &UnknownConstFnError{Name: node.Target, Span: node.Span()}
		}
		args := make([]Value, len(node.Args))
		for i, a := range node.Args {
			v, err := e.Evaluate(a)
			if err != nil {
				return Value{}, err
			}
			args[i] = v
		}
		return fn(args)

	case *VecExpr:
		vals := make([]Value, len(node.Elements))
		for i, el := range node.Elements {
			v, err := e.Evaluate(el)
			if err != nil {
				return Value{}, err
			}
			vals[i] = v
		}
		return Vec(vals), nil

	case *TupleExpr:
		vals := make([]Value, len(node.Elements))
		for i, el := range node.Elements {
			v, err := e.Evaluate(el)
			if err != nil {
				return Value{}, err
			}
			vals[i] = v
		}
		return Tuple(vals), nil

	case *ObjectExpr:
		obj := make(map[string]Value, len(node.Fields))
		for _, f := range node.Fields {
			v, err := e.Evaluate(f.Value)
			if err != nil {
				return Value{}, err
			}
			obj[f.Key] = v
		}
		return Object(obj), nil

	case *Template:
		var sb strings.Builder
		for _, c := range node.Components {
			v, err := e.Evaluate(c)
			if err != nil {
				return Value{}, err
			}
			s, ok := v.Stringify()
			if !ok {
				return Value{}, &UnsupportedInTemplateError{Kind: v.Kind, Span: c.Span()}
			}
			sb.WriteString(s)
		}
		return String(sb.String()), nil

	default:
		return Value{}, fmt.Errorf("ir: unhandled node type %T", n)
	}
}

func (e *Evaluator) evalCondition(c Condition) (bool, error) {
	v, err := e.Evaluate(c.Expr)
	if err != nil {
		return false, err
	}
	return v.IsTruthy(), nil
}

func (e *Evaluator) evalLoop(n *Loop) (Value, error) {
	iterations := 0
	for {
		if n.Condition != nil {
			cv, err := e.Evaluate(n.Condition)
			if err != nil {
				return Value{}, err
			}
			if !cv.IsTruthy() {
				break
			}
		}

		iterations++
		if iterations > e.maxIterations {
			return Value{}, &BudgetExceededError{Span: n.Span()}
		}

		_, err := e.Evaluate(n.Body)
		if err != nil {
			if bs, ok := err.(*breakSignal); ok && (bs.label == "" || bs.label == n.Label) {
				return bs.value, nil
			}
			return Value{}, err
		}
	}
	return Unit(), nil
}

func (e *Evaluator) applyBinary(op BinaryOp, lhs, rhs Value, span any) (Value, error) {
	switch op {
	case BinAdd, BinSub, BinMul, BinDiv, BinShl, BinShr:
		if lhs.Kind == KindInteger && rhs.Kind == KindInteger {
			return arithInt(op, lhs.Int, rhs.Int, span)
		}
		if lhs.Kind == KindFloat && rhs.Kind == KindFloat {
			return arithFloat(op, lhs.Float, rhs.Float, span)
		}
		return Value{}, &BadOperandsError{Op: opName(op), Lhs: lhs.Kind, Rhs: rhs.Kind, Span: span}
	default:
		return compare(op, lhs, rhs, span)
	}
}

func (e *Evaluator) applyAssign(op AssignOp, cur, rhs Value, span any) (Value, error) {
	result, err := e.applyBinary(BinaryOp(op), cur, rhs, span)
	if err != nil {
		return Value{}, err
	}
	if result.Kind == KindInteger {
		if _, ok := result.Int64(); !ok {
			return Value{}, &IntegerOverflowError{Span: span}
		}
	}
	return result, nil
}

func (e *Evaluator) getTarget(t Target) (Value, error) {
	switch t.Kind {
	case TargetName:
		v, ok := e.scopes.lookup(t.Name)
		if !ok {
			return Value{}, &MissingVariableError{Name: t.Name}
		}
		return v, nil

	case TargetField:
		parent, err := e.getTarget(*t.Parent)
		if err != nil {
			return Value{}, err
		}
		if parent.Kind != KindObject {
			return Value{}, &UnsupportedTargetError{Target: t}
		}
		v, ok := parent.Object[t.Name]
		if !ok {
			return Value{}, &MissingVariableError{Name: t.Name}
		}
		return v, nil

	case TargetIndex:
		parent, err := e.getTarget(*t.Parent)
		if err != nil {
			return Value{}, err
		}
		switch parent.Kind {
		case KindTuple:
			if t.Index < 0 || t.Index >= len(parent.Tuple) {
				return Value{}, &UnsupportedTargetError{Target: t}
			}
			return parent.Tuple[t.Index], nil
		case KindVec:
			if t.Index < 0 || t.Index >= len(parent.Vec) {
				return Value{}, &UnsupportedTargetError{Target: t}
			}
			return parent.Vec[t.Index], nil
		default:
			return Value{}, &UnsupportedTargetError{Target: t}
		}

	default:
		return Value{}, &UnsupportedTargetError{Target: t}
	}
}

func (e *Evaluator) setTarget(t Target, val Value) error {
	switch t.Kind {
	case TargetName:
		e.scopes.assign(t.Name, val)
		return nil

	case TargetField:
		parent, err := e.getTarget(*t.Parent)
		if err != nil {
			return err
		}
		if parent.Kind != KindObject {
			return &UnsupportedTargetError{Target: t}
		}
		parent.Object[t.Name] = val
		return nil

	case TargetIndex:
		parent, err := e.getTarget(*t.Parent)
		if err != nil {
			return err
		}
		switch parent.Kind {
		case KindTuple:
			if t.Index < 0 || t.Index >= len(parent.Tuple) {
				return &UnsupportedTargetError{Target: t}
			}
			parent.Tuple[t.Index] = val
			return nil
		case KindVec:
			if t.Index < 0 || t.Index >= len(parent.Vec) {
				return &UnsupportedTargetError{Target: t}
			}
			parent.Vec[t.Index] = val
			return nil
		default:
			return &UnsupportedTargetError{Target: t}
		}

	default:
		return &UnsupportedTargetError{Target: t}
	}
}

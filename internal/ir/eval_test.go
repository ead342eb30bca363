package ir

import "testing"

func TestArithmeticConstant(t *testing.T) {
	// 1 + 2 * 3
	mul := NewBinary(nil, BinMul, NewLit(nil, IntegerFromInt64(2)), NewLit(nil, IntegerFromInt64(3)))
	add := NewBinary(nil, BinAdd, NewLit(nil, IntegerFromInt64(1)), mul)

	e := NewEvaluator(nil)
	v, err := e.Evaluate(add)
	if err != nil {
		t.Fatal(err)
	}
	n, ok := v.Int64()
	if !ok || n != 7 {
		t.Fatalf("expected 7, got %v (ok=%v)", v, ok)
	}
}

func TestTemplateFidelity(t *testing.T) {
	// `hello ${1 + 1}`
	expr := NewBinary(nil, BinAdd, NewLit(nil, IntegerFromInt64(1)), NewLit(nil, IntegerFromInt64(1)))
	tpl := NewTemplate(nil, []Node{
		NewLit(nil, String("hello ")),
		expr,
	})

	e := NewEvaluator(nil)
	v, err := e.Evaluate(tpl)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != KindString || v.Str != "hello 2" {
		t.Fatalf("expected \"hello 2\", got %+v", v)
	}
}

func TestDeclAndTargetLookup(t *testing.T) {
	scope := NewScope(nil, []Node{
		NewDecl(nil, "x", NewLit(nil, IntegerFromInt64(41))),
	}, NewBinary(nil, BinAdd, NewTargetExpr(nil, NameTarget("x")), NewLit(nil, IntegerFromInt64(1))))

	e := NewEvaluator(nil)
	v, err := e.Evaluate(scope)
	if err != nil {
		t.Fatal(err)
	}
	n, _ := v.Int64()
	if n != 42 {
		t.Fatalf("expected 42, got %d", n)
	}
}

func TestMissingVariableErrors(t *testing.T) {
	e := NewEvaluator(nil)
	_, err := e.Evaluate(NewTargetExpr(nil, NameTarget("nope")))
	if _, ok := err.(*MissingVariableError); !ok {
		t.Fatalf("expected *MissingVariableError, got %T: %v", err, err)
	}
}

func TestDivisionByZero(t *testing.T) {
	e := NewEvaluator(nil)
	_, err := e.Evaluate(NewBinary(nil, BinDiv, NewLit(nil, IntegerFromInt64(1)), NewLit(nil, IntegerFromInt64(0))))
	if _, ok := err.(*DivisionByZeroError); !ok {
		t.Fatalf("expected *DivisionByZeroError, got %T: %v", err, err)
	}
}

func TestLoopBreakYieldsValue(t *testing.T) {
	// loop { break 9 }
	body := NewScope(nil, nil, NewBreak(nil, "", NewLit(nil, IntegerFromInt64(9))))
	loop := NewLoop(nil, "", nil, body)

	e := NewEvaluator(nil)
	v, err := e.Evaluate(loop)
	if err != nil {
		t.Fatal(err)
	}
	n, _ := v.Int64()
	if n != 9 {
		t.Fatalf("expected 9, got %d", n)
	}
}

func TestLoopBudgetExceeded(t *testing.T) {
	// An unconditioned loop whose body never breaks must hit the budget.
	loop := NewLoop(nil, "", nil, NewScope(nil, nil, nil))

	e := NewEvaluator(nil).WithMaxIterations(10)
	_, err := e.Evaluate(loop)
	if _, ok := err.(*BudgetExceededError); !ok {
		t.Fatalf("expected *BudgetExceededError, got %T: %v", err, err)
	}
}

func TestAssignCompoundAddition(t *testing.T) {
	scope := NewScope(nil, []Node{
		NewDecl(nil, "x", NewLit(nil, IntegerFromInt64(10))),
		NewAssign(nil, NameTarget("x"), NewLit(nil, IntegerFromInt64(5)), AssignAdd),
	}, NewTargetExpr(nil, NameTarget("x")))

	e := NewEvaluator(nil)
	v, err := e.Evaluate(scope)
	if err != nil {
		t.Fatal(err)
	}
	n, _ := v.Int64()
	if n != 15 {
		t.Fatalf("expected 15, got %d", n)
	}
}

func TestCallResolvesHostFunction(t *testing.T) {
	e := NewEvaluator(map[string]HostFunc{
		"double": func(args []Value) (Value, error) {
			n, _ := args[0].Int64()
			return IntegerFromInt64(n * 2), nil
		},
	})
	v, err := e.Evaluate(NewCall(nil, "double", []Node{NewLit(nil, IntegerFromInt64(21))}))
	if err != nil {
		t.Fatal(err)
	}
	n, _ := v.Int64()
	if n != 42 {
		t.Fatalf("expected 42, got %d", n)
	}
}

func TestCallUnknownConstFn(t *testing.T) {
	e := NewEvaluator(nil)
	_, err := e.Evaluate(NewCall(nil, "nope", nil))
	if _, ok := err.(*UnknownConstFnError); !ok {
		t.Fatalf("expected *UnknownConstFnError, got %T: %v", err, err)
	}
}

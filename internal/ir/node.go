package ir

// Node is one IR tree node. Every concrete node type embeds base, which
// carries the originating span for diagnostics.
type Node interface {
	Span() any
	irNode()
}

type base struct{ span any }

func (b base) Span() any { return b.span }
func (base) irNode()     {}

// Lit is a literal IrValue; it evaluates to itself.
type Lit struct {
	base
	Value Value
}

func NewLit(span any, v Value) *Lit { return &Lit{base{span}, v} }

// TargetExpr evaluates a Target by scope lookup (Name) or by descending
// into an object/tuple (Field/Index).
type TargetExpr struct {
	base
	Target Target
}

func NewTargetExpr(span any, t Target) *TargetExpr { return &TargetExpr{base{span}, t} }

// Set evaluates Value and stores it into Target, creating a binding if
// Target is a bare Name absent from every scope frame.
type Set struct {
	base
	Target Target
	Value  Node
}

func NewSet(span any, t Target, v Node) *Set { return &Set{base{span}, t, v} }

// AssignOp is the compound-assignment operator family.
type AssignOp int

const (
	AssignAdd AssignOp = iota
	AssignSub
	AssignMul
	AssignDiv
	AssignShl
	AssignShr
)

// Assign reads Target, applies Op to (stored value, Value), writes back.
type Assign struct {
	base
	Target Target
	Value  Node
	Op     AssignOp
}

func NewAssign(span any, t Target, v Node, op AssignOp) *Assign {
	return &Assign{base{span}, t, v, op}
}

// BinaryOp is the pure-binary operator family.
type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinShl
	BinShr
	BinLt
	BinLte
	BinEq
	BinGt
	BinGte
)

// Binary evaluates Lhs and Rhs and combines them with Op.
type Binary struct {
	base
	Op  BinaryOp
	Lhs Node
	Rhs Node
}

func NewBinary(span any, op BinaryOp, lhs, rhs Node) *Binary {
	return &Binary{base{span}, op, lhs, rhs}
}

// Decl binds Name in the current (innermost) scope frame to Value.
// Shadowing an outer binding of the same name is allowed.
type Decl struct {
	base
	Name  string
	Value Node
}

func NewDecl(span any, name string, v Node) *Decl { return &Decl{base{span}, name, v} }

// Scope pushes a fresh frame, evaluates Instructions in order discarding
// their values, then evaluates Last (Unit if nil) as the scope's value.
type Scope struct {
	base
	Instructions []Node
	Last         Node
}

func NewScope(span any, instructions []Node, last Node) *Scope {
	return &Scope{base{span}, instructions, last}
}

// ConditionKind discriminates a branch's guard shape.
type ConditionKind int

const (
	ConditionExpr ConditionKind = iota // plain boolean expression
	ConditionLet                       // pattern-match guard; pattern matching itself lives upstream
)

// Condition is a branch guard: either a boolean expression or a
// (simplified) let-pattern guard, recorded as an expression that the
// evaluator treats as "matches iff truthy" since full pattern destructuring
// belongs to the surface-language compiler, not the constant-IR evaluator.
type Condition struct {
	Kind ConditionKind
	Expr Node
}

// Branch pairs a Condition with the Node to evaluate when it selects.
type Branch struct {
	Condition Condition
	Block     Node
}

// Branches evaluates each Branch in order; the first whose Condition
// selects wins. If none select, Default is evaluated (Unit if nil).
type Branches struct {
	base
	Branches []Branch
	Default  Node
}

func NewBranches(span any, branches []Branch, def Node) *Branches {
	return &Branches{base{span}, branches, def}
}

// Loop repeats Body while Condition evaluates true (or unconditionally, if
// Condition is nil — the `loop { ... }` form). Label names the loop for
// targeted Break.
type Loop struct {
	base
	Label     string
	Condition Node
	Body      Node
}

func NewLoop(span any, label string, cond Node, body Node) *Loop {
	return &Loop{base{span}, label, cond, body}
}

// Break unwinds to the loop named Label (or the innermost loop if empty),
// yielding Value (Unit if nil) as that loop's result.
type Break struct {
	base
	Label string
	Value Node
}

func NewBreak(span any, label string, v Node) *Break { return &Break{base{span}, label, v} }

// Call resolves Target against the evaluator's host-supplied compile-time
// function registry and invokes it with Args.
type Call struct {
	base
	Target string
	Args   []Node
}

func NewCall(span any, target string, args []Node) *Call {
	return &Call{base{span}, target, args}
}

// Template evaluates each Component, stringifies it per the canonical
// template rule, and concatenates the results.
type Template struct {
	base
	Components []Node
}

func NewTemplate(span any, components []Node) *Template {
	return &Template{base{span}, components}
}

// VecExpr evaluates each Element and collects the results into a Vec value.
type VecExpr struct {
	base
	Elements []Node
}

func NewVecExpr(span any, elements []Node) *VecExpr { return &VecExpr{base{span}, elements} }

// TupleExpr evaluates each Element and collects the results into a Tuple
// value. An empty TupleExpr should instead be constructed as a Lit(Unit) by
// the caller, per spec.md §4.7's "empty tuple -> Unit" rule.
type TupleExpr struct {
	base
	Elements []Node
}

func NewTupleExpr(span any, elements []Node) *TupleExpr { return &TupleExpr{base{span}, elements} }

// ObjectField pairs a resolved key with the node producing its value.
type ObjectField struct {
	Key   string
	Value Node
}

// ObjectExpr evaluates each field's Value and collects the results into an
// Object value, keyed by Key.
type ObjectExpr struct {
	base
	Fields []ObjectField
}

func NewObjectExpr(span any, fields []ObjectField) *ObjectExpr { return &ObjectExpr{base{span}, fields} }

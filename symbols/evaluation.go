package symbols

import "github.com/ArnabBanerjee/odoo-ls/ast"

// RetrievalMode says how Evaluation.Source should be followed to reach the
// value it names. The architecture pass only ever produces Direct
// evaluations (a straight reference, or a copy of another binding's
// evaluations for a wildcard import); GetAttr exists for the eval phase
// (`a.b` access chains) which this pass never constructs.
type RetrievalMode int

const (
	Direct RetrievalMode = iota
	GetAttr
)

// EvaluationValueKind tags which variant of EvaluationValue is populated.
type EvaluationValueKind int

const (
	EvAny EvaluationValueKind = iota
	EvConstant
	EvList
	EvTuple
	EvDict
)

// EvaluationValue is a compact, statically-known value shape: unknown, a
// single literal expression, a list/tuple of expressions, or an opaque
// dict. Elements is populated for EvList/EvTuple only, Constant is
// populated for EvConstant only.
type EvaluationValue struct {
	Kind     EvaluationValueKind
	Constant ast.Expr
	Elements []ast.Expr
}

func AnyValue() *EvaluationValue { return &EvaluationValue{Kind: EvAny} }
func ConstantValue(e ast.Expr) *EvaluationValue { return &EvaluationValue{Kind: EvConstant, Constant: e} }
func ListValue(elts []ast.Expr) *EvaluationValue { return &EvaluationValue{Kind: EvList, Elements: elts} }
func TupleValue(elts []ast.Expr) *EvaluationValue { return &EvaluationValue{Kind: EvTuple, Elements: elts} }
func DictValue() *EvaluationValue { return &EvaluationValue{Kind: EvDict} }

// Evaluation pairs a weak reference to the symbol an expression resolved
// to (with the mode used to reach it) against an optional statically-known
// value, plus the source range the evaluation came from. Source is a Ref
// rather than a live pointer for the same reason every other cross-symbol
// link is: it must never extend ownership across a container boundary.
type Evaluation struct {
	Source Ref
	Mode   RetrievalMode
	Value  *EvaluationValue
	Range  ast.Range
}

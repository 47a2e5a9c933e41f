// Package ast declares the syntax-tree shapes this module assumes an
// external parser hands it: nothing in this package parses source text,
// the parser lives outside this module's boundary.
package ast

// FileTree is the top-level parse result for one file: its statement
// sequence plus the file's own range.
type FileTree struct {
	Body  []Stmt
	Range Range
}

// Range is a half-open source-offset span, byte-for-byte what the parser
// attaches to every node. The architecture pass never synthesizes one:
// every binding's range comes from here.
type Range struct {
	Start uint32
	End   uint32
}

// Stmt is the sum of statement kinds the tree walker dispatches on.
// Kinds not listed here (Return, While, With, Raise, Global, ...) are
// swallowed by the walker's default case; they create no symbols.
type Stmt interface {
	stmtNode()
	Pos() Range
}

type base struct{ Range Range }

func (b base) Pos() Range { return b.Range }

// Import is a bare `import a.b.c [as z]` (possibly several dotted names).
type Import struct {
	base
	Names []Alias
}

func (Import) stmtNode() {}

// ImportFrom is `from [level*.]Module import name [as z], ...` or
// `from M import *`.
type ImportFrom struct {
	base
	Module *string // nil for a pure relative import ("from . import x")
	Level  *int    // number of leading dots; nil means absolute
	Names  []Alias
}

func (ImportFrom) stmtNode() {}

// Alias is one `name [as asname]` entry of an import statement. Name "*"
// marks a wildcard import.
type Alias struct {
	Name   string
	AsName *string
	Range  Range
}

// Assign is `target[, target...] = value`.
type Assign struct {
	base
	Targets []Expr
	Value   Expr
}

func (Assign) stmtNode() {}

// AnnAssign is `target: annotation [= value]`.
type AnnAssign struct {
	base
	Target     Expr
	Annotation Expr
	Value      Expr // nil if no value given
}

func (AnnAssign) stmtNode() {}

// FunctionDef is `[@decorator...] def name(params): body`.
type FunctionDef struct {
	base
	Name       string
	NameRange  Range
	Decorators []Expr
	Params     Params
	Body       []Stmt
}

func (FunctionDef) stmtNode() {}

// Params splits positional-only from positional-or-keyword parameters and
// keeps *args/**kwargs separate, the full shape the architecture pass
// materializes into symbols.
type Params struct {
	PosOnly []Param
	PosOrKw []Param
	VarArgs *Param // *args
	KwArgs  *Param // **kwargs
}

type Param struct {
	Name    string
	Range   Range
	Default Expr // nil if no default
}

// ClassDef is `[@decorator...] class name(bases): body`.
type ClassDef struct {
	base
	Name      string
	NameRange Range
	Bases     []Expr
	Body      []Stmt
}

func (ClassDef) stmtNode() {}

// If is `if test: body (elif test: body)* (else: body)?`. ElifElse holds
// every elif/else arm as its own body; the walker over-approximates by
// descending into all of them rather than tracking which branch runs.
type If struct {
	base
	Body     []Stmt
	ElifElse [][]Stmt
}

func (If) stmtNode() {}

// Try is `try: body except...: (ignored) else: body finally: body`.
type Try struct {
	base
	Body      []Stmt
	OrElse    []Stmt
	FinalBody []Stmt
}

func (Try) stmtNode() {}

// For is `for target in iter: body else: body`.
type For struct {
	base
	Target Expr
	Body   []Stmt
	OrElse []Stmt
}

func (For) stmtNode() {}

// ExprStmt is a bare expression statement, relevant here only for
// docstring detection (first statement of a body being a string literal).
type ExprStmt struct {
	base
	Value Expr
}

func (ExprStmt) stmtNode() {}

// Expr is the sum of expression kinds the evaluator and target-unpacker
// need to see. Everything else (calls, binops, comprehensions, ...) is
// opaque to this pass; it shows up as Any once the eval phase runs.
type Expr interface {
	exprNode()
	Pos() Range
}

// Name is a bare identifier reference, e.g. the `a` in `a = 1`.
type Name struct {
	base
	Id string
}

func (Name) exprNode() {}

// Attribute is `value.attr`.
type Attribute struct {
	base
	Value Expr
	Attr  string
}

func (Attribute) exprNode() {}

// Starred is `*value` inside an assignment target or call.
type Starred struct {
	base
	Value Expr
}

func (Starred) exprNode() {}

// TupleExpr / ListExpr are assignment targets or literal collections.
type TupleExpr struct {
	base
	Elts []Expr
}

func (TupleExpr) exprNode() {}

type ListExpr struct {
	base
	Elts []Expr
}

func (ListExpr) exprNode() {}

// StringLiteral / NoneLiteral / OtherConstant cover the literal shapes
// the exports extractor and docstring detection need to distinguish.
type StringLiteral struct {
	base
	Value string
}

func (StringLiteral) exprNode() {}

type NoneLiteral struct{ base }

func (NoneLiteral) exprNode() {}

// OtherConstant is any other literal (number, bool, bytes, ...). The
// exports extractor only needs to know it is a constant, not a string.
type OtherConstant struct{ base }

func (OtherConstant) exprNode() {}

// DictExpr is a literal `{...}`; its contents are intentionally left
// opaque, since no consumer needs anything more than "this is a dict".
type DictExpr struct{ base }

func (DictExpr) exprNode() {}

// CallExpr and everything else not named above is represented by Opaque,
// which the evaluator and exports extractor both treat as "unknown".
type Opaque struct{ base }

func (Opaque) exprNode() {}

// Constructors below exist because base is unexported: a composite
// literal from outside this package cannot set it directly. Production
// parsers and tests both build nodes through these.

func NewImport(r Range, names []Alias) *Import {
	return &Import{base: base{r}, Names: names}
}

func NewImportFrom(r Range, module *string, level *int, names []Alias) *ImportFrom {
	return &ImportFrom{base: base{r}, Module: module, Level: level, Names: names}
}

func NewAssign(r Range, targets []Expr, value Expr) *Assign {
	return &Assign{base: base{r}, Targets: targets, Value: value}
}

func NewAnnAssign(r Range, target, annotation, value Expr) *AnnAssign {
	return &AnnAssign{base: base{r}, Target: target, Annotation: annotation, Value: value}
}

func NewFunctionDef(r, nameRange Range, fname string, decorators []Expr, params Params, body []Stmt) *FunctionDef {
	return &FunctionDef{base: base{r}, Name: fname, NameRange: nameRange, Decorators: decorators, Params: params, Body: body}
}

func NewClassDef(r, nameRange Range, cname string, bases []Expr, body []Stmt) *ClassDef {
	return &ClassDef{base: base{r}, Name: cname, NameRange: nameRange, Bases: bases, Body: body}
}

func NewIf(r Range, body []Stmt, elifElse [][]Stmt) *If {
	return &If{base: base{r}, Body: body, ElifElse: elifElse}
}

func NewTry(r Range, body, orElse, finalBody []Stmt) *Try {
	return &Try{base: base{r}, Body: body, OrElse: orElse, FinalBody: finalBody}
}

func NewFor(r Range, target Expr, body, orElse []Stmt) *For {
	return &For{base: base{r}, Target: target, Body: body, OrElse: orElse}
}

func NewExprStmt(r Range, value Expr) *ExprStmt {
	return &ExprStmt{base: base{r}, Value: value}
}

func NewName(r Range, id string) *Name { return &Name{base: base{r}, Id: id} }

func NewAttribute(r Range, value Expr, attr string) *Attribute {
	return &Attribute{base: base{r}, Value: value, Attr: attr}
}

func NewStarred(r Range, value Expr) *Starred { return &Starred{base: base{r}, Value: value} }

func NewTupleExpr(r Range, elts []Expr) *TupleExpr { return &TupleExpr{base: base{r}, Elts: elts} }

func NewListExpr(r Range, elts []Expr) *ListExpr { return &ListExpr{base: base{r}, Elts: elts} }

func NewStringLiteral(r Range, value string) *StringLiteral {
	return &StringLiteral{base: base{r}, Value: value}
}

func NewNoneLiteral(r Range) *NoneLiteral { return &NoneLiteral{base: base{r}} }

func NewOtherConstant(r Range) *OtherConstant { return &OtherConstant{base: base{r}} }

func NewDictExpr(r Range) *DictExpr { return &DictExpr{base: base{r}} }

func NewOpaque(r Range) *Opaque { return &Opaque{base: base{r}} }

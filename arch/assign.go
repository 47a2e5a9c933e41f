package arch

import (
	"context"

	"github.com/ArnabBanerjee/odoo-ls/ast"
	"github.com/ArnabBanerjee/odoo-ls/symbols"
)

// assignTarget is one flattened (name, range, annotation, value) tuple
// produced by unpackAssignTargets.
type assignTarget struct {
	name       string
	rng        ast.Range
	annotation ast.Expr
	value      ast.Expr
}

// unpackAssignTargets flattens Assign/AnnAssign/For targets into a flat
// sequence of bindable names, handling tuple-target, list-target,
// starred-target and single-name-target. annotation and value are shared
// across every name the unpack yields, since both Assign and AnnAssign
// funnel through this one helper.
//
// A starred target (`*rest`) contributes its inner name once, at the
// Starred node's own range rather than the wrapped name's range (an
// explicit choice recorded in DESIGN.md, since no single binding range
// is obviously more correct than the other).
func unpackAssignTargets(targets []ast.Expr, annotation, value ast.Expr) []assignTarget {
	var out []assignTarget
	for _, t := range targets {
		out = append(out, unpackOneTarget(t, annotation, value)...)
	}
	return out
}

func unpackOneTarget(target ast.Expr, annotation, value ast.Expr) []assignTarget {
	switch t := target.(type) {
	case *ast.Name:
		return []assignTarget{{name: t.Id, rng: t.Range, annotation: annotation, value: value}}
	case *ast.TupleExpr:
		return unpackAssignTargets(t.Elts, annotation, value)
	case *ast.ListExpr:
		return unpackAssignTargets(t.Elts, annotation, value)
	case *ast.Starred:
		return unpackStarred(t, annotation, value)
	default:
		// Attribute targets (`self.x = ...`) and anything else bind no
		// container-visible name at this pass.
		return nil
	}
}

func unpackStarred(t *ast.Starred, annotation, value ast.Expr) []assignTarget {
	name, ok := innerName(t.Value)
	if !ok {
		return nil
	}
	return []assignTarget{{name: name, rng: t.Range, annotation: annotation, value: value}}
}

func innerName(e ast.Expr) (string, bool) {
	n, ok := e.(*ast.Name)
	if !ok {
		return "", false
	}
	return n.Id, true
}

// visitAssign implements the plain-assignment rule, including the
// `__all__` special case.
func (b *Builder) visitAssign(ctx context.Context, stmt *ast.Assign) {
	assigns := unpackAssignTargets(stmt.Targets, nil, stmt.Value)
	container := b.top()
	for _, a := range assigns {
		b.bindAssignTarget(ctx, container, a)
	}
}

// visitAnnAssign implements the annotated form; it preserves the
// annotation on the Variable. The annotation itself is never evaluated
// by this pass, only stored for the later type-evaluation phase to
// consume.
func (b *Builder) visitAnnAssign(ctx context.Context, stmt *ast.AnnAssign) {
	assigns := unpackAssignTargets([]ast.Expr{stmt.Target}, stmt.Annotation, stmt.Value)
	container := b.top()
	for _, a := range assigns {
		b.bindAssignTarget(ctx, container, a)
	}
}

func (b *Builder) bindAssignTarget(ctx context.Context, container symbols.Ref, a assignTarget) {
	isExternal := symbolIsExternal(b.info, container)
	ref := b.info.Arena.NewVariable(container, a.name, a.rng, isExternal)
	sym, ok := b.info.Arena.Get(ref)
	if !ok {
		return
	}
	sym.Variable.Annotation = a.annotation

	if a.name != "__all__" || a.value == nil {
		return
	}
	containerSym, ok := b.info.Arena.Get(container)
	if !ok || containerSym.Kind != symbols.Module {
		return
	}

	evals, diags := b.info.Evaluator.EvalFromAST(ctx, a.value, container, a.rng.Start)
	sym.Variable.Evaluations = evals
	b.diagnostics = append(b.diagnostics, diags...)

	if len(evals) == 0 || !containerSym.IsExternal {
		return
	}
	// External packages frequently populate __all__ with names produced
	// dynamically; declare them as symbols without a definition site so
	// downstream passes don't report them unresolved.
	value := evals[0].Value
	if value == nil || value.Kind != symbols.EvList {
		return
	}
	for _, elt := range value.Elements {
		s, ok := asStringLiteral(elt)
		if !ok {
			continue
		}
		b.pendingAllNames = append(b.pendingAllNames, pendingAllName{
			name:  s,
			rng:   evals[0].Range,
			owner: container,
		})
	}
}

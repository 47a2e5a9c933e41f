package arch

import (
	"context"

	"github.com/ArnabBanerjee/odoo-ls/ast"
)

// visitIf descends into the then-arm and every elif/else arm
// unconditionally. This pass over-approximates visibility rather than
// tracking which branch actually runs.
func (b *Builder) visitIf(ctx context.Context, stmt *ast.If) {
	b.visitNode(ctx, stmt.Body)
	for _, arm := range stmt.ElifElse {
		b.visitNode(ctx, arm)
	}
}

// visitTry implements the Try rule: descend into body, else, finally.
// Exception handlers themselves are not modeled by this pass.
func (b *Builder) visitTry(ctx context.Context, stmt *ast.Try) {
	b.visitNode(ctx, stmt.Body)
	b.visitNode(ctx, stmt.OrElse)
	b.visitNode(ctx, stmt.FinalBody)
}

// visitFor implements the For rule: the loop target is bound as a
// variable in the enclosing scope (not pushed as its own container),
// then body and else are walked.
func (b *Builder) visitFor(ctx context.Context, stmt *ast.For) {
	container := b.top()
	for _, a := range unpackAssignTargets([]ast.Expr{stmt.Target}, nil, nil) {
		b.info.Arena.NewVariable(container, a.name, a.rng, symbolIsExternal(b.info, container))
	}
	b.visitNode(ctx, stmt.Body)
	b.visitNode(ctx, stmt.OrElse)
}

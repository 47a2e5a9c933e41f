package arch

import (
	"context"

	"github.com/ArnabBanerjee/odoo-ls/ast"
	"github.com/ArnabBanerjee/odoo-ls/symbols"
)

// visitNode dispatches each statement to its handler. For a Function
// container currently on top of stack, Assign/Import statements are
// forbidden from creating module-visible Variable children: only nested
// Class and Function definitions recurse.
func (b *Builder) visitNode(ctx context.Context, nodes []ast.Stmt) {
	for _, stmt := range nodes {
		b.visitStmt(ctx, stmt)
	}
}

func (b *Builder) visitStmt(ctx context.Context, stmt ast.Stmt) {
	inFunction := b.topIsFunction()

	switch s := stmt.(type) {
	case *ast.Import:
		if !inFunction {
			b.visitImport(ctx, s)
		}
	case *ast.ImportFrom:
		if !inFunction {
			b.visitImportFrom(ctx, s)
		}
	case *ast.AnnAssign:
		if !inFunction {
			b.visitAnnAssign(ctx, s)
		}
	case *ast.Assign:
		if !inFunction {
			b.visitAssign(ctx, s)
		}
	case *ast.FunctionDef:
		b.visitFuncDef(ctx, s)
	case *ast.ClassDef:
		b.visitClassDef(ctx, s)
	case *ast.If:
		b.visitIf(ctx, s)
	case *ast.Try:
		b.visitTry(ctx, s)
	case *ast.For:
		b.visitFor(ctx, s)
	default:
		// everything else is ignored at this pass.
	}
}

func (b *Builder) topIsFunction() bool {
	sym, ok := b.info.Arena.Get(b.top())
	return ok && sym.Kind == symbols.Function
}

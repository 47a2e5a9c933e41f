package arch

import (
	"context"

	"github.com/ArnabBanerjee/odoo-ls/ast"
)

// visitClassDef creates a Class child, captures its docstring,
// pushes/walks/pops, then invokes the class hook.
func (b *Builder) visitClassDef(ctx context.Context, stmt *ast.ClassDef) {
	container := b.top()
	isExternal := symbolIsExternal(b.info, container)
	ref := b.info.Arena.NewClass(container, stmt.Name, stmt.Range, isExternal)
	sym, ok := b.info.Arena.Get(ref)
	if !ok {
		return
	}
	sym.Class.Docstring = leadingDocstring(stmt.Body)

	b.push(ref)
	b.visitNode(ctx, stmt.Body)
	b.pop()

	b.info.Hooks.OnClassDef(ctx, ref)
}

package arch

import (
	"context"

	"github.com/ArnabBanerjee/odoo-ls/ast"
	"github.com/ArnabBanerjee/odoo-ls/symbols"
)

// visitFuncDef creates a Function child, scans its decorators and
// docstring, materializes its parameters, then pushes/walks/pops.
func (b *Builder) visitFuncDef(ctx context.Context, stmt *ast.FunctionDef) {
	container := b.top()
	isExternal := symbolIsExternal(b.info, container)
	ref := b.info.Arena.NewFunction(container, stmt.Name, stmt.Range, isExternal)
	sym, ok := b.info.Arena.Get(ref)
	if !ok {
		return
	}

	for _, dec := range stmt.Decorators {
		name, ok := innerName(dec)
		if !ok {
			continue
		}
		switch name {
		case "staticmethod":
			sym.Function.IsStatic = true
		case "property":
			sym.Function.IsProperty = true
		}
	}
	sym.Function.Docstring = leadingDocstring(stmt.Body)

	for _, p := range append(append([]ast.Param{}, stmt.Params.PosOnly...), stmt.Params.PosOrKw...) {
		paramRef := b.info.Arena.NewVariable(ref, p.Name, p.Range, isExternal)
		if pSym, ok := b.info.Arena.Get(paramRef); ok {
			pSym.Variable.IsParameter = true
		}
		sym.Function.Params = append(sym.Function.Params, symbols.Parameter{Symbol: paramRef})
	}
	if stmt.Params.VarArgs != nil {
		paramRef := b.info.Arena.NewVariable(ref, stmt.Params.VarArgs.Name, stmt.Params.VarArgs.Range, isExternal)
		if pSym, ok := b.info.Arena.Get(paramRef); ok {
			pSym.Variable.IsParameter = true
		}
		sym.Function.Params = append(sym.Function.Params, symbols.Parameter{Symbol: paramRef, IsArgs: true})
	}
	if stmt.Params.KwArgs != nil {
		paramRef := b.info.Arena.NewVariable(ref, stmt.Params.KwArgs.Name, stmt.Params.KwArgs.Range, isExternal)
		if pSym, ok := b.info.Arena.Get(paramRef); ok {
			pSym.Variable.IsParameter = true
		}
		sym.Function.Params = append(sym.Function.Params, symbols.Parameter{Symbol: paramRef, IsKwargs: true})
	}

	b.push(ref)
	b.visitNode(ctx, stmt.Body)
	b.pop()
}

// leadingDocstring implements the shared docstring rule used by both
// function and class definitions: if the first statement of body is an
// expression statement whose value is a string literal, that literal is
// the docstring.
func leadingDocstring(body []ast.Stmt) string {
	if len(body) == 0 {
		return ""
	}
	exprStmt, ok := body[0].(*ast.ExprStmt)
	if !ok {
		return ""
	}
	s, ok := asStringLiteral(exprStmt.Value)
	if !ok {
		return ""
	}
	return s
}

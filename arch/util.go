package arch

import "github.com/ArnabBanerjee/odoo-ls/ast"

// asStringLiteral reports whether e is a string-literal expression and,
// if so, its value.
func asStringLiteral(e ast.Expr) (string, bool) {
	s, ok := e.(*ast.StringLiteral)
	if !ok {
		return "", false
	}
	return s.Value, true
}

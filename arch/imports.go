package arch

import (
	"context"

	"github.com/emirpasic/gods/sets/treeset"
	"go.uber.org/zap"

	"github.com/ArnabBanerjee/odoo-ls/ast"
	"github.com/ArnabBanerjee/odoo-ls/logging"
	"github.com/ArnabBanerjee/odoo-ls/session"
	"github.com/ArnabBanerjee/odoo-ls/symbols"
)

// visitImport implements the bare `import a.b.c [as z]` named form,
// routed through the same binder as ImportFrom.
func (b *Builder) visitImport(ctx context.Context, stmt *ast.Import) {
	b.createLocalSymbolsFromImportStmt(ctx, nil, stmt.Names, nil, stmt.Range)
}

// visitImportFrom implements `from [level*.]Module import name [as z],...`
// and `from M import *`.
func (b *Builder) visitImportFrom(ctx context.Context, stmt *ast.ImportFrom) {
	b.createLocalSymbolsFromImportStmt(ctx, stmt.Module, stmt.Names, stmt.Level, stmt.Range)
}

func (b *Builder) createLocalSymbolsFromImportStmt(ctx context.Context, from *string, aliases []ast.Alias, level *int, rng ast.Range) {
	for _, alias := range aliases {
		if alias.Name == "*" {
			b.bindWildcardImport(ctx, from, aliases, level, rng)
			continue
		}
		b.bindNamedImport(alias)
	}
}

// bindNamedImport binds a single named import: the local name is the
// as-name when present, otherwise the first dotted segment of a dotted
// `a.b.c` without alias.
func (b *Builder) bindNamedImport(alias ast.Alias) {
	name := firstDottedSegment(alias.Name)
	if alias.AsName != nil {
		name = *alias.AsName
	}
	container := b.top()
	isExternal := symbolIsExternal(b.info, container)
	ref := b.info.Arena.NewVariable(container, name, alias.Range, isExternal)
	if sym, ok := b.info.Arena.Get(ref); ok {
		sym.Variable.IsImportVariable = true
	}
}

func firstDottedSegment(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			return name[:i]
		}
	}
	return name
}

// bindWildcardImport implements the `from M import *` form. Only honored
// at module top level (stack depth 1); silently skipped elsewhere.
func (b *Builder) bindWildcardImport(ctx context.Context, from *string, aliases []ast.Alias, level *int, rng ast.Range) {
	if len(b.symStack) != 1 {
		return
	}
	scope := b.symStack[0]

	results := b.info.Imports.ResolveImportStmt(ctx, scope, from, aliases, level, rng)
	if len(results) == 0 {
		return
	}
	result := results[0]

	if !result.Found {
		b.info.Scheduler.MarkNotFound(b.symStack[0])
		path := append(append([]string{}, result.FileTree[0]...), result.FileTree[1]...)
		if fileSym, ok := b.info.Arena.Get(b.symStack[0]); ok {
			fileSym.AddNotFoundPath(symbols.Arch, path)
		}
		return
	}

	allNamesAllowed, nameFilter := b.resolveExportFilter(result.Symbol)

	names := b.info.Arena.ChildNames(result.Symbol)
	var created []symbols.Ref
	for _, name := range names {
		targets := b.info.Arena.LookupAt(result.Symbol, name, symbols.PositionInfinite)
		if len(targets) == 0 {
			continue
		}
		if !allNamesAllowed && !nameFilter.Contains(name) {
			continue
		}

		isExternal := symbolIsExternal(b.info, scope)
		varRef := b.info.Arena.NewVariable(scope, name, result.Range, isExternal)
		sym, ok := b.info.Arena.Get(varRef)
		if !ok {
			continue
		}
		sym.Variable.IsImportVariable = true

		evals := make([]symbols.Evaluation, 0, len(targets))
		for _, t := range targets {
			evals = append(evals, symbols.Evaluation{Source: t, Mode: symbols.Direct, Range: result.Range})
		}
		sym.Variable.Evaluations = evals
		created = append(created, varRef)
	}

	b.addWildcardDependencies(created)
}

// resolveExportFilter looks up the target module's __all__ at position
// infinite and, on a clean single-evaluation non-None value, runs the
// exports extractor. An expired symbol, an evaluation count other than
// one, or a missing value falls back to "import everything", logged as a
// structured warning. A target with no __all__ binding, or with more than
// one, also imports everything, without a warning.
func (b *Builder) resolveExportFilter(target symbols.Ref) (allNamesAllowed bool, nameFilter *treeset.Set) {
	allRefs := b.info.Arena.LookupAt(target, "__all__", symbols.PositionInfinite)
	if len(allRefs) != 1 {
		return true, nil
	}
	allSym, ok := b.info.Arena.Get(allRefs[0])
	if !ok || allSym.Variable == nil || len(allSym.Variable.Evaluations) != 1 {
		b.warnInvalidAll(target, "multiple evaluation found")
		return true, nil
	}
	eval := allSym.Variable.Evaluations[0]
	if eval.Value == nil {
		b.warnInvalidAll(target, "no value found")
		return true, nil
	}

	names, parseError := ExtractAllNames(eval)
	if parseError {
		b.warnInvalidAll(target, "error during parsing __all__ import")
	}
	return false, names
}

func (b *Builder) warnInvalidAll(target symbols.Ref, reason string) {
	path := ""
	if sym, ok := b.info.Arena.Get(target); ok && len(sym.Paths) > 0 {
		path = sym.Paths[0]
	}
	log := b.log
	if log == nil {
		log = logging.Logger
	}
	log.Warn("invalid __all__ import", zap.String("file", path), zap.String("reason", reason))
}

// addWildcardDependencies adds an Arch->Arch dependency edge for every
// newly-created binding whose evaluation resolves to a symbol in a
// different file.
func (b *Builder) addWildcardDependencies(created []symbols.Ref) {
	currentFile := b.symStack[0]
	for _, ref := range created {
		sym, ok := b.info.Arena.Get(ref)
		if !ok || sym.Variable == nil || len(sym.Variable.Evaluations) == 0 {
			continue
		}
		target := sym.Variable.Evaluations[0].Source
		targetFile := fileOf(b.info, target)
		if targetFile.IsNil() || targetFile == currentFile {
			continue
		}
		if fileSym, ok := b.info.Arena.Get(currentFile); ok {
			fileSym.AddDependency(targetFile, symbols.Arch, symbols.Arch)
		}
	}
}

// fileOf walks target's ancestor chain (including itself) to find the
// nearest symbol that represents a file on disk: a Module, Package,
// Namespace or Compiled placeholder.
func fileOf(info *session.Info, ref symbols.Ref) symbols.Ref {
	cur := ref
	for !cur.IsNil() {
		sym, ok := info.Arena.Get(cur)
		if !ok {
			return symbols.NilRef
		}
		switch sym.Kind {
		case symbols.Module, symbols.Package, symbols.Namespace, symbols.Compiled:
			return cur
		}
		cur = sym.Parent
	}
	return symbols.NilRef
}

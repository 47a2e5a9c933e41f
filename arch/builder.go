// Package arch implements the architecture pass: the first build phase
// that walks a parsed syntax tree and populates a file-symbol's children
// in the cross-file symbol graph. It performs no type inference and no
// call-site resolution; it only shapes the graph that later passes
// traverse.
package arch

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ArnabBanerjee/odoo-ls/ast"
	"github.com/ArnabBanerjee/odoo-ls/logging"
	"github.com/ArnabBanerjee/odoo-ls/session"
	"github.com/ArnabBanerjee/odoo-ls/symbols"
)

// pendingAllName is a recorded synthetic-export candidate: a name pulled
// out of an external module's __all__ list that has no definition site
// of its own.
type pendingAllName struct {
	name  string
	rng   ast.Range
	owner symbols.Ref // the Module the name should be materialized under
}

// Builder runs one architecture pass over one file-symbol. It is not
// reentrant and not safe for concurrent use by more than one goroutine;
// the pass is single-threaded and synchronous by design.
type Builder struct {
	info *session.Info

	// symStack is the stack of enclosing container symbols, innermost on
	// top.
	symStack []symbols.Ref

	pendingAllNames []pendingAllName
	diagnostics     []session.Diagnostic
	log             *zap.Logger
}

// NewBuilder constructs a Builder bound to info, ready to Load exactly
// one file-symbol.
func NewBuilder(info *session.Info) *Builder {
	return &Builder{info: info}
}

func (b *Builder) top() symbols.Ref { return b.symStack[len(b.symStack)-1] }

func (b *Builder) push(ref symbols.Ref) { b.symStack = append(b.symStack, ref) }

func (b *Builder) pop() { b.symStack = b.symStack[:len(b.symStack)-1] }

// Load populates the children of fileSymbol and returns nil on success,
// or a fatal structural error from a collaborator. Preconditions:
// fileSymbol is freshly created with Arch status Pending and holds
// exactly one path.
func (b *Builder) Load(ctx context.Context, fileSymbol symbols.Ref) error {
	sym, ok := b.info.Arena.Get(fileSymbol)
	if !ok {
		return fmt.Errorf("arch: file-symbol expired before Load: %w", ErrNotAFileSymbol)
	}

	// Step 1: short-circuit kinds with nothing to extract.
	switch sym.Kind {
	case symbols.Namespace, symbols.Root, symbols.Compiled, symbols.Variable:
		return nil
	}

	b.symStack = []symbols.Ref{fileSymbol}
	passID := session.NewPassID()
	b.info.PassID = passID
	b.log = logging.WithPass(passID)

	// Step 2.
	sym.SetStatus(symbols.Arch, symbols.InProgress)

	// Step 3.
	if len(sym.Paths) != 1 {
		return fmt.Errorf("arch: %s has %d paths: %w", sym.Name, len(sym.Paths), ErrBadPaths)
	}
	path := sym.Paths[0]
	if sym.Kind == symbols.Package {
		path = filepath.Join(path, b.info.Config.PackageInitFile+b.info.Config.SourceExtension)
	}

	// Step 4: in_workspace = parent is in workspace, or file manager says so,
	// and never true for a path under a configured external prefix.
	inWorkspace := b.info.Files.IsInWorkspace(path) && !b.info.Config.IsExternalPath(path)
	if !inWorkspace {
		if parent, ok := b.info.Arena.Get(sym.Parent); ok && !parent.Parent.IsNil() {
			inWorkspace = parent.IsExternal == false && !b.info.Config.IsExternalPath(path)
		}
	}
	sym.IsExternal = !inWorkspace

	// Step 5.
	fileInfo, err := b.info.Files.UpdateFileInfo(ctx, path)
	if err != nil {
		return err
	}
	fileInfo.ReplaceDiagnostics(symbols.Arch, b.diagnostics)

	// Step 6.
	if fileInfo.Tree != nil {
		b.log.Debug("walking file", zap.String("path", path))
		b.visitNode(ctx, fileInfo.Tree.Body)

		// Step 7: resolve deferred __all__ entries.
		b.resolveSyntheticExports()
	}
	fileInfo.ReplaceDiagnostics(symbols.Arch, b.diagnostics)
	fileInfo.PublishDiagnostics()

	// Step 8.
	b.info.Scheduler.AddToRebuildArchEval(fileSymbol)

	// Step 9.
	b.info.Hooks.OnDone(ctx, fileSymbol)

	// Step 10.
	sym.SetStatus(symbols.Arch, symbols.Done)
	return nil
}

// resolveSyntheticExports materializes a placeholder Variable for each
// recorded (name, range) pending entry, if the container doesn't already
// have a symbol with that name.
func (b *Builder) resolveSyntheticExports() {
	for _, pending := range b.pendingAllNames {
		existing := b.info.Arena.LookupAt(pending.owner, pending.name, symbols.PositionInfinite)
		if len(existing) == 0 {
			b.info.Arena.NewVariable(pending.owner, pending.name, pending.rng, symbolIsExternal(b.info, pending.owner))
		}
	}
	b.pendingAllNames = nil
}

func symbolIsExternal(info *session.Info, ref symbols.Ref) bool {
	sym, ok := info.Arena.Get(ref)
	return ok && sym.IsExternal
}

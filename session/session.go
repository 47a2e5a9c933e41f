// Package session bundles every external collaborator the architecture
// pass calls out to into one handle, threaded through every builder
// method the same way a session context is threaded through a request.
// None of the five interfaces here are implemented by this module: the
// parser, the file-tree/workspace manager, the import resolver and the
// later build phases all live outside this module's boundary.
package session

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ArnabBanerjee/odoo-ls/ast"
	"github.com/ArnabBanerjee/odoo-ls/config"
	"github.com/ArnabBanerjee/odoo-ls/symbols"
)

// Diagnostic is a structural finding surfaced during the walk: parse
// errors, malformed __all__, anything worth showing a user. It carries
// just enough to hand to an LSP shell without this module depending on
// LSP wire types.
type Diagnostic struct {
	Range    ast.Range
	Message  string
	Severity DiagnosticSeverity
	Source   string
}

type DiagnosticSeverity int

const (
	SeverityError DiagnosticSeverity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// FileInfo is what the file manager hands back for a path: the parsed
// tree (nil if parsing failed or the file does not exist) plus a single
// diagnostics buffer shared by every phase.
type FileInfo struct {
	Tree *ast.FileTree

	pending   []Diagnostic // buffered until ReplaceDiagnostics/PublishDiagnostics
	published bool
}

// ReplaceDiagnostics overwrites the pending diagnostics. phase does not
// select a separate buffer: whatever was pending, from any phase, is
// replaced. The architecture pass calls this before it starts walking and again
// once it finishes, so a collaborator inspecting the file mid-walk sees
// what has accumulated so far.
func (fi *FileInfo) ReplaceDiagnostics(phase symbols.BuildPhase, diags []Diagnostic) {
	fi.pending = diags
}

// PublishDiagnostics flushes the buffered diagnostics to whatever
// publishes them: an external collaborator such as an LSP shell, a CLI
// printer, or a test spy. The default implementation here is a no-op;
// production wiring replaces FileManager with one that actually
// publishes.
func (fi *FileInfo) PublishDiagnostics() {
	fi.published = true
}

// Pending returns the diagnostics most recently buffered, for tests that
// want to assert on what would have been published.
func (fi *FileInfo) Pending() []Diagnostic { return fi.pending }

// FileManager is the external file-tree/workspace manager: file
// discovery, caching, reparsing and workspace-membership checks all
// live behind it.
type FileManager interface {
	// UpdateFileInfo returns the FileInfo for path, parsing it (or
	// fetching it from cache) if necessary.
	UpdateFileInfo(ctx context.Context, path string) (*FileInfo, error)
	IsInWorkspace(path string) bool
}

// ImportResult is one resolved (or failed-to-resolve) import alias.
type ImportResult struct {
	Found bool
	// Symbol is the weak ref to the target the import binds to; only
	// meaningful when Found.
	Symbol symbols.Ref
	// FileTree is the (searched-prefix, remaining-suffix) path pair the
	// resolver walked, concatenated to build a not-found path when the
	// import cannot be resolved.
	FileTree [2][]string
	Range    ast.Range
}

// ImportResolver is the external import resolver: given an import
// specifier it yields a target file and symbol.
type ImportResolver interface {
	ResolveImportStmt(ctx context.Context, scope symbols.Ref, from *string, aliases []ast.Alias, level *int, rng ast.Range) []ImportResult
}

// ASTEvaluator is the external AST evaluator: it statically evaluates an
// expression into zero or more Evaluations. This pass uses it only for
// the `__all__` special case.
type ASTEvaluator interface {
	EvalFromAST(ctx context.Context, expr ast.Expr, parent symbols.Ref, position uint32) ([]symbols.Evaluation, []Diagnostic)
}

// Scheduler is the external build scheduler: it owns the not-found set
// and the arch-eval rebuild queue. This pass only ever enqueues; it
// never drains or schedules a run itself.
type Scheduler interface {
	AddToRebuildArchEval(file symbols.Ref)
	MarkNotFound(file symbols.Ref)
}

// Hooks are two narrow extension seams: a single call at a well-defined
// moment, never driving the symbol stack itself.
type Hooks interface {
	OnClassDef(ctx context.Context, class symbols.Ref)
	OnDone(ctx context.Context, file symbols.Ref)
}

// Info bundles the arena plus every collaborator and carries a per-pass
// correlation id for log correlation.
type Info struct {
	Arena     *symbols.Arena
	Files     FileManager
	Imports   ImportResolver
	Evaluator ASTEvaluator
	Scheduler Scheduler
	Hooks     Hooks
	Config    config.Config

	PassID string // set fresh by arch.Builder.Load via uuid.NewString()
	Log    *zap.Logger
}

// NewPassID mints a fresh correlation id for one Builder.Load call.
func NewPassID() string { return uuid.NewString() }

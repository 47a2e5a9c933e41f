package arch

import (
	"context"

	"go.uber.org/zap"

	"github.com/ArnabBanerjee/odoo-ls/ast"
	"github.com/ArnabBanerjee/odoo-ls/config"
	"github.com/ArnabBanerjee/odoo-ls/session"
	"github.com/ArnabBanerjee/odoo-ls/symbols"
)

// fakeFileManager is an in-memory stand-in for the external file-tree
// manager: a fixed map of path -> tree, with every path "in workspace"
// unless explicitly listed otherwise.
type fakeFileManager struct {
	trees     map[string]*ast.FileTree
	external  map[string]bool
	fileInfos map[string]*session.FileInfo
}

func newFakeFileManager() *fakeFileManager {
	return &fakeFileManager{
		trees:     map[string]*ast.FileTree{},
		external:  map[string]bool{},
		fileInfos: map[string]*session.FileInfo{},
	}
}

func (f *fakeFileManager) put(path string, tree *ast.FileTree) {
	f.trees[path] = tree
}

func (f *fakeFileManager) UpdateFileInfo(ctx context.Context, path string) (*session.FileInfo, error) {
	if fi, ok := f.fileInfos[path]; ok {
		return fi, nil
	}
	fi := &session.FileInfo{Tree: f.trees[path]}
	f.fileInfos[path] = fi
	return fi, nil
}

func (f *fakeFileManager) IsInWorkspace(path string) bool {
	return !f.external[path]
}

// fakeImportResolver resolves import statements against a pre-registered
// table of results; anything not registered resolves to not-found.
type fakeImportResolver struct {
	byTargetName map[string]session.ImportResult
}

func newFakeImportResolver() *fakeImportResolver {
	return &fakeImportResolver{byTargetName: map[string]session.ImportResult{}}
}

func (r *fakeImportResolver) registerWildcard(moduleName string, target symbols.Ref) {
	r.byTargetName[moduleName] = session.ImportResult{Found: true, Symbol: target}
}

func (r *fakeImportResolver) ResolveImportStmt(ctx context.Context, scope symbols.Ref, from *string, aliases []ast.Alias, level *int, rng ast.Range) []session.ImportResult {
	if from == nil {
		return []session.ImportResult{{Found: false}}
	}
	if res, ok := r.byTargetName[*from]; ok {
		res.Range = rng
		return []session.ImportResult{res}
	}
	return []session.ImportResult{{
		Found:    false,
		FileTree: [2][]string{{"pkg"}, {*from}},
		Range:    rng,
	}}
}

// fakeEvaluator evaluates an expression by a fixed table of expr -> value,
// keyed by pointer identity, so tests can control exactly what an
// assignment's evaluation yields without implementing a real evaluator.
type fakeEvaluator struct {
	values map[ast.Expr]*symbols.EvaluationValue
}

func newFakeEvaluator() *fakeEvaluator {
	return &fakeEvaluator{values: map[ast.Expr]*symbols.EvaluationValue{}}
}

func (e *fakeEvaluator) EvalFromAST(ctx context.Context, expr ast.Expr, parent symbols.Ref, position uint32) ([]symbols.Evaluation, []session.Diagnostic) {
	value, ok := e.values[expr]
	if !ok {
		return nil, nil
	}
	return []symbols.Evaluation{{Mode: symbols.Direct, Value: value, Range: expr.Pos()}}, nil
}

// fakeScheduler records every call instead of driving a real rebuild
// queue.
type fakeScheduler struct {
	rebuildArchEval []symbols.Ref
	notFound        []symbols.Ref
}

func (s *fakeScheduler) AddToRebuildArchEval(file symbols.Ref) {
	s.rebuildArchEval = append(s.rebuildArchEval, file)
}

func (s *fakeScheduler) MarkNotFound(file symbols.Ref) {
	s.notFound = append(s.notFound, file)
}

// fakeHooks records invocations instead of attaching domain metadata.
type fakeHooks struct {
	classDefs []symbols.Ref
	done      []symbols.Ref
}

func (h *fakeHooks) OnClassDef(ctx context.Context, class symbols.Ref) {
	h.classDefs = append(h.classDefs, class)
}

func (h *fakeHooks) OnDone(ctx context.Context, file symbols.Ref) {
	h.done = append(h.done, file)
}

// newTestInfo wires a fresh Arena plus every fake collaborator into a
// session.Info ready for Builder.Load.
func newTestInfo() (*session.Info, *fakeFileManager, *fakeImportResolver, *fakeEvaluator, *fakeScheduler, *fakeHooks) {
	fm := newFakeFileManager()
	ir := newFakeImportResolver()
	ev := newFakeEvaluator()
	sched := &fakeScheduler{}
	hooks := &fakeHooks{}
	info := &session.Info{
		Arena:     symbols.NewArena(),
		Files:     fm,
		Imports:   ir,
		Evaluator: ev,
		Scheduler: sched,
		Hooks:     hooks,
		Config:    config.Default(),
		Log:       zap.NewNop(),
	}
	return info, fm, ir, ev, sched, hooks
}

func rng(start, end uint32) ast.Range { return ast.Range{Start: start, End: end} }

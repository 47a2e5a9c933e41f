package arch

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/ArnabBanerjee/odoo-ls/ast"
	"github.com/ArnabBanerjee/odoo-ls/symbols"
)

// snapshotNode is a structural dump of one symbol and its children
// (names, kinds, ranges, order), used to assert that running the pass
// twice over the same file produces the same shape, without comparing
// arena-internal Refs directly.
type snapshotNode struct {
	Name     string
	Kind     symbols.Kind
	Range    ast.Range
	Children []snapshotNode
}

func snapshotContainer(arena *symbols.Arena, container symbols.Ref) []snapshotNode {
	var out []snapshotNode
	for _, name := range arena.ChildNames(container) {
		for _, ref := range arena.LookupAt(container, name, symbols.PositionInfinite) {
			sym, ok := arena.Get(ref)
			if !ok {
				continue
			}
			node := snapshotNode{Name: sym.Name, Kind: sym.Kind, Range: sym.Range}
			if sym.Kind.IsContainer() {
				node.Children = snapshotContainer(arena, ref)
			}
			out = append(out, node)
		}
	}
	return out
}

func TestLoad_NamedImportAndAssignAndDefs(t *testing.T) {
	info, fm, _, _, sched, hooks := newTestInfo()

	root := info.Arena.NewRoot()
	module := info.Arena.NewModule(root, "m", "/ws/m.py", rng(0, 0), false)

	importStmt := ast.NewImport(rng(0, 10), []ast.Alias{{Name: "os.path", Range: rng(0, 10)}})
	assignStmt := ast.NewAssign(rng(12, 18), []ast.Expr{ast.NewName(rng(12, 13), "x")}, ast.NewOtherConstant(rng(16, 18)))
	funcStmt := ast.NewFunctionDef(rng(20, 40), rng(24, 27), "foo", nil,
		ast.Params{PosOrKw: []ast.Param{{Name: "a", Range: rng(28, 29)}}}, nil)
	classStmt := ast.NewClassDef(rng(42, 60), rng(48, 53), "Bar", nil, nil)

	tree := &ast.FileTree{Body: []ast.Stmt{importStmt, assignStmt, funcStmt, classStmt}}
	fm.put("/ws/m.py", tree)

	b := NewBuilder(info)
	err := b.Load(context.Background(), module)
	require.NoError(t, err)

	sym, ok := info.Arena.Get(module)
	require.True(t, ok)
	require.Equal(t, symbols.Done, sym.Status(symbols.Arch))
	require.False(t, sym.IsExternal)

	names := info.Arena.ChildNames(module)
	require.Equal(t, []string{"os", "x", "foo", "Bar"}, names)

	osRefs := info.Arena.LookupAt(module, "os", symbols.PositionInfinite)
	require.Len(t, osRefs, 1)
	osSym, _ := info.Arena.Get(osRefs[0])
	require.True(t, osSym.Variable.IsImportVariable)

	fooRefs := info.Arena.LookupAt(module, "foo", symbols.PositionInfinite)
	require.Len(t, fooRefs, 1)
	fooSym, _ := info.Arena.Get(fooRefs[0])
	require.Equal(t, symbols.Function, fooSym.Kind)
	require.Len(t, fooSym.Function.Params, 1)

	barRefs := info.Arena.LookupAt(module, "Bar", symbols.PositionInfinite)
	require.Len(t, barRefs, 1)
	barSym, _ := info.Arena.Get(barRefs[0])
	require.Equal(t, symbols.Class, barSym.Kind)

	require.Equal(t, []symbols.Ref{module}, sched.rebuildArchEval)
	require.Equal(t, []symbols.Ref{module}, hooks.done)
	require.Equal(t, []symbols.Ref{barRefs[0]}, hooks.classDefs)
}

func TestLoad_ScopeLawNoModuleVariableFromFunctionBody(t *testing.T) {
	info, fm, _, _, _, _ := newTestInfo()

	root := info.Arena.NewRoot()
	module := info.Arena.NewModule(root, "m", "/ws/m.py", rng(0, 0), false)

	innerAssign := ast.NewAssign(rng(10, 16), []ast.Expr{ast.NewName(rng(10, 11), "local")}, ast.NewOtherConstant(rng(14, 16)))
	innerImport := ast.NewImport(rng(18, 28), []ast.Alias{{Name: "sys", Range: rng(18, 28)}})
	funcStmt := ast.NewFunctionDef(rng(0, 30), rng(4, 7), "f", nil, ast.Params{},
		[]ast.Stmt{innerAssign, innerImport})

	tree := &ast.FileTree{Body: []ast.Stmt{funcStmt}}
	fm.put("/ws/m.py", tree)

	b := NewBuilder(info)
	require.NoError(t, b.Load(context.Background(), module))

	require.Equal(t, []string{"f"}, info.Arena.ChildNames(module))

	fRefs := info.Arena.LookupAt(module, "f", symbols.PositionInfinite)
	require.Len(t, fRefs, 1)
	require.Empty(t, info.Arena.ChildNames(fRefs[0]))
}

func TestLoad_WildcardImportHonorsAllFilter(t *testing.T) {
	info, fm, ir, _, _, _ := newTestInfo()

	root := info.Arena.NewRoot()
	target := info.Arena.NewModule(root, "other", "/ws/other.py", rng(0, 0), false)
	info.Arena.NewVariable(target, "wanted", rng(1, 2), false)
	info.Arena.NewVariable(target, "unwanted", rng(3, 4), false)
	allRef := info.Arena.NewVariable(target, "__all__", rng(0, 1), false)

	listValueExprs := []ast.Expr{ast.NewStringLiteral(rng(0, 1), "wanted")}
	allValue := symbols.ListValue(listValueExprs)
	allSym, _ := info.Arena.Get(allRef)
	allSym.Variable.Evaluations = []symbols.Evaluation{{Mode: symbols.Direct, Value: allValue, Range: rng(0, 1)}}

	module := info.Arena.NewModule(root, "m", "/ws/m.py", rng(0, 0), false)
	ir.registerWildcard("other", target)

	moduleName := "other"
	importFrom := ast.NewImportFrom(rng(0, 20), &moduleName, nil, []ast.Alias{{Name: "*", Range: rng(0, 20)}})
	tree := &ast.FileTree{Body: []ast.Stmt{importFrom}}
	fm.put("/ws/m.py", tree)

	b := NewBuilder(info)
	require.NoError(t, b.Load(context.Background(), module))

	names := info.Arena.ChildNames(module)
	require.Equal(t, []string{"wanted"}, names)
}

func TestLoad_WildcardImportNotFoundRecordsPath(t *testing.T) {
	info, fm, _, _, sched, _ := newTestInfo()

	root := info.Arena.NewRoot()
	module := info.Arena.NewModule(root, "m", "/ws/m.py", rng(0, 0), false)

	moduleName := "missing"
	importFrom := ast.NewImportFrom(rng(0, 20), &moduleName, nil, []ast.Alias{{Name: "*", Range: rng(0, 20)}})
	tree := &ast.FileTree{Body: []ast.Stmt{importFrom}}
	fm.put("/ws/m.py", tree)

	b := NewBuilder(info)
	require.NoError(t, b.Load(context.Background(), module))

	require.Equal(t, []symbols.Ref{module}, sched.notFound)
	sym, _ := info.Arena.Get(module)
	require.Len(t, sym.NotFoundPaths, 1)
	require.Equal(t, symbols.Arch, sym.NotFoundPaths[0].Phase)
}

func TestLoad_AllSpecialCaseRecordsSyntheticExportsForExternalModule(t *testing.T) {
	info, fm, _, ev, _, _ := newTestInfo()

	root := info.Arena.NewRoot()
	module := info.Arena.NewModule(root, "m", "/ext/m.py", rng(0, 0), true)
	fm.external["/ext/m.py"] = true

	allValueExpr := ast.NewListExpr(rng(10, 20), []ast.Expr{ast.NewStringLiteral(rng(11, 19), "ghost")})
	assignStmt := ast.NewAssign(rng(0, 20), []ast.Expr{ast.NewName(rng(0, 8), "__all__")}, allValueExpr)
	ev.values[allValueExpr] = symbols.ListValue([]ast.Expr{ast.NewStringLiteral(rng(11, 19), "ghost")})

	tree := &ast.FileTree{Body: []ast.Stmt{assignStmt}}
	fm.put("/ext/m.py", tree)

	b := NewBuilder(info)
	require.NoError(t, b.Load(context.Background(), module))

	ghostRefs := info.Arena.LookupAt(module, "ghost", symbols.PositionInfinite)
	require.Len(t, ghostRefs, 1)
	ghostSym, _ := info.Arena.Get(ghostRefs[0])
	require.Equal(t, symbols.Variable, ghostSym.Kind)
}

func TestLoad_MissingSyntaxTreePublishesDiagnosticsOnly(t *testing.T) {
	info, fm, _, _, sched, hooks := newTestInfo()

	root := info.Arena.NewRoot()
	module := info.Arena.NewModule(root, "m", "/ws/missing.py", rng(0, 0), false)
	_ = fm // no tree registered for this path

	b := NewBuilder(info)
	require.NoError(t, b.Load(context.Background(), module))

	require.Empty(t, info.Arena.ChildNames(module))
	require.Equal(t, []symbols.Ref{module}, sched.rebuildArchEval)
	require.Equal(t, []symbols.Ref{module}, hooks.done)
}

func TestExtractAllNames(t *testing.T) {
	strs := func(ss ...string) []ast.Expr {
		out := make([]ast.Expr, len(ss))
		for i, s := range ss {
			out[i] = ast.NewStringLiteral(rng(0, 1), s)
		}
		return out
	}

	names, parseError := ExtractAllNames(symbols.Evaluation{Value: symbols.ListValue(strs("a", "b"))})
	require.False(t, parseError)
	require.Equal(t, []interface{}{"a", "b"}, names.Values())

	names, parseError = ExtractAllNames(symbols.Evaluation{Value: symbols.ListValue([]ast.Expr{ast.NewOtherConstant(rng(0, 1))})})
	require.True(t, parseError)
	require.True(t, names.Empty())

	names, parseError = ExtractAllNames(symbols.Evaluation{Value: symbols.AnyValue()})
	require.True(t, parseError)
	require.True(t, names.Empty())

	names, parseError = ExtractAllNames(symbols.Evaluation{Value: symbols.ConstantValue(ast.NewStringLiteral(rng(0, 1), "solo"))})
	require.False(t, parseError)
	require.Equal(t, []interface{}{"solo"}, names.Values())
}

func TestLoad_IdempotentAcrossReset(t *testing.T) {
	info, fm, _, _, _, _ := newTestInfo()

	root := info.Arena.NewRoot()
	module := info.Arena.NewModule(root, "m", "/ws/m.py", rng(0, 0), false)

	importStmt := ast.NewImport(rng(0, 10), []ast.Alias{{Name: "os.path", Range: rng(0, 10)}})
	assignStmt := ast.NewAssign(rng(12, 18), []ast.Expr{ast.NewName(rng(12, 13), "x")}, ast.NewOtherConstant(rng(16, 18)))
	funcStmt := ast.NewFunctionDef(rng(20, 40), rng(24, 27), "foo", nil,
		ast.Params{PosOrKw: []ast.Param{{Name: "a", Range: rng(28, 29)}}}, nil)
	classStmt := ast.NewClassDef(rng(42, 60), rng(48, 53), "Bar", nil, nil)
	tree := &ast.FileTree{Body: []ast.Stmt{importStmt, assignStmt, funcStmt, classStmt}}
	fm.put("/ws/m.py", tree)

	b1 := NewBuilder(info)
	require.NoError(t, b1.Load(context.Background(), module))
	first := snapshotContainer(info.Arena, module)
	require.NotEmpty(t, first)

	info.Arena.ResetChildren(module)
	sym, _ := info.Arena.Get(module)
	sym.SetStatus(symbols.Arch, symbols.Pending)

	b2 := NewBuilder(info)
	require.NoError(t, b2.Load(context.Background(), module))
	second := snapshotContainer(info.Arena, module)

	require.Empty(t, cmp.Diff(first, second))
}

package symbols

import (
	"sync"
	"sync/atomic"

	"github.com/ArnabBanerjee/odoo-ls/ast"
)

// Symbol is the sum of {Root, Namespace, Package, Module, Class, Function,
// Variable, Compiled}. Go has no tagged union, so instead of one
// interface per variant this is one struct with a Kind tag and one
// non-nil *Data pointer selected by that tag: Container for the four
// container kinds, Variable for Variable, Function for Function, Class
// for Class. Root/Namespace/Compiled carry no extra payload.
type Symbol struct {
	self   Ref // weak self-reference, handed out by Ref() without cloning ownership
	Kind   Kind
	Name   string
	Parent Ref // weak; NilRef for Root
	Range  ast.Range

	IsExternal bool

	// Paths holds one entry for most symbols, several for a Namespace
	// root spanning multiple search-path roots.
	Paths []string

	status [numPhases]int32 // atomic BuildStatus per phase

	mu sync.Mutex

	// NotFoundPaths accumulates file-tree descriptors for imports that
	// could not be resolved, so the scheduler can retry once the target
	// becomes available.
	NotFoundPaths []NotFoundPath

	// Dependencies are named labels to other file-symbols, never strong
	// references, so the cross-file graph stays acyclic in the ownership
	// sense even when two files depend on each other.
	Dependencies []DependencyEdge

	// Container is the payload for Package/Module/Class/Function symbols.
	Container *Container
	Variable  *VariableData
	Function  *FunctionData
	Class     *ClassData
}

// VariableData is Variable's extra state.
type VariableData struct {
	IsImportVariable bool
	IsParameter      bool

	// Annotation preserves an AnnAssign's type expression even though this
	// pass never evaluates it; a later type-evaluation pass consumes it.
	Annotation ast.Expr

	// Evaluations is usually one entry; several when the binding is
	// ambiguous (e.g. both arms of a conditional reach this point).
	Evaluations []Evaluation
}

// Parameter is one entry of a Function's ordered parameter list: a weak
// reference to the Variable materialized for it, plus its kind flags and
// default-value slot.
type Parameter struct {
	Symbol   Ref
	Default  *Evaluation // left nil by this pass; the eval phase fills defaults in
	IsArgs   bool
	IsKwargs bool
}

// FunctionData is Function's extra state.
type FunctionData struct {
	IsStatic   bool
	IsProperty bool
	Docstring  string
	Params     []Parameter
}

// ClassData is Class's extra state. BaseEvaluations is populated by a
// later type-evaluation pass and always empty coming out of this one.
type ClassData struct {
	Docstring       string
	BaseEvaluations []Evaluation
}

// NotFoundPath is one unresolved-import record: the phase the lookup was
// attempted under, and the concatenated (searched-prefix, remaining-
// suffix) path the resolver walked before giving up.
type NotFoundPath struct {
	Phase BuildPhase
	Path  []string
}

// DependencyEdge is a named, non-owning label from one file-symbol to
// another: "this file's ConsumerPhase needs that file's ProducerPhase to
// be Done".
type DependencyEdge struct {
	Target        Ref
	ProducerPhase BuildPhase
	ConsumerPhase BuildPhase
}

// AddNotFoundPath records an unresolved-import descriptor on this symbol.
func (s *Symbol) AddNotFoundPath(phase BuildPhase, path []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NotFoundPaths = append(s.NotFoundPaths, NotFoundPath{Phase: phase, Path: path})
}

// AddDependency records a dependency edge from this file-symbol to
// target, unless one with the same (target, producer, consumer) already
// exists.
func (s *Symbol) AddDependency(target Ref, producerPhase, consumerPhase BuildPhase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.Dependencies {
		if d.Target == target && d.ProducerPhase == producerPhase && d.ConsumerPhase == consumerPhase {
			return
		}
	}
	s.Dependencies = append(s.Dependencies, DependencyEdge{Target: target, ProducerPhase: producerPhase, ConsumerPhase: consumerPhase})
}

// Self returns this symbol's own weak reference, the handle the rest of
// the graph uses to point back at it without taking ownership.
func (s *Symbol) Self() Ref { return s.self }

// Status loads the given phase's status with acquire semantics, so a
// concurrent reader running another file's pass observes a consistent
// snapshot without taking any lock.
func (s *Symbol) Status(phase BuildPhase) BuildStatus {
	return BuildStatus(atomic.LoadInt32(&s.status[phase]))
}

// SetStatus stores the given phase's status. A file's Arch status
// transitions Pending -> InProgress -> Done exactly once per pass;
// callers are responsible for only ever moving forward, this method
// does not itself enforce that order.
func (s *Symbol) SetStatus(phase BuildPhase, status BuildStatus) {
	atomic.StoreInt32(&s.status[phase], int32(status))
}

func newSymbol(kind Kind, name string, parent Ref, rng ast.Range, isExternal bool, paths []string) *Symbol {
	sym := &Symbol{
		Kind:       kind,
		Name:       name,
		Parent:     parent,
		Range:      rng,
		IsExternal: isExternal,
		Paths:      paths,
	}
	if kind.IsContainer() {
		sym.Container = newContainer()
	}
	switch kind {
	case Variable:
		sym.Variable = &VariableData{}
	case Function:
		sym.Function = &FunctionData{}
	case Class:
		sym.Class = &ClassData{}
	}
	return sym
}

// NewRoot creates the arena's single root symbol. It has no parent and no
// source range.
func (a *Arena) NewRoot() Ref {
	return a.alloc(newSymbol(Root, "<root>", NilRef, ast.Range{}, false, nil))
}

// NewNamespace creates a namespace-package symbol spanning one or more
// search-path roots.
func (a *Arena) NewNamespace(parent Ref, name string, paths []string) Ref {
	return a.alloc(newSymbol(Namespace, name, parent, ast.Range{}, false, paths))
}

// NewPackage creates a Package container rooted at a directory path (the
// __init__ file is resolved by the tree walker, not here).
func (a *Arena) NewPackage(parent Ref, name, path string, rng ast.Range, isExternal bool) Ref {
	return a.alloc(newSymbol(Package, name, parent, rng, isExternal, []string{path}))
}

// NewModule creates a Module (single-file) container.
func (a *Arena) NewModule(parent Ref, name, path string, rng ast.Range, isExternal bool) Ref {
	return a.alloc(newSymbol(Module, name, parent, rng, isExternal, []string{path}))
}

// NewCompiled creates a placeholder for a symbol whose backing file is a
// compiled extension the pass cannot descend into.
func (a *Arena) NewCompiled(parent Ref, name, path string, isExternal bool) Ref {
	return a.alloc(newSymbol(Compiled, name, parent, ast.Range{}, isExternal, []string{path}))
}

// AddChild appends a child ref under the given container symbol; bindings
// are append-only within a pass. It is a no-op if containerRef does not
// resolve to a container symbol.
func (a *Arena) AddChild(containerRef Ref, name string, childRef Ref) {
	sym, ok := a.Get(containerRef)
	if !ok || sym.Container == nil {
		return
	}
	sym.Container.addChild(name, childRef)
}

// LookupAt returns the binding set of name in containerRef's children at
// the given position (PositionInfinite aggregates every section).
func (a *Arena) LookupAt(containerRef Ref, name string, position uint32) []Ref {
	sym, ok := a.Get(containerRef)
	if !ok || sym.Container == nil {
		return nil
	}
	return sym.Container.lookupAt(name, position)
}

// ChildNames returns every bound name of containerRef, in first-binding
// insertion order.
func (a *Arena) ChildNames(containerRef Ref) []string {
	sym, ok := a.Get(containerRef)
	if !ok || sym.Container == nil {
		return nil
	}
	return sym.Container.names()
}

// NewVariable creates a Variable child of parent. This is the one
// constructor every name-binding rule in the architecture pass funnels
// through.
func (a *Arena) NewVariable(parent Ref, name string, rng ast.Range, isExternal bool) Ref {
	ref := a.alloc(newSymbol(Variable, name, parent, rng, isExternal, nil))
	a.AddChild(parent, name, ref)
	return ref
}

// NewFunction creates a Function child of parent and registers it.
func (a *Arena) NewFunction(parent Ref, name string, rng ast.Range, isExternal bool) Ref {
	ref := a.alloc(newSymbol(Function, name, parent, rng, isExternal, nil))
	a.AddChild(parent, name, ref)
	return ref
}

// NewClass creates a Class child of parent and registers it.
func (a *Arena) NewClass(parent Ref, name string, rng ast.Range, isExternal bool) Ref {
	ref := a.alloc(newSymbol(Class, name, parent, rng, isExternal, nil))
	a.AddChild(parent, name, ref)
	return ref
}

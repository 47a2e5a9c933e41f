package symbols

import (
	"math"
	"sync"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/ArnabBanerjee/odoo-ls/ast"
)

// PositionInfinite is the "aggregate across all sections" position used
// for export-list resolution.
const PositionInfinite uint32 = math.MaxUint32

// Container is embedded (via pointer) in every Package/Module/Class/
// Function Symbol: an ordered list of section ranges plus a name to
// (section id to ordered list of symbols) map.
//
// Children is a *linkedhashmap.Map so that name enumeration (wildcard
// exports, structural test dumps) is insertion-ordered and therefore
// deterministic across repeated passes. A plain Go map's randomized
// range order would make two passes over the same file disagree the
// moment a container has more than one child name.
type Container struct {
	mu       sync.Mutex
	Sections []ast.Range
	Children *linkedhashmap.Map // name string -> *linkedhashmap.Map(sectionID int -> []Ref)
}

func newContainer() *Container {
	return &Container{
		Children: linkedhashmap.New(),
		// Section 0 spans the whole file; the architecture pass never
		// splits sections (see currentSection), so every binding lands
		// here until the eval phase introduces branch-local sections.
		Sections: []ast.Range{{Start: 0, End: PositionInfinite}},
	}
}

// currentSection is the ordinal of the last section boundary crossed
// during the walk. The architecture pass never splits sections, so this
// is always 0 here; a later section-splitting refinement (e.g. per
// conditional branch) only needs to change this one method.
func (c *Container) currentSection() int { return 0 }

// addChild appends ref under children[name][section]. Bindings are
// append-only within a pass: re-binding a name in the same section
// produces a second, distinct entry rather than replacing the first.
func (c *Container) addChild(name string, ref Ref) {
	c.mu.Lock()
	defer c.mu.Unlock()

	section := c.currentSection()

	var bySection *linkedhashmap.Map
	if v, ok := c.Children.Get(name); ok {
		bySection = v.(*linkedhashmap.Map)
	} else {
		bySection = linkedhashmap.New()
		c.Children.Put(name, bySection)
	}

	var refs []Ref
	if v, ok := bySection.Get(section); ok {
		refs = v.([]Ref)
	}
	refs = append(refs, ref)
	bySection.Put(section, refs)
}

// lookupAt walks sections overlapping-or-preceding position to find the
// binding set of name at that position, or aggregates across every
// section when position is PositionInfinite.
func (c *Container) lookupAt(name string, position uint32) []Ref {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.Children.Get(name)
	if !ok {
		return nil
	}
	bySection := v.(*linkedhashmap.Map)

	var out []Ref
	for _, sectionID := range bySection.Keys() {
		id := sectionID.(int)
		sectionStart := uint32(0)
		if id < len(c.Sections) {
			sectionStart = c.Sections[id].Start
		}
		if position == PositionInfinite || sectionStart <= position {
			refsAny, _ := bySection.Get(id)
			out = append(out, refsAny.([]Ref)...)
		}
	}
	return out
}

// names returns every bound name in this container, in first-binding
// insertion order.
func (c *Container) names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := c.Children.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.(string)
	}
	return out
}

// reset clears every bound name back to empty and collapses the section
// list back to a single whole-file section, so a fresh architecture pass
// over the same file-symbol starts from a blank container.
func (c *Container) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Children = linkedhashmap.New()
	c.Sections = []ast.Range{{Start: 0, End: PositionInfinite}}
}

// allChildRefs flattens every (name, section) entry's refs, used by
// Arena.ResetChildren and Arena.FreeSubtree.
func (c *Container) allChildRefs() []Ref {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []Ref
	for _, nameKey := range c.Children.Keys() {
		bySectionAny, _ := c.Children.Get(nameKey)
		bySection := bySectionAny.(*linkedhashmap.Map)
		for _, sectionKey := range bySection.Keys() {
			refsAny, _ := bySection.Get(sectionKey)
			out = append(out, refsAny.([]Ref)...)
		}
	}
	return out
}

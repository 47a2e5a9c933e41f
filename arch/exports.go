package arch

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/ArnabBanerjee/odoo-ls/symbols"
)

// ExtractAllNames takes the single Evaluation held by a module's
// `__all__` variable and returns the names it statically names as an
// ordered, de-duplicated set (so the wildcard import loop gets an
// O(log n) membership check instead of a linear scan), plus whether
// anything in it couldn't be understood.
func ExtractAllNames(eval symbols.Evaluation) (names *treeset.Set, parseError bool) {
	out := treeset.NewWith(utils.StringComparator)
	value := eval.Value
	if value == nil {
		return out, true
	}
	switch value.Kind {
	case symbols.EvAny, symbols.EvDict:
		return out, true
	case symbols.EvConstant:
		s, ok := asStringLiteral(value.Constant)
		if !ok {
			return out, true
		}
		out.Add(s)
		return out, false
	case symbols.EvList, symbols.EvTuple:
		for _, elt := range value.Elements {
			s, ok := asStringLiteral(elt)
			if !ok {
				parseError = true
				continue
			}
			out.Add(s)
		}
		return out, parseError
	default:
		return out, true
	}
}

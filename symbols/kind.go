package symbols

// Kind tags which variant a Symbol is. Go has no enum with payload, so
// Symbol carries one populated *Data pointer per Kind instead (see
// symbol.go); Kind is what tells callers which one.
type Kind int

const (
	Root Kind = iota
	Namespace
	Package
	Module
	Class
	Function
	Variable
	Compiled
)

var kindNames = map[Kind]string{
	Root:      "Root",
	Namespace: "Namespace",
	Package:   "Package",
	Module:    "Module",
	Class:     "Class",
	Function:  "Function",
	Variable:  "Variable",
	Compiled:  "Compiled",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UnknownKind"
}

// IsContainer reports whether symbols of this kind hold a *Container
// (section-indexed name -> children map). Package/Module/Class/Function
// are containers; Root and Namespace are pure ancestors with no source
// range of their own, Variable and Compiled are always leaves.
func (k Kind) IsContainer() bool {
	switch k {
	case Package, Module, Class, Function:
		return true
	default:
		return false
	}
}

// Package model defines the symbol model produced by the parser and
// consumed by the encoder: classes, enums, properties and the tables
// used to resolve names across translation units.
package model

// SymbolKind discriminates the two kinds of user declarations.
type SymbolKind int

const (
	SymbolClass SymbolKind = iota
	SymbolEnum
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolClass:
		return "class"
	case SymbolEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// SymbolTable maps declared names to their kind. One table is shared
// across all translation units of a run so cross-file references resolve.
type SymbolTable map[string]SymbolKind

// Lookup returns the kind registered for name.
func (t SymbolTable) Lookup(name string) (SymbolKind, bool) {
	kind, ok := t[name]
	return kind, ok
}

// Contains reports whether name has been declared in any parsed file.
func (t SymbolTable) Contains(name string) bool {
	_, ok := t[name]
	return ok
}

// Add registers a declaration. It reports false when the name is
// already taken; redeclarations fail parsing.
func (t SymbolTable) Add(name string, kind SymbolKind) bool {
	if _, ok := t[name]; ok {
		return false
	}
	t[name] = kind
	return true
}

// SymbolList records the names declared in a single file, in source
// order. The encoder emits the enums of the list first, then the
// classes, each group in this order, so output is deterministic.
type SymbolList []string

// MetaEntry is one key/value pair of a meta block.
type MetaEntry struct {
	Key   string
	Value string
}

// MetaMap is an insertion-ordered key/value attribute map attached to a
// class or property annotation. Keys are unique within one block.
type MetaMap struct {
	entries []MetaEntry
}

// Set appends a key/value pair. It reports false when the key is
// already present.
func (m *MetaMap) Set(key, value string) bool {
	for _, e := range m.entries {
		if e.Key == key {
			return false
		}
	}
	m.entries = append(m.entries, MetaEntry{Key: key, Value: value})
	return true
}

// Entries returns the pairs in insertion order.
func (m *MetaMap) Entries() []MetaEntry {
	return m.entries
}

// Len returns the number of pairs.
func (m *MetaMap) Len() int {
	return len(m.entries)
}

// Property is a single reflected field of a class: its name, the
// declared type string exactly as written (template arguments and
// trailing decorators included) and the meta attached to its annotation.
type Property struct {
	Name string
	Type string
	Meta MetaMap
}

// RootParent is the sentinel parent name terminating every parent chain.
const RootParent = "IType"

// TypeClass is a reflected class or struct declaration.
type TypeClass struct {
	Name       string
	IsStruct   bool
	Parent     string
	Meta       MetaMap
	Properties []Property
}

// HasParent reports whether the class declares a parent other than the
// sentinel root.
func (c *TypeClass) HasParent() bool {
	return c.Parent != "" && c.Parent != RootParent
}

// FindProperty returns the property with the given name, if declared.
func (c *TypeClass) FindProperty(name string) (*Property, bool) {
	for i := range c.Properties {
		if c.Properties[i].Name == name {
			return &c.Properties[i], true
		}
	}
	return nil, false
}

// TypeEnum is a reflected enumeration: its name and the option names in
// declaration order. Option values are sequential from zero.
type TypeEnum struct {
	Name    string
	Options []string
}

// TypeCollection holds the declarations of one translation unit.
type TypeCollection struct {
	Classes map[string]*TypeClass
	Enums   map[string]*TypeEnum
}

// NewTypeCollection returns an empty collection.
func NewTypeCollection() *TypeCollection {
	return &TypeCollection{
		Classes: make(map[string]*TypeClass),
		Enums:   make(map[string]*TypeEnum),
	}
}

// FindClass returns the class declared under name in this unit.
func (c *TypeCollection) FindClass(name string) (*TypeClass, bool) {
	class, ok := c.Classes[name]
	return class, ok
}

// FindEnum returns the enum declared under name in this unit.
func (c *TypeCollection) FindEnum(name string) (*TypeEnum, bool) {
	enum, ok := c.Enums[name]
	return enum, ok
}

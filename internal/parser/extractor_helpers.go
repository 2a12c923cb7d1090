package parser

import (
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ludo-technologies/ckscan/internal/model"
)

// walk visits named descendants depth-first. The visitor returns false to
// prune the subtree.
func walk(node *sitter.Node, visitor func(*sitter.Node) bool) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if visitor(child) {
			walk(child, visitor)
		}
	}
}

func text(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return node.Content(source)
}

// looksLikeClass applies the usual Python naming convention: class names are
// capitalized, variables are not. Builtins are never classes of interest.
func looksLikeClass(name string) bool {
	if name == "" || builtinTypes[name] {
		return false
	}
	first := []rune(name)[0]
	return unicode.IsUpper(first)
}

// instantiatedClass returns the class name when the node is a direct
// instantiation call like Name(...), empty otherwise
func instantiatedClass(node *sitter.Node, source []byte) string {
	if node == nil || node.Type() != "call" {
		return ""
	}
	fn := node.ChildByFieldName("function")
	if fn == nil || fn.Type() != "identifier" {
		return ""
	}
	name := text(fn, source)
	if !looksLikeClass(name) {
		return ""
	}
	return name
}

// collectTypeNames records every class-looking identifier inside a type
// annotation, so generics like List[User] contribute User
func collectTypeNames(node *sitter.Node, source []byte, refs *nameSet) {
	if node.Type() == "identifier" {
		if name := text(node, source); looksLikeClass(name) {
			refs.add(name)
		}
		return
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		collectTypeNames(node.NamedChild(i), source, refs)
	}
}

// firstClassName returns the first class-looking identifier in an annotation,
// used as a field's inferred type
func firstClassName(node *sitter.Node, source []byte) string {
	if node.Type() == "identifier" {
		if name := text(node, source); looksLikeClass(name) {
			return name
		}
		return ""
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if name := firstClassName(node.NamedChild(i), source); name != "" {
			return name
		}
	}
	return ""
}

// fieldTable accumulates declared fields in first-seen order, remembering an
// inferred type per field when one is available
type fieldTable struct {
	order []string
	types map[string]string
}

func newFieldTable() *fieldTable {
	return &fieldTable{types: make(map[string]string)}
}

func (t *fieldTable) declare(name, fieldType string) {
	if name == "" {
		return
	}
	if _, seen := t.types[name]; !seen {
		t.order = append(t.order, name)
		t.types[name] = fieldType
	} else if t.types[name] == "" && fieldType != "" {
		t.types[name] = fieldType
	}
}

func (t *fieldTable) typeOf(name string) string {
	return t.types[name]
}

func (t *fieldTable) declared() []model.RawField {
	fields := make([]model.RawField, 0, len(t.order))
	for _, name := range t.order {
		fields = append(fields, model.RawField{Name: name, Type: t.types[name]})
	}
	return fields
}

// nameSet is an insertion-ordered string set
type nameSet struct {
	order []string
	seen  map[string]bool
}

func newNameSet() *nameSet {
	return &nameSet{seen: make(map[string]bool)}
}

func (s *nameSet) add(name string) {
	if name == "" || s.seen[name] {
		return
	}
	s.seen[name] = true
	s.order = append(s.order, name)
}

func (s *nameSet) ordered() []string {
	return s.order
}

// builtinTypes are Python builtins that never count as coupled classes
var builtinTypes = map[string]bool{
	"bool": true, "int": true, "float": true, "complex": true,
	"str": true, "bytes": true, "bytearray": true,
	"list": true, "tuple": true, "range": true, "dict": true,
	"set": true, "frozenset": true, "object": true, "type": true,
	"super": true, "property": true, "classmethod": true, "staticmethod": true,
	"None": true, "True": true, "False": true,
	"Exception": true, "BaseException": true, "ValueError": true,
	"TypeError": true, "KeyError": true, "IndexError": true,
	"AttributeError": true, "NameError": true, "RuntimeError": true,
	"NotImplementedError": true, "StopIteration": true,
	"Optional": true, "Union": true, "List": true, "Dict": true,
	"Set": true, "Tuple": true, "Any": true, "Callable": true,
	"Iterator": true, "Iterable": true, "Sequence": true, "Mapping": true,
}

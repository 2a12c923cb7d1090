package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ludo-technologies/ckscan/internal/model"
)

// Extractor turns parsed Python source into the language-independent raw
// entity records consumed by model.Build. The grammar itself lives in
// tree-sitter; the extractor only walks the tree and applies naming
// heuristics in the spirit of static CK tooling:
//
//   - self.x assignments and class-body assignments declare fields
//   - self.m() calls carry the "self" receiver
//   - Name.m() calls carry Name as receiver when Name looks like a class
//   - self.field.m() calls carry the field's inferred type when one is known
//     (annotation or direct instantiation assignment), otherwise the call is
//     left receiverless and the resolver excludes it
//   - Name(...) instantiations and type annotations become type references
//
// Builtin Python types never become references.
type Extractor struct {
	parser *Parser
}

// NewExtractor creates an extractor with its own parser instance
func NewExtractor() *Extractor {
	return &Extractor{parser: New()}
}

// ExtractSource parses source and extracts all class records from it
func (e *Extractor) ExtractSource(ctx context.Context, filePath string, source []byte) ([]model.RawClass, error) {
	result, err := e.parser.Parse(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("extraction failed for %s: %w", filePath, err)
	}

	var classes []model.RawClass
	e.collectClasses(result.RootNode, source, filePath, "", &classes)
	return classes, nil
}

// collectClasses walks the tree for class_definition nodes. Nested classes
// get a qualified Outer.Inner name.
func (e *Extractor) collectClasses(node *sitter.Node, source []byte, filePath, prefix string, out *[]model.RawClass) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		definition := child
		if child.Type() == "decorated_definition" {
			if def := child.ChildByFieldName("definition"); def != nil {
				definition = def
			}
		}

		if definition.Type() == "class_definition" {
			name := text(definition.ChildByFieldName("name"), source)
			if name == "" {
				continue
			}
			qualified := name
			if prefix != "" {
				qualified = prefix + "." + name
			}

			*out = append(*out, e.extractClass(definition, source, filePath, qualified))

			if body := definition.ChildByFieldName("body"); body != nil {
				e.collectClasses(body, source, filePath, qualified, out)
			}
			continue
		}

		e.collectClasses(child, source, filePath, prefix, out)
	}
}

func (e *Extractor) extractClass(node *sitter.Node, source []byte, filePath, qualified string) model.RawClass {
	rc := model.RawClass{
		Name:      qualified,
		FilePath:  filePath,
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}

	if superclasses := node.ChildByFieldName("superclasses"); superclasses != nil {
		for i := 0; i < int(superclasses.NamedChildCount()); i++ {
			base := superclasses.NamedChild(i)
			switch base.Type() {
			case "identifier":
				rc.Bases = append(rc.Bases, text(base, source))
			case "attribute":
				rc.Bases = append(rc.Bases, text(base, source))
			}
		}
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return rc
	}

	fields := newFieldTable()
	typeRefs := newNameSet()

	// First pass: declared fields (class-level assignments plus every
	// self.x assignment in any method) and their inferred types, so call
	// receivers can be typed in the second pass.
	e.collectClassFields(body, source, fields, typeRefs)

	// Second pass: methods with their access and call records
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		definition := child
		if child.Type() == "decorated_definition" {
			if def := child.ChildByFieldName("definition"); def != nil {
				definition = def
			}
		}
		if definition.Type() != "function_definition" {
			continue
		}
		rc.Methods = append(rc.Methods, e.extractMethod(definition, source, fields, typeRefs))
	}

	rc.Fields = fields.declared()
	rc.TypeRefs = typeRefs.ordered()
	return rc
}

// collectClassFields finds field declarations in the class body. Class-level
// assignments (optionally annotated) declare fields only at the direct
// statement level of the body, so method locals never leak in; self.x
// assignments declare fields from anywhere inside the class's methods.
func (e *Extractor) collectClassFields(body *sitter.Node, source []byte, fields *fieldTable, typeRefs *nameSet) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		statement := body.NamedChild(i)
		if statement.Type() != "expression_statement" {
			continue
		}
		for j := 0; j < int(statement.NamedChildCount()); j++ {
			assignment := statement.NamedChild(j)
			if assignment.Type() != "assignment" {
				continue
			}
			left := assignment.ChildByFieldName("left")
			if left == nil || left.Type() != "identifier" {
				continue
			}
			fields.declare(text(left, source), e.assignedType(assignment, source, typeRefs))
		}
	}

	walk(body, func(n *sitter.Node) bool {
		// Nested classes keep their own fields
		if n.Type() == "class_definition" {
			return false
		}
		if n.Type() != "assignment" {
			return true
		}
		left := n.ChildByFieldName("left")
		if left == nil || left.Type() != "attribute" {
			return true
		}
		if obj := left.ChildByFieldName("object"); obj != nil && text(obj, source) == "self" {
			fields.declare(text(left.ChildByFieldName("attribute"), source), e.assignedType(n, source, typeRefs))
		}
		return true
	})
}

// assignedType infers a field type from an annotation or a direct
// instantiation on the right-hand side
func (e *Extractor) assignedType(assignment *sitter.Node, source []byte, typeRefs *nameSet) string {
	if typeNode := assignment.ChildByFieldName("type"); typeNode != nil {
		collectTypeNames(typeNode, source, typeRefs)
		if name := firstClassName(typeNode, source); name != "" {
			return name
		}
	}
	if right := assignment.ChildByFieldName("right"); right != nil {
		return instantiatedClass(right, source)
	}
	return ""
}

func (e *Extractor) extractMethod(node *sitter.Node, source []byte, fields *fieldTable, typeRefs *nameSet) model.RawMethod {
	name := text(node.ChildByFieldName("name"), source)

	arity := 0
	if params := node.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			param := params.NamedChild(i)
			if text(param, source) == "self" {
				continue
			}
			arity++
			if typeNode := param.ChildByFieldName("type"); typeNode != nil {
				collectTypeNames(typeNode, source, typeRefs)
			}
		}
	}
	if returnType := node.ChildByFieldName("return_type"); returnType != nil {
		collectTypeNames(returnType, source, typeRefs)
	}

	method := model.RawMethod{
		Name:      name,
		Signature: fmt.Sprintf("%s/%d", name, arity),
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return method
	}

	walk(body, func(n *sitter.Node) bool {
		switch n.Type() {
		case "function_definition", "class_definition":
			// Nested scopes keep their own records
			return false
		default:
			return e.visitAccess(n, source, fields, typeRefs, &method)
		}
	})

	return method
}

// visitAccess records attribute reads/writes: self.x as own-class accesses,
// Name.x (class-looking receiver) as cross-class accesses.
func (e *Extractor) visitAccess(n *sitter.Node, source []byte, fields *fieldTable, typeRefs *nameSet, method *model.RawMethod) bool {
	if n.Type() == "call" {
		if call, ok := e.extractCall(n, source, fields); ok {
			method.Calls = append(method.Calls, call)
		}
		if inst := instantiatedClass(n, source); inst != "" {
			typeRefs.add(inst)
		}
		// The outer method name is not a field access, but a field used as
		// the call receiver (self.db.insert) is: visit the receiver chain,
		// skipping only the attribute being called
		if fn := n.ChildByFieldName("function"); fn != nil && fn.Type() == "attribute" {
			if obj := fn.ChildByFieldName("object"); obj != nil {
				if e.visitAccess(obj, source, fields, typeRefs, method) {
					walk(obj, func(m *sitter.Node) bool {
						return e.visitAccess(m, source, fields, typeRefs, method)
					})
				}
			}
		}
		if args := n.ChildByFieldName("arguments"); args != nil {
			walk(args, func(m *sitter.Node) bool {
				return e.visitAccess(m, source, fields, typeRefs, method)
			})
		}
		return false
	}

	if n.Type() != "attribute" {
		return true
	}

	obj := n.ChildByFieldName("object")
	attr := n.ChildByFieldName("attribute")
	if obj == nil || attr == nil || obj.Type() != "identifier" {
		return true
	}

	receiver := text(obj, source)
	fieldName := text(attr, source)
	switch {
	case receiver == "self":
		method.FieldAccesses = append(method.FieldAccesses, model.RawFieldAccess{Field: fieldName})
	case looksLikeClass(receiver):
		method.FieldAccesses = append(method.FieldAccesses, model.RawFieldAccess{Class: receiver, Field: fieldName})
	}
	return false
}

// extractCall classifies one call node into a raw call record. Calls whose
// receiver cannot be named are still recorded, receiverless, so the resolver
// can apply the documented exclusion policy in one place.
func (e *Extractor) extractCall(n *sitter.Node, source []byte, fields *fieldTable) (model.RawCall, bool) {
	fn := n.ChildByFieldName("function")
	if fn == nil || fn.Type() != "attribute" {
		return model.RawCall{}, false
	}

	methodName := text(fn.ChildByFieldName("attribute"), source)
	obj := fn.ChildByFieldName("object")
	if methodName == "" || obj == nil {
		return model.RawCall{}, false
	}

	switch obj.Type() {
	case "identifier":
		receiver := text(obj, source)
		if receiver == "self" {
			return model.RawCall{Receiver: "self", Method: methodName}, true
		}
		if looksLikeClass(receiver) {
			return model.RawCall{Receiver: receiver, Method: methodName}, true
		}
		return model.RawCall{Method: methodName}, true

	case "attribute":
		// self.field.m(): use the field's inferred type when known
		inner := obj.ChildByFieldName("object")
		attr := obj.ChildByFieldName("attribute")
		if inner != nil && attr != nil && inner.Type() == "identifier" && text(inner, source) == "self" {
			if fieldType := fields.typeOf(text(attr, source)); fieldType != "" {
				return model.RawCall{Receiver: fieldType, Method: methodName}, true
			}
		}
		return model.RawCall{Method: methodName}, true
	}

	return model.RawCall{Method: methodName}, true
}

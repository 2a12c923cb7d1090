package model

import (
	"fmt"
	"sort"

	"github.com/ludo-technologies/ckscan/domain"
)

// Model is the frozen entity model for one analysis run. Mutation is only
// permitted during Build; once returned the model is read-only and safe to
// share across concurrently running metric engines.
//
// Classes enumerate in lexicographic order by qualified name. Input order is
// not stable across front-end adapters, so the lexicographic order is the
// documented, reproducible report order.
type Model struct {
	classes   []*ClassEntity
	index     map[string]*ClassEntity
	hierarchy *Hierarchy
}

// Build constructs a frozen Model from raw adapter output.
//
// Structural problems inside a single class's ancestry (cycles) are not build
// failures; they are recorded on the hierarchy and surface as per-class
// errors when DIT/NOC are computed. Build fails only on input that makes the
// whole model meaningless, such as duplicate qualified names or unnamed
// classes.
func Build(raw *RawModel) (*Model, error) {
	if raw == nil {
		return nil, domain.NewInvalidInputError("raw model is nil", nil)
	}

	index := make(map[string]*ClassEntity, len(raw.Classes))
	classes := make([]*ClassEntity, 0, len(raw.Classes))

	for i := range raw.Classes {
		rc := &raw.Classes[i]
		if rc.Name == "" {
			return nil, domain.NewInvalidInputError("class with empty qualified name", nil)
		}
		if _, dup := index[rc.Name]; dup {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("duplicate class: %s", rc.Name), nil)
		}

		entity := buildClass(rc)
		index[rc.Name] = entity
		classes = append(classes, entity)
	}

	sort.Slice(classes, func(i, j int) bool { return classes[i].Name < classes[j].Name })

	return &Model{
		classes:   classes,
		index:     index,
		hierarchy: newHierarchy(classes, index),
	}, nil
}

func buildClass(rc *RawClass) *ClassEntity {
	entity := &ClassEntity{
		Name:       rc.Name,
		FilePath:   rc.FilePath,
		StartLine:  rc.StartLine,
		EndLine:    rc.EndLine,
		Bases:      append([]string(nil), rc.Bases...),
		TypeRefs:   append([]string(nil), rc.TypeRefs...),
		fieldIndex: make(map[string]*FieldEntity, len(rc.Fields)),
	}

	for _, rf := range rc.Fields {
		if rf.Name == "" {
			continue
		}
		if _, dup := entity.fieldIndex[rf.Name]; dup {
			continue
		}
		field := &FieldEntity{Class: entity, Name: rf.Name, Type: rf.Type}
		entity.Fields = append(entity.Fields, field)
		entity.fieldIndex[rf.Name] = field
	}

	for _, rm := range rc.Methods {
		if rm.Name == "" {
			continue
		}
		sig := rm.Signature
		if sig == "" {
			sig = rm.Name
		}
		method := &MethodEntity{
			Class:         entity,
			Name:          rm.Name,
			Signature:     sig,
			FieldAccesses: append([]RawFieldAccess(nil), rm.FieldAccesses...),
		}
		for _, call := range rm.Calls {
			if call.Method == "" {
				continue
			}
			method.Calls = append(method.Calls, CallSite{
				Caller:   method,
				Receiver: call.Receiver,
				Method:   call.Method,
			})
		}
		entity.Methods = append(entity.Methods, method)
	}

	return entity
}

// Class looks up a class by qualified name
func (m *Model) Class(name string) (*ClassEntity, error) {
	c, ok := m.index[name]
	if !ok {
		return nil, domain.NewNotFoundError(name)
	}
	return c, nil
}

// Has reports whether the model contains the named class
func (m *Model) Has(name string) bool {
	_, ok := m.index[name]
	return ok
}

// Classes returns all classes in lexicographic order
func (m *Model) Classes() []*ClassEntity {
	return m.classes
}

// Hierarchy returns the inheritance graph
func (m *Model) Hierarchy() *Hierarchy {
	return m.hierarchy
}

package analyzer

import (
	"github.com/ludo-technologies/ckscan/internal/model"
)

// ReferenceKind classifies a resolved call or field access
type ReferenceKind string

const (
	// RefLocal targets the caller's own class
	RefLocal ReferenceKind = "local"

	// RefRemote targets another modeled class
	RefRemote ReferenceKind = "remote"

	// RefExternal targets a named type outside the model. External references
	// count toward RFC and CBO as coupling to an unresolvable unit.
	RefExternal ReferenceKind = "external"

	// RefUnresolved has no named target (dynamic dispatch to an unknown
	// receiver). Unresolved references are excluded from every metric.
	RefUnresolved ReferenceKind = "unresolved"
)

// ResolvedCall is one classified call site
type ResolvedCall struct {
	Caller       *model.MethodEntity
	Kind         ReferenceKind
	TargetClass  string
	TargetMethod string
}

// ClassRelations holds the resolved relations of a single class
type ClassRelations struct {
	Class *model.ClassEntity

	// Calls in caller declaration order, deduplicated on
	// (caller, kind, target class, target method)
	Calls []ResolvedCall

	// LocalFields maps method signature -> distinct own-class field names the
	// method accesses, in access order. Only accesses to fields the class
	// itself declares enter here; this is the LCOM input.
	LocalFields map[string][]string

	// RemoteFieldClasses are the distinct other classes whose fields methods
	// of this class access. They contribute to CBO but never to LCOM.
	RemoteFieldClasses []string
}

// Resolution is the resolved relation set over one frozen model.
//
// Resolve is deterministic and idempotent: it iterates classes in model order
// and records in declaration order, so resolving the same model twice yields
// an identical Resolution.
type Resolution struct {
	relations map[string]*ClassRelations
	order     []string
}

// Resolve classifies every raw call and field access record in the model
func Resolve(m *model.Model) *Resolution {
	res := &Resolution{
		relations: make(map[string]*ClassRelations, len(m.Classes())),
	}

	for _, class := range m.Classes() {
		rel := &ClassRelations{
			Class:       class,
			LocalFields: make(map[string][]string),
		}
		callSeen := make(map[ResolvedCall]bool)
		remoteFieldSeen := make(map[string]bool)

		for _, method := range class.Methods {
			localSeen := make(map[string]bool)

			for _, access := range method.FieldAccesses {
				owner := access.Class
				if owner == "" || owner == class.Name {
					field, declared := class.Field(access.Field)
					if !declared || localSeen[field.Name] {
						continue
					}
					localSeen[field.Name] = true
					rel.LocalFields[method.Signature] = append(rel.LocalFields[method.Signature], field.Name)
					continue
				}
				if !remoteFieldSeen[owner] {
					remoteFieldSeen[owner] = true
					rel.RemoteFieldClasses = append(rel.RemoteFieldClasses, owner)
				}
			}

			for _, call := range method.Calls {
				resolved := classifyCall(m, class, method, call)
				if callSeen[resolved] {
					continue
				}
				callSeen[resolved] = true
				rel.Calls = append(rel.Calls, resolved)
			}
		}

		res.relations[class.Name] = rel
		res.order = append(res.order, class.Name)
	}

	return res
}

// classifyCall applies the resolution policy:
//   - no receiver: unresolved, excluded everywhere
//   - receiver is the caller's own class (or "self"): local when the method
//     is declared on the class, otherwise unresolved
//   - receiver is a modeled class: remote, by target identity (the target
//     method need not be declared there)
//   - receiver names an unknown type: external
func classifyCall(m *model.Model, class *model.ClassEntity, method *model.MethodEntity, call model.CallSite) ResolvedCall {
	resolved := ResolvedCall{
		Caller:       method,
		TargetMethod: call.Method,
	}

	switch {
	case call.Receiver == "":
		resolved.Kind = RefUnresolved
	case call.Receiver == "self" || call.Receiver == class.Name:
		resolved.TargetClass = class.Name
		if class.HasMethod(call.Method) {
			resolved.Kind = RefLocal
		} else {
			resolved.Kind = RefUnresolved
		}
	case m.Has(call.Receiver):
		resolved.Kind = RefRemote
		resolved.TargetClass = call.Receiver
	default:
		resolved.Kind = RefExternal
		resolved.TargetClass = call.Receiver
	}

	return resolved
}

// Relations returns the resolved relations for a class, or nil when the class
// is not part of the model
func (r *Resolution) Relations(class string) *ClassRelations {
	return r.relations[class]
}

// Classes returns class names in model order
func (r *Resolution) Classes() []string {
	return r.order
}

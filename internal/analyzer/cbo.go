package analyzer

// CBOEngine computes Coupling Between Objects: the number of distinct other
// classes the class references, counted once per class no matter how many
// references exist. Three reference sources contribute:
//
//	(a) remote and named-external call sites
//	(b) cross-class field access
//	(c) field / parameter / local type annotations naming another class
//
// Self-references never count. Coupling through inheritance alone (direct
// parents and children) is excluded by default, following the common CK
// convention, but may be included via CountInheritance.

import (
	"github.com/ludo-technologies/ckscan/domain"
)

// CBOEngine is the coupling metric strategy
type CBOEngine struct {
	CountInheritance bool
}

// Kind returns the metric identifier
func (e *CBOEngine) Kind() domain.MetricKind {
	return domain.MetricCBO
}

// Compute collects the distinct coupled class set and returns its size
func (e *CBOEngine) Compute(in MetricInput) (int, error) {
	coupled := make(map[string]bool)
	add := func(name string) {
		if name != "" && name != in.Class.Name {
			coupled[name] = true
		}
	}

	rel := in.Resolution.Relations(in.Class.Name)
	if rel != nil {
		for _, call := range rel.Calls {
			if call.Kind == RefRemote || call.Kind == RefExternal {
				add(call.TargetClass)
			}
		}
		for _, class := range rel.RemoteFieldClasses {
			add(class)
		}
	}

	for _, ref := range in.Class.TypeRefs {
		add(ref)
	}

	if e.CountInheritance {
		hierarchy := in.Model.Hierarchy()
		for _, parent := range hierarchy.ParentsOf(in.Class.Name) {
			add(parent)
		}
		for _, child := range hierarchy.ChildrenOf(in.Class.Name) {
			add(child)
		}
	}

	return len(coupled), nil
}

package analyzer

import (
	"github.com/ludo-technologies/ckscan/domain"
)

// NOCEngine computes Number of Children: the count of classes whose direct
// parent set includes this class. Transitive descendants do not count.
type NOCEngine struct{}

// Kind returns the metric identifier
func (e *NOCEngine) Kind() domain.MetricKind {
	return domain.MetricNOC
}

// Compute counts direct-child edges. Classes caught in an inheritance cycle
// fail with a cycle error: their child edges are part of the broken graph.
func (e *NOCEngine) Compute(in MetricInput) (int, error) {
	hierarchy := in.Model.Hierarchy()
	if hierarchy.InCycle(in.Class.Name) {
		return 0, domain.NewCycleError(in.Class.Name)
	}
	return len(hierarchy.ChildrenOf(in.Class.Name)), nil
}

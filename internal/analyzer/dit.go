package analyzer

import (
	"github.com/ludo-technologies/ckscan/domain"
)

// DITEngine computes Depth of Inheritance Tree: the number of edges on the
// longest path from the class to a root along inheritance edges. A root class
// has DIT 0; with multiple inheritance the maximum over all ancestor paths
// wins. A class whose ancestry contains a cycle fails with a cycle error
// rather than silently returning a depth.
type DITEngine struct{}

// Kind returns the metric identifier
func (e *DITEngine) Kind() domain.MetricKind {
	return domain.MetricDIT
}

// Compute reads the depth memoized on the inheritance graph
func (e *DITEngine) Compute(in MetricInput) (int, error) {
	return in.Model.Hierarchy().DepthOf(in.Class.Name)
}

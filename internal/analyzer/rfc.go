package analyzer

import (
	"github.com/ludo-technologies/ckscan/domain"
)

// RFCEngine computes Response For a Class: the number of methods declared on
// the class plus the number of distinct remote methods those methods call
// directly, deduplicated by callee identity (class + method). Only the
// depth-1 response set counts; transitive calls are excluded. Named external
// callees count, unresolved ones do not.
type RFCEngine struct{}

// Kind returns the metric identifier
func (e *RFCEngine) Kind() domain.MetricKind {
	return domain.MetricRFC
}

// Compute returns the depth-1 response set size
func (e *RFCEngine) Compute(in MetricInput) (int, error) {
	response := len(in.Class.Methods)

	rel := in.Resolution.Relations(in.Class.Name)
	if rel == nil {
		return response, nil
	}

	callees := make(map[string]bool)
	for _, call := range rel.Calls {
		if call.Kind != RefRemote && call.Kind != RefExternal {
			continue
		}
		identity := call.TargetClass + "." + call.TargetMethod
		callees[identity] = true
	}

	return response + len(callees), nil
}

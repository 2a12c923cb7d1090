package analyzer

import (
	"github.com/ludo-technologies/ckscan/domain"
)

// WMCEngine computes Weighted Methods per Class: the sum of the weight of
// every method declared directly on the class. The weight function is
// pluggable; the default gives every method a weight of 1, so WMC degenerates
// to the declared method count.
type WMCEngine struct {
	Weight WeightFunc
}

// Kind returns the metric identifier
func (e *WMCEngine) Kind() domain.MetricKind {
	return domain.MetricWMC
}

// Compute sums the method weights. A class with zero methods has WMC 0.
func (e *WMCEngine) Compute(in MetricInput) (int, error) {
	weight := e.Weight
	if weight == nil {
		weight = ConstantWeight
	}

	total := 0
	for _, method := range in.Class.Methods {
		total += weight(method)
	}
	return total, nil
}

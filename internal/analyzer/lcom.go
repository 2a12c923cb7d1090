package analyzer

import (
	"github.com/ludo-technologies/ckscan/domain"
)

// LCOMEngine computes Lack of Cohesion of Methods in its pairwise
// (Chidamber-Kemerer) form. Every unordered pair of distinct declared methods
// is cohesive when the two methods' own-class field access sets intersect,
// non-cohesive otherwise. LCOM = non-cohesive pairs minus cohesive pairs,
// clamped at 0.
//
// The clamp is deliberate: the raw difference goes negative for well-cohesive
// classes and nearly every published implementation floors it, so a negative
// value would only hurt comparability. Classes with fewer than two methods,
// or whose methods access no fields at all, score 0.
type LCOMEngine struct{}

// Kind returns the metric identifier
func (e *LCOMEngine) Kind() domain.MetricKind {
	return domain.MetricLCOM
}

// Compute returns the clamped pairwise cohesion deficit
func (e *LCOMEngine) Compute(in MetricInput) (int, error) {
	methods := in.Class.Methods
	if len(methods) < 2 {
		return 0, nil
	}

	rel := in.Resolution.Relations(in.Class.Name)
	if rel == nil {
		return 0, nil
	}

	fieldSets := make([]map[string]bool, len(methods))
	accessed := false
	for i, method := range methods {
		set := make(map[string]bool)
		for _, field := range rel.LocalFields[method.Signature] {
			set[field] = true
			accessed = true
		}
		fieldSets[i] = set
	}
	if !accessed {
		return 0, nil
	}

	cohesive, nonCohesive := 0, 0
	for i := 0; i < len(methods); i++ {
		for j := i + 1; j < len(methods); j++ {
			if intersects(fieldSets[i], fieldSets[j]) {
				cohesive++
			} else {
				nonCohesive++
			}
		}
	}

	lcom := nonCohesive - cohesive
	if lcom < 0 {
		lcom = 0
	}
	return lcom, nil
}

func intersects(a, b map[string]bool) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for field := range a {
		if b[field] {
			return true
		}
	}
	return false
}

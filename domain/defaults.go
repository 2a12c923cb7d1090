package domain

// Default upper-bound thresholds for the CK suite. A metric value is flagged
// only when it is strictly greater than its bound.
//
// References:
// - Chidamber, S. R., & Kemerer, C. F. (1994). A metrics suite for object
//   oriented design
// - Rosenberg, L., & Hyatt, L. (1997). Software quality metrics for
//   object-oriented environments
const (
	// DefaultWMCThreshold bounds the number of weighted methods per class
	DefaultWMCThreshold = 20

	// DefaultDITThreshold bounds the depth of the inheritance tree, counted
	// in edges from the class to its furthest root (a root has DIT 0)
	DefaultDITThreshold = 5

	// DefaultNOCThreshold bounds the number of immediate subclasses
	DefaultNOCThreshold = 7

	// DefaultCBOThreshold bounds the number of distinct other classes a
	// class is coupled to
	DefaultCBOThreshold = 14

	// DefaultRFCThreshold bounds the depth-1 response set size
	DefaultRFCThreshold = 50

	// DefaultLCOMThreshold bounds the pairwise lack-of-cohesion value
	DefaultLCOMThreshold = 1
)

// DefaultThresholds returns the CK thresholds keyed by metric
func DefaultThresholds() map[MetricKind]int {
	return map[MetricKind]int{
		MetricWMC:  DefaultWMCThreshold,
		MetricDIT:  DefaultDITThreshold,
		MetricNOC:  DefaultNOCThreshold,
		MetricCBO:  DefaultCBOThreshold,
		MetricRFC:  DefaultRFCThreshold,
		MetricLCOM: DefaultLCOMThreshold,
	}
}

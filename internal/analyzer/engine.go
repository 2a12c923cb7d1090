package analyzer

import (
	"context"
	"fmt"

	"github.com/ludo-technologies/ckscan/domain"
	"github.com/ludo-technologies/ckscan/internal/model"
)

// MetricInput is the read-only input of one per-class metric computation
type MetricInput struct {
	Model      *model.Model
	Resolution *Resolution
	Class      *model.ClassEntity
}

// MetricEngine computes one CK metric for one class. Engines are stateless
// pure functions over the frozen model and resolved relations; all six may
// run concurrently without locking.
type MetricEngine interface {
	// Kind returns the metric this engine computes
	Kind() domain.MetricKind

	// Compute returns the metric value for the class, or a per-class error
	// (e.g. a cycle in the class's ancestry) that must not abort siblings
	Compute(in MetricInput) (int, error)
}

// WeightFunc assigns a WMC weight to a method. The default weighs every
// method as 1.
type WeightFunc func(*model.MethodEntity) int

// ConstantWeight is the default WMC weight function
func ConstantWeight(*model.MethodEntity) int { return 1 }

// EngineOptions configures the engine set
type EngineOptions struct {
	// WMCWeight overrides the per-method weight; nil means ConstantWeight
	WMCWeight WeightFunc

	// CountInheritanceCoupling includes direct parents and children in CBO
	CountInheritanceCoupling bool
}

// DefaultEngines returns the full CK suite in canonical order
func DefaultEngines(opts EngineOptions) []MetricEngine {
	weight := opts.WMCWeight
	if weight == nil {
		weight = ConstantWeight
	}
	return []MetricEngine{
		&WMCEngine{Weight: weight},
		&DITEngine{},
		&NOCEngine{},
		&CBOEngine{CountInheritance: opts.CountInheritanceCoupling},
		&RFCEngine{},
		&LCOMEngine{},
	}
}

// EngineResult holds one engine's values across all classes, keyed by class
// name. Failed classes appear in Errors instead of Values.
type EngineResult struct {
	Kind   domain.MetricKind
	Values map[string]int
	Errors map[string]error
}

// RunEngine computes one metric for every class in the model. Cancellation is
// checked at per-class granularity; a per-class failure is recorded and the
// remaining classes still compute.
func RunEngine(ctx context.Context, engine MetricEngine, m *model.Model, res *Resolution) (*EngineResult, error) {
	result := &EngineResult{
		Kind:   engine.Kind(),
		Values: make(map[string]int, len(m.Classes())),
		Errors: make(map[string]error),
	}

	for _, class := range m.Classes() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s computation cancelled: %w", engine.Kind(), ctx.Err())
		default:
		}

		value, err := engine.Compute(MetricInput{Model: m, Resolution: res, Class: class})
		if err != nil {
			result.Errors[class.Name] = err
			continue
		}
		result.Values[class.Name] = value
	}

	return result, nil
}

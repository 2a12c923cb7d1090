package analyzer

import (
	"github.com/ludo-technologies/ckscan/domain"
)

// EvaluateThresholds compares every class's metric values against the
// configured upper bounds and emits one Finding per exceeded metric.
// Comparison is strict: a value equal to its bound does not exceed it.
//
// Classes are visited in the order given (the model's deterministic order),
// and metrics in canonical suite order, so findings are stable across runs
// with unchanged input. Classes with no exceeded metric produce no Finding
// but still appear in the full report.
func EvaluateThresholds(classes []domain.ClassMetrics, thresholds map[domain.MetricKind]int) []domain.Finding {
	findings := []domain.Finding{}

	for _, class := range classes {
		for _, kind := range domain.AllMetricKinds {
			value, computed := class.Values[kind]
			if !computed {
				continue
			}
			bound, bounded := thresholds[kind]
			if !bounded {
				continue
			}
			if value > bound {
				findings = append(findings, domain.Finding{
					Class:     class.Name,
					Metric:    kind,
					Value:     value,
					Threshold: bound,
				})
			}
		}
	}

	return findings
}

// AssessRisk derives a per-class risk level from its exceeded metrics:
// high when two or more metrics exceed their bounds (or any value is more
// than double its bound), medium on a single exceeded metric, low otherwise.
func AssessRisk(values map[domain.MetricKind]int, thresholds map[domain.MetricKind]int) domain.RiskLevel {
	exceeded := 0
	severe := false
	for kind, value := range values {
		bound, ok := thresholds[kind]
		if !ok {
			continue
		}
		if value > bound {
			exceeded++
			if value > 2*bound {
				severe = true
			}
		}
	}

	switch {
	case exceeded >= 2 || severe:
		return domain.RiskLevelHigh
	case exceeded == 1:
		return domain.RiskLevelMedium
	default:
		return domain.RiskLevelLow
	}
}

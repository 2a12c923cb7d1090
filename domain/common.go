package domain

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
)

// SortCriteria represents the criteria for sorting results
type SortCriteria string

const (
	SortByName     SortCriteria = "name"     // Model order (lexicographic by qualified name)
	SortByRisk     SortCriteria = "risk"     // Risk level (high to low)
	SortByFindings SortCriteria = "findings" // Number of exceeded thresholds
)

// RiskLevel represents the metric risk level
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// MetricKind identifies one metric of the CK suite
type MetricKind string

const (
	MetricWMC  MetricKind = "wmc"
	MetricDIT  MetricKind = "dit"
	MetricNOC  MetricKind = "noc"
	MetricCBO  MetricKind = "cbo"
	MetricRFC  MetricKind = "rfc"
	MetricLCOM MetricKind = "lcom"
)

// AllMetricKinds lists the CK suite in its canonical reporting order
var AllMetricKinds = []MetricKind{MetricWMC, MetricDIT, MetricNOC, MetricCBO, MetricRFC, MetricLCOM}

// BoolPtr returns a pointer to the given bool value
func BoolPtr(b bool) *bool {
	return &b
}

// BoolValue returns the value of a bool pointer, or the default if nil
func BoolValue(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

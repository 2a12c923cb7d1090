package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/ckscan/domain"
)

// EncodeJSON returns an indented JSON string for the given value.
func EncodeJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", domain.NewOutputError("failed to marshal JSON", err)
	}
	return string(data), nil
}

// WriteJSON writes indented JSON for the given value to the writer.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode JSON", err)
	}
	return nil
}

// EncodeYAML returns a YAML string for the given value.
func EncodeYAML(v interface{}) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", domain.NewOutputError("failed to marshal YAML", err)
	}
	return string(data), nil
}

// Standard formatting constants
const (
	HeaderWidth    = 40
	SectionPadding = 2
	ItemPadding    = 4
)

// ANSI color codes for consistent color usage
const (
	ColorReset  = "\x1b[0m"
	ColorRed    = "\x1b[31m"
	ColorYellow = "\x1b[33m"
	ColorGreen  = "\x1b[32m"
)

// StatLine is one labeled value of a summary section. Sections are rendered
// from slices, not maps, so text reports stay byte-stable across runs.
type StatLine struct {
	Label string
	Value interface{}
}

// FormatUtils provides shared formatting utilities
type FormatUtils struct{}

// NewFormatUtils creates a new format utilities instance
func NewFormatUtils() *FormatUtils {
	return &FormatUtils{}
}

// FormatMainHeader creates a standardized main header
func (f *FormatUtils) FormatMainHeader(title string) string {
	var builder strings.Builder
	builder.WriteString(title + "\n")
	builder.WriteString(strings.Repeat("=", HeaderWidth) + "\n\n")
	return builder.String()
}

// FormatSectionHeader creates a standardized section header
func (f *FormatUtils) FormatSectionHeader(title string) string {
	var builder strings.Builder
	builder.WriteString(strings.ToUpper(title) + "\n")
	builder.WriteString(strings.Repeat("-", len(title)) + "\n")
	return builder.String()
}

// FormatSectionSeparator creates a section separator
func (f *FormatUtils) FormatSectionSeparator() string {
	return "\n"
}

// FormatLabelWithIndent creates a formatted label with specific indentation
func (f *FormatUtils) FormatLabelWithIndent(indent int, label string, value interface{}) string {
	return fmt.Sprintf("%s%s: %v\n", strings.Repeat(" ", indent), label, value)
}

// FormatSummaryStats creates a standardized summary statistics section
func (f *FormatUtils) FormatSummaryStats(stats []StatLine) string {
	var builder strings.Builder
	builder.WriteString(f.FormatSectionHeader("SUMMARY"))

	for _, stat := range stats {
		builder.WriteString(f.FormatLabelWithIndent(SectionPadding, stat.Label, stat.Value))
	}

	builder.WriteString(f.FormatSectionSeparator())
	return builder.String()
}

// FormatRiskDistribution creates a standardized risk distribution section
func (f *FormatUtils) FormatRiskDistribution(high, medium, low int) string {
	var builder strings.Builder
	builder.WriteString(f.FormatSectionHeader("RISK DISTRIBUTION"))
	builder.WriteString(f.FormatLabelWithIndent(SectionPadding, "High", high))
	builder.WriteString(f.FormatLabelWithIndent(SectionPadding, "Medium", medium))
	builder.WriteString(f.FormatLabelWithIndent(SectionPadding, "Low", low))
	builder.WriteString(f.FormatSectionSeparator())
	return builder.String()
}

// FormatWarningsSection creates a standardized warnings section
func (f *FormatUtils) FormatWarningsSection(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(f.FormatSectionHeader("WARNINGS"))

	for _, warning := range warnings {
		builder.WriteString(f.FormatLabelWithIndent(SectionPadding, "Warning", warning))
	}

	builder.WriteString(f.FormatSectionSeparator())
	return builder.String()
}

// GetRiskColor returns the appropriate color for a risk level
func (f *FormatUtils) GetRiskColor(risk domain.RiskLevel) string {
	switch risk {
	case domain.RiskLevelHigh:
		return ColorRed
	case domain.RiskLevelMedium:
		return ColorYellow
	case domain.RiskLevelLow:
		return ColorGreen
	default:
		return ColorReset
	}
}

// FormatRiskWithColor formats a risk level with appropriate color
func (f *FormatUtils) FormatRiskWithColor(risk domain.RiskLevel) string {
	return fmt.Sprintf("%s%s%s", f.GetRiskColor(risk), string(risk), ColorReset)
}

package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ludo-technologies/ckscan/domain"
)

// CKFormatterImpl implements the CKOutputFormatter interface
type CKFormatterImpl struct{}

// NewCKFormatter creates a new CK output formatter
func NewCKFormatter() *CKFormatterImpl {
	return &CKFormatterImpl{}
}

// Format formats the CK analysis response according to the specified format
func (f *CKFormatterImpl) Format(response *domain.CKResponse, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText:
		return f.formatText(response)
	case domain.OutputFormatJSON:
		return EncodeJSON(response)
	case domain.OutputFormatYAML:
		return EncodeYAML(response)
	case domain.OutputFormatCSV:
		return f.formatCSV(response)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write writes the formatted output to the writer
func (f *CKFormatterImpl) Write(response *domain.CKResponse, format domain.OutputFormat, writer io.Writer) error {
	formatted, err := f.Format(response, format)
	if err != nil {
		return err
	}
	_, err = writer.Write([]byte(formatted))
	return err
}

// formatText formats the response as a human-readable report
func (f *CKFormatterImpl) formatText(response *domain.CKResponse) (string, error) {
	var builder strings.Builder
	utils := NewFormatUtils()

	builder.WriteString(utils.FormatMainHeader("CK Metrics Analysis Report"))

	builder.WriteString(utils.FormatSummaryStats([]StatLine{
		{Label: "Total Classes", Value: response.Summary.TotalClasses},
		{Label: "Files Analyzed", Value: response.Summary.FilesAnalyzed},
		{Label: "Findings", Value: response.Summary.TotalFindings},
		{Label: "Classes In Error", Value: response.Summary.ClassesInError},
	}))

	builder.WriteString(utils.FormatRiskDistribution(
		response.Summary.HighRiskClasses,
		response.Summary.MediumRiskClasses,
		response.Summary.LowRiskClasses))

	if len(response.Classes) > 0 {
		builder.WriteString(utils.FormatSectionHeader("CLASS METRICS"))
		builder.WriteString(f.formatMetricsTable(response.Classes, utils))
		builder.WriteString(utils.FormatSectionSeparator())
	}

	if len(response.Findings) > 0 {
		builder.WriteString(utils.FormatSectionHeader("FINDINGS"))
		for _, finding := range response.Findings {
			builder.WriteString(fmt.Sprintf("%s%s: %s = %d (threshold %d)\n",
				strings.Repeat(" ", SectionPadding),
				finding.Class, strings.ToUpper(string(finding.Metric)), finding.Value, finding.Threshold))
		}
		builder.WriteString(utils.FormatSectionSeparator())
	}

	builder.WriteString(utils.FormatWarningsSection(response.Warnings))

	if len(response.Errors) > 0 {
		builder.WriteString(utils.FormatSectionHeader("ERRORS"))
		for _, err := range response.Errors {
			builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Error", err))
		}
		builder.WriteString(utils.FormatSectionSeparator())
	}

	builder.WriteString(utils.FormatSectionHeader("METADATA"))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Generated at", response.GeneratedAt))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Version", response.Version))

	return builder.String(), nil
}

// formatMetricsTable renders one row per class with the six metric columns
func (f *CKFormatterImpl) formatMetricsTable(classes []domain.ClassMetrics, utils *FormatUtils) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("  %-30s %5s %5s %5s %5s %5s %5s  %s\n",
		"CLASS", "WMC", "DIT", "NOC", "CBO", "RFC", "LCOM", "RISK"))

	for _, class := range classes {
		builder.WriteString(fmt.Sprintf("  %-30s %5s %5s %5s %5s %5s %5s  %s\n",
			class.Name,
			metricCell(class, domain.MetricWMC),
			metricCell(class, domain.MetricDIT),
			metricCell(class, domain.MetricNOC),
			metricCell(class, domain.MetricCBO),
			metricCell(class, domain.MetricRFC),
			metricCell(class, domain.MetricLCOM),
			utils.FormatRiskWithColor(class.RiskLevel)))

		for _, classErr := range class.Errors {
			builder.WriteString(fmt.Sprintf("%s%s: %s\n",
				strings.Repeat(" ", ItemPadding), classErr.Kind, classErr.Message))
		}
	}

	return builder.String()
}

// metricCell renders "-" for values lost to a per-class error
func metricCell(class domain.ClassMetrics, kind domain.MetricKind) string {
	value, ok := class.Values[kind]
	if !ok {
		return "-"
	}
	return strconv.Itoa(value)
}

// formatCSV renders one row per class, findings flattened into a count
func (f *CKFormatterImpl) formatCSV(response *domain.CKResponse) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	header := []string{"class", "file", "wmc", "dit", "noc", "cbo", "rfc", "lcom", "risk", "errors"}
	if err := writer.Write(header); err != nil {
		return "", domain.NewOutputError("failed to write CSV header", err)
	}

	for _, class := range response.Classes {
		row := []string{
			class.Name,
			class.FilePath,
			metricCell(class, domain.MetricWMC),
			metricCell(class, domain.MetricDIT),
			metricCell(class, domain.MetricNOC),
			metricCell(class, domain.MetricCBO),
			metricCell(class, domain.MetricRFC),
			metricCell(class, domain.MetricLCOM),
			string(class.RiskLevel),
			strconv.Itoa(len(class.Errors)),
		}
		if err := writer.Write(row); err != nil {
			return "", domain.NewOutputError("failed to write CSV row", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", domain.NewOutputError("failed to flush CSV", err)
	}
	return builder.String(), nil
}

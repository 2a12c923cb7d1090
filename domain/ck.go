package domain

import (
	"context"
	"io"
)

// CKRequest represents a request for CK metrics analysis
type CKRequest struct {
	// Input files or directories to analyze
	Paths []string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string // Path to save output file
	ShowDetails  bool

	// Sorting
	SortBy SortCriteria

	// Upper-bound thresholds, keyed by metric. A Finding is emitted when a
	// value is strictly greater than its bound.
	Thresholds map[MetricKind]int

	// CountInheritanceCoupling includes parent/child relationships in CBO.
	// Most CK literature excludes them; the default follows that convention.
	CountInheritanceCoupling *bool

	// Configuration
	ConfigPath string

	// Analysis options
	Recursive       *bool
	IncludePatterns []string
	ExcludePatterns []string
}

// ClassError describes a per-class analysis failure (e.g. an inheritance
// cycle). Errors never abort sibling classes; they are attached to the
// affected class's report entry instead.
type ClassError struct {
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

// ClassMetrics holds the six CK metric values for a single class
type ClassMetrics struct {
	// Class identification
	Name      string `json:"name" yaml:"name"`
	FilePath  string `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	StartLine int    `json:"start_line,omitempty" yaml:"start_line,omitempty"`
	EndLine   int    `json:"end_line,omitempty" yaml:"end_line,omitempty"`

	// Metric values, keyed by metric kind
	Values map[MetricKind]int `json:"metrics" yaml:"metrics"`

	// Risk assessment derived from the thresholds
	RiskLevel RiskLevel `json:"risk_level" yaml:"risk_level"`

	// Per-class failures (cycle in ancestry, unresolved structure)
	Errors []ClassError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Finding indicates a metric that exceeded its configured threshold
type Finding struct {
	Class     string     `json:"class" yaml:"class"`
	Metric    MetricKind `json:"metric" yaml:"metric"`
	Value     int        `json:"value" yaml:"value"`
	Threshold int        `json:"threshold" yaml:"threshold"`
}

// CKSummary represents aggregate statistics over all analyzed classes
type CKSummary struct {
	TotalClasses   int `json:"total_classes" yaml:"total_classes"`
	FilesAnalyzed  int `json:"files_analyzed" yaml:"files_analyzed"`
	TotalFindings  int `json:"total_findings" yaml:"total_findings"`
	ClassesInError int `json:"classes_in_error" yaml:"classes_in_error"`

	// Risk distribution
	LowRiskClasses    int `json:"low_risk_classes" yaml:"low_risk_classes"`
	MediumRiskClasses int `json:"medium_risk_classes" yaml:"medium_risk_classes"`
	HighRiskClasses   int `json:"high_risk_classes" yaml:"high_risk_classes"`

	// Per-metric averages and maxima
	AverageValues map[MetricKind]float64 `json:"average_values" yaml:"average_values"`
	MaxValues     map[MetricKind]int     `json:"max_values" yaml:"max_values"`
}

// CKResponse represents the complete CK analysis report. Classes are ordered
// by the entity model's deterministic order (lexicographic by qualified name)
// unless the request asked for a different sort; findings follow the same
// class order so unchanged input yields byte-identical reports.
type CKResponse struct {
	Classes  []ClassMetrics     `json:"classes" yaml:"classes"`
	Findings []Finding          `json:"findings" yaml:"findings"`
	Summary  CKSummary          `json:"summary" yaml:"summary"`
	Config   map[MetricKind]int `json:"thresholds" yaml:"thresholds"`

	// Warnings and issues
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Metadata
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// CKService defines the core business logic for CK metrics analysis
type CKService interface {
	// Analyze performs CK analysis on the given request
	Analyze(ctx context.Context, req CKRequest) (*CKResponse, error)

	// AnalyzeFile analyzes a single file
	AnalyzeFile(ctx context.Context, filePath string, req CKRequest) (*CKResponse, error)
}

// CKConfigurationLoader defines the interface for loading CK configuration
type CKConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*CKRequest, error)

	// LoadDefaultConfig loads the default configuration
	LoadDefaultConfig() *CKRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *CKRequest, override *CKRequest) *CKRequest
}

// CKOutputFormatter defines the interface for formatting CK analysis results
type CKOutputFormatter interface {
	// Format formats the analysis response according to the specified format
	Format(response *CKResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *CKResponse, format OutputFormat, writer io.Writer) error
}

// DefaultCKRequest returns a CKRequest with default values
func DefaultCKRequest() *CKRequest {
	return &CKRequest{
		OutputFormat:             OutputFormatText,
		ShowDetails:              false,
		SortBy:                   SortByName,
		Thresholds:               DefaultThresholds(),
		CountInheritanceCoupling: BoolPtr(false),
		Recursive:                BoolPtr(true),
		IncludePatterns:          []string{"**/*.py"},
		ExcludePatterns:          []string{},
	}
}

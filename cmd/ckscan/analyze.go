package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/ckscan/app"
	"github.com/ludo-technologies/ckscan/domain"
	"github.com/ludo-technologies/ckscan/service"
)

// AnalyzeCommand represents the analyze command
type AnalyzeCommand struct {
	wmcThreshold  int
	ditThreshold  int
	nocThreshold  int
	cboThreshold  int
	rfcThreshold  int
	lcomThreshold int

	countInheritance bool
	sortBy           string

	json bool
	csv  bool
	yaml bool

	outputPath  string
	showDetails bool

	recursive       bool
	includePatterns []string
	excludePatterns []string
	configPath      string
}

// NewAnalyzeCommand creates a new analyze command
func NewAnalyzeCommand() *AnalyzeCommand {
	return &AnalyzeCommand{}
}

// CreateCobraCommand creates the cobra command for CK analysis
func (a *AnalyzeCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Compute CK metrics for classes",
		Long: `Compute the six Chidamber & Kemerer metrics for every class found
in the given paths.

Inputs can be Python source files, directories, or pre-extracted class
model files (.json). Classes from all inputs are analyzed as a single
system so cross-file inheritance and coupling are resolved.

Examples:
  ckscan analyze src/                     # Analyze all Python files in src/
  ckscan analyze --json src/              # Output as JSON
  ckscan analyze -o report.csv --csv src/ # Write a CSV report file
  ckscan analyze --wmc 30 --cbo 10 src/   # Custom thresholds
  ckscan analyze --sort risk src/         # Sort by risk level
  ckscan analyze model.json               # Analyze a pre-extracted model

Sort options:
  name      - Sort alphabetically by class name (default)
  risk      - Sort by risk level (high to low)
  findings  - Sort by number of exceeded thresholds`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runAnalyze,
	}

	// Threshold configuration
	cmd.Flags().IntVar(&a.wmcThreshold, "wmc", domain.DefaultWMCThreshold, "WMC threshold")
	cmd.Flags().IntVar(&a.ditThreshold, "dit", domain.DefaultDITThreshold, "DIT threshold")
	cmd.Flags().IntVar(&a.nocThreshold, "noc", domain.DefaultNOCThreshold, "NOC threshold")
	cmd.Flags().IntVar(&a.cboThreshold, "cbo", domain.DefaultCBOThreshold, "CBO threshold")
	cmd.Flags().IntVar(&a.rfcThreshold, "rfc", domain.DefaultRFCThreshold, "RFC threshold")
	cmd.Flags().IntVar(&a.lcomThreshold, "lcom", domain.DefaultLCOMThreshold, "LCOM threshold")

	// Analysis scope options
	cmd.Flags().BoolVar(&a.countInheritance, "count-inheritance", false, "Count inheritance relationships toward CBO")
	cmd.Flags().StringVar(&a.sortBy, "sort", "name", "Sort criteria (name|risk|findings)")

	// Output options
	cmd.Flags().BoolVar(&a.json, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&a.csv, "csv", false, "Output as CSV")
	cmd.Flags().BoolVar(&a.yaml, "yaml", false, "Output as YAML")
	cmd.Flags().StringVarP(&a.outputPath, "output", "o", "", "Write report to file instead of stdout")
	cmd.Flags().BoolVar(&a.showDetails, "details", false, "Show per-class metric details")

	// File selection options
	cmd.Flags().BoolVar(&a.recursive, "recursive", true, "Recursively analyze subdirectories")
	cmd.Flags().StringSliceVar(&a.includePatterns, "include", []string{}, "Include file patterns")
	cmd.Flags().StringSliceVar(&a.excludePatterns, "exclude", []string{}, "Exclude file patterns")

	// Configuration
	cmd.Flags().StringVarP(&a.configPath, "config", "c", "", "Configuration file path")

	return cmd
}

// runAnalyze executes the analyze command
func (a *AnalyzeCommand) runAnalyze(cmd *cobra.Command, args []string) error {
	request := a.buildRequest(cmd, args)

	if err := validateSortCriteria(request.SortBy); err != nil {
		return fmt.Errorf("invalid sort criteria: %w", err)
	}

	ckService := service.NewCKService()
	if service.IsInteractiveEnvironment() {
		pm := service.NewProgressManager()
		pm.SetWriter(os.Stderr)
		ckService.SetProgressManager(pm)
		defer pm.Close()
	}

	useCase, err := app.NewCKUseCaseBuilder().
		WithService(ckService).
		WithFileReader(service.NewFileReader()).
		WithFormatter(service.NewCKFormatter()).
		WithConfigLoader(service.NewCKConfigurationLoader()).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create CK use case: %w", err)
	}

	if err := useCase.Execute(cmd.Context(), *request); err != nil {
		return fmt.Errorf("CK analysis failed: %w", err)
	}

	return nil
}

// buildRequest assembles the request from flags and arguments. Only flags the
// user actually set are carried into the request, so configuration file values
// survive the merge for everything left at its default.
func (a *AnalyzeCommand) buildRequest(cmd *cobra.Command, args []string) *domain.CKRequest {
	outputFormat := domain.OutputFormatText
	switch {
	case a.json:
		outputFormat = domain.OutputFormatJSON
	case a.csv:
		outputFormat = domain.OutputFormatCSV
	case a.yaml:
		outputFormat = domain.OutputFormatYAML
	}

	request := &domain.CKRequest{
		Paths:           args,
		OutputFormat:    outputFormat,
		OutputWriter:    cmd.OutOrStdout(),
		OutputPath:      a.outputPath,
		ShowDetails:     a.showDetails,
		SortBy:          domain.SortCriteria(a.sortBy),
		Thresholds:      map[domain.MetricKind]int{},
		ConfigPath:      a.configPath,
		IncludePatterns: a.includePatterns,
		ExcludePatterns: a.excludePatterns,
	}

	thresholdFlags := map[string]struct {
		kind  domain.MetricKind
		value int
	}{
		"wmc":  {domain.MetricWMC, a.wmcThreshold},
		"dit":  {domain.MetricDIT, a.ditThreshold},
		"noc":  {domain.MetricNOC, a.nocThreshold},
		"cbo":  {domain.MetricCBO, a.cboThreshold},
		"rfc":  {domain.MetricRFC, a.rfcThreshold},
		"lcom": {domain.MetricLCOM, a.lcomThreshold},
	}
	explicit := GetExplicitFlags(cmd)
	for name, flag := range thresholdFlags {
		if explicit[name] {
			request.Thresholds[flag.kind] = flag.value
		}
	}

	if explicit["count-inheritance"] {
		request.CountInheritanceCoupling = domain.BoolPtr(a.countInheritance)
	}
	if explicit["recursive"] {
		request.Recursive = domain.BoolPtr(a.recursive)
	}

	return request
}

func validateSortCriteria(sortBy domain.SortCriteria) error {
	switch sortBy {
	case domain.SortByName, domain.SortByRisk, domain.SortByFindings:
		return nil
	default:
		return fmt.Errorf("unsupported sort criteria '%s'. Valid options: name, risk, findings", sortBy)
	}
}

// NewAnalyzeCmd creates and returns the analyze cobra command
func NewAnalyzeCmd() *cobra.Command {
	analyzeCommand := NewAnalyzeCommand()
	return analyzeCommand.CreateCobraCommand()
}

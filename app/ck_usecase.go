package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/ckscan/domain"
	svc "github.com/ludo-technologies/ckscan/service"
)

// CKUseCase orchestrates the CK metrics analysis workflow
type CKUseCase struct {
	service      domain.CKService
	fileReader   domain.FileReader
	formatter    domain.CKOutputFormatter
	configLoader domain.CKConfigurationLoader
	output       domain.ReportWriter
}

// NewCKUseCase creates a new CK use case
func NewCKUseCase(
	service domain.CKService,
	fileReader domain.FileReader,
	formatter domain.CKOutputFormatter,
	configLoader domain.CKConfigurationLoader,
) *CKUseCase {
	return &CKUseCase{
		service:      service,
		fileReader:   fileReader,
		formatter:    formatter,
		configLoader: configLoader,
		output:       svc.NewFileOutputWriter(nil),
	}
}

// prepareAnalysis handles common preparation steps for analysis
func (uc *CKUseCase) prepareAnalysis(ctx context.Context, req domain.CKRequest) (domain.CKRequest, error) {
	if err := uc.validateRequest(req); err != nil {
		return req, domain.NewInvalidInputError("invalid request", err)
	}

	// Load configuration if specified
	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return req, domain.NewConfigError("failed to load configuration", err)
	}

	files, err := ResolveFilePaths(
		uc.fileReader,
		finalReq.Paths,
		domain.BoolValue(finalReq.Recursive, true),
		finalReq.IncludePatterns,
		finalReq.ExcludePatterns,
	)
	if err != nil {
		return req, domain.NewFileNotFoundError("failed to collect files", err)
	}

	if len(files) == 0 {
		return req, domain.NewInvalidInputError("no source files found in the specified paths", nil)
	}

	finalReq.Paths = files
	return finalReq, nil
}

// Execute performs the complete CK analysis workflow
func (uc *CKUseCase) Execute(ctx context.Context, req domain.CKRequest) error {
	finalReq, err := uc.prepareAnalysis(ctx, req)
	if err != nil {
		return err
	}

	response, err := uc.service.Analyze(ctx, finalReq)
	if err != nil {
		return domain.NewAnalysisError("CK analysis failed", err)
	}

	return uc.writeResponse(response, finalReq)
}

// AnalyzeAndReturn performs CK analysis and returns the response without formatting
func (uc *CKUseCase) AnalyzeAndReturn(ctx context.Context, req domain.CKRequest) (*domain.CKResponse, error) {
	finalReq, err := uc.prepareAnalysis(ctx, req)
	if err != nil {
		return nil, err
	}

	response, err := uc.service.Analyze(ctx, finalReq)
	if err != nil {
		return nil, domain.NewAnalysisError("CK analysis failed", err)
	}

	return response, nil
}

// AnalyzeFile analyzes a single file
func (uc *CKUseCase) AnalyzeFile(ctx context.Context, filePath string, req domain.CKRequest) error {
	exists, err := uc.fileReader.FileExists(filePath)
	if err != nil {
		return domain.NewFileNotFoundError(filePath, err)
	}
	if !exists {
		return domain.NewFileNotFoundError(filePath, fmt.Errorf("file does not exist"))
	}

	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return domain.NewConfigError("failed to load configuration", err)
	}

	response, err := uc.service.AnalyzeFile(ctx, filePath, finalReq)
	if err != nil {
		return domain.NewAnalysisError("file analysis failed", err)
	}

	return uc.writeResponse(response, finalReq)
}

// writeResponse delegates output handling to the ReportWriter
func (uc *CKUseCase) writeResponse(response *domain.CKResponse, req domain.CKRequest) error {
	var out io.Writer
	if req.OutputPath == "" {
		out = req.OutputWriter
	}
	err := uc.output.Write(out, req.OutputPath, req.OutputFormat, func(w io.Writer) error {
		return uc.formatter.Write(response, req.OutputFormat, w)
	})
	if err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

// validatePaths validates input paths
func (uc *CKUseCase) validatePaths(req domain.CKRequest) error {
	if len(req.Paths) == 0 {
		return fmt.Errorf("no input paths specified")
	}
	return nil
}

// validateOutput validates output configuration
func (uc *CKUseCase) validateOutput(req domain.CKRequest) error {
	if req.OutputWriter == nil && req.OutputPath == "" {
		return fmt.Errorf("output writer or output path is required")
	}
	return nil
}

// validateThresholds validates threshold parameters
func (uc *CKUseCase) validateThresholds(req domain.CKRequest) error {
	for kind, bound := range req.Thresholds {
		if bound < 0 {
			return fmt.Errorf("%s threshold cannot be negative", kind)
		}
	}
	return nil
}

// validateFormats validates output format and sort criteria
func (uc *CKUseCase) validateFormats(req domain.CKRequest) error {
	switch req.OutputFormat {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML, domain.OutputFormatCSV:
		// Valid formats
	default:
		return fmt.Errorf("unsupported output format: %s", req.OutputFormat)
	}

	switch req.SortBy {
	case domain.SortByName, domain.SortByRisk, domain.SortByFindings:
		// Valid criteria
	default:
		return fmt.Errorf("unsupported sort criteria: %s", req.SortBy)
	}

	return nil
}

// validateRequest validates the CK request
func (uc *CKUseCase) validateRequest(req domain.CKRequest) error {
	validators := []func(domain.CKRequest) error{
		uc.validatePaths,
		uc.validateOutput,
		uc.validateThresholds,
		uc.validateFormats,
	}

	for _, validator := range validators {
		if err := validator(req); err != nil {
			return err
		}
	}

	return nil
}

// loadAndMergeConfig loads configuration from file and merges with request
func (uc *CKUseCase) loadAndMergeConfig(req domain.CKRequest) (domain.CKRequest, error) {
	if uc.configLoader == nil {
		return req, nil
	}

	var configReq *domain.CKRequest
	var err error

	if req.ConfigPath != "" {
		configReq, err = uc.configLoader.LoadConfig(req.ConfigPath)
		if err != nil {
			return req, fmt.Errorf("failed to load config from %s: %w", req.ConfigPath, err)
		}
	} else {
		configReq = uc.configLoader.LoadDefaultConfig()
	}

	if configReq != nil {
		// Merge config with request (request takes precedence)
		merged := uc.configLoader.MergeConfig(configReq, &req)
		return *merged, nil
	}

	return req, nil
}

// CKUseCaseBuilder provides a builder pattern for creating CKUseCase
type CKUseCaseBuilder struct {
	service      domain.CKService
	fileReader   domain.FileReader
	formatter    domain.CKOutputFormatter
	configLoader domain.CKConfigurationLoader
	output       domain.ReportWriter
}

// NewCKUseCaseBuilder creates a new builder
func NewCKUseCaseBuilder() *CKUseCaseBuilder {
	return &CKUseCaseBuilder{}
}

// WithService sets the CK service
func (b *CKUseCaseBuilder) WithService(service domain.CKService) *CKUseCaseBuilder {
	b.service = service
	return b
}

// WithFileReader sets the file reader
func (b *CKUseCaseBuilder) WithFileReader(fileReader domain.FileReader) *CKUseCaseBuilder {
	b.fileReader = fileReader
	return b
}

// WithFormatter sets the output formatter
func (b *CKUseCaseBuilder) WithFormatter(formatter domain.CKOutputFormatter) *CKUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *CKUseCaseBuilder) WithConfigLoader(configLoader domain.CKConfigurationLoader) *CKUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// WithOutputWriter sets the report writer
func (b *CKUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *CKUseCaseBuilder {
	b.output = output
	return b
}

// Build creates the CKUseCase with the configured dependencies
func (b *CKUseCaseBuilder) Build() (*CKUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("CK service is required")
	}
	if b.fileReader == nil {
		return nil, fmt.Errorf("file reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}

	uc := NewCKUseCase(
		b.service,
		b.fileReader,
		b.formatter,
		b.configLoader,
	)
	if b.output != nil {
		uc.output = b.output
	}
	return uc, nil
}

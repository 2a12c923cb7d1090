package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ludo-technologies/ckscan/domain"
	"github.com/ludo-technologies/ckscan/internal/analyzer"
	"github.com/ludo-technologies/ckscan/internal/model"
	"github.com/ludo-technologies/ckscan/internal/parser"
	"github.com/ludo-technologies/ckscan/internal/version"
)

// CKServiceImpl implements the CKService interface: it drives the whole
// pipeline from input files through the entity model, resolver, the six
// metric engines, and threshold evaluation.
type CKServiceImpl struct {
	extractor *parser.Extractor
	loader    *ModelLoader
	executor  domain.ParallelExecutor
	progress  domain.ProgressManager
}

// NewCKService creates a new CK service implementation
func NewCKService() *CKServiceImpl {
	return &CKServiceImpl{
		extractor: parser.NewExtractor(),
		loader:    NewModelLoader(),
		executor:  NewParallelExecutor(),
	}
}

// SetProgressManager injects a progress manager for per-file reporting
func (s *CKServiceImpl) SetProgressManager(progress domain.ProgressManager) {
	s.progress = progress
}

// Analyze performs CK analysis on multiple files
func (s *CKServiceImpl) Analyze(ctx context.Context, req domain.CKRequest) (*domain.CKResponse, error) {
	thresholds := req.Thresholds
	if len(thresholds) == 0 {
		thresholds = domain.DefaultThresholds()
	}

	raw, filesProcessed, warnings, fileErrors := s.collectRaw(ctx, req.Paths)

	entityModel, err := model.Build(&model.RawModel{Classes: raw})
	if err != nil {
		return nil, domain.NewAnalysisError("failed to build entity model", err)
	}

	resolution := analyzer.Resolve(entityModel)

	engineResults, err := s.runEngines(ctx, req, entityModel, resolution)
	if err != nil {
		return nil, err
	}

	classes := assembleClasses(entityModel, engineResults, thresholds)
	if len(classes) == 0 {
		warnings = append(warnings, "No classes found to analyze")
	}

	sortClasses(classes, req.SortBy, thresholds)
	findings := analyzer.EvaluateThresholds(classes, thresholds)

	return &domain.CKResponse{
		Classes:     classes,
		Findings:    findings,
		Summary:     buildSummary(classes, findings, filesProcessed),
		Config:      thresholds,
		Warnings:    warnings,
		Errors:      fileErrors,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}, nil
}

// AnalyzeFile analyzes a single file
func (s *CKServiceImpl) AnalyzeFile(ctx context.Context, filePath string, req domain.CKRequest) (*domain.CKResponse, error) {
	singleFileReq := req
	singleFileReq.Paths = []string{filePath}
	return s.Analyze(ctx, singleFileReq)
}

// collectRaw extracts raw class records from every input file. Python files
// go through the tree-sitter extractor; .json files are pre-extracted raw
// models from external language adapters. Per-file failures are recorded and
// never abort the remaining files.
func (s *CKServiceImpl) collectRaw(ctx context.Context, paths []string) ([]model.RawClass, int, []string, []string) {
	var raw []model.RawClass
	var warnings []string
	var fileErrors []string
	filesProcessed := 0

	if s.progress != nil {
		s.progress.Initialize(len(paths))
		s.progress.Start()
	}

	for i, filePath := range paths {
		select {
		case <-ctx.Done():
			fileErrors = append(fileErrors, fmt.Sprintf("analysis cancelled: %v", ctx.Err()))
			return raw, filesProcessed, warnings, fileErrors
		default:
		}

		classes, err := s.extractFile(ctx, filePath)
		if err != nil {
			fileErrors = append(fileErrors, fmt.Sprintf("[%s] %v", filePath, err))
			continue
		}
		if len(classes) == 0 {
			warnings = append(warnings, fmt.Sprintf("[%s] no classes found", filePath))
		}

		raw = append(raw, classes...)
		filesProcessed++

		if s.progress != nil {
			s.progress.Update(i+1, len(paths))
		}
	}

	if s.progress != nil {
		s.progress.Complete(len(fileErrors) == 0)
	}

	return raw, filesProcessed, warnings, fileErrors
}

func (s *CKServiceImpl) extractFile(ctx context.Context, filePath string) ([]model.RawClass, error) {
	if strings.EqualFold(filepath.Ext(filePath), ".json") {
		return s.loader.LoadFile(filePath)
	}

	reader := NewFileReader()
	source, err := reader.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return s.extractor.ExtractSource(ctx, filePath, source)
}

// runEngines executes the six metric engines concurrently, one task per
// engine. Every engine reads the same frozen model and resolution; each
// writes only its own result slot, so no locking is needed. Execute acts as
// the barrier before threshold evaluation.
func (s *CKServiceImpl) runEngines(ctx context.Context, req domain.CKRequest, m *model.Model, res *analyzer.Resolution) ([]*analyzer.EngineResult, error) {
	engines := analyzer.DefaultEngines(analyzer.EngineOptions{
		CountInheritanceCoupling: domain.BoolValue(req.CountInheritanceCoupling, false),
	})

	results := make([]*analyzer.EngineResult, len(engines))
	tasks := make([]domain.ExecutableTask, len(engines))
	for i, engine := range engines {
		i, engine := i, engine
		tasks[i] = NewSimpleTask(string(engine.Kind()), true, func(ctx context.Context) (interface{}, error) {
			result, err := analyzer.RunEngine(ctx, engine, m, res)
			if err != nil {
				return nil, err
			}
			results[i] = result
			return result, nil
		})
	}

	if err := s.executor.Execute(ctx, tasks); err != nil {
		return nil, domain.NewAnalysisError("metric computation failed", err)
	}
	return results, nil
}

// assembleClasses combines the per-engine results into per-class report
// entries, in the model's deterministic order
func assembleClasses(m *model.Model, results []*analyzer.EngineResult, thresholds map[domain.MetricKind]int) []domain.ClassMetrics {
	classes := make([]domain.ClassMetrics, 0, len(m.Classes()))

	for _, entity := range m.Classes() {
		entry := domain.ClassMetrics{
			Name:      entity.Name,
			FilePath:  entity.FilePath,
			StartLine: entity.StartLine,
			EndLine:   entity.EndLine,
			Values:    make(map[domain.MetricKind]int, len(results)),
		}

		for _, result := range results {
			if result == nil {
				continue
			}
			if err, failed := result.Errors[entity.Name]; failed {
				entry.Errors = append(entry.Errors, toClassError(err))
				continue
			}
			if value, ok := result.Values[entity.Name]; ok {
				entry.Values[result.Kind] = value
			}
		}

		entry.RiskLevel = analyzer.AssessRisk(entry.Values, thresholds)
		classes = append(classes, entry)
	}

	return classes
}

func toClassError(err error) domain.ClassError {
	var domainErr domain.DomainError
	if errors.As(err, &domainErr) {
		return domain.ClassError{Kind: domainErr.Code, Message: domainErr.Message}
	}
	return domain.ClassError{Kind: domain.ErrCodeAnalysisError, Message: err.Error()}
}

// sortClasses orders report entries. The default (name) keeps the model's
// lexicographic order so unchanged input yields identical reports; risk and
// findings sorts are stable on top of it.
func sortClasses(classes []domain.ClassMetrics, sortBy domain.SortCriteria, thresholds map[domain.MetricKind]int) {
	exceeded := func(class domain.ClassMetrics) int {
		count := 0
		for kind, value := range class.Values {
			if bound, ok := thresholds[kind]; ok && value > bound {
				count++
			}
		}
		return count
	}

	switch sortBy {
	case domain.SortByRisk:
		sort.SliceStable(classes, func(i, j int) bool {
			return riskRank(classes[i].RiskLevel) > riskRank(classes[j].RiskLevel)
		})
	case domain.SortByFindings:
		sort.SliceStable(classes, func(i, j int) bool {
			return exceeded(classes[i]) > exceeded(classes[j])
		})
	default:
		sort.SliceStable(classes, func(i, j int) bool {
			return classes[i].Name < classes[j].Name
		})
	}
}

func riskRank(level domain.RiskLevel) int {
	switch level {
	case domain.RiskLevelHigh:
		return 2
	case domain.RiskLevelMedium:
		return 1
	default:
		return 0
	}
}

func buildSummary(classes []domain.ClassMetrics, findings []domain.Finding, filesProcessed int) domain.CKSummary {
	summary := domain.CKSummary{
		TotalClasses:  len(classes),
		FilesAnalyzed: filesProcessed,
		TotalFindings: len(findings),
		AverageValues: make(map[domain.MetricKind]float64),
		MaxValues:     make(map[domain.MetricKind]int),
	}

	counts := make(map[domain.MetricKind]int)
	for _, class := range classes {
		switch class.RiskLevel {
		case domain.RiskLevelHigh:
			summary.HighRiskClasses++
		case domain.RiskLevelMedium:
			summary.MediumRiskClasses++
		default:
			summary.LowRiskClasses++
		}
		if len(class.Errors) > 0 {
			summary.ClassesInError++
		}

		for kind, value := range class.Values {
			counts[kind]++
			summary.AverageValues[kind] += float64(value)
			if value > summary.MaxValues[kind] {
				summary.MaxValues[kind] = value
			}
		}
	}

	for kind, total := range summary.AverageValues {
		if counts[kind] > 0 {
			summary.AverageValues[kind] = total / float64(counts[kind])
		}
	}

	return summary
}

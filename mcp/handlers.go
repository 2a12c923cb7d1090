package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ludo-technologies/ckscan/domain"
	"github.com/mark3labs/mcp-go/mcp"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

// HandleAnalyzeCKMetrics handles the analyze_ck_metrics tool
func (h *HandlerSet) HandleAnalyzeCKMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	req := h.buildRequest(path)

	if recursive, ok := args["recursive"].(bool); ok {
		req.Recursive = domain.BoolPtr(recursive)
	}
	if countInheritance, ok := args["count_inheritance"].(bool); ok {
		req.CountInheritanceCoupling = domain.BoolPtr(countInheritance)
	}
	if sortBy, ok := args["sort"].(string); ok {
		req.SortBy = domain.SortCriteria(sortBy)
	}

	response, err := h.analyze(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	outputMode := "summary"
	if om, ok := args["output_mode"].(string); ok {
		outputMode = om
	}

	var responseData interface{}
	switch outputMode {
	case "full":
		responseData = response
	default:
		responseData = map[string]interface{}{
			"summary":  response.Summary,
			"findings": response.Findings,
			"warnings": response.Warnings,
			"errors":   response.Errors,
		}
	}

	jsonData, err := json.Marshal(responseData)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleGetClassMetrics handles the get_class_metrics tool
func (h *HandlerSet) HandleGetClassMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	className, ok := args["class"].(string)
	if !ok || className == "" {
		return mcp.NewToolResultError("class parameter is required and must be a string"), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	response, err := h.analyze(ctx, h.buildRequest(path))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	for _, class := range response.Classes {
		if class.Name != className {
			continue
		}
		jsonData, err := json.Marshal(class)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	}

	return mcp.NewToolResultError(fmt.Sprintf("class not found: %s", className)), nil
}

// buildRequest seeds a request with the server's configuration snapshot
func (h *HandlerSet) buildRequest(path string) domain.CKRequest {
	req := domain.CKRequest{
		Paths:        []string{path},
		OutputFormat: domain.OutputFormatJSON,
		OutputWriter: os.Stdout,
		SortBy:       domain.SortByName,
		ConfigPath:   h.deps.ConfigPath(),
	}

	if cfg := h.deps.Config(); cfg != nil {
		req.Thresholds = cfg.ThresholdMap()
		req.CountInheritanceCoupling = domain.BoolPtr(cfg.Analysis.CountInheritanceCoupling)
		req.Recursive = domain.BoolPtr(cfg.Analysis.Recursive)
		req.IncludePatterns = cfg.Analysis.IncludePatterns
		req.ExcludePatterns = cfg.Analysis.ExcludePatterns
	}

	return req
}

// analyze runs the CK use case and returns the raw response
func (h *HandlerSet) analyze(ctx context.Context, req domain.CKRequest) (*domain.CKResponse, error) {
	useCase, err := h.deps.BuildCKUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer: %w", err)
	}
	return useCase.AnalyzeAndReturn(ctx, req)
}

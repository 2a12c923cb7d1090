package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/ckscan/mcp"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.py")
	source := `
class Engine:
    def start(self):
        pass

class Car(Engine):
    def drive(self):
        self.start()
        Fuel.consume(1)
`
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func callTool(
	t *testing.T,
	handler func(*mcp.HandlerSet, context.Context, mcplib.CallToolRequest) (*mcplib.CallToolResult, error),
	arguments interface{},
) *mcplib.CallToolResult {
	t.Helper()

	h := mcp.NewHandlerSet(nil)
	req := mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{
			Arguments: arguments,
		},
	}

	res, err := handler(h, context.Background(), req)
	require.NoError(t, err)
	return res
}

func resultText(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := mcplib.AsTextContent(res.Content[0])
	require.True(t, ok)
	return text.Text
}

func TestHandleAnalyzeCKMetrics(t *testing.T) {
	path := writeSample(t)

	res := callTool(t, (*mcp.HandlerSet).HandleAnalyzeCKMetrics, map[string]interface{}{
		"path": path,
	})
	require.False(t, res.IsError)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &decoded))
	assert.Contains(t, decoded, "summary")
}

func TestHandleAnalyzeCKMetricsFull(t *testing.T) {
	path := writeSample(t)

	res := callTool(t, (*mcp.HandlerSet).HandleAnalyzeCKMetrics, map[string]interface{}{
		"path":        path,
		"output_mode": "full",
	})
	require.False(t, res.IsError)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &decoded))
	assert.Contains(t, decoded, "classes")
}

func TestHandleAnalyzeCKMetricsMissingPath(t *testing.T) {
	res := callTool(t, (*mcp.HandlerSet).HandleAnalyzeCKMetrics, map[string]interface{}{})
	assert.True(t, res.IsError)
}

func TestHandleAnalyzeCKMetricsBadPath(t *testing.T) {
	res := callTool(t, (*mcp.HandlerSet).HandleAnalyzeCKMetrics, map[string]interface{}{
		"path": "/nonexistent/code",
	})
	assert.True(t, res.IsError)
}

func TestHandleGetClassMetrics(t *testing.T) {
	path := writeSample(t)

	res := callTool(t, (*mcp.HandlerSet).HandleGetClassMetrics, map[string]interface{}{
		"path":  path,
		"class": "Car",
	})
	require.False(t, res.IsError)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &decoded))
	assert.Equal(t, "Car", decoded["name"])
}

func TestHandleGetClassMetricsUnknownClass(t *testing.T) {
	path := writeSample(t)

	res := callTool(t, (*mcp.HandlerSet).HandleGetClassMetrics, map[string]interface{}{
		"path":  path,
		"class": "Spaceship",
	})
	assert.True(t, res.IsError)
}

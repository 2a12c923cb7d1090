package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/ckscan/domain"
	"github.com/ludo-technologies/ckscan/service"
)

func newUseCase(t *testing.T) *CKUseCase {
	t.Helper()
	uc, err := NewCKUseCaseBuilder().
		WithService(service.NewCKService()).
		WithFileReader(service.NewFileReader()).
		WithFormatter(service.NewCKFormatter()).
		Build()
	require.NoError(t, err)
	return uc
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestUseCaseBuilderRequiresDependencies(t *testing.T) {
	_, err := NewCKUseCaseBuilder().Build()
	assert.Error(t, err)

	_, err = NewCKUseCaseBuilder().
		WithService(service.NewCKService()).
		Build()
	assert.Error(t, err)
}

func TestUseCaseValidation(t *testing.T) {
	uc := newUseCase(t)
	var out bytes.Buffer

	tests := []struct {
		name string
		req  domain.CKRequest
	}{
		{
			name: "no paths",
			req: domain.CKRequest{
				OutputFormat: domain.OutputFormatText,
				OutputWriter: &out,
				SortBy:       domain.SortByName,
			},
		},
		{
			name: "no output destination",
			req: domain.CKRequest{
				Paths:        []string{"src/"},
				OutputFormat: domain.OutputFormatText,
				SortBy:       domain.SortByName,
			},
		},
		{
			name: "bad format",
			req: domain.CKRequest{
				Paths:        []string{"src/"},
				OutputFormat: domain.OutputFormat("pdf"),
				OutputWriter: &out,
				SortBy:       domain.SortByName,
			},
		},
		{
			name: "bad sort",
			req: domain.CKRequest{
				Paths:        []string{"src/"},
				OutputFormat: domain.OutputFormatText,
				OutputWriter: &out,
				SortBy:       domain.SortCriteria("size"),
			},
		},
		{
			name: "negative threshold",
			req: domain.CKRequest{
				Paths:        []string{"src/"},
				OutputFormat: domain.OutputFormatText,
				OutputWriter: &out,
				SortBy:       domain.SortByName,
				Thresholds:   map[domain.MetricKind]int{domain.MetricWMC: -1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := uc.Execute(context.Background(), tt.req)
			assert.Error(t, err)
		})
	}
}

func TestUseCaseExecute(t *testing.T) {
	path := writeSource(t, "sample.py", `
class Greeter:
    def greet(self):
        pass
`)

	uc := newUseCase(t)
	var out bytes.Buffer

	err := uc.Execute(context.Background(), domain.CKRequest{
		Paths:        []string{path},
		OutputFormat: domain.OutputFormatJSON,
		OutputWriter: &out,
		SortBy:       domain.SortByName,
	})
	require.NoError(t, err)

	var response domain.CKResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &response))
	require.Len(t, response.Classes, 1)
	assert.Equal(t, "Greeter", response.Classes[0].Name)
}

func TestUseCaseExecuteDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.py"), []byte("class A:\n    pass\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.py"), []byte("class B(A):\n    pass\n"), 0644))

	uc := newUseCase(t)
	response, err := uc.AnalyzeAndReturn(context.Background(), domain.CKRequest{
		Paths:        []string{dir},
		OutputFormat: domain.OutputFormatJSON,
		OutputWriter: os.Stdout,
		SortBy:       domain.SortByName,
	})
	require.NoError(t, err)

	require.Len(t, response.Classes, 2)
	assert.Equal(t, "A", response.Classes[0].Name)
	assert.Equal(t, 1, response.Classes[1].Values[domain.MetricDIT], "cross-file inheritance resolves")
}

func TestUseCaseNoFilesFound(t *testing.T) {
	uc := newUseCase(t)
	var out bytes.Buffer

	err := uc.Execute(context.Background(), domain.CKRequest{
		Paths:        []string{t.TempDir()},
		OutputFormat: domain.OutputFormatText,
		OutputWriter: &out,
		SortBy:       domain.SortByName,
	})
	assert.Error(t, err)
}

func TestUseCaseAnalyzeFileMissing(t *testing.T) {
	uc := newUseCase(t)
	var out bytes.Buffer

	err := uc.AnalyzeFile(context.Background(), "/nonexistent/file.py", domain.CKRequest{
		OutputFormat: domain.OutputFormatText,
		OutputWriter: &out,
		SortBy:       domain.SortByName,
	})
	assert.Error(t, err)
}

func TestResolveFilePaths(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "only.py")
	require.NoError(t, os.WriteFile(file, []byte("class X:\n    pass\n"), 0644))

	reader := service.NewFileReader()

	// a list of plain files passes through untouched
	files, err := ResolveFilePaths(reader, []string{file}, true, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{file}, files)

	// a directory is expanded
	files, err = ResolveFilePaths(reader, []string{dir}, true, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{file}, files)
}

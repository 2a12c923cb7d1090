package service

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ludo-technologies/ckscan/domain"
)

// FileReaderImpl implements the FileReader interface
type FileReaderImpl struct{}

// NewFileReader creates a new file reader service
func NewFileReader() *FileReaderImpl {
	return &FileReaderImpl{}
}

// CollectSourceFiles recursively finds analyzable files in the given paths.
// Python sources and pre-extracted .json model documents both qualify.
func (f *FileReaderImpl) CollectSourceFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if info.IsDir() {
			dirFiles, err := f.collectFromDirectory(path, recursive, includePatterns, excludePatterns)
			if err != nil {
				return nil, err
			}
			files = append(files, dirFiles...)
		} else if f.IsValidSourceFile(path) && f.shouldIncludeFile(path, path, nil, excludePatterns) {
			// Explicitly listed files bypass the include patterns; excludes
			// still apply
			files = append(files, path)
		}
	}

	return files, nil
}

// ReadFile reads the content of a file
func (f *FileReaderImpl) ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	return content, nil
}

// IsValidSourceFile checks if a file can feed the analyzer
func (f *FileReaderImpl) IsValidSourceFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py", ".pyi", ".json":
		return true
	}
	return false
}

// FileExists checks if a file exists
func (f *FileReaderImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

func (f *FileReaderImpl) collectFromDirectory(dirPath string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Unreadable entries are skipped, the rest of the tree continues
			return nil
		}

		if info.IsDir() {
			if !recursive && path != dirPath {
				return filepath.SkipDir
			}
			if isHiddenDir(info.Name()) && path != dirPath {
				return filepath.SkipDir
			}
			return nil
		}

		if !f.IsValidSourceFile(path) {
			return nil
		}

		rel, relErr := filepath.Rel(dirPath, path)
		if relErr != nil {
			rel = path
		}
		if f.shouldIncludeFile(path, rel, includePatterns, excludePatterns) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// shouldIncludeFile applies doublestar glob patterns. Patterns match against
// the path relative to the walked directory and against the base name, so
// both "**/*.py" and "test_*.py" behave as expected.
func (f *FileReaderImpl) shouldIncludeFile(path, rel string, includePatterns, excludePatterns []string) bool {
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)

	for _, pattern := range excludePatterns {
		if matchesPattern(pattern, rel, base) {
			return false
		}
	}

	if len(includePatterns) == 0 {
		return true
	}
	for _, pattern := range includePatterns {
		if matchesPattern(pattern, rel, base) {
			return true
		}
	}
	return false
}

func matchesPattern(pattern, rel, base string) bool {
	if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
		return true
	}
	if ok, err := doublestar.Match(pattern, base); err == nil && ok {
		return true
	}
	return false
}

func isHiddenDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "__pycache__" || name == "node_modules"
}

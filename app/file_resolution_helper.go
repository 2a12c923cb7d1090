package app

import "github.com/ludo-technologies/ckscan/domain"

// ResolveFilePaths resolves input paths into a concrete file list.
// If all paths are already files (not directories), returns them directly.
// Otherwise, collects source files from the provided paths using the
// specified filters.
func ResolveFilePaths(
	fileReader domain.FileReader,
	paths []string,
	recursive bool,
	includePatterns []string,
	excludePatterns []string,
) ([]string, error) {
	// Check if all paths are already files (not directories)
	allFiles := true
	for _, path := range paths {
		// FileExists returns true only for files, not directories
		exists, err := fileReader.FileExists(path)
		if err != nil || !exists {
			allFiles = false
			break
		}
	}

	// If all paths are already files, no need to collect again
	if allFiles {
		return paths, nil
	}

	files, err := fileReader.CollectSourceFiles(
		paths,
		recursive,
		includePatterns,
		excludePatterns,
	)
	if err != nil {
		return nil, err
	}

	return files, nil
}

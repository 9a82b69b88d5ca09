package app

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// FileHelper provides file operation utilities
type FileHelper struct{}

// NewFileHelper creates a new FileHelper
func NewFileHelper() *FileHelper {
	return &FileHelper{}
}

// CollectPythonFiles collects Python files from paths. Directories are
// walked honoring exclude patterns and any .gitignore at the directory
// root.
func (h *FileHelper) CollectPythonFiles(paths []string, recursive bool, excludePatterns []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if h.isPythonFile(path) && !h.isExcluded(path, excludePatterns) {
				files = append(files, path)
			}
			continue
		}

		ignore := loadGitignore(path)

		if recursive {
			err = filepath.Walk(path, func(filePath string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}

				rel, relErr := filepath.Rel(path, filePath)
				if relErr != nil {
					rel = filePath
				}

				// Skip excluded directories early
				if info.IsDir() {
					dirName := filepath.Base(filePath)
					for _, pattern := range excludePatterns {
						if pattern == dirName {
							return filepath.SkipDir
						}
						if matched, _ := filepath.Match(pattern, dirName); matched {
							return filepath.SkipDir
						}
					}
					if ignore != nil && rel != "." && ignore.MatchesPath(rel) {
						return filepath.SkipDir
					}
					return nil
				}

				if ignore != nil && ignore.MatchesPath(rel) {
					return nil
				}

				if h.isPythonFile(filePath) && !h.isExcluded(filePath, excludePatterns) {
					files = append(files, filePath)
				}

				return nil
			})
		} else {
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, err
			}

			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				filePath := filepath.Join(path, entry.Name())
				if ignore != nil && ignore.MatchesPath(entry.Name()) {
					continue
				}
				if h.isPythonFile(filePath) && !h.isExcluded(filePath, excludePatterns) {
					files = append(files, filePath)
				}
			}
		}

		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// IsValidPythonFile checks if a file is a Python source file
func (h *FileHelper) IsValidPythonFile(path string) bool {
	return h.isPythonFile(path)
}

// FileExists checks if a file exists
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// ReadFile reads file content
func (h *FileHelper) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// FileSize returns the size of a file in bytes
func (h *FileHelper) FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (h *FileHelper) isPythonFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".py" || ext == ".pyw"
}

// isExcluded checks if a path matches any exclude pattern
func (h *FileHelper) isExcluded(path string, excludePatterns []string) bool {
	for _, pattern := range excludePatterns {
		if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
			return true
		}
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

// loadGitignore compiles the .gitignore at root, if any
func loadGitignore(root string) *gitignore.GitIgnore {
	ignoreFile := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(ignoreFile); err != nil {
		return nil
	}
	ignore, err := gitignore.CompileIgnoreFile(ignoreFile)
	if err != nil {
		return nil
	}
	return ignore
}

// ResolveFilePaths resolves file paths, returning existing files directly
// or collecting files from directories
func ResolveFilePaths(fileHelper *FileHelper, paths []string, recursive bool, excludePatterns []string) ([]string, error) {
	allFiles := true
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			allFiles = false
			break
		}
	}

	if allFiles {
		var files []string
		for _, path := range paths {
			if fileHelper.IsValidPythonFile(path) {
				files = append(files, path)
			}
		}
		return files, nil
	}

	return fileHelper.CollectPythonFiles(paths, recursive, excludePatterns)
}

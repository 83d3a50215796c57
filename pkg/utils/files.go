package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// SourceExtensions lists the file extensions treated as JavaScript/TypeScript sources
var SourceExtensions = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts"}

// IsSourceFile checks if a file is a JavaScript or TypeScript source file
func IsSourceFile(filename string) bool {
	ext := filepath.Ext(filename)
	if ext == "" {
		return false
	}
	for _, candidate := range SourceExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// FindSourceFiles recursively finds all source files in a directory
func FindSourceFiles(root string) ([]string, error) {
	var sourceFiles []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip dependency and hidden directories (but not the root directory)
		if info.IsDir() && path != root {
			name := filepath.Base(path)
			if name == "node_modules" || name == "vendor" || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.IsDir() && IsSourceFile(filepath.Base(path)) {
			sourceFiles = append(sourceFiles, path)
		}

		return nil
	})

	return sourceFiles, err
}

// IsDirectory checks if the given path is a directory
func IsDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

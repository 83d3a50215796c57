package utils

import (
	"os"
	"path/filepath"
)

// maxLookupDepth bounds the upward directory walk
const maxLookupDepth = 64

// FindUp walks up from the directory of filePath and returns the first existing
// file whose name is one of names. Names are tried in order within each directory.
// It returns an empty string when nothing is found.
func FindUp(filePath string, names ...string) string {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return ""
	}

	dir := absPath
	if info, err := os.Stat(absPath); err != nil || !info.IsDir() {
		dir = filepath.Dir(absPath)
	}

	for i := 0; i < maxLookupDepth; i++ {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// GetProjectRoot returns the directory of the nearest package.json above filePath
func GetProjectRoot(filePath string) string {
	manifest := FindUp(filePath, "package.json")
	if manifest == "" {
		return ""
	}
	return filepath.Dir(manifest)
}

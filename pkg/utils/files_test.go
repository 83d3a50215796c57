package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsSourceFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected bool
	}{
		{
			name:     "typescript file",
			filename: "index.ts",
			expected: true,
		},
		{
			name:     "tsx file with path",
			filename: "src/components/button.tsx",
			expected: true,
		},
		{
			name:     "javascript module",
			filename: "rollup.config.mjs",
			expected: true,
		},
		{
			name:     "commonjs file",
			filename: "server.cjs",
			expected: true,
		},
		{
			name:     "declaration file should be included",
			filename: "types/global.d.ts",
			expected: true,
		},
		{
			name:     "test file should be included",
			filename: "utils.test.ts",
			expected: true,
		},
		{
			name:     "stylesheet",
			filename: "styles.css",
			expected: false,
		},
		{
			name:     "file with .ts in middle",
			filename: "file.ts.txt",
			expected: false,
		},
		{
			name:     "empty string",
			filename: "",
			expected: false,
		},
		{
			name:     "no extension",
			filename: "Makefile",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			result := IsSourceFile(tt.filename)
			req.Equal(tt.expected, result, "IsSourceFile(%q) = %v, want %v", tt.filename, result, tt.expected)
		})
	}
}

func TestIsDirectory(t *testing.T) {
	req := require.New(t)
	tempDir := t.TempDir()

	tempFile := filepath.Join(tempDir, "test.txt")
	err := os.WriteFile(tempFile, []byte("test"), 0644)
	req.NoError(err, "Failed to create temp file: %v", err)

	tests := []struct {
		name      string
		path      string
		expected  bool
		expectErr bool
	}{
		{
			name:      "existing directory",
			path:      tempDir,
			expected:  true,
			expectErr: false,
		},
		{
			name:      "existing file",
			path:      tempFile,
			expected:  false,
			expectErr: false,
		},
		{
			name:      "non-existent path",
			path:      "/non/existent/path",
			expected:  false,
			expectErr: true,
		},
		{
			name:      "current directory",
			path:      ".",
			expected:  true,
			expectErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			result, err := IsDirectory(tt.path)

			if tt.expectErr {
				req.Error(err, "IsDirectory(%q) expected error, got nil", tt.path)
			} else {
				req.NoError(err, "IsDirectory(%q) unexpected error: %v", tt.path, err)
				req.Equal(tt.expected, result, "IsDirectory(%q) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestFindSourceFiles(t *testing.T) {
	req := require.New(t)
	tempDir := t.TempDir()

	dirs := []string{
		"src/components",
		"src/utils",
		"node_modules/react",
		"vendor/lib",
		".git",
		".next",
	}

	for _, dir := range dirs {
		err := os.MkdirAll(filepath.Join(tempDir, dir), 0755)
		req.NoError(err, "Failed to create directory %s: %v", dir, err)
	}

	files := map[string]string{
		"index.ts":                    "export {}",
		"src/components/button.tsx":   "export {}",
		"src/utils/date.js":           "export {}",
		"src/utils/date.test.js":      "export {}", // Should be included
		"node_modules/react/index.js": "export {}", // Should be excluded (dependency dir)
		"vendor/lib/lib.js":           "export {}", // Should be excluded (vendor dir)
		".git/config":                 "config",    // Should be excluded (hidden dir)
		".next/server.js":             "export {}", // Should be excluded (hidden dir)
		"README.md":                   "# README",  // Should be excluded (not a source file)
		"src/styles.css":              "body {}",   // Should be excluded (not a source file)
	}

	for filePath, content := range files {
		fullPath := filepath.Join(tempDir, filePath)
		err := os.WriteFile(fullPath, []byte(content), 0644)
		req.NoError(err, "Failed to create file %s: %v", filePath, err)
	}

	err := os.Mkdir(filepath.Join(tempDir, "empty"), 0755)
	req.NoError(err, "Failed to create empty directory: %v", err)

	tests := []struct {
		name          string
		root          string
		expectedFiles []string
		expectErr     bool
	}{
		{
			name: "find source files in temp directory",
			root: tempDir,
			expectedFiles: []string{
				filepath.Join(tempDir, "index.ts"),
				filepath.Join(tempDir, "src/components/button.tsx"),
				filepath.Join(tempDir, "src/utils/date.js"),
				filepath.Join(tempDir, "src/utils/date.test.js"),
			},
		},
		{
			name:      "non-existent directory",
			root:      "/non/existent/path",
			expectErr: true,
		},
		{
			name: "empty directory",
			root: filepath.Join(tempDir, "empty"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			result, err := FindSourceFiles(tt.root)

			if tt.expectErr {
				req.Error(err, "FindSourceFiles(%q) expected error, got nil", tt.root)
				return
			}

			req.NoError(err, "FindSourceFiles(%q) unexpected error: %v", tt.root, err)
			req.ElementsMatch(tt.expectedFiles, result, "FindSourceFiles(%q) found files: %v", tt.root, result)
		})
	}
}

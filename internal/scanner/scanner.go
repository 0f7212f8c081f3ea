// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Config holds scanner configuration.
type Config struct {
	// BasePath is the base directory patterns are matched against
	// (defaults to current directory)
	BasePath string

	// IncludePatterns are glob patterns for files to include (e.g., "**/*.kt")
	IncludePatterns []string

	// ExcludePatterns are glob patterns for files to exclude (e.g., "**/build/**")
	ExcludePatterns []string
}

// Scanner discovers Kotlin sources in a project.
type Scanner struct {
	config Config
}

// New creates a new Scanner with the given configuration.
func New(config Config) *Scanner {
	if config.BasePath == "" {
		config.BasePath = "."
	}
	if len(config.IncludePatterns) == 0 {
		config.IncludePatterns = []string{"**/*.kt", "**/*.kts"}
	}

	return &Scanner{
		config: config,
	}
}

// Scan discovers all source files under the base path.
func (s *Scanner) Scan() ([]SourceFile, error) {
	basePath, err := filepath.Abs(s.config.BasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base path: %w", err)
	}
	return s.ScanPath(basePath)
}

// ScanPath scans a file or directory. A file named explicitly is read even
// when it falls outside the include patterns, as long as it is a Kotlin
// source.
func (s *Scanner) ScanPath(path string) ([]SourceFile, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("path does not exist: %s", absPath)
		}
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	if !info.IsDir() {
		if !IsSupportedFile(absPath) {
			return nil, nil
		}
		f, err := s.read(absPath, info)
		if err != nil {
			return nil, err
		}
		return []SourceFile{f}, nil
	}

	var files []SourceFile
	err = filepath.WalkDir(absPath, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip inaccessible paths
			return nil
		}

		if d.IsDir() {
			if s.shouldExcludeDir(s.relative(filePath)) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.shouldIncludeFile(filePath) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		f, err := s.read(filePath, info)
		if err != nil {
			// Skip files we can't read
			return nil
		}
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return files, nil
}

// ScanPaths scans multiple paths, dropping duplicates.
func (s *Scanner) ScanPaths(paths []string) ([]SourceFile, error) {
	var allFiles []SourceFile
	seen := make(map[string]bool)

	for _, path := range paths {
		files, err := s.ScanPath(path)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if !seen[f.Path] {
				seen[f.Path] = true
				allFiles = append(allFiles, f)
			}
		}
	}

	return allFiles, nil
}

func (s *Scanner) read(path string, info fs.FileInfo) (SourceFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return SourceFile{}, fmt.Errorf("failed to read file: %w", err)
	}
	return SourceFile{
		Path:    path,
		RelPath: s.relative(path),
		Kind:    DetectKind(path),
		Content: NormalizeNewlines(content),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// relative returns path relative to the base path with forward slashes.
func (s *Scanner) relative(path string) string {
	basePath, _ := filepath.Abs(s.config.BasePath)
	relPath, err := filepath.Rel(basePath, path)
	if err != nil {
		relPath = filepath.Base(path)
	}
	return filepath.ToSlash(relPath)
}

// shouldIncludeFile checks a file against the extension and the patterns.
func (s *Scanner) shouldIncludeFile(filePath string) bool {
	if !IsSupportedFile(filePath) {
		return false
	}

	relPath := s.relative(filePath)

	// Check exclude patterns first
	if s.matchesPatterns(relPath, s.config.ExcludePatterns) {
		return false
	}

	return s.matchesPatterns(relPath, s.config.IncludePatterns)
}

// Match reports whether a path relative to the base directory is one the
// scanner would read. The watcher uses it to filter events.
func (s *Scanner) Match(relPath string) bool {
	basePath, _ := filepath.Abs(s.config.BasePath)
	return s.shouldIncludeFile(filepath.Join(basePath, filepath.FromSlash(relPath)))
}

// Base returns the absolute base path.
func (s *Scanner) Base() string {
	basePath, _ := filepath.Abs(s.config.BasePath)
	return basePath
}

// ExcludesDir reports whether the walk skips a directory, given relative to
// the base path with forward slashes.
func (s *Scanner) ExcludesDir(relPath string) bool {
	return s.shouldExcludeDir(relPath)
}

// shouldExcludeDir checks if a directory should be excluded.
func (s *Scanner) shouldExcludeDir(relPath string) bool {
	if relPath == "" || relPath == "." {
		return false
	}

	for _, pattern := range s.config.ExcludePatterns {
		// "build" matches "build/**"
		dirPattern := strings.TrimSuffix(pattern, "/**")
		dirPattern = strings.TrimSuffix(dirPattern, "/*")

		if relPath == dirPattern {
			return true
		}

		// Also check if the pattern would match any file in this directory
		if matched, _ := doublestar.Match(pattern, relPath+"/x.kt"); matched {
			return true
		}
	}

	return false
}

// matchesPatterns checks if a path matches any of the given patterns.
func (s *Scanner) matchesPatterns(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			// Invalid pattern, skip
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// ValidatePatterns reports the first malformed glob pattern.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	return nil
}

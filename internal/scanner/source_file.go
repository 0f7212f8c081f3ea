// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package scanner discovers the Kotlin sources a run reads.
package scanner

import (
	"bytes"
	"path/filepath"
	"strings"
	"time"
)

// Kinds of source file.
const (
	KindKotlin = "kotlin"
	KindScript = "kotlin-script"
)

// SourceFile represents a discovered source file.
type SourceFile struct {
	// Path is the absolute path to the file
	Path string

	// RelPath is Path relative to the scan base, with forward slashes
	RelPath string

	// Kind is KindKotlin or KindScript
	Kind string

	// Content is the file content with line endings normalized to "\n"
	Content []byte

	// Size is the size on disk in bytes
	Size int64

	// ModTime is the last modification time
	ModTime time.Time
}

// Text returns the content as a string.
func (f SourceFile) Text() string {
	return string(f.Content)
}

// DisplayPath prefers the relative path.
func (f SourceFile) DisplayPath() string {
	if f.RelPath != "" {
		return f.RelPath
	}
	return f.Path
}

var kinds = map[string]string{
	".kt":  KindKotlin,
	".kts": KindScript,
}

// DetectKind returns the kind of a file path, or "" when it is not a
// Kotlin source.
func DetectKind(path string) string {
	return kinds[strings.ToLower(filepath.Ext(path))]
}

// SupportedExtensions returns the extensions the scanner reads.
func SupportedExtensions() []string {
	return []string{".kt", ".kts"}
}

// IsSupportedFile checks if a file path has a supported extension.
func IsSupportedFile(path string) bool {
	return DetectKind(path) != ""
}

// NormalizeNewlines rewrites "\r\n" and lone "\r" to "\n".
func NormalizeNewlines(b []byte) []byte {
	if !bytes.ContainsRune(b, '\r') {
		return b
	}
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
}

// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDir creates a temporary directory with test files.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()

	tmpDir := t.TempDir()
	for path, content := range files {
		fullPath := filepath.Join(tmpDir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644))
	}
	return tmpDir
}

func relPaths(files []SourceFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.RelPath
	}
	sort.Strings(out)
	return out
}

var projectFiles = map[string]string{
	"src/main/kotlin/Pet.kt":             "data class Pet(val id: Long)",
	"src/main/kotlin/Routes.kt":          "routing { }",
	"src/main/kotlin/PetTest.kt":         "class PetTest",
	"src/test/kotlin/RoutesSpec.kt":      "class RoutesSpec",
	"build/generated/Stub.kt":            "class Stub",
	"build.gradle.kts":                   "plugins { }",
	"README.md":                          "# pets",
	"src/main/resources/application.yml": "ktor: {}",
}

var defaultExcludes = []string{"**/build/**", "**/src/test/**", "**/*Test.kt"}

func TestNew_DefaultConfig(t *testing.T) {
	s := New(Config{})

	assert.Equal(t, ".", s.config.BasePath)
	assert.Equal(t, []string{"**/*.kt", "**/*.kts"}, s.config.IncludePatterns)
}

func TestScanner_Scan(t *testing.T) {
	dir := setupTestDir(t, projectFiles)

	files, err := New(Config{BasePath: dir, ExcludePatterns: defaultExcludes}).Scan()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"build.gradle.kts",
		"src/main/kotlin/Pet.kt",
		"src/main/kotlin/Routes.kt",
	}, relPaths(files))

	for _, f := range files {
		assert.True(t, filepath.IsAbs(f.Path))
		if f.RelPath == "build.gradle.kts" {
			assert.Equal(t, KindScript, f.Kind)
		} else {
			assert.Equal(t, KindKotlin, f.Kind)
		}
	}
}

func TestScanner_Scan_IncludePatterns(t *testing.T) {
	dir := setupTestDir(t, projectFiles)

	files, err := New(Config{
		BasePath:        dir,
		IncludePatterns: []string{"src/main/**/*.kt"},
		ExcludePatterns: defaultExcludes,
	}).Scan()
	require.NoError(t, err)

	assert.Equal(t, []string{"src/main/kotlin/Pet.kt", "src/main/kotlin/Routes.kt"}, relPaths(files))
}

func TestScanner_ScanPath_SingleFile(t *testing.T) {
	dir := setupTestDir(t, projectFiles)
	s := New(Config{BasePath: dir, ExcludePatterns: defaultExcludes})

	// named explicitly, so the exclude patterns do not apply
	files, err := s.ScanPath(filepath.Join(dir, "src/main/kotlin/PetTest.kt"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "class PetTest", files[0].Text())
	assert.Equal(t, int64(len("class PetTest")), files[0].Size)

	files, err = s.ScanPath(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScanner_ScanPath_Missing(t *testing.T) {
	_, err := New(Config{}).ScanPath(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path does not exist")
}

func TestScanner_ScanPaths_Deduplicates(t *testing.T) {
	dir := setupTestDir(t, projectFiles)
	s := New(Config{BasePath: dir, ExcludePatterns: defaultExcludes})

	files, err := s.ScanPaths([]string{
		filepath.Join(dir, "src"),
		filepath.Join(dir, "src/main/kotlin/Pet.kt"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/main/kotlin/Pet.kt", "src/main/kotlin/Routes.kt"}, relPaths(files))
}

func TestScanner_NormalizesLineEndings(t *testing.T) {
	dir := setupTestDir(t, map[string]string{"Pet.kt": "data class Pet(\r\n    val id: Long\r\n)\r"})

	files, err := New(Config{BasePath: dir}).Scan()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "data class Pet(\n    val id: Long\n)\n", files[0].Text())
}

func TestScanner_Match(t *testing.T) {
	s := New(Config{BasePath: t.TempDir(), ExcludePatterns: defaultExcludes})

	assert.True(t, s.Match("src/main/kotlin/Pet.kt"))
	assert.True(t, s.Match("settings.gradle.kts"))
	assert.False(t, s.Match("src/main/kotlin/PetTest.kt"))
	assert.False(t, s.Match("build/tmp/Pet.kt"))
	assert.False(t, s.Match("notes.txt"))
}

func TestShouldExcludeDir(t *testing.T) {
	s := New(Config{ExcludePatterns: append([]string{".git/**"}, defaultExcludes...)})

	assert.True(t, s.shouldExcludeDir(".git"))
	assert.True(t, s.shouldExcludeDir("build"))
	assert.True(t, s.shouldExcludeDir("app/build"))
	assert.True(t, s.shouldExcludeDir("src/test"))
	assert.False(t, s.shouldExcludeDir("src"))
	assert.False(t, s.shouldExcludeDir("."))
}

func TestValidatePatterns(t *testing.T) {
	assert.NoError(t, ValidatePatterns([]string{"**/*.kt", "src/{main,app}/**"}))
	assert.Error(t, ValidatePatterns([]string{"**/*.kt", "src/[main"}))
}

func TestScanner_Base(t *testing.T) {
	dir := t.TempDir()
	s := New(Config{BasePath: dir, ExcludePatterns: defaultExcludes})

	assert.Equal(t, dir, s.Base())
	assert.True(t, s.ExcludesDir("build"))
	assert.False(t, s.ExcludesDir("src/main"))
}

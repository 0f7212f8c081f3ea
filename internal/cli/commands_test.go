// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/ktbridge/internal/config"
	"github.com/api2spec/ktbridge/internal/openapi"
	"github.com/api2spec/ktbridge/internal/scanner"
)

func TestApplyIgnorePatterns(t *testing.T) {
	tests := []struct {
		name             string
		result           *openapi.DiffResult
		patterns         []string
		expectedPaths    int
		expectedSchemas  int
		expectedBreaking bool
	}{
		{
			name: "no patterns",
			result: &openapi.DiffResult{
				PathChanges: []openapi.PathChange{
					{Type: openapi.DiffTypeAdded, Path: "/api/users", Method: "GET"},
					{Type: openapi.DiffTypeRemoved, Path: "/api/posts", Method: "POST"},
				},
				SchemaChanges: []openapi.SchemaChange{
					{Type: openapi.DiffTypeAdded, Name: "User"},
				},
				HasBreakingChanges: true,
			},
			patterns:         []string{},
			expectedPaths:    2,
			expectedSchemas:  1,
			expectedBreaking: true,
		},
		{
			name: "filter by exact path",
			result: &openapi.DiffResult{
				PathChanges: []openapi.PathChange{
					{Type: openapi.DiffTypeAdded, Path: "/api/users", Method: "GET"},
					{Type: openapi.DiffTypeRemoved, Path: "/api/posts", Method: "POST"},
				},
				HasBreakingChanges: true,
			},
			patterns:         []string{"/api/users"},
			expectedPaths:    1,
			expectedSchemas:  0,
			expectedBreaking: true, // /api/posts is still removed, which is breaking
		},
		{
			name: "filter by prefix pattern",
			result: &openapi.DiffResult{
				PathChanges: []openapi.PathChange{
					{Type: openapi.DiffTypeAdded, Path: "/api/users", Method: "GET"},
					{Type: openapi.DiffTypeAdded, Path: "/api/posts", Method: "POST"},
					{Type: openapi.DiffTypeAdded, Path: "/health", Method: "GET"},
				},
			},
			patterns:        []string{"/api/*"},
			expectedPaths:   1,
			expectedSchemas: 0,
		},
		{
			name: "filter schema by name",
			result: &openapi.DiffResult{
				SchemaChanges: []openapi.SchemaChange{
					{Type: openapi.DiffTypeAdded, Name: "User"},
					{Type: openapi.DiffTypeAdded, Name: "Post"},
					{Type: openapi.DiffTypeRemoved, Name: "Comment"},
				},
			},
			patterns:         []string{"User", "Post"},
			expectedPaths:    0,
			expectedSchemas:  1,
			expectedBreaking: true,
		},
		{
			name: "breaking change removed when filtered",
			result: &openapi.DiffResult{
				PathChanges: []openapi.PathChange{
					{Type: openapi.DiffTypeRemoved, Path: "/api/deprecated", Method: "GET"},
				},
				HasBreakingChanges: true,
			},
			patterns:         []string{"/api/deprecated"},
			expectedPaths:    0,
			expectedSchemas:  0,
			expectedBreaking: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := applyIgnorePatterns(tt.result, tt.patterns)

			assert.Len(t, filtered.PathChanges, tt.expectedPaths)
			assert.Len(t, filtered.SchemaChanges, tt.expectedSchemas)
			assert.Equal(t, tt.expectedBreaking, filtered.HasBreakingChanges)
		})
	}
}

func TestMatchesAnyPattern(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		patterns []string
		expected bool
	}{
		{
			name:     "exact match",
			s:        "/api/users",
			patterns: []string{"/api/users"},
			expected: true,
		},
		{
			name:     "no match",
			s:        "/api/users",
			patterns: []string{"/api/posts"},
			expected: false,
		},
		{
			name:     "prefix wildcard",
			s:        "/api/users",
			patterns: []string{"/api/*"},
			expected: true,
		},
		{
			name:     "suffix wildcard",
			s:        "UserResponse",
			patterns: []string{"*Response"},
			expected: true,
		},
		{
			name:     "empty patterns",
			s:        "/api/users",
			patterns: []string{},
			expected: false,
		},
		{
			name:     "multiple patterns - one match",
			s:        "/api/users",
			patterns: []string{"/api/posts", "/api/users", "/api/comments"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matchesAnyPattern(tt.s, tt.patterns)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetChangeSymbol(t *testing.T) {
	tests := []struct {
		diffType openapi.DiffType
		expected string
	}{
		{openapi.DiffTypeAdded, "+"},
		{openapi.DiffTypeRemoved, "-"},
		{openapi.DiffTypeModified, "~"},
	}

	for _, tt := range tests {
		t.Run(string(tt.diffType), func(t *testing.T) {
			result := getChangeSymbol(tt.diffType)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGenerateFilteredSummary(t *testing.T) {
	tests := []struct {
		name     string
		result   *openapi.DiffResult
		contains []string
	}{
		{
			name: "empty result",
			result: &openapi.DiffResult{
				PathChanges:   []openapi.PathChange{},
				SchemaChanges: []openapi.SchemaChange{},
			},
			contains: []string{"No changes detected"},
		},
		{
			name: "paths added",
			result: &openapi.DiffResult{
				PathChanges: []openapi.PathChange{
					{Type: openapi.DiffTypeAdded, Path: "/api/users"},
					{Type: openapi.DiffTypeAdded, Path: "/api/posts"},
				},
			},
			contains: []string{"2 path(s) added"},
		},
		{
			name: "mixed changes",
			result: &openapi.DiffResult{
				PathChanges: []openapi.PathChange{
					{Type: openapi.DiffTypeAdded, Path: "/api/users"},
					{Type: openapi.DiffTypeRemoved, Path: "/api/posts"},
				},
				SchemaChanges: []openapi.SchemaChange{
					{Type: openapi.DiffTypeModified, Name: "User"},
				},
				HasBreakingChanges: true,
			},
			contains: []string{"1 path(s) added", "1 path(s) removed", "1 schema(s) modified", "BREAKING"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := generateFilteredSummary(tt.result)
			for _, expected := range tt.contains {
				assert.Contains(t, summary, expected)
			}
		})
	}
}

const petSource = `package com.example.pets

/**
 * A pet in the store.
 */
@Serializable
data class Pet(
    val id: Long,
    val name: String,
    val tag: String? = null
)
`

const routesSource = `package com.example.pets

fun Route.petRoutes() {
    route("/pets") {
        /**
         * List all pets
         * @response 200 A paged array of pets
         */
        get { }
        post("/{petId}") { }
    }
}
`

// writeProject creates a small Kotlin project and makes it the working
// directory.
func writeProject(t *testing.T) {
	t.Helper()
	chdir(t, t.TempDir())
	writeFile(t, "src/main/kotlin/Pet.kt", petSource)
	writeFile(t, "src/main/kotlin/Routes.kt", routesSource)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestGenerateCommand_DryRun(t *testing.T) {
	writeProject(t)

	out, err := executeCommand(rootCmd, "generate", "--dry-run", "src")
	require.NoError(t, err)

	assert.Contains(t, out, "Dry run mode")
	assert.Contains(t, out, "/pets")
	assert.Contains(t, out, "/pets/{petId}")
	assert.Contains(t, out, "get_pets")
	assert.NoFileExists(t, "openapi.yaml")
}

func TestGenerateCommand_WritesDocumentAndSchemas(t *testing.T) {
	writeProject(t)

	out, err := executeCommand(rootCmd, "generate", "--schemas-dir", "schemas", "src")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote openapi.yaml: 2 files")

	doc, err := openapi.ReadFile("openapi.yaml")
	require.NoError(t, err)
	assert.Contains(t, doc.Paths, "/pets")
	assert.Contains(t, doc.Paths, "/pets/{petId}")
	require.NotNil(t, doc.Components)
	pet, ok := doc.Components.Schemas["Pet"]
	require.True(t, ok)
	assert.Equal(t, []string{"id", "name", "tag"}, pet.Properties.Names())

	assert.FileExists(t, filepath.Join("schemas", "Pet.schema.json"))
}

func TestGenerateCommand_ReportsParseErrors(t *testing.T) {
	writeProject(t)
	writeFile(t, "src/main/kotlin/Broken.kt", "data class Broken(val id: Long")

	out, err := executeCommand(rootCmd, "generate", "src")
	require.NoError(t, err)
	// paths are shown relative to the scanned directory
	assert.Contains(t, out, "main/kotlin/Broken.kt:1:")
	assert.Contains(t, out, "1 failed")
}

func TestCheckCommand_InSync(t *testing.T) {
	writeProject(t)

	_, err := executeCommand(rootCmd, "generate", "src")
	require.NoError(t, err)

	out, err := executeCommand(rootCmd, "check", "--ci", "--crosscheck", "src")
	require.NoError(t, err)
	assert.Contains(t, out, "in sync")
}

func TestCheckCommand_Differs(t *testing.T) {
	writeProject(t)

	_, err := executeCommand(rootCmd, "generate", "src")
	require.NoError(t, err)

	writeFile(t, "src/main/kotlin/Orders.kt", `route("/orders") { get { } }`)

	out, err := executeCommand(rootCmd, "check", "--ci", "src")
	require.Error(t, err)
	assert.Equal(t, ExitCodeDifference, ExitCode(err))
	assert.Contains(t, out, "/orders")

	out, err = executeCommand(rootCmd, "check", "--ci", "--ignore", "/orders", "src")
	require.NoError(t, err)
	assert.Contains(t, out, "in sync")
}

func TestCheckCommand_NoDocument(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := executeCommand(rootCmd, "check")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))

	_, err = executeCommand(rootCmd, "check", "--ci")
	require.Error(t, err)
	assert.Equal(t, ExitCodeDifference, ExitCode(err))
}

func TestCheckCommand_BadConfig(t *testing.T) {
	chdir(t, t.TempDir())
	writeFile(t, "ktbridge.yaml", "generation:\n  mode: sideways\n")

	_, err := executeCommand(rootCmd, "check", "--ci")
	require.Error(t, err)
	assert.Equal(t, ExitCodeCheckError, ExitCode(err))
}

func TestDiffCommand_TwoFiles(t *testing.T) {
	chdir(t, t.TempDir())
	writeFile(t, "old.yaml", `openapi: "3.0.3"
info:
  title: Pets
  version: "1.0.0"
paths:
  /pets:
    get:
      operationId: get_pets
      responses:
        "200":
          description: OK
`)
	writeFile(t, "new.yaml", `openapi: "3.0.3"
info:
  title: Pets
  version: "1.0.0"
paths: {}
`)

	out, err := executeCommand(rootCmd, "diff", "old.yaml", "new.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "- GET /pets")

	_, err = executeCommand(rootCmd, "diff", "--exit-code", "old.yaml", "new.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitCodeDifference, ExitCode(err))

	out, err = executeCommand(rootCmd, "diff", "--exit-code", "old.yaml", "old.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "No differences found.")
}

func TestDiffCommand_TwoNonExistentFiles(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := executeCommand(rootCmd, "diff", "nonexistent1.yaml", "nonexistent2.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent1.yaml")
}

func TestPrintCommand_ExistingFile(t *testing.T) {
	chdir(t, t.TempDir())
	content := "openapi: \"3.0.3\"\npaths: {}\n"
	writeFile(t, "openapi.yaml", content)

	out, err := executeCommand(rootCmd, "print", "openapi.yaml")
	require.NoError(t, err)
	assert.Equal(t, content, out)
}

func TestPrintCommand_Tokens(t *testing.T) {
	chdir(t, t.TempDir())
	writeFile(t, "Pet.kt", "data class Pet(val id: Long)")

	out, err := executeCommand(rootCmd, "print", "tokens", "Pet.kt")
	require.NoError(t, err)
	assert.Contains(t, out, "1:1\tIdentifier \"data\"")
	assert.Contains(t, out, "1:6\t'class'")
	assert.Contains(t, out, "1:12\tIdentifier \"Pet\"")
	assert.NotContains(t, out, "Whitespace")

	out, err = executeCommand(rootCmd, "print", "tokens", "--all", "Pet.kt")
	require.NoError(t, err)
	assert.Contains(t, out, "Whitespace")
}

func TestPrintCommand_AST(t *testing.T) {
	chdir(t, t.TempDir())
	writeFile(t, "Pet.kt", "data class Pet(val id: Long)")
	writeFile(t, "Bad.kt", "data class Pet(val id: Long")

	out, err := executeCommand(rootCmd, "print", "ast", "Pet.kt")
	require.NoError(t, err)
	assert.Contains(t, out, "ClassDecl")

	_, err = executeCommand(rootCmd, "print", "ast", "Bad.kt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad.kt:1:")
}

func TestReverseCommand(t *testing.T) {
	chdir(t, t.TempDir())
	writeFile(t, "petstore.yaml", `openapi: "3.0.3"
info:
  title: Pets
  version: "1.0.0"
paths:
  /pets/{petId}:
    get:
      operationId: showPetById
      parameters:
        - name: petId
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          description: A pet
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Pet"
components:
  schemas:
    Pet:
      type: object
      required: [id]
      properties:
        id:
          type: integer
          format: int64
        pet_name:
          type: string
    Pets:
      type: array
      items:
        $ref: "#/components/schemas/Pet"
`)

	out, err := executeCommand(rootCmd, "reverse", "--validate", "petstore.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "repository: pets")
	assert.Contains(t, out, "showPetById")
	assert.Contains(t, out, "petName")
	assert.Contains(t, out, "Pets")

	_, err = executeCommand(rootCmd, "reverse", "-o", "out/pets.json", "petstore.yaml")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join("out", "pets.json"))
}

func TestReverseCommand_Invalid(t *testing.T) {
	chdir(t, t.TempDir())
	writeFile(t, "bad.yaml", "openapi: \"3.0.3\"\ninfo: {}\npaths: {}\n")

	_, err := executeCommand(rootCmd, "reverse", "--validate", "bad.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestAddWatchPath_Missing(t *testing.T) {
	_, err := addWatchPath(nil, config.Default(), filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot watch")
}

func TestMatchEvent(t *testing.T) {
	writeProject(t)
	base, err := filepath.Abs("src")
	require.NoError(t, err)
	s := scanner.New(scanner.Config{BasePath: base, ExcludePatterns: config.Default().Source.Exclude})

	abs, err := filepath.Abs("src/main/kotlin/Pet.kt")
	require.NoError(t, err)
	rel, ok := matchEvent([]*scanner.Scanner{s}, abs)
	assert.True(t, ok)
	assert.Equal(t, "main/kotlin/Pet.kt", rel)

	abs, err = filepath.Abs("src/main/kotlin/notes.txt")
	require.NoError(t, err)
	_, ok = matchEvent([]*scanner.Scanner{s}, abs)
	assert.False(t, ok)

	_, ok = matchEvent([]*scanner.Scanner{s}, "/elsewhere/Pet.kt")
	assert.False(t, ok)
}

func TestDebounceLoop(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changes := make(chan string)
	fired := make(chan []string, 4)
	done := make(chan struct{})
	go func() {
		debounceLoop(ctx, changes, 20*time.Millisecond, func(paths []string) { fired <- paths })
		close(done)
	}()

	changes <- "Pet.kt"
	changes <- "Routes.kt"
	changes <- "Pet.kt"
	assert.Equal(t, []string{"Pet.kt", "Routes.kt"}, <-fired)

	changes <- "Orders.kt"
	close(changes)
	assert.Equal(t, []string{"Orders.kt"}, <-fired)

	<-done
	assert.Empty(t, fired)
}

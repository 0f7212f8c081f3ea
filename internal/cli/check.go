// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/api2spec/ktbridge/internal/convert"
	"github.com/api2spec/ktbridge/internal/crosscheck"
	"github.com/api2spec/ktbridge/internal/openapi"
)

// Exit codes for check command
const (
	ExitCodeMatch      = 0 // Document matches implementation
	ExitCodeDifference = 1 // Document differs from implementation
	ExitCodeCheckError = 2 // Error during analysis
)

var (
	checkStrict     bool
	checkIgnore     []string
	checkCI         bool
	checkCrosscheck bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check if the OpenAPI document matches the Kotlin sources",
	Long: `Check validates that your OpenAPI document matches your current code.

This command generates a document from your Kotlin sources and compares it
with the existing document file. It's useful for CI pipelines to ensure the
document is always in sync with the implementation.

With --crosscheck every parsed file is also parsed by tree-sitter-kotlin and
the record and route counts of both parsers are compared.

Exit codes:
  0  Document matches implementation
  1  Document differs from implementation
  2  Error during analysis

Example:
  ktbridge check                      # Basic validation
  ktbridge check --ci                 # CI mode with appropriate exit codes
  ktbridge check --ignore '/admin*'   # Ignore matching paths and schemas
  ktbridge check --crosscheck         # Compare against tree-sitter-kotlin`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", true, "fail on any difference")
	checkCmd.Flags().StringSliceVar(&checkIgnore, "ignore", nil, "path or schema patterns to ignore in comparison")
	checkCmd.Flags().BoolVar(&checkCI, "ci", false, "CI mode: use exit codes for status")
	checkCmd.Flags().BoolVar(&checkCrosscheck, "crosscheck", false, "compare parser results against tree-sitter-kotlin")
}

// checkFailure wraps err with the check exit code in CI mode.
func checkFailure(code int, err error) error {
	if checkCI {
		return &ExitError{Code: code, Err: err}
	}
	return err
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return checkFailure(ExitCodeCheckError, err)
	}

	paths := args
	if len(paths) == 0 {
		paths = cfg.Source.Paths
	}

	if err := cfg.Validate(); err != nil {
		return checkFailure(ExitCodeCheckError, fmt.Errorf("invalid configuration: %w", err))
	}

	printVerbose("Check configuration:")
	printVerbose("  Strict mode: %t", checkStrict)
	printVerbose("  CI mode: %t", checkCI)
	if len(checkIgnore) > 0 {
		printVerbose("  Ignored patterns: %s", strings.Join(checkIgnore, ", "))
	}
	printVerbose("  Paths: %s", strings.Join(paths, ", "))
	printVerbose("  Document: %s", cfg.Output)

	if _, err := os.Stat(cfg.Output); os.IsNotExist(err) {
		printError("OpenAPI document not found: %s", cfg.Output)
		printInfo("Run 'ktbridge generate' first to create it")
		return checkFailure(ExitCodeDifference, fmt.Errorf("document not found: %s", cfg.Output))
	}

	existing, err := openapi.ReadFile(cfg.Output)
	if err != nil {
		return checkFailure(ExitCodeCheckError, fmt.Errorf("failed to read existing document: %w", err))
	}

	res, generated, err := buildDocument(cmd.Context(), cfg, paths)
	if err != nil {
		return checkFailure(ExitCodeCheckError, fmt.Errorf("failed to generate document from code: %w", err))
	}

	diffResult, err := openapi.NewDiffer().Diff(existing, generated)
	if err != nil {
		return checkFailure(ExitCodeCheckError, fmt.Errorf("failed to compare documents: %w", err))
	}
	diffResult = applyIgnorePatterns(diffResult, checkIgnore)

	mismatches := 0
	if checkCrosscheck {
		mismatches, err = runCrosscheck(cmd.Context(), res.Parsed)
		if err != nil {
			return checkFailure(ExitCodeCheckError, err)
		}
	}

	if diffResult.IsEmpty() && mismatches == 0 {
		printInfo("OpenAPI document is in sync with implementation")
		return nil
	}

	if !diffResult.IsEmpty() {
		printInfo("OpenAPI document differs from implementation:\n")
		printInfo(diffResult.Summary)
		printInfo("")

		if len(diffResult.PathChanges) > 0 {
			printInfo("Path changes:")
			for _, change := range diffResult.PathChanges {
				symbol := getChangeSymbol(change.Type)
				printInfo("  %s %s %s", symbol, change.Method, change.Path)
			}
			printInfo("")
		}

		if len(diffResult.SchemaChanges) > 0 {
			printInfo("Schema changes:")
			for _, change := range diffResult.SchemaChanges {
				symbol := getChangeSymbol(change.Type)
				printInfo("  %s %s", symbol, change.Name)
			}
			printInfo("")
		}

		if diffResult.HasBreakingChanges {
			printError("Breaking changes detected!")
		}

		printInfo("Run 'ktbridge generate' to update the document")
	}

	if checkStrict || checkCI {
		if mismatches > 0 && diffResult.IsEmpty() {
			return checkFailure(ExitCodeDifference, fmt.Errorf("%d file(s) disagree with tree-sitter-kotlin", mismatches))
		}
		return checkFailure(ExitCodeDifference, errors.New("document differs from implementation"))
	}

	return nil
}

// runCrosscheck compares every parsed file against tree-sitter-kotlin and
// returns the number of files whose counts disagree.
func runCrosscheck(ctx context.Context, files []convert.Parsed) (int, error) {
	checker := crosscheck.New()
	mismatches := 0
	for _, p := range files {
		result, err := checker.Check(ctx, p.File.DisplayPath(), p.File.Content, p.AST)
		if err != nil {
			return mismatches, fmt.Errorf("crosscheck %s: %w", p.File.DisplayPath(), err)
		}
		if result.OK() {
			printVerbose("  %s", result)
			continue
		}
		mismatches++
		printError("%s", result)
	}
	return mismatches, nil
}

// applyIgnorePatterns filters out changes that match ignore patterns.
func applyIgnorePatterns(result *openapi.DiffResult, patterns []string) *openapi.DiffResult {
	if len(patterns) == 0 {
		return result
	}

	filtered := &openapi.DiffResult{
		PathChanges:   make([]openapi.PathChange, 0),
		SchemaChanges: make([]openapi.SchemaChange, 0),
	}

	// Filter path changes
	for _, change := range result.PathChanges {
		if !matchesAnyPattern(change.Path, patterns) {
			filtered.PathChanges = append(filtered.PathChanges, change)
		}
	}

	// Filter schema changes
	for _, change := range result.SchemaChanges {
		if !matchesAnyPattern(change.Name, patterns) {
			filtered.SchemaChanges = append(filtered.SchemaChanges, change)
		}
	}

	// Recalculate breaking changes
	for _, change := range filtered.PathChanges {
		if change.Type == openapi.DiffTypeRemoved {
			filtered.HasBreakingChanges = true
			break
		}
	}
	if !filtered.HasBreakingChanges {
		for _, change := range filtered.SchemaChanges {
			if change.Type == openapi.DiffTypeRemoved {
				filtered.HasBreakingChanges = true
				break
			}
		}
	}

	// Regenerate summary
	filtered.Summary = generateFilteredSummary(filtered)

	return filtered
}

// matchesAnyPattern checks if a string matches any of the given patterns.
func matchesAnyPattern(s string, patterns []string) bool {
	for _, pattern := range patterns {
		// Simple prefix/suffix matching
		if strings.HasPrefix(pattern, "*") {
			if strings.HasSuffix(s, pattern[1:]) {
				return true
			}
		} else if strings.HasSuffix(pattern, "*") {
			if strings.HasPrefix(s, pattern[:len(pattern)-1]) {
				return true
			}
		} else if strings.Contains(pattern, "*") {
			// Use filepath.Match for glob patterns
			if matched, _ := filepath.Match(pattern, s); matched {
				return true
			}
		} else {
			// Exact match
			if s == pattern {
				return true
			}
		}
	}
	return false
}

// generateFilteredSummary generates a summary for filtered results.
func generateFilteredSummary(result *openapi.DiffResult) string {
	if result.IsEmpty() {
		return "No changes detected (after applying filters)"
	}

	var parts []string
	pathAdded, pathRemoved, pathModified := 0, 0, 0
	for _, c := range result.PathChanges {
		switch c.Type {
		case openapi.DiffTypeAdded:
			pathAdded++
		case openapi.DiffTypeRemoved:
			pathRemoved++
		case openapi.DiffTypeModified:
			pathModified++
		}
	}

	schemaAdded, schemaRemoved, schemaModified := 0, 0, 0
	for _, c := range result.SchemaChanges {
		switch c.Type {
		case openapi.DiffTypeAdded:
			schemaAdded++
		case openapi.DiffTypeRemoved:
			schemaRemoved++
		case openapi.DiffTypeModified:
			schemaModified++
		}
	}

	if pathAdded > 0 {
		parts = append(parts, fmt.Sprintf("%d path(s) added", pathAdded))
	}
	if pathRemoved > 0 {
		parts = append(parts, fmt.Sprintf("%d path(s) removed", pathRemoved))
	}
	if pathModified > 0 {
		parts = append(parts, fmt.Sprintf("%d path(s) modified", pathModified))
	}
	if schemaAdded > 0 {
		parts = append(parts, fmt.Sprintf("%d schema(s) added", schemaAdded))
	}
	if schemaRemoved > 0 {
		parts = append(parts, fmt.Sprintf("%d schema(s) removed", schemaRemoved))
	}
	if schemaModified > 0 {
		parts = append(parts, fmt.Sprintf("%d schema(s) modified", schemaModified))
	}

	summary := strings.Join(parts, ", ")
	if result.HasBreakingChanges {
		summary += " [BREAKING CHANGES DETECTED]"
	}

	return summary
}

// getChangeSymbol returns a symbol for the change type.
func getChangeSymbol(t openapi.DiffType) string {
	switch t {
	case openapi.DiffTypeAdded:
		return "+"
	case openapi.DiffTypeRemoved:
		return "-"
	case openapi.DiffTypeModified:
		return "~"
	default:
		return " "
	}
}

// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/api2spec/ktbridge/internal/config"
	"github.com/api2spec/ktbridge/internal/convert"
	"github.com/api2spec/ktbridge/internal/logging"
	"github.com/api2spec/ktbridge/internal/openapi"
	"github.com/api2spec/ktbridge/internal/scanner"
	"github.com/api2spec/ktbridge/internal/schema"
	"github.com/api2spec/ktbridge/pkg/types"
)

var (
	generateMode       string
	generateMerge      bool
	generateDryRun     bool
	generateInclude    []string
	generateExclude    []string
	generateSchemasDir string
)

var generateCmd = &cobra.Command{
	Use:   "generate [paths...]",
	Short: "Generate OpenAPI document from Kotlin sources",
	Long: `Generate an OpenAPI document by analyzing your Kotlin source code.

The generate command scans .kt and .kts files, extracts data classes,
interfaces and route blocks, and produces an OpenAPI 3.0/3.1 document.
Files that do not parse are reported and skipped unless strict mode is on.

Modes:
  full         Generate complete document with paths and schemas (default)
  routes-only  Generate only paths
  schemas-only Generate only component schemas

Example:
  ktbridge generate                           # Generate from current directory
  ktbridge generate ./app/src/main/kotlin     # Generate from specific paths
  ktbridge generate --mode routes-only        # Generate paths only
  ktbridge generate --merge                   # Merge with existing document
  ktbridge generate --schemas-dir schemas     # Also write one JSON Schema per record
  ktbridge generate --dry-run                 # Preview without writing`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateMode, "mode", "m", "", "generation mode: full, routes-only, schemas-only")
	generateCmd.Flags().BoolVar(&generateMerge, "merge", false, "merge with existing document")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "preview output without writing to file")
	generateCmd.Flags().StringSliceVarP(&generateInclude, "include", "i", nil, "glob patterns to include")
	generateCmd.Flags().StringSliceVarP(&generateExclude, "exclude", "e", nil, "glob patterns to exclude")
	generateCmd.Flags().StringVar(&generateSchemasDir, "schemas-dir", "", "directory for standalone JSON Schema files")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if generateMode != "" {
		cfg.Generation.Mode = generateMode
	}
	if generateMerge {
		cfg.Generation.Merge = true
	}
	if len(generateInclude) > 0 {
		cfg.Source.Include = generateInclude
	}
	if len(generateExclude) > 0 {
		cfg.Source.Exclude = generateExclude
	}
	if generateSchemasDir != "" {
		cfg.Generation.SchemasDir = generateSchemasDir
	}

	paths := args
	if len(paths) == 0 {
		paths = cfg.Source.Paths
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	printVerbose("Configuration:")
	printVerbose("  Mode: %s", cfg.Generation.Mode)
	printVerbose("  Output: %s", cfg.Output)
	printVerbose("  Format: %s", cfg.Format)
	printVerbose("  Paths: %s", strings.Join(paths, ", "))

	return generate(cmd.Context(), cfg, paths, generateDryRun)
}

// generate runs one full generation and writes its outputs.
func generate(ctx context.Context, cfg *config.Config, paths []string, dryRun bool) error {
	res, doc, err := buildDocument(ctx, cfg, paths)
	if err != nil {
		return err
	}

	if cfg.Generation.Merge {
		if doc, err = mergeExisting(cfg.Output, doc); err != nil {
			return err
		}
	}

	writer := openapi.NewWriter()
	if dryRun {
		printInfo("Dry run mode - no files will be written")
		var text string
		if outputFormat(cfg) == "json" {
			text, err = writer.ToJSON(doc)
		} else {
			text, err = writer.ToYAML(doc)
		}
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, text)
		return nil
	}

	if err := writer.WriteFile(doc, cfg.Output, outputFormat(cfg)); err != nil {
		return err
	}
	printInfo("Wrote %s: %s", cfg.Output, res.Summary())

	if cfg.Generation.SchemasDir != "" {
		docs, err := res.Registry.Documents(schemaOptions(cfg))
		if err != nil {
			return fmt.Errorf("failed to build schema documents: %w", err)
		}
		written, err := writer.WriteSchemas(docs, cfg.Generation.SchemasDir)
		if err != nil {
			return err
		}
		printInfo("Wrote %d schema files to %s", len(written), cfg.Generation.SchemasDir)
		for _, path := range written {
			printVerbose("  %s", path)
		}
	}
	return nil
}

// buildDocument scans, parses and builds the OpenAPI document. Files that
// fail to parse are reported; they only abort the run in strict mode.
func buildDocument(ctx context.Context, cfg *config.Config, paths []string) (*convert.Result, *types.OpenAPI, error) {
	log := logging.FromContext(ctx)

	files, err := scanSources(cfg, paths)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("scanned sources", "files", len(files))

	res, err := convert.NewBatch(cfg).Run(ctx, files)
	if err != nil {
		fileErrs := convert.Errors(err)
		if len(fileErrs) == 0 {
			return nil, nil, err
		}
		reportFileErrors(fileErrs)
		if cfg.Generation.StrictMode {
			return nil, nil, fmt.Errorf("%d file(s) failed to parse", len(fileErrs))
		}
		log.Warn("skipped files that failed to parse", "count", len(fileErrs))
	}
	for _, dup := range convert.Duplicates(res.Parsed) {
		log.Warn("model declared more than once, the last one wins", "model", dup)
	}

	doc, err := convert.Document(cfg, res)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build OpenAPI document: %w", err)
	}
	return res, doc, nil
}

// scanSources discovers the Kotlin sources under paths.
func scanSources(cfg *config.Config, paths []string) ([]scanner.SourceFile, error) {
	if err := scanner.ValidatePatterns(append(cfg.Source.Include, cfg.Source.Exclude...)); err != nil {
		return nil, err
	}

	var files []scanner.SourceFile
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
		}
		s := scanner.New(scanner.Config{
			BasePath:        absPath,
			IncludePatterns: cfg.Source.Include,
			ExcludePatterns: cfg.Source.Exclude,
		})
		found, err := s.ScanPath(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to scan path %s: %w", path, err)
		}
		files = append(files, found...)
	}
	return files, nil
}

func reportFileErrors(errs []*convert.FileError) {
	for _, fe := range errs {
		fmt.Fprintln(stderr, fe.Snippet())
	}
}

// mergeExisting merges doc into the document at path, if there is one.
func mergeExisting(path string, doc *types.OpenAPI) (*types.OpenAPI, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return doc, nil
	}
	existing, err := openapi.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read existing document: %w", err)
	}
	return openapi.MergeDefault(existing, doc)
}

func outputFormat(cfg *config.Config) string {
	if cfg.Format != "" {
		return cfg.Format
	}
	return openapi.FormatOf(cfg.Output)
}

func schemaOptions(cfg *config.Config) schema.Options {
	return schema.Options{IDBase: cfg.Schema.IDBase, Dialect: cfg.Schema.Dialect}
}

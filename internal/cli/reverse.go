// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/api2spec/ktbridge/internal/convert"
	"github.com/api2spec/ktbridge/internal/logging"
	"github.com/api2spec/ktbridge/internal/openapi"
)

var reverseValidate bool

var reverseCmd = &cobra.Command{
	Use:   "reverse <file>",
	Short: "Derive records, routes and repository groups from an OpenAPI document",
	Long: `Reverse reads an OpenAPI document and derives what ktbridge would need to
produce it: one record per object-typed component schema, the route table
of its paths, and the operations grouped by the schema they return.

Component schemas whose type is not object are skipped and reported.
The result is printed as YAML unless --format json is given or --output
names a .json file.

Example:
  ktbridge reverse openapi.yaml              # Print the derived models
  ktbridge reverse openapi.json -f json      # Print as JSON
  ktbridge reverse openapi.yaml --validate   # Validate the document first
  ktbridge reverse openapi.yaml -o pets.yaml # Write to a file`,
	Args: cobra.ExactArgs(1),
	RunE: runReverse,
}

func init() {
	reverseCmd.Flags().BoolVar(&reverseValidate, "validate", false, "validate the document with kin-openapi first")
}

func runReverse(cmd *cobra.Command, args []string) error {
	path := args[0]
	log := logging.FromContext(cmd.Context())

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if reverseValidate {
		if err := openapi.Validate(cmd.Context(), data); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		printVerbose("%s is a valid OpenAPI document", path)
	}

	projection, err := openapi.ParseProjection(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	rev := convert.FromProjection(projection)

	for _, name := range rev.Excluded {
		log.Warn("skipped component schema that is not an object", "schema", name)
	}
	log.Debug("reversed", "models", len(rev.Models), "routes", rev.Routes.Len(), "groups", len(rev.Groups))

	writer := openapi.NewWriter()
	var text string
	if reverseFormat() == "json" {
		text, err = writer.ToJSON(rev)
	} else {
		text, err = writer.ToYAML(rev)
	}
	if err != nil {
		return err
	}

	if output == "" {
		fmt.Fprint(stdout, text)
		return nil
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	printInfo("Wrote %s: %d models, %d routes", output, len(rev.Models), rev.Routes.Len())
	return nil
}

func reverseFormat() string {
	if format != "" {
		return strings.ToLower(format)
	}
	if output != "" {
		return openapi.FormatOf(output)
	}
	return "yaml"
}

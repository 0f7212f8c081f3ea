// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/api2spec/ktbridge/internal/openapi"
	"github.com/api2spec/ktbridge/pkg/types"
)

var diffExitCode bool

var diffCmd = &cobra.Command{
	Use:   "diff [file1] [file2]",
	Short: "Compare two OpenAPI documents",
	Long: `Compare two OpenAPI documents and show the differences.

If only one file is provided, it is compared against the document generated
from the current Kotlin sources.

If no files are provided, the configured output file is compared against
what would be generated from the current Kotlin sources.

Example:
  ktbridge diff                           # Compare current vs generated
  ktbridge diff openapi.yaml              # Compare file vs generated
  ktbridge diff old.yaml new.yaml         # Compare two files
  ktbridge diff --exit-code a.yaml b.yaml # Exit with 1 when they differ`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffExitCode, "exit-code", false, "exit with status 1 when the documents differ")
}

func runDiff(cmd *cobra.Command, args []string) error {
	var (
		a, b         *types.OpenAPI
		nameA, nameB string
		err          error
	)

	switch len(args) {
	case 2:
		nameA, nameB = args[0], args[1]
		if a, err = openapi.ReadFile(nameA); err != nil {
			return fmt.Errorf("%s: %w", nameA, err)
		}
		if b, err = openapi.ReadFile(nameB); err != nil {
			return fmt.Errorf("%s: %w", nameB, err)
		}
	default:
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		nameA = cfg.Output
		if len(args) == 1 {
			nameA = args[0]
		}
		nameB = "generated"
		if a, err = openapi.ReadFile(nameA); err != nil {
			return fmt.Errorf("%s: %w", nameA, err)
		}
		if _, b, err = buildDocument(cmd.Context(), cfg, cfg.Source.Paths); err != nil {
			return err
		}
	}

	printVerbose("Comparing %s against %s", nameA, nameB)

	result, err := openapi.NewDiffer().Diff(a, b)
	if err != nil {
		return fmt.Errorf("failed to compare documents: %w", err)
	}
	fmt.Fprintln(stdout, openapi.FormatDiff(result))

	if diffExitCode && !result.IsEmpty() {
		return &ExitError{Code: ExitCodeDifference, Err: errors.New("documents differ")}
	}
	return nil
}

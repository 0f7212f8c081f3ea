// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/api2spec/ktbridge/internal/ast"
	"github.com/api2spec/ktbridge/internal/convert"
	"github.com/api2spec/ktbridge/internal/lexer"
	"github.com/api2spec/ktbridge/internal/openapi"
	"github.com/api2spec/ktbridge/internal/scanner"
)

var printTokensAll bool

var printCmd = &cobra.Command{
	Use:   "print [file]",
	Short: "Print the OpenAPI document, tokens or syntax tree",
	Long: `Print the OpenAPI document to standard output.

If a file is provided, it will print that file. Otherwise, it will
generate and print the document from the current Kotlin sources.

The tokens and ast subcommands show how a Kotlin file is read, which helps
when a declaration is not picked up.

Example:
  ktbridge print                      # Generate and print
  ktbridge print openapi.yaml         # Print existing file
  ktbridge print -f json              # Print in JSON format
  ktbridge print tokens Pet.kt        # Print the token stream
  ktbridge print ast Routes.kt        # Print the syntax tree`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrint,
}

var printTokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the tokens of a Kotlin file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrintTokens,
}

var printASTCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "Print the syntax tree of a Kotlin file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrintAST,
}

func init() {
	printTokensCmd.Flags().BoolVar(&printTokensAll, "all", false, "include whitespace and comments")
	printCmd.AddCommand(printTokensCmd, printASTCmd)
}

func runPrint(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		// Print existing file
		filePath := args[0]
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filePath, err)
		}
		fmt.Fprint(stdout, string(data))
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	printVerbose("Print format: %s", outputFormat(cfg))

	_, doc, err := buildDocument(cmd.Context(), cfg, cfg.Source.Paths)
	if err != nil {
		return err
	}

	writer := openapi.NewWriter()
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

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(scanner.NormalizeNewlines(data)), nil
}

func runPrintTokens(cmd *cobra.Command, args []string) error {
	src, err := readSource(args[0])
	if err != nil {
		return err
	}
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return fmt.Errorf("%s", convert.Snippet(args[0], src, err))
	}
	for _, tok := range tokens {
		if tok.Kind.IsTrivia() && !printTokensAll {
			continue
		}
		line, col := convert.Position(src, tok.Span.Start)
		fmt.Fprintf(stdout, "%d:%d\t%s\n", line, col, tok)
	}
	return nil
}

func runPrintAST(cmd *cobra.Command, args []string) error {
	src, err := readSource(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	file, err := convert.Parse(src, convert.Options{MaxDepth: cfg.Parser.MaxDepth})
	if err != nil {
		return fmt.Errorf("%s", convert.Snippet(args[0], src, err))
	}
	fmt.Fprint(stdout, ast.Dump(file))
	return nil
}

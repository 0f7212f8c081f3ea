// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package convert

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/hashicorp/go-multierror"

	"github.com/api2spec/ktbridge/internal/ast"
	"github.com/api2spec/ktbridge/internal/config"
	"github.com/api2spec/ktbridge/internal/ir"
	"github.com/api2spec/ktbridge/internal/logging"
	"github.com/api2spec/ktbridge/internal/openapi"
	"github.com/api2spec/ktbridge/internal/scanner"
	"github.com/api2spec/ktbridge/internal/schema"
	"github.com/api2spec/ktbridge/pkg/types"
)

// Parsed is one file that made it through the parser.
type Parsed struct {
	File scanner.SourceFile
	AST  *ast.Source
}

// Result accumulates what a batch extracted.
type Result struct {
	Registry *schema.Registry
	Routes   ir.RouteTable
	Parsed   []Parsed
	// Failed counts files that did not parse.
	Failed int
	// Bytes is the total size of the files read.
	Bytes int64
}

// Summary describes the result in one line, e.g.
// "3 files (1.2 kB), 2 models, 4 routes".
func (r *Result) Summary() string {
	files := len(r.Parsed) + r.Failed
	s := fmt.Sprintf("%s (%s), %s, %s",
		english.Plural(files, "file", ""),
		humanize.Bytes(uint64(r.Bytes)),
		english.Plural(r.Registry.Count(), "model", ""),
		english.Plural(r.Routes.Len(), "route", ""))
	if r.Failed > 0 {
		s += fmt.Sprintf(", %d failed", r.Failed)
	}
	return s
}

// Batch extracts models and routes from many files.
type Batch struct {
	Options Options
	// Strict stops at the first file that fails.
	Strict bool
}

// NewBatch creates a Batch from configuration.
func NewBatch(cfg *config.Config) *Batch {
	return &Batch{
		Options: Options{
			Schema:   schema.Options{IDBase: cfg.Schema.IDBase, Dialect: cfg.Schema.Dialect},
			MaxDepth: cfg.Parser.MaxDepth,
		},
		Strict: cfg.Generation.StrictMode,
	}
}

// Run parses every file and collects its records and route blocks. Files
// without either are fine. Failures are returned together as a
// *multierror.Error of *FileError values; the result holds everything that
// did parse.
func (b *Batch) Run(ctx context.Context, files []scanner.SourceFile) (*Result, error) {
	log := logging.FromContext(ctx)
	res := &Result{Registry: schema.NewRegistry()}

	var errs *multierror.Error
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Bytes += f.Size

		if err := b.add(res, f); err != nil {
			res.Failed++
			errs = multierror.Append(errs, &FileError{Path: f.DisplayPath(), Src: f.Text(), Err: err})
			if b.Strict {
				break
			}
			continue
		}
		log.Debug("parsed", "file", f.DisplayPath(), "size", humanize.Bytes(uint64(f.Size)))
	}

	return res, errs.ErrorOrNil()
}

func (b *Batch) add(res *Result, f scanner.SourceFile) error {
	file, err := Parse(f.Text(), b.Options)
	if err != nil {
		return err
	}

	models, err := ir.ExtractRecords(file)
	if err != nil && !notFound(err) {
		return err
	}
	routes, err := ir.ExtractAllRoutes(file)
	if err != nil && !notFound(err) {
		return err
	}

	for _, m := range models {
		res.Registry.AddModel(f.DisplayPath(), m)
	}
	res.Routes.Merge(routes)
	res.Parsed = append(res.Parsed, Parsed{File: f, AST: file})
	return nil
}

// Duplicates lists model names declared in more than one file, as
// "Name (first.kt, second.kt)".
func Duplicates(files []Parsed) []string {
	seen := make(map[string]string)
	var out []string
	for _, p := range files {
		models, _ := ir.ExtractRecords(p.AST)
		for _, m := range models {
			if first, ok := seen[m.Record.Name]; ok && first != p.File.DisplayPath() {
				out = append(out, fmt.Sprintf("%s (%s, %s)", m.Record.Name, first, p.File.DisplayPath()))
				continue
			}
			seen[m.Record.Name] = p.File.DisplayPath()
		}
	}
	return out
}

// Document builds the OpenAPI document of a batch result.
func Document(cfg *config.Config, res *Result) (*types.OpenAPI, error) {
	return openapi.NewBuilder(cfg).Build(res.Routes, res.Registry.All())
}

// Errors flattens a Run error into its file errors.
func Errors(err error) []*FileError {
	if err == nil {
		return nil
	}
	var list []error
	var merr *multierror.Error
	if errors.As(err, &merr) {
		list = merr.Errors
	} else {
		list = []error{err}
	}

	var out []*FileError
	for _, e := range list {
		var fe *FileError
		if errors.As(e, &fe) {
			out = append(out, fe)
		}
	}
	return out
}

func notFound(err error) bool {
	var nf *ir.NotFoundError
	return errors.As(err, &nf)
}

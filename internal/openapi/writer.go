// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/api2spec/ktbridge/pkg/types"
)

// Writer handles writing OpenAPI and JSON Schema documents to various
// outputs.
type Writer struct {
	// Indent specifies the indentation for JSON output (default: 2 spaces)
	Indent int
}

// NewWriter creates a new Writer with default settings.
func NewWriter() *Writer {
	return &Writer{
		Indent: 2,
	}
}

// WriteYAML writes a document as YAML to the given writer.
func (w *Writer) WriteYAML(doc any, out io.Writer) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// WriteJSON writes a document as JSON to the given writer.
func (w *Writer) WriteJSON(doc any, out io.Writer) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", strings.Repeat(" ", w.Indent))
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// FormatOf infers "yaml" or "json" from a file extension, defaulting to
// YAML.
func FormatOf(path string) string {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return "json"
	}
	return "yaml"
}

// WriteFile writes an OpenAPI document to a file.
// The format is determined by the format parameter ("yaml" or "json").
// If format is empty, it is inferred from the file extension.
func (w *Writer) WriteFile(doc *types.OpenAPI, path string, format string) error {
	return w.writeFile(doc, path, format)
}

// WriteSchemas writes one "<Title>.schema.json" file per document into dir
// and returns the paths written.
func (w *Writer) WriteSchemas(docs []*types.JSONSchema, dir string) ([]string, error) {
	paths := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc.Title == "" {
			return paths, fmt.Errorf("schema document without a title")
		}
		path := filepath.Join(dir, doc.Title+".schema.json")
		if err := w.writeFile(doc, path, "json"); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (w *Writer) writeFile(doc any, path string, format string) error {
	if format == "" {
		format = FormatOf(path)
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(format) {
	case "yaml", "yml":
		return w.WriteYAML(doc, file)
	case "json":
		return w.WriteJSON(doc, file)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// ToYAML returns the YAML representation of a document as a string.
func (w *Writer) ToYAML(doc any) (string, error) {
	var buf strings.Builder
	if err := w.WriteYAML(doc, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToJSON returns the JSON representation of a document as a string.
func (w *Writer) ToJSON(doc any) (string, error) {
	var buf strings.Builder
	if err := w.WriteJSON(doc, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ReadFile reads an OpenAPI document from a file.
// The format is inferred from the file extension.
func ReadFile(path string) (*types.OpenAPI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	var doc types.OpenAPI
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, &doc); err != nil {
			if err := json.Unmarshal(data, &doc); err != nil {
				return nil, errors.New("failed to parse file as YAML or JSON")
			}
		}
	}

	return &doc, nil
}

// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ValidationError reports an OpenAPI document that kin-openapi rejects.
type ValidationError struct {
	// Pointer locates the offending schema when kin-openapi reports one.
	Pointer string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Pointer != "" {
		return fmt.Sprintf("invalid OpenAPI document at %s: %v", e.Pointer, e.Err)
	}
	return fmt.Sprintf("invalid OpenAPI document: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate loads YAML or JSON text as an OpenAPI 3 document and checks it
// structurally. External references are not followed.
func Validate(ctx context.Context, data []byte) error {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return &ValidationError{Err: err}
	}
	if err := doc.Validate(ctx); err != nil {
		return &ValidationError{Pointer: schemaPointer(err), Err: err}
	}
	return nil
}

func schemaPointer(err error) string {
	var me openapi3.MultiError
	if errors.As(err, &me) && len(me) > 0 {
		return schemaPointer(me[0])
	}
	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		if parts := se.JSONPointer(); len(parts) > 0 {
			return "#/" + strings.Join(parts, "/")
		}
	}
	return ""
}

// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/ktbridge/internal/config"
	"github.com/api2spec/ktbridge/internal/ir"
	"github.com/api2spec/ktbridge/pkg/types"
)

func TestValidate(t *testing.T) {
	doc := `openapi: "3.0.3"
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
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Pet"
components:
  schemas:
    Pet:
      type: object
      properties:
        id:
          type: integer
`
	assert.NoError(t, Validate(context.Background(), []byte(doc)))
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "openapi: [3"},
		{"missing title", "openapi: \"3.0.3\"\ninfo:\n  version: \"1\"\npaths: {}\n"},
		{"dangling ref", `openapi: "3.0.3"
info: {title: Pets, version: "1"}
paths:
  /pets:
    get:
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Missing"
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(context.Background(), []byte(tt.doc))
			require.Error(t, err)

			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestValidate_GeneratedDocument(t *testing.T) {
	var table ir.RouteTable
	table.Add("/pets", ir.Operation{Method: "get"})

	doc, err := NewBuilder(config.Default()).Build(table, map[string]*types.Schema{
		"Pet": {Type: "object"},
	})
	require.NoError(t, err)

	text, err := NewWriter().ToYAML(doc)
	require.NoError(t, err)
	assert.NoError(t, Validate(context.Background(), []byte(text)))
}

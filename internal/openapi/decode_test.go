// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/ktbridge/internal/schema"
	"github.com/api2spec/ktbridge/pkg/types"
)

func TestDecodePaths(t *testing.T) {
	paths, err := DecodePaths(map[string]any{
		"/pets/{petId}": map[string]any{
			"summary":    "A pet",
			"x-internal": true,
			"parameters": []any{
				map[string]any{"name": "petId", "in": "path", "required": true, "schema": map[string]any{"type": "string"}},
			},
			"GET": map[string]any{
				"operationId": "showPetById",
				"summary":     "Info for a specific pet",
				"tags":        []any{"pets"},
				"deprecated":  true,
				"responses": map[string]any{
					"200": map[string]any{
						"description": "The pet",
						"content": map[string]any{
							"application/json": map[string]any{
								"schema":  map[string]any{"$ref": "#/components/schemas/Pet"},
								"example": map[string]any{"id": 1},
							},
						},
					},
				},
			},
			"put": map[string]any{
				"requestBody": map[string]any{
					"description": "The new pet",
					"required":    true,
					"content": map[string]any{
						"application/json": map[string]any{"schema": map[string]any{"$ref": "#/components/schemas/Pet"}},
					},
				},
			},
		},
	})
	require.NoError(t, err)

	item := paths["/pets/{petId}"]
	assert.Equal(t, "A pet", item.Summary)
	require.Len(t, item.Parameters, 1)
	assert.True(t, item.Parameters[0].Required)

	get := item.Get
	require.NotNil(t, get)
	assert.Equal(t, "showPetById", get.OperationID)
	assert.Equal(t, []string{"pets"}, get.Tags)
	assert.True(t, get.Deprecated)
	mt := get.Responses["200"].Content["application/json"]
	assert.Equal(t, "#/components/schemas/Pet", mt.Schema.Ref)
	assert.Equal(t, map[string]any{"id": 1}, mt.Example)

	put := item.Put
	require.NotNil(t, put)
	assert.Equal(t, &types.RequestBody{
		Description: "The new pet",
		Required:    true,
		Content: map[string]types.MediaType{
			"application/json": {Schema: &types.Schema{Ref: "#/components/schemas/Pet"}},
		},
	}, put.RequestBody)
}

func TestDecodePaths_ShapeErrors(t *testing.T) {
	tests := []struct {
		name    string
		paths   map[string]any
		pointer string
	}{
		{
			name:    "path item not a mapping",
			paths:   map[string]any{"/pets": "nope"},
			pointer: "/~1pets",
		},
		{
			name:    "parameters not a list",
			paths:   map[string]any{"/pets": map[string]any{"get": map[string]any{"parameters": "limit"}}},
			pointer: "/~1pets/get/parameters",
		},
		{
			name:    "parameter without location",
			paths:   map[string]any{"/pets": map[string]any{"get": map[string]any{"parameters": []any{map[string]any{"name": "limit"}}}}},
			pointer: "/~1pets/get/parameters/0/in",
		},
		{
			name:    "responses not a mapping",
			paths:   map[string]any{"/pets": map[string]any{"get": map[string]any{"responses": []any{"200"}}}},
			pointer: "/~1pets/get/responses",
		},
		{
			name:    "tags not strings",
			paths:   map[string]any{"/pets": map[string]any{"get": map[string]any{"tags": []any{map[string]any{}}}}},
			pointer: "/~1pets/get/tags/0",
		},
		{
			name: "content schema not a mapping",
			paths: map[string]any{"/pets": map[string]any{"get": map[string]any{"responses": map[string]any{
				"200": map[string]any{"content": map[string]any{"application/json": map[string]any{"schema": "Pet"}}},
			}}}},
			pointer: "/~1pets/get/responses/200/content/application~1json/schema",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePaths(tt.paths)
			var shape *schema.ShapeError
			require.ErrorAs(t, err, &shape)
			assert.Equal(t, tt.pointer, shape.Pointer)
		})
	}
}

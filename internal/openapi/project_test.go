// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/ktbridge/internal/schema"
	"github.com/api2spec/ktbridge/pkg/types"
)

const petstore = `openapi: 3.0.3
info:
  title: Swagger Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      tags: [pets]
      parameters:
        - name: limit
          in: query
          required: false
          schema:
            type: integer
      responses:
        "200":
          description: A paged array of pets
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pets'
        default:
          description: unexpected error
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Error'
  /pets/{petId}:
    get:
      summary: Info for a specific pet
      operationId: showPetById
      tags: [pets]
      parameters:
        - name: petId
          in: path
          required: true
          description: The id of the pet to retrieve
          schema:
            type: string
      responses:
        "200":
          description: Expected response to a valid request
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
        default:
          description: unexpected error
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Error'
components:
  schemas:
    Pet:
      type: object
      required: [id, name]
      properties:
        id:
          type: integer
          format: int64
        name:
          type: string
        tag:
          type: string
    Pets:
      type: array
      items:
        $ref: '#/components/schemas/Pet'
    Error:
      type: object
      required: [code, message]
      properties:
        code:
          type: integer
        message:
          type: string
`

func TestParseProjection(t *testing.T) {
	p, err := ParseProjection([]byte(petstore))
	require.NoError(t, err)

	assert.Equal(t, []string{"Pet", "Error"}, p.Names)
	assert.Equal(t, []string{"Pets"}, p.Excluded)

	pet, ok := p.Component("Pet")
	require.True(t, ok)
	assert.Equal(t, "Pet", pet.Title)
	assert.Equal(t, []string{"id", "name", "tag"}, pet.Properties.Names())
	assert.Equal(t, []string{"id", "name"}, pet.Required)

	_, ok = p.Component("Pets")
	assert.False(t, ok)

	require.Len(t, p.Paths, 2)
	get := p.Paths["/pets"].Get
	require.NotNil(t, get)
	assert.Equal(t, "listPets", get.OperationID)
	require.Len(t, get.Parameters, 1)
	assert.Equal(t, "limit", get.Parameters[0].Name)
}

func TestProject_DecodedMap(t *testing.T) {
	p, err := Project(map[string]any{
		"openapi": "3.0.3",
		"components": map[string]any{
			"schemas": map[string]any{
				"Owner": map[string]any{
					"type":       "object",
					"properties": map[string]any{"name": map[string]any{"type": "string"}},
				},
				"Color": map[string]any{"type": "string", "enum": []any{"red"}},
				"Blob":  map[string]any{},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Owner"}, p.Names)
	assert.Equal(t, []string{"Blob", "Color"}, p.Excluded)
	assert.Empty(t, p.Paths)
}

func TestProject_ShapeError(t *testing.T) {
	_, err := Project(map[string]any{
		"paths": map[string]any{
			"/pets": map[string]any{
				"get": map[string]any{"parameters": []any{map[string]any{"in": "query"}}},
			},
		},
	})

	var shape *schema.ShapeError
	require.ErrorAs(t, err, &shape)
	assert.Equal(t, "/paths/~1pets/get/parameters/0/name", shape.Pointer)
	assert.Equal(t, "nothing", shape.Got)
}

func TestOperationSchemas(t *testing.T) {
	p, err := ParseProjection([]byte(petstore))
	require.NoError(t, err)

	// Pets is an array schema, so listPets has nothing to group by
	assert.Equal(t, map[string][]string{
		"showPetById": {"Pet"},
	}, OperationSchemas(p.Paths, p.Schemas))
}

func TestOperationSchemas_ArraysAndSynthesizedIDs(t *testing.T) {
	schemas := map[string]*types.JSONSchema{"Pet": {}, "Owner": {}}
	paths := types.Paths{
		"/pets": {
			Get: &types.Operation{
				Responses: map[string]types.Response{
					"200": {Content: map[string]types.MediaType{
						"application/json": {Schema: &types.Schema{Type: "array", Items: types.ComponentRef("Pet")}},
					}},
				},
			},
			Post: &types.Operation{
				OperationID: "createPet",
				Responses: map[string]types.Response{
					"201": {Content: map[string]types.MediaType{
						"application/json": {Schema: types.ComponentRef("Pet")},
						"application/xml":  {Schema: types.ComponentRef("Pet")},
					}},
					"202": {Content: map[string]types.MediaType{
						"application/json": {Schema: types.ComponentRef("Owner")},
					}},
					"400": {Content: map[string]types.MediaType{
						"application/json": {Schema: types.ComponentRef("Owner")},
					}},
				},
			},
		},
	}

	got := OperationSchemas(paths, schemas)
	assert.Equal(t, map[string][]string{
		"get_pets":  {"Pet"},
		"createPet": {"Pet", "Owner"},
	}, got)

	assert.Equal(t, map[string][]string{
		"Pet":   {"createPet", "get_pets"},
		"Owner": {"createPet"},
	}, GroupBySchema(got))
}

func TestValidate_Petstore(t *testing.T) {
	require.NoError(t, Validate(context.Background(), []byte(petstore)))

	err := Validate(context.Background(), []byte("openapi: 3.0.3\npaths: {}\n"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "invalid OpenAPI document")
}

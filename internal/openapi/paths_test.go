// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/ktbridge/internal/ir"
	"github.com/api2spec/ktbridge/pkg/types"
)

func TestFromRoutes(t *testing.T) {
	paths := FromRoutes(petRoutes())

	get := paths["/pets/{petId}"].Get
	require.NotNil(t, get)
	assert.Equal(t, []string{"pets", "admin"}, get.Tags)
	assert.Equal(t, map[string]types.Response{
		"200": {
			Description: "The pet",
			Content: map[string]types.MediaType{
				"application/json": {Schema: &types.Schema{Ref: "#/components/schemas/Pet"}},
			},
		},
	}, get.Responses)

	post := paths["/pets"].Post
	require.NotNil(t, post)
	require.NotNil(t, post.RequestBody)
	assert.True(t, post.RequestBody.Required)
	assert.Equal(t, "#/components/schemas/Pet", post.RequestBody.Content["application/json"].Schema.Ref)
	assert.Nil(t, post.Responses)
}

func TestFromRoutes_Produces(t *testing.T) {
	var table ir.RouteTable
	table.Add("/pets/export", ir.Operation{
		Method:    "GET",
		Produces:  "application/xml",
		Responses: []ir.Response{{Code: "200", Description: "ok", SchemaRef: "#/components/schemas/Pet"}, {Code: "404", Description: "none"}},
	})

	get := FromRoutes(table)["/pets/export"].Get
	require.NotNil(t, get)
	assert.Equal(t, "get_pets_export", get.OperationID)
	assert.Contains(t, get.Responses["200"].Content, "application/xml")
	assert.Nil(t, get.Responses["404"].Content)

	back := ToRoutes(FromRoutes(table))
	ops, ok := back.Operations("/pets/export")
	require.True(t, ok)
	assert.Equal(t, "application/xml", ops[0].Produces)
}

func TestOperationID(t *testing.T) {
	tests := []struct {
		method, path, want string
	}{
		{"get", "/pets/{petId}", "get_pets_petId"},
		{"POST", "/pets", "post_pets"},
		{"delete", "/pets/{petId}/tags/{tag-name}", "delete_pets_petId_tags_tag_name"},
		{"get", "/", "get"},
		{"get", "/v1//owners/", "get_v1_owners"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, OperationID(tt.method, tt.path))
		})
	}
}

func TestRoutesRoundTrip(t *testing.T) {
	routes := petRoutes()
	back := ToRoutes(FromRoutes(routes))

	// paths come back sorted, which matches declaration order here
	require.Len(t, back.Paths, 2)
	assert.Equal(t, "/pets", back.Paths[0].Path)
	assert.Equal(t, "/pets/{petId}", back.Paths[1].Path)

	list := back.Paths[0].Operations[0]
	assert.Equal(t, "get", list.Method)
	assert.Equal(t, routes.Paths[0].Operations[0], list)

	create := back.Paths[0].Operations[1]
	assert.Equal(t, "post", create.Method)
	assert.Equal(t, "post_pets", create.OperationID)
	assert.Equal(t, routes.Paths[0].Operations[1].RequestBody, create.RequestBody)

	assert.Equal(t, routes.Paths[1].Operations[0], back.Paths[1].Operations[0])
}

func TestToRoutes_SharedParameters(t *testing.T) {
	paths := types.Paths{
		"/pets/{petId}": {
			Parameters: []types.Parameter{
				{Name: "petId", In: "path", Required: true, Schema: &types.Schema{Type: "string"}},
				{Name: "trace", In: "header"},
			},
			Get: &types.Operation{
				Parameters: []types.Parameter{
					{Name: "petId", In: "path", Required: true, Schema: &types.Schema{Type: "integer"}},
				},
			},
		},
	}

	ops, ok := ToRoutes(paths).Operations("/pets/{petId}")
	require.True(t, ok)
	assert.Equal(t, []ir.Parameter{
		{Name: "trace", In: "header", Type: ir.String},
		{Name: "petId", In: "path", Required: true, Type: ir.Integer},
	}, ops[0].Parameters)
}

func TestToRoutes_ResponseOrderAndArrays(t *testing.T) {
	paths := types.Paths{
		"/pets": {
			Get: &types.Operation{
				Responses: map[string]types.Response{
					"default": {Description: "error"},
					"404":     {Description: "missing"},
					"200": {
						Description: "pets",
						Content: map[string]types.MediaType{
							"application/json": {Schema: &types.Schema{Type: "array", Items: types.ComponentRef("Pet")}},
						},
					},
				},
			},
		},
	}

	ops, _ := ToRoutes(paths).Operations("/pets")
	require.Len(t, ops[0].Responses, 3)
	assert.Equal(t, []string{"200", "404", "default"}, []string{
		ops[0].Responses[0].Code, ops[0].Responses[1].Code, ops[0].Responses[2].Code,
	})
	assert.Equal(t, "#/components/schemas/Pet", ops[0].Responses[0].SchemaRef)
	assert.Empty(t, ops[0].Produces)
}

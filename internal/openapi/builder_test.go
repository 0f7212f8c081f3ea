// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/ktbridge/internal/config"
	"github.com/api2spec/ktbridge/internal/ir"
	"github.com/api2spec/ktbridge/pkg/types"
)

func petRoutes() ir.RouteTable {
	var table ir.RouteTable
	table.Add("/pets",
		ir.Operation{
			Method:      "get",
			Summary:     "List pets",
			OperationID: "listPets",
			Tags:        []string{"pets"},
			Responses:   []ir.Response{{Code: "200", Description: "A list of pets", SchemaRef: "#/components/schemas/Pet"}},
		},
		ir.Operation{
			Method:      "post",
			Summary:     "Create a pet",
			Tags:        []string{"pets"},
			RequestBody: []ir.Content{{ContentType: "application/json", SchemaRef: "#/components/schemas/Pet"}},
		},
	)
	table.Add("/pets/{petId}", ir.Operation{
		Method:      "get",
		OperationID: "showPetById",
		Tags:        []string{"pets", "admin"},
		Parameters: []ir.Parameter{
			{Name: "petId", In: "path", Required: true, Type: ir.Integer, Description: "The id of the pet"},
		},
		Responses: []ir.Response{{Code: "200", Description: "The pet", SchemaRef: "#/components/schemas/Pet"}},
	})
	return table
}

func petComponents() map[string]*types.Schema {
	var props types.Properties
	props.Set("id", &types.Schema{Type: "integer"})
	props.Set("name", &types.Schema{Type: "string"})
	return map[string]*types.Schema{
		"Pet": {Type: "object", Title: "Pet", Properties: props, Required: []string{"id"}},
	}
}

func TestNewBuilder(t *testing.T) {
	cfg := config.Default()
	builder := NewBuilder(cfg)

	assert.NotNil(t, builder)
	assert.Equal(t, cfg, builder.config)
}

func TestBuilder_Build_EmptyRoutesAndSchemas(t *testing.T) {
	cfg := config.Default()
	cfg.OpenAPI.Info.Title = "Pet Store"

	doc, err := NewBuilder(cfg).Build(ir.RouteTable{}, nil)

	require.NoError(t, err)
	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Equal(t, "Pet Store", doc.Info.Title)
	assert.Equal(t, "1.0.0", doc.Info.Version)
	assert.Empty(t, doc.Paths)
	assert.Nil(t, doc.Components)
	assert.Empty(t, doc.Tags)
}

func TestBuilder_Build_WithRoutes(t *testing.T) {
	doc, err := NewBuilder(config.Default()).Build(petRoutes(), petComponents())
	require.NoError(t, err)

	require.Len(t, doc.Paths, 2)
	pets := doc.Paths["/pets"]
	require.NotNil(t, pets.Get)
	require.NotNil(t, pets.Post)
	assert.Equal(t, "List pets", pets.Get.Summary)
	assert.Equal(t, "post_pets", pets.Post.OperationID)

	byID := doc.Paths["/pets/{petId}"]
	require.NotNil(t, byID.Get)
	assert.Equal(t, "showPetById", byID.Get.OperationID)
	assert.Equal(t, []types.Parameter{{
		Name:        "petId",
		In:          "path",
		Description: "The id of the pet",
		Required:    true,
		Schema:      &types.Schema{Type: "integer"},
	}}, byID.Get.Parameters)

	require.NotNil(t, doc.Components)
	assert.Contains(t, doc.Components.Schemas, "Pet")
}

func TestBuilder_Build_DefaultResponses(t *testing.T) {
	cfg := config.Default()
	cfg.Generation.DefaultResponses = []string{"201", "404", "418"}

	doc, err := NewBuilder(cfg).Build(petRoutes(), nil)
	require.NoError(t, err)

	// documented responses are left alone
	assert.Len(t, doc.Paths["/pets"].Get.Responses, 1)

	// undocumented ones get the configured defaults
	assert.Equal(t, map[string]types.Response{
		"201": {Description: "Created"},
		"404": {Description: "Not found"},
		"418": {Description: "Response 418"},
	}, doc.Paths["/pets"].Post.Responses)
}

func TestBuilder_Build_NoDefaultResponsesConfigured(t *testing.T) {
	cfg := config.Default()
	cfg.Generation.DefaultResponses = nil

	doc, err := NewBuilder(cfg).Build(petRoutes(), nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]types.Response{
		"200": {Description: "Successful response"},
	}, doc.Paths["/pets"].Post.Responses)
}

func TestBuilder_Build_Modes(t *testing.T) {
	cfg := config.Default()

	cfg.Generation.Mode = "routes-only"
	doc, err := NewBuilder(cfg).Build(petRoutes(), petComponents())
	require.NoError(t, err)
	assert.Len(t, doc.Paths, 2)
	assert.Nil(t, doc.Components)

	cfg.Generation.Mode = "schemas-only"
	doc, err = NewBuilder(cfg).Build(petRoutes(), petComponents())
	require.NoError(t, err)
	assert.Empty(t, doc.Paths)
	require.NotNil(t, doc.Components)
	assert.Len(t, doc.Components.Schemas, 1)
}

func TestBuilder_Build_WithServers(t *testing.T) {
	cfg := config.Default()
	cfg.OpenAPI.Servers = []config.ServerConfig{
		{URL: "https://pets.test", Description: "Production"},
		{URL: "http://localhost:8080"},
	}

	doc, err := NewBuilder(cfg).Build(ir.RouteTable{}, nil)
	require.NoError(t, err)

	assert.Equal(t, []types.Server{
		{URL: "https://pets.test", Description: "Production"},
		{URL: "http://localhost:8080"},
	}, doc.Servers)
}

func TestBuilder_Build_WithTags(t *testing.T) {
	cfg := config.Default()
	cfg.OpenAPI.Tags = []config.TagConfig{
		{Name: "pets", Description: "Pet operations"},
	}

	doc, err := NewBuilder(cfg).Build(petRoutes(), nil)
	require.NoError(t, err)

	assert.Equal(t, []types.Tag{
		{Name: "pets", Description: "Pet operations"},
		{Name: "admin"},
	}, doc.Tags)
}

func TestBuilder_Build_WithContactAndLicense(t *testing.T) {
	cfg := config.Default()
	cfg.OpenAPI.Info.Contact = config.ContactConfig{Name: "Shelter", Email: "desk@pets.test"}
	cfg.OpenAPI.Info.License = config.LicenseConfig{Name: "MIT"}

	doc, err := NewBuilder(cfg).Build(ir.RouteTable{}, nil)
	require.NoError(t, err)

	require.NotNil(t, doc.Info.Contact)
	assert.Equal(t, "Shelter", doc.Info.Contact.Name)
	assert.Equal(t, "desk@pets.test", doc.Info.Contact.Email)
	require.NotNil(t, doc.Info.License)
	assert.Equal(t, "MIT", doc.Info.License.Name)
}

func TestBuilder_Build_InvalidMethod(t *testing.T) {
	var table ir.RouteTable
	table.Add("/pets", ir.Operation{Method: "connect"})

	_, err := NewBuilder(config.Default()).Build(table, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported HTTP method connect on /pets")
}

func TestSchemaRef(t *testing.T) {
	assert.Equal(t, "#/components/schemas/Pet", SchemaRef("Pet").Ref)
}

func TestSortedPaths(t *testing.T) {
	paths := types.Paths{
		"/pets/{petId}": {},
		"/owners":       {},
		"/pets":         {},
	}
	assert.Equal(t, []string{"/owners", "/pets", "/pets/{petId}"}, SortedPaths(paths))
}

func TestSortedSchemas(t *testing.T) {
	schemas := map[string]*types.Schema{"Pet": {}, "Error": {}, "Owner": {}}
	assert.Equal(t, []string{"Error", "Owner", "Pet"}, SortedSchemas(schemas))
}

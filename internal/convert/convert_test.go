// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package convert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/ktbridge/internal/ir"
	"github.com/api2spec/ktbridge/internal/schema"
)

const petModel = `package com.example.pets

/**
 * A pet in the store.
 * @param id unique id
 */
@Serializable
data class Pet(
    val id: Long,
    @SerialName("pet_name") val name: String,
    val tag: String? = null,
)

interface Named {
    val name: String
}
`

const petRoutes = `route("/pets") {
    /**
     * List all pets
     * @response 200 A paged array of pets
     */
    get { }
    post("/{petId}") { }
}
`

func TestModelToSchema(t *testing.T) {
	doc, err := ModelToSchema(petModel, Options{Schema: schema.Options{IDBase: "https://pets.example/"}})
	require.NoError(t, err)

	assert.Equal(t, "https://pets.example/Pet.schema.json", doc.ID)
	assert.Equal(t, "Pet", doc.Title)
	assert.Equal(t, "A pet in the store.", doc.Description)
	assert.Equal(t, []string{"id", "pet_name"}, doc.Required)
	assert.Equal(t, []string{"id", "pet_name", "tag"}, doc.Properties.Names())

	id, ok := doc.Properties.Get("id")
	require.True(t, ok)
	assert.Equal(t, "integer", id.Type)
	assert.Equal(t, "unique id", id.Description)
}

func TestModelToSchema_NoClass(t *testing.T) {
	_, err := ModelToSchema("fun main() { }", Options{})

	var nf *ir.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "class declaration", nf.Construct)
}

func TestModelToSchema_SyntaxError(t *testing.T) {
	_, err := ModelToSchema("data class Pet(val id: Long", Options{})
	require.Error(t, err)

	_, ok := Offset(err)
	assert.True(t, ok)
}

func TestModelToComponents(t *testing.T) {
	components, err := ModelToComponents(petModel, Options{})
	require.NoError(t, err)

	require.Len(t, components, 2)
	assert.Equal(t, []string{"id", "pet_name", "tag"}, components["Pet"].Properties.Names())
	assert.Equal(t, []string{"name"}, components["Named"].Properties.Names())
	assert.Equal(t, "object", components["Named"].Type)
}

func TestRoutesToPaths(t *testing.T) {
	paths, err := RoutesToPaths(petRoutes, Options{})
	require.NoError(t, err)

	require.Len(t, paths, 2)

	list := paths["/pets"].Get
	require.NotNil(t, list)
	assert.Equal(t, "List all pets", list.Description)
	assert.Equal(t, "get_pets", list.OperationID)
	assert.Equal(t, "A paged array of pets", list.Responses["200"].Description)

	create := paths["/pets/{petId}"].Post
	require.NotNil(t, create)
	assert.Equal(t, "post_pets_petId", create.OperationID)
}

func TestRoutesToPaths_NoRouteBlock(t *testing.T) {
	_, err := RoutesToPaths(petModel, Options{})

	var nf *ir.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

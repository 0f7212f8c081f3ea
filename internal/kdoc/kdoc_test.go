// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package kdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SimpleTags(t *testing.T) {
	raw := `/**
 * Get the list of cats.
 *
 * @param id The cat id
 * @response 200 A list of cats
 * @produces application/json
 */`

	f := Parse(raw)

	assert.Equal(t, "Get the list of cats.", f.Description)
	require.Len(t, f.Parameters, 1)
	assert.Equal(t, Param{Name: "id", Description: "The cat id"}, f.Parameters[0])
	require.Len(t, f.Responses, 1)
	assert.Equal(t, Response{Code: "200", Description: "A list of cats"}, f.Responses[0])
	assert.Equal(t, "application/json", f.Produces)
	assert.Nil(t, f.Body)
	assert.Empty(t, f.Method)
}

func TestParse_AnnotatedTags(t *testing.T) {
	raw := `/**
 * List all pets
 *
 * @summary List all pets
 * @operationId listPets
 * @tags pets, animals
 * @param limit (integer, required=false, in=query) How many items to return at one time (max 100)
 * @response 200 -> A paged array of pets (#/components/schemas/Pets)
 * @response default -> unexpected error (#/components/schemas/Error)
 * @body application/json -> #/components/schemas/Pet
 */`

	f := Parse(raw)

	assert.Equal(t, "List all pets", f.Description)
	assert.Equal(t, "List all pets", f.Summary)
	assert.Equal(t, "listPets", f.OperationID)
	assert.Equal(t, []string{"pets", "animals"}, f.Tags)

	p, ok := f.Param("limit")
	require.True(t, ok)
	assert.Equal(t, "integer", p.Type)
	assert.Equal(t, "query", p.In)
	require.NotNil(t, p.Required)
	assert.False(t, *p.Required)
	assert.Equal(t, "How many items to return at one time (max 100)", p.Description)

	r, ok := f.Response("200")
	require.True(t, ok)
	assert.Equal(t, "A paged array of pets", r.Description)
	assert.Equal(t, "#/components/schemas/Pets", r.SchemaRef)

	r, ok = f.Response("default")
	require.True(t, ok)
	assert.Equal(t, "#/components/schemas/Error", r.SchemaRef)

	require.NotNil(t, f.Body)
	assert.Equal(t, "application/json", f.Body.ContentType)
	assert.Equal(t, "#/components/schemas/Pet", f.Body.SchemaRef)
}

func TestParse_Description(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "single line", raw: "/** A cat. */", want: "A cat."},
		{name: "first paragraph only", raw: "/**\n * First line\n * continues here.\n *\n * Second paragraph.\n */", want: "First line continues here."},
		{name: "tag ends paragraph", raw: "/**\n * Summary\n * @param x the x\n */", want: "Summary"},
		{name: "no description", raw: "/**\n * @produces text/plain\n */", want: ""},
		{name: "leading blank lines", raw: "/**\n *\n *\n * Late start\n */", want: "Late start"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.raw).Description)
		})
	}
}

func TestParse_ContinuationAndUnknownTags(t *testing.T) {
	raw := `/**
 * Cat model.
 *
 * @param name the name
 *   spread over two lines
 * @since 1.0
 * @body A JSON object representing the cat.
 */`

	f := Parse(raw)

	p, ok := f.Param("name")
	require.True(t, ok)
	assert.Equal(t, "the name spread over two lines", p.Description)

	require.NotNil(t, f.Body)
	assert.Equal(t, "A JSON object representing the cat.", f.Body.Text)
	assert.Empty(t, f.Body.ContentType)
	assert.Empty(t, f.Body.SchemaRef)
}

func TestParse_TabSeparatedTags(t *testing.T) {
	raw := "/**\n * Show a cat.\n *\n * @param\tid\tThe cat id\n * @response  404\tnot found\n * @summary\tShow a cat\n */"

	f := Parse(raw)

	assert.Equal(t, "Show a cat", f.Summary)
	p, ok := f.Param("id")
	require.True(t, ok)
	assert.Equal(t, "The cat id", p.Description)
	require.Len(t, f.Responses, 1)
	assert.Equal(t, Response{Code: "404", Description: "not found"}, f.Responses[0])
}

func TestFields_IsZero(t *testing.T) {
	assert.True(t, Parse("/** */").IsZero())
	assert.True(t, Fields{Method: "get"}.IsZero())
	assert.False(t, Parse("/** x */").IsZero())

	_, ok := Fields{}.Param("missing")
	assert.False(t, ok)
}

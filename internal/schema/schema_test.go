// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/ktbridge/internal/ir"
	"github.com/api2spec/ktbridge/internal/kdoc"
	"github.com/api2spec/ktbridge/internal/parser"
	"github.com/api2spec/ktbridge/pkg/types"
)

func ptr(s string) *string { return &s }

const catSource = `/**
 * A cat living in the shelter.
 *
 * @param id unique identifier
 * @param name the cat's name
 */
data class Cat(
    val id: Long,
    @SerialName("cat_name") val name: String = "tom",
    val weight: Double? = null,
    val tags: List<String> = listOf(),
    val scores: Map<String, Int> = mapOf(),
    /** Whether the cat is indoor only. */
    val indoor: Boolean,
    val age: Int = 3,
    val owner: Owner
)
`

func TestFromRecord_Source(t *testing.T) {
	file, err := parser.ParseString(catSource)
	require.NoError(t, err)
	rec, doc, err := ir.ExtractRecord(file)
	require.NoError(t, err)

	out, err := json.Marshal(FromRecord(rec, doc, Options{}))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"$id": "https://example.com/Cat.schema.json",
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"title": "Cat",
		"description": "A cat living in the shelter.",
		"type": "object",
		"properties": {
			"id": {"type": "integer", "description": "unique identifier"},
			"cat_name": {"type": "string", "description": "the cat's name", "default": "tom"},
			"weight": {"type": "number"},
			"tags": {"type": "array", "items": {"type": "string"}},
			"scores": {"type": "object", "additionalProperties": {"type": "integer"}},
			"indoor": {"type": "boolean", "description": "Whether the cat is indoor only."},
			"age": {"type": "integer", "default": 3},
			"owner": {}
		},
		"required": ["id", "indoor", "owner"]
	}`, string(out))
}

func TestFromRecord_Options(t *testing.T) {
	js := FromRecord(ir.Record{Name: "Pet"}, kdoc.Fields{}, Options{
		IDBase:  "https://pets.test/schemas",
		Dialect: "http://json-schema.org/draft-07/schema#",
	})

	assert.Equal(t, "https://pets.test/schemas/Pet.schema.json", js.ID)
	assert.Equal(t, "http://json-schema.org/draft-07/schema#", js.Schema)
	assert.Empty(t, js.Properties)
	assert.Empty(t, js.Required)
}

func TestRecordRoundTrip(t *testing.T) {
	rec := ir.Record{Name: "Pet", Fields: []ir.Field{
		{Name: "id", Type: ir.ScalarType(ir.Integer), Required: true},
		{Name: "tag", Type: ir.ScalarType(ir.String)},
	}}

	js := FromRecord(rec, kdoc.Fields{}, Options{})
	assert.Equal(t, []string{"id"}, js.Required)

	back, _ := ToRecord(js)
	assert.Equal(t, "Pet", back.Name)
	assert.ElementsMatch(t, rec.Fields, back.Fields)

	// through serialized JSON as well
	data, err := json.Marshal(js)
	require.NoError(t, err)
	parsed, err := Parse(data)
	require.NoError(t, err)
	back, _ = ToRecord(parsed)
	assert.ElementsMatch(t, rec.Fields, back.Fields)
}

func TestFromRecord_Required(t *testing.T) {
	rec := ir.Record{Name: "Pet", Fields: []ir.Field{
		{Name: "id", Type: ir.ScalarType(ir.Integer), Required: true},
		{Name: "tag", Type: ir.ScalarType(ir.String)},
		{Name: "nick", Type: ir.ScalarType(ir.String), Default: ptr("null")},
		{Name: "age", Type: ir.ScalarType(ir.Integer), Required: true, Default: ptr("3")},
	}}

	js := FromRecord(rec, kdoc.Fields{}, Options{})
	assert.Equal(t, []string{"id"}, js.Required)

	age, _ := js.Properties.Get("age")
	assert.Equal(t, int64(3), age.Default)
	nick, _ := js.Properties.Get("nick")
	assert.Nil(t, nick.Default)

	back, _ := ToRecord(js)
	tag, ok := back.Field("tag")
	require.True(t, ok)
	assert.False(t, tag.Required)
	assert.Nil(t, tag.Default)
}

func TestRecordRoundTrip_Defaults(t *testing.T) {
	rec := ir.Record{Name: "Settings", Fields: []ir.Field{
		{Name: "title", Type: ir.ScalarType(ir.String), Default: ptr(`"a \"b\""`)},
		{Name: "ratio", Type: ir.ScalarType(ir.Number), Default: ptr("2.0")},
		{Name: "scale", Type: ir.ScalarType(ir.Number), Default: ptr("0.25")},
		{Name: "count", Type: ir.ScalarType(ir.Integer), Default: ptr("-4")},
		{Name: "on", Type: ir.ScalarType(ir.Boolean), Default: ptr("true")},
	}}

	data, err := json.Marshal(FromRecord(rec, kdoc.Fields{}, Options{}))
	require.NoError(t, err)
	parsed, err := Parse(data)
	require.NoError(t, err)

	back, _ := ToRecord(parsed)
	assert.Equal(t, rec.Fields, back.Fields)
}

func TestContainerFidelity(t *testing.T) {
	js, err := Parse([]byte(`{
  "title": "Box",
  "type": "object",
  "properties": {
    "labels": {"type": "array", "items": {"type": "string"}},
    "weights": {"type": "object", "additionalProperties": {"type": "number"}}
  },
  "required": ["labels", "weights"]
}`))
	require.NoError(t, err)

	rec, _ := ToRecord(js)
	require.Len(t, rec.Fields, 2)
	assert.Equal(t, "List<String>", rec.Fields[0].Type.SourceString())
	assert.Equal(t, "Map<String, Double>", rec.Fields[1].Type.SourceString())

	again := FromRecord(rec, kdoc.Fields{}, Options{})
	labels, _ := again.Properties.Get("labels")
	assert.Equal(t, &types.Schema{Type: "array", Items: &types.Schema{Type: "string"}}, labels)
	weights, _ := again.Properties.Get("weights")
	assert.Equal(t, &types.Schema{Type: "object", AdditionalProperties: &types.Schema{Type: "number"}}, weights)
}

func TestToRecord(t *testing.T) {
	var props types.Properties
	props.Set("id", &types.Schema{Type: "integer", Description: "the id"})
	props.Set("nick", &types.Schema{Type: "string"})
	props.Set("extra", &types.Schema{})
	props.Set("owner", types.ComponentRef("Owner"))

	rec, doc := ToRecord(&types.JSONSchema{
		Title:       "Pet",
		Description: "A pet.",
		Type:        "object",
		Properties:  props,
		Required:    []string{"id", "owner"},
	})

	assert.Equal(t, []ir.Field{
		{Name: "id", Type: ir.ScalarType(ir.Integer), Required: true},
		{Name: "nick", Type: ir.ScalarType(ir.String)},
		{Name: "extra", Type: ir.ScalarType(ir.Any)},
		{Name: "owner", Type: ir.ScalarType(ir.Any), Required: true},
	}, rec.Fields)
	assert.Equal(t, "A pet.", doc.Description)
	assert.Equal(t, []kdoc.Param{{Name: "id", Description: "the id"}}, doc.Parameters)
}

func TestDefaultValue(t *testing.T) {
	tests := []struct {
		text string
		want any
	}{
		{"null", nil},
		{`"tom"`, "tom"},
		{`"a\tb"`, "a\tb"},
		{`"""raw $x"""`, "raw $x"},
		{"42", int64(42)},
		{"10L", int64(10)},
		{"-1", int64(-1)},
		{"2.5", 2.5},
		{"1.5f", 1.5},
		{"true", true},
		{"false", false},
		{"listOf()", nil},
		{"NaN", nil},
		{"Color.RED", nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultValue(tt.text))
		})
	}
}

func TestSourceLiteral(t *testing.T) {
	assert.Equal(t, `"tom"`, SourceLiteral("tom", ir.ScalarType(ir.String)))
	assert.Equal(t, "2.0", SourceLiteral(2, ir.ScalarType(ir.Number)))
	assert.Equal(t, "2", SourceLiteral(float64(2), ir.ScalarType(ir.Integer)))
	assert.Equal(t, "0.5", SourceLiteral(0.5, ir.ScalarType(ir.Number)))
	assert.Equal(t, "false", SourceLiteral(false, ir.ScalarType(ir.Boolean)))
	assert.Equal(t, "null", SourceLiteral([]any{1}, ir.ListOf(ir.Integer)))
}

func TestScalarKindRoundTrip(t *testing.T) {
	for _, k := range []ir.ScalarKind{ir.String, ir.Number, ir.Integer, ir.Boolean} {
		assert.Equal(t, ir.ScalarType(k), TypeOf(FieldSchema(ir.ScalarType(k))), string(k))
		assert.Equal(t, k, ir.ScalarOf(ir.SourceName(k)), string(k))
	}
	assert.Equal(t, &types.Schema{}, FieldSchema(ir.ScalarType(ir.Any)))
}

func TestComponents(t *testing.T) {
	rec := ir.Record{Name: "Pet", Fields: []ir.Field{
		{Name: "id", Type: ir.ScalarType(ir.Integer), Required: true},
	}}
	doc := FromRecord(rec, kdoc.Fields{Description: "A pet."}, Options{})

	c := ToComponent(doc)
	assert.Equal(t, "object", c.Type)
	assert.Equal(t, "Pet", c.Title)
	assert.Equal(t, "A pet.", c.Description)
	assert.Equal(t, []string{"id"}, c.Required)

	back, err := FromComponent("Pet", c, Options{})
	require.NoError(t, err)
	assert.Equal(t, doc, back)

	_, err = FromComponent("Names", &types.Schema{Type: "array"}, Options{})
	var shape *ShapeError
	require.ErrorAs(t, err, &shape)
	assert.Equal(t, "/components/schemas/Names/type: expected \"object\", got array", err.Error())
}

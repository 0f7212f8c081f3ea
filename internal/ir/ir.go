// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package ir defines the intermediate representation that sits between the
// syntax tree and the schema documents: records (data classes) and route
// tables (route blocks).
package ir

import (
	"fmt"
	"strings"

	"github.com/api2spec/ktbridge/internal/kdoc"
)

// ScalarKind is the JSON kind of a value.
type ScalarKind string

const (
	String  ScalarKind = "string"
	Number  ScalarKind = "number"
	Integer ScalarKind = "integer"
	Boolean ScalarKind = "boolean"
	Any     ScalarKind = "any"
)

// Container says whether a field holds one value, a list or a map.
type Container int

const (
	Scalar Container = iota
	List
	Map
)

func (c Container) String() string {
	switch c {
	case List:
		return "List"
	case Map:
		return "Map"
	default:
		return "Scalar"
	}
}

// FieldType is a scalar or a container of scalars. For maps, Of is the
// value kind; keys are always strings.
type FieldType struct {
	Container Container
	Of        ScalarKind
}

// ScalarType returns a non-container type of kind k.
func ScalarType(k ScalarKind) FieldType {
	return FieldType{Container: Scalar, Of: k}
}

// ListOf returns a list of k.
func ListOf(k ScalarKind) FieldType {
	return FieldType{Container: List, Of: k}
}

// MapOf returns a string-keyed map of k.
func MapOf(k ScalarKind) FieldType {
	return FieldType{Container: Map, Of: k}
}

// SourceString renders the type in source syntax, e.g. "List<String>".
func (t FieldType) SourceString() string {
	name := SourceName(t.Of)
	switch t.Container {
	case List:
		return "List<" + name + ">"
	case Map:
		return "Map<String, " + name + ">"
	default:
		return name
	}
}

func (t FieldType) String() string {
	return t.SourceString()
}

// MarshalText writes the source form, so dumps read like declarations.
func (t FieldType) MarshalText() ([]byte, error) {
	return []byte(t.SourceString()), nil
}

// Field is one record field.
type Field struct {
	Name string    `json:"name" yaml:"name"`
	Type FieldType `json:"type" yaml:"type"`
	// Default is the default expression as written in source, e.g. `"tom"`
	// or `null`. Nil means no default.
	Default *string `json:"default,omitempty" yaml:"default,omitempty"`
	// Alias is the serialized name taken from an annotation.
	Alias    string `json:"alias,omitempty" yaml:"alias,omitempty"`
	Required bool   `json:"required" yaml:"required"`
}

// Key returns the serialized property name.
func (f Field) Key() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// Record is a named, ordered list of fields.
type Record struct {
	Name   string  `json:"name" yaml:"name"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Field looks up a field by its source name.
func (r Record) Field(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Model pairs a record with its documentation.
type Model struct {
	Record Record      `json:"record" yaml:"record"`
	Doc    kdoc.Fields `json:"doc" yaml:"doc"`
}

// Parameter is one operation parameter.
type Parameter struct {
	Name        string     `json:"name" yaml:"name"`
	In          string     `json:"in" yaml:"in"`
	Required    bool       `json:"required" yaml:"required"`
	Type        ScalarKind `json:"type" yaml:"type"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
}

// Response is one documented status code.
type Response struct {
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	SchemaRef   string `json:"schemaRef,omitempty" yaml:"schemaRef,omitempty"`
}

// Content maps a media type to the schema it carries.
type Content struct {
	ContentType string `json:"contentType" yaml:"contentType"`
	SchemaRef   string `json:"schemaRef,omitempty" yaml:"schemaRef,omitempty"`
}

// Operation is one HTTP method on a path.
type Operation struct {
	Method      string      `json:"method" yaml:"method"`
	Summary     string      `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string      `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Tags        []string    `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters  []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses   []Response  `json:"responses,omitempty" yaml:"responses,omitempty"`
	RequestBody []Content   `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	// BodyDescription documents the request body.
	BodyDescription string `json:"bodyDescription,omitempty" yaml:"bodyDescription,omitempty"`
	Produces        string `json:"produces,omitempty" yaml:"produces,omitempty"`
}

// Response looks up a response by status code.
func (o Operation) Response(code string) (Response, bool) {
	for _, r := range o.Responses {
		if r.Code == code {
			return r, true
		}
	}
	return Response{}, false
}

// PathRoutes holds the operations declared for one path.
type PathRoutes struct {
	Path       string      `json:"path" yaml:"path"`
	Operations []Operation `json:"operations" yaml:"operations"`
}

// RouteTable maps paths to operations, in declaration order.
type RouteTable struct {
	Paths []PathRoutes `json:"paths" yaml:"paths"`
}

// Add appends ops to path, creating the path on first use.
func (t *RouteTable) Add(path string, ops ...Operation) {
	for i := range t.Paths {
		if t.Paths[i].Path == path {
			t.Paths[i].Operations = append(t.Paths[i].Operations, ops...)
			return
		}
	}
	t.Paths = append(t.Paths, PathRoutes{Path: path, Operations: ops})
}

// Merge appends every path of other.
func (t *RouteTable) Merge(other RouteTable) {
	for _, p := range other.Paths {
		t.Add(p.Path, p.Operations...)
	}
}

// Operations returns the operations of path.
func (t RouteTable) Operations(path string) ([]Operation, bool) {
	for _, p := range t.Paths {
		if p.Path == path {
			return p.Operations, true
		}
	}
	return nil, false
}

// Len returns the total number of operations.
func (t RouteTable) Len() int {
	n := 0
	for _, p := range t.Paths {
		n += len(p.Operations)
	}
	return n
}

// NotFoundError reports that a requested construct is absent from a file.
type NotFoundError struct {
	Construct string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s found", e.Construct)
}

// source type names, by ScalarKind, used when going back to source.
var sourceNames = map[ScalarKind]string{
	String:  "String",
	Number:  "Double",
	Integer: "Int",
	Boolean: "Boolean",
	Any:     "Any",
}

var scalarKinds = map[string]ScalarKind{
	"String":  String,
	"Char":    String,
	"Int":     Integer,
	"Long":    Integer,
	"Short":   Integer,
	"Byte":    Integer,
	"Double":  Number,
	"Float":   Number,
	"Boolean": Boolean,
}

var containers = map[string]Container{
	"List":        List,
	"MutableList": List,
	"Set":         List,
	"MutableSet":  List,
	"Array":       List,
	"Collection":  List,
	"Map":         Map,
	"MutableMap":  Map,
	"HashMap":     Map,
}

// ScalarOf maps a source type name to its JSON kind. Unknown names are Any.
func ScalarOf(name string) ScalarKind {
	if k, ok := scalarKinds[name]; ok {
		return k
	}
	return Any
}

// SourceName maps a JSON kind back to a source type name.
func SourceName(k ScalarKind) string {
	if name, ok := sourceNames[k]; ok {
		return name
	}
	return "Any"
}

// ParseKind maps a JSON type name to a ScalarKind. Unknown names are Any.
func ParseKind(s string) ScalarKind {
	switch k := ScalarKind(strings.ToLower(strings.TrimSpace(s))); k {
	case String, Number, Integer, Boolean:
		return k
	}
	return Any
}

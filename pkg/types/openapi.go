// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package types provides the document models shared by the generators: the
// OpenAPI document, its schema objects and standalone JSON Schema documents.
package types

import "strings"

// OpenAPI represents a complete OpenAPI 3.0/3.1 specification document.
type OpenAPI struct {
	// OpenAPI is the OpenAPI specification version (e.g., "3.0.3", "3.1.0")
	OpenAPI string `json:"openapi" yaml:"openapi"`

	// Info provides metadata about the API
	Info Info `json:"info" yaml:"info"`

	// Servers is a list of server objects
	Servers []Server `json:"servers,omitempty" yaml:"servers,omitempty"`

	// Paths holds the available paths and operations
	Paths Paths `json:"paths,omitempty" yaml:"paths,omitempty"`

	// Components holds reusable objects
	Components *Components `json:"components,omitempty" yaml:"components,omitempty"`

	// Tags is a list of tags used by the specification
	Tags []Tag `json:"tags,omitempty" yaml:"tags,omitempty"`

	// ExternalDocs provides external documentation
	ExternalDocs *ExternalDocs `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
}

// Info provides metadata about the API.
type Info struct {
	// Title is the title of the API
	Title string `json:"title" yaml:"title"`

	// Description is a description of the API
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// TermsOfService is a URL to the Terms of Service
	TermsOfService string `json:"termsOfService,omitempty" yaml:"termsOfService,omitempty"`

	// Contact provides contact information
	Contact *Contact `json:"contact,omitempty" yaml:"contact,omitempty"`

	// License provides license information
	License *License `json:"license,omitempty" yaml:"license,omitempty"`

	// Version is the version of the API
	Version string `json:"version" yaml:"version"`
}

// Contact provides contact information.
type Contact struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// License provides license information.
type License struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Server represents an API server.
type Server struct {
	// URL is the URL of the server
	URL string `json:"url" yaml:"url"`

	// Description is a description of the server
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Paths maps path templates to path items.
type Paths map[string]PathItem

// Methods lists the HTTP methods a path item can hold, in the order they
// are written out.
var Methods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// PathItem represents an API path.
type PathItem struct {
	// Summary is a brief summary
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Description is a detailed description
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Get is the GET operation
	Get *Operation `json:"get,omitempty" yaml:"get,omitempty"`

	// Put is the PUT operation
	Put *Operation `json:"put,omitempty" yaml:"put,omitempty"`

	// Post is the POST operation
	Post *Operation `json:"post,omitempty" yaml:"post,omitempty"`

	// Delete is the DELETE operation
	Delete *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`

	// Options is the OPTIONS operation
	Options *Operation `json:"options,omitempty" yaml:"options,omitempty"`

	// Head is the HEAD operation
	Head *Operation `json:"head,omitempty" yaml:"head,omitempty"`

	// Patch is the PATCH operation
	Patch *Operation `json:"patch,omitempty" yaml:"patch,omitempty"`

	// Trace is the TRACE operation
	Trace *Operation `json:"trace,omitempty" yaml:"trace,omitempty"`

	// Parameters are parameters for all operations on this path
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

func (p *PathItem) slot(method string) **Operation {
	switch strings.ToLower(method) {
	case "get":
		return &p.Get
	case "put":
		return &p.Put
	case "post":
		return &p.Post
	case "delete":
		return &p.Delete
	case "options":
		return &p.Options
	case "head":
		return &p.Head
	case "patch":
		return &p.Patch
	case "trace":
		return &p.Trace
	}
	return nil
}

// Operation returns the operation for method, or nil.
func (p *PathItem) Operation(method string) *Operation {
	if s := p.slot(method); s != nil {
		return *s
	}
	return nil
}

// SetOperation stores op under method. It reports false for methods a path
// item cannot hold.
func (p *PathItem) SetOperation(method string, op *Operation) bool {
	s := p.slot(method)
	if s == nil {
		return false
	}
	*s = op
	return true
}

// MethodOperation pairs an operation with its lower-case method.
type MethodOperation struct {
	Method    string
	Operation *Operation
}

// Operations returns the defined operations in Methods order.
func (p *PathItem) Operations() []MethodOperation {
	var ops []MethodOperation
	for _, m := range Methods {
		if op := p.Operation(m); op != nil {
			ops = append(ops, MethodOperation{Method: m, Operation: op})
		}
	}
	return ops
}

// Operation represents an API operation.
type Operation struct {
	// Tags is a list of tags
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Summary is a brief summary
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Description is a detailed description
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// OperationID is a unique identifier
	OperationID string `json:"operationId,omitempty" yaml:"operationId,omitempty"`

	// Parameters is a list of parameters
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// RequestBody is the request body
	RequestBody *RequestBody `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`

	// Responses is a map of responses
	Responses map[string]Response `json:"responses,omitempty" yaml:"responses,omitempty"`

	// Deprecated indicates if the operation is deprecated
	Deprecated bool `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// Components holds reusable objects.
type Components struct {
	// Schemas is a map of schema objects
	Schemas map[string]*Schema `json:"schemas,omitempty" yaml:"schemas,omitempty"`

	// Responses is a map of response objects
	Responses map[string]Response `json:"responses,omitempty" yaml:"responses,omitempty"`

	// Parameters is a map of parameter objects
	Parameters map[string]Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// RequestBodies is a map of request body objects
	RequestBodies map[string]RequestBody `json:"requestBodies,omitempty" yaml:"requestBodies,omitempty"`
}

// Tag represents a tag object.
type Tag struct {
	// Name is the name of the tag
	Name string `json:"name" yaml:"name"`

	// Description is a description of the tag
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ExternalDocs provides external documentation.
type ExternalDocs struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string `json:"url" yaml:"url"`
}

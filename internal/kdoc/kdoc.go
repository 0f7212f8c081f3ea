// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package kdoc interprets "/** ... */" documentation comments.
//
// The first paragraph becomes the description. Tag lines start with "@";
// lines that follow a tag without starting a new one continue it.
// Recognized tags:
//
//	@summary text
//	@operationId id
//	@tags a, b
//	@param name [(type, required=bool, in=location)] text
//	@response code [->] text [(#/components/schemas/X)]
//	@produces media/type
//	@body text | @body media/type -> #/components/schemas/X
//
// Unknown tags are ignored.
package kdoc

import (
	"strconv"
	"strings"
	"unicode"
)

// Param documents one operation parameter.
type Param struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	In          string `json:"in,omitempty" yaml:"in,omitempty"`
	Required    *bool  `json:"required,omitempty" yaml:"required,omitempty"`
}

// Response documents one response status.
type Response struct {
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	SchemaRef   string `json:"schemaRef,omitempty" yaml:"schemaRef,omitempty"`
}

// Body documents the request body.
type Body struct {
	Text        string `json:"text,omitempty" yaml:"text,omitempty"`
	ContentType string `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	SchemaRef   string `json:"schemaRef,omitempty" yaml:"schemaRef,omitempty"`
}

// Fields is the interpreted content of a doc comment.
type Fields struct {
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Summary     string     `json:"summary,omitempty" yaml:"summary,omitempty"`
	OperationID string     `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Tags        []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters  []Param    `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses   []Response `json:"responses,omitempty" yaml:"responses,omitempty"`
	Produces    string     `json:"produces,omitempty" yaml:"produces,omitempty"`
	Body        *Body      `json:"body,omitempty" yaml:"body,omitempty"`

	// Method is set for route-method doc comments to the HTTP verb.
	Method string `json:"method,omitempty" yaml:"method,omitempty"`
}

// Param looks up a documented parameter by name.
func (f Fields) Param(name string) (Param, bool) {
	for _, p := range f.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Response looks up a documented response by status code.
func (f Fields) Response(code string) (Response, bool) {
	for _, r := range f.Responses {
		if r.Code == code {
			return r, true
		}
	}
	return Response{}, false
}

// IsZero reports whether nothing was documented.
func (f Fields) IsZero() bool {
	return f.Description == "" && f.Summary == "" && f.OperationID == "" &&
		len(f.Tags) == 0 && len(f.Parameters) == 0 && len(f.Responses) == 0 &&
		f.Produces == "" && f.Body == nil
}

// Parse interprets the raw comment text, delimiters included.
func Parse(raw string) Fields {
	var f Fields
	lines := cleanLines(raw)

	var description []string
	i := 0
	for ; i < len(lines); i++ {
		line := lines[i]
		if strings.HasPrefix(line, "@") {
			break
		}
		if line == "" {
			if len(description) > 0 {
				break
			}
			continue
		}
		description = append(description, line)
	}
	f.Description = strings.Join(description, " ")

	for _, tag := range collectTags(lines[i:]) {
		f.apply(tag.name, tag.text)
	}
	return f
}

type tagLine struct {
	name string
	text string
}

func collectTags(lines []string) []tagLine {
	var tags []tagLine
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "@"):
			name, text := cutSpace(line[1:])
			tags = append(tags, tagLine{name: name, text: strings.TrimSpace(text)})
		case line != "" && len(tags) > 0:
			last := &tags[len(tags)-1]
			if last.text == "" {
				last.text = line
			} else {
				last.text += " " + line
			}
		}
	}
	return tags
}

// cutSpace splits s around its first run of whitespace.
func cutSpace(s string) (head, rest string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}

// cleanLines strips the comment delimiters and leading "*" gutters.
func cleanLines(raw string) []string {
	body := strings.TrimSpace(raw)
	body = strings.TrimPrefix(body, "/**")
	body = strings.TrimSuffix(body, "*/")

	parts := strings.Split(body, "\n")
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.TrimPrefix(p, "*")
		lines = append(lines, strings.TrimSpace(p))
	}
	return lines
}

func (f *Fields) apply(name, text string) {
	switch name {
	case "summary":
		f.Summary = text
	case "operationId":
		f.OperationID = text
	case "tags":
		for _, t := range strings.Split(text, ",") {
			if t = strings.TrimSpace(t); t != "" {
				f.Tags = append(f.Tags, t)
			}
		}
	case "param":
		if p, ok := parseParam(text); ok {
			f.Parameters = append(f.Parameters, p)
		}
	case "response":
		if r, ok := parseResponse(text); ok {
			f.Responses = append(f.Responses, r)
		}
	case "produces":
		f.Produces = text
	case "body":
		f.Body = parseBody(text)
	}
}

func parseParam(text string) (Param, bool) {
	name, rest := cutSpace(text)
	if name == "" {
		return Param{}, false
	}
	p := Param{Name: name}
	rest = strings.TrimSpace(rest)

	if strings.HasPrefix(rest, "(") {
		if end := strings.Index(rest, ")"); end > 0 {
			for _, item := range strings.Split(rest[1:end], ",") {
				item = strings.TrimSpace(item)
				key, value, hasValue := strings.Cut(item, "=")
				key = strings.TrimSpace(key)
				value = strings.TrimSpace(value)
				switch {
				case !hasValue && item != "":
					p.Type = item
				case key == "required":
					if b, err := strconv.ParseBool(value); err == nil {
						p.Required = &b
					}
				case key == "in":
					p.In = value
				case key == "type":
					p.Type = value
				}
			}
			rest = strings.TrimSpace(rest[end+1:])
		}
	}
	p.Description = rest
	return p, true
}

func parseResponse(text string) (Response, bool) {
	code, rest := cutSpace(text)
	if code == "" {
		return Response{}, false
	}
	r := Response{Code: code}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimSpace(strings.TrimPrefix(rest, "->"))

	if strings.HasSuffix(rest, ")") {
		if open := strings.LastIndex(rest, "("); open >= 0 {
			ref := strings.TrimSpace(rest[open+1 : len(rest)-1])
			if strings.HasPrefix(ref, "#/") {
				r.SchemaRef = ref
				rest = strings.TrimSpace(rest[:open])
			}
		}
	}
	r.Description = rest
	return r, true
}

func parseBody(text string) *Body {
	b := &Body{Text: text}
	if left, right, ok := strings.Cut(text, "->"); ok {
		left = strings.TrimSpace(left)
		right = strings.TrimSpace(right)
		if strings.Contains(left, "/") && !strings.Contains(left, " ") {
			b.ContentType = left
		}
		if strings.HasPrefix(right, "#/") {
			b.SchemaRef = right
		}
	}
	return b
}

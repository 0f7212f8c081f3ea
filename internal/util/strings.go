// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package util provides identifier helpers shared by the generators.
package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToLowerCamelCase converts PascalCase to camelCase.
func ToLowerCamelCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// Words splits s on every character that is not a letter or digit.
func Words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// TypeName turns a schema or component name such as "pet_owner" or
// "pet-owner" into a type name, "PetOwner". Existing inner capitals are
// kept. A leading digit gets an underscore prefix.
func TypeName(s string) string {
	titleCaser := cases.Title(language.English, cases.NoLower)

	var sb strings.Builder
	for _, word := range Words(s) {
		sb.WriteString(titleCaser.String(word))
	}
	name := sb.String()
	if name != "" && unicode.IsDigit([]rune(name)[0]) {
		name = "_" + name
	}
	return name
}

// FieldName turns a property key such as "cat_name" into a field name,
// "catName".
func FieldName(s string) string {
	return ToLowerCamelCase(TypeName(s))
}

// IsIdentifier reports whether s can be used as a name in source without
// escaping.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// Pluralize appends a plural "s" to a lower-camel name unless it already
// ends in one. It is used for repository and collection names.
func Pluralize(s string) string {
	if s == "" || strings.HasSuffix(s, "s") {
		return s
	}
	if strings.HasSuffix(s, "y") && len(s) > 1 && !strings.ContainsRune("aeiou", rune(s[len(s)-2])) {
		return s[:len(s)-1] + "ies"
	}
	return s + "s"
}

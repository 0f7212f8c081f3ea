// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package convert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/api2spec/ktbridge/internal/lexer"
)

func TestPosition(t *testing.T) {
	src := "ab\ncde\n"

	tests := []struct {
		offset    int
		line, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{5, 2, 3},
		{-4, 1, 1},
		{100, 3, 1},
	}
	for _, tt := range tests {
		line, col := Position(src, tt.offset)
		assert.Equal(t, tt.line, line, "offset %d", tt.offset)
		assert.Equal(t, tt.col, col, "offset %d", tt.offset)
	}
}

func TestSnippet(t *testing.T) {
	src := "data class Pet(\n    val 1d: Long,\n)"
	err := &lexer.Error{Offset: 24, Msg: "identifier starts with a digit"}

	expected := "Pet.kt:2:9: lex error at position 24: identifier starts with a digit\n\n" +
		"   1 | data class Pet(\n" +
		"   2 |     val 1d: Long,\n" +
		"     |         ^\n" +
		"   3 | )\n"
	assert.Equal(t, expected, Snippet("Pet.kt", src, err))
}

func TestSnippet_NoPosition(t *testing.T) {
	assert.Equal(t, "Pet.kt: boom", Snippet("Pet.kt", "x", errors.New("boom")))
}

func TestFileError(t *testing.T) {
	inner := &lexer.Error{Offset: 0, Msg: "bad"}
	err := &FileError{Path: "a.kt", Src: "1x", Err: inner}

	assert.Equal(t, "a.kt: lex error at position 0: bad", err.Error())

	var lexErr *lexer.Error
	assert.True(t, errors.As(err, &lexErr))
	assert.Contains(t, err.Snippet(), "a.kt:1:1:")
}

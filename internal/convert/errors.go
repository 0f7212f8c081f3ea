// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package convert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/api2spec/ktbridge/internal/lexer"
	"github.com/api2spec/ktbridge/internal/parser"
)

// FileError ties a failure to the file it happened in.
type FileError struct {
	Path string
	// Src is the normalized source text, used to render snippets.
	Src string
	Err error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Snippet renders the error with the offending source line when the
// underlying error carries a position.
func (e *FileError) Snippet() string {
	return Snippet(e.Path, e.Src, e.Err)
}

// Offset returns the byte offset of a lexer or parser error.
func Offset(err error) (int, bool) {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return lexErr.Offset, true
	}
	var synErr *parser.SyntaxError
	if errors.As(err, &synErr) {
		return synErr.Offset, true
	}
	return 0, false
}

// Position converts a byte offset into 1-based line and column numbers.
// Offsets outside src are clamped.
func Position(src string, offset int) (line, col int) {
	offset = max(0, min(offset, len(src)))
	before := src[:offset]
	line = strings.Count(before, "\n") + 1
	col = offset - strings.LastIndexByte(before, '\n')
	return line, col
}

// Snippet formats err as
//
//	Pet.kt:3:12: expected ')', got '}' at position 40
//
//	   2 | data class Pet(
//	   3 |     val id: Long}
//	     |                 ^
//
// with one line of context on each side. Errors without a position are
// returned as "name: message".
func Snippet(name, src string, err error) string {
	offset, ok := Offset(err)
	if !ok {
		return fmt.Sprintf("%s: %v", name, err)
	}

	line, col := Position(src, offset)
	lines := strings.Split(src, "\n")

	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%d: %v\n\n", name, line, col, err)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}

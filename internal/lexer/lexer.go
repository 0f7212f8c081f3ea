// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package lexer splits Kotlin-like source text into a lossless token stream.
//
// Every byte of the input belongs to exactly one token, so concatenating the
// Text of all tokens reproduces the source. Whitespace and comments are kept
// as tokens; the parser decides where they are allowed.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxDepth bounds string interpolation nesting.
const DefaultMaxDepth = 256

// Error reports malformed input at a byte offset.
type Error struct {
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex error at position %d: %s", e.Offset, e.Msg)
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithMaxDepth sets the maximum nesting of "${...}" interpolations.
func WithMaxDepth(n int) Option {
	return func(l *Lexer) {
		if n > 0 {
			l.maxDepth = n
		}
	}
}

// Lexer holds the scanning state for one source string.
type Lexer struct {
	src      string
	pos      int
	depth    int
	maxDepth int
	tokens   []Token
}

// New creates a Lexer for src.
func New(src string, opts ...Option) *Lexer {
	l := &Lexer{src: src, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Tokenize is shorthand for New(src, opts...).Tokenize().
func Tokenize(src string, opts ...Option) ([]Token, error) {
	return New(src, opts...).Tokenize()
}

// Tokenize scans the whole input. The last token is always EOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	l.pos = 0
	l.depth = 0
	l.tokens = make([]Token, 0, len(l.src)/3+1)

	for l.pos < len(l.src) {
		if err := l.next(); err != nil {
			return nil, err
		}
	}
	l.emit(EOF, l.pos)
	return l.tokens, nil
}

func (l *Lexer) emit(kind Kind, start int) {
	l.tokens = append(l.tokens, Token{
		Kind: kind,
		Text: l.src[start:l.pos],
		Span: Span{Start: start, End: l.pos},
	})
}

func (l *Lexer) errorf(offset int, format string, args ...any) error {
	return &Error{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func (l *Lexer) rest() string {
	return l.src[l.pos:]
}

func (l *Lexer) peekRune(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos+offset:])
	return r
}

// next scans exactly one lexeme (or, for strings, one literal) at l.pos.
func (l *Lexer) next() error {
	start := l.pos
	r, size := utf8.DecodeRuneInString(l.rest())

	switch {
	case unicode.IsSpace(r):
		for l.pos < len(l.src) {
			r, size := utf8.DecodeRuneInString(l.rest())
			if !unicode.IsSpace(r) {
				break
			}
			l.pos += size
		}
		l.emit(Whitespace, start)
		return nil

	case strings.HasPrefix(l.rest(), "//"):
		end := strings.IndexByte(l.rest(), '\n')
		if end < 0 {
			end = len(l.rest())
		}
		l.pos += end
		l.emit(Comment, start)
		return nil

	case strings.HasPrefix(l.rest(), "/*"):
		return l.lexBlockComment()

	case isDigit(r):
		return l.lexNumber()

	case isIdentStart(r):
		l.lexIdentifier(true)
		return nil

	case r == '"':
		return l.lexString()

	case r == '\'':
		return l.lexChar()
	}

	for _, sym := range symbols {
		if strings.HasPrefix(l.rest(), sym.text) {
			l.pos += len(sym.text)
			l.emit(sym.kind, start)
			return nil
		}
	}

	l.pos += size
	l.emit(Unknown, start)
	return nil
}

func (l *Lexer) lexBlockComment() error {
	start := l.pos
	l.pos += 2
	depth := 1
	for depth > 0 {
		switch {
		case l.pos >= len(l.src):
			return l.errorf(start, "unterminated block comment")
		case strings.HasPrefix(l.rest(), "/*"):
			depth++
			l.pos += 2
		case strings.HasPrefix(l.rest(), "*/"):
			depth--
			l.pos += 2
		default:
			l.pos++
		}
	}
	l.emit(Comment, start)
	return nil
}

func (l *Lexer) lexNumber() error {
	start := l.pos
	kind := Int
	l.skipDigits()

	// "1..2" is a range, "1.5" a fraction.
	if l.peekRune(0) == '.' && isDigit(l.peekRune(1)) {
		kind = Double
		l.pos++
		l.skipDigits()
	}

	if c := l.peekRune(0); c == 'e' || c == 'E' {
		next := l.peekRune(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekRune(2))) {
			kind = Double
			l.pos += 2
			l.skipDigits()
		}
	}

	if isIdentPart(l.peekRune(0)) {
		return l.errorf(start, "identifier cannot start with a digit")
	}
	l.emit(kind, start)
	return nil
}

func (l *Lexer) skipDigits() {
	for l.pos < len(l.src) && isDigit(rune(l.src[l.pos])) {
		l.pos++
	}
}

// lexIdentifier consumes an identifier. Inside string templates reserved
// words stay identifiers, so "$this" never yields a keyword token.
func (l *Lexer) lexIdentifier(keywordsAllowed bool) {
	start := l.pos
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.rest())
		if !isIdentPart(r) {
			break
		}
		l.pos += size
	}
	kind := Identifier
	if keywordsAllowed {
		if kw, ok := keywords[l.src[start:l.pos]]; ok {
			kind = kw
		}
	}
	l.emit(kind, start)
}

func (l *Lexer) lexString() error {
	start := l.pos
	delim := `"`
	if strings.HasPrefix(l.rest(), `"""`) {
		delim = `"""`
	}
	l.pos += len(delim)
	l.emit(StringStart, start)

	content := l.pos
	flush := func() {
		if l.pos > content {
			l.emit(StringContent, content)
		}
	}

	for {
		if l.pos >= len(l.src) {
			return l.errorf(start, "unterminated string")
		}

		switch {
		case strings.HasPrefix(l.rest(), delim):
			flush()
			end := l.pos
			l.pos += len(delim)
			l.emit(StringEnd, end)
			return nil

		case l.src[l.pos] == '\\' && delim == `"`:
			l.pos++
			if l.pos < len(l.src) {
				_, size := utf8.DecodeRuneInString(l.rest())
				l.pos += size
			}

		case l.src[l.pos] == '$' && isIdentStart(l.peekRune(1)):
			flush()
			dollar := l.pos
			l.pos++
			l.emit(StringInterpolation, dollar)
			l.lexIdentifier(false)
			content = l.pos

		case l.src[l.pos] == '$' && l.peekRune(1) == '{':
			flush()
			if err := l.lexInterpolation(); err != nil {
				return err
			}
			content = l.pos

		default:
			_, size := utf8.DecodeRuneInString(l.rest())
			l.pos += size
		}
	}
}

// lexInterpolation handles "${ expr }" by re-entering the main scanner until
// the brace that closes the interpolation.
func (l *Lexer) lexInterpolation() error {
	start := l.pos
	if l.depth >= l.maxDepth {
		return l.errorf(start, "nesting too deep")
	}
	l.depth++
	defer func() { l.depth-- }()

	l.pos++
	l.emit(StringInterpolation, start)
	open := l.pos
	l.pos++
	l.emit(LBrace, open)

	braces := 0
	for {
		if l.pos >= len(l.src) {
			return l.errorf(start, "unterminated string interpolation")
		}
		if l.src[l.pos] == '}' && braces == 0 {
			closing := l.pos
			l.pos++
			l.emit(RBrace, closing)
			return nil
		}
		if err := l.next(); err != nil {
			return err
		}
		switch l.tokens[len(l.tokens)-1].Kind {
		case LBrace:
			braces++
		case RBrace:
			braces--
		}
	}
}

func (l *Lexer) lexChar() error {
	start := l.pos
	l.pos++
	l.emit(CharStart, start)

	body := l.pos
	switch {
	case l.pos >= len(l.src):
		return l.errorf(start, "unterminated character literal")
	case l.src[l.pos] == '\\' && l.peekRune(1) == 'u':
		if len(l.src) < l.pos+6 || !isHex(l.src[l.pos+2:l.pos+6]) {
			return l.errorf(body, "malformed unicode escape")
		}
		l.pos += 6
	case l.src[l.pos] == '\\':
		l.pos++
		if l.pos < len(l.src) {
			_, size := utf8.DecodeRuneInString(l.rest())
			l.pos += size
		}
	case l.src[l.pos] == '\'':
		return l.errorf(start, "empty character literal")
	default:
		_, size := utf8.DecodeRuneInString(l.rest())
		l.pos += size
	}
	l.emit(Char, body)

	if l.pos >= len(l.src) || l.src[l.pos] != '\'' {
		return l.errorf(start, "unterminated character literal")
	}
	end := l.pos
	l.pos++
	l.emit(CharEnd, end)
	return nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isDigit(rune(c)) && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

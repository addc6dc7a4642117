package compiler

import (
	"strings"
	"unicode/utf8"
)

// Lexer scans a template source under a cursor, tracking (line, column,
// offset) exactly as spec §4.1.1 describes. It does not build tokens ahead
// of time; Parser pulls characters/runs from it directly, switching its
// TextMode as element/attribute context demands — the same "cursor over a
// mutable source view" shape the spec calls for, grounded structurally on
// how the teacher's directive parsers (pkg/bubbly/directives) walk a
// cursor over expression strings, generalized here to a full markup
// lexer (the teacher has no HTML lexer of its own to ground this on).
type Lexer struct {
	src    string
	pos    int // byte offset into src
	line   int
	column int
	mode   TextMode
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, column: 1, mode: TextModeData}
}

func (l *Lexer) SetMode(m TextMode) { l.mode = m }
func (l *Lexer) Mode() TextMode     { return l.mode }

func (l *Lexer) Eof() bool { return l.pos >= len(l.src) }

func (l *Lexer) Pos() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.pos}
}

// Peek returns the next rune without consuming it, or 0 at EOF.
func (l *Lexer) Peek() rune {
	if l.Eof() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r
}

// PeekString returns up to the next n bytes of the remaining source
// without consuming them (fewer near EOF).
func (l *Lexer) PeekString(n int) string {
	end := l.pos + n
	if end > len(l.src) {
		end = len(l.src)
	}
	return l.src[l.pos:end]
}

// Advance consumes and returns one rune, updating line/column.
func (l *Lexer) Advance() rune {
	if l.Eof() {
		return 0
	}
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

// AdvanceN consumes n runes.
func (l *Lexer) AdvanceN(n int) {
	for i := 0; i < n; i++ {
		if l.Eof() {
			return
		}
		l.Advance()
	}
}

// StartsWith reports whether the remaining source starts with s.
func (l *Lexer) StartsWith(s string) bool {
	return strings.HasPrefix(l.src[l.pos:], s)
}

// StartsWithFold is a case-insensitive StartsWith, used for end-tag and
// doctype matching.
func (l *Lexer) StartsWithFold(s string) bool {
	if len(l.src)-l.pos < len(s) {
		return false
	}
	return strings.EqualFold(l.src[l.pos:l.pos+len(s)], s)
}

// ReadUntil consumes and returns runes up to (not including) the first
// occurrence of stop, or to EOF if stop never occurs (eof reported via the
// second return).
func (l *Lexer) ReadUntil(stop string) (string, bool) {
	idx := strings.Index(l.src[l.pos:], stop)
	if idx < 0 {
		rest := l.src[l.pos:]
		l.AdvanceRaw(rest)
		return rest, true
	}
	s := l.src[l.pos : l.pos+idx]
	l.AdvanceRaw(s)
	return s, false
}

// AdvanceRaw advances the cursor past s (which must be a prefix of the
// remaining source), updating line/column bookkeeping in one pass.
func (l *Lexer) AdvanceRaw(s string) {
	for _, r := range s {
		if r == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
	l.pos += len(s)
}

// IsWhitespace reports c as HTML whitespace (space, tab, newline, form
// feed, carriage return).
func IsWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

func isNameStart(r rune) bool {
	return r == '_' || r == ':' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 127
}

func isNameChar(r rune) bool {
	return isNameStart(r) || r == '-' || r == '.' || (r >= '0' && r <= '9')
}

// Package scan contains the character classifier and the whitespace and
// comment flusher used by the parser. Predicates never consume input, Flush
// is the only routine that advances a position.
package scan

import (
	"strings"
	"unicode"
	"unicode/utf8"

	err "github.com/ava12/dsl/errors"
	"github.com/ava12/dsl/source"
)

// Error codes used by scan:
const (
	// ErrUnclosedComment indicates a [[ comment with no matching ]].
	ErrUnclosedComment = err.ScanErrors + iota
)

// OperatorChars lists every rune allowed in a symbolic operator.
const OperatorChars = "&|~^@=+-'$*%!§/:.,?<>"

// IsEnd tells whether pos is at or past the logical end of text.
func IsEnd(text string, pos int) bool {
	return pos >= len(text)
}

// IsSpace tells whether the byte at pos is insignificant whitespace.
func IsSpace(text string, pos int) bool {
	if IsEnd(text, pos) {
		return false
	}

	c := text[pos]
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// IsOperatorChar tells whether the rune at pos belongs to the symbolic
// operator set.
func IsOperatorChar(text string, pos int) bool {
	if IsEnd(text, pos) {
		return false
	}

	r, _ := utf8.DecodeRuneInString(text[pos:])
	return strings.ContainsRune(OperatorChars, r)
}

// IsOperatorStart tells whether the rune at pos may start an operator:
// either # (hash operator) or a symbolic operator rune.
func IsOperatorStart(text string, pos int) bool {
	if IsEnd(text, pos) {
		return false
	}

	return text[pos] == '#' || IsOperatorChar(text, pos)
}

// IsLetter tells whether the rune at pos may start or continue an identifier.
// A letter is any rune whose upper and lower case forms differ, or _.
func IsLetter(text string, pos int) bool {
	if IsEnd(text, pos) {
		return false
	}

	r, _ := utf8.DecodeRuneInString(text[pos:])
	return r == '_' || unicode.ToLower(r) != unicode.ToUpper(r)
}

// IsDigit tells whether the byte at pos is an ASCII decimal digit.
func IsDigit(text string, pos int) bool {
	if IsEnd(text, pos) {
		return false
	}

	return text[pos] >= '0' && text[pos] <= '9'
}

func unclosedCommentError(src *source.Source, pos int) *err.Error {
	return err.FormatPos(source.NewPos(src, pos), ErrUnclosedComment, "unclosed comment")
}

// Flush skips whitespace and [[ ]] comments starting at pos and returns the
// position of the next significant character. Comments nest: every [[ inside
// a comment must be closed by its own ]]. Reaching the end of text with an
// open comment is an error reported at the outermost [[.
func Flush(src *source.Source, pos int) (int, error) {
	text := src.Content()
	for {
		for IsSpace(text, pos) {
			pos++
		}
		if !strings.HasPrefix(text[pos:], "[[") {
			return pos, nil
		}

		start := pos
		pos += 2
		depth := 1
		for depth > 0 {
			switch {
			case IsEnd(text, pos):
				return pos, unclosedCommentError(src, start)
			case strings.HasPrefix(text[pos:], "[["):
				depth++
				pos += 2
			case strings.HasPrefix(text[pos:], "]]"):
				depth--
				pos += 2
			default:
				_, size := utf8.DecodeRuneInString(text[pos:])
				pos += size
			}
		}
	}
}

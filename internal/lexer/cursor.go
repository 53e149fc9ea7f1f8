package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"rash/internal/source"
)

// Cursor walks the bytes of one source file. Offsets are uint32 to line up
// with source.Span.
type Cursor struct {
	File *source.File
	Off  uint32
	end  uint32
}

// NewCursor positions a cursor at the start of f. A file too large for a
// span offset is a programming error upstream, since source loading caps
// input size.
func NewCursor(f *source.File) Cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("%s: content length overflows a span offset: %w", f.Path, err))
	}
	return Cursor{File: f, end: end}
}

func (c *Cursor) EOF() bool { return c.Off >= c.end }

// Peek returns the current byte, or 0 at the end of input.
func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// PeekAt returns the byte n positions ahead, or 0 past the end of input.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.end {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// Bump consumes one byte and returns it.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Eat consumes b if it is the current byte.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.File.Content[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// EatString consumes s if the input continues with it.
func (c *Cursor) EatString(s string) bool {
	rest := c.File.Content[c.Off:c.end]
	if len(rest) < len(s) || string(rest[:len(s)]) != s {
		return false
	}
	c.Off += uint32(len(s)) //nolint:gosec // G115: s is a short operator literal.
	return true
}

// Rune decodes the rune at the cursor. Size is 0 at the end of input and 1
// for an invalid byte, which decodes as utf8.RuneError.
func (c *Cursor) Rune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.File.Content[c.Off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.File.Content[c.Off:c.end])
}

// BumpRune consumes the rune at the cursor.
func (c *Cursor) BumpRune() {
	_, size := c.Rune()
	c.Off += uint32(size) //nolint:gosec // G115: a rune is at most 4 bytes.
}

// Mark is a saved cursor position.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

// SpanFrom covers everything consumed since m.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

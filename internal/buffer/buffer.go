package buffer

import (
	"errors"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	// ErrOffsetOutOfRange indicates an offset is outside the valid buffer range.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrLineOutOfRange indicates a line index is outside the buffer.
	ErrLineOutOfRange = errors.New("line out of range")
)

// Point is a (line, column) position. Both are 0-indexed; Column is a
// byte offset within the line. Tab lines are ASCII, so bytes and screen
// columns coincide.
type Point struct {
	Line int
	Col  int
}

// Buffer holds document text as a slice of lines without trailing
// newlines. An empty buffer has a single empty line, matching how text
// editors treat an empty document.
type Buffer struct {
	mu    sync.RWMutex
	lines []string
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{lines: []string{""}}
}

// FromString creates a buffer from existing text. Line endings are
// normalized to LF before splitting.
func FromString(s string) *Buffer {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return &Buffer{lines: strings.Split(s, "\n")}
}

// Text returns the full buffer content with LF line endings.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, "\n")
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// Line returns the text of line i, or the empty string if i is out of
// range. Out-of-range reads are common while probing for staff
// boundaries, so they are not an error.
func (b *Buffer) Line(i int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

// SetLine replaces the text of line i.
func (b *Buffer) SetLine(i int, s string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < 0 || i >= len(b.lines) {
		return ErrLineOutOfRange
	}
	b.lines[i] = s
	return nil
}

// InsertLine inserts a new line before index i. i == LineCount appends.
func (b *Buffer) InsertLine(i int, s string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < 0 || i > len(b.lines) {
		return ErrLineOutOfRange
	}
	b.lines = append(b.lines, "")
	copy(b.lines[i+1:], b.lines[i:])
	b.lines[i] = s
	return nil
}

// InsertLines inserts several lines before index i, preserving order.
func (b *Buffer) InsertLines(i int, lines []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < 0 || i > len(b.lines) {
		return ErrLineOutOfRange
	}
	out := make([]string, 0, len(b.lines)+len(lines))
	out = append(out, b.lines[:i]...)
	out = append(out, lines...)
	out = append(out, b.lines[i:]...)
	b.lines = out
	return nil
}

// RemoveLine deletes line i. Removing the last remaining line leaves a
// single empty line.
func (b *Buffer) RemoveLine(i int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i < 0 || i >= len(b.lines) {
		return ErrLineOutOfRange
	}
	b.lines = append(b.lines[:i], b.lines[i+1:]...)
	if len(b.lines) == 0 {
		b.lines = []string{""}
	}
	return nil
}

// Len returns the total byte length of the text, counting one byte per
// line separator.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, l := range b.lines {
		n += len(l)
	}
	return n + len(b.lines) - 1
}

// OffsetToPoint converts an absolute byte offset to a (line, column)
// point. The offset one past the final character is valid and maps to
// the end of the last line.
func (b *Buffer) OffsetToPoint(off int) (Point, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if off < 0 {
		return Point{}, ErrOffsetOutOfRange
	}
	for i, l := range b.lines {
		if off <= len(l) {
			return Point{Line: i, Col: off}, nil
		}
		off -= len(l) + 1
	}
	return Point{}, ErrOffsetOutOfRange
}

// PointToOffset converts a point back to an absolute byte offset. The
// column is clamped to the line length.
func (b *Buffer) PointToOffset(p Point) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if p.Line < 0 || p.Line >= len(b.lines) {
		return 0, ErrLineOutOfRange
	}
	off := 0
	for i := 0; i < p.Line; i++ {
		off += len(b.lines[i]) + 1
	}
	col := p.Col
	if col < 0 {
		col = 0
	}
	if col > len(b.lines[p.Line]) {
		col = len(b.lines[p.Line])
	}
	return off + col, nil
}

// Insert inserts text at an absolute offset. Text containing newlines
// splits the line it lands on.
func (b *Buffer) Insert(off int, text string) error {
	p, err := b.OffsetToPoint(off)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	line := b.lines[p.Line]
	merged := line[:p.Col] + text + line[p.Col:]
	parts := strings.Split(merged, "\n")
	out := make([]string, 0, len(b.lines)+len(parts)-1)
	out = append(out, b.lines[:p.Line]...)
	out = append(out, parts...)
	out = append(out, b.lines[p.Line+1:]...)
	b.lines = out
	return nil
}

// Delete removes n bytes starting at an absolute offset, clamped to the
// end of the text. Newlines in the deleted span join lines.
func (b *Buffer) Delete(off, n int) error {
	if n <= 0 {
		return nil
	}
	if _, err := b.OffsetToPoint(off); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	text := strings.Join(b.lines, "\n")
	end := off + n
	if end > len(text) {
		end = len(text)
	}
	b.lines = strings.Split(text[:off]+text[end:], "\n")
	return nil
}

// Package cursor maps raw buffer positions into validated tablature
// grid positions. It is the single source of truth for "is this
// position inside tab" — every tab-aware command resolves through it
// and falls back to literal text behavior when resolution fails.
package cursor

import (
	"errors"

	"github.com/dshills/tabstorm/internal/buffer"
	"github.com/dshills/tabstorm/internal/tab"
)

// ErrStringOutOfRange indicates a string move past the edge of a staff.
// Crossing staves is MoveStaff's job, never MoveStrings'.
var ErrStringOutOfRange = errors.New("string index out of range")

// Context is a validated grid position: the buffer line of the staff's
// top (highest-pitched) string, the string index 0..5 within it, and
// the cell index along the string.
type Context struct {
	TopLine int
	String  int
	Cell    int
}

// Line returns the buffer line this context points at.
func (c Context) Line() int { return c.TopLine + c.String }

// Col returns the column of the start of this context's cell.
func (c Context) Col() int { return tab.FirstCellCol + c.Cell*tab.CellWidth }

// Point returns the buffer point of the start of this context's cell.
func (c Context) Point() buffer.Point {
	return buffer.Point{Line: c.Line(), Col: c.Col()}
}

// Resolve maps an absolute buffer offset to a grid context. It returns
// false when the position is not inside a staff, which is the designed
// signal for commands to degrade to plain text insertion.
//
// A position is inside a staff when its line belongs to a run of exactly
// six consecutive string-lines whose prefixes are pairwise distinct by
// first character. The column snaps backward to the start of its cell;
// columns left of the first cell snap to cell 0, columns past the last
// whole cell snap to it. Resolving the same offset twice yields the same
// context, so navigation is idempotent with respect to alignment.
func Resolve(b *buffer.Buffer, off int) (Context, bool) {
	p, err := b.OffsetToPoint(off)
	if err != nil {
		return Context{}, false
	}
	return ResolvePoint(b, p)
}

// ResolvePoint is Resolve for a (line, column) point.
func ResolvePoint(b *buffer.Buffer, p buffer.Point) (Context, bool) {
	line := b.Line(p.Line)
	if !tab.IsStringLine(line) {
		return Context{}, false
	}

	seen := map[byte]bool{line[0]: true}

	// Walk up through distinct string prefixes, at most five lines.
	strIdx := 0
	for strIdx < tab.StringCount-1 {
		above := b.Line(p.Line - strIdx - 1)
		if !tab.IsStringLine(above) || seen[above[0]] {
			break
		}
		seen[above[0]] = true
		strIdx++
	}

	// Walk down for the remainder of the staff.
	below := 0
	for strIdx+below < tab.StringCount-1 {
		l := b.Line(p.Line + below + 1)
		if !tab.IsStringLine(l) || seen[l[0]] {
			break
		}
		seen[l[0]] = true
		below++
	}

	if strIdx+below+1 != tab.StringCount {
		return Context{}, false
	}

	ctx := Context{TopLine: p.Line - strIdx, String: strIdx}
	ctx.Cell = snapCell(line, p.Col)
	return ctx, true
}

// snapCell converts a raw column to a cell index, snapping backward to
// the cell start and clamping into the cells the line actually has.
func snapCell(line string, col int) int {
	if col < tab.FirstCellCol {
		return 0
	}
	cell := (col - tab.FirstCellCol) / tab.CellWidth
	if max := tab.CellCount(line) - 1; cell > max {
		if max < 0 {
			return 0
		}
		cell = max
	}
	return cell
}

// Advance moves the context by deltaCells along its string, clamping to
// the cells present on the line.
func Advance(b *buffer.Buffer, ctx Context, deltaCells int) Context {
	line := b.Line(ctx.Line())
	cell := ctx.Cell + deltaCells
	if cell < 0 {
		cell = 0
	}
	if max := tab.CellCount(line) - 1; max >= 0 && cell > max {
		cell = max
	}
	ctx.Cell = cell
	return ctx
}

// MoveStrings moves the context up (negative) or down (positive) within
// the six strings of its staff. Moving past either edge is an error;
// staff-to-staff movement belongs to MoveStaff.
func MoveStrings(ctx Context, delta int) (Context, error) {
	s := ctx.String + delta
	if s < 0 || s >= tab.StringCount {
		return ctx, ErrStringOutOfRange
	}
	ctx.String = s
	return ctx, nil
}

// MoveStaff finds the next (+1) or previous (-1) staff in the buffer and
// returns the context moved onto its same string and cell, clamped to
// the target staff's width. It returns false, with the context
// unchanged, when no staff exists in that direction.
func MoveStaff(b *buffer.Buffer, ctx Context, dir int) (Context, bool) {
	var top int
	var ok bool
	if dir >= 0 {
		top, ok = NextStaffTop(b, ctx.TopLine+tab.StringCount)
	} else {
		top, ok = PrevStaffTop(b, ctx.TopLine-1)
	}
	if !ok {
		return ctx, false
	}
	out := Context{TopLine: top, String: ctx.String}
	out.Cell = snapCell(b.Line(out.Line()), tab.FirstCellCol+ctx.Cell*tab.CellWidth)
	return out, true
}

// NextStaffTop scans forward from the given line for the top of the
// next staff.
func NextStaffTop(b *buffer.Buffer, from int) (int, bool) {
	for i := from; i < b.LineCount(); i++ {
		if top, ok := staffTopAt(b, i); ok {
			return top, true
		}
	}
	return 0, false
}

// PrevStaffTop scans backward from the given line for the top of the
// nearest preceding staff.
func PrevStaffTop(b *buffer.Buffer, from int) (int, bool) {
	if from >= b.LineCount() {
		from = b.LineCount() - 1
	}
	for i := from; i >= 0; i-- {
		if top, ok := staffTopAt(b, i); ok {
			return top, true
		}
	}
	return 0, false
}

// staffTopAt reports the top line of the staff containing line i, if any.
func staffTopAt(b *buffer.Buffer, i int) (int, bool) {
	ctx, ok := ResolvePoint(b, buffer.Point{Line: i, Col: tab.FirstCellCol})
	if !ok {
		return 0, false
	}
	return ctx.TopLine, true
}

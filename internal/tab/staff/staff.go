// Package staff edits whole staves: creation, column insertion and
// deletion, barline toggling, and the rectangular kill/yank pair. Every
// operation applies identically to all six strings so the grid
// invariants (equal line widths, aligned barlines) survive any edit.
package staff

import (
	"errors"

	"github.com/dshills/tabstorm/internal/buffer"
	"github.com/dshills/tabstorm/internal/tab"
	"github.com/dshills/tabstorm/internal/tab/cursor"
)

// Errors returned by staff operations.
var (
	// ErrRegionSpansStaves is tab.ErrRegionSpansStaves. The transpose
	// path returns the same sentinel, so callers can match either name.
	ErrRegionSpansStaves = tab.ErrRegionSpansStaves

	// ErrNoClipboard indicates a yank with nothing killed or copied yet.
	ErrNoClipboard = errors.New("clipboard is empty")
)

// Rect is the single-slot rectangular clipboard payload: one row of
// cell text per string, all rows the same width.
type Rect struct {
	Rows [tab.StringCount]string
}

// Width returns the rectangle's column width.
func (r *Rect) Width() int { return len(r.Rows[0]) }

// Editor performs staff-level edits against a buffer.
type Editor struct {
	buf *buffer.Buffer
}

// NewEditor creates an editor over the given buffer.
func NewEditor(b *buffer.Buffer) *Editor {
	return &Editor{buf: b}
}

// MakeStaff inserts a new six-string staff, preceded by a blank lyric
// line, and returns the buffer line of its top string. The staff goes
// immediately below the nearest staff preceding atLine, or three lines
// below atLine when no staff precedes it. Each string-line is the
// tuning prefix, the rule margin, and blank cells out to width
// characters total.
func (e *Editor) MakeStaff(atLine int, prefixes [tab.StringCount]string, width int) (int, error) {
	insert := atLine + 3
	if top, ok := cursor.PrevStaffTop(e.buf, atLine); ok {
		insert = top + tab.StringCount
	}
	if insert > e.buf.LineCount() {
		for e.buf.LineCount() < insert {
			if err := e.buf.InsertLine(e.buf.LineCount(), ""); err != nil {
				return 0, err
			}
		}
	}

	lines := make([]string, 0, tab.StringCount+1)
	lines = append(lines, "") // lyric line
	for _, p := range prefixes {
		line := tab.FormatPrefix(p) + "--"
		for len(line) < width {
			line += "-"
		}
		lines = append(lines, line)
	}
	if err := e.buf.InsertLines(insert, lines); err != nil {
		return 0, err
	}
	return insert + 1, nil
}

// InsertColumns inserts count blank cells at the context's cell
// boundary on all six strings, then crops each line back to its
// original width. Content pushed past the right edge is discarded; a
// staff never grows from mid-staff insertion.
func (e *Editor) InsertColumns(ctx cursor.Context, count int) error {
	if count <= 0 {
		return nil
	}
	col := ctx.Col()
	pad := tab.BlankCells(count)
	for s := 0; s < tab.StringCount; s++ {
		line := e.buf.Line(ctx.TopLine + s)
		width := len(line)
		if col > width {
			continue
		}
		grown := line[:col] + pad + line[col:]
		if err := e.buf.SetLine(ctx.TopLine+s, grown[:width]); err != nil {
			return err
		}
	}
	return nil
}

// DeleteCells removes count whole cells forward (or backward) from the
// context on all six strings, padding each line's right edge with blank
// cells to preserve the staff width. The backward variant deletes only
// cells still inside the staff. It returns the number of cells actually
// removed.
func (e *Editor) DeleteCells(ctx cursor.Context, count int, backward bool) (int, error) {
	if count <= 0 {
		return 0, nil
	}
	line := e.buf.Line(ctx.Line())
	if backward {
		if count > ctx.Cell {
			count = ctx.Cell
		}
	} else {
		if avail := tab.CellCount(line) - ctx.Cell; count > avail {
			count = avail
		}
	}
	if count <= 0 {
		return 0, nil
	}

	start := ctx.Col()
	if backward {
		start -= count * tab.CellWidth
	}
	span := count * tab.CellWidth
	for s := 0; s < tab.StringCount; s++ {
		l := e.buf.Line(ctx.TopLine + s)
		if start+span > len(l) {
			continue
		}
		cut := l[:start] + l[start+span:] + tab.BlankCells(count)
		if err := e.buf.SetLine(ctx.TopLine+s, cut); err != nil {
			return 0, err
		}
	}
	return count, nil
}

// ToggleBarline flips the context's column between a barline and a
// blank cell on all six strings. The cell under the cursor decides the
// direction; by the alignment invariant all six strings agree.
func (e *Editor) ToggleBarline(ctx cursor.Context) error {
	was := tab.CellAt(e.buf.Line(ctx.Line()), ctx.Cell)
	cell := tab.Barline()
	if was.Kind == tab.CellBarline {
		cell = tab.Blank()
	}
	for s := 0; s < tab.StringCount; s++ {
		c := ctx
		c.String = s
		if err := e.SetCell(c, cell); err != nil {
			return err
		}
	}
	return nil
}

// CellAt reads the cell under the context.
func (e *Editor) CellAt(ctx cursor.Context) tab.Cell {
	return tab.CellAt(e.buf.Line(ctx.Line()), ctx.Cell)
}

// SetCell writes a cell at the context, extending the line with blank
// cells if the context sits past its current end.
func (e *Editor) SetCell(ctx cursor.Context, c tab.Cell) error {
	line := e.buf.Line(ctx.Line())
	col := ctx.Col()
	for len(line) < col+tab.CellWidth {
		line += "-"
	}
	return e.buf.SetLine(ctx.Line(), line[:col]+c.Render()+line[col+tab.CellWidth:])
}

// KillRegion copies the smallest cell rectangle covering both contexts
// across all six strings and returns it. Both endpoints must lie in the
// same staff. With deleteSource set, the rectangle is removed and each
// line's right edge padded with blank cells, exactly as DeleteCells
// does, so the staff keeps its width.
func (e *Editor) KillRegion(a, b cursor.Context, deleteSource bool) (*Rect, error) {
	if a.TopLine != b.TopLine {
		return nil, ErrRegionSpansStaves
	}
	c0, c1 := a.Cell, b.Cell
	if c0 > c1 {
		c0, c1 = c1, c0
	}
	cells := c1 - c0 + 1
	start := tab.FirstCellCol + c0*tab.CellWidth
	span := cells * tab.CellWidth

	var r Rect
	for s := 0; s < tab.StringCount; s++ {
		line := e.buf.Line(a.TopLine + s)
		row := ""
		if start < len(line) {
			end := start + span
			if end > len(line) {
				end = len(line)
			}
			row = line[start:end]
		}
		for len(row) < span {
			row += "-"
		}
		r.Rows[s] = row
	}

	if deleteSource {
		at := cursor.Context{TopLine: a.TopLine, String: a.String, Cell: c0}
		if _, err := e.DeleteCells(at, cells, false); err != nil {
			return nil, err
		}
	}
	return &r, nil
}

// Yank inserts the rectangle at the context's staff and column,
// shifting existing content right with the same fixed-width crop as
// InsertColumns.
func (e *Editor) Yank(ctx cursor.Context, r *Rect) error {
	if r == nil {
		return ErrNoClipboard
	}
	col := ctx.Col()
	for s := 0; s < tab.StringCount; s++ {
		line := e.buf.Line(ctx.TopLine + s)
		width := len(line)
		if col > width {
			continue
		}
		grown := line[:col] + r.Rows[s] + line[col:]
		if err := e.buf.SetLine(ctx.TopLine+s, grown[:width]); err != nil {
			return err
		}
	}
	return nil
}

// Package tuning models the six open-string pitches and every
// operation that rewrites fret numbers: retuning, uniform and
// per-string transposition, the copy-retune gesture, and octave shifts.
package tuning

import (
	"errors"
	"fmt"

	"github.com/dshills/tabstorm/internal/buffer"
	"github.com/dshills/tabstorm/internal/tab"
	"github.com/dshills/tabstorm/internal/tab/cursor"
)

// ErrInvalidTuningName indicates a retune name that is not a single
// note letter with an optional accidental.
var ErrInvalidTuningName = errors.New("invalid tuning name")

// Tuning is the pitch class and prefix label of each open string,
// index 0 the highest-pitched string.
type Tuning struct {
	Pitches [tab.StringCount]int
	Labels  [tab.StringCount]string
}

// Standard returns standard guitar tuning, high to low: e B G D A E.
// The high string is labeled lowercase so prefix first-characters stay
// pairwise distinct.
func Standard() Tuning {
	return Tuning{
		Pitches: [tab.StringCount]int{0, 7, 3, 10, 5, 0},
		Labels:  [tab.StringCount]string{"e", "B", "G", "D", "A", "E"},
	}
}

// Prefixes returns the string-line prefix labels in index order.
func (t Tuning) Prefixes() [tab.StringCount]string {
	return t.Labels
}

// Learn reads a tuning from the six string-line prefixes of the staff
// whose top string is at the given buffer line.
func Learn(b *buffer.Buffer, top int) (Tuning, error) {
	var t Tuning
	for s := 0; s < tab.StringCount; s++ {
		line := b.Line(top + s)
		name, ok := tab.PrefixNote(line)
		if !ok {
			return Tuning{}, fmt.Errorf("%w: line %d is not a string-line", ErrInvalidTuningName, top+s)
		}
		pc, ok := tab.NotePitch(name)
		if !ok {
			return Tuning{}, fmt.Errorf("%w: %q", ErrInvalidTuningName, name)
		}
		t.Labels[s] = name
		t.Pitches[s] = pc
	}
	return t, nil
}

// ParseNoteName validates a retune name: one note letter, optionally
// followed by '#' or 'b'.
func ParseNoteName(name string) (int, error) {
	pc, ok := tab.NotePitch(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTuningName, name)
	}
	return pc, nil
}

// RetuneString relabels the context's string to newName across every
// staff in the document, then re-learns the tuning from the context's
// staff. The tuning pointer is updated in place; nothing is mutated
// when the name fails validation.
func RetuneString(b *buffer.Buffer, t *Tuning, ctx cursor.Context, newName string) error {
	if _, err := ParseNoteName(newName); err != nil {
		return err
	}
	prefix := tab.FormatPrefix(newName)

	top, ok := cursor.NextStaffTop(b, 0)
	for ok {
		line := b.Line(top + ctx.String)
		if len(line) >= tab.PrefixLen {
			if err := b.SetLine(top+ctx.String, prefix+line[tab.PrefixLen:]); err != nil {
				return err
			}
		}
		top, ok = cursor.NextStaffTop(b, top+tab.StringCount)
	}

	learned, err := Learn(b, ctx.TopLine)
	if err != nil {
		return err
	}
	*t = learned
	return nil
}

// Transpose rewrites every fretted note in cells c0..c1 (inclusive) of
// the staff at top, adding deltas[string] to its fret and wrapping the
// result into [0,11]. A uniform transpose passes the same delta on all
// six strings. Embellishments and barlines are untouched.
func Transpose(b *buffer.Buffer, top, c0, c1 int, deltas [tab.StringCount]int) error {
	if c0 > c1 {
		c0, c1 = c1, c0
	}
	for s := 0; s < tab.StringCount; s++ {
		if deltas[s] == 0 {
			continue
		}
		line := b.Line(top + s)
		changed := false
		for c := c0; c <= c1 && c < tab.CellCount(line); c++ {
			cell := tab.CellAt(line, c)
			if cell.Kind != tab.CellNote {
				continue
			}
			fret := (cell.Fret + deltas[s]) % 12
			if fret < 0 {
				fret += 12
			}
			cell.Fret = fret
			col := tab.FirstCellCol + c*tab.CellWidth
			line = line[:col] + cell.Render() + line[col+tab.CellWidth:]
			changed = true
		}
		if changed {
			if err := b.SetLine(top+s, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// TransposeRegion validates that both contexts lie in one staff, then
// transposes the covered cell range.
func TransposeRegion(b *buffer.Buffer, a, z cursor.Context, deltas [tab.StringCount]int) error {
	if a.TopLine != z.TopLine {
		return tab.ErrRegionSpansStaves
	}
	return Transpose(b, a.TopLine, a.Cell, z.Cell, deltas)
}

// OctaveShift moves the note under the context up or down twelve frets.
// Up applies only to frets <= 12, down only to frets >= 12; anything
// else is a silent no-op so the control is idempotent at the boundary.
func OctaveShift(b *buffer.Buffer, ctx cursor.Context, up bool) error {
	line := b.Line(ctx.Line())
	cell := tab.CellAt(line, ctx.Cell)
	if cell.Kind != tab.CellNote {
		return nil
	}
	switch {
	case up && cell.Fret <= 12:
		cell.Fret += 12
	case !up && cell.Fret >= 12:
		cell.Fret -= 12
	default:
		return nil
	}
	col := ctx.Col()
	return b.SetLine(ctx.Line(), line[:col]+cell.Render()+line[col+tab.CellWidth:])
}

// CopyRetune duplicates the context's staff below the first blank line
// following it, stamps the copy with the session's current tuning
// prefixes, and transposes the copy so the same pitches sound in the
// current tuning. The per-string delta is the source-minus-current
// pitch difference normalized to the smaller absolute semitone move,
// preferring down on ties. Returns the top line of the new staff.
func CopyRetune(b *buffer.Buffer, current Tuning, ctx cursor.Context) (int, error) {
	source, err := Learn(b, ctx.TopLine)
	if err != nil {
		return 0, err
	}

	var deltas [tab.StringCount]int
	for s := 0; s < tab.StringCount; s++ {
		d := (source.Pitches[s] - current.Pitches[s]) % 12
		if d < 0 {
			d += 12
		}
		// Normalize to the nearest direction; a tritone resolves down.
		if d >= 6 {
			d -= 12
		}
		deltas[s] = d
	}

	insert := ctx.TopLine + tab.StringCount
	for insert < b.LineCount() && b.Line(insert) != "" {
		insert++
	}
	if insert < b.LineCount() {
		insert++ // below the blank line itself
	}

	lines := make([]string, 0, tab.StringCount+1)
	for s := 0; s < tab.StringCount; s++ {
		line := b.Line(ctx.TopLine + s)
		lines = append(lines, tab.FormatPrefix(current.Labels[s])+line[tab.PrefixLen:])
	}
	lines = append(lines, "")
	if err := b.InsertLines(insert, lines); err != nil {
		return 0, err
	}

	if err := Transpose(b, insert, 0, tab.CellCount(b.Line(insert))-1, deltas); err != nil {
		return 0, err
	}
	return insert, nil
}

package dispatcher

import (
	"errors"
	"strconv"

	"github.com/dshills/tabstorm/internal/input"
	"github.com/dshills/tabstorm/internal/tab"
	"github.com/dshills/tabstorm/internal/tab/cursor"
	"github.com/dshills/tabstorm/internal/tab/tuning"
)

// ErrNotInTab indicates a grid command fired with the cursor outside
// any staff.
var ErrNotInTab = errors.New("cursor is not inside a staff")

func (d *Dispatcher) registerDefaults() {
	d.Register(input.ActionNone, func(ec *ExecContext) (Result, error) {
		return Result{Cursor: ec.Cursor}, nil
	})
	d.Register(input.ActionQuit, func(ec *ExecContext) (Result, error) {
		return Result{Cursor: ec.Cursor, Quit: true}, nil
	})
	d.Register(input.ActionSelfInsert, d.selfInsert)
	d.Register(input.ActionNote, d.enterNote)
	d.Register(input.ActionEmbellish, d.embellish)
	d.Register(input.ActionAdvance, d.move(1))
	d.Register(input.ActionRetreat, d.move(-1))
	d.Register(input.ActionStringUp, d.moveString(-1))
	d.Register(input.ActionStringDown, d.moveString(1))
	d.Register(input.ActionStaffForward, d.moveStaff(1))
	d.Register(input.ActionStaffBackward, d.moveStaff(-1))
	d.Register(input.ActionMakeStaff, d.makeStaff)
	d.Register(input.ActionInsertColumns, d.insertColumns)
	d.Register(input.ActionDeleteCell, d.deleteCells(false))
	d.Register(input.ActionDeleteBack, d.deleteCells(true))
	d.Register(input.ActionToggleBarline, d.toggleBarline)
	d.Register(input.ActionSetMark, d.setMark)
	d.Register(input.ActionKillRegion, d.killRegion(true))
	d.Register(input.ActionCopyRegion, d.killRegion(false))
	d.Register(input.ActionYank, d.yank)
	d.Register(input.ActionOctaveUp, d.octaveShift(true))
	d.Register(input.ActionOctaveDown, d.octaveShift(false))
	d.Register(input.ActionTranspose, d.transpose)
	d.Register(input.ActionRetune, d.retuneString)
	d.Register(input.ActionLearnTuning, d.learnTuning)
	d.Register(input.ActionCopyRetune, d.copyRetune)
	d.Register(input.ActionAnalyzeChord, d.analyzeChord)
	d.Register(input.ActionLabelChord, d.labelChord)
}

// selfInsert inserts literal text outside tab. Inside tab it refuses:
// free text would shear the grid, and every in-grid edit has a
// dedicated command.
func (d *Dispatcher) selfInsert(ec *ExecContext) (Result, error) {
	if ec.Tab != nil {
		return Result{Cursor: ec.Cursor}, nil
	}
	if err := ec.Buf.Insert(ec.Cursor, ec.Arg); err != nil {
		return Result{Cursor: ec.Cursor}, err
	}
	return Result{Cursor: ec.Cursor + len(ec.Arg), Dirty: true}, nil
}

// enterNote writes a fret digit into the current cell, consuming any
// pending embellishment. A digit typed onto a cell already holding 1
// or 2 extends it to a two-digit fret, which is how frets above 9 are
// entered.
func (d *Dispatcher) enterNote(ec *ExecContext) (Result, error) {
	if ec.Tab == nil {
		return Result{Cursor: ec.Cursor}, ErrNotInTab
	}
	digit := int(ec.Arg[0] - '0')

	cell := d.editor.CellAt(*ec.Tab)
	fret := digit
	emb := ec.Sess.PendingEmb
	if cell.Kind == tab.CellNote && cell.Fret >= 1 && cell.Fret*10+digit <= tab.MaxFret {
		fret = cell.Fret*10 + digit
		if emb == tab.EmbNormal {
			emb = cell.Emb
		}
	}
	if err := d.editor.SetCell(*ec.Tab, tab.Note(emb, fret)); err != nil {
		return Result{Cursor: ec.Cursor}, err
	}
	ec.Sess.PendingEmb = tab.EmbNormal
	return d.reposition(*ec.Tab, true)
}

// embellish toggles an embellishment on the note under the cursor, or
// arms it for the next entered note when the cell is not a note.
func (d *Dispatcher) embellish(ec *ExecContext) (Result, error) {
	if ec.Tab == nil {
		return Result{Cursor: ec.Cursor}, ErrNotInTab
	}
	kind, ok := tab.EmbFromChar(ec.Arg[0])
	if !ok {
		return Result{Cursor: ec.Cursor}, nil
	}

	cell := d.editor.CellAt(*ec.Tab)
	if cell.Kind != tab.CellNote {
		ec.Sess.PendingEmb = kind
		return Result{Cursor: ec.Cursor, Message: kind.String() + " pending"}, nil
	}
	if cell.Emb == kind {
		cell.Emb = tab.EmbNormal
	} else {
		cell.Emb = kind
	}
	if err := d.editor.SetCell(*ec.Tab, cell); err != nil {
		return Result{Cursor: ec.Cursor}, err
	}
	return d.reposition(*ec.Tab, true)
}

func (d *Dispatcher) move(delta int) HandlerFunc {
	return func(ec *ExecContext) (Result, error) {
		if ec.Tab == nil {
			return Result{Cursor: ec.Cursor}, ErrNotInTab
		}
		return d.reposition(cursor.Advance(d.buf, *ec.Tab, delta), false)
	}
}

func (d *Dispatcher) moveString(delta int) HandlerFunc {
	return func(ec *ExecContext) (Result, error) {
		if ec.Tab == nil {
			return Result{Cursor: ec.Cursor}, ErrNotInTab
		}
		ctx, err := cursor.MoveStrings(*ec.Tab, delta)
		if err != nil {
			return Result{Cursor: ec.Cursor}, err
		}
		return d.reposition(ctx, false)
	}
}

func (d *Dispatcher) moveStaff(dir int) HandlerFunc {
	return func(ec *ExecContext) (Result, error) {
		if ec.Tab == nil {
			return Result{Cursor: ec.Cursor}, ErrNotInTab
		}
		ctx, ok := cursor.MoveStaff(d.buf, *ec.Tab, dir)
		if !ok {
			return Result{Cursor: ec.Cursor, Message: "no staff there"}, nil
		}
		return d.reposition(ctx, false)
	}
}

// makeStaff works with or without tab context: it places the new staff
// relative to the cursor line and moves the cursor onto its top string.
func (d *Dispatcher) makeStaff(ec *ExecContext) (Result, error) {
	p, err := ec.Buf.OffsetToPoint(ec.Cursor)
	if err != nil {
		return Result{Cursor: ec.Cursor}, err
	}
	top, err := d.editor.MakeStaff(p.Line, ec.Sess.Tuning.Prefixes(), d.width())
	if err != nil {
		return Result{Cursor: ec.Cursor}, err
	}
	return d.reposition(cursor.Context{TopLine: top}, true)
}

func (d *Dispatcher) insertColumns(ec *ExecContext) (Result, error) {
	if ec.Tab == nil {
		return Result{Cursor: ec.Cursor}, ErrNotInTab
	}
	n := argCount(ec.Arg)
	if err := d.editor.InsertColumns(*ec.Tab, n); err != nil {
		return Result{Cursor: ec.Cursor}, err
	}
	return d.reposition(*ec.Tab, true)
}

func (d *Dispatcher) deleteCells(backward bool) HandlerFunc {
	return func(ec *ExecContext) (Result, error) {
		if ec.Tab == nil {
			return Result{Cursor: ec.Cursor}, ErrNotInTab
		}
		n, err := d.editor.DeleteCells(*ec.Tab, argCount(ec.Arg), backward)
		if err != nil {
			return Result{Cursor: ec.Cursor}, err
		}
		ctx := *ec.Tab
		if backward {
			ctx.Cell -= n
		}
		return d.reposition(ctx, n > 0)
	}
}

func (d *Dispatcher) toggleBarline(ec *ExecContext) (Result, error) {
	if ec.Tab == nil {
		return Result{Cursor: ec.Cursor}, ErrNotInTab
	}
	if err := d.editor.ToggleBarline(*ec.Tab); err != nil {
		return Result{Cursor: ec.Cursor}, err
	}
	// At the last cell Advance clamps in place, which lands on the same
	// column as a raw two-character end-of-line move would.
	return d.reposition(cursor.Advance(d.buf, *ec.Tab, 1), true)
}

func (d *Dispatcher) setMark(ec *ExecContext) (Result, error) {
	ec.Sess.Mark = ec.Cursor
	return Result{Cursor: ec.Cursor, Message: "mark set"}, nil
}

// killRegion kills (or merely copies) the rectangle between the mark
// and the cursor into the single clipboard slot.
func (d *Dispatcher) killRegion(deleteSource bool) HandlerFunc {
	return func(ec *ExecContext) (Result, error) {
		if ec.Tab == nil {
			return Result{Cursor: ec.Cursor}, ErrNotInTab
		}
		mark, ok := d.markContext(ec)
		if !ok {
			return Result{Cursor: ec.Cursor, Message: "no mark set"}, nil
		}
		r, err := d.editor.KillRegion(mark, *ec.Tab, deleteSource)
		if err != nil {
			return Result{Cursor: ec.Cursor}, err
		}
		ec.Sess.Clip = r
		ctx := *ec.Tab
		if deleteSource && mark.Cell < ctx.Cell {
			ctx.Cell = mark.Cell
		}
		return d.reposition(ctx, deleteSource)
	}
}

func (d *Dispatcher) yank(ec *ExecContext) (Result, error) {
	if ec.Tab == nil {
		return Result{Cursor: ec.Cursor}, ErrNotInTab
	}
	if err := d.editor.Yank(*ec.Tab, ec.Sess.Clip); err != nil {
		return Result{Cursor: ec.Cursor}, err
	}
	return d.reposition(*ec.Tab, true)
}

func (d *Dispatcher) octaveShift(up bool) HandlerFunc {
	return func(ec *ExecContext) (Result, error) {
		if ec.Tab == nil {
			return Result{Cursor: ec.Cursor}, ErrNotInTab
		}
		if err := tuning.OctaveShift(d.buf, *ec.Tab, up); err != nil {
			return Result{Cursor: ec.Cursor}, err
		}
		return d.reposition(*ec.Tab, true)
	}
}

// transpose shifts frets by the signed amount in Arg: the region
// between mark and cursor when a usable mark exists, otherwise the
// whole staff.
func (d *Dispatcher) transpose(ec *ExecContext) (Result, error) {
	if ec.Tab == nil {
		return Result{Cursor: ec.Cursor}, ErrNotInTab
	}
	amount, err := strconv.Atoi(ec.Arg)
	if err != nil {
		return Result{Cursor: ec.Cursor}, err
	}
	var deltas [tab.StringCount]int
	for i := range deltas {
		deltas[i] = amount
	}

	if mark, ok := d.markContext(ec); ok {
		if err := tuning.TransposeRegion(d.buf, mark, *ec.Tab, deltas); err != nil {
			return Result{Cursor: ec.Cursor}, err
		}
	} else {
		last := tab.CellCount(d.buf.Line(ec.Tab.Line())) - 1
		if err := tuning.Transpose(d.buf, ec.Tab.TopLine, 0, last, deltas); err != nil {
			return Result{Cursor: ec.Cursor}, err
		}
	}
	return d.reposition(*ec.Tab, true)
}

func (d *Dispatcher) retuneString(ec *ExecContext) (Result, error) {
	if ec.Tab == nil {
		return Result{Cursor: ec.Cursor}, ErrNotInTab
	}
	if err := tuning.RetuneString(d.buf, &ec.Sess.Tuning, *ec.Tab, ec.Arg); err != nil {
		return Result{Cursor: ec.Cursor}, err
	}
	return d.reposition(*ec.Tab, true)
}

func (d *Dispatcher) learnTuning(ec *ExecContext) (Result, error) {
	if ec.Tab == nil {
		return Result{Cursor: ec.Cursor}, ErrNotInTab
	}
	t, err := tuning.Learn(d.buf, ec.Tab.TopLine)
	if err != nil {
		return Result{Cursor: ec.Cursor}, err
	}
	ec.Sess.Tuning = t
	return Result{Cursor: ec.Cursor, Message: "tuning learned"}, nil
}

func (d *Dispatcher) copyRetune(ec *ExecContext) (Result, error) {
	if ec.Tab == nil {
		return Result{Cursor: ec.Cursor}, ErrNotInTab
	}
	top, err := tuning.CopyRetune(d.buf, ec.Sess.Tuning, *ec.Tab)
	if err != nil {
		return Result{Cursor: ec.Cursor}, err
	}
	return d.reposition(cursor.Context{TopLine: top}, true)
}

func (d *Dispatcher) analyzeChord(ec *ExecContext) (Result, error) {
	if ec.Tab == nil {
		return Result{Cursor: ec.Cursor}, ErrNotInTab
	}
	res, err := ec.Chord.Analyze(*ec.Tab, ec.Sess.Tuning)
	if err != nil {
		return Result{Cursor: ec.Cursor}, err
	}
	return Result{Cursor: ec.Cursor, Message: res.Name + res.Disclaimer + "  " + res.Spelling}, nil
}

func (d *Dispatcher) labelChord(ec *ExecContext) (Result, error) {
	if ec.Tab == nil {
		return Result{Cursor: ec.Cursor}, ErrNotInTab
	}
	if err := ec.Chord.Label(); err != nil {
		return Result{Cursor: ec.Cursor}, err
	}
	return d.reposition(*ec.Tab, true)
}

// reposition converts a grid context back to a cursor offset.
func (d *Dispatcher) reposition(ctx cursor.Context, dirty bool) (Result, error) {
	off, err := d.buf.PointToOffset(ctx.Point())
	if err != nil {
		return Result{}, err
	}
	return Result{Cursor: off, Dirty: dirty}, nil
}

// markContext resolves the session mark into a grid context in the same
// staff as the execution context.
func (d *Dispatcher) markContext(ec *ExecContext) (cursor.Context, bool) {
	if ec.Sess.Mark < 0 {
		return cursor.Context{}, false
	}
	mark, ok := cursor.Resolve(d.buf, ec.Sess.Mark)
	if !ok {
		return cursor.Context{}, false
	}
	return mark, true
}

// argCount parses a repeat count argument, defaulting to one.
func argCount(arg string) int {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

package tuning

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/tabstorm/internal/buffer"
	"github.com/dshills/tabstorm/internal/tab"
	"github.com/dshills/tabstorm/internal/tab/cursor"
	"github.com/dshills/tabstorm/internal/tab/staff"
)

func staffLines(prefixes [tab.StringCount]string, cells int) []string {
	body := tab.BlankCells(cells)
	out := make([]string, 0, tab.StringCount)
	for _, p := range prefixes {
		out = append(out, tab.FormatPrefix(p)+"--"+body)
	}
	return out
}

func setNote(t *testing.T, b *buffer.Buffer, top, s, cell, fret int) {
	t.Helper()
	line := b.Line(top + s)
	col := tab.FirstCellCol + cell*tab.CellWidth
	if err := b.SetLine(top+s, line[:col]+tab.Note(tab.EmbNormal, fret).Render()+line[col+tab.CellWidth:]); err != nil {
		t.Fatal(err)
	}
}

func TestStandardTuning(t *testing.T) {
	s := Standard()

	want := [tab.StringCount]int{0, 7, 3, 10, 5, 0}
	if s.Pitches != want {
		t.Errorf("expected %v, got %v", want, s.Pitches)
	}
	seen := map[byte]bool{}
	for _, l := range s.Labels {
		if seen[l[0]] {
			t.Errorf("duplicate prefix first character %q", l[0])
		}
		seen[l[0]] = true
	}
}

func TestLearn(t *testing.T) {
	// Drop-D with a flattened third string label for the accidental path.
	prefixes := [tab.StringCount]string{"e", "B", "Gb", "D", "A", "D#"}
	b := buffer.FromString(strings.Join(staffLines(prefixes, 4), "\n"))

	got, err := Learn(b, 0)
	if err != nil {
		t.Fatalf("learn: %v", err)
	}
	want := [tab.StringCount]int{0, 7, 2, 10, 5, 11}
	if got.Pitches != want {
		t.Errorf("expected %v, got %v", want, got.Pitches)
	}
	if got.Labels[2] != "Gb" || got.Labels[5] != "D#" {
		t.Errorf("labels not preserved: %v", got.Labels)
	}
}

func TestLearnRejectsProse(t *testing.T) {
	b := buffer.FromString("not\ntab\nat\nall\nhere\nno")

	if _, err := Learn(b, 0); !errors.Is(err, ErrInvalidTuningName) {
		t.Errorf("expected ErrInvalidTuningName, got %v", err)
	}
}

func TestParseNoteName(t *testing.T) {
	if _, err := ParseNoteName("Q"); !errors.Is(err, ErrInvalidTuningName) {
		t.Errorf("expected ErrInvalidTuningName, got %v", err)
	}
	if _, err := ParseNoteName("C##"); !errors.Is(err, ErrInvalidTuningName) {
		t.Errorf("expected ErrInvalidTuningName, got %v", err)
	}
	pc, err := ParseNoteName("F#")
	if err != nil {
		t.Fatalf("parse F#: %v", err)
	}
	if pc != 2 {
		t.Errorf("expected F# = 2, got %d", pc)
	}
}

func TestRetuneStringRelabelsEveryStaff(t *testing.T) {
	std := Standard()
	lines := staffLines(std.Labels, 4)
	lines = append(lines, "")
	lines = append(lines, staffLines(std.Labels, 4)...)
	b := buffer.FromString(strings.Join(lines, "\n"))

	tn := std
	ctx := cursor.Context{TopLine: 0, String: 5}
	if err := RetuneString(b, &tn, ctx, "D"); err != nil {
		t.Fatalf("retune: %v", err)
	}

	if !strings.HasPrefix(b.Line(5), "D-|") {
		t.Errorf("first staff string 5 not relabeled: %q", b.Line(5))
	}
	if !strings.HasPrefix(b.Line(12), "D-|") {
		t.Errorf("second staff string 5 not relabeled: %q", b.Line(12))
	}
	if tn.Pitches[5] != 10 {
		t.Errorf("expected re-learned pitch 10 (D), got %d", tn.Pitches[5])
	}
}

func TestRetuneStringInvalidNameMutatesNothing(t *testing.T) {
	std := Standard()
	b := buffer.FromString(strings.Join(staffLines(std.Labels, 4), "\n"))
	before := b.Text()

	tn := std
	err := RetuneString(b, &tn, cursor.Context{TopLine: 0, String: 0}, "Z")
	if !errors.Is(err, ErrInvalidTuningName) {
		t.Fatalf("expected ErrInvalidTuningName, got %v", err)
	}
	if b.Text() != before {
		t.Error("failed retune mutated the document")
	}
	if tn != std {
		t.Error("failed retune mutated the tuning")
	}
}

func TestTransposeUniform(t *testing.T) {
	std := Standard()
	b := buffer.FromString(strings.Join(staffLines(std.Labels, 4), "\n"))
	setNote(t, b, 0, 0, 1, 3)
	setNote(t, b, 0, 4, 2, 11)

	var deltas [tab.StringCount]int
	for i := range deltas {
		deltas[i] = 2
	}
	if err := Transpose(b, 0, 0, 3, deltas); err != nil {
		t.Fatal(err)
	}

	if got := tab.CellAt(b.Line(0), 1); got.Fret != 5 {
		t.Errorf("expected fret 5, got %d", got.Fret)
	}
	// 11 + 2 wraps to 1.
	if got := tab.CellAt(b.Line(4), 2); got.Fret != 1 {
		t.Errorf("expected fret 1 after wrap, got %d", got.Fret)
	}
}

func TestTransposeNegativeWraps(t *testing.T) {
	std := Standard()
	b := buffer.FromString(strings.Join(staffLines(std.Labels, 4), "\n"))
	setNote(t, b, 0, 2, 0, 1)

	var deltas [tab.StringCount]int
	deltas[2] = -3
	if err := Transpose(b, 0, 0, 3, deltas); err != nil {
		t.Fatal(err)
	}
	if got := tab.CellAt(b.Line(2), 0); got.Fret != 10 {
		t.Errorf("expected fret 10 after wrap, got %d", got.Fret)
	}
}

func TestTransposePreservesEmbellishment(t *testing.T) {
	std := Standard()
	b := buffer.FromString(strings.Join(staffLines(std.Labels, 4), "\n"))
	line := b.Line(1)
	col := tab.FirstCellCol
	b.SetLine(1, line[:col]+tab.Note(tab.EmbHammer, 4).Render()+line[col+tab.CellWidth:])

	var deltas [tab.StringCount]int
	deltas[1] = 1
	if err := Transpose(b, 0, 0, 3, deltas); err != nil {
		t.Fatal(err)
	}
	got := tab.CellAt(b.Line(1), 0)
	if got.Emb != tab.EmbHammer || got.Fret != 5 {
		t.Errorf("expected h-5, got %+v", got)
	}
}

func TestTransposeRegionAcrossStavesFails(t *testing.T) {
	std := Standard()
	lines := staffLines(std.Labels, 4)
	lines = append(lines, "")
	lines = append(lines, staffLines(std.Labels, 4)...)
	b := buffer.FromString(strings.Join(lines, "\n"))
	setNote(t, b, 0, 0, 1, 3)
	before := b.Text()

	var deltas [tab.StringCount]int
	for i := range deltas {
		deltas[i] = 2
	}
	a := cursor.Context{TopLine: 0, Cell: 1}
	z := cursor.Context{TopLine: 7, Cell: 2}
	err := TransposeRegion(b, a, z, deltas)
	if !errors.Is(err, tab.ErrRegionSpansStaves) {
		t.Fatalf("expected ErrRegionSpansStaves, got %v", err)
	}
	// Same sentinel as the kill/yank path.
	if !errors.Is(err, staff.ErrRegionSpansStaves) {
		t.Error("transpose and kill must share one region error")
	}
	if b.Text() != before {
		t.Error("failed transpose mutated the document")
	}
}

func TestOctaveShiftRoundTrip(t *testing.T) {
	std := Standard()
	b := buffer.FromString(strings.Join(staffLines(std.Labels, 4), "\n"))
	setNote(t, b, 0, 3, 1, 7)
	ctx := cursor.Context{TopLine: 0, String: 3, Cell: 1}

	if err := OctaveShift(b, ctx, true); err != nil {
		t.Fatal(err)
	}
	if got := tab.CellAt(b.Line(3), 1); got.Fret != 19 {
		t.Errorf("expected fret 19, got %d", got.Fret)
	}
	if err := OctaveShift(b, ctx, false); err != nil {
		t.Fatal(err)
	}
	if got := tab.CellAt(b.Line(3), 1); got.Fret != 7 {
		t.Errorf("expected fret 7 after round trip, got %d", got.Fret)
	}
}

func TestOctaveShiftBoundaryNoOps(t *testing.T) {
	std := Standard()
	b := buffer.FromString(strings.Join(staffLines(std.Labels, 4), "\n"))
	setNote(t, b, 0, 0, 0, 13)
	ctx := cursor.Context{TopLine: 0, String: 0, Cell: 0}

	// 13 > 12: up is a silent no-op.
	if err := OctaveShift(b, ctx, true); err != nil {
		t.Fatal(err)
	}
	if got := tab.CellAt(b.Line(0), 0); got.Fret != 13 {
		t.Errorf("expected no-op, got fret %d", got.Fret)
	}

	setNote(t, b, 0, 0, 0, 11)
	// 11 < 12: down is a silent no-op.
	if err := OctaveShift(b, ctx, false); err != nil {
		t.Fatal(err)
	}
	if got := tab.CellAt(b.Line(0), 0); got.Fret != 11 {
		t.Errorf("expected no-op, got fret %d", got.Fret)
	}

	// Fret 12 swings both ways.
	setNote(t, b, 0, 0, 0, 12)
	if err := OctaveShift(b, ctx, true); err != nil {
		t.Fatal(err)
	}
	if got := tab.CellAt(b.Line(0), 0); got.Fret != 24 {
		t.Errorf("expected fret 24, got %d", got.Fret)
	}
}

func TestCopyRetuneWholeStepDown(t *testing.T) {
	// Source staff in standard tuning with a few fretted notes.
	std := Standard()
	lines := staffLines(std.Labels, 4)
	lines = append(lines, "")
	b := buffer.FromString(strings.Join(lines, "\n"))
	setNote(t, b, 0, 0, 0, 0)
	setNote(t, b, 0, 2, 1, 5)
	setNote(t, b, 0, 5, 3, 9)

	// Session tuning a whole step below standard on every string.
	down := std
	for i := range down.Pitches {
		down.Pitches[i] = ((down.Pitches[i]-2)%12 + 12) % 12
	}
	down.Labels = [tab.StringCount]string{"d", "A", "F", "C", "G", "D"}

	top, err := CopyRetune(b, down, cursor.Context{TopLine: 0})
	if err != nil {
		t.Fatalf("copy retune: %v", err)
	}
	if top != 7 {
		t.Errorf("expected copy below the blank line at top 7, got %d", top)
	}

	// Every originally fretted note reappears exactly 2 frets higher.
	checks := []struct{ s, cell, fret int }{
		{0, 0, 2},
		{2, 1, 7},
		{5, 3, 11},
	}
	for _, c := range checks {
		got := tab.CellAt(b.Line(top+c.s), c.cell)
		if got.Kind != tab.CellNote || got.Fret != c.fret {
			t.Errorf("string %d cell %d: expected fret %d, got %+v", c.s, c.cell, c.fret, got)
		}
	}

	// The copy carries the current tuning's prefixes.
	if !strings.HasPrefix(b.Line(top), "d-|") {
		t.Errorf("copy top string should be relabeled 'd-|', got %q", b.Line(top))
	}

	// Source staff untouched.
	if got := tab.CellAt(b.Line(0), 0); got.Fret != 0 {
		t.Errorf("source staff changed: %+v", got)
	}
}

func TestCopyRetuneTritonePrefersDown(t *testing.T) {
	std := Standard()
	lines := staffLines(std.Labels, 4)
	lines = append(lines, "")
	b := buffer.FromString(strings.Join(lines, "\n"))
	setNote(t, b, 0, 1, 0, 8)

	// Current tuning a tritone away on string 1: +6 and -6 tie, down wins.
	cur := std
	cur.Pitches[1] = (std.Pitches[1] + 6) % 12
	cur.Labels[1] = "F"

	top, err := CopyRetune(b, cur, cursor.Context{TopLine: 0})
	if err != nil {
		t.Fatal(err)
	}
	// delta = (7 - 1) mod 12 = 6 -> -6; fret 8 - 6 = 2.
	if got := tab.CellAt(b.Line(top+1), 0); got.Fret != 2 {
		t.Errorf("expected fret 2 (downward tritone), got %+v", got)
	}
}

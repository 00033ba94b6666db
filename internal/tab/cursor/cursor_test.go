package cursor

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/tabstorm/internal/buffer"
	"github.com/dshills/tabstorm/internal/tab"
)

// standardStaff returns six blank string-lines with the given number of
// cells, standard tuning prefixes.
func standardStaff(cells int) []string {
	body := tab.BlankCells(cells)
	lines := make([]string, 0, tab.StringCount)
	for _, p := range []string{"e", "B", "G", "D", "A", "E"} {
		lines = append(lines, tab.FormatPrefix(p)+"--"+body)
	}
	return lines
}

func staffBuffer(cells int) *buffer.Buffer {
	lines := append([]string{"some lyrics", ""}, standardStaff(cells)...)
	lines = append(lines, "", "plain text after")
	return buffer.FromString(strings.Join(lines, "\n"))
}

func TestResolveOutsideTab(t *testing.T) {
	b := staffBuffer(4)

	for _, line := range []int{0, 1, 9, 10} {
		p := buffer.Point{Line: line, Col: 0}
		if _, ok := ResolvePoint(b, p); ok {
			t.Errorf("line %d: expected not-in-tab", line)
		}
	}
}

func TestResolveStringIndex(t *testing.T) {
	b := staffBuffer(4)

	for s := 0; s < tab.StringCount; s++ {
		ctx, ok := ResolvePoint(b, buffer.Point{Line: 2 + s, Col: tab.FirstCellCol})
		if !ok {
			t.Fatalf("string %d: expected in tab", s)
		}
		if ctx.String != s {
			t.Errorf("string %d: resolved to %d", s, ctx.String)
		}
		if ctx.TopLine != 2 {
			t.Errorf("string %d: expected top line 2, got %d", s, ctx.TopLine)
		}
	}
}

func TestResolveSnapsToCellStart(t *testing.T) {
	b := staffBuffer(4)

	tests := []struct {
		col  int
		cell int
	}{
		{0, 0}, // inside the prefix
		{4, 0}, // rule margin
		{5, 0},
		{6, 0}, // mid-cell snaps backward
		{7, 0},
		{8, 1},
		{10, 1},
		{11, 2},
		{99, 3}, // past the end clamps to last cell
	}
	for _, tt := range tests {
		ctx, ok := ResolvePoint(b, buffer.Point{Line: 2, Col: tt.col})
		if !ok {
			t.Fatalf("col %d: expected in tab", tt.col)
		}
		if ctx.Cell != tt.cell {
			t.Errorf("col %d: expected cell %d, got %d", tt.col, tt.cell, ctx.Cell)
		}
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	b := staffBuffer(4)

	ctx, ok := ResolvePoint(b, buffer.Point{Line: 4, Col: 10})
	if !ok {
		t.Fatal("expected in tab")
	}
	again, ok := ResolvePoint(b, ctx.Point())
	if !ok {
		t.Fatal("expected in tab on second resolve")
	}
	if again != ctx {
		t.Errorf("resolve not idempotent: %+v then %+v", ctx, again)
	}
}

func TestResolveByOffset(t *testing.T) {
	b := staffBuffer(4)

	off, err := b.PointToOffset(buffer.Point{Line: 3, Col: 9})
	if err != nil {
		t.Fatal(err)
	}
	ctx, ok := Resolve(b, off)
	if !ok {
		t.Fatal("expected in tab")
	}
	want := Context{TopLine: 2, String: 1, Cell: 1}
	if ctx != want {
		t.Errorf("expected %+v, got %+v", want, ctx)
	}
}

func TestResolveRejectsShortRun(t *testing.T) {
	// Only five string lines: not a staff.
	lines := standardStaff(4)[:5]
	b := buffer.FromString(strings.Join(lines, "\n"))

	if _, ok := ResolvePoint(b, buffer.Point{Line: 2, Col: 6}); ok {
		t.Error("five-line run should not resolve as tab")
	}
}

func TestResolveRejectsDuplicatePrefix(t *testing.T) {
	lines := standardStaff(4)
	lines[0] = lines[5] // two "E-|" lines in the run
	b := buffer.FromString(strings.Join(lines, "\n"))

	if _, ok := ResolvePoint(b, buffer.Point{Line: 3, Col: 6}); ok {
		t.Error("run with duplicate prefix should not resolve as tab")
	}
}

func TestAdvanceClamps(t *testing.T) {
	b := staffBuffer(4)
	ctx, _ := ResolvePoint(b, buffer.Point{Line: 2, Col: tab.FirstCellCol})

	ctx = Advance(b, ctx, 2)
	if ctx.Cell != 2 {
		t.Errorf("expected cell 2, got %d", ctx.Cell)
	}
	ctx = Advance(b, ctx, 10)
	if ctx.Cell != 3 {
		t.Errorf("expected clamp at cell 3, got %d", ctx.Cell)
	}
	ctx = Advance(b, ctx, -10)
	if ctx.Cell != 0 {
		t.Errorf("expected clamp at cell 0, got %d", ctx.Cell)
	}
}

func TestMoveStrings(t *testing.T) {
	b := staffBuffer(4)
	ctx, _ := ResolvePoint(b, buffer.Point{Line: 2, Col: tab.FirstCellCol})

	down, err := MoveStrings(ctx, 5)
	if err != nil {
		t.Fatalf("move to string 5: %v", err)
	}
	if down.String != 5 {
		t.Errorf("expected string 5, got %d", down.String)
	}

	if _, err := MoveStrings(down, 1); !errors.Is(err, ErrStringOutOfRange) {
		t.Errorf("expected ErrStringOutOfRange below string 5, got %v", err)
	}
	if _, err := MoveStrings(ctx, -1); !errors.Is(err, ErrStringOutOfRange) {
		t.Errorf("expected ErrStringOutOfRange above string 0, got %v", err)
	}
}

func TestMoveStaff(t *testing.T) {
	lines := standardStaff(4)
	lines = append(lines, "", "interlude", "")
	lines = append(lines, standardStaff(8)...)
	b := buffer.FromString(strings.Join(lines, "\n"))

	ctx, ok := ResolvePoint(b, buffer.Point{Line: 1, Col: 8})
	if !ok {
		t.Fatal("expected in tab")
	}

	next, moved := MoveStaff(b, ctx, 1)
	if !moved {
		t.Fatal("expected to find next staff")
	}
	if next.TopLine != 9 {
		t.Errorf("expected next staff top at line 9, got %d", next.TopLine)
	}
	if next.String != ctx.String || next.Cell != ctx.Cell {
		t.Errorf("string/cell should carry over, got %+v from %+v", next, ctx)
	}

	back, moved := MoveStaff(b, next, -1)
	if !moved {
		t.Fatal("expected to find previous staff")
	}
	if back.TopLine != 0 {
		t.Errorf("expected previous staff top at line 0, got %d", back.TopLine)
	}

	if _, moved := MoveStaff(b, back, -1); moved {
		t.Error("no staff precedes the first; move should report false")
	}
	if _, moved := MoveStaff(b, next, 1); moved {
		t.Error("no staff follows the last; move should report false")
	}
}

func TestMoveStaffClampsCell(t *testing.T) {
	lines := standardStaff(8)
	lines = append(lines, "")
	lines = append(lines, standardStaff(2)...)
	b := buffer.FromString(strings.Join(lines, "\n"))

	ctx, _ := ResolvePoint(b, buffer.Point{Line: 0, Col: tab.FirstCellCol + 6*tab.CellWidth})
	if ctx.Cell != 6 {
		t.Fatalf("expected cell 6, got %d", ctx.Cell)
	}
	next, moved := MoveStaff(b, ctx, 1)
	if !moved {
		t.Fatal("expected to find next staff")
	}
	if next.Cell != 1 {
		t.Errorf("expected cell clamped to 1 on narrow staff, got %d", next.Cell)
	}
}

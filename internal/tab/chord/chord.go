// Package chord names the chord formed by one column of fretted
// positions. Analysis walks an ordered decision list of interval
// patterns; entry order, not musical theory, breaks ties, which mirrors
// how guitarists actually label ambiguous voicings.
package chord

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/tabstorm/internal/buffer"
	"github.com/dshills/tabstorm/internal/tab"
	"github.com/dshills/tabstorm/internal/tab/cursor"
	"github.com/dshills/tabstorm/internal/tab/tuning"
)

// Errors returned by chord operations.
var (
	// ErrNoNotesInChord indicates a root search wrapped through all six
	// strings without finding a fretted note.
	ErrNoNotesInChord = errors.New("no notes in chord")

	// ErrLabelOutOfSequence indicates a label request that does not
	// immediately follow a successful analysis.
	ErrLabelOutOfSequence = errors.New("chord label out of sequence")
)

// Result is the outcome of one analysis.
type Result struct {
	// Name is the full chord name, root included: "A", "Am7", "F#m/maj7".
	Name string
	// Disclaimer notes omitted chord tones, e.g. ",no5".
	Disclaimer string
	// Spelling renders each string's scale degree high to low.
	Spelling string
}

// Analyzer performs chord analysis over a buffer and holds the
// one-deep gesture state that repeat invocations and labeling need.
type Analyzer struct {
	buf        *buffer.Buffer
	patterns   map[int][]Pattern
	twelveTone bool

	// Last-analysis state. armed gates Label; lastCtx and rootString
	// drive the repeat-invocation root advance.
	armed      bool
	lastCtx    cursor.Context
	rootString int
	result     Result
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTwelveTone enables the parenthesized numeric spelling suffix.
func WithTwelveTone(on bool) Option {
	return func(a *Analyzer) { a.twelveTone = on }
}

// WithPatterns appends extra patterns after the built-ins for their
// note counts, preserving registration order.
func WithPatterns(extra map[int][]Pattern) Option {
	return func(a *Analyzer) {
		for count, ps := range extra {
			a.patterns[count] = append(a.patterns[count], ps...)
		}
	}
}

// New creates an analyzer over the given buffer.
func New(b *buffer.Buffer, opts ...Option) *Analyzer {
	a := &Analyzer{buf: b, patterns: map[int][]Pattern{}}
	for count, ps := range builtinPatterns {
		a.patterns[count] = append([]Pattern(nil), ps...)
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetTwelveTone flips the numeric-spelling flag; live config reload
// uses this.
func (a *Analyzer) SetTwelveTone(on bool) { a.twelveTone = on }

// Reset clears the gesture state. The dispatcher calls it whenever a
// non-chord command runs, so Label and root advance only fire
// immediately after an analysis.
func (a *Analyzer) Reset() { a.armed = false }

// Analyze names the chord in the context's column. Invoked again at the
// same column immediately after a previous analysis, it advances the
// root to the next fretted string, wrapping; everything else reads the
// column fresh each call.
func (a *Analyzer) Analyze(ctx cursor.Context, tn tuning.Tuning) (Result, error) {
	// Fretted notes in this column, high string to low.
	var frets [tab.StringCount]int
	var has [tab.StringCount]bool
	for s := 0; s < tab.StringCount; s++ {
		cell := tab.CellAt(a.buf.Line(ctx.TopLine+s), ctx.Cell)
		if cell.Kind == tab.CellNote {
			frets[s] = cell.Fret
			has[s] = true
		}
	}

	repeat := a.armed && a.lastCtx.TopLine == ctx.TopLine && a.lastCtx.Cell == ctx.Cell
	start := ctx.String
	if repeat {
		start = a.rootString + 1
	}
	rootString := -1
	for i := 0; i < tab.StringCount; i++ {
		s := (start + i) % tab.StringCount
		if has[s] {
			rootString = s
			break
		}
	}
	if rootString < 0 {
		a.armed = false
		return Result{}, ErrNoNotesInChord
	}
	rootPC := pitchClass(frets[rootString] + tn.Pitches[rootString])

	// Occurrence counts per pitch class; the lowest engaged string,
	// processed last, leaves the bass candidate behind.
	counts := map[int]int{}
	bassPC := rootPC
	for s := 0; s < tab.StringCount; s++ {
		if !has[s] {
			continue
		}
		pc := pitchClass(frets[s] + tn.Pitches[s])
		counts[pc]++
		bassPC = pc
	}

	ivs := intervalSet(counts, rootPC, -1)
	count := len(ivs) + 1
	match, found := a.match(count, ivs)

	name := noMatchName
	disclaimer := ""
	if found {
		name = match.Name
		disclaimer = match.Disclaimer
	}

	// A lone, non-root bass note often hides a simpler chord: drop it,
	// rematch, and report the result as a slash chord.
	if !found && bassPC != rootPC && counts[bassPC] == 1 {
		reduced := intervalSet(counts, rootPC, bassPC)
		if m, ok := a.match(len(reduced)+1, reduced); ok {
			match = m
			name = m.Name + "/" + tab.PitchName(bassPC)
			disclaimer = m.Disclaimer
			found = true
		}
	}

	res := Result{
		Name:       tab.PitchName(rootPC) + name,
		Disclaimer: disclaimer,
		Spelling:   a.spell(frets, has, tn, rootPC, match.Degrees),
	}

	a.armed = true
	a.lastCtx = ctx
	a.rootString = rootString
	a.result = res
	return res, nil
}

// match scans the decision list for the note count in declaration
// order; the first pattern whose intervals equal ivs wins.
func (a *Analyzer) match(count int, ivs []int) (Pattern, bool) {
	for _, p := range a.patterns[count] {
		if p.matches(ivs) {
			return p, true
		}
	}
	return Pattern{}, false
}

// intervalSet collects the distinct ascending intervals of the occupied
// pitch classes relative to root, skipping the root itself and, when
// excluded is non-negative, that class as well.
func intervalSet(counts map[int]int, root, excluded int) []int {
	set := map[int]bool{}
	for pc := range counts {
		if pc == root || pc == excluded {
			continue
		}
		set[pitchClass(pc-root)] = true
	}
	out := make([]int, 0, len(set))
	for iv := range set {
		out = append(out, iv)
	}
	sort.Ints(out)
	return out
}

// spell renders each string's scale degree, high string first, with
// pattern overrides applied, plus the optional numeric spelling.
func (a *Analyzer) spell(frets [tab.StringCount]int, has [tab.StringCount]bool, tn tuning.Tuning, rootPC int, overrides map[int]string) string {
	parts := make([]string, 0, tab.StringCount)
	for s := 0; s < tab.StringCount; s++ {
		if !has[s] {
			parts = append(parts, "x")
			continue
		}
		iv := pitchClass(frets[s] + tn.Pitches[s] - rootPC)
		label := degreeNames[iv]
		if o, ok := overrides[iv]; ok {
			label = o
		}
		parts = append(parts, label)
	}
	out := strings.Join(parts, " ")

	if a.twelveTone {
		nums := make([]string, 0, tab.StringCount)
		for s := tab.StringCount - 1; s >= 0; s-- {
			if !has[s] {
				nums = append(nums, "x")
				continue
			}
			nums = append(nums, strconv.Itoa(pitchClass(frets[s]+tn.Pitches[s])))
		}
		out += " (" + strings.Join(nums, " ") + ")"
	}
	return out
}

// Label writes the last analysis's chord name on the line directly
// above the analyzed staff, column-aligned with the analyzed column.
// It fails unless called immediately after a successful Analyze; the
// analysis is consumed either way.
func (a *Analyzer) Label() error {
	if !a.armed {
		return ErrLabelOutOfSequence
	}
	a.armed = false

	top := a.lastCtx.TopLine
	col := tab.FirstCellCol + a.lastCtx.Cell*tab.CellWidth
	labelLine := top - 1
	if labelLine < 0 || tab.IsStringLine(a.buf.Line(labelLine)) {
		if err := a.buf.InsertLine(top, ""); err != nil {
			return err
		}
		labelLine = top
	}

	line := []byte(a.buf.Line(labelLine))
	for len(line) < col+len(a.result.Name) {
		line = append(line, ' ')
	}
	// Erase whatever label sat here before, then write the new name
	// without touching anything beyond it.
	for i := col; i < len(line) && line[i] != ' '; i++ {
		line[i] = ' '
	}
	copy(line[col:], a.result.Name)
	return a.buf.SetLine(labelLine, string(line))
}

func pitchClass(n int) int {
	return ((n % 12) + 12) % 12
}

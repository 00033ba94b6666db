package tab

import "fmt"

// Grid geometry. A string-line is PrefixLen prefix characters, a
// RuleMargin of dashes, then CellWidth-character cells.
const (
	PrefixLen    = 3
	RuleMargin   = 2
	FirstCellCol = PrefixLen + RuleMargin
	CellWidth    = 3
	StringCount  = 6

	// MaxFret is the highest representable fret. Normal entry stays in
	// 0..12; the octave shift can push a note up to 24.
	MaxFret = 24
)

// EmbKind is a note embellishment, stored as the single character
// preceding the fret digits.
type EmbKind uint8

const (
	EmbNormal EmbKind = iota
	EmbHammer
	EmbPull
	EmbBend
	EmbRelease
	EmbSlideUp
	EmbSlideDown
	EmbVibrato
	EmbGhost
	EmbMuffled
)

var embChars = [...]byte{'-', 'h', 'p', 'b', 'r', '/', '\\', '~', '(', 'X'}

// Char returns the single-character representation of the embellishment.
func (e EmbKind) Char() byte {
	if int(e) < len(embChars) {
		return embChars[e]
	}
	return '-'
}

// String returns a human-readable name for the embellishment.
func (e EmbKind) String() string {
	switch e {
	case EmbNormal:
		return "normal"
	case EmbHammer:
		return "hammer"
	case EmbPull:
		return "pull"
	case EmbBend:
		return "bend"
	case EmbRelease:
		return "release"
	case EmbSlideUp:
		return "slide-up"
	case EmbSlideDown:
		return "slide-down"
	case EmbVibrato:
		return "vibrato"
	case EmbGhost:
		return "ghost"
	case EmbMuffled:
		return "muffled"
	default:
		return "unknown"
	}
}

// EmbFromChar maps an embellishment character back to its kind.
func EmbFromChar(c byte) (EmbKind, bool) {
	for i, ec := range embChars {
		if c == ec {
			return EmbKind(i), true
		}
	}
	return EmbNormal, false
}

// CellKind discriminates the three cell variants.
type CellKind uint8

const (
	CellBlank CellKind = iota
	CellNote
	CellBarline
)

// Cell is one 3-character tablature slot on one string.
type Cell struct {
	Kind CellKind
	Emb  EmbKind // meaningful only for CellNote
	Fret int     // meaningful only for CellNote, 0..MaxFret
}

// Blank returns the blank cell.
func Blank() Cell { return Cell{Kind: CellBlank} }

// Barline returns the barline cell.
func Barline() Cell { return Cell{Kind: CellBarline} }

// Note returns a fretted-note cell.
func Note(emb EmbKind, fret int) Cell {
	return Cell{Kind: CellNote, Emb: emb, Fret: fret}
}

// Render produces the cell's exact 3-character text.
func (c Cell) Render() string {
	switch c.Kind {
	case CellBarline:
		return "--|"
	case CellNote:
		if c.Fret >= 10 {
			return fmt.Sprintf("%c%d", c.Emb.Char(), c.Fret)
		}
		return fmt.Sprintf("%c-%d", c.Emb.Char(), c.Fret)
	default:
		return "---"
	}
}

// ParseCell decodes a 3-character slot. Anything that is not a valid
// barline or note reads as blank, which keeps the grid tolerant of
// hand-edited text.
func ParseCell(s string) Cell {
	if len(s) != CellWidth {
		return Blank()
	}
	if s == "---" {
		return Blank()
	}
	if s == "--|" {
		return Barline()
	}
	emb, ok := EmbFromChar(s[0])
	if !ok {
		return Blank()
	}
	if isDigit(s[1]) && isDigit(s[2]) {
		return Note(emb, int(s[1]-'0')*10+int(s[2]-'0'))
	}
	if s[1] == '-' && isDigit(s[2]) {
		return Note(emb, int(s[2]-'0'))
	}
	return Blank()
}

// CellAt decodes the cell at the given cell index of a string-line.
// Indexes past the end of the line read as blank.
func CellAt(line string, cell int) Cell {
	col := FirstCellCol + cell*CellWidth
	if cell < 0 || col+CellWidth > len(line) {
		return Blank()
	}
	return ParseCell(line[col : col+CellWidth])
}

// CellCount returns the number of whole cells on a string-line.
func CellCount(line string) int {
	if len(line) <= FirstCellCol {
		return 0
	}
	return (len(line) - FirstCellCol) / CellWidth
}

// BlankCells returns n cells worth of dashes.
func BlankCells(n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, n*CellWidth)
	for i := range out {
		out[i] = '-'
	}
	return string(out)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

package tab

// Pitch classes are semitones above E, modulo 12. E is the reference
// because string 5 of a standard-tuned guitar is E and the tab format
// grew up around it.
var letterPitch = map[byte]int{
	'E': 0, 'F': 1, 'G': 3, 'A': 5, 'B': 7, 'C': 8, 'D': 10,
}

// pitchNames spells every pitch class with sharps.
var pitchNames = [12]string{
	"E", "F", "F#", "G", "G#", "A", "A#", "B", "C", "C#", "D", "D#",
}

// PitchName returns the sharp spelling of a pitch class.
func PitchName(pc int) string {
	return pitchNames[((pc%12)+12)%12]
}

// NotePitch converts a note name (letter plus optional '#' or 'b') to a
// pitch class. Lowercase letters are accepted; the high E string is
// conventionally labeled "e" to keep prefix first-characters unique.
func NotePitch(name string) (int, bool) {
	if len(name) == 0 || len(name) > 2 {
		return 0, false
	}
	letter := name[0]
	if letter >= 'a' && letter <= 'g' {
		letter -= 'a' - 'A'
	}
	pc, ok := letterPitch[letter]
	if !ok {
		return 0, false
	}
	if len(name) == 2 {
		switch name[1] {
		case '#':
			pc++
		case 'b':
			pc--
		default:
			return 0, false
		}
	}
	return ((pc % 12) + 12) % 12, true
}

// FormatPrefix renders a string-line prefix from a note name: the
// letter, the accidental or a dash, then the '|' rule separator.
func FormatPrefix(name string) string {
	if len(name) == 0 {
		return "?-|"
	}
	if len(name) >= 2 && (name[1] == '#' || name[1] == 'b') {
		return name[:2] + "|"
	}
	return name[:1] + "-|"
}

// PrefixNote extracts the note name from the start of a string-line.
func PrefixNote(line string) (string, bool) {
	if !IsStringLine(line) {
		return "", false
	}
	if line[1] == '#' || line[1] == 'b' {
		return line[:2], true
	}
	return line[:1], true
}

// IsStringLine reports whether a buffer line is a tablature string-line:
// a note letter, an accidental or dash, then the '|' separator. The
// leading letter is what distinguishes tab from surrounding prose.
func IsStringLine(line string) bool {
	if len(line) < FirstCellCol {
		return false
	}
	c := line[0]
	if !(c >= 'A' && c <= 'G' || c >= 'a' && c <= 'g') {
		return false
	}
	if line[1] != '#' && line[1] != 'b' && line[1] != '-' {
		return false
	}
	return line[2] == '|'
}

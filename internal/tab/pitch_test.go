package tab

import "testing"

func TestNotePitch(t *testing.T) {
	tests := []struct {
		name string
		want int
		ok   bool
	}{
		{"E", 0, true},
		{"e", 0, true},
		{"F", 1, true},
		{"F#", 2, true},
		{"G", 3, true},
		{"Gb", 2, true},
		{"A", 5, true},
		{"B", 7, true},
		{"C", 8, true},
		{"D", 10, true},
		{"D#", 11, true},
		{"Eb", 11, true}, // wraps below E
		{"E#", 1, true},
		{"H", 0, false},
		{"", 0, false},
		{"A!", 0, false},
		{"ABC", 0, false},
	}
	for _, tt := range tests {
		got, ok := NotePitch(tt.name)
		if ok != tt.ok {
			t.Errorf("%q: expected ok=%v, got %v", tt.name, tt.ok, ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("%q: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestPitchName(t *testing.T) {
	tests := []struct {
		pc   int
		want string
	}{
		{0, "E"},
		{5, "A"},
		{9, "C#"},
		{12, "E"},
		{-1, "D#"},
	}
	for _, tt := range tests {
		if got := PitchName(tt.pc); got != tt.want {
			t.Errorf("pc %d: expected %q, got %q", tt.pc, tt.want, got)
		}
	}
}

func TestFormatPrefix(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"E", "E-|"},
		{"e", "e-|"},
		{"F#", "F#|"},
		{"Bb", "Bb|"},
	}
	for _, tt := range tests {
		if got := FormatPrefix(tt.name); got != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestPrefixNote(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{"e-|-------", "e", true},
		{"F#|-------", "F#", true},
		{"Bb|-------", "Bb", true},
		{"no tab here", "", false},
	}
	for _, tt := range tests {
		got, ok := PrefixNote(tt.line)
		if ok != tt.ok || got != tt.want {
			t.Errorf("%q: expected (%q,%v), got (%q,%v)", tt.line, tt.want, tt.ok, got, ok)
		}
	}
}

func TestIsStringLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"e-|-------", true},
		{"E-|--", true},
		{"F#|------", true},
		{"Ab|------", true},
		{"E-|", false}, // too short to hold the rule margin
		{"X-|------", false},
		{"E?|------", false},
		{"Every good boy", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsStringLine(tt.line); got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.line, tt.want, got)
		}
	}
}

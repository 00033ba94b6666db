// Package session holds the per-document mutable state that the
// original design kept in globals: the active tuning, the single-slot
// rectangular clipboard, the pending embellishment, and the user's
// sticky preferences. Every command receives the session explicitly;
// nothing here is ambient.
package session

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/tabstorm/internal/tab"
	"github.com/dshills/tabstorm/internal/tab/staff"
	"github.com/dshills/tabstorm/internal/tab/tuning"
)

// Session is the state of one open tablature document.
type Session struct {
	// ID correlates log lines from one editing session.
	ID string

	// Tuning is the active six-string tuning.
	Tuning tuning.Tuning

	// Clip is the single-slot rectangular clipboard. Kill and copy
	// overwrite it; there is no ring.
	Clip *staff.Rect

	// PendingEmb is applied to the next entered note, then reset.
	PendingEmb tab.EmbKind

	// TwelveTone appends the numeric spelling to chord analyses.
	TwelveTone bool

	// Mark is the raw buffer offset set by the set-mark command, or -1.
	Mark int
}

// New creates a session with standard tuning and no clipboard.
func New() *Session {
	return &Session{
		ID:     uuid.NewString(),
		Tuning: tuning.Standard(),
		Mark:   -1,
	}
}

// StatePath returns the session state file location, honoring
// XDG_STATE_HOME.
func StatePath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "tabstorm", "state.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "tabstorm", "state.json")
}

// Load restores the sticky parts of a session (tuning and the
// twelve-tone flag) from the state file. A missing or unreadable file
// leaves the defaults in place; state is a convenience, never a
// requirement.
func (s *Session) Load(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	doc := string(data)

	if v := gjson.Get(doc, "twelve_tone"); v.Exists() {
		s.TwelveTone = v.Bool()
	}
	pitches := gjson.Get(doc, "tuning.pitches").Array()
	labels := gjson.Get(doc, "tuning.labels").Array()
	if len(pitches) == tab.StringCount && len(labels) == tab.StringCount {
		var t tuning.Tuning
		for i := 0; i < tab.StringCount; i++ {
			t.Pitches[i] = int(pitches[i].Int()) % 12
			t.Labels[i] = labels[i].String()
		}
		s.Tuning = t
	}
}

// Save writes the sticky parts of the session back to the state file,
// preserving any unrelated keys already present.
func (s *Session) Save(path string) error {
	doc := "{}"
	if data, err := os.ReadFile(path); err == nil {
		doc = string(data)
	}

	var err error
	if doc, err = sjson.Set(doc, "twelve_tone", s.TwelveTone); err != nil {
		return err
	}
	if doc, err = sjson.Set(doc, "tuning.pitches", s.Tuning.Pitches[:]); err != nil {
		return err
	}
	if doc, err = sjson.Set(doc, "tuning.labels", s.Tuning.Labels[:]); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(doc), 0o644)
}

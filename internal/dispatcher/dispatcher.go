// Package dispatcher routes resolved input actions to their handlers.
// It owns the one piece of cross-command coordination the chord gesture
// needs: any action other than analyze or label disarms the analyzer,
// so repeat-analysis and labeling only chain off an immediately
// preceding analysis.
package dispatcher

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/tabstorm/internal/buffer"
	"github.com/dshills/tabstorm/internal/input"
	"github.com/dshills/tabstorm/internal/session"
	"github.com/dshills/tabstorm/internal/tab/chord"
	"github.com/dshills/tabstorm/internal/tab/cursor"
	"github.com/dshills/tabstorm/internal/tab/staff"
)

// ErrNoHandler indicates an action name with nothing registered for it.
var ErrNoHandler = errors.New("no handler for action")

// ExecContext is everything a handler may touch. Tab is nil when the
// cursor does not resolve inside a staff; handlers that require the
// grid check it and degrade or refuse.
type ExecContext struct {
	Buf   *buffer.Buffer
	Sess  *session.Session
	Staff *staff.Editor
	Chord *chord.Analyzer

	// Tab is the resolved grid position, nil outside tab.
	Tab *cursor.Context
	// Cursor is the raw buffer offset the action fired at.
	Cursor int
	// Arg is the action argument: a fret digit, an embellishment
	// character, literal text, a note name, or a transpose amount.
	Arg string
}

// Result reports what a handler did.
type Result struct {
	// Cursor is the offset the cursor should move to.
	Cursor int
	// Dirty marks the buffer as modified.
	Dirty bool
	// Message is surfaced on the status line.
	Message string
	// Quit asks the event loop to stop.
	Quit bool
}

// HandlerFunc executes one action.
type HandlerFunc func(*ExecContext) (Result, error)

// Dispatcher maps action names to handlers and runs them against one
// buffer and session.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc

	buf    *buffer.Buffer
	sess   *session.Session
	editor *staff.Editor
	chords *chord.Analyzer

	// staffWidth is read under mu: the config watcher updates it from
	// its own goroutine.
	staffWidth int
}

// New creates a dispatcher with the standard handlers registered.
func New(b *buffer.Buffer, s *session.Session, an *chord.Analyzer, staffWidth int) *Dispatcher {
	d := &Dispatcher{
		handlers:   make(map[string]HandlerFunc),
		buf:        b,
		sess:       s,
		editor:     staff.NewEditor(b),
		chords:     an,
		staffWidth: staffWidth,
	}
	d.registerDefaults()
	return d
}

// SetStaffWidth changes the width used for newly created staves.
func (d *Dispatcher) SetStaffWidth(w int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.staffWidth = w
}

func (d *Dispatcher) width() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.staffWidth
}

// Register installs (or replaces) the handler for an action name.
func (d *Dispatcher) Register(name string, h HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = h
}

// Dispatch executes the action at the given cursor offset. The tab
// context is resolved fresh for every dispatch; stale grid positions
// are never carried across edits.
func (d *Dispatcher) Dispatch(act input.Action, cursorOff int) (Result, error) {
	d.mu.RLock()
	h, ok := d.handlers[act.Name]
	d.mu.RUnlock()
	if !ok {
		return Result{Cursor: cursorOff}, fmt.Errorf("%w: %s", ErrNoHandler, act.Name)
	}

	if act.Name != input.ActionAnalyzeChord && act.Name != input.ActionLabelChord {
		d.chords.Reset()
	}

	ec := &ExecContext{
		Buf:    d.buf,
		Sess:   d.sess,
		Staff:  d.editor,
		Chord:  d.chords,
		Cursor: cursorOff,
		Arg:    act.Arg,
	}
	if ctx, ok := cursor.Resolve(d.buf, cursorOff); ok {
		ec.Tab = &ctx
	}
	return h(ec)
}

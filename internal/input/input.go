// Package input maps keys to editor actions. The central design rule:
// every tab-aware command resolves through the cursor model first, and
// any key without tab context degrades to literal self-insertion. That
// duality lives here, in one place, instead of being scattered through
// the handlers.
package input

// Key is a normalized key name: a single printable character ("3",
// "|"), a control chord ("C-w"), or a named key ("Enter", "Backspace",
// "Up", "Down", "Left", "Right").
type Key string

// Action names, handled by the dispatcher.
const (
	ActionSelfInsert    = "self-insert"
	ActionNone          = "none"
	ActionQuit          = "quit"
	ActionSave          = "save"
	ActionNote          = "note"
	ActionEmbellish     = "embellish"
	ActionAdvance       = "advance"
	ActionRetreat       = "retreat"
	ActionStringUp      = "string-up"
	ActionStringDown    = "string-down"
	ActionStaffForward  = "staff-forward"
	ActionStaffBackward = "staff-backward"
	ActionMakeStaff     = "make-staff"
	ActionInsertColumns = "insert-columns"
	ActionDeleteCell    = "delete-cell"
	ActionDeleteBack    = "delete-back"
	ActionToggleBarline = "toggle-barline"
	ActionSetMark       = "set-mark"
	ActionKillRegion    = "kill-region"
	ActionCopyRegion    = "copy-region"
	ActionYank          = "yank"
	ActionOctaveUp      = "octave-up"
	ActionOctaveDown    = "octave-down"
	ActionTranspose     = "transpose"
	ActionRetune        = "retune-string"
	ActionLearnTuning   = "learn-tuning"
	ActionCopyRetune    = "copy-retune"
	ActionAnalyzeChord  = "analyze-chord"
	ActionLabelChord    = "label-chord"
)

// Action is a resolved command plus its argument (the fret digit for
// note entry, the embellishment character, or the literal text to
// insert).
type Action struct {
	Name string
	Arg  string
}

// Binding ties a key to an action. Global bindings fire with or
// without tab context; the rest require the cursor to be inside a
// staff.
type Binding struct {
	Key    Key
	Action Action
	Global bool
}

// Keymap is an ordered list of bindings; earlier entries win, matching
// how layered keymaps resolve in most editors.
type Keymap struct {
	Bindings []Binding
}

// Default returns the standard tabstorm keymap.
func Default() *Keymap {
	km := &Keymap{}
	add := func(k Key, name, arg string, global bool) {
		km.Bindings = append(km.Bindings, Binding{Key: k, Action: Action{Name: name, Arg: arg}, Global: global})
	}

	add("C-q", ActionQuit, "", true)
	add("C-s", ActionSave, "", true)
	add("C-n", ActionMakeStaff, "", true)
	add("C-f", ActionStaffForward, "", false)
	add("C-b", ActionStaffBackward, "", false)

	for d := '0'; d <= '9'; d++ {
		add(Key(d), ActionNote, string(d), false)
	}
	for _, e := range []Key{"h", "p", "b", "r", "/", "\\", "~", "(", "X"} {
		add(e, ActionEmbellish, string(e), false)
	}

	add(" ", ActionAdvance, "", false)
	add("Right", ActionAdvance, "", false)
	add("Left", ActionRetreat, "", false)
	add("Up", ActionStringUp, "", false)
	add("Down", ActionStringDown, "", false)
	add("|", ActionToggleBarline, "", false)
	add("C-i", ActionInsertColumns, "", false)
	add("C-d", ActionDeleteCell, "", false)
	add("Backspace", ActionDeleteBack, "", false)
	add("C-Space", ActionSetMark, "", false)
	add("C-w", ActionKillRegion, "", false)
	add("C-c", ActionCopyRegion, "", false)
	add("C-y", ActionYank, "", false)
	add("<", ActionOctaveDown, "", false)
	add(">", ActionOctaveUp, "", false)
	add("C-x", ActionTranspose, "", false)
	add("C-e", ActionRetune, "", false)
	add("C-t", ActionLearnTuning, "", false)
	add("C-r", ActionCopyRetune, "", false)
	add("C-a", ActionAnalyzeChord, "", false)
	add("C-l", ActionLabelChord, "", false)

	return km
}

// Resolve maps a key to its action given whether the cursor currently
// resolves to tab context. Outside tab, non-global bindings are
// ignored and printable keys become literal self-inserts, so prose
// around the staves stays editable with the mode active.
func (km *Keymap) Resolve(k Key, inTab bool) Action {
	for _, b := range km.Bindings {
		if b.Key != k {
			continue
		}
		if b.Global || inTab {
			return b.Action
		}
		break
	}
	if len(k) == 1 {
		return Action{Name: ActionSelfInsert, Arg: string(k)}
	}
	return Action{Name: ActionNone}
}

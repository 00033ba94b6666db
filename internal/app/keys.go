package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tabstorm/internal/input"
)

// keyFromEvent normalizes a tcell key event into the keymap's key
// names. Unrecognized keys come back empty.
func keyFromEvent(ev *tcell.EventKey) input.Key {
	k := ev.Key()
	switch {
	case k == tcell.KeyRune:
		return input.Key(ev.Rune())
	case k == tcell.KeyCtrlSpace:
		return "C-Space"
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return input.Key([]byte{'C', '-', byte('a' + k - tcell.KeyCtrlA)})
	}

	switch k {
	case tcell.KeyUp:
		return "Up"
	case tcell.KeyDown:
		return "Down"
	case tcell.KeyLeft:
		return "Left"
	case tcell.KeyRight:
		return "Right"
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "Backspace"
	case tcell.KeyEscape:
		return "Escape"
	}
	return ""
}

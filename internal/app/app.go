// Package app wires the editor together: configuration, session state,
// the dispatcher, and the terminal event loop.
package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tabstorm/internal/config"
	"github.com/dshills/tabstorm/internal/dispatcher"
	"github.com/dshills/tabstorm/internal/input"
	"github.com/dshills/tabstorm/internal/plugin/lua"
	"github.com/dshills/tabstorm/internal/session"
	"github.com/dshills/tabstorm/internal/tab"
	"github.com/dshills/tabstorm/internal/tab/chord"
	"github.com/dshills/tabstorm/internal/tab/cursor"
	"github.com/dshills/tabstorm/internal/tab/tuning"
)

// Options configures the application.
type Options struct {
	// Path is the tab file to edit.
	Path string
	// ConfigPath overrides the default config file location.
	ConfigPath string
	// LogOutput receives log lines; nil disables logging.
	LogOutput io.Writer
}

// App is the running editor: one document, one session, one screen.
type App struct {
	log    *Logger
	cfg    config.Config
	sess   *session.Session
	doc    *Document
	keymap *input.Keymap
	disp   *dispatcher.Dispatcher
	chords *chord.Analyzer

	screen  tcell.Screen
	watcher *config.Watcher

	cursorOff int
	scroll    int
	status    string

	// prompt collects an argument for retune and transpose.
	promptLabel  string
	promptText   string
	promptAction string
}

// New builds an application from its options: config, session state,
// user patterns, and the dispatcher over the opened document.
func New(opts Options) (*App, error) {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log := NewLogger(ParseLogLevel(cfg.LogLevel), opts.LogOutput)

	sess := session.New()
	if t, ok := tuningPreset(cfg.Tuning); ok {
		sess.Tuning = t
	}
	sess.Load(session.StatePath())
	sess.TwelveTone = sess.TwelveTone || cfg.TwelveTone

	doc, err := OpenDocument(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", opts.Path, err)
	}

	patterns, err := lua.LoadPatterns(cfg.PatternDir)
	if err != nil {
		return nil, fmt.Errorf("patterns: %w", err)
	}
	an := chord.New(doc.Buf,
		chord.WithTwelveTone(sess.TwelveTone),
		chord.WithPatterns(patterns),
	)

	a := &App{
		log:    log.WithField("session", sess.ID),
		cfg:    cfg,
		sess:   sess,
		doc:    doc,
		keymap: input.Default(),
		disp:   dispatcher.New(doc.Buf, sess, an, cfg.StaffWidth),
		chords: an,
	}
	a.disp.Register(input.ActionSave, a.save)

	if w, err := config.Watch(cfgPath, a.applyConfig); err == nil {
		a.watcher = w
	} else {
		a.log.Warn("config watch: %v", err)
	}

	a.log.Info("opened %s (%d lines)", opts.Path, doc.Buf.LineCount())
	return a, nil
}

// tuningPreset parses the config tuning setting: six space-separated
// note names, high string first. "standard" and anything unparsable
// keep the default.
func tuningPreset(s string) (tuning.Tuning, bool) {
	fields := strings.Fields(s)
	if len(fields) != tab.StringCount {
		return tuning.Tuning{}, false
	}
	var t tuning.Tuning
	for i, name := range fields {
		pc, ok := tab.NotePitch(name)
		if !ok {
			return tuning.Tuning{}, false
		}
		t.Pitches[i] = pc
		t.Labels[i] = name
	}
	return t, true
}

// applyConfig picks up a reloaded config. Runs on the watcher
// goroutine; only settings that are safe to flip live are applied.
func (a *App) applyConfig(cfg config.Config) {
	a.disp.SetStaffWidth(cfg.StaffWidth)
	a.chords.SetTwelveTone(cfg.TwelveTone || a.sess.TwelveTone)
	a.log.SetLevel(ParseLogLevel(cfg.LogLevel))
	a.log.Info("config reloaded")
}

// save writes the document and the sticky session state.
func (a *App) save(ec *dispatcher.ExecContext) (dispatcher.Result, error) {
	if err := a.doc.Save(); err != nil {
		return dispatcher.Result{Cursor: ec.Cursor}, err
	}
	if err := a.sess.Save(session.StatePath()); err != nil {
		a.log.Warn("session state: %v", err)
	}
	return dispatcher.Result{Cursor: ec.Cursor, Message: "saved " + a.doc.Path}, nil
}

// Run drives the terminal event loop until quit.
func (a *App) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	a.screen = screen
	defer a.Shutdown()

	for {
		a.draw()
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if a.promptAction != "" {
				a.feedPrompt(ev)
				continue
			}
			if quit := a.handleKey(ev); quit {
				return nil
			}
		}
	}
}

// Shutdown releases the screen and the config watcher.
func (a *App) Shutdown() {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
	if a.screen != nil {
		a.screen.Fini()
		a.screen = nil
	}
}

// handleKey resolves one key through the keymap and dispatches it.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	key := keyFromEvent(ev)
	if key == "" {
		return false
	}

	_, inTab := cursor.Resolve(a.doc.Buf, a.cursorOff)
	act := a.keymap.Resolve(key, inTab)

	// Retune and transpose take an argument from the status line.
	switch act.Name {
	case input.ActionRetune:
		a.startPrompt(act.Name, "retune to: ")
		return false
	case input.ActionTranspose:
		a.startPrompt(act.Name, "transpose by: ")
		return false
	case input.ActionNone:
		a.plainEdit(key)
		return false
	}
	return a.dispatch(act)
}

// dispatch runs an action and folds the result into the UI state.
func (a *App) dispatch(act input.Action) bool {
	res, err := a.disp.Dispatch(act, a.cursorOff)
	if err != nil {
		a.status = err.Error()
		a.log.Debug("%s: %v", act.Name, err)
		return false
	}
	a.cursorOff = res.Cursor
	a.status = res.Message
	if res.Dirty {
		a.doc.Dirty = true
	}
	return res.Quit
}

// plainEdit covers ordinary text editing outside the keymap: cursor
// movement, newline, and backspace in the prose around staves.
func (a *App) plainEdit(key input.Key) {
	b := a.doc.Buf
	switch key {
	case "Left":
		if a.cursorOff > 0 {
			a.cursorOff--
		}
	case "Right":
		if a.cursorOff < b.Len() {
			a.cursorOff++
		}
	case "Up", "Down":
		p, err := b.OffsetToPoint(a.cursorOff)
		if err != nil {
			return
		}
		if key == "Up" {
			p.Line--
		} else {
			p.Line++
		}
		if p.Line < 0 || p.Line >= b.LineCount() {
			return
		}
		if off, err := b.PointToOffset(p); err == nil {
			a.cursorOff = off
		}
	case "Enter":
		if err := b.Insert(a.cursorOff, "\n"); err == nil {
			a.cursorOff++
			a.doc.Dirty = true
		}
	case "Backspace":
		if a.cursorOff > 0 {
			if err := b.Delete(a.cursorOff-1, 1); err == nil {
				a.cursorOff--
				a.doc.Dirty = true
			}
		}
	}
}

// startPrompt begins collecting an argument on the status line.
func (a *App) startPrompt(action, label string) {
	a.promptAction = action
	a.promptLabel = label
	a.promptText = ""
}

// feedPrompt accumulates prompt input; Enter dispatches, Escape cancels.
func (a *App) feedPrompt(ev *tcell.EventKey) {
	switch keyFromEvent(ev) {
	case "Enter":
		act := input.Action{Name: a.promptAction, Arg: a.promptText}
		a.promptAction = ""
		a.dispatch(act)
	case "Escape":
		a.promptAction = ""
		a.status = ""
	case "Backspace":
		if len(a.promptText) > 0 {
			a.promptText = a.promptText[:len(a.promptText)-1]
		}
	default:
		if ev.Key() == tcell.KeyRune {
			a.promptText += string(ev.Rune())
		}
	}
}

// draw renders the buffer, the cursor, and the status line.
func (a *App) draw() {
	s := a.screen
	s.Clear()
	w, h := s.Size()
	text := h - 1

	p, err := a.doc.Buf.OffsetToPoint(a.cursorOff)
	if err != nil {
		p.Line, p.Col = 0, 0
	}
	if p.Line < a.scroll {
		a.scroll = p.Line
	}
	if p.Line >= a.scroll+text {
		a.scroll = p.Line - text + 1
	}

	for y := 0; y < text; y++ {
		line := a.doc.Buf.Line(a.scroll + y)
		for x, r := range line {
			if x >= w {
				break
			}
			s.SetContent(x, y, r, nil, tcell.StyleDefault)
		}
	}
	s.ShowCursor(p.Col, p.Line-a.scroll)

	a.drawStatus(w, h-1)
	s.Show()
}

func (a *App) drawStatus(w, y int) {
	style := tcell.StyleDefault.Reverse(true)
	line := a.statusLine()
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(line) {
			r = rune(line[x])
		}
		a.screen.SetContent(x, y, r, nil, style)
	}
}

func (a *App) statusLine() string {
	if a.promptAction != "" {
		return a.promptLabel + a.promptText
	}
	mode := "txt"
	if _, ok := cursor.Resolve(a.doc.Buf, a.cursorOff); ok {
		mode = "tab"
	}
	dirty := ""
	if a.doc.Dirty {
		dirty = " *"
	}
	out := fmt.Sprintf(" %s%s  [%s]", a.doc.Path, dirty, mode)
	if a.status != "" {
		out += "  " + a.status
	}
	return out
}

package appstate

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// KeyShortcut describes a keyboard combination that triggers an action.
// Printable keys are matched by Rune, others by Code.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

const modMask = key.ModShift | key.ModControl | key.ModAlt | key.ModMeta

// shortcutOf normalizes a key event into the form used by the keymap.
func shortcutOf(e key.Event) KeyShortcut {
	mods := e.Modifiers & modMask
	r := e.Rune
	if mods&key.ModControl != 0 && e.Code >= key.CodeA && e.Code <= key.CodeZ {
		// Control combinations may arrive as control characters.
		r = 'a' + rune(e.Code-key.CodeA)
	}
	if r > 0 {
		return KeyShortcut{Rune: unicode.ToLower(r), Modifiers: mods}
	}
	return KeyShortcut{Code: e.Code, Modifiers: mods}
}

// keymap maps a keyboard shortcut to the action name.
type keymap map[KeyShortcut]string

func (m keymap) bind(action string, keys KeyboardShortcuts) {
	for _, sc := range keys.KeyboardShortcuts() {
		m[sc] = action
	}
}

// lookup finds the action for e. Shift is ignored for printable keys bound
// without it, so '+' works on layouts where it needs shift.
func (m keymap) lookup(e key.Event) (string, bool) {
	sc := shortcutOf(e)
	if action, ok := m[sc]; ok {
		return action, true
	}
	if sc.Rune > 0 && sc.Modifiers == key.ModShift {
		sc.Modifiers = 0
		action, ok := m[sc]
		return action, ok
	}
	return "", false
}

// Action names shared by the keymap, the status bar hints and the handlers.
const (
	actUndo      = "undo"
	actRedo      = "redo"
	actCancel    = "cancel"
	actSave      = "save"
	actSaveAs    = "saveas"
	actNew       = "new"
	actNewWindow = "newwindow"
	actCopy      = "copy"
	actCopyColor = "copycolor"
	actQuit      = "quit"
	actPen       = "pen"
	actEraser    = "eraser"
	actFill      = "fill"
	actPicker    = "picker"
	actWidth     = "width"
	actZoomIn    = "zoomin"
	actZoomOut   = "zoomout"
	actWider     = "wider"
	actNarrower  = "narrower"
	actTaller    = "taller"
	actShorter   = "shorter"
	actShowHelp  = "help"
)

func ctrl(r rune) KeyShortcut { return KeyShortcut{Rune: r, Modifiers: key.ModControl} }
func ctrlShift(r rune) KeyShortcut {
	return KeyShortcut{Rune: r, Modifiers: key.ModControl | key.ModShift}
}

func defaultKeymap() keymap {
	m := keymap{}
	m.bind(actUndo, shortcutList{ctrl('z')})
	m.bind(actRedo, shortcutList{ctrl('y'), ctrlShift('z')})
	m.bind(actCancel, shortcutList{{Code: key.CodeEscape}})
	m.bind(actSave, shortcutList{ctrl('s')})
	m.bind(actSaveAs, shortcutList{ctrlShift('s')})
	m.bind(actNew, shortcutList{ctrl('n')})
	m.bind(actNewWindow, shortcutList{ctrlShift('n')})
	m.bind(actCopy, shortcutList{ctrl('c')})
	m.bind(actCopyColor, shortcutList{ctrlShift('c')})
	m.bind(actQuit, shortcutList{{Rune: 'q'}, ctrl('q')})
	m.bind(actPen, shortcutList{{Rune: 'p'}})
	m.bind(actEraser, shortcutList{{Rune: 'e'}})
	m.bind(actFill, shortcutList{{Rune: 'f'}})
	m.bind(actPicker, shortcutList{{Rune: 'k'}})
	for _, w := range []rune{'1', '2', '4', '8'} {
		m.bind(actWidth+string(w), shortcutList{{Rune: w}})
	}
	m.bind(actZoomIn, shortcutList{{Rune: '+'}, {Rune: '='}})
	m.bind(actZoomOut, shortcutList{{Rune: '-'}})
	m.bind(actWider, shortcutList{{Code: key.CodeRightArrow, Modifiers: key.ModControl}})
	m.bind(actNarrower, shortcutList{{Code: key.CodeLeftArrow, Modifiers: key.ModControl}})
	m.bind(actTaller, shortcutList{{Code: key.CodeDownArrow, Modifiers: key.ModControl}})
	m.bind(actShorter, shortcutList{{Code: key.CodeUpArrow, Modifiers: key.ModControl}})
	m.bind(actShowHelp, shortcutList{{Code: key.CodeF1}})
	return m
}

// hint is a status bar shortcut button.
type hint struct {
	label  string
	action string
}

var statusHints = []hint{
	{"^Z:undo", actUndo},
	{"^Y:redo", actRedo},
	{"^N:new", actNew},
	{"^S:save", actSave},
	{"^C:copy", actCopy},
	{"Q:quit", actQuit},
}

// helpText lists the shortcuts for the help overlay.
var helpText = []string{
	"P pen   E eraser   F fill   K color picker",
	"1 2 4 8 stroke width   + - zoom",
	"Ctrl+Z undo   Ctrl+Y redo   Esc cancel stroke",
	"Ctrl+N new   Ctrl+Shift+N new window",
	"Ctrl+S save   Ctrl+Shift+S save as",
	"Ctrl+C copy canvas   Ctrl+Shift+C copy color",
	"Ctrl+Arrows resize canvas by 10 px   Q quit",
}

package present

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// KeyShortcut describes a keyboard combination that triggers an action.
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

// chord matches a letter with modifiers by rune or by key code, since
// drivers differ in which one they fill in while Control or Alt is held.
func chord(r rune, code key.Code, mods key.Modifiers) shortcutList {
	return shortcutList{{Rune: r, Modifiers: mods}, {Code: code, Modifiers: mods}}
}

// keymap maps a keyboard shortcut to the action name.
type keymap map[KeyShortcut]string

func (k keymap) bind(name string, keys KeyboardShortcuts) {
	if keys == nil {
		return
	}
	for _, sc := range keys.KeyboardShortcuts() {
		sc.Rune = unicode.ToLower(sc.Rune)
		k[sc] = name
	}
}

// lookup resolves a key press, trying the rune first and the key code
// second.
func (k keymap) lookup(e key.Event) (string, bool) {
	mods := e.Modifiers & modMask
	if e.Rune > 0 {
		if a, ok := k[KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: mods}]; ok {
			return a, true
		}
	}
	if e.Code != key.CodeUnknown {
		if a, ok := k[KeyShortcut{Code: e.Code, Modifiers: mods}]; ok {
			return a, true
		}
	}
	return "", false
}

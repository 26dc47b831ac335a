package keysource

import (
	"strings"
	"sync"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/keydeck/internal/shortcuts"
)

// Tea adapts bubbletea key messages. The host model calls Handle from its
// Update and drops the message when it returns true.
type Tea struct {
	mu      sync.Mutex
	handler shortcuts.Handler
}

func NewTea() *Tea {
	return &Tea{}
}

func (t *Tea) Attach(h shortcuts.Handler) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handler = h
	return nil
}

func (t *Tea) Detach() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handler = nil
}

// Handle forwards msg to the attached handler and reports whether it was consumed
func (t *Tea) Handle(msg tea.KeyMsg) bool {
	t.mu.Lock()
	h := t.handler
	t.mu.Unlock()

	if h == nil {
		return false
	}
	ev, ok := FromTea(msg)
	if !ok {
		return false
	}
	return h(ev)
}

// teaNames maps bubbletea key names to the names used in shortcut keys
var teaNames = map[string]string{
	" ":      "space",
	"pgup":   "pageup",
	"pgdown": "pagedown",
}

// FromTea converts a bubbletea key message. Terminals report shifted
// letters as upper-case runes, so an upper-case rune sets Shift.
// Pasted text is not a key press.
func FromTea(msg tea.KeyMsg) (shortcuts.KeyEvent, bool) {
	if msg.Paste {
		return shortcuts.KeyEvent{}, false
	}

	ev := shortcuts.KeyEvent{Alt: msg.Alt}

	if msg.Type == tea.KeyRunes {
		if len(msg.Runes) != 1 {
			return shortcuts.KeyEvent{}, false
		}
		r := msg.Runes[0]
		ev.Key = string(r)
		ev.Shift = unicode.IsUpper(r)
		return ev, true
	}

	// Name without the alt prefix, e.g. "ctrl+s", "shift+tab", "ctrl+shift+up"
	name := tea.Key{Type: msg.Type}.String()
	if name == "" {
		return shortcuts.KeyEvent{}, false
	}

	parts := strings.Split(name, "+")
	base := parts[len(parts)-1]
	if base == "" && len(parts) > 1 {
		// "ctrl++" style names end in an empty part
		base = "+"
		parts = parts[:len(parts)-1]
	}
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case shortcuts.ModCtrl:
			ev.Ctrl = true
		case shortcuts.ModShift:
			ev.Shift = true
		}
	}

	if alias, ok := teaNames[base]; ok {
		base = alias
	}
	ev.Key = base
	return ev, true
}

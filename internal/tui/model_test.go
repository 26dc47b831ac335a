package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/keydeck/internal/shortcuts"
)

func TestNew_ListsRegisteredShortcuts(t *testing.T) {
	m, _ := CreateTestModel(t)

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "len(items)", len(m.items), 10)
	AssertModelField(t, "items[0].ID", m.items[0].ID, "save-document")
	AssertModelField(t, "cursor", m.cursor, 0)
}

func TestModel_CursorMovesAndClamps(t *testing.T) {
	m, _ := CreateTestModel(t)

	press(m, runes("k"))
	AssertModelField(t, "cursor after up at top", m.cursor, 0)

	press(m, runes("j"))
	press(m, tea.KeyMsg{Type: tea.KeyDown})
	AssertModelField(t, "cursor after two downs", m.cursor, 2)

	for i := 0; i < 20; i++ {
		press(m, runes("j"))
	}
	AssertModelField(t, "cursor at bottom", m.cursor, len(m.items)-1)
}

func TestModel_ShortcutFiresAndUpdatesStatus(t *testing.T) {
	m, _ := CreateTestModel(t)

	cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Error("matched shortcut should not produce a command")
	}
	AssertModelField(t, "fired.id", m.fired.id, "save-document")
	AssertModelField(t, "fired.count", m.fired.count, 1)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	AssertModelField(t, "fired.count", m.fired.count, 2)

	if bar := m.renderStatusBar(); !strings.Contains(bar, "Fired Save (Ctrl+S) x2") {
		t.Errorf("status bar = %q, want fired label", bar)
	}
}

func TestModel_ShortcutSwallowsHostKey(t *testing.T) {
	m, _ := CreateTestModel(t)

	fired := 0
	m.registry.Register(shortcuts.Shortcut{
		ID:       "jump",
		Name:     "Jump",
		Keys:     []string{"j"},
		Action:   func() { fired++ },
		Enabled:  true,
		Category: shortcuts.CategoryCustom,
	})

	press(m, runes("j"))
	AssertModelField(t, "fired", fired, 1)
	AssertModelField(t, "cursor", m.cursor, 0)

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h"), Alt: true})
	AssertModelField(t, "fired.id", m.fired.id, "go-home")
}

func TestModel_ToggleDisablesShortcut(t *testing.T) {
	m, _ := CreateTestModel(t)

	press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	s, ok := m.registry.Get("save-document")
	if !ok {
		t.Fatal("save-document missing")
	}
	AssertModelField(t, "Enabled", s.Enabled, false)
	AssertModelField(t, "items[0].Enabled", m.items[0].Enabled, false)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	AssertModelField(t, "fired.id after disabled press", m.fired.id, "")

	press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	s, _ = m.registry.Get("save-document")
	AssertModelField(t, "Enabled after second toggle", s.Enabled, true)
}

func TestModel_FuzzyFilter(t *testing.T) {
	m, _ := CreateTestModel(t)

	press(m, runes("/"))
	AssertModelField(t, "mode", m.mode, ModeFilter)

	for _, r := range "redo" {
		press(m, runes(string(r)))
	}
	AssertModelField(t, "filter", m.filter, "redo")
	if len(m.items) == 0 {
		t.Fatal("filter matched nothing")
	}
	AssertModelField(t, "items[0].ID", m.items[0].ID, "redo-action")

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	AssertModelField(t, "mode after enter", m.mode, ModeNormal)
	AssertModelField(t, "filter kept", m.filter, "redo")

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	AssertModelField(t, "filter cleared", m.filter, "")
	AssertModelField(t, "len(items)", len(m.items), 10)
}

func TestModel_FilterInputBypassesRegistry(t *testing.T) {
	m, _ := CreateTestModel(t)

	press(m, runes("/"))
	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	AssertModelField(t, "fired.id", m.fired.id, "")
	AssertModelField(t, "mode", m.mode, ModeFilter)

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	AssertModelField(t, "mode", m.mode, ModeNormal)
}

func TestModel_CopyWritesFormattedCombo(t *testing.T) {
	m, copied := CreateTestModel(t)

	press(m, runes("j"))
	press(m, runes("y"))

	if len(*copied) != 1 || (*copied)[0] != "Ctrl+N" {
		t.Fatalf("copied = %v, want [Ctrl+N]", *copied)
	}
	AssertModelField(t, "statusMsg", m.statusMsg, "Copied Ctrl+N")
}

func TestModel_HelpView(t *testing.T) {
	m, _ := CreateTestModel(t)

	press(m, runes("?"))
	AssertModelField(t, "mode", m.mode, ModeHelp)

	view := m.View()
	for _, want := range []string{"Host keys", "Editing", "Ctrl+Shift+Z"} {
		if !strings.Contains(view, want) {
			t.Errorf("help view missing %q", want)
		}
	}

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	AssertModelField(t, "mode", m.mode, ModeNormal)
}

func TestModel_Quit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{"q", runes("q")},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := CreateTestModel(t)
			_, cmd := m.Update(tt.msg)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("command is not tea.Quit")
			}
			AssertModelField(t, "fired.id", m.fired.id, "")
		})
	}
}

func TestModel_CleanupRemovesSubscriptions(t *testing.T) {
	m, _ := CreateTestModel(t)

	m.Cleanup()
	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	AssertModelField(t, "fired.id", m.fired.id, "")
}

func TestModel_View(t *testing.T) {
	m, _ := CreateTestModel(t)

	view := m.View()
	for _, want := range []string{"keydeck", "save-document", "Ctrl+S", "Alt+H"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/keydeck/internal/keysource"
	"github.com/studiowebux/keydeck/internal/shortcuts"
)

// CreateTestModel creates a sized Model over a registry holding the
// built-in shortcuts, with the clipboard replaced by a recorder
func CreateTestModel(t *testing.T) (*Model, *[]string) {
	t.Helper()

	src := keysource.NewTea()
	reg := shortcuts.NewRegistry(src)
	if err := reg.Init(); err != nil {
		t.Fatalf("Failed to init registry: %v", err)
	}
	t.Cleanup(reg.Destroy)

	m := New(reg, src, "test-version")
	t.Cleanup(m.Cleanup)

	var copied []string
	m.writeClipboard = func(s string) error {
		copied = append(copied, s)
		return nil
	}

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return &m, &copied
}

// runes builds a key message for typed characters
func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends msg through Update and runs the returned command once,
// feeding its message back
func press(m *Model, msg tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(msg)
	if cmd == nil {
		return nil
	}
	if out := cmd(); out != nil {
		if _, quit := out.(tea.QuitMsg); quit {
			return cmd
		}
		m.Update(out)
	}
	return cmd
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/keydeck/internal/keysource"
	"github.com/studiowebux/keydeck/internal/shortcuts"
)

// Run starts the TUI over an initialized registry attached to src
func Run(reg *shortcuts.Registry, src *keysource.Tea, version string) error {
	m := New(reg, src, version)
	defer m.Cleanup()

	// Pass pointer since Update uses pointer receiver
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}

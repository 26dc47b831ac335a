package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/keydeck/internal/shortcuts"
)

type keyMap struct {
	ForceQuit key.Binding
	Quit      key.Binding
	Help      key.Binding
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Filter    key.Binding
	Copy      key.Binding
	Back      key.Binding
	Confirm   key.Binding
}

var keys = keyMap{
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("up/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("down/j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "space"),
		key.WithHelp("space", "enable/disable"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy combination"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	),
}

// hostBindings is the order keys are listed in the help view
func hostBindings() []key.Binding {
	return []key.Binding{
		keys.Up, keys.Down, keys.Toggle, keys.Filter,
		keys.Copy, keys.Help, keys.Quit, keys.ForceQuit,
	}
}

// handleKeyPress routes a key message according to the current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.ForceQuit) {
		return tea.Quit
	}

	switch m.mode {
	case ModeFilter:
		return m.handleFilterKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	}

	if m.source != nil && m.source.Handle(msg) {
		m.errorMsg = ""
		m.refresh()
		return nil
	}

	return m.handleNormalKeys(msg)
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit

	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, keys.Toggle):
		m.toggleSelected()

	case key.Matches(msg, keys.Filter):
		m.mode = ModeFilter

	case key.Matches(msg, keys.Copy):
		return m.copySelected()

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
		m.updateHelpView()

	case key.Matches(msg, keys.Back):
		if m.filter != "" {
			m.filter = ""
			m.refresh()
		}
	}

	return nil
}

func (m *Model) handleFilterKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		m.filter = ""
		m.mode = ModeNormal
		m.refresh()

	case key.Matches(msg, keys.Confirm):
		m.mode = ModeNormal

	case msg.Type == tea.KeyBackspace:
		if r := []rune(m.filter); len(r) > 0 {
			m.filter = string(r[:len(r)-1])
			m.refresh()
		}

	case msg.Type == tea.KeyRunes, msg.Type == tea.KeySpace:
		m.filter += string(msg.Runes)
		m.refresh()
	}

	return nil
}

func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back, keys.Help, keys.Quit):
		m.mode = ModeNormal
		return nil
	}

	var cmd tea.Cmd
	m.helpView, cmd = m.helpView.Update(msg)
	return cmd
}

func (m *Model) moveCursor(delta int) {
	if len(m.items) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = max(0, min(len(m.items)-1, m.cursor+delta))
}

func (m *Model) toggleSelected() {
	s, ok := m.selected()
	if !ok {
		return
	}

	if s.Enabled {
		m.registry.Disable(s.ID)
		m.statusMsg = fmt.Sprintf("Disabled %s", s.ID)
	} else {
		m.registry.Enable(s.ID)
		m.statusMsg = fmt.Sprintf("Enabled %s", s.ID)
	}
	m.errorMsg = ""
	m.refresh()
}

// copySelected writes the formatted combination of the selected shortcut
// to the clipboard
func (m *Model) copySelected() tea.Cmd {
	s, ok := m.selected()
	if !ok {
		return nil
	}

	combo := shortcuts.FormatShortcut(s.Keys)
	write := m.writeClipboard
	return func() tea.Msg {
		if err := write(combo); err != nil {
			return errorMsg(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		}
		return statusMsg(fmt.Sprintf("Copied %s", combo))
	}
}

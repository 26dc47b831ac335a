package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
	"github.com/studiowebux/keydeck/internal/keysource"
	"github.com/studiowebux/keydeck/internal/shortcuts"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeHelp
)

// Messages
type (
	statusMsg string
	errorMsg  string
)

// firedState is shared with the registry subscriptions, which outlive
// copies of the Model
type firedState struct {
	id    string
	count int
}

// Model is the Bubble Tea model of the terminal host
type Model struct {
	registry *shortcuts.Registry
	source   *keysource.Tea
	version  string

	mode   Mode
	width  int
	height int

	items  []shortcuts.Shortcut // visible rows, filtered
	cursor int
	offset int
	filter string

	fired       *firedState
	unsubscribe []func()

	statusMsg string
	errorMsg  string

	helpView       viewport.Model
	writeClipboard func(string) error
}

// New creates a model over reg. src must be the source reg was created
// with; keys reach the registry only through it.
func New(reg *shortcuts.Registry, src *keysource.Tea, version string) Model {
	m := Model{
		registry:       reg,
		source:         src,
		version:        version,
		mode:           ModeNormal,
		fired:          &firedState{},
		helpView:       viewport.New(80, 20),
		writeClipboard: clipboard.WriteAll,
	}

	fired := m.fired
	for _, s := range reg.GetAll() {
		id := s.ID
		m.unsubscribe = append(m.unsubscribe, reg.Subscribe(id, func() {
			if fired.id == id {
				fired.count++
				return
			}
			fired.id = id
			fired.count = 1
		}))
	}

	m.refresh()
	return m
}

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	return nil
}

// Cleanup removes the model's registry subscriptions
func (m *Model) Cleanup() {
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	m.unsubscribe = nil
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateHelpView()
		m.clampOffset()

	case statusMsg:
		m.statusMsg = string(msg)
		m.errorMsg = ""

	case errorMsg:
		m.errorMsg = string(msg)
	}

	return m, cmd
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	if m.mode == ModeHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// refresh reloads rows from the registry, applying the fuzzy filter
func (m *Model) refresh() {
	all := m.registry.GetAll()

	if m.filter == "" {
		m.items = all
	} else {
		matches := fuzzy.FindFrom(m.filter, shortcutSource(all))
		m.items = make([]shortcuts.Shortcut, 0, len(matches))
		for _, match := range matches {
			m.items = append(m.items, all[match.Index])
		}
	}

	m.moveCursor(0)
	m.clampOffset()
}

func (m *Model) selected() (shortcuts.Shortcut, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return shortcuts.Shortcut{}, false
	}
	return m.items[m.cursor], true
}

// clampOffset keeps the cursor inside the visible window
func (m *Model) clampOffset() {
	rows := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if rows > 0 && m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// shortcutSource exposes shortcuts to fuzzy matching by id, name and
// formatted combination
type shortcutSource []shortcuts.Shortcut

func (s shortcutSource) String(i int) string {
	return strings.Join([]string{s[i].ID, s[i].Name, shortcuts.FormatShortcut(s[i].Keys)}, " ")
}

func (s shortcutSource) Len() int {
	return len(s)
}

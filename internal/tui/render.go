package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/keydeck/internal/shortcuts"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#0000ff"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// listHeight is the number of shortcut rows that fit on screen
func (m Model) listHeight() int {
	return max(1, m.height-MainChromeLines)
}

// renderMain renders the shortcut table and status bar
func (m Model) renderMain() string {
	title := styleTitle.Render("keydeck")
	if m.version != "" {
		title += styleSubtle.Render(" v" + m.version)
	}
	title += styleSubtle.Render(fmt.Sprintf("  %d shortcuts", m.registry.Len()))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Width(m.width - 2).
		Height(m.height - 3).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, m.renderTable()))

	return lipgloss.JoinVertical(lipgloss.Left, box, m.renderStatusBar())
}

func (m Model) renderTable() string {
	var b strings.Builder

	b.WriteString(styleHeader.Render(formatRow("   ", "ID", "KEYS", "CATEGORY", "NAME")))
	b.WriteString("\n")

	if len(m.items) == 0 {
		b.WriteString(styleSubtle.Render("  no shortcuts match"))
		return b.String()
	}

	end := min(len(m.items), m.offset+m.listHeight())
	for i := m.offset; i < end; i++ {
		s := m.items[i]

		mark := "[x]"
		if !s.Enabled {
			mark = "[ ]"
		}
		line := formatRow(mark, s.ID, shortcuts.FormatShortcut(s.Keys), string(s.Category), s.Name)

		switch {
		case i == m.cursor:
			line = styleSelected.Render(line)
		case !s.Enabled:
			line = styleSubtle.Render(line)
		}

		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func formatRow(mark, id, combo, category, name string) string {
	return fmt.Sprintf("%s %-*s %-*s %-*s %s",
		mark,
		ColumnID, truncate(id, ColumnID),
		ColumnCombo, truncate(combo, ColumnCombo),
		ColumnCategory, category,
		name,
	)
}

// renderStatusBar shows the mode, then an error, a status message or the
// last fired shortcut
func (m Model) renderStatusBar() string {
	var left string
	switch m.mode {
	case ModeFilter:
		left = styleWarning.Render("/" + m.filter + "_")
	default:
		if m.filter != "" {
			left = styleSubtle.Render("filter: " + m.filter)
		} else {
			left = styleSubtle.Render("? help")
		}
	}

	var right string
	switch {
	case m.errorMsg != "":
		right = styleError.Render(truncate(m.errorMsg, MaxStatusLen))
	case m.fired.id != "":
		right = styleSuccess.Render(m.firedLabel())
		if m.statusMsg != "" {
			right = styleSubtle.Render(truncate(m.statusMsg, MaxStatusLen)+"  ") + right
		}
	case m.statusMsg != "":
		right = styleSubtle.Render(truncate(m.statusMsg, MaxStatusLen))
	}

	return left + "  " + right
}

// firedLabel describes the last fired shortcut, e.g. "Fired Save (Ctrl+S) x2"
func (m Model) firedLabel() string {
	label := m.fired.id
	if s, ok := m.registry.Get(m.fired.id); ok {
		label = fmt.Sprintf("%s (%s)", s.Name, shortcuts.FormatShortcut(s.Keys))
	}
	if m.fired.count > 1 {
		return fmt.Sprintf("Fired %s x%d", label, m.fired.count)
	}
	return "Fired " + label
}

// updateHelpView sizes the help viewport and fills it with host keys and
// the registered shortcuts grouped by category
func (m *Model) updateHelpView() {
	if m.width > 0 {
		m.helpView.Width = m.width - 4
		m.helpView.Height = max(1, m.height-HelpChromeLines)
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("Host keys"))
	b.WriteString("\n")
	for _, binding := range hostBindings() {
		h := binding.Help()
		fmt.Fprintf(&b, "  %-10s %s\n", h.Key, h.Desc)
	}

	for _, c := range shortcuts.Categories {
		list := m.registry.GetByCategory(c)
		if len(list) == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(styleTitle.Render(strings.ToUpper(string(c)[:1]) + string(c)[1:]))
		b.WriteString("\n")
		for _, s := range list {
			line := fmt.Sprintf("  %-*s %s", ColumnCombo, shortcuts.FormatShortcut(s.Keys), s.Name)
			if !s.Enabled {
				line = styleSubtle.Render(line + " (disabled)")
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	m.helpView.SetContent(b.String())
}

func (m Model) renderHelp() string {
	footer := styleSubtle.Render("esc/?/q close  up/down scroll")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(m.width - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, m.helpView.View(), footer))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

package tui

const (
	// MainChromeLines is the height taken by the title, table header,
	// borders and status bar around the shortcut list
	MainChromeLines = 6

	// HelpChromeLines is the height taken by the help view's border and footer
	HelpChromeLines = 4

	// Column widths of the shortcut table
	ColumnID       = 18
	ColumnCombo    = 16
	ColumnCategory = 11

	// MaxStatusLen truncates long status messages
	MaxStatusLen = 100
)

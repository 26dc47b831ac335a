/*
Package tui implements the terminal host for keydeck.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: registry handle, cursor, filter and status state
  - Update: routes key messages through the shortcut registry, then host keys
  - View: renders the shortcut table, status bar and help viewport

# Key Routing

Every key message goes through the following steps in order:
 1. ctrl+c quits. It is checked first so no shortcut can trap the user.
 2. The registry's Tea source dispatches the key. A matched shortcut
    swallows it.
 3. Host keys (navigation, toggle, filter, copy, help, q) apply.

While the filter input or the help view is open, keys go to that view and
the registry is not consulted.

# Key Components

  - model.go: Model struct, New, Update, View
  - keys.go: host key map and per-mode key handling
  - render.go: styles and rendering
  - init.go: Run
*/
package tui

/*
Package shortcuts provides a keyboard shortcut registry with key-combination
matching, enable/disable state and per-shortcut subscriptions.

# Overview

A Registry holds shortcuts keyed by a caller-assigned ID. It attaches to a
single key-event Source (a terminal, a browser bridge, or a fake in tests)
and, for every key-down the source delivers, runs the action of each enabled
shortcut whose combination matches, followed by that shortcut's subscribers.

# Key Combinations

Keys are stored modifiers first and base key last:

	[]string{"ctrl", "shift", "z"}

Matching is exact: the event's key must equal the base key ignoring case,
and the held modifiers must be exactly the listed ones. Holding an extra
modifier does not match.

Helpers:
  - CreateShortcut builds keys from a Combo in the order ctrl, shift, alt, meta, KEY
  - FormatShortcut renders keys for display ("Ctrl+Shift+Z", meta shows as "Cmd")
  - ParseCombo / JoinCombo convert to and from "ctrl+shift+z"

# Lifecycle

	registry := shortcuts.NewRegistry(source, shortcuts.WithLogger(logger))
	if err := registry.Init(); err != nil { // loads defaults if empty, attaches
		return err
	}
	defer registry.Destroy() // detaches, keeps shortcuts

Init and Destroy are idempotent. Clear removes shortcuts and subscriptions
but leaves the source attached.

# Failure Semantics

Registering a taken ID keeps the existing entry and logs a warning.
Updating an unknown ID logs a warning. Enable and Disable on an unknown ID
do nothing. None of these are returned as errors.

# Multiple Matches

Every enabled shortcut with a matching combination fires, in registration
order. The Validator reports such combinations as conflict warnings.

# Configuration File Format

	version: "1"
	shortcuts:
	  save-document:
	    keys: ctrl+s
	    enabled: false
	custom:
	  - id: open-palette
	    name: Command palette
	    keys: ctrl+shift+p

JSON (with comments) is accepted for .json and .jsonc files.
*/
package shortcuts

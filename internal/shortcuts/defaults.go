package shortcuts

// DefaultShortcuts returns the built-in set loaded by Init when the registry
// is empty. The actions are left nil; the registry gives them a logging
// action and hosts bind real behaviour through Subscribe.
func DefaultShortcuts() []Shortcut {
	return []Shortcut{
		// Global
		builtin("save-document", "Save", "Save the current document", CategoryGlobal, ModCtrl, "s"),
		builtin("new-document", "New", "Create a new document", CategoryGlobal, ModCtrl, "n"),
		builtin("open-document", "Open", "Open a document", CategoryGlobal, ModCtrl, "o"),

		// Editing
		builtin("undo-action", "Undo", "Undo the last action", CategoryEditing, ModCtrl, "z"),
		builtin("redo-action", "Redo", "Redo the last undone action", CategoryEditing, ModCtrl, ModShift, "z"),
		builtin("select-all", "Select all", "Select all content", CategoryEditing, ModCtrl, "a"),
		builtin("copy-content", "Copy", "Copy the selection", CategoryEditing, ModCtrl, "c"),
		builtin("paste-content", "Paste", "Paste from the clipboard", CategoryEditing, ModCtrl, "v"),

		// Navigation
		builtin("go-home", "Go home", "Go to the home page", CategoryNavigation, ModAlt, "h"),
		builtin("go-users", "Go to users", "Go to the users page", CategoryNavigation, ModAlt, "u"),
	}
}

func builtin(id, name, description string, category Category, keys ...string) Shortcut {
	return Shortcut{
		ID:          id,
		Name:        name,
		Keys:        keys,
		Description: description,
		Enabled:     true,
		Category:    category,
	}
}

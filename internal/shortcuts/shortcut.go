package shortcuts

// Category classifies a shortcut. It has no effect on matching.
type Category string

const (
	CategoryNavigation Category = "navigation"
	CategoryEditing    Category = "editing"
	CategoryGlobal     Category = "global"
	CategoryCustom     Category = "custom"
)

// Categories lists the known categories in display order
var Categories = []Category{
	CategoryGlobal,
	CategoryEditing,
	CategoryNavigation,
	CategoryCustom,
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryNavigation, CategoryEditing, CategoryGlobal, CategoryCustom:
		return true
	}
	return false
}

// Modifier tokens as stored in Shortcut.Keys
const (
	ModCtrl  = "ctrl"
	ModShift = "shift"
	ModAlt   = "alt"
	ModMeta  = "meta"
)

// Shortcut binds a key combination to an action.
//
// Keys holds the modifier tokens first and the base key last,
// e.g. []string{"ctrl", "shift", "z"}.
type Shortcut struct {
	ID          string
	Name        string
	Keys        []string
	Description string
	Action      func()
	// Enabled must be set explicitly: the zero value registers a shortcut
	// that never fires. Shortcut files and the defaults set it to true.
	Enabled  bool
	Category Category
}

// clone returns a copy that does not share the Keys backing array
func (s Shortcut) clone() Shortcut {
	s.Keys = append([]string(nil), s.Keys...)
	return s
}

// Patch is a partial update for Registry.Update. Nil fields are left untouched.
type Patch struct {
	Name        *string
	Keys        []string
	Description *string
	Action      func()
	Enabled     *bool
	Category    *Category
}

// apply merges p into s
func (p Patch) apply(s *Shortcut) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Keys != nil {
		s.Keys = append([]string(nil), p.Keys...)
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Action != nil {
		s.Action = p.Action
	}
	if p.Enabled != nil {
		s.Enabled = *p.Enabled
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
}

// KeyEvent is a single key-down delivered by a Source.
// Key is the primary key identity: a single character or a named key.
type KeyEvent struct {
	Key   string
	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool
}

// Handler receives key-down events from a Source and reports whether the
// event was consumed. A consumed event must not get the platform's default
// handling.
type Handler func(KeyEvent) bool

// Source is the key-down stream a Registry listens on.
type Source interface {
	Attach(h Handler) error
	Detach()
}

package shortcuts

import (
	"fmt"
	"strings"
)

// Combo is the structured form accepted by CreateShortcut
type Combo struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool
	Key   string
}

// modifierAliases maps accepted spellings to the canonical modifier token
var modifierAliases = map[string]string{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"shift":   ModShift,
	"alt":     ModAlt,
	"option":  ModAlt,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
	"super":   ModMeta,
}

// modifierLabels are the display labels used by FormatShortcut
var modifierLabels = map[string]string{
	ModCtrl:  "Ctrl",
	ModShift: "Shift",
	ModAlt:   "Alt",
	ModMeta:  "Cmd",
}

// CreateShortcut builds a Keys sequence in the fixed order
// ctrl, shift, alt, meta, KEY. Only the modifiers that are set are included.
func CreateShortcut(c Combo) []string {
	keys := make([]string, 0, 5)
	if c.Ctrl {
		keys = append(keys, ModCtrl)
	}
	if c.Shift {
		keys = append(keys, ModShift)
	}
	if c.Alt {
		keys = append(keys, ModAlt)
	}
	if c.Meta {
		keys = append(keys, ModMeta)
	}
	return append(keys, strings.ToUpper(c.Key))
}

// FormatShortcut renders keys for display, e.g. "Ctrl+Shift+S"
func FormatShortcut(keys []string) string {
	labels := make([]string, len(keys))
	for i, k := range keys {
		if label, ok := modifierLabels[strings.ToLower(k)]; ok {
			labels[i] = label
			continue
		}
		labels[i] = strings.ToUpper(k)
	}
	return strings.Join(labels, "+")
}

// IsModifier reports whether token is one of ctrl, shift, alt, meta
func IsModifier(token string) bool {
	_, ok := modifierLabels[strings.ToLower(token)]
	return ok
}

// Matches reports whether ev triggers the combination in keys.
//
// The last token is the base key and must equal ev.Key ignoring case.
// The remaining tokens name the modifiers that must be held, and no other
// modifier may be held. Tokens that are not modifiers are ignored.
func Matches(keys []string, ev KeyEvent) bool {
	if len(keys) == 0 {
		return false
	}

	base := keys[len(keys)-1]
	if !strings.EqualFold(ev.Key, base) {
		return false
	}

	var ctrl, shift, alt, meta bool
	for _, token := range keys[:len(keys)-1] {
		switch strings.ToLower(token) {
		case ModCtrl:
			ctrl = true
		case ModShift:
			shift = true
		case ModAlt:
			alt = true
		case ModMeta:
			meta = true
		}
	}

	return ev.Ctrl == ctrl && ev.Shift == shift && ev.Alt == alt && ev.Meta == meta
}

// ParseCombo parses the textual form used in config files and on the
// command line, e.g. "ctrl+shift+z" or "cmd+k". A literal plus is written
// as a trailing "++" ("ctrl++").
func ParseCombo(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	orig := s
	if s == "" {
		return nil, fmt.Errorf("empty key combination")
	}

	var base string
	switch {
	case s == "+":
		return []string{"+"}, nil
	case strings.HasSuffix(s, "++"):
		base = "+"
		s = strings.TrimSuffix(s, "++")
	default:
		idx := strings.LastIndex(s, "+")
		base = strings.TrimSpace(s[idx+1:])
		if idx < 0 {
			s = ""
		} else {
			s = s[:idx]
		}
	}

	if base == "" {
		return nil, fmt.Errorf("missing base key in %q", orig)
	}
	if IsModifier(base) || modifierAliases[strings.ToLower(base)] != "" {
		return nil, fmt.Errorf("base key %q is a modifier", base)
	}

	var keys []string
	if s != "" {
		for _, part := range strings.Split(s, "+") {
			mod, ok := modifierAliases[strings.ToLower(strings.TrimSpace(part))]
			if !ok {
				return nil, fmt.Errorf("unknown modifier %q", part)
			}
			keys = append(keys, mod)
		}
	}

	return append(keys, base), nil
}

// JoinCombo is the inverse of ParseCombo
func JoinCombo(keys []string) string {
	if len(keys) > 0 && keys[len(keys)-1] == "+" {
		return strings.Join(keys[:len(keys)-1], "+") + "++"
	}
	return strings.Join(keys, "+")
}

package shortcuts

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Validation issue types
const (
	IssueEmpty    = "empty"
	IssueInvalid  = "invalid"
	IssueCategory = "category"
	IssueConflict = "conflict"
	IssueReserved = "reserved"
)

// ValidationError describes one problem with a shortcut
type ValidationError struct {
	Type    string
	ID      string
	Keys    []string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s (%s): %s", e.Type, e.ID, FormatShortcut(e.Keys), e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String lists one issue per line, errors first, each prefixed with
// "error:" or "warning:". A clean result reads "No issues found".
func (r *ValidationResult) String() string {
	if !r.HasErrors() && !r.HasWarnings() {
		return "No issues found"
	}

	lines := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for i := range r.Errors {
		lines = append(lines, "error: "+r.Errors[i].Error())
	}
	for i := range r.Warnings {
		lines = append(lines, "warning: "+r.Warnings[i].Error())
	}
	return strings.Join(lines, "\n")
}

// Validator checks shortcut definitions
type Validator struct {
	// reserved maps a combination signature to the reason it is reserved
	reserved map[string]string
}

// NewValidator creates a new shortcut validator
func NewValidator() *Validator {
	return &Validator{
		reserved: map[string]string{
			signature([]string{ModCtrl, "c"}): "quits the terminal host",
		},
	}
}

// ValidateRegistry validates every shortcut in registry
func (v *Validator) ValidateRegistry(registry *Registry) *ValidationResult {
	return v.ValidateShortcuts(registry.GetAll())
}

// ValidateShortcuts validates a list of shortcuts in order
func (v *Validator) ValidateShortcuts(list []Shortcut) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	for _, s := range list {
		v.checkKeys(s, result)
		v.checkCategory(s, result)
		v.checkReserved(s, result)
	}
	v.checkConflicts(list, result)

	return result
}

// ValidateConfig validates config applied on top of the defaults
func (v *Validator) ValidateConfig(config *Config) *ValidationResult {
	registry := NewRegistry(nil)
	if err := registry.Init(); err != nil {
		return invalidResult(err)
	}
	if err := ApplyConfig(registry, config); err != nil {
		return invalidResult(err)
	}
	return v.ValidateRegistry(registry)
}

func invalidResult(err error) *ValidationResult {
	return &ValidationResult{
		Errors: []ValidationError{{
			Type:    IssueInvalid,
			Message: err.Error(),
		}},
		Warnings: []ValidationError{},
	}
}

// checkKeys requires a base key in last position preceded only by modifiers
func (v *Validator) checkKeys(s Shortcut, result *ValidationResult) {
	if len(s.Keys) == 0 {
		result.Errors = append(result.Errors, ValidationError{
			Type:    IssueEmpty,
			ID:      s.ID,
			Message: "no keys; the shortcut can never match",
		})
		return
	}

	base := s.Keys[len(s.Keys)-1]
	switch {
	case base == "" || IsModifier(base):
		result.Errors = append(result.Errors, ValidationError{
			Type:    IssueInvalid,
			ID:      s.ID,
			Keys:    s.Keys,
			Message: fmt.Sprintf("last token %q must be a base key", base),
		})
	case base != " " && strings.ContainsFunc(base, unicode.IsSpace):
		// Event keys never carry whitespace, so this can never match
		result.Errors = append(result.Errors, ValidationError{
			Type:    IssueInvalid,
			ID:      s.ID,
			Keys:    s.Keys,
			Message: fmt.Sprintf("base key %q contains whitespace; use \"space\" for the space bar", base),
		})
	}

	for _, token := range s.Keys[:len(s.Keys)-1] {
		if !IsModifier(token) {
			result.Errors = append(result.Errors, ValidationError{
				Type:    IssueInvalid,
				ID:      s.ID,
				Keys:    s.Keys,
				Message: fmt.Sprintf("unknown modifier %q", token),
			})
		}
	}
}

func (v *Validator) checkCategory(s Shortcut, result *ValidationResult) {
	if !s.Category.Valid() {
		result.Errors = append(result.Errors, ValidationError{
			Type:    IssueCategory,
			ID:      s.ID,
			Keys:    s.Keys,
			Message: fmt.Sprintf("unknown category %q", s.Category),
		})
	}
}

func (v *Validator) checkReserved(s Shortcut, result *ValidationResult) {
	if !s.Enabled || len(s.Keys) == 0 {
		return
	}
	if reason, ok := v.reserved[signature(s.Keys)]; ok {
		result.Warnings = append(result.Warnings, ValidationError{
			Type:    IssueReserved,
			ID:      s.ID,
			Keys:    s.Keys,
			Message: "reserved combination (" + reason + ")",
		})
	}
}

// checkConflicts warns about enabled shortcuts sharing a combination.
// Every one of them fires on the same keystroke.
func (v *Validator) checkConflicts(list []Shortcut, result *ValidationResult) {
	first := make(map[string]string)

	for _, s := range list {
		if !s.Enabled || len(s.Keys) == 0 {
			continue
		}
		sig := signature(s.Keys)
		if owner, ok := first[sig]; ok {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:    IssueConflict,
				ID:      s.ID,
				Keys:    s.Keys,
				Message: fmt.Sprintf("same combination as %q; both fire", owner),
			})
			continue
		}
		first[sig] = s.ID
	}
}

// signature normalises keys so that equivalent combinations compare equal:
// modifiers sorted and deduplicated, base key lower-cased
func signature(keys []string) string {
	if len(keys) == 0 {
		return ""
	}

	seen := make(map[string]bool)
	var mods []string
	for _, token := range keys[:len(keys)-1] {
		token = strings.ToLower(token)
		if IsModifier(token) && !seen[token] {
			seen[token] = true
			mods = append(mods, token)
		}
	}
	sort.Strings(mods)

	return strings.Join(append(mods, strings.ToLower(keys[len(keys)-1])), "+")
}

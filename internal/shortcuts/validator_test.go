package shortcuts

import "testing"

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      ValidationError
		expected string
	}{
		{
			name: "conflict",
			err: ValidationError{
				Type:    IssueConflict,
				ID:      "b",
				Keys:    []string{"ctrl", "k"},
				Message: `same combination as "a"; both fire`,
			},
			expected: `[conflict] b (Ctrl+K): same combination as "a"; both fire`,
		},
		{
			name: "empty",
			err: ValidationError{
				Type:    IssueEmpty,
				ID:      "x",
				Message: "no keys",
			},
			expected: "[empty] x (): no keys",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestValidationResult_String(t *testing.T) {
	empty := &ValidationResult{}
	if got := empty.String(); got != "No issues found" {
		t.Errorf("String() = %q", got)
	}

	result := &ValidationResult{
		Errors:   []ValidationError{{Type: IssueInvalid, ID: "a", Message: "bad"}},
		Warnings: []ValidationError{{Type: IssueConflict, ID: "b", Message: "dup"}},
	}
	want := "error: [invalid] a (): bad\nwarning: [conflict] b (): dup"
	if got := result.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestValidator_ValidateShortcuts(t *testing.T) {
	tests := []struct {
		name         string
		shortcuts    []Shortcut
		wantErrors   []string
		wantWarnings []string
	}{
		{
			name: "clean",
			shortcuts: []Shortcut{
				{ID: "a", Keys: []string{"ctrl", "k"}, Enabled: true, Category: CategoryGlobal},
				{ID: "b", Keys: []string{"ctrl", "shift", "k"}, Enabled: true, Category: CategoryGlobal},
			},
		},
		{
			name: "empty keys",
			shortcuts: []Shortcut{
				{ID: "a", Enabled: true, Category: CategoryGlobal},
			},
			wantErrors: []string{IssueEmpty},
		},
		{
			name: "modifier as base key",
			shortcuts: []Shortcut{
				{ID: "a", Keys: []string{"s", "ctrl"}, Enabled: true, Category: CategoryGlobal},
			},
			wantErrors: []string{IssueInvalid, IssueInvalid},
		},
		{
			name: "whitespace in base key",
			shortcuts: []Shortcut{
				{ID: "a", Keys: []string{"ctrl", " s"}, Enabled: true, Category: CategoryGlobal},
			},
			wantErrors: []string{IssueInvalid},
		},
		{
			name: "space bar",
			shortcuts: []Shortcut{
				{ID: "a", Keys: []string{"ctrl", "space"}, Enabled: true, Category: CategoryGlobal},
				{ID: "b", Keys: []string{"alt", " "}, Enabled: true, Category: CategoryGlobal},
			},
		},
		{
			name: "unknown category",
			shortcuts: []Shortcut{
				{ID: "a", Keys: []string{"k"}, Enabled: true, Category: "admin"},
			},
			wantErrors: []string{IssueCategory},
		},
		{
			name: "identical combinations",
			shortcuts: []Shortcut{
				{ID: "a", Keys: []string{"ctrl", "shift", "k"}, Enabled: true, Category: CategoryGlobal},
				{ID: "b", Keys: []string{"shift", "ctrl", "K"}, Enabled: true, Category: CategoryCustom},
			},
			wantWarnings: []string{IssueConflict},
		},
		{
			name: "disabled duplicates do not conflict",
			shortcuts: []Shortcut{
				{ID: "a", Keys: []string{"ctrl", "k"}, Enabled: true, Category: CategoryGlobal},
				{ID: "b", Keys: []string{"ctrl", "k"}, Enabled: false, Category: CategoryGlobal},
			},
		},
		{
			name: "reserved",
			shortcuts: []Shortcut{
				{ID: "a", Keys: []string{"ctrl", "C"}, Enabled: true, Category: CategoryEditing},
			},
			wantWarnings: []string{IssueReserved},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewValidator().ValidateShortcuts(tt.shortcuts)
			assertIssues(t, "errors", result.Errors, tt.wantErrors)
			assertIssues(t, "warnings", result.Warnings, tt.wantWarnings)
		})
	}
}

func assertIssues(t *testing.T, kind string, got []ValidationError, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want types %v", kind, got, want)
	}
	for i := range want {
		if got[i].Type != want[i] {
			t.Errorf("%s[%d].Type = %q, want %q", kind, i, got[i].Type, want[i])
		}
	}
}

func TestValidator_Defaults(t *testing.T) {
	result := NewValidator().ValidateShortcuts(DefaultShortcuts())

	if result.HasErrors() {
		t.Errorf("defaults should be valid:\n%s", result.String())
	}
	// copy-content uses ctrl+c, which the terminal host reserves
	if len(result.Warnings) != 1 || result.Warnings[0].ID != "copy-content" {
		t.Errorf("unexpected warnings:\n%s", result.String())
	}
}

func TestValidator_ValidateConfig(t *testing.T) {
	config, err := ParseConfig([]byte("custom:\n  - id: dup-save\n    keys: ctrl+s\n"), ".yaml")
	if err != nil {
		t.Fatal(err)
	}

	result := NewValidator().ValidateConfig(config)
	found := false
	for _, w := range result.Warnings {
		if w.Type == IssueConflict && w.ID == "dup-save" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected dup-save conflict:\n%s", result.String())
	}

	bad, _ := ParseConfig([]byte("custom:\n  - id: x\n    keys: ctrl+\n"), ".yaml")
	if !NewValidator().ValidateConfig(bad).HasErrors() {
		t.Error("expected invalid config to produce errors")
	}
}

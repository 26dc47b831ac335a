package shortcuts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testYAML = `
version: "1"
shortcuts:
  save-document:
    enabled: false
  go-home:
    keys: alt+shift+h
    name: Dashboard
custom:
  - id: open-palette
    name: Command palette
    keys: ctrl+shift+p
  - id: focus-search
    keys: /
    category: navigation
    enabled: false
`

func initRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry(nil)
	if err := r.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return r
}

func TestApplyConfig_YAML(t *testing.T) {
	config, err := ParseConfig([]byte(testYAML), ".yaml")
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	r := initRegistry(t)
	if err := ApplyConfig(r, config); err != nil {
		t.Fatalf("ApplyConfig() error = %v", err)
	}

	save, _ := r.Get("save-document")
	if save.Enabled {
		t.Error("save-document should be disabled")
	}

	home, _ := r.Get("go-home")
	if home.Name != "Dashboard" || FormatShortcut(home.Keys) != "Alt+Shift+H" {
		t.Errorf("go-home override not applied: %+v", home)
	}

	palette, ok := r.Get("open-palette")
	if !ok {
		t.Fatal("expected custom shortcut open-palette")
	}
	if palette.Category != CategoryCustom || !palette.Enabled {
		t.Errorf("unexpected custom defaults: %+v", palette)
	}

	search, _ := r.Get("focus-search")
	if search.Category != CategoryNavigation || search.Enabled || search.Name != "focus-search" {
		t.Errorf("unexpected focus-search: %+v", search)
	}

	if r.Len() != 12 {
		t.Errorf("expected 12 shortcuts, got %d", r.Len())
	}
}

func TestApplyConfig_JSONC(t *testing.T) {
	data := []byte(`{
		// disable undo
		"version": "1",
		"shortcuts": {"undo-action": {"enabled": false}},
	}`)

	config, err := ParseConfig(data, ".jsonc")
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	r := initRegistry(t)
	if err := ApplyConfig(r, config); err != nil {
		t.Fatalf("ApplyConfig() error = %v", err)
	}
	if undo, _ := r.Get("undo-action"); undo.Enabled {
		t.Error("undo-action should be disabled")
	}
}

func TestApplyConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad keys", "shortcuts:\n  go-home:\n    keys: ctrl+\n"},
		{"bad category", "shortcuts:\n  go-home:\n    category: admin\n"},
		{"custom without id", "custom:\n  - keys: ctrl+p\n"},
		{"custom bad modifier", "custom:\n  - id: x\n    keys: hyper+p\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := ParseConfig([]byte(tt.yaml), ".yml")
			if err != nil {
				t.Fatalf("ParseConfig() error = %v", err)
			}
			if err := ApplyConfig(initRegistry(t), config); err == nil {
				t.Error("expected ApplyConfig error")
			}
		})
	}
}

func TestSaveLoadConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	r := initRegistry(t)
	r.Disable("copy-content")
	exported := ExportConfig(r)

	for _, name := range []string{"shortcuts.yaml", "shortcuts.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := SaveConfig(exported, path); err != nil {
				t.Fatalf("SaveConfig() error = %v", err)
			}

			loaded, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}

			fresh := initRegistry(t)
			if err := ApplyConfig(fresh, loaded); err != nil {
				t.Fatalf("ApplyConfig() error = %v", err)
			}
			if copyContent, _ := fresh.Get("copy-content"); copyContent.Enabled {
				t.Error("copy-content should stay disabled after round trip")
			}
			redo, _ := fresh.Get("redo-action")
			if FormatShortcut(redo.Keys) != "Ctrl+Shift+Z" {
				t.Errorf("redo-action keys = %v", redo.Keys)
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	r := initRegistry(t)
	if err := LoadOrDefault(r, filepath.Join(dir, "missing.yaml")); err != nil {
		t.Errorf("missing file should not be an error: %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("shortcuts: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	err := LoadOrDefault(r, bad)
	if err == nil || !strings.Contains(err.Error(), "bad.yaml") {
		t.Errorf("expected load error naming the file, got %v", err)
	}
}

package keysource

import (
	"testing"

	"github.com/studiowebux/keydeck/internal/shortcuts"
)

func TestFake_RegistryLifecycle(t *testing.T) {
	src := NewFake()
	r := shortcuts.NewRegistry(src, shortcuts.WithDefaults(nil))

	calls := 0
	r.Register(shortcuts.Shortcut{
		ID:      "x",
		Keys:    shortcuts.CreateShortcut(shortcuts.Combo{Ctrl: true, Key: "k"}),
		Action:  func() { calls++ },
		Enabled: true,
	})

	if src.Press(shortcuts.KeyEvent{Key: "k", Ctrl: true}) {
		t.Error("idle registry should not receive events")
	}

	for i := 0; i < 2; i++ {
		if err := r.Init(); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
	}
	if src.Attached() != 1 {
		t.Fatalf("Attached() = %d, want 1", src.Attached())
	}

	if !src.Press(shortcuts.KeyEvent{Key: "k", Ctrl: true}) {
		t.Error("expected ctrl+k to be handled")
	}
	if calls != 1 {
		t.Errorf("action called %d times, want 1", calls)
	}

	r.Destroy()
	if src.Attached() != 0 {
		t.Errorf("Attached() after Destroy = %d, want 0", src.Attached())
	}
	src.Press(shortcuts.KeyEvent{Key: "k", Ctrl: true})
	if calls != 1 {
		t.Errorf("detached registry fired: calls=%d", calls)
	}
}

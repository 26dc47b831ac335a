package keysource

import (
	"sync"

	"github.com/studiowebux/keydeck/internal/shortcuts"
)

// Fake is a Source driven by tests. Every attached handler receives each
// pressed event, so attaching twice is observable.
type Fake struct {
	mu       sync.Mutex
	handlers []shortcuts.Handler
}

func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) Attach(h shortcuts.Handler) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers = append(f.handlers, h)
	return nil
}

func (f *Fake) Detach() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers = nil
}

// Attached returns the number of attached handlers
func (f *Fake) Attached() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.handlers)
}

// Press delivers ev and reports whether any handler consumed it
func (f *Fake) Press(ev shortcuts.KeyEvent) bool {
	f.mu.Lock()
	handlers := append([]shortcuts.Handler(nil), f.handlers...)
	f.mu.Unlock()

	handled := false
	for _, h := range handlers {
		if h(ev) {
			handled = true
		}
	}
	return handled
}

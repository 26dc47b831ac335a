package shortcuts

import (
	"sync"

	"github.com/rs/zerolog"
)

// listener is a subscription handle. Its address identifies it for removal.
type listener struct {
	fn func()
}

// Registry owns the registered shortcuts, the subscriptions and the single
// attachment to a key-event Source.
type Registry struct {
	// lifeMu serialises Init and Destroy
	lifeMu sync.Mutex

	mu        sync.Mutex
	order     []string
	shortcuts map[string]*Shortcut
	listeners map[string][]*listener
	listening bool

	source   Source
	defaults []Shortcut
	log      zerolog.Logger
}

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) {
		r.log = l
	}
}

// WithDefaults replaces the built-in set loaded by Init on an empty registry
func WithDefaults(defaults []Shortcut) Option {
	return func(r *Registry) {
		r.defaults = defaults
	}
}

// NewRegistry creates an idle registry bound to src.
// A nil src is allowed: the host then delivers events by calling Dispatch.
func NewRegistry(src Source, opts ...Option) *Registry {
	r := &Registry{
		shortcuts: make(map[string]*Shortcut),
		listeners: make(map[string][]*listener),
		source:    src,
		defaults:  DefaultShortcuts(),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Init loads the defaults if the registry is empty and attaches to the
// source. Calling Init while already listening does nothing.
// The only error returned is the source's own attach failure, in which case
// the registry stays idle.
func (r *Registry) Init() error {
	r.lifeMu.Lock()
	defer r.lifeMu.Unlock()

	r.mu.Lock()
	if r.listening {
		r.mu.Unlock()
		return nil
	}
	if len(r.shortcuts) == 0 {
		r.loadDefaultsLocked()
	}
	r.mu.Unlock()

	if r.source != nil {
		if err := r.source.Attach(r.Dispatch); err != nil {
			return err
		}
	}

	r.mu.Lock()
	r.listening = true
	r.mu.Unlock()

	r.log.Debug().Int("shortcuts", r.Len()).Msg("shortcut registry listening")
	return nil
}

// Destroy detaches from the source. Registered shortcuts are kept.
// Calling Destroy while idle does nothing.
func (r *Registry) Destroy() {
	r.lifeMu.Lock()
	defer r.lifeMu.Unlock()

	r.mu.Lock()
	if !r.listening {
		r.mu.Unlock()
		return
	}
	r.listening = false
	r.mu.Unlock()

	if r.source != nil {
		r.source.Detach()
	}
	r.log.Debug().Msg("shortcut registry detached")
}

// Listening reports whether the registry is attached to its source
func (r *Registry) Listening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listening
}

func (r *Registry) loadDefaultsLocked() {
	for _, s := range r.defaults {
		s = s.clone()
		if s.Action == nil {
			s.Action = r.logTrigger(s.ID)
		}
		r.insertLocked(s)
	}
}

// logTrigger is the action given to built-in shortcuts that have none.
// Hosts attach real behaviour with Subscribe.
func (r *Registry) logTrigger(id string) func() {
	return func() {
		r.log.Debug().Str("id", id).Msg("shortcut triggered")
	}
}

// Register adds s as given. A shortcut whose ID is already registered is
// rejected and the existing entry is kept. s.Enabled is not defaulted, so
// callers building a Shortcut literal set Enabled: true.
func (r *Registry) Register(s Shortcut) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.shortcuts[s.ID]; exists {
		r.log.Warn().Str("id", s.ID).Msg("shortcut already registered")
		return
	}
	r.insertLocked(s.clone())
}

func (r *Registry) insertLocked(s Shortcut) {
	r.shortcuts[s.ID] = &s
	r.order = append(r.order, s.ID)
}

// Unregister removes the shortcut with the given id, if any
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.shortcuts[id]; !exists {
		return
	}
	delete(r.shortcuts, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Update merges p into the shortcut with the given id.
// An unknown id is reported and nothing changes.
func (r *Registry) Update(id string, p Patch) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.shortcuts[id]
	if !ok {
		r.log.Warn().Str("id", id).Msg("cannot update unknown shortcut")
		return
	}
	p.apply(s)
}

// Enable turns matching on for id. Unknown ids are ignored.
func (r *Registry) Enable(id string) {
	r.setEnabled(id, true)
}

// Disable turns matching off for id. Unknown ids are ignored.
func (r *Registry) Disable(id string) {
	r.setEnabled(id, false)
}

func (r *Registry) setEnabled(id string, enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.shortcuts[id]; ok {
		s.Enabled = enabled
	}
}

// Get returns a copy of the shortcut with the given id
func (r *Registry) Get(id string) (Shortcut, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.shortcuts[id]
	if !ok {
		return Shortcut{}, false
	}
	return s.clone(), true
}

// GetAll returns a snapshot of every shortcut in registration order
func (r *Registry) GetAll() []Shortcut {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]Shortcut, 0, len(r.order))
	for _, id := range r.order {
		all = append(all, r.shortcuts[id].clone())
	}
	return all
}

// GetByCategory returns the shortcuts in category c, in registration order
func (r *Registry) GetByCategory(c Category) []Shortcut {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []Shortcut
	for _, id := range r.order {
		if s := r.shortcuts[id]; s.Category == c {
			matched = append(matched, s.clone())
		}
	}
	return matched
}

// Len returns the number of registered shortcuts
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// Subscribe registers fn to run every time the shortcut id fires, after its
// action. The returned func removes exactly this subscription; calling it
// more than once is harmless.
func (r *Registry) Subscribe(id string, fn func()) func() {
	l := &listener{fn: fn}

	r.mu.Lock()
	r.listeners[id] = append(r.listeners[id], l)
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.removeListenerLocked(id, l)
	}
}

func (r *Registry) removeListenerLocked(id string, l *listener) {
	set, ok := r.listeners[id]
	if !ok {
		return
	}
	for i, cur := range set {
		if cur == l {
			set = append(set[:i:i], set[i+1:]...)
			break
		}
	}
	if len(set) == 0 {
		delete(r.listeners, id)
		return
	}
	r.listeners[id] = set
}

// subscriberCount is used by tests to observe the listener index
func (r *Registry) subscriberCount(id string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.listeners[id]
	return len(set), ok
}

// Clear removes every shortcut and every subscription.
// The source stays attached.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.order = nil
	r.shortcuts = make(map[string]*Shortcut)
	r.listeners = make(map[string][]*listener)
}

// firing is a matched shortcut captured under the lock
type firing struct {
	id        string
	action    func()
	listeners []func()
}

// Dispatch runs every enabled shortcut matching ev, in registration order,
// each followed by its subscribers. It returns true if anything fired, in
// which case the source must suppress the default handling of ev.
// Events are ignored while the registry is idle.
func (r *Registry) Dispatch(ev KeyEvent) bool {
	r.mu.Lock()
	if !r.listening {
		r.mu.Unlock()
		return false
	}

	var fired []firing
	for _, id := range r.order {
		s := r.shortcuts[id]
		if !s.Enabled || !Matches(s.Keys, ev) {
			continue
		}
		f := firing{id: id, action: s.Action}
		for _, l := range r.listeners[id] {
			f.listeners = append(f.listeners, l.fn)
		}
		fired = append(fired, f)
	}
	r.mu.Unlock()

	// Callbacks run unlocked so they may call back into the registry
	for _, f := range fired {
		if f.action != nil {
			f.action()
		}
		for _, fn := range f.listeners {
			fn()
		}
	}

	return len(fired) > 0
}

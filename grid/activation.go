package grid

import "sync"

// Activation tracks which single plugin (if any) currently owns the
// side-panel/inline-row region, and the opaque payload it was opened with.
// One Activation exists per grid and its methods are stable across the
// grid's lifetime, so callers may hold them by reference.
//
// Invariant: args are cleared whenever the active id clears, and opening a
// different plugin replaces id and args together.
type Activation struct {
	mu       sync.Mutex
	activeID string
	args     any
}

// NewActivation creates a controller with nothing active.
func NewActivation() *Activation {
	return &Activation{}
}

// Open activates pluginID with the given open args, unconditionally
// replacing any previously active plugin. Repeated opens of the same
// plugin update the args.
func (a *Activation) Open(pluginID string, args any) {
	a.mu.Lock()
	a.activeID = pluginID
	a.args = args
	a.mu.Unlock()
}

// Close deactivates whichever plugin is active and clears the args. Safe
// to call when nothing is open.
func (a *Activation) Close() {
	a.mu.Lock()
	a.activeID = ""
	a.args = nil
	a.mu.Unlock()
}

// Toggle opens the plugin (with no args) if inactive, closes it if it is
// the active one.
func (a *Activation) Toggle(pluginID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.activeID == pluginID {
		a.activeID = ""
		a.args = nil
		return
	}
	a.activeID = pluginID
	a.args = nil
}

// IsOpen reports whether pluginID is the active plugin.
func (a *Activation) IsOpen(pluginID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.activeID != "" && a.activeID == pluginID
}

// ActiveID returns the active plugin id, or "" and false.
func (a *Activation) ActiveID() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.activeID, a.activeID != ""
}

// SetActive activates pluginID with no open args; an empty id
// deactivates. Unlike Open it never carries args, so previously set args
// are always dropped.
func (a *Activation) SetActive(pluginID string) {
	a.mu.Lock()
	a.activeID = pluginID
	a.args = nil
	a.mu.Unlock()
}

// Args returns the active plugin's open args, nil when nothing is open.
func (a *Activation) Args() any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.args
}

// argsFor returns the open args if pluginID is the active plugin, nil
// otherwise. Menu factories and slot renderers use this to scope the
// payload to its owner.
func (a *Activation) argsFor(pluginID string) any {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.activeID != pluginID {
		return nil
	}
	return a.args
}

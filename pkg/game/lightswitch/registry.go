package lightswitch

import (
	"sort"
)

// Registry indexes the station's switch controllers by ID
type Registry struct {
	controllers map[string]*Controller
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{controllers: make(map[string]*Controller)}
}

// Add registers c. Returns false if the ID is already taken.
func (r *Registry) Add(c *Controller) bool {
	if _, ok := r.controllers[c.ID()]; ok {
		return false
	}
	r.controllers[c.ID()] = c
	return true
}

// Get looks up a controller by switch ID
func (r *Registry) Get(id string) (*Controller, bool) {
	c, ok := r.controllers[id]
	return c, ok
}

// Len returns the number of switches
func (r *Registry) Len() int {
	return len(r.controllers)
}

// All returns the controllers sorted by ID
func (r *Registry) All() []*Controller {
	ids := make([]string, 0, len(r.controllers))
	for id := range r.controllers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*Controller, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.controllers[id])
	}
	return out
}

// Toggle flips the named switch. Returns false for an unknown ID.
func (r *Registry) Toggle(id string) bool {
	c, ok := r.controllers[id]
	if !ok {
		return false
	}
	c.Toggle()
	return true
}

// ApplyRemote applies an authoritative state. Returns false for an unknown ID.
func (r *Registry) ApplyRemote(id string, on bool) bool {
	c, ok := r.controllers[id]
	if !ok {
		return false
	}
	c.ApplyRemote(on)
	return true
}

// States snapshots every switch's on/off flag
func (r *Registry) States() map[string]bool {
	states := make(map[string]bool, len(r.controllers))
	for id, c := range r.controllers {
		states[id] = c.IsOn()
	}
	return states
}

// Restore seeds switches with saved states before they start. Unknown IDs are
// ignored. Returns how many switches were restored.
func (r *Registry) Restore(states map[string]bool) int {
	n := 0
	for id, on := range states {
		if c, ok := r.controllers[id]; ok {
			c.Restore(on)
			n++
		}
	}
	return n
}

// AddListener subscribes l to every switch
func (r *Registry) AddListener(l Listener) {
	for _, c := range r.All() {
		c.AddListener(l)
	}
}

// SetRequester routes every switch's toggles through req
func (r *Registry) SetRequester(req ToggleRequester) {
	for _, c := range r.controllers {
		c.SetRequester(req)
	}
}

// SetPresenter replaces every switch's presenter
func (r *Registry) SetPresenter(p Presenter) {
	for _, c := range r.controllers {
		c.SetPresenter(p)
	}
}

// StartAll starts every switch in ID order
func (r *Registry) StartAll() {
	for _, c := range r.All() {
		c.Start()
	}
}

// StartClientAll schedules every switch's deferred sync
func (r *Registry) StartClientAll() {
	for _, c := range r.All() {
		c.StartClient()
	}
}

// StopAll stops every switch
func (r *Registry) StopAll() {
	for _, c := range r.All() {
		c.Stop()
	}
}

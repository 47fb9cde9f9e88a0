package throttle

import "sync"

// Registry hands out one throttle per caller key (session id or client
// address) for a single guarded site. Keys never share state.
type Registry struct {
	cfg Config

	mu      sync.Mutex
	entries map[string]*Throttle
}

// NewRegistry builds a registry whose throttles all share cfg.
func NewRegistry(cfg Config) *Registry {
	return &Registry{cfg: cfg, entries: make(map[string]*Throttle)}
}

// Get returns the throttle for key, creating it on first use.
func (r *Registry) Get(key string) *Throttle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.entries[key]; ok {
		return t
	}
	t := New(r.cfg)
	r.entries[key] = t
	return t
}

// StopAll cancels every pending unblock timer. Used at shutdown.
func (r *Registry) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.entries {
		t.Stop()
	}
}

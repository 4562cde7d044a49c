package sandbox

import "sync"

// Registry hands out sessions keyed by an opaque id, creating them lazily.
// Every session shares the registry's scenario provider and options.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	provider ScenarioProvider
	opts     []SessionOption
}

func NewRegistry(provider ScenarioProvider, opts ...SessionOption) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		provider: provider,
		opts:     opts,
	}
}

// Get returns the session for id, creating it on first use.
func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		return s
	}
	s := NewSession(id, r.provider, r.opts...)
	r.sessions[id] = s
	return s
}

// Len reports how many sessions exist.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// StopAll stops every session's running playback. Called on shutdown so no
// placement goroutine outlives the server.
func (r *Registry) StopAll() {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.Unlock()

	for _, s := range sessions {
		s.StopPlayback()
	}
}

package service

import "sync"

// SessionGuard is the single-slot task handle for one editor session.
// Single runs and batch runs share the slot: starting either while one is
// active is rejected outright rather than queued or cancelled, because an
// in-flight sandbox call cannot be aborted server-side.
type SessionGuard struct {
	mu     sync.Mutex
	active map[string]bool
}

func NewSessionGuard() *SessionGuard {
	return &SessionGuard{active: make(map[string]bool)}
}

func (g *SessionGuard) acquire(session string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active[session] {
		return false
	}
	g.active[session] = true
	return true
}

func (g *SessionGuard) release(session string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, session)
}

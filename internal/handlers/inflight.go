package handlers

import "sync"

// inflightGuard tracks which sessions currently have a prediction request
// outstanding. A second submission from the same session is rejected while
// one is in flight; submissions from different sessions do not contend.
type inflightGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newInflightGuard() *inflightGuard {
	return &inflightGuard{active: make(map[string]struct{})}
}

// tryAcquire marks the session as in flight. Returns false if it already
// was, in which case the caller must not release.
func (g *inflightGuard) tryAcquire(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[sessionID]; busy {
		return false
	}
	g.active[sessionID] = struct{}{}
	return true
}

func (g *inflightGuard) release(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, sessionID)
}

package session

import "sync"

// renderGate serializes render results through a generation counter. Each
// render request takes a new generation; a result is applied only if its
// generation is still current, so a superseded render is dropped rather
// than clobbering newer state.
type renderGate struct {
	mu  sync.Mutex
	seq uint64
}

func (g *renderGate) begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return g.seq
}

func (g *renderGate) current(gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return gen == g.seq
}

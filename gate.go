package contention

import (
	"sync"
	"sync/atomic"
)

// gate admits callers until it is closed. Close blocks until every admitted
// caller has left, after which no caller is ever admitted again.
type gate struct {
	mu     sync.RWMutex
	closed bool
	active int32
}

// Enter admits the caller and reports true, or reports false if the gate is
// closed. An admitted caller must call Leave exactly once.
func (g *gate) Enter() bool {
	atomic.AddInt32(&g.active, 1)
	g.mu.RLock()
	if g.closed {
		g.mu.RUnlock()
		atomic.AddInt32(&g.active, -1)
		return false
	}
	return true
}

// Leave releases an admission obtained from Enter.
func (g *gate) Leave() {
	g.mu.RUnlock()
	atomic.AddInt32(&g.active, -1)
}

// Idle reports if no caller is currently admitted or waiting to be.
func (g *gate) Idle() bool {
	return atomic.LoadInt32(&g.active) == 0
}

// Close waits for admitted callers to Leave and refuses all later ones. It
// reports true only for the call that actually closed the gate.
func (g *gate) Close() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false
	}
	g.closed = true
	return true
}

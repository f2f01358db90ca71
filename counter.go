package contention

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/zeromicro/go-zero/core/syncx"
)

const cacheLine = 64 // typical size of a cache line

// counterHeader holds the plain cell and everything that guards it. It is
// grouped into a struct so the padding after it can be computed.
type counterHeader struct {
	mu    sync.Mutex
	lock  syncx.Barrier
	value int64
}

// Counter is a shared integer mutated by concurrent workers through one of
// the increment strategies. The atomic cell sits on its own cache line so
// that the atomic strategy does not share a line with the plain cell.
//
// Reset and Value must not be called concurrently with increments: they are
// meant to run before workers start and after they have been joined.
type Counter struct {
	counterHeader
	_    [cacheLine - unsafe.Sizeof(counterHeader{})%cacheLine]byte
	cell atomic.Int64
}

// Incrementer returns the increment operation for the strategy. Resolving it
// once keeps the per-iteration cost to a single call.
func (c *Counter) Incrementer(s Strategy) (func(), error) {
	switch s {
	case Unsynced:
		return c.incrementUnsynced, nil
	case Synced:
		return c.incrementSynced, nil
	case Atomic:
		return c.incrementAtomic, nil
	case WithLock:
		return c.incrementWithLock, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, s)
	}
}

// incrementUnsynced races by construction.
func (c *Counter) incrementUnsynced() {
	c.value++
}

func (c *Counter) incrementSynced() {
	c.mu.Lock()
	c.value++
	c.mu.Unlock()
}

func (c *Counter) incrementAtomic() {
	c.cell.Add(1)
}

// incrementWithLock relies on Guard to release the lock even if the critical
// section panics.
func (c *Counter) incrementWithLock() {
	c.lock.Guard(func() {
		c.value++
	})
}

// Reset zeroes both cells.
func (c *Counter) Reset() {
	c.value = 0
	c.cell.Store(0)
}

// Value returns the cell that the strategy increments.
func (c *Counter) Value(s Strategy) int64 {
	if s == Atomic {
		return c.cell.Load()
	}
	return c.value
}

package contention

import (
	"errors"
	"fmt"
)

// ErrUnknownStrategy is returned when a strategy value or name does not name
// one of the known strategies.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy selects how a Counter increment is synchronized.
type Strategy int

const (
	// Unsynced performs a bare read-increment-write. Lost updates under
	// contention are expected.
	Unsynced Strategy = iota + 1
	// Synced wraps the read-increment-write in a mutual exclusion region.
	Synced
	// Atomic uses a hardware fetch-and-add on a separate cell.
	Atomic
	// WithLock acquires an explicit lock object through a scoped guard that
	// releases on every exit path.
	WithLock
)

// Strategies returns the counter strategies in suite order.
func Strategies() []Strategy {
	return []Strategy{Unsynced, Synced, Atomic, WithLock}
}

func (s Strategy) String() string {
	switch s {
	case Unsynced:
		return "UNSYNCED"
	case Synced:
		return "SYNCED"
	case Atomic:
		return "ATOMIC"
	case WithLock:
		return "WITHLOCK"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Title is the human readable name used in suite headers.
func (s Strategy) Title() string {
	switch s {
	case Unsynced:
		return "Unsynchronized"
	case Synced:
		return "Synchronized"
	case Atomic:
		return "Atomic"
	case WithLock:
		return "With Lock"
	default:
		return s.String()
	}
}

// Valid reports if s is one of the known strategies.
func (s Strategy) Valid() bool { return s >= Unsynced && s <= WithLock }

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return []byte(s.String()), nil
}

// ParseStrategy returns the Strategy named by name, as printed by String.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies() {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// WriteStrategy selects how concurrent line appends to a file are serialized.
type WriteStrategy int

const (
	// Mutex guards an open/append/flush/close sequence with a mutex.
	Mutex WriteStrategy = iota + 1
	// Lock guards the same sequence with an explicit lock object whose release
	// is guaranteed by a scoped guard.
	Lock
	// Queue hands lines to a single consumer goroutine that performs the
	// appends in FIFO order. WriteLine returns after the enqueue.
	Queue
	// Channel writes through one long-lived append-mode handle, serialized by
	// a mutex, and closes the handle once at teardown.
	Channel
)

// WriteStrategies returns the file write strategies in suite order.
func WriteStrategies() []WriteStrategy {
	return []WriteStrategy{Mutex, Lock, Queue, Channel}
}

func (w WriteStrategy) String() string {
	switch w {
	case Mutex:
		return "MUTEX"
	case Lock:
		return "LOCK"
	case Queue:
		return "QUEUE"
	case Channel:
		return "CHANNEL"
	default:
		return fmt.Sprintf("WriteStrategy(%d)", int(w))
	}
}

// Title is the human readable name used in suite headers.
func (w WriteStrategy) Title() string {
	switch w {
	case Mutex:
		return "mutex"
	case Lock:
		return "lock"
	case Queue:
		return "single-consumer queue"
	case Channel:
		return "append channel"
	default:
		return w.String()
	}
}

// Valid reports if w is one of the known write strategies.
func (w WriteStrategy) Valid() bool { return w >= Mutex && w <= Channel }

// MarshalText implements encoding.TextMarshaler.
func (w WriteStrategy) MarshalText() ([]byte, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(w))
	}
	return []byte(w.String()), nil
}

// ParseWriteStrategy returns the WriteStrategy named by name, as printed by
// String.
func ParseWriteStrategy(name string) (WriteStrategy, error) {
	for _, w := range WriteStrategies() {
		if w.String() == name {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

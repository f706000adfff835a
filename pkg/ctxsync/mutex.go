// Package ctxsync provides synchronization primitives that honor context
// cancellation.
package ctxsync

import "context"

// A Mutex is a mutual exclusion lock whose Lock can be abandoned through a
// context.
type Mutex struct {
	sem chan struct{}
}

// NewMutex creates a new unlocked Mutex.
func NewMutex() *Mutex {
	return &Mutex{sem: make(chan struct{}, 1)}
}

// Lock locks the mutex, blocking until it is available.
func (m *Mutex) Lock() {
	m.sem <- struct{}{}
}

// LockWithContext locks the mutex unless the context is cancelled first.
func (m *Mutex) LockWithContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case m.sem <- struct{}{}:
		return nil
	}
}

// TryLock tries to lock the mutex and reports whether it succeeded.
func (m *Mutex) TryLock() bool {
	select {
	case m.sem <- struct{}{}:
		return true
	default:
		return false
	}
}

// Unlock unlocks the mutex. Unlocking an unlocked mutex panics.
func (m *Mutex) Unlock() {
	select {
	case <-m.sem:
	default:
		panic("ctxsync: unlock of unlocked mutex")
	}
}

package kernel

import "sync"

// mutexLocker is a sync.Locker backed by a real mutex, used in place of
// scheduler.NoopLocker() once an exec call runs multiple worker
// goroutines against the same ready queue and frame store.
type mutexLocker struct {
	mu sync.Mutex
}

func (l *mutexLocker) Lock()   { l.mu.Lock() }
func (l *mutexLocker) Unlock() { l.mu.Unlock() }

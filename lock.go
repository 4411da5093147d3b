package resolver

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// recursiveMutex is a mutual-exclusion lock that the owning goroutine may
// acquire again without deadlocking. Resolution is recursive by nature: a
// factory resolving its own dependencies re-enters the public API on the same
// goroutine, so the registry lock must track an acquire count that matches
// call depth exactly. Other goroutines block until the owner's outermost
// Unlock.
type recursiveMutex struct {
	mu    sync.Mutex
	owner atomic.Int64
	depth int
}

// Lock acquires the mutex, incrementing the hold depth when the calling
// goroutine already owns it.
func (m *recursiveMutex) Lock() {
	id := goroutineID()
	if m.owner.Load() == id {
		m.depth++
		return
	}
	m.mu.Lock()
	m.owner.Store(id)
	m.depth = 1
}

// Unlock releases one level of the lock, releasing the mutex itself when the
// depth returns to zero. Unlocking from a goroutine that does not own the
// lock is a fatal misuse.
func (m *recursiveMutex) Unlock() {
	if m.owner.Load() != goroutineID() {
		panic("resolver: recursiveMutex unlocked by non-owning goroutine")
	}
	m.depth--
	if m.depth == 0 {
		m.owner.Store(0)
		m.mu.Unlock()
	}
}

// holdDepth reports how many times the calling goroutine currently holds the
// lock, and zero when it is not the owner. Only meaningful to the owner.
func (m *recursiveMutex) holdDepth() int {
	if m.owner.Load() != goroutineID() {
		return 0
	}
	return m.depth
}

// goroutineID extracts the current goroutine's id from its stack header,
// which is formatted as "goroutine N [state]:". Goroutine ids start at 1, so
// zero is free to mean "unowned". The registry lock is coarse and resolution
// never blocks on I/O, so the stack read is paid once per public call.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	const prefix = len("goroutine ")
	var id int64
	for _, c := range buf[prefix:n] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + int64(c-'0')
	}
	return id
}

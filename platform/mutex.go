package platform

import (
	"runtime"
	"strconv"
	"sync"
)

// Mutex is a recursive lock: the goroutine that holds it may lock it
// again without deadlocking itself, matching the recursive-mutex
// contract the driver core is written against (the transport's tx lock
// and the IPC layer's request lock are both acquired this way from
// paths that can nest during error unwinding).
//
// Recursion is tracked by goroutine id, the same trick runtime-local
// storage shims use when an API can't thread a lock token through.
// The id is only compared against the current owner to detect
// re-entry; a holder may block while holding the lock (the IPC
// request lock is held across the wait for the response).
type Mutex struct {
	sem   chan struct{} // binary semaphore guarding ownership
	state sync.Mutex    // guards owner/depth without ever blocking on sem
	owner int64
	depth int
}

// NewMutex creates a ready-to-use recursive mutex. The name is kept for
// parity with the embedded API this type stands in for; it has no
// behavioral effect and is only used in diagnostic messages.
func NewMutex(name string) *Mutex {
	m := &Mutex{sem: make(chan struct{}, 1), owner: -1}
	m.sem <- struct{}{}
	return m
}

// Lock blocks until the mutex is owned by the calling goroutine.
func (m *Mutex) Lock() {
	id := goroutineID()

	m.state.Lock()
	if m.depth > 0 && m.owner == id {
		m.depth++
		m.state.Unlock()
		return
	}
	m.state.Unlock()

	<-m.sem
	m.state.Lock()
	m.owner = id
	m.depth = 1
	m.state.Unlock()
}

// Unlock releases one level of ownership. Panics if the calling
// goroutine does not hold the lock, the same as an assert-always
// failure on the embedded side.
func (m *Mutex) Unlock() {
	id := goroutineID()

	m.state.Lock()
	defer m.state.Unlock()
	if m.owner != id {
		panic("platform: Unlock by non-owner")
	}
	m.depth--
	if m.depth == 0 {
		m.owner = -1
		m.sem <- struct{}{}
	}
}

// goroutineID extracts the calling goroutine's id from its stack trace
// header. It is used only to detect re-entrant locking by the same
// goroutine; it is never exposed and never compared across processes.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	s := string(buf[:n])
	const prefix = "goroutine "
	s = s[len(prefix):]
	end := 0
	for end < len(s) && s[end] != ' ' {
		end++
	}
	id, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		panic("platform: could not parse goroutine id: " + err.Error())
	}
	return id
}

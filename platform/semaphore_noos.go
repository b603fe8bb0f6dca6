//go:build noos

package platform

import (
	"sync"
	"time"
)

// Semaphore is a counting semaphore for the no-OS cooperative backend.
// With no thread to drain the transport, Take runs an attached runner
// hook in a loop until the count becomes positive or the timeout
// elapses, letting the transport's own poll routine make progress on
// the very call stack that is waiting for it.
type Semaphore struct {
	mu      sync.Mutex
	count   uint32
	max     uint32
	hook    RunnerHook
	hookArg any
}

// NewSemaphore creates a semaphore with the given maximum count and
// initial tokens already available.
func NewSemaphore(name string, max, initial uint32) *Semaphore {
	return &Semaphore{count: initial, max: max}
}

// AddHook attaches the runner hook invoked while Take is blocked. Only
// one hook may be attached; re-attaching replaces it.
func (s *Semaphore) AddHook(hook RunnerHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hook = hook
}

// Take blocks until a token is available or timeout elapses, driving the
// attached runner hook (if any) on every spin. With no hook attached and
// no token available, Take degrades to a plain poll loop.
func (s *Semaphore) Take(timeout time.Duration) Status {
	deadline := time.Now().Add(timeout)
	for {
		s.mu.Lock()
		if s.count > 0 {
			s.count--
			s.mu.Unlock()
			return OK
		}
		hook := s.hook
		s.mu.Unlock()

		remaining := time.Duration(0)
		if timeout != Forever {
			remaining = time.Until(deadline)
			if remaining <= 0 {
				return Timeout
			}
		}
		if hook != nil {
			hook(remaining)
		} else {
			time.Sleep(time.Millisecond)
		}
		if timeout != Forever && time.Now().After(deadline) {
			s.mu.Lock()
			ready := s.count > 0
			if ready {
				s.count--
			}
			s.mu.Unlock()
			if ready {
				return OK
			}
			return Timeout
		}
	}
}

// Release posts a token. Safe to call from an interrupt-style callback:
// it never blocks.
func (s *Semaphore) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.count < s.max {
		s.count++
	}
}

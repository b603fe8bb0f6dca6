//go:build !noos

package platform

import "time"

// Semaphore is a counting semaphore backed by a buffered channel. Release
// is safe to call from an interrupt-style callback: it never blocks and
// never allocates, satisfying the ISR-safety requirement that a
// FLOW/NOTIFY edge handler must be able to post without yielding.
type Semaphore struct {
	tokens chan struct{}
}

// NewSemaphore creates a semaphore with the given maximum count, with
// initial tokens already available. The name is kept for parity with the
// embedded API and used only in diagnostics.
func NewSemaphore(name string, max, initial uint32) *Semaphore {
	s := &Semaphore{tokens: make(chan struct{}, max)}
	for i := uint32(0); i < initial; i++ {
		s.tokens <- struct{}{}
	}
	return s
}

// Take blocks until a token is available or timeout elapses. Forever
// blocks indefinitely.
func (s *Semaphore) Take(timeout time.Duration) Status {
	if timeout == Forever {
		<-s.tokens
		return OK
	}
	select {
	case <-s.tokens:
		return OK
	case <-time.After(timeout):
		return Timeout
	}
}

// AddHook exists for API parity with the no-OS backend, where Take
// drives the hook itself while blocked. The threaded backend already
// has a background goroutine (or ISR) posting tokens, so the hook is
// accepted and ignored.
func (s *Semaphore) AddHook(hook RunnerHook) {}

// Release posts a token, or is a silent no-op if the semaphore is
// already at its maximum count — the embedded driver logs this case as
// a warning ("semaphore has been already notified") rather than an
// error, since a redundant NOTIFY edge is expected behavior.
func (s *Semaphore) Release() {
	select {
	case s.tokens <- struct{}{}:
	default:
	}
}

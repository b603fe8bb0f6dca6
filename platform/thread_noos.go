//go:build noos

package platform

// Thread exists only for API symmetry with the threaded backend. The
// no-OS cooperative build never spawns it: every wait polls the
// transport on the caller's own stack instead.
type Thread struct{}

// NewThread panics: cooperative builds drive all progress through
// runner hooks on the caller's own stack, not background threads.
func NewThread(name string, fn func(quit <-chan struct{}), priority int) *Thread {
	panic("platform: NewThread is unavailable in the noos build")
}

// Terminate is a no-op; see NewThread.
func (t *Thread) Terminate() {}

//go:build !noos && !linux

package platform

// lockAndPrioritize does nothing on this platform: it neither pins the
// calling goroutine to its OS thread nor changes its priority. Priority
// elevation is Linux-only; other platforms run the IO thread at the
// default priority.
func lockAndPrioritize(priority int) {
	// runtime.LockOSThread omitted here on purpose: platforms without a
	// priority knob gain nothing from pinning and it would only remove a
	// goroutine from the scheduler's normal load-balancing pool.
	_ = priority
}

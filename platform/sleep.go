package platform

import "time"

// Sleep delays the calling goroutine/call-stack for d. Under the
// threaded backend this simply parks the goroutine; under the no-OS
// backend it still blocks the caller (sleeps used by the core are always
// short settle delays, e.g. the power-save wake gap, never waits that
// need to drive a runner hook).
func Sleep(d time.Duration) {
	time.Sleep(d)
}

// DelayTicks yields briefly, matching the embedded "be cooperative"
// one-tick delay used while retrying an allocation or waiting for a
// thread to observe a quit flag.
func DelayTicks(ticks int) {
	time.Sleep(time.Duration(ticks) * time.Millisecond)
}

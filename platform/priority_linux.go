//go:build !noos && linux

package platform

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// lockAndPrioritize pins the calling goroutine to its current OS thread
// and raises that thread's scheduling priority, the host-process stand-in
// for the RTOS thread-priority argument to Thread.create. Best-effort:
// a permission failure (no CAP_SYS_NICE) is silently ignored, since the
// driver still functions correctly at the default priority.
func lockAndPrioritize(priority int) {
	runtime.LockOSThread()
	if priority == 0 {
		return
	}
	_ = unix.Setpriority(unix.PRIO_PROCESS, 0, -priority)
}

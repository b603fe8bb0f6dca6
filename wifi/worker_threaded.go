//go:build !noos

package wifi

import (
	"time"

	"emw.dev/ipc"
	"emw.dev/platform"
)

// workerHandle owns the two background goroutines the threaded
// backend runs per spec.md §5: the receive thread (drains and
// dispatches the IPC layer) and the IO thread (drives the transport's
// turn logic). Both are platform.Thread instances so they share the
// same create/terminate contract a real RTOS build would use.
type workerHandle struct {
	recv *platform.Thread
	io   *platform.Thread
}

// ioThreadPriority is passed to platform.NewThread for the IO
// goroutine, whose OS thread then runs at nice -5 so SPI turns are not
// starved by the Go scheduler under load; see platform/priority_linux.go.
const ioThreadPriority = 5

func startWorker(c *ipc.Client) workerHandle {
	recv := platform.NewThread("wifi-recv", func(quit <-chan struct{}) {
		c.ReceiveLoop(quit)
	}, 0)
	t := c.Transport()
	io := platform.NewThread("wifi-io", func(quit <-chan struct{}) {
		for {
			select {
			case <-quit:
				return
			default:
			}
			t.ProcessPollingData(500 * time.Millisecond)
		}
	}, ioThreadPriority)
	return workerHandle{recv: recv, io: io}
}

func (w workerHandle) stop() {
	if w.recv != nil {
		w.recv.Terminate()
	}
	if w.io != nil {
		w.io.Terminate()
	}
}

//go:build noos

package wifi

import "emw.dev/ipc"

// workerHandle is empty on the cooperative backend: no background
// goroutines run. Every blocking call drives the transport's turn
// logic itself through the runner hooks ipc.NewClient attaches to the
// rendezvous semaphore and the inbound fifo (spec.md §4.1).
type workerHandle struct{}

func startWorker(c *ipc.Client) workerHandle { return workerHandle{} }

func (workerHandle) stop() {}

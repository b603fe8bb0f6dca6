// Package simulator is an in-process fake Transport, built the way
// this project's engraver driver ships an in-process Simulator for
// its own wire protocol: it answers requests synchronously from Send,
// on the caller's own goroutine, without touching real hardware, and
// queues each response on its inbound fifo. It drives the IPC and wifi package
// tests against canned or scripted module responses.
package simulator

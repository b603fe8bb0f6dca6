package transport

import (
	"time"

	"emw.dev/netbuf"
	"emw.dev/platform"
)

// Transport is the fixed interface the IPC layer is written against.
// Exactly one IO worker owns a Transport at a time.
type Transport interface {
	// Initialize brings up the link (hardware init, handshake lines,
	// module reset) and returns once the module is ready to exchange
	// turns.
	Initialize() error

	// Send stores payload as the pending outbound turn and wakes the
	// IO worker. It returns len(payload) on acceptance or 0 if payload
	// exceeds the transport's per-turn capacity. It does not block for
	// the wire transfer to complete.
	Send(payload []byte) int

	// ProcessPollingData runs one iteration of the IO worker's turn
	// logic, waiting up to timeout for a reason to start a turn (a
	// pending send or an inbound-data signal). The threaded backend
	// calls this in a loop from its own IO goroutine; the no-OS
	// backend calls it as the runner hook attached to Inbound and to
	// the IPC rendezvous semaphore.
	ProcessPollingData(timeout time.Duration)

	// Inbound is the bounded fifo the IO worker delivers received
	// buffers into. The IPC receive path drains it.
	Inbound() *platform.Queue[*netbuf.Buffer]

	// Uninitialize signals the IO worker to quit on its next wake and
	// releases the link. No send may be in flight.
	Uninitialize() error
}

// HardwareResetter is the optional interface a Transport implements
// when the link carries a host-driven RESET line. Initialize performs
// the same reset during bring-up; this entry point exists so callers
// can recover a wedged module without a full reinitialization.
type HardwareResetter interface {
	ResetHardware() error
}

// Status mirrors the platform package's tri-state result for
// transport-level waits (FLOW watchdog, handshake timeouts).
type Status = platform.Status

const (
	OK      = platform.OK
	Timeout = platform.Timeout
	Error   = platform.Error
)

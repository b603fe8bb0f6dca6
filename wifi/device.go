// Package wifi implements the Wi-Fi / socket API surface: typed
// request constructors and response decoders for the command set
// spec.md §6 enumerates, plus the cached device state, scan cache and
// event dispatch wiring spec.md §3–§4.5 describe.
package wifi

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"emw.dev/ipc"
	"emw.dev/netbuf"
	"emw.dev/transport"
)

// Timeouts for the IPC wait, per spec.md §4.5's table.
const (
	defaultTimeout  = 10 * time.Second
	scanTimeout     = 5 * time.Second
	connectTimeout  = 15 * time.Second
	getIPTimeout    = 12 * time.Second
	softApTimeout   = 3 * time.Second
)

// minFirmwareRevision is the lowest firmware string initialize()
// accepts; older firmware is rejected with a fatal assert, per
// spec.md §4.5 and test scenario S2.
const minFirmwareRevision = "V2.3.4"

// Device is a driver instance over one transport. Its lifecycle is
// reference-counted (spec.md §3's "up to two logical interfaces share
// the transport") rather than a package-level singleton: multiple
// Devices may coexist in one process, each owning its own transport,
// which is how this package's tests run independent scenarios without
// global state bleeding between them.
type Device struct {
	transport transport.Transport
	pool      netbuf.Pool

	mu   sync.Mutex
	refs int

	client *ipc.Client
	worker workerHandle // started/stopped by the build-tagged worker backend

	stateMu sync.Mutex
	state   DeviceState
	scan    []ScanResult

	statusCB  [2]StatusCallback
	statusArg [2]any

	fotaCB  FotaCallback
	fotaArg uint32

	netlinkCB  NetlinkInputCallback
	netlinkArg any

	psMu        sync.Mutex
	powerSaveOn bool
}

// FotaCallback is invoked from the receive path when
// SYS_FOTA_STATUS_EVENT arrives.
type FotaCallback func(status FotaStatus, arg uint32)

// NetlinkInputCallback receives bypass-mode inbound Ethernet frames.
// The buffer's reserved prefix already hides the 22-byte bypass
// descriptor; the callback owns freeing buf via Device.FreeBypassFrame.
type NetlinkInputCallback func(buf *netbuf.Buffer, arg any)

// NewDevice creates a Device over t, using pool to size and allocate
// IPC and bypass-mode buffers. Call Initialize before issuing any
// other operation.
func NewDevice(t transport.Transport, pool netbuf.Pool) *Device {
	return &Device{transport: t, pool: pool}
}

// Initialize brings the driver up on first call and increments the
// reference count on subsequent calls, mirroring spec.md §3's
// reference-counted singleton. The first call resets the hardware
// (via transport.Initialize), starts the receive/IO workers, and
// issues SYS_VERSION_CMD and WIFI_GET_MAC_CMD to populate the device
// state cache.
func (d *Device) Initialize(ctx context.Context) (Status, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.refs > 0 {
		d.refs++
		return OK, nil
	}

	if err := d.transport.Initialize(); err != nil {
		return IOError, fmt.Errorf("wifi: transport initialize: %w", err)
	}
	d.client = ipc.NewClient(d.transport, d.pool)
	d.registerEvents()
	d.worker = startWorker(d.client)

	if status, err := d.probeVersion(); status != OK {
		d.worker.stop()
		d.transport.Uninitialize()
		return status, err
	}
	if status := d.probeStationMAC(); status != OK {
		slog.Warn("wifi: initial WIFI_GET_MAC_CMD failed", "status", status)
	}

	d.refs = 1
	return OK, nil
}

func (d *Device) probeVersion() (Status, error) {
	resp := make([]byte, 32)
	n, ipcStatus := d.client.Request(sysVersionCmd, nil, resp, defaultTimeout)
	if status := fromIPC(ipcStatus); status != OK {
		return status, fmt.Errorf("wifi: SYS_VERSION_CMD: %s", status)
	}
	rev := getString(resp[:n])
	d.stateMu.Lock()
	d.state.FirmwareRevision = rev
	d.stateMu.Unlock()
	if rev < minFirmwareRevision {
		panic(fmt.Sprintf("wifi: firmware revision %q below minimum %q", rev, minFirmwareRevision))
	}
	return OK, nil
}

func (d *Device) probeStationMAC() Status {
	resp := make([]byte, 6)
	n, ipcStatus := d.client.Request(wifiGetMacCmd, nil, resp, defaultTimeout)
	if status := fromIPC(ipcStatus); status != OK || n < 6 {
		return fromIPC(ipcStatus)
	}
	d.stateMu.Lock()
	copy(d.state.StationMAC[:], resp[:6])
	d.stateMu.Unlock()
	return OK
}

// Uninitialize decrements the reference count; at zero it stops the
// workers and tears down the transport. No operation may be in flight
// on this Device when the last reference is released.
func (d *Device) Uninitialize() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.refs == 0 {
		return
	}
	d.refs--
	if d.refs > 0 {
		return
	}
	d.worker.stop()
	if err := d.transport.Uninitialize(); err != nil {
		slog.Error("wifi: transport uninitialize", "err", err)
	}
	d.client = nil
}

// State returns a copy of the cached device state.
func (d *Device) State() DeviceState {
	d.stateMu.Lock()
	defer d.stateMu.Unlock()
	return d.state
}

// request issues apiID with body and decodes a 4-byte status prefix
// from the response, returning the full response body (status prefix
// included) for callers that need further fields.
func (d *Device) request(apiID uint16, body []byte, respBuf []byte, timeout time.Duration) (int, Status) {
	n, ipcStatus := d.client.Request(apiID, body, respBuf, timeout)
	if status := fromIPC(ipcStatus); status != OK {
		return 0, status
	}
	return n, statusFromBody(respBuf[:n])
}

// RawRequest exposes the same request/response exchange request uses,
// for sibling packages (wifi/socket, wifi/tls) that share this
// Device's IPC client and buffer pool but define their own command
// sets in the socket/TLS API ranges.
func (d *Device) RawRequest(apiID uint16, body []byte, respBuf []byte, timeout time.Duration) (int, Status) {
	return d.request(apiID, body, respBuf, timeout)
}

// BufferCapacity returns the pool's per-buffer payload capacity, so
// callers (wifi/socket's send/recv splitting) can size IPC bodies
// within it.
func (d *Device) BufferCapacity() int {
	return d.pool.Capacity()
}

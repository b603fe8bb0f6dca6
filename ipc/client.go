package ipc

import (
	"log/slog"
	"sync"
	"time"

	"emw.dev/netbuf"
	"emw.dev/platform"
	"emw.dev/transport"
)

const (
	dummyWakeLen        = 5
	powerSaveWakeGap    = 10 * time.Millisecond
	hookTransportBudget = 50 * time.Millisecond
)

// EventHandler receives a dispatched event's header and its network
// buffer, with the 6-byte IPC header already advanced past. The
// handler owns the buffer; it must eventually call Client.FreeEvent.
type EventHandler func(hdr Header, buf *netbuf.Buffer)

type pendingSlot struct {
	active  bool
	reqID   uint32
	respBuf []byte
	respLen int
}

// Client multiplexes request/response traffic and events over a
// single transport.Transport. At most one request may be outstanding;
// Request enforces this by holding the IPC mutex for its whole
// duration.
type Client struct {
	transport transport.Transport
	pool      netbuf.Pool

	mu         *platform.Mutex
	rendezvous *platform.Semaphore

	slotMu           sync.Mutex
	nextReqID        uint32
	pending          pendingSlot
	powerSaveEnabled bool

	dispatchMu sync.Mutex
	dispatch   map[uint16]EventHandler
}

// NewClient creates a Client over t, using pool to free event buffers
// once dispatched (request/response buffers are freed by Client
// itself as soon as the body is copied out).
func NewClient(t transport.Transport, pool netbuf.Pool) *Client {
	c := &Client{
		transport: t,
		pool:      pool,
		mu:        platform.NewMutex("ipc"),
		rendezvous: platform.NewSemaphore("ipc-rendezvous", 1, 0),
		dispatch:  make(map[uint16]EventHandler),
	}
	c.rendezvous.AddHook(c.pollHook)
	t.Inbound().AddHook(c.pollHook)
	return c
}

// Transport returns the underlying transport, for callers (the wifi
// package's lifecycle code) that need to drive ProcessPollingData
// from a dedicated IO goroutine on the threaded backend.
func (c *Client) Transport() transport.Transport {
	return c.transport
}

// Pool returns the buffer pool backing this client's transport, for
// callers that need to size payloads against its capacity.
func (c *Client) Pool() netbuf.Pool {
	return c.pool
}

// pollHook is attached to both the rendezvous semaphore and the
// transport's inbound fifo. It is the no-OS cooperative scheduler: it
// runs one bounded slice of the transport's turn logic, then drains
// and dispatches whatever that produced.
func (c *Client) pollHook(remaining time.Duration) {
	budget := remaining
	if budget <= 0 || budget > hookTransportBudget {
		budget = hookTransportBudget
	}
	c.transport.ProcessPollingData(budget)
	c.drainAvailable()
}

func (c *Client) drainAvailable() {
	for {
		buf, status := c.transport.Inbound().Get(0)
		if status != platform.OK {
			return
		}
		c.demux(buf)
	}
}

// ReceiveLoop drains the inbound fifo and dispatches until quit
// closes. It is the threaded backend's receive-thread body.
func (c *Client) ReceiveLoop(quit <-chan struct{}) {
	for {
		select {
		case <-quit:
			return
		default:
		}
		buf, status := c.transport.Inbound().Get(500 * time.Millisecond)
		if status != platform.OK {
			continue
		}
		c.demux(buf)
	}
}

func (c *Client) demux(buf *netbuf.Buffer) {
	payload := buf.Payload()
	if len(payload) < HeaderSize {
		slog.Warn("ipc: dropped short inbound frame", "len", len(payload))
		c.pool.Free(buf)
		return
	}
	hdr := DecodeHeader(payload)

	if hdr.IsEvent() {
		c.dispatchMu.Lock()
		h := c.dispatch[hdr.APIID]
		c.dispatchMu.Unlock()
		if h == nil {
			slog.Warn("ipc: dropped event with no registered dispatcher", "api_id", hdr.APIID)
			c.pool.Free(buf)
			return
		}
		buf.Advance(HeaderSize)
		h(hdr, buf)
		return
	}

	c.slotMu.Lock()
	if c.pending.active && c.pending.reqID == hdr.ReqID {
		n := copy(c.pending.respBuf, payload[HeaderSize:])
		c.pending.respLen = n
		c.pending.active = false
		c.slotMu.Unlock()
		c.pool.Free(buf)
		c.rendezvous.Release()
		return
	}
	c.slotMu.Unlock()
	slog.Warn("ipc: dropped response with no matching pending request", "req_id", hdr.ReqID)
	c.pool.Free(buf)
}

// FreeEvent releases an event buffer back to the pool. Event handlers
// call this once they are done reading the frame.
func (c *Client) FreeEvent(buf *netbuf.Buffer) {
	c.pool.Free(buf)
}

// RegisterEvent installs the handler invoked for apiID (event bit
// already set). Re-registering replaces the previous handler.
func (c *Client) RegisterEvent(apiID uint16, h EventHandler) {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()
	c.dispatch[apiID|EventBit] = h
}

// UnregisterEvent removes any handler installed for apiID.
func (c *Client) UnregisterEvent(apiID uint16) {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()
	delete(c.dispatch, apiID|EventBit)
}

// SetPowerSave records whether the module currently has power-save
// enabled, so subsequent Request calls prefix a wake packet.
func (c *Client) SetPowerSave(enabled bool) {
	c.slotMu.Lock()
	defer c.slotMu.Unlock()
	c.powerSaveEnabled = enabled
}

func (c *Client) powerSave() bool {
	c.slotMu.Lock()
	defer c.slotMu.Unlock()
	return c.powerSaveEnabled
}

func (c *Client) allocReqID() uint32 {
	c.slotMu.Lock()
	defer c.slotMu.Unlock()
	if c.nextReqID == NoRequest {
		c.nextReqID++
	}
	id := c.nextReqID
	c.nextReqID++
	return id
}

// Request issues apiID with body, waits up to timeout for the
// matching response, and copies its body into respBuf (truncated to
// len(respBuf)). It returns the number of bytes copied.
//
// Request holds the IPC mutex for its whole duration: spec.md's single
// pending-request-slot invariant is enforced by serializing callers,
// not by rejecting a second concurrent caller.
func (c *Client) Request(apiID uint16, body []byte, respBuf []byte, timeout time.Duration) (int, Status) {
	c.mu.Lock()
	defer c.mu.Unlock()

	reqID := c.allocReqID()

	frame := make([]byte, HeaderSize+len(body))
	var hdrBuf [HeaderSize]byte
	Header{ReqID: reqID, APIID: apiID}.Encode(&hdrBuf)
	copy(frame, hdrBuf[:])
	copy(frame[HeaderSize:], body)

	if c.powerSave() {
		dummy := make([]byte, dummyWakeLen)
		c.transport.Send(dummy)
		platform.Sleep(powerSaveWakeGap)
	}

	c.slotMu.Lock()
	c.pending = pendingSlot{active: true, reqID: reqID, respBuf: respBuf}
	c.slotMu.Unlock()

	if n := c.transport.Send(frame); n != len(frame) {
		panic("ipc: transport.Send failed for an already-validated frame")
	}

	status := c.rendezvous.Take(timeout)
	if status != platform.OK {
		c.slotMu.Lock()
		c.pending.active = false
		c.slotMu.Unlock()
		return 0, Timeout
	}

	c.slotMu.Lock()
	n := c.pending.respLen
	c.slotMu.Unlock()
	return n, OK
}

// FireAndForget sends a command frame without waiting for a response,
// used by bypass mode's outbound frame path.
func (c *Client) FireAndForget(apiID uint16, body []byte) int {
	frame := make([]byte, HeaderSize+len(body))
	var hdrBuf [HeaderSize]byte
	Header{ReqID: NoRequest, APIID: apiID}.Encode(&hdrBuf)
	copy(frame, hdrBuf[:])
	copy(frame[HeaderSize:], body)
	return c.transport.Send(frame)
}

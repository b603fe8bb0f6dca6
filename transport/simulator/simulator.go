package simulator

import (
	"encoding/binary"
	"sync"
	"time"

	"emw.dev/netbuf"
	"emw.dev/platform"
	"emw.dev/transport"
)

// Handler synthesizes a module response body (without the 6-byte IPC
// header) for a command body (also without the header).
type Handler func(reqID uint32, body []byte) []byte

// Frame records one observed host->module send, for test assertions.
// A Send shorter than the 6-byte IPC header (the power-save dummy wake
// burst IPC.Client sends ahead of a framed request) is still recorded,
// with ReqID/APIID left zero and Body holding the raw bytes.
type Frame struct {
	ReqID uint32
	APIID uint16
	Body  []byte
}

// Simulator is an in-process Transport. Send decodes the IPC header
// itself (duplicating the 6-byte wire layout rather than importing
// package ipc, which imports transport) and, unless held, synthesizes
// a response via a registered Handler and enqueues it as if it had
// arrived over the wire.
type Simulator struct {
	pool    netbuf.Pool
	inbound *platform.Queue[*netbuf.Buffer]

	mu       sync.Mutex
	handlers map[uint16]Handler
	hold     bool
	Trace    []Frame
}

// New creates a Simulator backed by pool for its inbound buffers.
func New(pool netbuf.Pool) *Simulator {
	return &Simulator{
		pool:     pool,
		inbound:  platform.NewQueue[*netbuf.Buffer]("sim-rx", 4),
		handlers: make(map[uint16]Handler),
	}
}

// Handle registers the canned responder for apiID. Responses are
// synthesized synchronously from Send, on the caller's own goroutine,
// with the request's api_id bit pattern preserved (handlers return a
// plain command response; Send flips nothing since responses share
// the command's api_id with the event bit clear).
func (s *Simulator) Handle(apiID uint16, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[apiID] = h
}

// HoldFlow stops Send from synthesizing any response, modelling a
// stuck FLOW line from the IPC layer's point of view: the caller's
// own per-command timeout is what eventually returns control, exactly
// as it would if the real transport's FLOW watchdog never released.
func (s *Simulator) HoldFlow(hold bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hold = hold
}

// EmitEvent pushes an unsolicited event frame (high bit of apiID set)
// into the inbound fifo, independent of any in-flight request.
func (s *Simulator) EmitEvent(apiID uint16, body []byte) {
	frame := make([]byte, 6+len(body))
	binary.LittleEndian.PutUint32(frame[0:4], 0xFFFFFFFF)
	binary.LittleEndian.PutUint16(frame[4:6], apiID|0x8000)
	copy(frame[6:], body)
	s.push(frame)
}

func (s *Simulator) push(frame []byte) {
	buf := s.pool.Alloc()
	if buf == nil {
		panic("simulator: inbound pool exhausted")
	}
	buf.SetSize(len(frame))
	copy(buf.Raw(), frame)
	if status := s.inbound.Put(buf, time.Second); status != platform.OK {
		panic("simulator: inbound fifo push failed")
	}
}

// Initialize implements transport.Transport.
func (s *Simulator) Initialize() error { return nil }

// Uninitialize implements transport.Transport.
func (s *Simulator) Uninitialize() error { return nil }

// Inbound implements transport.Transport.
func (s *Simulator) Inbound() *platform.Queue[*netbuf.Buffer] {
	return s.inbound
}

// ProcessPollingData implements transport.Transport. The simulator
// answers synchronously from Send, so the runner hook has nothing to
// drive; it only needs to yield briefly so a no-OS-style blocked
// caller doesn't busy-spin.
func (s *Simulator) ProcessPollingData(timeout time.Duration) {
	d := 5 * time.Millisecond
	if timeout >= 0 && timeout < d {
		d = timeout
	}
	platform.Sleep(d)
}

// Send implements transport.Transport. Payloads shorter than the
// 6-byte IPC header (spec.md §4.4's power-save dummy wake burst) are
// recorded into Trace verbatim and accepted, with no header decode and
// no handler lookup — there is no req_id/api_id to demux.
func (s *Simulator) Send(payload []byte) int {
	if len(payload) < 6 {
		s.mu.Lock()
		s.Trace = append(s.Trace, Frame{Body: append([]byte(nil), payload...)})
		s.mu.Unlock()
		return len(payload)
	}
	reqID := binary.LittleEndian.Uint32(payload[0:4])
	apiID := binary.LittleEndian.Uint16(payload[4:6])
	body := append([]byte(nil), payload[6:]...)

	s.mu.Lock()
	s.Trace = append(s.Trace, Frame{ReqID: reqID, APIID: apiID, Body: body})
	handler := s.handlers[apiID]
	held := s.hold
	s.mu.Unlock()

	if held || handler == nil {
		return len(payload)
	}

	respBody := handler(reqID, body)
	frame := make([]byte, 6+len(respBody))
	binary.LittleEndian.PutUint32(frame[0:4], reqID)
	binary.LittleEndian.PutUint16(frame[4:6], apiID)
	copy(frame[6:], respBody)
	s.push(frame)
	return len(payload)
}

var _ transport.Transport = (*Simulator)(nil)

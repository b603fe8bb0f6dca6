package uartshim

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/tarm/serial"

	"emw.dev/netbuf"
	"emw.dev/platform"
	"emw.dev/transport"
)

const (
	maxTxLen      = 2500
	lengthPrefix  = 2
	pollInterval  = 20 * time.Millisecond
	allocRetryGap = 1 * time.Millisecond
)

// Config names the serial device and line rate.
type Config struct {
	Name string
	Baud int
}

// Transport drives the module over a UART. Like spi.Transport it owns
// no background IO loop; ProcessPollingData is the turn logic.
type Transport struct {
	port *serial.Port

	pool    netbuf.Pool
	inbound *platform.Queue[*netbuf.Buffer]

	txMu      *platform.Mutex
	pendingTx []byte
	wake      *platform.Semaphore

	warnedExhausted bool
}

// Open opens the serial device described by cfg.
func Open(cfg Config, pool netbuf.Pool) (*Transport, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Name,
		Baud:        cfg.Baud,
		ReadTimeout: pollInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("uartshim: %w", err)
	}
	return &Transport{
		port:    port,
		pool:    pool,
		inbound: platform.NewQueue[*netbuf.Buffer]("uart-rx", 4),
		txMu:    platform.NewMutex("uart-tx"),
		wake:    platform.NewSemaphore("uart-wake", 1, 0),
	}, nil
}

// Initialize implements transport.Transport. The UART link needs no
// reset sequencing of its own; the module is assumed already running.
func (t *Transport) Initialize() error {
	return nil
}

// Send implements transport.Transport.
func (t *Transport) Send(payload []byte) int {
	if len(payload) > maxTxLen {
		return 0
	}
	t.txMu.Lock()
	t.pendingTx = payload
	t.txMu.Unlock()
	t.wake.Release()
	return len(payload)
}

// Inbound implements transport.Transport.
func (t *Transport) Inbound() *platform.Queue[*netbuf.Buffer] {
	return t.inbound
}

// Uninitialize implements transport.Transport.
func (t *Transport) Uninitialize() error {
	return t.port.Close()
}

// ProcessPollingData implements transport.Transport. It waits up to
// timeout for a Send to wake it, writes the pending tx frame, then
// makes one read attempt for an inbound frame, bounded by the port's
// read timeout (pollInterval). If no Send wakes it, no read is
// attempted.
func (t *Transport) ProcessPollingData(timeout time.Duration) {
	if t.wake.Take(timeout) != platform.OK {
		return
	}

	t.txMu.Lock()
	tx := t.pendingTx
	t.pendingTx = nil
	t.txMu.Unlock()

	if tx != nil {
		var hdr [lengthPrefix]byte
		binary.LittleEndian.PutUint16(hdr[:], uint16(len(tx)))
		if _, err := t.port.Write(hdr[:]); err != nil {
			slog.Error("uartshim: write header", "err", err)
			return
		}
		if _, err := t.port.Write(tx); err != nil {
			slog.Error("uartshim: write payload", "err", err)
			return
		}
	}

	t.pollInbound()
}

func (t *Transport) pollInbound() {
	var hdr [lengthPrefix]byte
	n, err := io.ReadFull(t.port, hdr[:])
	if err != nil || n < lengthPrefix {
		return // timeout with no frame pending; normal.
	}
	length := int(binary.LittleEndian.Uint16(hdr[:]))
	if length > t.pool.Capacity() {
		slog.Error("uartshim: inbound frame exceeds rx buffer capacity", "len", length)
		return
	}
	buf := t.allocWithBackoff()
	if length > 0 {
		if _, err := io.ReadFull(t.port, buf.Raw()[:length]); err != nil {
			slog.Error("uartshim: read payload", "err", err)
			t.pool.Free(buf)
			return
		}
	}
	buf.SetSize(length)
	if status := t.inbound.Put(buf, 0); status != platform.OK {
		panic("uartshim: inbound fifo push failed for an already-allocated buffer")
	}
}

func (t *Transport) allocWithBackoff() *netbuf.Buffer {
	for {
		if b := t.pool.Alloc(); b != nil {
			return b
		}
		if !t.warnedExhausted {
			t.warnedExhausted = true
			slog.Warn("uartshim: rx buffer pool exhausted, retrying")
		}
		platform.DelayTicks(1)
	}
}

var _ transport.Transport = (*Transport)(nil)

package spi

import (
	"fmt"
	"log/slog"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"emw.dev/netbuf"
	"emw.dev/platform"
	"emw.dev/transport"
)

const (
	flowWatchdog  = 2 * time.Second
	resetLow      = 100 * time.Millisecond
	resetSettle   = 1200 * time.Millisecond
	maxTxLen      = 2500
	allocRetryGap = 1 * time.Millisecond
)

// outPin is the subset of gpio.PinIO the NSS and RESET lines need: a
// host-driven output. Narrowing the field type to just what this
// package calls (rather than the full gpio.PinIO) lets tests exercise
// the turn state machine against small fakes instead of real hardware.
type outPin interface {
	Out(l gpio.Level) error
}

// edgePin is the subset of gpio.PinIO the FLOW and NOTIFY lines need:
// configure as a rising-edge input, then block for the next edge.
type edgePin interface {
	In(pull gpio.Pull, edge gpio.Edge) error
	WaitForEdge(timeout time.Duration) bool
}

// Transport drives the module over SPI. It does not run its own IO
// loop: ProcessPollingData is the turn logic, called either from the
// threaded backend's IO goroutine or as the no-OS runner hook.
type Transport struct {
	conn spi.Conn
	port spi.PortCloser

	nss    outPin
	flow   edgePin
	notify edgePin
	reset  outPin

	pool    netbuf.Pool
	inbound *platform.Queue[*netbuf.Buffer]

	txMu      *platform.Mutex
	pendingTx []byte
	wake      *platform.Semaphore

	notifyPending chan struct{}
	edgeQuit      chan struct{}

	warnedExhausted bool
}

// Open resolves the SPI port and the four handshake GPIOs by name and
// returns a Transport ready for Initialize.
func Open(cfg Config, pool netbuf.Pool) (*Transport, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("spi: %w", err)
	}
	port, err := spireg.Open(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("spi: %w", err)
	}
	speed := cfg.MaxSpeed
	if speed == 0 {
		speed = defaultSpeed
	}
	conn, err := port.Connect(speed, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("spi: %w", err)
	}

	resolve := func(name string) (gpio.PinIO, error) {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("spi: no such gpio %q", name)
		}
		return p, nil
	}
	nss, err := resolve(cfg.NSS)
	if err != nil {
		port.Close()
		return nil, err
	}
	flow, err := resolve(cfg.FLOW)
	if err != nil {
		port.Close()
		return nil, err
	}
	notify, err := resolve(cfg.NOTIFY)
	if err != nil {
		port.Close()
		return nil, err
	}
	reset, err := resolve(cfg.RESET)
	if err != nil {
		port.Close()
		return nil, err
	}

	t := &Transport{
		conn:          conn,
		port:          port,
		nss:           nss,
		flow:          flow,
		notify:        notify,
		reset:         reset,
		pool:          pool,
		inbound:       platform.NewQueue[*netbuf.Buffer]("spi-rx", 4),
		txMu:          platform.NewMutex("spi-tx"),
		wake:          platform.NewSemaphore("spi-wake", 1, 0),
		notifyPending: make(chan struct{}, 1),
		edgeQuit:      make(chan struct{}),
	}
	return t, nil
}

// Initialize resets the module and arms the FLOW/NOTIFY edge watchers.
// The watchers are the host-process stand-in for the ISR handlers
// spec.md §5 assigns to FLOW-rise and NOTIFY-rise: real interrupt
// lines exist regardless of the RTOS/no-OS choice, so both backends
// run them the same way.
func (t *Transport) Initialize() error {
	if err := t.nss.Out(gpio.High); err != nil {
		return fmt.Errorf("spi: nss: %w", err)
	}
	if err := t.ResetHardware(); err != nil {
		return err
	}
	if err := t.flow.In(gpio.PullDown, gpio.RisingEdge); err != nil {
		return fmt.Errorf("spi: flow: %w", err)
	}
	if err := t.notify.In(gpio.PullDown, gpio.RisingEdge); err != nil {
		return fmt.Errorf("spi: notify: %w", err)
	}
	go t.watchNotify()
	return nil
}

// ResetHardware drives RESET low for the module's minimum low window,
// then high, then holds off for the settle delay. Implements
// transport.HardwareResetter.
func (t *Transport) ResetHardware() error {
	if err := t.reset.Out(gpio.Low); err != nil {
		return fmt.Errorf("spi: reset: %w", err)
	}
	platform.Sleep(resetLow)
	if err := t.reset.Out(gpio.High); err != nil {
		return fmt.Errorf("spi: reset: %w", err)
	}
	platform.Sleep(resetSettle)
	return nil
}

// watchNotify mirrors the NOTIFY-rising ISR: it releases the wake
// semaphore so a turn starts with zero host payload.
func (t *Transport) watchNotify() {
	for {
		if !t.notify.WaitForEdge(-1) {
			select {
			case <-t.edgeQuit:
				return
			default:
				continue
			}
		}
		select {
		case <-t.edgeQuit:
			return
		default:
		}
		select {
		case t.notifyPending <- struct{}{}:
		default:
		}
		t.wake.Release()
	}
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
	close(t.edgeQuit)
	return t.port.Close()
}

// ProcessPollingData runs one turn of the IO worker.
func (t *Transport) ProcessPollingData(timeout time.Duration) {
	if t.wake.Take(timeout) != platform.OK {
		return
	}

	t.txMu.Lock()
	defer t.txMu.Unlock()

	tx := t.pendingTx
	notified := false
	select {
	case <-t.notifyPending:
		notified = true
	default:
	}
	if tx == nil && !notified {
		t.nss.Out(gpio.High)
		return
	}

	if err := t.nss.Out(gpio.Low); err != nil {
		slog.Error("spi: nss low", "err", err)
		return
	}
	defer t.nss.Out(gpio.High)

	if !t.flow.WaitForEdge(flowWatchdog) {
		slog.Warn("spi: FLOW watchdog expired awaiting header phase")
		return
	}

	var txHdr, rxHdr [transport.SPIHeaderSize]byte
	transport.NewSPIHeader(uint16(len(tx))).Encode(&txHdr)
	if err := t.conn.Tx(txHdr[:], rxHdr[:]); err != nil {
		slog.Error("spi: header exchange", "err", err)
		return
	}
	modHdr, err := transport.DecodeSPIHeader(rxHdr)
	if err != nil {
		slog.Error("spi: invalid module header", "err", err)
		return
	}
	if int(modHdr.Len) > t.pool.Capacity() {
		slog.Error("spi: module turn length exceeds rx buffer capacity", "len", modHdr.Len)
		return
	}

	var rxBuf *netbuf.Buffer
	if modHdr.Len > 0 {
		rxBuf = t.allocWithBackoff()
	}

	if !t.flow.WaitForEdge(flowWatchdog) {
		slog.Warn("spi: FLOW watchdog expired awaiting data phase")
		if rxBuf != nil {
			t.pool.Free(rxBuf)
		}
		return
	}

	exchangeLen := len(tx)
	if int(modHdr.Len) > exchangeLen {
		exchangeLen = int(modHdr.Len)
	}
	if exchangeLen > 0 {
		txData := make([]byte, exchangeLen)
		copy(txData, tx)
		var rxData []byte
		if rxBuf != nil {
			rxBuf.SetSize(exchangeLen)
			rxData = rxBuf.Raw()[:exchangeLen]
		} else {
			rxData = make([]byte, exchangeLen)
		}
		if err := t.conn.Tx(txData, rxData); err != nil {
			slog.Error("spi: data exchange", "err", err)
			if rxBuf != nil {
				t.pool.Free(rxBuf)
			}
			return
		}
	}

	t.pendingTx = nil

	if rxBuf != nil && modHdr.Len > 0 {
		rxBuf.SetSize(int(modHdr.Len))
		if status := t.inbound.Put(rxBuf, 0); status != platform.OK {
			panic("spi: inbound fifo push failed for an already-allocated buffer")
		}
	}
}

// allocWithBackoff retries buffer allocation with a one-tick
// cooperative delay, emitting a one-shot warning the first time the
// pool is exhausted.
func (t *Transport) allocWithBackoff() *netbuf.Buffer {
	for {
		if b := t.pool.Alloc(); b != nil {
			return b
		}
		if !t.warnedExhausted {
			t.warnedExhausted = true
			slog.Warn("spi: rx buffer pool exhausted, retrying")
		}
		platform.DelayTicks(1)
	}
}

var (
	_ transport.Transport        = (*Transport)(nil)
	_ transport.HardwareResetter = (*Transport)(nil)
)

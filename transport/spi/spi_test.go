package spi

import (
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"

	"emw.dev/netbuf"
	"emw.dev/platform"
)

// fakeOutPin records every level driven onto it, for asserting NSS
// returns high once a turn aborts.
type fakeOutPin struct {
	levels []gpio.Level
}

func (p *fakeOutPin) Out(l gpio.Level) error {
	p.levels = append(p.levels, l)
	return nil
}

// fakeEdgePin is an edgePin that never sees an edge: WaitForEdge blocks
// for the full timeout and reports false, modelling a FLOW line the
// module never raises.
type fakeEdgePin struct{}

func (fakeEdgePin) In(gpio.Pull, gpio.Edge) error { return nil }

func (fakeEdgePin) WaitForEdge(timeout time.Duration) bool {
	if timeout > 0 {
		time.Sleep(timeout)
	}
	return false
}

// TestFlowWatchdogAbortsTurn is scenario S6 (spec.md §8): holding FLOW
// low throughout a turn makes the IO worker abort after the 2s
// watchdog, return NSS high, and enqueue nothing.
func TestFlowWatchdogAbortsTurn(t *testing.T) {
	nss := &fakeOutPin{}
	tr := &Transport{
		nss:           nss,
		flow:          fakeEdgePin{},
		notify:        fakeEdgePin{},
		pool:          netbuf.NewDefaultPool(4, 64),
		inbound:       platform.NewQueue[*netbuf.Buffer]("spi-rx-test", 4),
		txMu:          platform.NewMutex("spi-tx-test"),
		wake:          platform.NewSemaphore("spi-wake-test", 1, 0),
		notifyPending: make(chan struct{}, 1),
		edgeQuit:      make(chan struct{}),
	}

	tr.Send([]byte("hello"))

	start := time.Now()
	tr.ProcessPollingData(flowWatchdog + time.Second)
	elapsed := time.Since(start)

	if elapsed < flowWatchdog || elapsed > flowWatchdog+500*time.Millisecond {
		t.Fatalf("turn aborted after %v, want %v ± 500ms", elapsed, flowWatchdog)
	}
	if _, status := tr.inbound.Get(10 * time.Millisecond); status != platform.Timeout {
		t.Fatalf("expected no buffer enqueued, got status %v", status)
	}
	if len(nss.levels) == 0 || nss.levels[len(nss.levels)-1] != gpio.High {
		t.Fatalf("final NSS level = %v, want High", nss.levels)
	}
}

package simulator

import (
	"encoding/binary"
	"testing"
	"time"

	"emw.dev/netbuf"
	"emw.dev/platform"
)

func ipcFrame(reqID uint32, apiID uint16, body []byte) []byte {
	f := make([]byte, 6+len(body))
	binary.LittleEndian.PutUint32(f[0:4], reqID)
	binary.LittleEndian.PutUint16(f[4:6], apiID)
	copy(f[6:], body)
	return f
}

func TestSendAndHandleRoundTrip(t *testing.T) {
	sim := New(netbuf.NewDefaultPool(4, 64))
	sim.Handle(0x0001, func(reqID uint32, body []byte) []byte {
		return []byte("pong")
	})

	n := sim.Send(ipcFrame(7, 0x0001, []byte("ping")))
	if n == 0 {
		t.Fatal("Send rejected")
	}

	buf, status := sim.Inbound().Get(time.Second)
	if status != platform.OK {
		t.Fatalf("Inbound().Get status = %v", status)
	}
	payload := buf.Payload()
	gotReqID := binary.LittleEndian.Uint32(payload[0:4])
	gotAPIID := binary.LittleEndian.Uint16(payload[4:6])
	if gotReqID != 7 || gotAPIID != 0x0001 {
		t.Fatalf("got reqID=%d apiID=%#x, want 7/0x1", gotReqID, gotAPIID)
	}
	if string(payload[6:]) != "pong" {
		t.Fatalf("body = %q, want pong", payload[6:])
	}
}

func TestHoldFlowSuppressesResponse(t *testing.T) {
	sim := New(netbuf.NewDefaultPool(4, 64))
	sim.Handle(0x0002, func(reqID uint32, body []byte) []byte { return []byte("x") })
	sim.HoldFlow(true)

	sim.Send(ipcFrame(1, 0x0002, nil))
	if _, status := sim.Inbound().Get(50 * time.Millisecond); status != platform.Timeout {
		t.Fatalf("expected Timeout with FLOW held, got %v", status)
	}
}

func TestEmitEventIndependentOfRequest(t *testing.T) {
	sim := New(netbuf.NewDefaultPool(4, 64))
	sim.EmitEvent(0x0101, []byte{1, 2})

	buf, status := sim.Inbound().Get(time.Second)
	if status != platform.OK {
		t.Fatalf("Inbound().Get status = %v", status)
	}
	apiID := binary.LittleEndian.Uint16(buf.Payload()[4:6])
	if apiID != 0x0101|0x8000 {
		t.Fatalf("apiID = %#x, want event bit set", apiID)
	}
}

package wifi

import (
	"context"
	"testing"
	"time"

	"emw.dev/netbuf"
	"emw.dev/transport/simulator"
)

func newTestDevice(t *testing.T) (*Device, *simulator.Simulator) {
	t.Helper()
	pool := netbuf.NewDefaultPool(8, 512)
	sim := simulator.New(pool)
	sim.Handle(sysVersionCmd, func(reqID uint32, body []byte) []byte {
		return []byte("V2.3.4\x00")
	})
	sim.Handle(wifiGetMacCmd, func(reqID uint32, body []byte) []byte {
		return []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	})
	return NewDevice(sim, pool), sim
}

// TestVersionProbe is scenario S1: initialize issues SYS_VERSION_CMD
// then WIFI_GET_MAC_CMD and populates the cached station MAC from the
// canned responses.
func TestVersionProbe(t *testing.T) {
	dev, sim := newTestDevice(t)
	status, err := dev.Initialize(context.Background())
	if status != OK {
		t.Fatalf("initialize: %v (%v)", status, err)
	}
	defer dev.Uninitialize()

	if len(sim.Trace) < 2 {
		t.Fatalf("trace has %d frames, want >= 2", len(sim.Trace))
	}
	if sim.Trace[0].APIID != sysVersionCmd || sim.Trace[1].APIID != wifiGetMacCmd {
		t.Fatalf("trace = %+v, want version then mac", sim.Trace[:2])
	}

	want := [6]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	if got := dev.State().StationMAC; got != want {
		t.Fatalf("station mac = %x, want %x", got, want)
	}
}

// TestVersionTooOld is scenario S2: firmware below minFirmwareRevision
// must abort initialization via panic rather than silently proceeding.
func TestVersionTooOld(t *testing.T) {
	pool := netbuf.NewDefaultPool(8, 512)
	sim := simulator.New(pool)
	sim.Handle(sysVersionCmd, func(reqID uint32, body []byte) []byte {
		return []byte("V2.3.3\x00")
	})
	dev := NewDevice(sim, pool)

	defer func() {
		if recover() == nil {
			t.Fatal("initialize with stale firmware did not panic")
		}
	}()
	dev.Initialize(context.Background())
}

// TestScanRoundTrip is scenario S3.
func TestScanRoundTrip(t *testing.T) {
	dev, sim := newTestDevice(t)
	if status, err := dev.Initialize(context.Background()); status != OK {
		t.Fatalf("initialize: %v (%v)", status, err)
	}
	defer dev.Uninitialize()

	sim.Handle(wifiScanCmd, func(reqID uint32, body []byte) []byte {
		resp := make([]byte, 1+2*apInfoSize)
		resp[0] = 2
		rec := func(off int, rssi int32, ssid string, bssid [6]byte, channel int32, security uint8) {
			r := resp[off : off+apInfoSize]
			putInt32(r[0:4], rssi)
			putString(r[4:4+maxSSIDLen+1], ssid)
			copy(r[4+maxSSIDLen+1:4+maxSSIDLen+1+6], bssid[:])
			putInt32(r[4+maxSSIDLen+1+6:4+maxSSIDLen+1+6+4], channel)
			r[4+maxSSIDLen+1+6+4] = security
		}
		rec(1, -40, "net-a", [6]byte{1, 2, 3, 4, 5, 6}, 6, 4)
		rec(1+apInfoSize, -72, "net-b", [6]byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66}, 11, 7)
		return resp
	})

	if status := dev.Scan(context.Background(), ScanPassive, ""); status != OK {
		t.Fatalf("scan: %v", status)
	}

	results := make([]ScanResult, 10)
	n := dev.GetScanResults(results, 10)
	if n != 2 {
		t.Fatalf("got %d scan results, want 2", n)
	}
	if results[0].SSID != "net-a" || results[0].Channel != 6 || results[0].RSSI != -40 || results[0].Security != 4 {
		t.Fatalf("result[0] = %+v", results[0])
	}
	if results[1].SSID != "net-b" || results[1].Channel != 11 || results[1].RSSI != -72 || results[1].Security != 7 {
		t.Fatalf("result[1] = %+v", results[1])
	}
}

// TestEventDuringInFlightRequest is scenario S5: a WIFI_STATUS_EVENT
// arriving while a scan request is outstanding must still reach the
// registered callback exactly once, and the scan must complete
// normally.
func TestEventDuringInFlightRequest(t *testing.T) {
	dev, sim := newTestDevice(t)
	if status, err := dev.Initialize(context.Background()); status != OK {
		t.Fatalf("initialize: %v (%v)", status, err)
	}
	defer dev.Uninitialize()

	fired := make(chan struct{}, 2)
	dev.RegisterStatusCallback(InterfaceStation, func(iface Interface, event Event, arg any) {
		fired <- struct{}{}
	}, nil)

	sim.Handle(wifiScanCmd, func(reqID uint32, body []byte) []byte {
		// EmitEvent sets the high bit itself; pass the bare command id.
		sim.EmitEvent(wifiStatusEvent&0x7FFF, []byte{byte(InterfaceStation), byte(EventStationGotIP)})
		return make([]byte, 1) // empty scan: numberOf = 0
	})

	if status := dev.Scan(context.Background(), ScanPassive, ""); status != OK {
		t.Fatalf("scan: %v", status)
	}

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("status callback did not fire")
	}
	select {
	case <-fired:
		t.Fatal("status callback fired more than once")
	case <-time.After(50 * time.Millisecond):
	}
}

// TestEchoRoundTrip exercises the SYS_ECHO_CMD loopback: the body
// comes back verbatim minus the 6-byte header, and a corrupted
// loopback is reported as an error rather than silently accepted.
func TestEchoRoundTrip(t *testing.T) {
	dev, sim := newTestDevice(t)
	if status, err := dev.Initialize(context.Background()); status != OK {
		t.Fatalf("initialize: %v (%v)", status, err)
	}
	defer dev.Uninitialize()

	sim.Handle(sysEchoCmd, func(reqID uint32, body []byte) []byte {
		return body
	})
	if status := dev.Echo(context.Background(), []byte("ping-pong")); status != OK {
		t.Fatalf("echo: %v", status)
	}

	sim.Handle(sysEchoCmd, func(reqID uint32, body []byte) []byte {
		return []byte("corrupt")
	})
	if status := dev.Echo(context.Background(), []byte("ping-pong")); status != Error {
		t.Fatalf("corrupted echo = %v, want Error", status)
	}
}

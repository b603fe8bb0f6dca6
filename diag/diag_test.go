package diag

import (
	"context"
	"testing"

	"github.com/fxamacker/cbor/v2"

	"emw.dev/netbuf"
	"emw.dev/transport/simulator"
	"emw.dev/wifi"
)

func newTestDevice(t *testing.T) *wifi.Device {
	t.Helper()
	pool := netbuf.NewDefaultPool(4, netbuf.FixedCapacity)
	sim := simulator.New(pool)
	sim.Handle(0x0003, func(reqID uint32, body []byte) []byte { // SYS_VERSION_CMD
		return []byte("V2.3.4\x00")
	})
	sim.Handle(0x0101, func(reqID uint32, body []byte) []byte { // WIFI_GET_MAC_CMD
		return []byte{1, 2, 3, 4, 5, 6}
	})
	dev := wifi.NewDevice(sim, pool)
	if status, err := dev.Initialize(context.Background()); status != wifi.OK {
		t.Fatalf("initialize: %v (%v)", status, err)
	}
	return dev
}

func TestDumpRoundTrips(t *testing.T) {
	dev := newTestDevice(t)
	defer dev.Uninitialize()

	b, err := Dump(dev)
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}

	var snap Snapshot
	if err := cbor.Unmarshal(b, &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if snap.FirmwareRevision != "V2.3.4" {
		t.Fatalf("firmware revision = %q, want V2.3.4", snap.FirmwareRevision)
	}
	if len(snap.StationMAC) != 6 {
		t.Fatalf("station mac len = %d, want 6", len(snap.StationMAC))
	}
}

package tls

import (
	"context"
	"testing"

	"emw.dev/netaddr"
	"emw.dev/netbuf"
	"emw.dev/transport/simulator"
	"emw.dev/wifi"
)

func newTestDevice(t *testing.T) (*wifi.Device, *simulator.Simulator) {
	t.Helper()
	pool := netbuf.NewDefaultPool(8, 512)
	sim := simulator.New(pool)
	sim.Handle(0x0003, func(reqID uint32, body []byte) []byte { return []byte("V2.3.4\x00") })
	sim.Handle(0x0101, func(reqID uint32, body []byte) []byte { return make([]byte, 6) })
	dev := wifi.NewDevice(sim, pool)
	if status, err := dev.Initialize(context.Background()); status != wifi.OK {
		t.Fatalf("initialize: %v (%v)", status, err)
	}
	t.Cleanup(dev.Uninitialize)
	return dev, sim
}

func TestConnectSendReceiveClose(t *testing.T) {
	dev, sim := newTestDevice(t)
	ctx := context.Background()

	sim.Handle(cmdSetVersion, func(reqID uint32, body []byte) []byte { return make([]byte, 4) })
	if status := SetVersion(ctx, dev, VersionTLS1_2); status != wifi.OK {
		t.Fatalf("set version: %v", status)
	}

	sim.Handle(cmdConnect, func(reqID uint32, body []byte) []byte {
		resp := make([]byte, 8)
		putInt32(resp[4:8], 3)
		return resp
	})
	addr := netaddr.SockAddrIn{Port: 443, Addr: [4]byte{93, 184, 216, 34}}.Storage()
	sess, status := Connect(ctx, dev, socketDomainInet, socketTypeStream, 0, addr, []byte("-----BEGIN CERTIFICATE-----"))
	if status != wifi.OK {
		t.Fatalf("connect: %v", status)
	}

	sim.Handle(cmdSend, func(reqID uint32, body []byte) []byte {
		resp := make([]byte, 8)
		putInt32(resp[4:8], getInt32(body[4:8]))
		return resp
	})
	n, status := sess.Send(ctx, []byte("hello"))
	if status != wifi.OK || n != 5 {
		t.Fatalf("send = (%d, %v)", n, status)
	}

	sim.Handle(cmdReceive, func(reqID uint32, body []byte) []byte {
		data := []byte("world")
		resp := make([]byte, 8+len(data))
		putInt32(resp[4:8], int32(len(data)))
		copy(resp[8:], data)
		return resp
	})
	buf := make([]byte, 16)
	got, status := sess.Receive(ctx, buf)
	if status != wifi.OK || string(buf[:got]) != "world" {
		t.Fatalf("receive = (%q, %v)", buf[:got], status)
	}

	sim.Handle(cmdClose, func(reqID uint32, body []byte) []byte { return make([]byte, 4) })
	if status := sess.Close(ctx); status != wifi.OK {
		t.Fatalf("close: %v", status)
	}
}

const (
	socketDomainInet = netaddr.FamilyInet
	socketTypeStream = 1
)

package socket

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

func TestCreateConnectSendRecvClose(t *testing.T) {
	dev, sim := newTestDevice(t)
	ctx := context.Background()

	sim.Handle(cmdCreate, func(reqID uint32, body []byte) []byte {
		resp := make([]byte, 8)
		putInt32(resp[4:8], 7)
		return resp
	})
	sock, status := Create(ctx, dev, DomainInet, TypeStream, 0)
	if status != wifi.OK {
		t.Fatalf("create: %v", status)
	}
	if sock.fd != 7 {
		t.Fatalf("fd = %d, want 7", sock.fd)
	}

	sim.Handle(cmdConnect, func(reqID uint32, body []byte) []byte { return make([]byte, 4) })
	addr := netaddr.SockAddrIn{Port: 80, Addr: [4]byte{93, 184, 216, 34}}.Storage()
	if status := sock.Connect(ctx, addr); status != wifi.OK {
		t.Fatalf("connect: %v", status)
	}

	sim.Handle(cmdSend, func(reqID uint32, body []byte) []byte {
		resp := make([]byte, 8)
		n := getInt32(body[4:8])
		putInt32(resp[4:8], n)
		return resp
	})
	payload := []byte("GET / HTTP/1.0\r\n\r\n")
	n, status := sock.Send(ctx, payload, 0)
	if status != wifi.OK || n != len(payload) {
		t.Fatalf("send = (%d, %v), want (%d, OK)", n, status, len(payload))
	}

	sim.Handle(cmdRecv, func(reqID uint32, body []byte) []byte {
		want := getInt32(body[4:8])
		data := []byte("HTTP/1.0 200 OK\r\n\r\n")
		if int32(len(data)) > want {
			data = data[:want]
		}
		resp := make([]byte, 8+len(data))
		putInt32(resp[4:8], int32(len(data)))
		copy(resp[8:], data)
		return resp
	})
	buf := make([]byte, 64)
	got, status := sock.Recv(ctx, buf, 0)
	if status != wifi.OK {
		t.Fatalf("recv: %v", status)
	}
	if string(buf[:got]) != "HTTP/1.0 200 OK\r\n\r\n" {
		t.Fatalf("recv body = %q", buf[:got])
	}

	sim.Handle(cmdClose, func(reqID uint32, body []byte) []byte { return make([]byte, 4) })
	if status := sock.Close(ctx); status != wifi.OK {
		t.Fatalf("close: %v", status)
	}
}

func TestGetHostByName(t *testing.T) {
	dev, sim := newTestDevice(t)
	ctx := context.Background()

	sim.Handle(cmdGetHostByName, func(reqID uint32, body []byte) []byte {
		addr := netaddr.SockAddrIn{Port: 0, Addr: [4]byte{93, 184, 216, 34}}
		st := addr.Storage()
		resp := make([]byte, 4+netaddr.StorageSize)
		var enc [netaddr.StorageSize]byte
		st.Encode(&enc)
		copy(resp[4:], enc[:])
		return resp
	})

	addr, status := GetHostByName(ctx, dev, "example.com")
	if status != wifi.OK {
		t.Fatalf("gethostbyname: %v", status)
	}
	if addr.Addr != [4]byte{93, 184, 216, 34} {
		t.Fatalf("addr = %v", addr.Addr)
	}
}

package wifi

import (
	"context"

	"emw.dev/netaddr"
)

const pingTimeout = defaultTimeout

// Ping issues WIFI_PING_CMD against an IPv4 target and returns the
// module-reported round-trip time in milliseconds.
func (d *Device) Ping(ctx context.Context, target [4]byte, count uint8, timeoutMs uint32) (int32, Status) {
	body := make([]byte, 4+1+4)
	copy(body[0:4], target[:])
	body[4] = count
	putUint32(body[5:9], timeoutMs)

	resp := make([]byte, 4+4)
	n, status := d.request(wifiPingCmd, body, resp, pingTimeout)
	if status != OK {
		return 0, status
	}
	return getInt32(resp[4:n]), OK
}

// Ping6 issues WIFI_PING6_CMD against an IPv6 target.
func (d *Device) Ping6(ctx context.Context, target [16]byte, count uint8, timeoutMs uint32) (int32, Status) {
	body := make([]byte, 16+1+4)
	copy(body[0:16], target[:])
	body[16] = count
	putUint32(body[17:21], timeoutMs)

	resp := make([]byte, 4+4)
	n, status := d.request(wifiPing6Cmd, body, resp, pingTimeout)
	if status != OK {
		return 0, status
	}
	return getInt32(resp[4:n]), OK
}

// PingASCII parses an ASCII dotted-decimal address and pings it,
// convenience wrapper over Ping using netaddr's parser.
func (d *Device) PingASCII(ctx context.Context, target string, count uint8, timeoutMs uint32) (int32, Status) {
	ip, err := netaddr.ASCIIToIPv4(target)
	if err != nil {
		return 0, ParamError
	}
	return d.Ping(ctx, ip, count, timeoutMs)
}

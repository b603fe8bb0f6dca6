package wifi

import (
	"context"
	"log/slog"

	"emw.dev/ipc"
)

// SetBypassMode issues WIFI_BYPASS_SET_CMD, switching iface between
// the module's normal (socket) data path and raw Ethernet bypass mode.
// Enabling bypass mode without a netlink callback registered via
// RegisterNetlinkCallback causes inbound frames to be dropped and
// logged.
func (d *Device) SetBypassMode(ctx context.Context, iface Interface, enabled bool) Status {
	body := []byte{byte(iface), 0}
	if enabled {
		body[1] = 1
	}
	_, status := d.request(wifiBypassSetCmd, body, make([]byte, 4), defaultTimeout)
	return status
}

// GetBypassMode issues WIFI_BYPASS_GET_CMD.
func (d *Device) GetBypassMode(ctx context.Context, iface Interface) (bool, Status) {
	body := []byte{byte(iface)}
	resp := make([]byte, 4+1)
	n, status := d.request(wifiBypassGetCmd, body, resp, defaultTimeout)
	if status != OK {
		return false, status
	}
	if n < 5 {
		return false, Error
	}
	return resp[4] != 0, OK
}

// SendBypassFrame transmits a raw Ethernet frame in bypass mode via
// WIFI_BYPASS_OUT_CMD, fire-and-forget (spec.md §4.4: outbound bypass
// frames carry no response). It stamps the 22-byte WiFiBypassOutParams
// descriptor (idx, 16 reserved bytes, dataLength) into a netbuf
// buffer's reserved prefix ahead of the frame, the symmetric
// counterpart of handleBypassInput's Advance(bypassDescriptorSize) in
// events.go.
func (d *Device) SendBypassFrame(iface Interface, frame []byte) {
	// FireAndForget prepends the 6-byte IPC header, so the frame must
	// leave room for header + descriptor within one buffer.
	total := bypassDescriptorSize + len(frame)
	if ipc.HeaderSize+total > d.pool.Capacity() {
		slog.Warn("wifi: dropped oversized bypass output frame", "len", len(frame))
		return
	}
	buf := d.pool.Alloc()
	if buf == nil {
		slog.Warn("wifi: dropped bypass output frame, pool exhausted")
		return
	}
	buf.SetSize(total)
	desc := buf.Raw()[:bypassDescriptorSize]
	putInt32(desc[0:4], int32(iface))
	for i := 4; i < 20; i++ {
		desc[i] = 0
	}
	putUint16(desc[20:22], uint16(len(frame)))
	copy(buf.Raw()[bypassDescriptorSize:total], frame)
	buf.Advance(bypassDescriptorSize)

	d.client.FireAndForget(wifiBypassOutCmd, buf.Raw()[:buf.Size()])
	d.pool.Free(buf)
}

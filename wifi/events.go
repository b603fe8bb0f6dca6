package wifi

import (
	"log/slog"

	"emw.dev/ipc"
	"emw.dev/netbuf"
)

// bypassDescriptorSize is the opaque link-layer descriptor the module
// prepends to every WIFI_BYPASS_INPUT_EVENT frame. Per spec.md §9's
// open question, its contents are undocumented; the driver hides it
// via the buffer's reserved-prefix mechanism and never parses it.
const bypassDescriptorSize = 22

// registerEvents wires the four event ids spec.md §4.4 defines.
// Unknown events are dropped by ipc.Client itself before reaching any
// handler here.
func (d *Device) registerEvents() {
	d.client.RegisterEvent(sysRebootEvent, d.handleReboot)
	d.client.RegisterEvent(sysFotaStatusEvent, d.handleFotaStatus)
	d.client.RegisterEvent(wifiStatusEvent, d.handleWifiStatus)
	d.client.RegisterEvent(wifiBypassInputEvent, d.handleBypassInput)
}

func (d *Device) handleReboot(hdr ipc.Header, buf *netbuf.Buffer) {
	d.client.FreeEvent(buf)
	slog.Warn("wifi: module reported SYS_REBOOT_EVENT")
	d.stateMu.Lock()
	d.scan = nil
	d.stateMu.Unlock()
	d.psMu.Lock()
	d.powerSaveOn = false
	d.psMu.Unlock()
	d.client.SetPowerSave(false)
}

func (d *Device) handleFotaStatus(hdr ipc.Header, buf *netbuf.Buffer) {
	body := buf.Payload()
	if len(body) < 1 {
		d.client.FreeEvent(buf)
		slog.Warn("wifi: short SYS_FOTA_STATUS_EVENT body")
		return
	}
	status := FotaStatus(body[0])
	d.client.FreeEvent(buf)
	d.mu.Lock()
	cb, arg := d.fotaCB, d.fotaArg
	d.mu.Unlock()
	if cb != nil {
		cb(status, arg)
	}
}

func (d *Device) handleWifiStatus(hdr ipc.Header, buf *netbuf.Buffer) {
	body := buf.Payload()
	if len(body) < 2 {
		d.client.FreeEvent(buf)
		slog.Warn("wifi: short WIFI_STATUS_EVENT body")
		return
	}
	iface := Interface(body[0])
	event := Event(body[1])
	d.client.FreeEvent(buf)
	if int(iface) >= len(d.statusCB) {
		slog.Warn("wifi: WIFI_STATUS_EVENT with unknown interface", "interface", byte(iface))
		return
	}
	d.mu.Lock()
	cb, arg := d.statusCB[iface], d.statusArg[iface]
	d.mu.Unlock()
	if cb != nil {
		cb(iface, event, arg)
	}
}

func (d *Device) handleBypassInput(hdr ipc.Header, buf *netbuf.Buffer) {
	d.mu.Lock()
	cb, arg := d.netlinkCB, d.netlinkArg
	d.mu.Unlock()
	if cb == nil {
		slog.Warn("wifi: dropped WIFI_BYPASS_INPUT_EVENT with no registered netlink callback")
		d.client.FreeEvent(buf)
		return
	}
	if len(buf.Payload()) < bypassDescriptorSize {
		slog.Warn("wifi: short WIFI_BYPASS_INPUT_EVENT body")
		d.client.FreeEvent(buf)
		return
	}
	buf.Advance(bypassDescriptorSize)
	cb(buf, arg)
}

// FreeBypassFrame releases a bypass-mode inbound frame buffer back to
// the pool. NetlinkInputCallback implementations call this once done.
func (d *Device) FreeBypassFrame(buf *netbuf.Buffer) {
	d.client.FreeEvent(buf)
}

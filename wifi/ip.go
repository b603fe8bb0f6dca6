package wifi

import (
	"context"

	"emw.dev/netaddr"
)

// ipRespBodySize: status(4) + four ASCII address fields.
const ipRespBodySize = 4 + 4*ipAttributesFieldLen

// GetIPAddress issues WIFI_GET_IP_CMD for iface. For InterfaceStation
// it also refreshes the cached station address block; a soft-AP
// address is returned but not cached.
func (d *Device) GetIPAddress(ctx context.Context, iface Interface) (IPAttributes, Status) {
	body := []byte{byte(iface)}
	resp := make([]byte, ipRespBodySize)
	n, status := d.request(wifiGetIPCmd, body, resp, getIPTimeout)
	if status != OK {
		return IPAttributes{}, status
	}
	fields := resp[4:n]
	if len(fields) < 4*ipAttributesFieldLen {
		return IPAttributes{}, Error
	}
	attrs := IPAttributes{
		IPAddressLocal:   getString(fields[0*ipAttributesFieldLen : 1*ipAttributesFieldLen]),
		NetworkMask:      getString(fields[1*ipAttributesFieldLen : 2*ipAttributesFieldLen]),
		GatewayAddress:   getString(fields[2*ipAttributesFieldLen : 3*ipAttributesFieldLen]),
		DNSServerAddress: getString(fields[3*ipAttributesFieldLen : 4*ipAttributesFieldLen]),
	}
	if iface == InterfaceStation {
		d.stateMu.Lock()
		if ip, err := netaddr.ASCIIToIPv4(attrs.IPAddressLocal); err == nil {
			d.state.StationIP = ip
		}
		if mask, err := netaddr.ASCIIToIPv4(attrs.NetworkMask); err == nil {
			d.state.StationMask = mask
		}
		if gw, err := netaddr.ASCIIToIPv4(attrs.GatewayAddress); err == nil {
			d.state.StationGateway = gw
		}
		if dns, err := netaddr.ASCIIToIPv4(attrs.DNSServerAddress); err == nil {
			d.state.StationDNS = dns
		}
		d.stateMu.Unlock()
	}
	return attrs, OK
}

// GetIP6AddressState issues WIFI_GET_IP6_STATE_CMD for one of the
// module's three IPv6 address slots.
func (d *Device) GetIP6AddressState(ctx context.Context, iface Interface, slot int) (int32, Status) {
	if slot < 0 || slot >= len(DeviceState{}.IPv6) {
		return 0, ParamError
	}
	body := []byte{byte(iface), byte(slot)}
	resp := make([]byte, 8)
	n, status := d.request(wifiGetIP6StateCmd, body, resp, defaultTimeout)
	if status != OK {
		return 0, status
	}
	state := getInt32(resp[4:n])
	d.stateMu.Lock()
	d.state.IPv6[slot].State = state
	d.stateMu.Unlock()
	return state, OK
}

// GetIP6Address issues WIFI_GET_IP6_ADDR_CMD for one of the module's
// three IPv6 address slots.
func (d *Device) GetIP6Address(ctx context.Context, iface Interface, slot int) ([16]byte, Status) {
	var addr [16]byte
	if slot < 0 || slot >= len(DeviceState{}.IPv6) {
		return addr, ParamError
	}
	body := []byte{byte(iface), byte(slot)}
	resp := make([]byte, 4+16)
	n, status := d.request(wifiGetIP6AddrCmd, body, resp, defaultTimeout)
	if status != OK {
		return addr, status
	}
	copy(addr[:], resp[4:n])
	d.stateMu.Lock()
	d.state.IPv6[slot].Address = addr
	d.stateMu.Unlock()
	return addr, OK
}

// GetStationMacAddress issues WIFI_GET_MAC_CMD. The response body is
// the bare 6-byte MAC with no status prefix.
func (d *Device) GetStationMacAddress(ctx context.Context) ([6]byte, Status) {
	resp := make([]byte, 6)
	n, ipcStatus := d.client.Request(wifiGetMacCmd, nil, resp, defaultTimeout)
	if status := fromIPC(ipcStatus); status != OK {
		return [6]byte{}, status
	}
	if n < 6 {
		return [6]byte{}, Error
	}
	var mac [6]byte
	copy(mac[:], resp[:6])
	d.stateMu.Lock()
	d.state.StationMAC = mac
	d.stateMu.Unlock()
	return mac, OK
}

// GetSoftApMacAddress issues WIFI_GET_SOFTAP_MAC_CMD. Like the
// station variant, the body is the bare 6-byte MAC.
func (d *Device) GetSoftApMacAddress(ctx context.Context) ([6]byte, Status) {
	resp := make([]byte, 6)
	n, ipcStatus := d.client.Request(wifiGetSoftMacCmd, nil, resp, defaultTimeout)
	if status := fromIPC(ipcStatus); status != OK {
		return [6]byte{}, status
	}
	if n < 6 {
		return [6]byte{}, Error
	}
	var mac [6]byte
	copy(mac[:], resp[:6])
	d.stateMu.Lock()
	d.state.SoftAPMAC = mac
	d.stateMu.Unlock()
	return mac, OK
}

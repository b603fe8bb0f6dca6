package wifi

import "context"

const ipAttributesFieldLen = 16 // each of the four dotted-decimal/ascii fields

// encodeIPAttributes validates and serializes ip's four ASCII address
// fields into a fixed 64-byte block, matching EmwApiBase::IpAttributes_t.
func encodeIPAttributes(ip IPAttributes) ([4 * ipAttributesFieldLen]byte, Status) {
	var out [4 * ipAttributesFieldLen]byte
	fields := []string{ip.IPAddressLocal, ip.NetworkMask, ip.GatewayAddress, ip.DNSServerAddress}
	for i, f := range fields {
		if len(f) >= ipAttributesFieldLen {
			return out, ParamError
		}
		putString(out[i*ipAttributesFieldLen:(i+1)*ipAttributesFieldLen], f)
	}
	return out, OK
}

// connectBodySize: ssid[33] password[65] keyLength(i32) useIP(u8)
// ip[64] useAttr(u8) bssid[6] channel(u8) security(u8).
const connectBodySize = (maxSSIDLen + 1) + (maxPasswordLen + 1) + 4 + 1 + 4*ipAttributesFieldLen + 1 + 6 + 1 + 1

func buildConnectBody(ssid, password string, ip *IPAttributes, attrs *ConnectAttributes) ([]byte, Status) {
	if len(ssid) > maxSSIDLen || len(password) > maxPasswordLen {
		return nil, ParamError
	}
	body := make([]byte, connectBodySize)
	off := 0
	putString(body[off:off+maxSSIDLen+1], ssid)
	off += maxSSIDLen + 1
	putString(body[off:off+maxPasswordLen+1], password)
	off += maxPasswordLen + 1
	putInt32(body[off:off+4], int32(len(password)))
	off += 4
	if ip != nil {
		body[off] = 1
	}
	off++
	if ip != nil {
		enc, status := encodeIPAttributes(*ip)
		if status != OK {
			return nil, status
		}
		copy(body[off:off+len(enc)], enc[:])
	}
	off += 4 * ipAttributesFieldLen
	if attrs != nil {
		body[off] = 1
	}
	off++
	if attrs != nil {
		copy(body[off:off+6], attrs.BSSID[:])
		body[off+6] = attrs.Channel
		body[off+7] = byte(attrs.Security)
	}
	return body, OK
}

// Connect issues WIFI_CONNECT_CMD with no BSSID pinning or static IP.
func (d *Device) Connect(ctx context.Context, ssid, password string, security Security) Status {
	_ = security // carried on the wire via ConnectAdvance/attrs only; plain connect omits it, per EmwApiCore::connect
	body, status := buildConnectBody(ssid, password, nil, nil)
	if status != OK {
		return status
	}
	_, status = d.request(wifiConnectCmd, body, make([]byte, 4), connectTimeout)
	return status
}

// ConnectAdvance issues WIFI_CONNECT_CMD with an optional BSSID/channel
// pin and/or static IP configuration.
func (d *Device) ConnectAdvance(ctx context.Context, ssid, password string, attrs *ConnectAttributes, ip *IPAttributes) Status {
	body, status := buildConnectBody(ssid, password, ip, attrs)
	if status != OK {
		return status
	}
	_, status = d.request(wifiConnectCmd, body, make([]byte, 4), connectTimeout)
	return status
}

// Disconnect issues WIFI_DISCONNECT_CMD.
func (d *Device) Disconnect(ctx context.Context) Status {
	_, status := d.request(wifiDisconnectCmd, nil, make([]byte, 4), connectTimeout)
	return status
}

// ConnectWPS issues WIFI_WPS_CONNECT_CMD.
func (d *Device) ConnectWPS(ctx context.Context) Status {
	_, status := d.request(wifiWPSConnectCmd, nil, make([]byte, 4), connectTimeout)
	return status
}

// StopWPS issues WIFI_WPS_STOP_CMD.
func (d *Device) StopWPS(ctx context.Context) Status {
	_, status := d.request(wifiWPSStopCmd, nil, make([]byte, 4), defaultTimeout)
	return status
}

// IsConnected issues WIFI_GET_LINKINFO_CMD and reports the module's
// live connection state, per EmwApiCore::isConnected: 1 connected, 0
// not connected, negative on error.
func (d *Device) IsConnected(ctx context.Context) int {
	info, status := d.GetLinkInfo(ctx)
	if status != OK {
		return -1
	}
	if info.Connected {
		return 1
	}
	return 0
}

// LinkInfo is the module's live view of the station link, from
// WIFI_GET_LINKINFO_CMD.
type LinkInfo struct {
	Connected bool
	SSID      string
	BSSID     [6]byte
	Security  uint8
	Channel   uint8
	RSSI      int32
}

// GetLinkInfo issues WIFI_GET_LINKINFO_CMD.
func (d *Device) GetLinkInfo(ctx context.Context) (LinkInfo, Status) {
	resp := make([]byte, 4+1+maxSSIDLen+6+1+1+4)
	n, status := d.request(wifiGetLinkInfoCmd, nil, resp, defaultTimeout)
	if status != OK {
		return LinkInfo{}, status
	}
	body := resp[4:n]
	if len(body) < 1+maxSSIDLen+6+1+1+4 {
		return LinkInfo{}, Error
	}
	off := 0
	connected := body[off] != 0
	off++
	ssid := getString(body[off : off+maxSSIDLen])
	off += maxSSIDLen
	var bssid [6]byte
	copy(bssid[:], body[off:off+6])
	off += 6
	security := body[off]
	off++
	channel := body[off]
	off++
	rssi := getInt32(body[off : off+4])
	return LinkInfo{
		Connected: connected,
		SSID:      ssid,
		BSSID:     bssid,
		Security:  security,
		Channel:   channel,
		RSSI:      rssi,
	}, OK
}

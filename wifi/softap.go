package wifi

import "context"

// softApBodySize: ssid[33] password[65] channel(u8) ip[64].
const softApBodySize = (maxSSIDLen + 1) + (maxPasswordLen + 1) + 1 + 4*ipAttributesFieldLen

// StartSoftAp issues WIFI_SOFTAP_START_CMD, bringing up the module's
// access-point interface with the given settings.
func (d *Device) StartSoftAp(ctx context.Context, settings SoftApSettings) Status {
	if len(settings.SSID) > maxSSIDLen || len(settings.Password) > maxPasswordLen {
		return ParamError
	}
	body := make([]byte, softApBodySize)
	off := 0
	putString(body[off:off+maxSSIDLen+1], settings.SSID)
	off += maxSSIDLen + 1
	putString(body[off:off+maxPasswordLen+1], settings.Password)
	off += maxPasswordLen + 1
	body[off] = settings.Channel
	off++
	enc, status := encodeIPAttributes(settings.IP)
	if status != OK {
		return status
	}
	copy(body[off:off+len(enc)], enc[:])

	_, status = d.request(wifiSoftApStartCmd, body, make([]byte, 4), softApTimeout)
	return status
}

// StopSoftAp issues WIFI_SOFTAP_STOP_CMD.
func (d *Device) StopSoftAp(ctx context.Context) Status {
	_, status := d.request(wifiSoftApStopCmd, nil, make([]byte, 4), softApTimeout)
	return status
}

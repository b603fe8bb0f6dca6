package wifi

import "context"

// maxCertLen bounds each of connectEAP's certificate/key fields, the
// same 2500-byte bound SPEC_FULL.md's open-question resolution sets
// for TLS certificates.
const maxCertLen = 2500

// setEapCert issues WIFI_EAP_SET_CERT_CMD for one of the three
// certificate slots EmwApiCore::connectEAP uploads before connecting.
func (d *Device) setEapCert(ctx context.Context, slot uint8, data []byte) Status {
	if len(data) > maxCertLen {
		return ParamError
	}
	body := make([]byte, 1+4+len(data))
	body[0] = slot
	putUint32(body[1:5], uint32(len(data)))
	copy(body[5:], data)
	_, status := d.request(wifiEapSetCertCmd, body, make([]byte, 4), defaultTimeout)
	return status
}

const (
	eapSlotRootCA = iota
	eapSlotClientCertificate
	eapSlotClientKey
)

// ConnectEAP uploads attrs' certificate material and issues
// WIFI_EAP_CONNECT_CMD.
func (d *Device) ConnectEAP(ctx context.Context, ssid string, attrs EapAttributes) Status {
	if len(ssid) > maxSSIDLen {
		return ParamError
	}
	if status := d.setEapCert(ctx, eapSlotRootCA, attrs.RootCA); status != OK {
		return status
	}
	if status := d.setEapCert(ctx, eapSlotClientCertificate, attrs.ClientCertificate); status != OK {
		return status
	}
	if status := d.setEapCert(ctx, eapSlotClientKey, attrs.ClientKey); status != OK {
		return status
	}

	body := make([]byte, maxSSIDLen+1+1)
	putString(body[:maxSSIDLen+1], ssid)
	body[maxSSIDLen+1] = byte(attrs.Type)
	_, status := d.request(wifiEapConnectCmd, body, make([]byte, 4), connectTimeout)
	return status
}

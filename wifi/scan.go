package wifi

import "context"

const (
	maxSSIDLen     = 32
	maxPasswordLen = 64
	apInfoSize     = 4 + (maxSSIDLen + 1) + 6 + 4 + 1 // rssi, ssid, bssid, channel, security
)

// Scan issues WIFI_SCAN_CMD and populates the scan cache with the
// module's reply. mode selects a passive (empty ssid) or active
// (targeted) scan.
func (d *Device) Scan(ctx context.Context, mode ScanMode, ssid string) Status {
	if len(ssid) > maxSSIDLen {
		return ParamError
	}
	body := make([]byte, 1+maxSSIDLen+1)
	body[0] = byte(mode)
	putString(body[1:], ssid)

	// The scan response is { numberOf:u8, ap[] } with no status
	// prefix, so it bypasses the status-checking request path.
	resp := make([]byte, 1+maxScanResults*apInfoSize)
	n, ipcStatus := d.client.Request(wifiScanCmd, body, resp, scanTimeout)
	if status := fromIPC(ipcStatus); status != OK {
		return status
	}
	d.storeScanResults(resp[:n])
	return OK
}

func (d *Device) storeScanResults(body []byte) {
	if len(body) < 1 {
		return
	}
	count := int(body[0])
	if count > maxScanResults {
		count = maxScanResults
	}
	results := make([]ScanResult, 0, count)
	off := 1
	for i := 0; i < count; i++ {
		if off+apInfoSize > len(body) {
			break
		}
		rec := body[off : off+apInfoSize]
		results = append(results, ScanResult{
			RSSI:     getInt32(rec[0:4]),
			SSID:     getString(rec[4 : 4+maxSSIDLen+1]),
			BSSID:    [6]byte(rec[4+maxSSIDLen+1 : 4+maxSSIDLen+1+6]),
			Channel:  getInt32(rec[4+maxSSIDLen+1+6 : 4+maxSSIDLen+1+6+4]),
			Security: rec[4+maxSSIDLen+1+6+4],
		})
		off += apInfoSize
	}
	d.stateMu.Lock()
	d.scan = results
	d.stateMu.Unlock()
}

// GetScanResults copies up to max cached scan results into buf,
// truncating to min(len(buf), max, count cached), and returns the
// number copied.
func (d *Device) GetScanResults(buf []ScanResult, max int) int {
	d.stateMu.Lock()
	defer d.stateMu.Unlock()
	n := len(d.scan)
	if n > max {
		n = max
	}
	if n > len(buf) {
		n = len(buf)
	}
	copy(buf, d.scan[:n])
	return n
}

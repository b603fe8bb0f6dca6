package wifi

import "context"

// StationPowerSave issues WIFI_PS_ON_CMD or WIFI_PS_OFF_CMD and, on
// success, updates ipc.Client's power-save flag so subsequent Request
// calls prefix a wake packet (spec.md §4.5's "power-save wake gap").
func (d *Device) StationPowerSave(ctx context.Context, enabled bool) Status {
	apiID := wifiPSOffCmd
	if enabled {
		apiID = wifiPSOnCmd
	}
	_, status := d.request(uint16(apiID), nil, make([]byte, 4), defaultTimeout)
	if status != OK {
		return status
	}
	d.psMu.Lock()
	d.powerSaveOn = enabled
	d.psMu.Unlock()
	d.client.SetPowerSave(enabled)
	return OK
}

// PowerSaveEnabled reports the driver's local view of power-save
// state.
func (d *Device) PowerSaveEnabled() bool {
	d.psMu.Lock()
	defer d.psMu.Unlock()
	return d.powerSaveOn
}

package wifi

// RegisterStatusCallback installs cb to be invoked from the receive
// path whenever WIFI_STATUS_EVENT arrives for iface. Re-registering
// replaces the previous callback.
func (d *Device) RegisterStatusCallback(iface Interface, cb StatusCallback, arg any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.statusCB[iface] = cb
	d.statusArg[iface] = arg
}

// UnregisterStatusCallback removes any callback installed for iface.
func (d *Device) UnregisterStatusCallback(iface Interface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.statusCB[iface] = nil
	d.statusArg[iface] = nil
}

// RegisterFotaCallback installs cb to be invoked from the receive path
// whenever SYS_FOTA_STATUS_EVENT arrives.
func (d *Device) RegisterFotaCallback(cb FotaCallback, arg uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fotaCB = cb
	d.fotaArg = arg
}

// RegisterNetlinkCallback installs cb to receive bypass-mode inbound
// Ethernet frames. Call SetBypassMode(InterfaceStation, true) to start
// the flow once a callback is registered.
func (d *Device) RegisterNetlinkCallback(cb NetlinkInputCallback, arg any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.netlinkCB = cb
	d.netlinkArg = arg
}
